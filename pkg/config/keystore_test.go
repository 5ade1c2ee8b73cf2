package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeyStoreFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "keystore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadFileValidKeyStore(t *testing.T) {
	path := writeKeyStoreFile(t, `
keys:
  - kid: Symmetric256
    key_hex: "403697de87af64611c1d32a05dab0fe1fcb715a86ab435f1ec99192d79569ab0"
`)

	ks, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, ks.Keys, 1)
	assert.Equal(t, "Symmetric256", ks.Keys[0].KeyID)
	assert.Equal(t, "HS256", ks.Keys[0].Algorithm)

	key, err := ks.Key("Symmetric256")
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestLoadFileUnknownKeyID(t *testing.T) {
	path := writeKeyStoreFile(t, `
keys:
  - kid: a
    key_hex: "403697de87af64611c1d32a05dab0fe1fcb715a86ab435f1ec99192d79569ab"
`)
	ks, err := LoadFile(path)
	require.NoError(t, err)

	_, err = ks.Key("missing")
	assert.Error(t, err)
}

func TestLoadFileRejectsMissingKeys(t *testing.T) {
	path := writeKeyStoreFile(t, `keys: []`)
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileRejectsNonHexKey(t *testing.T) {
	path := writeKeyStoreFile(t, `
keys:
  - kid: a
    key_hex: "not-hex"
`)
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileRejectsDirectoryPath(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFile(dir)
	assert.Error(t, err)
}
