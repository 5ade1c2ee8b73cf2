// Package config loads the key-store configuration that backs the kid→key
// lookup the token pipeline needs on verify: a YAML file naming each key by
// id plus its hex-encoded HMAC secret, validated and defaulted the way the
// teacher's configuration package loads its YAML config.
package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/eyevinn/common-access-token-go/pkg/caterr"
	"github.com/eyevinn/common-access-token-go/pkg/catlog"
	"github.com/eyevinn/common-access-token-go/pkg/catutil"
)

// KeyEntry names one HMAC key available to the verifier, keyed by the kid
// carried in a token's COSE unprotected header.
type KeyEntry struct {
	KeyID     string `yaml:"kid" validate:"required"`
	KeyHex    string `yaml:"key_hex" validate:"required,hexadecimal"`
	Algorithm string `yaml:"algorithm" default:"HS256" validate:"required,oneof=HS256"`
}

// KeyStore is the top-level shape of the key-store YAML file.
type KeyStore struct {
	Keys []KeyEntry `yaml:"keys" validate:"required,min=1,dive"`
}

type envVars struct {
	KeyStoreYAML string `envconfig:"CAT_KEYSTORE_YAML" required:"true"`
}

// NewValidator returns a struct validator that reports errors using each
// field's yaml tag name rather than its Go field name.
func NewValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate, nil
}

// Check runs struct validation over s and wraps any failure as an Input
// error.
func Check(s any) error {
	validate, err := NewValidator()
	if err != nil {
		return caterr.Wrap(caterr.KindInput, caterr.CodeInvalidArgument, err)
	}
	if err := validate.Struct(s); err != nil {
		return caterr.Wrap(caterr.KindInput, caterr.CodeInvalidArgument, err)
	}
	return nil
}

// Load reads the key-store YAML file named by the CAT_KEYSTORE_YAML
// environment variable, applies field defaults, and validates the result.
func Load(ctx context.Context) (*KeyStore, error) {
	log := catlog.NewSimple("config")
	log.Debug("reading key-store environment variable")

	env := envVars{}
	if err := envconfig.Process("", &env); err != nil {
		return nil, caterr.Wrap(caterr.KindInput, caterr.CodeInvalidArgument, err)
	}

	return LoadFile(env.KeyStoreYAML)
}

// LoadFile reads and validates the key-store YAML file at path directly,
// bypassing the environment-variable indirection Load uses.
func LoadFile(path string) (*KeyStore, error) {
	ks := &KeyStore{}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, caterr.Wrap(caterr.KindInput, caterr.CodeInvalidArgument, err)
	}
	if fileInfo.IsDir() {
		return nil, caterr.Wrap(caterr.KindInput, caterr.CodeInvalidArgument, errors.New("key-store path is a directory"))
	}

	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, caterr.Wrap(caterr.KindInput, caterr.CodeInvalidArgument, err)
	}

	if err := yaml.Unmarshal(raw, ks); err != nil {
		return nil, caterr.Wrap(caterr.KindInput, caterr.CodeInvalidArgument, err)
	}

	for i := range ks.Keys {
		if err := defaults.Set(&ks.Keys[i]); err != nil {
			return nil, caterr.Wrap(caterr.KindInput, caterr.CodeInvalidArgument, err)
		}
	}

	if err := Check(ks); err != nil {
		return nil, err
	}

	return ks, nil
}

// Key returns the raw HMAC key bytes for kid, or a KeyManagement error if no
// entry matches.
func (ks *KeyStore) Key(kid string) ([]byte, error) {
	for _, entry := range ks.Keys {
		if entry.KeyID == kid {
			return catutil.DecodeHex(entry.KeyHex)
		}
	}
	return nil, caterr.New(caterr.KindKeyManagement, caterr.CodeKeyIDNotFound)
}
