package cose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMac0VerifyRoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	payload := []byte{0xa1, 0x01, 0x65, 'h', 'e', 'l', 'l', 'o'}

	mac0, err := NewMac0(payload, key, "key-1")
	require.NoError(t, err)

	require.NoError(t, mac0.Verify(key))

	kid, ok := mac0.KeyID()
	require.True(t, ok)
	assert.Equal(t, "key-1", kid)
}

func TestNewMac0ProtectedHeaderIsZeroLength(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	payload := []byte("payload")

	mac0, err := NewMac0(payload, key, "")
	require.NoError(t, err)

	assert.Equal(t, []byte{}, mac0.Protected)

	encoded, err := mac0.Encode()
	require.NoError(t, err)
	// protected bstr head (0x40, zero-length byte string) must appear right
	// after the array head, not 0xa0 (empty map).
	assert.Equal(t, byte(0x40), encoded[1])
}

func TestMac0VerifyFailsOnWrongKey(t *testing.T) {
	key := []byte("key-one-aaaaaaaaaaaaaaaaaaaaaaaa")
	other := []byte("key-two-bbbbbbbbbbbbbbbbbbbbbbbb")
	payload := []byte("payload")

	mac0, err := NewMac0(payload, key, "")
	require.NoError(t, err)

	err = mac0.Verify(other)
	assert.Error(t, err)
}

func TestMac0EncodeDecodeRoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	payload := []byte("some cbor payload bytes")

	mac0, err := NewMac0(payload, key, "kid-42")
	require.NoError(t, err)

	encoded, err := mac0.Encode()
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, payload, decoded.Payload)
	assert.Equal(t, mac0.Tag, decoded.Tag)

	require.NoError(t, decoded.Verify(key))

	kid, ok := decoded.KeyID()
	require.True(t, ok)
	assert.Equal(t, "kid-42", kid)
}

func TestMac0DecodeDetectsTamperedTag(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	payload := []byte("payload")

	mac0, err := NewMac0(payload, key, "")
	require.NoError(t, err)
	encoded, err := mac0.Encode()
	require.NoError(t, err)

	// Flip a bit in the last byte (part of the tag).
	tampered := append([]byte(nil), encoded...)
	tampered[len(tampered)-1] ^= 0xff

	decoded, err := Decode(tampered)
	require.NoError(t, err)

	err = decoded.Verify(key)
	assert.Error(t, err)
}

func TestDecodeRejectsWrongArrayLength(t *testing.T) {
	// A 3-element array is not a valid COSE_Mac0 envelope.
	raw := []byte{0x83, 0x40, 0xa0, 0x40}
	_, err := Decode(raw)
	assert.Error(t, err)
}
