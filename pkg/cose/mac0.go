package cose

import (
	"crypto/hmac"
	"crypto/sha256"

	"github.com/eyevinn/common-access-token-go/pkg/caterr"
	"github.com/eyevinn/common-access-token-go/pkg/cbor"
)

// Mac0 represents a COSE_Mac0 structure per RFC 8152 §6.2: the 4-element
// array [protected, unprotected, payload, tag]. Protected is kept as the
// opaque CBOR-encoded header bytes; unprotected is parsed into a label→value
// map for convenient kid lookup.
type Mac0 struct {
	Protected   []byte
	Unprotected map[int64]any
	Payload     []byte
	Tag         []byte
}

const macContext = "MAC0"

// macStructure builds the CBOR encoding of [ "MAC0", protected, external_aad,
// payload ], the exact byte sequence hashed under HMAC. external_aad is
// empty in this profile.
func macStructure(protected, externalAAD, payload []byte) []byte {
	e := cbor.NewEncoder()
	e.BeginArray(4)
	e.PushText(macContext)
	e.PushBytes(protected)
	e.PushBytes(externalAAD)
	e.PushBytes(payload)
	return e.Finish()
}

func computeTag(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// NewMac0 builds a COSE_Mac0 over payload using key (HMAC-SHA-256). kid, if
// non-empty, is stored in the unprotected header (parameter 4). The
// protected header is empty in this profile (alg is conveyed out-of-band by
// the caller's algorithm choice, consistent with peer CAT implementations
// that often omit alg from a Mac0 envelope's protected bytes). An empty
// protected header is the zero-length byte string, not the encoding of an
// empty map: RFC 8152 §3 defines the protected header as "a zero-length
// byte string" when there are no parameters to convey.
func NewMac0(payload, key []byte, kid string) (*Mac0, error) {
	protectedBytes := []byte{}

	unprotected := map[int64]any{}
	if kid != "" {
		unprotected[HeaderKeyID] = []byte(kid)
	}

	toMAC := macStructure(protectedBytes, nil, payload)
	tag := computeTag(key, toMAC)

	return &Mac0{
		Protected:   protectedBytes,
		Unprotected: unprotected,
		Payload:     payload,
		Tag:         tag,
	}, nil
}

// Verify recomputes the HMAC over m's MAC structure and compares it to m.Tag
// in constant time. Returns a TagMismatch envelope error on any mismatch,
// without leaking partial-compare information.
func (m *Mac0) Verify(key []byte) error {
	toMAC := macStructure(m.Protected, nil, m.Payload)
	expected := computeTag(key, toMAC)
	if !hmac.Equal(expected, m.Tag) {
		return caterr.New(caterr.KindEnvelope, caterr.CodeTagMismatch)
	}
	return nil
}

// KeyID extracts the kid (header parameter 4) from the unprotected header,
// if present.
func (m *Mac0) KeyID() (string, bool) {
	v, ok := m.Unprotected[HeaderKeyID]
	if !ok {
		return "", false
	}
	b, ok := v.([]byte)
	if !ok {
		return "", false
	}
	return string(b), true
}

// Encode emits m as the 4-element CBOR array
// [protected-bstr, unprotected-map, payload-bstr, tag-bstr].
func (m *Mac0) Encode() ([]byte, error) {
	e := cbor.NewEncoder()
	e.BeginArray(4)
	e.PushBytes(m.Protected)
	unprotectedBytes, err := encodeHeaderMap(m.Unprotected)
	if err != nil {
		return nil, caterr.Wrap(caterr.KindEnvelope, caterr.CodeMalformedHeader, err)
	}
	e.PushRaw(unprotectedBytes)
	e.PushBytes(m.Payload)
	e.PushBytes(m.Tag)
	return e.Finish(), nil
}

// Decode parses buf as a COSE_Mac0 4-element array. The protected header is
// parsed eagerly (even though verification does not strictly require it) so
// malformed headers fail closed.
func Decode(buf []byte) (*Mac0, error) {
	d := cbor.NewDecoder(buf)
	n, err := d.BeginArray()
	if err != nil {
		return nil, err
	}
	if n != 4 {
		return nil, caterr.New(caterr.KindEnvelope, caterr.CodeMalformedEnvelope)
	}

	protected, err := d.ReadBytes()
	if err != nil {
		return nil, caterr.Wrap(caterr.KindEnvelope, caterr.CodeMalformedEnvelope, err)
	}
	if _, err := decodeHeaderMap(protected); err != nil {
		return nil, caterr.Wrap(caterr.KindEnvelope, caterr.CodeMalformedHeader, err)
	}

	unprotectedStart := d.Position()
	if err := d.Skip(); err != nil {
		return nil, caterr.Wrap(caterr.KindEnvelope, caterr.CodeMalformedHeader, err)
	}
	unprotected, err := decodeHeaderMap(buf[unprotectedStart:d.Position()])
	if err != nil {
		return nil, caterr.Wrap(caterr.KindEnvelope, caterr.CodeMalformedHeader, err)
	}

	payload, err := d.ReadBytes()
	if err != nil {
		return nil, caterr.Wrap(caterr.KindEnvelope, caterr.CodeMalformedEnvelope, err)
	}
	tag, err := d.ReadBytes()
	if err != nil {
		return nil, caterr.Wrap(caterr.KindEnvelope, caterr.CodeMalformedEnvelope, err)
	}

	return &Mac0{
		Protected:   protected,
		Unprotected: unprotected,
		Payload:     payload,
		Tag:         tag,
	}, nil
}
