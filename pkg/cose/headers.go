// Package cose implements the COSE_Mac0 structure (RFC 8152 §6.2) used to
// authenticate a CAT's CBOR payload: MAC structure construction,
// HMAC-SHA-256 compute/verify with constant-time tag comparison, and the
// 4-element envelope array. The COSE_Sign1 / ECDSA / EdDSA signing
// machinery a general COSE library would need is out of scope here since
// CAT's HS256 profile is MAC-only.
package cose

import "github.com/eyevinn/common-access-token-go/pkg/cbor"

// COSE header parameter labels (RFC 8152 §3.1).
const (
	HeaderAlgorithm int64 = 1
	HeaderCritical  int64 = 2
	HeaderKeyID     int64 = 4
)

// COSE algorithm identifiers. Only HS256 is implemented; HS384/HS512 and
// the signature algorithms are out of scope for this profile.
const (
	AlgorithmHS256 int64 = 5
)

// Headers holds protected and unprotected COSE header parameters, keyed
// by their integer label.
type Headers struct {
	Protected   map[int64]any
	Unprotected map[int64]any
}

// NewHeaders returns empty protected/unprotected header maps.
func NewHeaders() *Headers {
	return &Headers{
		Protected:   make(map[int64]any),
		Unprotected: make(map[int64]any),
	}
}

// encodeHeaderMap serializes a header map to CBOR bytes. An empty map
// encodes as the definite-length zero-entry map (0xa0). It is used for the
// unprotected header; an empty protected header is not built here but is
// the zero-length byte string (see NewMac0).
func encodeHeaderMap(m map[int64]any) ([]byte, error) {
	e := cbor.NewEncoder()
	keys := sortedKeys(m)
	e.BeginMap(len(keys))
	for _, k := range keys {
		e.PushInt(k)
		if err := encodeHeaderValue(e, m[k]); err != nil {
			return nil, err
		}
	}
	return e.Finish(), nil
}

func encodeHeaderValue(e *cbor.Encoder, v any) error {
	switch val := v.(type) {
	case int:
		e.PushInt(int64(val))
	case int64:
		e.PushInt(val)
	case string:
		e.PushText(val)
	case []byte:
		e.PushBytes(val)
	default:
		return errUnsupportedHeaderValue
	}
	return nil
}

func sortedKeys(m map[int64]any) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// decodeHeaderMap parses a CBOR-encoded header map back into a
// map[int64]any. Protected-header parsing is not required for MAC
// verification but is exercised so malformed headers fail closed. A
// zero-length buf (the empty protected header per RFC 8152 §3) decodes to
// an empty map rather than being parsed as a CBOR item.
func decodeHeaderMap(buf []byte) (map[int64]any, error) {
	if len(buf) == 0 {
		return map[int64]any{}, nil
	}
	d := cbor.NewDecoder(buf)
	n, err := d.BeginMap()
	if err != nil {
		return nil, err
	}
	out := make(map[int64]any)
	count := n
	if n == cbor.LengthIndefinite {
		for {
			isBreak, err := d.IsBreakCode()
			if err != nil {
				return nil, err
			}
			if isBreak {
				return out, d.ConsumeBreak()
			}
			k, v, err := decodeHeaderEntry(d)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
	}
	for i := int64(0); i < count; i++ {
		k, v, err := decodeHeaderEntry(d)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func decodeHeaderEntry(d *cbor.Decoder) (int64, any, error) {
	k, err := d.ReadInt()
	if err != nil {
		return 0, nil, err
	}
	major, err := d.PeekMajorType()
	if err != nil {
		return 0, nil, err
	}
	switch major {
	case cbor.MajorUnsignedInt, cbor.MajorNegativeInt:
		v, err := d.ReadInt()
		return k, v, err
	case cbor.MajorTextString:
		v, err := d.ReadText()
		return k, v, err
	case cbor.MajorByteString:
		v, err := d.ReadBytes()
		return k, v, err
	default:
		if err := d.Skip(); err != nil {
			return 0, nil, err
		}
		return k, nil, nil
	}
}
