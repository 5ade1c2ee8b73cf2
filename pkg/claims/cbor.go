package claims

import (
	"github.com/eyevinn/common-access-token-go/pkg/cbor"
	"github.com/eyevinn/common-access-token-go/pkg/caterr"
)

// ToCBOR emits c as a CBOR map of size == claim count, keys in ascending
// label order for fixture stability (CBOR maps are set-valued; byte-level
// equality across implementations is not guaranteed, per the design
// note on map key ordering).
func (c *Claims) ToCBOR() []byte {
	e := cbor.NewEncoder()
	labels := c.All()
	e.BeginMap(len(labels))
	for _, label := range labels {
		e.PushUint(label)
		encodeValue(e, c.entries[label])
	}
	return e.Finish()
}

// encodeValue recursively emits v, dispatching on its Kind. Array and Map
// recurse into their children at any depth, which is required for CATU,
// CATH, CATDPOP, and CATR claims that legitimately carry map-of-maps.
func encodeValue(e *cbor.Encoder, v ClaimValue) {
	switch v.Kind() {
	case KindInteger:
		i, _ := v.AsInt()
		e.PushInt(i)
	case KindTextString:
		s, _ := v.AsText()
		e.PushText(s)
	case KindByteString:
		b, _ := v.AsBytes()
		e.PushBytes(b)
	case KindArray:
		items, _ := v.AsArray()
		e.BeginArray(len(items))
		for _, it := range items {
			encodeValue(e, it)
		}
	case KindMap:
		m, _ := v.AsMap()
		keys := sortedInt64Keys(m)
		e.BeginMap(len(keys))
		for _, k := range keys {
			e.PushInt(k)
			encodeValue(e, m[k])
		}
	}
}

// FromCBOR parses buf as a CBOR map into a new Claims value. Every entry's
// key must be an unsigned integer (the claim label); values are decoded
// recursively through decodeValue so nested Arrays and Maps round-trip
// correctly at any depth.
func FromCBOR(buf []byte) (*Claims, error) {
	d := cbor.NewDecoder(buf)
	n, err := d.BeginMap()
	if err != nil {
		return nil, err
	}
	c := New()
	if n == cbor.LengthIndefinite {
		for {
			isBreak, err := d.IsBreakCode()
			if err != nil {
				return nil, err
			}
			if isBreak {
				if err := d.ConsumeBreak(); err != nil {
					return nil, err
				}
				break
			}
			label, err := d.ReadUintStrict()
			if err != nil {
				return nil, err
			}
			v, err := decodeValue(d)
			if err != nil {
				return nil, err
			}
			c.entries[label] = v
		}
		return c, nil
	}
	for i := int64(0); i < n; i++ {
		label, err := d.ReadUintStrict()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(d)
		if err != nil {
			return nil, err
		}
		c.entries[label] = v
	}
	return c, nil
}

// decodeValue dispatches on the next item's major type to reconstruct a
// ClaimValue, recursing into Arrays and Maps.
func decodeValue(d *cbor.Decoder) (ClaimValue, error) {
	major, err := d.PeekMajorType()
	if err != nil {
		return ClaimValue{}, err
	}
	switch major {
	case cbor.MajorUnsignedInt, cbor.MajorNegativeInt:
		i, err := d.ReadInt()
		if err != nil {
			return ClaimValue{}, err
		}
		return Int(i), nil
	case cbor.MajorTextString:
		s, err := d.ReadText()
		if err != nil {
			return ClaimValue{}, err
		}
		return Text(s), nil
	case cbor.MajorByteString:
		b, err := d.ReadBytes()
		if err != nil {
			return ClaimValue{}, err
		}
		return Bytes(b), nil
	case cbor.MajorArray:
		n, err := d.BeginArray()
		if err != nil {
			return ClaimValue{}, err
		}
		var items []ClaimValue
		if n == cbor.LengthIndefinite {
			for {
				isBreak, err := d.IsBreakCode()
				if err != nil {
					return ClaimValue{}, err
				}
				if isBreak {
					if err := d.ConsumeBreak(); err != nil {
						return ClaimValue{}, err
					}
					break
				}
				item, err := decodeValue(d)
				if err != nil {
					return ClaimValue{}, err
				}
				items = append(items, item)
			}
		} else {
			items = make([]ClaimValue, 0, n)
			for i := int64(0); i < n; i++ {
				item, err := decodeValue(d)
				if err != nil {
					return ClaimValue{}, err
				}
				items = append(items, item)
			}
		}
		return Array(items...), nil
	case cbor.MajorMap:
		n, err := d.BeginMap()
		if err != nil {
			return ClaimValue{}, err
		}
		m := make(map[int64]ClaimValue)
		if n == cbor.LengthIndefinite {
			for {
				isBreak, err := d.IsBreakCode()
				if err != nil {
					return ClaimValue{}, err
				}
				if isBreak {
					if err := d.ConsumeBreak(); err != nil {
						return ClaimValue{}, err
					}
					break
				}
				k, err := d.ReadInt()
				if err != nil {
					return ClaimValue{}, err
				}
				v, err := decodeValue(d)
				if err != nil {
					return ClaimValue{}, err
				}
				m[k] = v
			}
		} else {
			for i := int64(0); i < n; i++ {
				k, err := d.ReadInt()
				if err != nil {
					return ClaimValue{}, err
				}
				v, err := decodeValue(d)
				if err != nil {
					return ClaimValue{}, err
				}
				m[k] = v
			}
		}
		return Map(m), nil
	default:
		return ClaimValue{}, caterr.New(caterr.KindCodec, caterr.CodeUnexpectedMajorType)
	}
}

func sortedInt64Keys(m map[int64]ClaimValue) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// simple insertion sort is fine: match-maps and header maps are tiny
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
