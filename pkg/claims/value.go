// Package claims implements the CAT claims model: a tagged-sum ClaimValue
// type and the Claims map that carries both standard CWT claims and the
// CAT-specific restriction claims, with deep cloning and CBOR round-trip.
package claims

// Kind discriminates the variant held by a ClaimValue. Modeled as an
// explicit tagged sum rather than an interface hierarchy so that
// constructors and switch-based consumers stay exhaustive.
type Kind int

const (
	KindInteger Kind = iota
	KindTextString
	KindByteString
	KindArray
	KindMap
)

// ClaimValue is a tagged sum over {Integer, TextString, ByteString, Array,
// Map}. It owns its string/byte buffers and the items of its containers;
// Clone performs a full deep copy.
type ClaimValue struct {
	kind  Kind
	i     int64
	s     string
	b     []byte
	array []ClaimValue
	m     map[int64]ClaimValue
}

// Int wraps a signed 64-bit integer claim value.
func Int(i int64) ClaimValue { return ClaimValue{kind: KindInteger, i: i} }

// Text wraps a UTF-8 text string claim value.
func Text(s string) ClaimValue { return ClaimValue{kind: KindTextString, s: s} }

// Bytes wraps a byte-string claim value. The supplied slice is copied so
// the ClaimValue owns its buffer independently of the caller's slice.
func Bytes(b []byte) ClaimValue {
	cp := make([]byte, len(b))
	copy(cp, b)
	return ClaimValue{kind: KindByteString, b: cp}
}

// Array wraps an ordered sequence of ClaimValues. The slice is copied
// shallowly; each element is itself already-owned by the caller's call to
// a constructor, so a shallow copy of the header plus per-element Clone is
// sufficient to give the result independent ownership.
func Array(items ...ClaimValue) ClaimValue {
	cp := make([]ClaimValue, len(items))
	for i, it := range items {
		cp[i] = it.Clone()
	}
	return ClaimValue{kind: KindArray, array: cp}
}

// Map wraps a mapping from integer key to ClaimValue. Keys are modeled as
// signed 64-bit integers so both the unsigned claim-label keyspace and
// the CATU match-map's negative reserved codes (-1 SHA-256, -2
// SHA-512/256) round-trip through the same container kind. Maps are
// unordered for equality purposes but the claims CBOR encoder emits a
// stable (sorted) order; see cbor.go.
func Map(entries map[int64]ClaimValue) ClaimValue {
	cp := make(map[int64]ClaimValue, len(entries))
	for k, v := range entries {
		cp[k] = v.Clone()
	}
	return ClaimValue{kind: KindMap, m: cp}
}

// Kind reports the variant held by v.
func (v ClaimValue) Kind() Kind { return v.kind }

// AsInt returns the held integer and true, or (0, false) if v is not an
// Integer.
func (v ClaimValue) AsInt() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.i, true
}

// AsText returns the held text string and true, or ("", false) if v is not
// a TextString.
func (v ClaimValue) AsText() (string, bool) {
	if v.kind != KindTextString {
		return "", false
	}
	return v.s, true
}

// AsBytes returns the held byte string and true, or (nil, false) if v is
// not a ByteString. The returned slice aliases v's internal buffer; callers
// that intend to mutate it should copy first.
func (v ClaimValue) AsBytes() ([]byte, bool) {
	if v.kind != KindByteString {
		return nil, false
	}
	return v.b, true
}

// AsArray returns the held item sequence and true, or (nil, false) if v is
// not an Array.
func (v ClaimValue) AsArray() ([]ClaimValue, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.array, true
}

// AsMap returns the held key→value mapping and true, or (nil, false) if
// v is not a Map.
func (v ClaimValue) AsMap() (map[int64]ClaimValue, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// Clone performs a deep copy of v and everything it owns.
func (v ClaimValue) Clone() ClaimValue {
	switch v.kind {
	case KindByteString:
		return Bytes(v.b)
	case KindArray:
		items := make([]ClaimValue, len(v.array))
		for i, it := range v.array {
			items[i] = it.Clone()
		}
		return ClaimValue{kind: KindArray, array: items}
	case KindMap:
		m := make(map[int64]ClaimValue, len(v.m))
		for k, val := range v.m {
			m[k] = val.Clone()
		}
		return ClaimValue{kind: KindMap, m: m}
	default:
		return v
	}
}

// Equal reports deep structural equality between v and other.
func (v ClaimValue) Equal(other ClaimValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.i == other.i
	case KindTextString:
		return v.s == other.s
	case KindByteString:
		return string(v.b) == string(other.b)
	case KindArray:
		if len(v.array) != len(other.array) {
			return false
		}
		for i := range v.array {
			if !v.array[i].Equal(other.array[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for k, val := range v.m {
			ov, ok := other.m[k]
			if !ok || !val.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
