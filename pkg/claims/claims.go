package claims

import (
	"sort"

	"github.com/eyevinn/common-access-token-go/pkg/caterr"
)

// Claims is a mapping from 64-bit unsigned label to ClaimValue. It is
// created empty, populated through typed setters, and becomes immutable
// once handed to the token pipeline (the pipeline only ever reads it).
type Claims struct {
	entries map[uint64]ClaimValue
}

// New returns an empty Claims map.
func New() *Claims {
	return &Claims{entries: make(map[uint64]ClaimValue)}
}

// Len returns the number of claims set.
func (c *Claims) Len() int { return len(c.entries) }

// Get returns the raw ClaimValue for label and whether it is present.
func (c *Claims) Get(label uint64) (ClaimValue, bool) {
	v, ok := c.entries[label]
	return v, ok
}

// set stores v under label without checking its variant; the typed setters
// that call it build the variant each label expects.
func (c *Claims) set(label uint64, v ClaimValue) {
	c.entries[label] = v
}

// SetIssuer sets the iss claim (text).
func (c *Claims) SetIssuer(iss string) { c.set(LabelIssuer, Text(iss)) }

// SetSubject sets the sub claim (text).
func (c *Claims) SetSubject(sub string) { c.set(LabelSubject, Text(sub)) }

// SetAudience sets the aud claim (text).
func (c *Claims) SetAudience(aud string) { c.set(LabelAudience, Text(aud)) }

// SetExpiration sets the exp claim (integer seconds since the epoch).
func (c *Claims) SetExpiration(exp int64) { c.set(LabelExpiration, Int(exp)) }

// SetNotBefore sets the nbf claim (integer seconds since the epoch).
func (c *Claims) SetNotBefore(nbf int64) { c.set(LabelNotBefore, Int(nbf)) }

// SetIssuedAt sets the iat claim (integer seconds since the epoch).
func (c *Claims) SetIssuedAt(iat int64) { c.set(LabelIssuedAt, Int(iat)) }

// SetCWTID sets the cti claim (bytes).
func (c *Claims) SetCWTID(cti []byte) { c.set(LabelCWTID, Bytes(cti)) }

// SetConfirmation sets the cnf claim (map).
func (c *Claims) SetConfirmation(cnf map[uint64]ClaimValue) {
	entries := make(map[int64]ClaimValue, len(cnf))
	for k, v := range cnf {
		entries[int64(k)] = v
	}
	c.set(LabelConfirmation, Map(entries))
}

// Issuer returns the iss claim, if present.
func (c *Claims) Issuer() (string, bool) {
	v, ok := c.Get(LabelIssuer)
	if !ok {
		return "", false
	}
	return v.AsText()
}

// Audience returns the aud claim, if present.
func (c *Claims) Audience() (string, bool) {
	v, ok := c.Get(LabelAudience)
	if !ok {
		return "", false
	}
	return v.AsText()
}

// Expiration returns the exp claim, if present.
func (c *Claims) Expiration() (int64, bool) {
	v, ok := c.Get(LabelExpiration)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

// NotBefore returns the nbf claim, if present.
func (c *Claims) NotBefore() (int64, bool) {
	v, ok := c.Get(LabelNotBefore)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

// CWTID returns the cti claim, if present.
func (c *Claims) CWTID() ([]byte, bool) {
	v, ok := c.Get(LabelCWTID)
	if !ok {
		return nil, false
	}
	return v.AsBytes()
}

// SetCatM sets the catm claim: an array of method name text strings.
func (c *Claims) SetCatM(methods []string) {
	items := make([]ClaimValue, len(methods))
	for i, m := range methods {
		items[i] = Text(m)
	}
	c.set(LabelCatM, Array(items...))
}

// SetCatReplay sets the catreplay claim. Returns a ClaimSchema error if
// mode is not one of {0,1,2}.
func (c *Claims) SetCatReplay(mode int64) error {
	if mode != ReplayPermitted && mode != ReplayProhibited && mode != ReplayReuseDetection {
		return caterr.New(caterr.KindClaimSchema, caterr.CodeInvalidCatReplayValue)
	}
	c.set(LabelCatReplay, Int(mode))
	return nil
}

// SetCatTprint sets the cattprint claim from a fingerprint type and value.
func (c *Claims) SetCatTprint(fpType FingerprintType, value string) {
	m := map[int64]ClaimValue{
		int64(TprintFieldType):  Int(int64(fpType)),
		int64(TprintFieldValue): Text(value),
	}
	c.set(LabelCatTprint, Map(m))
}

// SetCatU sets the catu claim: a map of component-id to match-map, each
// match-map a mapping from match-type code (may be negative for the
// reserved SHA-256/SHA-512-256 kinds) to pattern string.
func (c *Claims) SetCatU(components map[uint64]map[int64]string) error {
	out := make(map[int64]ClaimValue, len(components))
	for comp, matchMap := range components {
		if len(matchMap) == 0 {
			return caterr.New(caterr.KindClaimSchema, caterr.CodeWrongClaimVariant)
		}
		inner := make(map[int64]ClaimValue, len(matchMap))
		for matchType, pattern := range matchMap {
			inner[matchType] = Text(pattern)
		}
		out[int64(comp)] = Map(inner)
	}
	c.set(LabelCatU, Map(out))
	return nil
}

// All returns the claim labels in ascending order, the order the CBOR
// encoder emits them in for fixture stability (see package cbor's minimal
// integer-width encoding and the design note on map key ordering).
func (c *Claims) All() []uint64 {
	labels := make([]uint64, 0, len(c.entries))
	for l := range c.entries {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

// Clone returns a deep copy of c.
func (c *Claims) Clone() *Claims {
	out := New()
	for k, v := range c.entries {
		out.entries[k] = v.Clone()
	}
	return out
}
