package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCBORFromCBORRoundTrip(t *testing.T) {
	c := New()
	c.SetIssuer("issuer.example")
	c.SetAudience("aud.example")
	c.SetExpiration(2000000000)
	c.SetNotBefore(1000000000)
	c.SetIssuedAt(1000000000)
	c.SetCWTID([]byte{0xde, 0xad, 0xbe, 0xef})
	c.SetCatM([]string{"GET", "HEAD"})
	require.NoError(t, c.SetCatReplay(ReplayProhibited))
	require.NoError(t, c.SetCatU(map[uint64]map[int64]string{
		ComponentHost: {MatchSuffix: ".example.com"},
		ComponentPath: {MatchPrefix: "/v1/"},
	}))

	encoded := c.ToCBOR()

	decoded, err := FromCBOR(encoded)
	require.NoError(t, err)

	iss, ok := decoded.Issuer()
	require.True(t, ok)
	assert.Equal(t, "issuer.example", iss)

	cti, ok := decoded.CWTID()
	require.True(t, ok)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, cti)

	catmVal, ok := decoded.Get(LabelCatM)
	require.True(t, ok)
	methods, ok := catmVal.AsArray()
	require.True(t, ok)
	require.Len(t, methods, 2)
	m0, _ := methods[0].AsText()
	assert.Equal(t, "GET", m0)

	catuVal, ok := decoded.Get(LabelCatU)
	require.True(t, ok)
	components, ok := catuVal.AsMap()
	require.True(t, ok)
	hostRules, ok := components[int64(ComponentHost)].AsMap()
	require.True(t, ok)
	pattern, ok := hostRules[MatchSuffix].AsText()
	require.True(t, ok)
	assert.Equal(t, ".example.com", pattern)
}

func TestFromCBORRecursesNestedArraysAndMaps(t *testing.T) {
	inner := Array(Int(1), Map(map[int64]ClaimValue{1: Text("nested")}))
	outer := Array(inner, Int(2))

	c := New()
	c.set(LabelCatH, outer)
	encoded := c.ToCBOR()

	decoded, err := FromCBOR(encoded)
	require.NoError(t, err)

	v, ok := decoded.Get(LabelCatH)
	require.True(t, ok)
	items, ok := v.AsArray()
	require.True(t, ok)
	require.Len(t, items, 2)

	nestedArray, ok := items[0].AsArray()
	require.True(t, ok)
	require.Len(t, nestedArray, 2)

	nestedMap, ok := nestedArray[1].AsMap()
	require.True(t, ok)
	text, ok := nestedMap[1].AsText()
	require.True(t, ok)
	assert.Equal(t, "nested", text)
}

func TestFromCBORRejectsNonIntegerLabel(t *testing.T) {
	// A map whose key is a text string, not a label, must fail to parse.
	raw := []byte{
		0xa1,       // map(1)
		0x61, 'x',  // text(1) "x"
		0x01, // 1
	}
	_, err := FromCBOR(raw)
	assert.Error(t, err)
}
