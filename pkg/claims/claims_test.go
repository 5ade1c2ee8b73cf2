package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimValueAccessors(t *testing.T) {
	iv := Int(-5)
	i, ok := iv.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(-5), i)
	_, ok = iv.AsText()
	assert.False(t, ok)

	tv := Text("hello")
	s, ok := tv.AsText()
	require.True(t, ok)
	assert.Equal(t, "hello", s)

	bv := Bytes([]byte{1, 2, 3})
	b, ok := bv.AsBytes()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, b)
}

func TestClaimValueCloneIsIndependent(t *testing.T) {
	orig := Bytes([]byte{1, 2, 3})
	clone := orig.Clone()
	b, _ := orig.AsBytes()
	b[0] = 99

	cb, _ := clone.AsBytes()
	assert.Equal(t, byte(1), cb[0])
}

func TestClaimValueEqual(t *testing.T) {
	a := Map(map[int64]ClaimValue{
		1: Text("x"),
		-1: Int(5),
	})
	b := Map(map[int64]ClaimValue{
		1: Text("x"),
		-1: Int(5),
	})
	assert.True(t, a.Equal(b))

	c := Map(map[int64]ClaimValue{1: Text("y")})
	assert.False(t, a.Equal(c))
}

func TestClaimsStandardSetGet(t *testing.T) {
	c := New()
	c.SetIssuer("issuer.example")
	c.SetAudience("aud.example")
	c.SetExpiration(1000)
	c.SetNotBefore(500)
	c.SetCWTID([]byte("abc123"))

	iss, ok := c.Issuer()
	require.True(t, ok)
	assert.Equal(t, "issuer.example", iss)

	aud, ok := c.Audience()
	require.True(t, ok)
	assert.Equal(t, "aud.example", aud)

	exp, ok := c.Expiration()
	require.True(t, ok)
	assert.EqualValues(t, 1000, exp)

	nbf, ok := c.NotBefore()
	require.True(t, ok)
	assert.EqualValues(t, 500, nbf)

	cti, ok := c.CWTID()
	require.True(t, ok)
	assert.Equal(t, []byte("abc123"), cti)
}

func TestClaimsSetCatReplayRejectsInvalidMode(t *testing.T) {
	c := New()
	err := c.SetCatReplay(99)
	assert.Error(t, err)
}

func TestClaimsSetCatUNegativeMatchTypeCodes(t *testing.T) {
	c := New()
	err := c.SetCatU(map[uint64]map[int64]string{
		ComponentHost: {
			MatchSuffix: ".example.com",
			MatchSHA256: "deadbeef",
		},
	})
	require.NoError(t, err)

	v, ok := c.Get(LabelCatU)
	require.True(t, ok)
	components, ok := v.AsMap()
	require.True(t, ok)
	hostRules, ok := components[int64(ComponentHost)].AsMap()
	require.True(t, ok)
	pattern, ok := hostRules[MatchSuffix].AsText()
	require.True(t, ok)
	assert.Equal(t, ".example.com", pattern)

	reserved, ok := hostRules[MatchSHA256].AsText()
	require.True(t, ok)
	assert.Equal(t, "deadbeef", reserved)
}

func TestClaimsAllReturnsSortedLabels(t *testing.T) {
	c := New()
	c.SetCWTID([]byte("x"))
	c.SetIssuer("a")
	c.SetAudience("b")

	all := c.All()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1], all[i])
	}
}

func TestClaimsCloneIsIndependent(t *testing.T) {
	c := New()
	c.SetIssuer("original")
	clone := c.Clone()
	c.SetIssuer("mutated")

	iss, _ := clone.Issuer()
	assert.Equal(t, "original", iss)
}
