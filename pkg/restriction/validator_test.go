package restriction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyevinn/common-access-token-go/pkg/claims"
)

func happyPathClaims() *claims.Claims {
	c := claims.New()
	c.SetIssuer("eyevinn")
	c.SetSubject("jane")
	c.SetAudience("svc")
	c.SetIssuedAt(1_700_000_000)
	c.SetExpiration(1_700_000_120)
	return c
}

func TestValidateHappyPath(t *testing.T) {
	c := happyPathClaims()

	err := Validate(c, Request{
		Now:      1_700_000_050,
		Issuer:   "eyevinn",
		Audience: "svc",
	})
	require.NoError(t, err)
}

func TestValidateExpired(t *testing.T) {
	c := claims.New()
	c.SetIssuer("eyevinn")
	c.SetExpiration(1_700_000_000)

	err := Validate(c, Request{
		Now:    1_700_000_100,
		Issuer: "eyevinn",
	})
	require.Error(t, err)
}

func TestValidateWrongIssuer(t *testing.T) {
	c := happyPathClaims()

	err := Validate(c, Request{
		Now:    1_700_000_050,
		Issuer: "attacker",
	})
	require.Error(t, err)
}

func TestValidateMissingIssuerFailsClosed(t *testing.T) {
	c := claims.New()
	c.SetExpiration(2_000_000_000)

	err := Validate(c, Request{Now: 1_700_000_000, Issuer: "eyevinn"})
	require.Error(t, err)
}

func TestValidateNotBefore(t *testing.T) {
	c := claims.New()
	c.SetIssuer("eyevinn")
	c.SetNotBefore(1_700_000_100)
	c.SetExpiration(2_000_000_000)

	err := Validate(c, Request{Now: 1_700_000_050, Issuer: "eyevinn"})
	require.Error(t, err)

	err = Validate(c, Request{Now: 1_700_000_200, Issuer: "eyevinn"})
	require.NoError(t, err)
}

func TestValidateRunsCatUAndCatMAndCatReplay(t *testing.T) {
	c := claims.New()
	c.SetIssuer("eyevinn")
	c.SetExpiration(2_000_000_000)
	c.SetCatM([]string{"GET"})
	require.NoError(t, c.SetCatU(map[uint64]map[int64]string{
		claims.ComponentHost: {claims.MatchSuffix: ".example.com"},
	}))
	require.NoError(t, c.SetCatReplay(claims.ReplayProhibited))

	err := Validate(c, Request{
		Now:        1_700_000_000,
		Issuer:     "eyevinn",
		URI:        "https://api.example.com/x",
		Method:     "GET",
		SeenBefore: false,
	})
	require.NoError(t, err)

	err = Validate(c, Request{
		Now:        1_700_000_000,
		Issuer:     "eyevinn",
		URI:        "https://api.example.com/x",
		Method:     "DELETE",
		SeenBefore: false,
	})
	assert.Error(t, err)

	err = Validate(c, Request{
		Now:        1_700_000_000,
		Issuer:     "eyevinn",
		URI:        "https://api.example.com/x",
		Method:     "GET",
		SeenBefore: true,
	})
	assert.Error(t, err)
}
