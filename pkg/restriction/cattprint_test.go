package restriction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyevinn/common-access-token-go/pkg/claims"
)

func TestCheckCatTprintScenario(t *testing.T) {
	c := claims.New()
	c.SetCatTprint(claims.FingerprintJA4, "t13d1516h2_8daaf6152771_b186095e22b6")
	cattprint, ok := c.Get(claims.LabelCatTprint)
	require.True(t, ok)

	err := CheckCatTprint(cattprint, claims.FingerprintJA4, "T13D1516H2_8DAAF6152771_B186095E22B6")
	assert.NoError(t, err)

	err = CheckCatTprint(cattprint, claims.FingerprintJA3, "t13d1516h2_8daaf6152771_b186095e22b6")
	assert.Error(t, err)
}
