package restriction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyevinn/common-access-token-go/pkg/claims"
)

func TestCheckCatReplayProhibitedScenario(t *testing.T) {
	c := claims.New()
	require.NoError(t, c.SetCatReplay(claims.ReplayProhibited))
	catreplay, ok := c.Get(claims.LabelCatReplay)
	require.True(t, ok)

	assert.Error(t, CheckCatReplay(catreplay, true))
	assert.NoError(t, CheckCatReplay(catreplay, false))
}

func TestCheckCatReplayPermittedAlwaysPasses(t *testing.T) {
	c := claims.New()
	require.NoError(t, c.SetCatReplay(claims.ReplayPermitted))
	catreplay, ok := c.Get(claims.LabelCatReplay)
	require.True(t, ok)

	assert.NoError(t, CheckCatReplay(catreplay, true))
	assert.NoError(t, CheckCatReplay(catreplay, false))
}

func TestCheckCatReplayReuseDetectionAlwaysPasses(t *testing.T) {
	c := claims.New()
	require.NoError(t, c.SetCatReplay(claims.ReplayReuseDetection))
	catreplay, ok := c.Get(claims.LabelCatReplay)
	require.True(t, ok)

	assert.NoError(t, CheckCatReplay(catreplay, true))
	assert.NoError(t, CheckCatReplay(catreplay, false))
}
