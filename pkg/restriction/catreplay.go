package restriction

import (
	"github.com/eyevinn/common-access-token-go/pkg/caterr"
	"github.com/eyevinn/common-access-token-go/pkg/claims"
)

// CheckCatReplay validates the catreplay claim against the caller-supplied
// seenBefore flag (whether the verifier's replay cache has already observed
// this token's identity). Mode 0 (permitted) never fails. Mode 1
// (prohibited) fails if seenBefore. Mode 2 (reuse-detection) always passes
// here; the caller is responsible for recording the token's cti and acting
// on subsequent uses.
func CheckCatReplay(catreplay claims.ClaimValue, seenBefore bool) error {
	mode, ok := catreplay.AsInt()
	if !ok {
		return caterr.New(caterr.KindClaimSchema, caterr.CodeWrongClaimVariant)
	}

	switch mode {
	case claims.ReplayPermitted:
		return nil
	case claims.ReplayReuseDetection:
		return nil
	case claims.ReplayProhibited:
		if seenBefore {
			return caterr.New(caterr.KindAuthorization, caterr.CodeTokenReplayProhibited)
		}
		return nil
	default:
		return caterr.New(caterr.KindClaimSchema, caterr.CodeInvalidCatReplayValue)
	}
}
