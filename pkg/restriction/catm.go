package restriction

import (
	"strings"

	"github.com/eyevinn/common-access-token-go/pkg/caterr"
	"github.com/eyevinn/common-access-token-go/pkg/claims"
)

// CheckCatM validates method against the catm claim value, an array of
// allowed HTTP method names matched case-insensitively.
func CheckCatM(catm claims.ClaimValue, method string) error {
	allowed, ok := catm.AsArray()
	if !ok {
		return caterr.New(caterr.KindClaimSchema, caterr.CodeWrongClaimVariant)
	}

	for _, v := range allowed {
		name, ok := v.AsText()
		if !ok {
			continue
		}
		if strings.EqualFold(name, method) {
			return nil
		}
	}

	return caterr.New(caterr.KindAuthorization, caterr.CodeInvalidMethodClaim)
}
