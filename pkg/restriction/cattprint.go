package restriction

import (
	"strings"

	"github.com/eyevinn/common-access-token-go/pkg/caterr"
	"github.com/eyevinn/common-access-token-go/pkg/claims"
)

// CheckCatTprint validates the cattprint claim against a caller-supplied TLS
// client fingerprint type and value. The fingerprint value is compared
// case-insensitively, since hex-encoded fingerprints are conventionally
// lowercase but some TLS stacks emit uppercase.
func CheckCatTprint(cattprint claims.ClaimValue, gotType claims.FingerprintType, gotValue string) error {
	m, ok := cattprint.AsMap()
	if !ok {
		return caterr.New(caterr.KindClaimSchema, caterr.CodeWrongClaimVariant)
	}

	typeVal, ok := m[int64(claims.TprintFieldType)]
	if !ok {
		return caterr.New(caterr.KindClaimSchema, caterr.CodeInvalidTlsFingerprintClaim)
	}
	wantType, ok := typeVal.AsInt()
	if !ok {
		return caterr.New(caterr.KindClaimSchema, caterr.CodeInvalidTlsFingerprintClaim)
	}

	valueVal, ok := m[int64(claims.TprintFieldValue)]
	if !ok {
		return caterr.New(caterr.KindClaimSchema, caterr.CodeInvalidTlsFingerprintClaim)
	}
	wantValue, ok := valueVal.AsText()
	if !ok {
		return caterr.New(caterr.KindClaimSchema, caterr.CodeInvalidTlsFingerprintClaim)
	}

	if claims.FingerprintType(wantType) != gotType || !strings.EqualFold(wantValue, gotValue) {
		return caterr.New(caterr.KindAuthorization, caterr.CodeInvalidTlsFingerprintClaim)
	}

	return nil
}
