// Package restriction implements the claims validator: URI-component
// matching (CATU), HTTP method allow-listing (CATM), replay-protection mode
// (CATREPLAY), TLS fingerprint pinning (CATTPRINT), and the standard
// issuer/audience/time checks, run in a fixed order after cryptographic
// verification has already succeeded.
package restriction

import (
	"github.com/eyevinn/common-access-token-go/pkg/caterr"
	"github.com/eyevinn/common-access-token-go/pkg/catutil"
	"github.com/eyevinn/common-access-token-go/pkg/claims"
)

// Request carries the context a restriction pass checks the token's claims
// against. Zero-value fields (empty URI/Method, TprintSupplied false) mean "the
// caller did not supply this dimension", and the corresponding restriction
// claim — if the token declares one — is skipped rather than evaluated
// against an empty value.
type Request struct {
	// Now is the instant to check exp/nbf against. Callers normally pass
	// catutil.NowSeconds(); it is a parameter so tests can pin a fixed
	// clock.
	Now int64

	// Issuer, if non-empty, must equal the token's iss claim.
	Issuer string

	// Audience, if non-empty, must equal the token's aud claim.
	Audience string

	// URI, if non-empty, is matched against a catu claim.
	URI string

	// Method, if non-empty, is matched against a catm claim.
	Method string

	// SeenBefore reports whether the verifier's replay cache has already
	// observed this token's identity, consulted only if the token
	// declares a catreplay claim.
	SeenBefore bool

	// TprintSupplied, TprintType, TprintValue describe a TLS client
	// fingerprint observed out-of-band (e.g. from the TLS terminator),
	// consulted only if the token declares a cattprint claim.
	TprintSupplied bool
	TprintType     claims.FingerprintType
	TprintValue    string
}

// Validate runs the restriction pass against c, in order: (a) issuer
// (a token with no iss claim is always rejected; when req.Issuer is
// non-empty, an iss claim not equal to it is rejected too; when req.Issuer
// is empty, any iss value passes), (b) expiration against req.Now, (c)
// audience equality if req.Audience is supplied, (d) not-before against
// req.Now, (e) CATU if req.URI is supplied, (f) CATM if req.Method is
// supplied, (g) CATREPLAY using req.SeenBefore, (h) CATTPRINT if
// req.TprintSupplied. Restriction claims present on the token that this
// pass does not understand are not rejected here; the standard-claim and
// CAT-specific checks above are the complete fail-closed set this
// implementation enforces.
func Validate(c *claims.Claims, req Request) error {
	iss, ok := c.Issuer()
	if !ok || (req.Issuer != "" && iss != req.Issuer) {
		return caterr.New(caterr.KindAuthorization, caterr.CodeInvalidIssuer)
	}

	if exp, ok := c.Expiration(); ok {
		if req.Now >= exp {
			return caterr.New(caterr.KindAuthorization, caterr.CodeTokenExpired)
		}
	}

	if req.Audience != "" {
		aud, ok := c.Audience()
		if !ok || aud != req.Audience {
			return caterr.New(caterr.KindAuthorization, caterr.CodeInvalidAudience)
		}
	}

	if nbf, ok := c.NotBefore(); ok {
		if req.Now < nbf {
			return caterr.New(caterr.KindAuthorization, caterr.CodeTokenNotYetActive)
		}
	}

	if req.URI != "" {
		if catu, ok := c.Get(claims.LabelCatU); ok {
			if err := CheckCatU(catu, req.URI); err != nil {
				return err
			}
		}
	}

	if req.Method != "" {
		if catm, ok := c.Get(claims.LabelCatM); ok {
			if err := CheckCatM(catm, req.Method); err != nil {
				return err
			}
		}
	}

	if catreplay, ok := c.Get(claims.LabelCatReplay); ok {
		if err := CheckCatReplay(catreplay, req.SeenBefore); err != nil {
			return err
		}
	}

	if req.TprintSupplied {
		if cattprint, ok := c.Get(claims.LabelCatTprint); ok {
			if err := CheckCatTprint(cattprint, req.TprintType, req.TprintValue); err != nil {
				return err
			}
		}
	}

	return nil
}

// NewRequest returns a Request pre-populated with the current time, the
// common starting point for a caller building up restriction context.
func NewRequest() Request {
	return Request{Now: catutil.NowSeconds()}
}
