// Package token implements the CAT issue/verify pipeline: Claims → CBOR
// payload → COSE_Mac0 → optional CWT/COSE_Mac0 tag wrapping → base64url,
// and the reverse on verify, with the HMAC tag checked before the payload
// is ever trusted.
package token

import (
	"github.com/eyevinn/common-access-token-go/pkg/caterr"
	"github.com/eyevinn/common-access-token-go/pkg/catlog"
	"github.com/eyevinn/common-access-token-go/pkg/catutil"
	"github.com/eyevinn/common-access-token-go/pkg/cbor"
	"github.com/eyevinn/common-access-token-go/pkg/claims"
	"github.com/eyevinn/common-access-token-go/pkg/cose"
)

// CBOR tag numbers used by the token envelope.
const (
	TagCWT      uint64 = 61
	TagCoseMac0 uint64 = 17
)

// IssueOptions controls how Issue wraps and mints a token.
type IssueOptions struct {
	// KeyID is stored in the COSE unprotected header (parameter 4).
	KeyID string
	// WithCWTTag requests the outer tag(61, tag(17, envelope)) wrapping;
	// otherwise the COSE_Mac0 envelope is emitted untagged.
	WithCWTTag bool
	// GenerateCWTID inserts a 16-random-byte cti claim (hex-encoded, per
	// the source convention) if the caller hasn't already set one.
	GenerateCWTID bool
	// Log, if non-nil, receives diagnostic tracing of the issue decision.
	Log *catlog.Log
}

// Issue serializes c to CBOR, wraps it in a COSE_Mac0 authenticated with
// key under HMAC-SHA-256, applies the requested tag wrapping, and returns
// the base64url-no-pad encoded token.
func Issue(c *claims.Claims, key []byte, opts IssueOptions) (string, error) {
	var log *catlog.Log
	if opts.Log != nil {
		log = opts.Log.WithCorrelationID("")
	}

	if opts.GenerateCWTID {
		if _, ok := c.CWTID(); !ok {
			ctiHex, err := catutil.RandomHex(16)
			if err != nil {
				return "", err
			}
			c.SetCWTID([]byte(ctiHex))
		}
	}

	payload := c.ToCBOR()

	mac0, err := cose.NewMac0(payload, key, opts.KeyID)
	if err != nil {
		return "", err
	}
	envelopeBytes, err := mac0.Encode()
	if err != nil {
		return "", err
	}

	var wire []byte
	if opts.WithCWTTag {
		e := cbor.NewEncoder()
		e.PushTag(TagCWT)
		e.PushTag(TagCoseMac0)
		e.PushRaw(envelopeBytes)
		wire = e.Finish()
	} else {
		wire = envelopeBytes
	}

	if log != nil {
		log.Debug("issued CAT", "withCwtTag", opts.WithCWTTag, "keyID", opts.KeyID)
	}

	return catutil.EncodeBase64URL(wire), nil
}

// VerifyOptions controls how Verify parses and cryptographically checks a
// token. It does not itself apply restriction-claim checks (issuer,
// audience, CATU, CATM, ...); that is the restriction validator's job, run
// only after Verify succeeds — see package restriction.
type VerifyOptions struct {
	// ExpectCWTTag requires the tag(61, tag(17, ...)) wrapping; if the
	// outer tag 61 is absent or wrong, verification fails with
	// ExpectedCwtTag, and if the inner tag 17 is absent or wrong, with
	// ExpectedCoseMac0Tag.
	ExpectCWTTag bool
	Log          *catlog.Log
}

// Verify base64url-decodes token, unwraps any expected CWT/COSE_Mac0 tags,
// parses the 4-element COSE_Mac0 array, and recomputes/compares the HMAC
// tag against key. On success it returns the parsed Claims; on any failure
// no Claims are returned, so a caller cannot accidentally trust
// unauthenticated data.
func Verify(tokenStr string, key []byte, opts VerifyOptions) (*claims.Claims, error) {
	var log *catlog.Log
	if opts.Log != nil {
		log = opts.Log.WithCorrelationID("")
	}

	wire, err := catutil.DecodeBase64URL(tokenStr)
	if err != nil {
		return nil, err
	}

	envelopeBytes := wire
	if opts.ExpectCWTTag {
		d := cbor.NewDecoder(wire)
		if err := d.ExpectTag(TagCWT); err != nil {
			return nil, caterr.New(caterr.KindEnvelope, caterr.CodeExpectedCwtTag)
		}
		if err := d.ExpectTag(TagCoseMac0); err != nil {
			return nil, caterr.New(caterr.KindEnvelope, caterr.CodeExpectedMac0Tag)
		}
		envelopeBytes = wire[d.Position():]
	}

	mac0, err := cose.Decode(envelopeBytes)
	if err != nil {
		return nil, err
	}

	if err := mac0.Verify(key); err != nil {
		if log != nil {
			log.Info("CAT verification failed", "reason", "tag_mismatch")
		}
		return nil, err
	}

	parsed, err := claims.FromCBOR(mac0.Payload)
	if err != nil {
		return nil, caterr.Wrap(caterr.KindClaimSchema, caterr.CodeWrongClaimVariant, err)
	}

	if log != nil {
		log.Debug("verified CAT signature", "withCwtTag", opts.ExpectCWTTag)
	}

	return parsed, nil
}
