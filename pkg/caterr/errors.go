// Package caterr defines the typed error taxonomy shared by every layer of
// the CAT codec: codec, envelope, claim-schema, authorization, key
// management, and input errors. Modeled on dc4eu-vc's pkg/helpers.Error
// (Title + Err), adapted to the CAT error kinds instead of document
// validation errors.
package caterr

import "fmt"

// Kind buckets an Error into one of the taxonomy groups used across the
// token codec, envelope, claim-schema, authorization, key-management, and
// input-validation layers.
type Kind string

// Error kinds.
const (
	KindCodec         Kind = "codec"
	KindEnvelope      Kind = "envelope"
	KindClaimSchema   Kind = "claim_schema"
	KindAuthorization Kind = "authorization"
	KindKeyManagement Kind = "key_management"
	KindInput         Kind = "input"
)

// Well-known error codes. Callers should match on Code, not on Error().
const (
	CodeEndOfBuffer             = "EndOfBuffer"
	CodeUnexpectedMajorType     = "UnexpectedMajorType"
	CodeIntegerOutOfRange       = "CborValueOutOfRange"
	CodeNegativeValueInUnsigned = "NegativeValueInUnsignedType"
	CodeUnsupportedAdditional   = "UnsupportedAdditionalInfo"
	CodeInvalidIndefiniteChunk  = "InvalidIndefiniteChunk"
	CodeMismatchedNesting       = "MismatchedNesting"
	CodeUnexpectedBreak         = "UnexpectedBreak"

	CodeExpectedCwtTag    = "ExpectedCwtTag"
	CodeExpectedMac0Tag   = "ExpectedCoseMac0Tag"
	CodeMalformedEnvelope = "MalformedEnvelope"
	CodeTagMismatch       = "TagMismatch"
	CodeMalformedHeader   = "MalformedHeader"

	CodeMissingClaim               = "MissingRequiredClaim"
	CodeWrongClaimVariant          = "WrongClaimVariant"
	CodeInvalidCatReplayValue      = "InvalidCatReplayValue"
	CodeInvalidTlsFingerprintClaim = "InvalidTlsFingerprintClaim"

	CodeTokenExpired           = "TokenExpired"
	CodeTokenNotYetActive      = "TokenNotYetActive"
	CodeInvalidIssuer          = "InvalidIssuer"
	CodeInvalidAudience        = "InvalidAudience"
	CodeUriComponentRuleFailed = "UriComponentRuleFailed"
	CodeInvalidMethodClaim     = "InvalidMethodClaim"
	CodeTokenReplayProhibited  = "TokenReplayProhibited"

	CodeKeyIDNotFound = "KeyIdNotFound"

	CodeInvalidBase64   = "InvalidBase64"
	CodeInvalidHex      = "InvalidHex"
	CodeInvalidArgument = "InvalidArgument"
)

// Error is the typed error value returned by the exported functions of this
// module; catlog.New is the exception and returns the logging backend's
// errors unwrapped. It never carries key material or raw token bytes in its
// message.
type Error struct {
	Kind  Kind
	Code  string
	cause error
}

// New creates an Error of the given kind/code with no wrapped cause.
func New(kind Kind, code string) *Error {
	return &Error{Kind: kind, Code: code}
}

// Wrap creates an Error of the given kind/code wrapping cause.
func Wrap(kind Kind, code string, cause error) *Error {
	return &Error{Kind: kind, Code: code, cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Code, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Code)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is reports whether target is a *Error with the same Kind and Code,
// allowing errors.Is(err, caterr.New(KindCodec, CodeEndOfBuffer)) checks.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}
