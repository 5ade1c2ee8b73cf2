// Package catutil collects the small leaf utilities shared across the CAT
// codec: URL-safe base64 without padding, lowercase hex, current-time
// access, and CSPRNG-backed random hex generation.
package catutil

import (
	"encoding/base64"

	"github.com/eyevinn/common-access-token-go/pkg/caterr"
)

// EncodeBase64URL encodes b using the URL-safe alphabet without padding.
func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeBase64URL decodes s from the URL-safe alphabet without padding.
func DecodeBase64URL(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, caterr.Wrap(caterr.KindInput, caterr.CodeInvalidBase64, err)
	}
	return b, nil
}
