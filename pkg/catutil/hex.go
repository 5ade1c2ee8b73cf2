package catutil

import (
	"encoding/hex"

	"github.com/eyevinn/common-access-token-go/pkg/caterr"
)

// EncodeHex returns the lowercase hex encoding of b.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex parses a hex string case-insensitively.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, caterr.Wrap(caterr.KindInput, caterr.CodeInvalidHex, err)
	}
	return b, nil
}
