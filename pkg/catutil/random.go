package catutil

import (
	"crypto/rand"

	"github.com/eyevinn/common-access-token-go/pkg/caterr"
)

// RandomHex returns n cryptographically-random bytes encoded as lowercase
// hex. This is the process-wide CSPRNG facility used to mint CWT IDs (cti);
// crypto/rand.Read is safe for concurrent use, so no additional
// synchronization is needed here.
func RandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", caterr.Wrap(caterr.KindInput, caterr.CodeInvalidArgument, err)
	}
	return EncodeHex(b), nil
}

// RandomBytes returns n cryptographically-random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, caterr.Wrap(caterr.KindInput, caterr.CodeInvalidArgument, err)
	}
	return b, nil
}
