package catutil

import "time"

// NowSeconds returns the current time as integer seconds since the epoch,
// the unit CWT time claims (exp/nbf/iat) are expressed in.
func NowSeconds() int64 {
	return time.Now().Unix()
}
