package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyevinn/common-access-token-go/pkg/claims"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func issuedClaims(issuer string, exp int64) *claims.Claims {
	c := claims.New()
	c.SetIssuer(issuer)
	c.SetIssuedAt(1000000000)
	c.SetExpiration(exp)
	return c
}

func TestIssueVerifyHappyPath(t *testing.T) {
	c := issuedClaims("issuer.example", 2000000000)

	tok, err := Issue(c, testKey, IssueOptions{KeyID: "key-1", WithCWTTag: true})
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := Verify(tok, testKey, VerifyOptions{ExpectCWTTag: true})
	require.NoError(t, err)

	iss, ok := got.Issuer()
	require.True(t, ok)
	assert.Equal(t, "issuer.example", iss)
}

func TestIssueVerifyWithoutCWTTag(t *testing.T) {
	c := issuedClaims("issuer.example", 2000000000)

	tok, err := Issue(c, testKey, IssueOptions{WithCWTTag: false})
	require.NoError(t, err)

	_, err = Verify(tok, testKey, VerifyOptions{ExpectCWTTag: false})
	require.NoError(t, err)
}

func TestVerifyFailsOnTagTamper(t *testing.T) {
	c := issuedClaims("issuer.example", 2000000000)

	tok, err := Issue(c, testKey, IssueOptions{WithCWTTag: true})
	require.NoError(t, err)

	// Flip the last base64url character; decodes to different bytes,
	// which should break either the base64 decode or the HMAC check.
	tampered := []byte(tok)
	last := tampered[len(tampered)-1]
	if last == 'A' {
		tampered[len(tampered)-1] = 'B'
	} else {
		tampered[len(tampered)-1] = 'A'
	}

	_, err = Verify(string(tampered), testKey, VerifyOptions{ExpectCWTTag: true})
	assert.Error(t, err)
}

func TestVerifyFailsOnWrongKey(t *testing.T) {
	c := issuedClaims("issuer.example", 2000000000)

	tok, err := Issue(c, testKey, IssueOptions{WithCWTTag: true})
	require.NoError(t, err)

	wrongKey := []byte("ffffffffffffffffffffffffffffffff")
	_, err = Verify(tok, wrongKey, VerifyOptions{ExpectCWTTag: true})
	assert.Error(t, err)
}

func TestVerifyFailsWhenCWTTagExpectedButAbsent(t *testing.T) {
	c := issuedClaims("issuer.example", 2000000000)

	tok, err := Issue(c, testKey, IssueOptions{WithCWTTag: false})
	require.NoError(t, err)

	_, err = Verify(tok, testKey, VerifyOptions{ExpectCWTTag: true})
	assert.Error(t, err)
}

func TestIssueGeneratesCWTIDWhenRequested(t *testing.T) {
	c := issuedClaims("issuer.example", 2000000000)

	tok, err := Issue(c, testKey, IssueOptions{WithCWTTag: true, GenerateCWTID: true})
	require.NoError(t, err)

	got, err := Verify(tok, testKey, VerifyOptions{ExpectCWTTag: true})
	require.NoError(t, err)

	cti, ok := got.CWTID()
	require.True(t, ok)
	assert.NotEmpty(t, cti)
}

func TestIssueDoesNotOverwriteExistingCWTID(t *testing.T) {
	c := issuedClaims("issuer.example", 2000000000)
	c.SetCWTID([]byte("fixed-id"))

	tok, err := Issue(c, testKey, IssueOptions{WithCWTTag: true, GenerateCWTID: true})
	require.NoError(t, err)

	got, err := Verify(tok, testKey, VerifyOptions{ExpectCWTTag: true})
	require.NoError(t, err)

	cti, ok := got.CWTID()
	require.True(t, ok)
	assert.Equal(t, []byte("fixed-id"), cti)
}
