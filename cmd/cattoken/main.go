// Command cattoken issues and verifies Common Access Tokens against a
// key-store YAML file, as a minimal demonstration of the token pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eyevinn/common-access-token-go/pkg/catlog"
	"github.com/eyevinn/common-access-token-go/pkg/catutil"
	"github.com/eyevinn/common-access-token-go/pkg/claims"
	"github.com/eyevinn/common-access-token-go/pkg/config"
	"github.com/eyevinn/common-access-token-go/pkg/restriction"
	"github.com/eyevinn/common-access-token-go/pkg/token"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "issue":
		runIssue(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cattoken issue|verify [flags]")
}

func runIssue(args []string) {
	fs := flag.NewFlagSet("issue", flag.ExitOnError)
	kid := fs.String("kid", "", "key id to sign with (looked up in the key store)")
	issuer := fs.String("iss", "", "issuer claim")
	audience := fs.String("aud", "", "audience claim")
	ttl := fs.Int64("ttl", 3600, "seconds until expiration, relative to now")
	withCWT := fs.Bool("cwt-tag", true, "wrap the envelope in the CWT/COSE_Mac0 tag pair")
	fs.Parse(args)

	log, err := catlog.New("cattoken", "", false)
	if err != nil {
		log2Fatal(err)
	}

	ks, err := config.Load(context.Background())
	if err != nil {
		log.Info("failed to load key store", "error", err.Error())
		os.Exit(1)
	}
	key, err := ks.Key(*kid)
	if err != nil {
		log.Info("unknown key id", "kid", *kid, "error", err.Error())
		os.Exit(1)
	}

	now := catutil.NowSeconds()
	c := claims.New()
	if *issuer != "" {
		c.SetIssuer(*issuer)
	}
	if *audience != "" {
		c.SetAudience(*audience)
	}
	c.SetIssuedAt(now)
	c.SetExpiration(now + *ttl)

	out, err := token.Issue(c, key, token.IssueOptions{
		KeyID:         *kid,
		WithCWTTag:    *withCWT,
		GenerateCWTID: true,
		Log:           log,
	})
	if err != nil {
		log.Info("issue failed", "error", err.Error())
		os.Exit(1)
	}

	fmt.Println(out)
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	kid := fs.String("kid", "", "key id the token was signed with")
	issuer := fs.String("iss", "", "required issuer")
	audience := fs.String("aud", "", "required audience, if any")
	uri := fs.String("uri", "", "request URI to match against catu, if any")
	method := fs.String("method", "", "request method to match against catm, if any")
	withCWT := fs.Bool("cwt-tag", true, "expect the CWT/COSE_Mac0 tag pair")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: cattoken verify [flags] <token>")
		os.Exit(2)
	}
	tokenStr := fs.Arg(0)

	log, err := catlog.New("cattoken", "", false)
	if err != nil {
		log2Fatal(err)
	}

	ks, err := config.Load(context.Background())
	if err != nil {
		log.Info("failed to load key store", "error", err.Error())
		os.Exit(1)
	}
	key, err := ks.Key(*kid)
	if err != nil {
		log.Info("unknown key id", "kid", *kid, "error", err.Error())
		os.Exit(1)
	}

	c, err := token.Verify(tokenStr, key, token.VerifyOptions{
		ExpectCWTTag: *withCWT,
		Log:          log,
	})
	if err != nil {
		fmt.Println("INVALID:", err)
		os.Exit(1)
	}

	req := restriction.NewRequest()
	req.Issuer = *issuer
	req.Audience = *audience
	req.URI = *uri
	req.Method = *method

	if err := restriction.Validate(c, req); err != nil {
		fmt.Println("REJECTED:", err)
		os.Exit(1)
	}

	fmt.Println("VALID")
}

func log2Fatal(err error) {
	log.Fatalf("failed to initialize logger: %v", err)
}
