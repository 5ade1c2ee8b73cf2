package restriction

import (
	"strings"

	"github.com/eyevinn/common-access-token-go/pkg/caterr"
	"github.com/eyevinn/common-access-token-go/pkg/claims"
)

// CheckCatU validates uri against the catu claim value: for every component
// the map declares, at least one of its match-rules must match the parsed
// component's string form; any declared component with no matching rule
// fails the whole claim. Regex, SHA-256, and SHA-512/256 match-type codes
// are reserved and inert — a component relying solely on one of those codes
// can never pass, which fails closed rather than silently admitting the
// request.
func CheckCatU(catu claims.ClaimValue, rawURI string) error {
	components, ok := catu.AsMap()
	if !ok {
		return caterr.New(caterr.KindClaimSchema, caterr.CodeWrongClaimVariant)
	}

	parsed, err := ParseURI(rawURI)
	if err != nil {
		return err
	}

	for compID, matchMap := range components {
		value, known := parsed.Component(uint64(compID))
		if !known {
			return caterr.New(caterr.KindAuthorization, caterr.CodeUriComponentRuleFailed)
		}

		rules, ok := matchMap.AsMap()
		if !ok || len(rules) == 0 {
			return caterr.New(caterr.KindAuthorization, caterr.CodeUriComponentRuleFailed)
		}

		if !anyRuleMatches(rules, value) {
			return caterr.New(caterr.KindAuthorization, caterr.CodeUriComponentRuleFailed)
		}
	}

	return nil
}

func anyRuleMatches(rules map[int64]claims.ClaimValue, value string) bool {
	for matchType, patternVal := range rules {
		pattern, ok := patternVal.AsText()
		if !ok {
			continue
		}
		switch matchType {
		case claims.MatchExact:
			if value == pattern {
				return true
			}
		case claims.MatchPrefix:
			if strings.HasPrefix(value, pattern) {
				return true
			}
		case claims.MatchSuffix:
			if strings.HasSuffix(value, pattern) {
				return true
			}
		case claims.MatchContains:
			if strings.Contains(value, pattern) {
				return true
			}
		case claims.MatchRegex, claims.MatchSHA256, claims.MatchSHA512_256:
			// reserved, declared but inert; never contributes a match.
		}
	}
	return false
}
