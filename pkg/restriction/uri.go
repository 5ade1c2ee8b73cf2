package restriction

import (
	"strconv"
	"strings"

	"github.com/eyevinn/common-access-token-go/pkg/caterr"
	"github.com/eyevinn/common-access-token-go/pkg/claims"
)

// URIComponents holds the pieces of an absolute URI that a CATU map can
// constrain, keyed the same way as the catu match-map component ids.
type URIComponents struct {
	Scheme     string
	Host       string
	Port       uint16
	HasPort    bool
	Path       string
	Query      string
	ParentPath string
	Filename   string
	Stem       string
	Extension  string
}

// ParseURI splits raw into scheme, authority (host/port), path, and query,
// then derives parent_path/filename/stem/extension from path, following the
// same component boundaries CATU's component-id keys name: scheme before
// "://", authority between "://" and the first of "/", "?", "#", host/port
// split on the first ":" in the authority, path running from the authority
// terminator through "?"/"#"/end, query between "?" and "#".
func ParseURI(raw string) (URIComponents, error) {
	var c URIComponents

	schemeIdx := strings.Index(raw, "://")
	if schemeIdx < 0 {
		return c, caterr.New(caterr.KindInput, caterr.CodeInvalidArgument)
	}
	c.Scheme = raw[:schemeIdx]
	rest := raw[schemeIdx+3:]

	authorityEnd := len(rest)
	for i, ch := range rest {
		if ch == '/' || ch == '?' || ch == '#' {
			authorityEnd = i
			break
		}
	}
	authority := rest[:authorityEnd]
	remainder := rest[authorityEnd:]

	if colon := strings.IndexByte(authority, ':'); colon >= 0 {
		c.Host = authority[:colon]
		portStr := authority[colon+1:]
		port, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return c, caterr.Wrap(caterr.KindInput, caterr.CodeInvalidArgument, err)
		}
		c.Port = uint16(port)
		c.HasPort = true
	} else {
		c.Host = authority
	}

	pathPart := remainder
	query := ""
	if hashIdx := strings.IndexByte(pathPart, '#'); hashIdx >= 0 {
		pathPart = pathPart[:hashIdx]
	}
	if qIdx := strings.IndexByte(pathPart, '?'); qIdx >= 0 {
		query = pathPart[qIdx+1:]
		pathPart = pathPart[:qIdx]
	}
	c.Path = pathPart
	c.Query = query

	if slash := strings.LastIndexByte(c.Path, '/'); slash >= 0 {
		c.ParentPath = c.Path[:slash+1]
		c.Filename = c.Path[slash+1:]
	} else {
		c.ParentPath = ""
		c.Filename = c.Path
	}

	c.Stem, c.Extension = splitStemExtension(c.Filename)

	return c, nil
}

// splitStemExtension splits name on its last ".", unless that dot is the
// first or last character of name, in which case the whole name is the stem
// and the extension is empty.
func splitStemExtension(name string) (stem, ext string) {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 || dot == len(name)-1 {
		return name, ""
	}
	return name[:dot], name[dot+1:]
}

// Component returns the string form of the URI component named by id, and
// whether id names a recognized component. Port is stringified as its
// decimal representation so numeric port values can be matched by CATU's
// text-pattern match rules.
func (c URIComponents) Component(id uint64) (string, bool) {
	switch id {
	case claims.ComponentScheme:
		return c.Scheme, true
	case claims.ComponentHost:
		return c.Host, true
	case claims.ComponentPort:
		if !c.HasPort {
			return "", true
		}
		return strconv.FormatUint(uint64(c.Port), 10), true
	case claims.ComponentPath:
		return c.Path, true
	case claims.ComponentQuery:
		return c.Query, true
	case claims.ComponentParentPath:
		return c.ParentPath, true
	case claims.ComponentFilename:
		return c.Filename, true
	case claims.ComponentStem:
		return c.Stem, true
	case claims.ComponentExtension:
		return c.Extension, true
	default:
		return "", false
	}
}
