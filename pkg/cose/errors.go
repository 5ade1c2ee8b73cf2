package cose

import "github.com/eyevinn/common-access-token-go/pkg/caterr"

var errUnsupportedHeaderValue = caterr.New(caterr.KindEnvelope, caterr.CodeMalformedHeader)
