package claims

// Standard CWT claim labels (RFC 8392 §3.1).
const (
	LabelIssuer         uint64 = 1 // iss, text
	LabelSubject        uint64 = 2 // sub, text
	LabelAudience       uint64 = 3 // aud, text
	LabelExpiration     uint64 = 4 // exp, integer seconds
	LabelNotBefore      uint64 = 5 // nbf, integer seconds
	LabelIssuedAt       uint64 = 6 // iat, integer seconds
	LabelCWTID          uint64 = 7 // cti, bytes
	LabelConfirmation   uint64 = 8 // cnf, map
)

// CAT restriction claim labels.
const (
	LabelCatReplay      uint64 = 308
	LabelCatPor         uint64 = 309
	LabelCatV           uint64 = 310
	LabelCatNip         uint64 = 311
	LabelCatU           uint64 = 312
	LabelCatM           uint64 = 313
	LabelCatAlpn        uint64 = 314
	LabelCatH           uint64 = 315
	LabelCatGeoIso3166  uint64 = 316
	LabelCatGeoCoord    uint64 = 317
	LabelCatGeoAlt      uint64 = 318
	LabelCatTpk         uint64 = 319
	LabelCatIfData      uint64 = 320
	LabelCatDpop        uint64 = 321
	LabelCatIf          uint64 = 322
	LabelCatR           uint64 = 323
	LabelCatTprint      uint64 = 324
)

// CATU match-map match-type codes.
const (
	MatchExact    int64 = 0
	MatchPrefix   int64 = 1
	MatchSuffix   int64 = 2
	MatchContains int64 = 3
	MatchRegex    int64 = 4  // reserved, ignored
	MatchSHA256   int64 = -1 // reserved, ignored
	MatchSHA512_256 int64 = -2 // reserved, ignored
)

// CATU URI component keys.
const (
	ComponentScheme     uint64 = 0
	ComponentHost       uint64 = 1
	ComponentPort       uint64 = 2
	ComponentPath       uint64 = 3
	ComponentQuery      uint64 = 4
	ComponentParentPath uint64 = 5
	ComponentFilename   uint64 = 6
	ComponentStem       uint64 = 7
	ComponentExtension  uint64 = 8
)

// CATTPRINT subfield keys.
const (
	TprintFieldType  uint64 = 0
	TprintFieldValue uint64 = 1
)

// CATREPLAY modes.
const (
	ReplayPermitted      int64 = 0
	ReplayProhibited     int64 = 1
	ReplayReuseDetection int64 = 2
)

// FingerprintType enumerates the JA3/JA3S/JA4 family identifiers.
type FingerprintType int64

const (
	FingerprintJA3 FingerprintType = iota
	FingerprintJA3S
	FingerprintJA4
	FingerprintJA4S
	FingerprintJA4H
	FingerprintJA4L
	FingerprintJA4X
	FingerprintJA4SSH
	FingerprintJA4T
	FingerprintJA4TS
	FingerprintJA4TScan
	FingerprintPeetPrint
	FingerprintJA4Latency
)
