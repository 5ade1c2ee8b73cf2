// Package cbor implements a byte-level CBOR (RFC 8949) encoder and decoder:
// push/peek primitives over integers, strings, arrays, maps, tags, floats,
// and simple values, with deterministic minimal-width integer encoding and
// support for both definite- and indefinite-length containers and strings.
//
// This is the core of the CAT codec: claims, COSE headers, and the COSE_Mac0
// envelope are all built directly on top of these primitives rather than on
// a reflection-based marshaler, so that the wire bytes are exactly what peer
// implementations expect.
package cbor

// Major types per RFC 8949 §3.1.
const (
	MajorUnsignedInt byte = 0
	MajorNegativeInt byte = 1
	MajorByteString  byte = 2
	MajorTextString  byte = 3
	MajorArray       byte = 4
	MajorMap         byte = 5
	MajorTag         byte = 6
	MajorSimple      byte = 7
)

// Additional info values with special meaning.
const (
	AdditionalIndefinite byte = 31
	AdditionalBreak      byte = 31 // only meaningful under major type 7
)

// Simple values.
const (
	SimpleFalse     byte = 20
	SimpleTrue      byte = 21
	SimpleNull      byte = 22
	SimpleUndefined byte = 23
)

// Additional-info byte-width markers.
const (
	additional1Byte  byte = 24
	additional2Byte  byte = 25
	additional4Byte  byte = 26
	additional8Byte  byte = 27
	float16Marker    byte = 25
	float32Marker    byte = 26
	float64Marker    byte = 27
)

func majorByte(major, additional byte) byte {
	return (major << 5) | (additional & 0x1f)
}
