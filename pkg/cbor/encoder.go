package cbor

import (
	"bytes"
	"math"
)

// Encoder appends CBOR items to an internal buffer in call order. It
// maintains a nesting counter of open indefinite-length containers so an
// indefinite begin without a matching PushBreak is caught at Finish()
// rather than silently producing malformed CBOR. Definite-length containers
// are not counted.
type Encoder struct {
	buf     bytes.Buffer
	nesting int
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// PushInt encodes a signed 64-bit integer using the smallest form that
// represents it: major type 0 (unsigned) for i >= 0, major type 1
// (negative, encoding -1-i) for i < 0.
func (e *Encoder) PushInt(i int64) *Encoder {
	if i >= 0 {
		e.pushUint(MajorUnsignedInt, uint64(i))
		return e
	}
	e.pushUint(MajorNegativeInt, uint64(-1-i))
	return e
}

// PushUint encodes an unsigned 64-bit integer using major type 0.
func (e *Encoder) PushUint(u uint64) *Encoder {
	e.pushUint(MajorUnsignedInt, u)
	return e
}

// pushUint writes the minimal-width head for the given major type and
// unsigned value: direct form for 0-23, then 1/2/4/8 byte forms.
func (e *Encoder) pushUint(major byte, v uint64) {
	switch {
	case v <= 23:
		e.buf.WriteByte(majorByte(major, byte(v)))
	case v <= 0xff:
		e.buf.WriteByte(majorByte(major, additional1Byte))
		e.buf.WriteByte(byte(v))
	case v <= 0xffff:
		e.buf.WriteByte(majorByte(major, additional2Byte))
		e.buf.WriteByte(byte(v >> 8))
		e.buf.WriteByte(byte(v))
	case v <= 0xffffffff:
		e.buf.WriteByte(majorByte(major, additional4Byte))
		e.buf.WriteByte(byte(v >> 24))
		e.buf.WriteByte(byte(v >> 16))
		e.buf.WriteByte(byte(v >> 8))
		e.buf.WriteByte(byte(v))
	default:
		e.buf.WriteByte(majorByte(major, additional8Byte))
		for shift := 56; shift >= 0; shift -= 8 {
			e.buf.WriteByte(byte(v >> uint(shift)))
		}
	}
}

// PushBool encodes a boolean simple value.
func (e *Encoder) PushBool(b bool) *Encoder {
	if b {
		e.buf.WriteByte(majorByte(MajorSimple, SimpleTrue))
	} else {
		e.buf.WriteByte(majorByte(MajorSimple, SimpleFalse))
	}
	return e
}

// PushNull encodes the null simple value.
func (e *Encoder) PushNull() *Encoder {
	e.buf.WriteByte(majorByte(MajorSimple, SimpleNull))
	return e
}

// PushUndefined encodes the undefined simple value.
func (e *Encoder) PushUndefined() *Encoder {
	e.buf.WriteByte(majorByte(MajorSimple, SimpleUndefined))
	return e
}

// PushFloat16 encodes bits, the raw bit pattern of an IEEE 754
// half-precision float, as a CBOR half-precision float. The caller
// picks the width explicitly; no automatic narrowing is performed.
func (e *Encoder) PushFloat16(bits uint16) *Encoder {
	e.buf.WriteByte(majorByte(MajorSimple, float16Marker))
	e.buf.WriteByte(byte(bits >> 8))
	e.buf.WriteByte(byte(bits))
	return e
}

// PushFloat32 encodes a 32-bit IEEE 754 float.
func (e *Encoder) PushFloat32(f float32) *Encoder {
	bits := math.Float32bits(f)
	e.buf.WriteByte(majorByte(MajorSimple, float32Marker))
	for shift := 24; shift >= 0; shift -= 8 {
		e.buf.WriteByte(byte(bits >> uint(shift)))
	}
	return e
}

// PushFloat64 encodes a 64-bit IEEE 754 float.
func (e *Encoder) PushFloat64(f float64) *Encoder {
	bits := math.Float64bits(f)
	e.buf.WriteByte(majorByte(MajorSimple, float64Marker))
	for shift := 56; shift >= 0; shift -= 8 {
		e.buf.WriteByte(byte(bits >> uint(shift)))
	}
	return e
}

// PushBytes encodes a definite-length byte string.
func (e *Encoder) PushBytes(b []byte) *Encoder {
	e.pushUint(MajorByteString, uint64(len(b)))
	e.buf.Write(b)
	return e
}

// PushText encodes a definite-length UTF-8 text string.
func (e *Encoder) PushText(s string) *Encoder {
	e.pushUint(MajorTextString, uint64(len(s)))
	e.buf.WriteString(s)
	return e
}

// BeginArray opens a definite-length array of n items; the caller must
// follow with exactly n pushes and is not required to call EndArray.
func (e *Encoder) BeginArray(n int) *Encoder {
	e.pushUint(MajorArray, uint64(n))
	return e
}

// BeginArrayIndefinite opens an indefinite-length array; it must be closed
// with PushBreak.
func (e *Encoder) BeginArrayIndefinite() *Encoder {
	e.buf.WriteByte(majorByte(MajorArray, AdditionalIndefinite))
	e.nesting++
	return e
}

// EndArray is a no-op for definite-length arrays (kept for symmetry with
// BeginArrayIndefinite/PushBreak in caller code); it exists so callers can
// always pair begin/end without branching on definite vs. indefinite.
func (e *Encoder) EndArray() *Encoder {
	return e
}

// BeginMap opens a definite-length map of n key/value pairs.
func (e *Encoder) BeginMap(n int) *Encoder {
	e.pushUint(MajorMap, uint64(n))
	return e
}

// BeginMapIndefinite opens an indefinite-length map; it must be closed with
// PushBreak.
func (e *Encoder) BeginMapIndefinite() *Encoder {
	e.buf.WriteByte(majorByte(MajorMap, AdditionalIndefinite))
	e.nesting++
	return e
}

// EndMap is a no-op, kept for symmetry; see EndArray.
func (e *Encoder) EndMap() *Encoder {
	return e
}

// PushTag encodes a CBOR tag number; the tagged item must be pushed next.
func (e *Encoder) PushTag(tag uint64) *Encoder {
	e.pushUint(MajorTag, tag)
	return e
}

// PushBreak closes the innermost open indefinite-length container.
func (e *Encoder) PushBreak() *Encoder {
	e.buf.WriteByte(majorByte(MajorSimple, AdditionalBreak))
	e.nesting--
	return e
}

// PushRaw appends pre-encoded CBOR bytes verbatim, useful for embedding an
// already-serialized structure (e.g. a protected header byte string whose
// content is itself an opaque CBOR map).
func (e *Encoder) PushRaw(b []byte) *Encoder {
	e.buf.Write(b)
	return e
}

// Finish returns the accumulated bytes as an independently owned buffer —
// its lifetime is not tied to the Encoder, which may be discarded or reused.
// Panics if an indefinite-length container was opened but never closed with
// PushBreak; this is a programmer error, not a runtime data error.
func (e *Encoder) Finish() []byte {
	if e.nesting != 0 {
		panic("cbor: Encoder.Finish called with unbalanced indefinite-length container")
	}
	out := make([]byte, e.buf.Len())
	copy(out, e.buf.Bytes())
	return out
}
