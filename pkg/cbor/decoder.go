package cbor

import (
	"math"

	"github.com/eyevinn/common-access-token-go/pkg/caterr"
)

// LengthIndefinite is returned by container/string length reads in place of
// a count when the item uses the indefinite-length form; callers loop,
// reading chunks or items, until IsBreakCode reports true.
const LengthIndefinite = -1

// Decoder reads CBOR items from a byte slice, advancing a cursor in call
// order. All reads are bounds-checked; reading past the end of the buffer
// fails with a codec EndOfBuffer error.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder wraps buf for sequential decoding starting at offset 0.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Position returns the current cursor offset into the original buffer.
func (d *Decoder) Position() int { return d.pos }

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.buf) - d.pos }

func (d *Decoder) errEOF() error {
	return caterr.New(caterr.KindCodec, caterr.CodeEndOfBuffer)
}

func (d *Decoder) requireByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, d.errEOF()
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

func (d *Decoder) requireBytes(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.buf) {
		return nil, d.errEOF()
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

// PeekMajorType returns the major type of the next item without advancing
// the cursor.
func (d *Decoder) PeekMajorType() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, d.errEOF()
	}
	return d.buf[d.pos] >> 5, nil
}

// PeekAdditionalInfo returns the low 5 bits of the next item's head byte
// without advancing the cursor.
func (d *Decoder) PeekAdditionalInfo() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, d.errEOF()
	}
	return d.buf[d.pos] & 0x1f, nil
}

// IsBreakCode reports whether the next byte is the CBOR break code (major
// type 7, additional info 31), without advancing the cursor.
func (d *Decoder) IsBreakCode() (bool, error) {
	if d.pos >= len(d.buf) {
		return false, d.errEOF()
	}
	b := d.buf[d.pos]
	return b>>5 == MajorSimple && b&0x1f == AdditionalBreak, nil
}

// readHead consumes the head byte (and any following length bytes) of the
// next item, returning its major type and resolved additional-info value.
// additional == LengthIndefinite signals the indefinite-length marker (31)
// for arrays, maps, byte strings, or text strings.
func (d *Decoder) readHead() (major byte, additional int64, err error) {
	b, err := d.requireByte()
	if err != nil {
		return 0, 0, err
	}
	major = b >> 5
	info := b & 0x1f

	switch {
	case info <= 23:
		return major, int64(info), nil
	case info == additional1Byte:
		v, err := d.requireByte()
		if err != nil {
			return 0, 0, err
		}
		return major, int64(v), nil
	case info == additional2Byte:
		v, err := d.requireBytes(2)
		if err != nil {
			return 0, 0, err
		}
		return major, int64(v[0])<<8 | int64(v[1]), nil
	case info == additional4Byte:
		v, err := d.requireBytes(4)
		if err != nil {
			return 0, 0, err
		}
		return major, int64(v[0])<<24 | int64(v[1])<<16 | int64(v[2])<<8 | int64(v[3]), nil
	case info == additional8Byte:
		v, err := d.requireBytes(8)
		if err != nil {
			return 0, 0, err
		}
		var u uint64
		for _, bb := range v {
			u = u<<8 | uint64(bb)
		}
		return major, int64(u), nil
	case info == AdditionalIndefinite:
		return major, LengthIndefinite, nil
	default:
		return 0, 0, caterr.New(caterr.KindCodec, caterr.CodeUnsupportedAdditional)
	}
}

func (d *Decoder) requireMajor(want byte) error {
	got, err := d.PeekMajorType()
	if err != nil {
		return err
	}
	if got != want {
		return caterr.New(caterr.KindCodec, caterr.CodeUnexpectedMajorType)
	}
	return nil
}

// ReadUint decodes an unsigned integer (major type 0). Fails with
// UnexpectedMajorType if the stored value is not major type 0.
func (d *Decoder) ReadUint() (uint64, error) {
	if err := d.requireMajor(MajorUnsignedInt); err != nil {
		return 0, err
	}
	_, v, err := d.readHead()
	if err != nil {
		return 0, err
	}
	return uint64(v), nil
}

// ReadInt decodes a signed integer from either major type 0 (unsigned) or
// major type 1 (negative, value = -1-n). Fails with
// NegativeValueInUnsignedType is not applicable here since both majors are
// accepted; CborValueOutOfRange is returned if a negative-major value
// would overflow int64 when negated.
func (d *Decoder) ReadInt() (int64, error) {
	major, err := d.PeekMajorType()
	if err != nil {
		return 0, err
	}
	switch major {
	case MajorUnsignedInt:
		_, v, err := d.readHead()
		if err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, caterr.New(caterr.KindCodec, caterr.CodeIntegerOutOfRange)
		}
		return v, nil
	case MajorNegativeInt:
		_, v, err := d.readHead()
		if err != nil {
			return 0, err
		}
		// result = -1 - v; v is read as an int64 that may itself have come
		// from a uint64 head, so guard against overflow on negation.
		if v < 0 {
			return 0, caterr.New(caterr.KindCodec, caterr.CodeIntegerOutOfRange)
		}
		return -1 - v, nil
	default:
		return 0, caterr.New(caterr.KindCodec, caterr.CodeUnexpectedMajorType)
	}
}

// ReadUintStrict decodes an unsigned integer and fails with
// NegativeValueInUnsignedType if the stored value is major type 1
// (negative). Used where the claims schema requires an unsigned value.
func (d *Decoder) ReadUintStrict() (uint64, error) {
	major, err := d.PeekMajorType()
	if err != nil {
		return 0, err
	}
	if major == MajorNegativeInt {
		return 0, caterr.New(caterr.KindCodec, caterr.CodeNegativeValueInUnsigned)
	}
	return d.ReadUint()
}

// ReadBool decodes a boolean simple value.
func (d *Decoder) ReadBool() (bool, error) {
	if err := d.requireMajor(MajorSimple); err != nil {
		return false, err
	}
	_, v, err := d.readHead()
	if err != nil {
		return false, err
	}
	switch byte(v) {
	case SimpleFalse:
		return false, nil
	case SimpleTrue:
		return true, nil
	default:
		return false, caterr.New(caterr.KindCodec, caterr.CodeUnexpectedMajorType)
	}
}

// ReadFloat decodes an IEEE 754 float of whatever width (16/32/64) was
// encoded, always returning it widened to float64.
func (d *Decoder) ReadFloat() (float64, error) {
	if err := d.requireMajor(MajorSimple); err != nil {
		return 0, err
	}
	b, err := d.requireByte()
	if err != nil {
		return 0, err
	}
	info := b & 0x1f
	switch info {
	case float16Marker:
		raw, err := d.requireBytes(2)
		if err != nil {
			return 0, err
		}
		bits := uint16(raw[0])<<8 | uint16(raw[1])
		return float64(decodeFloat16(bits)), nil
	case float32Marker:
		raw, err := d.requireBytes(4)
		if err != nil {
			return 0, err
		}
		bits := uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
		return float64(math.Float32frombits(bits)), nil
	case float64Marker:
		raw, err := d.requireBytes(8)
		if err != nil {
			return 0, err
		}
		var bits uint64
		for _, bb := range raw {
			bits = bits<<8 | uint64(bb)
		}
		return math.Float64frombits(bits), nil
	default:
		return 0, caterr.New(caterr.KindCodec, caterr.CodeUnexpectedMajorType)
	}
}

func decodeFloat16(bits uint16) float32 {
	sign := uint32(bits>>15) & 0x1
	exp := uint32(bits>>10) & 0x1f
	frac := uint32(bits) & 0x3ff

	var outExp, outFrac uint32
	switch {
	case exp == 0:
		// zero or subnormal: frac × 2^-24
		f := float32(frac) / (1 << 24)
		if sign == 1 {
			f = -f
		}
		return f
	case exp == 0x1f:
		outExp, outFrac = 0xff, frac<<13
	default:
		outExp = exp-15+127
		outFrac = frac << 13
	}
	out := sign<<31 | outExp<<23 | outFrac
	return math.Float32frombits(out)
}

// ReadBytes decodes a byte string. Indefinite-length byte strings are
// concatenated from their definite-length chunks; a chunk that is itself
// indefinite is rejected.
func (d *Decoder) ReadBytes() ([]byte, error) {
	if err := d.requireMajor(MajorByteString); err != nil {
		return nil, err
	}
	return d.readStringBody(MajorByteString)
}

// ReadText decodes a UTF-8 text string, with the same indefinite-length
// chunk-concatenation behavior as ReadBytes.
func (d *Decoder) ReadText() (string, error) {
	if err := d.requireMajor(MajorTextString); err != nil {
		return "", err
	}
	b, err := d.readStringBody(MajorTextString)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *Decoder) readStringBody(major byte) ([]byte, error) {
	_, n, err := d.readHead()
	if err != nil {
		return nil, err
	}
	if n != LengthIndefinite {
		return d.requireBytes(int(n))
	}
	var out []byte
	for {
		isBreak, err := d.IsBreakCode()
		if err != nil {
			return nil, err
		}
		if isBreak {
			d.pos++
			return out, nil
		}
		chunkMajor, err := d.PeekMajorType()
		if err != nil {
			return nil, err
		}
		if chunkMajor != major {
			return nil, caterr.New(caterr.KindCodec, caterr.CodeUnexpectedMajorType)
		}
		chunkAdditional, err := d.PeekAdditionalInfo()
		if err != nil {
			return nil, err
		}
		if chunkAdditional == AdditionalIndefinite {
			return nil, caterr.New(caterr.KindCodec, caterr.CodeInvalidIndefiniteChunk)
		}
		_, chunkLen, err := d.readHead()
		if err != nil {
			return nil, err
		}
		chunk, err := d.requireBytes(int(chunkLen))
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
}

// BeginArray consumes an array head and returns its length, or
// LengthIndefinite if the array is indefinite-length, in which case the
// caller must loop reading items until IsBreakCode reports true (and then
// consume the break with a direct cursor advance, mirrored by callers via
// ConsumeBreak).
func (d *Decoder) BeginArray() (int64, error) {
	if err := d.requireMajor(MajorArray); err != nil {
		return 0, err
	}
	_, n, err := d.readHead()
	return n, err
}

// BeginMap consumes a map head and returns its pair count, or
// LengthIndefinite for an indefinite-length map.
func (d *Decoder) BeginMap() (int64, error) {
	if err := d.requireMajor(MajorMap); err != nil {
		return 0, err
	}
	_, n, err := d.readHead()
	return n, err
}

// ConsumeBreak advances past a break code. Callers of BeginArray/BeginMap
// with an indefinite result call this once IsBreakCode reports true.
func (d *Decoder) ConsumeBreak() error {
	isBreak, err := d.IsBreakCode()
	if err != nil {
		return err
	}
	if !isBreak {
		return caterr.New(caterr.KindCodec, caterr.CodeUnexpectedBreak)
	}
	d.pos++
	return nil
}

// ReadTag consumes a tag head and returns the tag number; the tagged
// content item itself is read by a subsequent call.
func (d *Decoder) ReadTag() (uint64, error) {
	if err := d.requireMajor(MajorTag); err != nil {
		return 0, err
	}
	_, n, err := d.readHead()
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// ExpectTag consumes a tag head and fails unless it equals want.
func (d *Decoder) ExpectTag(want uint64) error {
	got, err := d.ReadTag()
	if err != nil {
		return err
	}
	if got != want {
		return caterr.New(caterr.KindCodec, caterr.CodeMalformedEnvelope)
	}
	return nil
}

// Skip recursively skips the next item regardless of its type, including
// the full contents of arrays, maps, and tagged items, and the chunks of
// indefinite-length containers/strings.
func (d *Decoder) Skip() error {
	major, err := d.PeekMajorType()
	if err != nil {
		return err
	}
	switch major {
	case MajorUnsignedInt, MajorNegativeInt:
		_, _, err := d.readHead()
		return err
	case MajorByteString:
		_, err := d.ReadBytes()
		return err
	case MajorTextString:
		_, err := d.ReadText()
		return err
	case MajorArray:
		n, err := d.BeginArray()
		if err != nil {
			return err
		}
		if n == LengthIndefinite {
			for {
				isBreak, err := d.IsBreakCode()
				if err != nil {
					return err
				}
				if isBreak {
					return d.ConsumeBreak()
				}
				if err := d.Skip(); err != nil {
					return err
				}
			}
		}
		for i := int64(0); i < n; i++ {
			if err := d.Skip(); err != nil {
				return err
			}
		}
		return nil
	case MajorMap:
		n, err := d.BeginMap()
		if err != nil {
			return err
		}
		if n == LengthIndefinite {
			for {
				isBreak, err := d.IsBreakCode()
				if err != nil {
					return err
				}
				if isBreak {
					return d.ConsumeBreak()
				}
				if err := d.Skip(); err != nil {
					return err
				}
				if err := d.Skip(); err != nil {
					return err
				}
			}
		}
		for i := int64(0); i < n; i++ {
			if err := d.Skip(); err != nil {
				return err
			}
			if err := d.Skip(); err != nil {
				return err
			}
		}
		return nil
	case MajorTag:
		if _, err := d.ReadTag(); err != nil {
			return err
		}
		return d.Skip()
	case MajorSimple:
		info, err := d.PeekAdditionalInfo()
		if err != nil {
			return err
		}
		switch info {
		case float16Marker:
			_, err := d.ReadFloat()
			return err
		case float32Marker:
			_, err := d.ReadFloat()
			return err
		case float64Marker:
			_, err := d.ReadFloat()
			return err
		default:
			_, _, err := d.readHead()
			return err
		}
	default:
		return caterr.New(caterr.KindCodec, caterr.CodeUnexpectedMajorType)
	}
}
