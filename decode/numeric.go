package decode

import (
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ubjson-format/go-ubjson/ir"
	"github.com/ubjson-format/go-ubjson/wire"
)

// readInt reads the payload of a fixed-width integer marker. m must
// already have been consumed from the stream. Non-integer markers fail
// with ErrInvalidMarker; lengths and counts on the wire are always
// integers, so this is the natural failure for a no-op or stray byte
// where a length was expected.
func (d *decoder) readInt(m wire.Marker) (int64, error) {
	if !wire.IsInt(m) {
		return 0, d.errAt(d.rd.off-1, ErrInvalidMarker,
			"integer marker expected, got %s", m)
	}
	b, err := d.rd.readFixed(wire.Width(m), "integer payload")
	if err != nil {
		return 0, err
	}
	switch m {
	case wire.UInt8:
		return int64(b[0]), nil
	case wire.Int8:
		return int64(int8(b[0])), nil
	case wire.Int16:
		return int64(int16(binary.BigEndian.Uint16(b))), nil
	case wire.Int32:
		return int64(int32(binary.BigEndian.Uint32(b))), nil
	default:
		return int64(binary.BigEndian.Uint64(b)), nil
	}
}

// readLength reads an integer-marked length or count and rejects
// negative values.
func (d *decoder) readLength(what string) (int64, error) {
	off := d.rd.off
	m, err := d.readMarker()
	if err != nil {
		return 0, err
	}
	n, err := d.readInt(m)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, d.errAt(off, ErrNegativeLength, "negative %s %d", what, n)
	}
	return n, nil
}

func (d *decoder) readFloat32() (*ir.Node, error) {
	b, err := d.rd.readFixed(4, "float32 payload")
	if err != nil {
		return nil, err
	}
	return ir.FromFloat32(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
}

func (d *decoder) readFloat64() (*ir.Node, error) {
	b, err := d.rd.readFixed(8, "float64 payload")
	if err != nil {
		return nil, err
	}
	return ir.FromFloat(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
}

// readText reads a length-prefixed UTF-8 payload, shared by strings,
// object keys and high-precision decimals.
func (d *decoder) readText(what string) (string, error) {
	n, err := d.readLength(what + " length")
	if err != nil {
		return "", err
	}
	off := d.rd.off
	b, err := d.rd.readN(n, what+" payload")
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", d.errAt(off, ErrInvalidUTF8, "%s payload is not valid UTF-8", what)
	}
	return string(b), nil
}

func (d *decoder) readString() (*ir.Node, error) {
	s, err := d.readText("string")
	if err != nil {
		return nil, err
	}
	return ir.FromString(s), nil
}

// readChar reads the char form: one raw byte, restricted to ASCII so
// the result is always a valid one-character string.
func (d *decoder) readChar() (*ir.Node, error) {
	b, err := d.rd.readFixed(1, "char payload")
	if err != nil {
		return nil, err
	}
	if b[0] >= utf8.RuneSelf {
		return nil, d.errAt(d.rd.off-1, ErrInvalidUTF8,
			"char byte 0x%02x outside ASCII range", b[0])
	}
	return ir.FromString(string(b[:1])), nil
}

// readHighPrec reads decimal text and preserves it exactly; the numeric
// value is validated but never normalized, so re-encoding reproduces
// the original bytes.
func (d *decoder) readHighPrec() (*ir.Node, error) {
	off := d.rd.off
	s, err := d.readText("decimal")
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, d.errAt(off, ErrBadDecimal, "empty decimal text")
	}
	if !isNonFiniteDecimal(s) {
		if _, err := decimal.NewFromString(s); err != nil {
			return nil, d.errAt(off, ErrBadDecimal, "decimal text %q: %v", s, err)
		}
	}
	return ir.FromDecimal(s), nil
}

func isNonFiniteDecimal(text string) bool {
	s := strings.TrimPrefix(strings.TrimPrefix(text, "-"), "+")
	switch {
	case strings.EqualFold(s, "nan"),
		strings.EqualFold(s, "inf"),
		strings.EqualFold(s, "infinity"):
		return true
	}
	return false
}

// readObjectKey reads a key: a length integer starting at marker m,
// then the UTF-8 bytes. There is no 'S' marker before keys.
func (d *decoder) readObjectKey(m wire.Marker) (string, error) {
	n, err := d.readInt(m)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", d.errAt(d.rd.off, ErrNegativeLength, "negative key length %d", n)
	}
	off := d.rd.off
	b, err := d.rd.readN(n, "key payload")
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", d.errAt(off, ErrInvalidUTF8, "key payload is not valid UTF-8")
	}
	return d.intern(string(b)), nil
}

// readScalar decodes the payload of a non-container marker m into a
// fresh node.
func (d *decoder) readScalar(m wire.Marker) (*ir.Node, error) {
	switch m {
	case wire.Null:
		return ir.Null(), nil
	case wire.True:
		return ir.FromBool(true), nil
	case wire.False:
		return ir.FromBool(false), nil
	case wire.Int8, wire.UInt8, wire.Int16, wire.Int32, wire.Int64:
		v, err := d.readInt(m)
		if err != nil {
			return nil, err
		}
		return ir.FromInt(v), nil
	case wire.Float32:
		return d.readFloat32()
	case wire.Float64:
		return d.readFloat64()
	case wire.HighPrec:
		return d.readHighPrec()
	case wire.Char:
		return d.readChar()
	case wire.String:
		return d.readString()
	}
	return nil, d.errAt(d.rd.off-1, ErrInvalidMarker, "unexpected marker %s", m)
}
