package encode

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ubjson-format/go-ubjson/wire"
)

// Float32 and float64 magnitude bounds for width selection. A finite
// value outside both ranges (a double subnormal) falls back to the
// high-precision decimal form.
const (
	float32MinAbs = 1.18e-38
	float32MaxAbs = 3.4e38
	float64MinAbs = 2.23e-308
	float64MaxAbs = math.MaxFloat64
)

func (es *EncState) writeMarker(m wire.Marker) error {
	es.buf[0] = byte(m)
	return es.write(es.buf[:1])
}

// writeInt writes v using the smallest marker whose range contains it,
// preferring uint8 for 0..255.
func (es *EncState) writeInt(v int64) error {
	switch {
	case v >= 0 && v <= 255:
		es.buf[0] = byte(wire.UInt8)
		es.buf[1] = byte(v)
		return es.write(es.buf[:2])
	case v >= -128 && v < 0:
		es.buf[0] = byte(wire.Int8)
		es.buf[1] = byte(int8(v))
		return es.write(es.buf[:2])
	case v >= math.MinInt16 && v <= math.MaxInt16:
		es.buf[0] = byte(wire.Int16)
		binary.BigEndian.PutUint16(es.buf[1:3], uint16(int16(v)))
		return es.write(es.buf[:3])
	case v >= math.MinInt32 && v <= math.MaxInt32:
		es.buf[0] = byte(wire.Int32)
		binary.BigEndian.PutUint32(es.buf[1:5], uint32(int32(v)))
		return es.write(es.buf[:5])
	default:
		es.buf[0] = byte(wire.Int64)
		binary.BigEndian.PutUint64(es.buf[1:9], uint64(v))
		return es.write(es.buf[:9])
	}
}

func (es *EncState) writeFloat32(v float32) error {
	if es.noFloat32 && v != 0 {
		return es.writeFloat64(float64(v))
	}
	if math.IsInf(float64(v), 0) || math.IsNaN(float64(v)) {
		// Non-finite floats have no UBJSON representation; they
		// decode back to null.
		return es.writeMarker(wire.Null)
	}
	es.buf[0] = byte(wire.Float32)
	binary.BigEndian.PutUint32(es.buf[1:5], math.Float32bits(v))
	return es.write(es.buf[:5])
}

func (es *EncState) writeFloat64(v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return es.writeMarker(wire.Null)
	}
	abs := math.Abs(v)
	switch {
	case v == 0 || (!es.noFloat32 && float32MinAbs <= abs && abs <= float32MaxAbs):
		es.buf[0] = byte(wire.Float32)
		binary.BigEndian.PutUint32(es.buf[1:5], math.Float32bits(float32(v)))
		return es.write(es.buf[:5])
	case float64MinAbs <= abs && abs <= float64MaxAbs:
		es.buf[0] = byte(wire.Float64)
		binary.BigEndian.PutUint64(es.buf[1:9], math.Float64bits(v))
		return es.write(es.buf[:9])
	default:
		// Subnormal doubles sit below both ranges; keep the value as
		// decimal text.
		return es.writeHighPrec(decimal.NewFromFloat(v).String())
	}
}

// writeHighPrec writes the high-precision form: marker, then the text
// length as a nested integer, then the ASCII decimal text.
func (es *EncState) writeHighPrec(text string) error {
	if err := validateDecimal(text); err != nil {
		return err
	}
	if err := es.writeMarker(wire.HighPrec); err != nil {
		return err
	}
	if err := es.writeInt(int64(len(text))); err != nil {
		return err
	}
	return es.write([]byte(text))
}

// validateDecimal accepts decimal number text plus the non-finite
// tokens that arbitrary-precision decimals support.
func validateDecimal(text string) error {
	if isNonFiniteDecimal(text) {
		return nil
	}
	if _, err := decimal.NewFromString(text); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrBadDecimal, text, err)
	}
	return nil
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

func (es *EncState) writeString(v string) error {
	if len(v) == 1 && v[0] < utf8.RuneSelf {
		// Single-byte strings use the char form: marker plus the raw
		// byte, no length.
		es.buf[0] = byte(wire.Char)
		es.buf[1] = v[0]
		return es.write(es.buf[:2])
	}
	if err := es.writeMarker(wire.String); err != nil {
		return err
	}
	if err := es.writeInt(int64(len(v))); err != nil {
		return err
	}
	return es.write([]byte(v))
}

// writeKey writes an object key: same as a string value but without the
// 'S' marker, since the length integer's own marker disambiguates.
func (es *EncState) writeKey(v string) error {
	if err := es.writeInt(int64(len(v))); err != nil {
		return err
	}
	return es.write([]byte(v))
}

// writeBytes writes a byte string as a uint8-typed, counted array over
// the raw bytes. No array end marker follows the payload.
func (es *EncState) writeBytes(v []byte) error {
	es.buf[0] = byte(wire.ArrayStart)
	es.buf[1] = byte(wire.ContainerType)
	es.buf[2] = byte(wire.UInt8)
	es.buf[3] = byte(wire.ContainerCount)
	if err := es.write(es.buf[:4]); err != nil {
		return err
	}
	if err := es.writeInt(int64(len(v))); err != nil {
		return err
	}
	return es.write(v)
}
