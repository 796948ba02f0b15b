// Package wire defines the UBJSON marker vocabulary shared by the
// encoder and decoder: the one-byte type and structural tags, the fixed
// payload widths of the numeric markers, and the predicates both engines
// dispatch on. It contains no I/O.
package wire

import (
	"errors"
	"fmt"
)

// Marker is a one-byte tag identifying a value's type or a structural
// delimiter. The constants below are the closed set of valid markers;
// markers are never derived at runtime.
type Marker byte

const (
	// Value types.
	Null     Marker = 'Z'
	True     Marker = 'T'
	False    Marker = 'F'
	Int8     Marker = 'i'
	UInt8    Marker = 'U'
	Int16    Marker = 'I'
	Int32    Marker = 'l'
	Int64    Marker = 'L'
	Float32  Marker = 'd'
	Float64  Marker = 'D'
	HighPrec Marker = 'H'
	Char     Marker = 'C'
	String   Marker = 'S'

	// Container delimiters.
	ObjectStart Marker = '{'
	ObjectEnd   Marker = '}'
	ArrayStart  Marker = '['
	ArrayEnd    Marker = ']'

	// Optional container parameters.
	ContainerType  Marker = '$'
	ContainerCount Marker = '#'

	// NoOp is a skippable filler token, valid only between the elements
	// of an array declared without a type or count.
	NoOp Marker = 'N'
)

// ErrMaxDepth reports that a configured maximum nesting depth was
// exceeded during encoding or decoding. It is deliberately distinct from
// both engines' malformed-input error types so callers can tell a
// resource limit apart from a broken document.
var ErrMaxDepth = errors.New("maximum container nesting depth exceeded")

// Width returns the fixed payload width in bytes for a numeric marker,
// or 0 if m has no fixed-width payload.
func Width(m Marker) int {
	switch m {
	case Int8, UInt8:
		return 1
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	}
	return 0
}

// IsType reports whether m is a value type marker (as opposed to a
// container delimiter or modifier).
func IsType(m Marker) bool {
	switch m {
	case Null, True, False, Int8, UInt8, Int16, Int32, Int64,
		Float32, Float64, HighPrec, Char, String:
		return true
	}
	return false
}

// IsInt reports whether m is a fixed-width integer marker. Lengths and
// counts on the wire are restricted to these.
func IsInt(m Marker) bool {
	switch m {
	case Int8, UInt8, Int16, Int32, Int64:
		return true
	}
	return false
}

// IsNoData reports whether m is a type marker whose values carry no
// payload. Containers declared with such a type store only a count.
func IsNoData(m Marker) bool {
	switch m {
	case Null, True, False:
		return true
	}
	return false
}

func (m Marker) String() string {
	if m >= 0x21 && m <= 0x7e {
		return fmt.Sprintf("'%c'", byte(m))
	}
	return fmt.Sprintf("0x%02x", byte(m))
}
