package encode

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/ubjson-format/go-ubjson/ir"
	"github.com/ubjson-format/go-ubjson/wire"
)

func TestEncodeScalars(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		opts []EncodeOption
		want []byte
	}{
		{"null", ir.Null(), nil, []byte("Z")},
		{"true", ir.FromBool(true), nil, []byte("T")},
		{"false", ir.FromBool(false), nil, []byte("F")},

		// Smallest-width integer selection, uint8 preferred for 0..255.
		{"int 0", ir.FromInt(0), nil, []byte{'U', 0}},
		{"int 255", ir.FromInt(255), nil, []byte{'U', 255}},
		{"int -1", ir.FromInt(-1), nil, []byte{'i', 0xff}},
		{"int -128", ir.FromInt(-128), nil, []byte{'i', 0x80}},
		{"int 256", ir.FromInt(256), nil, []byte{'I', 0x01, 0x00}},
		{"int -129", ir.FromInt(-129), nil, []byte{'I', 0xff, 0x7f}},
		{"int 32767", ir.FromInt(32767), nil, []byte{'I', 0x7f, 0xff}},
		{"int 32768", ir.FromInt(32768), nil, []byte{'l', 0x00, 0x00, 0x80, 0x00}},
		{"int 2^31-1", ir.FromInt(2147483647), nil, []byte{'l', 0x7f, 0xff, 0xff, 0xff}},
		{"int 2^31", ir.FromInt(2147483648), nil,
			[]byte{'L', 0x00, 0x00, 0x00, 0x00, 0x80, 0x00, 0x00, 0x00}},
		{"int min64", ir.FromInt(math.MinInt64), nil,
			[]byte{'L', 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},

		// Float width selection.
		{"float 1.5 fits float32", ir.FromFloat(1.5), nil,
			[]byte{'d', 0x3f, 0xc0, 0x00, 0x00}},
		{"float 0", ir.FromFloat(0), nil, []byte{'d', 0x00, 0x00, 0x00, 0x00}},
		{"float 1e40 needs float64", ir.FromFloat(1e40), nil,
			append([]byte{'D'}, beBytes64(math.Float64bits(1e40))...)},
		{"float32 value", ir.FromFloat32(1.5), nil,
			[]byte{'d', 0x3f, 0xc0, 0x00, 0x00}},
		{"float inf is null", ir.FromFloat(math.Inf(1)), nil, []byte("Z")},
		{"float nan is null", ir.FromFloat(math.NaN()), nil, []byte("Z")},
		{"float32 nan is null", ir.FromFloat32(float32(math.NaN())), nil, []byte("Z")},

		// NoFloat32 widens everything finite except zero.
		{"nofloat32 widens", ir.FromFloat(1.5), []EncodeOption{NoFloat32(true)},
			append([]byte{'D'}, beBytes64(math.Float64bits(1.5))...)},
		{"nofloat32 zero stays narrow", ir.FromFloat(0), []EncodeOption{NoFloat32(true)},
			[]byte{'d', 0x00, 0x00, 0x00, 0x00}},

		// High-precision decimal text, preserved exactly.
		{"decimal", ir.FromDecimal("1.5e10"), nil,
			append([]byte{'H', 'U', 6}, "1.5e10"...)},
		{"decimal nan", ir.FromDecimal("NaN"), nil,
			append([]byte{'H', 'U', 3}, "NaN"...)},
		{"decimal -infinity", ir.FromDecimal("-Infinity"), nil,
			append([]byte{'H', 'U', 9}, "-Infinity"...)},

		// Strings: one ASCII byte uses the char form.
		{"char", ir.FromString("a"), nil, []byte("Ca")},
		{"empty string", ir.FromString(""), nil, []byte{'S', 'U', 0}},
		{"string", ir.FromString("ab"), nil, append([]byte{'S', 'U', 2}, "ab"...)},
		{"multibyte rune is a string", ir.FromString("é"), nil,
			append([]byte{'S', 'U', 2}, "é"...)},

		// Byte strings: uint8-typed counted array over the raw bytes.
		{"bytes", ir.FromBytes([]byte{1, 2, 3}), nil,
			[]byte{'[', '$', 'U', '#', 'U', 3, 1, 2, 3}},
		{"empty bytes", ir.FromBytes(nil), nil, []byte{'[', '$', 'U', '#', 'U', 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeBytes(tt.node, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got % x, want % x", got, tt.want)
			}
		})
	}
}

func TestEncodeContainers(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		opts []EncodeOption
		want []byte
	}{
		{"empty array", ir.FromSlice(nil), nil, []byte("[]")},
		{"array", ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.Null()}), nil,
			[]byte{'[', 'U', 1, 'Z', ']'}},
		{"empty array counted", ir.FromSlice(nil),
			[]EncodeOption{ContainerCount(true)}, []byte{'[', '#', 'U', 0}},
		{"array counted", ir.FromSlice([]*ir.Node{ir.FromInt(1)}),
			[]EncodeOption{ContainerCount(true)}, []byte{'[', '#', 'U', 1, 'U', 1}},
		{"empty object", ir.FromKeyVals(nil), nil, []byte("{}")},
		{"object", ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromInt(1)}}), nil,
			[]byte{'{', 'U', 1, 'a', 'U', 1, '}'}},
		{"object counted", ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromInt(1)}}),
			[]EncodeOption{ContainerCount(true)},
			[]byte{'{', '#', 'U', 1, 'U', 1, 'a', 'U', 1}},
		{"nested", ir.FromSlice([]*ir.Node{ir.FromSlice(nil), ir.FromKeyVals(nil)}), nil,
			[]byte("[[]{}]")},
		{"sorted keys", ir.FromKeyVals([]ir.KeyVal{
			{Key: "b", Val: ir.FromInt(2)},
			{Key: "a", Val: ir.FromInt(1)},
		}), []EncodeOption{SortKeys(true)},
			[]byte{'{', 'U', 1, 'a', 'U', 1, 'U', 1, 'b', 'U', 2, '}'}},
		{"unsorted keys keep entry order", ir.FromKeyVals([]ir.KeyVal{
			{Key: "b", Val: ir.FromInt(2)},
			{Key: "a", Val: ir.FromInt(1)},
		}), nil,
			[]byte{'{', 'U', 1, 'b', 'U', 2, 'U', 1, 'a', 'U', 1, '}'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeBytes(tt.node, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got % x, want % x", got, tt.want)
			}
		})
	}
}

func TestEncodeSubnormalFallsBackToDecimal(t *testing.T) {
	got, err := EncodeBytes(ir.FromFloat(5e-324))
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 'H' {
		t.Errorf("subnormal double should encode as decimal, got marker %c", got[0])
	}
}

func TestEncodeCycle(t *testing.T) {
	arr := ir.FromSlice(nil)
	arr.Values = append(arr.Values, arr)
	_, err := EncodeBytes(arr)
	if !errors.Is(err, ErrCircular) {
		t.Errorf("got %v, want ErrCircular", err)
	}

	obj := ir.FromKeyVals([]ir.KeyVal{{Key: "self", Val: ir.Null()}})
	obj.Values[0] = obj
	_, err = EncodeBytes(obj)
	if !errors.Is(err, ErrCircular) {
		t.Errorf("got %v, want ErrCircular", err)
	}
}

func TestEncodeSharedSubtree(t *testing.T) {
	// The same node at two non-overlapping positions is not a cycle.
	leaf := ir.FromSlice([]*ir.Node{ir.FromInt(1)})
	root := ir.FromSlice([]*ir.Node{leaf, leaf})
	got, err := EncodeBytes(root)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'[', '[', 'U', 1, ']', '[', 'U', 1, ']', ']'}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestEncodeKeyType(t *testing.T) {
	bad := &ir.Node{
		Type:   ir.ObjectType,
		Fields: []*ir.Node{ir.FromInt(1)},
		Values: []*ir.Node{ir.Null()},
	}
	_, err := EncodeBytes(bad)
	if !errors.Is(err, ErrKeyType) {
		t.Errorf("got %v, want ErrKeyType", err)
	}
}

func TestEncodeBadDecimal(t *testing.T) {
	_, err := EncodeBytes(ir.FromDecimal("not a number"))
	if !errors.Is(err, ErrBadDecimal) {
		t.Errorf("got %v, want ErrBadDecimal", err)
	}
}

func TestEncodeUnencodable(t *testing.T) {
	_, err := EncodeBytes(&ir.Node{Type: ir.NumberType})
	if !errors.Is(err, ErrCannotEncode) {
		t.Errorf("got %v, want ErrCannotEncode", err)
	}
	_, err = EncodeBytes(nil)
	if !errors.Is(err, ErrCannotEncode) {
		t.Errorf("got %v, want ErrCannotEncode", err)
	}
}

func TestEncodeFallback(t *testing.T) {
	opts := []EncodeOption{Fallback(func(n *ir.Node) (*ir.Node, error) {
		return ir.FromInt(7), nil
	})}
	got, err := EncodeBytes(&ir.Node{Type: ir.NumberType}, opts...)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{'U', 7}) {
		t.Errorf("got % x, want U 7", got)
	}

	// A fallback returning another unencodable value is not retried.
	opts = []EncodeOption{Fallback(func(n *ir.Node) (*ir.Node, error) {
		return &ir.Node{Type: ir.NumberType}, nil
	})}
	_, err = EncodeBytes(&ir.Node{Type: ir.NumberType}, opts...)
	if !errors.Is(err, ErrCannotEncode) {
		t.Errorf("got %v, want ErrCannotEncode", err)
	}
}

func TestEncodeMaxDepth(t *testing.T) {
	node := ir.FromSlice([]*ir.Node{ir.FromSlice([]*ir.Node{ir.FromInt(1)})})
	if _, err := EncodeBytes(node, MaxDepth(2)); err != nil {
		t.Fatalf("depth 2 within bound: %v", err)
	}
	_, err := EncodeBytes(node, MaxDepth(1))
	if !errors.Is(err, wire.ErrMaxDepth) {
		t.Errorf("got %v, want wire.ErrMaxDepth", err)
	}
}

func beBytes64(v uint64) []byte {
	return []byte{
		byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32),
		byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v),
	}
}
