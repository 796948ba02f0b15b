package ir

import (
	"maps"
	"slices"
)

// Node is the in-memory representation of a UBJSON value.
//
// For ObjectType, Fields[i] is the StringType key for the value at
// Values[i]; the two slices always have the same length and preserve
// entry order. For ArrayType only Values is used.
//
// For NumberType exactly one of Int64, Float32, Float64 or Number is
// set. Number holds arbitrary-precision decimal text for values outside
// 64-bit integer or IEEE double range (and for non-finite decimals,
// where it holds "NaN", "Infinity" or "-Infinity").
type Node struct {
	Type Type

	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Bytes   []byte
	Number  string
	Float32 *float32
	Float64 *float64
	Int64   *int64
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Type = n.Type
	dst.String = n.String
	dst.Bool = n.Bool
	dst.Number = n.Number
	if n.Bytes != nil {
		dst.Bytes = slices.Clone(n.Bytes)
	}
	if n.Float32 != nil {
		f := *n.Float32
		dst.Float32 = &f
	}
	if n.Float64 != nil {
		f := *n.Float64
		dst.Float64 = &f
	}
	if n.Int64 != nil {
		i := *n.Int64
		dst.Int64 = &i
	}
	if n.Fields != nil {
		dst.Fields = make([]*Node, len(n.Fields))
		for i, f := range n.Fields {
			dst.Fields[i] = f.Clone()
		}
	}
	if n.Values != nil {
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat32(f float32) *Node {
	return &Node{
		Type:    NumberType,
		Float32: &f,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

// FromDecimal wraps arbitrary-precision decimal text. The text is not
// validated here; the encoder rejects text that does not parse as a
// decimal number or one of the non-finite tokens.
func FromDecimal(v string) *Node {
	return &Node{
		Type:   NumberType,
		Number: v,
	}
}

func FromBytes(v []byte) *Node {
	return &Node{
		Type:  BytesType,
		Bytes: v,
	}
}

func FromSlice(vs []*Node) *Node {
	res := &Node{
		Type:   ArrayType,
		Values: make([]*Node, len(vs)),
	}
	copy(res.Values, vs)
	return res
}

// FromMap builds an object with keys in ascending order. Use
// FromKeyVals to control entry order.
func FromMap(m map[string]*Node) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]*Node, 0, len(m)),
		Values: make([]*Node, 0, len(m)),
	}
	for _, key := range slices.Sorted(maps.Keys(m)) {
		res.Fields = append(res.Fields, FromString(key))
		res.Values = append(res.Values, m[key])
	}
	return res
}

func ToMap(n *Node) map[string]*Node {
	if n.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(n.Fields))
	for i, f := range n.Fields {
		res[f.String] = n.Values[i]
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]*Node, len(kvs)),
		Values: make([]*Node, len(kvs)),
	}
	for i := range kvs {
		res.Fields[i] = FromString(kvs[i].Key)
		res.Values[i] = kvs[i].Val
	}
	return res
}

// Get returns the value for field, or nil if the node is not an object
// or has no such field. First match wins when keys repeat.
func Get(n *Node, field string) *Node {
	for i := range n.Fields {
		if n.Fields[i].String == field {
			return n.Values[i]
		}
	}
	return nil
}

// Visit walks the node and its values depth first. f is called before
// (isPost false) and after (isPost true) each node's children; returning
// false from the pre call skips the children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range n.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}
