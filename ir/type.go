package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	BytesType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:   "Null",
		BoolType:   "Bool",
		NumberType: "Number",
		StringType: "String",
		BytesType:  "Bytes",
		ArrayType:  "Array",
		ObjectType: "Object",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":   NullType,
		"Bool":   BoolType,
		"Number": NumberType,
		"String": StringType,
		"Bytes":  BytesType,
		"Array":  ArrayType,
		"Object": ObjectType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		NumberType,
		StringType,
		BytesType,
		ArrayType,
		ObjectType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, ObjectType:
		return false
	default:
		return true
	}
}
