package ir

import (
	"bytes"
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BytesType:
		return bytes.Compare(a.Bytes, b.Bytes)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, b)
	case ObjectType:
		return compareObjects(a, b)
	case NullType:
		return 0
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Bytes < Array < Object
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case BytesType:
		return 4
	case ArrayType:
		return 5
	case ObjectType:
		return 6
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	// Sub-rank: Int64 < Float32 < Float64 < decimal text
	subRankA := numberSubRank(a)
	subRankB := numberSubRank(b)
	if subRankA != subRankB {
		return cmp.Compare(subRankA, subRankB)
	}

	if a.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64)
	}
	if a.Float32 != nil {
		return cmp.Compare(*a.Float32, *b.Float32)
	}
	if a.Float64 != nil {
		return cmp.Compare(*a.Float64, *b.Float64)
	}
	return strings.Compare(a.Number, b.Number)
}

func numberSubRank(n *Node) int {
	if n.Int64 != nil {
		return 0
	}
	if n.Float32 != nil {
		return 1
	}
	if n.Float64 != nil {
		return 2
	}
	return 3
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareObjects(a, b *Node) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
