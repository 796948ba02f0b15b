package ir

import (
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		// Type Ranking: Null < Bool < Number < String < Bytes < Array < Object
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Number", FromBool(true), FromInt(1), -1},
		{"Number < String", FromInt(1), FromString("a"), -1},
		{"String < Bytes", FromString("a"), FromBytes(nil), -1},
		{"Bytes < Array", FromBytes([]byte{1}), FromSlice(nil), -1},
		{"Array < Object", FromSlice(nil), FromKeyVals(nil), -1},

		// Bool Comparison
		{"false < true", FromBool(false), FromBool(true), -1},
		{"true > false", FromBool(true), FromBool(false), 1},
		{"true == true", FromBool(true), FromBool(true), 0},

		// Number Comparison: Int64 < Float32 < Float64 < decimal text
		{"Int < Float32", FromInt(1), FromFloat32(1.0), -1},
		{"Float32 < Float64", FromFloat32(1.0), FromFloat(1.0), -1},
		{"Float64 < Decimal", FromFloat(1.0), FromDecimal("1"), -1},
		{"Int < Int", FromInt(1), FromInt(2), -1},
		{"Float64 < Float64", FromFloat(1.0), FromFloat(2.0), -1},
		{"Decimal < Decimal", FromDecimal("1"), FromDecimal("2"), -1},

		// String Comparison
		{"String < String", FromString("a"), FromString("b"), -1},
		{"String == String", FromString("a"), FromString("a"), 0},

		// Bytes Comparison
		{"Bytes < Bytes", FromBytes([]byte{1}), FromBytes([]byte{2}), -1},
		{"Short Bytes < Long Bytes", FromBytes([]byte{1}), FromBytes([]byte{1, 2}), -1},

		// Array Comparison
		{"Empty Array == Empty Array", FromSlice(nil), FromSlice(nil), 0},
		{"Short Array < Long Array", FromSlice([]*Node{FromInt(1)}), FromSlice([]*Node{FromInt(1), FromInt(2)}), -1},
		{"Array Element Comparison", FromSlice([]*Node{FromInt(1)}), FromSlice([]*Node{FromInt(2)}), -1},

		// Object Comparison
		{"Empty Object == Empty Object", FromKeyVals(nil), FromKeyVals(nil), 0},
		{"Short Object < Long Object",
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}}),
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}, {Key: "b", Val: FromInt(2)}}),
			-1},
		{"Object Key Comparison",
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}}),
			FromKeyVals([]KeyVal{{Key: "b", Val: FromInt(1)}}),
			-1},
		{"Object Value Comparison",
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}}),
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(2)}}),
			-1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %v, want %v", got, tt.expected)
			}
			// Test symmetry
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare(b, a) = %v, want %v", got, -tt.expected)
			}
		})
	}
}
