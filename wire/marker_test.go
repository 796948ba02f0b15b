package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWidth(t *testing.T) {
	tests := []struct {
		marker Marker
		width  int
	}{
		{Int8, 1},
		{UInt8, 1},
		{Int16, 2},
		{Int32, 4},
		{Float32, 4},
		{Int64, 8},
		{Float64, 8},
		{Null, 0},
		{String, 0},
		{HighPrec, 0},
		{ArrayStart, 0},
	}
	for _, tt := range tests {
		t.Run(tt.marker.String(), func(t *testing.T) {
			require.Equal(t, tt.width, Width(tt.marker))
		})
	}
}

func TestPredicates(t *testing.T) {
	typeMarkers := []Marker{
		Null, True, False, Int8, UInt8, Int16, Int32, Int64,
		Float32, Float64, HighPrec, Char, String,
	}
	for _, m := range typeMarkers {
		require.True(t, IsType(m), "IsType(%s)", m)
	}
	for _, m := range []Marker{ObjectStart, ObjectEnd, ArrayStart, ArrayEnd,
		ContainerType, ContainerCount, NoOp, Marker(0), Marker('x')} {
		require.False(t, IsType(m), "IsType(%s)", m)
	}

	for _, m := range []Marker{Int8, UInt8, Int16, Int32, Int64} {
		require.True(t, IsInt(m), "IsInt(%s)", m)
	}
	for _, m := range []Marker{Float32, Float64, HighPrec, Char, NoOp} {
		require.False(t, IsInt(m), "IsInt(%s)", m)
	}

	for _, m := range []Marker{Null, True, False} {
		require.True(t, IsNoData(m), "IsNoData(%s)", m)
	}
	for _, m := range []Marker{Int8, UInt8, String, NoOp} {
		require.False(t, IsNoData(m), "IsNoData(%s)", m)
	}
}

func TestMarkerString(t *testing.T) {
	require.Equal(t, "'Z'", Null.String())
	require.Equal(t, "'['", ArrayStart.String())
	require.Equal(t, "0x00", Marker(0).String())
	require.Equal(t, "0xff", Marker(0xff).String())
}
