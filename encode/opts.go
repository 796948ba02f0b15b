package encode

import "github.com/ubjson-format/go-ubjson/ir"

type EncodeOption func(*EncState)

// ContainerCount writes every container (including empty ones) with an
// explicit element count instead of an end delimiter. This trades a few
// bytes for decode-side lookahead avoidance.
func ContainerCount(v bool) EncodeOption {
	return func(es *EncState) { es.containerCount = v }
}

// SortKeys writes object entries in ascending key order instead of
// entry order, making output deterministic for equal key sets.
func SortKeys(v bool) EncodeOption {
	return func(es *EncState) { es.sortKeys = v }
}

// NoFloat32 disables the 32-bit float encoding for all finite values
// except zero, which still prefers the 32-bit form.
func NoFloat32(v bool) EncodeOption {
	return func(es *EncState) { es.noFloat32 = v }
}

// Fallback installs a callback invoked for values that match no known
// capability. Its return value is encoded in place of the original; if
// the replacement is also unencodable, encoding fails.
func Fallback(f func(*ir.Node) (*ir.Node, error)) EncodeOption {
	return func(es *EncState) { es.fallback = f }
}

// MaxDepth bounds container nesting. Zero (the default) means
// unlimited; exceeding the bound fails with wire.ErrMaxDepth.
func MaxDepth(n int) EncodeOption {
	return func(es *EncState) { es.maxDepth = n }
}
