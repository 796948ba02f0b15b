package decode

import "github.com/ubjson-format/go-ubjson/ir"

type DecodeOption func(*decodeOpts)

type decodeOpts struct {
	noBytes    bool
	internKeys bool
	objectHook func(*ir.Node) (*ir.Node, error)
	pairsHook  func([]ir.KeyVal) (*ir.Node, error)
	maxDepth   int
}

// NoBytes disables the uint8-typed-array shortcut: such arrays decode
// to a plain array of small integers instead of a byte string.
func NoBytes(v bool) DecodeOption {
	return func(o *decodeOpts) { o.noBytes = v }
}

// InternKeys deduplicates repeated object key storage within one decode
// call. This is an optimization hint, not a semantic change.
func InternKeys(v bool) DecodeOption {
	return func(o *decodeOpts) { o.internKeys = v }
}

// ObjectHook installs a callback invoked with each fully materialized
// object; its return value replaces the object in the result.
func ObjectHook(f func(*ir.Node) (*ir.Node, error)) DecodeOption {
	return func(o *decodeOpts) { o.objectHook = f }
}

// ObjectPairsHook is like ObjectHook but receives the ordered key/value
// pairs. It takes precedence over ObjectHook when both are set.
func ObjectPairsHook(f func([]ir.KeyVal) (*ir.Node, error)) DecodeOption {
	return func(o *decodeOpts) { o.pairsHook = f }
}

// MaxDepth bounds container nesting against adversarial input. Zero
// (the default) means unlimited; exceeding the bound fails with
// wire.ErrMaxDepth rather than a malformed-input *Error.
func MaxDepth(n int) DecodeOption {
	return func(o *decodeOpts) { o.maxDepth = n }
}
