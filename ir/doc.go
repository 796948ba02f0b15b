// Package ir defines the in-memory representation of UBJSON values.
//
// # Overview
//
// UBJSON documents are represented as trees of Node structures. Each
// node has a Type and type-specific value fields:
//
//   - NullType: no value
//   - BoolType: Bool
//   - NumberType: exactly one of Int64, Float32, Float64, Number
//   - StringType: String (valid UTF-8)
//   - BytesType: Bytes (decoded from uint8-typed arrays)
//   - ArrayType: Values
//   - ObjectType: Fields (StringType keys) parallel to Values
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "key": ir.FromString("value"),
//	})
//	arr := ir.FromSlice([]*ir.Node{
//	    ir.FromInt(1),
//	    ir.FromInt(2),
//	})
//
// # Numbers
//
// Number values are placed under:
//   - Int64: integers representable in 64 bits
//   - Float32 / Float64: IEEE floats, mirroring the wire width they were
//     decoded from (or that the caller wants preferred on encode)
//   - Number: decimal text for anything else, including integers outside
//     64-bit range and the non-finite tokens "NaN", "Infinity",
//     "-Infinity"
//
// # Objects
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i],
// so there will always be the same number of fields as values. Keys are
// always StringType; entry order is preserved by both the decoder and
// (unless key sorting is requested) the encoder.
//
// # Comparison
//
// Nodes can be compared for a total order:
//
//	equal := ir.Compare(a, b) == 0
//
// The order is used by the encoder's sorted-keys mode and by tests.
//
// # Thread Safety
//
// Node structures are not thread-safe. Encoding the same mutable tree
// from multiple goroutines while mutating it is not supported; clone
// nodes per goroutine if needed.
//
// # Related Packages
//
//   - github.com/ubjson-format/go-ubjson/encode - Encodes nodes to UBJSON bytes
//   - github.com/ubjson-format/go-ubjson/decode - Decodes UBJSON bytes to nodes
package ir
