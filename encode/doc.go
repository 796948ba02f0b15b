// Package encode converts ir nodes to UBJSON bytes.
//
// # Usage
//
//	node := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("alice"),
//	    "age":  ir.FromInt(30),
//	})
//	data, err := encode.EncodeBytes(node)
//
//	// Encode with options
//	err := encode.Encode(node, w, encode.ContainerCount(true), encode.SortKeys(true))
//
// The encoder walks containers with an explicit frame stack, so nesting
// depth is bounded by memory rather than the goroutine stack. Use
// MaxDepth to cap it explicitly.
//
// # Related Packages
//
//   - github.com/ubjson-format/go-ubjson/ir - value representation
//   - github.com/ubjson-format/go-ubjson/decode - bytes back to ir nodes
package encode
