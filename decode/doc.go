// Package decode reads UBJSON documents into IR nodes.
//
// # Usage
//
//	// Decode one document from a byte slice
//	node, err := decode.DecodeBytes(data)
//
//	// Decode with options
//	node, err := decode.Decode(r, decode.NoBytes(true), decode.MaxDepth(64))
//
// Decode pulls exactly one document's bytes from its reader and stops,
// so consecutive documents can be decoded from the same stream. All
// malformed-input failures are *Error values carrying the byte offset
// at which the problem was found.
//
// # Related Packages
//
//   - github.com/ubjson-format/go-ubjson/ir - IR representation
//   - github.com/ubjson-format/go-ubjson/encode - Encode IR to UBJSON
package decode
