// Package ubjson implements the UBJSON binary document format: a
// self-describing, length-prefixed encoding of the usual JSON value
// types plus byte strings and arbitrary-precision decimals.
//
// This package re-exports the engines' entry points for the common
// case; the encode and decode packages hold the options and error
// types.
//
// # Usage
//
//	data, err := ubjson.EncodeBytes(ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("alice"),
//	    "age":  ir.FromInt(30),
//	}))
//
//	node, err := ubjson.DecodeBytes(data)
package ubjson

import (
	"io"

	"github.com/ubjson-format/go-ubjson/decode"
	"github.com/ubjson-format/go-ubjson/encode"
	"github.com/ubjson-format/go-ubjson/ir"
)

// Encode writes node to w as one UBJSON document.
func Encode(node *ir.Node, w io.Writer, opts ...encode.EncodeOption) error {
	return encode.Encode(node, w, opts...)
}

// EncodeBytes encodes node into a fresh byte slice.
func EncodeBytes(node *ir.Node, opts ...encode.EncodeOption) ([]byte, error) {
	return encode.EncodeBytes(node, opts...)
}

// Decode reads one UBJSON document from r. The reader is consumed
// exactly up to the document's end and never closed.
func Decode(r io.Reader, opts ...decode.DecodeOption) (*ir.Node, error) {
	return decode.Decode(r, opts...)
}

// DecodeBytes decodes one UBJSON document from b; trailing bytes are
// ignored.
func DecodeBytes(b []byte, opts ...decode.DecodeOption) (*ir.Node, error) {
	return decode.DecodeBytes(b, opts...)
}
