package decode

import (
	"testing"

	"github.com/ubjson-format/go-ubjson/encode"
)

func FuzzDecode(f *testing.F) {
	// Seed with various valid documents
	seeds := [][]byte{
		// Primitives
		[]byte("Z"),
		[]byte("T"),
		[]byte("F"),
		{'U', 42},
		{'i', 0xd6},
		{'I', 0x12, 0x34},
		{'l', 0x00, 0x01, 0x00, 0x00},
		{'L', 0, 0, 0, 1, 0, 0, 0, 0},
		{'d', 0x3f, 0xc0, 0x00, 0x00},
		{'D', 0x3f, 0xf8, 0, 0, 0, 0, 0, 0},
		append([]byte{'H', 'U', 6}, "3.14e2"...),
		[]byte("Ca"),
		append([]byte{'S', 'U', 5}, "hello"...),

		// Arrays, all container forms
		[]byte("[]"),
		{'[', 'U', 1, 'U', 2, ']'},
		{'[', 'N', 'U', 1, 'N', ']'},
		{'[', '#', 'U', 2, 'U', 1, 'U', 2},
		{'[', '$', 'Z', '#', 'U', 3},
		{'[', '$', 'U', '#', 'U', 3, 1, 2, 3},
		{'[', '$', 'i', '#', 'U', 2, 0xff, 0xfe},
		[]byte("[[][]]"),

		// Objects
		[]byte("{}"),
		{'{', 'U', 1, 'a', 'U', 1, '}'},
		{'{', '#', 'U', 1, 'U', 1, 'a', 'T'},
		{'{', '$', 'Z', '#', 'U', 1, 'U', 1, 'a'},
		{'{', 'U', 1, 'a', '{', 'U', 1, 'b', 'Z', '}', '}'},

		// Truncations and junk
		[]byte("["),
		{'S', 'U', 5},
		{'[', '$'},
		[]byte("\x00\xff"),
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		// Primary target: decode should not panic
		node, err := DecodeBytes(data, MaxDepth(128))
		if err != nil {
			return // decode errors are expected for random input
		}

		// Secondary: a decoded document should re-encode cleanly
		out, err := encode.EncodeBytes(node)
		if err != nil {
			t.Fatalf("decoded value failed to encode: %v", err)
		}

		// Tertiary: the re-encoded form should decode again
		if _, err := DecodeBytes(out); err != nil {
			t.Fatalf("re-encoded document failed to decode: %v", err)
		}
	})
}
