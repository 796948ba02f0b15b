package decode

import (
	"bytes"
	"fmt"
	"io"
)

// reader is the pull-based byte source. It never reads past what the
// current document needs (single-byte marker pulls, exact-length bulk
// reads), so a seekable source is left positioned at the start of the
// next document, and it never closes the underlying reader.
type reader struct {
	r   io.Reader
	off int64
	b   [8]byte
}

func newReader(r io.Reader) *reader {
	return &reader{r: r}
}

func (rd *reader) readByte() (byte, error) {
	n, err := io.ReadFull(rd.r, rd.b[:1])
	rd.off += int64(n)
	if err != nil {
		return 0, rd.truncated("marker or payload byte")
	}
	return rd.b[0], nil
}

// readFixed reads n <= 8 bytes into the scratch buffer.
func (rd *reader) readFixed(n int, what string) ([]byte, error) {
	got, err := io.ReadFull(rd.r, rd.b[:n])
	rd.off += int64(got)
	if err != nil {
		return nil, rd.truncated(what)
	}
	return rd.b[:n], nil
}

// readN reads exactly n bytes. The buffer grows with the data actually
// received, so a hostile length prefix cannot force a huge allocation
// up front.
func (rd *reader) readN(n int64, what string) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	got, err := io.CopyN(&buf, rd.r, n)
	rd.off += got
	if err != nil {
		return nil, rd.truncated(what)
	}
	return buf.Bytes(), nil
}

func (rd *reader) truncated(what string) *Error {
	return &Error{
		Msg:    fmt.Sprintf("insufficient input reading %s", what),
		Offset: rd.off,
		Err:    ErrTruncated,
	}
}
