package decode

import (
	"errors"
	"fmt"
)

// Error reports a malformed or truncated document. Offset is the byte
// position in the source at which the violation was detected. Every
// decoding failure is an *Error wrapping one of the sentinels below,
// except wire.ErrMaxDepth and errors returned by hooks.
type Error struct {
	Msg    string
	Offset int64
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (at byte %d)", e.Msg, e.Offset)
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrTruncated      = errors.New("insufficient input")
	ErrInvalidMarker  = errors.New("invalid marker")
	ErrNegativeLength = errors.New("negative length")
	ErrInvalidUTF8    = errors.New("invalid UTF-8")
	ErrBadDecimal     = errors.New("invalid decimal text")
)
