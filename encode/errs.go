package encode

import "errors"

// Every encoding failure wraps one of these sentinels, except write
// errors from the sink (returned as-is) and wire.ErrMaxDepth.
var (
	ErrCircular     = errors.New("circular reference detected")
	ErrKeyType      = errors.New("mapping keys can only be strings")
	ErrCannotEncode = errors.New("cannot encode value")
	ErrBadDecimal   = errors.New("invalid decimal text")
)
