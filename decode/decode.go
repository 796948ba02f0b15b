package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ubjson-format/go-ubjson/ir"
	"github.com/ubjson-format/go-ubjson/wire"
)

// maxPrealloc caps slice capacity reserved from a declared count, so a
// hostile count cannot force a large allocation before any element
// bytes have been read.
const maxPrealloc = 1024

// Decode reads one document from r and returns its value. r is read
// exactly up to the end of the document and never closed, so documents
// can be decoded back to back from the same reader. Trailing bytes are
// left untouched.
func Decode(r io.Reader, opts ...DecodeOption) (*ir.Node, error) {
	d := &decoder{rd: newReader(r)}
	for _, opt := range opts {
		opt(&d.opts)
	}
	if d.opts.internKeys {
		d.interned = map[string]string{}
	}
	return d.decode()
}

// DecodeBytes decodes one document from b. Bytes after the document
// are ignored.
func DecodeBytes(b []byte, opts ...DecodeOption) (*ir.Node, error) {
	return Decode(bytes.NewReader(b), opts...)
}

type decoder struct {
	rd   *reader
	opts decodeOpts

	interned map[string]string

	// One marker of pushback, so the delimiter-form termination probe
	// can return a non-end marker to the element path untouched.
	pending    wire.Marker
	hasPending bool
}

func (d *decoder) readMarker() (wire.Marker, error) {
	if d.hasPending {
		d.hasPending = false
		return d.pending, nil
	}
	b, err := d.rd.readByte()
	if err != nil {
		return 0, err
	}
	return wire.Marker(b), nil
}

func (d *decoder) unread(m wire.Marker) {
	d.pending = m
	d.hasPending = true
}

func (d *decoder) errAt(off int64, sentinel error, format string, args ...any) *Error {
	return &Error{
		Msg:    fmt.Sprintf(format, args...),
		Offset: off,
		Err:    sentinel,
	}
}

func (d *decoder) intern(s string) string {
	if d.interned == nil {
		return s
	}
	if v, ok := d.interned[s]; ok {
		return v
	}
	d.interned[s] = s
	return s
}

func (d *decoder) decode() (*ir.Node, error) {
	m, err := d.readMarker()
	if err != nil {
		return nil, err
	}
	switch m {
	case wire.ArrayStart:
		return d.decodeContainer(false)
	case wire.ObjectStart:
		return d.decodeContainer(true)
	}
	return d.readScalar(m)
}

// frame is one in-progress container on the explicit stack.
type frame struct {
	node     *ir.Node
	obj      bool
	elemType wire.Marker // 0 when no element type was declared
	counting bool
	count    int64  // remaining elements, valid when counting
	key      string // decoded key awaiting its value, objects only
}

// add folds a finished element into the container and consumes the
// pending key and, when counting, one unit of the remaining count.
func (f *frame) add(n *ir.Node) {
	if f.obj {
		f.node.Fields = append(f.node.Fields, ir.FromString(f.key))
	}
	f.node.Values = append(f.node.Values, n)
	if f.counting {
		f.count--
	}
}

// openContainer parses the optional $type and #count parameters that
// may follow a start marker. It returns a finished node when one of the
// count shortcuts applies (no-data element type, or a uint8 array read
// as a byte string), otherwise a frame for the element loop.
func (d *decoder) openContainer(obj bool) (*ir.Node, *frame, error) {
	fr := &frame{obj: obj}
	m, err := d.readMarker()
	if err != nil {
		return nil, nil, err
	}
	if m == wire.ContainerType {
		tm, err := d.readMarker()
		if err != nil {
			return nil, nil, err
		}
		if !wire.IsType(tm) {
			return nil, nil, d.errAt(d.rd.off-1, ErrInvalidMarker,
				"invalid container element type %s", tm)
		}
		fr.elemType = tm
		m, err = d.readMarker()
		if err != nil {
			return nil, nil, err
		}
		if m != wire.ContainerCount {
			return nil, nil, d.errAt(d.rd.off-1, ErrInvalidMarker,
				"container element type without a count")
		}
	}
	if m == wire.ContainerCount {
		n, err := d.readLength("count")
		if err != nil {
			return nil, nil, err
		}
		fr.counting = true
		fr.count = n
		if wire.IsNoData(fr.elemType) {
			node, err := d.noDataContainer(fr)
			return node, nil, err
		}
		if !obj && fr.elemType == wire.UInt8 && !d.opts.noBytes {
			b, err := d.rd.readN(n, "byte string payload")
			if err != nil {
				return nil, nil, err
			}
			if b == nil {
				b = []byte{}
			}
			return ir.FromBytes(b), nil, nil
		}
		fr.init(n)
		return nil, fr, nil
	}
	d.unread(m)
	fr.init(0)
	return nil, fr, nil
}

// init allocates the result node, reserving capacity for the declared
// count up to maxPrealloc.
func (f *frame) init(count int64) {
	hint := min(count, maxPrealloc)
	f.node = &ir.Node{Type: ir.ArrayType, Values: make([]*ir.Node, 0, hint)}
	if f.obj {
		f.node.Type = ir.ObjectType
		f.node.Fields = make([]*ir.Node, 0, hint)
	}
}

// noDataContainer materializes a container declared with a payload-free
// element type. No element bytes follow the count; arrays repeat the
// value, objects still carry their keys on the wire.
func (d *decoder) noDataContainer(fr *frame) (*ir.Node, error) {
	elem := func() *ir.Node {
		switch fr.elemType {
		case wire.True:
			return ir.FromBool(true)
		case wire.False:
			return ir.FromBool(false)
		}
		return ir.Null()
	}
	fr.init(fr.count)
	for i := int64(0); i < fr.count; i++ {
		if fr.obj {
			km, err := d.readMarker()
			if err != nil {
				return nil, err
			}
			key, err := d.readObjectKey(km)
			if err != nil {
				return nil, err
			}
			fr.node.Fields = append(fr.node.Fields, ir.FromString(key))
		}
		fr.node.Values = append(fr.node.Values, elem())
	}
	if fr.obj {
		return d.finishObject(fr.node)
	}
	return fr.node, nil
}

// decodeContainer runs the element loop over an explicit frame stack;
// nesting depth costs heap frames, not call stack.
func (d *decoder) decodeContainer(obj bool) (*ir.Node, error) {
	node, fr, err := d.openContainer(obj)
	if err != nil {
		return nil, err
	}
	if fr == nil {
		return node, nil
	}
	stack := []*frame{fr}

	for {
		cur := stack[len(stack)-1]

		done, err := d.atEnd(cur)
		if err != nil {
			return nil, err
		}
		if done {
			fin := cur.node
			if cur.obj {
				if fin, err = d.finishObject(fin); err != nil {
					return nil, err
				}
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return fin, nil
			}
			stack[len(stack)-1].add(fin)
			continue
		}

		if cur.obj {
			km, err := d.readMarker()
			if err != nil {
				return nil, err
			}
			key, err := d.readObjectKey(km)
			if err != nil {
				return nil, err
			}
			cur.key = key
		}

		em := cur.elemType
		if em == 0 {
			if em, err = d.readMarker(); err != nil {
				return nil, err
			}
		}
		switch em {
		case wire.ArrayStart, wire.ObjectStart:
			if d.opts.maxDepth > 0 && len(stack) >= d.opts.maxDepth {
				return nil, fmt.Errorf("%w: depth %d", wire.ErrMaxDepth, len(stack)+1)
			}
			child, childFr, err := d.openContainer(em == wire.ObjectStart)
			if err != nil {
				return nil, err
			}
			if childFr == nil {
				cur.add(child)
			} else {
				stack = append(stack, childFr)
			}
		default:
			n, err := d.readScalar(em)
			if err != nil {
				return nil, err
			}
			cur.add(n)
		}
	}
}

// atEnd reports whether cur's terminator condition holds: count
// exhausted when counting, otherwise the matching end delimiter (which
// it consumes). No-op markers are skipped here, and only here; an
// untyped, uncounted array is the one context that admits them.
func (d *decoder) atEnd(cur *frame) (bool, error) {
	if cur.counting {
		return cur.count == 0, nil
	}
	for {
		m, err := d.readMarker()
		if err != nil {
			return false, err
		}
		if !cur.obj && m == wire.NoOp {
			continue
		}
		end := wire.ArrayEnd
		if cur.obj {
			end = wire.ObjectEnd
		}
		if m == end {
			return true, nil
		}
		d.unread(m)
		return false, nil
	}
}

// finishObject applies the object hooks. The pairs hook wins when both
// are set.
func (d *decoder) finishObject(n *ir.Node) (*ir.Node, error) {
	switch {
	case d.opts.pairsHook != nil:
		kvs := make([]ir.KeyVal, len(n.Fields))
		for i, f := range n.Fields {
			kvs[i] = ir.KeyVal{Key: f.String, Val: n.Values[i]}
		}
		return d.opts.pairsHook(kvs)
	case d.opts.objectHook != nil:
		return d.opts.objectHook(n)
	}
	return n, nil
}
