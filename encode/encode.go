package encode

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/ubjson-format/go-ubjson/ir"
	"github.com/ubjson-format/go-ubjson/wire"
)

// EncState holds per-call encoder state. A fresh one is made for each
// Encode call, so concurrent encodes of disjoint trees are safe.
type EncState struct {
	w   io.Writer
	buf [9]byte

	containerCount bool
	sortKeys       bool
	noFloat32      bool
	fallback       func(*ir.Node) (*ir.Node, error)
	maxDepth       int

	// open tracks the identity of every container on the live ancestor
	// path. A container re-entered while still open is a cycle; the
	// same container at two non-overlapping positions is fine.
	open  map[*ir.Node]struct{}
	stack []encFrame
}

type encFrame struct {
	node *ir.Node
	obj  bool
	i    int
	// order is the field permutation under SortKeys; nil means
	// natural entry order.
	order []int
}

// Encode writes node to w as a UBJSON document. The sink is never
// closed; on error its contents are undefined and should be discarded.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		w:    w,
		open: map[*ir.Node]struct{}{},
	}
	for _, opt := range opts {
		opt(es)
	}
	return es.encode(node)
}

// EncodeBytes is Encode into a fresh byte slice.
func EncodeBytes(node *ir.Node, opts ...EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(node, &buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (es *EncState) encode(node *ir.Node) error {
	container, err := es.resolveItem(node)
	if err != nil || container == nil {
		return err
	}
	if err := es.push(container); err != nil {
		return err
	}
	return es.run()
}

// run drains the frame stack, iterating container entries without
// recursing: beginning a nested container pushes a frame, finishing one
// pops it.
func (es *EncState) run() error {
	for len(es.stack) > 0 {
		fr := &es.stack[len(es.stack)-1]
		if fr.i >= len(fr.node.Values) {
			if err := es.pop(fr); err != nil {
				return err
			}
			continue
		}
		idx := fr.i
		if fr.order != nil {
			idx = fr.order[fr.i]
		}
		fr.i++

		if fr.obj {
			key := fr.node.Fields[idx]
			if key == nil || key.Type != ir.StringType {
				return fmt.Errorf("%w: field %d is %s", ErrKeyType, idx, keyType(key))
			}
			if err := es.writeKey(key.String); err != nil {
				return err
			}
		}

		container, err := es.resolveItem(fr.node.Values[idx])
		if err != nil {
			return err
		}
		if container != nil {
			if err := es.push(container); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveItem encodes item if it is a scalar, returns it if it is a
// container to be walked, and otherwise routes it through the fallback
// callback once before giving up.
func (es *EncState) resolveItem(item *ir.Node) (*ir.Node, error) {
	usedFallback := false
	for {
		handled, err := es.encodeValue(item)
		if err != nil {
			return nil, err
		}
		if handled {
			return nil, nil
		}
		if item != nil && (item.Type == ir.ArrayType || item.Type == ir.ObjectType) {
			return item, nil
		}
		if es.fallback == nil || usedFallback {
			return nil, fmt.Errorf("%w of type %s", ErrCannotEncode, keyType(item))
		}
		item, err = es.fallback(item)
		if err != nil {
			return nil, err
		}
		usedFallback = true
	}
}

// encodeValue writes a scalar value and reports whether it did.
// Classification order matters: a node is checked as text, null, bool,
// integer, float, decimal, then byte string.
func (es *EncState) encodeValue(item *ir.Node) (bool, error) {
	if item == nil {
		return false, nil
	}
	switch item.Type {
	case ir.StringType:
		return true, es.writeString(item.String)
	case ir.NullType:
		return true, es.writeMarker(wire.Null)
	case ir.BoolType:
		if item.Bool {
			return true, es.writeMarker(wire.True)
		}
		return true, es.writeMarker(wire.False)
	case ir.NumberType:
		switch {
		case item.Int64 != nil:
			return true, es.writeInt(*item.Int64)
		case item.Float32 != nil:
			return true, es.writeFloat32(*item.Float32)
		case item.Float64 != nil:
			return true, es.writeFloat64(*item.Float64)
		case item.Number != "":
			return true, es.writeHighPrec(item.Number)
		}
		// NumberType with nothing set; leave it to the fallback.
		return false, nil
	case ir.BytesType:
		return true, es.writeBytes(item.Bytes)
	}
	return false, nil
}

func (es *EncState) push(n *ir.Node) error {
	if _, isOpen := es.open[n]; isOpen {
		return ErrCircular
	}
	if es.maxDepth > 0 && len(es.stack) >= es.maxDepth {
		return fmt.Errorf("%w: depth %d", wire.ErrMaxDepth, len(es.stack)+1)
	}
	obj := n.Type == ir.ObjectType
	if obj && len(n.Fields) != len(n.Values) {
		return fmt.Errorf("%w: object has %d fields for %d values",
			ErrCannotEncode, len(n.Fields), len(n.Values))
	}
	start := wire.ArrayStart
	if obj {
		start = wire.ObjectStart
	}
	if err := es.writeMarker(start); err != nil {
		return err
	}
	if es.containerCount {
		if err := es.writeMarker(wire.ContainerCount); err != nil {
			return err
		}
		if err := es.writeInt(int64(len(n.Values))); err != nil {
			return err
		}
	}
	es.open[n] = struct{}{}
	fr := encFrame{node: n, obj: obj}
	if obj && es.sortKeys {
		fr.order = sortedOrder(n)
	}
	es.stack = append(es.stack, fr)
	return nil
}

func (es *EncState) pop(fr *encFrame) error {
	if !es.containerCount {
		end := wire.ArrayEnd
		if fr.obj {
			end = wire.ObjectEnd
		}
		if err := es.writeMarker(end); err != nil {
			return err
		}
	}
	delete(es.open, fr.node)
	es.stack = es.stack[:len(es.stack)-1]
	return nil
}

func sortedOrder(n *ir.Node) []int {
	order := make([]int, len(n.Fields))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return n.Fields[order[a]].String < n.Fields[order[b]].String
	})
	return order
}

func keyType(n *ir.Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Type.String()
}

func (es *EncState) write(p []byte) error {
	_, err := es.w.Write(p)
	return err
}
