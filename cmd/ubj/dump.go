package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/ubjson-format/go-ubjson/decode"
	"github.com/ubjson-format/go-ubjson/ir"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		cfg.Dump.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	pal := newPalette(cfg, cc.Out)
	for _, arg := range inputArgs(args) {
		data, err := readArg(arg)
		if err != nil {
			return err
		}
		node, err := decode.DecodeBytes(data)
		if err != nil {
			fail("Failed to decode ubjson: %v", err)
			return cli.ExitCodeErr(exitDecode)
		}
		if err := dumpNode(cc.Out, node, 0, pal); err != nil {
			fail("I/O failure: %v", err)
			return cli.ExitCodeErr(exitOpenOut)
		}
	}
	return nil
}

type palette struct {
	enabled bool
	kind    *color.Color
	key     *color.Color
	str     *color.Color
	num     *color.Color
}

func newPalette(cfg *DumpConfig, w io.Writer) *palette {
	p := &palette{
		kind: color.New(color.FgCyan),
		key:  color.New(color.FgYellow),
		str:  color.New(color.FgGreen),
		num:  color.New(color.FgMagenta),
	}
	if cfg.Color {
		p.enabled = true
		return p
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		p.enabled = true
	}
	return p
}

func (p *palette) paint(c *color.Color, s string) string {
	if !p.enabled {
		return s
	}
	return c.Sprint(s)
}

func dumpNode(w io.Writer, n *ir.Node, depth int, p *palette) error {
	pad := strings.Repeat("  ", depth)
	switch n.Type {
	case ir.ArrayType:
		if _, err := fmt.Fprintf(w, "%s (%d)\n",
			p.paint(p.kind, "array"), len(n.Values)); err != nil {
			return err
		}
		for _, v := range n.Values {
			if _, err := fmt.Fprintf(w, "%s  - ", pad); err != nil {
				return err
			}
			if err := dumpNode(w, v, depth+1, p); err != nil {
				return err
			}
		}
		return nil
	case ir.ObjectType:
		if _, err := fmt.Fprintf(w, "%s (%d)\n",
			p.paint(p.kind, "object"), len(n.Fields)); err != nil {
			return err
		}
		for i, f := range n.Fields {
			if _, err := fmt.Fprintf(w, "%s  %s: ", pad,
				p.paint(p.key, f.String)); err != nil {
				return err
			}
			if err := dumpNode(w, n.Values[i], depth+1, p); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := fmt.Fprintf(w, "%s %s\n",
		p.paint(p.kind, leafKind(n)), p.paint(leafColor(n, p), leafValue(n)))
	return err
}

func leafKind(n *ir.Node) string {
	switch n.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		return "bool"
	case ir.StringType:
		return "string"
	case ir.BytesType:
		return "bytes"
	case ir.NumberType:
		switch {
		case n.Int64 != nil:
			return "int"
		case n.Float32 != nil:
			return "float32"
		case n.Float64 != nil:
			return "float64"
		}
		return "decimal"
	}
	return strings.ToLower(n.Type.String())
}

func leafColor(n *ir.Node, p *palette) *color.Color {
	if n.Type == ir.StringType {
		return p.str
	}
	return p.num
}

func leafValue(n *ir.Node) string {
	switch n.Type {
	case ir.NullType:
		return ""
	case ir.BoolType:
		return fmt.Sprintf("%t", n.Bool)
	case ir.StringType:
		return fmt.Sprintf("%q", n.String)
	case ir.BytesType:
		if len(n.Bytes) > 16 {
			return fmt.Sprintf("% x... (%d bytes)", n.Bytes[:16], len(n.Bytes))
		}
		return fmt.Sprintf("% x", n.Bytes)
	case ir.NumberType:
		switch {
		case n.Int64 != nil:
			return fmt.Sprintf("%d", *n.Int64)
		case n.Float32 != nil:
			return fmt.Sprintf("%g", *n.Float32)
		case n.Float64 != nil:
			return fmt.Sprintf("%g", *n.Float64)
		}
		return n.Number
	}
	return ""
}
