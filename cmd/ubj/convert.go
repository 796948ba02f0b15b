package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/ubjson-format/go-ubjson/decode"
	"github.com/ubjson-format/go-ubjson/encode"
	"github.com/ubjson-format/go-ubjson/ir"
)

func from(cfg *FromConfig, cc *cli.Context, args []string) error {
	args, err := cfg.From.Parse(cc, args)
	if err != nil {
		cfg.From.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	encOpts := []encode.EncodeOption{
		encode.SortKeys(!cfg.NoSort),
		encode.ContainerCount(cfg.Count),
	}
	for _, arg := range inputArgs(args) {
		data, err := readArg(arg)
		if err != nil {
			return err
		}
		node, err := textToNode(cfg.MainConfig, data)
		if err != nil {
			fail("Failed to decode %s: %v", textFormat(cfg.MainConfig), err)
			return cli.ExitCodeErr(exitDecode)
		}
		if err := encode.Encode(node, cc.Out, encOpts...); err != nil {
			fail("Failed to encode to ubjson: %v", err)
			return cli.ExitCodeErr(exitEncode)
		}
	}
	return nil
}

func to(cfg *ToConfig, cc *cli.Context, args []string) error {
	args, err := cfg.To.Parse(cc, args)
	if err != nil {
		cfg.To.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range inputArgs(args) {
		data, err := readArg(arg)
		if err != nil {
			return err
		}
		node, err := decode.DecodeBytes(data, decode.NoBytes(cfg.NoBytes))
		if err != nil {
			fail("Failed to decode ubjson: %v", err)
			return cli.ExitCodeErr(exitDecode)
		}
		out, err := nodeToText(cfg.MainConfig, node)
		if err != nil {
			fail("Failed to encode to %s: %v", textFormat(cfg.MainConfig), err)
			return cli.ExitCodeErr(exitEncode)
		}
		if _, err := cc.Out.Write(out); err != nil {
			fail("I/O failure: %v", err)
			return cli.ExitCodeErr(exitOpenOut)
		}
	}
	return nil
}

func textFormat(cfg *MainConfig) string {
	if cfg.Y {
		return "yaml"
	}
	return "json"
}

func textToNode(cfg *MainConfig, data []byte) (*ir.Node, error) {
	var v any
	if cfg.Y {
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return anyToNode(v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return anyToNode(v)
}

func anyToNode(v any) (*ir.Node, error) {
	switch t := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(t), nil
	case string:
		return ir.FromString(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return ir.FromInt(i), nil
		}
		if f, err := strconv.ParseFloat(t.String(), 64); err == nil {
			return ir.FromFloat(f), nil
		}
		// Out of double range; keep the digits.
		return ir.FromDecimal(t.String()), nil
	case int:
		return ir.FromInt(int64(t)), nil
	case int64:
		return ir.FromInt(t), nil
	case uint64:
		if t <= math.MaxInt64 {
			return ir.FromInt(int64(t)), nil
		}
		return ir.FromDecimal(strconv.FormatUint(t, 10)), nil
	case float64:
		return ir.FromFloat(t), nil
	case []byte:
		return ir.FromBytes(t), nil
	case []any:
		vals := make([]*ir.Node, len(t))
		for i, e := range t {
			n, err := anyToNode(e)
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return ir.FromSlice(vals), nil
	case map[string]any:
		m := make(map[string]*ir.Node, len(t))
		for k, e := range t {
			n, err := anyToNode(e)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return ir.FromMap(m), nil
	}
	return nil, fmt.Errorf("cannot convert value of type %T", v)
}

func nodeToText(cfg *MainConfig, node *ir.Node) ([]byte, error) {
	v, err := nodeToAny(node, cfg.Y)
	if err != nil {
		return nil, err
	}
	if cfg.Y {
		return yaml.Marshal(v)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func nodeToAny(n *ir.Node, forYAML bool) (any, error) {
	switch n.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return n.Bool, nil
	case ir.NumberType:
		switch {
		case n.Int64 != nil:
			return *n.Int64, nil
		case n.Float32 != nil:
			return *n.Float32, nil
		case n.Float64 != nil:
			return *n.Float64, nil
		}
		if forYAML {
			return n.Number, nil
		}
		return json.Number(n.Number), nil
	case ir.StringType:
		return n.String, nil
	case ir.BytesType:
		if forYAML {
			return n.Bytes, nil
		}
		return nil, fmt.Errorf("byte strings have no JSON form; use -y or to -nobytes")
	case ir.ArrayType:
		arr := make([]any, len(n.Values))
		for i, v := range n.Values {
			e, err := nodeToAny(v, forYAML)
			if err != nil {
				return nil, err
			}
			arr[i] = e
		}
		return arr, nil
	case ir.ObjectType:
		m := make(map[string]any, len(n.Fields))
		for i, f := range n.Fields {
			e, err := nodeToAny(n.Values[i], forYAML)
			if err != nil {
				return nil, err
			}
			m[f.String] = e
		}
		return m, nil
	}
	return nil, fmt.Errorf("cannot convert %s node", n.Type)
}
