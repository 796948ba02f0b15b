package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

// Exit codes shared by all subcommands. Usage errors exit 1 through
// the command framework.
const (
	exitOpenIn  = 2
	exitOpenOut = 4
	exitDecode  = 8
	exitEncode  = 16
)

type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='text side is json (default)'"`
	Y bool `cli:"name=y aliases=yaml desc='text side is yaml'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

type FromConfig struct {
	*MainConfig
	Count  bool `cli:"name=count desc='emit containers with counts instead of end markers'"`
	NoSort bool `cli:"name=nosort desc='keep object entry order instead of sorting keys'"`

	From *cli.Command
}

type ToConfig struct {
	*MainConfig
	NoBytes bool `cli:"name=nobytes desc='read uint8-typed arrays as integer arrays'"`

	To *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Color bool `cli:"name=color desc='force colored output'"`

	Dump *cli.Command
}

func ubjMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		fail("Failed to open output file for writing: %v", err)
		return nil, cli.ExitCodeErr(exitOpenOut)
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readArg reads one input argument, "-" meaning stdin.
func readArg(arg string) ([]byte, error) {
	var r io.Reader
	if arg == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			fail("Failed to open input file for reading: %v", err)
			return nil, cli.ExitCodeErr(exitOpenIn)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		fail("I/O failure: %v", err)
		return nil, cli.ExitCodeErr(exitOpenIn)
	}
	return data, nil
}

// inputArgs defaults to stdin when no files are named.
func inputArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
