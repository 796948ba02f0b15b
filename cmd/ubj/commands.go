package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "ubj").
		WithSynopsis("ubj [opts] command [opts]").
		WithDescription("ubj converts between UBJSON and text object notations.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ubjMain(cfg, cc, args)
		}).
		WithSubs(
			FromCommand(cfg),
			ToCommand(cfg),
			DumpCommand(cfg))
}

func FromCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FromConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.From, "from").
		WithAliases("f", "fr").
		WithSynopsis("from [opts] [files]").
		WithDescription("read JSON or YAML documents and write them as UBJSON").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return from(cfg, cc, args)
		})
}

func ToCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ToConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.To, "to").
		WithAliases("t").
		WithSynopsis("to [opts] [files]").
		WithDescription("read UBJSON documents and write them as JSON or YAML").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return to(cfg, cc, args)
		})
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [opts] [files]").
		WithDescription("print the structure of UBJSON documents for inspection").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}
