// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os/exec"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/memoctl/internal/config"
)

func init() {
	cfg, _ = config.Load("")
}

var cfg config.Type

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the attributes of a result row",
		HideDefault: true,
	}
}

func newTldrFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"attrs", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("MEMOCTL_OUTPUT"),
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NameSpacedSources builds the value source chain for a command flag: the
// MEMOCTL_<NAME> env variable first, then <ns>.<name> in the config file.
func NameSpacedSources(ns string, name string, path string) cli.ValueSourceChain {
	env := "MEMOCTL_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return cli.NewValueSourceChain(
		cli.EnvVar(env),
		yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)),
	)
}

// NewCapacityFlag constructs the --capacity flag shared by the commands that
// build an LRU cache. Values below floor are rejected.
func NewCapacityFlag(ns string, path string, value int, floor int) *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "capacity",
		Aliases: []string{"C"},
		Usage:   fmt.Sprintf("maximum number of entries held by the LRU cache, at least %d", floor),
		Sources: NameSpacedSources(ns, "capacity", path),
		Value:   value,
		Validator: func(v int) error {
			return FlagValidators(v, MinValidator(floor))
		},
	}
}

// pathHas checks if the given binary is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
