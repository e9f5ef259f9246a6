// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"math"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/memoctl/internal/bench"
	"github.com/staranto/memoctl/internal/meta"
	"github.com/staranto/memoctl/internal/workload"
)

// rsqRow is one engine's line of rsq output. Elapsed is in nanoseconds.
type rsqRow struct {
	Engine      string  `json:"engine"`
	Ops         int     `json:"ops"`
	Ranges      int     `json:"ranges"`
	Updates     int     `json:"updates"`
	Hits        int     `json:"hits"`
	Misses      int     `json:"misses"`
	Evictions   int     `json:"evictions"`
	Invalidated int     `json:"invalidated"`
	Capacity    int     `json:"capacity"`
	Size        int     `json:"size"`
	Seed        uint64  `json:"seed"`
	Elapsed     int64   `json:"elapsed"`
	Speedup     float64 `json:"speedup"`
}

var rsqDefaultAttrs = []string{
	"engine",
	"ops::h",
	"ranges::h",
	"updates::h",
	"hits::h",
	"misses::h",
	"evictions::h",
	"invalidated::h",
	"elapsed::d",
	"speedup",
}

var rsqExamples = [][2]string{
	{"memoctl rsq", "run the stock range-sum benchmark"},
	{"memoctl rsq -n 1000 -q 500 --seed 7", "small reproducible run"},
	{"memoctl rsq -C 10 --hot 100", "cache smaller than the hot pool"},
	{"memoctl rsq -w ops.json --verify", "replay a workload file and check answers"},
	{"memoctl rsq -o json --attrs seed", "json output including the seed"},
}

// RsqCommandAction is the action handler for the "rsq" subcommand. It builds
// or loads a workload, replays it through the uncached and cached range-sum
// engines and emits one row per engine.
func RsqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &BenchActionRunner[rsqRow]{
		CommandName:  "rsq",
		DefaultAttrs: rsqDefaultAttrs,
		Examples:     rsqExamples,
		RunFn:        runRsq,
	}
	return runner.Run(ctx, cmd)
}

func runRsq(ctx context.Context, cmd *cli.Command) ([]rsqRow, error) {
	data, ops, seed, err := rsqWorkload(cmd)
	if err != nil {
		return nil, err
	}

	capacity := cmd.Int("capacity")
	results, err := bench.RunRange(ctx, data, ops, bench.RangeOptions{
		Capacity: capacity,
		Verify:   cmd.Bool("verify"),
	})
	if err != nil {
		return nil, err
	}

	rows := make([]rsqRow, 0, len(results))
	for _, r := range results {
		row := rsqRow{
			Engine:      r.Engine,
			Ops:         r.Ops,
			Ranges:      r.Ranges,
			Updates:     r.Updates,
			Hits:        r.Stats.Hits,
			Misses:      r.Stats.Misses,
			Evictions:   r.Stats.Evictions,
			Invalidated: r.Stats.Invalidated,
			Size:        len(data),
			Seed:        seed,
			Elapsed:     r.Elapsed.Nanoseconds(),
			Speedup:     math.Round(r.Speedup*100) / 100,
		}
		if r.Engine != "none" {
			row.Capacity = capacity
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// rsqWorkload returns the array and ops to replay. A --workload file supplies
// the ops and, optionally, the array; a missing array comes from the seeded
// generator. The seed is 0 when nothing was generated.
func rsqWorkload(cmd *cli.Command) ([]int64, []workload.Op, uint64, error) {
	wcfg := workload.Config{
		Size:       cmd.Int("size"),
		Queries:    cmd.Int("queries"),
		HotPool:    cmd.Int("hot"),
		HotProb:    cmd.Float64("hot-prob"),
		UpdateProb: cmd.Float64("update-prob"),
		MaxValue:   int64(cmd.Int("max-value")),
		Seed:       cmd.Uint64("seed"),
	}

	var doc workload.Document
	path := cmd.String("workload")
	if path != "" {
		var err error
		if doc, err = workload.LoadFile(path); err != nil {
			return nil, nil, 0, err
		}
		log.WithField("file", path).WithField("ops", len(doc.Ops)).Info("loaded workload")

		// The file is complete, no generator needed.
		if doc.Data != nil {
			return doc.Data, doc.Ops, 0, nil
		}
		if doc.Size > 0 {
			wcfg.Size = doc.Size
		}
	}

	gen, err := workload.NewGenerator(wcfg)
	if err != nil {
		return nil, nil, 0, err
	}

	data := gen.Array()

	ops := doc.Ops
	if path == "" {
		ops = gen.Ops()
	}

	log.WithField("seed", gen.Seed()).WithField("size", len(data)).Debug("workload ready")
	return data, ops, gen.Seed(), nil
}

// RsqCommandBuilder constructs the cli.Command definition for the "rsq"
// command, wiring flags, metadata, and the action/validator handlers.
func RsqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	def := workload.DefaultConfig()
	src := meta.Config.Source

	return (&CommandBuilder{
		Name:      "rsq",
		Usage:     "range-sum query benchmark",
		UsageText: `memoctl rsq [@set] [options]`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "size",
				Aliases: []string{"n"},
				Usage:   "length of the generated array",
				Sources: NameSpacedSources("rsq", "size", src),
				Value:   def.Size,
				Validator: func(v int) error {
					return FlagValidators(v, MinValidator(2))
				},
			},
			&cli.IntFlag{
				Name:    "queries",
				Aliases: []string{"q"},
				Usage:   "number of generated operations",
				Sources: NameSpacedSources("rsq", "queries", src),
				Value:   def.Queries,
				Validator: func(v int) error {
					return FlagValidators(v, MinValidator(0))
				},
			},
			&cli.IntFlag{
				Name:    "hot",
				Usage:   "number of hot ranges reused by the generator",
				Sources: NameSpacedSources("rsq", "hot", src),
				Value:   def.HotPool,
				Validator: func(v int) error {
					return FlagValidators(v, MinValidator(1))
				},
			},
			&cli.Float64Flag{
				Name:    "hot-prob",
				Usage:   "chance that a range query picks a hot range",
				Sources: NameSpacedSources("rsq", "hot-prob", src),
				Value:   def.HotProb,
				Validator: func(v float64) error {
					return FlagValidators(v, ProbabilityValidator)
				},
			},
			&cli.Float64Flag{
				Name:    "update-prob",
				Usage:   "chance that an operation is a point update",
				Sources: NameSpacedSources("rsq", "update-prob", src),
				Value:   def.UpdateProb,
				Validator: func(v float64) error {
					return FlagValidators(v, ProbabilityValidator)
				},
			},
			&cli.IntFlag{
				Name:    "max-value",
				Usage:   "largest array and update value",
				Sources: NameSpacedSources("rsq", "max-value", src),
				Value:   int(def.MaxValue),
				Validator: func(v int) error {
					return FlagValidators(v, MinValidator(1))
				},
			},
			NewCapacityFlag("rsq", src, 1000, 1),
			&cli.Uint64Flag{
				Name:    "seed",
				Usage:   "generator seed, 0 picks one at random",
				Sources: NameSpacedSources("rsq", "seed", src),
			},
			&cli.StringFlag{
				Name:    "workload",
				Aliases: []string{"w"},
				Usage:   "JSON workload file to replay instead of generating ops",
				Validator: func(v string) error {
					return FlagValidators(v, JammedFlagValidator)
				},
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "compare cached answers against the uncached engine",
			},
		},
		Action: RsqCommandAction,
		Meta:   meta,
	}).Build()
}
