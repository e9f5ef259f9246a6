// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/staranto/memoctl/internal/bench"
	"github.com/staranto/memoctl/internal/meta"
)

// fqRow is one n of the fq sweep. Timings are in nanoseconds and are nil for
// backends that were not run.
type fqRow struct {
	N         int    `json:"n"`
	LRU       *int64 `json:"lru,omitempty"`
	Splay     *int64 `json:"splay,omitempty"`
	LRUHits   *int   `json:"lru_hits,omitempty"`
	SplayHits *int   `json:"splay_hits,omitempty"`
	Misses    int    `json:"misses"`
	Digits    int    `json:"digits"`
	Value     string `json:"value"`
}

var fqDefaultAttrs = []string{
	"n",
	"lru::d",
	"splay::d",
	"digits",
}

var fqExamples = [][2]string{
	{"memoctl fq", "time f(0), f(50), ... f(950) on both backends"},
	{"memoctl fq --max 200 --step 10", "finer sweep of smaller values"},
	{"memoctl fq --backend splay", "splay tree backend only"},
	{"memoctl fq -C 3", "smallest LRU that keeps the recurrence linear"},
	{"memoctl fq --attrs value::-30 --filter n=100", "show f(100), elided"},
}

// FqCommandAction is the action handler for the "fq" subcommand. It sweeps n
// and times a memoized Fibonacci evaluation on each selected backend.
func FqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &BenchActionRunner[fqRow]{
		CommandName:  "fq",
		DefaultAttrs: fqDefaultAttrs,
		Examples:     fqExamples,
		RunFn:        runFq,
	}
	return runner.Run(ctx, cmd)
}

func runFq(ctx context.Context, cmd *cli.Command) ([]fqRow, error) {
	ns, err := bench.Sweep(0, cmd.Int("max"), cmd.Int("step"))
	if err != nil {
		return nil, err
	}

	backends := []string{bench.BackendLRU, bench.BackendSplay}
	if b := cmd.String("backend"); b != "both" {
		backends = []string{b}
	}

	results, err := bench.RunFibonacci(ctx, ns, bench.FibOptions{
		Capacity: cmd.Int("capacity"),
		Backends: backends,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]fqRow, 0, len(results))
	for _, r := range results {
		row := fqRow{
			N:      r.N,
			Digits: r.Digits,
		}
		if r.Value != nil {
			row.Value = r.Value.String()
		}
		if d, ok := r.Times[bench.BackendLRU]; ok {
			elapsed := d.Nanoseconds()
			hits := r.Stats[bench.BackendLRU].Hits
			row.LRU, row.LRUHits = &elapsed, &hits
			row.Misses = r.Stats[bench.BackendLRU].Misses
		}
		if d, ok := r.Times[bench.BackendSplay]; ok {
			elapsed := d.Nanoseconds()
			hits := r.Stats[bench.BackendSplay].Hits
			row.Splay, row.SplayHits = &elapsed, &hits
			row.Misses = r.Stats[bench.BackendSplay].Misses
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FqCommandBuilder constructs the cli.Command definition for the "fq"
// command, wiring flags, metadata, and the action/validator handlers.
func FqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	src := meta.Config.Source

	return (&CommandBuilder{
		Name:      "fq",
		Usage:     "memoized Fibonacci sweep",
		UsageText: `memoctl fq [@set] [options]`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "max",
				Usage:   "sweep n from 0 up to, not including, max",
				Sources: NameSpacedSources("fq", "max", src),
				Value:   1000,
				Validator: func(v int) error {
					return FlagValidators(v, MinValidator(0))
				},
			},
			&cli.IntFlag{
				Name:    "step",
				Usage:   "distance between successive n",
				Sources: NameSpacedSources("fq", "step", src),
				Value:   50,
				Validator: func(v int) error {
					return FlagValidators(v, MinValidator(1))
				},
			},
			NewCapacityFlag("fq", src, 4096, bench.MinFibCapacity),
			&cli.StringFlag{
				Name:    "backend",
				Usage:   "memo backend: lru, splay or both",
				Sources: NameSpacedSources("fq", "backend", src),
				Value:   "both",
				Validator: func(v string) error {
					return FlagValidators(v, BackendValidator)
				},
			},
		},
		Action: FqCommandAction,
		Meta:   meta,
	}).Build()
}
