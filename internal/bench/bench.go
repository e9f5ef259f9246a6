// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package bench times the cache engines against their uncached baselines. It
// only drives engines through their public operations and measures wall
// clock time around whole runs.
package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"

	"github.com/staranto/memoctl/internal/differ"
	"github.com/staranto/memoctl/internal/rangesum"
	"github.com/staranto/memoctl/internal/workload"
)

// ErrMismatch is returned when two engines disagree on an answer.
var ErrMismatch = errors.New("engines disagree")

// checkEvery is how many ops run between context checks.
const checkEvery = 1024

// RangeResult is the outcome of replaying a workload through one engine.
type RangeResult struct {
	Engine  string
	Ops     int
	Ranges  int
	Updates int
	Stats   rangesum.Stats
	Elapsed time.Duration
	Speedup float64
	Answers []int64
}

// RangeOptions tune RunRange.
type RangeOptions struct {
	Capacity int
	// Verify keeps every answer and fails with ErrMismatch, carrying a diff,
	// when the cached engine disagrees with the direct one.
	Verify bool
}

// Replay applies ops to e in order and returns the elapsed time. When record
// is set the answer to every range op is returned as well.
func Replay(ctx context.Context, e rangesum.Engine, ops []workload.Op, record bool) ([]int64, time.Duration, error) {
	var answers []int64
	if record {
		answers = make([]int64, 0, len(ops))
	}

	start := time.Now()
	for i, op := range ops {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}

		switch op.Kind {
		case workload.KindUpdate:
			if err := e.Update(op.Index, op.Value); err != nil {
				return nil, 0, fmt.Errorf("op %d (%s %d): %w", i, op.Kind, op.Index, err)
			}
		default:
			v, err := e.Sum(op.Left, op.Right)
			if err != nil {
				return nil, 0, fmt.Errorf("op %d (%s %d..%d): %w", i, op.Kind, op.Left, op.Right, err)
			}
			if record {
				answers = append(answers, v)
			}
		}
	}
	return answers, time.Since(start), nil
}

// RunRange replays ops through a direct engine and a cached engine, each
// starting from its own copy of data. The first result is the direct engine.
func RunRange(ctx context.Context, data []int64, ops []workload.Op, opts RangeOptions) ([]RangeResult, error) {
	cached, err := rangesum.NewCached(data, opts.Capacity)
	if err != nil {
		return nil, err
	}
	direct := rangesum.NewDirect(data)
	ranges, updates := workload.Counts(ops)

	log.WithField("ops", len(ops)).Debug("replaying workload without cache")
	directAnswers, directElapsed, err := Replay(ctx, direct, ops, opts.Verify)
	if err != nil {
		return nil, fmt.Errorf("direct engine: %w", err)
	}

	log.WithField("capacity", opts.Capacity).Debug("replaying workload with lru cache")
	cachedAnswers, cachedElapsed, err := Replay(ctx, cached, ops, opts.Verify)
	if err != nil {
		return nil, fmt.Errorf("cached engine: %w", err)
	}

	if opts.Verify {
		out, changed, err := differ.DiffValues(
			map[string][]int64{"sums": directAnswers},
			map[string][]int64{"sums": cachedAnswers},
		)
		if err != nil {
			return nil, err
		}
		if changed {
			return nil, fmt.Errorf("%w:\n%s", ErrMismatch, out)
		}
		log.Debugf("verified %d answers", len(directAnswers))
	}

	results := []RangeResult{
		{
			Engine:  "none",
			Ops:     len(ops),
			Ranges:  ranges,
			Updates: updates,
			Stats:   rangesum.Stats{Ranges: ranges, Updates: updates, Misses: ranges},
			Elapsed: directElapsed,
			Speedup: 1,
			Answers: directAnswers,
		},
		{
			Engine:  "lru",
			Ops:     len(ops),
			Ranges:  ranges,
			Updates: updates,
			Stats:   cached.Stats(),
			Elapsed: cachedElapsed,
			Speedup: speedup(directElapsed, cachedElapsed),
			Answers: cachedAnswers,
		},
	}
	return results, nil
}

func speedup(base, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(base) / float64(d)
}
