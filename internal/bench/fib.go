// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/apex/log"

	"github.com/staranto/memoctl/internal/lru"
	"github.com/staranto/memoctl/internal/memo"
)

// MinFibCapacity is the smallest LRU capacity that keeps a Fibonacci
// evaluation linear: f(n-2) must survive while f(n-1) is computed.
const MinFibCapacity = 3

// Backend names accepted by RunFibonacci.
const (
	BackendLRU   = "lru"
	BackendSplay = "splay"
)

// FibResult is the timing of one f(n) evaluation per backend. Backends that
// were not run have no entry in Times.
type FibResult struct {
	N      int
	Digits int
	Times  map[string]time.Duration
	Stats  map[string]memo.Stats
	Value  *big.Int
}

// FibOptions tune RunFibonacci.
type FibOptions struct {
	// Capacity bounds the LRU backend.
	Capacity int
	// Backends lists which backends to run, in order.
	Backends []string
}

// Sweep returns start, start+step, ... below limit.
func Sweep(start, limit, step int) ([]int, error) {
	if step < 1 {
		return nil, fmt.Errorf("step must be at least 1, got %d", step)
	}
	if start < 0 {
		return nil, fmt.Errorf("start must not be negative, got %d", start)
	}
	var ns []int
	for n := start; n < limit; n += step {
		ns = append(ns, n)
	}
	return ns, nil
}

// RunFibonacci evaluates f(n) for every n with a fresh store per backend and
// per n, so each timing covers a cold cache. Backends must agree on every
// value.
func RunFibonacci(ctx context.Context, ns []int, opts FibOptions) ([]FibResult, error) {
	results := make([]FibResult, 0, len(ns))

	for _, n := range ns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res := FibResult{
			N:     n,
			Times: make(map[string]time.Duration, len(opts.Backends)),
			Stats: make(map[string]memo.Stats, len(opts.Backends)),
		}

		for _, name := range opts.Backends {
			store, err := newStore(name, opts.Capacity)
			if err != nil {
				return nil, err
			}

			fib := memo.NewFibonacci(store)
			start := time.Now()
			v, err := fib.AtContext(ctx, n)
			if err != nil {
				return nil, err
			}
			res.Times[name] = time.Since(start)
			res.Stats[name] = fib.Stats()

			if res.Value != nil && res.Value.Cmp(v) != 0 {
				return nil, fmt.Errorf("%w: f(%d) differs for %s", ErrMismatch, n, name)
			}
			res.Value = v
		}

		if res.Value != nil {
			res.Digits = len(res.Value.String())
		}
		log.Debugf("f(%d): %d digits %v", n, res.Digits, res.Times)
		results = append(results, res)
	}
	return results, nil
}

func newStore(name string, capacity int) (memo.Store[int, *big.Int], error) {
	switch name {
	case BackendLRU:
		c, err := lru.New[int, *big.Int](capacity)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendSplay:
		return memo.NewSplayStore[int, *big.Int](), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}
