// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package workload produces the operation streams fed to the range-sum
// engines: synthetic streams skewed toward a small pool of hot ranges, and
// streams replayed from JSON files.
package workload

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/apex/log"
)

var (
	// ErrInvalidConfig is returned when generator settings are unusable.
	ErrInvalidConfig = errors.New("invalid workload config")
	// ErrMalformed is returned when a workload document cannot be parsed.
	ErrMalformed = errors.New("malformed workload")
)

// Kind tells a range query from a point update.
type Kind int

const (
	KindRange Kind = iota
	KindUpdate
)

func (k Kind) String() string {
	switch k {
	case KindRange:
		return "Range"
	case KindUpdate:
		return "Update"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Op is one item of a workload. Range ops use Left and Right; Update ops use
// Index and Value.
type Op struct {
	Kind  Kind
	Left  int
	Right int
	Index int
	Value int64
}

// Config drives Generate.
type Config struct {
	// Size is the length of the array the ops address.
	Size int
	// Queries is the number of ops to generate.
	Queries int
	// HotPool is the number of reused ranges.
	HotPool int
	// HotProb is the chance that a range op picks from the hot pool.
	HotProb float64
	// UpdateProb is the chance that an op is an update.
	UpdateProb float64
	// MaxValue bounds array and update values to [1, MaxValue].
	MaxValue int64
	// Seed makes the stream reproducible. Zero picks a random seed.
	Seed uint64
}

// DefaultConfig matches the stock benchmark: 100k elements, 50k ops, 30 hot
// ranges hit 95% of the time, 3% updates.
func DefaultConfig() Config {
	return Config{
		Size:       100_000,
		Queries:    50_000,
		HotPool:    30,
		HotProb:    0.95,
		UpdateProb: 0.03,
		MaxValue:   100,
	}
}

func (c Config) validate() error {
	switch {
	case c.Size < 2:
		return fmt.Errorf("%w: size must be at least 2, got %d", ErrInvalidConfig, c.Size)
	case c.Queries < 0:
		return fmt.Errorf("%w: queries must not be negative, got %d", ErrInvalidConfig, c.Queries)
	case c.HotPool < 1:
		return fmt.Errorf("%w: hot pool must be at least 1, got %d", ErrInvalidConfig, c.HotPool)
	case c.HotProb < 0 || c.HotProb > 1:
		return fmt.Errorf("%w: hot probability %v outside [0,1]", ErrInvalidConfig, c.HotProb)
	case c.UpdateProb < 0 || c.UpdateProb > 1:
		return fmt.Errorf("%w: update probability %v outside [0,1]", ErrInvalidConfig, c.UpdateProb)
	case c.MaxValue < 1:
		return fmt.Errorf("%w: max value must be at least 1, got %d", ErrInvalidConfig, c.MaxValue)
	}
	return nil
}

// Generator draws arrays and op streams from one seeded source.
type Generator struct {
	cfg  Config
	seed uint64
	rnd  *rand.Rand
}

// NewGenerator validates cfg and seeds a Generator.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Debugf("workload seed=%d size=%d queries=%d", seed, cfg.Size, cfg.Queries)

	return &Generator{
		cfg:  cfg,
		seed: seed,
		rnd:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Seed is the seed actually in use.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Array returns Size values drawn from [1, MaxValue].
func (g *Generator) Array() []int64 {
	data := make([]int64, g.cfg.Size)
	for i := range data {
		data[i] = g.value()
	}
	return data
}

// Ops returns Queries ops. Hot ranges span the middle of the array: left in
// the first half, right in the second.
func (g *Generator) Ops() []Op {
	n := g.cfg.Size
	hot := make([]Op, g.cfg.HotPool)
	for i := range hot {
		hot[i] = Op{
			Kind:  KindRange,
			Left:  g.rnd.IntN(n/2 + 1),
			Right: n/2 + g.rnd.IntN(n-n/2),
		}
	}

	ops := make([]Op, 0, g.cfg.Queries)
	for range g.cfg.Queries {
		switch {
		case g.rnd.Float64() < g.cfg.UpdateProb:
			ops = append(ops, Op{Kind: KindUpdate, Index: g.rnd.IntN(n), Value: g.value()})
		case g.rnd.Float64() < g.cfg.HotProb:
			ops = append(ops, hot[g.rnd.IntN(len(hot))])
		default:
			left := g.rnd.IntN(n)
			ops = append(ops, Op{Kind: KindRange, Left: left, Right: left + g.rnd.IntN(n-left)})
		}
	}
	return ops
}

func (g *Generator) value() int64 {
	return 1 + g.rnd.Int64N(g.cfg.MaxValue)
}

// Counts returns how many range and update ops are in ops.
func Counts(ops []Op) (ranges, updates int) {
	for _, op := range ops {
		if op.Kind == KindUpdate {
			updates++
		} else {
			ranges++
		}
	}
	return
}
