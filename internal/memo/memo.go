// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package memo memoizes second-order recurrences, f(n) = combine(f(n-1),
// f(n-2)), on top of any cache that satisfies Store. Each Recurrence owns its
// store; nothing is shared between instances.
package memo

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/staranto/memoctl/internal/splay"
)

// ErrNegativeIndex is returned by At for n < 0.
var ErrNegativeIndex = errors.New("recurrence index must not be negative")

// Store is the cache contract a Recurrence needs. *lru.Cache satisfies it as
// is; SplayStore adapts a splay tree.
type Store[K comparable, V any] interface {
	Get(key K) (V, bool)
	Put(key K, value V)
}

// SplayStore exposes a splay tree as a Store. Put keeps the tree's
// no-overwrite rule, which is harmless here since each n is stored once.
type SplayStore[K cmp.Ordered, V any] struct {
	Tree *splay.Tree[K, V]
}

// NewSplayStore wraps a fresh, empty splay tree.
func NewSplayStore[K cmp.Ordered, V any]() *SplayStore[K, V] {
	return &SplayStore[K, V]{Tree: splay.New[K, V]()}
}

func (s *SplayStore[K, V]) Get(key K) (V, bool) {
	return s.Tree.Search(key)
}

func (s *SplayStore[K, V]) Put(key K, value V) {
	s.Tree.Insert(key, value)
}

// Stats count lookups a Recurrence served from its store and those it had to
// compute.
type Stats struct {
	Hits   int
	Misses int
}

// Recurrence evaluates f(n) = combine(f(n-1), f(n-2)) with fixed f(0) and
// f(1), consulting its store before computing anything.
type Recurrence[V any] struct {
	store   Store[int, V]
	base    [2]V
	combine func(a, b V) V
	stats   Stats
}

// New builds a Recurrence over store. combine must not modify its arguments:
// they are values held by the store.
func New[V any](store Store[int, V], f0, f1 V, combine func(a, b V) V) *Recurrence[V] {
	return &Recurrence[V]{
		store:   store,
		base:    [2]V{f0, f1},
		combine: combine,
	}
}

// NewFibonacci builds f(0)=0, f(1)=1, f(n)=f(n-1)+f(n-2) over big integers.
func NewFibonacci(store Store[int, *big.Int]) *Recurrence[*big.Int] {
	return New(store, big.NewInt(0), big.NewInt(1), func(a, b *big.Int) *big.Int {
		return new(big.Int).Add(a, b)
	})
}

// At returns f(n). Every value computed on the way is stored, base cases
// included.
func (r *Recurrence[V]) At(n int) (V, error) {
	return r.AtContext(context.Background(), n)
}

// AtContext is At that gives up with ctx's error once ctx is done. ctx is
// checked before every computed value, so a store too small to keep the
// recurrence linear can still be stopped.
func (r *Recurrence[V]) AtContext(ctx context.Context, n int) (V, error) {
	if n < 0 {
		var zero V
		return zero, fmt.Errorf("%w: %d", ErrNegativeIndex, n)
	}
	return r.at(ctx, n)
}

func (r *Recurrence[V]) at(ctx context.Context, n int) (V, error) {
	if v, ok := r.store.Get(n); ok {
		r.stats.Hits++
		return v, nil
	}

	var zero V
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	r.stats.Misses++

	if n < 2 {
		r.store.Put(n, r.base[n])
		return r.base[n], nil
	}

	a, err := r.at(ctx, n-1)
	if err != nil {
		return zero, err
	}
	b, err := r.at(ctx, n-2)
	if err != nil {
		return zero, err
	}

	v := r.combine(a, b)
	r.store.Put(n, v)
	return v, nil
}

// Stats returns a copy of the running counters.
func (r *Recurrence[V]) Stats() Stats {
	return r.stats
}
