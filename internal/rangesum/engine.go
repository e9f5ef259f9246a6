// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rangesum

import (
	"github.com/staranto/memoctl/internal/lru"
)

// Engine answers range sums and accepts point updates.
type Engine interface {
	Sum(left, right int) (int64, error)
	Update(index int, value int64) error
	Len() int
}

// Stats describe how a Cached engine served its queries.
type Stats struct {
	Ranges      int
	Updates     int
	Hits        int
	Misses      int
	Evictions   int
	Invalidated int
}

// Direct sums the array on every query. It is the uncached baseline.
type Direct struct {
	data []int64
}

// NewDirect copies data into a new Direct engine.
func NewDirect(data []int64) *Direct {
	return &Direct{data: append([]int64(nil), data...)}
}

func (d *Direct) Sum(left, right int) (int64, error) {
	r := Range{Left: left, Right: right}
	if err := r.validate(len(d.data)); err != nil {
		return 0, err
	}
	return sum(d.data, r), nil
}

func (d *Direct) Update(index int, value int64) error {
	if err := checkIndex(index, len(d.data)); err != nil {
		return err
	}
	d.data[index] = value
	return nil
}

func (d *Direct) Len() int {
	return len(d.data)
}

// Cached memoizes range sums in an LRU cache. Every Update runs the
// invalidator before it returns, so a later Sum never sees a stale answer.
type Cached struct {
	data        []int64
	cache       *lru.Cache[Range, int64]
	invalidator *Invalidator
	ranges      int
	updates     int
}

// NewCached copies data into a new Cached engine whose cache holds at most
// capacity ranges.
func NewCached(data []int64, capacity int) (*Cached, error) {
	cache, err := lru.New[Range, int64](capacity)
	if err != nil {
		return nil, err
	}

	c := &Cached{
		data:  append([]int64(nil), data...),
		cache: cache,
	}
	c.invalidator = NewInvalidator(cache, len(c.data))
	return c, nil
}

// Sum returns the sum of data[left..right], served from the cache when the
// range was asked before and has not been invalidated since.
func (c *Cached) Sum(left, right int) (int64, error) {
	r := Range{Left: left, Right: right}
	if err := r.validate(len(c.data)); err != nil {
		return 0, err
	}
	c.ranges++

	if v, ok := c.cache.Get(r); ok {
		return v, nil
	}

	v := sum(c.data, r)
	c.cache.Put(r, v)
	return v, nil
}

// Update writes value at index and invalidates every cached range covering
// it. An out-of-range index leaves both the array and the cache untouched.
func (c *Cached) Update(index int, value int64) error {
	if err := checkIndex(index, len(c.data)); err != nil {
		return err
	}
	c.data[index] = value
	c.updates++
	_, err := c.invalidator.Invalidate(index)
	return err
}

// Invalidate drops every cached range covering index without writing.
func (c *Cached) Invalidate(index int) (int, error) {
	return c.invalidator.Invalidate(index)
}

// Peek returns r's cached answer, if any. Recency is not touched.
func (c *Cached) Peek(r Range) (int64, bool) {
	return c.cache.Peek(r)
}

func (c *Cached) Len() int {
	return len(c.data)
}

// CacheLen is the number of cached ranges.
func (c *Cached) CacheLen() int {
	return c.cache.Len()
}

func (c *Cached) Stats() Stats {
	cs := c.cache.Stats()
	return Stats{
		Ranges:      c.ranges,
		Updates:     c.updates,
		Hits:        cs.Hits,
		Misses:      cs.Misses,
		Evictions:   cs.Evictions,
		Invalidated: c.invalidator.Removed(),
	}
}

func sum(data []int64, r Range) int64 {
	var total int64
	for _, v := range data[r.Left : r.Right+1] {
		total += v
	}
	return total
}
