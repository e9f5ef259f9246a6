// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package lru

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned by New when the cache cannot be built
// with the requested settings.
var ErrInvalidConfiguration = errors.New("invalid cache configuration")

// Stats are running counters for a Cache. Removals counts entries dropped by
// Remove and RemoveFunc; evictions are counted separately.
type Stats struct {
	Hits      int
	Misses    int
	Evictions int
	Removals  int
}

// Cache is a capacity-bounded map from K to V with strict recency ordering.
type Cache[K comparable, V any] struct {
	capacity int
	items    map[K]*element[K, V]
	order    list[K, V]
	stats    Stats
}

// New creates a Cache holding at most capacity entries. The capacity is fixed
// for the lifetime of the cache.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1, got %d", ErrInvalidConfiguration, capacity)
	}

	c := &Cache[K, V]{
		capacity: capacity,
		items:    make(map[K]*element[K, V], capacity+1),
	}
	c.order.init()
	return c, nil
}

// Get returns the value stored for key and marks it most recently used. On a
// miss it returns the zero value and false, and the cache is unchanged.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	c.stats.Hits++
	c.order.moveToFront(e)
	return e.value, true
}

// Peek returns the value for key without touching its recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	if e, ok := c.items[key]; ok {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is cached without touching its recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Put stores value under key and marks it most recently used. An existing
// value is overwritten. When a new key pushes the cache past its capacity the
// least recently used entry is evicted; at most one entry goes per call.
func (c *Cache[K, V]) Put(key K, value V) {
	if e, ok := c.items[key]; ok {
		e.value = value
		c.order.moveToFront(e)
		return
	}

	e := &element[K, V]{key: key, value: value}
	c.order.pushFront(e)
	c.items[key] = e

	if c.order.len > c.capacity {
		c.evict()
	}
}

// Remove drops key from the cache and reports whether it was present.
func (c *Cache[K, V]) Remove(key K) bool {
	e, ok := c.items[key]
	if !ok {
		return false
	}
	c.unlink(e)
	c.stats.Removals++
	return true
}

// RemoveFunc drops every entry for which match returns true and returns how
// many were removed. It visits every entry, so the cost is O(Len()).
func (c *Cache[K, V]) RemoveFunc(match func(key K, value V) bool) int {
	removed := 0
	for e := c.order.front(); e != nil && e != &c.order.root; {
		next := e.next
		if match(e.key, e.value) {
			c.unlink(e)
			removed++
		}
		e = next
	}
	c.stats.Removals += removed
	return removed
}

// Keys returns the cached keys from most to least recently used.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, c.order.len)
	for e := c.order.front(); e != nil && e != &c.order.root; e = e.next {
		keys = append(keys, e.key)
	}
	return keys
}

// Oldest returns the least recently used entry without touching it.
func (c *Cache[K, V]) Oldest() (K, V, bool) {
	if e := c.order.back(); e != nil {
		return e.key, e.value, true
	}
	var (
		k K
		v V
	)
	return k, v, false
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return c.order.len
}

// Cap returns the fixed capacity.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// Stats returns a copy of the running counters.
func (c *Cache[K, V]) Stats() Stats {
	return c.stats
}

// Purge empties the cache. Counters are kept.
func (c *Cache[K, V]) Purge() {
	clear(c.items)
	c.order.init()
}

func (c *Cache[K, V]) evict() {
	if e := c.order.back(); e != nil {
		c.unlink(e)
		c.stats.Evictions++
	}
}

func (c *Cache[K, V]) unlink(e *element[K, V]) {
	c.order.remove(e)
	delete(c.items, e.key)
}
