// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rangesum

import (
	"github.com/staranto/memoctl/internal/lru"
)

// Invalidator removes cached ranges that a write to an index could make
// stale.
// Every Invalidate is a full scan of the cache.
type Invalidator struct {
	cache   *lru.Cache[Range, int64]
	size    int
	removed int
}

// NewInvalidator binds an Invalidator to cache for an array of length size.
func NewInvalidator(cache *lru.Cache[Range, int64], size int) *Invalidator {
	return &Invalidator{cache: cache, size: size}
}

// Invalidate removes every entry whose range covers index and returns how many
// were removed.
func (inv *Invalidator) Invalidate(index int) (int, error) {
	if err := checkIndex(index, inv.size); err != nil {
		return 0, err
	}

	n := inv.cache.RemoveFunc(func(r Range, _ int64) bool {
		return r.Covers(index)
	})
	inv.removed += n
	return n, nil
}

// Removed is the running total of invalidated entries.
func (inv *Invalidator) Removed() int {
	return inv.removed
}
