// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package rangesum

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/memoctl/internal/lru"
)

func fives(n int) []int64 {
	data := make([]int64, n)
	for i := range data {
		data[i] = 5
	}
	return data
}

func TestCachedScenario(t *testing.T) {
	c, err := NewCached(fives(10), 2)
	require.NoError(t, err)

	v, err := c.Sum(0, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(25), v)
	assert.Equal(t, 1, c.Stats().Misses)

	v, err = c.Sum(5, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(25), v)
	assert.Equal(t, 2, c.CacheLen())

	v, err = c.Sum(0, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(25), v)
	assert.Equal(t, 1, c.Stats().Hits)
	assert.Equal(t, 2, c.CacheLen())

	require.NoError(t, c.Update(2, 100))
	_, ok := c.Peek(Range{0, 4})
	assert.False(t, ok, "(0,4) covers index 2 and must be invalidated")
	cached, ok := c.Peek(Range{5, 9})
	assert.True(t, ok)
	assert.Equal(t, int64(25), cached)

	v, err = c.Sum(0, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(120), v)
	assert.Equal(t, 3, c.Stats().Misses)

	v, err = c.Sum(5, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(25), v)

	stats := c.Stats()
	assert.Equal(t, 2, stats.Hits)
	assert.Equal(t, 5, stats.Ranges)
	assert.Equal(t, 1, stats.Updates)
	assert.Equal(t, 1, stats.Invalidated)
	assert.Equal(t, 0, stats.Evictions)
}

func TestInvalidateBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		index int
		gone  []Range
		kept  []Range
	}{
		{
			name:  "left edge",
			index: 2,
			gone:  []Range{{2, 4}, {0, 9}},
			kept:  []Range{{5, 7}, {0, 1}},
		},
		{
			name:  "right edge",
			index: 4,
			gone:  []Range{{2, 4}, {0, 9}},
			kept:  []Range{{5, 7}, {0, 1}},
		},
		{
			name:  "between ranges",
			index: 8,
			gone:  []Range{{0, 9}},
			kept:  []Range{{2, 4}, {5, 7}, {0, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCached(fives(10), 8)
			require.NoError(t, err)

			for _, r := range append(append([]Range{}, tt.gone...), tt.kept...) {
				_, err := c.Sum(r.Left, r.Right)
				require.NoError(t, err)
			}

			n, err := c.Invalidate(tt.index)
			require.NoError(t, err)
			assert.Equal(t, len(tt.gone), n)

			for _, r := range tt.gone {
				_, ok := c.Peek(r)
				assert.False(t, ok, "%s should be gone", r)
			}
			for _, r := range tt.kept {
				v, ok := c.Peek(r)
				assert.True(t, ok, "%s should be kept", r)
				assert.Equal(t, int64(5*r.Len()), v)
			}
		})
	}
}

func TestUpdateOutOfRange(t *testing.T) {
	c, err := NewCached(fives(4), 4)
	require.NoError(t, err)

	_, err = c.Sum(0, 3)
	require.NoError(t, err)

	for _, idx := range []int{-1, 4, 100} {
		err := c.Update(idx, 1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		_, err = c.Invalidate(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}

	v, ok := c.Peek(Range{0, 3})
	assert.True(t, ok)
	assert.Equal(t, int64(20), v)
	assert.Equal(t, 0, c.Stats().Updates)
}

func TestSumValidation(t *testing.T) {
	tests := []struct {
		name        string
		left, right int
		wantErr     error
	}{
		{name: "reversed", left: 3, right: 1, wantErr: ErrInvalidRange},
		{name: "negative left", left: -1, right: 1, wantErr: ErrIndexOutOfRange},
		{name: "right past end", left: 0, right: 5, wantErr: ErrIndexOutOfRange},
		{name: "single element", left: 2, right: 2},
		{name: "whole array", left: 0, right: 4},
	}

	engines := map[string]func() Engine{
		"direct": func() Engine { return NewDirect(fives(5)) },
		"cached": func() Engine {
			c, _ := NewCached(fives(5), 3)
			return c
		},
	}

	for en, mk := range engines {
		for _, tt := range tests {
			t.Run(en+"/"+tt.name, func(t *testing.T) {
				_, err := mk().Sum(tt.left, tt.right)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
					return
				}
				assert.NoError(t, err)
			})
		}
	}
}

func TestNewCachedInvalidCapacity(t *testing.T) {
	_, err := NewCached(fives(3), 0)
	assert.ErrorIs(t, err, lru.ErrInvalidConfiguration)
}

func TestCachedMatchesDirect(t *testing.T) {
	const n = 64
	r := rand.New(rand.NewPCG(7, 11))

	data := make([]int64, n)
	for i := range data {
		data[i] = int64(r.IntN(100))
	}

	direct := NewDirect(data)
	cached, err := NewCached(data, 8)
	require.NoError(t, err)

	hot := []Range{{0, 10}, {5, 40}, {30, 63}, {12, 12}}
	for i := 0; i < 5000; i++ {
		if r.IntN(20) == 0 {
			idx, val := r.IntN(n), int64(r.IntN(100))
			require.NoError(t, direct.Update(idx, val))
			require.NoError(t, cached.Update(idx, val))
			continue
		}

		q := hot[r.IntN(len(hot))]
		if r.IntN(4) == 0 {
			left := r.IntN(n)
			q = Range{Left: left, Right: left + r.IntN(n-left)}
		}

		want, err := direct.Sum(q.Left, q.Right)
		require.NoError(t, err)
		got, err := cached.Sum(q.Left, q.Right)
		require.NoError(t, err)
		require.Equal(t, want, got, "op %d range %s", i, q)
		require.LessOrEqual(t, cached.CacheLen(), 8)
	}

	assert.Greater(t, cached.Stats().Hits, 0)
}

func TestEnginesCopyInput(t *testing.T) {
	data := fives(3)
	d := NewDirect(data)
	c, err := NewCached(data, 1)
	require.NoError(t, err)

	data[0] = 1000

	v, _ := d.Sum(0, 2)
	assert.Equal(t, int64(15), v)
	v, _ = c.Sum(0, 2)
	assert.Equal(t, int64(15), v)
}
