// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package splay

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leaf and tree build fixed shapes so each rotation case can be checked.
func leaf(k int) *node[int, string] {
	return &node[int, string]{key: k, value: "v"}
}

func with(n *node[int, string], left, right *node[int, string]) *node[int, string] {
	n.left, n.right = left, right
	return n
}

func keyOf(n *node[int, string]) int {
	if n == nil {
		return -1
	}
	return n.key
}

func assertStrictlyIncreasing(t *testing.T, tr *Tree[int, int]) {
	t.Helper()
	keys := tr.Keys()
	require.Len(t, keys, tr.Len())
	for i := 1; i < len(keys); i++ {
		require.Less(t, keys[i-1], keys[i], "in-order keys at %d", i)
	}
}

func TestEmptyTree(t *testing.T) {
	tr := New[int, int]()

	v, ok := tr.Search(5)
	assert.False(t, ok)
	assert.Equal(t, 0, v)
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 0, tr.Height())
	assert.Empty(t, tr.Keys())

	_, _, ok = tr.Root()
	assert.False(t, ok)
}

func TestSingleNode(t *testing.T) {
	var tr Tree[int, int]

	assert.True(t, tr.Insert(7, 70))
	v, ok := tr.Search(7)
	assert.True(t, ok)
	assert.Equal(t, 70, v)

	_, ok = tr.Search(3)
	assert.False(t, ok)
	k, _, _ := tr.Root()
	assert.Equal(t, 7, k)
	assert.Equal(t, 1, tr.Height())
}

func TestZig(t *testing.T) {
	tr := &Tree[int, string]{root: with(leaf(2), leaf(1), nil), size: 2}

	_, ok := tr.Search(1)
	require.True(t, ok)

	assert.Equal(t, 1, keyOf(tr.root))
	assert.Nil(t, tr.root.left)
	assert.Equal(t, 2, keyOf(tr.root.right))
	assert.Equal(t, 1, tr.Stats().Rotations)
}

func TestZigZig(t *testing.T) {
	// 3 -> 2 -> 1 down the left spine.
	tr := &Tree[int, string]{root: with(leaf(3), with(leaf(2), leaf(1), nil), nil), size: 3}

	_, ok := tr.Search(1)
	require.True(t, ok)

	assert.Equal(t, 1, keyOf(tr.root))
	assert.Equal(t, 2, keyOf(tr.root.right))
	assert.Equal(t, 3, keyOf(tr.root.right.right))
	assert.Equal(t, 3, tr.Height())
	assert.Equal(t, 2, tr.Stats().Rotations)
}

func TestZigZigRight(t *testing.T) {
	tr := &Tree[int, string]{root: with(leaf(1), nil, with(leaf(2), nil, leaf(3))), size: 3}

	_, ok := tr.Search(3)
	require.True(t, ok)

	assert.Equal(t, 3, keyOf(tr.root))
	assert.Equal(t, 2, keyOf(tr.root.left))
	assert.Equal(t, 1, keyOf(tr.root.left.left))
}

func TestZigZag(t *testing.T) {
	// 3 has left child 1, which has right child 2.
	tr := &Tree[int, string]{root: with(leaf(3), with(leaf(1), nil, leaf(2)), nil), size: 3}

	_, ok := tr.Search(2)
	require.True(t, ok)

	assert.Equal(t, 2, keyOf(tr.root))
	assert.Equal(t, 1, keyOf(tr.root.left))
	assert.Equal(t, 3, keyOf(tr.root.right))
	assert.Equal(t, 2, tr.Height())
}

func TestZigZagUnderGreatGrandparent(t *testing.T) {
	// 10 -> left 5 -> right 8 -> left 7: a zig-zag then a zig.
	tr := &Tree[int, string]{
		root: with(leaf(10), with(leaf(5), leaf(1), with(leaf(8), leaf(7), nil)), leaf(20)),
		size: 6,
	}

	_, ok := tr.Search(7)
	require.True(t, ok)
	assert.Equal(t, 7, keyOf(tr.root))

	var keys []int
	tr.Walk(func(k int, _ string) bool {
		keys = append(keys, k)
		return true
	})
	assert.Equal(t, []int{1, 5, 7, 8, 10, 20}, keys)
}

func TestMissSplaysLastVisitedNode(t *testing.T) {
	tr := &Tree[int, string]{root: with(leaf(20), leaf(10), leaf(30)), size: 3}

	_, ok := tr.Search(25)
	assert.False(t, ok)
	assert.Equal(t, 30, keyOf(tr.root))
	assert.Equal(t, 20, keyOf(tr.root.left))
	assert.Equal(t, 10, keyOf(tr.root.left.left))
	assert.Equal(t, 1, tr.Stats().Searches)
	assert.Equal(t, 0, tr.Stats().Hits)
}

func TestInsertDoesNotOverwrite(t *testing.T) {
	tr := New[int, string]()

	assert.True(t, tr.Insert(4, "first"))
	assert.True(t, tr.Insert(2, "other"))
	assert.False(t, tr.Insert(4, "second"))

	v, ok := tr.Search(4)
	assert.True(t, ok)
	assert.Equal(t, "first", v)
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, 2, tr.Stats().Inserts)
}

func TestInsertMakesNewKeyRoot(t *testing.T) {
	tr := New[int, int]()
	for _, k := range []int{50, 20, 80, 10, 30, 60, 90, 35} {
		require.True(t, tr.Insert(k, k))
		root, _, _ := tr.Root()
		assert.Equal(t, k, root)
	}
	assert.Equal(t, []int{10, 20, 30, 35, 50, 60, 80, 90}, tr.Keys())
}

func TestRootProximityAndInvariant(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	tr := New[int, int]()
	present := map[int]int{}

	for i := 0; i < 5000; i++ {
		k := r.IntN(500)
		if r.IntN(2) == 0 {
			inserted := tr.Insert(k, i)
			_, had := present[k]
			assert.Equal(t, !had, inserted)
			if !had {
				present[k] = i
			}
		} else {
			v, ok := tr.Search(k)
			want, had := present[k]
			require.Equal(t, had, ok, "key %d", k)
			if had {
				require.Equal(t, want, v)
				root, _, _ := tr.Root()
				require.Equal(t, k, root)
			}
		}
		if i%250 == 0 {
			assertStrictlyIncreasing(t, tr)
		}
	}

	assertStrictlyIncreasing(t, tr)
	assert.Equal(t, len(present), tr.Len())
}

func TestDegenerateTreeIsSplayedIteratively(t *testing.T) {
	const n = 100000
	tr := New[int, int]()
	for i := 0; i < n; i++ {
		tr.Insert(i, i)
	}
	// Ascending inserts leave a single left spine.
	require.Equal(t, n, tr.Height())

	v, ok := tr.Search(0)
	require.True(t, ok)
	assert.Equal(t, 0, v)
	assert.Less(t, tr.Height(), n)

	keys := tr.Keys()
	assert.True(t, slices.IsSorted(keys))
	assert.Len(t, keys, n)
}

func TestWalkStopsEarly(t *testing.T) {
	tr := New[int, int]()
	for _, k := range []int{5, 3, 8, 1, 4} {
		tr.Insert(k, k)
	}

	var seen []int
	tr.Walk(func(k, _ int) bool {
		seen = append(seen, k)
		return len(seen) < 3
	})
	assert.Equal(t, []int{1, 3, 4}, seen)
}

func TestReset(t *testing.T) {
	tr := New[string, int]()
	tr.Insert("a", 1)
	tr.Insert("b", 2)
	tr.Reset()

	assert.Equal(t, 0, tr.Len())
	_, ok := tr.Search("a")
	assert.False(t, ok)
	assert.True(t, tr.Insert("a", 3))
}
