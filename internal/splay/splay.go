// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package splay implements a self-adjusting binary search tree. Every Search
// and Insert moves the last node it touches to the root through zig, zig-zig
// and zig-zag rotations, which keeps recently used keys cheap to reach. Cost
// is amortized logarithmic; a single operation can still be linear.
//
// The tree has no capacity bound and never removes entries. Insert does not
// overwrite a key that is already present.
//
// A Tree is not safe for concurrent use, and Search mutates the tree.
package splay

import (
	"cmp"
)

type node[K cmp.Ordered, V any] struct {
	key         K
	value       V
	left, right *node[K, V]
}

// Stats are running counters for a Tree.
type Stats struct {
	Searches  int
	Hits      int
	Inserts   int
	Rotations int
}

// Tree is an ordered map from K to V. The zero value is an empty tree ready
// to use.
type Tree[K cmp.Ordered, V any] struct {
	root  *node[K, V]
	size  int
	path  []*node[K, V]
	stats Stats
}

// New returns an empty tree.
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return &Tree[K, V]{}
}

// Search looks key up and splays the node it ends on to the root: the
// matching node, or the last node on the search path when key is absent. The
// tree is reshaped even on a miss.
func (t *Tree[K, V]) Search(key K) (V, bool) {
	t.stats.Searches++
	t.splay(key)

	if t.root != nil && t.root.key == key {
		t.stats.Hits++
		return t.root.value, true
	}
	var zero V
	return zero, false
}

// Insert adds key with value and reports whether it was added. When key is
// already present the tree is splayed but the stored value is left as is.
func (t *Tree[K, V]) Insert(key K, value V) bool {
	if t.root == nil {
		t.root = &node[K, V]{key: key, value: value}
		t.size = 1
		t.stats.Inserts++
		return true
	}

	t.splay(key)
	if t.root.key == key {
		return false
	}

	// After the splay the root is key's predecessor or successor, so the
	// split below keeps every left key < key < every right key.
	n := &node[K, V]{key: key, value: value}
	if key < t.root.key {
		n.right = t.root
		n.left = t.root.left
		t.root.left = nil
	} else {
		n.left = t.root
		n.right = t.root.right
		t.root.right = nil
	}
	t.root = n
	t.size++
	t.stats.Inserts++
	return true
}

// Root returns the key and value at the root.
func (t *Tree[K, V]) Root() (K, V, bool) {
	if t.root == nil {
		var (
			k K
			v V
		)
		return k, v, false
	}
	return t.root.key, t.root.value, true
}

// Len returns the number of keys in the tree.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// Stats returns a copy of the running counters.
func (t *Tree[K, V]) Stats() Stats {
	return t.stats
}

// Reset drops every node.
func (t *Tree[K, V]) Reset() {
	t.root = nil
	t.size = 0
	t.path = t.path[:0]
}

// splay descends toward key, recording the path, then rotates the last node
// on the path up to the root. Both phases are iterative: before splaying, the
// tree can be as deep as it is large.
func (t *Tree[K, V]) splay(key K) {
	path := t.path[:0]
	for n := t.root; n != nil; {
		path = append(path, n)
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			n = nil
		}
	}

	for len(path) > 1 {
		x := path[len(path)-1]
		p := path[len(path)-2]

		// Zig: p is the root.
		if len(path) == 2 {
			t.root = t.rotateUp(p, x)
			path = path[:0]
			break
		}

		g := path[len(path)-3]
		var sub *node[K, V]
		if (p.left == x) == (g.left == p) {
			// Zig-zig: rotate p over g, then x over p.
			top := t.rotateUp(g, p)
			sub = t.rotateUp(top, x)
		} else {
			// Zig-zag: rotate x over p, then x over g.
			if g.left == p {
				g.left = t.rotateUp(p, x)
			} else {
				g.right = t.rotateUp(p, x)
			}
			sub = t.rotateUp(g, x)
		}

		path = path[:len(path)-3]
		if len(path) == 0 {
			t.root = sub
		} else if gg := path[len(path)-1]; gg.left == g {
			gg.left = sub
		} else {
			gg.right = sub
		}
		path = append(path, sub)
	}

	// Keep the backing array for the next call but drop node references.
	clear(path[:cap(path)])
	t.path = path[:0]
}

// rotateUp rotates child c over its parent p and returns c, the new subtree
// root. The caller reattaches it.
func (t *Tree[K, V]) rotateUp(p, c *node[K, V]) *node[K, V] {
	t.stats.Rotations++
	if p.left == c {
		p.left = c.right
		c.right = p
	} else {
		p.right = c.left
		c.left = p
	}
	return c
}
