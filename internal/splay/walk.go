// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package splay

// Walk calls fn for every key in ascending order until fn returns false. It
// does not splay.
func (t *Tree[K, V]) Walk(fn func(key K, value V) bool) {
	var stack []*node[K, V]
	n := t.root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n.key, n.value) {
			return
		}
		n = n.right
	}
}

// Keys returns every key in ascending order.
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	t.Walk(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Height is the number of nodes on the longest root-to-leaf path; 0 for an
// empty tree.
func (t *Tree[K, V]) Height() int {
	if t.root == nil {
		return 0
	}

	type frame struct {
		n     *node[K, V]
		depth int
	}
	height := 0
	stack := []frame{{t.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		height = max(height, f.depth)
		if f.n.left != nil {
			stack = append(stack, frame{f.n.left, f.depth + 1})
		}
		if f.n.right != nil {
			stack = append(stack, frame{f.n.right, f.depth + 1})
		}
	}
	return height
}
