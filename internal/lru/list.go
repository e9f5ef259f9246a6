// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package lru

// element is a node of the recency list. The key is kept here because
// eviction starts from the list, not from the map.
type element[K comparable, V any] struct {
	next, prev *element[K, V]
	key        K
	value      V
}

// list is a circular doubly-linked list with a sentinel root. root.next is the
// most recently used element, root.prev the least recently used.
type list[K comparable, V any] struct {
	root element[K, V]
	len  int
}

func (l *list[K, V]) init() {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
}

func (l *list[K, V]) front() *element[K, V] {
	if l.len == 0 {
		return nil
	}
	return l.root.next
}

func (l *list[K, V]) back() *element[K, V] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

// pushFront links e in as the most recently used element.
func (l *list[K, V]) pushFront(e *element[K, V]) {
	e.prev = &l.root
	e.next = l.root.next
	l.root.next.prev = e
	l.root.next = e
	l.len++
}

func (l *list[K, V]) remove(e *element[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = nil
	e.prev = nil
	l.len--
}

func (l *list[K, V]) moveToFront(e *element[K, V]) {
	if l.root.next == e {
		return
	}
	e.prev.next = e.next
	e.next.prev = e.prev

	e.prev = &l.root
	e.next = l.root.next
	l.root.next.prev = e
	l.root.next = e
}
