// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package lru implements a fixed-capacity, recency-ordered cache. Lookups go
// through a map index and recency is kept in an explicit doubly-linked list,
// so Get, Put and eviction are all O(1).
//
// A Cache is not safe for concurrent use. Callers sharing one across
// goroutines must serialize every call themselves.
package lru
