// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package rangesum answers range-sum queries over a mutable array. The Cached
// engine memoizes answers in an LRU cache keyed by Range and drops every
// cached range covering an index as soon as that index is written.
package rangesum
