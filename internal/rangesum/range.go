// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rangesum

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when an index or range bound falls
	// outside the array.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidRange is returned when a range has Left > Right.
	ErrInvalidRange = errors.New("invalid range")
)

// Range is a closed interval [Left, Right] of 0-based indices. It is
// comparable and used directly as a cache key.
type Range struct {
	Left  int
	Right int
}

// Covers reports whether index lies inside the range.
func (r Range) Covers(index int) bool {
	return r.Left <= index && index <= r.Right
}

// Len is the number of elements in the range.
func (r Range) Len() int {
	return r.Right - r.Left + 1
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.Left, r.Right)
}

// validate checks r against an array of length n.
func (r Range) validate(n int) error {
	if r.Left > r.Right {
		return fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	if r.Left < 0 || r.Right >= n {
		return fmt.Errorf("%w: %s outside [0,%d)", ErrIndexOutOfRange, r, n)
	}
	return nil
}

func checkIndex(index, n int) error {
	if index < 0 || index >= n {
		return fmt.Errorf("%w: %d outside [0,%d)", ErrIndexOutOfRange, index, n)
	}
	return nil
}
