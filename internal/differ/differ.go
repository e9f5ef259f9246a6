// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package differ reports differences between two JSON documents. The bench
// harness uses it to show where a cached engine disagreed with the direct one.
package differ

import (
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Diff compares left and right, both JSON objects. It returns false and an
// empty string when they are equal, otherwise true and an ASCII rendering of
// the changes against left.
func Diff(left, right []byte) (string, bool, error) {
	d, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return "", false, fmt.Errorf("failed to compare documents: %w", err)
	}
	if !d.Modified() {
		return "", false, nil
	}

	var base map[string]interface{}
	if err := json.Unmarshal(left, &base); err != nil {
		return "", true, fmt.Errorf("failed to decode left document: %w", err)
	}

	f := formatter.NewAsciiFormatter(base, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       false,
	})
	out, err := f.Format(d)
	if err != nil {
		return "", true, fmt.Errorf("failed to format diff: %w", err)
	}
	return out, true, nil
}

// DiffValues marshals left and right and compares them with Diff.
func DiffValues(left, right any) (string, bool, error) {
	l, err := json.Marshal(left)
	if err != nil {
		return "", false, err
	}
	r, err := json.Marshal(right)
	if err != nil {
		return "", false, err
	}
	return Diff(l, r)
}
