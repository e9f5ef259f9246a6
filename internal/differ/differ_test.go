// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffEqual(t *testing.T) {
	out, changed, err := Diff([]byte(`{"sums":[1,2,3]}`), []byte(`{"sums":[1,2,3]}`))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, out)
}

func TestDiffChanged(t *testing.T) {
	out, changed, err := Diff([]byte(`{"sums":[1,2,3]}`), []byte(`{"sums":[1,20,3]}`))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, out, "20")
}

func TestDiffInvalid(t *testing.T) {
	_, _, err := Diff([]byte(`not json`), []byte(`{}`))
	assert.Error(t, err)
}

func TestDiffValues(t *testing.T) {
	type answers struct {
		Sums []int64 `json:"sums"`
	}

	_, changed, err := DiffValues(answers{Sums: []int64{4}}, answers{Sums: []int64{4}})
	require.NoError(t, err)
	assert.False(t, changed)

	_, changed, err = DiffValues(answers{Sums: []int64{4}}, answers{Sums: []int64{5}})
	require.NoError(t, err)
	assert.True(t, changed)
}
