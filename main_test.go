// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/staranto/memoctl/internal/config"
)

func TestMangleArguments(t *testing.T) {
	t.Setenv("MEMOCTL_CFG", "testdata/sets.yaml")
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults only",
			args: []string{"memoctl", "rsq"},
			want: []string{"memoctl", "rsq", "-n", "100", "-q", "50"},
		},
		{
			name: "defaults before explicit args",
			args: []string{"memoctl", "rsq", "-o", "json"},
			want: []string{"memoctl", "rsq", "-n", "100", "-q", "50", "-o", "json"},
		},
		{
			name: "named set in place",
			args: []string{"memoctl", "rsq", "-o", "json", "@small", "-C", "5"},
			want: []string{"memoctl", "rsq", "-o", "json", "-n", "10", "--seed", "3", "-C", "5"},
		},
		{
			name: "missing set is dropped",
			args: []string{"memoctl", "rsq", "@nope", "-C", "5"},
			want: []string{"memoctl", "rsq", "-C", "5"},
		},
		{
			name: "no defaults for command",
			args: []string{"memoctl", "fq", "--max", "10"},
			want: []string{"memoctl", "fq", "--max", "10"},
		},
		{
			name: "help wins",
			args: []string{"memoctl", "rsq", "@small", "-h"},
			want: []string{"memoctl", "rsq", "--help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mangleArguments(tt.args))
		})
	}
}
