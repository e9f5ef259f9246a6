// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = "# memoctl fq\n\n## Short description\n\nTime a memoized\nFibonacci sweep.\n\n" +
	"## Quick examples\n\n```sh\n# Sweep both backends\nmemoctl fq\nmemoctl   fq --max 10\n```\n"

func TestExtractTitleAndShortDesc(t *testing.T) {
	title, short := extractTitleAndShortDesc(sampleDoc)
	assert.Equal(t, "memoctl fq", title)
	assert.Equal(t, "Time a memoized Fibonacci sweep.", short)

	title, short = extractTitleAndShortDesc("# only a title\n")
	assert.Equal(t, "only a title", title)
	assert.Equal(t, "only a title.", short)
}

func TestExtractQuickExamples(t *testing.T) {
	got := extractQuickExamples(sampleDoc)
	assert.Equal(t, []example{
		{Desc: "Sweep both backends", Cmd: "memoctl fq"},
		{Desc: "Example", Cmd: "memoctl fq --max 10"},
	}, got)

	assert.Nil(t, extractQuickExamples("# no examples here"))
}

func TestBuildTLDR(t *testing.T) {
	got := buildTLDR("fq", "memoctl fq", "Sweep.", []example{{Desc: "Run it", Cmd: "memoctl fq"}})
	assert.Equal(t, "# memoctl-fq\n\n> Sweep.\n> More information: https://github.com/staranto/memoctl.\n\n"+
		"- Run it:\n\n`memoctl fq`\n", got)

	got = buildTLDR("rsq", "", "", nil)
	assert.Contains(t, got, "`memoctl rsq --help`")
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	commands := filepath.Join(root, "docs", "commands")
	require.NoError(t, os.MkdirAll(commands, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(commands, "fq.md"), []byte(sampleDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(commands, "notes.txt"), []byte("skip"), 0o644))

	n, err := generate(root, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	man, err := os.ReadFile(filepath.Join(root, "docs", "man", "share", "man1", "memoctl-fq.1"))
	require.NoError(t, err)
	assert.NotEmpty(t, man)

	tldr, err := os.ReadFile(filepath.Join(root, "docs", "tldr", "memoctl-fq.md"))
	require.NoError(t, err)
	assert.Contains(t, string(tldr), "# memoctl-fq")

	// A second run with unchanged content leaves files alone.
	n, err = generate(root, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGenerate_NoDocs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs", "commands"), 0o755))

	_, err := generate(root, true)
	assert.Error(t, err)

	_, err = generate(filepath.Join(root, "missing"), true)
	assert.Error(t, err)
}
