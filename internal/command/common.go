// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/memoctl/internal/attrs"
	"github.com/staranto/memoctl/internal/meta"
	"github.com/staranto/memoctl/internal/output"
)

// ShortCircuitTLDR checks the --tldr flag and, if present, runs
// `tldr memoctl <subcmd>` and returns true so the caller can exit early. When
// tldr is not installed the built-in examples are printed instead.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string, examples [][2]string) bool {
	if !cmd.Bool("tldr") {
		return false
	}

	if _, err := exec.LookPath("tldr"); err == nil {
		c := exec.CommandContext(ctx, "tldr", "memoctl", subcmd)
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err == nil {
			return true
		}
		log.Debugf("tldr memoctl %s failed, using built-in examples", subcmd)
	}

	output.DumpExamples(writer(cmd), examples)
	return true
}

// DumpSchemaIfRequested prints the attributes of the provided row type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(writer(cmd), t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// EmitRows marshals rows as JSON and passes them to the common output
// routine.
func EmitRows(rows any, al attrs.AttrList, cmd *cli.Command) error {
	var raw bytes.Buffer
	if err := json.NewEncoder(&raw).Encode(rows); err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	return output.SliceDiceSpit(raw, al, output.OptionsFromCommand(cmd), "", writer(cmd))
}

// writer is where command output goes: the root command's Writer, which
// tests replace, or stdout.
func writer(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if root := cmd.Root(); root != nil && root.Writer != nil {
			return root.Writer
		}
	}
	return os.Stdout
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// CommandBuilder constructs a cli.Command for the benchmark subcommands (rsq,
// fq) using a consistent pattern. The builder wires metadata, adds the
// tldr/schema flags, applies global flags, and sets up validators.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: append(cb.Flags, append([]cli.Flag{
			newTldrFlag(),
			newSchemaFlag(),
		}, NewGlobalFlags(cb.Name)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}

// BenchActionRunner[R] encapsulates the common action pattern of the
// benchmark subcommands. It handles GetMeta, the short-circuit checks,
// BuildAttrs and output emission, with the benchmark itself provided by RunFn.
type BenchActionRunner[R any] struct {
	CommandName  string
	DefaultAttrs []string
	Examples     [][2]string
	RunFn        func(context.Context, *cli.Command) ([]R, error)
}

// Run executes the action with the provided context and command.
func (bar *BenchActionRunner[R]) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, bar.CommandName, bar.Examples) {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeFor[R]()) {
		return nil
	}

	al := BuildAttrs(cmd, bar.DefaultAttrs...)
	log.Debugf("attrs: %v", al.String())

	rows, err := bar.RunFn(ctx, cmd)
	if err != nil {
		return err
	}

	return EmitRows(rows, al, cmd)
}
