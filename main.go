// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/memoctl/internal/command"
	"github.com/staranto/memoctl/internal/config"
	mylog "github.com/staranto/memoctl/internal/log"
	"github.com/staranto/memoctl/internal/version"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	// Ctrl-C cancels a running benchmark.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands a named argument set. A lone @name argument is
// replaced by the list stored at <command>.<name> in the config file. Without
// one, <command>.defaults is inserted right after the command so explicit
// arguments still win.
func mangleArguments(args []string) []string {
	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	idx := 2
	set := "defaults"
	rest := make([]string, 0, len(args)-2)

	// The first @set wins and is removed from args. Its expansion goes where
	// it stood.
	found := false
	for _, a := range args[2:] {
		if !found && strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			idx += len(rest)
			found = true
			continue
		}
		rest = append(rest, a)
	}

	args = append(preamble, rest...)

	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil {
		log.Debugf("set %s: %v", set, err)
	}
	if found && len(setArgs) == 0 {
		log.Warnf("argument set @%s is empty or missing from config", set)
	}

	for _, arg := range setArgs {
		parts := strings.Fields(arg)
		args = append(args[:idx], append(parts, args[idx:]...)...)
		idx += len(parts)
	}

	log.Debugf("idx=%d, set=%s, args=%v", idx, set, args)
	return args
}
