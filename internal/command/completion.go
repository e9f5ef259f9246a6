// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/memoctl/internal/meta"
)

const bashCompletionScript = `# bash completion for memoctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_memoctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "fq rsq completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --tldr --schema"

    case "$cmd" in
        fq)
            local opts="$common --max --step --capacity -C --backend"
            ;;
        rsq)
            local opts="$common --size -n --queries -q --hot --hot-prob --update-prob --max-value --capacity -C --seed --workload -w --verify"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --backend)
            COMPREPLY=( $(compgen -W "lru splay both" -- "$cur") )
            return 0
            ;;
        --workload|-w)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _memoctl memoctl
`

const zshCompletionScript = `#compdef memoctl

_memoctl() {
  local -a cmds
  cmds=(
    'fq:memoized Fibonacci sweep'
    'rsq:range-sum query benchmark'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--schema[list row attributes]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'memoctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    fq)
      _arguments -C \
        $common \
        '--max[sweep limit]:max' \
        '--step[sweep step]:step' \
        '(-C --capacity)'{-C,--capacity}'[LRU capacity]:capacity' \
        '--backend[memo backend]:backend:(lru splay both)'
      ;;
    rsq)
      _arguments -C \
        $common \
        '(-n --size)'{-n,--size}'[array length]:size' \
        '(-q --queries)'{-q,--queries}'[operation count]:queries' \
        '--hot[hot range pool]:hot' \
        '--hot-prob[hot range probability]:prob' \
        '--update-prob[update probability]:prob' \
        '--max-value[largest value]:value' \
        '(-C --capacity)'{-C,--capacity}'[LRU capacity]:capacity' \
        '--seed[generator seed]:seed' \
        '(-w --workload)'{-w,--workload}'[workload file]:file:_files' \
        '--verify[check cached answers]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _memoctl memoctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := writer(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: memoctl completion [bash|zsh]")
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "memoctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
