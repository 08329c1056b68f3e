// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhendle2/Quebec-Compiler/syntax"
)

type cmdTokens struct {
	global *globalOptions
}

func (*cmdTokens) help() *commandHelp {
	return &commandHelp{
		usage:   "tokens SOURCE",
		summary: "Print the classified tokens of a source file",
	}
}

func (*cmdTokens) flags(flags *pflag.FlagSet) {}

func (cmd *cmdTokens) run(ctx context.Context, argv []string) int {
	lines, ok := readSource(cmd.global.diagnostics(), argv)
	if !ok {
		return 1
	}
	syntax.DumpTokens(os.Stdout, syntax.Tokenize(lines))
	return 0
}

type cmdTree struct {
	global *globalOptions
}

func (*cmdTree) help() *commandHelp {
	return &commandHelp{
		usage:   "tree SOURCE",
		summary: "Print the statement tree of a source file",
	}
}

func (*cmdTree) flags(flags *pflag.FlagSet) {}

func (cmd *cmdTree) run(ctx context.Context, argv []string) int {
	diag := cmd.global.diagnostics()
	lines, ok := readSource(diag, argv)
	if !ok {
		return 1
	}
	root, err := syntax.BuildTree(syntax.Tokenize(lines))
	if err != nil {
		var syntaxErr *syntax.Error
		if errors.As(err, &syntaxErr) {
			diag.errorf("%v: %v", syntaxErr.Location(), syntaxErr)
		} else {
			diag.errorf("%v", err)
		}
		return 1
	}
	syntax.DumpTree(os.Stdout, root)
	return 0
}

func readSource(diag *diagnostics, argv []string) ([]*syntax.SourceLine, bool) {
	if len(argv) != 1 {
		diag.errorf("Expected exactly one SOURCE argument")
		return nil, false
	}
	lines, err := syntax.ReadLines(argv[0])
	if err != nil {
		diag.errorf("%v", err)
		return nil, false
	}
	for _, line := range lines {
		diag.debugf("%v", line)
	}
	return lines, true
}
