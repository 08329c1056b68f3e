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
	stdflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const version = "0.1.0"

// globalOptions holds flags shared by every subcommand.
type globalOptions struct {
	verbose bool
}

func (g *globalOptions) diagnostics() *diagnostics {
	return &diagnostics{
		w:       os.Stderr,
		verbose: g != nil && g.verbose,
	}
}

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
	long    string
}

func main() {
	ctx := context.Background()
	global := &globalOptions{}

	quebecCmd := &cobra.Command{
		Use:   "quebec [options] COMMAND",
		Short: "Quebec C-Compiler",
		Long: "Quebec translates a small C-like language into QBE IL, then\n" +
			"runs qbe and a C compiler to produce a native executable.",
		Version:       version,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	quebecCmd.SetVersionTemplate("quebec {{.Version}}\n")
	quebecCmd.PersistentFlags().BoolVarP(&global.verbose, "verbose", "v", false, "Enable verbose [DEBG] output")
	quebecCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, quebecCmd.UsageString())
		os.Exit(1)
		return nil
	}

	commands := []command{
		&cmdCompile{global: global},
		&cmdTokens{global: global},
		&cmdTree{global: global},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			Long:  help.long,
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				os.Exit(cmd.run(ctx, args))
				return nil
			},
		}
		quebecCmd.AddCommand(cobraCmd)
		cmd.flags(cobraCmd.Flags())
	}

	quebecCmd.Flags().AddGoFlagSet(stdflag.CommandLine)
	if _, err := quebecCmd.ExecuteC(); err != nil {
		global.diagnostics().errorf("%v", err)
		os.Exit(1)
	}
}
