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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/jhendle2/Quebec-Compiler/compiler"
	"github.com/jhendle2/Quebec-Compiler/internal/backend"
	"github.com/jhendle2/Quebec-Compiler/syntax"
)

type cmdCompile struct {
	global *globalOptions

	outPath          string
	ilPath           string
	runAfter         bool
	emitIL           bool
	noSourceComments bool
	qbePath          string
	qbeWasmPath      string
	ccPath           string
}

func (*cmdCompile) help() *commandHelp {
	return &commandHelp{
		usage:   "compile SOURCE",
		summary: "Compile a source file to QBE IL and link it into an executable",
		long: "Writes QBE IL for SOURCE (default temp.ssa), lowers it with qbe and\n" +
			"links the result with the C compiler. Tool paths may also be set with\n" +
			"QUEBEC_QBE, QUEBEC_QBE_WASM and QUEBEC_CC.",
	}
}

func (cmd *cmdCompile) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.outPath, "out", "o", "", "Output executable path")
	flags.StringVar(&cmd.ilPath, "il", "temp.ssa", "Path of the intermediate IL file ('-' for stdout with --emit-il)")
	flags.BoolVarP(&cmd.runAfter, "run", "r", false, "After compilation, immediately run the program")
	flags.BoolVar(&cmd.emitIL, "emit-il", false, "Stop after writing the IL file")
	flags.BoolVar(&cmd.noSourceComments, "no-source-comments", false, "Omit source location comments from the IL")
	flags.StringVar(&cmd.qbePath, "qbe", envOr("QUEBEC_QBE", "qbe"), "QBE executable ($QUEBEC_QBE)")
	flags.StringVar(&cmd.qbeWasmPath, "qbe-wasm", os.Getenv("QUEBEC_QBE_WASM"), "WASI build of QBE to run in-process ($QUEBEC_QBE_WASM)")
	flags.StringVar(&cmd.ccPath, "cc", envOr("QUEBEC_CC", "cc"), "C compiler used to assemble and link ($QUEBEC_CC)")
}

func (cmd *cmdCompile) run(ctx context.Context, argv []string) int {
	diag := cmd.global.diagnostics()
	if len(argv) != 1 {
		diag.errorf("usage: quebec compile [options] SOURCE")
		return 1
	}
	if !cmd.emitIL && cmd.outPath == "" {
		diag.errorf("No output path specified (set --out=)")
		return 1
	}
	if cmd.ilPath == "-" && !cmd.emitIL {
		diag.errorf("IL can only be written to stdout with --emit-il")
		return 1
	}
	diag.debugf("Verbose output enabled")
	srcPath := argv[0]

	steps := 3
	if cmd.emitIL {
		steps = 2
	} else if cmd.runAfter {
		steps = 4
	}
	step := 0

	step++
	diag.infof("Parsing...    STEP (%d/%d)", step, steps)
	lines, err := syntax.ReadLines(srcPath)
	if err != nil {
		diag.warnf("File (%s) does not exist", srcPath)
		return 1
	}
	for _, line := range lines {
		diag.debugf("%v", line)
	}
	tokens := syntax.Tokenize(lines)
	if dbg := diag.debug(); dbg != nil {
		syntax.DumpTokens(dbg, tokens)
	}
	root, err := syntax.BuildTree(tokens)
	if err != nil {
		var syntaxErr *syntax.Error
		if errors.As(err, &syntaxErr) {
			diag.errorf("%v: %v", syntaxErr.Location(), syntaxErr)
		} else {
			diag.errorf("%v", err)
		}
		return 1
	}
	if dbg := diag.debug(); dbg != nil {
		syntax.DumpTree(dbg, root)
	}

	step++
	diag.infof("Assembling... STEP (%d/%d)", step, steps)
	if !cmd.writeIL(diag, root) {
		return 1
	}
	if cmd.emitIL {
		diag.infof("All Done!")
		return 0
	}

	step++
	diag.infof("Compiling...  STEP (%d/%d)", step, steps)
	toolchain, err := cmd.toolchain()
	if err != nil {
		diag.errorf("%v", err)
		return 1
	}
	ilAbs, err := filepath.Abs(cmd.ilPath)
	if err != nil {
		diag.errorf("%v", err)
		return 1
	}
	outAbs, err := filepath.Abs(cmd.outPath)
	if err != nil {
		diag.errorf("%v", err)
		return 1
	}
	err = toolchain.Build(ctx, filepath.Dir(ilAbs), filepath.Base(ilAbs), outAbs)
	diag.debugf("QBE ret code = %d", backend.ExitCode(err))
	if err != nil {
		diag.warnf("%v", err)
		return 1
	}

	if cmd.runAfter {
		step++
		diag.infof("Running...    STEP (%d/%d)", step, steps)
		program := &backend.ExecTool{Path: outAbs}
		err := program.Run(ctx, "")
		diag.debugf("Run ret code = %d", backend.ExitCode(err))
	}

	diag.infof("All Done!")
	return 0
}

func (cmd *cmdCompile) writeIL(diag *diagnostics, root *syntax.Node) bool {
	var out io.Writer = os.Stdout
	var fp *os.File
	if cmd.ilPath != "-" {
		var err error
		openFlags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		fp, err = os.OpenFile(cmd.ilPath, openFlags, 0o666)
		if err != nil {
			diag.errorf("%v", err)
			return false
		}
		out = fp
	}
	buf := bufio.NewWriter(out)

	opts := []compiler.CompileOption{
		compiler.WithSourceComments(!cmd.noSourceComments),
	}
	if dbg := diag.debug(); dbg != nil {
		opts = append(opts, compiler.WithTrace(dbg))
	}
	result := compiler.Compile(buf, root, opts...)
	for _, warn := range result.Warnings {
		diag.warnf("%v: %v", warn.Location(), warn)
	}
	for _, err := range result.Errors {
		if err.Token() != nil {
			diag.errorf("%v: %v", err.Location(), err)
		} else {
			diag.errorf("%v", err)
		}
	}

	flushErr := buf.Flush()
	var closeErr error
	if fp != nil {
		closeErr = fp.Close()
	}
	if !result.OK() {
		return false
	}
	if flushErr != nil {
		diag.errorf("%v", flushErr)
		return false
	}
	if closeErr != nil {
		diag.errorf("%v", closeErr)
		return false
	}
	return true
}

func (cmd *cmdCompile) toolchain() (*backend.Toolchain, error) {
	toolchain := &backend.Toolchain{
		QBE: &backend.ExecTool{Path: cmd.qbePath},
		CC:  &backend.ExecTool{Path: cmd.ccPath},
	}
	if cmd.qbeWasmPath != "" {
		qbe, err := backend.LoadWasmTool("qbe", cmd.qbeWasmPath)
		if err != nil {
			return nil, fmt.Errorf("Failed to load QBE WebAssembly module: %w", err)
		}
		toolchain.QBE = qbe
	}
	return toolchain, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
