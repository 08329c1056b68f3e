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

// Package backend drives the external tools that turn emitted IL into an
// executable: the QBE backend and a C compiler used as assembler and linker.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Tool runs one external program with dir as its working directory.
type Tool interface {
	Run(ctx context.Context, dir string, args ...string) error
}

// ExecTool runs a native executable.
type ExecTool struct {
	Path   string
	Stdout io.Writer
	Stderr io.Writer
}

var _ Tool = (*ExecTool)(nil)

func (t *ExecTool) Run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, t.Path, args...)
	cmd.Dir = dir
	cmd.Stdout = t.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = t.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Run(); err != nil {
		return &ToolError{Tool: t.Path, Args: args, Err: err}
	}
	return nil
}

type ToolError struct {
	Tool string
	Args []string
	Err  error
}

func (err *ToolError) Error() string {
	return fmt.Sprintf("%s %s: %v", err.Tool, strings.Join(err.Args, " "), err.Err)
}

func (err *ToolError) Unwrap() error {
	return err.Err
}

// ExitCode extracts a process exit status from an error returned by a
// Tool. It returns 0 for a nil error and -1 when no status is available.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	var wasmErr *WasmExitError
	if errors.As(err, &wasmErr) {
		return int(wasmErr.Code)
	}
	return -1
}

type Toolchain struct {
	QBE Tool
	CC  Tool
}

// AssemblyName derives the assembly file name written by QBE for an IL
// file, "temp.ssa" becoming "temp.s".
func AssemblyName(ilName string) string {
	return strings.TrimSuffix(ilName, filepath.Ext(ilName)) + ".s"
}

// Build lowers ilName to assembly and links it into outName. Both names
// are relative to dir.
func (tc *Toolchain) Build(ctx context.Context, dir, ilName, outName string) error {
	asmName := AssemblyName(ilName)
	if err := tc.QBE.Run(ctx, dir, "-o", asmName, ilName); err != nil {
		return fmt.Errorf("QBE did not compile successfully: %w", err)
	}
	if err := tc.CC.Run(ctx, dir, "-o", outName, asmName); err != nil {
		return fmt.Errorf("C compiler did not link successfully: %w", err)
	}
	return nil
}
