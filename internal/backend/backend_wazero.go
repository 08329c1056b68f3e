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

package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	wasm "github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
)

const defaultMemoryLimitPages = 16384

// WasmTool runs a WASI build of a tool in-process. The working directory
// is mounted as the guest's root, so file arguments must be relative.
type WasmTool struct {
	Name   string
	Module []byte
	Stdout io.Writer
	Stderr io.Writer

	MemoryLimitPages uint32
}

var _ Tool = (*WasmTool)(nil)

func LoadWasmTool(name, path string) (*WasmTool, error) {
	module, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &WasmTool{
		Name:   name,
		Module: module,
	}, nil
}

type WasmExitError struct {
	Tool string
	Code uint32
}

func (err *WasmExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", err.Tool, err.Code)
}

func (t *WasmTool) Run(ctx context.Context, dir string, args ...string) error {
	limit := t.MemoryLimitPages
	if limit == 0 {
		limit = defaultMemoryLimitPages
	}
	runtimeConfig := wasm.NewRuntimeConfigInterpreter()
	runtimeConfig = runtimeConfig.WithMemoryLimitPages(limit)
	runtime := wasm.NewRuntimeWithConfig(ctx, runtimeConfig)
	defer runtime.Close(ctx)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
		return err
	}

	compiled, err := runtime.CompileModule(ctx, t.Module)
	if err != nil {
		return &ToolError{Tool: t.Name, Args: args, Err: err}
	}

	stdout := t.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := t.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	moduleConfig := wasm.NewModuleConfig().
		WithArgs(append([]string{t.Name}, args...)...).
		WithStdout(stdout).
		WithStderr(stderr).
		WithFSConfig(wasm.NewFSConfig().WithDirMount(dir, "/"))

	mod, err := runtime.InstantiateModule(ctx, compiled, moduleConfig)
	if err != nil {
		var exitErr *sys.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.ExitCode() == 0 {
				return nil
			}
			return &ToolError{
				Tool: t.Name,
				Args: args,
				Err:  &WasmExitError{Tool: t.Name, Code: exitErr.ExitCode()},
			}
		}
		return &ToolError{Tool: t.Name, Args: args, Err: err}
	}
	return mod.Close(ctx)
}
