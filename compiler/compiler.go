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

// Package compiler walks a statement tree and emits QBE intermediate
// language, one grammar unit at a time.
package compiler

import (
	"fmt"
	"io"

	"github.com/jhendle2/Quebec-Compiler/grammar"
	"github.com/jhendle2/Quebec-Compiler/syntax"
)

const defaultDataSegmentLimit = 64 * 1024

type CompileOption interface {
	apply(*CompileOptions)
}

type compileOption func(*CompileOptions)

func (f compileOption) apply(opts *CompileOptions) { f(opts) }

type CompileOptions struct {
	sourceComments   bool
	trace            io.Writer
	dataSegmentLimit int
}

// WithSourceComments controls the "# path:line: text" comments written
// before the first statement of each new source line.
func WithSourceComments(enabled bool) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.sourceComments = enabled
	})
}

// WithTrace writes each statement's source line and grammar prediction
// steps to w.
func WithTrace(w io.Writer) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.trace = w
	})
}

// WithDataSegmentLimit caps the size in bytes of the accumulated data
// segment. Zero means no limit.
func WithDataSegmentLimit(limit int) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.dataSegmentLimit = limit
	})
}

func NewCompileOptions(opts ...CompileOption) *CompileOptions {
	compileOptions := &CompileOptions{
		sourceComments:   true,
		dataSegmentLimit: defaultDataSegmentLimit,
	}
	for _, opt := range opts {
		opt.apply(compileOptions)
	}
	return compileOptions
}

type CompileResult struct {
	Errors   []*Error
	Warnings []*Warning
}

func (r *CompileResult) OK() bool {
	return len(r.Errors) == 0
}

// Compile emits IL for the tree rooted at root into w.
func Compile(w io.Writer, root *syntax.Node, opts ...CompileOption) CompileResult {
	return NewCompileOptions(opts...).Compile(w, root)
}

// CompileSource runs the whole pipeline over one translation unit.
// Structural errors from the tree builder are returned as err.
func CompileSource(
	w io.Writer,
	path string,
	src []byte,
	opts ...CompileOption,
) (CompileResult, error) {
	tokens := syntax.Tokenize(syntax.SplitLines(path, src))
	root, err := syntax.BuildTree(tokens)
	if err != nil {
		return CompileResult{}, err
	}
	return Compile(w, root, opts...), nil
}

func (opts *CompileOptions) Compile(w io.Writer, root *syntax.Node) CompileResult {
	c := &compiler{
		opts:     opts,
		out:      w,
		nextLine: 1,
		data:     &dataSegment{limit: opts.dataSegmentLimit},
		scopes:   &scopeStack{},
	}
	if opts.trace != nil {
		c.predict = grammar.NewPredictOptions(grammar.WithTrace(opts.trace))
	} else {
		c.predict = grammar.NewPredictOptions()
	}

	err := c.compileTree(root)
	if err == nil {
		if c.scopes.depth() > 0 {
			c.warn(warnUnclosedScope(c.scopes.frames[0].opener))
		}
		c.data.writeTo(c)
		err = c.writeErr
	}
	if err != nil {
		return CompileResult{
			Errors:   []*Error{asError(err)},
			Warnings: c.warnings,
		}
	}
	return CompileResult{
		Warnings: c.warnings,
	}
}

type compiler struct {
	opts     *CompileOptions
	out      io.Writer
	writeErr error
	predict  *grammar.PredictOptions
	warnings []*Warning

	// Source line of the next statement that gets a location comment.
	nextLine uint32

	data   *dataSegment
	scopes *scopeStack
}

func (c *compiler) writef(format string, args ...any) {
	if c.writeErr != nil {
		return
	}
	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		c.writeErr = errWrite(err)
	}
}

func (c *compiler) warn(w *Warning) {
	c.warnings = append(c.warnings, w)
}

func (c *compiler) compileTree(node *syntax.Node) error {
	if err := c.compileNode(node); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := c.compileTree(child); err != nil {
			return err
		}
	}
	return c.writeErr
}

func (c *compiler) compileNode(node *syntax.Node) error {
	tokens := node.Tokens
	if len(tokens) == 0 || tokens[0].Text == ";" {
		return nil
	}

	if line := tokens[0].Origin; line != nil && line.Num >= c.nextLine {
		if c.opts.sourceComments {
			c.writef("# %v\n", line)
		}
		c.nextLine = line.Num + 1
	}

	if c.opts.trace != nil {
		fmt.Fprintln(c.opts.trace, tokens[0].Origin)
	}
	unit, err := c.predict.Predict(tokens)
	if c.opts.trace != nil {
		fmt.Fprintln(c.opts.trace)
	}
	if err != nil {
		return err
	}
	return c.emit(node, unit)
}
