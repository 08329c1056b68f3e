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

package compiler

import (
	"errors"
	"fmt"

	"github.com/jhendle2/Quebec-Compiler/grammar"
	"github.com/jhendle2/Quebec-Compiler/syntax"
)

type Error struct {
	code    uint32
	message string
	token   *syntax.Token
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

// Token returns the token the error was reported at, or nil for errors
// not tied to a source position.
func (err *Error) Token() *syntax.Token {
	return err.token
}

func (err *Error) Location() syntax.Location {
	return err.token.Location()
}

// asError folds errors raised by the grammar predictor into the
// compiler's own error type, keeping their codes.
func asError(err error) *Error {
	var compileErr *Error
	if errors.As(err, &compileErr) {
		return compileErr
	}
	var grammarErr *grammar.Error
	if errors.As(err, &grammarErr) {
		return &Error{
			code:    grammarErr.Code(),
			message: grammarErr.Message(),
			token:   grammarErr.Token(),
		}
	}
	return &Error{
		code:    3999,
		message: err.Error(),
	}
}

func errSyntax(token *syntax.Token) error {
	return &Error{
		code:    2001,
		message: "Syntax error",
		token:   token,
	}
}

func errPrecisionMismatch(token *syntax.Token) error {
	return &Error{
		code:    3000,
		message: fmt.Sprintf("Replace `float` with `double` to store %s with this precision", token.Text),
		token:   token,
	}
}

func errDataSegmentFull(limit int, token *syntax.Token) error {
	return &Error{
		code:    3001,
		message: fmt.Sprintf("Data segment exceeds maximum (%d bytes)", limit),
		token:   token,
	}
}

func errUnbalancedScope(token *syntax.Token) error {
	return &Error{
		code:    3002,
		message: fmt.Sprintf("Closing '%s' has no matching '{'", token.Text),
		token:   token,
	}
}

func errWrite(err error) error {
	return &Error{
		code:    3003,
		message: fmt.Sprintf("Failed to write output: %v", err),
	}
}
