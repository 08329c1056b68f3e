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
	"fmt"

	"github.com/jhendle2/Quebec-Compiler/syntax"
)

type Warning struct {
	code    uint32
	message string
	token   *syntax.Token
}

func (w *Warning) String() string {
	return fmt.Sprintf("W%d: %s", w.code, w.message)
}

func (w *Warning) Code() uint32 {
	return w.code
}

func (w *Warning) Message() string {
	return w.message
}

func (w *Warning) Token() *syntax.Token {
	return w.token
}

func (w *Warning) Location() syntax.Location {
	return w.token.Location()
}

func warnMissingReturn(function string, token *syntax.Token) *Warning {
	return &Warning{
		code:    4000,
		message: fmt.Sprintf("Missing return statement at end of function '%s'", function),
		token:   token,
	}
}

func warnUnsupportedBuiltin(name string, token *syntax.Token) *Warning {
	return &Warning{
		code:    4001,
		message: fmt.Sprintf("Unsupported __qbe__ builtin %q", name),
		token:   token,
	}
}

func warnMissingFormat(token *syntax.Token) *Warning {
	return &Warning{
		code:    4002,
		message: "__qbe__ printf has no format string literal",
		token:   token,
	}
}

func warnNonLiteralInitializer(name string, token *syntax.Token) *Warning {
	return &Warning{
		code:    4003,
		message: fmt.Sprintf("Initializer of '%s' is not a literal, defaulting to 0", name),
		token:   token,
	}
}

func warnUnclosedScope(token *syntax.Token) *Warning {
	return &Warning{
		code:    4004,
		message: "Scope opened here is never closed",
		token:   token,
	}
}
