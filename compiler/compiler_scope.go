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
	"github.com/jhendle2/Quebec-Compiler/syntax"
)

type functionInfo struct {
	name    string
	retKind syntax.TokenKind
	token   *syntax.Token
}

// scopeFrame tracks one open brace. Only frames opened directly after a
// function header synthesize a return when they close.
type scopeFrame struct {
	opener   *syntax.Token
	function *functionInfo
	returned bool
}

type scopeStack struct {
	frames []*scopeFrame

	// Set by a function header, consumed by the next opening brace.
	pending *functionInfo
}

func (s *scopeStack) declareFunction(name string, retKind syntax.TokenKind, token *syntax.Token) {
	s.pending = &functionInfo{
		name:    name,
		retKind: retKind,
		token:   token,
	}
}

func (s *scopeStack) open(opener *syntax.Token) {
	s.frames = append(s.frames, &scopeFrame{
		opener:   opener,
		function: s.pending,
	})
	s.pending = nil
}

func (s *scopeStack) close() (*scopeFrame, bool) {
	if len(s.frames) == 0 {
		return nil, false
	}
	frame := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return frame, true
}

func (s *scopeStack) markReturned() {
	if len(s.frames) > 0 {
		s.frames[len(s.frames)-1].returned = true
	}
}

func (s *scopeStack) depth() int {
	return len(s.frames)
}
