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

// ilType is a QBE base or extended type letter.
type ilType byte

const (
	ilWord   ilType = 'w'
	ilLong   ilType = 'l'
	ilSingle ilType = 's'
	ilDouble ilType = 'd'
	ilByte   ilType = 'b'
	ilHalf   ilType = 'h'
)

func (t ilType) String() string {
	return string(rune(t))
}

// ilTypeOf maps a type keyword to the IL type used to hold it. char is
// widened to a word; anything unrecognized is a word.
func ilTypeOf(kind syntax.TokenKind) ilType {
	switch kind {
	case syntax.T_KW_CHAR, syntax.T_KW_INT:
		return ilWord
	case syntax.T_KW_LONG:
		return ilLong
	case syntax.T_KW_FLOAT:
		return ilSingle
	case syntax.T_KW_DOUBLE:
		return ilDouble
	}
	return ilWord
}
