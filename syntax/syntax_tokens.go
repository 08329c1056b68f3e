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

package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Lexemes with more fractional digits than this are double constants.
const maxFloatDecimals = 7

type TokenKind uint8

const (
	T_INVALID TokenKind = iota

	T_IDENT
	T_OPERATOR
	T_MACRO
	T_NULL
	T_QBE

	T_INT_CONST
	T_HEX_CONST
	T_FLOAT_CONST
	T_DOUBLE_CONST
	T_CHAR_CONST
	T_STRING_CONST

	// Type keywords
	T_KW_CHAR
	T_KW_DOUBLE
	T_KW_FLOAT
	T_KW_INT
	T_KW_LONG
	T_KW_SHORT
	T_KW_VOID

	// Adjective keywords
	T_KW_CONST
	T_KW_ENUM
	T_KW_EXTERN
	T_KW_INLINE
	T_KW_REGISTER
	T_KW_SIGNED
	T_KW_STATIC
	T_KW_STRUCT
	T_KW_UNSIGNED
	T_KW_VOLATILE

	// Control keywords
	T_KW_AUTO
	T_KW_BREAK
	T_KW_CASE
	T_KW_CONTINUE
	T_KW_DEFAULT
	T_KW_DO
	T_KW_ELSE
	T_KW_FOR
	T_KW_GOTO
	T_KW_IF
	T_KW_RETURN
	T_KW_SIZEOF
	T_KW_SWITCH
	T_KW_TYPEDEF
	T_KW_UNION
	T_KW_WHILE

	numTokenKinds
)

var keywords = map[string]TokenKind{
	"char":     T_KW_CHAR,
	"double":   T_KW_DOUBLE,
	"float":    T_KW_FLOAT,
	"int":      T_KW_INT,
	"long":     T_KW_LONG,
	"short":    T_KW_SHORT,
	"void":     T_KW_VOID,
	"const":    T_KW_CONST,
	"enum":     T_KW_ENUM,
	"extern":   T_KW_EXTERN,
	"inline":   T_KW_INLINE,
	"register": T_KW_REGISTER,
	"signed":   T_KW_SIGNED,
	"static":   T_KW_STATIC,
	"struct":   T_KW_STRUCT,
	"unsigned": T_KW_UNSIGNED,
	"volatile": T_KW_VOLATILE,
	"auto":     T_KW_AUTO,
	"break":    T_KW_BREAK,
	"case":     T_KW_CASE,
	"continue": T_KW_CONTINUE,
	"default":  T_KW_DEFAULT,
	"do":       T_KW_DO,
	"else":     T_KW_ELSE,
	"for":      T_KW_FOR,
	"goto":     T_KW_GOTO,
	"if":       T_KW_IF,
	"return":   T_KW_RETURN,
	"sizeof":   T_KW_SIZEOF,
	"switch":   T_KW_SWITCH,
	"typedef":  T_KW_TYPEDEF,
	"union":    T_KW_UNION,
	"while":    T_KW_WHILE,
}

func (k TokenKind) String() string {
	switch k {
	case T_INVALID:
		return "INVALID"
	case T_IDENT:
		return "IDENT"
	case T_OPERATOR:
		return "OPERATOR"
	case T_MACRO:
		return "MACRO"
	case T_NULL:
		return "NULL"
	case T_QBE:
		return "QBE"
	case T_INT_CONST:
		return "INT_CONST"
	case T_HEX_CONST:
		return "HEX_CONST"
	case T_FLOAT_CONST:
		return "FLOAT_CONST"
	case T_DOUBLE_CONST:
		return "DOUBLE_CONST"
	case T_CHAR_CONST:
		return "CHAR_CONST"
	case T_STRING_CONST:
		return "STRING_CONST"
	}
	for kw, kind := range keywords {
		if kind == k {
			return "KW_" + strings.ToUpper(kw)
		}
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

// IsType reports whether k is one of the primitive type keywords.
func (k TokenKind) IsType() bool {
	return k >= T_KW_CHAR && k <= T_KW_VOID
}

// IsAdjective reports whether k is a qualifier or storage-class keyword
// that may precede a type in a declaration.
func (k TokenKind) IsAdjective() bool {
	return k >= T_KW_CONST && k <= T_KW_VOLATILE
}

func (k TokenKind) IsKeyword() bool {
	return k >= T_KW_CHAR && k < numTokenKinds
}

// IsLiteral reports whether k is one of the six constant forms.
func (k TokenKind) IsLiteral() bool {
	return k >= T_INT_CONST && k <= T_STRING_CONST
}

type Location struct {
	Path   string
	Line   uint32
	Column uint32
}

func (loc Location) String() string {
	return fmt.Sprintf("%s:%d:%d", loc.Path, loc.Line, loc.Column)
}

type Token struct {
	Text   string
	Kind   TokenKind
	Origin *SourceLine
	Column uint32
}

func (t *Token) Location() Location {
	if t == nil {
		return Location{}
	}
	loc := Location{Column: t.Column}
	if t.Origin != nil {
		loc.Path = t.Origin.Path
		loc.Line = t.Origin.Num
	}
	return loc
}

func (t *Token) Line() uint32 {
	if t == nil || t.Origin == nil {
		return 0
	}
	return t.Origin.Num
}

func (t *Token) String() string {
	if t == nil {
		return "(null)"
	}
	return fmt.Sprintf("%v: (%-10s) %s", t.Location(), t.Kind, t.Text)
}

// TokenList is an ordered run of tokens.
type TokenList []*Token

// Pluck detaches the head of the list, returning it and the remainder.
func (ts TokenList) Pluck() (*Token, TokenList) {
	if len(ts) == 0 {
		return nil, nil
	}
	return ts[0], ts[1:]
}

func (ts TokenList) Texts() []string {
	out := make([]string, len(ts))
	for ii, t := range ts {
		out[ii] = t.Text
	}
	return out
}

func (ts TokenList) Kinds() []TokenKind {
	out := make([]TokenKind, len(ts))
	for ii, t := range ts {
		out[ii] = t.Kind
	}
	return out
}

// DumpTokens writes one line per token.
func DumpTokens(w io.Writer, tokens TokenList) {
	for _, t := range tokens {
		fmt.Fprintln(w, t)
	}
}

// ClassifyLexeme assigns a TokenKind to a lexeme. The checks run in a fixed
// order and the first match wins, so "3.14" is a float constant and
// "3.14159265" a double constant purely by digit count.
func ClassifyLexeme(s string) TokenKind {
	switch {
	case len(s) > 2 && s[0] == '"' && s[len(s)-1] == '"':
		return T_STRING_CONST
	case len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'':
		return T_CHAR_CONST
	case isIntConst(s):
		return T_INT_CONST
	case isHexConst(s):
		return T_HEX_CONST
	}
	if decimals, ok := decimalShape(s); ok {
		if decimals > maxFloatDecimals {
			return T_DOUBLE_CONST
		}
		return T_FLOAT_CONST
	}
	switch {
	case s == "":
		return T_INVALID
	case s[0] == '#':
		return T_MACRO
	case isDelim(s[0]):
		return T_OPERATOR
	case s == "NULL":
		return T_NULL
	case s == "__qbe__":
		return T_QBE
	}
	if kind, ok := keywords[s]; ok {
		return kind
	}
	if isIdent(s) {
		return T_IDENT
	}
	return T_INVALID
}

func isDecDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDecDigit(c) || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func isDelim(c byte) bool {
	return strings.IndexByte("~!%^&*()-+={}[]|\\:;\"'<,>./?#", c) >= 0
}

// isTwoCharOperator reports whether c1 c2 form one of the operators the
// scanner never splits.
func isTwoCharOperator(c1, c2 byte) bool {
	switch string([]byte{c1, c2}) {
	case "==", "!=", "<=", ">=", "~=", "+=", "-=", "*=", "/=", "%=", "->", "<<", ">>":
		return true
	}
	return false
}

func isIntConst(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for ii := 0; ii < len(s); ii++ {
		if !isDecDigit(s[ii]) {
			return false
		}
	}
	return true
}

func isHexConst(s string) bool {
	if len(s) <= 2 || !strings.HasPrefix(s, "0x") {
		return false
	}
	for ii := 2; ii < len(s); ii++ {
		if !isHexDigit(s[ii]) {
			return false
		}
	}
	return true
}

// decimalShape checks for an optionally negative decimal with exactly one
// '.', optionally terminated by a bare 'f', and returns the number of
// digits after the '.'.
func decimalShape(s string) (int, bool) {
	if len(s) <= 1 {
		return 0, false
	}
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSuffix(s, "f")
	dots := 0
	decimals := 0
	for ii := 0; ii < len(s); ii++ {
		c := s[ii]
		switch {
		case c == '.':
			dots++
		case !isDecDigit(c):
			return 0, false
		case dots > 0:
			decimals++
		}
	}
	return decimals, dots == 1
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for ii := 0; ii < len(s); ii++ {
		if !isAlpha(s[ii]) {
			return false
		}
	}
	return true
}
