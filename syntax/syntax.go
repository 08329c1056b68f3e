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

// Package syntax splits C-like source lines into classified tokens and files
// those tokens into a statement tree using only bracket and ';' tokens.
package syntax

// Tokenize scans each line in order and concatenates the results.
func Tokenize(lines []*SourceLine) TokenList {
	var tokens TokenList
	for _, line := range lines {
		tokens = append(tokens, TokenizeLine(line)...)
	}
	return tokens
}

// TokenizeLine splits one source line into tokens. Blank and comment-only
// lines produce no tokens. String and character literals are kept verbatim,
// quotes included, with no escape processing.
func TokenizeLine(line *SourceLine) TokenList {
	if line == nil || line.Text == "" {
		return nil
	}
	s := &lineScanner{line: line}
	text := line.Text

	inString := false
	inChar := false
	ii := 0
	for ; ii < len(text); ii++ {
		c1 := text[ii]
		var c2 byte
		if ii+1 < len(text) {
			c2 = text[ii+1]
		}

		if inString {
			s.buf = append(s.buf, c1)
			if c1 == '"' {
				inString = false
				s.flush(ii)
			}
			continue
		}
		if inChar {
			s.buf = append(s.buf, c1)
			if c1 == '\'' {
				inChar = false
				s.flush(ii)
			}
			continue
		}
		if c1 == '/' && c2 == '/' {
			break
		}
		if c1 == '"' || c1 == '\'' {
			s.flush(ii)
			inString = c1 == '"'
			inChar = c1 == '\''
			s.buf = append(s.buf, c1)
			continue
		}
		if c1 == ' ' || c1 == '\t' || c1 == '\r' {
			s.flush(ii)
			continue
		}
		// Keep the sign of "-1" and the dot of ".5" or "1.5f" in the lexeme.
		if c1 == '.' && (isDecDigit(c2) || c2 == 'f') {
			s.buf = append(s.buf, c1)
			continue
		}
		if c1 == '-' && isDecDigit(c2) {
			s.buf = append(s.buf, c1)
			continue
		}
		if isTwoCharOperator(c1, c2) {
			s.flush(ii)
			s.buf = append(s.buf, c1, c2)
			s.flush(ii)
			ii++
			continue
		}
		if isDelim(c1) {
			s.flush(ii)
			s.buf = append(s.buf, c1)
			s.flush(ii)
			continue
		}
		s.buf = append(s.buf, c1)
	}
	s.flush(ii)

	return s.tokens
}

type lineScanner struct {
	line   *SourceLine
	buf    []byte
	tokens TokenList
}

// flush emits the pending lexeme, if any. The column is derived from the
// scan position at flush time; one-character lexemes are shifted by one so
// that diagnostics match the established column numbering.
func (s *lineScanner) flush(at int) {
	if len(s.buf) == 0 {
		return
	}
	text := string(s.buf)
	s.buf = s.buf[:0]

	column := at - len(text) + 1
	if len(text) == 1 {
		column++
	}
	if column < 0 {
		column = 0
	}
	s.tokens = append(s.tokens, &Token{
		Text:   text,
		Kind:   ClassifyLexeme(text),
		Origin: s.line,
		Column: uint32(column),
	})
}
