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
	"bytes"
	"fmt"
	"io"
	"os"
)

// SourceLine is one physical line of a translation unit, with its trailing
// newline removed.
type SourceLine struct {
	Path string
	Num  uint32
	Text string
}

func (l *SourceLine) String() string {
	if l == nil {
		return "(null)"
	}
	return fmt.Sprintf("%s:%d: %s", l.Path, l.Num, l.Text)
}

// ReadLines reads the file at path and splits it with SplitLines.
func ReadLines(path string) ([]*SourceLine, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return SplitLines(path, src), nil
}

// SplitLines numbers the lines of src starting at 1. Empty lines are
// dropped but still consume a line number.
func SplitLines(path string, src []byte) []*SourceLine {
	var lines []*SourceLine
	var num uint32
	for len(src) > 0 {
		num++
		text := src
		if idx := bytes.IndexByte(src, '\n'); idx >= 0 {
			text = src[:idx]
			src = src[idx+1:]
		} else {
			src = nil
		}
		text = bytes.TrimSuffix(text, []byte{'\r'})
		if len(text) == 0 {
			continue
		}
		lines = append(lines, &SourceLine{
			Path: path,
			Num:  num,
			Text: string(text),
		})
	}
	return lines
}

// DumpLines writes each line in "<path>:<num>: <text>" form.
func DumpLines(w io.Writer, lines []*SourceLine) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
