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

package main

import (
	"fmt"
	"io"
)

// diagnostics writes severity-tagged lines.
type diagnostics struct {
	w       io.Writer
	verbose bool
}

func (d *diagnostics) infof(format string, args ...any) {
	fmt.Fprintf(d.w, "[INFO] "+format+"\n", args...)
}

func (d *diagnostics) warnf(format string, args ...any) {
	fmt.Fprintf(d.w, "[WARN] "+format+"\n", args...)
}

func (d *diagnostics) errorf(format string, args ...any) {
	fmt.Fprintf(d.w, "[ERRO] "+format+"\n", args...)
}

func (d *diagnostics) debugf(format string, args ...any) {
	if d.verbose {
		fmt.Fprintf(d.w, "[DEBG] "+format+"\n", args...)
	}
}

// debug returns a writer that tags every line written to it, or nil when
// verbose output is off.
func (d *diagnostics) debug() io.Writer {
	if !d.verbose {
		return nil
	}
	return &prefixWriter{w: d.w, prefix: "[DEBG] ", lineStart: true}
}

type prefixWriter struct {
	w         io.Writer
	prefix    string
	lineStart bool
}

func (p *prefixWriter) Write(buf []byte) (int, error) {
	written := 0
	for len(buf) > 0 {
		if p.lineStart {
			if _, err := io.WriteString(p.w, p.prefix); err != nil {
				return written, err
			}
			p.lineStart = false
		}
		end := len(buf)
		for ii, c := range buf {
			if c == '\n' {
				end = ii + 1
				p.lineStart = true
				break
			}
		}
		n, err := p.w.Write(buf[:end])
		written += n
		if err != nil {
			return written, err
		}
		buf = buf[end:]
	}
	return written, nil
}
