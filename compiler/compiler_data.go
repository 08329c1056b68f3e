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
	"strings"

	"github.com/jhendle2/Quebec-Compiler/syntax"
)

// dataSegment accumulates `data` records for hoisted string literals.
// Labels are s_const_<n>, numbered in registration order from zero.
type dataSegment struct {
	buf   strings.Builder
	count uint32
	limit int
}

func (d *dataSegment) nextLabel() string {
	return fmt.Sprintf("s_const_%d", d.count)
}

// register appends a record for a quoted literal, kept byte for byte as
// it was scanned, and returns the label it was stored under.
func (d *dataSegment) register(lit *syntax.Token) (string, error) {
	label := d.nextLabel()
	record := fmt.Sprintf("data $%s = { b %s, b 0 }\n", label, lit.Text)
	if d.limit > 0 && d.buf.Len()+len(record) > d.limit {
		return "", errDataSegmentFull(d.limit, lit)
	}
	d.buf.WriteString(record)
	d.count++
	return label, nil
}

func (d *dataSegment) writeTo(c *compiler) {
	if d.buf.Len() == 0 {
		return
	}
	c.writef("\n# Data Segment\n%s\n", d.buf.String())
}
