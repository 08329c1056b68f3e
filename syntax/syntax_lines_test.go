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

package syntax_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jhendle2/Quebec-Compiler/internal/testutil"
	"github.com/jhendle2/Quebec-Compiler/syntax"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	lines := syntax.SplitLines("lines.c", []byte("first\r\n\n  third\nfourth"))
	testutil.ExpectEq(t, 3, len(lines))

	var buf strings.Builder
	syntax.DumpLines(&buf, lines)
	want := "" +
		"lines.c:1: first\n" +
		"lines.c:3:   third\n" +
		"lines.c:4: fourth\n"
	testutil.ExpectNoDiff(t, want, buf.String())
}

func TestSplitLinesEmpty(t *testing.T) {
	t.Parallel()

	testutil.ExpectEq(t, 0, len(syntax.SplitLines("empty.c", nil)))
	testutil.ExpectEq(t, 0, len(syntax.SplitLines("empty.c", []byte("\n\n\n"))))
}

func TestReadLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.c")
	err := os.WriteFile(path, []byte("int main() {\n\treturn 0;\n}\n"), 0o644)
	testutil.AssertNoError(t, err)

	lines, err := syntax.ReadLines(path)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 3, len(lines))
	testutil.ExpectEq(t, "\treturn 0;", lines[1].Text)
	testutil.ExpectEq(t, path, lines[2].Path)
	testutil.ExpectEq(t, uint32(3), lines[2].Num)

	_, err = syntax.ReadLines(filepath.Join(t.TempDir(), "missing.c"))
	testutil.ExpectTrue(t, os.IsNotExist(err))
}
