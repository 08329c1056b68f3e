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

package compiler_test

import (
	"bytes"
	"errors"
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/jhendle2/Quebec-Compiler/compiler"
	"github.com/jhendle2/Quebec-Compiler/internal/testutil"
	"github.com/jhendle2/Quebec-Compiler/syntax"
)

// diagnostic is satisfied by both compiler and syntax errors, and by
// compiler warnings.
type diagnostic interface {
	Code() uint32
	Message() string
	Location() syntax.Location
}

func TestCompile(t *testing.T) {
	testdata, err := testutil.TestdataFS()
	testutil.AssertNoError(t, err)

	entries, err := fs.ReadDir(testdata, "compile")
	testutil.AssertNoError(t, err)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		t.Run(name, func(t *testing.T) {
			testCompile(t, testdata, name)
		})
	}
}

func testCompile(t *testing.T, testdata fs.FS, name string) {
	dir := path.Join("compile", name)
	src, err := fs.ReadFile(testdata, path.Join(dir, name+".c"))
	testutil.AssertNoError(t, err)

	var out bytes.Buffer
	result, err := compiler.CompileSource(&out, name+".c", src)

	errPath := path.Join(dir, "expect_err.json")
	if _, statErr := fs.Stat(testdata, errPath); statErr == nil {
		expected := testutil.LoadExpectedError(t, testdata, errPath)
		var got diagnostic
		if err != nil {
			var syntaxErr *syntax.Error
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			got = syntaxErr
		} else {
			if len(result.Errors) != 1 {
				t.Fatalf("expected 1 error, got %d", len(result.Errors))
			}
			got = result.Errors[0]
		}
		expectDiagnostic(t, expected, got)
		return
	}

	testutil.AssertNoError(t, err)
	for _, compileErr := range result.Errors {
		t.Errorf("%v: %v", compileErr.Location(), compileErr)
	}
	testutil.ExpectTrue(t, result.OK())

	want, err := fs.ReadFile(testdata, path.Join(dir, "expect_ok.ssa"))
	testutil.AssertNoError(t, err)
	testutil.ExpectNoDiff(t, string(want), out.String())

	var expectedWarnings []*testutil.ExpectedDiagnostic
	warnPath := path.Join(dir, "expect_warn.json")
	if _, statErr := fs.Stat(testdata, warnPath); statErr == nil {
		expectedWarnings = testutil.LoadExpectedWarnings(t, testdata, warnPath)
	}
	if len(result.Warnings) != len(expectedWarnings) {
		for _, warning := range result.Warnings {
			t.Logf("%v: %v", warning.Location(), warning)
		}
		t.Fatalf("expected %d warnings, got %d", len(expectedWarnings), len(result.Warnings))
	}
	for ii, expected := range expectedWarnings {
		expectDiagnostic(t, expected, result.Warnings[ii])
	}
}

func expectDiagnostic(t *testing.T, want *testutil.ExpectedDiagnostic, got diagnostic) {
	t.Helper()
	testutil.ExpectEq(t, want.Code, got.Code())
	testutil.ExpectEq(t, want.Line, got.Location().Line)
	if want.Message != "" {
		testutil.ExpectMatch(t, want.Message, got.Message())
	}
}

func compileString(t *testing.T, src string, opts ...compiler.CompileOption) (string, compiler.CompileResult) {
	t.Helper()
	var out strings.Builder
	result, err := compiler.CompileSource(&out, "test.c", []byte(src), opts...)
	testutil.AssertNoError(t, err)
	return out.String(), result
}

func TestCompileWithoutSourceComments(t *testing.T) {
	t.Parallel()

	got, result := compileString(t, "int add() {\n\treturn 0;\n}\n",
		compiler.WithSourceComments(false))
	testutil.ExpectTrue(t, result.OK())
	want := "" +
		"function w $add() {\n" +
		"@start\n" +
		"\tret 0\n" +
		"}\n\n"
	testutil.ExpectNoDiff(t, want, got)
}

func TestCompileEmptySource(t *testing.T) {
	t.Parallel()

	got, result := compileString(t, "// nothing here\n\n")
	testutil.ExpectTrue(t, result.OK())
	testutil.ExpectEq(t, 0, len(result.Warnings))
	testutil.ExpectEq(t, "", got)
}

func TestCompileDataSegmentLimit(t *testing.T) {
	t.Parallel()

	src := "char a = \"short\";\nchar b = \"this one does not fit\";\n"
	_, result := compileString(t, src, compiler.WithDataSegmentLimit(40))
	testutil.ExpectFalse(t, result.OK())
	testutil.ExpectEq(t, 1, len(result.Errors))
	testutil.ExpectEq(t, uint32(3001), result.Errors[0].Code())
	testutil.ExpectEq(t, uint32(2), result.Errors[0].Location().Line)

	_, result = compileString(t, src, compiler.WithDataSegmentLimit(0))
	testutil.ExpectTrue(t, result.OK())
}

func TestCompileUnsupportedBuiltin(t *testing.T) {
	t.Parallel()

	got, result := compileString(t, "__qbe__ puts(\"x\");\n", compiler.WithSourceComments(false))
	testutil.ExpectTrue(t, result.OK())
	testutil.ExpectEq(t, 1, len(result.Warnings))
	testutil.ExpectEq(t, uint32(4001), result.Warnings[0].Code())
	testutil.ExpectEq(t, "W4001: Unsupported __qbe__ builtin \"puts\"", result.Warnings[0].String())

	// The argument run still hoists its literal.
	want := "" +
		"\n# Data Segment\n" +
		"data $s_const_0 = { b \"x\", b 0 }\n" +
		"\n"
	testutil.ExpectNoDiff(t, want, got)
}

func TestCompilePrintfWithoutFormat(t *testing.T) {
	t.Parallel()

	got, result := compileString(t, "__qbe__ printf(x);\n", compiler.WithSourceComments(false))
	testutil.ExpectTrue(t, result.OK())
	testutil.ExpectEq(t, 1, len(result.Warnings))
	testutil.ExpectEq(t, uint32(4002), result.Warnings[0].Code())
	testutil.ExpectEq(t, "", got)
}

func TestCompilePrintfFormatAfterIndex(t *testing.T) {
	t.Parallel()

	got, result := compileString(t, "__qbe__ printf(a[0], \"s\");\n", compiler.WithSourceComments(false))
	testutil.ExpectTrue(t, result.OK())
	testutil.ExpectEq(t, 0, len(result.Warnings))
	want := "" +
		"\tcall $printf(l $s_const_0, ...)\n" +
		"\n# Data Segment\n" +
		"data $s_const_0 = { b \"s\", b 0 }\n" +
		"\n"
	testutil.ExpectNoDiff(t, want, got)
}

func TestCompileLabelsFollowRegistrationOrder(t *testing.T) {
	t.Parallel()

	src := "" +
		"char a = \"one\";\n" +
		"void main() {\n" +
		"\t__qbe__ printf(\"two\");\n" +
		"}\n"
	got, result := compileString(t, src, compiler.WithSourceComments(false))
	testutil.ExpectTrue(t, result.OK())
	want := "" +
		"export function w $main() {\n" +
		"@start\n" +
		"\tcall $printf(l $s_const_1, ...)\n" +
		"\tret 0\n" +
		"}\n\n" +
		"\n# Data Segment\n" +
		"data $s_const_0 = { b \"one\", b 0 }\n" +
		"data $s_const_1 = { b \"two\", b 0 }\n" +
		"\n"
	testutil.ExpectNoDiff(t, want, got)
}

func TestCompileReturnTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src    string
		header string
	}{
		{"long big() {\n\treturn 0;\n}\n", "function l $big() {\n"},
		{"float half() {\n\treturn 0;\n}\n", "function s $half() {\n"},
		{"double wide() {\n\treturn 0;\n}\n", "function d $wide() {\n"},
		{"char one() {\n\treturn 0;\n}\n", "function w $one() {\n"},
		{"static int hidden() {\n\treturn 0;\n}\n", "function w $hidden() {\n"},
	}
	for _, test := range tests {
		got, result := compileString(t, test.src, compiler.WithSourceComments(false))
		testutil.ExpectTrue(t, result.OK())
		testutil.ExpectTrue(t, strings.HasPrefix(got, test.header))
	}
}

func TestCompileTrace(t *testing.T) {
	t.Parallel()

	var trace strings.Builder
	_, result := compileString(t, "int x;\n", compiler.WithTrace(&trace))
	testutil.ExpectTrue(t, result.OK())
	want := "" +
		"test.c:1: int x;\n" +
		"Prediction: DeclChain [int] vs [x]\n" +
		"Prediction: VarDecl [x] vs [;]\n" +
		"Final Prediction: VarDecl [;]\n" +
		"\n"
	testutil.ExpectNoDiff(t, want, trace.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestCompileWriteFailure(t *testing.T) {
	t.Parallel()

	result, err := compiler.CompileSource(failingWriter{}, "test.c", []byte("int x;\n"))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 1, len(result.Errors))
	testutil.ExpectEq(t, uint32(3003), result.Errors[0].Code())
	testutil.ExpectTrue(t, result.Errors[0].Token() == nil)
	testutil.ExpectMatch(t, "disk full", result.Errors[0].Error())
}

func TestCompileTree(t *testing.T) {
	t.Parallel()

	lines := syntax.SplitLines("tree.c", []byte("int x = 7;\n"))
	root, err := syntax.BuildTree(syntax.Tokenize(lines))
	testutil.AssertNoError(t, err)

	var out strings.Builder
	result := compiler.Compile(&out, root)
	testutil.ExpectTrue(t, result.OK())
	testutil.ExpectNoDiff(t, "# tree.c:1: int x = 7;\n\t%x =w sub 0, 7\n", out.String())
}
