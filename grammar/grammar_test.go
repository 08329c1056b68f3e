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

package grammar_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jhendle2/Quebec-Compiler/grammar"
	"github.com/jhendle2/Quebec-Compiler/internal/testutil"
	"github.com/jhendle2/Quebec-Compiler/syntax"
)

func tokenize(text string) syntax.TokenList {
	return syntax.TokenizeLine(&syntax.SourceLine{
		Path: "test.c",
		Num:  1,
		Text: text,
	})
}

func TestPredict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want grammar.Unit
	}{
		{`int x;`, grammar.VarDecl},
		{`int x = 5;`, grammar.VarDefn},
		{`const int x = 5;`, grammar.VarDefn},
		{`static int * p;`, grammar.VarDecl},
		{`long total += 1;`, grammar.VarDefn},
		{`int add(`, grammar.FunctionDecl},
		{`void main(`, grammar.FunctionDecl},
		{`foo(`, grammar.FunctionCall},
		{`foo();`, grammar.FunctionCall},
		{`x = 5;`, grammar.Expression},
		{`x += 1;`, grammar.Expression},
		{`x;`, grammar.ExprOrCall},
		{`return 0;`, grammar.ReturnStmt},
		{`return;`, grammar.ReturnStmt},
		{`__qbe__ printf(`, grammar.RawCall},
		{`"hi" )`, grammar.Expression},
		{`42;`, grammar.Expression},
		{`{`, grammar.ScopeOpen},
		{`}`, grammar.ScopeClose},
		{`(`, grammar.ArgsOpen},
		{`)`, grammar.ArgsClose},
		{`[`, grammar.IndexOpen},
		{`]`, grammar.IndexClose},
		{`struct S {`, grammar.ScopeOpen},
		{`@;`, grammar.Invalid},
		{`;`, grammar.Invalid},
	}
	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			got, err := grammar.Predict(tokenize(test.src))
			testutil.AssertNoError(t, err)
			testutil.ExpectEq(t, test.want, got)
		})
	}
}

func TestPredictEmpty(t *testing.T) {
	t.Parallel()

	got, err := grammar.Predict(nil)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, grammar.Invalid, got)
}

func TestPredictNoValue(t *testing.T) {
	t.Parallel()

	_, err := grammar.Predict(tokenize(`int x = ;`))
	testutil.AssertError(t, err)

	var grammarErr *grammar.Error
	if !errors.As(err, &grammarErr) {
		t.Fatalf("expected *grammar.Error, got %T", err)
	}
	testutil.ExpectEq(t, uint32(2000), grammarErr.Code())
	testutil.ExpectEq(t, "=", grammarErr.Token().Text)
	testutil.ExpectEq(t, "E2000: No value provided for variable declaration", err.Error())
}

func TestPredictTrace(t *testing.T) {
	t.Parallel()

	var trace strings.Builder
	got, err := grammar.Predict(tokenize(`return 0;`), grammar.WithTrace(&trace))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, grammar.ReturnStmt, got)

	want := "" +
		"Prediction: RetStmt [return] vs [0]\n" +
		"Prediction: RetStmt [0] vs [;]\n" +
		"Final Prediction: RetStmt [;]\n"
	testutil.ExpectNoDiff(t, want, trace.String())
}

func TestPredictOptionsReuse(t *testing.T) {
	t.Parallel()

	opts := grammar.NewPredictOptions()
	for _, src := range []string{`int a;`, `int b;`} {
		got, err := opts.Predict(tokenize(src))
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, grammar.VarDecl, got)
	}
}

func TestTransitionRestart(t *testing.T) {
	t.Parallel()

	tokens := tokenize(`{ x`)
	got, err := grammar.Transition(grammar.Invalid, tokens[0], tokens[1])
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, grammar.ScopeOpen, got)

	got, err = grammar.Transition(grammar.ScopeOpen, tokens[0], tokens[1])
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, grammar.ScopeOpen, got)
}

func TestIsAssignmentOperator(t *testing.T) {
	t.Parallel()

	for _, op := range []string{"=", "+=", "-=", "*=", "/=", "%=", "|=", "&=", "^=", "<<=", ">>="} {
		testutil.ExpectTrue(t, grammar.IsAssignmentOperator(op))
	}
	for _, op := range []string{"==", "!=", "<", "+", ";", ""} {
		testutil.ExpectFalse(t, grammar.IsAssignmentOperator(op))
	}
}

func TestUnitString(t *testing.T) {
	t.Parallel()

	testutil.ExpectEq(t, "FunDecl", grammar.FunctionDecl.String())
	testutil.ExpectEq(t, "QbeCall", grammar.RawCall.String())
	testutil.ExpectEq(t, "Invalid", grammar.Invalid.String())
	testutil.ExpectEq(t, "Unit(200)", grammar.Unit(200).String())
}
