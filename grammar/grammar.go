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

// Package grammar classifies one statement's token run into a coarse
// syntactic category using a two-token sliding window.
package grammar

import (
	"fmt"
	"io"

	"github.com/jhendle2/Quebec-Compiler/syntax"
)

// Unit is the syntactic category of one statement. It is recomputed from a
// token run whenever it is needed and never stored on the tree.
type Unit uint8

const (
	// Invalid doubles as the unset starting state of a prediction.
	Invalid Unit = iota

	AdjectiveChain
	DeclChain

	FunctionDecl
	FunctionDefn
	VarDecl
	VarDefn
	ReturnStmt

	ScopeOpen
	ScopeClose

	ArgsOpen
	ArgsClose

	IndexOpen
	IndexClose

	ExprOrCall
	FunctionCall
	Expression

	RawCall
)

func (u Unit) String() string {
	switch u {
	case Invalid:
		return "Invalid"
	case AdjectiveChain:
		return "AdjChain"
	case DeclChain:
		return "DeclChain"
	case FunctionDecl:
		return "FunDecl"
	case FunctionDefn:
		return "FunDefn"
	case VarDecl:
		return "VarDecl"
	case VarDefn:
		return "VarDefn"
	case ReturnStmt:
		return "RetStmt"
	case ScopeOpen:
		return "NewScope"
	case ScopeClose:
		return "EndScope"
	case ArgsOpen:
		return "NewArgs"
	case ArgsClose:
		return "EndArgs"
	case IndexOpen:
		return "NewIndex"
	case IndexClose:
		return "EndIndex"
	case ExprOrCall:
		return "ExprOrCall"
	case FunctionCall:
		return "FunCall"
	case Expression:
		return "Expression"
	case RawCall:
		return "QbeCall"
	default:
		return fmt.Sprintf("Unit(%d)", uint8(u))
	}
}

type PredictOption interface {
	apply(*PredictOptions)
}

type predictOption func(*PredictOptions)

func (f predictOption) apply(opts *PredictOptions) { f(opts) }

type PredictOptions struct {
	trace io.Writer
}

// WithTrace writes every window step of a prediction to w.
func WithTrace(w io.Writer) PredictOption {
	return predictOption(func(opts *PredictOptions) {
		opts.trace = w
	})
}

func NewPredictOptions(opts ...PredictOption) *PredictOptions {
	predictOptions := &PredictOptions{}
	for _, opt := range opts {
		opt.apply(predictOptions)
	}
	return predictOptions
}

// Predict classifies a statement's token run. An empty run is Invalid.
func Predict(tokens syntax.TokenList, opts ...PredictOption) (Unit, error) {
	return NewPredictOptions(opts...).Predict(tokens)
}

func (opts *PredictOptions) Predict(tokens syntax.TokenList) (Unit, error) {
	lhs, rest := tokens.Pluck()
	if lhs == nil {
		return Invalid, nil
	}

	state := Invalid
	for len(rest) > 0 {
		var rhs *syntax.Token
		rhs, rest = rest.Pluck()

		var err error
		if state, err = Transition(state, lhs, rhs); err != nil {
			return Invalid, err
		}
		if opts.trace != nil {
			fmt.Fprintf(opts.trace, "Prediction: %s [%s] vs [%s]\n", state, lhs.Text, rhs.Text)
		}
		lhs = rhs
	}

	state, err := Transition(state, lhs, nil)
	if err != nil {
		return Invalid, err
	}
	if opts.trace != nil {
		fmt.Fprintf(opts.trace, "Final Prediction: %s [%s]\n", state, lhs.Text)
	}
	return state, nil
}

// Transition computes the next state from the window (lhs, rhs). A nil rhs
// marks the end of the run.
func Transition(state Unit, lhs, rhs *syntax.Token) (Unit, error) {
	if state == Invalid {
		return start(lhs, rhs), nil
	}
	if rhs == nil {
		return state, nil
	}

	switch state {
	case AdjectiveChain:
		switch {
		case rhs.Kind.IsAdjective():
			return AdjectiveChain, nil
		case rhs.Kind.IsType(), rhs.Kind == syntax.T_IDENT:
			return DeclChain, nil
		case rhs.Text == "*":
			return AdjectiveChain, nil
		}
		return Invalid, nil

	case DeclChain:
		switch {
		case rhs.Text == "*":
			return DeclChain, nil
		case rhs.Text == "(":
			return FunctionDecl, nil
		case rhs.Text == "[":
			return DeclChain, nil
		case rhs.Text == ";":
			return VarDecl, nil
		case IsAssignmentOperator(rhs.Text):
			return VarDefn, nil
		}
		return DeclChain, nil

	case VarDefn:
		if lhs.Text == "=" && rhs.Text == ";" {
			return Invalid, errNoValue(lhs)
		}
		return VarDefn, nil

	case ExprOrCall:
		switch {
		case IsAssignmentOperator(rhs.Text):
			return Expression, nil
		case rhs.Text == "(":
			return FunctionCall, nil
		}
		return Expression, nil
	}

	return state, nil
}

// start picks the first state of a chain from the leading token.
func start(lhs, rhs *syntax.Token) Unit {
	switch lhs.Text {
	case "{":
		return ScopeOpen
	case "}":
		return ScopeClose
	case "(":
		return ArgsOpen
	case ")":
		return ArgsClose
	case "[":
		return IndexOpen
	case "]":
		return IndexClose
	case "__qbe__":
		return RawCall
	}

	switch {
	case lhs.Kind.IsLiteral():
		return Expression
	case lhs.Kind == syntax.T_KW_RETURN:
		return ReturnStmt
	case lhs.Kind == syntax.T_IDENT:
		if rhs != nil && rhs.Text == "(" {
			return FunctionCall
		}
		return ExprOrCall
	case lhs.Kind.IsAdjective():
		return AdjectiveChain
	case rhs != nil && lhs.Kind.IsType() && rhs.Kind == syntax.T_IDENT:
		return DeclChain
	}
	return Invalid
}

func IsAssignmentOperator(text string) bool {
	switch text {
	case "=", "+=", "-=", "*=", "/=", "%=", "|=", "&=", "^=", "<<=", ">>=":
		return true
	}
	return false
}
