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
	"strconv"
	"strings"

	"github.com/jhendle2/Quebec-Compiler/grammar"
	"github.com/jhendle2/Quebec-Compiler/syntax"
)

func (c *compiler) emit(node *syntax.Node, unit grammar.Unit) error {
	tokens := node.Tokens
	switch unit {
	case grammar.FunctionDecl, grammar.FunctionDefn:
		c.emitFunctionHeader(tokens)
	case grammar.FunctionCall:
		// Argument lists are not translated.
		c.writef("\tcall $%s()\n", tokens[0].Text)
	case grammar.VarDecl, grammar.VarDefn:
		return c.emitVariable(tokens, unit)
	case grammar.Expression:
		if lit := firstString(tokens); lit != nil {
			if _, err := c.data.register(lit); err != nil {
				return err
			}
		}
	case grammar.RawCall:
		return c.emitRawCall(node)
	case grammar.ReturnStmt:
		c.writef("\tret 0\n")
		c.scopes.markReturned()
	case grammar.ScopeOpen:
		c.scopes.open(tokens[len(tokens)-1])
	case grammar.ScopeClose:
		return c.emitScopeClose(tokens[0])
	case grammar.ArgsOpen, grammar.ArgsClose,
		grammar.IndexOpen, grammar.IndexClose,
		grammar.AdjectiveChain, grammar.DeclChain,
		grammar.ExprOrCall:
	case grammar.Invalid:
		return errSyntax(tokens[0])
	default:
		panic(fmt.Sprintf("unreachable: grammar unit %v", unit))
	}
	return nil
}

func (c *compiler) emitFunctionHeader(tokens syntax.TokenList) {
	retKind := syntax.T_INVALID
	var name *syntax.Token
	for _, t := range tokens {
		if t.Kind.IsType() {
			retKind = t.Kind
		}
		if t.Kind == syntax.T_IDENT {
			name = t
		}
	}
	nameText := ""
	if name != nil {
		nameText = name.Text
	}

	export := ""
	if nameText == "main" {
		export = "export "
	}
	c.writef("%sfunction %s $%s(%s) {\n", export, ilTypeOf(retKind), nameText, "")
	c.writef("@start\n")
	c.scopes.declareFunction(nameText, retKind, tokens[0])
}

// emitVariable materializes a declared variable as "sub 0, <value>". String
// initializers are hoisted into the data segment instead and no
// instruction is written for them.
func (c *compiler) emitVariable(tokens syntax.TokenList, unit grammar.Unit) error {
	varKind := syntax.T_INVALID
	name := ""
	value := ""
	if unit == grammar.VarDecl {
		value = "0"
	}
	assigned := false
	usingData := false

	for _, t := range tokens {
		if grammar.IsAssignmentOperator(t.Text) {
			assigned = true
		}
		if t.Kind.IsType() {
			varKind = t.Kind
		}
		if t.Kind == syntax.T_IDENT && !assigned {
			name = t.Text
		}
		if !t.Kind.IsLiteral() {
			continue
		}
		switch t.Kind {
		case syntax.T_INT_CONST:
			n, _ := strconv.ParseInt(t.Text, 10, 64)
			value = strconv.FormatInt(n, 10)
		case syntax.T_HEX_CONST:
			n, _ := strconv.ParseInt(t.Text[2:], 16, 64)
			value = strconv.FormatInt(n, 10)
		case syntax.T_FLOAT_CONST:
			f, _ := strconv.ParseFloat(strings.TrimSuffix(t.Text, "f"), 32)
			value = fmt.Sprintf("s_%f", float32(f))
		case syntax.T_DOUBLE_CONST:
			if varKind == syntax.T_KW_FLOAT {
				return errPrecisionMismatch(t)
			}
			f, _ := strconv.ParseFloat(strings.TrimSuffix(t.Text, "f"), 64)
			value = fmt.Sprintf("d_%f", f)
		case syntax.T_CHAR_CONST:
			value = strconv.Itoa(int(t.Text[1]))
		case syntax.T_STRING_CONST:
			usingData = true
			if _, err := c.data.register(t); err != nil {
				return err
			}
		}
	}

	if usingData {
		return nil
	}
	if value == "" {
		c.warn(warnNonLiteralInitializer(name, tokens[0]))
		value = "0"
	}
	c.writef("\t%%%s =%s sub 0, %s\n", name, ilTypeOf(varKind), value)
	return nil
}

// emitRawCall handles `__qbe__ <builtin>(...)`. Only printf is known. Its
// format string is either in the statement itself or, when the call was
// split at '(', in one of the argument runs nested below it. Those runs are
// compiled right after this node, so the first of them holding a string
// hoists it next, under the label reserved here.
func (c *compiler) emitRawCall(node *syntax.Node) error {
	tokens := node.Tokens
	if len(tokens) < 2 {
		c.warn(warnUnsupportedBuiltin("", tokens[0]))
		return nil
	}
	builtin := tokens[1]
	if builtin.Text != "printf" {
		c.warn(warnUnsupportedBuiltin(builtin.Text, builtin))
		return nil
	}

	var label string
	if lit := firstString(tokens[2:]); lit != nil {
		var err error
		if label, err = c.data.register(lit); err != nil {
			return err
		}
	} else if argumentString(node) != nil {
		label = c.data.nextLabel()
	} else {
		c.warn(warnMissingFormat(builtin))
		return nil
	}
	c.writef("\tcall $printf(l $%s, ...)\n", label)
	return nil
}

func (c *compiler) emitScopeClose(token *syntax.Token) error {
	frame, ok := c.scopes.close()
	if !ok {
		return errUnbalancedScope(token)
	}
	if fn := frame.function; fn != nil && !frame.returned {
		if fn.retKind.IsType() && fn.retKind != syntax.T_KW_VOID {
			c.warn(warnMissingReturn(fn.name, token))
		}
		c.writef("\tret 0\n")
	}
	c.writef("}\n\n")
	return nil
}

func firstString(tokens syntax.TokenList) *syntax.Token {
	for _, t := range tokens {
		if t.Kind == syntax.T_STRING_CONST {
			return t
		}
	}
	return nil
}

// argumentString finds the first string literal in the argument runs below
// a call, in the order they are compiled.
func argumentString(call *syntax.Node) *syntax.Token {
	for _, child := range call.Children {
		for node := range child.All() {
			if lit := firstString(node.Tokens); lit != nil {
				return lit
			}
		}
	}
	return nil
}
