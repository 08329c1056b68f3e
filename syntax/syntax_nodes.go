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
	"iter"
	"strings"
)

// Node is one entry of the statement tree. Tokens holds the flat run of a
// single statement or structural fragment; Children holds the statements
// nested under an opening bracket, in source order. The root has no tokens.
type Node struct {
	Tokens   TokenList
	Parent   *Node
	Children []*Node
}

func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

func (n *Node) addChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// FirstLine returns the source line of the node's first token.
func (n *Node) FirstLine() *SourceLine {
	if len(n.Tokens) == 0 {
		return nil
	}
	return n.Tokens[0].Origin
}

// Walk visits nodes in pre-order: the node, then its children.
func Walk(node *Node, walkFn func(*Node) bool) {
	if node == nil || !walkFn(node) {
		return
	}
	for _, child := range node.Children {
		Walk(child, walkFn)
	}
}

// All yields every node of the tree rooted at node, in pre-order.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.all(yield)
	}
}

func (n *Node) all(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.all(yield) {
			return false
		}
	}
	return true
}

func isDownToken(t *Token) bool {
	return t.Text == "{" || t.Text == "[" || t.Text == "("
}

func isUpToken(t *Token) bool {
	return t.Text == "}" || t.Text == "]" || t.Text == ")"
}

func isStatementToken(t *Token) bool {
	return t.Text == ";"
}

// BuildTree files a translation unit's tokens into a statement tree.
//
// Tokens accumulate in a pending node. An opening bracket files the pending
// node under the cursor and descends into it; a closing bracket files it and
// returns to the parent; ';' files it in place. Trailing tokens that were
// never closed by one of those are dropped.
func BuildTree(tokens TokenList) (*Node, error) {
	root := &Node{}
	current := root
	pending := &Node{}

	for len(tokens) > 0 {
		var token *Token
		token, tokens = tokens.Pluck()
		pending.Tokens = append(pending.Tokens, token)

		switch {
		case isDownToken(token):
			current.addChild(pending)
			current = pending
			pending = &Node{}
		case isUpToken(token):
			if current.IsRoot() {
				return nil, errUnmatchedClose(token)
			}
			current.addChild(pending)
			current = current.Parent
			pending = &Node{}
		case isStatementToken(token):
			current.addChild(pending)
			pending = &Node{}
		}
	}
	return root, nil
}

// DumpTree writes one line per node, indented by depth.
func DumpTree(w io.Writer, root *Node) {
	dumpTree(w, root, 0)
}

func dumpTree(w io.Writer, node *Node, level int) {
	var buf strings.Builder
	buf.WriteString(strings.Repeat(" * ", level))
	for _, t := range node.Tokens {
		fmt.Fprintf(&buf, "`%s` ", t.Text)
	}
	fmt.Fprintln(w, buf.String())
	for _, child := range node.Children {
		dumpTree(w, child, level+1)
	}
}
