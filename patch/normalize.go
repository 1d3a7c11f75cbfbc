// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import "github.com/decaffeinate/decaf/syntax"

// A passthroughPatcher patches its children and nothing else.
// The Normalize stage uses it for every node it leaves alone.
type passthroughPatcher struct {
	*NodePatcher
}

func newPassthrough(b *NodePatcher) Patcher {
	return &passthroughPatcher{b}
}

// A postfixPatcher rewrites a postfix conditional or loop,
// "a if b", into prefix form, "if b then a".
type postfixPatcher struct {
	*NodePatcher
	body    Patcher
	keyword []syntax.Kind
}

func newPostfix(b *NodePatcher) Patcher {
	p := &postfixPatcher{NodePatcher: b}
	var postfix bool
	switch n := b.Node.(type) {
	case *syntax.Conditional:
		postfix = n.Postfix
		p.body = b.child("consequent")
		p.keyword = []syntax.Kind{syntax.IF, syntax.UNLESS}
	case *syntax.While:
		postfix = n.Postfix
		p.body = b.child("body")
		p.keyword = []syntax.Kind{syntax.WHILE, syntax.UNTIL}
	case *syntax.ForIn, *syntax.ForOf:
		postfix = isPostfixLoop(b.Node)
		p.body = b.child("body")
		p.keyword = []syntax.Kind{syntax.FOR}
	}
	if !postfix {
		return newPassthrough(b)
	}
	return p
}

func isPostfixLoop(n syntax.Node) bool {
	switch n := n.(type) {
	case *syntax.ForIn:
		return n.Postfix
	case *syntax.ForOf:
		return n.Postfix
	}
	return false
}

func (p *postfixPatcher) PatchAsExpression() {
	mark := p.mark()
	body := p.body.base()
	for _, c := range p.allChildren() {
		c.base().Patch()
	}
	kw := p.findToken(body.ContentEnd, p.ContentEnd, p.keyword...)
	header := p.slice(kw.Start, p.ContentEnd, mark)
	code := p.slice(body.ContentStart, body.ContentEnd, mark)
	p.collapse(p.ContentStart, p.ContentEnd, mark, header+" then "+code)
}
