// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import "github.com/decaffeinate/decaf/syntax"

// A TryPatcher patches try, catch and finally. A catch clause needs a
// binding, and a try needs a catch or a finally clause.
type TryPatcher struct {
	*NodePatcher
	body          *BlockPatcher
	catchAssignee Patcher
	catchBody     *BlockPatcher // nil for a catch clause without a body
	finallyBody   *BlockPatcher
}

func newTry(b *NodePatcher) Patcher {
	p := &TryPatcher{NodePatcher: b, catchAssignee: b.child("catchAssignee")}
	p.body, _ = b.child("body").(*BlockPatcher)
	p.catchBody, _ = b.child("catchBody").(*BlockPatcher)
	p.finallyBody, _ = b.child("finallyBody").(*BlockPatcher)
	return p
}

func (p *TryPatcher) isExpressible() bool { return false }

func (p *TryPatcher) needsSemicolon() bool { return false }

// markImplicitReturn returns the values of the try and catch bodies.
// The value of a finally body is discarded.
func (p *TryPatcher) markImplicitReturn() {
	p.body.markImplicitReturn()
	if p.catchBody != nil {
		p.catchBody.markImplicitReturn()
	}
}

func (p *TryPatcher) PatchAsExpression() {
	p.patchAsIIFE()
}

func (p *TryPatcher) PatchAsStatement() {
	n := p.Node.(*syntax.Try)
	indent := p.indentAt(p.ContentStart)
	kw := p.token(p.ContentStartTokenIndex)
	p.body.openBrace(kw.End)
	p.body.Patch()
	end := kw.End
	if !p.body.empty() {
		end = p.body.ContentEnd
	}

	if !n.HasCatch && !n.HasFinally {
		if !p.body.empty() {
			p.Insert(p.body.ContentEnd, p.body.closeBrace(indent))
		}
		p.Insert(p.ContentEnd, " catch ("+p.claimFreeBinding("error")+") {}")
		return
	}

	if n.HasCatch {
		catchTok := p.findToken(end, p.ContentEnd, syntax.CATCH)
		p.body.closeBefore(catchTok, indent)
		end = p.patchCatch(catchTok, indent)
		if !n.HasFinally {
			return
		}
	}

	finallyTok := p.findToken(end, p.ContentEnd, syntax.FINALLY)
	if n.HasCatch {
		if p.catchBody != nil {
			p.catchBody.closeBefore(finallyTok, indent)
		}
	} else {
		p.body.closeBefore(finallyTok, indent)
	}
	p.finallyBody.patchBraced(finallyTok.End, indent)
}

// patchCatch patches the catch clause starting at catchTok and returns
// the end of what it patched.
func (p *TryPatcher) patchCatch(catchTok syntax.Token, indent string) int {
	headerEnd := catchTok.End
	if p.catchAssignee == nil {
		p.Insert(catchTok.End, " ("+p.claimFreeBinding("error")+")")
	} else {
		ab := p.catchAssignee.base()
		if ab.isSurroundedByParentheses() {
			ab.Patch()
		} else {
			p.Overwrite(catchTok.End, ab.OuterStart, " (")
			ab.Patch()
			p.Insert(ab.OuterEnd, ")")
		}
		headerEnd = ab.OuterEnd
	}

	switch {
	case p.catchBody == nil:
		p.Insert(headerEnd, " {}")
		return headerEnd
	case p.finallyBody != nil:
		p.catchBody.openBrace(headerEnd)
		p.catchBody.Patch()
	default:
		p.catchBody.patchBraced(headerEnd, indent)
	}
	if p.catchBody.empty() {
		return headerEnd
	}
	return p.catchBody.ContentEnd
}
