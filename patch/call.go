// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import "github.com/decaffeinate/decaf/syntax"

// A FunctionApplicationPatcher patches calls, adding the parentheses
// of implicit calls and guarding soaked calls with a typeof test.
type FunctionApplicationPatcher struct {
	*NodePatcher
	fn       Patcher
	args     []Patcher
	implicit bool
	soaked   bool
}

func newFunctionApplication(b *NodePatcher) Patcher {
	p := &FunctionApplicationPatcher{NodePatcher: b, fn: b.child("function"), args: b.children("arguments")}
	switch n := b.Node.(type) {
	case *syntax.FunctionApplication:
		p.implicit = n.Implicit
	case *syntax.SoakedFunctionApplication:
		p.soaked = true
	}
	return p
}

func (p *FunctionApplicationPatcher) Initialize() {
	if p.soaked {
		findSoakContainer(p).base().soakContainer = true
	}
}

func (p *FunctionApplicationPatcher) PatchAsExpression() {
	fb := p.fn.base()
	if p.soaked {
		p.patchSoakedFunction()
		q := p.findToken(fb.OuterEnd, p.ContentEnd, syntax.EXISTENCE)
		p.Remove(q.Start, q.End)
	} else {
		fb.Patch()
	}
	if p.implicit {
		openImplicitCall(p.NodePatcher, fb.OuterEnd, p.args[0].base().OuterStart)
	}
	patchList(p.NodePatcher, p.args)
	if p.implicit {
		p.Insert(p.ContentEnd, ")")
	}
}

// openImplicitCall adds the opening parenthesis of a call written
// without one, between the callee ending at end and the first argument
// starting at next.
func openImplicitCall(p *NodePatcher, end, next int) {
	if p.isMultiline(end, next) || p.hasComments(end, next) {
		p.Insert(end, "(")
		return
	}
	p.Overwrite(end, next, "(")
}

// patchSoakedFunction patches the callee of a?() as a test that it is
// a function, followed by " ? " and the callee.
func (p *FunctionApplicationPatcher) patchSoakedFunction() {
	fb := p.fn.base()
	mark := p.mark()
	fb.Patch()
	code := p.slice(fb.OuterStart, fb.OuterEnd, mark)
	var test, callee string
	switch m, ok := p.fn.(*MemberAccessPatcher); {
	case p.fn.IsRepeatable():
		test, callee = code, code
	case ok && !m.soaked && !m.expression.IsRepeatable():
		// Keep the receiver of a method call.
		eb := m.expression.base()
		obj := p.slice(eb.OuterStart, eb.OuterEnd, mark)
		rest := p.slice(eb.OuterEnd, fb.OuterEnd, mark)
		ref := p.claimFreeBinding()
		p.scope().hoist(ref)
		test, callee = "("+ref+" = "+obj+")"+rest, ref+rest
	default:
		ref := p.claimFreeBinding()
		p.scope().hoist(ref)
		test, callee = "("+ref+" = "+code+")", ref
	}
	p.collapse(fb.OuterStart, fb.OuterEnd, mark, "typeof "+test+` === "function" ? `+callee)
}

// A NewOpPatcher patches new expressions, adding the parentheses of
// the argument list where they are left out.
type NewOpPatcher struct {
	*NodePatcher
	ctor     Patcher
	args     []Patcher
	implicit bool
}

func newNewOp(b *NodePatcher) Patcher {
	return &NewOpPatcher{
		NodePatcher: b,
		ctor:        b.child("ctor"),
		args:        b.children("arguments"),
		implicit:    b.Node.(*syntax.NewOp).Implicit,
	}
}

func (p *NewOpPatcher) PatchAsExpression() {
	cb := p.ctor.base()
	cb.Patch()
	switch {
	case p.implicit:
		openImplicitCall(p.NodePatcher, cb.OuterEnd, p.args[0].base().OuterStart)
	case len(p.args) == 0 && !p.hasToken(cb.OuterEnd, p.ContentEnd, syntax.CALL_START):
		p.Insert(cb.OuterEnd, "()")
	}
	patchList(p.NodePatcher, p.args)
	if p.implicit {
		p.Insert(p.ContentEnd, ")")
	}
}
