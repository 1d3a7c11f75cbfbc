// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

// A ReturnPatcher patches return. Nothing implicitly returns through it.
type ReturnPatcher struct {
	*NodePatcher
	expression Patcher // nil for a bare return
}

func newReturn(b *NodePatcher) Patcher {
	return &ReturnPatcher{NodePatcher: b, expression: b.child("expression")}
}

func (p *ReturnPatcher) Initialize() {
	p.markExplicitReturn()
}

func (p *ReturnPatcher) isExpressible() bool { return false }

func (p *ReturnPatcher) markImplicitReturn() {}

func (p *ReturnPatcher) PatchAsStatement() {
	if p.expression != nil {
		p.expression.base().Patch()
	}
}

func (p *ReturnPatcher) PatchAsExpression() {
	p.errorf("cannot use return as a value")
}

// A ThrowPatcher patches throw. Used as a value, it is wrapped in a
// function.
type ThrowPatcher struct {
	*NodePatcher
	expression Patcher
}

func newThrow(b *NodePatcher) Patcher {
	return &ThrowPatcher{NodePatcher: b, expression: b.child("expression")}
}

func (p *ThrowPatcher) isExpressible() bool { return false }

func (p *ThrowPatcher) markImplicitReturn() {}

func (p *ThrowPatcher) PatchAsStatement() {
	p.expression.base().Patch()
}

func (p *ThrowPatcher) PatchAsExpression() {
	p.patchAsIIFE()
}

// A JumpPatcher patches break and continue.
type JumpPatcher struct {
	*NodePatcher
}

func newJump(b *NodePatcher) Patcher {
	return &JumpPatcher{b}
}

func (p *JumpPatcher) isExpressible() bool { return false }

func (p *JumpPatcher) markImplicitReturn() {}

func (p *JumpPatcher) PatchAsStatement() {}

func (p *JumpPatcher) PatchAsExpression() {
	p.errorf("cannot use %s as a value", p.Original())
}

// A YieldPatcher patches yield, which makes the enclosing function a
// generator.
type YieldPatcher struct {
	*NodePatcher
	expression Patcher // nil for a bare yield
}

func newYield(b *NodePatcher) Patcher {
	return &YieldPatcher{NodePatcher: b, expression: b.child("expression")}
}

func (p *YieldPatcher) PatchAsExpression() {
	if p.expression != nil {
		p.expression.base().Patch()
	}
}
