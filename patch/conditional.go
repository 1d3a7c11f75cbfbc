// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import "github.com/decaffeinate/decaf/syntax"

// A ConditionalPatcher patches if and unless. As a statement it becomes
// an if statement; as a value, a ?: expression when both branches can
// be written as expressions and an arrow function call otherwise.
type ConditionalPatcher struct {
	*NodePatcher
	condition  Patcher
	consequent *BlockPatcher
	alternate  Patcher // nil, *BlockPatcher or *ConditionalPatcher
}

func newConditional(b *NodePatcher) Patcher {
	p := &ConditionalPatcher{
		NodePatcher: b,
		condition:   b.child("condition"),
		alternate:   b.child("alternate"),
	}
	p.consequent, _ = b.child("consequent").(*BlockPatcher)
	return p
}

func (p *ConditionalPatcher) Initialize() {
	if p.Node.(*syntax.Conditional).Unless {
		p.condition.negate()
	}
}

func (p *ConditionalPatcher) isExpressible() bool {
	if !p.consequent.isExpressible() {
		return false
	}
	return p.alternate == nil || p.alternate.isExpressible()
}

func (p *ConditionalPatcher) needsSemicolon() bool {
	return !p.asStatement
}

// markImplicitReturn returns the value of each branch. Without an else
// branch the conditional becomes a ?: expression returned as a whole.
func (p *ConditionalPatcher) markImplicitReturn() {
	if p.alternate == nil && p.isExpressible() {
		p.implicitlyReturns = true
		return
	}
	p.markBranchReturns()
}

func (p *ConditionalPatcher) markBranchReturns() {
	p.consequent.markImplicitReturn()
	switch alt := p.alternate.(type) {
	case *ConditionalPatcher:
		alt.markBranchReturns()
	case *BlockPatcher:
		alt.markImplicitReturn()
	}
}

func (p *ConditionalPatcher) keyword() syntax.Token {
	return p.token(p.ContentStartTokenIndex)
}

func (p *ConditionalPatcher) PatchAsStatement() {
	cb := p.condition.base()
	p.patchCondition(p.keyword(), "if", p.condition)
	indent := p.indentAt(p.ContentStart)
	if p.alternate == nil {
		p.consequent.patchBraced(cb.OuterEnd, indent)
		return
	}

	p.consequent.openBrace(cb.OuterEnd)
	p.consequent.Patch()
	ab := p.alternate.base()
	from := p.consequent.ContentEnd
	if p.consequent.empty() {
		from = cb.OuterEnd
	}
	elseTok := p.findToken(from, ab.ContentStart, syntax.ELSE)
	p.consequent.closeBefore(elseTok, indent)

	switch alt := p.alternate.(type) {
	case *ConditionalPatcher:
		alt.statement = true
		alt.Patch()
	case *BlockPatcher:
		alt.patchBraced(elseTok.End, indent)
	}
}

func (p *ConditionalPatcher) PatchAsExpression() {
	if !p.isExpressible() {
		p.patchAsIIFE()
		return
	}
	cb := p.condition.base()
	p.Remove(p.keyword().Start, cb.OuterStart)
	if needsTernaryParens(p.condition) {
		p.Insert(cb.OuterStart, "(")
		cb.Patch()
		p.Insert(cb.OuterEnd, ")")
	} else {
		cb.Patch()
	}

	p.Overwrite(cb.OuterEnd, p.consequent.ContentStart, " ? ")
	p.consequent.statement = false
	p.consequent.Patch()

	if p.alternate == nil {
		p.Insert(p.consequent.ContentEnd, " : undefined")
		return
	}
	ab := p.alternate.base()
	p.Overwrite(p.consequent.ContentEnd, ab.ContentStart, " : ")
	ab.statement = false
	ab.Patch()
}

// needsTernaryParens reports whether p must be parenthesized to be the
// test of a ?: expression.
func needsTernaryParens(p Patcher) bool {
	if p.base().isSurroundedByParentheses() {
		return false
	}
	switch p.(type) {
	case *AssignOpPatcher, *CompoundAssignOpPatcher, *ExistsOpPatcher, *ConditionalPatcher,
		*SeqOpPatcher, *FunctionPatcher, *YieldPatcher:
		return true
	}
	return false
}

// patchCondition rewrites the header keyword kw followed by cond as
// keyword (cond).
func (p *NodePatcher) patchCondition(kw syntax.Token, keyword string, cond Patcher) {
	cb := cond.base()
	if cb.isSurroundedByParentheses() && !cb.negated {
		p.Overwrite(kw.Start, kw.End, keyword)
		cb.Patch()
		return
	}
	p.Overwrite(kw.Start, cb.OuterStart, keyword+" (")
	cb.Patch()
	p.Insert(cb.OuterEnd, ")")
}

// closeBefore closes the braces of the block, which is followed by the
// keyword next, as in "} else". An empty block was closed when opened.
func (p *BlockPatcher) closeBefore(next syntax.Token, indent string) {
	switch {
	case p.empty():
	case p.inline():
		p.Insert(p.ContentEnd, " }")
	case p.isMultiline(p.ContentEnd, next.Start):
		p.Insert(next.Start, "} ")
	default:
		p.Insert(p.ContentEnd, "\n"+indent+"}")
	}
}
