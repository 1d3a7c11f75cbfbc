// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import "github.com/decaffeinate/decaf/syntax"

// A SwitchPatcher patches switch. A switch without a subject becomes
// switch (false) over negated conditions.
type SwitchPatcher struct {
	*NodePatcher
	expression Patcher // nil without a subject
	cases      []*SwitchCasePatcher
	alternate  *BlockPatcher
}

func newSwitch(b *NodePatcher) Patcher {
	p := &SwitchPatcher{NodePatcher: b, expression: b.child("expression")}
	for _, c := range b.children("cases") {
		p.cases = append(p.cases, c.(*SwitchCasePatcher))
	}
	p.alternate, _ = b.child("alternate").(*BlockPatcher)
	return p
}

func (p *SwitchPatcher) Initialize() {
	if p.expression != nil {
		return
	}
	for _, c := range p.cases {
		for _, cond := range c.conditions {
			cond.negate()
		}
	}
}

func (p *SwitchPatcher) isExpressible() bool { return false }

func (p *SwitchPatcher) needsSemicolon() bool { return false }

func (p *SwitchPatcher) markImplicitReturn() {
	for _, c := range p.cases {
		c.consequent.markImplicitReturn()
	}
	if p.alternate != nil {
		p.alternate.markImplicitReturn()
	}
}

func (p *SwitchPatcher) PatchAsExpression() {
	p.patchAsIIFE()
}

func (p *SwitchPatcher) PatchAsStatement() {
	kw := p.token(p.ContentStartTokenIndex)
	if p.expression == nil {
		p.Overwrite(kw.Start, kw.End, "switch (false) {")
	} else {
		p.patchCondition(kw, "switch", p.expression)
		p.Insert(p.expression.base().OuterEnd, " {")
	}
	for _, c := range p.cases {
		c.Patch()
	}
	if p.alternate != nil {
		var last int
		if n := len(p.cases); n > 0 {
			last = p.cases[n-1].ContentEnd
		}
		elseTok := p.findToken(last, p.ContentEnd, syntax.ELSE)
		end := elseTok.End
		if t := p.nextToken(elseTok); t.Kind == syntax.THEN {
			end = t.End
		}
		p.Overwrite(elseTok.Start, end, "default:")
		p.alternate.Patch()
	}
	p.Insert(p.ContentEnd, "\n"+p.indentAt(p.ContentStart)+"}")
}

// nextToken returns the significant token following t.
func (p *NodePatcher) nextToken(t syntax.Token) syntax.Token {
	i := p.s.toks.IndexStartingAt(t.Start)
	return p.token(p.s.toks.Next(i))
}

// A SwitchCasePatcher patches a when clause as case labels followed by
// the body and a break.
type SwitchCasePatcher struct {
	*NodePatcher
	conditions []Patcher
	consequent *BlockPatcher
}

func newSwitchCase(b *NodePatcher) Patcher {
	p := &SwitchCasePatcher{NodePatcher: b, conditions: b.children("conditions")}
	p.consequent, _ = b.child("consequent").(*BlockPatcher)
	return p
}

func (p *SwitchCasePatcher) PatchAsExpression() {
	kw := p.token(p.ContentStartTokenIndex)
	p.Overwrite(kw.Start, kw.End, "case")
	for i, c := range p.conditions {
		cb := c.base()
		if i > 0 {
			p.Overwrite(p.conditions[i-1].base().OuterEnd, cb.OuterStart, ": case ")
		}
		cb.Patch()
	}
	last := p.conditions[len(p.conditions)-1].base().OuterEnd
	if i := p.s.toks.FirstBetween(last, p.consequent.ContentStart, syntax.Is(syntax.THEN)); i >= 0 {
		p.Overwrite(last, p.token(i).End, ":")
	} else {
		p.Insert(last, ":")
	}
	p.consequent.Patch()
	if !exits(p.consequent) {
		sep := " "
		if !p.consequent.inline() {
			sep = "\n" + p.consequent.indent()
		}
		p.Insert(p.consequent.ContentEnd, sep+"break;")
	}
}

// exits reports whether control cannot fall off the end of the patched
// block b.
func exits(b *BlockPatcher) bool {
	if b.empty() {
		return false
	}
	last := b.statements[len(b.statements)-1]
	switch last.(type) {
	case *ReturnPatcher, *ThrowPatcher, *JumpPatcher:
		return true
	}
	if lb := last.base(); lb.implicitlyReturns {
		// A value collected by a loop does not leave the switch.
		prefix, _ := lb.returnWrap()
		return prefix == "return "
	}
	return false
}
