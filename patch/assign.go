// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"github.com/decaffeinate/decaf/syntax"
)

// An AssignOpPatcher patches a = b, declaring the names the assignment
// binds first. A statement that binds all of its names declares them
// inline; any other assignment hoists its names to the top of the
// enclosing function.
type AssignOpPatcher struct {
	*NodePatcher
	assignee, expression Patcher
}

func newAssignOp(b *NodePatcher) Patcher {
	return &AssignOpPatcher{NodePatcher: b, assignee: b.child("assignee"), expression: b.child("expression")}
}

func (p *AssignOpPatcher) Initialize() {
	checkAssignee(p.assignee)
}

// checkAssignee rejects assignment targets with no JavaScript form.
func checkAssignee(a Patcher) {
	if isSoaked(a) {
		a.base().errorf("cannot assign to a soaked expression")
	}
	switch a := a.(type) {
	case *ArrayInitialiserPatcher:
		for i, m := range a.members {
			if _, ok := m.(*SpreadPatcher); ok && i < len(a.members)-1 {
				m.base().errorf("a rest element must be the last element of a destructuring pattern")
			}
			checkAssignee(m)
		}
	case *ObjectInitialiserPatcher:
		for _, m := range a.members {
			if e := m.(*ObjectMemberPatcher).expression; e != nil {
				checkAssignee(e)
			}
		}
	}
}

// isSoaked reports whether p or an access it is chained to is soaked.
func isSoaked(p Patcher) bool {
	for {
		switch q := p.(type) {
		case *MemberAccessPatcher:
			if q.soaked {
				return true
			}
			p = q.expression
		case *DynamicMemberAccessPatcher:
			if q.soaked {
				return true
			}
			p = q.expression
		case *FunctionApplicationPatcher:
			if q.soaked {
				return true
			}
			p = q.fn
		default:
			return false
		}
	}
}

// declaredNames returns the names bound for the first time by p.
func (p *AssignOpPatcher) declaredNames() (names []string, all bool) {
	all = true
	for _, name := range assigneeNames(p.assignee.base().Node) {
		if p.scope().IsDeclaredBy(name, p.Node) {
			names = append(names, name)
		} else {
			all = false
		}
	}
	return names, all
}

// inBody reports whether p is a statement of the body of a function or
// of the program, where a block-scoped declaration is visible to the
// whole function.
func (p *AssignOpPatcher) inBody() bool {
	b, ok := p.parent.(*BlockPatcher)
	if !ok || b.parent == nil {
		return false
	}
	switch b.parent.(type) {
	case *ProgramPatcher, *FunctionPatcher:
		return true
	}
	return false
}

// inIIFE reports whether p is inside a statement that was wrapped in a
// function to be used as a value. Declarations there would not be
// visible to the rest of the enclosing function.
func inIIFE(p *NodePatcher) bool {
	for q := p.parent; q != nil; q = q.base().parent {
		switch q.(type) {
		case *FunctionPatcher, *ProgramPatcher:
			return false
		}
		if q.base().iife {
			return true
		}
	}
	return false
}

func (p *AssignOpPatcher) PatchAsStatement() {
	names, all := p.declaredNames()
	blockScoped := p.s.opts.BlockScopedDeclarations
	if len(names) > 0 && all && !inIIFE(p.NodePatcher) && (!blockScoped || p.inBody()) {
		constant := true
		for _, name := range names {
			if p.scope().HasModificationsAfterDeclaration(name) {
				constant = false
			}
		}
		p.Insert(p.ContentStart, p.s.opts.declKeyword(constant)+" ")
		p.patchAssignment()
		return
	}
	for _, name := range names {
		p.scope().hoist(name)
	}
	if _, ok := p.assignee.(*ObjectInitialiserPatcher); ok && !p.isSurroundedByParentheses() {
		p.Insert(p.ContentStart, "(")
		p.patchAssignment()
		p.Insert(p.ContentEnd, ")")
		return
	}
	p.patchAssignment()
}

func (p *AssignOpPatcher) PatchAsExpression() {
	names, _ := p.declaredNames()
	for _, name := range names {
		p.scope().hoist(name)
	}
	p.patchAssignment()
}

func (p *AssignOpPatcher) patchAssignment() {
	p.assignee.base().Patch()
	p.expression.base().Patch()
}

// A CompoundAssignOpPatcher patches a op= b. Operators JavaScript lacks
// become plain assignments or guarded ones.
type CompoundAssignOpPatcher struct {
	*NodePatcher
	assignee, expression Patcher
	op                   string
}

func newCompoundAssignOp(b *NodePatcher) Patcher {
	return &CompoundAssignOpPatcher{
		NodePatcher: b,
		assignee:    b.child("assignee"),
		expression:  b.child("expression"),
		op:          b.Node.(*syntax.CompoundAssignOp).Op,
	}
}

func (p *CompoundAssignOpPatcher) Initialize() {
	checkAssignee(p.assignee)
	switch p.assignee.(type) {
	case *ArrayInitialiserPatcher, *ObjectInitialiserPatcher:
		p.errorf("cannot use %s with a destructuring pattern", p.op)
	}
}

func (p *CompoundAssignOpPatcher) needsSemicolon() bool {
	return !(p.asStatement && p.op == "?=")
}

func (p *CompoundAssignOpPatcher) PatchAsStatement() {
	p.patch(true)
}

func (p *CompoundAssignOpPatcher) PatchAsExpression() {
	p.patch(false)
}

func (p *CompoundAssignOpPatcher) patch(statement bool) {
	if id, ok := p.assignee.(*IdentifierPatcher); ok && p.scope().IsDeclaredBy(id.name, p.Node) {
		p.scope().hoist(id.name)
	}
	eb := p.expression.base()
	opTok := p.findToken(p.assignee.base().OuterEnd, eb.OuterStart, syntax.COMPOUND_ASSIGN, syntax.OR, syntax.AND)
	opEnd := opTok.End
	if opTok.Kind != syntax.COMPOUND_ASSIGN {
		// or= and and= are two tokens.
		opEnd = p.findToken(opTok.End, eb.OuterStart, syntax.ASSIGN).End
	}

	switch p.op {
	case "?=":
		mark := p.mark()
		first, again := p.patchAssigneeRepeatable()
		value := eb.PatchAndGetCode()
		if statement {
			p.collapse(p.ContentStart, p.ContentEnd, mark, "if ("+first+" == null) { "+again+" = "+value+"; }")
		} else {
			p.collapse(p.ContentStart, p.ContentEnd, mark, first+" != null ? "+again+" : ("+again+" = "+value+")")
		}
	case "||=", "&&=":
		_, again := p.patchAssigneeRepeatable()
		p.Overwrite(opTok.Start, opEnd, p.op[:2]+" ("+again+" =")
		eb.Patch()
		p.Insert(p.ContentEnd, ")")
	case "//=":
		_, again := p.patchAssigneeRepeatable()
		p.Overwrite(opTok.Start, opEnd, "= Math.floor("+again+" /")
		p.patchOperand(eb)
		p.Insert(p.ContentEnd, ")")
	case "%%=":
		p.registerHelper("__mod__", modHelper)
		_, again := p.patchAssigneeRepeatable()
		p.Overwrite(opTok.Start, opEnd, "= __mod__("+again+",")
		eb.Patch()
		p.Insert(p.ContentEnd, ")")
	default:
		p.assignee.base().Patch()
		eb.Patch()
	}
}

// patchOperand patches the right operand of a rewritten operator,
// parenthesizing it unless it is primary.
func (p *CompoundAssignOpPatcher) patchOperand(eb *NodePatcher) {
	if isPrimary(eb.self) {
		eb.Patch()
		return
	}
	p.Insert(eb.OuterStart, "(")
	eb.Patch()
	p.Insert(eb.OuterEnd, ")")
}

// patchAssigneeRepeatable patches the assignee so that it can be read
// and then assigned without evaluating its parts twice. It returns the
// code now in place of the assignee and the code for later uses.
func (p *CompoundAssignOpPatcher) patchAssigneeRepeatable() (first, again string) {
	ab := p.assignee.base()
	mark := p.mark()
	switch a := p.assignee.(type) {
	case *MemberAccessPatcher:
		if a.IsRepeatable() {
			break
		}
		obj := a.expression.base().PatchRepeatable(repeatOptions{Parens: true, Ref: []string{"base"}})
		sep := "."
		if a.proto {
			op := a.findToken(a.expression.base().OuterEnd, a.member.ContentStart, syntax.PROTO)
			a.Overwrite(op.Start, op.End, ".prototype.")
			sep = ".prototype."
		}
		return p.slice(ab.OuterStart, ab.OuterEnd, mark), obj + sep + a.member.name
	case *DynamicMemberAccessPatcher:
		if a.IsRepeatable() {
			break
		}
		obj := a.expression.base().PatchRepeatable(repeatOptions{Parens: true, Ref: []string{"base"}})
		idx := a.indexing.base().PatchRepeatable(repeatOptions{Ref: []string{"name"}})
		return p.slice(ab.OuterStart, ab.OuterEnd, mark), obj + "[" + idx + "]"
	}
	code := ab.PatchAndGetCode()
	return code, code
}
