// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"strconv"

	"github.com/decaffeinate/decaf/syntax"
)

// A MemberAccessPatcher patches a.b, a::b, @b and their soaked forms.
type MemberAccessPatcher struct {
	*NodePatcher
	expression Patcher
	member     *IdentifierPatcher
	soaked     bool
	proto      bool
}

func newMemberAccess(b *NodePatcher) Patcher {
	p := &MemberAccessPatcher{NodePatcher: b, expression: b.child("expression")}
	p.member, _ = b.child("member").(*IdentifierPatcher)
	switch b.Node.(type) {
	case *syntax.SoakedMemberAccessOp:
		p.soaked = true
	case *syntax.ProtoMemberAccessOp:
		p.proto = true
	case *syntax.SoakedProtoMemberAccessOp:
		p.soaked, p.proto = true, true
	}
	return p
}

func (p *MemberAccessPatcher) Initialize() {
	if p.soaked {
		findSoakContainer(p).base().soakContainer = true
	}
}

// isThisShorthand reports whether p is written @name.
func (p *MemberAccessPatcher) isThisShorthand() bool {
	t, ok := p.expression.(*ThisPatcher)
	return ok && t.Node.(*syntax.This).Shorthand && t.ContentEnd == p.member.ContentStart
}

func (p *MemberAccessPatcher) IsRepeatable() bool {
	return !p.soaked && p.expression.IsRepeatable()
}

func (p *MemberAccessPatcher) PatchAsExpression() {
	eb := p.expression.base()
	if p.soaked {
		p.patchSoakGuard(p.expression)
	} else {
		eb.Patch()
	}
	if p.isThisShorthand() {
		p.Insert(p.member.ContentStart, ".")
		return
	}
	op := p.findToken(eb.OuterEnd, p.member.ContentStart, syntax.DOT, syntax.SOAK_DOT, syntax.PROTO, syntax.SOAK_PROTO)
	switch {
	case p.proto:
		p.Overwrite(op.Start, op.End, ".prototype.")
	case p.soaked:
		p.Overwrite(op.Start, op.End, ".")
	}
}

// A DynamicMemberAccessPatcher patches a[b] and a?[b].
type DynamicMemberAccessPatcher struct {
	*NodePatcher
	expression, indexing Patcher
	soaked               bool
}

func newDynamicMemberAccess(b *NodePatcher) Patcher {
	_, soaked := b.Node.(*syntax.SoakedDynamicMemberAccessOp)
	return &DynamicMemberAccessPatcher{
		NodePatcher: b,
		expression:  b.child("expression"),
		indexing:    b.child("indexing"),
		soaked:      soaked,
	}
}

func (p *DynamicMemberAccessPatcher) Initialize() {
	if p.soaked {
		findSoakContainer(p).base().soakContainer = true
	}
}

func (p *DynamicMemberAccessPatcher) IsRepeatable() bool {
	return !p.soaked && p.expression.IsRepeatable() && p.indexing.IsRepeatable()
}

func (p *DynamicMemberAccessPatcher) PatchAsExpression() {
	eb, ib := p.expression.base(), p.indexing.base()
	if p.soaked {
		p.patchSoakGuard(p.expression)
		q := p.findToken(eb.OuterEnd, ib.OuterStart, syntax.EXISTENCE)
		p.Remove(q.Start, q.End)
	} else {
		eb.Patch()
	}
	ib.Patch()
}

// A SlicePatcher turns a[b..c] into a call of slice.
type SlicePatcher struct {
	*NodePatcher
	expression, left, right Patcher
	inclusive               bool
}

func newSlice(b *NodePatcher) Patcher {
	return &SlicePatcher{
		NodePatcher: b,
		expression:  b.child("expression"),
		left:        b.child("left"),
		right:       b.child("right"),
		inclusive:   b.Node.(*syntax.Slice).Inclusive,
	}
}

func (p *SlicePatcher) Initialize() {
	if _, ok := p.parent.(*AssignOpPatcher); ok && p.parent.base().child("assignee") == Patcher(p) {
		p.errorf("assignment to a slice is not supported")
	}
}

func (p *SlicePatcher) PatchAsExpression() {
	mark := p.mark()
	code := p.expression.base().PatchAndGetCode()
	var args []string
	if p.left != nil {
		args = append(args, p.left.base().PatchAndGetCode())
	} else if p.right != nil {
		args = append(args, "0")
	}
	if p.right != nil {
		n := p.Node.(*syntax.Slice)
		end := p.right.base().PatchAndGetCode()
		switch v, ok := intLiteral(n.Right); {
		case !p.inclusive:
			args = append(args, end)
		case ok && v == -1:
			// through the last element
		case ok:
			args = append(args, strconv.Itoa(v+1))
		default:
			if !isPrimary(p.right) {
				end = "(" + end + ")"
			}
			args = append(args, "+"+end+" + 1 || undefined")
		}
	}
	call := code + ".slice("
	for i, a := range args {
		if i > 0 {
			call += ", "
		}
		call += a
	}
	p.collapse(p.ContentStart, p.ContentEnd, mark, call+")")
}

// patchSoakGuard patches expr, the operand of a soaked operation, and
// replaces it with a test that its value is neither null nor undefined,
// followed by " ? " and the value. The soak container closes the
// conditional.
func (p *NodePatcher) patchSoakGuard(expr Patcher) {
	eb := expr.base()
	mark := p.mark()
	eb.Patch()
	code := p.slice(eb.OuterStart, eb.OuterEnd, mark)
	var guard, value string
	switch {
	case isUnboundIdentifier(expr):
		guard, value = p.typeofCheck(code), code
	case expr.IsRepeatable():
		guard, value = code+" != null", code
	default:
		ref := p.claimFreeBinding()
		p.scope().hoist(ref)
		guard, value = "("+ref+" = "+code+") != null", ref
	}
	p.collapse(eb.OuterStart, eb.OuterEnd, mark, guard+" ? "+value)
}

// typeofCheck returns a test that name is defined and not null,
// safe to use for a name that may never have been declared.
func (p *NodePatcher) typeofCheck(name string) string {
	p.suggest(ShortenNullChecks)
	return "typeof " + name + ` !== "undefined" && ` + name + " !== null"
}

func isUnboundIdentifier(p Patcher) bool {
	id, ok := p.(*IdentifierPatcher)
	return ok && !id.isBound()
}
