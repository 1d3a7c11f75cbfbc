// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

// An ExistsOpPatcher turns a ? b into a conditional that evaluates a
// once.
type ExistsOpPatcher struct {
	*NodePatcher
	left, right Patcher
}

func newExistsOp(b *NodePatcher) Patcher {
	return &ExistsOpPatcher{NodePatcher: b, left: b.child("left"), right: b.child("right")}
}

func (p *ExistsOpPatcher) PatchAsExpression() {
	lb := p.left.base()
	mark := p.mark()
	var guard, value string
	if id, ok := p.left.(*IdentifierPatcher); ok {
		lb.Patch()
		value = id.name
		if id.isBound() {
			guard = value + " != null"
		} else {
			guard = p.typeofCheck(value)
		}
	} else {
		value = lb.PatchRepeatable(repeatOptions{ForceRepeat: true})
		guard = p.slice(lb.OuterStart, lb.OuterEnd, mark) + " != null"
	}
	alt := p.right.base().PatchAndGetCode()
	p.collapse(p.ContentStart, p.ContentEnd, mark, guard+" ? "+value+" : "+alt)
}

// A UnaryExistsOpPatcher turns a? into a test against null and
// undefined.
type UnaryExistsOpPatcher struct {
	*NodePatcher
	expression Patcher
	not        bool
}

func newUnaryExistsOp(b *NodePatcher) Patcher {
	return &UnaryExistsOpPatcher{NodePatcher: b, expression: b.child("expression")}
}

func (p *UnaryExistsOpPatcher) negate() {
	p.not = !p.not
}

func (p *UnaryExistsOpPatcher) PatchAsExpression() {
	mark := p.mark()
	code := p.expression.base().PatchAndGetCode()
	var test string
	switch {
	case isUnboundIdentifier(p.expression) && p.not:
		p.suggest(ShortenNullChecks)
		test = "typeof " + code + ` === "undefined" || ` + code + " === null"
	case isUnboundIdentifier(p.expression):
		test = p.typeofCheck(code)
	case p.not:
		test = code + " == null"
	default:
		test = code + " != null"
	}
	p.collapse(p.ContentStart, p.ContentEnd, mark, test)
}
