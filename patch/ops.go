// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import "github.com/decaffeinate/decaf/syntax"

// operatorToken returns the operator token between the operands left
// and right.
func (p *NodePatcher) operatorToken(left, right Patcher, kinds ...syntax.Kind) syntax.Token {
	return p.findToken(left.base().OuterEnd, right.base().OuterStart, kinds...)
}

// needsOperandParens reports whether the code for p must be
// parenthesized to be the operand of a prefix operator.
func needsOperandParens(p Patcher) bool {
	if isPrimary(p) || p.base().soakContainer {
		// Soak containers parenthesize themselves here.
		return false
	}
	switch p.(type) {
	case *UnaryOpPatcher, *LogicalNotOpPatcher, *UpdateOpPatcher:
		return false
	}
	return true
}

// patchOperand patches p as the operand of a prefix operator.
func patchOperand(p Patcher) {
	b := p.base()
	if !needsOperandParens(p) {
		b.Patch()
		return
	}
	b.Insert(b.OuterStart, "(")
	b.Patch()
	b.Insert(b.OuterEnd, ")")
}

// invertedComparisons maps each ordering operator to its negation,
// which differs from it only for NaN.
var invertedComparisons = map[string]string{
	"<":  ">=",
	">":  "<=",
	"<=": ">",
	">=": "<",
}

// A BinaryOpPatcher patches the operators JavaScript shares with
// CoffeeScript.
type BinaryOpPatcher struct {
	*NodePatcher
	left, right Patcher
	op          string
	inverted    bool
}

func newBinaryOp(b *NodePatcher) Patcher {
	return &BinaryOpPatcher{
		NodePatcher: b,
		left:        b.child("left"),
		right:       b.child("right"),
		op:          b.Node.(*syntax.BinaryOp).Op,
	}
}

func (p *BinaryOpPatcher) negate() {
	if inv, ok := invertedComparisons[p.op]; ok && p.s.opts.LooseComparisonNegation {
		p.op = inv
		p.inverted = !p.inverted
		return
	}
	p.NodePatcher.negate()
}

func (p *BinaryOpPatcher) PatchAsExpression() {
	p.left.base().Patch()
	if p.inverted {
		t := p.operatorToken(p.left, p.right, syntax.OPERATOR)
		p.Overwrite(t.Start, t.End, p.op)
	}
	p.right.base().Patch()
}

// An EqualityOpPatcher makes equality strict.
type EqualityOpPatcher struct {
	*NodePatcher
	left, right Patcher
	equal       bool
}

func newEqualityOp(b *NodePatcher) Patcher {
	op := b.Node.(*syntax.EqualityOp).Op
	return &EqualityOpPatcher{
		NodePatcher: b,
		left:        b.child("left"),
		right:       b.child("right"),
		equal:       op == "==" || op == "is",
	}
}

func (p *EqualityOpPatcher) negate() {
	p.equal = !p.equal
}

func (p *EqualityOpPatcher) PatchAsExpression() {
	p.left.base().Patch()
	t := p.operatorToken(p.left, p.right, syntax.OPERATOR, syntax.IS, syntax.ISNT)
	if p.equal {
		p.Overwrite(t.Start, t.End, "===")
	} else {
		p.Overwrite(t.Start, t.End, "!==")
	}
	p.right.base().Patch()
}

// A LogicalOpPatcher spells and and or as && and ||.
type LogicalOpPatcher struct {
	*NodePatcher
	left, right Patcher
}

func newLogicalOp(b *NodePatcher) Patcher {
	return &LogicalOpPatcher{NodePatcher: b, left: b.child("left"), right: b.child("right")}
}

func (p *LogicalOpPatcher) PatchAsExpression() {
	p.left.base().Patch()
	t := p.operatorToken(p.left, p.right, syntax.AND, syntax.OR, syntax.OPERATOR)
	switch t.Kind {
	case syntax.AND:
		p.Overwrite(t.Start, t.End, "&&")
	case syntax.OR:
		p.Overwrite(t.Start, t.End, "||")
	}
	p.right.base().Patch()
}

// A FloorDivideOpPatcher turns a // b into Math.floor(a / b).
type FloorDivideOpPatcher struct {
	*NodePatcher
	left, right Patcher
}

func newFloorDivideOp(b *NodePatcher) Patcher {
	return &FloorDivideOpPatcher{NodePatcher: b, left: b.child("left"), right: b.child("right")}
}

func (p *FloorDivideOpPatcher) PatchAsExpression() {
	p.Insert(p.ContentStart, "Math.floor(")
	p.left.base().Patch()
	t := p.operatorToken(p.left, p.right, syntax.OPERATOR)
	p.Overwrite(t.Start, t.End, "/")
	p.right.base().Patch()
	p.Insert(p.ContentEnd, ")")
}

const modHelper = `function __mod__(a, b) {
  a = +a;
  b = +b;
  return (a % b + b) % b;
}`

// A ModuloOpPatcher turns a %% b into a call of the __mod__ helper.
type ModuloOpPatcher struct {
	*NodePatcher
	left, right Patcher
}

func newModuloOp(b *NodePatcher) Patcher {
	return &ModuloOpPatcher{NodePatcher: b, left: b.child("left"), right: b.child("right")}
}

func (p *ModuloOpPatcher) PatchAsExpression() {
	p.registerHelper("__mod__", modHelper)
	lb, rb := p.left.base(), p.right.base()
	p.Insert(p.ContentStart, "__mod__(")
	lb.Patch()
	p.Overwrite(lb.OuterEnd, rb.OuterStart, ", ")
	rb.Patch()
	p.Insert(p.ContentEnd, ")")
}

// An InOpPatcher turns a membership test a in b into a call of
// includes.
type InOpPatcher struct {
	*NodePatcher
	left, right Patcher
	not         bool
}

func newInOp(b *NodePatcher) Patcher {
	return &InOpPatcher{
		NodePatcher: b,
		left:        b.child("left"),
		right:       b.child("right"),
		not:         b.Node.(*syntax.InOp).Negated,
	}
}

func (p *InOpPatcher) negate() {
	p.not = !p.not
}

func (p *InOpPatcher) PatchAsExpression() {
	mark := p.mark()
	if !p.left.IsRepeatable() {
		p.suggest(FixIncludesOrder)
	}
	elem := p.left.base().PatchAndGetCode()
	list := p.right.base().PatchAndGetCode()
	var recv string
	_, literal := p.right.(*ArrayInitialiserPatcher)
	switch {
	case literal:
		recv = list
	case p.s.opts.LooseIncludes:
		recv = list
		if !isPrimary(p.right) {
			recv = "(" + list + ")"
		}
	default:
		p.suggest(RemoveArrayFrom)
		recv = "Array.from(" + list + ")"
	}
	code := recv + ".includes(" + elem + ")"
	if p.not {
		code = "!" + code
	}
	p.collapse(p.ContentStart, p.ContentEnd, mark, code)
}

// A relationOpPatcher patches of and instanceof, which JavaScript
// spells in and instanceof, and their negated forms.
type relationOpPatcher struct {
	*NodePatcher
	left, right Patcher
	keyword     syntax.Kind
	js          string
	not         bool
}

func newOfOp(b *NodePatcher) Patcher {
	return &relationOpPatcher{
		NodePatcher: b,
		left:        b.child("left"),
		right:       b.child("right"),
		keyword:     syntax.OF,
		js:          "in",
		not:         b.Node.(*syntax.OfOp).Negated,
	}
}

func newInstanceofOp(b *NodePatcher) Patcher {
	return &relationOpPatcher{
		NodePatcher: b,
		left:        b.child("left"),
		right:       b.child("right"),
		keyword:     syntax.INSTANCEOF,
		js:          "instanceof",
		not:         b.Node.(*syntax.InstanceofOp).Negated,
	}
}

func (p *relationOpPatcher) negate() {
	p.not = !p.not
}

func (p *relationOpPatcher) PatchAsExpression() {
	if p.not {
		if p.isSurroundedByParentheses() {
			p.Insert(p.OuterStart, "!")
		} else {
			p.Insert(p.ContentStart, "!(")
		}
	}
	p.left.base().Patch()
	kw := p.operatorToken(p.left, p.right, p.keyword)
	start := kw.Start
	if i := p.s.toks.FirstBetween(p.left.base().OuterEnd, kw.Start, syntax.Is(syntax.NOT)); i >= 0 {
		start = p.token(i).Start
	}
	p.Overwrite(start, kw.End, p.js)
	p.right.base().Patch()
	if p.not && !p.isSurroundedByParentheses() {
		p.Insert(p.ContentEnd, ")")
	}
}

// A UnaryOpPatcher patches -, +, ~, typeof and delete.
type UnaryOpPatcher struct {
	*NodePatcher
	expression Patcher
}

func newUnaryOp(b *NodePatcher) Patcher {
	return &UnaryOpPatcher{NodePatcher: b, expression: b.child("expression")}
}

func (p *UnaryOpPatcher) PatchAsExpression() {
	patchOperand(p.expression)
}

// A LogicalNotOpPatcher patches ! and not. Negating it drops the
// operator.
type LogicalNotOpPatcher struct {
	*NodePatcher
	expression Patcher
	dropped    bool
}

func newLogicalNotOp(b *NodePatcher) Patcher {
	return &LogicalNotOpPatcher{NodePatcher: b, expression: b.child("expression")}
}

func (p *LogicalNotOpPatcher) negate() {
	p.dropped = !p.dropped
}

func (p *LogicalNotOpPatcher) PatchAsExpression() {
	eb := p.expression.base()
	if p.dropped {
		p.Remove(p.ContentStart, eb.OuterStart)
		eb.Patch()
		return
	}
	if op, ok := p.expression.(*BinaryOpPatcher); ok && p.s.opts.LooseComparisonNegation {
		if _, ok := invertedComparisons[op.op]; ok {
			p.Remove(p.ContentStart, eb.OuterStart)
			op.negate()
			eb.Patch()
			return
		}
	}
	if t := p.token(p.ContentStartTokenIndex); t.Kind == syntax.NOT {
		p.Overwrite(t.Start, eb.OuterStart, "!")
	}
	patchOperand(p.expression)
}

// An UpdateOpPatcher patches ++ and --.
type UpdateOpPatcher struct {
	*NodePatcher
	expression Patcher
}

func newUpdateOp(b *NodePatcher) Patcher {
	return &UpdateOpPatcher{NodePatcher: b, expression: b.child("expression")}
}

func (p *UpdateOpPatcher) Initialize() {
	if isSoaked(p.expression) {
		p.errorf("cannot use %s on a soaked expression", p.Node.(*syntax.UpdateOp).Op)
	}
}

func (p *UpdateOpPatcher) PatchAsExpression() {
	if id, ok := p.expression.(*IdentifierPatcher); ok && p.scope().IsDeclaredBy(id.name, p.Node) {
		p.scope().hoist(id.name)
	}
	p.expression.base().Patch()
}

// A SeqOpPatcher patches (a; b) as a comma expression.
type SeqOpPatcher struct {
	*NodePatcher
	left, right Patcher
}

func newSeqOp(b *NodePatcher) Patcher {
	return &SeqOpPatcher{NodePatcher: b, left: b.child("left"), right: b.child("right")}
}

func (p *SeqOpPatcher) PatchAsExpression() {
	p.left.base().Patch()
	t := p.operatorToken(p.left, p.right, syntax.SEMICOLON)
	p.Overwrite(t.Start, t.End, ",")
	p.right.base().Patch()
}
