// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"strconv"
	"strings"

	"github.com/decaffeinate/decaf/syntax"
)

type IdentifierPatcher struct {
	*NodePatcher
	name string
}

func newIdentifier(b *NodePatcher) Patcher {
	return &IdentifierPatcher{NodePatcher: b, name: b.Node.(*syntax.Identifier).Name}
}

func (p *IdentifierPatcher) IsRepeatable() bool { return true }

// isBound reports whether some scope declares the identifier.
func (p *IdentifierPatcher) isBound() bool {
	return p.scope().GetBinding(p.name) != nil
}

// A LiteralPatcher patches numbers, strings, regular expressions,
// null and undefined, all of which are valid JavaScript as written.
type LiteralPatcher struct {
	*NodePatcher
}

func newLiteral(b *NodePatcher) Patcher {
	return &LiteralPatcher{b}
}

func (p *LiteralPatcher) IsRepeatable() bool { return true }

func (p *LiteralPatcher) PatchAsExpression() {
	if _, ok := p.Node.(*syntax.String); ok {
		p.foldLines(p.ContentStart+1, p.ContentEnd-1)
	}
}

// foldLines joins the lines of the string text in [start,end) with
// single spaces, dropping the white space around each line break.
// A backslash at the end of a line joins it to the next with no space.
func (p *NodePatcher) foldLines(start, end int) {
	text := p.s.src[start:end]
	isSpace := func(c byte) bool { return c == ' ' || c == '\t' || c == '\r' }
	last := 0 // end of the previous edit
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			if i+1 < len(text) && text[i+1] == '\n' {
				j := i + 2
				for j < len(text) && isSpace(text[j]) {
					j++
				}
				p.Remove(start+i, start+j)
				i, last = j-1, j
				continue
			}
			i++
		case '\n':
			lo := i
			for lo > last && isSpace(text[lo-1]) {
				lo--
			}
			hi := i + 1
			for hi < len(text) && (isSpace(text[hi]) || text[hi] == '\n') {
				hi++
			}
			p.Overwrite(start+lo, start+hi, " ")
			i, last = hi-1, hi
		}
	}
}

type BoolPatcher struct {
	*LiteralPatcher
}

func newBool(b *NodePatcher) Patcher {
	return &BoolPatcher{&LiteralPatcher{b}}
}

func (p *BoolPatcher) PatchAsExpression() {
	n := p.Node.(*syntax.Bool)
	if n.Raw != "true" && n.Raw != "false" {
		p.Overwrite(p.ContentStart, p.ContentEnd, strconv.FormatBool(n.Value))
	}
}

// A TemplateLiteralPatcher turns an interpolated string into a
// template literal.
type TemplateLiteralPatcher struct {
	*NodePatcher
	expressions []Patcher
}

func newTemplateLiteral(b *NodePatcher) Patcher {
	return &TemplateLiteralPatcher{NodePatcher: b, expressions: b.children("expressions")}
}

func (p *TemplateLiteralPatcher) PatchAsExpression() {
	n := p.Node.(*syntax.TemplateLiteral)
	p.Overwrite(p.ContentStart, p.ContentStart+1, "`")
	for _, q := range n.Quasis {
		p.escapeQuasi(q)
		p.foldLines(q.Lo, q.Hi)
	}
	prev := p.ContentStart
	for _, e := range p.expressions {
		eb := e.base()
		i := p.s.toks.LastBetween(prev, eb.OuterStart, syntax.Is(syntax.INTERP_START))
		if i < 0 {
			p.errorf("internal error: missing interpolation start")
		}
		t := p.token(i)
		p.Overwrite(t.Start, t.End, "${")
		eb.Patch()
		prev = eb.OuterEnd
	}
	p.Overwrite(p.ContentEnd-1, p.ContentEnd, "`")
}

// escapeQuasi escapes the characters of a string part that are special
// in template literals.
func (p *TemplateLiteralPatcher) escapeQuasi(q syntax.Span) {
	text := p.s.src[q.Lo:q.Hi]
	for i := 0; i < len(text); i++ {
		switch {
		case text[i] == '\\':
			i++
		case text[i] == '`':
			p.Insert(q.Lo+i, `\`)
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			p.Insert(q.Lo+i, `\`)
		}
	}
}

// A JavaScriptPatcher strips the backticks from embedded JavaScript.
type JavaScriptPatcher struct {
	*NodePatcher
}

func newJavaScript(b *NodePatcher) Patcher {
	return &JavaScriptPatcher{b}
}

func (p *JavaScriptPatcher) PatchAsExpression() {
	p.Remove(p.ContentStart, p.ContentStart+1)
	p.Remove(p.ContentEnd-1, p.ContentEnd)
}

type ThisPatcher struct {
	*NodePatcher
}

func newThis(b *NodePatcher) Patcher {
	return &ThisPatcher{b}
}

func (p *ThisPatcher) IsRepeatable() bool { return true }

func (p *ThisPatcher) PatchAsExpression() {
	if p.Node.(*syntax.This).Shorthand {
		p.Overwrite(p.ContentStart, p.ContentEnd, "this")
	}
}

// A SuperPatcher rewrites super in a method to a call of the method
// of the same name on the parent class.
type SuperPatcher struct {
	*NodePatcher
}

func newSuper(b *NodePatcher) Patcher {
	return &SuperPatcher{b}
}

func (p *SuperPatcher) PatchAsExpression() {
	var method string
	var ctor bool
	for q := p.parent; q != nil && method == "" && !ctor; q = q.base().parent {
		switch q := q.(type) {
		case *ConstructorPatcher:
			ctor = true
		case *ClassAssignOpPatcher:
			method = q.superAccess()
		}
	}
	if method == "" && !ctor {
		p.errorf("cannot use super outside of a class method")
	}
	called := false
	if call, ok := p.parent.(*FunctionApplicationPatcher); ok && call.fn == Patcher(p) {
		called = true
	}
	switch {
	case ctor && !called:
		p.Insert(p.ContentEnd, "(...arguments)")
	case !ctor && called:
		p.Insert(p.ContentEnd, method)
	case !ctor:
		p.Insert(p.ContentEnd, method+"(...arguments)")
	}
}

type ArrayInitialiserPatcher struct {
	*NodePatcher
	members []Patcher
}

func newArrayInitialiser(b *NodePatcher) Patcher {
	return &ArrayInitialiserPatcher{NodePatcher: b, members: b.children("members")}
}

func (p *ArrayInitialiserPatcher) PatchAsExpression() {
	patchList(p.NodePatcher, p.members)
}

// patchList patches the elements of a list written one per line,
// adding the commas that may be left out between lines.
func patchList(p *NodePatcher, elems []Patcher) {
	for i, e := range elems {
		eb := e.base()
		eb.Patch()
		if i+1 < len(elems) && !p.hasToken(eb.OuterEnd, elems[i+1].base().OuterStart, syntax.COMMA) {
			p.Insert(eb.OuterEnd, ",")
		}
	}
}

type ObjectInitialiserPatcher struct {
	*NodePatcher
	members  []Patcher
	implicit bool
}

func newObjectInitialiser(b *NodePatcher) Patcher {
	return &ObjectInitialiserPatcher{
		NodePatcher: b,
		members:     b.children("members"),
		implicit:    b.Node.(*syntax.ObjectInitialiser).Implicit,
	}
}

func (p *ObjectInitialiserPatcher) PatchAsExpression() {
	if p.implicit {
		p.Insert(p.ContentStart, "{")
	}
	patchList(p.NodePatcher, p.members)
	if p.implicit {
		p.Insert(p.ContentEnd, "}")
	}
}

// PatchAsStatement parenthesizes the object so that its brace does not
// read as the start of a block.
func (p *ObjectInitialiserPatcher) PatchAsStatement() {
	p.Insert(p.ContentStart, "(")
	p.PatchAsExpression()
	p.Insert(p.ContentEnd, ")")
}

type ObjectMemberPatcher struct {
	*NodePatcher
	key, expression Patcher
}

func newObjectMember(b *NodePatcher) Patcher {
	return &ObjectMemberPatcher{NodePatcher: b, key: b.child("key"), expression: b.child("expression")}
}

func (p *ObjectMemberPatcher) PatchAsExpression() {
	kb := p.key.base()
	if m, ok := p.key.(*MemberAccessPatcher); ok && m.isThisShorthand() {
		name := m.member.name
		if p.expression == nil {
			p.Overwrite(kb.ContentStart, kb.ContentEnd, name+": this."+name)
		} else {
			p.Overwrite(kb.ContentStart, kb.ContentEnd, name)
		}
	}
	if p.expression != nil {
		p.expression.base().Patch()
	}
}

// maxLiteralRange is the longest range written out as an array literal.
const maxLiteralRange = 20

const rangeHelper = `function __range__(left, right, inclusive) {
  let range = [];
  let ascending = left < right;
  let end = !inclusive ? right : ascending ? right + 1 : right - 1;
  for (let i = left; ascending ? i < end : i > end; ascending ? i++ : i--) {
    range.push(i);
  }
  return range;
}`

type RangePatcher struct {
	*NodePatcher
	left, right Patcher
	inclusive   bool
}

func newRange(b *NodePatcher) Patcher {
	return &RangePatcher{
		NodePatcher: b,
		left:        b.child("left"),
		right:       b.child("right"),
		inclusive:   b.Node.(*syntax.Range).Inclusive,
	}
}

func (p *RangePatcher) PatchAsExpression() {
	n := p.Node.(*syntax.Range)
	if elems, ok := literalRange(n.Left, n.Right, p.inclusive); ok {
		strs := make([]string, len(elems))
		for i, v := range elems {
			strs[i] = strconv.Itoa(v)
		}
		p.Overwrite(p.ContentStart, p.ContentEnd, "["+strings.Join(strs, ", ")+"]")
		return
	}
	p.registerHelper("__range__", rangeHelper)
	lb, rb := p.left.base(), p.right.base()
	p.Overwrite(p.ContentStart, lb.OuterStart, "__range__(")
	lb.Patch()
	p.Overwrite(lb.OuterEnd, rb.OuterStart, ", ")
	rb.Patch()
	p.Overwrite(rb.OuterEnd, p.ContentEnd, ", "+strconv.FormatBool(p.inclusive)+")")
}

// literalRange returns the elements of a range with integer literal
// bounds, if it is short enough to write out.
func literalRange(left, right syntax.Node, inclusive bool) ([]int, bool) {
	a, ok1 := intLiteral(left)
	b, ok2 := intLiteral(right)
	if !ok1 || !ok2 {
		return nil, false
	}
	step := 1
	if b < a {
		step = -1
	}
	n := (b-a)*step + 1
	if !inclusive {
		n--
	}
	if n > maxLiteralRange {
		return nil, false
	}
	elems := []int{}
	for i, v := 0, a; i < n; i, v = i+1, v+step {
		elems = append(elems, v)
	}
	return elems, true
}

// intLiteral returns the value of a decimal integer literal,
// possibly negated.
func intLiteral(n syntax.Node) (int, bool) {
	switch n := n.(type) {
	case *syntax.Number:
		v, err := strconv.Atoi(n.Raw)
		return v, err == nil
	case *syntax.UnaryOp:
		if v, ok := intLiteral(n.Expression); ok && n.Op == "-" {
			return -v, true
		}
	}
	return 0, false
}

// A SpreadPatcher moves the ... of a splat to the front.
type SpreadPatcher struct {
	*NodePatcher
	expression Patcher
}

func newSpread(b *NodePatcher) Patcher {
	return &SpreadPatcher{NodePatcher: b, expression: b.child("expression")}
}

func (p *SpreadPatcher) PatchAsExpression() {
	p.Insert(p.ContentStart, "...")
	eb := p.expression.base()
	eb.Patch()
	p.Remove(p.ContentEnd-3, p.ContentEnd)
}
