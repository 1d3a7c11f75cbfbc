// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"strconv"
	"strings"

	"github.com/decaffeinate/decaf/syntax"
)

// A loopPatcher holds what while, for-in and for-of loops share.
// A loop whose value is used collects the value of each iteration's
// last statement into an array.
type loopPatcher struct {
	*NodePatcher
	body    *BlockPatcher
	guard   Patcher
	collect bool
	result  string
}

func (p *loopPatcher) Initialize() {
	if p.guard != nil {
		p.guard.negate()
	}
}

func (p *loopPatcher) isExpressible() bool { return false }

func (p *loopPatcher) needsSemicolon() bool { return false }

// markImplicitReturn makes the loop collect its values, unless the body
// returns from the function itself.
func (p *loopPatcher) markImplicitReturn() {
	if p.explicitlyReturns {
		return
	}
	p.collect = true
}

func (p *loopPatcher) implicitReturnWrap() (prefix, suffix string, ok bool) {
	if p.collect {
		return p.result + ".push(", ")", true
	}
	return p.NodePatcher.implicitReturnWrap()
}

func (p *loopPatcher) PatchAsExpression() {
	p.patchAsIIFE()
}

// openCollect declares the result array before the loop.
func (p *loopPatcher) openCollect() {
	if !p.collect {
		return
	}
	p.result = p.claimFreeBinding("result")
	p.Insert(p.ContentStart, p.s.opts.declKeyword(true)+" "+p.result+" = [];\n"+p.indentAt(p.ContentStart))
}

// closeCollect returns the result array after the loop.
func (p *loopPatcher) closeCollect() {
	if !p.collect {
		return
	}
	prefix, suffix := "return ", ""
	if !p.iife {
		prefix, suffix = p.returnWrap()
	}
	p.Insert(p.ContentEnd, "\n"+p.indentAt(p.ContentStart)+prefix+p.result+suffix+";")
}

// guardTest patches the guard and returns the statement that skips the
// iterations it rejects.
func (p *loopPatcher) guardTest() string {
	return "if (" + p.guard.base().PatchAndGetCode() + ") { continue; }"
}

// patchBody patches the loop body in braces after the header ending at
// headerEnd, starting it with the prologue statements.
func (p *loopPatcher) patchBody(headerEnd int, prologue []string) {
	body := p.body
	if body.empty() {
		if len(prologue) == 0 {
			p.Insert(headerEnd, " {}")
		} else {
			p.Insert(headerEnd, " { "+strings.Join(prologue, " ")+" }")
		}
		return
	}
	body.openBrace(headerEnd)
	sep := " "
	if !body.inline() {
		sep = "\n" + body.indent()
	}
	for _, s := range prologue {
		p.Insert(body.ContentStart, s+sep)
	}
	if p.collect {
		body.markImplicitReturn()
	}
	body.Patch()
	p.Insert(body.ContentEnd, body.closeBrace(p.indentAt(p.ContentStart)))
}

// hoistAssignees declares the loop variables in the enclosing function.
func (p *loopPatcher) hoistAssignees(assignees ...Patcher) {
	for _, a := range assignees {
		if a == nil {
			continue
		}
		for _, name := range assigneeNames(a.base().Node) {
			if p.scope().IsDeclaredBy(name, p.Node) {
				p.scope().hoist(name)
			}
		}
	}
}

// tempName claims a temporary and declares it in the enclosing function.
func (p *NodePatcher) tempName(names ...string) string {
	name := p.claimFreeBinding(names...)
	p.scope().hoist(name)
	return name
}

// A WhilePatcher patches while, until and loop.
type WhilePatcher struct {
	*loopPatcher
	condition Patcher // nil for loop
}

func newWhile(b *NodePatcher) Patcher {
	p := &WhilePatcher{
		loopPatcher: &loopPatcher{NodePatcher: b, guard: b.child("guard")},
		condition:   b.child("condition"),
	}
	p.body, _ = b.child("body").(*BlockPatcher)
	return p
}

func (p *WhilePatcher) Initialize() {
	p.loopPatcher.Initialize()
	if p.Node.(*syntax.While).Until {
		p.condition.negate()
	}
}

func (p *WhilePatcher) PatchAsStatement() {
	p.openCollect()
	kw := p.token(p.ContentStartTokenIndex)
	headerEnd := kw.End
	if p.condition == nil {
		p.Overwrite(kw.Start, kw.End, "while (true)")
	} else {
		p.patchCondition(kw, "while", p.condition)
		headerEnd = p.condition.base().OuterEnd
	}
	var prologue []string
	if p.guard != nil {
		gb := p.guard.base()
		mark := p.mark()
		prologue = append(prologue, p.guardTest())
		p.collapse(headerEnd, gb.OuterEnd, mark, "")
		headerEnd = gb.OuterEnd
	}
	p.patchBody(headerEnd, prologue)
	p.closeCollect()
}

// A ForInPatcher patches for loops over the elements of an array or a
// range.
type ForInPatcher struct {
	*loopPatcher
	valAssignee, keyAssignee Patcher
	target, step             Patcher
}

func newForIn(b *NodePatcher) Patcher {
	p := &ForInPatcher{
		loopPatcher: &loopPatcher{NodePatcher: b, guard: b.child("filter")},
		valAssignee: b.child("valAssignee"),
		keyAssignee: b.child("keyAssignee"),
		target:      b.child("target"),
		step:        b.child("step"),
	}
	p.body, _ = b.child("body").(*BlockPatcher)
	return p
}

func (p *ForInPatcher) Initialize() {
	p.loopPatcher.Initialize()
	if p.valAssignee != nil {
		checkAssignee(p.valAssignee)
	}
}

// headerEnd returns the end of the last expression of the loop header.
func (p *ForInPatcher) headerEnd() int {
	end := p.target.base().OuterEnd
	for _, q := range []Patcher{p.step, p.guard} {
		if q != nil && q.base().OuterEnd > end {
			end = q.base().OuterEnd
		}
	}
	return end
}

func (p *ForInPatcher) PatchAsStatement() {
	p.openCollect()
	p.hoistAssignees(p.valAssignee, p.keyAssignee)
	headerEnd := p.headerEnd()

	// The header is rebuilt from the patched header expressions; the
	// guard moves into the body.
	mark := p.mark()
	var header string
	var prologue []string
	if r, ok := p.target.(*RangePatcher); ok && p.keyAssignee == nil && isIdentifier(p.valAssignee) {
		header = p.rangeHeader(r)
	} else {
		header, prologue = p.arrayHeader(mark)
	}
	if p.guard != nil {
		prologue = append(prologue, p.guardTest())
	}
	p.collapse(p.ContentStart, headerEnd, mark, header)
	p.patchBody(headerEnd, prologue)
	p.closeCollect()
}

// arrayHeader returns the header of an index loop over the target and
// the statement binding the element.
func (p *ForInPatcher) arrayHeader(mark int) (string, []string) {
	var val string
	if p.valAssignee != nil {
		val = p.valAssignee.base().PatchAndGetCode()
	}
	_, objectPattern := p.valAssignee.(*ObjectInitialiserPatcher)
	if p.s.opts.LooseForLoops && p.step == nil && p.keyAssignee == nil && p.valAssignee != nil {
		return "for (" + val + " of " + p.target.base().PatchAndGetCode() + ")", nil
	}

	tb := p.target.base()
	target := tb.PatchRepeatable(repeatOptions{Parens: true})
	first := p.slice(tb.OuterStart, tb.OuterEnd, mark)
	if p.target.IsRepeatable() {
		first = target
	}

	var i string
	if p.keyAssignee != nil {
		i = p.keyAssignee.base().PatchAndGetCode()
	} else {
		i = p.tempName("i")
	}
	length := p.tempName("len")
	init := i + " = 0, " + length + " = " + first + ".length"
	test := i + " < " + length
	update := i + "++"
	if p.step != nil {
		sb := p.step.base()
		step := sb.PatchAndGetCode()
		if n, ok := intLiteral(sb.Node); ok {
			update = stepUpdate(i, n)
			if n < 0 {
				init = length + " = " + first + ".length, " + i + " = " + length + " - 1"
				test = i + " >= 0"
			}
		} else {
			p.suggest(SimplifyDynamicRangeLoops)
			s := p.tempName("step")
			init = s + " = " + step + ", " + length + " = " + first + ".length, " +
				i + " = " + s + " > 0 ? 0 : " + length + " - 1"
			test = s + " > 0 ? " + i + " < " + length + " : " + i + " >= 0"
			update = i + " += " + s
		}
	}

	var prologue []string
	if p.valAssignee != nil {
		stmt := val + " = " + target + "[" + i + "]"
		if objectPattern {
			stmt = "(" + stmt + ")"
		}
		prologue = append(prologue, stmt+";")
	}
	return "for (" + init + "; " + test + "; " + update + ")", prologue
}

// rangeHeader returns the header of a counting loop over a range.
func (p *ForInPatcher) rangeHeader(r *RangePatcher) string {
	v := p.valAssignee.base().PatchAndGetCode()
	lo, loOK := intLiteral(r.left.base().Node)
	hi, hiOK := intLiteral(r.right.base().Node)
	init := v + " = " + r.left.base().PatchAndGetCode()
	end := r.right.base().PatchAndGetCode()
	if !r.right.IsRepeatable() {
		name := p.tempName("end")
		init += ", " + name + " = " + end
		end = name
	}
	less, greater := " < ", " > "
	if r.inclusive {
		less, greater = " <= ", " >= "
	}

	step, stepCode := 0, ""
	if p.step != nil {
		sb := p.step.base()
		code := sb.PatchAndGetCode()
		if n, ok := intLiteral(sb.Node); ok {
			step = n
		} else {
			stepCode = code
		}
	}
	if step == 0 && stepCode == "" && loOK && hiOK {
		step = 1
		if lo > hi {
			step = -1
		}
	}

	switch {
	case step > 0:
		return "for (" + init + "; " + v + less + end + "; " + stepUpdate(v, step) + ")"
	case step < 0:
		return "for (" + init + "; " + v + greater + end + "; " + stepUpdate(v, step) + ")"
	case stepCode != "":
		p.suggest(SimplifyDynamicRangeLoops)
		s := p.tempName("step")
		return "for (" + init + ", " + s + " = " + stepCode + "; " +
			s + " > 0 ? " + v + less + end + " : " + v + greater + end + "; " +
			v + " += " + s + ")"
	}
	p.suggest(SimplifyDynamicRangeLoops)
	asc := p.tempName("asc")
	return "for (" + init + ", " + asc + " = " + v + " <= " + end + "; " +
		asc + " ? " + v + less + end + " : " + v + greater + end + "; " +
		asc + " ? " + v + "++ : " + v + "--)"
}

// stepUpdate returns the update clause adding n to i.
func stepUpdate(i string, n int) string {
	switch {
	case n == 1:
		return i + "++"
	case n == -1:
		return i + "--"
	case n < 0:
		return i + " -= " + strconv.Itoa(-n)
	}
	return i + " += " + strconv.Itoa(n)
}

func isIdentifier(p Patcher) bool {
	_, ok := p.(*IdentifierPatcher)
	return ok
}

// A ForOfPatcher patches for loops over the keys of an object.
type ForOfPatcher struct {
	*loopPatcher
	keyAssignee, valAssignee Patcher
	target                   Patcher
	own                      bool
}

func newForOf(b *NodePatcher) Patcher {
	p := &ForOfPatcher{
		loopPatcher: &loopPatcher{NodePatcher: b, guard: b.child("filter")},
		keyAssignee: b.child("keyAssignee"),
		valAssignee: b.child("valAssignee"),
		target:      b.child("target"),
		own:         b.Node.(*syntax.ForOf).Own,
	}
	p.body, _ = b.child("body").(*BlockPatcher)
	return p
}

func (p *ForOfPatcher) Initialize() {
	p.loopPatcher.Initialize()
	if !isIdentifier(p.keyAssignee) {
		p.keyAssignee.base().errorf("the key of a for-of loop must be a name")
	}
	if p.valAssignee != nil {
		checkAssignee(p.valAssignee)
	}
}

func (p *ForOfPatcher) PatchAsStatement() {
	p.openCollect()
	p.hoistAssignees(p.keyAssignee, p.valAssignee)
	tb := p.target.base()
	headerEnd := tb.OuterEnd
	if p.guard != nil {
		headerEnd = p.guard.base().OuterEnd
	}

	mark := p.mark()
	key := p.keyAssignee.base().PatchAndGetCode()
	var target, first string
	if p.valAssignee != nil {
		target = tb.PatchRepeatable(repeatOptions{Parens: true, Ref: []string{"obj"}})
		first = p.slice(tb.OuterStart, tb.OuterEnd, mark)
		if p.target.IsRepeatable() {
			first = target
		}
	} else {
		first = tb.PatchAndGetCode()
	}

	var header string
	if p.own {
		p.suggest(CleanUpForOwnLoops)
		header = "for (" + key + " of Object.keys(" + first + " || {}))"
	} else {
		header = "for (" + key + " in " + first + ")"
	}

	var prologue []string
	if p.valAssignee != nil {
		stmt := p.valAssignee.base().PatchAndGetCode() + " = " + target + "[" + key + "]"
		if _, ok := p.valAssignee.(*ObjectInitialiserPatcher); ok {
			stmt = "(" + stmt + ")"
		}
		prologue = append(prologue, stmt+";")
	}
	if p.guard != nil {
		prologue = append(prologue, p.guardTest())
	}
	p.collapse(p.ContentStart, headerEnd, mark, header)
	p.patchBody(headerEnd, prologue)
	p.closeCollect()
}
