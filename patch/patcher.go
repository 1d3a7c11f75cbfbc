// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"fmt"
	"strings"

	"github.com/decaffeinate/decaf/edit"
	"github.com/decaffeinate/decaf/syntax"
)

// A Patcher rewrites the source of one syntax node.
//
// Every concrete patcher embeds *NodePatcher, which supplies default
// behavior for the methods a patcher does not override. Calls that
// must reach the concrete patcher go through NodePatcher.self.
type Patcher interface {
	base() *NodePatcher

	// Initialize runs once after the whole tree is built,
	// children before parents.
	Initialize()

	// PatchAsExpression and PatchAsStatement queue the edits for the
	// node in a context that needs a value or one that does not.
	PatchAsExpression()
	PatchAsStatement()

	// IsRepeatable reports whether the generated code may be evaluated
	// more than once without changing the meaning of the program.
	IsRepeatable() bool

	// isExpressible reports whether the node can be written as a
	// JavaScript expression without wrapping it in a function.
	isExpressible() bool

	// markImplicitReturn records that the value of the node is the
	// implicit result of the enclosing function.
	markImplicitReturn()

	// implicitReturnWrap reports the text that surrounds a value
	// implicitly returned to the node, if the node receives them.
	implicitReturnWrap() (prefix, suffix string, ok bool)

	// negate arranges for the node to produce the logical negation
	// of its value.
	negate()

	// needsSemicolon reports whether the node, once patched as a
	// statement of a block, must be followed by a semicolon.
	needsSemicolon() bool
}

// A NodePatcher holds the state common to all patchers.
type NodePatcher struct {
	Node syntax.Node

	self   Patcher
	parent Patcher
	kind   string
	s      *session
	slots  []patcherSlot

	// ContentStart and ContentEnd are the bounds of the node itself.
	// OuterStart and OuterEnd include any balanced parentheses
	// wrapped around it.
	ContentStart, ContentEnd int
	OuterStart, OuterEnd     int

	// Token indexes of the first and last tokens of the content
	// and outer ranges, or -1 for an empty node.
	ContentStartTokenIndex, ContentEndTokenIndex int
	OuterStartTokenIndex, OuterEndTokenIndex     int

	statement         bool // a statement of a block
	implicitlyReturns bool // the value is returned to an ancestor
	explicitlyReturns bool // contains a return of the enclosing function
	negated           bool
	iife              bool // wrapped in an immediately invoked arrow function
	soakContainer     bool // closes the guard of a soaked access
	patched           bool
	asStatement       bool // patched by PatchAsStatement
}

type patcherSlot struct {
	name     string
	patchers []Patcher
}

// A session is the state shared by the patchers of one stage run.
type session struct {
	src         string
	toks        *syntax.TokenList
	buf         *edit.Buffer
	opts        *Options
	scopes      map[syntax.Node]*Scope
	suggestions []Suggestion
	helpers     []helper
}

type helper struct {
	name, code string
}

func (p *NodePatcher) base() *NodePatcher { return p }

// Parent returns the patcher of the parent node, or nil for the root.
func (p *NodePatcher) Parent() Patcher { return p.parent }

// child returns the patcher in the named single-node slot, or nil.
func (p *NodePatcher) child(name string) Patcher {
	for _, s := range p.slots {
		if s.name == name && len(s.patchers) > 0 {
			return s.patchers[0]
		}
	}
	return nil
}

// children returns the patchers in the named list slot.
func (p *NodePatcher) children(name string) []Patcher {
	for _, s := range p.slots {
		if s.name == name {
			return s.patchers
		}
	}
	return nil
}

// allChildren returns the patchers of all children in source order.
func (p *NodePatcher) allChildren() []Patcher {
	var out []Patcher
	for _, s := range p.slots {
		out = append(out, s.patchers...)
	}
	return out
}

func (p *NodePatcher) Initialize() {}

// PatchAsExpression patches the children in order.
func (p *NodePatcher) PatchAsExpression() {
	for _, c := range p.allChildren() {
		c.base().Patch()
	}
}

func (p *NodePatcher) PatchAsStatement() {
	p.self.PatchAsExpression()
}

func (p *NodePatcher) IsRepeatable() bool { return false }

func (p *NodePatcher) isExpressible() bool { return true }

func (p *NodePatcher) markImplicitReturn() {
	p.implicitlyReturns = true
}

func (p *NodePatcher) implicitReturnWrap() (prefix, suffix string, ok bool) {
	if p.iife {
		return "return ", "", true
	}
	return "", "", false
}

func (p *NodePatcher) negate() {
	p.negated = !p.negated
}

func (p *NodePatcher) needsSemicolon() bool { return true }

// Patch queues the edits for the node. It runs exactly once per
// patcher, parents before children.
func (p *NodePatcher) Patch() {
	if p.patched {
		errorf(p.ContentStart, p.ContentEnd, "internal error: %s patched twice", p.kind)
	}
	p.patched = true

	var returnSuffix string
	if p.implicitlyReturns {
		var prefix string
		prefix, returnSuffix = p.returnWrap()
		p.Insert(p.OuterStart, prefix)
	}
	negClose := ""
	if p.negated {
		switch {
		case p.isSurroundedByParentheses():
			p.Insert(p.OuterStart, "!")
		case isPrimary(p.self):
			p.Insert(p.ContentStart, "!")
		default:
			p.Insert(p.ContentStart, "!(")
			negClose = ")"
		}
	}
	soakClose := ""
	if p.soakContainer {
		soakClose = " : undefined"
		if !p.inSafeSoakContext() {
			p.Insert(p.ContentStart, "(")
			soakClose += ")"
		}
	}

	if p.statement && !p.implicitlyReturns {
		p.asStatement = true
		p.self.PatchAsStatement()
	} else {
		p.self.PatchAsExpression()
	}

	p.Insert(p.ContentEnd, soakClose)
	p.Insert(p.ContentEnd, negClose)
	p.Insert(p.OuterEnd, returnSuffix)
}

// PatchAndGetCode patches the node and returns its generated code.
func (p *NodePatcher) PatchAndGetCode() string {
	mark := p.s.buf.Mark()
	p.Patch()
	return p.s.buf.Slice(p.OuterStart, p.OuterEnd, mark)
}

// repeatOptions controls PatchRepeatable.
type repeatOptions struct {
	Parens      bool     // parenthesize returned code that is not primary
	Ref         []string // candidate names for a temporary
	ForceRepeat bool     // use a temporary even for repeatable code
}

// PatchRepeatable patches the node and returns code that evaluates to
// the same value and may be repeated. Unless the node is repeatable, its
// first occurrence becomes an assignment to a new temporary, whose name
// is returned.
func (p *NodePatcher) PatchRepeatable(opts repeatOptions) string {
	if !opts.ForceRepeat && p.self.IsRepeatable() {
		code := p.PatchAndGetCode()
		if opts.Parens && !isPrimary(p.self) {
			code = "(" + code + ")"
		}
		return code
	}
	name := p.claimFreeBinding(opts.Ref...)
	p.scope().hoist(name)
	p.suggest(AvoidInlineAssignments)
	p.Insert(p.OuterStart, "("+name+" = ")
	p.Patch()
	p.Insert(p.OuterEnd, ")")
	return name
}

// patchAsIIFE patches a statement construct used as a value by
// wrapping it in an arrow function that returns the value.
func (p *NodePatcher) patchAsIIFE() {
	p.iife = true
	p.suggest(AvoidIIFEs)
	p.Insert(p.ContentStart, "(() => { ")
	p.self.markImplicitReturn()
	p.self.PatchAsStatement()
	p.Insert(p.ContentEnd, " })()")
}

// returnWrap returns the text surrounding a value implicitly
// returned from p.
func (p *NodePatcher) returnWrap() (prefix, suffix string) {
	for q := p.parent; q != nil; q = q.base().parent {
		if prefix, suffix, ok := q.implicitReturnWrap(); ok {
			return prefix, suffix
		}
	}
	errorf(p.ContentStart, p.ContentEnd, "internal error: implicit return outside of a function")
	return "", ""
}

// markExplicitReturn records a return statement in every ancestor up
// to the enclosing function.
func (p *NodePatcher) markExplicitReturn() {
	for q := p.parent; q != nil; q = q.base().parent {
		if _, ok := q.(*FunctionPatcher); ok {
			return
		}
		q.base().explicitlyReturns = true
	}
}

// Edit helpers. Offsets are always offsets into the original source.

func (p *NodePatcher) Insert(offset int, text string) {
	if text != "" {
		p.s.buf.Insert(offset, text)
	}
}

func (p *NodePatcher) Prepend(offset int, text string) {
	if text != "" {
		p.s.buf.Prepend(offset, text)
	}
}

func (p *NodePatcher) Overwrite(start, end int, text string) {
	p.s.buf.Replace(start, end, text)
}

func (p *NodePatcher) Remove(start, end int) {
	p.s.buf.Delete(start, end)
}

// mark returns a marker for slice and collapse.
func (p *NodePatcher) mark() int {
	return p.s.buf.Mark()
}

// slice returns the edited text of [start,end), counting insertions at
// its bounds only if they were queued since mark.
func (p *NodePatcher) slice(start, end, mark int) string {
	return p.s.buf.Slice(start, end, mark)
}

// collapse replaces [start,end) with text, dropping the edits queued
// inside it since mark.
func (p *NodePatcher) collapse(start, end, mark int, text string) {
	p.s.buf.Collapse(start, end, mark, text)
}

// Original returns the source text of the node.
func (p *NodePatcher) Original() string {
	return p.s.src[p.ContentStart:p.ContentEnd]
}

func (p *NodePatcher) isSurroundedByParentheses() bool {
	return p.OuterStart != p.ContentStart
}

func (p *NodePatcher) scope() *Scope {
	return p.s.scopes[p.Node]
}

func (p *NodePatcher) claimFreeBinding(names ...string) string {
	return p.scope().ClaimFreeBinding(p.Node, names...)
}

func (p *NodePatcher) suggest(s Suggestion) {
	p.s.suggestions = MergeSuggestions(p.s.suggestions, []Suggestion{s})
}

func (p *NodePatcher) errorf(format string, args ...interface{}) {
	errorf(p.ContentStart, p.ContentEnd, format, args...)
}

// Token helpers.

func (p *NodePatcher) token(i int) syntax.Token {
	return p.s.toks.At(i)
}

// findToken returns the first significant token of one of the given
// kinds in [start,end), or fails.
func (p *NodePatcher) findToken(start, end int, kinds ...syntax.Kind) syntax.Token {
	i := p.s.toks.FirstBetween(start, end, syntax.Is(kinds...))
	if i < 0 {
		p.errorf("internal error: expected %v token in %q", kinds, p.s.src[start:end])
	}
	return p.token(i)
}

// hasToken reports whether [start,end) contains a token of one of the
// given kinds.
func (p *NodePatcher) hasToken(start, end int, kinds ...syntax.Kind) bool {
	return p.s.toks.FirstBetween(start, end, syntax.Is(kinds...)) >= 0
}

// hasComments reports whether [start,end) contains a comment.
func (p *NodePatcher) hasComments(start, end int) bool {
	for _, i := range p.s.toks.Comments() {
		if t := p.token(i); start <= t.Start && t.End <= end {
			return true
		}
	}
	return false
}

// nextTokenAfter returns the first significant token after the node.
func (p *NodePatcher) nextTokenAfter() syntax.Token {
	if p.OuterEndTokenIndex < 0 {
		return p.token(len(p.s.toks.Tokens) - 1)
	}
	return p.token(p.s.toks.Next(p.OuterEndTokenIndex))
}

// isMultiline reports whether [start,end) spans a line break.
func (p *NodePatcher) isMultiline(start, end int) bool {
	return strings.Contains(p.s.src[start:end], "\n")
}

// indentAt returns the indentation of the line containing offset.
func (p *NodePatcher) indentAt(offset int) string {
	return p.s.indentAt(offset)
}

func (s *session) indentAt(offset int) string {
	start := s.toks.LineStart(offset)
	end := start
	for end < len(s.src) && (s.src[end] == ' ' || s.src[end] == '\t') {
		end++
	}
	return s.src[start:end]
}

// indentUnit guesses the indentation step used by the source.
func (s *session) indentUnit() string {
	for _, t := range s.toks.Tokens {
		if t.NewLine && t.Col > 0 {
			return s.indentAt(t.Start)
		}
	}
	return "  "
}

// registerHelper arranges for the helper function code to be appended
// to the program once.
func (p *NodePatcher) registerHelper(name, code string) {
	for _, h := range p.s.helpers {
		if h.name == name {
			if h.code != code {
				p.errorf("internal error: conflicting definitions of helper %s", name)
			}
			return
		}
	}
	p.s.helpers = append(p.s.helpers, helper{name, code})
}

// computeBounds sets the token indexes and widens the outer bounds
// through balanced parentheses.
func (p *NodePatcher) computeBounds() {
	toks := p.s.toks
	p.OuterStart, p.OuterEnd = p.ContentStart, p.ContentEnd
	p.ContentStartTokenIndex, p.ContentEndTokenIndex = -1, -1
	if p.ContentStart < p.ContentEnd {
		p.ContentStartTokenIndex = toks.IndexStartingAt(p.ContentStart)
		p.ContentEndTokenIndex = toks.IndexEndingAt(p.ContentEnd)
	}
	first, last := p.ContentStartTokenIndex, p.ContentEndTokenIndex
	switch p.Node.(type) {
	case *syntax.Program, *syntax.Block:
		first, last = -1, -1
	}
	for first >= 0 && last >= 0 {
		prev, next := toks.Prev(first), toks.Next(last)
		if prev < 0 || toks.At(prev).Kind != syntax.LPAREN || toks.At(next).Kind != syntax.RPAREN || matchingParen(toks, prev) != next {
			break
		}
		first, last = prev, next
		p.OuterStart, p.OuterEnd = toks.At(prev).Start, toks.At(next).End
	}
	p.OuterStartTokenIndex, p.OuterEndTokenIndex = first, last
	if first < 0 {
		p.OuterStartTokenIndex, p.OuterEndTokenIndex = p.ContentStartTokenIndex, p.ContentEndTokenIndex
	}
}

// resetOuterBounds drops any parentheses counted in the outer bounds,
// for nodes like parameters whose parentheses belong to the parent.
func (p *NodePatcher) resetOuterBounds() {
	p.OuterStart, p.OuterEnd = p.ContentStart, p.ContentEnd
	p.OuterStartTokenIndex, p.OuterEndTokenIndex = p.ContentStartTokenIndex, p.ContentEndTokenIndex
}

// matchingParen returns the index of the ) closing the ( at index i.
func matchingParen(toks *syntax.TokenList, i int) int {
	depth := 0
	for ; i < len(toks.Tokens); i++ {
		switch toks.At(i).Kind {
		case syntax.LPAREN:
			depth++
		case syntax.RPAREN:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// isPrimary reports whether the code generated for p can be the operand
// of a prefix or member operator without parentheses.
func isPrimary(p Patcher) bool {
	b := p.base()
	if b.isSurroundedByParentheses() {
		return true
	}
	switch p := p.(type) {
	case *IdentifierPatcher, *LiteralPatcher, *ThisPatcher, *SuperPatcher,
		*ArrayInitialiserPatcher, *ObjectInitialiserPatcher, *RangePatcher,
		*MemberAccessPatcher, *DynamicMemberAccessPatcher, *SlicePatcher,
		*TemplateLiteralPatcher, *NewOpPatcher:
		return !b.soakContainer
	case *FunctionApplicationPatcher:
		return !b.soakContainer && !p.soaked
	}
	return false
}

// soakChainSlots lists, per parent kind, the child slot through which a
// soaked access extends its guard: in a?.b.c() the guard covers the
// whole chain, not just a?.b.
var soakChainSlots = map[string]string{
	"MemberAccessOp":        "expression",
	"ProtoMemberAccessOp":   "expression",
	"DynamicMemberAccessOp": "expression",
	"FunctionApplication":   "function",
	"Slice":                 "expression",
}

// findSoakContainer returns the outermost ancestor of p that a soak guard
// at p must cover.
func findSoakContainer(p Patcher) Patcher {
	for {
		b := p.base()
		if b.isSurroundedByParentheses() || b.parent == nil {
			return p
		}
		pb := b.parent.base()
		slot, ok := soakChainSlots[pb.kind]
		if !ok || pb.child(slot) != p {
			return p
		}
		p = b.parent
	}
}

// inSafeSoakContext reports whether a conditional expression can be
// written in place of p without parentheses.
func (p *NodePatcher) inSafeSoakContext() bool {
	if p.isSurroundedByParentheses() || p.parent == nil {
		return true
	}
	switch q := p.parent.(type) {
	case *BlockPatcher, *ReturnPatcher, *ThrowPatcher, *ArrayInitialiserPatcher, *TemplateLiteralPatcher:
		return true
	case *ConditionalPatcher:
		return q.asStatement && q.condition == p.self
	case *WhilePatcher:
		return q.condition == p.self
	case *SwitchPatcher:
		return q.expression == p.self
	case *AssignOpPatcher:
		return q.child("expression") == p.self
	case *ObjectMemberPatcher:
		return q.child("expression") == p.self
	case *FunctionApplicationPatcher:
		return q.child("function") != p.self
	case *NewOpPatcher:
		return q.child("ctor") != p.self
	}
	return false
}

func (p *NodePatcher) String() string {
	return fmt.Sprintf("%s[%d,%d)", p.kind, p.ContentStart, p.ContentEnd)
}
