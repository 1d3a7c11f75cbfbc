// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"strings"

	"github.com/decaffeinate/decaf/syntax"
)

// A FunctionPatcher patches -> and => functions and their generator
// forms. A class member function is patched in method mode, which drops
// the function keyword and turns bound methods into plain ones; the
// class binds them in the constructor instead.
type FunctionPatcher struct {
	*NodePatcher
	params    []Patcher
	body      *BlockPatcher // nil for an empty function
	bound     bool
	generator bool

	method bool     // written as a class method
	ctor   bool     // the class constructor, which returns nothing
	binds  []string // statements the class adds to the constructor
}

func newFunction(b *NodePatcher) Patcher {
	n := b.Node.(*syntax.Function)
	p := &FunctionPatcher{
		NodePatcher: b,
		params:      b.children("parameters"),
		bound:       n.Bound,
		generator:   n.Generator,
	}
	p.body, _ = b.child("body").(*BlockPatcher)
	for _, param := range p.params {
		param.base().resetOuterBounds()
	}
	return p
}

func (p *FunctionPatcher) Initialize() {
	for i, param := range p.params {
		if _, ok := param.(*SpreadPatcher); ok && i < len(p.params)-1 {
			param.base().errorf("a rest parameter must be the last parameter")
		}
	}
}

// arrow reports whether the function is written as an arrow function.
func (p *FunctionPatcher) arrow() bool {
	return p.bound && !p.generator && !p.method
}

func (p *FunctionPatcher) implicitReturnWrap() (prefix, suffix string, ok bool) {
	p.suggest(CleanUpImplicitReturns)
	return "return ", "", true
}

func (p *FunctionPatcher) PatchAsStatement() {
	if p.arrow() || p.method {
		p.PatchAsExpression()
		return
	}
	p.Insert(p.ContentStart, "(")
	p.PatchAsExpression()
	p.Insert(p.ContentEnd, ")")
}

func (p *FunctionPatcher) PatchAsExpression() {
	bindGenerator := p.bound && p.generator && !p.method
	if bindGenerator {
		p.Insert(p.ContentStart, "(")
	}
	headerEnd := p.patchHeader()
	prologue := append(p.patchParams(), p.binds...)

	if p.body == nil {
		if len(prologue) == 0 {
			p.Insert(headerEnd, " {}")
		} else {
			p.Insert(headerEnd, " { "+strings.Join(prologue, " ")+" }")
		}
	} else {
		p.patchBody(headerEnd, prologue)
	}

	if bindGenerator {
		p.Insert(p.ContentEnd, ".bind(this))")
	}
}

// patchHeader rewrites the parameter list and arrow and returns the
// offset where the body's opening brace goes.
func (p *FunctionPatcher) patchHeader() int {
	start := p.ContentStart
	if n := len(p.params); n > 0 {
		start = p.params[n-1].base().OuterEnd
	}
	arrow := p.findToken(start, p.ContentEnd, syntax.ARROW, syntax.FATARROW)
	hasParens := p.token(p.ContentStartTokenIndex).Kind == syntax.LPAREN

	if p.arrow() {
		if !hasParens {
			p.Insert(arrow.Start, "() ")
		}
		return arrow.End
	}
	keyword := ""
	if !p.method {
		keyword = "function"
		if p.generator {
			keyword += "*"
		}
	}
	if !hasParens {
		p.Overwrite(arrow.Start, arrow.End, keyword+"()")
		return arrow.End
	}
	p.Insert(p.ContentStart, keyword)
	rparen := p.token(p.s.toks.LastBetween(p.ContentStart, arrow.Start, syntax.Is(syntax.RPAREN)))
	p.Remove(rparen.End, arrow.End)
	return arrow.End
}

// patchParams patches the parameters and returns the statements that
// must start the body: null checks for default values and assignments
// for @name parameters.
func (p *FunctionPatcher) patchParams() []string {
	var prologue []string
	for _, param := range p.params {
		prologue = append(prologue, p.patchParam(param)...)
	}
	return prologue
}

func (p *FunctionPatcher) patchParam(param Patcher) []string {
	switch q := param.(type) {
	case *MemberAccessPatcher:
		if q.isThisShorthand() {
			name := q.member.name
			p.Overwrite(q.ContentStart, q.ContentEnd, name)
			return []string{"this." + name + " = " + name + ";"}
		}
	case *DefaultParamPatcher:
		return p.patchDefaultParam(q)
	}
	param.base().Patch()
	return nil
}

func (p *FunctionPatcher) patchDefaultParam(q *DefaultParamPatcher) []string {
	var name string
	var stmts []string
	tb := q.param.base()
	switch t := q.param.(type) {
	case *IdentifierPatcher:
		name = t.name
	case *MemberAccessPatcher:
		if t.isThisShorthand() {
			name = t.member.name
			p.Overwrite(t.ContentStart, t.ContentEnd, name)
			stmts = append(stmts, "this."+name+" = "+name+";")
		}
	}
	if name == "" {
		// Destructuring patterns keep their native default.
		q.Patch()
		return nil
	}
	db := q.value.base()
	if p.s.opts.LooseDefaultParams {
		db.Patch()
		return stmts
	}
	mark := p.mark()
	value := db.PatchAndGetCode()
	p.collapse(tb.OuterEnd, q.ContentEnd, mark, "")
	check := "if (" + name + " == null) { " + name + " = " + value + "; }"
	return append([]string{check}, stmts...)
}

// patchBody patches the body in braces, with prologue placed at its top
// or, in a constructor, right after the call of the parent constructor.
func (p *FunctionPatcher) patchBody(headerEnd int, prologue []string) {
	body := p.body
	body.openBrace(headerEnd)
	sep := " "
	if !body.inline() {
		sep = "\n" + body.indent()
	}
	if !p.ctor {
		body.markImplicitReturn()
	}
	var superCall Patcher
	if p.ctor {
		superCall = superStatement(body)
	}
	if superCall == nil {
		for _, s := range prologue {
			p.Insert(body.ContentStart, s+sep)
		}
	}
	body.Patch()
	if superCall != nil {
		end := superCall.base().OuterEnd
		for _, s := range prologue {
			p.Insert(end, sep+s)
		}
	}
	declareHoisted(p.NodePatcher, body)
	p.Insert(body.ContentEnd, body.closeBrace(p.indentAt(p.ContentStart)))
}

// superStatement returns the first statement of body that calls the
// parent constructor, or nil.
func superStatement(body *BlockPatcher) Patcher {
	for _, s := range body.statements {
		switch s := s.(type) {
		case *SuperPatcher:
			return s
		case *FunctionApplicationPatcher:
			if _, ok := s.fn.(*SuperPatcher); ok {
				return s
			}
		}
	}
	return nil
}

// A DefaultParamPatcher patches a parameter with a default value that
// is kept as a native default. Other forms are rewritten by the
// enclosing function.
type DefaultParamPatcher struct {
	*NodePatcher
	param, value Patcher
}

func newDefaultParam(b *NodePatcher) Patcher {
	return &DefaultParamPatcher{NodePatcher: b, param: b.child("param"), value: b.child("default")}
}
