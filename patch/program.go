// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"strings"

	"github.com/decaffeinate/decaf/edit"
	"github.com/decaffeinate/decaf/syntax"
)

// A ProgramPatcher patches the root of the tree. Besides the body, it
// converts comments, declares the program's hoisted variables and
// appends the helper functions the body registered.
type ProgramPatcher struct {
	*NodePatcher
	body *BlockPatcher
}

func newProgram(b *NodePatcher) Patcher {
	p := &ProgramPatcher{NodePatcher: b}
	p.body, _ = b.child("body").(*BlockPatcher)
	return p
}

func (p *ProgramPatcher) PatchAsExpression() {
	if p.body != nil {
		p.body.Patch()
		declareHoisted(p.NodePatcher, p.body)
	}
	p.patchComments()
	p.appendHelpers()
}

func (p *ProgramPatcher) patchComments() {
	for _, i := range p.s.toks.Comments() {
		t := p.token(i)
		if t.Kind == syntax.HERECOMMENT {
			p.tryOverwrite(t.Start, t.Start+3, "/*")
			p.tryOverwrite(t.End-3, t.End, "*/")
		} else {
			p.tryOverwrite(t.Start, t.Start+1, "//")
		}
	}
}

// tryOverwrite overwrites [start,end) unless it lies inside text that
// was already replaced wholesale.
func (p *ProgramPatcher) tryOverwrite(start, end int, text string) {
	defer func() {
		if e := recover(); e != nil {
			if _, ok := e.(*edit.ConflictError); !ok {
				panic(e)
			}
		}
	}()
	p.Overwrite(start, end, text)
}

func (p *ProgramPatcher) appendHelpers() {
	if len(p.s.helpers) == 0 {
		return
	}
	if !strings.HasSuffix(p.s.src, "\n") {
		p.s.buf.Append("\n")
	}
	for _, h := range p.s.helpers {
		p.s.buf.Append("\n" + h.code + "\n")
	}
}

// declareHoisted declares the variables hoisted to the scope of body
// before its first statement.
func declareHoisted(p *NodePatcher, body *BlockPatcher) {
	names := body.scope().hoisted
	if len(names) == 0 || len(body.statements) == 0 {
		return
	}
	decl := p.s.opts.declKeyword(false) + " " + strings.Join(names, ", ") + ";"
	first := body.statements[0].base().OuterStart
	if body.inline() {
		decl += " "
	} else {
		decl += "\n" + p.indentAt(first)
	}
	p.Prepend(first, decl)
}

// A BlockPatcher patches a list of statements. Braces around the block
// are the business of the construct that owns it.
type BlockPatcher struct {
	*NodePatcher
	block      *syntax.Block
	statements []Patcher
}

func newBlock(b *NodePatcher) Patcher {
	p := &BlockPatcher{
		NodePatcher: b,
		block:       b.Node.(*syntax.Block),
		statements:  b.children("statements"),
	}
	if n := len(p.statements); n > 0 {
		p.ContentStart = p.statements[0].base().OuterStart
		p.ContentEnd = p.statements[n-1].base().OuterEnd
		p.OuterStart, p.OuterEnd = p.ContentStart, p.ContentEnd
	}
	p.statement = true
	return p
}

func (p *BlockPatcher) Initialize() {
	for _, s := range p.statements {
		s.base().statement = true
	}
}

func (p *BlockPatcher) inline() bool {
	return p.block.Inline
}

func (p *BlockPatcher) empty() bool {
	return len(p.statements) == 0
}

// indent returns the indentation of the statements of the block.
func (p *BlockPatcher) indent() string {
	return p.indentAt(p.ContentStart)
}

func (p *BlockPatcher) PatchAsStatement() {
	for _, s := range p.statements {
		s.base().Patch()
		if s.needsSemicolon() && s.base().nextTokenAfter().Kind != syntax.SEMICOLON {
			p.Insert(s.base().OuterEnd, ";")
		}
	}
}

// PatchAsExpression writes the statements as a comma sequence.
func (p *BlockPatcher) PatchAsExpression() {
	n := len(p.statements)
	if n == 0 {
		p.Insert(p.ContentStart, "undefined")
		return
	}
	if n > 1 {
		p.Insert(p.ContentStart, "(")
	}
	for i, s := range p.statements {
		sb := s.base()
		sb.statement = false
		sb.Patch()
		if i < n-1 {
			p.Overwrite(sb.OuterEnd, p.statements[i+1].base().OuterStart, ", ")
		}
	}
	if n > 1 {
		p.Insert(p.ContentEnd, ")")
	}
}

func (p *BlockPatcher) isExpressible() bool {
	if len(p.statements) == 0 {
		return false
	}
	for _, s := range p.statements {
		if !s.isExpressible() {
			return false
		}
	}
	return true
}

func (p *BlockPatcher) markImplicitReturn() {
	if n := len(p.statements); n > 0 {
		p.statements[n-1].markImplicitReturn()
	}
}

// patchBraced patches the block as the body of a construct whose header
// ends at headerEnd, adding braces. An inline block reads { a; }, an
// indented one closes on its own line at the indentation of the header.
// If the header ends with "then", the brace replaces it.
func (p *BlockPatcher) patchBraced(headerEnd int, indent string) {
	p.openBrace(headerEnd)
	if p.empty() {
		return
	}
	p.Patch()
	p.Insert(p.ContentEnd, p.closeBrace(indent))
}

// openBrace inserts the opening brace of the block. An empty block
// gets both braces.
func (p *BlockPatcher) openBrace(headerEnd int) {
	if p.empty() {
		p.Insert(headerEnd, " {}")
		return
	}
	if i := p.s.toks.FirstBetween(headerEnd, p.ContentStart, syntax.Is(syntax.THEN)); i >= 0 {
		t := p.token(i)
		p.Overwrite(t.Start, t.End, "{")
		return
	}
	p.Insert(headerEnd, " {")
}

func (p *BlockPatcher) closeBrace(indent string) string {
	if p.inline() {
		return " }"
	}
	return "\n" + indent + "}"
}
