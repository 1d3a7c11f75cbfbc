// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"strings"

	"github.com/decaffeinate/decaf/syntax"
)

// A ClassPatcher patches class. A class named by a property, as in
// class a.B, becomes an assignment of a class expression.
type ClassPatcher struct {
	*NodePatcher
	nameAssignee Patcher
	superclass   Patcher
	body         *ClassBlockPatcher // nil for an empty class
}

func newClass(b *NodePatcher) Patcher {
	p := &ClassPatcher{NodePatcher: b, nameAssignee: b.child("nameAssignee"), superclass: b.child("parent")}
	p.body, _ = b.child("body").(*ClassBlockPatcher)
	return p
}

// name returns the name of the class, or "" for an anonymous class.
func (p *ClassPatcher) name() string {
	switch n := p.nameAssignee.(type) {
	case *IdentifierPatcher:
		return n.name
	case *MemberAccessPatcher:
		return n.member.name
	}
	return ""
}

// assigns reports whether the class is assigned to a property.
func (p *ClassPatcher) assigns() bool {
	return p.nameAssignee != nil && !isIdentifier(p.nameAssignee)
}

func (p *ClassPatcher) needsSemicolon() bool {
	return !p.asStatement || p.assigns()
}

func (p *ClassPatcher) PatchAsStatement() {
	if p.nameAssignee == nil {
		p.Insert(p.ContentStart, "(")
		p.patchClass()
		p.Insert(p.ContentEnd, ")")
		return
	}
	p.patchClass()
}

func (p *ClassPatcher) PatchAsExpression() {
	p.patchClass()
}

func (p *ClassPatcher) patchClass() {
	headerEnd := p.token(p.ContentStartTokenIndex).End
	if p.nameAssignee != nil {
		nb := p.nameAssignee.base()
		if p.assigns() {
			mark := p.mark()
			code := nb.PatchAndGetCode()
			p.collapse(nb.OuterStart, nb.OuterEnd, mark, p.name())
			p.Insert(p.ContentStart, code+" = ")
		} else {
			nb.Patch()
		}
		headerEnd = nb.OuterEnd
	}
	if p.superclass != nil {
		sb := p.superclass.base()
		sb.Patch()
		headerEnd = sb.OuterEnd
	}
	if p.body == nil {
		p.Insert(headerEnd, " {}")
		return
	}
	p.body.openBrace(headerEnd)
	p.body.addConstructor()
	p.body.Patch()
	p.Insert(p.body.ContentEnd, p.body.closeBrace(p.indentAt(p.ContentStart)))
}

// A ClassBlockPatcher patches the members of a class body. It moves the
// binding of bound methods into the constructor, adding a constructor
// if the class has none.
type ClassBlockPatcher struct {
	*BlockPatcher
	class *ClassPatcher
	ctor  *ConstructorPatcher
	binds []string
}

func newClassBlock(b *NodePatcher) Patcher {
	return &ClassBlockPatcher{BlockPatcher: newBlock(b).(*BlockPatcher)}
}

func (p *ClassBlockPatcher) Initialize() {
	p.BlockPatcher.Initialize()
	p.class = p.parent.(*ClassPatcher)
	for _, s := range p.statements {
		switch s := s.(type) {
		case *ConstructorPatcher:
			if p.ctor != nil {
				s.errorf("a class may only have one constructor")
			}
			p.ctor = s
		case *ClassAssignOpPatcher:
			if s.bound() {
				p.binds = append(p.binds, "this."+s.name+" = this."+s.name+".bind(this);")
			}
		default:
			s.base().errorf("class bodies may only contain members")
		}
	}
	if p.ctor != nil {
		p.ctor.fn.binds = append(p.ctor.fn.binds, p.binds...)
	}
}

// addConstructor writes a constructor that binds the bound methods
// when the class does not have one.
func (p *ClassBlockPatcher) addConstructor() {
	if p.ctor != nil || len(p.binds) == 0 {
		return
	}
	indent := p.indent()
	inner := indent + p.s.indentUnit()
	var b strings.Builder
	if p.class.superclass != nil {
		b.WriteString("constructor(...args) {\n")
		b.WriteString(inner + "super(...args);\n")
	} else {
		b.WriteString("constructor() {\n")
	}
	for _, s := range p.binds {
		b.WriteString(inner + s + "\n")
	}
	b.WriteString(indent + "}\n" + indent)
	p.Prepend(p.statements[0].base().OuterStart, b.String())
}

// A ClassAssignOpPatcher patches a class member: a method, a field or,
// when the key names the class, a static member.
type ClassAssignOpPatcher struct {
	*NodePatcher
	key, expression Patcher
	static          bool
	name            string // "" for a string or number key
}

func newClassAssignOp(b *NodePatcher) Patcher {
	return &ClassAssignOpPatcher{NodePatcher: b, key: b.child("assignee"), expression: b.child("expression")}
}

func (p *ClassAssignOpPatcher) Initialize() {
	class := p.parent.base().parent.(*ClassPatcher)
	switch k := p.key.(type) {
	case *IdentifierPatcher:
		p.name = k.name
	case *MemberAccessPatcher:
		switch obj := k.expression.(type) {
		case *ThisPatcher:
			p.static = true
		case *IdentifierPatcher:
			p.static = obj.name == class.name()
		}
		if !p.static {
			p.errorf("unsupported class member key %s", k.Original())
		}
		p.name = k.member.name
	case *LiteralPatcher:
	default:
		p.errorf("unsupported class member key %s", p.key.base().Original())
	}
	if _, ok := p.Node.(*syntax.AssignOp); ok && !p.static {
		p.errorf("cannot assign to a variable in a class body")
	}
	if fn, ok := p.expression.(*FunctionPatcher); ok {
		fn.method = true
	}
}

func (p *ClassAssignOpPatcher) method() *FunctionPatcher {
	fn, _ := p.expression.(*FunctionPatcher)
	return fn
}

// bound reports whether the member is a method bound to the instance.
func (p *ClassAssignOpPatcher) bound() bool {
	fn := p.method()
	return fn != nil && fn.bound && !p.static && p.name != ""
}

// superAccess returns the member access that names the method
// overridden by p, for calls of super.
func (p *ClassAssignOpPatcher) superAccess() string {
	if p.name != "" {
		return "." + p.name
	}
	return "[" + p.key.base().Original() + "]"
}

func (p *ClassAssignOpPatcher) needsSemicolon() bool {
	return p.method() == nil
}

func (p *ClassAssignOpPatcher) PatchAsStatement() {
	kb, eb := p.key.base(), p.expression.base()
	if p.static {
		p.Insert(p.ContentStart, "static ")
		if fn := p.method(); fn != nil && fn.generator {
			p.Insert(p.ContentStart, "*")
		}
		p.Overwrite(kb.ContentStart, kb.ContentEnd, p.name)
	} else {
		if fn := p.method(); fn != nil && fn.generator {
			p.Insert(p.ContentStart, "*")
		}
		kb.Patch()
	}
	if p.method() != nil {
		p.Remove(kb.OuterEnd, eb.OuterStart)
	} else {
		p.Overwrite(kb.OuterEnd, eb.OuterStart, " = ")
	}
	eb.Patch()
}

// A ConstructorPatcher patches the constructor of a class.
type ConstructorPatcher struct {
	*NodePatcher
	key Patcher
	fn  *FunctionPatcher
}

func newConstructor(b *NodePatcher) Patcher {
	p := &ConstructorPatcher{NodePatcher: b, key: b.child("assignee")}
	p.fn, _ = b.child("expression").(*FunctionPatcher)
	return p
}

func (p *ConstructorPatcher) Initialize() {
	if p.fn == nil {
		p.errorf("a class constructor must be a function")
	}
	if p.fn.bound {
		p.errorf("a class constructor cannot be bound")
	}
	p.fn.method, p.fn.ctor = true, true
	class := p.parent.base().parent.(*ClassPatcher)
	if class.superclass == nil {
		return
	}
	if n := p.thisBeforeSuper(); n != nil {
		if p.s.opts.DisallowInvalidConstructors {
			errorf(n.Pos(), n.End(), "cannot use this before super in a derived class constructor")
		}
		p.suggest(FixInvalidConstructors)
	}
}

// thisBeforeSuper returns the first use of this in a derived class
// constructor before the parent constructor is called, or nil.
func (p *ConstructorPatcher) thisBeforeSuper() syntax.Node {
	var before []syntax.Node
	var superCall Patcher
	if p.fn.body != nil {
		superCall = superStatement(p.fn.body)
		for _, s := range p.fn.body.statements {
			if s == superCall {
				break
			}
			before = append(before, s.base().Node)
		}
	}
	if superCall == nil {
		for _, param := range p.fn.params {
			before = append(before, param.base().Node)
		}
	}
	var found syntax.Node
	for _, n := range before {
		syntax.Walk(n, func(n syntax.Node) bool {
			if found != nil {
				return false
			}
			switch n := n.(type) {
			case *syntax.This:
				found = n
			case *syntax.Function:
				return n.Bound
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found
}

func (p *ConstructorPatcher) needsSemicolon() bool { return false }

func (p *ConstructorPatcher) PatchAsStatement() {
	kb, fb := p.key.base(), p.fn.base()
	kb.Patch()
	p.Remove(kb.OuterEnd, fb.OuterStart)
	fb.Patch()
}
