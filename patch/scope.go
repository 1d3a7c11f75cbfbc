// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"fmt"

	"github.com/decaffeinate/decaf/syntax"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// maxNameSuffix bounds the numeric suffixes tried for a temporary name.
const maxNameSuffix = 1000

// A Scope is the binding table of a program, function or class body.
type Scope struct {
	Parent *Scope
	Node   syntax.Node

	bindings        map[string]syntax.Node // name -> declaring node
	modified        map[string]bool        // assigned again after declaration
	closureModified map[string]bool        // assigned from a nested scope

	// hoisted lists the names that need a declaration at the top
	// of the body, in first-use order.
	hoisted []string
}

// NewScope returns an empty scope for node, nested in parent.
func NewScope(node syntax.Node, parent *Scope) *Scope {
	return &Scope{
		Parent:          parent,
		Node:            node,
		bindings:        make(map[string]syntax.Node),
		modified:        make(map[string]bool),
		closureModified: make(map[string]bool),
	}
}

// GetBinding returns the node declaring name in s or an enclosing
// scope, or nil.
func (s *Scope) GetBinding(name string) syntax.Node {
	if d := s.lookup(name); d != nil {
		return d.bindings[name]
	}
	return nil
}

// Names returns the names bound directly in s, sorted.
func (s *Scope) Names() []string {
	names := maps.Keys(s.bindings)
	slices.Sort(names)
	return names
}

// lookup returns the scope that binds name, or nil.
func (s *Scope) lookup(name string) *Scope {
	for ; s != nil; s = s.Parent {
		if _, ok := s.bindings[name]; ok {
			return s
		}
	}
	return nil
}

// Declares binds name in s to node, shadowing any outer binding.
func (s *Scope) Declares(name string, node syntax.Node) {
	s.bindings[name] = node
}

// Assigns records an assignment to name by node. If nothing visible
// binds name, the assignment declares it in s.
func (s *Scope) Assigns(name string, node syntax.Node) {
	d := s.lookup(name)
	if d == nil {
		s.Declares(name, node)
		return
	}
	d.modified[name] = true
	if d != s {
		d.closureModified[name] = true
	}
}

// IsDeclaredBy reports whether node is the declaration of name
// as seen from s.
func (s *Scope) IsDeclaredBy(name string, node syntax.Node) bool {
	return s.GetBinding(name) == node
}

// HasModificationsAfterDeclaration reports whether name is assigned
// again after the assignment that declared it.
func (s *Scope) HasModificationsAfterDeclaration(name string) bool {
	d := s.lookup(name)
	return d != nil && d.modified[name]
}

// HasInnerClosureModifications reports whether name is assigned from
// a function nested inside the scope that declares it.
func (s *Scope) HasInnerClosureModifications(name string) bool {
	d := s.lookup(name)
	return d != nil && d.closureModified[name]
}

// ClaimFreeBinding returns the first of names (default "ref") that no
// visible scope binds, or the first name followed by the smallest
// positive integer that makes it free, and declares it in s.
func (s *Scope) ClaimFreeBinding(node syntax.Node, names ...string) string {
	if len(names) == 0 {
		names = []string{"ref"}
	}
	for _, name := range names {
		if s.GetBinding(name) == nil {
			s.Declares(name, node)
			return name
		}
	}
	for i := 1; i <= maxNameSuffix; i++ {
		name := fmt.Sprintf("%s%d", names[0], i)
		if s.GetBinding(name) == nil {
			s.Declares(name, node)
			return name
		}
	}
	errorf(node.Pos(), node.End(), "internal error: no free name for %q after %d attempts", names[0], maxNameSuffix)
	return ""
}

// hoist arranges for name to be declared at the top of the nearest
// enclosing program or function body.
func (s *Scope) hoist(name string) {
	for s.Parent != nil {
		if _, ok := s.Node.(*syntax.Function); ok {
			break
		}
		s = s.Parent
	}
	if !slices.Contains(s.hoisted, name) {
		s.hoisted = append(s.hoisted, name)
	}
}

// buildScopes computes the scope each node of prog is evaluated in.
// Parameters and bodies of functions, and class bodies, are in the
// scope the function or class opens.
func buildScopes(prog *syntax.Program) map[syntax.Node]*Scope {
	scopes := make(map[syntax.Node]*Scope)
	root := NewScope(prog, nil)
	var visit func(n syntax.Node, s *Scope)
	visit = func(n syntax.Node, s *Scope) {
		scopes[n] = s
		inner := s
		switch n := n.(type) {
		case *syntax.Function:
			inner = NewScope(n, s)
			for _, p := range n.Params {
				for _, name := range paramNames(p) {
					inner.Declares(name, p)
				}
			}
		case *syntax.Class:
			if id, ok := n.NameAssignee.(*syntax.Identifier); ok {
				s.Declares(id.Name, n)
			}
			inner = NewScope(n, s)
		default:
			processNode(n, s)
		}
		for _, c := range syntax.Children(n) {
			visit(c, inner)
		}
	}
	scopes[prog] = root
	visit(prog.Body, root)
	return scopes
}

// processNode records the bindings introduced by n in s.
func processNode(n syntax.Node, s *Scope) {
	switch n := n.(type) {
	case *syntax.AssignOp:
		for _, name := range assigneeNames(n.Assignee) {
			s.Assigns(name, n)
		}
	case *syntax.CompoundAssignOp:
		if id, ok := n.Assignee.(*syntax.Identifier); ok {
			s.Assigns(id.Name, n)
		}
	case *syntax.UpdateOp:
		if id, ok := n.Expression.(*syntax.Identifier); ok {
			s.Assigns(id.Name, n)
		}
	case *syntax.ForIn:
		for _, name := range append(assigneeNames(n.ValAssignee), assigneeNames(n.KeyAssignee)...) {
			s.Assigns(name, n)
		}
	case *syntax.ForOf:
		for _, name := range append(assigneeNames(n.KeyAssignee), assigneeNames(n.ValAssignee)...) {
			s.Assigns(name, n)
		}
	case *syntax.Try:
		for _, name := range assigneeNames(n.CatchAssignee) {
			s.Declares(name, n)
		}
	}
}

// assigneeNames returns the variables an assignment to n binds.
func assigneeNames(n syntax.Node) []string {
	switch n := n.(type) {
	case *syntax.Identifier:
		return []string{n.Name}
	case *syntax.Spread:
		return assigneeNames(n.Expression)
	case *syntax.DefaultParam:
		return assigneeNames(n.Param)
	case *syntax.ArrayInitialiser:
		var names []string
		for _, m := range n.Members {
			names = append(names, assigneeNames(m)...)
		}
		return names
	case *syntax.ObjectInitialiser:
		var names []string
		for _, m := range n.Members {
			m := m.(*syntax.ObjectMember)
			if m.Expression == nil {
				names = append(names, assigneeNames(m.Key)...)
			} else {
				names = append(names, assigneeNames(m.Expression)...)
			}
		}
		return names
	}
	return nil
}

// paramNames returns the variables a parameter binds. An @name
// parameter binds name.
func paramNames(n syntax.Node) []string {
	switch n := n.(type) {
	case *syntax.MemberAccessOp:
		if isThis(n.Expression) {
			return []string{n.Member.Name}
		}
	case *syntax.DefaultParam:
		return paramNames(n.Param)
	case *syntax.Spread:
		return paramNames(n.Expression)
	}
	return assigneeNames(n)
}

func isThis(n syntax.Node) bool {
	_, ok := n.(*syntax.This)
	return ok
}
