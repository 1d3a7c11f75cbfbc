// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"fmt"
	"testing"

	"github.com/decaffeinate/decaf/syntax"
)

func TestClaimFreeBinding(t *testing.T) {
	decl := &syntax.Identifier{Name: "x"}
	tests := []struct {
		bound []string
		names []string
		want  string
	}{
		{nil, nil, "ref"},
		{[]string{"ref"}, nil, "ref1"},
		{[]string{"ref", "ref1", "ref2"}, nil, "ref3"},
		{nil, []string{"result"}, "result"},
		{[]string{"i"}, []string{"i", "j"}, "j"},
		{[]string{"i", "j"}, []string{"i", "j"}, "i1"},
	}
	for _, tt := range tests {
		s := NewScope(decl, nil)
		for _, name := range tt.bound {
			s.Declares(name, decl)
		}
		n := &syntax.Identifier{Name: "tmp"}
		got := s.ClaimFreeBinding(n, tt.names...)
		if got != tt.want {
			t.Errorf("bound %v, ClaimFreeBinding(%v) = %q, want %q", tt.bound, tt.names, got, tt.want)
		}
		if s.GetBinding(got) != n {
			t.Errorf("ClaimFreeBinding(%v) did not declare %q", tt.names, got)
		}
	}
}

func TestClaimFreeBindingSeesOuterScopes(t *testing.T) {
	decl := &syntax.Identifier{Name: "x"}
	outer := NewScope(decl, nil)
	outer.Declares("ref", decl)
	inner := NewScope(decl, outer)
	if got := inner.ClaimFreeBinding(decl); got != "ref1" {
		t.Errorf("ClaimFreeBinding in inner scope = %q, want ref1", got)
	}
	if outer.GetBinding("ref1") != nil {
		t.Errorf("ClaimFreeBinding in inner scope declared ref1 in outer scope")
	}
	inner.Declares("a", decl)
	if got := fmt.Sprint(inner.Names()); got != "[a ref1]" {
		t.Errorf("inner.Names() = %s, want [a ref1]", got)
	}
}

func TestAssigns(t *testing.T) {
	first := &syntax.Identifier{Name: "a"}
	second := &syntax.Identifier{Name: "a"}
	outer := NewScope(first, nil)
	inner := NewScope(second, outer)

	outer.Assigns("a", first)
	if !outer.IsDeclaredBy("a", first) {
		t.Fatalf("first assignment does not declare a")
	}
	if outer.HasModificationsAfterDeclaration("a") {
		t.Errorf("a modified after a single assignment")
	}
	inner.Assigns("a", second)
	if inner.IsDeclaredBy("a", second) {
		t.Errorf("assignment in inner scope redeclared a")
	}
	if !outer.HasModificationsAfterDeclaration("a") {
		t.Errorf("a not modified after second assignment")
	}
	if !outer.HasInnerClosureModifications("a") {
		t.Errorf("a not modified from a closure")
	}
}

func TestBuildScopes(t *testing.T) {
	src := "a = 1\nf = (b) ->\n  c = a + b\n"
	prog, _, err := syntax.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	scopes := buildScopes(prog)
	root := scopes[prog]
	for _, name := range []string{"a", "f"} {
		if root.GetBinding(name) == nil {
			t.Errorf("program scope does not bind %s", name)
		}
	}
	for _, name := range []string{"b", "c"} {
		if root.GetBinding(name) != nil {
			t.Errorf("program scope binds %s", name)
		}
	}

	var fn *syntax.Function
	syntax.Walk(prog, func(n syntax.Node) bool {
		if f, ok := n.(*syntax.Function); ok {
			fn = f
		}
		return true
	})
	if fn == nil {
		t.Fatal("no function in tree")
	}
	inner := scopes[fn.Body]
	if inner == root {
		t.Fatal("function body evaluated in program scope")
	}
	var names []string
	for _, name := range []string{"a", "b", "c", "f"} {
		if inner.GetBinding(name) != nil {
			names = append(names, name)
		}
	}
	if fmt.Sprint(names) != "[a b c f]" {
		t.Errorf("function scope binds %v, want [a b c f]", names)
	}
}

func TestHoist(t *testing.T) {
	prog := &syntax.Program{}
	fn := &syntax.Function{}
	cls := &syntax.Class{}
	root := NewScope(prog, nil)
	fs := NewScope(fn, root)
	cs := NewScope(cls, fs)

	cs.hoist("ref")
	cs.hoist("ref")
	root.hoist("i")
	if fmt.Sprint(fs.hoisted) != "[ref]" {
		t.Errorf("function scope hoisted %v, want [ref]", fs.hoisted)
	}
	if len(cs.hoisted) != 0 {
		t.Errorf("class scope hoisted %v", cs.hoisted)
	}
	if fmt.Sprint(root.hoisted) != "[i]" {
		t.Errorf("program scope hoisted %v, want [i]", root.hoisted)
	}
}
