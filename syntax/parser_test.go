// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"strings"
	"testing"
)

// dump renders n as Type(children...), or Type:text for a leaf.
func dump(src string, n Node) string {
	kids := Children(n)
	if len(kids) == 0 {
		return n.Type() + ":" + src[n.Pos():n.End()]
	}
	var parts []string
	for _, k := range kids {
		parts = append(parts, dump(src, k))
	}
	return n.Type() + "(" + strings.Join(parts, " ") + ")"
}

var parseTests = []struct {
	src  string
	want string
}{
	{"a = 1", "AssignOp(Identifier:a Number:1)"},
	{"a = b = c", "AssignOp(Identifier:a AssignOp(Identifier:b Identifier:c))"},
	{"a ? b", "ExistsOp(Identifier:a Identifier:b)"},
	{"a?", "UnaryExistsOp(Identifier:a)"},
	{"not a", "LogicalNotOp(Identifier:a)"},
	{"a or= b", "CompoundAssignOp(Identifier:a Identifier:b)"},
	{"a + b * c", "BinaryOp(Identifier:a BinaryOp(Identifier:b Identifier:c))"},
	{"a ** b ** c", "BinaryOp(Identifier:a BinaryOp(Identifier:b Identifier:c))"},
	{"a and b or c", "LogicalOrOp(LogicalAndOp(Identifier:a Identifier:b) Identifier:c)"},
	{"a not in b", "InOp(Identifier:a Identifier:b)"},
	{"a is b", "EqualityOp(Identifier:a Identifier:b)"},
	{"f a, b", "FunctionApplication(Identifier:f Identifier:a Identifier:b)"},
	{"f g a", "FunctionApplication(Identifier:f FunctionApplication(Identifier:g Identifier:a))"},
	{"f(a)(b)", "FunctionApplication(FunctionApplication(Identifier:f Identifier:a) Identifier:b)"},
	{"f?(a)", "SoakedFunctionApplication(Identifier:f Identifier:a)"},
	{"a -1", "FunctionApplication(Identifier:a UnaryOp(Number:1))"},
	{"a - 1", "BinaryOp(Identifier:a Number:1)"},
	{"@a.b", "MemberAccessOp(MemberAccessOp(This:@ Identifier:a) Identifier:b)"},
	{"a.b?.c", "SoakedMemberAccessOp(MemberAccessOp(Identifier:a Identifier:b) Identifier:c)"},
	{"a::b", "ProtoMemberAccessOp(Identifier:a Identifier:b)"},
	{"a?[0]", "SoakedDynamicMemberAccessOp(Identifier:a Number:0)"},
	{"a[1..]", "Slice(Identifier:a Number:1)"},
	{"new A b", "NewOp(Identifier:A Identifier:b)"},
	{"new A.B()", "NewOp(MemberAccessOp(Identifier:A Identifier:B))"},
	{"[1..3]", "Range(Number:1 Number:3)"},
	{"[a, b...]", "ArrayInitialiser(Identifier:a Spread(Identifier:b))"},
	{"[\n  a\n  b\n]", "ArrayInitialiser(Identifier:a Identifier:b)"},
	{"{a, b: 1}", "ObjectInitialiser(ObjectInitialiserMember(Identifier:a) ObjectInitialiserMember(Identifier:b Number:1))"},
	{"a: 1, b: 2", "ObjectInitialiser(ObjectInitialiserMember(Identifier:a Number:1) ObjectInitialiserMember(Identifier:b Number:2))"},
	{"f\n  a: 1\n  b: 2", "FunctionApplication(Identifier:f ObjectInitialiser(ObjectInitialiserMember(Identifier:a Number:1) ObjectInitialiserMember(Identifier:b Number:2)))"},
	{`"a#{b}c"`, "TemplateLiteral(Identifier:b)"},
	{"x = (a; b)", "AssignOp(Identifier:x SeqOp(Identifier:a Identifier:b))"},
	{"(a, b) -> a", "Function(Identifier:a Identifier:b Block(Identifier:a))"},
	{"(@a, b = 1, c...) =>", "BoundFunction(MemberAccessOp(This:@ Identifier:a) DefaultParam(Identifier:b Number:1) Spread(Identifier:c))"},
	{"-> yield 1", "GeneratorFunction(Block(Yield(Number:1)))"},
	{"-> return", "Function(Block(Return:return))"},
	{"a if b", "Conditional(Block(Identifier:a) Identifier:b)"},
	{"return a unless b", "Conditional(Block(Return(Identifier:a)) Identifier:b)"},
	{"x = if a then b else c", "AssignOp(Identifier:x Conditional(Identifier:a Block(Identifier:b) Block(Identifier:c)))"},
	{"if a\n  b\nelse if c\n  d", "Conditional(Identifier:a Block(Identifier:b) Conditional(Identifier:c Block(Identifier:d)))"},
	{"if a\n  b\nelse\n  c", "Conditional(Identifier:a Block(Identifier:b) Block(Identifier:c))"},
	{"if foo\n  a: 1", "Conditional(Identifier:foo Block(ObjectInitialiser(ObjectInitialiserMember(Identifier:a Number:1))))"},
	{"while a\n  b", "While(Identifier:a Block(Identifier:b))"},
	{"loop\n  break", "Loop(Block(Break:break))"},
	{"a until b", "While(Block(Identifier:a) Identifier:b)"},
	{"for x in xs when x then f x", "ForIn(Identifier:x Identifier:xs Identifier:x Block(FunctionApplication(Identifier:f Identifier:x)))"},
	{"f x for x in xs", "ForIn(Block(FunctionApplication(Identifier:f Identifier:x)) Identifier:x Identifier:xs)"},
	{"for x, i in xs by 2\n  x", "ForIn(Identifier:x Identifier:i Identifier:xs Number:2 Block(Identifier:x))"},
	{"for own k, v of o\n  k", "ForOf(Identifier:k Identifier:v Identifier:o Block(Identifier:k))"},
	{"switch a\n  when 1, 2 then b\n  else c", "Switch(Identifier:a SwitchCase(Number:1 Number:2 Block(Identifier:b)) Block(Identifier:c))"},
	{"try\n  a\ncatch e\n  b\nfinally\n  c", "Try(Block(Identifier:a) Identifier:e Block(Identifier:b) Block(Identifier:c))"},
	{"try a", "Try(Block(Identifier:a))"},
	{"class A extends B\n  constructor: ->\n  m: -> 1", "Class(Identifier:A Identifier:B Block(Constructor(Identifier:constructor Function:->) ClassProtoAssignOp(Identifier:m Function(Block(Number:1)))))"},
	{"class A\n  this.b: 2\n  A.c: -> 3", "Class(Identifier:A Block(ClassProtoAssignOp(MemberAccessOp(This:this Identifier:b) Number:2) ClassProtoAssignOp(MemberAccessOp(Identifier:A Identifier:c) Function(Block(Number:3)))))"},
	{"$ 'a'\n  .b()", "FunctionApplication(MemberAccessOp(FunctionApplication(Identifier:$ String:'a') Identifier:b))"},
	{"describe 'x', ->\n  it 'y'", "FunctionApplication(Identifier:describe String:'x' Function(Block(FunctionApplication(Identifier:it String:'y'))))"},
	{"a = 1; b = 2", "AssignOp(Identifier:a Number:1); AssignOp(Identifier:b Number:2)"},
	{"a\n# comment\nb", "Identifier:a; Identifier:b"},
}

func TestParse(t *testing.T) {
	for _, tt := range parseTests {
		prog, _, err := Parse(tt.src)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.src, err)
			continue
		}
		var stmts []string
		for _, s := range prog.Body.Statements {
			stmts = append(stmts, dump(tt.src, s))
		}
		if got := strings.Join(stmts, "; "); got != tt.want {
			t.Errorf("Parse(%q):\nhave %s\nwant %s", tt.src, got, tt.want)
		}
	}
}

func TestParseSpans(t *testing.T) {
	src := "x = f a, (b)\ny"
	prog, _, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	assign := prog.Body.Statements[0].(*AssignOp)
	if got := src[assign.Pos():assign.End()]; got != "x = f a, (b)" {
		t.Errorf("assignment span = %q", got)
	}
	call := assign.Expression.(*FunctionApplication)
	if got := src[call.Pos():call.End()]; got != "f a, (b)" {
		t.Errorf("call span = %q", got)
	}
	if b := call.Arguments[1]; src[b.Pos():b.End()] != "b" {
		t.Errorf("parenthesized argument span = %q, want %q", src[b.Pos():b.End()], "b")
	}
	if !call.Implicit {
		t.Errorf("call not marked implicit")
	}
	if got := prog.Body.End(); got != len(src) {
		t.Errorf("body end = %d, want %d", got, len(src))
	}
}

var parseErrorTests = []struct {
	src string
	err string
}{
	{"a = ", "1:5: unexpected end of input"},
	{"do -> a", "do expressions are not supported"},
	{"a\n  b", "2:3: unexpected indentation"},
	{"yield 1", "yield outside of a function"},
	{"1 = a", "invalid assignment target"},
	{"for own x in y\n  x", "own is only allowed"},
	{"switch a\n  b", "expected when"},
	{"(a", "missing closing )"},
}

func TestParseErrors(t *testing.T) {
	for _, tt := range parseErrorTests {
		_, _, err := Parse(tt.src)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error %q", tt.src, tt.err)
			continue
		}
		if _, ok := err.(*Error); !ok {
			t.Errorf("Parse(%q) error is %T, want *Error", tt.src, err)
		}
		if !strings.Contains(err.Error(), tt.err) {
			t.Errorf("Parse(%q) = %v, want error containing %q", tt.src, err, tt.err)
		}
	}
}

func TestWalk(t *testing.T) {
	src := "f = (a) -> a.b ? c"
	prog, _, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	var types []string
	Walk(prog, func(n Node) bool {
		types = append(types, n.Type())
		return n.Type() != "ExistsOp"
	})
	want := "Program Block AssignOp Identifier Function Identifier Block ExistsOp"
	if got := strings.Join(types, " "); got != want {
		t.Errorf("Walk visited %s, want %s", got, want)
	}
}
