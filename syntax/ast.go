// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// A Node is a node of the syntax tree.
// Pos and End are byte offsets of the node's own source range,
// not counting any enclosing parentheses.
type Node interface {
	Type() string
	Pos() int
	End() int
}

// A Span is a source range [Lo,Hi).
type Span struct {
	Lo, Hi int
}

func (s Span) Pos() int { return s.Lo }
func (s Span) End() int { return s.Hi }

type (
	Program struct {
		Span
		Body *Block
	}

	Block struct {
		Span
		Statements []Node
		Inline     bool // written on the line of its header
	}

	Identifier struct {
		Span
		Name string
	}

	Number struct {
		Span
		Raw string
	}

	// A String is a quoted string without interpolations.
	String struct {
		Span
		Raw string
	}

	// A TemplateLiteral is a double-quoted string with interpolations.
	TemplateLiteral struct {
		Span
		Quasis      []Span
		Expressions []Node
	}

	Regex struct {
		Span
		Raw string
	}

	Bool struct {
		Span
		Raw   string
		Value bool
	}

	Null struct{ Span }

	Undefined struct{ Span }

	// A This is "this" or its shorthand "@".
	This struct {
		Span
		Shorthand bool
	}

	Super struct{ Span }

	// JavaScript is a backtick-quoted JavaScript passthrough.
	JavaScript struct {
		Span
		Code string
	}

	ArrayInitialiser struct {
		Span
		Members []Node
	}

	ObjectInitialiser struct {
		Span
		Members  []Node // *ObjectMember
		Implicit bool   // written without braces
	}

	// An ObjectMember is key: value, or a shorthand key when Expression is nil.
	ObjectMember struct {
		Span
		Key        Node
		Expression Node
	}

	// A Range is [Left..Right] or [Left...Right].
	Range struct {
		Span
		Left, Right Node
		Inclusive   bool
	}

	// A MemberAccessOp is Expression.Member, or @Member when Expression
	// is a shorthand This.
	MemberAccessOp struct {
		Span
		Expression Node
		Member     *Identifier
	}

	SoakedMemberAccessOp struct {
		Span
		Expression Node
		Member     *Identifier
	}

	// A ProtoMemberAccessOp is Expression::Member.
	ProtoMemberAccessOp struct {
		Span
		Expression Node
		Member     *Identifier
	}

	SoakedProtoMemberAccessOp struct {
		Span
		Expression Node
		Member     *Identifier
	}

	DynamicMemberAccessOp struct {
		Span
		Expression Node
		Indexing   Node
	}

	SoakedDynamicMemberAccessOp struct {
		Span
		Expression Node
		Indexing   Node
	}

	// A Slice is Expression[Left..Right]; either bound may be nil.
	Slice struct {
		Span
		Expression  Node
		Left, Right Node
		Inclusive   bool
	}

	FunctionApplication struct {
		Span
		Function  Node
		Arguments []Node
		Implicit  bool // called without parentheses
	}

	SoakedFunctionApplication struct {
		Span
		Function  Node
		Arguments []Node
	}

	NewOp struct {
		Span
		Ctor      Node
		Arguments []Node
		Implicit  bool // arguments given without parentheses
	}

	// A Spread is a splat: Expression... in arguments, arrays,
	// parameter lists and destructuring patterns.
	Spread struct {
		Span
		Expression Node
	}

	// A Function is ->, => or a generator.
	// Body is nil for an empty function.
	Function struct {
		Span
		Params    []Node
		Body      *Block
		Bound     bool
		Generator bool
	}

	DefaultParam struct {
		Span
		Param   Node
		Default Node
	}

	AssignOp struct {
		Span
		Assignee   Node
		Expression Node
	}

	// A CompoundAssignOp is Assignee Op Expression, with Op one of
	// += -= *= /= %= **= <<= >>= >>>= &= |= ^= //= %%= ||= &&= ?=.
	// The word forms or= and and= are recorded as ||= and &&=.
	CompoundAssignOp struct {
		Span
		Assignee   Node
		Expression Node
		Op         string
	}

	// A BinaryOp is an arithmetic, bitwise or ordering operator.
	BinaryOp struct {
		Span
		Left, Right Node
		Op          string
	}

	// An EqualityOp is ==, !=, is or isnt.
	EqualityOp struct {
		Span
		Left, Right Node
		Op          string
	}

	LogicalAndOp struct {
		Span
		Left, Right Node
	}

	LogicalOrOp struct {
		Span
		Left, Right Node
	}

	// An ExistsOp is the binary existential operator a ? b.
	ExistsOp struct {
		Span
		Left, Right Node
	}

	FloorDivideOp struct {
		Span
		Left, Right Node
	}

	// A ModuloOp is the mathematical modulo a %% b.
	ModuloOp struct {
		Span
		Left, Right Node
	}

	InOp struct {
		Span
		Left, Right Node
		Negated     bool
	}

	OfOp struct {
		Span
		Left, Right Node
		Negated     bool
	}

	InstanceofOp struct {
		Span
		Left, Right Node
		Negated     bool
	}

	// A UnaryOp is -, +, ~, typeof or delete.
	UnaryOp struct {
		Span
		Expression Node
		Op         string
	}

	// A LogicalNotOp is ! or not.
	LogicalNotOp struct {
		Span
		Expression Node
	}

	// A UnaryExistsOp is the postfix existence test a?.
	UnaryExistsOp struct {
		Span
		Expression Node
	}

	UpdateOp struct {
		Span
		Expression Node
		Op         string // ++ or --
		Prefix     bool
	}

	// A SeqOp is (Left; Right).
	SeqOp struct {
		Span
		Left, Right Node
	}

	// A Conditional is if/unless. Alternate is nil, a *Block,
	// or a *Conditional for else if.
	Conditional struct {
		Span
		Condition  Node
		Consequent *Block
		Alternate  Node
		Unless     bool
		Postfix    bool
	}

	// A While is while, until or loop.
	While struct {
		Span
		Condition Node // nil for loop
		Guard     Node
		Body      *Block
		Until     bool
		Loop      bool
		Postfix   bool
	}

	// A ForIn iterates over the elements of Target.
	ForIn struct {
		Span
		ValAssignee Node
		KeyAssignee Node
		Target      Node
		Step        Node
		Filter      Node
		Body        *Block
		Postfix     bool
	}

	// A ForOf iterates over the keys of Target.
	ForOf struct {
		Span
		KeyAssignee Node
		ValAssignee Node
		Target      Node
		Filter      Node
		Body        *Block
		Own         bool
		Postfix     bool
	}

	Switch struct {
		Span
		Expression Node // nil for a subject-less switch
		Cases      []*SwitchCase
		Alternate  *Block
	}

	SwitchCase struct {
		Span
		Conditions []Node
		Consequent *Block
	}

	Try struct {
		Span
		Body          *Block
		CatchAssignee Node
		CatchBody     *Block
		FinallyBody   *Block
		HasCatch      bool
		HasFinally    bool
	}

	Throw struct {
		Span
		Expression Node
	}

	Return struct {
		Span
		Expression Node
	}

	Break struct{ Span }

	Continue struct{ Span }

	Yield struct {
		Span
		Expression Node
	}

	Class struct {
		Span
		NameAssignee Node
		Parent       Node
		Body         *Block
	}

	// A ClassProtoAssignOp is a key: value member of a class body.
	ClassProtoAssignOp struct {
		Span
		Assignee   Node
		Expression Node
	}

	// A Constructor is the constructor: member of a class body.
	Constructor struct {
		Span
		Assignee   Node
		Expression Node
	}
)

func (*Program) Type() string                     { return "Program" }
func (*Block) Type() string                       { return "Block" }
func (*Identifier) Type() string                  { return "Identifier" }
func (*Number) Type() string                      { return "Number" }
func (*String) Type() string                      { return "String" }
func (*TemplateLiteral) Type() string             { return "TemplateLiteral" }
func (*Regex) Type() string                       { return "Regex" }
func (*Bool) Type() string                        { return "Bool" }
func (*Null) Type() string                        { return "Null" }
func (*Undefined) Type() string                   { return "Undefined" }
func (*This) Type() string                        { return "This" }
func (*Super) Type() string                       { return "Super" }
func (*JavaScript) Type() string                  { return "JavaScript" }
func (*ArrayInitialiser) Type() string            { return "ArrayInitialiser" }
func (*ObjectInitialiser) Type() string           { return "ObjectInitialiser" }
func (*ObjectMember) Type() string                { return "ObjectInitialiserMember" }
func (*Range) Type() string                       { return "Range" }
func (*MemberAccessOp) Type() string              { return "MemberAccessOp" }
func (*SoakedMemberAccessOp) Type() string        { return "SoakedMemberAccessOp" }
func (*ProtoMemberAccessOp) Type() string         { return "ProtoMemberAccessOp" }
func (*SoakedProtoMemberAccessOp) Type() string   { return "SoakedProtoMemberAccessOp" }
func (*DynamicMemberAccessOp) Type() string       { return "DynamicMemberAccessOp" }
func (*SoakedDynamicMemberAccessOp) Type() string { return "SoakedDynamicMemberAccessOp" }
func (*Slice) Type() string                       { return "Slice" }
func (*FunctionApplication) Type() string         { return "FunctionApplication" }
func (*SoakedFunctionApplication) Type() string   { return "SoakedFunctionApplication" }
func (*NewOp) Type() string                       { return "NewOp" }
func (*Spread) Type() string                      { return "Spread" }
func (*DefaultParam) Type() string                { return "DefaultParam" }
func (*AssignOp) Type() string                    { return "AssignOp" }
func (*CompoundAssignOp) Type() string            { return "CompoundAssignOp" }
func (*BinaryOp) Type() string                    { return "BinaryOp" }
func (*EqualityOp) Type() string                  { return "EqualityOp" }
func (*LogicalAndOp) Type() string                { return "LogicalAndOp" }
func (*LogicalOrOp) Type() string                 { return "LogicalOrOp" }
func (*ExistsOp) Type() string                    { return "ExistsOp" }
func (*FloorDivideOp) Type() string               { return "FloorDivideOp" }
func (*ModuloOp) Type() string                    { return "ModuloOp" }
func (*InOp) Type() string                        { return "InOp" }
func (*OfOp) Type() string                        { return "OfOp" }
func (*InstanceofOp) Type() string                { return "InstanceofOp" }
func (*UnaryOp) Type() string                     { return "UnaryOp" }
func (*LogicalNotOp) Type() string                { return "LogicalNotOp" }
func (*UnaryExistsOp) Type() string               { return "UnaryExistsOp" }
func (*UpdateOp) Type() string                    { return "UpdateOp" }
func (*SeqOp) Type() string                       { return "SeqOp" }
func (*Conditional) Type() string                 { return "Conditional" }
func (*ForIn) Type() string                       { return "ForIn" }
func (*ForOf) Type() string                       { return "ForOf" }
func (*Switch) Type() string                      { return "Switch" }
func (*SwitchCase) Type() string                  { return "SwitchCase" }
func (*Try) Type() string                         { return "Try" }
func (*Throw) Type() string                       { return "Throw" }
func (*Return) Type() string                      { return "Return" }
func (*Break) Type() string                       { return "Break" }
func (*Continue) Type() string                    { return "Continue" }
func (*Yield) Type() string                       { return "Yield" }
func (*Class) Type() string                       { return "Class" }
func (*ClassProtoAssignOp) Type() string          { return "ClassProtoAssignOp" }
func (*Constructor) Type() string                 { return "Constructor" }

func (f *Function) Type() string {
	switch {
	case f.Bound && f.Generator:
		return "BoundGeneratorFunction"
	case f.Bound:
		return "BoundFunction"
	case f.Generator:
		return "GeneratorFunction"
	}
	return "Function"
}

func (w *While) Type() string {
	if w.Loop {
		return "Loop"
	}
	return "While"
}

// A Slot is a named child position of a node.
// List reports whether the slot holds a list of nodes.
type Slot struct {
	Name  string
	Nodes []Node
	List  bool
}

func one(name string, n Node) Slot {
	if isNil(n) {
		return Slot{Name: name}
	}
	return Slot{Name: name, Nodes: []Node{n}}
}

func list(name string, nodes []Node) Slot {
	return Slot{Name: name, Nodes: nodes, List: true}
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Block:
		return n == nil
	case *Identifier:
		return n == nil
	}
	return false
}

// Slots returns the child slots of n in source order.
func Slots(n Node) []Slot {
	switch n := n.(type) {
	case *Program:
		return []Slot{one("body", n.Body)}
	case *Block:
		return []Slot{list("statements", n.Statements)}
	case *TemplateLiteral:
		return []Slot{list("expressions", n.Expressions)}
	case *ArrayInitialiser:
		return []Slot{list("members", n.Members)}
	case *ObjectInitialiser:
		return []Slot{list("members", n.Members)}
	case *ObjectMember:
		return []Slot{one("key", n.Key), one("expression", n.Expression)}
	case *Range:
		return []Slot{one("left", n.Left), one("right", n.Right)}
	case *MemberAccessOp:
		return []Slot{one("expression", n.Expression), one("member", n.Member)}
	case *SoakedMemberAccessOp:
		return []Slot{one("expression", n.Expression), one("member", n.Member)}
	case *ProtoMemberAccessOp:
		return []Slot{one("expression", n.Expression), one("member", n.Member)}
	case *SoakedProtoMemberAccessOp:
		return []Slot{one("expression", n.Expression), one("member", n.Member)}
	case *DynamicMemberAccessOp:
		return []Slot{one("expression", n.Expression), one("indexing", n.Indexing)}
	case *SoakedDynamicMemberAccessOp:
		return []Slot{one("expression", n.Expression), one("indexing", n.Indexing)}
	case *Slice:
		return []Slot{one("expression", n.Expression), one("left", n.Left), one("right", n.Right)}
	case *FunctionApplication:
		return []Slot{one("function", n.Function), list("arguments", n.Arguments)}
	case *SoakedFunctionApplication:
		return []Slot{one("function", n.Function), list("arguments", n.Arguments)}
	case *NewOp:
		return []Slot{one("ctor", n.Ctor), list("arguments", n.Arguments)}
	case *Spread:
		return []Slot{one("expression", n.Expression)}
	case *Function:
		return []Slot{list("parameters", n.Params), one("body", n.Body)}
	case *DefaultParam:
		return []Slot{one("param", n.Param), one("default", n.Default)}
	case *AssignOp:
		return []Slot{one("assignee", n.Assignee), one("expression", n.Expression)}
	case *CompoundAssignOp:
		return []Slot{one("assignee", n.Assignee), one("expression", n.Expression)}
	case *BinaryOp:
		return []Slot{one("left", n.Left), one("right", n.Right)}
	case *EqualityOp:
		return []Slot{one("left", n.Left), one("right", n.Right)}
	case *LogicalAndOp:
		return []Slot{one("left", n.Left), one("right", n.Right)}
	case *LogicalOrOp:
		return []Slot{one("left", n.Left), one("right", n.Right)}
	case *ExistsOp:
		return []Slot{one("left", n.Left), one("right", n.Right)}
	case *FloorDivideOp:
		return []Slot{one("left", n.Left), one("right", n.Right)}
	case *ModuloOp:
		return []Slot{one("left", n.Left), one("right", n.Right)}
	case *InOp:
		return []Slot{one("left", n.Left), one("right", n.Right)}
	case *OfOp:
		return []Slot{one("left", n.Left), one("right", n.Right)}
	case *InstanceofOp:
		return []Slot{one("left", n.Left), one("right", n.Right)}
	case *SeqOp:
		return []Slot{one("left", n.Left), one("right", n.Right)}
	case *UnaryOp:
		return []Slot{one("expression", n.Expression)}
	case *LogicalNotOp:
		return []Slot{one("expression", n.Expression)}
	case *UnaryExistsOp:
		return []Slot{one("expression", n.Expression)}
	case *UpdateOp:
		return []Slot{one("expression", n.Expression)}
	case *Conditional:
		if n.Postfix {
			return []Slot{one("consequent", n.Consequent), one("condition", n.Condition)}
		}
		return []Slot{one("condition", n.Condition), one("consequent", n.Consequent), one("alternate", n.Alternate)}
	case *While:
		if n.Postfix {
			return []Slot{one("body", n.Body), one("condition", n.Condition), one("guard", n.Guard)}
		}
		return []Slot{one("condition", n.Condition), one("guard", n.Guard), one("body", n.Body)}
	case *ForIn:
		head := []Slot{one("valAssignee", n.ValAssignee), one("keyAssignee", n.KeyAssignee), one("target", n.Target), one("step", n.Step), one("filter", n.Filter)}
		if n.Postfix {
			return append([]Slot{one("body", n.Body)}, head...)
		}
		return append(head, one("body", n.Body))
	case *ForOf:
		head := []Slot{one("keyAssignee", n.KeyAssignee), one("valAssignee", n.ValAssignee), one("target", n.Target), one("filter", n.Filter)}
		if n.Postfix {
			return append([]Slot{one("body", n.Body)}, head...)
		}
		return append(head, one("body", n.Body))
	case *Switch:
		cases := make([]Node, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = c
		}
		return []Slot{one("expression", n.Expression), list("cases", cases), one("alternate", n.Alternate)}
	case *SwitchCase:
		return []Slot{list("conditions", n.Conditions), one("consequent", n.Consequent)}
	case *Try:
		return []Slot{one("body", n.Body), one("catchAssignee", n.CatchAssignee), one("catchBody", n.CatchBody), one("finallyBody", n.FinallyBody)}
	case *Throw:
		return []Slot{one("expression", n.Expression)}
	case *Return:
		return []Slot{one("expression", n.Expression)}
	case *Yield:
		return []Slot{one("expression", n.Expression)}
	case *Class:
		return []Slot{one("nameAssignee", n.NameAssignee), one("parent", n.Parent), one("body", n.Body)}
	case *ClassProtoAssignOp:
		return []Slot{one("assignee", n.Assignee), one("expression", n.Expression)}
	case *Constructor:
		return []Slot{one("assignee", n.Assignee), one("expression", n.Expression)}
	}
	return nil
}

// ChildNames returns the names of the child slots of n.
func ChildNames(n Node) []string {
	var names []string
	for _, s := range Slots(n) {
		names = append(names, s.Name)
	}
	return names
}

// Children returns the non-nil children of n in source order.
func Children(n Node) []Node {
	var out []Node
	for _, s := range Slots(n) {
		out = append(out, s.Nodes...)
	}
	return out
}

// Walk traverses the tree rooted at n in depth-first order.
// It calls f(n); if f returns true, Walk then visits each child.
func Walk(n Node, f func(Node) bool) {
	if isNil(n) || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, f)
	}
}
