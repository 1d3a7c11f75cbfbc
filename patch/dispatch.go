// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"strings"

	"github.com/decaffeinate/decaf/syntax"
)

// A constructor wraps a NodePatcher, whose children are already built,
// in the concrete patcher for its node.
type constructor func(b *NodePatcher) Patcher

// A slotOverride selects a different patcher kind for children of type
// child in the named slot of parents of the given kind.
type slotOverride struct {
	parent, slot, child string
}

// A table maps patcher kinds to constructors for one stage.
type table struct {
	patchers  map[string]constructor
	overrides map[slotOverride]string
	fallback  constructor // for kinds not in patchers; nil means an error
}

var mainTable = &table{
	patchers: map[string]constructor{
		"Program":                     newProgram,
		"Block":                       newBlock,
		"Identifier":                  newIdentifier,
		"Number":                      newLiteral,
		"String":                      newLiteral,
		"Regex":                       newLiteral,
		"Null":                        newLiteral,
		"Undefined":                   newLiteral,
		"Bool":                        newBool,
		"TemplateLiteral":             newTemplateLiteral,
		"JavaScript":                  newJavaScript,
		"This":                        newThis,
		"Super":                       newSuper,
		"ArrayInitialiser":            newArrayInitialiser,
		"ObjectInitialiser":           newObjectInitialiser,
		"ObjectInitialiserMember":     newObjectMember,
		"Range":                       newRange,
		"MemberAccessOp":              newMemberAccess,
		"SoakedMemberAccessOp":        newMemberAccess,
		"ProtoMemberAccessOp":         newMemberAccess,
		"SoakedProtoMemberAccessOp":   newMemberAccess,
		"DynamicMemberAccessOp":       newDynamicMemberAccess,
		"SoakedDynamicMemberAccessOp": newDynamicMemberAccess,
		"Slice":                       newSlice,
		"FunctionApplication":         newFunctionApplication,
		"SoakedFunctionApplication":   newFunctionApplication,
		"NewOp":                       newNewOp,
		"Spread":                      newSpread,
		"Function":                    newFunction,
		"BoundFunction":               newFunction,
		"GeneratorFunction":           newFunction,
		"BoundGeneratorFunction":      newFunction,
		"DefaultParam":                newDefaultParam,
		"AssignOp":                    newAssignOp,
		"CompoundAssignOp":            newCompoundAssignOp,
		"BinaryOp":                    newBinaryOp,
		"EqualityOp":                  newEqualityOp,
		"LogicalAndOp":                newLogicalOp,
		"LogicalOrOp":                 newLogicalOp,
		"ExistsOp":                    newExistsOp,
		"FloorDivideOp":               newFloorDivideOp,
		"ModuloOp":                    newModuloOp,
		"InOp":                        newInOp,
		"OfOp":                        newOfOp,
		"InstanceofOp":                newInstanceofOp,
		"UnaryOp":                     newUnaryOp,
		"LogicalNotOp":                newLogicalNotOp,
		"UnaryExistsOp":               newUnaryExistsOp,
		"UpdateOp":                    newUpdateOp,
		"SeqOp":                       newSeqOp,
		"Conditional":                 newConditional,
		"While":                       newWhile,
		"Loop":                        newWhile,
		"ForIn":                       newForIn,
		"ForOf":                       newForOf,
		"Switch":                      newSwitch,
		"SwitchCase":                  newSwitchCase,
		"Try":                         newTry,
		"Throw":                       newThrow,
		"Return":                      newReturn,
		"Break":                       newJump,
		"Continue":                    newJump,
		"Yield":                       newYield,
		"Class":                       newClass,
		"ClassBlock":                  newClassBlock,
		"ClassAssignOp":               newClassAssignOp,
		"Constructor":                 newConstructor,
	},
	overrides: map[slotOverride]string{
		{"Class", "body", "Block"}:                         "ClassBlock",
		{"ClassBlock", "statements", "AssignOp"}:           "ClassAssignOp",
		{"ClassBlock", "statements", "ClassProtoAssignOp"}: "ClassAssignOp",
	},
}

var normalizeTable = &table{
	patchers: map[string]constructor{
		"Conditional": newPostfix,
		"While":       newPostfix,
		"ForIn":       newPostfix,
		"ForOf":       newPostfix,
	},
	fallback: newPassthrough,
}

// A builder builds the patcher tree of one stage run.
type builder struct {
	s     *session
	t     *table
	order []Patcher // post-order
}

// buildPatcherTree builds the patcher tree for the tree rooted at n,
// links parents and initializes every patcher, children first.
func buildPatcherTree(s *session, t *table, n syntax.Node) Patcher {
	b := &builder{s: s, t: t}
	root := b.build(n, n.Type())
	for _, p := range b.order {
		for _, c := range p.base().allChildren() {
			c.base().parent = p
		}
	}
	for _, p := range b.order {
		p.Initialize()
	}
	return root
}

func (b *builder) build(n syntax.Node, kind string) Patcher {
	np := &NodePatcher{
		Node:         n,
		kind:         kind,
		s:            b.s,
		ContentStart: n.Pos(),
		ContentEnd:   n.End(),
	}
	for _, slot := range syntax.Slots(n) {
		ps := patcherSlot{name: slot.Name}
		for _, c := range slot.Nodes {
			ck := c.Type()
			if k, ok := b.t.overrides[slotOverride{kind, slot.Name, ck}]; ok {
				ck = k
			}
			ps.patchers = append(ps.patchers, b.build(c, ck))
		}
		np.slots = append(np.slots, ps)
	}
	ctor, ok := b.t.patchers[kind]
	if !ok {
		ctor = b.t.fallback
	}
	if ctor == nil {
		errorf(n.Pos(), n.End(), "no patcher available for %s node with children %s",
			kind, strings.Join(syntax.ChildNames(n), ", "))
	}
	np.computeBounds()
	p := ctor(np)
	np.self = p
	b.order = append(b.order, p)
	return p
}
