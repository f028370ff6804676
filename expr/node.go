// Copyright 2026 The exprtree Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package expr

import (
	"fmt"
	"iter"
)

// Node is a handle to a node in a [Tree].
//
// Nodes are pointer-like: they are meant to be passed by value, and the zero
// Node stands for "no node", like a nil pointer. Two Nodes are the same node
// iff they compare == (see [Node.Equal] for structural equality).
type Node struct {
	tree *Tree
	id   ID
}

// IsZero returns whether this is the zero Node.
func (n Node) IsZero() bool {
	return n.tree == nil || n.id == 0
}

// Tree returns the Tree that owns this node.
func (n Node) Tree() *Tree {
	return n.tree
}

// ID returns this node's handle within its Tree.
func (n Node) ID() ID {
	if n.IsZero() {
		return 0
	}
	return n.id
}

// Kind returns this node's kind. Returns [KindInvalid] for the zero Node.
func (n Node) Kind() Kind {
	if n.IsZero() {
		return KindInvalid
	}
	return n.raw().kind
}

// Op returns this node's operator. Returns [OpInvalid] for leaves and calls.
func (n Node) Op() Op {
	if n.IsZero() {
		return OpInvalid
	}
	return n.raw().op
}

// Is returns whether this is a unary, binary or ternary node with operator op.
func (n Node) Is(op Op) bool {
	return op.Valid() && n.Op() == op
}

// Arity returns the number of operand slots of this node.
func (n Node) Arity() int {
	if n.IsZero() {
		return 0
	}
	return len(n.raw().operands)
}

// Assignable returns whether this node may be the target of an assignment:
// a location, or a pointer dereference.
func (n Node) Assignable() bool {
	k := n.Kind()
	return k.Assignable() || (k == KindUnary && n.Op().Assignable())
}

// IsDef returns whether this node has been used as the target of an
// assignment, i.e. whether it is the definition of its location.
func (n Node) IsDef() bool {
	if n.IsZero() {
		return false
	}
	return n.raw().isDef
}

// Location returns the location of a register, flag, variable or argument.
// Returns the zero Location for other kinds.
func (n Node) Location() Location {
	if !n.Kind().IsLocation() {
		return Location{}
	}
	return n.raw().loc
}

// Name returns the display name of a location node. It is empty when the
// node has no explicit name.
func (n Node) Name() string {
	if !n.Kind().IsLocation() {
		return ""
	}
	return n.raw().name
}

// SetName sets the display name of a location node. The name does not
// participate in equality.
func (n Node) SetName(name string) {
	n.panicIfNot(KindRegister, KindFlag, KindVariable, KindArgument)
	defer n.tree.mutate()()
	n.raw().name = name
}

// Value returns the payload of a literal. Returns zero for other kinds.
func (n Node) Value() uint64 {
	if n.Kind() != KindLiteral {
		return 0
	}
	return n.raw().value
}

// SetValue overwrites the payload of a literal in place.
func (n Node) SetValue(v uint64) {
	n.panicIfNot(KindLiteral)
	defer n.tree.mutate()()
	n.raw().value = v
}

// Parent returns the node whose operand slot holds this node, along with the
// slot index. Returns the zero Node and -1 for a root.
func (n Node) Parent() (Node, int) {
	if n.IsZero() {
		return Node{}, -1
	}
	raw := n.raw()
	if raw.parent == 0 {
		return Node{}, -1
	}
	return Node{tree: n.tree, id: raw.parent}, int(raw.slot)
}

// IsRoot returns whether this node has no parent.
func (n Node) IsRoot() bool {
	return !n.IsZero() && n.raw().parent == 0
}

// Root returns the root of the tree this node is part of.
func (n Node) Root() Node {
	for {
		parent, _ := n.Parent()
		if parent.IsZero() {
			return n
		}
		n = parent
	}
}

// Operand returns the node in the i-th operand slot, which may be zero if the
// slot is empty.
//
// Panics if i is out of range.
func (n Node) Operand(i int) Node {
	raw := n.raw()
	if i < 0 || i >= len(raw.operands) {
		panic(fmt.Sprintf("exprtree/expr: operand %d out of range for %v with arity %d", i, n.describe(), len(raw.operands)))
	}
	return n.tree.Node(raw.operands[i])
}

// Operands yields each operand slot of this node along with its index,
// including empty ones.
func (n Node) Operands() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for i := range n.Arity() {
			if !yield(i, n.Operand(i)) {
				return
			}
		}
	}
}

// SetOperand places child into the i-th operand slot of n.
//
// child must not already have a parent: a node can occupy only one slot at a
// time, so a node needed in two places must be copied first (see
// [Node.Copy]). Any node previously in the slot is detached and becomes a
// root. child may be zero, which empties the slot.
//
// Writing slot 0 of an assignment requires an assignable child (see
// [Node.Assignable]) and marks it as a definition.
//
// Panics if any of these preconditions does not hold.
func (n Node) SetOperand(i int, child Node) {
	if n.IsZero() {
		panic("exprtree/expr: SetOperand on zero Node")
	}
	defer n.tree.mutate()()
	n.setOperand(i, child)
}

// Replace puts with into the slot n currently occupies, and returns n, which
// is now a root and may be reused or dropped.
//
// If n has no parent, Replace does nothing and returns the zero Node. Note
// that this does not distinguish a tree's root from a node that was already
// detached.
//
// with must not have a parent. It may be zero, which empties n's slot. The
// same preconditions as [Node.SetOperand] apply; in particular, replacing
// a node with a tree that contains it is not allowed:
//
//	loc.Replace(t.Deref(loc))        // Panics.
//	loc.Replace(t.Deref(loc.Copy())) // OK.
func (n Node) Replace(with Node) Node {
	parent, slot := n.Parent()
	if parent.IsZero() {
		return Node{}
	}
	defer n.tree.mutate()()
	parent.setOperand(slot, with)
	return n
}

// Callee returns the callee of a call.
func (n Node) Callee() Node {
	n.panicIfNot(KindCall)
	return n.Operand(0)
}

// Args returns the argument list of a call. This may be zero.
func (n Node) Args() Node {
	n.panicIfNot(KindCall)
	return n.Operand(1)
}

// X returns the operand of a unary node.
func (n Node) X() Node {
	n.panicIfNot(KindUnary)
	return n.Operand(0)
}

// Left returns the first operand of a binary node.
func (n Node) Left() Node {
	n.panicIfNot(KindBinary)
	return n.Operand(0)
}

// Right returns the second operand of a binary node.
func (n Node) Right() Node {
	n.panicIfNot(KindBinary)
	return n.Operand(1)
}

// Cond returns the condition of a ternary node.
func (n Node) Cond() Node {
	n.panicIfNot(KindTernary)
	return n.Operand(0)
}

// Then returns the value a ternary node takes when its condition holds.
func (n Node) Then() Node {
	n.panicIfNot(KindTernary)
	return n.Operand(1)
}

// Else returns the value a ternary node takes when its condition does not
// hold.
func (n Node) Else() Node {
	n.panicIfNot(KindTernary)
	return n.Operand(2)
}

// String implements [fmt.Stringer], rendering this node with the Tree's
// register table and no symbol resolver.
func (n Node) String() string {
	if n.IsZero() {
		return "<none>"
	}
	return Printer{Registers: n.tree.Registers()}.Print(n)
}

func (n Node) raw() *rawNode {
	if n.IsZero() {
		panic("exprtree/expr: dereferenced zero Node")
	}
	return n.tree.raw(n.id)
}

func (n Node) setOperand(i int, child Node) {
	raw := n.raw()
	if i < 0 || i >= len(raw.operands) {
		panic(fmt.Sprintf("exprtree/expr: operand %d out of range for %v with arity %d", i, n.describe(), len(raw.operands)))
	}
	n.tree.checkOperand(raw.op, i, child, n.describe)
	for a := n; !a.IsZero(); a, _ = a.Parent() {
		if a == child {
			panic(fmt.Sprintf("exprtree/expr: placing %v into operand %d of %v would create a cycle", child.describe(), i, n.describe()))
		}
	}

	if old := raw.operands[i]; old != 0 {
		n.tree.detach(old)
	}
	n.tree.attach(n, i, child)
}

// checkOperand checks that child may be placed into operand i of a node with
// operator op. owner describes that node for panic messages.
func (t *Tree) checkOperand(op Op, i int, child Node, owner func() string) {
	if i == 0 && op == OpAssign && !child.Assignable() {
		panic(fmt.Sprintf("exprtree/expr: left side of assignment is not assignable: %v (to %v)", child.describe(), owner()))
	}
	if child.IsZero() {
		return
	}
	t.panicIfNotOurs(child)
	if parent, slot := child.Parent(); !parent.IsZero() {
		panic(fmt.Sprintf("exprtree/expr: %v already occupies operand %d of %v; tried to place it into operand %d of %v",
			child.describe(), slot, parent.describe(), i, owner()))
	}
}

// attach records that child occupies operand i of owner. The slot must be
// empty and child must be a root.
func (t *Tree) attach(owner Node, i int, child Node) {
	raw := owner.raw()
	raw.operands[i] = child.id
	if child.IsZero() {
		return
	}
	craw := child.raw()
	craw.parent = owner.id
	craw.slot = uint8(i)
	if i == 0 && raw.op == OpAssign {
		craw.isDef = true
	}
}

// detach clears a node's parent link without touching its parent's slot.
func (t *Tree) detach(id ID) {
	raw := t.raw(id)
	raw.parent = 0
	raw.slot = 0
}

// describe is a short description of n for panic messages.
func (n Node) describe() string {
	if n.IsZero() {
		return "<none>"
	}
	if op := n.Op(); op.Valid() {
		return fmt.Sprintf("%v %v(%d)", n.Kind(), op, n.id)
	}
	return fmt.Sprintf("%v(%d)", n.Kind(), n.id)
}

func (n Node) panicIfNot(kinds ...Kind) {
	k := n.Kind()
	for _, want := range kinds {
		if k == want {
			return
		}
	}
	panic(fmt.Sprintf("exprtree/expr: expected %v, got %v", kinds, n.describe()))
}
