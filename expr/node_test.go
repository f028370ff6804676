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

package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdecomp/exprtree/expr"
)

func TestAttach(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	one := tree.NewLiteral(1)
	eax := tree.NewRegister(expr.Reg(0))
	add := tree.Add(one, eax)

	for i, x := range add.Operands() {
		parent, slot := x.Parent()
		assert.Equal(t, add, parent)
		assert.Equal(t, i, slot)
		assert.Equal(t, x, add.Operand(i))
	}
	assert.True(t, add.IsRoot())
	assert.False(t, eax.IsRoot())
	assert.Equal(t, add, eax.Root())

	parent, slot := add.Parent()
	assert.True(t, parent.IsZero())
	assert.Equal(t, -1, slot)
}

func TestAttachOwned(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	eax := tree.NewRegister(expr.Reg(0))
	add := tree.Add(tree.NewLiteral(1), eax)

	assert.Panics(t, func() { tree.Neg(eax) })
	assert.Panics(t, func() { tree.Add(eax, tree.NewLiteral(2)) })

	// The failed constructions must not have disturbed anything.
	parent, slot := eax.Parent()
	assert.Equal(t, add, parent)
	assert.Equal(t, 1, slot)

	neg := tree.Neg(eax.Copy())
	parent, _ = neg.X().Parent()
	assert.Equal(t, neg, parent)
	assert.Equal(t, "-eax", neg.String())
}

func TestAttachSameTwice(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	one := tree.NewLiteral(1)
	two := tree.NewLiteral(2)
	assert.Panics(t, func() { tree.Add(one, one) })
	assert.True(t, one.IsRoot())

	// Nothing was attached to the discarded node.
	add := tree.Add(one, two)
	assert.Equal(t, "1 + 2", add.String())
}

func TestAttachOtherTree(t *testing.T) {
	t.Parallel()

	a, b := expr.NewTree(nil), expr.NewTree(nil)
	x := a.NewLiteral(1)
	assert.Panics(t, func() { b.Neg(x) })

	y := b.Import(x)
	assert.Same(t, b, y.Tree())
	assert.True(t, x.Equal(y))
	assert.Equal(t, "-1", b.Neg(y).String())
}

func TestReplace(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	eax := tree.NewRegister(expr.Reg(0))
	add := tree.Add(tree.NewLiteral(1), eax)
	require.Equal(t, "1 + eax", add.String())

	eight := tree.NewLiteral(8)
	old := eax.Replace(eight)
	assert.Equal(t, eax, old)
	assert.Equal(t, "1 + 8", add.String())
	assert.True(t, eax.IsRoot())
	assert.Equal(t, eight, add.Right())

	parent, slot := eight.Parent()
	assert.Equal(t, add, parent)
	assert.Equal(t, 1, slot)

	// The detached node can be reused.
	add.Left().Replace(eax)
	assert.Equal(t, "eax + 8", add.String())
}

func TestReplaceRoot(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	add := tree.Add(tree.NewLiteral(1), tree.NewLiteral(2))
	x := tree.NewLiteral(3)

	assert.True(t, add.Replace(x).IsZero())
	assert.True(t, x.IsRoot())

	// A node that has already been replaced looks just like a root.
	old := add.Left().Replace(x)
	assert.True(t, old.Replace(tree.NewLiteral(4)).IsZero())
	assert.Equal(t, "3 + 2", add.String())

	assert.True(t, expr.Node{}.Replace(x).IsZero())
}

func TestReplaceWithZero(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	args := tree.NewLiteral(1)
	call := tree.Call(tree.NewLiteral(0x401000), args)
	assert.Equal(t, "sub_401000(1)", call.String())

	assert.Equal(t, args, args.Replace(expr.Node{}))
	assert.True(t, call.Args().IsZero())
	assert.Equal(t, "sub_401000()", call.String())
}

func TestReplaceOwned(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	eax := tree.NewRegister(expr.Reg(0))
	ecx := tree.NewRegister(expr.Reg(1))
	tree.Add(tree.NewLiteral(1), eax)
	tree.Neg(ecx)

	assert.Panics(t, func() { eax.Replace(ecx) })
}

func TestReplaceCycle(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	eax := tree.NewRegister(expr.Reg(0))
	add := tree.Add(tree.NewLiteral(1), eax)
	neg := tree.Neg(add)

	// The operand is owned, so this fails before the cycle check.
	assert.Panics(t, func() { eax.Replace(tree.Deref(eax)) })
	// Here the replacement is the root of eax's own tree.
	assert.Panics(t, func() { eax.Replace(neg) })
	assert.Equal(t, "-(1 + eax)", neg.String())

	eax.Replace(tree.Deref(eax.Copy()))
	assert.Equal(t, "-(1 + *eax)", neg.String())
}

func TestSetOperand(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	one := tree.NewLiteral(1)
	add := tree.Add(one, tree.NewLiteral(2))

	three := tree.NewLiteral(3)
	add.SetOperand(0, three)
	assert.True(t, one.IsRoot(), "overwritten operand is detached")
	assert.Equal(t, "3 + 2", add.String())

	assert.Panics(t, func() { add.SetOperand(2, tree.NewLiteral(0)) })
	assert.Panics(t, func() { add.SetOperand(-1, tree.NewLiteral(0)) })
	assert.Panics(t, func() { add.SetOperand(1, three) })
	assert.Panics(t, func() { add.SetOperand(0, add) })
	assert.Panics(t, func() { one.SetOperand(0, tree.NewLiteral(0)) })
	assert.Panics(t, func() { expr.Node{}.SetOperand(0, one) })
}

func TestAssign(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	assert.Panics(t, func() { tree.Assign(tree.NewLiteral(5), tree.NewLiteral(1)) })
	assert.Panics(t, func() { tree.Assign(tree.Add(tree.NewLiteral(1), tree.NewLiteral(2)), tree.NewLiteral(1)) })
	assert.Panics(t, func() { tree.Assign(tree.Address(tree.NewRegister(expr.Reg(0))), tree.NewLiteral(1)) })
	assert.Panics(t, func() { tree.Assign(expr.Node{}, tree.NewLiteral(1)) })

	targets := []expr.Node{
		tree.NewRegister(expr.Reg(0)),
		tree.NewFlag(expr.Reg(3)),
		tree.NewVariable(expr.Reg(5).At(1), "v1"),
		tree.NewArgument(expr.Reg(1), "a1"),
		tree.Deref(tree.NewRegister(expr.Reg(0))),
	}
	for _, target := range targets {
		assert.True(t, target.Assignable(), "%#v", target)
		assert.False(t, target.IsDef())
		tree.Assign(target, tree.NewLiteral(1))
		assert.True(t, target.IsDef(), "%#v", target)
	}
}

func TestAssignOverwrite(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	eax := tree.NewRegister(expr.Reg(0))
	assign := tree.Assign(eax, tree.NewLiteral(1))
	assert.True(t, eax.IsDef())

	// Every write to the target slot is checked, not just the constructor.
	assert.Panics(t, func() { eax.Replace(tree.NewLiteral(2)) })
	assert.Panics(t, func() { assign.SetOperand(0, tree.NewLiteral(2)) })
	assert.Panics(t, func() { eax.Replace(expr.Node{}) })
	assert.Equal(t, eax, assign.Left())

	ecx := tree.NewRegister(expr.Reg(1))
	assert.False(t, ecx.IsDef())
	eax.Replace(ecx)
	assert.True(t, ecx.IsDef())
	assert.Equal(t, "ecx = 1", assign.String())

	deref := tree.Deref(tree.NewRegister(expr.Reg(6)))
	assign.SetOperand(0, deref)
	assert.True(t, deref.IsDef())
	assert.Equal(t, "*esi = 1", assign.String())

	// The right side carries no restriction.
	assign.Right().Replace(tree.NewLiteral(0x1000))
	assert.Equal(t, "*esi = 0x1000", assign.String())
	assert.False(t, assign.Right().IsDef())
}

func TestNewOp(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	lit := func(v uint64) expr.Node { return tree.NewLiteral(v) }

	assert.Equal(t, "~1", tree.NewOp(expr.OpNot, lit(1)).String())
	assert.Equal(t, "1 << 2", tree.NewOp(expr.OpShl, lit(1), lit(2)).String())
	assert.Equal(t, "1 ? 2 : 3", tree.NewOp(expr.OpCond, lit(1), lit(2), lit(3)).String())

	assert.Panics(t, func() { tree.NewOp(expr.OpNot) })
	assert.Panics(t, func() { tree.NewOp(expr.OpNot, lit(1), lit(2)) })
	assert.Panics(t, func() { tree.NewOp(expr.OpAdd, lit(1)) })
	assert.Panics(t, func() { tree.NewOp(expr.OpCond, lit(1), lit(2)) })
	assert.Panics(t, func() { tree.NewOp(expr.OpInvalid) })

	assert.Panics(t, func() { tree.NewUnary(expr.OpAdd, lit(1)) })
	assert.Panics(t, func() { tree.NewBinary(expr.OpNeg, lit(1), lit(2)) })
	assert.Panics(t, func() { tree.NewTernary(expr.OpAdd, lit(1), lit(2), lit(3)) })
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	c, x, y := tree.NewFlag(expr.Reg(3)), tree.NewLiteral(1), tree.NewLiteral(2)
	cond := tree.Cond(c, x, y)
	assert.Equal(t, c, cond.Cond())
	assert.Equal(t, x, cond.Then())
	assert.Equal(t, y, cond.Else())
	assert.Panics(t, func() { cond.Left() })
	assert.Panics(t, func() { cond.X() })

	v := tree.NewVariable(expr.Reg(0).At(2), "count")
	assert.Equal(t, expr.Reg(0).At(2), v.Location())
	assert.Equal(t, "count", v.Name())
	v.SetName("n")
	assert.Equal(t, "n", v.String())
	assert.Zero(t, v.Value())
	assert.Panics(t, func() { v.SetValue(1) })

	x.SetValue(42)
	assert.Equal(t, uint64(42), x.Value())
	assert.Panics(t, func() { x.SetName("x") })
	assert.Equal(t, expr.Location{}, x.Location())
	assert.Empty(t, x.Name())

	assert.True(t, cond.Is(expr.OpCond))
	assert.False(t, cond.Is(expr.OpInvalid))
	assert.False(t, x.Is(expr.OpInvalid))
	assert.Equal(t, 3, cond.Arity())
	assert.Equal(t, 0, x.Arity())

	var zero expr.Node
	assert.Equal(t, expr.KindInvalid, zero.Kind())
	assert.Equal(t, 0, zero.Arity())
	assert.Equal(t, expr.ID(0), zero.ID())
	assert.Equal(t, "<none>", zero.String())
	assert.Panics(t, func() { zero.Operand(0) })
}
