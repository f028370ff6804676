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

import "fmt"

// NewRegister returns a new register node for loc.
func (t *Tree) NewRegister(loc Location) Node {
	defer t.mutate()()
	return t.alloc(rawNode{kind: KindRegister, loc: loc})
}

// NewNamedRegister is like [Tree.NewRegister], but gives the register an
// explicit display name that overrides the register table.
func (t *Tree) NewNamedRegister(loc Location, name string) Node {
	defer t.mutate()()
	return t.alloc(rawNode{kind: KindRegister, loc: loc, name: name})
}

// NewFlag returns a new condition-flag node for loc.
func (t *Tree) NewFlag(loc Location) Node {
	defer t.mutate()()
	return t.alloc(rawNode{kind: KindFlag, loc: loc})
}

// NewLiteral returns a new literal node.
func (t *Tree) NewLiteral(value uint64) Node {
	defer t.mutate()()
	return t.alloc(rawNode{kind: KindLiteral, value: value})
}

// NewVariable returns a new local variable stored in loc.
//
// If name is empty, the variable is displayed as its location.
func (t *Tree) NewVariable(loc Location, name string) Node {
	defer t.mutate()()
	return t.alloc(rawNode{kind: KindVariable, loc: loc, name: name})
}

// NewArgument returns a new formal parameter passed in loc.
//
// If name is empty, the argument is displayed as its location.
func (t *Tree) NewArgument(loc Location, name string) Node {
	defer t.mutate()()
	return t.alloc(rawNode{kind: KindArgument, loc: loc, name: name})
}

// NewCall returns a new call of callee. args may be zero for a call with no
// arguments; several arguments are joined with [OpComma].
func (t *Tree) NewCall(callee, args Node) Node {
	return t.newComposite(KindCall, OpInvalid, callee, args)
}

// NewUnary returns a new unary node. Panics if op is not a unary operator.
func (t *Tree) NewUnary(op Op, x Node) Node {
	t.panicIfNotKind(op, KindUnary)
	return t.newComposite(KindUnary, op, x)
}

// NewBinary returns a new binary node. Panics if op is not a binary
// operator, or if op is [OpAssign] and x is not assignable.
func (t *Tree) NewBinary(op Op, x, y Node) Node {
	t.panicIfNotKind(op, KindBinary)
	return t.newComposite(KindBinary, op, x, y)
}

// NewTernary returns a new ternary node. Panics if op is not a ternary
// operator.
func (t *Tree) NewTernary(op Op, c, x, y Node) Node {
	t.panicIfNotKind(op, KindTernary)
	return t.newComposite(KindTernary, op, c, x, y)
}

// NewOp returns a new node applying op to operands.
//
// Panics if len(operands) is not op's arity.
func (t *Tree) NewOp(op Op, operands ...Node) Node {
	if !op.Valid() {
		panic(fmt.Sprintf("exprtree/expr: invalid operator %v", op))
	}
	if len(operands) != op.Arity() {
		panic(fmt.Sprintf("exprtree/expr: %v takes %d operands, got %d", op, op.Arity(), len(operands)))
	}
	return t.newComposite(op.Kind(), op, operands...)
}

// Call is shorthand for [Tree.NewCall].
func (t *Tree) Call(callee, args Node) Node { return t.NewCall(callee, args) }

// Not returns ~x.
func (t *Tree) Not(x Node) Node { return t.NewUnary(OpNot, x) }

// BoolNot returns !x.
func (t *Tree) BoolNot(x Node) Node { return t.NewUnary(OpBoolNot, x) }

// Deref returns *x. The result is assignable.
func (t *Tree) Deref(x Node) Node { return t.NewUnary(OpDeref, x) }

// Address returns &x.
func (t *Tree) Address(x Node) Node { return t.NewUnary(OpAddress, x) }

// Neg returns -x.
func (t *Tree) Neg(x Node) Node { return t.NewUnary(OpNeg, x) }

// Comma returns x, y.
func (t *Tree) Comma(x, y Node) Node { return t.NewBinary(OpComma, x, y) }

// Assign returns x = y, marking x as a definition. Panics if x is not
// assignable.
func (t *Tree) Assign(x, y Node) Node { return t.NewBinary(OpAssign, x, y) }

// Add returns x + y.
func (t *Tree) Add(x, y Node) Node { return t.NewBinary(OpAdd, x, y) }

// Sub returns x - y.
func (t *Tree) Sub(x, y Node) Node { return t.NewBinary(OpSub, x, y) }

// Mul returns x * y.
func (t *Tree) Mul(x, y Node) Node { return t.NewBinary(OpMul, x, y) }

// Cond returns c ? x : y.
func (t *Tree) Cond(c, x, y Node) Node { return t.NewTernary(OpCond, c, x, y) }

func (t *Tree) newComposite(kind Kind, op Op, operands ...Node) Node {
	// Check everything up front so that a failed construction does not leave
	// operands attached to a half-built node.
	owner := func() string { return fmt.Sprintf("new %v %v", kind, op) }
	for i, x := range operands {
		t.checkOperand(op, i, x, owner)
		for j, y := range operands[:i] {
			if !x.IsZero() && x == y {
				panic(fmt.Sprintf("exprtree/expr: %v passed as operands %d and %d of %s", x.describe(), j, i, owner()))
			}
		}
	}

	defer t.mutate()()
	n := t.alloc(rawNode{
		kind:     kind,
		op:       op,
		operands: make([]ID, len(operands)),
	})
	for i, x := range operands {
		t.attach(n, i, x)
	}
	return n
}

func (t *Tree) panicIfNotKind(op Op, kind Kind) {
	if op.Kind() != kind {
		panic(fmt.Sprintf("exprtree/expr: %v is not a %v operator", op, kind))
	}
}
