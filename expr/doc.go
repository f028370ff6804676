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

// Package expr is the expression tree used to describe the semantics of
// decompiled machine instructions.
//
// Trees are built from leaves (registers, condition flags, literals,
// variables and arguments) and composites (calls, and unary, binary and
// ternary operators), and are then rewritten in place by simplification and
// propagation passes.
//
// # Trees and Nodes
//
// Every node lives in a [Tree], which acts as an arena. A [Node] is a small
// handle, a Tree pointer plus an [ID], and should be passed by value. The
// zero Node means "no node".
//
// # Ownership
//
// A node occupies at most one operand slot at a time. Composite constructors
// and [Node.SetOperand] record each operand's parent and slot, and refuse to
// place a node that already has a parent. A pass that needs the same
// subexpression in two places copies it first:
//
//	loc := t.NewRegister(expr.Reg(0))   // eax
//	e := t.Add(t.NewLiteral(1), loc)    // 1 + eax
//	loc.Replace(t.NewLiteral(8))        // e is now 1 + 8
//
//	lit := e.Right()
//	lit.Replace(t.Deref(lit.Copy()))    // 1 + *(8)
//
// Because the parent of every node is known, [Node.Replace] can substitute a
// node without knowing what it is an operand of. This is the primitive that
// rewriting passes are built on, together with [Node.All] to find candidates,
// [Node.Copy] and [Node.Equal].
//
// # Assignments
//
// The left side of an [OpAssign] node must be [Node.Assignable]: a location,
// or a pointer dereference. Whatever occupies that slot is marked as a
// definition ([Node.IsDef]).
//
// # Contract violations
//
// Breaking any of the rules above is a bug in the calling pass, and panics.
package expr
