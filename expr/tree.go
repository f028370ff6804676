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
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"

	"github.com/rdecomp/exprtree/arch"
	"github.com/rdecomp/exprtree/internal/arena"
)

// Tree is the arena that owns a collection of expression nodes.
//
// A Tree may hold any number of disjoint expression trees; each [Node] with
// no parent is the root of one of them. Nodes from different Trees cannot be
// composed with each other; use [Tree.Import] to copy across.
//
// A Tree may be handed between goroutines, but only one goroutine may build
// or rewrite its nodes at a time. Overlapping mutations from two goroutines
// are detected and cause a panic.
//
// The zero Tree is empty and ready to use, and renders registers using
// [arch.X86].
type Tree struct {
	nodes arena.Arena[rawNode]
	regs  *arch.Registers

	// Goroutine id of the in-flight mutator, or zero.
	writer atomic.Int64
}

// ID is the handle of a node within its [Tree]. The zero ID is nil.
type ID uint32

type rawNode struct {
	kind  Kind
	op    Op
	isDef bool

	parent ID
	slot   uint8

	loc   Location
	name  string
	value uint64

	operands []ID
}

// NewTree returns a new, empty Tree whose nodes render registers using regs.
//
// If regs is nil, [arch.X86] is used.
func NewTree(regs *arch.Registers) *Tree {
	return &Tree{regs: regs}
}

// Registers returns the register table used by [Node.String].
func (t *Tree) Registers() *arch.Registers {
	if t.regs == nil {
		return defaultRegisters()
	}
	return t.regs
}

var defaultRegisters = sync.OnceValue(arch.X86)

// Len returns the number of nodes ever allocated in this Tree, including
// ones that are no longer reachable from any root.
func (t *Tree) Len() int {
	return t.nodes.Len()
}

// Node returns the node with the given ID, or the zero Node if id is nil.
func (t *Tree) Node(id ID) Node {
	if id == 0 {
		return Node{}
	}
	if int(id) > t.nodes.Len() {
		panic(fmt.Sprintf("exprtree/expr: node id out of range: %d", id))
	}
	return Node{tree: t, id: id}
}

// Roots yields every allocated node that currently has no parent, in
// allocation order. This includes detached nodes that nothing refers to
// anymore.
func (t *Tree) Roots() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for p, raw := range t.nodes.All() {
			if raw.parent == 0 && !yield(Node{tree: t, id: ID(p)}) {
				return
			}
		}
	}
}

func (t *Tree) raw(id ID) *rawNode {
	return arena.Pointer[rawNode](id).In(&t.nodes)
}

func (t *Tree) alloc(raw rawNode) Node {
	p := t.nodes.New(raw)
	return Node{tree: t, id: ID(p)}
}

// mutate marks the start of a mutation and returns a function that marks its
// end. Nested calls on the same goroutine are allowed.
func (t *Tree) mutate() func() {
	g := goid.Get()
	if t.writer.CompareAndSwap(0, g) {
		return t.release
	}
	if t.writer.Load() == g {
		return func() {}
	}
	panic("exprtree/expr: concurrent mutation of a Tree from two goroutines")
}

func (t *Tree) release() {
	t.writer.Store(0)
}

// panicIfNotOurs panics if any of the given nodes belongs to another Tree.
func (t *Tree) panicIfNotOurs(nodes ...Node) {
	for _, n := range nodes {
		if n.IsZero() || n.tree == t {
			continue
		}
		panic(fmt.Sprintf("exprtree/expr: node %v belongs to a different Tree; use Tree.Import", n.ID()))
	}
}
