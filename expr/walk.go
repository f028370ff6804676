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

	"github.com/rdecomp/exprtree/internal/ext/iterx"
)

// All returns an iterator over every node in the subtree rooted at n,
// depth-first and left to right, in post-order: each node is yielded after
// all of its operands. Empty operand slots are skipped.
//
// Each call to the returned function starts a fresh traversal. Operand slots
// are read as the traversal reaches them, so rewriting the node just yielded,
// or anything outside the subtree being walked, is safe.
func (n Node) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if !n.IsZero() {
			n.walk(yield)
		}
	}
}

func (n Node) walk(yield func(Node) bool) bool {
	for i := range n.Arity() {
		x := n.Operand(i)
		if !x.IsZero() && !x.walk(yield) {
			return false
		}
	}
	return yield(n)
}

// Find returns the first node in [Node.All] order for which match returns
// true, or the zero Node.
func (n Node) Find(match func(Node) bool) Node {
	found, _ := iterx.First(iterx.Filter(n.All(), match))
	return found
}

// Count returns the number of nodes in [Node.All] for which match returns
// true. A nil match counts every node.
func (n Node) Count(match func(Node) bool) int {
	return iterx.Count(n.All(), match)
}

// Contains returns whether some node in n's subtree is structurally equal
// to x, as reported by [Node.Equal].
func (n Node) Contains(x Node) bool {
	return !n.Find(x.Equal).IsZero()
}

// Uses returns the nodes of the given kind in the subtree rooted at n that
// refer to loc, without regard to version, and are not definitions.
//
// Registers and flags are numbered independently, so Uses(KindRegister, loc)
// never yields a flag with the same index. kind must be a location kind.
func (n Node) Uses(kind Kind, loc Location) iter.Seq[Node] {
	if !kind.IsLocation() {
		panic(fmt.Sprintf("expr: Uses of non-location kind %v", kind))
	}
	return iterx.Filter(n.All(), func(x Node) bool {
		return x.Kind() == kind && !x.IsDef() && x.Location().Reg == loc.Reg
	})
}
