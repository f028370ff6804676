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

// Copy returns a deep copy of the subtree rooted at n, in n's Tree.
//
// The copy has no parent and shares no nodes with n, so it can be placed
// anywhere, including back into the tree n came from. It is [Node.Equal] to
// n. Names and versions are preserved; definition marks are not, except that
// assignment targets within the copy are marked as usual.
//
// Copying the zero Node returns the zero Node.
func (n Node) Copy() Node {
	if n.IsZero() {
		return Node{}
	}
	return n.tree.Import(n)
}

// Import is like [Node.Copy], but places the copy in t. n may belong to any
// Tree, including t.
func (t *Tree) Import(n Node) Node {
	if n.IsZero() {
		return Node{}
	}
	defer t.mutate()()
	return t.clone(n)
}

func (t *Tree) clone(n Node) Node {
	// Arena values never move, so raw stays valid across the allocations
	// below even when n lives in t.
	raw := n.raw()
	if raw.kind.IsLeaf() {
		return t.alloc(rawNode{
			kind:  raw.kind,
			loc:   raw.loc,
			name:  raw.name,
			value: raw.value,
		})
	}

	operands := make([]Node, len(raw.operands))
	for i, id := range raw.operands {
		if id != 0 {
			operands[i] = t.clone(n.tree.Node(id))
		}
	}

	c := t.alloc(rawNode{
		kind:     raw.kind,
		op:       raw.op,
		operands: make([]ID, len(operands)),
	})
	for i, x := range operands {
		t.attach(c, i, x)
	}
	return c
}
