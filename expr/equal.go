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

// Equal returns whether n and other are structurally equal: they have the
// same kind and operator, the same identifying value, and pairwise equal
// operands in the same order.
//
// Unary operators are compared by symbol, so ++x and x++ are equal.
// Display names are not compared, and neither is whether a node is a
// definition. Operand order always matters, even for commutative operators:
// x + y is not equal to y + x.
//
// n and other may belong to different Trees. Two zero Nodes are equal.
func (n Node) Equal(other Node) bool {
	if n.IsZero() || other.IsZero() {
		return n.IsZero() == other.IsZero()
	}
	if n == other {
		return true
	}

	a, b := n.raw(), other.raw()
	if a.kind != b.kind {
		return false
	}
	if a.kind == KindUnary {
		if a.op.Symbol() != b.op.Symbol() {
			return false
		}
	} else if a.op != b.op {
		return false
	}

	switch {
	case a.kind == KindLiteral:
		return a.value == b.value
	case a.kind.IsLocation():
		return a.loc.Equal(b.loc)
	}

	if len(a.operands) != len(b.operands) {
		return false
	}
	for i := range a.operands {
		if !n.tree.Node(a.operands[i]).Equal(other.tree.Node(b.operands[i])) {
			return false
		}
	}
	return true
}
