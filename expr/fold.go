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

// FoldAdd folds "+ lit" into n, which must be an [OpAdd] or [OpSub] node
// whose right operand is a literal. lit must be a literal.
//
// On x + c this produces x + (c+lit); on x - c it produces x - (c-lit).
// Arithmetic wraps around at 64 bits.
func (n Node) FoldAdd(lit Node) {
	n.fold(lit, false)
}

// FoldSub folds "- lit" into n, which must be an [OpAdd] or [OpSub] node
// whose right operand is a literal. lit must be a literal.
//
// On x + c this produces x + (c-lit); on x - c it produces x - (c+lit).
// Arithmetic wraps around at 64 bits.
func (n Node) FoldSub(lit Node) {
	n.fold(lit, true)
}

func (n Node) fold(lit Node, sub bool) {
	verb := "add"
	if sub {
		verb = "sub"
	}
	if lit.Kind() != KindLiteral {
		panic(fmt.Sprintf("exprtree/expr: cannot %s %v", verb, lit.describe()))
	}

	switch n.Op() {
	case OpAdd:
	case OpSub:
		sub = !sub
	default:
		panic(fmt.Sprintf("exprtree/expr: cannot fold into %v", n.describe()))
	}

	c := n.Operand(1)
	if c.Kind() != KindLiteral {
		panic(fmt.Sprintf("exprtree/expr: cannot fold into %v: right operand is %v", n.describe(), c.describe()))
	}

	defer n.tree.mutate()()
	raw := c.raw()
	if sub {
		raw.value -= lit.Value()
	} else {
		raw.value += lit.Value()
	}
}
