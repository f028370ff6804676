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

// Kind identifies the shape of a [Node].
//
// Kind values are part of the exprwire encoding and must not be renumbered.
const (
	KindInvalid Kind = iota

	KindRegister // A machine register, optionally versioned.
	KindFlag     // A condition-code bit.
	KindLiteral  // An integer constant.
	KindVariable // A named local variable living in some location.
	KindArgument // A named formal parameter living in some location.

	KindCall    // A call: callee and argument list.
	KindUnary   // A unary operator application.
	KindBinary  // A binary operator application.
	KindTernary // A ternary operator application.
)

// Kind identifies what kind of node a particular [Node] is.
type Kind uint8

// IsLeaf returns whether nodes of this kind have no operand slots.
func (k Kind) IsLeaf() bool {
	return k >= KindRegister && k <= KindArgument
}

// IsLocation returns whether nodes of this kind carry a [Location].
func (k Kind) IsLocation() bool {
	switch k {
	case KindRegister, KindFlag, KindVariable, KindArgument:
		return true
	default:
		return false
	}
}

// Assignable returns whether every node of this kind may be the target of an
// assignment.
//
// Of the composite kinds, only a unary dereference is assignable, which
// depends on the operator; use [Node.Assignable] to check a particular node.
func (k Kind) Assignable() bool {
	return k.IsLocation()
}

// Bare returns whether nodes of this kind render without parentheses when
// they are the operand of a unary operator.
func (k Kind) Bare() bool {
	switch k {
	case KindRegister, KindVariable, KindArgument:
		return true
	default:
		return false
	}
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindRegister:
		return "Register"
	case KindFlag:
		return "Flag"
	case KindLiteral:
		return "Literal"
	case KindVariable:
		return "Variable"
	case KindArgument:
		return "Argument"
	case KindCall:
		return "Call"
	case KindUnary:
		return "Unary"
	case KindBinary:
		return "Binary"
	case KindTernary:
		return "Ternary"
	default:
		return fmt.Sprintf("expr.Kind(%d)", int(k))
	}
}
