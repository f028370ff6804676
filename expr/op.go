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

// Op is the operator tag of a [KindUnary], [KindBinary] or [KindTernary]
// node. Leaves and calls have [OpInvalid].
//
// Op values are part of the exprwire encoding and must not be renumbered.
const (
	OpInvalid Op = iota

	OpNot      // Bitwise NOT, ~x.
	OpBoolNot  // Boolean NOT, !x.
	OpDeref    // Pointer dereference, *x.
	OpAddress  // Address-of, &x.
	OpNeg      // Arithmetic negation, -x.
	OpPreInc   // ++x.
	OpPreDec   // --x.
	OpPostInc  // x++.
	OpPostDec  // x--.
	OpSign     // The sign flag produced by x.
	OpOverflow // The overflow flag produced by x.
	OpParity   // The parity flag produced by x.
	OpAdjust   // The adjust (auxiliary carry) flag produced by x.
	OpCarry    // The carry flag produced by x.

	OpComma   // x, y
	OpAssign  // x = y
	OpAdd     // x + y
	OpSub     // x - y
	OpMul     // x * y
	OpDiv     // x / y
	OpShl     // x << y
	OpShr     // x >> y
	OpXor     // x ^ y
	OpAnd     // x & y
	OpOr      // x | y
	OpBoolAnd // x && y
	OpBoolOr  // x || y
	OpEq      // x == y
	OpNe      // x != y
	OpLe      // x <= y
	OpGe      // x >= y
	OpLt      // x < y
	OpGt      // x > y

	OpCond // c ? x : y

	opCount
)

// Op is an operator.
type Op uint8

// Fixity describes where an operator's symbol goes relative to its operands.
type Fixity uint8

const (
	Infix    Fixity = iota // x + y, c ? x : y
	Prefix                 // -x
	Postfix                // x++
	Function               // SIGN(x)
)

type opInfo struct {
	name   string
	symbol string
	kind   Kind
	fixity Fixity
}

var opTable = [opCount]opInfo{
	OpNot:      {"Not", "~", KindUnary, Prefix},
	OpBoolNot:  {"BoolNot", "!", KindUnary, Prefix},
	OpDeref:    {"Deref", "*", KindUnary, Prefix},
	OpAddress:  {"Address", "&", KindUnary, Prefix},
	OpNeg:      {"Neg", "-", KindUnary, Prefix},
	OpPreInc:   {"PreInc", "++", KindUnary, Prefix},
	OpPreDec:   {"PreDec", "--", KindUnary, Prefix},
	OpPostInc:  {"PostInc", "++", KindUnary, Postfix},
	OpPostDec:  {"PostDec", "--", KindUnary, Postfix},
	OpSign:     {"Sign", "SIGN", KindUnary, Function},
	OpOverflow: {"Overflow", "OVERFLOW", KindUnary, Function},
	OpParity:   {"Parity", "PARITY", KindUnary, Function},
	OpAdjust:   {"Adjust", "ADJUST", KindUnary, Function},
	OpCarry:    {"Carry", "CARRY", KindUnary, Function},

	OpComma:   {"Comma", ",", KindBinary, Infix},
	OpAssign:  {"Assign", "=", KindBinary, Infix},
	OpAdd:     {"Add", "+", KindBinary, Infix},
	OpSub:     {"Sub", "-", KindBinary, Infix},
	OpMul:     {"Mul", "*", KindBinary, Infix},
	OpDiv:     {"Div", "/", KindBinary, Infix},
	OpShl:     {"Shl", "<<", KindBinary, Infix},
	OpShr:     {"Shr", ">>", KindBinary, Infix},
	OpXor:     {"Xor", "^", KindBinary, Infix},
	OpAnd:     {"And", "&", KindBinary, Infix},
	OpOr:      {"Or", "|", KindBinary, Infix},
	OpBoolAnd: {"BoolAnd", "&&", KindBinary, Infix},
	OpBoolOr:  {"BoolOr", "||", KindBinary, Infix},
	OpEq:      {"Eq", "==", KindBinary, Infix},
	OpNe:      {"Ne", "!=", KindBinary, Infix},
	OpLe:      {"Le", "<=", KindBinary, Infix},
	OpGe:      {"Ge", ">=", KindBinary, Infix},
	OpLt:      {"Lt", "<", KindBinary, Infix},
	OpGt:      {"Gt", ">", KindBinary, Infix},

	OpCond: {"Cond", "?", KindTernary, Infix},
}

// Valid returns whether this is a real operator.
func (o Op) Valid() bool {
	return o > OpInvalid && o < opCount
}

// Kind returns the node kind this operator builds: [KindUnary], [KindBinary]
// or [KindTernary]. Returns [KindInvalid] for invalid operators.
func (o Op) Kind() Kind {
	if !o.Valid() {
		return KindInvalid
	}
	return opTable[o].kind
}

// Arity returns the number of operands this operator takes.
func (o Op) Arity() int {
	return o.Kind().arity()
}

// Symbol returns the operator's source symbol, e.g. "+" or "SIGN".
//
// The symbol is not unique: [OpPreInc] and [OpPostInc] share "++".
func (o Op) Symbol() string {
	if !o.Valid() {
		return ""
	}
	return opTable[o].symbol
}

// Fixity returns where the operator's symbol is placed when rendered.
func (o Op) Fixity() Fixity {
	if !o.Valid() {
		return Infix
	}
	return opTable[o].fixity
}

// Assignable returns whether a unary node with this operator may be the
// target of an assignment. Only [OpDeref] is.
func (o Op) Assignable() bool {
	return o == OpDeref
}

// IsFlag returns whether this operator extracts a condition-code bit.
func (o Op) IsFlag() bool {
	return o >= OpSign && o <= OpCarry
}

// String implements [fmt.Stringer].
func (o Op) String() string {
	if !o.Valid() {
		if o == OpInvalid {
			return "Invalid"
		}
		return fmt.Sprintf("expr.Op(%d)", int(o))
	}
	return opTable[o].name
}

// arity returns the number of operand slots of a node of kind k.
func (k Kind) arity() int {
	switch k {
	case KindUnary:
		return 1
	case KindCall, KindBinary:
		return 2
	case KindTernary:
		return 3
	default:
		return 0
	}
}
