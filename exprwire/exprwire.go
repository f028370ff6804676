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

// Package exprwire encodes expression trees in the protobuf wire format, so
// that trees can be saved by one tool and inspected or rewritten by another.
//
// A node is encoded as a message with the following fields:
//
//	1: kind     varint, an [expr.Kind]
//	2: op       varint, an [expr.Op]; omitted for leaves and calls
//	3: reg      varint; registers, flags, variables and arguments
//	4: version  varint; present only if the location is versioned
//	5: name     bytes; registers, flags, variables and arguments
//	6: value    varint; literals
//	7: operand  message, repeated once per slot in order
//
// An empty operand message stands for an empty slot; trailing empty slots
// may be left out. Unknown fields are skipped.
package exprwire

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/rdecomp/exprtree/expr"
)

// ErrMalformed is returned by [Decode] for input that does not describe a
// valid tree.
var ErrMalformed = errors.New("malformed expression tree")

// MaxDepth is the deepest tree [Decode] will accept.
const MaxDepth = 1000

const (
	fieldKind    protowire.Number = 1
	fieldOp      protowire.Number = 2
	fieldReg     protowire.Number = 3
	fieldVersion protowire.Number = 4
	fieldName    protowire.Number = 5
	fieldValue   protowire.Number = 6
	fieldOperand protowire.Number = 7
)

// Encode returns the encoding of the subtree rooted at n. The zero Node
// encodes as an empty message.
func Encode(n expr.Node) []byte {
	return Append(nil, n)
}

// Append is like [Encode], but appends to b.
func Append(b []byte, n expr.Node) []byte {
	if n.IsZero() {
		return b
	}

	b = protowire.AppendTag(b, fieldKind, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(n.Kind()))
	if op := n.Op(); op != expr.OpInvalid {
		b = protowire.AppendTag(b, fieldOp, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(op))
	}

	if n.Kind().IsLocation() {
		loc := n.Location()
		b = protowire.AppendTag(b, fieldReg, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(int64(loc.Reg)))
		if loc.Versioned {
			b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
			b = protowire.AppendVarint(b, uint64(int64(loc.Version)))
		}
	}
	if name := n.Name(); name != "" {
		b = protowire.AppendTag(b, fieldName, protowire.BytesType)
		b = protowire.AppendString(b, name)
	}
	if n.Kind() == expr.KindLiteral {
		b = protowire.AppendTag(b, fieldValue, protowire.VarintType)
		b = protowire.AppendVarint(b, n.Value())
	}

	for _, x := range n.Operands() {
		b = protowire.AppendTag(b, fieldOperand, protowire.BytesType)
		b = protowire.AppendBytes(b, Encode(x))
	}
	return b
}

// Decode decodes a tree from b into t and returns its root.
//
// Empty input decodes to the zero Node. If decoding fails, the returned
// error wraps [ErrMalformed], and t may be left holding unreachable nodes
// from the part of the input that was read.
func Decode(t *expr.Tree, b []byte) (expr.Node, error) {
	d := decoder{tree: t}
	n, err := d.node(b, 0)
	if err != nil {
		return expr.Node{}, fmt.Errorf("exprwire: %w", err)
	}
	return n, nil
}

type decoder struct {
	tree *expr.Tree
}

// message holds the fields of one encoded node.
type message struct {
	kind, op     uint64
	reg, version int64
	name         string
	value        uint64

	has      map[protowire.Number]bool
	operands [][]byte
}

func (d decoder) node(b []byte, depth int) (expr.Node, error) {
	if len(b) == 0 {
		return expr.Node{}, nil
	}
	if depth > MaxDepth {
		return expr.Node{}, fmt.Errorf("%w: nested deeper than %d", ErrMalformed, MaxDepth)
	}

	m, err := parse(b)
	if err != nil {
		return expr.Node{}, err
	}
	if err := m.check(); err != nil {
		return expr.Node{}, err
	}

	kind := expr.Kind(m.kind)
	loc := expr.Reg(int(m.reg))
	if m.has[fieldVersion] {
		loc = loc.At(int(m.version))
	}

	switch kind {
	case expr.KindRegister:
		if m.name != "" {
			return d.tree.NewNamedRegister(loc, m.name), nil
		}
		return d.tree.NewRegister(loc), nil
	case expr.KindFlag:
		n := d.tree.NewFlag(loc)
		if m.name != "" {
			n.SetName(m.name)
		}
		return n, nil
	case expr.KindLiteral:
		return d.tree.NewLiteral(m.value), nil
	case expr.KindVariable:
		return d.tree.NewVariable(loc, m.name), nil
	case expr.KindArgument:
		return d.tree.NewArgument(loc, m.name), nil
	}

	op := expr.Op(m.op)
	operands := make([]expr.Node, m.slots())
	for i, sub := range m.operands {
		x, err := d.node(sub, depth+1)
		if err != nil {
			return expr.Node{}, err
		}
		operands[i] = x
	}

	if kind == expr.KindCall {
		return d.tree.NewCall(operands[0], operands[1]), nil
	}
	if op == expr.OpAssign && !operands[0].Assignable() {
		return expr.Node{}, fmt.Errorf("%w: cannot assign to %v", ErrMalformed, operands[0].Kind())
	}
	return d.tree.NewOp(op, operands...), nil
}

// parse splits b into fields, without interpreting operands.
func parse(b []byte) (*message, error) {
	m := &message{has: make(map[protowire.Number]bool)}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		want := protowire.VarintType
		switch num {
		case fieldName, fieldOperand:
			want = protowire.BytesType
		case fieldKind, fieldOp, fieldReg, fieldVersion, fieldValue:
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		if typ != want {
			return nil, fmt.Errorf("%w: field %d has wire type %d, want %d", ErrMalformed, num, typ, want)
		}

		if want == protowire.BytesType {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
			if num == fieldName {
				m.name = string(v)
			} else {
				m.operands = append(m.operands, v)
			}
		} else {
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
			switch num {
			case fieldKind:
				m.kind = v
			case fieldOp:
				m.op = v
			case fieldReg:
				m.reg = int64(v)
			case fieldVersion:
				m.version = int64(v)
			case fieldValue:
				m.value = v
			}
		}
		m.has[num] = true
	}
	return m, nil
}

// check validates everything about m that does not depend on its operands.
func (m *message) check() error {
	if m.kind == uint64(expr.KindInvalid) || m.kind > uint64(expr.KindTernary) {
		return fmt.Errorf("%w: unknown kind %d", ErrMalformed, m.kind)
	}
	kind := expr.Kind(m.kind)

	allowed := map[protowire.Number]bool{fieldKind: true}
	switch kind {
	case expr.KindRegister, expr.KindFlag, expr.KindVariable, expr.KindArgument:
		allowed[fieldReg], allowed[fieldVersion], allowed[fieldName] = true, true, true
	case expr.KindLiteral:
		allowed[fieldValue] = true
	case expr.KindCall:
		allowed[fieldOperand] = true
	default:
		allowed[fieldOp], allowed[fieldOperand] = true, true
	}
	for num := range m.has {
		if !allowed[num] {
			return fmt.Errorf("%w: field %d is not valid on a %v node", ErrMalformed, num, kind)
		}
	}

	switch kind {
	case expr.KindUnary, expr.KindBinary, expr.KindTernary:
		if m.op > 0xff || expr.Op(m.op).Kind() != kind {
			return fmt.Errorf("%w: %v node with operator %d", ErrMalformed, kind, m.op)
		}
	}

	if len(m.operands) > m.slots() {
		return fmt.Errorf("%w: %v node with %d operands", ErrMalformed, kind, len(m.operands))
	}
	return nil
}

// slots returns the number of operand slots of a checked message.
func (m *message) slots() int {
	if expr.Kind(m.kind) == expr.KindCall {
		return 2
	}
	return expr.Op(m.op).Arity()
}
