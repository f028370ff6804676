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

package expr_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rdecomp/exprtree/arch"
	"github.com/rdecomp/exprtree/expr"
)

type resolver struct {
	names   map[uint64]string
	strings map[uint64]string
}

func (r resolver) ResolveName(addr uint64) (string, bool) {
	s, ok := r.names[addr]
	return s, ok
}

func (r resolver) ResolveString(addr uint64) (string, bool) {
	s, ok := r.strings[addr]
	return s, ok
}

func TestPrintReplace(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	reg := tree.NewRegister(expr.Reg(0))
	add := tree.Add(tree.NewLiteral(1), reg)
	assert.Equal(t, "1 + eax", add.String())

	reg.Replace(tree.NewLiteral(8))
	assert.Equal(t, "1 + 8", add.String())
	assert.Equal(t, "eax", reg.String())
	assert.True(t, reg.IsRoot())
}

func TestPrint(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	reg := func(i int) expr.Node { return tree.NewRegister(expr.Reg(i)) }
	lit := tree.NewLiteral
	zf := func() expr.Node { return tree.NewFlag(expr.Reg(3)) }

	tests := []struct {
		node expr.Node
		want string
	}{
		{expr.Node{}, "<none>"},

		{reg(0), "eax"},
		{tree.NewRegister(expr.Reg(5).At(3)), "ebp@3"},
		{tree.NewNamedRegister(expr.Reg(0).At(2), "p"), "p@2"},
		{tree.NewNamedRegister(expr.Reg(0), "p"), "p"},
		{tree.NewRegister(expr.Reg(99)), "<#99>"},
		{zf(), "zf"},
		{tree.NewFlag(expr.Reg(3).At(1)), "zf@1"},

		{lit(0), "0"},
		{lit(15), "15"},
		{lit(16), "0x10"},
		{lit(0xdeadbeef), "0xdeadbeef"},

		{tree.NewVariable(expr.Reg(4).At(2), "local_8"), "local_8"},
		{tree.NewVariable(expr.Reg(4).At(2), ""), "esp@2"},
		{tree.NewArgument(expr.Reg(1), "argc"), "argc<ecx>"},

		{tree.Call(lit(0x401000), expr.Node{}), "sub_401000()"},
		{tree.Call(lit(0x401000), tree.Comma(lit(1), reg(1))), "sub_401000(1, ecx)"},
		{tree.Call(tree.Deref(reg(0)), lit(2)), "(*eax)(2)"},

		{tree.Deref(reg(0)), "*eax"},
		{tree.Deref(lit(8)), "*(8)"},
		{tree.Deref(tree.Add(reg(0), lit(4))), "*(eax + 4)"},
		{tree.Not(zf()), "~(zf)"},
		{tree.BoolNot(tree.NewVariable(expr.Reg(0), "ok")), "!ok"},
		{tree.Address(tree.NewArgument(expr.Reg(2), "buf")), "&buf<edx>"},
		{tree.Neg(tree.Neg(reg(0))), "-(-eax)"},
		{tree.NewUnary(expr.OpPreInc, reg(6)), "++esi"},
		{tree.NewUnary(expr.OpPostDec, reg(7)), "edi--"},
		{tree.NewUnary(expr.OpPostInc, tree.Deref(reg(7))), "(*edi)++"},
		{tree.NewUnary(expr.OpSign, tree.Sub(reg(0), reg(1))), "SIGN(eax - ecx)"},
		{tree.NewUnary(expr.OpCarry, reg(0)), "CARRY(eax)"},

		{tree.Comma(reg(0), reg(1)), "eax, ecx"},
		{tree.Assign(reg(0), lit(1)), "eax = 1"},
		{tree.NewBinary(expr.OpShl, reg(0), lit(2)), "eax << 2"},
		{tree.NewBinary(expr.OpBoolAnd, zf(), tree.NewBinary(expr.OpNe, reg(0), lit(0))), "zf && eax != 0"},
		{tree.Cond(zf(), lit(1), lit(2)), "zf ? 1 : 2"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestPrintResolver(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	r := resolver{
		names: map[uint64]string{
			0x401000: "main",
			0x402000: "greeting",
		},
		strings: map[uint64]string{
			0x402000: "hello, world\n",
			0x403000: "日本語です",
			0x404000: "",
		},
	}

	tests := []struct {
		name  string
		width int
		node  expr.Node
		want  string
	}{
		{"name", 0, tree.NewLiteral(0x401000), "main"},
		{"string-first", 0, tree.NewLiteral(0x402000), `"hello, world\n"`},
		{"empty-string", 0, tree.NewLiteral(0x404000), "0x404000"},
		{"unknown", 0, tree.NewLiteral(0x405000), "0x405000"},
		{"truncate", 6, tree.NewLiteral(0x402000), `"hello…"`},
		{"truncate-wide", 5, tree.NewLiteral(0x403000), `"日本…"`},
		{"fits", 13, tree.NewLiteral(0x402000), `"hello, world\n"`},
		{"call", 0, tree.Call(tree.NewLiteral(0x401000), expr.Node{}), "main()"},
		{"call-unknown", 0, tree.Call(tree.NewLiteral(0x401234), expr.Node{}), "sub_401234()"},
		{"call-string", 0, tree.Call(tree.NewLiteral(0x403000), expr.Node{}), "sub_403000()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := expr.Printer{
				Registers:      arch.X86(),
				Resolver:       r,
				MaxStringWidth: tt.width,
			}
			assert.Equal(t, tt.want, p.Print(tt.node))
		})
	}
}

func TestPrintRegisters(t *testing.T) {
	t.Parallel()

	x64, err := arch.Builtin("x86-64")
	assert.NoError(t, err)

	tree := expr.NewTree(x64)
	n := tree.Add(tree.NewRegister(expr.Reg(8)), tree.NewFlag(expr.Reg(0)))
	assert.Equal(t, "r8 + cf", n.String())
	assert.Equal(t, "<#8> + <#0>", expr.Printer{}.Print(n))
	assert.Equal(t, "eax", expr.Printer{Registers: arch.X86()}.Print(tree.NewRegister(expr.Reg(0))))
}

func TestGoString(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	reg := func(i int) expr.Node { return tree.NewRegister(expr.Reg(i)) }
	zf := tree.NewFlag(expr.Reg(3))

	tests := []struct {
		node expr.Node
		want string
	}{
		{expr.Node{}, "<none>"},
		{reg(0), "<reg eax>"},
		{zf, "<flag zf>"},
		{tree.NewLiteral(0x10), "<value 16>"},
		{tree.NewVariable(expr.Reg(0), "x"), "<var x>"},
		{tree.NewArgument(expr.Reg(0), "x"), "<arg x>"},
		{tree.Call(tree.NewLiteral(1), expr.Node{}), "<call <value 1> <none>>"},
		{tree.Deref(reg(0)), "<Deref * <reg eax>>"},
		{tree.Add(tree.NewLiteral(1), reg(0)), "<Add <value 1> + <reg eax>>"},
		{tree.Cond(zf, reg(0), reg(1)), "<Cond <flag zf> ? <reg eax> : <reg ecx>>"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fmt.Sprintf("%#v", tt.node))
	}
}
