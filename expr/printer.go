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
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/rdecomp/exprtree/arch"
)

// Resolver maps addresses found in literals to something more readable.
type Resolver interface {
	// ResolveName returns the symbol at addr, if there is one.
	ResolveName(addr uint64) (string, bool)

	// ResolveString returns the text of the string literal at addr, if there
	// is one. It is consulted before ResolveName.
	ResolveString(addr uint64) (string, bool)
}

// Printer renders expression trees as C-like text.
//
// The zero Printer renders every register as a placeholder and every literal
// as a number.
type Printer struct {
	// Register and flag names. May be nil.
	Registers *arch.Registers

	// Symbol and string resolution for literals. May be nil.
	Resolver Resolver

	// If positive, string literals wider than this many columns are cut short
	// and end in "…".
	MaxStringWidth int
}

// Print renders n.
func (p Printer) Print(n Node) string {
	var out strings.Builder
	p.print(&out, n)
	return out.String()
}

func (p Printer) print(out *strings.Builder, n Node) {
	switch n.Kind() {
	case KindInvalid:
		out.WriteString("<none>")

	case KindRegister:
		p.location(out, n.Name(), n.Location(), p.Registers.Register)

	case KindFlag:
		p.location(out, n.Name(), n.Location(), p.Registers.Flag)

	case KindLiteral:
		out.WriteString(p.literal(n.Value()))

	case KindVariable:
		p.named(out, n)

	case KindArgument:
		loc := n.Location()
		p.named(out, n)
		out.WriteByte('<')
		out.WriteString(p.register(loc.Reg, p.Registers.Register))
		out.WriteByte('>')

	case KindCall:
		callee := n.Callee()
		if callee.Kind() == KindLiteral {
			out.WriteString(p.function(callee.Value()))
		} else {
			out.WriteByte('(')
			p.print(out, callee)
			out.WriteByte(')')
		}
		out.WriteByte('(')
		if args := n.Args(); !args.IsZero() {
			p.print(out, args)
		}
		out.WriteByte(')')

	case KindUnary:
		op, x := n.Op(), n.X()
		switch op.Fixity() {
		case Function:
			out.WriteString(op.Symbol())
			out.WriteByte('(')
			p.print(out, x)
			out.WriteByte(')')
		case Postfix:
			p.operand(out, x)
			out.WriteString(op.Symbol())
		default:
			out.WriteString(op.Symbol())
			p.operand(out, x)
		}

	case KindBinary:
		p.print(out, n.Left())
		if n.Op() == OpComma {
			out.WriteString(", ")
		} else {
			out.WriteByte(' ')
			out.WriteString(n.Op().Symbol())
			out.WriteByte(' ')
		}
		p.print(out, n.Right())

	case KindTernary:
		p.print(out, n.Cond())
		out.WriteString(" ? ")
		p.print(out, n.Then())
		out.WriteString(" : ")
		p.print(out, n.Else())
	}
}

// operand prints the operand of a prefix or postfix operator, parenthesized
// unless it is bare.
func (p Printer) operand(out *strings.Builder, x Node) {
	if x.Kind().Bare() {
		p.print(out, x)
		return
	}
	out.WriteByte('(')
	p.print(out, x)
	out.WriteByte(')')
}

// location prints a register or flag. The version is shown even when the
// location has an explicit name.
func (p Printer) location(out *strings.Builder, name string, loc Location, table func(int) (string, bool)) {
	if name == "" {
		name = p.register(loc.Reg, table)
	}
	out.WriteString(name)
	if loc.Versioned {
		out.WriteByte('@')
		out.WriteString(strconv.Itoa(loc.Version))
	}
}

// named prints a variable or argument: its name, or else its location.
func (p Printer) named(out *strings.Builder, n Node) {
	if name := n.Name(); name != "" {
		out.WriteString(name)
		return
	}
	p.location(out, "", n.Location(), p.Registers.Register)
}

func (Printer) register(idx int, table func(int) (string, bool)) string {
	if name, ok := table(idx); ok {
		return name
	}
	return fmt.Sprintf("<#%d>", idx)
}

func (p Printer) literal(v uint64) string {
	if p.Resolver != nil {
		if s, ok := p.Resolver.ResolveString(v); ok && s != "" {
			return strconv.Quote(p.truncate(s))
		}
		if name, ok := p.Resolver.ResolveName(v); ok && name != "" {
			return name
		}
	}
	if v < 16 {
		return strconv.FormatUint(v, 10)
	}
	return fmt.Sprintf("0x%x", v)
}

func (p Printer) function(addr uint64) string {
	if p.Resolver != nil {
		if name, ok := p.Resolver.ResolveName(addr); ok && name != "" {
			return name
		}
	}
	return fmt.Sprintf("sub_%x", addr)
}

func (p Printer) truncate(s string) string {
	if p.MaxStringWidth <= 0 || uniseg.StringWidth(s) <= p.MaxStringWidth {
		return s
	}

	var out strings.Builder
	width := 0
	for g := uniseg.NewGraphemes(s); g.Next(); {
		w := uniseg.StringWidth(g.Str())
		if width+w > p.MaxStringWidth-1 {
			break
		}
		out.WriteString(g.Str())
		width += w
	}
	out.WriteString("…")
	return out.String()
}

// GoString implements [fmt.GoStringer], producing a debugging form that shows
// the tree structure, e.g. <Add <value 1> + <reg eax>>.
func (n Node) GoString() string {
	var out strings.Builder
	n.debug(&out)
	return out.String()
}

func (n Node) debug(out *strings.Builder) {
	if n.IsZero() {
		out.WriteString("<none>")
		return
	}

	p := Printer{Registers: n.tree.Registers()}
	switch k := n.Kind(); k {
	case KindRegister:
		fmt.Fprintf(out, "<reg %s>", p.Print(n))
	case KindFlag:
		fmt.Fprintf(out, "<flag %s>", p.Print(n))
	case KindLiteral:
		fmt.Fprintf(out, "<value %d>", n.Value())
	case KindVariable:
		fmt.Fprintf(out, "<var %s>", p.Print(n))
	case KindArgument:
		var name strings.Builder
		p.named(&name, n)
		fmt.Fprintf(out, "<arg %s>", name.String())
	case KindCall:
		out.WriteString("<call ")
		n.Callee().debug(out)
		out.WriteByte(' ')
		n.Args().debug(out)
		out.WriteByte('>')
	default:
		fmt.Fprintf(out, "<%v", n.Op())
		for i, x := range n.Operands() {
			out.WriteByte(' ')
			if k == KindTernary && i == 2 {
				out.WriteString(": ")
			} else if i == 1 || k == KindUnary {
				out.WriteString(n.Op().Symbol())
				out.WriteByte(' ')
			}
			x.debug(out)
		}
		out.WriteByte('>')
	}
}
