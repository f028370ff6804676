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

// Package symtab provides a symbol and string-literal table for resolving
// addresses that appear as literals in expression trees.
//
// A [Table] implements [expr.Resolver].
package symtab

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/tidwall/btree"

	"github.com/rdecomp/exprtree/expr"
	"github.com/rdecomp/exprtree/internal/interval"
)

// ErrOverlap is returned when a string literal would overlap one already in
// the table.
var ErrOverlap = errors.New("overlapping string literal")

var _ expr.Resolver = (*Table)(nil)

// Table maps addresses to symbol names and to the string literals stored
// there.
//
// A zero Table is empty and ready to use. A Table may be read from several
// goroutines at once, but must not be modified concurrently with anything
// else.
type Table struct {
	names   btree.Map[uint64, string]
	strings interval.Map[uint64, string]
}

// AddName records name as the symbol at addr, replacing any previous one.
func (t *Table) AddName(addr uint64, name string) {
	t.names.Set(addr, name)
}

// AddString records text as a string literal occupying size bytes starting at
// addr. size must be at least one.
func (t *Table) AddString(addr, size uint64, text string) error {
	if size == 0 {
		return fmt.Errorf("symtab: empty string literal at %#x", addr)
	}
	if addr > math.MaxUint64-(size-1) {
		return fmt.Errorf("symtab: string literal at %#x runs past the end of the address space", addr)
	}

	end := addr + size - 1
	if overlap := t.strings.Insert(addr, end, text); overlap.Value != nil {
		return fmt.Errorf("symtab: %w: [%#x, %#x] overlaps [%#x, %#x]",
			ErrOverlap, addr, end, overlap.Start, overlap.End)
	}
	return nil
}

// AddStringData decodes data, the raw bytes of a NUL-terminated string
// literal at addr, and records it. The literal occupies all of data, even if
// the terminator appears earlier.
func (t *Table) AddStringData(addr uint64, data []byte, enc Encoding) error {
	text, err := enc.Decode(data)
	if err != nil {
		return fmt.Errorf("symtab: string literal at %#x: %w", addr, err)
	}
	return t.AddString(addr, uint64(len(data)), text)
}

// ResolveName implements [expr.Resolver].
func (t *Table) ResolveName(addr uint64) (string, bool) {
	return t.names.Get(addr)
}

// ResolveString implements [expr.Resolver].
//
// Only the first byte of a literal resolves to it; a pointer into the middle
// of a string is not a reference to that string.
func (t *Table) ResolveString(addr uint64) (string, bool) {
	s := t.strings.Get(addr)
	if s.Value == nil || s.Start != addr {
		return "", false
	}
	return *s.Value, true
}

// StringAt returns the string literal whose bytes contain addr, along with
// its starting address.
func (t *Table) StringAt(addr uint64) (start uint64, text string, ok bool) {
	s := t.strings.Get(addr)
	if !s.Contains(addr) {
		return 0, "", false
	}
	return s.Start, *s.Value, true
}

// Names returns an iterator over the symbols in this table in address order.
func (t *Table) Names() iter.Seq2[uint64, string] {
	return func(yield func(uint64, string) bool) {
		t.names.Scan(yield)
	}
}

// Strings returns an iterator over the string literals in this table in
// address order.
func (t *Table) Strings() iter.Seq2[uint64, string] {
	return func(yield func(uint64, string) bool) {
		for s := range t.strings.Intervals() {
			if !yield(s.Start, *s.Value) {
				return
			}
		}
	}
}

// Len returns the number of symbols and string literals in this table.
func (t *Table) Len() (names, strings int) {
	return t.names.Len(), t.strings.Len()
}
