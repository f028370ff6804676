// Copyright 2020-2025 Buf Technologies, Inc.
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

// Package arena provides node storage addressed by compressed 32-bit
// handles instead of Go pointers.
//
// Trees of expression nodes are highly pointer-dense and are rewritten in
// place. Storing them in an arena keeps parent back-references as plain
// integers, so a parent link can never keep a detached subtree alive or form
// a reference cycle from the GC's point of view.
package arena

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

const (
	// minChunkShift is log2 of the length of the first chunk in an Arena.
	minChunkShift = 4
	minChunk      = 1 << minChunkShift
)

// Pointer is a handle to a value stored in an [Arena].
//
// A pointer's value is one plus the number of values allocated before it, so
// the zero Pointer is nil.
type Pointer[T any] uint32

// In looks up this pointer in the arena that allocated it.
//
// Panics if p is nil or out of range for a.
func (p Pointer[T]) In(a *Arena[T]) *T {
	return a.At(p)
}

// Arena is an append-only store of T whose elements never move once
// allocated.
//
// Values live in a table of chunks that double in size, which gives O(1)
// lookup by [Pointer] without ever copying old values the way growing a
// single slice would.
//
// A zero Arena is empty and ready to use.
type Arena[T any] struct {
	// Invariants:
	// 1. cap(chunks[0]) == minChunk.
	// 2. cap(chunks[n]) == 2*cap(chunks[n-1]).
	// 3. Every chunk except the last is full.
	chunks [][]T
}

// New allocates value in the arena and returns a pointer to it.
func (a *Arena[T]) New(value T) Pointer[T] {
	if a.chunks == nil {
		a.chunks = [][]T{make([]T, 0, minChunk)}
	}

	last := &a.chunks[len(a.chunks)-1]
	if len(*last) == cap(*last) {
		a.chunks = append(a.chunks, make([]T, 0, 2*cap(*last)))
		last = &a.chunks[len(a.chunks)-1]
	}

	*last = append(*last, value)
	return Pointer[T](a.Len())
}

// At dereferences p.
func (a *Arena[T]) At(p Pointer[T]) *T {
	if p == 0 {
		panic("arena: dereferenced nil pointer")
	}
	chunk, idx := a.locate(int(p) - 1)
	return &a.chunks[chunk][idx]
}

// Len returns the number of values allocated so far.
func (a *Arena[T]) Len() int {
	if len(a.chunks) == 0 {
		return 0
	}
	return a.sizeOfFirst(len(a.chunks)-1) + len(a.chunks[len(a.chunks)-1])
}

// All yields every allocated pointer along with its value, in allocation
// order.
func (a *Arena[T]) All() iter.Seq2[Pointer[T], *T] {
	return func(yield func(Pointer[T], *T) bool) {
		var p Pointer[T]
		for _, chunk := range a.chunks {
			for i := range chunk {
				p++
				if !yield(p, &chunk[i]) {
					return
				}
			}
		}
	}
}

// String implements [fmt.Stringer]. Chunk boundaries are shown with '|'.
func (a *Arena[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, chunk := range a.chunks {
		if i != 0 {
			b.WriteByte('|')
		}
		for j, v := range chunk {
			if j != 0 {
				b.WriteByte(' ')
			}
			fmt.Fprint(&b, v)
		}
	}
	b.WriteByte(']')
	return b.String()
}

// sizeOfFirst returns the total capacity of the first n chunks.
//
// Since chunk sizes are minChunk, 2*minChunk, 4*minChunk, ..., the sum of the
// first n is minChunk*(2^n - 1).
func (*Arena[T]) sizeOfFirst(n int) int {
	return (minChunk << n) - minChunk
}

// locate converts a zero-based index into (chunk, offset) coordinates,
// panicking if the index is out of range.
func (a *Arena[T]) locate(idx int) (int, int) {
	if idx < 0 || idx >= a.Len() {
		panic(fmt.Sprintf("arena: pointer out of range: %#x", idx+1))
	}

	// Chunk n starts at index minChunk*(2^n - 1). Adding minChunk turns the
	// starting indices into minChunk*2^n, whose high bit identifies n.
	chunk := bits.UintSize - bits.LeadingZeros(uint(idx)+minChunk)
	chunk -= minChunkShift + 1

	return chunk, idx - a.sizeOfFirst(chunk)
}
