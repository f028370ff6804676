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

// Package iterx contains extensions to Go's package iter.
package iterx

import (
	"fmt"
	"iter"
	"strings"
)

// Filter returns a sequence of the values of seq for which p returns true.
func Filter[T any](seq iter.Seq[T], p func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if p(v) && !yield(v) {
				return
			}
		}
	}
}

// Map returns a new sequence by applying f to each element of seq.
func Map[T, U any](seq iter.Seq[T], f func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range seq {
			if !yield(f(v)) {
				return
			}
		}
	}
}

// Limit limits a sequence to only yield at most limit times.
func Limit[T any](limit uint, seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		if limit == 0 {
			return
		}
		n := limit
		for v := range seq {
			if !yield(v) {
				return
			}
			n--
			if n == 0 {
				return
			}
		}
	}
}

// First retrieves the first element of an iterator.
func First[T any](seq iter.Seq[T]) (v T, ok bool) {
	for x := range seq {
		return x, true
	}
	return v, false
}

// Count counts the number of elements in seq that match the given predicate.
//
// If p is nil, it is treated as func(_ T) bool { return true }.
func Count[T any](seq iter.Seq[T], p func(T) bool) int {
	var total int
	for v := range seq {
		if p == nil || p(v) {
			total++
		}
	}
	return total
}

// Join is like [strings.Join], but works on an iterator. Elements are
// stringified as if by [fmt.Print].
func Join[T any](seq iter.Seq[T], sep string) string {
	var out strings.Builder
	first := true
	for v := range seq {
		if !first {
			out.WriteString(sep)
		}
		first = false
		fmt.Fprint(&out, v)
	}
	return out.String()
}
