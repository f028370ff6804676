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

// Package interval provides an ordered map keyed by disjoint closed integer
// ranges, such as the address ranges occupied by string literals in a binary
// image.
package interval

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Need Integer, not Ordered.
)

// Endpoint is a type that may be used as an interval endpoint.
type Endpoint = constraints.Integer

// Map is a collection of pairwise-disjoint intervals with associated values.
//
// A zero Map is empty and ready to use.
type Map[K Endpoint, V any] struct {
	// Keys are the (inclusive) ends of intervals.
	tree btree.Map[K, *entry[K, V]]
}

// Interval is an entry returned by [Map.Get] and [Map.Insert].
type Interval[K Endpoint, V any] struct {
	// The range for this interval, inclusive.
	Start, End K

	// The value associated with it. Nil if this Interval is empty.
	Value *V
}

// Contains returns whether point lies within this interval.
func (i Interval[K, V]) Contains(point K) bool {
	return i.Value != nil && i.Start <= point && point <= i.End
}

type entry[K Endpoint, V any] struct {
	start K
	value V
}

// Len returns the number of intervals in the map.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}

// Get looks up the interval which contains key, if one exists.
//
// If no such interval exists, the Value of the returned [Interval] will be
// nil.
func (m *Map[K, V]) Get(key K) Interval[K, V] {
	iter := m.tree.Iter()
	// Seek finds the interval with the least end >= key, which is the only
	// candidate that can contain key.
	if !iter.Seek(key) || key < iter.Value().start {
		return Interval[K, V]{}
	}
	return m.at(iter.Key(), iter.Value())
}

// Insert inserts a new interval [start, end] with the given value.
//
// If [start, end] overlaps any interval already present, nothing is inserted
// and the overlapping interval with the least start is returned instead. This
// case is distinguished by overlap.Value != nil.
func (m *Map[K, V]) Insert(start, end K, value V) (overlap Interval[K, V]) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}

	// Intervals are disjoint, so the one with the least end >= start also has
	// the least start among all intervals that could overlap [start, end].
	iter := m.tree.Iter()
	if iter.Seek(start) && iter.Value().start <= end {
		return m.at(iter.Key(), iter.Value())
	}

	m.tree.Set(end, &entry[K, V]{start: start, value: value})
	return Interval[K, V]{}
}

// Intervals returns an iterator over the intervals in this map, in order.
func (m *Map[K, V]) Intervals() iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		iter := m.tree.Iter()
		for more := iter.First(); more; more = iter.Next() {
			if !yield(m.at(iter.Key(), iter.Value())) {
				return
			}
		}
	}
}

// Format implements [fmt.Formatter].
func (m *Map[K, V]) Format(s fmt.State, v rune) {
	fmt.Fprint(s, "{")
	first := true
	m.tree.Scan(func(end K, e *entry[K, V]) bool {
		if !first {
			fmt.Fprint(s, ", ")
		}
		first = false

		if e.start == end {
			fmt.Fprintf(s, "%#v: ", e.start)
		} else {
			fmt.Fprintf(s, "[%#v, %#v]: ", e.start, end)
		}
		fmt.Fprintf(s, fmt.FormatString(s, v), e.value)
		return true
	})
	fmt.Fprint(s, "}")
}

func (m *Map[K, V]) at(end K, e *entry[K, V]) Interval[K, V] {
	return Interval[K, V]{Start: e.start, End: end, Value: &e.value}
}
