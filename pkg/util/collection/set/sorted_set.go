// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package set

import (
	"cmp"
	"slices"
	"sort"
)

// SortedSet is an array of unique sorted values (i.e. no duplicates).
type SortedSet[T cmp.Ordered] []T

// FromArray constructs a sorted set from an array of elements in any order,
// possibly with duplicates.  The given array is not modified.
func FromArray[T cmp.Ordered](items []T) *SortedSet[T] {
	var data = slices.Clone(items)
	//
	slices.Sort(data)
	data = slices.Compact(data)
	//
	return (*SortedSet[T])(&data)
}

// Len returns the number of elements in this set.
func (p *SortedSet[T]) Len() uint {
	return uint(len(*p))
}

// Contains returns true if a given element is in the set.
//
//nolint:revive
func (p *SortedSet[T]) Contains(element T) bool {
	data := *p
	// Find index where element either does occur, or should occur.
	i := sort.Search(len(*p), func(i int) bool {
		return element <= data[i]
	})
	// Check whether item existed or not.
	return i < len(data) && data[i] == element
}

// Disjoint checks whether this set and a given set have no elements in
// common.
func (p *SortedSet[T]) Disjoint(q *SortedSet[T]) bool {
	var (
		left, right = *p, *q
		i, j        = 0, 0
	)
	// Co-scan until the first shared element
	for i < len(left) && j < len(right) {
		switch {
		case left[i] < right[j]:
			i++
		case left[i] > right[j]:
			j++
		default:
			return false
		}
	}
	//
	return true
}

// All checks whether a given predicate holds for every element of this set.
func (p *SortedSet[T]) All(fn func(T) bool) bool {
	for _, e := range *p {
		if !fn(e) {
			return false
		}
	}
	//
	return true
}
