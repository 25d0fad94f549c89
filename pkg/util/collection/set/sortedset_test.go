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
	"fmt"
	"math/rand/v2"
	"testing"
)

func Test_SortedSet_00(t *testing.T) {
	check_SortedSet_Contains(t, 5, 10)
	check_SortedSet_Disjoint(t, 5, 10)
}

func Test_SortedSet_01(t *testing.T) {
	// Really hammer it.
	for i := 0; i < 1000; i++ {
		t.Run(fmt.Sprintf("i=%d", i), func(t *testing.T) {
			check_SortedSet_Contains(t, 10, 32)
			check_SortedSet_Disjoint(t, 4, 32)
		})
	}
}

func Test_SortedSet_02(t *testing.T) {
	check_SortedSet_Contains(t, 100, 32)
	check_SortedSet_Disjoint(t, 10, 128)
}

func Test_SortedSet_03(t *testing.T) {
	check_SortedSet_Contains(t, 1000, 64)
}

func Test_SortedSet_04(t *testing.T) {
	var set = FromArray([]int32{5, 1, 3, 1, 5})
	//
	if set.Len() != 3 || !set.Contains(1) || !set.Contains(3) || !set.Contains(5) || set.Contains(2) {
		t.Errorf("unexpected set %v", *set)
	}
	//
	if !set.All(func(x int32) bool { return x%2 == 1 }) {
		t.Errorf("expected only odd elements in %v", *set)
	}
}

func Test_SortedSet_05(t *testing.T) {
	var (
		left  = FromArray([]int32{1, 4, 9, 16})
		right = FromArray([]int32{2, 4, 8})
		empty = FromArray([]int32{})
	)
	//
	if left.Disjoint(right) || right.Disjoint(left) {
		t.Errorf("%v and %v share 4", *left, *right)
	}
	//
	if !left.Disjoint(FromArray([]int32{0, 2, 10, 17})) || !left.Disjoint(empty) || !empty.Disjoint(empty) {
		t.Errorf("expected disjoint sets")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func array_contains(items []uint, element uint) bool {
	for _, e := range items {
		if e == element {
			return true
		}
	}
	// Not present
	return false
}

func check_SortedSet_Contains(t *testing.T, n uint, m uint) {
	items := generateRandomUints(n, m)
	aset := FromArray(items)

	for i := uint(0); i < m; i++ {
		l := array_contains(items, i)
		r := aset.Contains(i)
		// Check set
		if !l && r {
			t.Errorf("unexpected item %d", i)
		} else if l && !r {
			t.Errorf("missing item %d", i)
		}
	}
}

func check_SortedSet_Disjoint(t *testing.T, n uint, m uint) {
	left := generateRandomUints(n, m)
	right := generateRandomUints(n, m)
	expected := true
	//
	for _, e := range left {
		expected = expected && !array_contains(right, e)
	}
	//
	if actual := FromArray(left).Disjoint(FromArray(right)); actual != expected {
		t.Errorf("disjoint(%v,%v) expected %t", left, right, expected)
	}
}

// generateRandomUints generates n random unsigned integers in the range 0..m.
func generateRandomUints(n, m uint) []uint {
	items := make([]uint, n)
	for i := uint(0); i < n; i++ {
		items[i] = uint(rand.UintN(m))
	}

	return items
}
