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
package pool

import (
	"testing"

	"github.com/consensys/go-termcore/pkg/util/assert"
)

func Test_Store_00(t *testing.T) {
	var (
		store = NewStore[int32]()
		v     = store.Alloc(4)
	)
	//
	assert.Equal(t, uint(4), v.Len())
	assert.Equal(t, uint(0), store.Retained())
	//
	v.Data[0] = 1
	store.Release(v)
	assert.Equal(t, uint(1), store.Retained())
	assert.Equal(t, uint(0), v.Len())
	// Reuse same storage
	w := store.Alloc(2)
	assert.True(t, v == w)
	assert.Equal(t, int32(0), w.Data[0])
	assert.Equal(t, uint(0), store.Retained())
}

func Test_Store_01(t *testing.T) {
	var (
		store = NewStore[int32]()
		v     = store.Alloc(2)
	)
	//
	store.Release(v)
	// Growing reuses the same vector with resized storage
	w := store.Alloc(16)
	assert.True(t, v == w)
	assert.Equal(t, uint(16), w.Len())
}

func Test_Store_02(t *testing.T) {
	var (
		store = NewStore[*int]()
		a     = store.Alloc(1)
		b     = store.Alloc(1)
	)
	// LIFO order
	store.Release(a)
	store.Release(b)
	assert.True(t, store.Alloc(1) == b)
	assert.True(t, store.Alloc(1) == a)
}

func Test_Store_03(t *testing.T) {
	var (
		left  = NewStore[int32]()
		right = NewStore[int32]()
		v     = left.Alloc(1)
	)
	//
	assert.Panics(t, func() { right.Release(v) })
	//
	left.Release(v)
	assert.Panics(t, func() { left.Release(v) })
	//
	left.Close()
	assert.Equal(t, uint(0), left.Retained())
	assert.Panics(t, func() { left.Alloc(1) })
}
