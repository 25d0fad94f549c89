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
package domain

import (
	"slices"
	"sync"
	"testing"

	"github.com/consensys/go-termcore/pkg/term"
	"github.com/consensys/go-termcore/pkg/util/assert"
	"github.com/consensys/go-termcore/pkg/worker"
	"github.com/google/go-cmp/cmp"
)

// chain constructs the conditional chain ite(c1, k1, ite(c2, k2, ... kn)).
func chain(tbl *term.Table, values ...int64) term.Term {
	var t = tbl.Integer(values[len(values)-1])
	//
	for i := len(values) - 2; i >= 0; i-- {
		t = tbl.ITE(tbl.NewVar(term.Bool, "c"), tbl.Integer(values[i]), t)
	}
	//
	return t
}

func Test_Domain_00(t *testing.T) {
	var (
		tbl   = term.NewTable()
		ctx   = worker.New(0)
		cache = NewCache(tbl)
		odd   = chain(tbl, 5, 3, 1, 3)
	)
	//
	defer ctx.Close()
	//
	dom := cache.Of(ctx, odd)
	expected := []term.Term{tbl.Integer(5), tbl.Integer(3), tbl.Integer(1)}
	//
	assert.Equal(t, uint(3), dom.Len())
	assert.True(t, cmp.Equal(sorted(expected), dom.Elements()))
	assert.True(t, cache.IsMember(ctx, odd, tbl.Integer(3)))
	assert.False(t, cache.IsMember(ctx, odd, tbl.Integer(2)))
	// Memoised
	assert.True(t, dom == cache.Of(ctx, odd))
	// Scratch storage returned
	assert.Equal(t, uint(1), ctx.Terms().Retained())
}

func Test_Domain_01(t *testing.T) {
	var (
		tbl   = term.NewTable()
		ctx   = worker.New(0)
		cache = NewCache(tbl)
		left  = chain(tbl, 1, 2)
		right = chain(tbl, 3, 4)
		both  = tbl.ITE(tbl.NewVar(term.Bool, "d"), left, right)
	)
	//
	defer ctx.Close()
	//
	assert.True(t, cache.Disjoint(ctx, left, right))
	assert.False(t, cache.Disjoint(ctx, left, both))
	assert.Equal(t, uint(4), cache.Of(ctx, both).Len())
	// Non-chains are rejected
	assert.Panics(t, func() { cache.Of(ctx, tbl.Integer(1)) })
}

func Test_Domain_02(t *testing.T) {
	var (
		tbl   = term.NewTable()
		ctx   = worker.New(0)
		cache = NewCache(tbl)
	)
	//
	defer ctx.Close()
	//
	assert.True(t, cache.IsNonneg(ctx, chain(tbl, 0, 1, 2)))
	assert.False(t, cache.IsNonneg(ctx, chain(tbl, 0, -1, 2)))
	assert.True(t, cache.IsNegative(ctx, chain(tbl, -3, -1)))
	assert.False(t, cache.IsNegative(ctx, chain(tbl, -3, 0)))
	//
	bv := tbl.ITE(tbl.NewVar(term.Bool, "c"), tbl.BVConst64(4, 1), tbl.BVConst64(4, 2))
	assert.Panics(t, func() { cache.IsNonneg(ctx, bv) })
	assert.Equal(t, uint(2), cache.Of(ctx, bv).Len())
}

func Test_Domain_03(t *testing.T) {
	var (
		tbl   = term.NewTable()
		cache = NewCache(tbl)
		deep  = tbl.Integer(0)
		wg    sync.WaitGroup
	)
	// Deeply nested chains do not exhaust the native stack
	for i := range int64(100000) {
		deep = tbl.ITE(tbl.NewVar(term.Bool, "c"), tbl.Integer(i%7), deep)
	}
	// Concurrent lookups agree
	for i := range uint(4) {
		wg.Add(1)
		//
		go func(ctx *worker.Context) {
			defer wg.Done()
			defer ctx.Close()
			//
			if n := cache.Of(ctx, deep).Len(); n != 7 {
				t.Errorf("expected 7 constants, got %d", n)
			}
		}(worker.New(i))
	}
	//
	wg.Wait()
}

func sorted(terms []term.Term) []term.Term {
	var res = slices.Clone(terms)
	//
	slices.Sort(res)
	//
	return res
}
