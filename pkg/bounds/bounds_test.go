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
package bounds

import (
	"testing"

	"github.com/consensys/go-termcore/pkg/bv"
	"github.com/consensys/go-termcore/pkg/term"
	"github.com/consensys/go-termcore/pkg/util/assert"
)

func Test_Bounds_00(t *testing.T) {
	var (
		tbl = term.NewTable()
		a0  = tbl.NewVar(term.Bool, "a0")
		a1  = tbl.NewVar(term.Bool, "a1")
		arr = tbl.BVArray(a0, term.True, a1)
	)
	//
	assert.Equal(t, uint64(2), LowerBoundUnsigned64(tbl, arr))
	assert.Equal(t, uint64(7), UpperBoundUnsigned64(tbl, arr))
	assert.True(t, LowerBoundUnsigned(tbl, arr).Equal(bv.NewUint64(3, 2)))
	assert.True(t, UpperBoundUnsigned(tbl, arr).Equal(bv.NewUint64(3, 7)))
	// Sign bit is symbolic
	assert.Equal(t, uint64(0b011), UpperBoundSigned64(tbl, arr))
	assert.Equal(t, uint64(0b110), LowerBoundSigned64(tbl, arr))
	assert.True(t, UpperBoundSigned(tbl, arr).Equal(bv.NewUint64(3, 0b011)))
	assert.True(t, LowerBoundSigned(tbl, arr).Equal(bv.NewUint64(3, 0b110)))
}

func Test_Bounds_01(t *testing.T) {
	var (
		tbl = term.NewTable()
		a0  = tbl.NewVar(term.Bool, "a0")
		// sign bit forced true
		neg = tbl.BVArray(a0, term.False, term.True)
	)
	//
	assert.Equal(t, uint64(0b101), UpperBoundSigned64(tbl, neg))
	assert.Equal(t, uint64(0b100), LowerBoundSigned64(tbl, neg))
	// sign bit forced false
	pos := tbl.BVArray(a0, term.False, term.False)
	assert.Equal(t, uint64(0b001), UpperBoundSigned64(tbl, pos))
	assert.Equal(t, uint64(0b000), LowerBoundSigned64(tbl, pos))
}

func Test_Bounds_02(t *testing.T) {
	var (
		tbl = term.NewTable()
		x   = tbl.NewVar(tbl.BVType(4), "x")
		k   = tbl.BVConst64(4, 9)
	)
	// Constants are exact
	assert.Equal(t, uint64(9), LowerBoundUnsigned64(tbl, k))
	assert.Equal(t, uint64(9), UpperBoundSigned64(tbl, k))
	// Anything else has full range
	assert.Equal(t, uint64(0), LowerBoundUnsigned64(tbl, x))
	assert.Equal(t, uint64(15), UpperBoundUnsigned64(tbl, x))
	assert.Equal(t, uint64(7), UpperBoundSigned64(tbl, x))
	assert.Equal(t, uint64(8), LowerBoundSigned64(tbl, x))
}

func Test_Bounds_03(t *testing.T) {
	var (
		tbl = term.NewTable()
		x   = tbl.NewVar(tbl.BVType(100), "x")
		top = bv.New(100).SetAllOnes(100)
	)
	//
	assert.True(t, UpperBoundUnsigned(tbl, x).Equal(top))
	assert.True(t, LowerBoundUnsigned(tbl, x).IsZero())
	assert.True(t, UpperBoundSigned(tbl, x).Equal(top.Clone().ClrBit(99)))
	assert.True(t, LowerBoundSigned(tbl, x).Equal(bv.New(100).SetBit(99)))
	// Packed variants reject wide bitvectors
	assert.Panics(t, func() { UpperBoundUnsigned64(tbl, x) })
	// Non-bitvectors are rejected
	assert.Panics(t, func() { UpperBoundUnsigned(tbl, tbl.Integer(1)) })
}

func Test_Bounds_04(t *testing.T) {
	var (
		tbl  = term.NewTable()
		b    = tbl.NewVar(term.Bool, "b")
		arr  = tbl.BVArray(b, term.True)
		k    = tbl.BVConst64(2, 0b10)
		wide = tbl.BVConst(bv.New(70).SetBit(65))
		x    = tbl.NewVar(tbl.BVType(2), "x")
	)
	//
	assert.Equal(t, b, ExtractBit(tbl, arr, 0))
	assert.Equal(t, term.True, ExtractBit(tbl, arr, 1))
	assert.Equal(t, term.False, ExtractBit(tbl, k, 0))
	assert.Equal(t, term.True, ExtractBit(tbl, k, 1))
	assert.Equal(t, term.True, ExtractBit(tbl, wide, 65))
	assert.Equal(t, term.False, ExtractBit(tbl, wide, 64))
	assert.Equal(t, term.NullTerm, ExtractBit(tbl, x, 0))
	assert.Panics(t, func() { ExtractBit(tbl, x, 2) })
}
