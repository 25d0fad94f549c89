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
	"fmt"

	"github.com/consensys/go-termcore/pkg/bv"
	"github.com/consensys/go-termcore/pkg/term"
)

// UpperBoundUnsigned returns an upper bound on the unsigned value of a
// bitvector term.  The bound is syntactic: constants are exact, bit arrays fix
// those bits which are statically known, and every other term gets the
// largest representable value.
func UpperBoundUnsigned(tbl *term.Table, t term.Term) *bv.Constant {
	return bound(tbl, t, true, false)
}

// LowerBoundUnsigned returns a lower bound on the unsigned value of a bitvector
// term.
func LowerBoundUnsigned(tbl *term.Table, t term.Term) *bv.Constant {
	return bound(tbl, t, false, false)
}

// UpperBoundSigned returns an upper bound on the signed value of a bitvector
// term.
func UpperBoundSigned(tbl *term.Table, t term.Term) *bv.Constant {
	return bound(tbl, t, true, true)
}

// LowerBoundSigned returns a lower bound on the signed value of a bitvector
// term.
func LowerBoundSigned(tbl *term.Table, t term.Term) *bv.Constant {
	return bound(tbl, t, false, true)
}

func bound(tbl *term.Table, t term.Term, upper bool, signed bool) *bv.Constant {
	var n = checkBitvector(tbl, t)
	//
	switch tbl.Kind(t) {
	case term.BV64Constant, term.BVConstant:
		return tbl.BVValueOf(t)
	case term.BVArray:
		var c = bv.New(n)
		//
		for i, bit := range tbl.Args(t) {
			c.AssignBit(uint(i), bitBound(bit, upper, signed && uint(i) == n-1))
		}
		//
		return c
	}
	//
	var c = bv.New(n)
	//
	switch {
	case upper && signed:
		return c.SetAllOnes(n).ClrBit(n - 1)
	case upper:
		return c.SetAllOnes(n)
	case signed:
		return c.SetBit(n - 1)
	default:
		return c
	}
}

// UpperBoundUnsigned64 is the packed variant of UpperBoundUnsigned for
// bitvectors of width at most 64.
func UpperBoundUnsigned64(tbl *term.Table, t term.Term) uint64 {
	return bound64(tbl, t, true, false)
}

// LowerBoundUnsigned64 is the packed variant of LowerBoundUnsigned.
func LowerBoundUnsigned64(tbl *term.Table, t term.Term) uint64 {
	return bound64(tbl, t, false, false)
}

// UpperBoundSigned64 is the packed variant of UpperBoundSigned.
func UpperBoundSigned64(tbl *term.Table, t term.Term) uint64 {
	return bound64(tbl, t, true, true)
}

// LowerBoundSigned64 is the packed variant of LowerBoundSigned.
func LowerBoundSigned64(tbl *term.Table, t term.Term) uint64 {
	return bound64(tbl, t, false, true)
}

func bound64(tbl *term.Table, t term.Term, upper bool, signed bool) uint64 {
	var n = checkBitvector(tbl, t)
	//
	if n > 64 {
		panic(fmt.Sprintf("bitvector of width %d is not packed", n))
	}
	//
	switch tbl.Kind(t) {
	case term.BV64Constant:
		return tbl.BV64ValueOf(t)
	case term.BVArray:
		var c uint64
		//
		for i, bit := range tbl.Args(t) {
			if bitBound(bit, upper, signed && uint(i) == n-1) {
				c = bv.SetBit64(c, uint(i))
			}
		}
		//
		return c
	}
	//
	switch {
	case upper && signed:
		return bv.MaxSigned64(n)
	case upper:
		return bv.Mask64(n)
	case signed:
		return bv.MinSigned64(n)
	default:
		return 0
	}
}

// bitBound determines the worst case value of a single bit.  Magnitude bits
// are set for upper bounds, whereas sign bits are set for lower bounds.
// Statically known bits are exact.
func bitBound(bit term.Term, upper bool, sign bool) bool {
	switch bit {
	case term.True:
		return true
	case term.False:
		return false
	default:
		return upper != sign
	}
}

// ExtractBit returns the ith bit of a bitvector term as a Boolean constant
// when it is statically known, the bit term of a bit array, or NullTerm when
// nothing is known.
func ExtractBit(tbl *term.Table, t term.Term, i uint) term.Term {
	var n = checkBitvector(tbl, t)
	//
	if i >= n {
		panic(fmt.Sprintf("bit index %d out-of-bounds for width %d", i, n))
	}
	//
	switch tbl.Kind(t) {
	case term.BV64Constant:
		return term.BoolTerm(bv.TstBit64(tbl.BV64ValueOf(t), i))
	case term.BVConstant:
		return term.BoolTerm(tbl.BVValueOf(t).Bit(i))
	case term.BVArray:
		return tbl.Args(t)[i]
	default:
		return term.NullTerm
	}
}

func checkBitvector(tbl *term.Table, t term.Term) uint {
	if !tbl.IsBitvector(t) {
		panic(fmt.Sprintf("expected bitvector term, found %s", tbl.String(t)))
	}
	//
	return tbl.BitSize(t)
}
