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
package oracle

import (
	"math/big"
	"testing"

	"github.com/consensys/go-termcore/pkg/bv"
	"github.com/consensys/go-termcore/pkg/domain"
	"github.com/consensys/go-termcore/pkg/term"
	"github.com/consensys/go-termcore/pkg/util/assert"
	"github.com/consensys/go-termcore/pkg/worker"
)

func newOracle(tbl *term.Table) (*Oracle, *worker.Context) {
	var ctx = worker.New(0)
	//
	return NewOracle(tbl, domain.NewCache(tbl), ctx), ctx
}

func poly(tbl *term.Table, monos ...any) term.Term {
	var ms []term.Monomial
	//
	for i := 0; i < len(monos); i += 2 {
		ms = append(ms, term.NewMonomial(big.NewRat(int64(monos[i].(int)), 1), monos[i+1].(term.Term)))
	}
	//
	return tbl.Poly(ms)
}

func Test_Oracle_00(t *testing.T) {
	var (
		tbl      = term.NewTable()
		ora, ctx = newOracle(tbl)
		b        = tbl.NewVar(term.Bool, "b")
		c        = tbl.NewVar(term.Bool, "c")
	)
	//
	defer ctx.Close()
	//
	assert.True(t, ora.Disequal(b, b.Not()))
	assert.True(t, ora.Disequal(term.True, term.False))
	assert.False(t, ora.Disequal(b, c))
	assert.False(t, ora.Disequal(b, b))
	assert.Panics(t, func() { ora.Disequal(b, tbl.Integer(1)) })
}

func Test_Oracle_01(t *testing.T) {
	var (
		tbl      = term.NewTable()
		ora, ctx = newOracle(tbl)
		x        = tbl.NewVar(term.Int, "x")
		r        = tbl.NewVar(term.Real, "r")
		half     = tbl.Rational(big.NewRat(1, 2))
	)
	//
	defer ctx.Close()
	// Constants
	assert.True(t, ora.Disequal(tbl.Integer(1), tbl.Integer(2)))
	assert.False(t, ora.Disequal(tbl.Integer(1), tbl.Integer(1)))
	// Integers are never equal to non-integer constants
	assert.True(t, ora.Disequal(x, half))
	assert.True(t, ora.Disequal(half, x))
	assert.False(t, ora.Disequal(r, half))
	// Variables are unknown
	assert.False(t, ora.Disequal(x, tbl.Integer(3)))
}

func Test_Oracle_02(t *testing.T) {
	var (
		tbl      = term.NewTable()
		ora, ctx = newOracle(tbl)
		c1       = tbl.NewVar(term.Bool, "c1")
		c2       = tbl.NewVar(term.Bool, "c2")
		odd      = tbl.ITE(c1, tbl.Integer(1), tbl.ITE(c2, tbl.Integer(3), tbl.Integer(5)))
		even     = tbl.ITE(c2, tbl.Integer(2), tbl.Integer(4))
	)
	//
	defer ctx.Close()
	//
	assert.True(t, ora.Disequal(odd, tbl.Integer(2)))
	assert.True(t, ora.Disequal(tbl.Integer(2), odd))
	assert.False(t, ora.Disequal(odd, tbl.Integer(3)))
	assert.True(t, ora.Disequal(odd, even))
	assert.False(t, ora.Disequal(odd, tbl.ITE(c2, tbl.Integer(5), tbl.Integer(6))))
}

func Test_Oracle_03(t *testing.T) {
	var (
		tbl      = term.NewTable()
		ora, ctx = newOracle(tbl)
		x        = tbl.NewVar(term.Int, "x")
		y        = tbl.NewVar(term.Int, "y")
		p1       = poly(tbl, 1, term.ConstIdx, 2, x, 1, y)
		p2       = poly(tbl, 5, term.ConstIdx, 2, x, 1, y)
		p3       = poly(tbl, 2, x, 1, y)
		p4       = poly(tbl, 1, term.ConstIdx, 3, x, 1, y)
	)
	//
	defer ctx.Close()
	// Differ by a nonzero constant
	assert.True(t, ora.Disequal(p1, p2))
	assert.True(t, ora.Disequal(p1, p3))
	assert.True(t, ora.Disequal(p3, p2))
	// Unknown
	assert.False(t, ora.Disequal(p1, p4))
	// k + x is never x
	kx := poly(tbl, 3, term.ConstIdx, 1, x)
	assert.True(t, ora.Disequal(kx, x))
	assert.True(t, ora.Disequal(x, kx))
	assert.False(t, ora.Disequal(kx, y))
	// 2x + 3 may equal x
	assert.False(t, ora.Disequal(poly(tbl, 3, term.ConstIdx, 2, x), x))
}

func Test_Oracle_04(t *testing.T) {
	var (
		tbl      = term.NewTable()
		ora, ctx = newOracle(tbl)
		bv8      = tbl.BVType(8)
		x        = tbl.NewVar(bv8, "x")
		a        = tbl.NewVar(term.Bool, "a")
		b        = tbl.NewVar(term.Bool, "b")
	)
	//
	defer ctx.Close()
	// Distinct constants of equal width
	assert.True(t, ora.Disequal(tbl.BVConst64(8, 1), tbl.BVConst64(8, 2)))
	// Bit arrays with opposite bits
	left := tbl.BVArray(term.True, a, b)
	right := tbl.BVArray(term.False, a, tbl.NewVar(term.Bool, "d"))
	assert.True(t, ora.Disequal(left, right))
	assert.True(t, ora.Disequal(tbl.BVArray(a, b), tbl.BVArray(a, b.Not())))
	assert.False(t, ora.Disequal(tbl.BVArray(a, b), tbl.BVArray(b, a)))
	// Bit array against constant
	assert.True(t, ora.Disequal(left, tbl.BVConst64(3, 0b110)))
	assert.False(t, ora.Disequal(left, tbl.BVConst64(3, 0b111)))
	assert.True(t, ora.Disequal(tbl.BVConst64(3, 0b000), left))
	// Polynomials
	one := big.NewInt(1)
	p := tbl.BVPoly(8, []term.BVMonomial{term.NewBVMonomial(big.NewInt(7), term.ConstIdx), term.NewBVMonomial(one, x)})
	q := tbl.BVPoly(8, []term.BVMonomial{term.NewBVMonomial(big.NewInt(9), term.ConstIdx), term.NewBVMonomial(one, x)})
	assert.True(t, ora.Disequal(p, q))
	assert.True(t, ora.Disequal(p, x))
	assert.False(t, ora.Disequal(p, tbl.NewVar(bv8, "y")))
	// Chains
	chain := tbl.ITE(a, tbl.BVConst64(8, 1), tbl.BVConst64(8, 3))
	assert.True(t, ora.Disequal(chain, tbl.BVConst64(8, 2)))
	assert.False(t, ora.Disequal(chain, tbl.BVConst64(8, 3)))
	// Mismatched widths
	assert.Panics(t, func() { ora.Disequal(x, tbl.BVConst64(4, 0)) })
}

func Test_Oracle_05(t *testing.T) {
	var (
		tbl      = term.NewTable()
		ora, ctx = newOracle(tbl)
		bv100    = tbl.BVType(100)
		x        = tbl.NewVar(bv100, "x")
		a        = tbl.NewVar(term.Bool, "a")
		big1     = tbl.BVConst(bv.New(100).SetBit(99))
		big2     = tbl.BVConst(bv.New(100).SetBit(98))
	)
	//
	defer ctx.Close()
	//
	assert.True(t, ora.Disequal(big1, big2))
	assert.False(t, ora.Disequal(big1, x))
	// Bit array with known top bit
	bits := make([]term.Term, 100)
	for i := range bits {
		bits[i] = a
	}
	//
	bits[99] = term.False
	assert.True(t, ora.Disequal(tbl.BVArray(bits...), big1))
	assert.False(t, ora.Disequal(tbl.BVArray(bits...), big2))
	// Wide polynomials
	k := big.NewInt(5)
	p := tbl.BVPoly(100, []term.BVMonomial{term.NewBVMonomial(k, term.ConstIdx), term.NewBVMonomial(big.NewInt(1), x)})
	q := tbl.BVPoly(100, []term.BVMonomial{term.NewBVMonomial(big.NewInt(3), x)})
	r := tbl.BVPoly(100, []term.BVMonomial{term.NewBVMonomial(k, term.ConstIdx), term.NewBVMonomial(big.NewInt(3), x)})
	assert.True(t, ora.Disequal(p, x))
	assert.True(t, ora.Disequal(q, r))
	assert.False(t, ora.Disequal(p, q))
}

func Test_Oracle_06(t *testing.T) {
	var (
		tbl      = term.NewTable()
		ora, ctx = newOracle(tbl)
		x        = tbl.NewVar(term.Int, "x")
		b        = tbl.NewVar(term.Bool, "b")
		scalar   = tbl.NewScalarType("colour", 3)
		red      = tbl.Constant(scalar, 0)
		blue     = tbl.Constant(scalar, 2)
	)
	//
	defer ctx.Close()
	// Scalar constants
	assert.True(t, ora.Disequal(red, blue))
	assert.False(t, ora.Disequal(red, tbl.NewVar(scalar, "c")))
	// Tuples
	assert.True(t, ora.Disequal(tbl.Tuple(x, b), tbl.Tuple(x, b.Not())))
	assert.False(t, ora.Disequal(tbl.Tuple(x, b), tbl.Tuple(x, b)))
	// Updates
	fun := tbl.NewVar(tbl.FunctionType([]term.Type{term.Int}, term.Int), "f")
	u1 := tbl.Update(fun, []term.Term{x}, tbl.Integer(1))
	u2 := tbl.Update(fun, []term.Term{x}, tbl.Integer(2))
	u3 := tbl.Update(fun, []term.Term{tbl.Integer(0)}, tbl.Integer(2))
	assert.True(t, ora.Disequal(u1, u2))
	assert.False(t, ora.Disequal(u1, u3))
	// Arrays
	assert.True(t, ora.DisequalArrays([]term.Term{x, b}, []term.Term{x, b.Not()}))
	assert.False(t, ora.DisequalArrays([]term.Term{x, b}, []term.Term{x, b}))
	assert.True(t, ora.PairwiseDisequal([]term.Term{tbl.Integer(1), tbl.Integer(2), tbl.Integer(3)}))
	assert.False(t, ora.PairwiseDisequal([]term.Term{tbl.Integer(1), x, tbl.Integer(3)}))
}

func Test_Oracle_07(t *testing.T) {
	var (
		tbl      = term.NewTable()
		ora, ctx = newOracle(tbl)
		b        = tbl.NewVar(term.Bool, "b")
		left     = tbl.Tuple(b)
		right    = tbl.Tuple(b.Not())
	)
	//
	defer ctx.Close()
	// Deeply nested tuples
	for range 100000 {
		left = tbl.Tuple(left)
		right = tbl.Tuple(right)
	}
	//
	assert.True(t, ora.Disequal(left, right))
}

func Test_Oracle_08(t *testing.T) {
	var (
		tbl      = term.NewTable()
		ora, ctx = newOracle(tbl)
		x        = tbl.NewVar(term.Int, "x")
		xx       = tbl.PProdTerm(tbl.PProds().VarExp(int32(x), 2))
		c        = tbl.NewVar(term.Bool, "c")
	)
	//
	defer ctx.Close()
	// Constants
	assert.True(t, ora.ArithIsNonneg(tbl.Integer(0)))
	assert.False(t, ora.ArithIsNegative(tbl.Integer(0)))
	assert.True(t, ora.ArithIsNegative(tbl.Integer(-1)))
	// Chains
	assert.True(t, ora.ArithIsNonneg(tbl.ITE(c, tbl.Integer(0), tbl.Integer(3))))
	assert.True(t, ora.ArithIsNegative(tbl.ITE(c, tbl.Integer(-2), tbl.Integer(-3))))
	// Squares
	assert.True(t, ora.ArithIsNonneg(poly(tbl, 1, term.ConstIdx, 2, xx)))
	assert.False(t, ora.ArithIsNonneg(poly(tbl, 1, term.ConstIdx, 2, x)))
	assert.True(t, ora.ArithIsNegative(poly(tbl, -1, term.ConstIdx, -2, xx)))
	assert.False(t, ora.ArithIsNegative(poly(tbl, -2, xx)))
	// Variables
	assert.False(t, ora.ArithIsNonneg(x))
}
