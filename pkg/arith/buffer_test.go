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
package arith

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/go-termcore/pkg/pprod"
	"github.com/consensys/go-termcore/pkg/util/assert"
	"github.com/google/go-cmp/cmp"
)

func Test_Buffer_00(t *testing.T) {
	var (
		tbl = pprod.NewTable()
		buf = NewBuffer(tbl)
		x   = tbl.Var(1)
	)
	//
	assert.True(t, buf.IsZero())
	assert.True(t, buf.IsConstant())
	assert.Equal(t, uint32(0), buf.Find(x))
	// Idempotence
	n, created := buf.GetOrInsert(x)
	assert.True(t, created)
	m, created := buf.GetOrInsert(x)
	assert.False(t, created)
	assert.Equal(t, n, m)
	assert.Equal(t, n, buf.Find(x))
	// Inserted nodes have zero coefficient
	assert.True(t, buf.IsZero())
	assert.NoError(t, buf.Check())
}

func Test_Buffer_01(t *testing.T) {
	var (
		tbl = pprod.NewTable()
		buf = NewBuffer(tbl)
		x   = tbl.Var(1)
		y   = tbl.Var(2)
	)
	// Canonical accumulation
	buf.AddMono(big.NewRat(2, 1), x)
	buf.AddMono(big.NewRat(3, 1), x)
	assert.Equal(t, uint(1), buf.NumTerms())
	assert.Equal(t, 0, buf.Coeff(x).Cmp(big.NewRat(5, 1)))
	// Cancellation leaves a tombstone
	buf.AddPP(y)
	buf.SubPP(y)
	assert.Equal(t, uint(2), buf.NumNodes())
	assert.Equal(t, uint(1), buf.NumTerms())
	//
	monos := buf.Monomials()
	assert.Equal(t, 1, len(monos))
	assert.True(t, monos[0].Prod == x)
	assert.Equal(t, uint(1), buf.NumNodes())
	assert.NoError(t, buf.Check())
}

func Test_Buffer_02(t *testing.T) {
	var (
		tbl = pprod.NewTable()
		x   = tbl.Var(1)
		y   = tbl.Var(2)
		xy  = tbl.Mul(x, y)
	)
	//
	buf := NewBuffer(tbl)
	buf.AddConst(big.NewRat(7, 2))
	assert.True(t, buf.IsConstant())
	buf.AddVarMono(big.NewRat(-1, 1), 2)
	buf.AddPP(xy)
	assert.False(t, buf.IsConstant())
	assert.Equal(t, uint32(2), buf.Degree())
	// Canonical order: constant, then y, then xy
	monos := buf.Monomials()
	assert.True(t, monos[0].Prod == tbl.Empty())
	assert.True(t, monos[1].Prod == y)
	assert.True(t, monos[2].Prod == xy)
	//
	buf.Reset()
	assert.True(t, buf.IsZero())
	assert.Equal(t, uint(0), buf.NumNodes())
	assert.NoError(t, buf.Check())
}

func Test_Buffer_03(t *testing.T) {
	var (
		tbl = pprod.NewTable()
		buf = NewBuffer(tbl)
		aux = NewBuffer(tbl)
		x   = tbl.Var(1)
		y   = tbl.Var(2)
	)
	// (x + 1) * (x - 1) = x^2 - 1
	buf.AddPP(x)
	buf.AddConst(big.NewRat(1, 1))
	buf.MulMonArray([]*big.Rat{big.NewRat(1, 1), big.NewRat(-1, 1)}, []*pprod.Product{x, tbl.Empty()}, aux)
	//
	assert.Equal(t, uint(2), buf.NumTerms())
	assert.Equal(t, 0, buf.Coeff(tbl.VarExp(1, 2)).Cmp(big.NewRat(1, 1)))
	assert.Equal(t, 0, buf.Coeff(tbl.Empty()).Cmp(big.NewRat(-1, 1)))
	assert.Equal(t, 0, buf.Coeff(x).Sign())
	assert.True(t, aux.IsZero())
	// (x^2 - 1) * 2y
	buf.MulMono(big.NewRat(2, 1), y)
	assert.Equal(t, 0, buf.Coeff(tbl.Mul(tbl.VarExp(1, 2), y)).Cmp(big.NewRat(2, 1)))
	assert.Equal(t, 0, buf.Coeff(y).Cmp(big.NewRat(-2, 1)))
	// Multiplication by zero
	buf.MulConst(new(big.Rat))
	assert.True(t, buf.IsZero())
	// Aliasing is rejected
	assert.Panics(t, func() { buf.MulBuffer(aux, buf) })
	assert.Panics(t, func() { buf.MulBuffer(aux, aux) })
	assert.Panics(t, func() { buf.MulBuffer(NewBuffer(pprod.NewTable()), aux) })
}

func Test_Buffer_04(t *testing.T) {
	var (
		tbl = pprod.NewTable()
		buf = NewBuffer(tbl)
		aux = NewBuffer(tbl)
	)
	// (x + y)^2 = x^2 + 2xy + y^2
	buf.AddVar(1)
	buf.AddVar(2)
	buf.MulBuffer(buf, aux)
	//
	expected := NewBuffer(tbl)
	expected.AddPP(tbl.VarExp(1, 2))
	expected.AddMono(big.NewRat(2, 1), tbl.Mul(tbl.Var(1), tbl.Var(2)))
	expected.AddPP(tbl.VarExp(2, 2))
	//
	checkSame(t, expected, buf)
	// (x + y)^2 * (x + y)^0 = (x + y)^2
	buf.MulMonArrayPower([]*big.Rat{one, one}, []*pprod.Product{tbl.Var(1), tbl.Var(2)}, 0, aux)
	checkSame(t, expected, buf)
	// (x + y)^2 - (x + y)^2 = 0
	buf.SubBuffer(expected)
	assert.True(t, buf.IsZero())
}

func Test_Buffer_05(t *testing.T) {
	var (
		tbl = pprod.NewTable()
		buf = NewBuffer(tbl)
		aux = NewBuffer(tbl)
		rng = rand.New(rand.NewPCG(1, 2))
	)
	// (1 - x)^3 evaluated at x = 3 is -8
	buf.AddConst(one)
	buf.MulMonArrayPower([]*big.Rat{one, big.NewRat(-1, 1)}, []*pprod.Product{tbl.Empty(), tbl.Var(1)}, 3, aux)
	//
	value := buf.Fingerprint(func(int32) fr.Element { return fr.NewElement(3) })
	expected := fr.NewElement(8)
	expected.Neg(&expected)
	assert.True(t, value.Equal(&expected))
	// Fingerprints agree for equal polynomials
	for range 10 {
		var (
			left  = randomBuffer(tbl, rng, 20)
			right = NewBuffer(tbl)
			env   = randomEnv(rng)
		)
		//
		right.AddBuffer(left)
		right.MulConst(big.NewRat(3, 1))
		left.MulConst(big.NewRat(3, 1))
		lhs, rhs := left.Fingerprint(env), right.Fingerprint(env)
		assert.True(t, lhs.Equal(&rhs))
	}
}

// Property test: the tree invariants hold after every operation.
func Test_Buffer_06(t *testing.T) {
	var (
		tbl = pprod.NewTable()
		buf = NewBuffer(tbl)
		aux = NewBuffer(tbl)
		rng = rand.New(rand.NewPCG(3, 4))
	)
	//
	for i := range 2000 {
		switch rng.IntN(10) {
		case 0:
			buf.Reset()
		case 1:
			buf.MulVar(rng.Int32N(4))
		case 2:
			buf.MulMonArray([]*big.Rat{one, one}, []*pprod.Product{tbl.Empty(), randomProduct(tbl, rng)}, aux)
		case 3:
			buf.Normalize()
		default:
			buf.AddMono(big.NewRat(rng.Int64N(5)-2, 1), randomProduct(tbl, rng))
		}
		//
		if err := buf.Check(); err != nil {
			t.Fatalf("step %d: %s", i, err)
		}
		// Trees stay balanced
		assert.True(t, buf.BlackHeight() <= 2*uint(bitLength(buf.NumNodes()+1)))
		// Truncate to keep sizes reasonable
		if buf.NumNodes() > 500 {
			buf.Reset()
		}
	}
}

// Order independence: {a,b} then {c} gives the same result as {c} then {a,b}.
func Test_Buffer_07(t *testing.T) {
	var (
		tbl = pprod.NewTable()
		rng = rand.New(rand.NewPCG(5, 6))
	)
	//
	for range 100 {
		var (
			ab    = randomBuffer(tbl, rng, 10)
			c     = randomBuffer(tbl, rng, 10)
			left  = NewBuffer(tbl)
			right = NewBuffer(tbl)
		)
		//
		left.AddBuffer(ab)
		left.AddBuffer(c)
		right.AddBuffer(c)
		right.AddBuffer(ab)
		//
		checkSame(t, left, right)
	}
}

func checkSame(t *testing.T, expected, actual *Buffer) {
	t.Helper()
	//
	var (
		lhs = render(expected.Monomials())
		rhs = render(actual.Monomials())
	)
	//
	if diff := cmp.Diff(lhs, rhs); diff != "" {
		t.Errorf("buffers differ (-expected +actual):\n%s", diff)
	}
}

func render(monos []Monomial) []string {
	var strs = make([]string, len(monos))
	//
	for i := range monos {
		strs[i] = monos[i].Coeff.RatString() + "*" + monos[i].Prod.String(varName)
	}
	//
	return strs
}

func varName(x int32) string {
	return string(rune('a' + x))
}

func randomProduct(tbl *pprod.Table, rng *rand.Rand) *pprod.Product {
	var pairs = make([]pprod.Pair, rng.IntN(3))
	//
	for i := range pairs {
		pairs[i] = pprod.Pair{Var: rng.Int32N(6), Exp: uint32(rng.IntN(3))}
	}
	//
	return tbl.Make(pairs...)
}

func randomBuffer(tbl *pprod.Table, rng *rand.Rand, n int) *Buffer {
	var buf = NewBuffer(tbl)
	//
	for range n {
		buf.AddMono(big.NewRat(rng.Int64N(7)-3, rng.Int64N(3)+1), randomProduct(tbl, rng))
	}
	//
	return buf
}

func randomEnv(rng *rand.Rand) func(int32) fr.Element {
	var vals [6]fr.Element
	//
	for i := range vals {
		vals[i] = fr.NewElement(rng.Uint64())
	}
	//
	return func(x int32) fr.Element { return vals[x] }
}

func bitLength(n uint) int {
	var bits = 0
	//
	for ; n > 0; n >>= 1 {
		bits++
	}
	//
	return bits
}

func Test_Buffer_08(t *testing.T) {
	var (
		tbl   = pprod.NewTable()
		buf   = NewBuffer(tbl)
		count uint
		depth uint
	)
	//
	for i := int32(1); i <= 100; i++ {
		buf.AddVar(i)
	}
	//
	buf.Visit(func(d uint, red bool, m *Monomial) {
		if d == 0 {
			assert.False(t, red)
		}
		//
		assert.Equal(t, 1, m.Coeff.Cmp(new(big.Rat)))
		count++
		depth = max(depth, d)
	})
	//
	assert.Equal(t, buf.NumNodes(), count)
	assert.True(t, depth+1 <= 2*buf.BlackHeight())
}
