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

	"github.com/consensys/go-termcore/pkg/pprod"
)

var one = big.NewRat(1, 1)

// ============================================================================
// Combine
// ============================================================================

// AddMono adds c*p to this buffer.
func (b *Buffer) AddMono(c *big.Rat, p *pprod.Product) {
	x, _ := b.GetOrInsert(p)
	b.accumulate(x, c, false)
}

// SubMono subtracts c*p from this buffer.
func (b *Buffer) SubMono(c *big.Rat, p *pprod.Product) {
	x, _ := b.GetOrInsert(p)
	b.accumulate(x, c, true)
}

// AddPP adds the power product p to this buffer.
func (b *Buffer) AddPP(p *pprod.Product) {
	b.AddMono(one, p)
}

// SubPP subtracts the power product p from this buffer.
func (b *Buffer) SubPP(p *pprod.Product) {
	b.SubMono(one, p)
}

// AddConst adds the constant c to this buffer.
func (b *Buffer) AddConst(c *big.Rat) {
	b.AddMono(c, b.tbl.Empty())
}

// SubConst subtracts the constant c from this buffer.
func (b *Buffer) SubConst(c *big.Rat) {
	b.SubMono(c, b.tbl.Empty())
}

// AddVar adds the variable x to this buffer.
func (b *Buffer) AddVar(x int32) {
	b.AddMono(one, b.tbl.Var(x))
}

// SubVar subtracts the variable x from this buffer.
func (b *Buffer) SubVar(x int32) {
	b.SubMono(one, b.tbl.Var(x))
}

// AddVarMono adds c*x to this buffer.
func (b *Buffer) AddVarMono(c *big.Rat, x int32) {
	b.AddMono(c, b.tbl.Var(x))
}

// AddMonArray adds a sum of monomials to this buffer, where the ith monomial
// has coefficient coeffs[i] and power product prods[i].
func (b *Buffer) AddMonArray(coeffs []*big.Rat, prods []*pprod.Product) {
	checkArray(coeffs, prods)
	//
	for i, p := range prods {
		b.AddMono(coeffs[i], p)
	}
}

// SubMonArray subtracts a sum of monomials from this buffer.
func (b *Buffer) SubMonArray(coeffs []*big.Rat, prods []*pprod.Product) {
	checkArray(coeffs, prods)
	//
	for i, p := range prods {
		b.SubMono(coeffs[i], p)
	}
}

// AddConstTimesMonArray adds a times a sum of monomials to this buffer.
func (b *Buffer) AddConstTimesMonArray(coeffs []*big.Rat, prods []*pprod.Product, a *big.Rat) {
	var c big.Rat
	//
	checkArray(coeffs, prods)
	//
	for i, p := range prods {
		b.AddMono(c.Mul(a, coeffs[i]), p)
	}
}

// AddBuffer adds the contents of another buffer to this buffer.
func (b *Buffer) AddBuffer(other *Buffer) {
	b.checkCompatible(other)
	//
	monos := other.nonzero()
	//
	for i := range monos {
		b.AddMono(&monos[i].Coeff, monos[i].Prod)
	}
}

// SubBuffer subtracts the contents of another buffer from this buffer.
func (b *Buffer) SubBuffer(other *Buffer) {
	b.checkCompatible(other)
	//
	monos := other.nonzero()
	//
	for i := range monos {
		b.SubMono(&monos[i].Coeff, monos[i].Prod)
	}
}

// ============================================================================
// Multiply
// ============================================================================

// MulConst multiplies this buffer by the constant c.
func (b *Buffer) MulConst(c *big.Rat) {
	if c.Sign() == 0 {
		b.Reset()
		return
	}
	//
	b.forEach(func(x uint32) {
		b.nodes[x].coeff.Mul(&b.nodes[x].coeff, c)
	})
}

// MulPP multiplies this buffer by the power product p.  Since this changes
// every key, the tree is rebuilt from its in-order traversal.
func (b *Buffer) MulPP(p *pprod.Product) {
	b.checkOwns(p)
	//
	if p.IsEmpty() {
		return
	}
	//
	monos := b.nonzero()
	b.Reset()
	//
	for i := range monos {
		b.AddMono(&monos[i].Coeff, b.tbl.Mul(monos[i].Prod, p))
	}
}

// MulVar multiplies this buffer by the variable x.
func (b *Buffer) MulVar(x int32) {
	b.MulPP(b.tbl.Var(x))
}

// MulMono multiplies this buffer by c*p.
func (b *Buffer) MulMono(c *big.Rat, p *pprod.Product) {
	b.MulPP(p)
	b.MulConst(c)
}

// MulMonArray multiplies this buffer by a sum of monomials.  The product is
// accumulated in a distinct auxiliary buffer bound to the same table, which is
// left empty afterwards.
func (b *Buffer) MulMonArray(coeffs []*big.Rat, prods []*pprod.Product, aux *Buffer) {
	var c big.Rat
	//
	checkArray(coeffs, prods)
	b.checkAux(aux)
	//
	aux.Reset()
	//
	monos := b.nonzero()
	//
	for j := range monos {
		for i, p := range prods {
			aux.AddMono(c.Mul(&monos[j].Coeff, coeffs[i]), b.tbl.Mul(monos[j].Prod, p))
		}
	}
	//
	b.swap(aux)
	aux.Reset()
}

// MulBuffer multiplies this buffer by another buffer (which may be this
// buffer).  The auxiliary buffer must be distinct from both.
func (b *Buffer) MulBuffer(other *Buffer, aux *Buffer) {
	b.checkCompatible(other)
	//
	if other == aux {
		panic("auxiliary buffer aliases operand")
	}
	//
	var (
		monos  = other.nonzero()
		coeffs = make([]*big.Rat, len(monos))
		prods  = make([]*pprod.Product, len(monos))
	)
	//
	for i := range monos {
		coeffs[i], prods[i] = &monos[i].Coeff, monos[i].Prod
	}
	//
	b.MulMonArray(coeffs, prods, aux)
}

// MulMonArrayPower multiplies this buffer by a sum of monomials raised to the
// power d.
func (b *Buffer) MulMonArrayPower(coeffs []*big.Rat, prods []*pprod.Product, d uint32, aux *Buffer) {
	for range d {
		b.MulMonArray(coeffs, prods, aux)
	}
}

// swap exchanges the contents of two buffers bound to the same table.
func (b *Buffer) swap(other *Buffer) {
	b.nodes, other.nodes = other.nodes, b.nodes
	b.red, other.red = other.red, b.red
	b.root, other.root = other.root, b.root
	b.nterms, other.nterms = other.nterms, b.nterms
}

func (b *Buffer) checkAux(aux *Buffer) {
	if aux == b {
		panic("auxiliary buffer aliases target")
	}
	//
	b.checkCompatible(aux)
}

func checkArray(coeffs []*big.Rat, prods []*pprod.Product) {
	if len(coeffs) != len(prods) {
		panic("monomial array with mismatched lengths")
	}
}
