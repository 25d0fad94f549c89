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
	"fmt"
	"math/big"

	"github.com/consensys/go-termcore/pkg/pprod"
	"github.com/consensys/go-termcore/pkg/term"
	"github.com/consensys/go-termcore/pkg/util/collection/pool"
	"github.com/consensys/go-termcore/pkg/worker"
)

// Bridge decomposes arithmetic terms into buffer operations, and rebuilds
// canonical terms from buffers.  Buffers used with a bridge must be bound to
// the power product table of its term table.  Scratch storage is borrowed from
// the worker context, hence a bridge should only be used by that worker.
type Bridge struct {
	tbl    *term.Table
	worker *worker.Context
	// auxiliary buffer for polynomial multiplication
	aux *Buffer
}

// NewBridge constructs a bridge for a given term table and worker.
func NewBridge(tbl *term.Table, w *worker.Context) *Bridge {
	return &Bridge{tbl, w, NewBuffer(tbl.PProds())}
}

// NewBuffer constructs an empty buffer suitable for use with this bridge.
func (p *Bridge) NewBuffer() *Buffer {
	return NewBuffer(p.tbl.PProds())
}

// AddTerm adds an arithmetic term to a buffer.
func (p *Bridge) AddTerm(b *Buffer, t term.Term) {
	p.AddConstTimesTerm(b, one, t)
}

// SubTerm subtracts an arithmetic term from a buffer.
func (p *Bridge) SubTerm(b *Buffer, t term.Term) {
	p.AddConstTimesTerm(b, big.NewRat(-1, 1), t)
}

// AddConstTimesTerm adds a*t to a buffer.
func (p *Bridge) AddConstTimesTerm(b *Buffer, a *big.Rat, t term.Term) {
	p.check(b, t)
	//
	switch p.tbl.Kind(t) {
	case term.ArithConstant:
		var c big.Rat
		b.AddConst(c.Mul(a, p.tbl.RationalOf(t)))
	case term.PowerProduct:
		b.AddMono(a, p.tbl.PProdOfTerm(t))
	case term.ArithPoly:
		coeffs, prods := p.decompose(t)
		b.AddConstTimesMonArray(coeffs, prods.Data, a)
		p.worker.Products().Release(prods)
	case term.Uninterpreted, term.ITE, term.ITESpecial:
		b.AddVarMono(a, int32(t))
	default:
		panic(fmt.Sprintf("unexpected arithmetic term %s", p.tbl.String(t)))
	}
}

// MulTerm multiplies a buffer by an arithmetic term.
func (p *Bridge) MulTerm(b *Buffer, t term.Term) {
	p.check(b, t)
	//
	switch p.tbl.Kind(t) {
	case term.ArithConstant:
		b.MulConst(p.tbl.RationalOf(t))
	case term.PowerProduct:
		b.MulPP(p.tbl.PProdOfTerm(t))
	case term.ArithPoly:
		coeffs, prods := p.decompose(t)
		b.MulMonArray(coeffs, prods.Data, p.aux)
		p.worker.Products().Release(prods)
	case term.Uninterpreted, term.ITE, term.ITESpecial:
		b.MulVar(int32(t))
	default:
		panic(fmt.Sprintf("unexpected arithmetic term %s", p.tbl.String(t)))
	}
}

// MulTermPower multiplies a buffer by t^d.  Constants and power products are
// exponentiated directly, whilst polynomials are expanded via repeated
// multiplication.
func (p *Bridge) MulTermPower(b *Buffer, t term.Term, d uint32) {
	p.check(b, t)
	//
	if d == 0 {
		return
	}
	//
	var pprods = p.tbl.PProds()
	//
	switch p.tbl.Kind(t) {
	case term.ArithConstant:
		b.MulConst(ratPower(p.tbl.RationalOf(t), d))
	case term.PowerProduct:
		b.MulPP(pprods.Exp(p.tbl.PProdOfTerm(t), d))
	case term.ArithPoly:
		coeffs, prods := p.decompose(t)
		b.MulMonArrayPower(coeffs, prods.Data, d, p.aux)
		p.worker.Products().Release(prods)
	case term.Uninterpreted, term.ITE, term.ITESpecial:
		b.MulPP(pprods.VarExp(int32(t), d))
	default:
		panic(fmt.Sprintf("unexpected arithmetic term %s", p.tbl.String(t)))
	}
}

// Export normalises a buffer and constructs the corresponding canonical term.
// The zero polynomial yields the constant 0, a constant polynomial yields an
// arithmetic constant and 1*x yields x.
func (p *Bridge) Export(b *Buffer) term.Term {
	p.checkBuffer(b)
	//
	var (
		monos = b.Monomials()
		poly  = make([]term.Monomial, len(monos))
	)
	//
	for i := range monos {
		v := term.ConstIdx
		//
		if !monos[i].Prod.IsEmpty() {
			v = p.tbl.PProdTerm(monos[i].Prod)
		}
		//
		poly[i] = term.NewMonomial(&monos[i].Coeff, v)
	}
	//
	return p.tbl.Poly(poly)
}

// decompose a polynomial term into its coefficients and power products.  The
// vector of power products is borrowed from the worker, and must be released
// by the caller.
func (p *Bridge) decompose(t term.Term) ([]*big.Rat, *pool.Vector[*pprod.Product]) {
	var (
		poly   = p.tbl.PolyOf(t)
		coeffs = make([]*big.Rat, len(poly.Mono))
		prods  = p.worker.Products().Alloc(poly.Len())
	)
	//
	for i := range poly.Mono {
		coeffs[i] = &poly.Mono[i].Coeff
		prods.Data[i] = p.tbl.PProdOf(poly.Mono[i].Var)
	}
	//
	return coeffs, prods
}

func (p *Bridge) check(b *Buffer, t term.Term) {
	p.checkBuffer(b)
	//
	if !t.IsPos() || !p.tbl.IsArithmetic(t) {
		panic(fmt.Sprintf("expected arithmetic term, found %s", p.tbl.String(t)))
	}
}

func (p *Bridge) checkBuffer(b *Buffer) {
	if b.tbl != p.tbl.PProds() {
		panic("buffer bound to foreign power product table")
	} else if b == p.aux {
		panic("auxiliary buffer used as operand")
	}
}

// ratPower computes q^d.
func ratPower(q *big.Rat, d uint32) *big.Rat {
	var (
		exp = big.NewInt(int64(d))
		num = new(big.Int).Exp(q.Num(), exp, nil)
		den = new(big.Int).Exp(q.Denom(), exp, nil)
	)
	//
	return new(big.Rat).SetFrac(num, den)
}
