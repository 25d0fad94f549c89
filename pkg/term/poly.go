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
package term

import (
	"math/big"
	"slices"

	"github.com/consensys/go-termcore/pkg/bv"
)

// Monomial is a rational coefficient times a variable.  The variable is either
// ConstIdx (for the constant monomial), a power product term, or any other
// arithmetic term.
type Monomial struct {
	Coeff big.Rat
	Var   Term
}

// NewMonomial constructs a monomial from a coefficient (which is copied) and a
// variable.
func NewMonomial(coeff *big.Rat, v Term) Monomial {
	var m = Monomial{Var: v}
	//
	m.Coeff.Set(coeff)
	//
	return m
}

// Polynomial is a sum of monomials in canonical form: sorted by the order on
// the power products of their variables (hence the constant monomial, if any,
// comes first), with distinct variables and nonzero coefficients.
type Polynomial struct {
	Mono []Monomial
}

// Len returns the number of monomials in this polynomial.
func (p *Polynomial) Len() uint {
	return uint(len(p.Mono))
}

// Constant returns the constant coefficient of this polynomial.
func (p *Polynomial) Constant() *big.Rat {
	if len(p.Mono) > 0 && p.Mono[0].Var == ConstIdx {
		return &p.Mono[0].Coeff
	}
	//
	return new(big.Rat)
}

// BV64Monomial is a monomial with a packed coefficient.
type BV64Monomial struct {
	Coeff uint64
	Var   Term
}

// BV64Polynomial is a bitvector polynomial of width at most 64, in canonical form:
// sorted by variable (hence the constant monomial, if any, comes first), with
// distinct variables and coefficients which are nonzero modulo 2^width.
type BV64Polynomial struct {
	Width uint
	Mono  []BV64Monomial
}

// BVMonomial is a monomial with an arbitrary-precision coefficient.
type BVMonomial struct {
	Coeff big.Int
	Var   Term
}

// NewBVMonomial constructs a monomial from a coefficient (which is copied) and
// a variable.
func NewBVMonomial(coeff *big.Int, v Term) BVMonomial {
	var m = BVMonomial{Var: v}
	//
	m.Coeff.Set(coeff)
	//
	return m
}

// BVPolynomial is a bitvector polynomial of width greater than 64, in the same
// canonical form as BV64Polynomial.
type BVPolynomial struct {
	Width uint
	Mono  []BVMonomial
}

// Poly constructs the canonical term for a sum of monomials.  The monomials
// may be given in any order, with repeated variables and zero coefficients.
// Degenerate sums are simplified: the empty sum is the constant 0, a lone
// constant monomial is a rational constant and 1*x is x.
func (p *Table) Poly(monos []Monomial) Term {
	var norm = make([]Monomial, 0, len(monos))
	//
	for i := range monos {
		if monos[i].Var != ConstIdx {
			p.checkArithmetic(monos[i].Var)
		}
		//
		norm = append(norm, NewMonomial(&monos[i].Coeff, monos[i].Var))
	}
	//
	slices.SortStableFunc(norm, func(a, b Monomial) int {
		return p.compareVars(a.Var, b.Var)
	})
	// Merge and drop zeros
	var n = 0
	//
	for i := range norm {
		if n > 0 && norm[n-1].Var == norm[i].Var {
			norm[n-1].Coeff.Add(&norm[n-1].Coeff, &norm[i].Coeff)
		} else {
			if n > 0 && norm[n-1].Coeff.Sign() == 0 {
				n--
			}
			//
			norm[n] = NewMonomial(&norm[i].Coeff, norm[i].Var)
			n++
		}
	}
	//
	if n > 0 && norm[n-1].Coeff.Sign() == 0 {
		n--
	}
	//
	norm = norm[:n]
	// Simplify degenerate cases
	switch {
	case n == 0:
		return p.Rational(new(big.Rat))
	case n == 1 && norm[0].Var == ConstIdx:
		return p.Rational(&norm[0].Coeff)
	case n == 1 && norm[0].Coeff.Cmp(big.NewRat(1, 1)) == 0:
		return norm[0].Var
	}
	//
	return p.insert(ArithPoly, p.polyType(norm), &Polynomial{norm})
}

// BVPoly constructs the canonical term for a sum of bitvector monomials of a
// given width.  Coefficients are reduced modulo 2^width.  Degenerate sums
// are simplified as for Poly.  Polynomials of width at most 64 are given
// the packed representation.
func (p *Table) BVPoly(width uint, monos []BVMonomial) Term {
	var (
		norm    = make([]BVMonomial, 0, len(monos))
		modulus = new(big.Int).Lsh(big.NewInt(1), width)
		tau     = p.BVType(width)
	)
	//
	for i := range monos {
		if monos[i].Var != ConstIdx && p.TypeOf(monos[i].Var) != tau {
			panic("bitvector polynomial with incompatible variable")
		}
		//
		norm = append(norm, NewBVMonomial(&monos[i].Coeff, monos[i].Var))
	}
	//
	slices.SortStableFunc(norm, func(a, b BVMonomial) int {
		return int(a.Var) - int(b.Var)
	})
	//
	var n = 0
	//
	for i := range norm {
		if n > 0 && norm[n-1].Var == norm[i].Var {
			norm[n-1].Coeff.Add(&norm[n-1].Coeff, &norm[i].Coeff)
			norm[n-1].Coeff.Mod(&norm[n-1].Coeff, modulus)
		} else {
			if n > 0 && norm[n-1].Coeff.Sign() == 0 {
				n--
			}
			//
			norm[n] = NewBVMonomial(&norm[i].Coeff, norm[i].Var)
			norm[n].Coeff.Mod(&norm[n].Coeff, modulus)
			n++
		}
	}
	//
	if n > 0 && norm[n-1].Coeff.Sign() == 0 {
		n--
	}
	//
	norm = norm[:n]
	//
	switch {
	case n == 0:
		return p.BVConst(bv.New(width))
	case n == 1 && norm[0].Var == ConstIdx:
		return p.BVConst(bv.NewBig(width, &norm[0].Coeff))
	case n == 1 && norm[0].Coeff.Cmp(big.NewInt(1)) == 0:
		return norm[0].Var
	case width <= 64:
		packed := make([]BV64Monomial, n)
		//
		for i := range norm {
			packed[i] = BV64Monomial{norm[i].Coeff.Uint64(), norm[i].Var}
		}
		//
		return p.insert(BV64Poly, tau, &BV64Polynomial{width, packed})
	default:
		return p.insert(BVPoly, tau, &BVPolynomial{width, norm})
	}
}

// compareVars orders the variables of monomials by the order on their power
// products.
func (p *Table) compareVars(x, y Term) int {
	var l, r = p.PProdOf(x), p.PProdOf(y)
	//
	switch {
	case l == r:
		return 0
	case p.pprods.Precedes(l, r):
		return -1
	default:
		return 1
	}
}

// polyType determines whether a polynomial is integral or real.
func (p *Table) polyType(monos []Monomial) Type {
	for i := range monos {
		if !monos[i].Coeff.IsInt() || (monos[i].Var != ConstIdx && p.TypeOf(monos[i].Var) != Int) {
			return Real
		}
	}
	//
	return Int
}
