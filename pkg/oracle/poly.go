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

	"github.com/consensys/go-termcore/pkg/term"
)

// disequalPolys checks whether p - q is a nonzero constant, i.e. both have the
// same non-constant monomials but distinct constants.
func disequalPolys(p, q *term.Polynomial) bool {
	var (
		ps, qs = nonConstant(p.Mono), nonConstant(q.Mono)
	)
	//
	if len(ps) != len(qs) || p.Constant().Cmp(q.Constant()) == 0 {
		return false
	}
	//
	for i := range ps {
		if ps[i].Var != qs[i].Var || ps[i].Coeff.Cmp(&qs[i].Coeff) != 0 {
			return false
		}
	}
	//
	return true
}

// polyIsConstPlusVar checks whether p is k + y for some nonzero constant k.
// Since p is never 1*y, this implies p differs from y.
func polyIsConstPlusVar(p *term.Polynomial, y term.Term) bool {
	return len(p.Mono) == 2 && p.Mono[0].Var == term.ConstIdx && p.Mono[1].Var == y &&
		p.Mono[1].Coeff.IsInt() && p.Mono[1].Coeff.Num().IsInt64() && p.Mono[1].Coeff.Num().Int64() == 1
}

// polyHasSign checks whether a polynomial is nonnegative (resp. negative) in
// every assignment.  This holds when the constant is nonnegative (resp.
// negative), and every other monomial is a square with a positive (resp.
// negative) coefficient.
func (p *Oracle) polyHasSign(poly *term.Polynomial, negative bool) bool {
	var c = poly.Constant().Sign()
	//
	if (negative && c >= 0) || (!negative && c < 0) {
		return false
	}
	//
	var monos = nonConstant(poly.Mono)
	//
	for i := range monos {
		var m = &monos[i]
		//
		if s := m.Coeff.Sign(); (negative && s >= 0) || (!negative && s <= 0) {
			return false
		} else if p.tbl.Kind(m.Var) != term.PowerProduct || !p.tbl.PProdOfTerm(m.Var).IsSquare() {
			return false
		}
	}
	//
	return true
}

func nonConstant(monos []term.Monomial) []term.Monomial {
	if len(monos) > 0 && monos[0].Var == term.ConstIdx {
		return monos[1:]
	}
	//
	return monos
}

// disequalBV64Polys checks whether p - q is a nonzero constant.
func disequalBV64Polys(p, q *term.BV64Polynomial) bool {
	var (
		ps, pk = splitBV64(p.Mono)
		qs, qk = splitBV64(q.Mono)
	)
	//
	if len(ps) != len(qs) || pk == qk {
		return false
	}
	//
	for i := range ps {
		if ps[i] != qs[i] {
			return false
		}
	}
	//
	return true
}

// bv64PolyIsConstPlusVar checks whether p is k + y for some nonzero k.
func bv64PolyIsConstPlusVar(p *term.BV64Polynomial, y term.Term) bool {
	return len(p.Mono) == 2 && p.Mono[0].Var == term.ConstIdx && p.Mono[1].Var == y && p.Mono[1].Coeff == 1
}

func splitBV64(monos []term.BV64Monomial) ([]term.BV64Monomial, uint64) {
	if len(monos) > 0 && monos[0].Var == term.ConstIdx {
		return monos[1:], monos[0].Coeff
	}
	//
	return monos, 0
}

// disequalBVPolys checks whether p - q is a nonzero constant.
func disequalBVPolys(p, q *term.BVPolynomial) bool {
	var (
		ps, pk = splitBV(p.Mono)
		qs, qk = splitBV(q.Mono)
	)
	//
	if len(ps) != len(qs) || pk.Cmp(qk) == 0 {
		return false
	}
	//
	for i := range ps {
		if ps[i].Var != qs[i].Var || ps[i].Coeff.Cmp(&qs[i].Coeff) != 0 {
			return false
		}
	}
	//
	return true
}

// bvPolyIsConstPlusVar checks whether p is k + y for some nonzero k.
func bvPolyIsConstPlusVar(p *term.BVPolynomial, y term.Term) bool {
	return len(p.Mono) == 2 && p.Mono[0].Var == term.ConstIdx && p.Mono[1].Var == y &&
		p.Mono[1].Coeff.IsInt64() && p.Mono[1].Coeff.Int64() == 1
}

func splitBV(monos []term.BVMonomial) ([]term.BVMonomial, *big.Int) {
	if len(monos) > 0 && monos[0].Var == term.ConstIdx {
		return monos[1:], &monos[0].Coeff
	}
	//
	return monos, new(big.Int)
}
