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

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/go-termcore/pkg/pprod"
)

// Fingerprint evaluates the polynomial held in this buffer over the BLS12-377
// scalar field, for an assignment of field elements to variables.  Equal
// polynomials have equal fingerprints, whilst distinct polynomials evaluated at
// random points have distinct fingerprints with overwhelming probability.
func (b *Buffer) Fingerprint(env func(int32) fr.Element) fr.Element {
	var sum fr.Element
	//
	b.forEach(func(x uint32) {
		if b.nodes[x].coeff.Sign() != 0 {
			term := Evaluate(b.nodes[x].prod, env)
			coeff := RatToElement(&b.nodes[x].coeff)
			term.Mul(&term, &coeff)
			sum.Add(&sum, &term)
		}
	})
	//
	return sum
}

// Evaluate a power product over the BLS12-377 scalar field for a given
// assignment of field elements to variables.
func Evaluate(p *pprod.Product, env func(int32) fr.Element) fr.Element {
	var (
		res fr.Element
		exp big.Int
	)
	//
	res.SetOne()
	//
	for _, pair := range p.Pairs() {
		var ith fr.Element
		//
		exp.SetUint64(uint64(pair.Exp))
		ith.Exp(env(pair.Var), &exp)
		res.Mul(&res, &ith)
	}
	//
	return res
}

// RatToElement converts a rational into a field element.  A denominator which
// is a multiple of the field modulus inverts to zero.
func RatToElement(q *big.Rat) fr.Element {
	var num, den fr.Element
	//
	num.SetBigInt(q.Num())
	den.SetBigInt(q.Denom())
	den.Inverse(&den)
	num.Mul(&num, &den)
	//
	return num
}
