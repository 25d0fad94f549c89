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

import "fmt"

// Term identifies a term in a Table.  The low-order bit is the polarity,
// which must be zero for all non-Boolean terms.  Thus, for a Boolean term t,
// t.Not() is its negation and both share the same index.
type Term int32

// NullTerm represents the absence of a term.
const NullTerm Term = -1

// ConstIdx is the reserved (positive) term at index 0.  It never denotes an
// actual term and marks the constant monomial of a polynomial.
const ConstIdx Term = 0

// True is the Boolean constant true, stored at index 1.
const True Term = 2

// False is the Boolean constant false.
const False Term = 3

// Index returns the index of this term in its table.
func (t Term) Index() int32 {
	return int32(t) >> 1
}

// IsPos checks whether this term has positive polarity.
func (t Term) IsPos() bool {
	return t&1 == 0
}

// Not returns the opposite polarity of this term.
func (t Term) Not() Term {
	return t ^ 1
}

// Pos returns the positive version of this term.
func (t Term) Pos() Term {
	return t &^ 1
}

// BoolTerm converts a Boolean value into a Boolean constant term.
func BoolTerm(b bool) Term {
	if b {
		return True
	}
	//
	return False
}

// Opposite checks whether two Boolean terms are negations of each other.
func Opposite(x, y Term) bool {
	return x^y == 1
}

func fromIndex(i int32) Term {
	return Term(i << 1)
}

// Kind identifies the structural category of a term.
type Kind uint8

// Term kinds
const (
	// Reserved is the kind of the markers at index 0 and 1.
	Reserved Kind = iota
	// Constant is an element of a scalar or uninterpreted type.
	Constant
	// Uninterpreted is a free variable.
	Uninterpreted
	// ArithConstant is a rational constant.
	ArithConstant
	// BV64Constant is a bitvector constant of width at most 64.
	BV64Constant
	// BVConstant is a bitvector constant of width greater than 64.
	BVConstant
	// PowerProduct is a non-trivial product of variables, such as x^2*y.
	PowerProduct
	// ArithPoly is a polynomial with rational coefficients.
	ArithPoly
	// BV64Poly is a bitvector polynomial of width at most 64.
	BV64Poly
	// BVPoly is a bitvector polynomial of width greater than 64.
	BVPoly
	// ITESpecial is an if-then-else whose leaves are all constants.
	ITESpecial
	// ITE is a general if-then-else.
	ITE
	// Eq is an equality between two terms of the same type.
	Eq
	// Or is an n-ary disjunction.
	Or
	// Xor is an n-ary exclusive-or.
	Xor
	// BVArray is a bitvector given by one Boolean term per bit.
	BVArray
	// BVDiv is unsigned bitvector division.
	BVDiv
	// BVRem is unsigned bitvector remainder.
	BVRem
	// BVSDiv is signed bitvector division (rounding towards zero).
	BVSDiv
	// BVSRem is signed bitvector remainder (sign follows dividend).
	BVSRem
	// BVSMod is signed bitvector modulus (sign follows divisor).
	BVSMod
	// BVShl is a left shift.
	BVShl
	// BVLShr is a logical right shift.
	BVLShr
	// BVAShr is an arithmetic right shift.
	BVAShr
	// BVEqAtom is a bitvector equality atom.
	BVEqAtom
	// BVGeAtom is an unsigned bitvector comparison atom.
	BVGeAtom
	// BVSGeAtom is a signed bitvector comparison atom.
	BVSGeAtom
	// Bit selects a single bit of a bitvector.
	Bit
	// Tuple constructs a tuple.
	Tuple
	// Update is a function update f[a1,...,an := v].
	Update
)

var kindNames = [...]string{
	Reserved:      "reserved",
	Constant:      "constant",
	Uninterpreted: "uninterpreted",
	ArithConstant: "arith-constant",
	BV64Constant:  "bv64-constant",
	BVConstant:    "bv-constant",
	PowerProduct:  "*",
	ArithPoly:     "+",
	BV64Poly:      "bvpoly64",
	BVPoly:        "bvpoly",
	ITESpecial:    "ite",
	ITE:           "ite",
	Eq:            "=",
	Or:            "or",
	Xor:           "xor",
	BVArray:       "bits",
	BVDiv:         "bvudiv",
	BVRem:         "bvurem",
	BVSDiv:        "bvsdiv",
	BVSRem:        "bvsrem",
	BVSMod:        "bvsmod",
	BVShl:         "bvshl",
	BVLShr:        "bvlshr",
	BVAShr:        "bvashr",
	BVEqAtom:      "bveq",
	BVGeAtom:      "bvge",
	BVSGeAtom:     "bvsge",
	Bit:           "bit",
	Tuple:         "tuple",
	Update:        "update",
}

// String returns the name of this kind, which for composite kinds is also
// the operator used when printing terms.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	//
	return fmt.Sprintf("Kind<%d>", k)
}

// IsBVBinary checks whether terms of this kind are binary bitvector
// operators (division, remainder and shift families).
func (k Kind) IsBVBinary() bool {
	return k >= BVDiv && k <= BVAShr
}

// IsBVAtom checks whether terms of this kind are bitvector comparison atoms.
func (k Kind) IsBVAtom() bool {
	return k >= BVEqAtom && k <= BVSGeAtom
}

// IsConstant checks whether terms of this kind are constants.
func (k Kind) IsConstant() bool {
	switch k {
	case Constant, ArithConstant, BV64Constant, BVConstant:
		return true
	default:
		return false
	}
}
