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
package eval

import (
	"fmt"

	"github.com/consensys/go-termcore/pkg/bv"
	"github.com/consensys/go-termcore/pkg/term"
)

// Category classifies the terms encountered when evaluating bitvector (and
// Boolean) terms.
type Category uint8

const (
	// ConstantTerm is a constant.
	ConstantTerm Category = iota
	// CompositeTerm is an operator application, including negation.
	CompositeTerm
	// BitSelectTerm selects a single bit of a bitvector.
	BitSelectTerm
	// PolyTerm is a bitvector polynomial or power product.
	PolyTerm
	// VariableTerm is anything else.
	VariableTerm
)

// compositeKinds are exactly the kinds which can be built with MkComposite.
var compositeKinds = []term.Kind{
	term.Eq, term.Or, term.Xor, term.BVArray, term.BVDiv, term.BVRem, term.BVSDiv, term.BVSRem,
	term.BVSMod, term.BVShl, term.BVLShr, term.BVAShr, term.BVEqAtom, term.BVGeAtom, term.BVSGeAtom,
}

// CompositeKinds returns the set of term kinds which are classified as
// composite.
func CompositeKinds() []term.Kind {
	return compositeKinds
}

// ClassifyKind determines the category of terms of a given kind.
func ClassifyKind(kind term.Kind) Category {
	switch kind {
	case term.Constant, term.BV64Constant, term.BVConstant:
		return ConstantTerm
	case term.Eq, term.Or, term.Xor, term.BVArray, term.BVDiv, term.BVRem, term.BVSDiv, term.BVSRem,
		term.BVSMod, term.BVShl, term.BVLShr, term.BVAShr, term.BVEqAtom, term.BVGeAtom, term.BVSGeAtom:
		return CompositeTerm
	case term.Bit:
		return BitSelectTerm
	case term.BVPoly, term.BV64Poly, term.PowerProduct:
		return PolyTerm
	default:
		return VariableTerm
	}
}

// Classify determines the category of a term.  Negated terms are composite.
func Classify(tbl *term.Table, t term.Term) Category {
	if !t.IsPos() {
		return CompositeTerm
	}
	//
	return ClassifyKind(tbl.Kind(t))
}

// HasChildren checks whether a term has children whose values determine its
// own.
func HasChildren(tbl *term.Table, t term.Term) bool {
	switch Classify(tbl, t) {
	case CompositeTerm, BitSelectTerm, PolyTerm:
		return true
	default:
		return false
	}
}

// BitSize returns the width of a bitvector term, or 1 for a Boolean term.
func BitSize(tbl *term.Table, t term.Term) uint {
	if tbl.IsBoolean(t) {
		return 1
	}
	//
	return tbl.BitSize(t)
}

// Children returns the children of a term in the order their values are
// expected by ComputeValue.  For polynomials, these are the variables of the
// non-constant monomials, and for power products the variables of each
// factor.
func Children(tbl *term.Table, t term.Term) []term.Term {
	if !t.IsPos() {
		return []term.Term{t.Not()}
	}
	//
	switch tbl.Kind(t) {
	case term.Bit:
		_, arg := tbl.SelectOf(t)
		return []term.Term{arg}
	case term.BVPoly:
		var children []term.Term
		//
		for i, poly := 0, tbl.BVPolyOf(t); i < len(poly.Mono); i++ {
			if v := poly.Mono[i].Var; v != term.ConstIdx {
				children = append(children, v)
			}
		}
		//
		return children
	case term.BV64Poly:
		var children []term.Term
		//
		for _, m := range tbl.BV64PolyOf(t).Mono {
			if m.Var != term.ConstIdx {
				children = append(children, m.Var)
			}
		}
		//
		return children
	case term.PowerProduct:
		var (
			pairs    = tbl.PProdOfTerm(t).Pairs()
			children = make([]term.Term, len(pairs))
		)
		//
		for i, pair := range pairs {
			children[i] = term.Term(pair.Var)
		}
		//
		return children
	}
	//
	if ClassifyKind(tbl.Kind(t)) != CompositeTerm {
		panic(fmt.Sprintf("term %s has no children", tbl.String(t)))
	}
	//
	return tbl.Args(t)
}

// ComputeValue computes the value of a term with children, given the values
// of its children (in the order returned by Children).  The result is written
// into out, whose width is set to that of the term.
func ComputeValue(tbl *term.Table, t term.Term, children []*bv.Constant, out *bv.Constant) {
	var n = BitSize(tbl, t)
	//
	out.SetAllZero(n)
	//
	if !t.IsPos() {
		out.AssignBit(0, !children[0].Bit(0))
		return
	}
	//
	switch kind := tbl.Kind(t); kind {
	case term.Eq, term.BVEqAtom:
		out.AssignBit(0, children[0].Equal(children[1]))
	case term.BVGeAtom:
		out.AssignBit(0, children[0].Ge(children[1]))
	case term.BVSGeAtom:
		out.AssignBit(0, children[0].Sge(children[1]))
	case term.BVDiv:
		out.UDiv(children[0], children[1])
	case term.BVRem:
		out.URem(children[0], children[1])
	case term.BVSDiv:
		out.SDiv(children[0], children[1])
	case term.BVSRem:
		out.SRem(children[0], children[1])
	case term.BVSMod:
		out.SMod(children[0], children[1])
	case term.BVShl:
		out.Shl(children[0], children[1])
	case term.BVLShr:
		out.LShr(children[0], children[1])
	case term.BVAShr:
		out.AShr(children[0], children[1])
	case term.BVArray:
		for i := range tbl.Args(t) {
			out.AssignBit(uint(i), children[i].Bit(0))
		}
	case term.Or:
		for i := range tbl.Args(t) {
			if children[i].Bit(0) {
				out.SetBit(0)
				break
			}
		}
	case term.Xor:
		var parity bool
		//
		for i := range tbl.Args(t) {
			parity = parity != children[i].Bit(0)
		}
		//
		out.AssignBit(0, parity)
	case term.Bit:
		index, _ := tbl.SelectOf(t)
		out.AssignBit(0, children[0].Bit(uint(index)))
	case term.BVPoly:
		var (
			poly = tbl.BVPolyOf(t)
			next = 0
		)
		//
		for i := range poly.Mono {
			m := &poly.Mono[i]
			//
			if m.Var == term.ConstIdx {
				out.AddBig(&m.Coeff)
			} else {
				out.AddMul(&m.Coeff, children[next])
				next++
			}
		}
	case term.BV64Poly:
		var (
			sum  uint64
			next = 0
		)
		//
		for _, m := range tbl.BV64PolyOf(t).Mono {
			if m.Var == term.ConstIdx {
				sum += m.Coeff
			} else {
				sum += m.Coeff * children[next].Uint64()
				next++
			}
		}
		//
		out.SetUint64(n, sum)
	case term.PowerProduct:
		out.SetOne()
		//
		for i, pair := range tbl.PProdOfTerm(t).Pairs() {
			out.MulPower(children[i], pair.Exp)
		}
	default:
		panic(fmt.Sprintf("cannot evaluate %s term", kind))
	}
}

// MkComposite constructs a composite term of a given kind from its children.
// This covers exactly the kinds classified as composite.
func MkComposite(tbl *term.Table, kind term.Kind, children ...term.Term) term.Term {
	switch kind {
	case term.Eq:
		checkArity(kind, children, 2)
		return tbl.Eq(children[0], children[1])
	case term.Or:
		return tbl.Or(children...)
	case term.Xor:
		return tbl.Xor(children...)
	case term.BVArray:
		return tbl.BVArray(children...)
	case term.BVDiv, term.BVRem, term.BVSDiv, term.BVSRem, term.BVSMod, term.BVShl, term.BVLShr, term.BVAShr:
		checkArity(kind, children, 2)
		return tbl.BVBinary(kind, children[0], children[1])
	case term.BVEqAtom, term.BVGeAtom, term.BVSGeAtom:
		checkArity(kind, children, 2)
		return tbl.BVAtom(kind, children[0], children[1])
	default:
		panic(fmt.Sprintf("%s is not a composite kind", kind))
	}
}

func checkArity(kind term.Kind, children []term.Term, n int) {
	if len(children) != n {
		panic(fmt.Sprintf("%s expects %d children, found %d", kind, n, len(children)))
	}
}
