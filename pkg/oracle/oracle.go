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
	"fmt"

	"github.com/consensys/go-termcore/pkg/bv"
	"github.com/consensys/go-termcore/pkg/domain"
	"github.com/consensys/go-termcore/pkg/term"
	"github.com/consensys/go-termcore/pkg/util/collection/stack"
	"github.com/consensys/go-termcore/pkg/worker"
)

// Oracle decides, soundly but incompletely, whether two terms can never be
// equal.  A positive answer means no assignment equates them, whereas a
// negative answer means only that the oracle could not establish this.  The
// oracle relies on hash-consing, such that distinct constants are distinct
// terms.
type Oracle struct {
	tbl    *term.Table
	cache  *domain.Cache
	worker *worker.Context
	// worklist of term pairs
	pairs *stack.Stack[pair]
}

type pair struct {
	x term.Term
	y term.Term
}

// NewOracle constructs an oracle over a given term table, using a given domain
// cache.  Scratch storage is borrowed from the given worker.
func NewOracle(tbl *term.Table, cache *domain.Cache, w *worker.Context) *Oracle {
	return &Oracle{tbl, cache, w, stack.NewStack[pair]()}
}

// Disequal checks whether two terms of compatible types can never be equal.
// Tuples are disequal when some pair of components are, and function updates
// (of the same function at the same points) are disequal when their values
// are.  Nested tuples and updates are handled with an explicit worklist,
// hence arbitrarily deep nesting is supported.
func (p *Oracle) Disequal(x, y term.Term) bool {
	var work = p.pairs
	//
	work.Reset()
	work.Push(pair{x, y})
	//
	for !work.IsEmpty() {
		var next = work.Pop()
		//
		if p.disequalBase(next.x, next.y) {
			return true
		}
	}
	//
	return false
}

// disequalBase decides a single pair, pushing the component pairs of tuples
// and updates onto the worklist rather than recursing.
func (p *Oracle) disequalBase(x, y term.Term) bool {
	var tbl = p.tbl
	//
	switch {
	case tbl.IsBoolean(x):
		p.checkBoolean(y)
		return term.Opposite(x, y)
	case tbl.IsArithmetic(x):
		p.checkArithmetic(y)
		return p.disequalArith(x, y)
	case tbl.IsBitvector(x):
		p.checkSameType(x, y)
		//
		if tbl.BitSize(x) <= 64 {
			return p.disequalBV64(x, y)
		}
		//
		return p.disequalBV(x, y)
	}
	//
	var kind = tbl.Kind(x)
	//
	if kind != tbl.Kind(y) {
		return false
	}
	//
	switch kind {
	case term.Constant:
		return x != y
	case term.Tuple:
		var xs, ys = tbl.Args(x), tbl.Args(y)
		//
		if len(xs) != len(ys) {
			panic("tuples of different arity")
		}
		//
		for i := range xs {
			p.pairs.Push(pair{xs[i], ys[i]})
		}
	case term.Update:
		var xs, ys = tbl.Args(x), tbl.Args(y)
		//
		p.checkSameType(x, y)
		//
		for i := 0; i < len(xs)-1; i++ {
			if xs[i] != ys[i] {
				return false
			}
		}
		//
		p.pairs.Push(pair{xs[len(xs)-1], ys[len(ys)-1]})
	}
	//
	return false
}

// DisequalArrays checks whether a[i] and b[i] can never be equal for some i.
func (p *Oracle) DisequalArrays(a, b []term.Term) bool {
	if len(a) != len(b) {
		panic("arrays of different length")
	}
	//
	for i := range a {
		if p.Disequal(a[i], b[i]) {
			return true
		}
	}
	//
	return false
}

// PairwiseDisequal checks whether every pair of distinct elements of an array
// can never be equal.  This is quadratic, but should fail fast in most cases.
func (p *Oracle) PairwiseDisequal(a []term.Term) bool {
	for i := range a {
		for j := i + 1; j < len(a); j++ {
			if !p.Disequal(a[i], a[j]) {
				return false
			}
		}
	}
	//
	return true
}

// ============================================================================
// Arithmetic
// ============================================================================

// disequalArith handles arithmetic terms.  Polynomial terms constructed from
// buffers are never constant and never of the form 1*x.
func (p *Oracle) disequalArith(x, y term.Term) bool {
	var (
		tbl    = p.tbl
		kx, ky = tbl.Kind(x), tbl.Kind(y)
	)
	//
	switch {
	case tbl.IsInteger(x) && p.isNonInteger(y), tbl.IsInteger(y) && p.isNonInteger(x):
		return true
	case kx == term.ArithConstant && ky == term.ArithConstant:
		return x != y
	case kx == term.ArithConstant && ky == term.ITESpecial:
		return !p.cache.IsMember(p.worker, y, x)
	case kx == term.ITESpecial && ky == term.ArithConstant:
		return !p.cache.IsMember(p.worker, x, y)
	case kx == term.ITESpecial && ky == term.ITESpecial:
		return p.cache.Disjoint(p.worker, x, y)
	case kx == term.ArithPoly && ky == term.ArithPoly:
		return disequalPolys(tbl.PolyOf(x), tbl.PolyOf(y))
	case kx == term.ArithPoly && ky != term.ArithConstant:
		return polyIsConstPlusVar(tbl.PolyOf(x), y)
	case ky == term.ArithPoly && kx != term.ArithConstant:
		return polyIsConstPlusVar(tbl.PolyOf(y), x)
	default:
		return false
	}
}

func (p *Oracle) isNonInteger(x term.Term) bool {
	return p.tbl.Kind(x) == term.ArithConstant && !p.tbl.RationalOf(x).IsInt()
}

// ArithIsNonneg checks whether an arithmetic term is nonnegative in every
// assignment.
func (p *Oracle) ArithIsNonneg(t term.Term) bool {
	p.checkArithmetic(t)
	//
	switch p.tbl.Kind(t) {
	case term.ArithConstant:
		return p.tbl.RationalOf(t).Sign() >= 0
	case term.ITESpecial:
		return p.cache.IsNonneg(p.worker, t)
	case term.ArithPoly:
		return p.polyHasSign(p.tbl.PolyOf(t), false)
	default:
		return false
	}
}

// ArithIsNegative checks whether an arithmetic term is negative in every
// assignment.
func (p *Oracle) ArithIsNegative(t term.Term) bool {
	p.checkArithmetic(t)
	//
	switch p.tbl.Kind(t) {
	case term.ArithConstant:
		return p.tbl.RationalOf(t).Sign() < 0
	case term.ITESpecial:
		return p.cache.IsNegative(p.worker, t)
	case term.ArithPoly:
		return p.polyHasSign(p.tbl.PolyOf(t), true)
	default:
		return false
	}
}

// ============================================================================
// Bitvectors
// ============================================================================

// disequalBV64 handles bitvectors of width at most 64.
func (p *Oracle) disequalBV64(x, y term.Term) bool {
	var (
		tbl    = p.tbl
		kx, ky = tbl.Kind(x), tbl.Kind(y)
	)
	//
	if kx == ky {
		switch kx {
		case term.BV64Constant:
			return x != y
		case term.BV64Poly:
			return disequalBV64Polys(tbl.BV64PolyOf(x), tbl.BV64PolyOf(y))
		case term.BVArray:
			return disequalBitArrays(tbl.Args(x), tbl.Args(y))
		case term.ITESpecial:
			return p.cache.Disjoint(p.worker, x, y)
		default:
			return false
		}
	}
	//
	switch {
	case kx == term.BV64Constant && ky == term.BVArray:
		return disequalBitArrayConst(tbl.Args(y), tbl.BVValueOf(x))
	case ky == term.BV64Constant && kx == term.BVArray:
		return disequalBitArrayConst(tbl.Args(x), tbl.BVValueOf(y))
	case kx == term.BV64Constant && ky == term.ITESpecial:
		return !p.cache.IsMember(p.worker, y, x)
	case ky == term.BV64Constant && kx == term.ITESpecial:
		return !p.cache.IsMember(p.worker, x, y)
	case kx == term.BV64Poly && ky != term.BV64Constant:
		return bv64PolyIsConstPlusVar(tbl.BV64PolyOf(x), y)
	case ky == term.BV64Poly && kx != term.BV64Constant:
		return bv64PolyIsConstPlusVar(tbl.BV64PolyOf(y), x)
	default:
		return false
	}
}

// disequalBV handles bitvectors of width greater than 64.
func (p *Oracle) disequalBV(x, y term.Term) bool {
	var (
		tbl    = p.tbl
		kx, ky = tbl.Kind(x), tbl.Kind(y)
	)
	//
	if kx == ky {
		switch kx {
		case term.BVConstant:
			return x != y
		case term.BVPoly:
			return disequalBVPolys(tbl.BVPolyOf(x), tbl.BVPolyOf(y))
		case term.BVArray:
			return disequalBitArrays(tbl.Args(x), tbl.Args(y))
		case term.ITESpecial:
			return p.cache.Disjoint(p.worker, x, y)
		default:
			return false
		}
	}
	//
	switch {
	case kx == term.BVConstant && ky == term.BVArray:
		return disequalBitArrayConst(tbl.Args(y), tbl.BVValueOf(x))
	case ky == term.BVConstant && kx == term.BVArray:
		return disequalBitArrayConst(tbl.Args(x), tbl.BVValueOf(y))
	case kx == term.BVConstant && ky == term.ITESpecial:
		return !p.cache.IsMember(p.worker, y, x)
	case ky == term.BVConstant && kx == term.ITESpecial:
		return !p.cache.IsMember(p.worker, x, y)
	case kx == term.BVPoly && ky != term.BVConstant:
		return bvPolyIsConstPlusVar(tbl.BVPolyOf(x), y)
	case ky == term.BVPoly && kx != term.BVConstant:
		return bvPolyIsConstPlusVar(tbl.BVPolyOf(y), x)
	default:
		return false
	}
}

// disequalBitArrays checks whether two bit arrays have opposite bits at some
// position.
func disequalBitArrays(a, b []term.Term) bool {
	for i := range a {
		if term.Opposite(a[i], b[i]) {
			return true
		}
	}
	//
	return false
}

// disequalBitArrayConst checks whether a bit array has a statically known bit
// which differs from that of a constant.
func disequalBitArrayConst(a []term.Term, c *bv.Constant) bool {
	for i, bit := range a {
		if (bit == term.True || bit == term.False) && bit != term.BoolTerm(c.Bit(uint(i))) {
			return true
		}
	}
	//
	return false
}

// ============================================================================
// Helpers
// ============================================================================

func (p *Oracle) checkBoolean(t term.Term) {
	if !p.tbl.IsBoolean(t) {
		panic(fmt.Sprintf("expected Boolean term, found %s", p.tbl.String(t)))
	}
}

func (p *Oracle) checkArithmetic(t term.Term) {
	if !p.tbl.IsArithmetic(t) {
		panic(fmt.Sprintf("expected arithmetic term, found %s", p.tbl.String(t)))
	}
}

func (p *Oracle) checkSameType(x, y term.Term) {
	if p.tbl.TypeOf(x) != p.tbl.TypeOf(y) {
		panic(fmt.Sprintf("incompatible terms %s and %s", p.tbl.String(x), p.tbl.String(y)))
	}
}
