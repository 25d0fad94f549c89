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
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/consensys/go-termcore/pkg/bv"
	"github.com/consensys/go-termcore/pkg/pprod"
)

// Composite describes a term with a sequence of term arguments.
type Composite struct {
	Args []Term
}

// Select describes the selection of a single bit from a bitvector.
type Select struct {
	Index uint32
	Arg   Term
}

type entry struct {
	kind Kind
	tau  Type
	desc any
}

// Table stores terms using hash-consing, such that structurally equal terms
// are represented by the same identifier.  Hence, comparing terms for equality
// amounts to comparing identifiers.  Terms are immutable once created, and
// their identifiers are never reused.  A table is not safe for concurrent
// mutation.
type Table struct {
	entries []entry
	index   map[string]int32
	types   types
	pprods  *pprod.Table
	// Memoised representatives of unit types
	units map[Type]Term
}

// NewTable constructs an empty term table, along with the power product table
// used for its arithmetic terms.
func NewTable() *Table {
	var p = &Table{
		index:  make(map[string]int32),
		types:  newTypes(),
		pprods: pprod.NewTable(),
		units:  make(map[Type]Term),
	}
	// Reserve index 0 for the constant monomial, and 1 for Boolean constants.
	p.entries = append(p.entries, entry{Reserved, Bool, nil}, entry{Constant, Bool, int32(0)})
	//
	return p
}

// PProds returns the power product table bound to this term table.
func (p *Table) PProds() *pprod.Table {
	return p.pprods
}

// Len returns the number of term indices allocated (including reserved ones).
func (p *Table) Len() uint {
	return uint(len(p.entries))
}

// ============================================================================
// Constructors
// ============================================================================

// NewVar constructs a fresh uninterpreted term of a given type.  This is never
// hash-consed: each call returns a distinct term.
func (p *Table) NewVar(tau Type, name string) Term {
	return p.fresh(Uninterpreted, tau, name)
}

// Constant returns the ith element of a scalar or uninterpreted type.
func (p *Table) Constant(tau Type, i int32) Term {
	switch p.TypeKindOf(tau) {
	case ScalarType:
		if i < 0 || uint32(i) >= p.Cardinality(tau) {
			panic(fmt.Sprintf("constant %d out-of-bounds for %s", i, p.TypeString(tau)))
		}
	case UninterpretedType:
		if i < 0 {
			panic(fmt.Sprintf("invalid constant index %d", i))
		}
	default:
		panic(fmt.Sprintf("constants of type %s are not supported", p.TypeString(tau)))
	}
	//
	return p.insert(Constant, tau, i)
}

// Rational returns the arithmetic constant q.
func (p *Table) Rational(q *big.Rat) Term {
	var (
		val = new(big.Rat).Set(q)
		tau = Real
	)
	//
	if val.IsInt() {
		tau = Int
	}
	//
	return p.insert(ArithConstant, tau, val)
}

// Integer returns the arithmetic constant n.
func (p *Table) Integer(n int64) Term {
	return p.Rational(new(big.Rat).SetInt64(n))
}

// BVConst returns the bitvector constant c.  Constants of width at most 64 are
// given the packed representation.
func (p *Table) BVConst(c *bv.Constant) Term {
	var tau = p.BVType(c.Width())
	//
	if c.Width() <= 64 {
		return p.insert(BV64Constant, tau, c.Uint64())
	}
	//
	return p.insert(BVConstant, tau, c.Clone())
}

// BVConst64 returns the bitvector constant of a given width (at most 64) and
// value, which is truncated to the width.
func (p *Table) BVConst64(width uint, value uint64) Term {
	return p.BVConst(bv.NewUint64(width, value))
}

// PProdTerm returns the term corresponding to a power product of the
// underlying power product table.  A product x^1 is the term x itself.
func (p *Table) PProdTerm(r *pprod.Product) Term {
	if !p.pprods.Owns(r) {
		panic("power product from a foreign table")
	} else if r.IsEmpty() {
		panic("empty power product has no term")
	} else if x, ok := r.IsVar(); ok {
		return Term(x)
	}
	//
	var tau = p.TypeOf(Term(r.Nth(0).Var))
	//
	for _, pair := range r.Pairs() {
		ith := p.TypeOf(Term(pair.Var))
		//
		switch {
		case ith == tau:
		case (ith == Int || ith == Real) && (tau == Int || tau == Real):
			tau = Real
		default:
			panic("power product with incompatible variables")
		}
	}
	//
	return p.insert(PowerProduct, tau, r)
}

// ITE constructs the term "if c then a else b".  When both branches are
// constants or conditional chains of arithmetic or bitvector type, the result
// is a conditional chain (ITESpecial).
func (p *Table) ITE(c, a, b Term) Term {
	var tau = p.TypeOf(a)
	//
	p.checkBoolean(c)
	//
	if p.TypeOf(b) != tau {
		panic("if-then-else with incompatible branches")
	}
	//
	switch {
	case c == True || a == b:
		return a
	case c == False:
		return b
	case !c.IsPos():
		c, a, b = c.Not(), b, a
	}
	//
	if tau != Bool && p.isChainLeaf(a) && p.isChainLeaf(b) && (p.IsArithmetic(a) || p.IsBitvector(a)) {
		return p.insert(ITESpecial, tau, &Composite{[]Term{c, a, b}})
	}
	//
	return p.insert(ITE, tau, &Composite{[]Term{c, a, b}})
}

// Eq constructs the equality a = b.
func (p *Table) Eq(a, b Term) Term {
	if p.TypeOf(a) != p.TypeOf(b) {
		panic("equality between terms of different types")
	}
	//
	return p.insert(Eq, Bool, &Composite{sortedArgs(a, b)})
}

// Or constructs the disjunction of one or more Boolean terms.
func (p *Table) Or(args ...Term) Term {
	for _, arg := range args {
		p.checkBoolean(arg)
	}
	//
	return p.insert(Or, Bool, &Composite{sortedArgs(args...)})
}

// Xor constructs the exclusive-or of one or more Boolean terms.
func (p *Table) Xor(args ...Term) Term {
	for _, arg := range args {
		p.checkBoolean(arg)
	}
	//
	return p.insert(Xor, Bool, &Composite{sortedArgs(args...)})
}

// BVArray constructs the bitvector whose ith bit is the ith Boolean term.
func (p *Table) BVArray(bits ...Term) Term {
	if len(bits) == 0 {
		panic("empty bit array")
	}
	//
	for _, bit := range bits {
		p.checkBoolean(bit)
	}
	//
	return p.insert(BVArray, p.BVType(uint(len(bits))), &Composite{slices.Clone(bits)})
}

// BVBinary constructs a binary bitvector operation from the division,
// remainder or shift families.
func (p *Table) BVBinary(kind Kind, a, b Term) Term {
	if !kind.IsBVBinary() {
		panic(fmt.Sprintf("%s is not a binary bitvector operator", kind))
	}
	//
	p.checkSameBitvector(a, b)
	//
	return p.insert(kind, p.TypeOf(a), &Composite{[]Term{a, b}})
}

// BVAtom constructs a bitvector comparison atom.
func (p *Table) BVAtom(kind Kind, a, b Term) Term {
	if !kind.IsBVAtom() {
		panic(fmt.Sprintf("%s is not a bitvector atom", kind))
	}
	//
	p.checkSameBitvector(a, b)
	//
	if kind == BVEqAtom {
		return p.insert(kind, Bool, &Composite{sortedArgs(a, b)})
	}
	//
	return p.insert(kind, Bool, &Composite{[]Term{a, b}})
}

// Bit constructs the term selecting the ith bit of a bitvector.
func (p *Table) Bit(t Term, i uint32) Term {
	if uint(i) >= p.BitSize(t) {
		panic(fmt.Sprintf("bit index %d out-of-bounds for width %d", i, p.BitSize(t)))
	}
	//
	return p.insert(Bit, Bool, &Select{i, t})
}

// Tuple constructs a tuple from one or more terms.
func (p *Table) Tuple(args ...Term) Term {
	var elems = make([]Type, len(args))
	//
	for i, arg := range args {
		elems[i] = p.TypeOf(arg)
	}
	//
	return p.insert(Tuple, p.TupleType(elems...), &Composite{slices.Clone(args)})
}

// Update constructs the function update f[args := v].
func (p *Table) Update(f Term, args []Term, v Term) Term {
	var (
		tau      = p.TypeOf(f)
		dom, rng = p.FunctionSignature(tau)
	)
	//
	if len(dom) != len(args) || p.TypeOf(v) != rng {
		panic("function update with incompatible arguments")
	}
	//
	for i, arg := range args {
		if p.TypeOf(arg) != dom[i] {
			panic("function update with incompatible arguments")
		}
	}
	//
	return p.insert(Update, tau, &Composite{append(append([]Term{f}, args...), v)})
}

// ============================================================================
// Accessors
// ============================================================================

// Kind returns the kind of a term.  Both polarities of a Boolean term share
// the same kind.
func (p *Table) Kind(t Term) Kind {
	return p.entry(t).kind
}

// TypeOf returns the type of a term.
func (p *Table) TypeOf(t Term) Type {
	return p.entry(t).tau
}

// IsBoolean checks whether a term has Boolean type.
func (p *Table) IsBoolean(t Term) bool {
	return p.TypeOf(t) == Bool
}

// IsArithmetic checks whether a term has integer or real type.
func (p *Table) IsArithmetic(t Term) bool {
	var tau = p.TypeOf(t)
	//
	return tau == Int || tau == Real
}

// IsInteger checks whether a term has integer type.
func (p *Table) IsInteger(t Term) bool {
	return p.TypeOf(t) == Int
}

// IsBitvector checks whether a term has bitvector type.
func (p *Table) IsBitvector(t Term) bool {
	return p.TypeKindOf(p.TypeOf(t)) == BitvectorType
}

// BitSize returns the width of a bitvector term.
func (p *Table) BitSize(t Term) uint {
	return p.TypeWidth(p.TypeOf(t))
}

// Args returns the arguments of a composite term.  The returned slice must not
// be modified.
func (p *Table) Args(t Term) []Term {
	if desc, ok := p.entry(t).desc.(*Composite); ok {
		return desc.Args
	}
	//
	panic(fmt.Sprintf("%s term is not composite", p.Kind(t)))
}

// SelectOf returns the bit index and argument of a bit-select term.
func (p *Table) SelectOf(t Term) (uint32, Term) {
	if desc, ok := p.entry(t).desc.(*Select); ok {
		return desc.Index, desc.Arg
	}
	//
	panic(fmt.Sprintf("%s term is not a bit select", p.Kind(t)))
}

// RationalOf returns the value of an arithmetic constant.  The returned value
// must not be modified.
func (p *Table) RationalOf(t Term) *big.Rat {
	p.checkKind(t, ArithConstant)
	//
	return p.entry(t).desc.(*big.Rat)
}

// BV64ValueOf returns the value of a packed bitvector constant.
func (p *Table) BV64ValueOf(t Term) uint64 {
	p.checkKind(t, BV64Constant)
	//
	return p.entry(t).desc.(uint64)
}

// BVValueOf returns (a copy of) the value of a bitvector constant of either
// representation.
func (p *Table) BVValueOf(t Term) *bv.Constant {
	switch p.Kind(t) {
	case BV64Constant:
		return bv.NewUint64(p.BitSize(t), p.entry(t).desc.(uint64))
	case BVConstant:
		return p.entry(t).desc.(*bv.Constant).Clone()
	default:
		panic(fmt.Sprintf("%s term is not a bitvector constant", p.Kind(t)))
	}
}

// ConstantIndexOf returns the index of a scalar or uninterpreted constant.
func (p *Table) ConstantIndexOf(t Term) int32 {
	p.checkKind(t, Constant)
	//
	return p.entry(t).desc.(int32)
}

// PProdOfTerm returns the product of a power product term.
func (p *Table) PProdOfTerm(t Term) *pprod.Product {
	p.checkKind(t, PowerProduct)
	//
	return p.entry(t).desc.(*pprod.Product)
}

// PProdOf returns the power product corresponding to the variable of a
// monomial: the empty product for ConstIdx, the underlying product for a power
// product term, and x^1 for any other term x.
func (p *Table) PProdOf(t Term) *pprod.Product {
	switch {
	case t == ConstIdx:
		return p.pprods.Empty()
	case p.Kind(t) == PowerProduct:
		return p.PProdOfTerm(t)
	default:
		return p.pprods.Var(int32(t))
	}
}

// PolyOf returns the descriptor of an arithmetic polynomial.
func (p *Table) PolyOf(t Term) *Polynomial {
	p.checkKind(t, ArithPoly)
	//
	return p.entry(t).desc.(*Polynomial)
}

// BV64PolyOf returns the descriptor of a packed bitvector polynomial.
func (p *Table) BV64PolyOf(t Term) *BV64Polynomial {
	p.checkKind(t, BV64Poly)
	//
	return p.entry(t).desc.(*BV64Polynomial)
}

// BVPolyOf returns the descriptor of a wide bitvector polynomial.
func (p *Table) BVPolyOf(t Term) *BVPolynomial {
	p.checkKind(t, BVPoly)
	//
	return p.entry(t).desc.(*BVPolynomial)
}

// NameOf returns the name of an uninterpreted term.
func (p *Table) NameOf(t Term) string {
	p.checkKind(t, Uninterpreted)
	//
	return p.entry(t).desc.(string)
}

// ============================================================================
// Helpers
// ============================================================================

func (p *Table) entry(t Term) *entry {
	if t < 0 || int(t.Index()) >= len(p.entries) {
		panic(fmt.Sprintf("invalid term %d", t))
	} else if !t.IsPos() && p.entries[t.Index()].tau != Bool {
		panic(fmt.Sprintf("negative polarity for non-Boolean term %d", t))
	}
	//
	return &p.entries[t.Index()]
}

// insert hash-conses a term with a given kind, type and descriptor.
func (p *Table) insert(kind Kind, tau Type, desc any) Term {
	var key = fmt.Sprintf("%d:%d:%s", kind, tau, encode(desc))
	//
	if index, ok := p.index[key]; ok {
		return fromIndex(index)
	}
	//
	t := p.fresh(kind, tau, desc)
	p.index[key] = t.Index()
	//
	return t
}

func (p *Table) fresh(kind Kind, tau Type, desc any) Term {
	p.entries = append(p.entries, entry{kind, tau, desc})
	//
	return fromIndex(int32(len(p.entries) - 1))
}

func (p *Table) isChainLeaf(t Term) bool {
	switch p.Kind(t) {
	case ArithConstant, BV64Constant, BVConstant, ITESpecial:
		return true
	default:
		return false
	}
}

func (p *Table) checkKind(t Term, kind Kind) {
	if k := p.Kind(t); k != kind {
		panic(fmt.Sprintf("expected %s term, found %s", kind, k))
	}
}

func (p *Table) checkBoolean(t Term) {
	if !p.IsBoolean(t) {
		panic(fmt.Sprintf("expected Boolean term, found %s", p.TypeString(p.TypeOf(t))))
	}
}

func (p *Table) checkArithmetic(t Term) {
	if !t.IsPos() || !p.IsArithmetic(t) {
		panic(fmt.Sprintf("expected arithmetic term, found %s", p.TypeString(p.TypeOf(t))))
	}
}

func (p *Table) checkSameBitvector(a, b Term) {
	if !p.IsBitvector(a) || p.TypeOf(a) != p.TypeOf(b) {
		panic("bitvector operation with incompatible operands")
	}
}

func sortedArgs(args ...Term) []Term {
	var sorted = slices.Clone(args)
	//
	slices.Sort(sorted)
	//
	return sorted
}

// encode constructs the hash-consing key of a term descriptor.
func encode(desc any) string {
	var buf strings.Builder
	//
	switch d := desc.(type) {
	case int32, uint64:
		fmt.Fprint(&buf, d)
	case *big.Rat:
		buf.WriteString(d.RatString())
	case *bv.Constant:
		fmt.Fprintf(&buf, "%d", d)
	case *pprod.Product:
		fmt.Fprintf(&buf, "pp%d", d.ID())
	case *Composite:
		fmt.Fprint(&buf, d.Args)
	case *Select:
		fmt.Fprintf(&buf, "%d[%d]", d.Arg, d.Index)
	case *Polynomial:
		for i := range d.Mono {
			fmt.Fprintf(&buf, "%s*%d;", d.Mono[i].Coeff.RatString(), d.Mono[i].Var)
		}
	case *BV64Polynomial:
		for _, m := range d.Mono {
			fmt.Fprintf(&buf, "%d*%d;", m.Coeff, m.Var)
		}
	case *BVPolynomial:
		for i := range d.Mono {
			fmt.Fprintf(&buf, "%s*%d;", d.Mono[i].Coeff.String(), d.Mono[i].Var)
		}
	default:
		panic(fmt.Sprintf("unknown descriptor %T", desc))
	}
	//
	return buf.String()
}
