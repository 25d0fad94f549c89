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
package cmd

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/consensys/go-termcore/pkg/bv"
	"github.com/consensys/go-termcore/pkg/term"
	"github.com/consensys/go-termcore/pkg/util/source"
	"github.com/consensys/go-termcore/pkg/util/source/sexp"
)

var one = big.NewRat(1, 1)

// Translate a given S-Expression into a term.  Variables are declared on
// first use, and their sort is fixed thereafter.
func (p *Environment) Translate(s sexp.SExp, srcmap *source.Map[sexp.SExp]) (term.Term, []source.SyntaxError) {
	var t = sexp.NewTranslator[term.Term](srcmap)
	//
	t.AddSymbolRule(p.booleanRule)
	t.AddSymbolRule(p.numberRule)
	t.AddSymbolRule(p.bitvectorRule)
	t.AddSymbolRule(p.variableRule)
	//
	t.AddRecursiveListRule("+", guarded(p.sumRule))
	t.AddRecursiveListRule("-", guarded(p.sumRule))
	t.AddRecursiveListRule("*", guarded(p.productRule))
	t.AddRecursiveListRule("ite", guarded(p.iteRule))
	t.AddRecursiveListRule("not", guarded(p.notRule))
	t.AddRecursiveListRule("or", guarded(p.orRule))
	t.AddRecursiveListRule("xor", guarded(p.orRule))
	t.AddRecursiveListRule("=", guarded(p.eqRule))
	t.AddRecursiveListRule("bits", guarded(p.bitsRule))
	t.AddRecursiveListRule("tuple", guarded(p.tupleRule))
	//
	for kind := term.BVDiv; kind <= term.BVSGeAtom; kind++ {
		t.AddRecursiveListRule(kind.String(), guarded(p.bitvectorOpRule(kind)))
	}
	//
	t.AddListRule("^", p.indexedRule(t, p.powerRule))
	t.AddListRule("bit", p.indexedRule(t, p.bitRule))
	//
	return t.Translate(s)
}

// ===================================================================
// Symbols
// ===================================================================

func (p *Environment) booleanRule(s string) (term.Term, bool, error) {
	switch s {
	case "true":
		return term.True, true, nil
	case "false":
		return term.False, true, nil
	default:
		return term.NullTerm, false, nil
	}
}

func (p *Environment) numberRule(s string) (term.Term, bool, error) {
	var digits = strings.TrimLeft(s, "+-")
	//
	if len(digits) == 0 || !unicode.IsDigit(rune(digits[0])) {
		return term.NullTerm, false, nil
	} else if q, ok := new(big.Rat).SetString(s); ok {
		return p.tbl.Rational(q), true, nil
	}
	//
	return term.NullTerm, true, fmt.Errorf("invalid number %q", s)
}

func (p *Environment) bitvectorRule(s string) (term.Term, bool, error) {
	var (
		value  big.Int
		digits string
		base   int
		width  uint
	)
	//
	switch {
	case strings.HasPrefix(s, "#b"):
		digits, base = s[2:], 2
		width = uint(len(digits))
	case strings.HasPrefix(s, "#x"):
		digits, base = s[2:], 16
		width = 4 * uint(len(digits))
	default:
		return term.NullTerm, false, nil
	}
	//
	if _, ok := value.SetString(digits, base); !ok || width == 0 || strings.ContainsAny(digits, "+-") {
		return term.NullTerm, true, fmt.Errorf("invalid bit-vector constant %q", s)
	}
	//
	return p.tbl.BVConst(bv.NewBig(width, &value)), true, nil
}

func (p *Environment) variableRule(s string) (term.Term, bool, error) {
	var name, sort, sorted = strings.Cut(s, ":")
	//
	if !isIdentifier(name) {
		return term.NullTerm, false, nil
	} else if !sorted {
		sort = "int"
	}
	//
	tau, err := p.parseSort(sort)
	//
	if err != nil {
		return term.NullTerm, true, err
	} else if v, ok := p.vars[name]; !ok {
		v = p.tbl.NewVar(tau, name)
		p.vars[name] = v
		//
		return v, true, nil
	} else if sorted && p.tbl.TypeOf(v) != tau {
		return term.NullTerm, true, fmt.Errorf("variable %s already declared as %s", name,
			p.tbl.TypeString(p.tbl.TypeOf(v)))
	} else {
		return v, true, nil
	}
}

func (p *Environment) parseSort(sort string) (term.Type, error) {
	switch sort {
	case "int":
		return term.Int, nil
	case "real":
		return term.Real, nil
	case "bool":
		return term.Bool, nil
	}
	//
	if width, ok := strings.CutPrefix(sort, "bv"); ok {
		if n, err := strconv.ParseUint(width, 10, 32); err == nil && n > 0 {
			return p.tbl.BVType(uint(n)), nil
		}
	}
	//
	return 0, fmt.Errorf("unknown sort %q", sort)
}

func isIdentifier(name string) bool {
	for i, c := range name {
		if !unicode.IsLetter(c) && c != '_' && (i == 0 || !unicode.IsDigit(c)) {
			return false
		}
	}
	//
	return len(name) > 0
}

// ===================================================================
// Lists
// ===================================================================

// sumRule translates a sum or difference.  A difference with a single
// argument is a negation.
func (p *Environment) sumRule(name string, args []term.Term) (term.Term, error) {
	if len(args) == 0 {
		return term.NullTerm, errors.New("empty sum")
	} else if p.tbl.IsBitvector(args[0]) {
		return p.bitvectorSum(name, args)
	}
	//
	var buf = p.bridge.NewBuffer()
	//
	for i, arg := range args {
		if name == "-" && (i > 0 || len(args) == 1) {
			p.bridge.SubTerm(buf, arg)
		} else {
			p.bridge.AddTerm(buf, arg)
		}
	}
	//
	return p.bridge.Export(buf), nil
}

// productRule translates a product.
func (p *Environment) productRule(_ string, args []term.Term) (term.Term, error) {
	if len(args) == 0 {
		return term.NullTerm, errors.New("empty product")
	} else if p.tbl.IsBitvector(args[0]) {
		return p.bitvectorProduct(args)
	}
	//
	var buf = p.bridge.NewBuffer()
	//
	buf.AddConst(one)
	//
	for _, arg := range args {
		p.bridge.MulTerm(buf, arg)
	}
	//
	return p.bridge.Export(buf), nil
}

// powerRule translates a term raised to a constant power.
func (p *Environment) powerRule(base term.Term, d uint32) (term.Term, error) {
	if p.tbl.IsBitvector(base) {
		return p.bitvectorPower(base, d)
	}
	//
	var buf = p.bridge.NewBuffer()
	//
	buf.AddConst(one)
	p.bridge.MulTermPower(buf, base, d)
	//
	return p.bridge.Export(buf), nil
}

func (p *Environment) iteRule(_ string, args []term.Term) (term.Term, error) {
	if err := checkArity("ite", args, 3); err != nil {
		return term.NullTerm, err
	}
	//
	return p.tbl.ITE(args[0], args[1], args[2]), nil
}

func (p *Environment) notRule(_ string, args []term.Term) (term.Term, error) {
	if err := checkArity("not", args, 1); err != nil {
		return term.NullTerm, err
	} else if !p.tbl.IsBoolean(args[0]) {
		return term.NullTerm, errors.New("expected boolean argument")
	}
	//
	return args[0].Not(), nil
}

func (p *Environment) orRule(name string, args []term.Term) (term.Term, error) {
	if len(args) == 0 {
		return term.NullTerm, fmt.Errorf("empty %s", name)
	} else if name == "or" {
		return p.tbl.Or(args...), nil
	}
	//
	return p.tbl.Xor(args...), nil
}

func (p *Environment) eqRule(_ string, args []term.Term) (term.Term, error) {
	if err := checkArity("=", args, 2); err != nil {
		return term.NullTerm, err
	} else if p.tbl.IsBitvector(args[0]) {
		return p.tbl.BVAtom(term.BVEqAtom, args[0], args[1]), nil
	}
	//
	return p.tbl.Eq(args[0], args[1]), nil
}

func (p *Environment) bitsRule(_ string, args []term.Term) (term.Term, error) {
	return p.tbl.BVArray(args...), nil
}

func (p *Environment) tupleRule(_ string, args []term.Term) (term.Term, error) {
	if len(args) == 0 {
		return term.NullTerm, errors.New("empty tuple")
	}
	//
	return p.tbl.Tuple(args...), nil
}

func (p *Environment) bitvectorOpRule(kind term.Kind) sexp.RecursiveRule[term.Term] {
	return func(name string, args []term.Term) (term.Term, error) {
		if err := checkArity(name, args, 2); err != nil {
			return term.NullTerm, err
		} else if kind.IsBVAtom() {
			return p.tbl.BVAtom(kind, args[0], args[1]), nil
		}
		//
		return p.tbl.BVBinary(kind, args[0], args[1]), nil
	}
}

func (p *Environment) bitRule(t term.Term, i uint32) (term.Term, error) {
	return p.tbl.Bit(t, i), nil
}

// indexedRule constructs a rule for lists of the form (op t n), where n is a
// literal natural number.
func (p *Environment) indexedRule(t *sexp.Translator[term.Term],
	rule func(term.Term, uint32) (term.Term, error)) sexp.ListRule[term.Term] {
	//
	return func(l *sexp.List) (term.Term, []source.SyntaxError) {
		if l.Len() != 3 || l.Get(2).AsSymbol() == nil {
			return term.NullTerm, t.SyntaxErrors(l, fmt.Sprintf("expected (%s term index)", l.Head()))
		}
		//
		n, err := strconv.ParseUint(l.Get(2).AsSymbol().Value, 10, 32)
		if err != nil {
			return term.NullTerm, t.SyntaxErrors(l.Get(2), "expected natural number")
		}
		//
		arg, errs := t.Translate(l.Get(1))
		if len(errs) != 0 {
			return term.NullTerm, errs
		}
		//
		r, err := guard(func() (term.Term, error) { return rule(arg, uint32(n)) })
		if err != nil {
			return term.NullTerm, t.SyntaxErrors(l, err.Error())
		}
		//
		return r, nil
	}
}

// ===================================================================
// Bit-vector arithmetic
// ===================================================================

func (p *Environment) bitvectorSum(name string, args []term.Term) (term.Term, error) {
	var monos []term.BVMonomial
	//
	if err := p.checkSameType(args); err != nil {
		return term.NullTerm, err
	}
	//
	for i, arg := range args {
		next := p.monomialsOf(arg)
		//
		if name == "-" && (i > 0 || len(args) == 1) {
			for j := range next {
				next[j].Coeff.Neg(&next[j].Coeff)
			}
		}
		//
		monos = append(monos, next...)
	}
	//
	return p.tbl.BVPoly(p.tbl.BitSize(args[0]), monos), nil
}

// bitvectorProduct multiplies bit-vector terms.  At most one factor may be a
// sum, otherwise the factors form a power product.
func (p *Environment) bitvectorProduct(args []term.Term) (term.Term, error) {
	var (
		width   = p.tbl.BitSize(args[0])
		k       = big.NewInt(1)
		factors []term.Term
	)
	//
	if err := p.checkSameType(args); err != nil {
		return term.NullTerm, err
	}
	//
	for _, arg := range args {
		if p.tbl.Kind(arg).IsConstant() {
			k.Mul(k, p.tbl.BVValueOf(arg).Big())
		} else {
			factors = append(factors, arg)
		}
	}
	//
	switch {
	case len(factors) == 0:
		return p.tbl.BVConst(bv.NewBig(width, k)), nil
	case len(factors) == 1:
		monos := p.monomialsOf(factors[0])
		//
		for i := range monos {
			monos[i].Coeff.Mul(&monos[i].Coeff, k)
		}
		//
		return p.tbl.BVPoly(width, monos), nil
	}
	//
	var prod = p.tbl.PProds().Empty()
	//
	for _, f := range factors {
		if kind := p.tbl.Kind(f); kind == term.BV64Poly || kind == term.BVPoly {
			return term.NullTerm, errors.New("product of bit-vector sums is not supported")
		}
		//
		prod = p.tbl.PProds().Mul(prod, p.tbl.PProdOf(f))
	}
	//
	return p.tbl.BVPoly(width, []term.BVMonomial{term.NewBVMonomial(k, p.tbl.PProdTerm(prod))}), nil
}

func (p *Environment) bitvectorPower(base term.Term, d uint32) (term.Term, error) {
	var width = p.tbl.BitSize(base)
	//
	switch kind := p.tbl.Kind(base); {
	case kind.IsConstant():
		return p.tbl.BVConst(bv.NewUint64(width, 1).MulPower(p.tbl.BVValueOf(base), d)), nil
	case kind == term.BV64Poly || kind == term.BVPoly:
		return term.NullTerm, errors.New("power of bit-vector sum is not supported")
	case d == 0:
		return p.tbl.BVConst64(width, 1), nil
	default:
		return p.tbl.PProdTerm(p.tbl.PProds().Exp(p.tbl.PProdOf(base), d)), nil
	}
}

// monomialsOf decomposes a bit-vector term into monomials.
func (p *Environment) monomialsOf(t term.Term) []term.BVMonomial {
	switch p.tbl.Kind(t) {
	case term.BV64Constant, term.BVConstant:
		return []term.BVMonomial{term.NewBVMonomial(p.tbl.BVValueOf(t).Big(), term.ConstIdx)}
	case term.BV64Poly:
		var (
			poly  = p.tbl.BV64PolyOf(t)
			monos = make([]term.BVMonomial, len(poly.Mono))
		)
		//
		for i, m := range poly.Mono {
			monos[i] = term.NewBVMonomial(new(big.Int).SetUint64(m.Coeff), m.Var)
		}
		//
		return monos
	case term.BVPoly:
		var (
			poly  = p.tbl.BVPolyOf(t)
			monos = make([]term.BVMonomial, len(poly.Mono))
		)
		//
		for i := range poly.Mono {
			monos[i] = term.NewBVMonomial(&poly.Mono[i].Coeff, poly.Mono[i].Var)
		}
		//
		return monos
	default:
		return []term.BVMonomial{term.NewBVMonomial(big.NewInt(1), t)}
	}
}

// ===================================================================
// Helpers
// ===================================================================

// guarded converts the panics raised by the term table on ill-typed arguments
// into errors.
func guarded(rule sexp.RecursiveRule[term.Term]) sexp.RecursiveRule[term.Term] {
	return func(name string, args []term.Term) (term.Term, error) {
		return guard(func() (term.Term, error) { return rule(name, args) })
	}
}

func guard(fn func() (term.Term, error)) (t term.Term, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = term.NullTerm, fmt.Errorf("%v", r)
		}
	}()
	//
	return fn()
}

func (p *Environment) checkSameType(args []term.Term) error {
	for _, arg := range args[1:] {
		if p.tbl.TypeOf(arg) != p.tbl.TypeOf(args[0]) {
			return errors.New("arguments of different sorts")
		}
	}
	//
	return nil
}

func checkArity(name string, args []term.Term, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s expects %d arguments, found %d", name, n, len(args))
	}
	//
	return nil
}
