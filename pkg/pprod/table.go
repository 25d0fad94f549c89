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
package pprod

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"
)

// Table is responsible for creating and interning power products.  Every
// product handed out by a table is unique, hence products can be compared using
// pointer equality.  A table is not safe for concurrent use.
type Table struct {
	// Interned products indexed by identifier
	products []*Product
	// Maps encoded pairs to their interned products
	index map[string]*Product
}

// NewTable constructs a fresh table containing only the empty product.
func NewTable() *Table {
	var p = &Table{index: make(map[string]*Product)}
	// Ensure identifier of the empty product is 0.
	p.intern(nil)
	//
	return p
}

// Len returns the number of distinct products created so far.
func (p *Table) Len() uint {
	return uint(len(p.products))
}

// Empty returns the empty product (i.e. the constant 1).
func (p *Table) Empty() *Product {
	return p.products[0]
}

// Var returns the product x^1.
func (p *Table) Var(x int32) *Product {
	return p.VarExp(x, 1)
}

// VarExp returns the product x^d.  When d is zero, this is the empty product.
func (p *Table) VarExp(x int32, d uint32) *Product {
	if d == 0 {
		return p.Empty()
	}
	//
	return p.intern([]Pair{{x, d}})
}

// Make returns the product corresponding to an arbitrary sequence of pairs.
// The pairs need not be sorted, and may contain duplicate variables (whose
// exponents are added) and zero exponents (which are ignored).
func (p *Table) Make(pairs ...Pair) *Product {
	var normalised = slices.Clone(pairs)
	//
	slices.SortStableFunc(normalised, func(a, b Pair) int {
		return int(a.Var) - int(b.Var)
	})
	// Merge duplicates and remove zeros
	normalised = mergePairs(normalised[:0], normalised, nil)
	//
	return p.intern(normalised)
}

// Mul returns the product of two products.
func (p *Table) Mul(l, r *Product) *Product {
	switch {
	case l.IsEmpty():
		return r
	case r.IsEmpty():
		return l
	}
	//
	return p.intern(mergePairs(nil, l.pairs, r.pairs))
}

// Exp returns the product l^d.
func (p *Table) Exp(l *Product, d uint32) *Product {
	switch {
	case d == 0:
		return p.Empty()
	case d == 1:
		return l
	}
	//
	pairs := make([]Pair, len(l.pairs))
	//
	for i, pair := range l.pairs {
		if pair.Exp > math.MaxUint32/d {
			panic(fmt.Sprintf("exponent overflow for variable %d", pair.Var))
		}
		//
		pairs[i] = Pair{pair.Var, pair.Exp * d}
	}
	//
	return p.intern(pairs)
}

// Precedes determines whether l strictly precedes r in the ordering of power
// products.  The empty product precedes every other product.  Otherwise,
// products are ordered first by total degree, then lexicographically.  This
// is a strict total order on the products of a table.
func (p *Table) Precedes(l, r *Product) bool {
	return l != r && compare(l, r) < 0
}

// Owns checks whether a given product was created by this table.
func (p *Table) Owns(l *Product) bool {
	return l.id < uint32(len(p.products)) && p.products[l.id] == l
}

func (p *Table) intern(pairs []Pair) *Product {
	var key = encode(pairs)
	//
	if prod, ok := p.index[key]; ok {
		return prod
	}
	//
	prod := &Product{pairs: pairs, id: uint32(len(p.products))}
	//
	for _, pair := range pairs {
		if pair.Exp == 0 {
			panic(fmt.Sprintf("zero exponent for variable %d", pair.Var))
		}
		//
		prod.degree = addExp(prod.degree, pair.Exp)
	}
	//
	p.products = append(p.products, prod)
	p.index[key] = prod
	//
	return prod
}

// mergePairs merges two sorted sequences of pairs into target, adding the
// exponents of shared variables and dropping zero exponents.  The target may
// alias the first sequence when the second is empty.
func mergePairs(target []Pair, left []Pair, right []Pair) []Pair {
	var i, j int
	//
	for i < len(left) || j < len(right) {
		var next Pair
		//
		switch {
		case j == len(right) || (i < len(left) && left[i].Var < right[j].Var):
			next = left[i]
			i++
		case i == len(left) || right[j].Var < left[i].Var:
			next = right[j]
			j++
		default:
			next = Pair{left[i].Var, addExp(left[i].Exp, right[j].Exp)}
			i++
			j++
		}
		//
		if n := len(target); n > 0 && target[n-1].Var == next.Var {
			target[n-1].Exp = addExp(target[n-1].Exp, next.Exp)
		} else if next.Exp != 0 {
			target = append(target, next)
		}
	}
	//
	return removeZeros(target)
}

// addExp adds two exponents (or degrees), panicking on overflow.
func addExp(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		panic(fmt.Sprintf("exponent overflow (%d + %d)", a, b))
	}
	//
	return a + b
}

func removeZeros(pairs []Pair) []Pair {
	return slices.DeleteFunc(pairs, func(p Pair) bool { return p.Exp == 0 })
}

func encode(pairs []Pair) string {
	var bytes = make([]byte, 8*len(pairs))
	//
	for i, pair := range pairs {
		binary.BigEndian.PutUint32(bytes[8*i:], uint32(pair.Var))
		binary.BigEndian.PutUint32(bytes[8*i+4:], pair.Exp)
	}
	//
	return string(bytes)
}
