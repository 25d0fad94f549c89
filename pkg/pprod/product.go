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
	"fmt"
	"slices"
	"strings"
)

// Pair associates a variable with a (strictly positive) exponent.
type Pair struct {
	Var int32
	Exp uint32
}

// Product represents a power product, such as x^2*y.  Products are only ever
// constructed by a Table, which interns them.  Consequently, two products
// obtained from the same table are equal if, and only if, they are the same
// pointer.  The empty product represents the constant 1.
type Product struct {
	// Pairs sorted by variable, with no duplicates and no zero exponents.
	pairs []Pair
	// Total degree of this product
	degree uint32
	// Unique identifier within the enclosing table
	id uint32
}

// Len returns the number of distinct variables in this product.
func (p *Product) Len() uint {
	return uint(len(p.pairs))
}

// Nth returns the nth (variable, exponent) pair of this product.
func (p *Product) Nth(n uint) Pair {
	return p.pairs[n]
}

// Pairs returns the (variable, exponent) pairs of this product.  The returned
// slice must not be modified.
func (p *Product) Pairs() []Pair {
	return p.pairs
}

// Degree returns the total degree of this product.
func (p *Product) Degree() uint32 {
	return p.degree
}

// ID returns the unique identifier of this product in its table.
func (p *Product) ID() uint32 {
	return p.id
}

// IsEmpty checks whether this is the empty product.
func (p *Product) IsEmpty() bool {
	return len(p.pairs) == 0
}

// IsVar checks whether this product consists of a single variable with
// exponent one and, if so, returns that variable.
func (p *Product) IsVar() (int32, bool) {
	if len(p.pairs) == 1 && p.pairs[0].Exp == 1 {
		return p.pairs[0].Var, true
	}
	//
	return 0, false
}

// IsSquare checks whether every exponent in this product is even.
func (p *Product) IsSquare() bool {
	for _, pair := range p.pairs {
		if pair.Exp%2 != 0 {
			return false
		}
	}
	//
	return true
}

// String returns a textual representation of this product, using a given
// function to name variables.
func (p *Product) String(env func(int32) string) string {
	var buf strings.Builder
	//
	if p.IsEmpty() {
		return "1"
	}
	//
	for i, pair := range p.pairs {
		if i != 0 {
			buf.WriteString("*")
		}
		//
		buf.WriteString(env(pair.Var))
		//
		if pair.Exp != 1 {
			buf.WriteString(fmt.Sprintf("^%d", pair.Exp))
		}
	}
	//
	return buf.String()
}

// compare implements the product ordering: lower total degree first, then
// lexicographically over the sorted pairs.
func compare(p, q *Product) int {
	if p.degree != q.degree {
		if p.degree < q.degree {
			return -1
		}
		//
		return 1
	}
	//
	return slices.CompareFunc(p.pairs, q.pairs, func(a, b Pair) int {
		if a.Var != b.Var {
			if a.Var < b.Var {
				return -1
			}
			//
			return 1
		} else if a.Exp != b.Exp {
			if a.Exp > b.Exp {
				return -1
			}
			//
			return 1
		}
		//
		return 0
	})
}
