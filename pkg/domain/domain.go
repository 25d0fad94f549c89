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
package domain

import (
	"fmt"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/go-termcore/pkg/term"
	"github.com/consensys/go-termcore/pkg/util/collection/set"
	"github.com/consensys/go-termcore/pkg/util/collection/stack"
	"github.com/consensys/go-termcore/pkg/worker"
)

// Domain is the sorted set of constants occurring as leaves of a conditional
// chain.  Since constants are hash-consed, membership of a constant value
// amounts to membership of its term.  Domains are immutable.
type Domain struct {
	elems *set.SortedSet[term.Term]
}

// Len returns the number of constants in this domain.
func (p *Domain) Len() uint {
	return p.elems.Len()
}

// Elements returns the constants of this domain in increasing order.  The
// returned slice must not be modified.
func (p *Domain) Elements() []term.Term {
	return *p.elems
}

// Contains checks whether a given term is in this domain.
func (p *Domain) Contains(t term.Term) bool {
	return p.elems.Contains(t)
}

// Disjoint checks whether this domain and another have no common constant.
func (p *Domain) Disjoint(other *Domain) bool {
	return p.elems.Disjoint(other.elems)
}

// Cache memoises the domains of conditional chains.  Domains are computed on
// first access, and never invalidated since terms are immutable.  Lookups from
// distinct workers are safe: two workers racing to compute the same domain
// will store equal results.
type Cache struct {
	tbl     *term.Table
	domains sync.Map
}

// NewCache constructs an empty domain cache for a given term table.
func NewCache(tbl *term.Table) *Cache {
	return &Cache{tbl: tbl}
}

// Of returns the domain of a conditional chain.  Scratch storage is borrowed
// from the given worker.
func (p *Cache) Of(w *worker.Context, t term.Term) *Domain {
	if p.tbl.Kind(t) != term.ITESpecial {
		panic(fmt.Sprintf("expected conditional chain, found %s", p.tbl.String(t)))
	} else if d, ok := p.domains.Load(t); ok {
		return d.(*Domain)
	}
	//
	var d = p.collect(w, t)
	// Another worker may have stored this domain concurrently.
	actual, _ := p.domains.LoadOrStore(t, d)
	//
	return actual.(*Domain)
}

// collect the leaves of a conditional chain using a depth-first walk.  Nested
// chains whose domain is already known are not descended.
func (p *Cache) collect(w *worker.Context, t term.Term) *Domain {
	var (
		leaves  = w.Terms().Alloc(0)
		visited = bitset.New(p.tbl.Len())
		stk     = stack.NewStack[term.Term]()
	)
	//
	defer w.Terms().Release(leaves)
	//
	stk.Push(t)
	//
	for !stk.IsEmpty() {
		var u = stk.Pop()
		//
		if visited.Test(uint(u.Index())) {
			continue
		}
		//
		visited.Set(uint(u.Index()))
		//
		switch {
		case p.tbl.Kind(u) != term.ITESpecial:
			leaves.Append(u)
		case u != t && p.cached(u) != nil:
			leaves.Data = append(leaves.Data, p.cached(u).Elements()...)
		default:
			args := p.tbl.Args(u)
			stk.PushReversed(args[1:])
		}
	}
	//
	return &Domain{set.FromArray(leaves.Data)}
}

func (p *Cache) cached(t term.Term) *Domain {
	if d, ok := p.domains.Load(t); ok {
		return d.(*Domain)
	}
	//
	return nil
}

// IsMember checks whether a term is in the domain of a conditional chain.
func (p *Cache) IsMember(w *worker.Context, t, u term.Term) bool {
	return p.Of(w, t).Contains(u)
}

// Disjoint checks whether the domains of two conditional chains are disjoint.
func (p *Cache) Disjoint(w *worker.Context, t, u term.Term) bool {
	return p.Of(w, t).Disjoint(p.Of(w, u))
}

// IsNonneg checks whether every constant in the domain of an arithmetic
// conditional chain is nonnegative.
func (p *Cache) IsNonneg(w *worker.Context, t term.Term) bool {
	p.checkArithmetic(t)
	//
	return p.Of(w, t).elems.All(func(c term.Term) bool {
		return p.tbl.RationalOf(c).Sign() >= 0
	})
}

// IsNegative checks whether every constant in the domain of an arithmetic
// conditional chain is negative.
func (p *Cache) IsNegative(w *worker.Context, t term.Term) bool {
	p.checkArithmetic(t)
	//
	return p.Of(w, t).elems.All(func(c term.Term) bool {
		return p.tbl.RationalOf(c).Sign() < 0
	})
}

func (p *Cache) checkArithmetic(t term.Term) {
	if !p.tbl.IsArithmetic(t) {
		panic(fmt.Sprintf("expected arithmetic term, found %s", p.tbl.String(t)))
	}
}
