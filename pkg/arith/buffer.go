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

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/go-termcore/pkg/pprod"
	"github.com/consensys/go-termcore/pkg/util/collection/stack"
)

// Monomial is a rational coefficient times a power product.
type Monomial struct {
	Coeff big.Rat
	Prod  *pprod.Product
}

type node struct {
	prod  *pprod.Product
	coeff big.Rat
	left  uint32
	right uint32
}

// Buffer accumulates a sum of monomials in canonical form.  Monomials are held
// in a red-black tree ordered by the power product order, such that an
// in-order traversal yields the canonical monomial ordering.  Nodes are stored
// in a dense array, where index 0 is a permanent sentinel (coloured black)
// representing an empty subtree.  Monomials whose coefficient becomes zero
// are not removed immediately, but persist until the buffer is normalised.
// A buffer is bound permanently to the power product table it was created
// with, and is not safe for concurrent use.
type Buffer struct {
	tbl   *pprod.Table
	nodes []node
	// colour bits (set means red)
	red *bitset.BitSet
	// index of root node (or 0 if empty)
	root uint32
	// number of nodes with nonzero coefficient
	nterms uint
	// scratch space used for tree walks
	path  []uint32
	stack *stack.Stack[uint32]
}

// NewBuffer constructs an empty buffer for a given power product table.
func NewBuffer(tbl *pprod.Table) *Buffer {
	return &Buffer{
		tbl:   tbl,
		nodes: make([]node, 1),
		red:   bitset.New(0),
		stack: stack.NewStack[uint32](),
	}
}

// Table returns the power product table this buffer is bound to.
func (b *Buffer) Table() *pprod.Table {
	return b.tbl
}

// NumNodes returns the number of nodes currently allocated, including those
// holding a zero coefficient.
func (b *Buffer) NumNodes() uint {
	return uint(len(b.nodes) - 1)
}

// NumTerms returns the number of monomials with a nonzero coefficient.
func (b *Buffer) NumTerms() uint {
	return b.nterms
}

// Find returns the node holding a given power product, or 0 if there is none.
func (b *Buffer) Find(p *pprod.Product) uint32 {
	var x = b.root
	//
	for x != 0 && b.nodes[x].prod != p {
		if b.tbl.Precedes(p, b.nodes[x].prod) {
			x = b.nodes[x].left
		} else {
			x = b.nodes[x].right
		}
	}
	//
	return x
}

// Coeff returns the coefficient of a given power product, which is zero if
// the product does not occur in this buffer.
func (b *Buffer) Coeff(p *pprod.Product) *big.Rat {
	if x := b.Find(p); x != 0 {
		return new(big.Rat).Set(&b.nodes[x].coeff)
	}
	//
	return new(big.Rat)
}

// GetOrInsert returns the node holding a given power product, creating it
// (with a zero coefficient) if necessary.  The flag indicates whether the node
// was created.
func (b *Buffer) GetOrInsert(p *pprod.Product) (uint32, bool) {
	b.checkOwns(p)
	//
	if b.root == 0 {
		b.root = b.alloc(p)
		//
		return b.root, true
	}
	//
	var (
		path = b.path[:0]
		x    = b.root
		y    uint32
	)
	//
	for {
		if b.nodes[x].prod == p {
			b.path = path
			//
			return x, false
		}
		//
		path = append(path, x)
		//
		if b.tbl.Precedes(p, b.nodes[x].prod) {
			if y = b.nodes[x].left; y == 0 {
				y = b.alloc(p)
				b.nodes[x].left = y
				//
				break
			}
		} else if y = b.nodes[x].right; y == 0 {
			y = b.alloc(p)
			b.nodes[x].right = y
			//
			break
		}
		//
		x = y
	}
	//
	b.red.Set(uint(y))
	b.path = b.rebalance(path, y)
	//
	return y, true
}

// rebalance restores the colouring after inserting a red node x, whose
// ancestors (from the root down) are given by path.
func (b *Buffer) rebalance(path []uint32, x uint32) []uint32 {
	for n := len(path); n > 0 && b.isRed(path[n-1]); n = len(path) {
		// Parent is red, hence is not the root.
		var (
			parent = path[n-1]
			grand  = path[n-2]
		)
		//
		if parent == b.nodes[grand].left {
			uncle := b.nodes[grand].right
			//
			if b.isRed(uncle) {
				b.red.Clear(uint(parent))
				b.red.Clear(uint(uncle))
				b.red.Set(uint(grand))
				x, path = grand, path[:n-2]
				//
				continue
			} else if x == b.nodes[parent].right {
				b.nodes[parent].right = b.nodes[x].left
				b.nodes[x].left = parent
				b.nodes[grand].left = x
				x, parent = parent, x
			}
			// rotate right at grandparent
			b.nodes[grand].left = b.nodes[parent].right
			b.nodes[parent].right = grand
		} else {
			uncle := b.nodes[grand].left
			//
			if b.isRed(uncle) {
				b.red.Clear(uint(parent))
				b.red.Clear(uint(uncle))
				b.red.Set(uint(grand))
				x, path = grand, path[:n-2]
				//
				continue
			} else if x == b.nodes[parent].left {
				b.nodes[parent].left = b.nodes[x].right
				b.nodes[x].right = parent
				b.nodes[grand].right = x
				x, parent = parent, x
			}
			// rotate left at grandparent
			b.nodes[grand].right = b.nodes[parent].left
			b.nodes[parent].left = grand
		}
		//
		b.red.Clear(uint(parent))
		b.red.Set(uint(grand))
		b.replaceChild(path[:n-2], grand, parent)
		//
		break
	}
	//
	b.red.Clear(uint(b.root))
	//
	return path[:0]
}

// replaceChild replaces the subtree rooted at old with that rooted at nu,
// where ancestors gives the path to old.
func (b *Buffer) replaceChild(ancestors []uint32, old, nu uint32) {
	if len(ancestors) == 0 {
		b.root = nu
		return
	}
	//
	var parent = ancestors[len(ancestors)-1]
	//
	if b.nodes[parent].left == old {
		b.nodes[parent].left = nu
	} else {
		b.nodes[parent].right = nu
	}
}

func (b *Buffer) alloc(p *pprod.Product) uint32 {
	var x = uint32(len(b.nodes))
	// Storage retained by reset is reused here
	b.nodes = append(b.nodes, node{prod: p})
	b.red.Clear(uint(x))
	//
	return x
}

func (b *Buffer) isRed(x uint32) bool {
	return x != 0 && b.red.Test(uint(x))
}

// Reset discards the contents of this buffer, whilst retaining its storage.
func (b *Buffer) Reset() {
	b.nodes = b.nodes[:1]
	b.root = 0
	b.nterms = 0
	b.red.ClearAll()
}

// Dispose releases the storage held by this buffer.  The buffer can still be
// used afterwards, but must reallocate.
func (b *Buffer) Dispose() {
	b.nodes = make([]node, 1)
	b.root = 0
	b.nterms = 0
	b.red = bitset.New(0)
	b.path = nil
	b.stack = stack.NewStack[uint32]()
}

// accumulate adds (or subtracts) a given coefficient to the node x, keeping
// track of the number of nonzero monomials.
func (b *Buffer) accumulate(x uint32, c *big.Rat, sub bool) {
	var (
		coeff  = &b.nodes[x].coeff
		before = coeff.Sign() != 0
	)
	//
	if sub {
		coeff.Sub(coeff, c)
	} else {
		coeff.Add(coeff, c)
	}
	//
	switch after := coeff.Sign() != 0; {
	case before && !after:
		b.nterms--
	case !before && after:
		b.nterms++
	}
}

// forEach applies a function to each node in order.  The function must not
// modify the tree structure.
func (b *Buffer) forEach(fn func(x uint32)) {
	var (
		stk = b.stack
		x   = b.root
	)
	//
	stk.Reset()
	//
	for x != 0 || !stk.IsEmpty() {
		for ; x != 0; x = b.nodes[x].left {
			stk.Push(x)
		}
		//
		x = stk.Pop()
		fn(x)
		x = b.nodes[x].right
	}
}

// Visit walks the tree in pre-order, reporting the depth and colour of each
// node alongside its monomial.  Zero coefficients are reported as well.
func (b *Buffer) Visit(fn func(depth uint, red bool, m *Monomial)) {
	type frame struct {
		node  uint32
		depth uint
	}
	//
	var (
		frames []frame
		mono   Monomial
	)
	//
	if b.root != 0 {
		frames = append(frames, frame{b.root, 0})
	}
	//
	for len(frames) > 0 {
		f := frames[len(frames)-1]
		frames = frames[:len(frames)-1]
		n := &b.nodes[f.node]
		//
		mono.Prod = n.prod
		mono.Coeff.Set(&n.coeff)
		fn(f.depth, b.isRed(f.node), &mono)
		// right pushed first so left is visited first
		if n.right != 0 {
			frames = append(frames, frame{n.right, f.depth + 1})
		}
		//
		if n.left != 0 {
			frames = append(frames, frame{n.left, f.depth + 1})
		}
	}
}

// nonzero returns a copy of the nonzero monomials of this buffer in order.
func (b *Buffer) nonzero() []Monomial {
	var monos = make([]Monomial, 0, b.nterms)
	//
	b.forEach(func(x uint32) {
		if b.nodes[x].coeff.Sign() != 0 {
			monos = append(monos, Monomial{Prod: b.nodes[x].prod})
			monos[len(monos)-1].Coeff.Set(&b.nodes[x].coeff)
		}
	})
	//
	return monos
}

// Normalize removes all monomials with a zero coefficient.
func (b *Buffer) Normalize() {
	if b.NumNodes() == b.nterms {
		return
	}
	//
	monos := b.nonzero()
	b.Reset()
	//
	for i := range monos {
		b.AddMono(&monos[i].Coeff, monos[i].Prod)
	}
}

// Monomials returns the nonzero monomials of this buffer in canonical order.
// The buffer is normalised as a side-effect.
func (b *Buffer) Monomials() []Monomial {
	b.Normalize()
	//
	return b.nonzero()
}

// IsZero checks whether this buffer represents the zero polynomial.
func (b *Buffer) IsZero() bool {
	return b.nterms == 0
}

// IsConstant checks whether this buffer represents a constant polynomial.
func (b *Buffer) IsConstant() bool {
	if b.nterms == 0 {
		return true
	} else if b.nterms > 1 {
		return false
	}
	//
	x := b.Find(b.tbl.Empty())
	//
	return x != 0 && b.nodes[x].coeff.Sign() != 0
}

// Degree returns the maximal degree of the nonzero monomials in this buffer,
// or 0 if there are none.
func (b *Buffer) Degree() uint32 {
	var degree uint32
	//
	b.forEach(func(x uint32) {
		if b.nodes[x].coeff.Sign() != 0 {
			degree = max(degree, b.nodes[x].prod.Degree())
		}
	})
	//
	return degree
}

// BlackHeight returns the number of black nodes on any path from the root to
// the sentinel, excluding the sentinel.
func (b *Buffer) BlackHeight() uint {
	var height uint
	//
	for x := b.root; x != 0; x = b.nodes[x].left {
		if !b.isRed(x) {
			height++
		}
	}
	//
	return height
}

func (b *Buffer) checkOwns(p *pprod.Product) {
	if !b.tbl.Owns(p) {
		panic("power product from a foreign table")
	}
}

func (b *Buffer) checkCompatible(other *Buffer) {
	if b.tbl != other.tbl {
		panic("buffers bound to different power product tables")
	}
}
