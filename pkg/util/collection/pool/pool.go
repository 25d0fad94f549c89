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
package pool

import "fmt"

// Vector is a recyclable scratch container obtained from a Store.  Its
// contents are undefined after allocation, and must not be used once the
// vector has been released.
type Vector[T any] struct {
	// Data holds the logical contents of this vector.
	Data []T
	// next entry on the free list of the owning store
	next *Vector[T]
	// store from which this vector was allocated
	owner *Store[T]
	// set when this vector is on the free list
	free bool
}

// Len returns the logical length of this vector.
func (p *Vector[T]) Len() uint {
	return uint(len(p.Data))
}

// Append an item to the end of this vector.
func (p *Vector[T]) Append(item T) {
	p.Data = append(p.Data, item)
}

// Store is a per-worker free list of scratch vectors.  Released vectors are
// reused most-recently-released first.  A store is not safe for concurrent
// use: each worker owns its own.
type Store[T any] struct {
	head     *Vector[T]
	retained uint
	closed   bool
}

// NewStore constructs an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{}
}

// Alloc returns a vector of length n.  If a released vector is available, the
// most recently released one is reused (and grown if its capacity is below
// n).  Otherwise, a fresh vector is allocated.
func (p *Store[T]) Alloc(n uint) *Vector[T] {
	p.checkOpen()
	//
	if p.head == nil {
		return &Vector[T]{Data: make([]T, n), owner: p}
	}
	// Pop head of free list
	v := p.head
	p.head, v.next, v.free = v.next, nil, false
	p.retained--
	//
	if uint(cap(v.Data)) < n {
		v.Data = make([]T, n)
	} else {
		v.Data = v.Data[:n]
	}
	//
	return v
}

// Release returns a vector to this store.  Its contents are cleared.  A vector
// must be released to the store it was allocated from.
func (p *Store[T]) Release(v *Vector[T]) {
	p.checkOpen()
	//
	if v.owner != p {
		panic("vector released to foreign store")
	} else if v.free {
		panic("vector released twice")
	}
	//
	clear(v.Data)
	v.Data = v.Data[:0]
	v.next, v.free = p.head, true
	p.head = v
	p.retained++
}

// Retained returns the number of released vectors held by this store.
func (p *Store[T]) Retained() uint {
	return p.retained
}

// Close frees all retained vectors.  A closed store cannot be used again.
func (p *Store[T]) Close() {
	p.checkOpen()
	//
	for p.head != nil {
		v := p.head
		p.head, v.next, v.Data = v.next, nil, nil
	}
	//
	p.retained = 0
	p.closed = true
}

func (p *Store[T]) checkOpen() {
	if p.closed {
		panic(fmt.Sprintf("use of closed store (%d retained)", p.retained))
	}
}
