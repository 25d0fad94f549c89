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
package stack

// Stack is a reusable LIFO worklist backed by an array.  It is used in place
// of recursion when walking terms or trees of unbounded depth.  Storage is
// retained across resets.
type Stack[T any] struct {
	items []T
}

// NewStack returns an empty stack
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// IsEmpty checks whether or not there are still items on the stack
func (p *Stack[T]) IsEmpty() bool {
	return len(p.items) == 0
}

// Len returns the number of items on the stack.
func (p *Stack[T]) Len() uint {
	return uint(len(p.items))
}

// Reset removes all items from the stack.
func (p *Stack[T]) Reset() {
	clear(p.items)
	p.items = p.items[:0]
}

// Push a new item onto the stack
func (p *Stack[T]) Push(item T) {
	p.items = append(p.items, item)
}

// PushReversed pushes zero or more items in reverse order, such that the
// first of them is popped first.
func (p *Stack[T]) PushReversed(items []T) {
	for i := len(items); i > 0; i-- {
		p.items = append(p.items, items[i-1])
	}
}

// Pop the last item off the stack
func (p *Stack[T]) Pop() T {
	var (
		empty T
		n     = len(p.items)
	)
	//
	if n == 0 {
		panic("cannot pop from empty stack")
	}
	//
	item := p.items[n-1]
	// Clear slot so popped items can be collected
	p.items[n-1] = empty
	p.items = p.items[:n-1]
	//
	return item
}
