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
	"errors"
	"fmt"
)

// Check validates the structural invariants of this buffer: that nodes are
// strictly ordered by their power products; that the root is black and no red
// node has a red child; that every path from the root to the sentinel has the
// same number of black nodes; and that the number of nonzero monomials is
// accurately tracked.  The first violation found is returned.
func (b *Buffer) Check() error {
	if b.red.Test(0) {
		return errors.New("sentinel is red")
	} else if b.isRed(b.root) {
		return errors.New("root is red")
	}
	//
	if _, err := b.checkSubtree(b.root); err != nil {
		return err
	}
	// Check order and count
	var (
		last   uint32
		count  uint
		nodes  uint
		result error
	)
	//
	b.forEach(func(x uint32) {
		nodes++
		//
		if b.nodes[x].coeff.Sign() != 0 {
			count++
		}
		//
		if result == nil && last != 0 && !b.tbl.Precedes(b.nodes[last].prod, b.nodes[x].prod) {
			result = fmt.Errorf("nodes %d and %d are out of order", last, x)
		}
		//
		last = x
	})
	//
	switch {
	case result != nil:
		return result
	case nodes != b.NumNodes():
		return fmt.Errorf("%d nodes reachable, but %d allocated", nodes, b.NumNodes())
	case count != b.nterms:
		return fmt.Errorf("%d nonzero monomials, but %d recorded", count, b.nterms)
	}
	//
	return nil
}

// checkSubtree checks the colouring and balance of the subtree rooted at x,
// returning its black height.  The walk uses an explicit stack so that it is
// not limited by the native stack.
func (b *Buffer) checkSubtree(root uint32) (uint, error) {
	type frame struct {
		x       uint32
		visited bool
	}
	//
	var (
		frames  = []frame{{root, false}}
		heights = make(map[uint32]uint)
	)
	//
	for len(frames) > 0 {
		var f = frames[len(frames)-1]
		//
		if f.x == 0 {
			frames = frames[:len(frames)-1]
			continue
		} else if !f.visited {
			frames[len(frames)-1].visited = true
			frames = append(frames, frame{b.nodes[f.x].left, false}, frame{b.nodes[f.x].right, false})
			//
			continue
		}
		//
		frames = frames[:len(frames)-1]
		//
		var (
			left  = b.nodes[f.x].left
			right = b.nodes[f.x].right
		)
		//
		if b.isRed(f.x) && (b.isRed(left) || b.isRed(right)) {
			return 0, fmt.Errorf("red node %d has a red child", f.x)
		} else if heights[left] != heights[right] {
			return 0, fmt.Errorf("node %d has unequal black heights (%d vs %d)", f.x, heights[left], heights[right])
		}
		//
		heights[f.x] = heights[left]
		//
		if !b.isRed(f.x) {
			heights[f.x]++
		}
	}
	//
	return heights[root], nil
}
