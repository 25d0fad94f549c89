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
package bv

import (
	"math/big"
	"testing"

	"github.com/consensys/go-termcore/pkg/util/assert"
)

func Test_Constant_00(t *testing.T) {
	c := NewUint64(3, 0b1011)
	assert.Equal(t, uint64(0b011), c.Uint64())
	assert.Equal(t, "#b011", c.String())
	assert.True(t, c.Bit(0))
	assert.False(t, c.Bit(2))
	assert.Panics(t, func() { c.Bit(3) })
}

func Test_Constant_01(t *testing.T) {
	c := NewBig(4, big.NewInt(-1))
	assert.True(t, c.IsAllOnes())
	assert.Equal(t, int64(-1), c.Signed().Int64())
	c.ClrBit(3)
	assert.Equal(t, uint64(7), c.Uint64())
	assert.Equal(t, int64(7), c.Signed().Int64())
}

func Test_Constant_Shifts(t *testing.T) {
	checkBinary(t, (*Constant).Shl, 3, 0b011, 0b001, 0b110)
	checkBinary(t, (*Constant).Shl, 3, 0b011, 0b011, 0b000)
	checkBinary(t, (*Constant).LShr, 4, 0b1100, 0b0010, 0b0011)
	checkBinary(t, (*Constant).AShr, 4, 0b1100, 0b0010, 0b1111)
	checkBinary(t, (*Constant).AShr, 4, 0b0100, 0b0001, 0b0010)
	checkBinary(t, (*Constant).AShr, 4, 0b1000, 0b0111, 0b1111)
}

func Test_Constant_Division(t *testing.T) {
	// unsigned
	checkBinary(t, (*Constant).UDiv, 4, 13, 4, 3)
	checkBinary(t, (*Constant).URem, 4, 13, 4, 1)
	checkBinary(t, (*Constant).UDiv, 4, 13, 0, 0b1111)
	checkBinary(t, (*Constant).URem, 4, 13, 0, 13)
	// -3 / 2 = -1, -3 rem 2 = -1, -3 mod 2 = 1
	checkBinary(t, (*Constant).SDiv, 4, 0b1101, 2, 0b1111)
	checkBinary(t, (*Constant).SRem, 4, 0b1101, 2, 0b1111)
	checkBinary(t, (*Constant).SMod, 4, 0b1101, 2, 1)
	// 3 / -2 = -1, 3 rem -2 = 1, 3 mod -2 = -1
	checkBinary(t, (*Constant).SDiv, 4, 3, 0b1110, 0b1111)
	checkBinary(t, (*Constant).SRem, 4, 3, 0b1110, 1)
	checkBinary(t, (*Constant).SMod, 4, 3, 0b1110, 0b1111)
	// division by zero
	checkBinary(t, (*Constant).SDiv, 4, 3, 0, 0b1111)
	checkBinary(t, (*Constant).SDiv, 4, 0b1101, 0, 1)
	checkBinary(t, (*Constant).SRem, 4, 0b1101, 0, 0b1101)
	checkBinary(t, (*Constant).SMod, 4, 0b1101, 0, 0b1101)
}

func Test_Constant_Arith(t *testing.T) {
	checkBinary(t, (*Constant).Add, 4, 15, 3, 2)
	checkBinary(t, (*Constant).Sub, 4, 1, 3, 14)
	checkBinary(t, (*Constant).Mul, 4, 5, 7, 3)
	//
	c := NewUint64(8, 3)
	c.MulPower(NewUint64(8, 2), 5)
	assert.Equal(t, uint64(96), c.Uint64())
	c.AddMul(big.NewInt(-1), NewUint64(8, 100))
	assert.Equal(t, uint64(252), c.Uint64())
}

func Test_Constant_Compare(t *testing.T) {
	a, b := NewUint64(4, 0b1000), NewUint64(4, 0b0111)
	assert.True(t, a.Ge(b))
	assert.False(t, a.Sge(b))
	assert.True(t, b.Sge(a))
	assert.Panics(t, func() { a.Ge(NewUint64(5, 1)) })
}

func Test_Word64(t *testing.T) {
	assert.Equal(t, uint64(0b111), Mask64(3))
	assert.Equal(t, ^uint64(0), Mask64(64))
	assert.Equal(t, uint64(0b011), MaxSigned64(3))
	assert.Equal(t, uint64(0b100), MinSigned64(3))
	assert.Equal(t, int64(-4), Signed64(0b100, 3))
	assert.Equal(t, uint64(0b101), Norm64(0b1101, 3))
	assert.True(t, TstBit64(SetBit64(0, 5), 5))
	assert.Equal(t, uint64(0), ClrBit64(SetBit64(0, 5), 5))
}

// ===================================================================
// Test Helpers
// ===================================================================

type binop func(*Constant, *Constant, *Constant) *Constant

func checkBinary(t *testing.T, op binop, width uint, lhs, rhs, expected uint64) {
	t.Helper()
	//
	var c Constant
	//
	op(&c, NewUint64(width, lhs), NewUint64(width, rhs))
	//
	if c.Width() != width || c.Uint64() != expected {
		t.Errorf("%d op %d: expected %d, got %d (width %d)", lhs, rhs, expected, c.Uint64(), c.Width())
	}
}
