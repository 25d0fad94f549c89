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
	"fmt"
	"math/big"
	"strings"
)

// Constant represents a bitvector constant of a fixed (but arbitrary) width.
// The value is always held in normalised form, meaning it lies in the range
// [0, 2^width).  Operations follow the conventions of big.Int: the receiver is
// the destination and is returned to allow chaining.  Unless stated otherwise,
// the width of the result is the width of the first operand.
type Constant struct {
	width uint
	value big.Int
}

// New constructs the zero constant of a given width.
func New(width uint) *Constant {
	if width == 0 {
		panic("bitvector constant must have positive width")
	}
	//
	return &Constant{width: width}
}

// NewUint64 constructs a constant of a given width from a machine word.  Bits
// above the width are discarded.
func NewUint64(width uint, value uint64) *Constant {
	var c = New(width)
	//
	c.value.SetUint64(value)
	//
	return c.Normalize()
}

// NewBig constructs a constant of a given width from an arbitrary integer,
// which is reduced modulo 2^width (so negative values wrap around).
func NewBig(width uint, value *big.Int) *Constant {
	var c = New(width)
	//
	c.value.Set(value)
	//
	return c.Normalize()
}

// Width returns the number of bits in this constant.
func (c *Constant) Width() uint {
	return c.width
}

// Set assigns another constant (including its width) to this constant.
func (c *Constant) Set(o *Constant) *Constant {
	c.width = o.width
	c.value.Set(&o.value)
	//
	return c
}

// SetWidth resizes this constant to a given width, and clears its value.
func (c *Constant) SetWidth(width uint) *Constant {
	if width == 0 {
		panic("bitvector constant must have positive width")
	}
	//
	c.width = width
	c.value.SetUint64(0)
	//
	return c
}

// SetUint64 assigns a machine word to this constant, truncated to its width.
func (c *Constant) SetUint64(width uint, value uint64) *Constant {
	c.SetWidth(width)
	c.value.SetUint64(value)
	//
	return c.Normalize()
}

// Clone returns a fresh copy of this constant.
func (c *Constant) Clone() *Constant {
	var r Constant
	//
	return r.Set(c)
}

// Big returns a copy of the (unsigned) value of this constant.
func (c *Constant) Big() *big.Int {
	return new(big.Int).Set(&c.value)
}

// Signed returns the value of this constant interpreted in two's complement.
func (c *Constant) Signed() *big.Int {
	var r = c.Big()
	//
	if c.Bit(c.width - 1) {
		r.Sub(r, modulus(c.width))
	}
	//
	return r
}

// Uint64 returns the low-order 64 bits of this constant.
func (c *Constant) Uint64() uint64 {
	var lo big.Int
	//
	lo.And(&c.value, new(big.Int).SetUint64(^uint64(0)))
	//
	return lo.Uint64()
}

// Normalize reduces the value of this constant modulo 2^width.
func (c *Constant) Normalize() *Constant {
	if c.value.Sign() < 0 || c.value.BitLen() > int(c.width) {
		c.value.Mod(&c.value, modulus(c.width))
	}
	//
	return c
}

// IsZero checks whether every bit of this constant is zero.
func (c *Constant) IsZero() bool {
	return c.value.Sign() == 0
}

// Equal checks whether two constants have the same width and value.
func (c *Constant) Equal(o *Constant) bool {
	return c.width == o.width && c.value.Cmp(&o.value) == 0
}

// Cmp compares the unsigned values of two constants of the same width.
func (c *Constant) Cmp(o *Constant) int {
	checkWidths(c, o)
	//
	return c.value.Cmp(&o.value)
}

// Ge checks whether c >= o, treating both as unsigned.
func (c *Constant) Ge(o *Constant) bool {
	return c.Cmp(o) >= 0
}

// Sge checks whether c >= o, treating both as two's complement.
func (c *Constant) Sge(o *Constant) bool {
	checkWidths(c, o)
	//
	return c.Signed().Cmp(o.Signed()) >= 0
}

// Bit tests the ith bit of this constant.
func (c *Constant) Bit(i uint) bool {
	c.checkIndex(i)
	//
	return c.value.Bit(int(i)) == 1
}

// SetBit sets the ith bit of this constant.
func (c *Constant) SetBit(i uint) *Constant {
	return c.AssignBit(i, true)
}

// ClrBit clears the ith bit of this constant.
func (c *Constant) ClrBit(i uint) *Constant {
	return c.AssignBit(i, false)
}

// AssignBit assigns a given value to the ith bit of this constant.
func (c *Constant) AssignBit(i uint, bit bool) *Constant {
	c.checkIndex(i)
	//
	if bit {
		c.value.SetBit(&c.value, int(i), 1)
	} else {
		c.value.SetBit(&c.value, int(i), 0)
	}
	//
	return c
}

// SetAllOnes sets this constant to 0b1...1 of a given width.
func (c *Constant) SetAllOnes(width uint) *Constant {
	c.SetWidth(width)
	c.value.Sub(modulus(width), big.NewInt(1))
	//
	return c
}

// SetAllZero sets this constant to 0b0...0 of a given width.
func (c *Constant) SetAllZero(width uint) *Constant {
	return c.SetWidth(width)
}

// SetOne sets this constant to 1, keeping its width.
func (c *Constant) SetOne() *Constant {
	c.value.SetUint64(1)
	//
	return c
}

// IsAllOnes checks whether every bit of this constant is set.
func (c *Constant) IsAllOnes() bool {
	return new(big.Int).Add(&c.value, big.NewInt(1)).Cmp(modulus(c.width)) == 0
}

// String returns the binary representation of this constant, most significant
// bit first, using the SMT-LIB notation #b...
func (c *Constant) String() string {
	var (
		digits = c.value.Text(2)
		buf    strings.Builder
	)
	//
	buf.WriteString("#b")
	buf.WriteString(strings.Repeat("0", int(c.width)-len(digits)))
	buf.WriteString(digits)
	//
	return buf.String()
}

// Format implements fmt.Formatter so that constants print nicely with %v.
func (c *Constant) Format(f fmt.State, verb rune) {
	switch verb {
	case 'd':
		fmt.Fprint(f, c.value.String())
	default:
		fmt.Fprint(f, c.String())
	}
}

func (c *Constant) checkIndex(i uint) {
	if i >= c.width {
		panic(fmt.Sprintf("bit index %d out-of-bounds for width %d", i, c.width))
	}
}

func checkWidths(a, b *Constant) {
	if a.width != b.width {
		panic(fmt.Sprintf("incompatible bitvector widths (%d vs %d)", a.width, b.width))
	}
}

// modulus returns 2^width.
func modulus(width uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), width)
}
