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

import "math/big"

// Add sets c = a + b (mod 2^n) and returns c.
func (c *Constant) Add(a, b *Constant) *Constant {
	checkWidths(a, b)
	//
	c.width = a.width
	c.value.Add(&a.value, &b.value)
	//
	return c.Normalize()
}

// Sub sets c = a - b (mod 2^n) and returns c.
func (c *Constant) Sub(a, b *Constant) *Constant {
	checkWidths(a, b)
	//
	c.width = a.width
	c.value.Sub(&a.value, &b.value)
	//
	return c.Normalize()
}

// Neg sets c = -a (mod 2^n) and returns c.
func (c *Constant) Neg(a *Constant) *Constant {
	c.width = a.width
	c.value.Neg(&a.value)
	//
	return c.Normalize()
}

// Mul sets c = a * b (mod 2^n) and returns c.
func (c *Constant) Mul(a, b *Constant) *Constant {
	checkWidths(a, b)
	//
	c.width = a.width
	c.value.Mul(&a.value, &b.value)
	//
	return c.Normalize()
}

// AddMul sets c = c + (k * x) (mod 2^n), where the coefficient k is an
// arbitrary integer.  The width of c is unchanged.
func (c *Constant) AddMul(k *big.Int, x *Constant) *Constant {
	var prod big.Int
	//
	prod.Mul(k, &x.value)
	c.value.Add(&c.value, &prod)
	//
	return c.Normalize()
}

// AddBig sets c = c + k (mod 2^n) for an arbitrary integer k.
func (c *Constant) AddBig(k *big.Int) *Constant {
	c.value.Add(&c.value, k)
	//
	return c.Normalize()
}

// MulPower sets c = c * x^d (mod 2^n) and returns c.
func (c *Constant) MulPower(x *Constant, d uint32) *Constant {
	var pow big.Int
	//
	pow.Exp(&x.value, big.NewInt(int64(d)), modulus(c.width))
	c.value.Mul(&c.value, &pow)
	//
	return c.Normalize()
}

// UDiv sets c = a / b treating both as unsigned.  Division by zero yields the
// all-ones constant.
func (c *Constant) UDiv(a, b *Constant) *Constant {
	checkWidths(a, b)
	//
	if b.IsZero() {
		return c.SetAllOnes(a.width)
	}
	//
	c.width = a.width
	c.value.Quo(&a.value, &b.value)
	//
	return c
}

// URem sets c = a % b treating both as unsigned.  The remainder of division by
// zero is the dividend.
func (c *Constant) URem(a, b *Constant) *Constant {
	checkWidths(a, b)
	//
	if b.IsZero() {
		return c.Set(a)
	}
	//
	c.width = a.width
	c.value.Rem(&a.value, &b.value)
	//
	return c
}

// SDiv sets c = a / b in two's complement, rounding towards zero.  Division by
// zero follows the unsigned rule applied to magnitudes: the result is -1 for a
// non-negative dividend and 1 otherwise.
func (c *Constant) SDiv(a, b *Constant) *Constant {
	var (
		x, y       Constant
		negA, negB = a.msb(), b.msb()
		width      = a.width
		dividend   = a
		divisor    = b
	)
	//
	checkWidths(a, b)
	//
	if negA {
		dividend = x.Neg(a)
	}
	//
	if negB {
		divisor = y.Neg(b)
	}
	//
	c.UDiv(dividend, divisor)
	c.width = width
	//
	if negA != negB {
		c.Neg(c)
	}
	//
	return c
}

// SRem sets c = a rem b in two's complement, where the sign of the result
// follows the dividend.  The remainder of division by zero is the dividend.
func (c *Constant) SRem(a, b *Constant) *Constant {
	var (
		x, y     Constant
		negA     = a.msb()
		dividend = a
		divisor  = b
	)
	//
	checkWidths(a, b)
	//
	if negA {
		dividend = x.Neg(a)
	}
	//
	if b.msb() {
		divisor = y.Neg(b)
	}
	//
	c.URem(dividend, divisor)
	//
	if negA {
		c.Neg(c)
	}
	//
	return c
}

// SMod sets c = a mod b in two's complement, where the sign of the result
// follows the divisor.  The result of a modulus by zero is the dividend.
func (c *Constant) SMod(a, b *Constant) *Constant {
	var (
		x, y, u    Constant
		negA, negB = a.msb(), b.msb()
		dividend   = a
		divisor    = b
	)
	//
	checkWidths(a, b)
	//
	if negA {
		dividend = x.Neg(a)
	}
	//
	if negB {
		divisor = y.Neg(b)
	}
	//
	u.URem(dividend, divisor)
	//
	switch {
	case u.IsZero() || (!negA && !negB):
		return c.Set(&u)
	case negA && !negB:
		return c.Sub(b, &u)
	case !negA && negB:
		return c.Add(&u, b)
	default:
		return c.Neg(&u)
	}
}

// Shl sets c = a << b.  Shifting by the width or more yields zero.
func (c *Constant) Shl(a, b *Constant) *Constant {
	checkWidths(a, b)
	//
	if shift, ok := b.shiftAmount(); ok {
		c.width = a.width
		c.value.Lsh(&a.value, shift)
		//
		return c.Normalize()
	}
	//
	return c.SetAllZero(a.width)
}

// LShr sets c = a >> b (logical).  Shifting by the width or more yields zero.
func (c *Constant) LShr(a, b *Constant) *Constant {
	checkWidths(a, b)
	//
	if shift, ok := b.shiftAmount(); ok {
		c.width = a.width
		c.value.Rsh(&a.value, shift)
		//
		return c
	}
	//
	return c.SetAllZero(a.width)
}

// AShr sets c = a >> b (arithmetic), replicating the sign bit.  Shifting by
// the width or more yields all sign bits.
func (c *Constant) AShr(a, b *Constant) *Constant {
	var negA = a.msb()
	//
	checkWidths(a, b)
	//
	if shift, ok := b.shiftAmount(); ok {
		var val = a.Signed()
		//
		val.Rsh(val, shift)
		c.width = a.width
		c.value.Set(val)
		//
		return c.Normalize()
	} else if negA {
		return c.SetAllOnes(a.width)
	}
	//
	return c.SetAllZero(a.width)
}

// msb returns the sign bit of this constant.
func (c *Constant) msb() bool {
	return c.value.Bit(int(c.width-1)) == 1
}

// shiftAmount returns the value of this constant as a shift, provided it is
// strictly less than the width.
func (c *Constant) shiftAmount() (uint, bool) {
	if c.value.IsUint64() && c.value.Uint64() < uint64(c.width) {
		return uint(c.value.Uint64()), true
	}
	//
	return 0, false
}
