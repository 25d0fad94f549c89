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

import "fmt"

// Mask64 returns the word with the n low-order bits set, for 1 <= n <= 64.
func Mask64(n uint) uint64 {
	checkWidth64(n)
	//
	return ^uint64(0) >> (64 - n)
}

// Norm64 reduces a word modulo 2^n.
func Norm64(c uint64, n uint) uint64 {
	return c & Mask64(n)
}

// MaxSigned64 returns the largest signed value of width n, that is 0b01...1.
func MaxSigned64(n uint) uint64 {
	return Mask64(n) >> 1
}

// MinSigned64 returns the smallest signed value of width n, that is 0b10...0.
func MinSigned64(n uint) uint64 {
	checkWidth64(n)
	//
	return uint64(1) << (n - 1)
}

// TstBit64 tests the ith bit of a word.
func TstBit64(c uint64, i uint) bool {
	return c&(uint64(1)<<i) != 0
}

// SetBit64 returns a word with the ith bit set.
func SetBit64(c uint64, i uint) uint64 {
	return c | (uint64(1) << i)
}

// ClrBit64 returns a word with the ith bit cleared.
func ClrBit64(c uint64, i uint) uint64 {
	return c &^ (uint64(1) << i)
}

// Signed64 sign extends a word of width n into an int64.
func Signed64(c uint64, n uint) int64 {
	var shift = 64 - n
	//
	return int64(c<<shift) >> shift
}

func checkWidth64(n uint) {
	if n == 0 || n > 64 {
		panic(fmt.Sprintf("invalid packed bitvector width %d", n))
	}
}
