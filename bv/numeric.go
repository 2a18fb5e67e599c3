// Copyright 2025 go-bitregion Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bv

import "math/bits"

// This file is the numeric capability of the engine: bit counting, masks and
// shifts keyed on the element width. The width menu is fixed, so every
// helper is a closed switch rather than open generic dispatch.

// CountOnes counts the set bits in v.
func CountOnes[T Element](v T) int {
	switch Width[T]() {
	case 8:
		return bits.OnesCount8(uint8(v))
	case 16:
		return bits.OnesCount16(uint16(v))
	case 32:
		return bits.OnesCount32(uint32(v))
	default:
		return bits.OnesCount64(uint64(v))
	}
}

// LeadingZeros counts the zero bits above the most significant set bit.
// It returns the element width for zero.
func LeadingZeros[T Element](v T) int {
	switch Width[T]() {
	case 8:
		return bits.LeadingZeros8(uint8(v))
	case 16:
		return bits.LeadingZeros16(uint16(v))
	case 32:
		return bits.LeadingZeros32(uint32(v))
	default:
		return bits.LeadingZeros64(uint64(v))
	}
}

// TrailingZeros counts the zero bits below the least significant set bit.
// It returns the element width for zero.
func TrailingZeros[T Element](v T) int {
	switch Width[T]() {
	case 8:
		return bits.TrailingZeros8(uint8(v))
	case 16:
		return bits.TrailingZeros16(uint16(v))
	case 32:
		return bits.TrailingZeros32(uint32(v))
	default:
		return bits.TrailingZeros64(uint64(v))
	}
}

// WrappingAdd adds modulo 2^width.
func WrappingAdd[T Element](a, b T) T { return a + b }

// WrappingSub subtracts modulo 2^width.
func WrappingSub[T Element](a, b T) T { return a - b }

// Ones returns a value with the low n bits set. n at or above the element
// width yields all ones.
func Ones[T Element](n int) T {
	if n <= 0 {
		return 0
	}
	if n >= Width[T]() {
		return ^T(0)
	}
	return T(1)<<uint(n) - 1
}

// shiftBy shifts v left for positive d and right for negative d.
// Shifts at or beyond the width produce zero.
func shiftBy[T Element](v T, d int) T {
	switch {
	case d >= Width[T]() || -d >= Width[T]():
		return 0
	case d >= 0:
		return v << uint(d)
	default:
		return v >> uint(-d)
	}
}
