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

// BitOrder maps a bit position inside an element to the shift that selects
// it. Both implementations are pure bijections over 0..width, and both are
// monotone with unit slope, so a contiguous run of positions always selects a
// contiguous run of shifts.
//
// The set of orders is closed: the bulk operations rely on monotonicity.
type BitOrder interface {
	// Shift returns the shift amount for position pos within a width-bit element.
	Shift(width, pos uint) uint
	// Position is the inverse of Shift.
	Position(width, shift uint) uint
	String() string

	// ascending reports whether increasing positions select increasing shifts.
	ascending() bool
}

// Lsb0 numbers bits from the least significant end: position 0 is 1<<0.
type Lsb0 struct{}

func (Lsb0) Shift(_, pos uint) uint      { return pos }
func (Lsb0) Position(_, shift uint) uint { return shift }
func (Lsb0) String() string              { return "Lsb0" }
func (Lsb0) ascending() bool             { return true }

// Msb0 numbers bits from the most significant end: position 0 is
// 1<<(width-1).
type Msb0 struct{}

func (Msb0) Shift(width, pos uint) uint      { return width - 1 - pos }
func (Msb0) Position(width, shift uint) uint { return width - 1 - shift }
func (Msb0) String() string                  { return "Msb0" }
func (Msb0) ascending() bool                 { return false }

// lowShift returns the smallest shift selected by positions [pos, pos+count).
func lowShift[T Element, O BitOrder](pos, count uint) uint {
	var o O
	w := uint(Width[T]())
	if o.ascending() {
		return o.Shift(w, pos)
	}
	return o.Shift(w, pos+count-1)
}

// maskOf returns the element mask selecting positions [pos, pos+count).
func maskOf[T Element, O BitOrder](pos, count uint) T {
	if count == 0 {
		return 0
	}
	return Ones[T](int(count)) << lowShift[T, O](pos, count)
}

// bitMask selects the single bit at pos.
func bitMask[T Element, O BitOrder](pos uint) T {
	var o O
	return T(1) << o.Shift(uint(Width[T]()), pos)
}

// moveDelta is the shift that carries the bit at position src onto position
// dst. Monotone orders make it constant across a run.
func moveDelta[T Element, O BitOrder](src, dst uint) int {
	var o O
	w := uint(Width[T]())
	return int(o.Shift(w, dst)) - int(o.Shift(w, src))
}
