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

import (
	"iter"
	"strings"
)

// Any reports whether at least one bit is set.
func (r Region[T, O]) Any() bool {
	_, ok := r.FirstOne()
	return ok
}

// All reports whether every bit is set. An empty region is all set.
func (r Region[T, O]) All() bool {
	_, ok := r.FirstZero()
	return !ok
}

// NotAny reports whether every bit is clear.
func (r Region[T, O]) NotAny() bool { return !r.Any() }

// NotAll reports whether at least one bit is clear.
func (r Region[T, O]) NotAll() bool { return !r.All() }

// lowestPos returns the lowest position selected by the non-zero value v.
func lowestPos[T Element, O BitOrder](v T) uint {
	var o O
	w := Width[T]()
	if o.ascending() {
		return o.Position(uint(w), uint(TrailingZeros(v)))
	}
	return o.Position(uint(w), uint(w-1-LeadingZeros(v)))
}

// highestPos returns the highest position selected by the non-zero value v.
func highestPos[T Element, O BitOrder](v T) uint {
	var o O
	w := Width[T]()
	if o.ascending() {
		return o.Position(uint(w), uint(w-1-LeadingZeros(v)))
	}
	return o.Position(uint(w), uint(TrailingZeros(v)))
}

func (r Region[T, O]) first(ones bool) (int, bool) {
	for p := range r.domain().Parts() {
		v := r.load(p.Elem)
		if !ones {
			v = ^v
		}
		if v &= p.Mask; v != 0 {
			return p.Offset + int(lowestPos[T, O](v)-p.Start), true
		}
	}
	return 0, false
}

func (r Region[T, O]) last(ones bool) (int, bool) {
	for p := range r.domain().Backward() {
		v := r.load(p.Elem)
		if !ones {
			v = ^v
		}
		if v &= p.Mask; v != 0 {
			return p.Offset + int(highestPos[T, O](v)-p.Start), true
		}
	}
	return 0, false
}

// FirstOne returns the index of the first set bit.
func (r Region[T, O]) FirstOne() (int, bool) { return r.first(true) }

// FirstZero returns the index of the first clear bit.
func (r Region[T, O]) FirstZero() (int, bool) { return r.first(false) }

// LastOne returns the index of the last set bit.
func (r Region[T, O]) LastOne() (int, bool) { return r.last(true) }

// LastZero returns the index of the last clear bit.
func (r Region[T, O]) LastZero() (int, bool) { return r.last(false) }

// LeadingZeros counts the clear bits before the first set bit.
func (r Region[T, O]) LeadingZeros() int {
	if i, ok := r.FirstOne(); ok {
		return i
	}
	return r.n
}

// LeadingOnes counts the set bits before the first clear bit.
func (r Region[T, O]) LeadingOnes() int {
	if i, ok := r.FirstZero(); ok {
		return i
	}
	return r.n
}

// TrailingZeros counts the clear bits after the last set bit.
func (r Region[T, O]) TrailingZeros() int {
	if i, ok := r.LastOne(); ok {
		return r.n - 1 - i
	}
	return r.n
}

// TrailingOnes counts the set bits after the last clear bit.
func (r Region[T, O]) TrailingOnes() int {
	if i, ok := r.LastZero(); ok {
		return r.n - 1 - i
	}
	return r.n
}

func (r Region[T, O]) scan(ones bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		for p := range r.domain().Parts() {
			v := r.load(p.Elem)
			if !ones {
				v = ^v
			}
			v &= p.Mask
			for v != 0 {
				pos := lowestPos[T, O](v)
				if !yield(p.Offset + int(pos-p.Start)) {
					return
				}
				v &^= bitMask[T, O](pos)
			}
		}
	}
}

// IterOnes yields the indices of set bits in ascending order.
func (r Region[T, O]) IterOnes() iter.Seq[int] { return r.scan(true) }

// IterZeros yields the indices of clear bits in ascending order.
func (r Region[T, O]) IterZeros() iter.Seq[int] { return r.scan(false) }

// Equal reports whether r and other hold the same bit sequence. The regions
// may differ in store and alignment.
func (r Region[T, O]) Equal(other Region[T, O]) bool {
	if r.n != other.n {
		return false
	}
	for p := range r.domain().Parts() {
		if r.load(p.Elem)&p.Mask != other.gather(p.Offset, p.Start, p.Count) {
			return false
		}
	}
	return true
}

// String formats the bits as a list, for example [0, 1, 1].
func (r Region[T, O]) String() string {
	var b strings.Builder
	b.Grow(2 + 3*r.n)
	b.WriteByte('[')
	for i := range r.n {
		if i > 0 {
			b.WriteString(", ")
		}
		if r.Get(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteByte(']')
	return b.String()
}
