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
	"fmt"

	"github.com/pkg/errors"
)

// Index is a bit position inside one element of type T. The zero value is
// position 0; any other value comes from NewIndex and is always below the
// element width.
type Index[T Element] struct {
	v uint8
}

// NewIndex validates value against the width of T.
func NewIndex[T Element](value uint) (Index[T], error) {
	if value >= uint(Width[T]()) {
		return Index[T]{}, errors.WithStack(&OutOfRangeError{Value: value, Width: Width[T]()})
	}
	return Index[T]{v: uint8(value)}, nil
}

// MustIndex is NewIndex for constant positions; it panics on error.
func MustIndex[T Element](value uint) Index[T] {
	i, err := NewIndex[T](value)
	if err != nil {
		panic(err)
	}
	return i
}

// Value returns the position.
func (i Index[T]) Value() uint { return uint(i.v) }

func (i Index[T]) String() string { return fmt.Sprintf("%d/%d", i.v, Width[T]()) }

// Address locates one bit: an element of the store plus a position in it.
// It does not own the storage it refers to, and Elem may lie outside the
// store; only regions are bounds checked.
type Address[T Element] struct {
	Elem int
	Bit  Index[T]
}

// AddressOf returns the address of the bit at offset bits from element 0.
// Negative offsets address elements before the start.
func AddressOf[T Element](offset int) Address[T] {
	return Address[T]{}.Advance(offset)
}

// Offset returns the address as a bit count from the start of element 0.
func (a Address[T]) Offset() int {
	return a.Elem*Width[T]() + int(a.Bit.v)
}

// Advance moves the address n bits forward. Negative n moves backward.
func (a Address[T]) Advance(n int) Address[T] {
	w := Width[T]()
	total := int(a.Bit.v) + n
	delta := total / w
	rem := total % w
	if rem < 0 {
		rem += w
		delta--
	}
	return Address[T]{Elem: a.Elem + delta, Bit: Index[T]{v: uint8(rem)}}
}

// Retreat moves the address n bits backward.
func (a Address[T]) Retreat(n int) Address[T] {
	return a.Advance(-n)
}

// DistanceTo returns the signed number of bits from a to b.
func (a Address[T]) DistanceTo(b Address[T]) int {
	return Distance(a, b)
}

// Distance returns the signed number of bits from a to b.
func Distance[T Element](a, b Address[T]) int {
	return (b.Elem-a.Elem)*Width[T]() + int(b.Bit.v) - int(a.Bit.v)
}

func (a Address[T]) String() string {
	return fmt.Sprintf("%d:%d", a.Elem, a.Bit.v)
}
