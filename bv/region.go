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

// Region is a read-only view of n consecutive bits of a store, starting at
// an arbitrary bit address. It does not own the store and stays valid only
// as long as the store does.
//
// Read-only regions may overlap each other freely. They may also overlap a
// MutRegion's shared edge elements when the store is atomic.
type Region[T Element, O BitOrder] struct {
	store Store[T]
	start Address[T]
	n     int

	// loShared and hiShared record that the element holding the lower or
	// upper boundary may also be used by another region.
	loShared, hiShared bool
}

// MutRegion is a Region that may also be written. A MutRegion needs
// exclusive access to every bit it names; at shared edge elements the bits
// it does not name may be written concurrently by other regions, which is
// why such edges require an atomic store.
type MutRegion[T Element, O BitOrder] struct {
	Region[T, O]
}

func newRegion[T Element, O BitOrder](s Store[T], start Address[T], n int) (Region[T, O], error) {
	capacity := s.Len() * Width[T]()
	off := start.Offset()
	if n < 0 || off < 0 || off > capacity || n > capacity-off {
		return Region[T, O]{}, errors.WithStack(&OutOfBoundsError{Start: off, Len: n, Capacity: capacity})
	}
	return Region[T, O]{store: s, start: start, n: n}, nil
}

// NewRegion returns a read-only view of n bits of s starting at start.
func NewRegion[T Element, O BitOrder](s Store[T], start Address[T], n int) (Region[T, O], error) {
	return newRegion[T, O](s, start, n)
}

// NewMutRegion returns a mutable view of n bits of s starting at start. On
// an atomic store partial edges are shared regardless. On other stores the
// caller asserts that nothing else touches the elements the region spans,
// including their bits outside the region, so partial edges are exclusive.
func NewMutRegion[T Element, O BitOrder](s Store[T], start Address[T], n int) (MutRegion[T, O], error) {
	r, err := newRegion[T, O](s, start, n)
	if err != nil {
		return MutRegion[T, O]{}, err
	}
	return MutRegion[T, O]{r}, nil
}

// NewSharedMutRegion returns a mutable view whose partial edge elements may
// be written concurrently by other regions. Those edges are shared, so s
// must be atomic unless the region starts and ends on element boundaries.
func NewSharedMutRegion[T Element, O BitOrder](s Store[T], start Address[T], n int) (MutRegion[T, O], error) {
	r, err := newRegion[T, O](s, start, n)
	if err != nil {
		return MutRegion[T, O]{}, err
	}
	r.loShared, r.hiShared = true, true
	if err := r.checkAliasing(); err != nil {
		return MutRegion[T, O]{}, err
	}
	return MutRegion[T, O]{r}, nil
}

// Bits returns a mutable view of every bit of s through a Plain store.
func Bits[T Element, O BitOrder](s []T) MutRegion[T, O] {
	return MutRegion[T, O]{Region[T, O]{store: NewPlain(s), n: len(s) * Width[T]()}}
}

// AtomicBits returns a mutable view of every bit of s through an Atomic
// store.
func AtomicBits[T Element, O BitOrder](s []T) MutRegion[T, O] {
	return MutRegion[T, O]{Region[T, O]{store: NewAtomic(s), n: len(s) * Width[T]()}}
}

// View returns a read-only view of every bit of s.
func View[T Element, O BitOrder](s []T) Region[T, O] {
	return Region[T, O]{store: NewPlain(s), n: len(s) * Width[T]()}
}

// Len returns the number of bits in the region.
func (r Region[T, O]) Len() int { return r.n }

// Start returns the address of the first bit.
func (r Region[T, O]) Start() Address[T] { return r.start }

// End returns the address one past the last bit.
func (r Region[T, O]) End() Address[T] { return r.start.Advance(r.n) }

// Store returns the backing store.
func (r Region[T, O]) Store() Store[T] { return r.store }

// Domain decomposes the region into head, body and tail elements.
func (r Region[T, O]) Domain() Domain[T] { return r.domain() }

func (r Region[T, O]) domain() Domain[T] {
	return Decompose[T, O](r.start, r.n)
}

// EdgeAccess returns the access mode mutations use for the head and tail
// of the region's domain.
func (r Region[T, O]) EdgeAccess() (head, tail Access) {
	return r.edgeAccess(r.domain())
}

func (r Region[T, O]) load(elem int) T {
	return r.store.Load(elem, accessOrdering)
}

func (r Region[T, O]) checkIndex(i int) {
	if i < 0 || i >= r.n {
		panic(fmt.Sprintf("bv: index %d out of range [0, %d)", i, r.n))
	}
}

// Get returns bit i. It panics if i is outside [0, Len).
func (r Region[T, O]) Get(i int) bool {
	r.checkIndex(i)
	a := r.start.Advance(i)
	return r.load(a.Elem)&bitMask[T, O](a.Bit.Value()) != 0
}

func (r Region[T, O]) checkRange(from, to int) error {
	if from < 0 || to < from || to > r.n {
		return errors.WithStack(&OutOfBoundsError{Start: from, Len: to - from, Capacity: r.n})
	}
	return nil
}

// Sub returns the read-only view of bits [from, to).
func (r Region[T, O]) Sub(from, to int) (Region[T, O], error) {
	if err := r.checkRange(from, to); err != nil {
		return Region[T, O]{}, err
	}
	return r.child(from, to, false, false), nil
}

// AsRegion returns the read-only view of the same bits.
func (r MutRegion[T, O]) AsRegion() Region[T, O] { return r.Region }

// Set writes bit i. It panics if i is outside [0, Len).
func (r MutRegion[T, O]) Set(i int, bit bool) {
	r.checkIndex(i)
	a := r.start.Advance(i)
	d := r.domain()
	head, tail := r.edgeAccess(d)
	acc := Exclusive
	switch {
	case d.Head.Present() && a.Elem == d.Head.Elem:
		acc = head
	case d.Tail.Present() && a.Elem == d.Tail.Elem:
		acc = tail
	}
	m := bitMask[T, O](a.Bit.Value())
	if acc == Shared {
		if bit {
			r.store.FetchOr(a.Elem, m, accessOrdering)
		} else {
			r.store.FetchAnd(a.Elem, ^m, accessOrdering)
		}
		return
	}
	old := r.load(a.Elem)
	if bit {
		r.store.Store(a.Elem, old|m, accessOrdering)
	} else {
		r.store.Store(a.Elem, old&^m, accessOrdering)
	}
}

// Replace writes bit i and returns its previous value.
func (r MutRegion[T, O]) Replace(i int, bit bool) bool {
	old := r.Get(i)
	r.Set(i, bit)
	return old
}

// Sub returns bits [from, to) as a mutable region that stands in for r
// while it is used: its edges are exactly as shared as r's.
func (r MutRegion[T, O]) Sub(from, to int) (MutRegion[T, O], error) {
	if err := r.checkRange(from, to); err != nil {
		return MutRegion[T, O]{}, err
	}
	return MutRegion[T, O]{r.child(from, to, false, false)}, nil
}

// Cut returns bits [from, to) as a mutable region meant to be used
// alongside sibling cuts of r. Cut points that fall inside an element make
// that element shared, which requires an atomic store.
func (r MutRegion[T, O]) Cut(from, to int) (MutRegion[T, O], error) {
	if err := r.checkRange(from, to); err != nil {
		return MutRegion[T, O]{}, err
	}
	c := r.child(from, to, from > 0, to < r.n)
	if err := c.checkAliasing(); err != nil {
		return MutRegion[T, O]{}, err
	}
	return MutRegion[T, O]{c}, nil
}

// SplitAt divides r into [0, k) and [k, Len), usable concurrently.
func (r MutRegion[T, O]) SplitAt(k int) (MutRegion[T, O], MutRegion[T, O], error) {
	left, err := r.Cut(0, k)
	if err != nil {
		return MutRegion[T, O]{}, MutRegion[T, O]{}, err
	}
	right, err := r.Cut(k, r.n)
	if err != nil {
		return MutRegion[T, O]{}, MutRegion[T, O]{}, err
	}
	return left, right, nil
}

// Chunks divides r into consecutive cuts of size bits; the last may be
// shorter. Either every chunk is returned or none is.
func (r MutRegion[T, O]) Chunks(size int) ([]MutRegion[T, O], error) {
	if size <= 0 {
		return nil, errors.Errorf("bv: chunk size %d must be positive", size)
	}
	out := make([]MutRegion[T, O], 0, (r.n+size-1)/size)
	for from := 0; from < r.n; from += size {
		c, err := r.Cut(from, min(from+size, r.n))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
