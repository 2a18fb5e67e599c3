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
	"iter"
)

// Span is a half-open range of element indices.
type Span struct {
	Start, End int
}

// Len returns the number of elements in the span.
func (s Span) Len() int { return s.End - s.Start }

// Edge is a partially used element at either end of a domain. Count is zero
// when the edge is absent.
type Edge[T Element] struct {
	Elem  int
	Start uint // first position used
	Count uint // number of positions used
	Mask  T    // element bits selected by the used positions
}

// Present reports whether the edge exists.
func (e Edge[T]) Present() bool { return e.Count > 0 }

// Domain is the decomposition of a bit range into a partial head element,
// whole body elements and a partial tail element. Every bit of the range is
// in exactly one of the three, and no other bit is.
//
// A range that fits inside one element that it does not fill is reported as
// a head with an empty body and no tail.
type Domain[T Element] struct {
	Head Edge[T]
	Body Span
	Tail Edge[T]
}

// Decompose splits the n bits starting at start into a Domain under order O.
func Decompose[T Element, O BitOrder](start Address[T], n int) Domain[T] {
	d := Domain[T]{Body: Span{Start: start.Elem, End: start.Elem}}
	if n <= 0 {
		return d
	}
	w := Width[T]()
	e, idx := start.Elem, int(start.Bit.v)

	if idx != 0 {
		rem := w - idx
		if n <= rem {
			d.Head = edge[T, O](e, idx, n)
			d.Body = Span{Start: e + 1, End: e + 1}
			return d
		}
		d.Head = edge[T, O](e, idx, rem)
		n -= rem
		e++
	} else if n < w {
		d.Head = edge[T, O](e, 0, n)
		d.Body = Span{Start: e + 1, End: e + 1}
		return d
	}

	full := n / w
	d.Body = Span{Start: e, End: e + full}
	if rem := n - full*w; rem > 0 {
		d.Tail = edge[T, O](e+full, 0, rem)
	}
	return d
}

func edge[T Element, O BitOrder](elem, start, count int) Edge[T] {
	return Edge[T]{
		Elem:  elem,
		Start: uint(start),
		Count: uint(count),
		Mask:  maskOf[T, O](uint(start), uint(count)),
	}
}

// Len returns the number of bits the domain covers.
func (d Domain[T]) Len() int {
	return int(d.Head.Count) + d.Body.Len()*Width[T]() + int(d.Tail.Count)
}

// Empty reports whether the domain covers no bits.
func (d Domain[T]) Empty() bool { return d.Len() == 0 }

// PartKind tells which section of a domain a Part comes from.
type PartKind uint8

const (
	PartHead PartKind = iota
	PartBody
	PartTail
)

func (k PartKind) String() string {
	switch k {
	case PartHead:
		return "head"
	case PartBody:
		return "body"
	case PartTail:
		return "tail"
	default:
		return "unknown"
	}
}

// Part is one element visited by a domain walk. Offset is the region bit
// index of the element's first used position.
type Part[T Element] struct {
	Kind   PartKind
	Elem   int
	Start  uint
	Count  uint
	Mask   T
	Offset int
}

func (p Part[T]) String() string {
	return fmt.Sprintf("%s elem=%d pos=[%d,%d) off=%d", p.Kind, p.Elem, p.Start, p.Start+p.Count, p.Offset)
}

func (d Domain[T]) headPart() Part[T] {
	h := d.Head
	return Part[T]{Kind: PartHead, Elem: h.Elem, Start: h.Start, Count: h.Count, Mask: h.Mask}
}

func (d Domain[T]) bodyPart(elem int) Part[T] {
	w := Width[T]()
	return Part[T]{
		Kind:   PartBody,
		Elem:   elem,
		Count:  uint(w),
		Mask:   ^T(0),
		Offset: int(d.Head.Count) + (elem-d.Body.Start)*w,
	}
}

func (d Domain[T]) tailPart() Part[T] {
	t := d.Tail
	return Part[T]{
		Kind:   PartTail,
		Elem:   t.Elem,
		Start:  t.Start,
		Count:  t.Count,
		Mask:   t.Mask,
		Offset: int(d.Head.Count) + d.Body.Len()*Width[T](),
	}
}

// Parts yields every element of the domain in ascending order.
func (d Domain[T]) Parts() iter.Seq[Part[T]] {
	return func(yield func(Part[T]) bool) {
		if d.Head.Present() && !yield(d.headPart()) {
			return
		}
		for e := d.Body.Start; e < d.Body.End; e++ {
			if !yield(d.bodyPart(e)) {
				return
			}
		}
		if d.Tail.Present() {
			yield(d.tailPart())
		}
	}
}

// Backward yields every element of the domain in descending order.
func (d Domain[T]) Backward() iter.Seq[Part[T]] {
	return func(yield func(Part[T]) bool) {
		if d.Tail.Present() && !yield(d.tailPart()) {
			return
		}
		for e := d.Body.End - 1; e >= d.Body.Start; e-- {
			if !yield(d.bodyPart(e)) {
				return
			}
		}
		if d.Head.Present() {
			yield(d.headPart())
		}
	}
}
