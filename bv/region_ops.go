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

import "unsafe"

// Bulk operations decompose the region once, update the partial head and
// tail under their masks with the access mode the classifier chose, and
// process the body as whole elements.

// update combines v into the bits of p under op. Bits of v outside p.Mask
// are ignored.
func (r MutRegion[T, O]) update(p Part[T], acc Access, op bodyOp, v T) {
	m := p.Mask
	v &= m
	s := r.store
	if acc == Shared {
		switch op {
		case opAnd:
			s.FetchAnd(p.Elem, v|^m, accessOrdering)
		case opOr:
			s.FetchOr(p.Elem, v, accessOrdering)
		case opXor:
			s.FetchXor(p.Elem, v, accessOrdering)
		default:
			// Only this region writes the bits under m, so the difference
			// computed from one load stays valid until the xor lands.
			if diff := (s.Load(p.Elem, accessOrdering) ^ v) & m; diff != 0 {
				s.FetchXor(p.Elem, diff, accessOrdering)
			}
		}
		return
	}
	if op == opCopy && m == ^T(0) {
		s.Store(p.Elem, v, accessOrdering)
		return
	}
	old := s.Load(p.Elem, accessOrdering)
	var nv T
	switch op {
	case opAnd:
		nv = old & (v | ^m)
	case opOr:
		nv = old | v
	case opXor:
		nv = old ^ v
	default:
		nv = old&^m | v
	}
	s.Store(p.Elem, nv, accessOrdering)
}

// updateEdges applies fn's value to the head and tail of d.
func (r MutRegion[T, O]) updateEdges(d Domain[T], op bodyOp, fn func(p Part[T]) T) {
	head, tail := r.edgeAccess(d)
	if d.Head.Present() {
		p := d.headPart()
		r.update(p, head, op, fn(p))
	}
	if d.Tail.Present() {
		p := d.tailPart()
		r.update(p, tail, op, fn(p))
	}
}

// plainBody returns the body elements as a slice when the store is Plain.
func plainBody[T Element](s Store[T], b Span) ([]T, bool) {
	p, ok := s.(*Plain[T])
	if !ok {
		return nil, false
	}
	return p.s[b.Start:b.End], true
}

// Fill sets every bit of the region to bit.
func (r MutRegion[T, O]) Fill(bit bool) {
	var v T
	op := opAnd
	if bit {
		v, op = ^T(0), opOr
	}
	d := r.domain()
	r.updateEdges(d, op, func(Part[T]) T { return v })
	if body, ok := plainBody(r.store, d.Body); ok {
		kernelFill(body, v)
		return
	}
	for e := d.Body.Start; e < d.Body.End; e++ {
		r.store.Store(e, v, accessOrdering)
	}
}

// Not inverts every bit of the region.
func (r MutRegion[T, O]) Not() {
	d := r.domain()
	r.updateEdges(d, opXor, func(Part[T]) T { return ^T(0) })
	if body, ok := plainBody(r.store, d.Body); ok {
		kernelNot(body)
		return
	}
	for e := d.Body.Start; e < d.Body.End; e++ {
		r.store.Store(e, ^r.load(e), accessOrdering)
	}
}

// CountOnes returns the number of set bits.
func (r Region[T, O]) CountOnes() int {
	d := r.domain()
	n := 0
	if d.Head.Present() {
		n += CountOnes(r.load(d.Head.Elem) & d.Head.Mask)
	}
	if body, ok := plainBody(r.store, d.Body); ok {
		n += kernelCountOnes(body)
	} else {
		for e := d.Body.Start; e < d.Body.End; e++ {
			n += CountOnes(r.load(e))
		}
	}
	if d.Tail.Present() {
		n += CountOnes(r.load(d.Tail.Elem) & d.Tail.Mask)
	}
	return n
}

// CountZeros returns the number of clear bits.
func (r Region[T, O]) CountZeros() int {
	return r.n - r.CountOnes()
}

// CopyFrom copies min(r.Len(), src.Len()) bits of src into r and returns the
// count. src may overlap r.
func (r MutRegion[T, O]) CopyFrom(src Region[T, O]) int {
	return r.combine(opCopy, src)
}

// And clears each bit of r whose counterpart in src is clear, over
// min(r.Len(), src.Len()) bits, and returns that count.
func (r MutRegion[T, O]) And(src Region[T, O]) int {
	return r.combine(opAnd, src)
}

// Or sets each bit of r whose counterpart in src is set, over
// min(r.Len(), src.Len()) bits, and returns that count.
func (r MutRegion[T, O]) Or(src Region[T, O]) int {
	return r.combine(opOr, src)
}

// Xor flips each bit of r whose counterpart in src is set, over
// min(r.Len(), src.Len()) bits, and returns that count.
func (r MutRegion[T, O]) Xor(src Region[T, O]) int {
	return r.combine(opXor, src)
}

// Swap exchanges the first min(r.Len(), other.Len()) bits of r and other.
func (r MutRegion[T, O]) Swap(other MutRegion[T, O]) int {
	n := min(r.n, other.n)
	if n == 0 {
		return 0
	}
	mine := r.child(0, n, false, false).snapshot()
	r.CopyFrom(other.Region)
	other.CopyFrom(mine)
	return n
}

func (r MutRegion[T, O]) combine(op bodyOp, src Region[T, O]) int {
	n := min(r.n, src.n)
	if n == 0 {
		return 0
	}
	dst := MutRegion[T, O]{r.child(0, n, false, false)}
	src = src.child(0, n, false, false)
	if overlaps(dst.Region, src) {
		src = src.snapshot()
	}

	d := dst.domain()
	dst.updateEdges(d, op, func(p Part[T]) T {
		return src.gather(p.Offset, p.Start, p.Count)
	})
	if d.Body.Len() == 0 {
		return n
	}

	w := Width[T]()
	from := src.start.Advance(int(d.Head.Count))
	if from.Bit.v == 0 {
		// Source and destination body elements line up one to one.
		db, dok := plainBody(dst.store, d.Body)
		sb, sok := plainBody(src.store, Span{Start: from.Elem, End: from.Elem + d.Body.Len()})
		if dok && sok {
			kernelBinary(op, db, sb)
			return n
		}
		for k := range d.Body.Len() {
			e := d.Body.Start + k
			v := src.load(from.Elem + k)
			if op != opCopy {
				v = apply(op, dst.load(e), v)
			}
			dst.store.Store(e, v, accessOrdering)
		}
		return n
	}
	for k := range d.Body.Len() {
		e := d.Body.Start + k
		v := src.gather(int(d.Head.Count)+k*w, 0, uint(w))
		if op != opCopy {
			v = apply(op, dst.load(e), v)
		}
		dst.store.Store(e, v, accessOrdering)
	}
	return n
}

// gather reads count region bits starting at region offset off and returns
// them placed at positions [dstPos, dstPos+count) of an element, with every
// other bit clear.
func (r Region[T, O]) gather(off int, dstPos, count uint) T {
	w := uint(Width[T]())
	a := r.start.Advance(off)
	var out T
	for done := uint(0); done < count; {
		sp := a.Bit.Value()
		m := min(count-done, w-sp)
		dp := dstPos + done
		out |= shiftBy(r.load(a.Elem), moveDelta[T, O](sp, dp)) & maskOf[T, O](dp, m)
		done += m
		a = a.Advance(int(m))
	}
	return out
}

// snapshot copies the elements r spans into a private Plain store and
// returns the same bits over the copy.
func (r Region[T, O]) snapshot() Region[T, O] {
	if r.n == 0 {
		return Region[T, O]{store: NewPlain[T](nil)}
	}
	first := r.start.Elem
	last := r.start.Advance(r.n - 1).Elem
	buf := make([]T, last-first+1)
	for i := range buf {
		buf[i] = r.load(first + i)
	}
	return Region[T, O]{
		store: NewPlain(buf),
		start: Address[T]{Bit: r.start.Bit},
		n:     r.n,
	}
}

// overlaps reports whether a and b span a common element of memory. Only
// slice-backed stores are compared; other stores are assumed distinct.
func overlaps[T Element, O BitOrder](a, b Region[T, O]) bool {
	as, ok := a.store.(sliceStore[T])
	if !ok {
		return false
	}
	bs, ok := b.store.(sliceStore[T])
	if !ok {
		return false
	}
	alo, ahi := elemSpan(as.elems(), a)
	blo, bhi := elemSpan(bs.elems(), b)
	return alo < bhi && blo < ahi
}

// elemSpan returns the memory addresses [lo, hi) of the elements r spans.
func elemSpan[T Element, O BitOrder](s []T, r Region[T, O]) (lo, hi uintptr) {
	if r.n == 0 || len(s) == 0 {
		return 0, 0
	}
	size := uintptr(Width[T]() / 8)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(s)))
	first := r.start.Elem
	last := r.start.Advance(r.n - 1).Elem
	return base + uintptr(first)*size, base + uintptr(last+1)*size
}
