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
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Access is how an element must be touched by a mutating operation.
type Access uint8

const (
	// Exclusive elements belong to one region for the duration of an
	// operation; a plain load-combine-store is enough.
	Exclusive Access = iota

	// Shared elements may hold bits of another region. Every mutation is a
	// single masked read-modify-write through the store's fetch operations.
	Shared
)

func (a Access) String() string {
	if a == Shared {
		return "shared"
	}
	return "exclusive"
}

// Classify decides the access mode for one domain edge. A whole element
// never needs sharing. A partial one is shared when the region boundary
// inside it may be crossed by another region.
func Classify[T Element](e Edge[T], boundaryShared bool) Access {
	if !e.Present() || e.Count == uint(Width[T]()) || !boundaryShared {
		return Exclusive
	}
	return Shared
}

// edgeAccess classifies the head and tail of d, which must be r's domain.
// On an atomic store every partial edge is shared. On other stores an edge
// is shared only where r's boundary claim says so: the head element holds
// the lower boundary when it does not start at position 0, and also the
// upper boundary when the region ends inside it. The tail always holds the
// upper boundary.
func (r Region[T, O]) edgeAccess(d Domain[T]) (head, tail Access) {
	atomic := r.store.IsAtomic()
	if d.Head.Present() {
		w := uint(Width[T]())
		shared := atomic || (d.Head.Start != 0 && r.loShared) || (d.Head.Start+d.Head.Count < w && r.hiShared)
		head = Classify(d.Head, shared)
	}
	if d.Tail.Present() {
		tail = Classify(d.Tail, atomic || r.hiShared)
	}
	return head, tail
}

func accessOf[T Element](p Part[T], head, tail Access) Access {
	switch p.Kind {
	case PartHead:
		return head
	case PartTail:
		return tail
	default:
		return Exclusive
	}
}

// checkAliasing rejects a mutable region with a shared edge on a store that
// cannot perform atomic read-modify-write.
func (r Region[T, O]) checkAliasing() error {
	if r.store.IsAtomic() {
		return nil
	}
	d := r.domain()
	head, tail := r.edgeAccess(d)
	var e Edge[T]
	var which string
	switch {
	case head == Shared:
		e, which = d.Head, "head"
	case tail == Shared:
		e, which = d.Tail, "tail"
	default:
		return nil
	}
	log.WithFields(logrus.Fields{
		"elem":  e.Elem,
		"edge":  which,
		"start": r.start.String(),
		"len":   r.n,
	}).Debug("Rejected shared edge on non-atomic store")
	return errors.WithStack(&UnsupportedAliasingError{Elem: e.Elem, Edge: which})
}

// boundaryShared reports whether elem is a boundary element of r that
// another region may also touch.
func (r Region[T, O]) boundaryShared(elem int) bool {
	if r.n == 0 {
		return false
	}
	if r.loShared && r.start.Bit.v != 0 && elem == r.start.Elem {
		return true
	}
	end := r.start.Advance(r.n)
	return r.hiShared && end.Bit.v != 0 && elem == end.Elem
}

// child returns the bits [from, to) of r. A cut boundary is one that a
// sibling region also uses, so an unaligned cut leaves a shared element.
// Boundaries inside elements r already shares stay shared.
func (r Region[T, O]) child(from, to int, cutLo, cutHi bool) Region[T, O] {
	s, e := r.start.Advance(from), r.start.Advance(to)
	c := Region[T, O]{store: r.store, start: s, n: to - from}
	c.loShared = s.Bit.v != 0 && (cutLo || r.boundaryShared(s.Elem))
	c.hiShared = e.Bit.v != 0 && (cutHi || r.boundaryShared(e.Elem))
	return c
}
