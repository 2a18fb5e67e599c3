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

// Store is the storage capability a region is built on: element-granular
// loads, stores and bitwise fetch operations with a forwarded memory
// ordering. Plain and Atomic cover Go slices; callers may supply their own.
//
// Indices passed to a Store are always within [0, Len).
type Store[T Element] interface {
	Len() int
	Load(i int, o Ordering) T
	Store(i int, v T, o Ordering)
	// FetchAnd, FetchOr and FetchXor combine the element with mask and
	// return the previous value. On an atomic store each call is a single
	// indivisible read-modify-write.
	FetchAnd(i int, mask T, o Ordering) T
	FetchOr(i int, mask T, o Ordering) T
	FetchXor(i int, mask T, o Ordering) T
	// IsAtomic reports whether concurrent calls on the same element are safe.
	IsAtomic() bool
}

// sliceStore is implemented by stores backed by a Go slice.
type sliceStore[T Element] interface {
	elems() []T
}

// Plain is a non-atomic store over a slice. Only one goroutine may touch a
// given element at a time.
type Plain[T Element] struct {
	s []T
}

// NewPlain wraps s without copying it.
func NewPlain[T Element](s []T) *Plain[T] {
	return &Plain[T]{s: s}
}

// Elems returns the backing slice.
func (p *Plain[T]) Elems() []T { return p.s }

func (p *Plain[T]) elems() []T { return p.s }

func (p *Plain[T]) Len() int { return len(p.s) }

func (p *Plain[T]) Load(i int, _ Ordering) T { return p.s[i] }

func (p *Plain[T]) Store(i int, v T, _ Ordering) { p.s[i] = v }

func (p *Plain[T]) FetchAnd(i int, mask T, _ Ordering) T {
	old := p.s[i]
	p.s[i] = old & mask
	return old
}

func (p *Plain[T]) FetchOr(i int, mask T, _ Ordering) T {
	old := p.s[i]
	p.s[i] = old | mask
	return old
}

func (p *Plain[T]) FetchXor(i int, mask T, _ Ordering) T {
	old := p.s[i]
	p.s[i] = old ^ mask
	return old
}

func (p *Plain[T]) IsAtomic() bool { return false }
