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
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Atomic is a store whose every access is atomic, so regions that share an
// element can update their own bits of it concurrently.
//
// 32- and 64-bit elements use sync/atomic directly. 8- and 16-bit elements
// are updated through the aligned 32-bit word that contains them. That word
// may also hold neighbouring bytes, from the slice or from whatever the
// slice is embedded in; every narrow operation masks them out and writes
// them back unchanged.
type Atomic[T Element] struct {
	s []T
}

// NewAtomic wraps s without copying it. Once wrapped, s must only be
// accessed through atomic stores for as long as regions over it are in use.
func NewAtomic[T Element](s []T) *Atomic[T] {
	return &Atomic[T]{s: s}
}

func (a *Atomic[T]) elems() []T { return a.s }

func (a *Atomic[T]) Len() int { return len(a.s) }

func (a *Atomic[T]) IsAtomic() bool { return true }

func (a *Atomic[T]) Load(i int, _ Ordering) T {
	p := unsafe.Pointer(&a.s[i])
	switch Width[T]() {
	case 64:
		return T(atomic.LoadUint64((*uint64)(p)))
	case 32:
		return T(atomic.LoadUint32((*uint32)(p)))
	default:
		word, shift := lane[T](p)
		return T(atomic.LoadUint32(word) >> shift)
	}
}

func (a *Atomic[T]) Store(i int, v T, _ Ordering) {
	p := unsafe.Pointer(&a.s[i])
	switch Width[T]() {
	case 64:
		atomic.StoreUint64((*uint64)(p), uint64(v))
	case 32:
		atomic.StoreUint32((*uint32)(p), uint32(v))
	default:
		word, shift := lane[T](p)
		keep := ^(uint32(Ones[T](Width[T]())) << shift)
		for {
			old := atomic.LoadUint32(word)
			if atomic.CompareAndSwapUint32(word, old, old&keep|uint32(v)<<shift) {
				return
			}
		}
	}
}

func (a *Atomic[T]) FetchAnd(i int, mask T, _ Ordering) T {
	p := unsafe.Pointer(&a.s[i])
	switch Width[T]() {
	case 64:
		return T(atomic.AndUint64((*uint64)(p), uint64(mask)))
	case 32:
		return T(atomic.AndUint32((*uint32)(p), uint32(mask)))
	default:
		word, shift := lane[T](p)
		others := ^(uint32(Ones[T](Width[T]())) << shift)
		return T(atomic.AndUint32(word, uint32(mask)<<shift|others) >> shift)
	}
}

func (a *Atomic[T]) FetchOr(i int, mask T, _ Ordering) T {
	p := unsafe.Pointer(&a.s[i])
	switch Width[T]() {
	case 64:
		return T(atomic.OrUint64((*uint64)(p), uint64(mask)))
	case 32:
		return T(atomic.OrUint32((*uint32)(p), uint32(mask)))
	default:
		word, shift := lane[T](p)
		return T(atomic.OrUint32(word, uint32(mask)<<shift) >> shift)
	}
}

func (a *Atomic[T]) FetchXor(i int, mask T, _ Ordering) T {
	p := unsafe.Pointer(&a.s[i])
	switch Width[T]() {
	case 64:
		addr := (*uint64)(p)
		for {
			old := atomic.LoadUint64(addr)
			if atomic.CompareAndSwapUint64(addr, old, old^uint64(mask)) {
				return T(old)
			}
		}
	case 32:
		addr := (*uint32)(p)
		for {
			old := atomic.LoadUint32(addr)
			if atomic.CompareAndSwapUint32(addr, old, old^uint32(mask)) {
				return T(old)
			}
		}
	default:
		word, shift := lane[T](p)
		for {
			old := atomic.LoadUint32(word)
			if atomic.CompareAndSwapUint32(word, old, old^uint32(mask)<<shift) {
				return T(old >> shift)
			}
		}
	}
}

// lane returns the aligned 32-bit word holding the narrow element at p and
// the shift of that element inside the word.
func lane[T Element](p unsafe.Pointer) (*uint32, uint) {
	word := (*uint32)(unsafe.Pointer(uintptr(p) &^ 3))
	off := uint(uintptr(p) & 3)
	if cpu.IsBigEndian {
		off = 4 - uint(Width[T]()/8) - off
	}
	return word, off * 8
}
