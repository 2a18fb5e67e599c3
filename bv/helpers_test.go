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
	"math/rand/v2"
	"testing"

	"github.com/samber/lo"
)

// shapeTester runs the generic suites for one element type and bit order.
type shapeTester interface {
	name() string
	bulk(t *testing.T, mode storeMode)
	field(t *testing.T, order ByteOrder, mode storeMode)
	query(t *testing.T)
	binary(t *testing.T, mode storeMode)
}

type shape[T Element, O BitOrder] struct{}

func (shape[T, O]) name() string {
	var o O
	return fmt.Sprintf("u%d/%s", Width[T](), o)
}

func (shape[T, O]) bulk(t *testing.T, mode storeMode)   { testBulkOps[T, O](t, mode) }
func (shape[T, O]) binary(t *testing.T, mode storeMode) { testBinaryOps[T, O](t, mode) }
func (shape[T, O]) query(t *testing.T)                  { testQueries[T, O](t) }

func (shape[T, O]) field(t *testing.T, order ByteOrder, mode storeMode) {
	testFieldRoundTrip[T, O](t, order, mode)
}

var allShapes = []shapeTester{
	shape[uint8, Lsb0]{},
	shape[uint8, Msb0]{},
	shape[uint16, Lsb0]{},
	shape[uint16, Msb0]{},
	shape[uint32, Lsb0]{},
	shape[uint32, Msb0]{},
	shape[uint64, Lsb0]{},
	shape[uint64, Msb0]{},
	shape[uintptr, Lsb0]{},
	shape[uintptr, Msb0]{},
}

// withLevel switches the body kernels for the rest of the test.
func withLevel(t *testing.T, level DispatchLevel) {
	t.Helper()
	prev := currentLevel
	currentLevel = level
	t.Cleanup(func() { currentLevel = prev })
}

var levels = []DispatchLevel{DispatchScalar, DispatchWord}

// refShift is the bit order written out independently of order.go.
func refShift[O BitOrder](w, pos int) int {
	var o O
	switch any(o).(type) {
	case Lsb0:
		return pos
	case Msb0:
		return w - 1 - pos
	}
	panic("unknown order")
}

// memBits flattens s into one bool per bit, indexed by elem*width+position,
// which is also the Offset of the bit's Address.
func memBits[T Element, O BitOrder](s []T) []bool {
	w := Width[T]()
	out := make([]bool, len(s)*w)
	for e, v := range s {
		for pos := range w {
			out[e*w+pos] = v>>uint(refShift[O](w, pos))&1 == 1
		}
	}
	return out
}

func randElems[T Element](rng *rand.Rand, n int) []T {
	return lo.Times(n, func(int) T { return T(rng.Uint64()) })
}

// randRange picks a bit range inside a store of total bits, biased towards
// short ranges and element edges.
func randRange(rng *rand.Rand, total, w int) (off, n int) {
	switch rng.IntN(4) {
	case 0:
		off = rng.IntN(total + 1)
		n = rng.IntN(min(2*w, total-off) + 1)
	case 1:
		off = rng.IntN(total/w+1) * w
		n = rng.IntN(total - off + 1)
	default:
		off = rng.IntN(total + 1)
		n = rng.IntN(total - off + 1)
	}
	return off, n
}

// storeMode selects how the reference suites build their regions.
type storeMode uint8

const (
	// modePlain uses NewMutRegion over a Plain store: exclusive edges.
	modePlain storeMode = iota
	// modeAtomic uses NewMutRegion over an Atomic store.
	modeAtomic
	// modeShared uses NewSharedMutRegion over an Atomic store, so both
	// boundary claims are shared as well.
	modeShared
)

func (m storeMode) String() string {
	switch m {
	case modeAtomic:
		return "atomic"
	case modeShared:
		return "shared"
	default:
		return "plain"
	}
}

var modes = []storeMode{modePlain, modeAtomic, modeShared}

func newStore[T Element](s []T, mode storeMode) Store[T] {
	if mode == modePlain {
		return NewPlain(s)
	}
	return NewAtomic(s)
}

// mutFor builds the mutable region [off, off+n) of s the way mode says.
func mutFor[T Element, O BitOrder](t *testing.T, s Store[T], mode storeMode, off, n int) MutRegion[T, O] {
	t.Helper()
	if mode != modeShared {
		return mustMut[T, O](t, s, off, n)
	}
	r, err := NewSharedMutRegion[T, O](s, AddressOf[T](off), n)
	if err != nil {
		t.Fatalf("NewSharedMutRegion(off=%d, n=%d): %v", off, n, err)
	}
	return r
}

func mustMut[T Element, O BitOrder](t *testing.T, s Store[T], off, n int) MutRegion[T, O] {
	t.Helper()
	r, err := NewMutRegion[T, O](s, AddressOf[T](off), n)
	if err != nil {
		t.Fatalf("NewMutRegion(off=%d, n=%d): %v", off, n, err)
	}
	return r
}

func mustView[T Element, O BitOrder](t *testing.T, s Store[T], off, n int) Region[T, O] {
	t.Helper()
	r, err := NewRegion[T, O](s, AddressOf[T](off), n)
	if err != nil {
		t.Fatalf("NewRegion(off=%d, n=%d): %v", off, n, err)
	}
	return r
}
