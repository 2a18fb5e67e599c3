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
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBulkOps[T Element, O BitOrder](t *testing.T, mode storeMode) {
	w := Width[T]()
	rng := rand.New(rand.NewPCG(uint64(w), 7))
	for iter := range 300 {
		elems := randElems[T](rng, 1+rng.IntN(6))
		off, n := randRange(rng, len(elems)*w, w)
		want := memBits[T, O](elems)
		r := mutFor[T, O](t, newStore(elems, mode), mode, off, n)

		var op string
		switch iter % 4 {
		case 0:
			bit := rng.IntN(2) == 1
			op = fmt.Sprintf("Fill(%v)", bit)
			r.Fill(bit)
			for i := range n {
				want[off+i] = bit
			}
		case 1:
			op = "Not"
			r.Not()
			for i := range n {
				want[off+i] = !want[off+i]
			}
		case 2:
			op = "Set"
			for range min(n, 8) {
				i, bit := rng.IntN(n), rng.IntN(2) == 1
				r.Set(i, bit)
				want[off+i] = bit
			}
		case 3:
			op = "CountOnes"
			require.Equal(t, lo.Count(want[off:off+n], true), r.CountOnes(), "CountOnes off=%d n=%d", off, n)
			require.Equal(t, lo.Count(want[off:off+n], false), r.CountZeros(), "CountZeros off=%d n=%d", off, n)
		}

		got := memBits[T, O](elems)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s off=%d n=%d: memory mismatch (-want +got):\n%s", op, off, n, diff)
		}
		for i := range n {
			if r.Get(i) != want[off+i] {
				t.Fatalf("%s off=%d n=%d: Get(%d) = %v, want %v", op, off, n, i, r.Get(i), want[off+i])
			}
		}
	}
}

func testBinaryOps[T Element, O BitOrder](t *testing.T, mode storeMode) {
	w := Width[T]()
	rng := rand.New(rand.NewPCG(uint64(w), 11))
	ops := []struct {
		name string
		run  func(dst MutRegion[T, O], src Region[T, O]) int
		ref  func(d, s bool) bool
	}{
		{"CopyFrom", MutRegion[T, O].CopyFrom, func(_, s bool) bool { return s }},
		{"And", MutRegion[T, O].And, func(d, s bool) bool { return d && s }},
		{"Or", MutRegion[T, O].Or, func(d, s bool) bool { return d || s }},
		{"Xor", MutRegion[T, O].Xor, func(d, s bool) bool { return d != s }},
	}
	for iter := range 400 {
		op := ops[iter%len(ops)]
		sameStore := iter%3 == 2

		dstElems := randElems[T](rng, 1+rng.IntN(6))
		srcElems := dstElems
		if !sameStore {
			srcElems = randElems[T](rng, 1+rng.IntN(6))
		}
		doff, dn := randRange(rng, len(dstElems)*w, w)
		soff, sn := randRange(rng, len(srcElems)*w, w)

		want := memBits[T, O](dstElems)
		srcBits := slices.Clone(memBits[T, O](srcElems)[soff : soff+sn])
		m := min(dn, sn)
		for i := range m {
			want[doff+i] = op.ref(want[doff+i], srcBits[i])
		}

		dstStore := newStore(dstElems, mode)
		srcStore := dstStore
		if !sameStore {
			srcStore = newStore(srcElems, mode)
		}
		dst := mutFor[T, O](t, dstStore, mode, doff, dn)
		src := mustView[T, O](t, srcStore, soff, sn)
		require.Equal(t, m, op.run(dst, src), "%s processed count", op.name)

		if diff := cmp.Diff(want, memBits[T, O](dstElems)); diff != "" {
			t.Fatalf("%s dst=[%d,+%d) src=[%d,+%d) same=%v: mismatch (-want +got):\n%s",
				op.name, doff, dn, soff, sn, sameStore, diff)
		}
	}
}

func TestBulkOpsMatchReference(t *testing.T) {
	for _, level := range levels {
		t.Run(level.String(), func(t *testing.T) {
			withLevel(t, level)
			for _, sh := range allShapes {
				for _, mode := range modes {
					t.Run(sh.name()+"/"+mode.String(), func(t *testing.T) { sh.bulk(t, mode) })
				}
			}
		})
	}
}

func TestBinaryOpsMatchReference(t *testing.T) {
	for _, level := range levels {
		t.Run(level.String(), func(t *testing.T) {
			withLevel(t, level)
			for _, sh := range allShapes {
				for _, mode := range modes {
					t.Run(sh.name()+"/"+mode.String(), func(t *testing.T) { sh.binary(t, mode) })
				}
			}
		})
	}
}

func TestRegionBounds(t *testing.T) {
	buf := make([]uint8, 2)
	s := NewPlain(buf)
	tests := []struct {
		name  string
		start Address[uint8]
		n     int
		ok    bool
	}{
		{"whole", AddressOf[uint8](0), 16, true},
		{"empty at end", AddressOf[uint8](16), 0, true},
		{"inner", AddressOf[uint8](3), 9, true},
		{"one past end", AddressOf[uint8](3), 14, false},
		{"start past end", AddressOf[uint8](17), 0, false},
		{"negative element", AddressOf[uint8](-1), 1, false},
		{"negative length", AddressOf[uint8](0), -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMutRegion[uint8, Lsb0](s, tt.start, tt.n)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			var oob *OutOfBoundsError
			require.ErrorAs(t, err, &oob)
			assert.Equal(t, 16, oob.Capacity)
		})
	}
}

func TestRegionSubBounds(t *testing.T) {
	r := Bits[uint16, Msb0](make([]uint16, 2))
	_, err := r.Sub(4, 33)
	var oob *OutOfBoundsError
	require.ErrorAs(t, err, &oob)

	_, err = r.Sub(5, 4)
	require.ErrorAs(t, err, &oob)

	sub, err := r.Sub(4, 20)
	require.NoError(t, err)
	assert.Equal(t, 16, sub.Len())
	assert.Equal(t, AddressOf[uint16](4), sub.Start())
	assert.Equal(t, AddressOf[uint16](20), sub.End())
}

func TestGetSetPanicOutOfRange(t *testing.T) {
	r := Bits[uint8, Lsb0](make([]uint8, 1))
	assert.Panics(t, func() { r.Get(8) })
	assert.Panics(t, func() { r.Get(-1) })
	assert.Panics(t, func() { r.Set(8, true) })
}

func TestGetSetPositions(t *testing.T) {
	t.Run("Lsb0", func(t *testing.T) {
		buf := make([]uint8, 2)
		r := Bits[uint8, Lsb0](buf)
		r.Set(0, true)
		r.Set(9, true)
		assert.Equal(t, []uint8{0b0000_0001, 0b0000_0010}, buf)
		assert.True(t, r.Replace(9, false))
		assert.Equal(t, []uint8{0b0000_0001, 0}, buf)
	})
	t.Run("Msb0", func(t *testing.T) {
		buf := make([]uint8, 2)
		r := Bits[uint8, Msb0](buf)
		r.Set(0, true)
		r.Set(9, true)
		assert.Equal(t, []uint8{0b1000_0000, 0b0100_0000}, buf)
	})
	t.Run("uint32 Msb0", func(t *testing.T) {
		buf := make([]uint32, 1)
		r := Bits[uint32, Msb0](buf)
		r.Set(31, true)
		assert.Equal(t, uint32(1), buf[0])
	})
}

func TestFillLeavesNeighbours(t *testing.T) {
	buf := []uint16{0xFFFF, 0x0000, 0xFFFF}
	s := NewPlain(buf)
	r := mustMut[uint16, Lsb0](t, s, 12, 24)
	r.Fill(false)
	assert.Equal(t, []uint16{0x0FFF, 0x0000, 0xFFF0}, buf)
	r.Fill(true)
	assert.Equal(t, []uint16{0xFFFF, 0xFFFF, 0xFFFF}, buf)
}

func TestCopyWithinOverlapping(t *testing.T) {
	for _, level := range levels {
		t.Run(level.String(), func(t *testing.T) {
			withLevel(t, level)
			buf := []uint8{0b1011_0110, 0b0000_1111, 0, 0}
			r := Bits[uint8, Lsb0](buf)
			want := memBits[uint8, Lsb0](buf)
			copy(want[5:25], slices.Clone(want[0:20]))

			src, err := r.AsRegion().Sub(0, 20)
			require.NoError(t, err)
			dst, err := r.Sub(5, 25)
			require.NoError(t, err)
			assert.Equal(t, 20, dst.CopyFrom(src))
			assert.Equal(t, want, memBits[uint8, Lsb0](buf))
		})
	}
}

func TestSwap(t *testing.T) {
	a := []uint32{0xDEADBEEF}
	ra := Bits[uint32, Lsb0](a)
	rb := Bits[uint32, Lsb0](make([]uint32, 2))
	x, err := rb.Sub(4, 36)
	require.NoError(t, err)
	x.Fill(true)

	assert.Equal(t, 32, ra.Swap(x))
	assert.Equal(t, uint32(0xFFFFFFFF), a[0])
	v, err := x.LoadLE()
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEF), v)
}

func TestEqual(t *testing.T) {
	a := Bits[uint8, Msb0]([]uint8{0b0010_1100, 0b1000_0000})
	b := Bits[uint8, Msb0]([]uint8{0b1011_0010})
	sa, err := a.Sub(2, 9)
	require.NoError(t, err)
	sb, err := b.Sub(0, 7)
	require.NoError(t, err)
	assert.True(t, sa.Equal(sb.AsRegion()))
	sb.Set(6, false)
	assert.False(t, sa.Equal(sb.AsRegion()))
	assert.False(t, sa.Equal(a.AsRegion()))
}

func TestRegionString(t *testing.T) {
	r := Bits[uint8, Lsb0]([]uint8{0b0000_0110})
	sub, err := r.Sub(0, 4)
	require.NoError(t, err)
	assert.Equal(t, "[0, 1, 1, 0]", sub.String())
	empty, err := r.Sub(3, 3)
	require.NoError(t, err)
	assert.Equal(t, "[]", empty.String())
}

func BenchmarkFill(b *testing.B) {
	buf := make([]uint8, 4096)
	r := Bits[uint8, Lsb0](buf)
	sub, _ := r.Sub(3, len(buf)*8-5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sub.Fill(i&1 == 0)
	}
}

func BenchmarkCountOnes(b *testing.B) {
	buf := make([]uint16, 4096)
	for i := range buf {
		buf[i] = uint16(i * 40503)
	}
	r := View[uint16, Msb0](buf)
	sub, _ := r.Sub(7, len(buf)*16-9)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sub.CountOnes()
	}
}
