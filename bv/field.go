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
	"math/bits"

	"github.com/pkg/errors"
	"golang.org/x/sys/cpu"
)

// ByteOrder decides which end of a multi-element field holds the least
// significant bits of the value.
type ByteOrder uint8

const (
	// LittleEndian stores the least significant chunk in the lowest element.
	LittleEndian ByteOrder = iota
	// BigEndian stores the most significant chunk in the lowest element.
	BigEndian
)

// NativeEndian returns the byte order of the host.
func NativeEndian() ByteOrder {
	if cpu.IsBigEndian {
		return BigEndian
	}
	return LittleEndian
}

func (b ByteOrder) String() string {
	if b == BigEndian {
		return "big-endian"
	}
	return "little-endian"
}

// FieldCodec packs integers into regions and unpacks them again.
//
// The value is split into one chunk per domain element, sized by that
// element's used positions. Inside an element a chunk occupies the bits the
// BitOrder selects, numerically in the element's own significance. Across
// elements ByteOrder decides whether the lowest element holds the least or
// most significant chunk.
type FieldCodec struct {
	ByteOrder ByteOrder
}

func checkFieldLen(n int) error {
	if n < 1 || n > 64 {
		return errors.Wrapf(ErrFieldWidth, "length %d", n)
	}
	return nil
}

// Encode stores v into r. It fails without writing when v has more
// significant bits than r holds.
func Encode[T Element, O BitOrder](c FieldCodec, r MutRegion[T, O], v uint64) error {
	if err := checkFieldLen(r.n); err != nil {
		return err
	}
	if need := bits.Len64(v); need > r.n {
		return errors.WithStack(&ValueTooWideError{Value: v, Bits: need, Len: r.n})
	}
	d := r.domain()
	head, tail := r.edgeAccess(d)
	parts := d.Parts()
	if c.ByteOrder == BigEndian {
		parts = d.Backward()
	}
	for p := range parts {
		chunk := T(v & uint64(Ones[uint64](int(p.Count))))
		v >>= p.Count
		r.update(p, accessOf(p, head, tail), opCopy, chunk<<lowShift[T, O](p.Start, p.Count))
	}
	return nil
}

// Decode reads the value stored in r.
func Decode[T Element, O BitOrder](c FieldCodec, r Region[T, O]) (uint64, error) {
	if err := checkFieldLen(r.n); err != nil {
		return 0, err
	}
	var out uint64
	shift := uint(0)
	for p := range r.domain().Parts() {
		chunk := uint64((r.load(p.Elem) & p.Mask) >> lowShift[T, O](p.Start, p.Count))
		if c.ByteOrder == BigEndian {
			out = out<<p.Count | chunk
		} else {
			out |= chunk << shift
			shift += p.Count
		}
	}
	return out, nil
}

// DecodeSigned reads the value stored in r as a two's complement integer of
// r.Len() bits.
func DecodeSigned[T Element, O BitOrder](c FieldCodec, r Region[T, O]) (int64, error) {
	v, err := Decode(c, r)
	if err != nil {
		return 0, err
	}
	unused := 64 - uint(r.n)
	return int64(v<<unused) >> unused, nil
}

// StoreLE encodes v with the lowest element holding the least significant
// bits.
func (r MutRegion[T, O]) StoreLE(v uint64) error {
	return Encode(FieldCodec{ByteOrder: LittleEndian}, r, v)
}

// StoreBE encodes v with the lowest element holding the most significant
// bits.
func (r MutRegion[T, O]) StoreBE(v uint64) error {
	return Encode(FieldCodec{ByteOrder: BigEndian}, r, v)
}

// LoadLE is the inverse of StoreLE.
func (r Region[T, O]) LoadLE() (uint64, error) {
	return Decode(FieldCodec{ByteOrder: LittleEndian}, r)
}

// LoadBE is the inverse of StoreBE.
func (r Region[T, O]) LoadBE() (uint64, error) {
	return Decode(FieldCodec{ByteOrder: BigEndian}, r)
}
