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
	"unsafe"
)

// Body kernels operate on the whole elements of a domain when the store is a
// Plain slice. The word family views the elements as bytes, which is valid
// because every body operation is bitwise and ignores element boundaries.

// bodyOp is the combination applied to each destination element.
type bodyOp uint8

const (
	opCopy bodyOp = iota
	opAnd
	opOr
	opXor
)

func (op bodyOp) String() string {
	switch op {
	case opCopy:
		return "copy"
	case opAnd:
		return "and"
	case opOr:
		return "or"
	case opXor:
		return "xor"
	default:
		return "unknown"
	}
}

// apply combines old with v under op.
func apply[T Element](op bodyOp, old, v T) T {
	switch op {
	case opAnd:
		return old & v
	case opOr:
		return old | v
	case opXor:
		return old ^ v
	default:
		return v
	}
}

func bytesOf[T Element](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*Width[T]()/8)
}

// splitWords splits b into an unaligned head, 8-byte aligned words and a
// short tail.
func splitWords(b []byte) (head []byte, words []uint64, tail []byte) {
	if len(b) == 0 {
		return nil, nil, nil
	}
	skip := min(int(-uintptr(unsafe.Pointer(unsafe.SliceData(b)))&7), len(b))
	head, rest := b[:skip], b[skip:]
	n := len(rest) / 8
	if n > 0 {
		words = unsafe.Slice((*uint64)(unsafe.Pointer(unsafe.SliceData(rest))), n)
	}
	return head, words, rest[n*8:]
}

func misalignment(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b))) & 7
}

func kernelCountOnes[T Element](s []T) int {
	if currentLevel == DispatchWord {
		return wordCountOnes(bytesOf(s))
	}
	n := 0
	for _, v := range s {
		n += CountOnes(v)
	}
	return n
}

func wordCountOnes(b []byte) int {
	head, words, tail := splitWords(b)
	n := 0
	for _, v := range head {
		n += bits.OnesCount8(v)
	}
	for _, w := range words {
		n += bits.OnesCount64(w)
	}
	for _, v := range tail {
		n += bits.OnesCount8(v)
	}
	return n
}

// kernelFill sets every element to v, which must be zero or all ones.
func kernelFill[T Element](s []T, v T) {
	if currentLevel == DispatchWord {
		wordFill(bytesOf(s), v != 0)
		return
	}
	for i := range s {
		s[i] = v
	}
}

func wordFill(b []byte, bit bool) {
	var pattern uint64
	if bit {
		pattern = ^uint64(0)
	}
	head, words, tail := splitWords(b)
	for i := range head {
		head[i] = byte(pattern)
	}
	for i := range words {
		words[i] = pattern
	}
	for i := range tail {
		tail[i] = byte(pattern)
	}
}

func kernelNot[T Element](s []T) {
	if currentLevel == DispatchWord {
		head, words, tail := splitWords(bytesOf(s))
		for i := range head {
			head[i] = ^head[i]
		}
		for i := range words {
			words[i] = ^words[i]
		}
		for i := range tail {
			tail[i] = ^tail[i]
		}
		return
	}
	for i := range s {
		s[i] = ^s[i]
	}
}

// kernelBinary combines src into dst element by element. The slices have
// equal length and may overlap only when op is opCopy.
func kernelBinary[T Element](op bodyOp, dst, src []T) {
	if op == opCopy {
		copy(dst, src)
		return
	}
	if currentLevel == DispatchWord {
		db, sb := bytesOf(dst), bytesOf(src)
		if misalignment(db) == misalignment(sb) {
			wordBinary(op, db, sb)
			return
		}
	}
	for i := range dst {
		dst[i] = apply(op, dst[i], src[i])
	}
}

func wordBinary(op bodyOp, dst, src []byte) {
	dh, dw, dt := splitWords(dst)
	sh, sw, st := splitWords(src)
	for i := range dh {
		dh[i] = apply(op, dh[i], sh[i])
	}
	for i := range dw {
		dw[i] = apply(op, dw[i], sw[i])
	}
	for i := range dt {
		dt[i] = apply(op, dt[i], st[i])
	}
}
