// Package bv provides bit-granular views over arrays of fixed-width storage
// elements.
//
// A region names an arbitrary contiguous run of bits that may start and end
// in the middle of an element. Every bulk operation walks the region as a
// Domain: a partial head element, whole body elements and a partial tail
// element. Whole elements are processed directly; partial elements are
// updated under a mask, atomically when another region may own the rest of
// the element.
//
// Basic usage:
//
//	buf := make([]uint8, 4)
//	r := bv.Bits[uint8, bv.Lsb0](buf)
//	r.Set(3, true)
//	sub, _ := r.Sub(3, 19)
//	sub.Fill(true)
//	n := r.CountOnes() // 16
package bv

import "unsafe"

// Element is the closed set of storage element types a region can address.
// uintptr stands in for the pointer-width element.
type Element interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Width returns the number of bits in one element of type T.
func Width[T Element]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

// Ordering is a memory-ordering hint forwarded to a Store. The engine never
// interprets it; Go's atomics are sequentially consistent regardless.
type Ordering uint8

const (
	Relaxed Ordering = iota
	Acquire
	Release
	AcqRel
	SeqCst
)

// String returns the conventional name of the ordering.
func (o Ordering) String() string {
	switch o {
	case Relaxed:
		return "relaxed"
	case Acquire:
		return "acquire"
	case Release:
		return "release"
	case AcqRel:
		return "acq-rel"
	case SeqCst:
		return "seq-cst"
	default:
		return "unknown"
	}
}

// accessOrdering is used for every element access the engine issues.
const accessOrdering = Relaxed
