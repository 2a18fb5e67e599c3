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

	"github.com/pkg/errors"
)

// ErrFieldWidth is returned by the field codec for regions that are empty or
// wider than 64 bits.
var ErrFieldWidth = errors.New("bv: region length unsuitable for an integer field")

// OutOfRangeError reports a bit index at or above the element width.
type OutOfRangeError struct {
	Value uint
	Width int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("bv: bit index %d out of range for %d-bit element", e.Value, e.Width)
}

// OutOfBoundsError reports a region that reaches outside its backing store.
// Offsets are in bits from the start of the store.
type OutOfBoundsError struct {
	Start    int
	Len      int
	Capacity int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("bv: bits [%d, %d) outside store of %d bits", e.Start, e.Start+e.Len, e.Capacity)
}

// ValueTooWideError reports a field value with more significant bits than
// the region holds.
type ValueTooWideError struct {
	Value uint64
	Bits  int
	Len   int
}

func (e *ValueTooWideError) Error() string {
	return fmt.Sprintf("bv: value %#x needs %d bits, region holds %d", e.Value, e.Bits, e.Len)
}

// UnsupportedAliasingError reports a mutable region whose edge element is
// shared with another region while the store has no atomic capability.
type UnsupportedAliasingError struct {
	Elem int
	Edge string
}

func (e *UnsupportedAliasingError) Error() string {
	return fmt.Sprintf("bv: %s element %d is shared but the store is not atomic", e.Edge, e.Elem)
}
