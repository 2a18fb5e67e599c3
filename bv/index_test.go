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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndex(t *testing.T) {
	i, err := NewIndex[uint16](15)
	require.NoError(t, err)
	assert.Equal(t, uint(15), i.Value())
	assert.Equal(t, "15/16", i.String())

	_, err = NewIndex[uint16](16)
	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, uint(16), oor.Value)
	assert.Equal(t, 16, oor.Width)

	_, err = NewIndex[uint8](8)
	require.ErrorAs(t, err, &oor)

	assert.Panics(t, func() { MustIndex[uint32](32) })
	assert.Equal(t, uint(31), MustIndex[uint32](31).Value())
}

func TestAddressAdvance(t *testing.T) {
	tests := []struct {
		name  string
		start Address[uint8]
		n     int
		want  Address[uint8]
	}{
		{"within", Address[uint8]{Elem: 0, Bit: MustIndex[uint8](2)}, 3, Address[uint8]{Elem: 0, Bit: MustIndex[uint8](5)}},
		{"carry", Address[uint8]{Elem: 1, Bit: MustIndex[uint8](6)}, 3, Address[uint8]{Elem: 2, Bit: MustIndex[uint8](1)}},
		{"many", Address[uint8]{}, 8 * 5, Address[uint8]{Elem: 5}},
		{"backward", Address[uint8]{Elem: 2, Bit: MustIndex[uint8](1)}, -3, Address[uint8]{Elem: 1, Bit: MustIndex[uint8](6)}},
		{"before start", Address[uint8]{}, -1, Address[uint8]{Elem: -1, Bit: MustIndex[uint8](7)}},
		{"exact backward", Address[uint8]{Elem: 3}, -16, Address[uint8]{Elem: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Advance(tt.n)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.start, got.Retreat(tt.n))
			assert.Equal(t, tt.n, tt.start.DistanceTo(got))
			assert.Equal(t, -tt.n, Distance(got, tt.start))
		})
	}
}

func TestAddressOffset(t *testing.T) {
	for off := -130; off <= 130; off++ {
		a := AddressOf[uint64](off)
		require.Equal(t, off, a.Offset(), "AddressOf(%d) = %s", off, a)
		require.Less(t, a.Bit.Value(), uint(64))
	}
	assert.Equal(t, "2:3", AddressOf[uint16](35).String())
}
