// Copyright 2025 Google LLC
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

package wasm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryGrow(t *testing.T) {
	memory := NewMemory(Limits{Min: 1}, 3)

	require.Equal(t, int32(1), memory.Size())
	require.Equal(t, int32(1), memory.Grow(1))
	require.Equal(t, int32(2), memory.Size())
	require.Len(t, memory.Bytes(), 2*PageSize)

	// New bytes are zero-initialized.
	for _, b := range memory.Bytes()[PageSize:] {
		if b != 0 {
			t.Fatal("grown memory not zeroed")
		}
	}

	require.Equal(t, int32(2), memory.Grow(1))
	require.Equal(t, int32(-1), memory.Grow(1))
	require.Equal(t, int32(3), memory.Size())
}

func TestMemoryGrowZeroPages(t *testing.T) {
	memory := NewMemory(Limits{Min: 1}, 2)
	require.Equal(t, int32(1), memory.Grow(0))
	require.Equal(t, int32(1), memory.Size())
}

func TestMemoryGrowHugeDeltaDoesNotWrap(t *testing.T) {
	memory := NewMemory(Limits{Min: 1}, 2)
	// -1 reinterpreted as unsigned is far beyond any cap; the uint64 sum must
	// not wrap back into range.
	require.Equal(t, int32(-1), memory.Grow(-1))
	require.Equal(t, int32(1), memory.Size())
}

func TestMemoryPagesLimitClampedByDeclaredMax(t *testing.T) {
	two := uint32(2)
	memory := NewMemory(Limits{Min: 1, Max: &two}, MaxMemoryPagesLimit)
	require.Equal(t, int32(1), memory.Grow(1))
	require.Equal(t, int32(-1), memory.Grow(1))
}

func TestMemoryLoadStoreBounds(t *testing.T) {
	memory := NewMemory(Limits{Min: 1}, 1)
	size := uint64(PageSize)

	// A 4-byte access at exactly size-4 succeeds; one byte further traps.
	require.NoError(t, memory.storeUint32(size-4, 0xDEADBEEF))
	v, err := memory.loadUint32(size - 4)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), v)

	_, err = memory.loadUint32(size - 3)
	require.ErrorIs(t, err, ErrMemoryOutOfBounds)
	require.ErrorIs(t, memory.storeUint32(size-3, 0), ErrMemoryOutOfBounds)

	_, err = memory.loadByte(size)
	require.ErrorIs(t, err, ErrMemoryOutOfBounds)

	// Effective addresses are computed in 64 bits, so a wrapped 32-bit sum
	// cannot sneak back into bounds.
	_, err = memory.loadUint64(uint64(0xFFFFFFFF) + 8)
	require.ErrorIs(t, err, ErrMemoryOutOfBounds)
}

func TestMemoryLittleEndian(t *testing.T) {
	memory := NewMemory(Limits{Min: 1}, 1)
	require.NoError(t, memory.storeUint32(0, 0x11223344))
	require.Equal(t, byte(0x44), memory.Bytes()[0])
	require.Equal(t, byte(0x11), memory.Bytes()[3])

	require.NoError(t, memory.storeUint16(8, 0xAABB))
	b, err := memory.loadByte(8)
	require.NoError(t, err)
	require.Equal(t, byte(0xBB), b)

	v16, err := memory.loadUint16(8)
	require.NoError(t, err)
	require.Equal(t, uint16(0xAABB), v16)
}
