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
	"encoding/binary"
	"errors"
)

var ErrMemoryOutOfBounds = errors.New("out of bounds memory access")

// Memory represents a linear memory instance. Its size is always a whole
// number of pages. An instance either owns its memory or borrows an imported
// one; the structure is identical, only the teardown differs (borrowed
// memories are left alone).
// https://webassembly.github.io/spec/core/exec/runtime.html#memory-instances
type Memory struct {
	data       []byte
	limits     Limits
	pagesLimit uint32
}

// NewMemory creates a memory of limits.Min pages. The hard page cap is the
// smaller of pagesLimit, the declared maximum, and MaxMemoryPagesLimit.
func NewMemory(limits Limits, pagesLimit uint32) *Memory {
	if pagesLimit > MaxMemoryPagesLimit {
		pagesLimit = MaxMemoryPagesLimit
	}
	if limits.Max != nil && *limits.Max < pagesLimit {
		pagesLimit = *limits.Max
	}
	return &Memory{
		data:       make([]byte, limits.Min*PageSize),
		limits:     limits,
		pagesLimit: pagesLimit,
	}
}

// Size returns the size of the memory in pages.
func (m *Memory) Size() int32 {
	return int32(len(m.data) / PageSize)
}

// Limits returns the declared min/max limits in pages.
func (m *Memory) Limits() Limits {
	return m.limits
}

// Bytes exposes the backing store so embedders can seed and inspect linear
// memory directly.
func (m *Memory) Bytes() []byte {
	return m.data
}

// Grow extends the memory by the given number of pages, zero-initializing the
// new bytes. It returns the previous size in pages, or -1 when the growth
// would exceed the page cap.
func (m *Memory) Grow(deltaPages int32) int32 {
	currentPages := m.Size()
	// Compute in uint64 so a huge delta reinterpreted as unsigned cannot wrap.
	newPages := uint64(uint32(currentPages)) + uint64(uint32(deltaPages))
	if newPages > uint64(m.pagesLimit) {
		debugf("memory.grow rejected: %d + %d pages exceeds limit %d",
			currentPages, uint32(deltaPages), m.pagesLimit)
		return -1
	}
	m.data = append(m.data, make([]byte, uint32(deltaPages)*PageSize)...)
	return currentPages
}

// bytesSize returns the size of the memory in bytes.
func (m *Memory) bytesSize() uint64 {
	return uint64(len(m.data))
}

// The load/store helpers take the 64-bit effective address (pointer plus
// static offset, added in uint64 so 32-bit overflow is caught by the bounds
// predicate) and check effectiveAddress + size <= len(memory).

func (m *Memory) loadByte(ea uint64) (byte, error) {
	if ea+1 > m.bytesSize() {
		return 0, ErrMemoryOutOfBounds
	}
	return m.data[ea], nil
}

func (m *Memory) loadUint16(ea uint64) (uint16, error) {
	if ea+2 > m.bytesSize() {
		return 0, ErrMemoryOutOfBounds
	}
	return binary.LittleEndian.Uint16(m.data[ea:]), nil
}

func (m *Memory) loadUint32(ea uint64) (uint32, error) {
	if ea+4 > m.bytesSize() {
		return 0, ErrMemoryOutOfBounds
	}
	return binary.LittleEndian.Uint32(m.data[ea:]), nil
}

func (m *Memory) loadUint64(ea uint64) (uint64, error) {
	if ea+8 > m.bytesSize() {
		return 0, ErrMemoryOutOfBounds
	}
	return binary.LittleEndian.Uint64(m.data[ea:]), nil
}

func (m *Memory) storeByte(ea uint64, v byte) error {
	if ea+1 > m.bytesSize() {
		return ErrMemoryOutOfBounds
	}
	m.data[ea] = v
	return nil
}

func (m *Memory) storeUint16(ea uint64, v uint16) error {
	if ea+2 > m.bytesSize() {
		return ErrMemoryOutOfBounds
	}
	binary.LittleEndian.PutUint16(m.data[ea:], v)
	return nil
}

func (m *Memory) storeUint32(ea uint64, v uint32) error {
	if ea+4 > m.bytesSize() {
		return ErrMemoryOutOfBounds
	}
	binary.LittleEndian.PutUint32(m.data[ea:], v)
	return nil
}

func (m *Memory) storeUint64(ea uint64, v uint64) error {
	if ea+8 > m.bytesSize() {
		return ErrMemoryOutOfBounds
	}
	binary.LittleEndian.PutUint64(m.data[ea:], v)
	return nil
}
