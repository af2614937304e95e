// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
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
	"math"
)

// ErrUnexpectedEOF reports that the input ended in the middle of a read. It
// is recoverable: a failed fixed-width read leaves the cursor position
// unchanged. A failed LEB128 read keeps the bytes it consumed before running
// out.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// Cursor is a bounded reader over a byte slice. It is the reader contract a
// binary parser consumes: fixed-width little-endian reads plus the LEB128
// decoders. All multibyte reads are little-endian.
type Cursor struct {
	buf []byte
	pos int
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of bytes left to read.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, ErrUnexpectedEOF
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadBytes returns a view of the next n bytes and advances past them.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if c.Remaining() < n {
		return nil, ErrUnexpectedEOF
	}
	data := c.buf[c.pos : c.pos+n]
	c.pos += n
	return data, nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	data, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

func (c *Cursor) ReadUint64() (uint64, error) {
	data, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

func (c *Cursor) ReadFloat32() (float32, error) {
	bits, err := c.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func (c *Cursor) ReadFloat64() (float64, error) {
	bits, err := c.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func (c *Cursor) ReadVarUint32() (uint32, error) {
	v, err := readVarUint(c.ReadByte, 32)
	return uint32(v), err
}

func (c *Cursor) ReadVarUint64() (uint64, error) {
	return readVarUint(c.ReadByte, 64)
}

func (c *Cursor) ReadVarInt32() (int32, error) {
	v, err := readVarInt(c.ReadByte, 32)
	return int32(v), err
}

func (c *Cursor) ReadVarInt64() (int64, error) {
	return readVarInt(c.ReadByte, 64)
}
