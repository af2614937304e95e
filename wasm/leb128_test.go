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
	"encoding/hex"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func fromHex(t *testing.T, s string) []byte {
	t.Helper()
	data, err := hex.DecodeString(s)
	require.NoError(t, err)
	return data
}

func TestReadVarUint32(t *testing.T) {
	for _, c := range []struct {
		hex      string
		expected uint32
	}{
		{hex: "00", expected: 0},
		{hex: "808000", expected: 0},
		{hex: "01", expected: 1},
		{hex: "81808000", expected: 1},
		{hex: "8180808000", expected: 1},
		{hex: "8200", expected: 2},
		{hex: "e58e26", expected: 624485},
		{hex: "e58ea68000", expected: 624485},
		{hex: "ffffffff07", expected: 0x7fffffff},
		{hex: "8080808008", expected: 0x80000000},
		{hex: "ffffffff0f", expected: 0xffffffff},
	} {
		t.Run(c.hex, func(t *testing.T) {
			input := fromHex(t, c.hex)
			cursor := NewCursor(input)
			v, err := cursor.ReadVarUint32()
			require.NoError(t, err)
			require.Equal(t, c.expected, v)
			require.Equal(t, len(input), cursor.Pos())
		})
	}
}

func TestReadVarUint32Errors(t *testing.T) {
	for _, c := range []struct {
		hex      string
		expected error
	}{
		// Six groups exceed ceil(32/7).
		{hex: "808080808000", expected: ErrIntRepresentationTooLong},
		// Fifth group carries bits beyond bit 31.
		{hex: "ffffffff1f", expected: ErrIntegerTooLarge},
		{hex: "8080808070", expected: ErrIntegerTooLarge},
		// Continuation bit set at end of input.
		{hex: "80", expected: ErrUnexpectedEOF},
		{hex: "", expected: ErrUnexpectedEOF},
	} {
		t.Run(c.hex, func(t *testing.T) {
			_, err := NewCursor(fromHex(t, c.hex)).ReadVarUint32()
			require.ErrorIs(t, err, c.expected)
		})
	}
}

func TestReadVarInt32(t *testing.T) {
	for _, c := range []struct {
		hex      string
		expected int32
	}{
		{hex: "00", expected: 0},
		{hex: "7f", expected: -1},
		{hex: "ffffffff7f", expected: -1},
		{hex: "7e", expected: -2},
		{hex: "fe7f", expected: -2},
		{hex: "feff7f", expected: -2},
		{hex: "e58e26", expected: 624485},
		{hex: "c0bb78", expected: -123456},
		{hex: "9bf159", expected: -624485},
		{hex: "8180808078", expected: -2147483647},
		{hex: "8080808078", expected: math.MinInt32},
	} {
		t.Run(c.hex, func(t *testing.T) {
			input := fromHex(t, c.hex)
			cursor := NewCursor(input)
			v, err := cursor.ReadVarInt32()
			require.NoError(t, err)
			require.Equal(t, c.expected, v)
			require.Equal(t, len(input), cursor.Pos())
		})
	}
}

func TestReadVarInt32Errors(t *testing.T) {
	for _, c := range []struct {
		hex      string
		expected error
	}{
		{hex: "808080808000", expected: ErrIntRepresentationTooLong},
		// Fifth group not a sign-consistent extension.
		{hex: "ffffffff0f", expected: ErrIntegerTooLarge},
		{hex: "ffffffff4f", expected: ErrIntegerTooLarge},
		{hex: "8080808070", expected: ErrIntegerTooLarge},
		{hex: "80", expected: ErrUnexpectedEOF},
	} {
		t.Run(c.hex, func(t *testing.T) {
			_, err := NewCursor(fromHex(t, c.hex)).ReadVarInt32()
			require.ErrorIs(t, err, c.expected)
		})
	}
}

func TestReadVarUint64(t *testing.T) {
	for _, c := range []struct {
		hex      string
		expected uint64
	}{
		{hex: "00", expected: 0},
		{hex: "808000", expected: 0},
		{hex: "e58e26", expected: 624485},
		{hex: "ffffffff0f", expected: 0xffffffff},
		{hex: "ffffffffffffffff7f", expected: 0x7fffffffffffffff},
		{hex: "80808080808080808001", expected: 0x8000000000000000},
		{hex: "ffffffffffffffffff01", expected: math.MaxUint64},
	} {
		t.Run(c.hex, func(t *testing.T) {
			input := fromHex(t, c.hex)
			cursor := NewCursor(input)
			v, err := cursor.ReadVarUint64()
			require.NoError(t, err)
			require.Equal(t, c.expected, v)
			require.Equal(t, len(input), cursor.Pos())
		})
	}
}

func TestReadVarUint64Errors(t *testing.T) {
	for _, c := range []struct {
		hex      string
		expected error
	}{
		{hex: "8080808080808080808000", expected: ErrIntRepresentationTooLong},
		// Tenth group may only carry bit 63.
		{hex: "ffffffffffffffffff02", expected: ErrIntegerTooLarge},
		{hex: "ffffffffffffffffff7f", expected: ErrIntegerTooLarge},
		{hex: "80808080808080808080", expected: ErrUnexpectedEOF},
	} {
		t.Run(c.hex, func(t *testing.T) {
			_, err := NewCursor(fromHex(t, c.hex)).ReadVarUint64()
			require.ErrorIs(t, err, c.expected)
		})
	}
}

func TestReadVarInt64(t *testing.T) {
	for _, c := range []struct {
		hex      string
		expected int64
	}{
		{hex: "00", expected: 0},
		{hex: "7f", expected: -1},
		{hex: "ffffffffffffffffff7f", expected: -1},
		{hex: "9bf159", expected: -624485},
		{hex: "ffffffffffffff00", expected: 562949953421311},
		{hex: "ffffffffffffff808000", expected: 562949953421311},
		{hex: "8080808080808080807f", expected: math.MinInt64},
	} {
		t.Run(c.hex, func(t *testing.T) {
			input := fromHex(t, c.hex)
			cursor := NewCursor(input)
			v, err := cursor.ReadVarInt64()
			require.NoError(t, err)
			require.Equal(t, c.expected, v)
			require.Equal(t, len(input), cursor.Pos())
		})
	}
}

func TestReadVarInt64Errors(t *testing.T) {
	for _, c := range []struct {
		hex      string
		expected error
	}{
		{hex: "8080808080808080808000", expected: ErrIntRepresentationTooLong},
		// Tenth group must be a sign-consistent extension of bit 63.
		{hex: "ffffffffffffffffff02", expected: ErrIntegerTooLarge},
		{hex: "ffffffffffffffffff41", expected: ErrIntegerTooLarge},
		{hex: "ffffffffffffffffff", expected: ErrUnexpectedEOF},
	} {
		t.Run(c.hex, func(t *testing.T) {
			_, err := NewCursor(fromHex(t, c.hex)).ReadVarInt64()
			require.ErrorIs(t, err, c.expected)
		})
	}
}
