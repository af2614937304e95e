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
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestI32ValueZeroExtends(t *testing.T) {
	v := I32Value(-1)
	require.Equal(t, int32(-1), v.I32())
	// The i64 view of a freshly written i32 is the zero-extended value.
	require.Equal(t, int64(0xFFFFFFFF), v.I64())
	require.Equal(t, uint64(0xFFFFFFFF), v.Bits())
}

func TestValueViews(t *testing.T) {
	require.Equal(t, int64(math.MinInt64), I64Value(math.MinInt64).I64())
	require.Equal(t, float32(1.5), F32Value(1.5).F32())
	require.Equal(t, float64(-2.25), F64Value(-2.25).F64())

	// Reinterpreting views share the same cell bits.
	v := F32Value(1.0)
	require.Equal(t, int32(0x3F800000), v.I32())
	require.Equal(t, math.Float64bits(1.0), F64Value(1.0).Bits())
}

func TestValueNegativeZeroKeepsSignBit(t *testing.T) {
	negZero := F64Value(math.Copysign(0, -1))
	require.True(t, math.Signbit(negZero.F64()))
	require.Equal(t, uint64(1)<<63, negZero.Bits())
}
