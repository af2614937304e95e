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

import "math"

// Value is a single untyped 64-bit cell. The instruction being executed
// decides which view applies; validation guarantees the views are used
// consistently, so the cell carries no tag.
type Value struct {
	bits uint64
}

// I32Value zero-extends, so the I64 view of a freshly written i32 is the
// zero-extended value.
func I32Value(v int32) Value {
	return Value{bits: uint64(uint32(v))}
}

func I64Value(v int64) Value {
	return Value{bits: uint64(v)}
}

func F32Value(v float32) Value {
	return Value{bits: uint64(math.Float32bits(v))}
}

func F64Value(v float64) Value {
	return Value{bits: math.Float64bits(v)}
}

func (v Value) I32() int32 {
	return int32(uint32(v.bits))
}

func (v Value) I64() int64 {
	return int64(v.bits)
}

func (v Value) F32() float32 {
	return math.Float32frombits(uint32(v.bits))
}

func (v Value) F64() float64 {
	return math.Float64frombits(v.bits)
}

// Bits exposes the raw cell, which is the representation host functions and
// embedders exchange with the interpreter.
func (v Value) Bits() uint64 {
	return v.bits
}
