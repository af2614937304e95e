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

import "slices"

// ValueType classifies the individual values that WebAssembly code can compute
// with. The MVP value types are the four number types.
// See https://webassembly.github.io/spec/core/syntax/types.html#number-types.
type ValueType byte

const (
	I32 ValueType = 0x7f
	I64 ValueType = 0x7e
	F32 ValueType = 0x7d
	F64 ValueType = 0x7c
)

// FunctionType classifies the signature of functions, mapping a vector of
// parameters to a vector of results.
// See https://webassembly.github.io/spec/core/syntax/types.html#function-types.
type FunctionType struct {
	ParamTypes  []ValueType
	ResultTypes []ValueType
}

// Equal reports structural equality, the relation call_indirect checks.
func (ft *FunctionType) Equal(other *FunctionType) bool {
	if ft == other {
		return true
	}
	if ft == nil || other == nil {
		return false
	}
	return slices.Equal(ft.ParamTypes, other.ParamTypes) &&
		slices.Equal(ft.ResultTypes, other.ResultTypes)
}

// GlobalType defines the type of a global variable, which includes its value
// type and whether it is mutable.
// See https://webassembly.github.io/spec/core/syntax/modules.html#globals
type GlobalType struct {
	ValueType ValueType
	IsMutable bool
}

// Limits define min/max constraints for tables and memories, in elements and
// pages respectively.
// See https://webassembly.github.io/spec/core/binary/types.html#limits
type Limits struct {
	Min uint32
	Max *uint32
}

const (
	// PageSize is the size of a WebAssembly linear-memory page in bytes.
	PageSize = 65536

	// MaxMemoryPagesLimit caps any memory at 4GiB regardless of its declared
	// limits.
	MaxMemoryPagesLimit = 65536

	// CallStackLimit is the default bound on nested function invocations.
	CallStackLimit = 2048

	// BranchImmediateSize is the byte size of one rewritten branch immediate:
	// a code offset followed by a stack-drop count, both uint32.
	BranchImmediateSize = 8
)
