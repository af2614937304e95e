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
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// bodyBuilder assembles rewritten function bodies the way the parser
// contract in module.go specifies, so tests exercise exactly what the
// interpreter consumes.
type bodyBuilder struct {
	buf []byte
}

func newBody() *bodyBuilder {
	return &bodyBuilder{}
}

func (b *bodyBuilder) op(op opcode) *bodyBuilder {
	b.buf = append(b.buf, byte(op))
	return b
}

func (b *bodyBuilder) u32(v uint32) *bodyBuilder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
	return b
}

func (b *bodyBuilder) u64(v uint64) *bodyBuilder {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, v)
	return b
}

func (b *bodyBuilder) i32Const(v int32) *bodyBuilder {
	return b.op(i32Const).u32(uint32(v))
}

func (b *bodyBuilder) i64Const(v int64) *bodyBuilder {
	return b.op(i64Const).u64(uint64(v))
}

func (b *bodyBuilder) f32Const(v float32) *bodyBuilder {
	return b.op(f32Const).u32(math.Float32bits(v))
}

func (b *bodyBuilder) f64Const(v float64) *bodyBuilder {
	return b.op(f64Const).u64(math.Float64bits(v))
}

func (b *bodyBuilder) localGet(i uint32) *bodyBuilder {
	return b.op(localGet).u32(i)
}

func (b *bodyBuilder) localSet(i uint32) *bodyBuilder {
	return b.op(localSet).u32(i)
}

func (b *bodyBuilder) globalGet(i uint32) *bodyBuilder {
	return b.op(globalGet).u32(i)
}

func (b *bodyBuilder) globalSet(i uint32) *bodyBuilder {
	return b.op(globalSet).u32(i)
}

func (b *bodyBuilder) call(funcIdx uint32) *bodyBuilder {
	return b.op(call).u32(funcIdx)
}

func (b *bodyBuilder) callIndirect(typeIdx uint32) *bodyBuilder {
	return b.op(callIndirect).u32(typeIdx)
}

// memOp emits a load or store with its static offset immediate.
func (b *bodyBuilder) memOp(op opcode, offset uint32) *bodyBuilder {
	return b.op(op).u32(offset)
}

// br emits an unconditional branch with a resolved immediate.
func (b *bodyBuilder) br(arity, codeOffset, stackDrop uint32) *bodyBuilder {
	return b.op(br).u32(arity).u32(codeOffset).u32(stackDrop)
}

func (b *bodyBuilder) ret(arity, codeOffset, stackDrop uint32) *bodyBuilder {
	return b.op(returnOp).u32(arity).u32(codeOffset).u32(stackDrop)
}

func (b *bodyBuilder) end() *bodyBuilder {
	return b.op(end)
}

// pos returns the offset the next byte will land at, for computing branch
// targets.
func (b *bodyBuilder) pos() uint32 {
	return uint32(len(b.buf))
}

// placeholderU32 emits four zero bytes and returns their position so a
// not-yet-known offset can be patched in later.
func (b *bodyBuilder) placeholderU32() int {
	at := len(b.buf)
	b.buf = append(b.buf, 0, 0, 0, 0)
	return at
}

func (b *bodyBuilder) patchU32(at int, v uint32) {
	binary.LittleEndian.PutUint32(b.buf[at:], v)
}

func (b *bodyBuilder) build(localCount, maxStackHeight uint32) Code {
	return Code{
		Body:           b.buf,
		LocalCount:     localCount,
		MaxStackHeight: maxStackHeight,
	}
}

// singleFuncModule wraps one rewritten body as a complete module exporting
// nothing, the smallest shape Execute accepts.
func singleFuncModule(ft FunctionType, code Code) *Module {
	return &Module{
		TypeSec: []FunctionType{ft},
		FuncSec: []uint32{0},
		CodeSec: []Code{code},
	}
}

// runFunc instantiates the module and executes its first defined function.
func runFunc(module *Module, args ...Value) ExecutionResult {
	instance := NewInstance(module)
	return Execute(instance, module.NumImportedFunctions(), args)
}

// execBinary runs "local.get 0, local.get 1, <op>, end" over two arguments.
func execBinary(t *testing.T, op opcode, paramType, resultType ValueType, a, b Value) ExecutionResult {
	t.Helper()
	code := newBody().localGet(0).localGet(1).op(op).end().build(0, 2)
	ft := FunctionType{
		ParamTypes:  []ValueType{paramType, paramType},
		ResultTypes: []ValueType{resultType},
	}
	return runFunc(singleFuncModule(ft, code), a, b)
}

// execUnary runs "local.get 0, <op>, end" over one argument.
func execUnary(t *testing.T, op opcode, paramType, resultType ValueType, a Value) ExecutionResult {
	t.Helper()
	code := newBody().localGet(0).op(op).end().build(0, 1)
	ft := FunctionType{
		ParamTypes:  []ValueType{paramType},
		ResultTypes: []ValueType{resultType},
	}
	return runFunc(singleFuncModule(ft, code), a)
}

func requireI32(t *testing.T, result ExecutionResult, expected int32) {
	t.Helper()
	require.False(t, result.Trapped(), "trap: %v", result.TrapCause())
	v, ok := result.Value()
	require.True(t, ok)
	require.Equal(t, expected, v.I32())
}

func requireI64(t *testing.T, result ExecutionResult, expected int64) {
	t.Helper()
	require.False(t, result.Trapped(), "trap: %v", result.TrapCause())
	v, ok := result.Value()
	require.True(t, ok)
	require.Equal(t, expected, v.I64())
}

func requireTrap(t *testing.T, result ExecutionResult, cause error) {
	t.Helper()
	require.True(t, result.Trapped())
	require.ErrorIs(t, result.TrapCause(), cause)
}
