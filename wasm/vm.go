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
	"fmt"
	"math"
)

var (
	errUnreachable              = errors.New("unreachable")
	errIndirectCallTypeMismatch = errors.New("indirect call type mismatch")
)

// Vm interprets one function activation over its rewritten code. Nested
// calls build their own Vm; the operand stack, pc, and cached memory belong
// exclusively to this activation.
type Vm struct {
	instance *Instance
	code     *Code
	memory   *Memory
	funcType *FunctionType
	ctx      *ExecutionContext
	stack    operandStack
	pc       uint32
}

func newVm(instance *Instance, funcIdx uint32, ctx *ExecutionContext) *Vm {
	return &Vm{
		instance: instance,
		code:     instance.Module.Code(funcIdx),
		memory:   instance.Memory,
		funcType: instance.Module.FunctionType(funcIdx),
		ctx:      ctx,
	}
}

// init sizes the stack from the validated code and lays down the locals
// region: the arguments first, then zero-initialized locals.
func (vm *Vm) init(args []Value) {
	numInputs := uint32(len(vm.funcType.ParamTypes))
	vm.stack = newOperandStack(
		numInputs + vm.code.LocalCount + vm.code.MaxStackHeight)
	vm.stack.data = append(vm.stack.data, args...)
	vm.stack.data = vm.stack.data[:numInputs+vm.code.LocalCount]
	vm.pc = 0
}

// Rewritten code is validated, so immediate fetches cannot run off the end
// of the body; the checks live in the parser-facing Cursor instead.

func (vm *Vm) nextByte() byte {
	b := vm.code.Body[vm.pc]
	vm.pc++
	return b
}

func (vm *Vm) nextUint32() uint32 {
	v := binary.LittleEndian.Uint32(vm.code.Body[vm.pc:])
	vm.pc += 4
	return v
}

func (vm *Vm) nextUint64() uint64 {
	v := binary.LittleEndian.Uint64(vm.code.Body[vm.pc:])
	vm.pc += 8
	return v
}

// run drives the dispatch loop until the structural end of the body or a
// trap. On normal exit the operand region holds exactly the function's
// results.
func (vm *Vm) run() ExecutionResult {
	bodyLen := uint32(len(vm.code.Body))
	for vm.pc < bodyLen {
		if err := vm.executeInstruction(); err != nil {
			return TrapResult(err)
		}
	}
	if len(vm.funcType.ResultTypes) == 1 {
		return ValueResult(*vm.stack.top())
	}
	return VoidResult()
}

func (vm *Vm) executeInstruction() error {
	op := opcode(vm.nextByte())
	var err error
	// Using a switch instead of a map of opcode -> Handler is significantly
	// faster.
	switch op {
	case unreachable:
		err = errUnreachable
	case nop, block, loop:
		// Rewriting flattened structured control flow into branch immediates,
		// so these carry nothing at run time.
	case ifOp:
		elseOffset := vm.nextUint32()
		if vm.stack.popI32() == 0 {
			vm.pc = elseOffset
		}
	case elseOp:
		// Reached only by falling out of the then-arm; skip past the end.
		vm.pc = vm.nextUint32()
	case end:
		// Structural marker. The final end takes pc to the body length and
		// the run loop exits.
	case br:
		vm.branch(vm.nextUint32())
	case brIf:
		arity := vm.nextUint32()
		if vm.stack.popI32() != 0 {
			vm.branch(arity)
		} else {
			vm.pc += BranchImmediateSize
		}
	case brTable:
		vm.handleBrTable()
	case returnOp:
		vm.branch(vm.nextUint32())
	case call:
		funcIdx := vm.nextUint32()
		err = vm.invokeFunction(vm.instance, funcIdx)
	case callIndirect:
		err = vm.handleCallIndirect()
	case dropOp:
		vm.stack.pop()
	case selectOp:
		vm.handleSelect()
	case localGet:
		vm.stack.push(*vm.stack.local(vm.nextUint32()))
	case localSet:
		*vm.stack.local(vm.nextUint32()) = vm.stack.pop()
	case localTee:
		*vm.stack.local(vm.nextUint32()) = *vm.stack.top()
	case globalGet:
		vm.stack.push(vm.instance.global(vm.nextUint32()).Val)
	case globalSet:
		vm.instance.global(vm.nextUint32()).Val = vm.stack.pop()
	case i32Load:
		err = handleLoad(vm, vm.stack.pushI32, (*Memory).loadUint32, uint32ToInt32)
	case i64Load:
		err = handleLoad(vm, vm.stack.pushI64, (*Memory).loadUint64, uint64ToInt64)
	case f32Load:
		err = handleLoad(vm, vm.stack.pushF32, (*Memory).loadUint32, math.Float32frombits)
	case f64Load:
		err = handleLoad(vm, vm.stack.pushF64, (*Memory).loadUint64, math.Float64frombits)
	case i32Load8S:
		err = handleLoad(vm, vm.stack.pushI32, (*Memory).loadByte, signExtend8To32)
	case i32Load8U:
		err = handleLoad(vm, vm.stack.pushI32, (*Memory).loadByte, zeroExtend8To32)
	case i32Load16S:
		err = handleLoad(vm, vm.stack.pushI32, (*Memory).loadUint16, signExtend16To32)
	case i32Load16U:
		err = handleLoad(vm, vm.stack.pushI32, (*Memory).loadUint16, zeroExtend16To32)
	case i64Load8S:
		err = handleLoad(vm, vm.stack.pushI64, (*Memory).loadByte, signExtend8To64)
	case i64Load8U:
		err = handleLoad(vm, vm.stack.pushI64, (*Memory).loadByte, zeroExtend8To64)
	case i64Load16S:
		err = handleLoad(vm, vm.stack.pushI64, (*Memory).loadUint16, signExtend16To64)
	case i64Load16U:
		err = handleLoad(vm, vm.stack.pushI64, (*Memory).loadUint16, zeroExtend16To64)
	case i64Load32S:
		err = handleLoad(vm, vm.stack.pushI64, (*Memory).loadUint32, signExtend32To64)
	case i64Load32U:
		err = handleLoad(vm, vm.stack.pushI64, (*Memory).loadUint32, zeroExtend32To64)
	case i32Store:
		err = handleStore(vm, uint32(vm.stack.popI32()), (*Memory).storeUint32)
	case i64Store:
		err = handleStore(vm, uint64(vm.stack.popI64()), (*Memory).storeUint64)
	case f32Store:
		err = handleStore(vm, math.Float32bits(vm.stack.popF32()), (*Memory).storeUint32)
	case f64Store:
		err = handleStore(vm, math.Float64bits(vm.stack.popF64()), (*Memory).storeUint64)
	case i32Store8:
		err = handleStore(vm, byte(vm.stack.popI32()), (*Memory).storeByte)
	case i32Store16:
		err = handleStore(vm, uint16(vm.stack.popI32()), (*Memory).storeUint16)
	case i64Store8:
		err = handleStore(vm, byte(vm.stack.popI64()), (*Memory).storeByte)
	case i64Store16:
		err = handleStore(vm, uint16(vm.stack.popI64()), (*Memory).storeUint16)
	case i64Store32:
		err = handleStore(vm, uint32(vm.stack.popI64()), (*Memory).storeUint32)
	case memorySize:
		vm.stack.pushI32(vm.memory.Size())
	case memoryGrow:
		vm.stack.pushI32(vm.memory.Grow(vm.stack.popI32()))
	case i32Const:
		vm.stack.pushI32(int32(vm.nextUint32()))
	case i64Const:
		vm.stack.pushI64(int64(vm.nextUint64()))
	case f32Const:
		vm.stack.pushF32(math.Float32frombits(vm.nextUint32()))
	case f64Const:
		vm.stack.pushF64(math.Float64frombits(vm.nextUint64()))
	case i32Eqz:
		vm.stack.pushI32(boolToInt32(vm.stack.popI32() == 0))
	case i32Eq:
		vm.handleBinaryBoolInt32(equal)
	case i32Ne:
		vm.handleBinaryBoolInt32(notEqual)
	case i32LtS:
		vm.handleBinaryBoolInt32(lessThan)
	case i32LtU:
		vm.handleBinaryBoolInt32(lessThanU32)
	case i32GtS:
		vm.handleBinaryBoolInt32(greaterThan)
	case i32GtU:
		vm.handleBinaryBoolInt32(greaterThanU32)
	case i32LeS:
		vm.handleBinaryBoolInt32(lessOrEqual)
	case i32LeU:
		vm.handleBinaryBoolInt32(lessOrEqualU32)
	case i32GeS:
		vm.handleBinaryBoolInt32(greaterOrEqual)
	case i32GeU:
		vm.handleBinaryBoolInt32(greaterOrEqualU32)
	case i64Eqz:
		vm.stack.pushI32(boolToInt32(vm.stack.popI64() == 0))
	case i64Eq:
		vm.handleBinaryBoolInt64(equal)
	case i64Ne:
		vm.handleBinaryBoolInt64(notEqual)
	case i64LtS:
		vm.handleBinaryBoolInt64(lessThan)
	case i64LtU:
		vm.handleBinaryBoolInt64(lessThanU64)
	case i64GtS:
		vm.handleBinaryBoolInt64(greaterThan)
	case i64GtU:
		vm.handleBinaryBoolInt64(greaterThanU64)
	case i64LeS:
		vm.handleBinaryBoolInt64(lessOrEqual)
	case i64LeU:
		vm.handleBinaryBoolInt64(lessOrEqualU64)
	case i64GeS:
		vm.handleBinaryBoolInt64(greaterOrEqual)
	case i64GeU:
		vm.handleBinaryBoolInt64(greaterOrEqualU64)
	case f32Eq:
		vm.handleBinaryBoolFloat32(equal)
	case f32Ne:
		vm.handleBinaryBoolFloat32(notEqual)
	case f32Lt:
		vm.handleBinaryBoolFloat32(lessThan)
	case f32Gt:
		vm.handleBinaryBoolFloat32(greaterThan)
	case f32Le:
		vm.handleBinaryBoolFloat32(lessOrEqual)
	case f32Ge:
		vm.handleBinaryBoolFloat32(greaterOrEqual)
	case f64Eq:
		vm.handleBinaryBoolFloat64(equal)
	case f64Ne:
		vm.handleBinaryBoolFloat64(notEqual)
	case f64Lt:
		vm.handleBinaryBoolFloat64(lessThan)
	case f64Gt:
		vm.handleBinaryBoolFloat64(greaterThan)
	case f64Le:
		vm.handleBinaryBoolFloat64(lessOrEqual)
	case f64Ge:
		vm.handleBinaryBoolFloat64(greaterOrEqual)
	case i32Clz:
		vm.stack.pushI32(clz32(vm.stack.popI32()))
	case i32Ctz:
		vm.stack.pushI32(ctz32(vm.stack.popI32()))
	case i32Popcnt:
		vm.stack.pushI32(popcnt32(vm.stack.popI32()))
	case i32Add:
		vm.handleBinaryInt32(add)
	case i32Sub:
		vm.handleBinaryInt32(sub)
	case i32Mul:
		vm.handleBinaryInt32(mul)
	case i32DivS:
		err = vm.handleBinarySafeInt32(divS32)
	case i32DivU:
		err = vm.handleBinarySafeInt32(divU32)
	case i32RemS:
		err = vm.handleBinarySafeInt32(remS32)
	case i32RemU:
		err = vm.handleBinarySafeInt32(remU32)
	case i32And:
		vm.handleBinaryInt32(and)
	case i32Or:
		vm.handleBinaryInt32(or)
	case i32Xor:
		vm.handleBinaryInt32(xor)
	case i32Shl:
		vm.handleBinaryInt32(shl32)
	case i32ShrS:
		vm.handleBinaryInt32(shrS32)
	case i32ShrU:
		vm.handleBinaryInt32(shrU32)
	case i32Rotl:
		vm.handleBinaryInt32(rotl32)
	case i32Rotr:
		vm.handleBinaryInt32(rotr32)
	case i64Clz:
		vm.stack.pushI64(clz64(vm.stack.popI64()))
	case i64Ctz:
		vm.stack.pushI64(ctz64(vm.stack.popI64()))
	case i64Popcnt:
		vm.stack.pushI64(popcnt64(vm.stack.popI64()))
	case i64Add:
		vm.handleBinaryInt64(add)
	case i64Sub:
		vm.handleBinaryInt64(sub)
	case i64Mul:
		vm.handleBinaryInt64(mul)
	case i64DivS:
		err = vm.handleBinarySafeInt64(divS64)
	case i64DivU:
		err = vm.handleBinarySafeInt64(divU64)
	case i64RemS:
		err = vm.handleBinarySafeInt64(remS64)
	case i64RemU:
		err = vm.handleBinarySafeInt64(remU64)
	case i64And:
		vm.handleBinaryInt64(and)
	case i64Or:
		vm.handleBinaryInt64(or)
	case i64Xor:
		vm.handleBinaryInt64(xor)
	case i64Shl:
		vm.handleBinaryInt64(shl64)
	case i64ShrS:
		vm.handleBinaryInt64(shrS64)
	case i64ShrU:
		vm.handleBinaryInt64(shrU64)
	case i64Rotl:
		vm.handleBinaryInt64(rotl64)
	case i64Rotr:
		vm.handleBinaryInt64(rotr64)
	case f32Abs:
		vm.stack.pushF32(abs(vm.stack.popF32()))
	case f32Neg:
		vm.stack.pushF32(-vm.stack.popF32())
	case f32Ceil:
		vm.stack.pushF32(ceil(vm.stack.popF32()))
	case f32Floor:
		vm.stack.pushF32(floor(vm.stack.popF32()))
	case f32Trunc:
		vm.stack.pushF32(trunc(vm.stack.popF32()))
	case f32Nearest:
		vm.stack.pushF32(nearest(vm.stack.popF32()))
	case f32Sqrt:
		vm.stack.pushF32(sqrt(vm.stack.popF32()))
	case f32Add:
		vm.handleBinaryFloat32(add[float32])
	case f32Sub:
		vm.handleBinaryFloat32(sub[float32])
	case f32Mul:
		vm.handleBinaryFloat32(mul[float32])
	case f32Div:
		vm.handleBinaryFloat32(div[float32])
	case f32Min:
		vm.handleBinaryFloat32(wasmMin[float32])
	case f32Max:
		vm.handleBinaryFloat32(wasmMax[float32])
	case f32Copysign:
		vm.handleBinaryFloat32(copysign[float32])
	case f64Abs:
		vm.stack.pushF64(abs(vm.stack.popF64()))
	case f64Neg:
		vm.stack.pushF64(-vm.stack.popF64())
	case f64Ceil:
		vm.stack.pushF64(ceil(vm.stack.popF64()))
	case f64Floor:
		vm.stack.pushF64(floor(vm.stack.popF64()))
	case f64Trunc:
		vm.stack.pushF64(trunc(vm.stack.popF64()))
	case f64Nearest:
		vm.stack.pushF64(nearest(vm.stack.popF64()))
	case f64Sqrt:
		vm.stack.pushF64(sqrt(vm.stack.popF64()))
	case f64Add:
		vm.handleBinaryFloat64(add[float64])
	case f64Sub:
		vm.handleBinaryFloat64(sub[float64])
	case f64Mul:
		vm.handleBinaryFloat64(mul[float64])
	case f64Div:
		vm.handleBinaryFloat64(div[float64])
	case f64Min:
		vm.handleBinaryFloat64(wasmMin[float64])
	case f64Max:
		vm.handleBinaryFloat64(wasmMax[float64])
	case f64Copysign:
		vm.handleBinaryFloat64(copysign[float64])
	case i32WrapI64:
		vm.stack.pushI32(wrapI64ToI32(vm.stack.popI64()))
	case i32TruncF32S:
		err = vm.handleUnarySafeFloat32(truncF32SToI32)
	case i32TruncF32U:
		err = vm.handleUnarySafeFloat32(truncF32UToI32)
	case i32TruncF64S:
		err = vm.handleUnarySafeFloat64(truncF64SToI32)
	case i32TruncF64U:
		err = vm.handleUnarySafeFloat64(truncF64UToI32)
	case i64ExtendI32S:
		vm.stack.pushI64(extendI32SToI64(vm.stack.popI32()))
	case i64ExtendI32U:
		vm.stack.pushI64(extendI32UToI64(vm.stack.popI32()))
	case i64TruncF32S:
		err = vm.handleTruncFloat32Int64(truncF32SToI64)
	case i64TruncF32U:
		err = vm.handleTruncFloat32Int64(truncF32UToI64)
	case i64TruncF64S:
		err = vm.handleTruncFloat64Int64(truncF64SToI64)
	case i64TruncF64U:
		err = vm.handleTruncFloat64Int64(truncF64UToI64)
	case f32ConvertI32S:
		vm.stack.pushF32(convertI32SToF32(vm.stack.popI32()))
	case f32ConvertI32U:
		vm.stack.pushF32(convertI32UToF32(vm.stack.popI32()))
	case f32ConvertI64S:
		vm.stack.pushF32(convertI64SToF32(vm.stack.popI64()))
	case f32ConvertI64U:
		vm.stack.pushF32(convertI64UToF32(vm.stack.popI64()))
	case f32DemoteF64:
		vm.stack.pushF32(demoteF64ToF32(vm.stack.popF64()))
	case f64ConvertI32S:
		vm.stack.pushF64(convertI32SToF64(vm.stack.popI32()))
	case f64ConvertI32U:
		vm.stack.pushF64(convertI32UToF64(vm.stack.popI32()))
	case f64ConvertI64S:
		vm.stack.pushF64(convertI64SToF64(vm.stack.popI64()))
	case f64ConvertI64U:
		vm.stack.pushF64(convertI64UToF64(vm.stack.popI64()))
	case f64PromoteF32:
		vm.stack.pushF64(promoteF32ToF64(vm.stack.popF32()))
	case i32ReinterpretF32:
		vm.stack.pushI32(reinterpretF32ToI32(vm.stack.popF32()))
	case i64ReinterpretF64:
		vm.stack.pushI64(reinterpretF64ToI64(vm.stack.popF64()))
	case f32ReinterpretI32:
		vm.stack.pushF32(reinterpretI32ToF32(vm.stack.popI32()))
	case f64ReinterpretI64:
		vm.stack.pushF64(reinterpretI64ToF64(vm.stack.popI64()))
	default:
		err = fmt.Errorf("unknown opcode %d", op)
	}
	return err
}

// branch consumes one branch immediate: jump to the code offset, then
// restore the target label's stack height, carrying the top value across
// when the label has a result.
func (vm *Vm) branch(arity uint32) {
	codeOffset := vm.nextUint32()
	stackDrop := vm.nextUint32()
	vm.pc = codeOffset
	vm.stack.branch(arity, stackDrop)
}

func (vm *Vm) handleBrTable() {
	tableSize := vm.nextUint32()
	arity := vm.nextUint32()
	// The immediate vector has tableSize entries followed by the default
	// label; an out-of-range index selects the default.
	entry := uint32(vm.stack.popI32())
	if entry > tableSize {
		entry = tableSize
	}
	vm.pc += entry * BranchImmediateSize
	vm.branch(arity)
}

func (vm *Vm) handleSelect() {
	condition := vm.stack.popI32()
	b := vm.stack.pop()
	a := vm.stack.pop()
	if condition != 0 {
		vm.stack.push(a)
	} else {
		vm.stack.push(b)
	}
}

// invokeFunction calls funcIdx of callee (which is this Vm's own instance
// for plain calls, and may be another one for indirect calls). The arguments
// stay on this stack and are passed as a view; on success they are replaced
// by the result, on trap they are left in place and the trap propagates.
func (vm *Vm) invokeFunction(callee *Instance, funcIdx uint32) error {
	funcType := callee.Module.FunctionType(funcIdx)
	numArgs := len(funcType.ParamTypes)
	args := vm.stack.topSlice(numArgs)

	result := ExecuteWithContext(callee, funcIdx, args, vm.ctx)
	if result.Trapped() {
		return result.TrapCause()
	}

	vm.stack.shrink(numArgs)
	if v, ok := result.Value(); ok {
		vm.stack.push(v)
	}
	return nil
}

func (vm *Vm) handleCallIndirect() error {
	typeIdx := vm.nextUint32()
	elemIdx := uint32(vm.stack.popI32())

	element, err := vm.instance.Table.Get(elemIdx)
	if err != nil {
		return err
	}
	if element.Instance == nil {
		return errUninitializedElement
	}

	// The declared type lives in the caller's module; the actual one in the
	// callee's, which may be a different instance entirely.
	expectedType := &vm.instance.Module.TypeSec[typeIdx]
	actualType := element.Instance.Module.FunctionType(element.FuncIdx)
	if !actualType.Equal(expectedType) {
		return errIndirectCallTypeMismatch
	}

	return vm.invokeFunction(element.Instance, element.FuncIdx)
}

func (vm *Vm) handleBinaryInt32(op func(a, b int32) int32) {
	b := vm.stack.popI32()
	a := vm.stack.popI32()
	vm.stack.pushI32(op(a, b))
}

func (vm *Vm) handleBinaryInt64(op func(a, b int64) int64) {
	b := vm.stack.popI64()
	a := vm.stack.popI64()
	vm.stack.pushI64(op(a, b))
}

func (vm *Vm) handleBinaryFloat32(op func(a, b float32) float32) {
	b := vm.stack.popF32()
	a := vm.stack.popF32()
	vm.stack.pushF32(op(a, b))
}

func (vm *Vm) handleBinaryFloat64(op func(a, b float64) float64) {
	b := vm.stack.popF64()
	a := vm.stack.popF64()
	vm.stack.pushF64(op(a, b))
}

func (vm *Vm) handleBinarySafeInt32(op func(a, b int32) (int32, error)) error {
	b := vm.stack.popI32()
	a := vm.stack.popI32()
	result, err := op(a, b)
	if err != nil {
		return err
	}
	vm.stack.pushI32(result)
	return nil
}

func (vm *Vm) handleBinarySafeInt64(op func(a, b int64) (int64, error)) error {
	b := vm.stack.popI64()
	a := vm.stack.popI64()
	result, err := op(a, b)
	if err != nil {
		return err
	}
	vm.stack.pushI64(result)
	return nil
}

func (vm *Vm) handleBinaryBoolInt32(op func(a, b int32) bool) {
	b := vm.stack.popI32()
	a := vm.stack.popI32()
	vm.stack.pushI32(boolToInt32(op(a, b)))
}

func (vm *Vm) handleBinaryBoolInt64(op func(a, b int64) bool) {
	b := vm.stack.popI64()
	a := vm.stack.popI64()
	vm.stack.pushI32(boolToInt32(op(a, b)))
}

func (vm *Vm) handleBinaryBoolFloat32(op func(a, b float32) bool) {
	b := vm.stack.popF32()
	a := vm.stack.popF32()
	vm.stack.pushI32(boolToInt32(op(a, b)))
}

func (vm *Vm) handleBinaryBoolFloat64(op func(a, b float64) bool) {
	b := vm.stack.popF64()
	a := vm.stack.popF64()
	vm.stack.pushI32(boolToInt32(op(a, b)))
}

func (vm *Vm) handleUnarySafeFloat32(op func(a float32) (int32, error)) error {
	a := vm.stack.popF32()
	result, err := op(a)
	if err != nil {
		return err
	}
	vm.stack.pushI32(result)
	return nil
}

func (vm *Vm) handleUnarySafeFloat64(op func(a float64) (int32, error)) error {
	a := vm.stack.popF64()
	result, err := op(a)
	if err != nil {
		return err
	}
	vm.stack.pushI32(result)
	return nil
}

func (vm *Vm) handleTruncFloat32Int64(op func(a float32) (int64, error)) error {
	a := vm.stack.popF32()
	result, err := op(a)
	if err != nil {
		return err
	}
	vm.stack.pushI64(result)
	return nil
}

func (vm *Vm) handleTruncFloat64Int64(op func(a float64) (int64, error)) error {
	a := vm.stack.popF64()
	result, err := op(a)
	if err != nil {
		return err
	}
	vm.stack.pushI64(result)
	return nil
}

// handleLoad pops the address, adds the static offset in 64-bit arithmetic
// so wraparound is caught by the bounds check, reads little-endian, and
// pushes the extended result.
func handleLoad[T any, R any](
	vm *Vm,
	push func(R),
	load func(*Memory, uint64) (T, error),
	convert func(T) R,
) error {
	offset := vm.nextUint32()
	address := uint32(vm.stack.popI32())
	v, err := load(vm.memory, uint64(address)+uint64(offset))
	if err != nil {
		return err
	}
	push(convert(v))
	return nil
}

// handleStore receives the already-popped, truncated value (note the operand
// order: value above address) and writes it little-endian.
func handleStore[T any](
	vm *Vm,
	val T,
	store func(*Memory, uint64, T) error,
) error {
	offset := vm.nextUint32()
	address := uint32(vm.stack.popI32())
	return store(vm.memory, uint64(address)+uint64(offset), val)
}
