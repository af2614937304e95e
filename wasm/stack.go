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

// operandStack is one contiguous array holding, from the base up: the
// function's arguments, its zero-initialized locals, and the operand region.
// Capacity is numInputs + localCount + maxStackHeight, all known from the
// validated code, so the backing array never reallocates and argument slices
// handed to callees stay valid.
type operandStack struct {
	data []Value
}

func newOperandStack(capacity uint32) operandStack {
	return operandStack{data: make([]Value, 0, capacity)}
}

func (s *operandStack) push(v Value) {
	s.data = append(s.data, v)
}

func (s *operandStack) pushI32(v int32) {
	s.data = append(s.data, I32Value(v))
}

func (s *operandStack) pushI64(v int64) {
	s.data = append(s.data, I64Value(v))
}

func (s *operandStack) pushF32(v float32) {
	s.data = append(s.data, F32Value(v))
}

func (s *operandStack) pushF64(v float64) {
	s.data = append(s.data, F64Value(v))
}

func (s *operandStack) pop() Value {
	// Due to validation, the stack is never empty when pop is reached.
	index := len(s.data) - 1
	element := s.data[index]
	s.data = s.data[:index]
	return element
}

func (s *operandStack) popI32() int32 {
	return s.pop().I32()
}

func (s *operandStack) popI64() int64 {
	return s.pop().I64()
}

func (s *operandStack) popF32() float32 {
	return s.pop().F32()
}

func (s *operandStack) popF64() float64 {
	return s.pop().F64()
}

// top returns a reference to the topmost cell.
func (s *operandStack) top() *Value {
	return &s.data[len(s.data)-1]
}

// local returns a reference to local slot i. Locals occupy the base of the
// array, arguments first.
func (s *operandStack) local(i uint32) *Value {
	return &s.data[i]
}

func (s *operandStack) size() int {
	return len(s.data)
}

// topSlice returns a view of the top n cells. Callees read their arguments
// through this view without copying them off the caller's stack.
func (s *operandStack) topSlice(n int) []Value {
	return s.data[len(s.data)-n:]
}

// shrink discards the top n cells.
func (s *operandStack) shrink(n int) {
	s.data = s.data[:len(s.data)-n]
}

// branch applies a rewritten branch immediate to the stack: when arity is 1
// the topmost cell is the label's result and survives, and stackDrop cells
// below it are discarded; when arity is 0, the top stackDrop cells are
// discarded outright.
func (s *operandStack) branch(arity, stackDrop uint32) {
	n := len(s.data)
	if arity == 1 {
		s.data[n-1-int(stackDrop)] = s.data[n-1]
	}
	s.data = s.data[:n-int(stackDrop)]
}
