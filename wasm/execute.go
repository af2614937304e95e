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
	"fmt"

	"go.uber.org/zap"
)

// ExecutionResult is the outcome of one invocation: a trap, success with no
// value, or success with one value. Traps are values, not panics; they
// propagate unchanged through nested calls.
type ExecutionResult struct {
	trapCause error
	value     Value
	hasValue  bool
}

func TrapResult(cause error) ExecutionResult {
	return ExecutionResult{trapCause: cause}
}

func VoidResult() ExecutionResult {
	return ExecutionResult{}
}

func ValueResult(v Value) ExecutionResult {
	return ExecutionResult{value: v, hasValue: true}
}

func (r ExecutionResult) Trapped() bool {
	return r.trapCause != nil
}

// TrapCause returns the trap's cause, or nil on success.
func (r ExecutionResult) TrapCause() error {
	return r.trapCause
}

func (r ExecutionResult) HasValue() bool {
	return r.hasValue
}

// Value returns the produced value, if any.
func (r ExecutionResult) Value() (Value, bool) {
	return r.value, r.hasValue
}

// ExecuteFunction is the polymorphic callable behind every function index:
// either a Wasm function of some instance or a host function. Args is a view
// of the caller's operand cells, one per parameter; the result carries 0 or
// 1 values per the callee's signature.
type ExecuteFunction interface {
	Call(caller *Instance, args []Value, ctx *ExecutionContext) ExecutionResult
}

// HostFunc is the embedder-side function shape. hostCtx is the closure state
// registered alongside the function; caller is the instance whose code
// invoked it. A host function may re-enter the interpreter with the same
// ExecutionContext.
type HostFunc func(hostCtx any, caller *Instance, args []Value, ctx *ExecutionContext) ExecutionResult

// HostFunction adapts a HostFunc to ExecuteFunction.
type HostFunction struct {
	Fn          HostFunc
	Ctx         any
	ParamTypes  []ValueType
	ResultTypes []ValueType
}

func (h *HostFunction) Call(
	caller *Instance,
	args []Value,
	ctx *ExecutionContext,
) (res ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				res = TrapResult(v)
			default:
				res = TrapResult(fmt.Errorf("host function panic: %v", v))
			}
		}
	}()

	return h.Fn(h.Ctx, caller, args, ctx)
}

// moduleFunction binds a Wasm function of a specific instance so it can be
// imported by another instance or planted in a table.
type moduleFunction struct {
	instance *Instance
	funcIdx  uint32
}

// NewModuleFunction returns an ExecuteFunction invoking funcIdx of instance.
func NewModuleFunction(instance *Instance, funcIdx uint32) ExecuteFunction {
	return &moduleFunction{instance: instance, funcIdx: funcIdx}
}

func (f *moduleFunction) Call(
	_ *Instance,
	args []Value,
	ctx *ExecutionContext,
) ExecutionResult {
	return ExecuteWithContext(f.instance, f.funcIdx, args, ctx)
}

// Execute runs the function at funcIdx of instance with a fresh default
// ExecutionContext. The caller is responsible for a valid funcIdx and for
// args matching the function's parameter count; both are embedder bugs, not
// traps.
func Execute(instance *Instance, funcIdx uint32, args []Value) ExecutionResult {
	result := ExecuteWithContext(instance, funcIdx, args, NewExecutionContext())
	if result.Trapped() {
		Logger().Debug("execution trapped",
			zap.Uint32("funcIdx", funcIdx),
			zap.Error(result.TrapCause()))
	}
	return result
}

// ExecuteWithContext is the full entry point, reusing the caller's context so
// nested and host-re-entrant invocations share one call-depth budget.
func ExecuteWithContext(
	instance *Instance,
	funcIdx uint32,
	args []Value,
	ctx *ExecutionContext,
) ExecutionResult {
	// The depth check happens before any stack is built, and the scoped
	// decrement runs on every exit path, traps included.
	if err := ctx.enter(); err != nil {
		return TrapResult(err)
	}
	defer ctx.leave()

	// Imported functions dispatch straight to their callable; no Vm exists
	// for them.
	if imported := instance.ImportedFunctions; funcIdx < uint32(len(imported)) {
		return imported[funcIdx].Fn.Call(instance, args, ctx)
	}

	vm := newVm(instance, funcIdx, ctx)
	vm.init(args)
	return vm.run()
}
