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

import "errors"

var errCallStackExhausted = errors.New("call stack exhausted")

// Config controls the resource limits applied when building instances and
// execution contexts.
type Config struct {
	// CallStackLimit bounds nested function invocations. Default:
	// CallStackLimit (2048).
	CallStackLimit int

	// MemoryPagesLimit is the hard cap on any owned memory, clamped to the
	// declared maximum and MaxMemoryPagesLimit. Default: MaxMemoryPagesLimit.
	MemoryPagesLimit uint32
}

// DefaultConfig returns a Config with the package defaults.
func DefaultConfig() Config {
	return Config{
		CallStackLimit:   CallStackLimit,
		MemoryPagesLimit: MaxMemoryPagesLimit,
	}
}

// ExecutionContext is the per-thread state shared across nested invocations:
// the call depth. A host function that re-enters the interpreter passes its
// context along so recursion through the host still counts against the
// limit. The zero value is ready to use with the default limit.
type ExecutionContext struct {
	depth int
	limit int
}

func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{limit: CallStackLimit}
}

func NewExecutionContextWithConfig(config Config) *ExecutionContext {
	return &ExecutionContext{limit: config.CallStackLimit}
}

// Depth returns the number of invocations currently on the call stack.
func (c *ExecutionContext) Depth() int {
	return c.depth
}

// enter claims one level of call depth. The matching leave must run on every
// exit path, traps included; callers pair the two with defer.
func (c *ExecutionContext) enter() error {
	limit := c.limit
	if limit == 0 {
		limit = CallStackLimit
	}
	if c.depth >= limit {
		return errCallStackExhausted
	}
	c.depth++
	return nil
}

func (c *ExecutionContext) leave() {
	c.depth--
}
