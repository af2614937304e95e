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

var (
	errUndefinedElement     = errors.New("undefined element")
	errUninitializedElement = errors.New("uninitialized element")
)

// TableElement is one funcref slot. A nil Instance marks an uninitialized
// slot. SharedInstance pins the module that wrote the element: when an
// instantiation traps after mutating a table it imported, the target function
// must survive the writing instance being torn down.
type TableElement struct {
	Instance       *Instance
	FuncIdx        uint32
	SharedInstance *Instance
}

// Table represents a function-reference table instance. Like memory, a table
// is either owned or borrowed from the instance that exported it.
type Table struct {
	elements []TableElement
	limits   Limits
}

// NewTable creates a table of limits.Min uninitialized elements.
func NewTable(limits Limits) *Table {
	return &Table{
		elements: make([]TableElement, limits.Min),
		limits:   limits,
	}
}

func (t *Table) Size() uint32 {
	return uint32(len(t.elements))
}

func (t *Table) Limits() Limits {
	return t.limits
}

// Get returns the element at the given index.
func (t *Table) Get(index uint32) (TableElement, error) {
	if index >= t.Size() {
		return TableElement{}, errUndefinedElement
	}
	return t.elements[index], nil
}

// Set places an element at the given index. Instantiation writes element
// segments through this; host embeddings may overwrite slots later.
func (t *Table) Set(index uint32, element TableElement) error {
	if index >= t.Size() {
		return errUndefinedElement
	}
	t.elements[index] = element
	return nil
}
