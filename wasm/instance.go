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

// GlobalVariable is one mutable global cell together with its type. Imported
// globals are shared by pointer, so a write through one instance is visible
// to every importer.
type GlobalVariable struct {
	Val  Value
	Type GlobalType
}

// ImportedFunction is a resolved function import: the callable plus its
// signature, so call sites know how many cells to pass and receive.
type ImportedFunction struct {
	Fn          ExecuteFunction
	ParamTypes  []ValueType
	ResultTypes []ValueType
}

// Instance is the runtime counterpart of a Module. It owns its memory,
// table, and globals unless they were resolved from another instance's
// exports, in which case the pointers are borrowed and teardown leaves them
// alone. Global index space: imported globals first, then module-defined
// ones; function index space likewise.
type Instance struct {
	Module *Module

	Memory *Memory
	Table  *Table

	// Globals holds the module-defined globals.
	Globals []GlobalVariable

	ImportedFunctions []ImportedFunction
	ImportedGlobals   []*GlobalVariable
}

// NewInstance allocates the runtime structures a module declares: a
// min-sized memory and table and zero-valued globals. Import resolution,
// segment initialization, and the start function are the instantiation
// step's job and happen outside this package; embedders populate the
// Imported* slices and memory/table contents before executing.
func NewInstance(module *Module) *Instance {
	return NewInstanceWithConfig(module, DefaultConfig())
}

func NewInstanceWithConfig(module *Module, config Config) *Instance {
	instance := &Instance{Module: module}
	if module.MemorySec != nil {
		instance.Memory = NewMemory(*module.MemorySec, config.MemoryPagesLimit)
	}
	if module.TableSec != nil {
		instance.Table = NewTable(*module.TableSec)
	}
	if n := len(module.GlobalSec); n > 0 {
		instance.Globals = make([]GlobalVariable, n)
		for i, globalType := range module.GlobalSec {
			instance.Globals[i].Type = globalType
		}
	}
	return instance
}

// global resolves a global index against the imported-then-defined index
// space.
func (inst *Instance) global(index uint32) *GlobalVariable {
	if n := uint32(len(inst.ImportedGlobals)); index < n {
		return inst.ImportedGlobals[index]
	} else {
		return &inst.Globals[index-n]
	}
}
