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

// Code is one function body after the parser rewrite. The rewrite
// canonicalizes every immediate to fixed-width little-endian and replaces
// structural control flow with absolute branch targets, so the interpreter
// never decodes LEB128 and never walks a label stack:
//
//   - i32.const carries 4 bytes, i64.const 8; f32/f64.const their bit
//     patterns.
//   - local/global indices, call targets, call_indirect type indices, and
//     load/store static offsets are uint32 (alignment hints are discarded).
//   - if carries the code offset of its else arm (or of the end-skip point
//     when there is no else); else carries the offset just past the matching
//     end.
//   - br, br_if, and return carry an arity followed by one branch immediate;
//     br_table carries a table size, an arity, and tableSize+1 branch
//     immediates with the default label last.
//
// A branch immediate is (codeOffset, stackDrop), two uint32 —
// BranchImmediateSize bytes. codeOffset is where execution resumes;
// stackDrop is how many operand cells to discard below the preserved result,
// both computed by the validator. Any parser producing Code must honor this
// contract.
type Code struct {
	Body []byte

	// LocalCount is the number of non-parameter locals.
	LocalCount uint32

	// MaxStackHeight is the validator-computed peak of the operand region,
	// used to size the operand stack exactly.
	MaxStackHeight uint32
}

// ImportKind discriminates the four import namespaces.
type ImportKind byte

const (
	FunctionImportKind ImportKind = 0x00
	TableImportKind    ImportKind = 0x01
	MemoryImportKind   ImportKind = 0x02
	GlobalImportKind   ImportKind = 0x03
)

// Import is the decoded shape of one import. Resolution happens at
// instantiation time, outside this package.
type Import struct {
	ModuleName string
	Name       string
	Kind       ImportKind

	// TypeIndex is set for function imports.
	TypeIndex uint32

	// Limits is set for table and memory imports.
	Limits *Limits

	// GlobalType is set for global imports.
	GlobalType *GlobalType
}

// ExportKind discriminates the four export namespaces.
type ExportKind byte

const (
	FunctionExportKind ExportKind = 0x00
	TableExportKind    ExportKind = 0x01
	MemoryExportKind   ExportKind = 0x02
	GlobalExportKind   ExportKind = 0x03
)

// Export names an index in one of the module's index spaces.
type Export struct {
	Name  string
	Kind  ExportKind
	Index uint32
}

// Module is the read-only decoded form of a validated module, the shape an
// external binary parser must produce. It is immutable for the lifetime of
// every instance created from it.
//
// The function index space lists imported functions first, then
// module-defined ones; FuncSec and CodeSec are parallel and cover only the
// latter.
type Module struct {
	TypeSec   []FunctionType
	ImportSec []Import
	FuncSec   []uint32
	TableSec  *Limits
	MemorySec *Limits
	GlobalSec []GlobalType
	ExportSec []Export
	CodeSec   []Code

	// ImportedFunctionTypes holds the type index of each imported function,
	// in import order.
	ImportedFunctionTypes []uint32
}

func (m *Module) NumImportedFunctions() uint32 {
	return uint32(len(m.ImportedFunctionTypes))
}

// FunctionType returns the signature of the function at funcIdx in the
// module's function index space.
func (m *Module) FunctionType(funcIdx uint32) *FunctionType {
	if n := m.NumImportedFunctions(); funcIdx < n {
		return &m.TypeSec[m.ImportedFunctionTypes[funcIdx]]
	} else {
		return &m.TypeSec[m.FuncSec[funcIdx-n]]
	}
}

// Code returns the rewritten body of the module-defined function at funcIdx.
// Passing an imported function's index is a caller bug.
func (m *Module) Code(funcIdx uint32) *Code {
	return &m.CodeSec[funcIdx-m.NumImportedFunctions()]
}
