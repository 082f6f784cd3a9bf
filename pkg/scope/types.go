// Copyright 2025 Sri Panyam
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scope resolves a set of parsed proto files into an immutable,
// fully linked RootScope: every field's type reference becomes a pointer to
// the MessageScope or EnumScope it names, instead of a bare dotted path.
//
// Building happens in two phases, mirroring how a compiler's symbol table
// is conventionally built: a mutable Builder accumulates files and
// declarations as they're parsed (order-independent — a message may
// reference a type declared later in the same file, or in a file not yet
// added), then Resolve walks the accumulated tree once, binding every type
// reference and producing a read-only RootScope safe to share across
// concurrent emitters.
package scope

import "github.com/nilproto/protots/pkg/ast"

// Type is the closed set of resolved field types: every reference a field
// can have once resolution has run.
type Type interface {
	isType()
}

// ScalarType is a resolved reference to one of proto3's built-in scalars.
type ScalarType struct {
	Kind ast.ScalarKind
}

func (ScalarType) isType() {}

// MessageType is a resolved reference to a message declaration.
type MessageType struct {
	Message *MessageScope
}

func (MessageType) isType() {}

// EnumType is a resolved reference to an enum declaration.
type EnumType struct {
	Enum *EnumScope
}

func (EnumType) isType() {}

// RepeatedType wraps another Type in a `repeated` field.
type RepeatedType struct {
	Element Type
}

func (RepeatedType) isType() {}

// MapType is a resolved `map<key, value>` field. Key is always a ScalarType
// of a type legal as a proto3 map key (resolution rejects the rest).
type MapType struct {
	Key   Type
	Value Type
}

func (MapType) isType() {}

// Field is a resolved message field: a plain field if OneOf is nil, or one
// option of a oneof group otherwise.
type Field struct {
	Name     string
	JSONName string
	Tag      int
	Type     Type
	OneOf    *OneOfGroup
}

// OneOfGroup is a resolved proto3 oneof: its Fields are also reachable
// through their owning MessageScope.Fields, which lists them after the
// message's plain fields, grouped by oneof.
type OneOfGroup struct {
	Name   string
	Fields []*Field
}

// MessageScope is a fully resolved message declaration.
type MessageScope struct {
	ID             int
	Name           string
	ProtoPath      []string // package segments + enclosing message names + Name
	File           *FileScope
	Parent         *MessageScope // nil for a top-level message
	Fields         []*Field
	OneOfs         []*OneOfGroup
	NestedMessages []*MessageScope
	NestedEnums    []*EnumScope
}

// QualifiedName returns the dotted proto name, e.g. "library.v1.Book.Author".
func (m *MessageScope) QualifiedName() string {
	return joinDotted(m.ProtoPath)
}

// EnumValue is one `NAME = number;` member of a resolved enum.
type EnumValue struct {
	Name   string
	Number int32
}

// EnumScope is a fully resolved enum declaration.
type EnumScope struct {
	ID        int
	Name      string
	ProtoPath []string
	File      *FileScope
	Parent    *MessageScope // nil for a top-level enum
	Values    []EnumValue
}

// QualifiedName returns the dotted proto name, e.g. "library.v1.Genre".
func (e *EnumScope) QualifiedName() string {
	return joinDotted(e.ProtoPath)
}

// FileScope is a fully resolved proto file: its own top-level declarations,
// plus the FileScopes it imports (already resolved themselves).
type FileScope struct {
	ID             int
	Name           string // e.g. "library/v1/book.proto"
	Package        string // dotted, e.g. "library.v1"
	Messages       []*MessageScope
	Enums          []*EnumScope
	Imports        []*FileScope
	IsWellKnown    bool
}

// RootScope is the immutable result of resolving an entire compilation: the
// input to every codegen emitter. Emitters only ever read from a RootScope,
// so one RootScope may be shared across goroutines without locking.
type RootScope struct {
	Files       []*FileScope
	AllMessages []*MessageScope
	AllEnums    []*EnumScope
}

func joinDotted(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}
