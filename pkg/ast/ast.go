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

// Package ast is the syntax tree produced by pkg/parser: an unresolved,
// purely syntactic view of a proto3 file. Type references are still bare
// dotted paths (IDPath) at this stage; pkg/scope is what turns them into
// resolved declarations.
package ast

// ScalarKind enumerates proto3's built-in scalar field types.
type ScalarKind int

const (
	Bool ScalarKind = iota
	Bytes
	Double
	Fixed32
	Fixed64
	Float
	Int32
	Int64
	SFixed32
	SFixed64
	SInt32
	SInt64
	String
	UInt32
	UInt64
)

// String implements fmt.Stringer so scalar kinds print as proto keywords.
func (k ScalarKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Bytes:
		return "bytes"
	case Double:
		return "double"
	case Fixed32:
		return "fixed32"
	case Fixed64:
		return "fixed64"
	case Float:
		return "float"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case SFixed32:
		return "sfixed32"
	case SFixed64:
		return "sfixed64"
	case SInt32:
		return "sint32"
	case SInt64:
		return "sint64"
	case String:
		return "string"
	case UInt32:
		return "uint32"
	case UInt64:
		return "uint64"
	default:
		return "unknown"
	}
}

// FieldType is the closed set of syntactic field type references a parsed
// field may carry: a scalar, a dotted path to a message/enum, a repeated
// wrapper, or a map.
type FieldType interface {
	isFieldType()
}

// Scalar is a FieldType referring to one of proto3's built-in types.
type Scalar struct {
	Kind ScalarKind
}

func (Scalar) isFieldType() {}

// IDPath is a FieldType referring to a message or enum by dotted name, as
// written in the source (e.g. "google.protobuf.Timestamp" or "Author").
// Resolution of an IDPath to a concrete declaration happens in pkg/scope.
type IDPath struct {
	Parts []string
}

func (IDPath) isFieldType() {}

// String renders the path the way it appeared in source.
func (p IDPath) String() string {
	s := ""
	for i, part := range p.Parts {
		if i > 0 {
			s += "."
		}
		s += part
	}
	return s
}

// Repeated is a FieldType wrapping another FieldType in a repeated field.
// Proto3 forbids repeated-of-repeated and repeated-of-map directly; neither
// the parser nor pkg/scope rejects them.
type Repeated struct {
	Element FieldType
}

func (Repeated) isFieldType() {}

// Map is a FieldType for a `map<key, value>` field. Key is always a Scalar
// in valid proto3 (enforced during resolution, not parsing).
type Map struct {
	Key   FieldType
	Value FieldType
}

func (Map) isFieldType() {}

// FieldDeclaration is one field inside a message or oneof.
type FieldDeclaration struct {
	Name     string
	Type     FieldType
	Tag      int
	JSONName string // explicit `[json_name = "..."]` option, empty if absent
}

// OneOfDeclaration groups alternative fields under a single proto3 oneof.
type OneOfDeclaration struct {
	Name   string
	Fields []*FieldDeclaration
}

// MessageDeclaration is a parsed `message` block. Fields, oneofs, nested
// messages and nested enums may all appear in any order in source; the
// parser preserves declaration order within each slice.
type MessageDeclaration struct {
	Name           string
	Fields         []*FieldDeclaration
	OneOfs         []*OneOfDeclaration
	NestedMessages []*MessageDeclaration
	NestedEnums    []*EnumDeclaration
}

// EnumValueDeclaration is one `NAME = number;` line inside an enum.
type EnumValueDeclaration struct {
	Name   string
	Number int32
}

// EnumDeclaration is a parsed `enum` block. Proto3 requires the first value
// to be numbered zero; neither the parser nor pkg/scope checks this.
type EnumDeclaration struct {
	Name   string
	Values []*EnumValueDeclaration
}

// Declaration is the closed set of top-level things a File may declare.
type Declaration interface {
	isDeclaration()
}

func (*MessageDeclaration) isDeclaration() {}
func (*EnumDeclaration) isDeclaration()    {}

// ImportDecl is a parsed `import "path/to/file.proto";` statement.
type ImportDecl struct {
	Path string
}

// File is the top-level result of parsing one `.proto` source file.
type File struct {
	// Name is the file's base name relative to the source root, e.g.
	// "library/v1/book.proto".
	Name         string
	Package      string
	Imports      []*ImportDecl
	Declarations []Declaration
}
