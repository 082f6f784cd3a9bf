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

// Package wellknown holds pre-built syntax trees for the google.protobuf
// well-known types, the same shape pkg/parser would have produced had it
// parsed the real .proto text. The compiler loads one of these the first
// time a source file imports its path, instead of shipping and parsing the
// actual upstream .proto files.
package wellknown

import "github.com/nilproto/protots/pkg/ast"

func field(name string, t ast.FieldType, tag int) *ast.FieldDeclaration {
	return &ast.FieldDeclaration{Name: name, Type: t, Tag: tag}
}

func scalar(k ast.ScalarKind) ast.FieldType { return ast.Scalar{Kind: k} }

func message(name string, fields ...*ast.FieldDeclaration) *ast.MessageDeclaration {
	return &ast.MessageDeclaration{Name: name, Fields: fields}
}

var anyFile = &ast.File{
	Name:    "google/protobuf/any.proto",
	Package: "google.protobuf",
	Declarations: []ast.Declaration{
		message("Any",
			field("type_url", scalar(ast.String), 1),
			field("value", scalar(ast.Bytes), 2),
		),
	},
}

var durationFile = &ast.File{
	Name:    "google/protobuf/duration.proto",
	Package: "google.protobuf",
	Declarations: []ast.Declaration{
		message("Duration",
			field("seconds", scalar(ast.Int64), 1),
			field("nanos", scalar(ast.Int32), 2),
		),
	},
}

var emptyFile = &ast.File{
	Name:    "google/protobuf/empty.proto",
	Package: "google.protobuf",
	Declarations: []ast.Declaration{
		message("Empty"),
	},
}

var fieldMaskFile = &ast.File{
	Name:    "google/protobuf/field_mask.proto",
	Package: "google.protobuf",
	Declarations: []ast.Declaration{
		message("FieldMask",
			field("paths", ast.Repeated{Element: scalar(ast.String)}, 1),
		),
	},
}

var structFile = &ast.File{
	Name:    "google/protobuf/struct.proto",
	Package: "google.protobuf",
	Declarations: []ast.Declaration{
		&ast.EnumDeclaration{
			Name: "NullValue",
			Values: []*ast.EnumValueDeclaration{
				{Name: "NULL_VALUE", Number: 0},
			},
		},
		message("Struct",
			field("fields", ast.Map{Key: scalar(ast.String), Value: ast.IDPath{Parts: []string{"Value"}}}, 1),
		),
		&ast.MessageDeclaration{
			Name: "Value",
			OneOfs: []*ast.OneOfDeclaration{
				{
					Name: "kind",
					Fields: []*ast.FieldDeclaration{
						field("null_value", ast.IDPath{Parts: []string{"NullValue"}}, 1),
						field("number_value", scalar(ast.Double), 2),
						field("string_value", scalar(ast.String), 3),
						field("bool_value", scalar(ast.Bool), 4),
						field("struct_value", ast.IDPath{Parts: []string{"Struct"}}, 5),
						field("list_value", ast.IDPath{Parts: []string{"ListValue"}}, 6),
					},
				},
			},
		},
		message("ListValue",
			field("values", ast.Repeated{Element: ast.IDPath{Parts: []string{"Value"}}}, 1),
		),
	},
}

var timestampFile = &ast.File{
	Name:    "google/protobuf/timestamp.proto",
	Package: "google.protobuf",
	Declarations: []ast.Declaration{
		message("Timestamp",
			field("seconds", scalar(ast.Int64), 1),
			field("nanos", scalar(ast.Int32), 2),
		),
	},
}

var wrappersFile = &ast.File{
	Name:    "google/protobuf/wrappers.proto",
	Package: "google.protobuf",
	Declarations: []ast.Declaration{
		message("DoubleValue", field("value", scalar(ast.Double), 1)),
		message("FloatValue", field("value", scalar(ast.Float), 1)),
		message("Int64Value", field("value", scalar(ast.Int64), 1)),
		message("UInt64Value", field("value", scalar(ast.UInt64), 1)),
		message("Int32Value", field("value", scalar(ast.Int32), 1)),
		message("UInt32Value", field("value", scalar(ast.UInt32), 1)),
		message("BoolValue", field("value", scalar(ast.Bool), 1)),
		message("StringValue", field("value", scalar(ast.String), 1)),
		message("BytesValue", field("value", scalar(ast.Bytes), 1)),
	},
}

// byPath maps an import path as it would appear in a proto `import`
// statement to the pre-built File and the short name LoadWellKnown uses to
// make loading idempotent.
var byPath = map[string]struct {
	name string
	file *ast.File
}{
	"google/protobuf/any.proto":        {"any", anyFile},
	"google/protobuf/duration.proto":   {"duration", durationFile},
	"google/protobuf/empty.proto":      {"empty", emptyFile},
	"google/protobuf/field_mask.proto": {"field_mask", fieldMaskFile},
	"google/protobuf/struct.proto":     {"struct", structFile},
	"google/protobuf/timestamp.proto":  {"timestamp", timestampFile},
	"google/protobuf/wrappers.proto":   {"wrappers", wrappersFile},
}

// Lookup returns the pre-built File and load-once name for an import path,
// if it names one of the well-known types. ok is false for any other path.
func Lookup(importPath string) (name string, file *ast.File, ok bool) {
	entry, ok := byPath[importPath]
	if !ok {
		return "", nil, false
	}
	return entry.name, entry.file, true
}

// Paths returns every well-known import path the package recognizes.
func Paths() []string {
	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	return paths
}
