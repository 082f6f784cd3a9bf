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

package parser

import (
	"strings"
	"testing"

	"github.com/nilproto/protots/pkg/ast"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := ParseFile("test.proto", src)
	if err != nil {
		t.Fatalf("ParseFile: unexpected error: %v", err)
	}
	return f
}

func TestParseFile_SyntaxPackageImport(t *testing.T) {
	src := `
syntax = "proto3";
package library.v1;
import "google/protobuf/timestamp.proto";
import public "other.proto";
`
	f := mustParse(t, src)
	if f.Package != "library.v1" {
		t.Errorf("Package = %q, want %q", f.Package, "library.v1")
	}
	if len(f.Imports) != 2 {
		t.Fatalf("len(Imports) = %d, want 2", len(f.Imports))
	}
	if f.Imports[0].Path != "google/protobuf/timestamp.proto" {
		t.Errorf("Imports[0].Path = %q", f.Imports[0].Path)
	}
	if f.Imports[1].Path != "other.proto" {
		t.Errorf("Imports[1].Path = %q, want the path stripped of the public modifier", f.Imports[1].Path)
	}
}

func TestParseFile_RejectsNonProto3(t *testing.T) {
	_, err := ParseFile("test.proto", `syntax = "proto2";`)
	if err == nil {
		t.Fatal("expected an error for a non-proto3 syntax declaration")
	}
}

func TestParseMessage_ScalarAndRepeatedFields(t *testing.T) {
	src := `
syntax = "proto3";

message Book {
  string title = 1;
  repeated string tags = 2;
  int32 page_count = 3 [json_name = "pageCount"];
}
`
	f := mustParse(t, src)
	if len(f.Declarations) != 1 {
		t.Fatalf("len(Declarations) = %d, want 1", len(f.Declarations))
	}
	msg, ok := f.Declarations[0].(*ast.MessageDeclaration)
	if !ok {
		t.Fatalf("Declarations[0] is %T, want *ast.MessageDeclaration", f.Declarations[0])
	}
	if msg.Name != "Book" {
		t.Errorf("Name = %q, want %q", msg.Name, "Book")
	}
	if len(msg.Fields) != 3 {
		t.Fatalf("len(Fields) = %d, want 3", len(msg.Fields))
	}

	title := msg.Fields[0]
	if title.Name != "title" || title.Tag != 1 {
		t.Errorf("title field = %+v", title)
	}
	if _, ok := title.Type.(ast.Scalar); !ok {
		t.Errorf("title.Type = %T, want ast.Scalar", title.Type)
	}

	tags := msg.Fields[1]
	rep, ok := tags.Type.(ast.Repeated)
	if !ok {
		t.Fatalf("tags.Type = %T, want ast.Repeated", tags.Type)
	}
	if _, ok := rep.Element.(ast.Scalar); !ok {
		t.Errorf("tags.Type.Element = %T, want ast.Scalar", rep.Element)
	}

	pageCount := msg.Fields[2]
	if pageCount.JSONName != "pageCount" {
		t.Errorf("pageCount.JSONName = %q, want %q", pageCount.JSONName, "pageCount")
	}
}

func TestParseMessage_MapField(t *testing.T) {
	src := `
syntax = "proto3";

message Library {
  map<string, int32> counts = 1;
}
`
	f := mustParse(t, src)
	msg := f.Declarations[0].(*ast.MessageDeclaration)
	field := msg.Fields[0]
	m, ok := field.Type.(ast.Map)
	if !ok {
		t.Fatalf("field.Type = %T, want ast.Map", field.Type)
	}
	key, ok := m.Key.(ast.Scalar)
	if !ok || key.Kind != ast.String {
		t.Errorf("Map.Key = %+v, want string scalar", m.Key)
	}
	val, ok := m.Value.(ast.Scalar)
	if !ok || val.Kind != ast.Int32 {
		t.Errorf("Map.Value = %+v, want int32 scalar", m.Value)
	}
}

func TestParseMessage_MessageTypeReference(t *testing.T) {
	src := `
syntax = "proto3";

message Shelf {
  google.protobuf.Timestamp created_at = 1;
  Book book = 2;
}
`
	f := mustParse(t, src)
	msg := f.Declarations[0].(*ast.MessageDeclaration)

	createdAt := msg.Fields[0]
	path, ok := createdAt.Type.(ast.IDPath)
	if !ok {
		t.Fatalf("createdAt.Type = %T, want ast.IDPath", createdAt.Type)
	}
	if path.String() != "google.protobuf.Timestamp" {
		t.Errorf("IDPath.String() = %q, want %q", path.String(), "google.protobuf.Timestamp")
	}

	book := msg.Fields[1]
	bookPath, ok := book.Type.(ast.IDPath)
	if !ok || bookPath.String() != "Book" {
		t.Errorf("book.Type = %+v, want IDPath{Book}", book.Type)
	}
}

func TestParseMessage_OneOf(t *testing.T) {
	src := `
syntax = "proto3";

message Shape {
  oneof kind {
    Circle circle = 1;
    Square square = 2;
  }
}
`
	f := mustParse(t, src)
	msg := f.Declarations[0].(*ast.MessageDeclaration)
	if len(msg.OneOfs) != 1 {
		t.Fatalf("len(OneOfs) = %d, want 1", len(msg.OneOfs))
	}
	oneOf := msg.OneOfs[0]
	if oneOf.Name != "kind" {
		t.Errorf("OneOf.Name = %q, want %q", oneOf.Name, "kind")
	}
	if len(oneOf.Fields) != 2 {
		t.Fatalf("len(OneOf.Fields) = %d, want 2", len(oneOf.Fields))
	}
	if oneOf.Fields[0].Name != "circle" || oneOf.Fields[0].Tag != 1 {
		t.Errorf("OneOf.Fields[0] = %+v", oneOf.Fields[0])
	}
	if oneOf.Fields[1].Name != "square" || oneOf.Fields[1].Tag != 2 {
		t.Errorf("OneOf.Fields[1] = %+v", oneOf.Fields[1])
	}
}

func TestParseMessage_NestedMessageAndEnum(t *testing.T) {
	src := `
syntax = "proto3";

message Outer {
  message Inner {
    string value = 1;
  }
  enum Status {
    UNKNOWN = 0;
    ACTIVE = 1;
  }
  Inner inner = 1;
  Status status = 2;
}
`
	f := mustParse(t, src)
	msg := f.Declarations[0].(*ast.MessageDeclaration)
	if len(msg.NestedMessages) != 1 || msg.NestedMessages[0].Name != "Inner" {
		t.Fatalf("NestedMessages = %+v", msg.NestedMessages)
	}
	if len(msg.NestedEnums) != 1 || msg.NestedEnums[0].Name != "Status" {
		t.Fatalf("NestedEnums = %+v", msg.NestedEnums)
	}
	if len(msg.NestedEnums[0].Values) != 2 {
		t.Fatalf("len(Status.Values) = %d, want 2", len(msg.NestedEnums[0].Values))
	}
	if msg.NestedEnums[0].Values[0].Number != 0 || msg.NestedEnums[0].Values[1].Number != 1 {
		t.Errorf("Status.Values = %+v", msg.NestedEnums[0].Values)
	}
}

func TestParseMessage_ReservedIsSkipped(t *testing.T) {
	src := `
syntax = "proto3";

message Book {
  reserved 2, 3, 4;
  reserved "old_field";
  string title = 1;
}
`
	f := mustParse(t, src)
	msg := f.Declarations[0].(*ast.MessageDeclaration)
	if len(msg.Fields) != 1 || msg.Fields[0].Name != "title" {
		t.Fatalf("Fields = %+v, want just title", msg.Fields)
	}
}

func TestParseEnum_TopLevel(t *testing.T) {
	src := `
syntax = "proto3";

enum Genre {
  GENRE_UNSPECIFIED = 0;
  GENRE_FICTION = 1 [deprecated = true];
  GENRE_NONFICTION = 2;
}
`
	f := mustParse(t, src)
	if len(f.Declarations) != 1 {
		t.Fatalf("len(Declarations) = %d, want 1", len(f.Declarations))
	}
	en, ok := f.Declarations[0].(*ast.EnumDeclaration)
	if !ok {
		t.Fatalf("Declarations[0] = %T, want *ast.EnumDeclaration", f.Declarations[0])
	}
	if en.Name != "Genre" {
		t.Errorf("Name = %q, want %q", en.Name, "Genre")
	}
	if len(en.Values) != 3 {
		t.Fatalf("len(Values) = %d, want 3", len(en.Values))
	}
	want := []struct {
		name   string
		number int32
	}{
		{"GENRE_UNSPECIFIED", 0},
		{"GENRE_FICTION", 1},
		{"GENRE_NONFICTION", 2},
	}
	for i, w := range want {
		if en.Values[i].Name != w.name || en.Values[i].Number != w.number {
			t.Errorf("Values[%d] = %+v, want {%s %d}", i, en.Values[i], w.name, w.number)
		}
	}
}

func TestParseFile_ErrorIncludesPosition(t *testing.T) {
	_, err := ParseFile("broken.proto", "message {}")
	if err == nil {
		t.Fatal("expected an error for a message with no name")
	}
	if !strings.Contains(err.Error(), "(at 1:9)") {
		t.Errorf("expected the error to include the position (at 1:9), got %q", err.Error())
	}
}

func TestParseFile_UnterminatedMessageIsError(t *testing.T) {
	_, err := ParseFile("broken.proto", "message Book { string title = 1;")
	if err == nil {
		t.Fatal("expected an error for an unterminated message body")
	}
}

func TestParseFile_BareSemicolonsAreSkipped(t *testing.T) {
	src := `
syntax = "proto3";
;
package library.v1;
;
`
	f := mustParse(t, src)
	if f.Package != "library.v1" {
		t.Errorf("Package = %q, want %q", f.Package, "library.v1")
	}
}
