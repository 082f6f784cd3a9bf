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

package scope

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nilproto/protots/pkg/ast"
	"github.com/nilproto/protots/pkg/parser"
	"github.com/nilproto/protots/pkg/wellknown"
)

func mustParse(t *testing.T, name, src string) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(name, src)
	if err != nil {
		t.Fatalf("ParseFile(%q): %v", name, err)
	}
	return f
}

func findMessage(root *RootScope, qualified string) *MessageScope {
	for _, ms := range root.AllMessages {
		if ms.QualifiedName() == qualified {
			return ms
		}
	}
	return nil
}

func findField(ms *MessageScope, name string) *Field {
	if ms == nil {
		return nil
	}
	for _, f := range ms.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func findEnum(root *RootScope, qualified string) *EnumScope {
	for _, es := range root.AllEnums {
		if es.QualifiedName() == qualified {
			return es
		}
	}
	return nil
}

func TestResolve_SimpleMessage(t *testing.T) {
	f := mustParse(t, "book.proto", `
syntax = "proto3";
package library.v1;

message Book {
  string title = 1;
  int32 page_count = 2;
}
`)
	b := NewBuilder(nil)
	if _, err := b.AddFile(f); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	root, err := Resolve(b)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	book := findMessage(root, "library.v1.Book")
	if book == nil {
		t.Fatalf("message library.v1.Book not found in %+v", root.AllMessages)
	}
	if book.File == nil || book.File.Package != "library.v1" {
		t.Errorf("Book.File = %+v", book.File)
	}

	title := findField(book, "title")
	if title == nil {
		t.Fatal("field title not found")
	}
	if _, ok := title.Type.(ScalarType); !ok {
		t.Errorf("title.Type = %T, want ScalarType", title.Type)
	}
	if title.JSONName != "title" {
		t.Errorf("title.JSONName = %q, want %q", title.JSONName, "title")
	}

	pageCount := findField(book, "page_count")
	if pageCount == nil {
		t.Fatal("field page_count not found")
	}
	if pageCount.JSONName != "pageCount" {
		t.Errorf("pageCount.JSONName = %q, want default camelCase %q", pageCount.JSONName, "pageCount")
	}
}

func TestBuilder_ConflictingFiles(t *testing.T) {
	f1 := mustParse(t, "book.proto", `syntax = "proto3"; message Book { string title = 1; }`)
	f2 := mustParse(t, "book.proto", `syntax = "proto3"; message Book2 { string title = 1; }`)

	b := NewBuilder(nil)
	if _, err := b.AddFile(f1); err != nil {
		t.Fatalf("first AddFile: %v", err)
	}
	if _, err := b.AddFile(f2); err == nil {
		t.Fatal("expected an error registering the same file name twice")
	}
}

func TestResolve_NestedMessageAndEnum(t *testing.T) {
	f := mustParse(t, "library.proto", `
syntax = "proto3";
package library.v1;

message Shelf {
  message Label {
    string text = 1;
  }
  enum Kind {
    KIND_UNSPECIFIED = 0;
    KIND_FICTION = 1;
  }
  Label label = 1;
  Kind kind = 2;
}
`)
	b := NewBuilder(nil)
	if _, err := b.AddFile(f); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	root, err := Resolve(b)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	label := findMessage(root, "library.v1.Shelf.Label")
	if label == nil {
		t.Fatalf("nested message library.v1.Shelf.Label not found in %+v", root.AllMessages)
	}
	shelf := findMessage(root, "library.v1.Shelf")
	if shelf == nil {
		t.Fatal("message library.v1.Shelf not found")
	}
	if label.Parent != shelf {
		t.Errorf("Label.Parent = %v, want Shelf", label.Parent)
	}
	if len(shelf.NestedMessages) != 1 || shelf.NestedMessages[0] != label {
		t.Errorf("Shelf.NestedMessages = %+v", shelf.NestedMessages)
	}

	labelField := findField(shelf, "label")
	mt, ok := labelField.Type.(MessageType)
	if !ok || mt.Message != label {
		t.Errorf("label field type = %+v, want MessageType{Label}", labelField.Type)
	}

	kindField := findField(shelf, "kind")
	et, ok := kindField.Type.(EnumType)
	if !ok || et.Enum.Name != "Kind" {
		t.Errorf("kind field type = %+v, want EnumType{Kind}", kindField.Type)
	}

	kind := findEnum(root, "library.v1.Shelf.Kind")
	if kind == nil {
		t.Fatal("nested enum library.v1.Shelf.Kind not found")
	}
	want := []EnumValue{
		{Name: "KIND_UNSPECIFIED", Number: 0},
		{Name: "KIND_FICTION", Number: 1},
	}
	if diff := cmp.Diff(want, kind.Values); diff != "" {
		t.Errorf("Kind.Values mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_CrossFileImport(t *testing.T) {
	author := mustParse(t, "author.proto", `
syntax = "proto3";
package library.v1;

message Author {
  string name = 1;
}
`)
	book := mustParse(t, "book.proto", `
syntax = "proto3";
package library.v1;

import "author.proto";

message Book {
  Author author = 1;
}
`)

	b := NewBuilder(nil)
	if _, err := b.AddFile(author); err != nil {
		t.Fatalf("AddFile(author): %v", err)
	}
	if _, err := b.AddFile(book); err != nil {
		t.Fatalf("AddFile(book): %v", err)
	}
	root, err := Resolve(b)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	bookMsg := findMessage(root, "library.v1.Book")
	authorField := findField(bookMsg, "author")
	mt, ok := authorField.Type.(MessageType)
	if !ok || mt.Message.QualifiedName() != "library.v1.Author" {
		t.Errorf("author field type = %+v, want MessageType{library.v1.Author}", authorField.Type)
	}
}

func TestResolve_WellKnownImport(t *testing.T) {
	f := mustParse(t, "event.proto", `
syntax = "proto3";
package library.v1;

import "google/protobuf/timestamp.proto";

message Event {
  google.protobuf.Timestamp occurred_at = 1;
}
`)
	b := NewBuilder(nil)
	if _, err := b.AddFile(f); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	name, wkFile, ok := wellknown.Lookup("google/protobuf/timestamp.proto")
	if !ok {
		t.Fatal("wellknown.Lookup(timestamp) = not found")
	}
	if err := b.LoadWellKnown(name, wkFile); err != nil {
		t.Fatalf("LoadWellKnown: %v", err)
	}
	// A second load for the same name must be a no-op, not a conflict.
	if err := b.LoadWellKnown(name, wkFile); err != nil {
		t.Fatalf("second LoadWellKnown: %v", err)
	}

	root, err := Resolve(b)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	event := findMessage(root, "library.v1.Event")
	occurredAt := findField(event, "occurred_at")
	mt, ok := occurredAt.Type.(MessageType)
	if !ok || mt.Message.QualifiedName() != "google.protobuf.Timestamp" {
		t.Errorf("occurred_at field type = %+v, want MessageType{google.protobuf.Timestamp}", occurredAt.Type)
	}
}

func TestResolve_MapField(t *testing.T) {
	f := mustParse(t, "library.proto", `
syntax = "proto3";
package library.v1;

message Library {
  map<string, int32> counts = 1;
}
`)
	b := NewBuilder(nil)
	if _, err := b.AddFile(f); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	root, err := Resolve(b)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	lib := findMessage(root, "library.v1.Library")
	counts := findField(lib, "counts")
	mt, ok := counts.Type.(MapType)
	if !ok {
		t.Fatalf("counts.Type = %T, want MapType", counts.Type)
	}
	if _, ok := mt.Key.(ScalarType); !ok {
		t.Errorf("counts key type = %T, want ScalarType", mt.Key)
	}
}

func TestResolve_IllegalMapKeyIsRejected(t *testing.T) {
	f := mustParse(t, "library.proto", `
syntax = "proto3";
package library.v1;

message Library {
  map<double, int32> scores = 1;
}
`)
	b := NewBuilder(nil)
	if _, err := b.AddFile(f); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if _, err := Resolve(b); err == nil {
		t.Fatal("expected an error resolving a map with a double key")
	}
}

func TestResolve_OneOf(t *testing.T) {
	f := mustParse(t, "shape.proto", `
syntax = "proto3";
package shapes.v1;

message Circle { double radius = 1; }
message Square { double side = 1; }

message Shape {
  oneof kind {
    Circle circle = 1;
    Square square = 2;
  }
}
`)
	b := NewBuilder(nil)
	if _, err := b.AddFile(f); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	root, err := Resolve(b)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	shape := findMessage(root, "shapes.v1.Shape")
	if len(shape.OneOfs) != 1 {
		t.Fatalf("len(Shape.OneOfs) = %d, want 1", len(shape.OneOfs))
	}
	group := shape.OneOfs[0]
	if group.Name != "kind" {
		t.Errorf("OneOfGroup.Name = %q, want %q", group.Name, "kind")
	}
	if len(group.Fields) != 2 {
		t.Fatalf("len(group.Fields) = %d, want 2", len(group.Fields))
	}
	circle := findField(shape, "circle")
	if circle == nil || circle.OneOf != group {
		t.Errorf("circle field = %+v, want it to belong to the kind oneof", circle)
	}
	// The oneof's fields are also reachable through the message's own field
	// list, in the order they were declared.
	if len(shape.Fields) != 2 || shape.Fields[0].Name != "circle" || shape.Fields[1].Name != "square" {
		t.Errorf("Shape.Fields = %+v", shape.Fields)
	}
}

func TestResolve_UnresolvedReferenceIsAnError(t *testing.T) {
	f := mustParse(t, "book.proto", `
syntax = "proto3";
package library.v1;

message Book {
  Ghost ghost = 1;
}
`)
	b := NewBuilder(nil)
	if _, err := b.AddFile(f); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if _, err := Resolve(b); err == nil {
		t.Fatal("expected an unresolved reference error for Ghost")
	}
}

func TestResolve_UnresolvedImportIsAnError(t *testing.T) {
	f := mustParse(t, "book.proto", `
syntax = "proto3";
package library.v1;

import "missing.proto";

message Book {
  string title = 1;
}
`)
	b := NewBuilder(nil)
	if _, err := b.AddFile(f); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if _, err := Resolve(b); err == nil {
		t.Fatal("expected an unresolved import error for missing.proto")
	}
}
