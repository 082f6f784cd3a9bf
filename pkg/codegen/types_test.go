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

package codegen

import (
	"strings"
	"testing"

	"github.com/nilproto/protots/pkg/ast"
	"github.com/nilproto/protots/pkg/scope"
)

func TestEmitTypes_OneOfFieldIsOptional(t *testing.T) {
	file := &scope.FileScope{Name: "library/v1/book.proto", Package: "library.v1"}
	ms := &scope.MessageScope{Name: "Shape", File: file}
	group := &scope.OneOfGroup{Name: "kind"}
	radius := &scope.Field{Name: "radius", JSONName: "radius", Tag: 1, Type: scope.ScalarType{Kind: ast.Double}, OneOf: group}
	group.Fields = append(group.Fields, radius)
	ms.Fields = []*scope.Field{radius}
	ms.OneOfs = []*scope.OneOfGroup{group}

	got := printFile(t, EmitTypes(ms))

	if !strings.Contains(got, "export interface ShapeEncodeInput {") {
		t.Errorf("missing ShapeEncodeInput interface:\n%s", got)
	}
	if !strings.Contains(got, "export interface Shape {") {
		t.Errorf("missing Shape interface:\n%s", got)
	}
	// every EncodeInput field is optional, whether or not it belongs to a oneof.
	if !strings.Contains(got, "radius?: number | null;") {
		t.Errorf("radius should be optional-or-null in EncodeInput:\n%s", got)
	}
}

func TestEmitTypes_PlainFieldIsRequiredInDecodeResult(t *testing.T) {
	file := &scope.FileScope{Name: "library/v1/book.proto", Package: "library.v1"}
	ms := &scope.MessageScope{Name: "Book", File: file}
	title := &scope.Field{Name: "title", JSONName: "title", Tag: 1, Type: scope.ScalarType{Kind: ast.String}}
	ms.Fields = []*scope.Field{title}

	got := printFile(t, EmitTypes(ms))
	if !strings.Contains(got, "title?: string | null;") {
		t.Errorf("EncodeInput.title should be optional-or-null:\n%s", got)
	}
	if !strings.Contains(got, "  title: string;\n") {
		t.Errorf("decode-result Book.title should be required, non-null:\n%s", got)
	}
}

func TestEmitTypes_MessageFieldImportsRelatively(t *testing.T) {
	bookFile := &scope.FileScope{Name: "library/v1/book.proto", Package: "library.v1"}
	authorFile := &scope.FileScope{Name: "library/v1/author.proto", Package: "library.v1"}
	author := &scope.MessageScope{Name: "Author", File: authorFile}
	book := &scope.MessageScope{Name: "Book", File: bookFile}
	book.Fields = []*scope.Field{
		{Name: "author", JSONName: "author", Tag: 1, Type: scope.MessageType{Message: author}},
	}

	got := printFile(t, EmitTypes(book))
	if !strings.Contains(got, `import { Author, AuthorEncodeInput } from "../../author/Author/types";`) {
		t.Errorf("expected a merged import of Author and AuthorEncodeInput, got:\n%s", got)
	}
	if !strings.Contains(got, "author?: AuthorEncodeInput | null;") {
		t.Errorf("EncodeInput.author should reference AuthorEncodeInput:\n%s", got)
	}
	if !strings.Contains(got, "  author: Author;\n") {
		t.Errorf("decode-result Book.author should reference Author directly:\n%s", got)
	}
}

func TestEmitTypes_Int64UsesUtilLong(t *testing.T) {
	file := &scope.FileScope{Name: "library/v1/book.proto", Package: "library.v1"}
	ms := &scope.MessageScope{Name: "Counter", File: file}
	ms.Fields = []*scope.Field{
		{Name: "count", JSONName: "count", Tag: 1, Type: scope.ScalarType{Kind: ast.Int64}},
	}
	got := printFile(t, EmitTypes(ms))
	if !strings.Contains(got, `import { util } from "protobufjs/minimal";`) {
		t.Errorf("expected a util import from protobufjs/minimal:\n%s", got)
	}
	if !strings.Contains(got, "count?: util.Long | number | null;") {
		t.Errorf("EncodeInput.count should allow util.Long or number:\n%s", got)
	}
	if !strings.Contains(got, "  count: util.Long;\n") {
		t.Errorf("decode-result Counter.count should be util.Long:\n%s", got)
	}
}
