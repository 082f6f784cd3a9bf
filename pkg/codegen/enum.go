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
	"github.com/nilproto/protots/pkg/scope"
	"github.com/nilproto/protots/pkg/tsast"
)

// EmitEnum builds an enum's standalone <Name>.ts, exporting a numeric
// TypeScript enum whose members mirror the proto declaration's names and
// numbers exactly.
func EmitEnum(es *scope.EnumScope) *tsast.SourceFile {
	decl := &tsast.EnumDecl{Name: es.Name}
	for _, v := range es.Values {
		decl.Members = append(decl.Members, tsast.EnumMember{Name: v.Name, Value: v.Number})
	}
	return &tsast.SourceFile{Decls: []tsast.Decl{decl}}
}
