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
	"github.com/nilproto/protots/pkg/tspath"
)

// EmitTypes builds a message's types.ts: an `<Name>EncodeInput` interface
// where every field (including every oneof option) is optional-or-null,
// and an `<Name>` interface — the decode result — where plain fields are
// required and oneof options remain optional-or-null, since only one
// option of a oneof is ever populated after a decode.
func EmitTypes(ms *scope.MessageScope) *tsast.SourceFile {
	ctx := newEmitCtx(tspath.MessageTypesFile(ms))

	encodeInput := &tsast.InterfaceDecl{Name: ms.Name + "EncodeInput"}
	decodeResult := &tsast.InterfaceDecl{Name: ms.Name}

	for _, f := range ms.Fields {
		encodeInput.Members = append(encodeInput.Members, tsast.PropertySig{
			Name:     f.JSONName,
			Optional: true,
			Type:     orNull(ctx.tsTypeFor(f.Type, true)),
		})

		optional := f.OneOf != nil
		fieldType := ctx.tsTypeFor(f.Type, false)
		if optional {
			fieldType = orNull(fieldType)
		}
		decodeResult.Members = append(decodeResult.Members, tsast.PropertySig{
			Name:     f.JSONName,
			Optional: optional,
			Type:     fieldType,
		})
	}

	ctx.file.Decls = append(ctx.file.Decls, encodeInput, decodeResult)
	return ctx.file
}

func orNull(t tsast.Type) tsast.Type {
	u := &tsast.UnionType{}
	u.Add(t)
	u.Add(tsast.NullType{})
	return *u
}
