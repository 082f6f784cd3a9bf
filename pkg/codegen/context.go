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

// Package codegen turns a resolved scope.RootScope into generated
// TypeScript source, one emitter per output file kind: TypesEmitter for a
// message's types.ts, EncodeEmitter for its encode.ts, DecodeEmitter for
// its decode.ts, and EnumEmitter for an enum's <Name>.ts.
package codegen

import (
	"fmt"

	"github.com/nilproto/protots/pkg/ast"
	"github.com/nilproto/protots/pkg/scope"
	"github.com/nilproto/protots/pkg/tsast"
	"github.com/nilproto/protots/pkg/tspath"
)

// protobufModule is the runtime library generated encode/decode code
// depends on for Writer, Reader and 64-bit integer support.
const protobufModule = "protobufjs/minimal"

// emitCtx threads the file currently being built and its own tspath.Path
// through a single emitter call, so helper methods can compute relative
// imports against "where am I" without passing it at every call site.
type emitCtx struct {
	file *tsast.SourceFile
	self tspath.Path
}

func newEmitCtx(self tspath.Path) *emitCtx {
	return &emitCtx{file: &tsast.SourceFile{}, self: self}
}

// importSymbol ensures file imports name from the module at target,
// computing target's path relative to ctx.self. No-ops if target is the
// same file ctx is building.
func (c *emitCtx) importSymbol(target tspath.Path, name string) {
	rel, needed := tspath.RelativeImport(c.self, target)
	if !needed {
		return
	}
	tsast.EnsureImport(c.file, rel, name)
}

func (c *emitCtx) importRuntime(name string) {
	tsast.EnsureImport(c.file, protobufModule, name)
}

// decodeAliasFor and encodeAliasFor give an imported message's decode/encode
// function a collision-free local name, since every message folder exports
// a function literally named "decode" or "encode".
func decodeAliasFor(ms *scope.MessageScope) string {
	return fmt.Sprintf("decode%d", ms.ID)
}

func encodeAliasFor(ms *scope.MessageScope) string {
	return fmt.Sprintf("encode%d", ms.ID)
}

// tsTypeFor converts a resolved field Type into the TypeScript annotation
// used in interfaces, importing any referenced message/enum as needed.
// forEncodeInput selects the wider `Long | number` form 64-bit integer
// fields use on the encode side, versus the narrower decode-result `Long`.
func (c *emitCtx) tsTypeFor(t scope.Type, forEncodeInput bool) tsast.Type {
	switch v := t.(type) {
	case scope.ScalarType:
		return c.scalarTSType(v.Kind, forEncodeInput)
	case scope.EnumType:
		target := tspath.EnumFile(v.Enum)
		c.importSymbol(target, v.Enum.Name)
		return tsast.TypeRef{Name: v.Enum.Name}
	case scope.MessageType:
		target := tspath.MessageTypesFile(v.Message)
		name := v.Message.Name
		if !forEncodeInput {
			c.importSymbol(target, name)
			return tsast.TypeRef{Name: name}
		}
		inputName := name + "EncodeInput"
		c.importSymbol(target, inputName)
		return tsast.TypeRef{Name: inputName}
	case scope.RepeatedType:
		return tsast.ArrayType{Element: c.tsTypeFor(v.Element, forEncodeInput)}
	case scope.MapType:
		return tsast.RecordType{Value: c.tsTypeFor(v.Value, forEncodeInput)}
	default:
		return tsast.AnyType{}
	}
}

func (c *emitCtx) scalarTSType(kind ast.ScalarKind, forEncodeInput bool) tsast.Type {
	switch kind {
	case ast.Bool:
		return tsast.BooleanType{}
	case ast.String:
		return tsast.StringType{}
	case ast.Bytes:
		return tsast.TypeRef{Name: "Uint8Array"}
	case ast.Int64, ast.UInt64, ast.SInt64, ast.Fixed64, ast.SFixed64:
		c.importRuntime("util")
		if forEncodeInput {
			return tsast.UnionType{Members: []tsast.Type{tsast.TypeRef{Name: "util.Long"}, tsast.NumberType{}}}
		}
		return tsast.TypeRef{Name: "util.Long"}
	default:
		return tsast.NumberType{}
	}
}
