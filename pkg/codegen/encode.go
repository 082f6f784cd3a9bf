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
	"fmt"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/nilproto/protots/pkg/ast"
	"github.com/nilproto/protots/pkg/scope"
	"github.com/nilproto/protots/pkg/tsast"
	"github.com/nilproto/protots/pkg/tspath"
)

// EmitEncode builds a message's encode.ts: a single exported `encode`
// function that appends every present field to a protobufjs Writer, fields
// visited in ascending tag order so the wire output is deterministic.
func EmitEncode(ms *scope.MessageScope) *tsast.SourceFile {
	ctx := newEmitCtx(tspath.MessageEncodeFile(ms))
	ctx.importRuntime("Writer")
	ctx.importSymbol(tspath.MessageTypesFile(ms), ms.Name+"EncodeInput")

	fields := append([]*scope.Field(nil), ms.Fields...)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Tag < fields[j].Tag })

	var body []tsast.Stmt
	body = append(body, tsast.VarStmt{
		Kind: tsast.Const, Name: "w",
		Init: tsast.BinaryExpr{Op: "||", Left: tsast.Ident{Name: "writer"}, Right: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "Writer"}, Property: "create"}}},
	})

	for _, f := range fields {
		body = append(body, ctx.encodeFieldStmt(f))
	}
	body = append(body, tsast.ReturnStmt{Expr: tsast.Ident{Name: "w"}})

	fn := &tsast.FunctionDecl{
		Name: "encode",
		Params: []tsast.Param{
			{Name: "message", Type: tsast.TypeRef{Name: ms.Name + "EncodeInput"}},
			{Name: "writer", Type: tsast.TypeRef{Name: "Writer"}, Optional: true},
		},
		ReturnType: tsast.TypeRef{Name: "Writer"},
		Body:       body,
	}
	ctx.file.Decls = append(ctx.file.Decls, fn)
	return ctx.file
}

func fieldExpr(name string) tsast.Expr {
	return tsast.PropertyAccess{Object: tsast.Ident{Name: "message"}, Property: name}
}

func tagLit(fieldNum int, wireType protowire.Type) tsast.Expr {
	return tsast.NumberLit{Text: fmt.Sprintf("%d", protowire.EncodeTag(protowire.Number(fieldNum), wireType))}
}

func hasOwn(name string) tsast.Expr {
	return tsast.CallExpr{
		Callee: tsast.PropertyAccess{Object: tsast.PropertyAccess{Object: tsast.Ident{Name: "Object"}, Property: "hasOwnProperty"}, Property: "call"},
		Args:   []tsast.Expr{tsast.Ident{Name: "message"}, tsast.StringLit{Value: name}},
	}
}

func notNull(e tsast.Expr) tsast.Expr {
	return tsast.BinaryExpr{Op: "!=", Left: e, Right: tsast.NullLit{}}
}

func writerCall(method string, args ...tsast.Expr) tsast.Expr {
	return tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "w"}, Property: method}, Args: args}
}

func (ctx *emitCtx) encodeFieldStmt(f *scope.Field) tsast.Stmt {
	switch t := f.Type.(type) {
	case scope.RepeatedType:
		return ctx.encodeRepeatedField(f, t)
	case scope.MapType:
		return ctx.encodeMapField(f, t)
	case scope.MessageType:
		return ctx.encodeMessageField(f, t)
	default:
		return ctx.encodeBasicField(f, t)
	}
}

// encodeBasicField handles a singular scalar or enum field.
func (ctx *emitCtx) encodeBasicField(f *scope.Field, t scope.Type) tsast.Stmt {
	method := scalarMethod(t)
	tag := tagLit(f.Tag, wireTypeOf(t))
	cond := tsast.BinaryExpr{Op: "&&", Left: notNull(fieldExpr(f.JSONName)), Right: hasOwn(f.JSONName)}
	write := tsast.ExprStmt{Expr: tsast.CallExpr{
		Callee: tsast.PropertyAccess{Object: writerCall("uint32", tag), Property: method},
		Args:   []tsast.Expr{fieldExpr(f.JSONName)},
	}}
	return tsast.IfStmt{Cond: cond, Then: []tsast.Stmt{write}}
}

func scalarMethod(t scope.Type) string {
	switch v := t.(type) {
	case scope.ScalarType:
		return readerWriterMethod(v.Kind)
	case scope.EnumType:
		return "int32"
	default:
		return "int32"
	}
}

func (ctx *emitCtx) encodeMessageField(f *scope.Field, t scope.MessageType) tsast.Stmt {
	alias := encodeAliasFor(t.Message)
	ctx.importSymbol(tspath.MessageEncodeFile(t.Message), alias)
	tag := tagLit(f.Tag, wireLength)
	cond := notNull(fieldExpr(f.JSONName))
	forkCall := tsast.ExprStmt{Expr: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: writerCall("uint32", tag), Property: "fork"}}}
	encodeCall := tsast.ExprStmt{Expr: tsast.CallExpr{Callee: tsast.Ident{Name: alias}, Args: []tsast.Expr{fieldExpr(f.JSONName), tsast.Ident{Name: "w"}}}}
	ldelim := tsast.ExprStmt{Expr: writerCall("ldelim")}
	return tsast.IfStmt{Cond: cond, Then: []tsast.Stmt{forkCall, encodeCall, ldelim}}
}

func (ctx *emitCtx) encodeRepeatedField(f *scope.Field, t scope.RepeatedType) tsast.Stmt {
	lengthCond := tsast.BinaryExpr{Op: "&&", Left: notNull(fieldExpr(f.JSONName)), Right: tsast.PropertyAccess{Object: fieldExpr(f.JSONName), Property: "length"}}

	if msgType, ok := t.Element.(scope.MessageType); ok {
		alias := encodeAliasFor(msgType.Message)
		ctx.importSymbol(tspath.MessageEncodeFile(msgType.Message), alias)
		tag := tagLit(f.Tag, wireLength)
		loop := tsast.ForStmt{
			Init: tsast.VarStmt{Kind: tsast.Let, Name: "i", Init: tsast.NumberLit{Text: "0"}},
			Cond: tsast.BinaryExpr{Op: "<", Left: tsast.Ident{Name: "i"}, Right: tsast.PropertyAccess{Object: fieldExpr(f.JSONName), Property: "length"}},
			Post: tsast.ExprStmt{Expr: tsast.BinaryExpr{Op: "+=", Left: tsast.Ident{Name: "i"}, Right: tsast.NumberLit{Text: "1"}}},
			Body: []tsast.Stmt{
				tsast.ExprStmt{Expr: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: writerCall("uint32", tag), Property: "fork"}}},
				tsast.ExprStmt{Expr: tsast.CallExpr{Callee: tsast.Ident{Name: alias}, Args: []tsast.Expr{tsast.ElementAccess{Object: fieldExpr(f.JSONName), Index: tsast.Ident{Name: "i"}}, tsast.Ident{Name: "w"}}}},
				tsast.ExprStmt{Expr: writerCall("ldelim")},
			},
		}
		return tsast.IfStmt{Cond: lengthCond, Then: []tsast.Stmt{loop}}
	}

	method := scalarMethod(t.Element)
	elemAccess := tsast.ElementAccess{Object: fieldExpr(f.JSONName), Index: tsast.Ident{Name: "i"}}
	loopBody := []tsast.Stmt{tsast.ExprStmt{Expr: tsast.CallExpr{
		Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "w"}, Property: method},
		Args:   []tsast.Expr{elemAccess},
	}}}
	loop := tsast.ForStmt{
		Init: tsast.VarStmt{Kind: tsast.Let, Name: "i", Init: tsast.NumberLit{Text: "0"}},
		Cond: tsast.BinaryExpr{Op: "<", Left: tsast.Ident{Name: "i"}, Right: tsast.PropertyAccess{Object: fieldExpr(f.JSONName), Property: "length"}},
		Post: tsast.ExprStmt{Expr: tsast.BinaryExpr{Op: "+=", Left: tsast.Ident{Name: "i"}, Right: tsast.NumberLit{Text: "1"}}},
		Body: loopBody,
	}

	if isPackable(t.Element) {
		packedTag := tagLit(f.Tag, wireLength)
		packed := []tsast.Stmt{
			tsast.ExprStmt{Expr: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: writerCall("uint32", packedTag), Property: "fork"}}},
			loop,
			tsast.ExprStmt{Expr: writerCall("ldelim")},
		}
		return tsast.IfStmt{Cond: lengthCond, Then: packed}
	}

	tag := tagLit(f.Tag, wireTypeOf(t.Element))
	unpackedLoop := tsast.ForStmt{
		Init: tsast.VarStmt{Kind: tsast.Let, Name: "i", Init: tsast.NumberLit{Text: "0"}},
		Cond: tsast.BinaryExpr{Op: "<", Left: tsast.Ident{Name: "i"}, Right: tsast.PropertyAccess{Object: fieldExpr(f.JSONName), Property: "length"}},
		Post: tsast.ExprStmt{Expr: tsast.BinaryExpr{Op: "+=", Left: tsast.Ident{Name: "i"}, Right: tsast.NumberLit{Text: "1"}}},
		Body: []tsast.Stmt{tsast.ExprStmt{Expr: tsast.CallExpr{
			Callee: tsast.PropertyAccess{Object: writerCall("uint32", tag), Property: method},
			Args:   []tsast.Expr{elemAccess},
		}}},
	}
	return tsast.IfStmt{Cond: lengthCond, Then: []tsast.Stmt{unpackedLoop}}
}

func (ctx *emitCtx) encodeMapField(f *scope.Field, t scope.MapType) tsast.Stmt {
	keyScalar := t.Key.(scope.ScalarType)
	keyIdent := tsast.Ident{Name: "key"}
	keyExpr := mapKeyEncodeExpr(keyScalar.Kind, keyIdent)
	keyWireType := basicWireType(keyScalar.Kind)
	entryTag := tagLit(f.Tag, wireLength)

	keyWrite := tsast.ExprStmt{Expr: tsast.CallExpr{
		Callee: tsast.PropertyAccess{Object: writerCall("uint32", tagLit(1, keyWireType)), Property: readerWriterMethod(keyScalar.Kind)},
		Args:   []tsast.Expr{keyExpr},
	}}

	var valueStmts []tsast.Stmt
	valueAccess := tsast.ElementAccess{Object: fieldExpr(f.JSONName), Index: keyIdent}
	if msgType, ok := t.Value.(scope.MessageType); ok {
		alias := encodeAliasFor(msgType.Message)
		ctx.importSymbol(tspath.MessageEncodeFile(msgType.Message), alias)
		valueStmts = []tsast.Stmt{
			tsast.ExprStmt{Expr: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: writerCall("uint32", tagLit(2, wireLength)), Property: "fork"}}},
			tsast.ExprStmt{Expr: tsast.CallExpr{Callee: tsast.Ident{Name: alias}, Args: []tsast.Expr{valueAccess, tsast.Ident{Name: "w"}}}},
			tsast.ExprStmt{Expr: writerCall("ldelim")},
		}
	} else {
		method := scalarMethod(t.Value)
		valueStmts = []tsast.Stmt{tsast.ExprStmt{Expr: tsast.CallExpr{
			Callee: tsast.PropertyAccess{Object: writerCall("uint32", tagLit(2, wireTypeOf(t.Value))), Property: method},
			Args:   []tsast.Expr{valueAccess},
		}}}
	}

	loopBody := append([]tsast.Stmt{
		tsast.ExprStmt{Expr: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: writerCall("uint32", entryTag), Property: "fork"}}},
		keyWrite,
	}, append(valueStmts, tsast.ExprStmt{Expr: writerCall("ldelim")})...)

	loop := tsast.ForOfStmt{
		VarName:  "key",
		Iterable: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "Object"}, Property: "keys"}, Args: []tsast.Expr{fieldExpr(f.JSONName)}},
		Body:     loopBody,
	}

	cond := notNull(fieldExpr(f.JSONName))
	return tsast.IfStmt{Cond: cond, Then: []tsast.Stmt{loop}}
}

func mapKeyEncodeExpr(kind ast.ScalarKind, key tsast.Expr) tsast.Expr {
	switch kind {
	case ast.String:
		return key
	case ast.Bool:
		return tsast.BinaryExpr{Op: "===", Left: key, Right: tsast.StringLit{Value: "true"}}
	default:
		return tsast.CallExpr{Callee: tsast.Ident{Name: "Number"}, Args: []tsast.Expr{key}}
	}
}
