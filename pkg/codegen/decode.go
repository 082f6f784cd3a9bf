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

	"github.com/nilproto/protots/pkg/ast"
	"github.com/nilproto/protots/pkg/scope"
	"github.com/nilproto/protots/pkg/tsast"
	"github.com/nilproto/protots/pkg/tspath"
)

// EmitDecode builds a message's decode.ts: a single exported `decode`
// function reading a protobufjs Reader until it reaches the frame's end,
// dispatching on each tag's field number and falling back to
// `r.skipType` for anything unrecognized: unknown fields are skipped and
// dropped, not kept on the decoded message, and do not fail decoding.
func EmitDecode(ms *scope.MessageScope) *tsast.SourceFile {
	ctx := newEmitCtx(tspath.MessageDecodeFile(ms))
	ctx.importRuntime("Reader")
	ctx.importSymbol(tspath.MessageTypesFile(ms), ms.Name)

	var body []tsast.Stmt
	body = append(body, ternaryReaderDecl())
	body = append(body, tsast.VarStmt{
		Kind: tsast.Const, Name: "end",
		Init: ternaryLenOrEnd(),
	})
	body = append(body, tsast.VarStmt{
		Kind: tsast.Const, Name: "message", Type: tsast.TypeRef{Name: ms.Name},
		Init: ctx.defaultMessageObject(ms),
	})

	cases := make([]tsast.CaseClause, 0, len(ms.Fields)+1)
	for _, f := range ms.Fields {
		cases = append(cases, ctx.decodeFieldCase(f))
	}
	cases = append(cases, tsast.CaseClause{
		Test: nil,
		Body: []tsast.Stmt{
			tsast.ExprStmt{Expr: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "skipType"}, Args: []tsast.Expr{tsast.BinaryExpr{Op: "&", Left: tsast.Ident{Name: "tag"}, Right: tsast.NumberLit{Text: "7"}}}}},
			tsast.BreakStmt{},
		},
	})

	loopBody := []tsast.Stmt{
		tsast.VarStmt{Kind: tsast.Const, Name: "tag", Init: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "uint32"}}},
		tsast.SwitchStmt{
			Disc:  tsast.BinaryExpr{Op: ">>>", Left: tsast.Ident{Name: "tag"}, Right: tsast.NumberLit{Text: "3"}},
			Cases: cases,
		},
	}
	body = append(body, tsast.WhileStmt{
		Cond: tsast.BinaryExpr{Op: "<", Left: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "pos"}, Right: tsast.Ident{Name: "end"}},
		Body: loopBody,
	})
	body = append(body, tsast.ReturnStmt{Expr: tsast.Ident{Name: "message"}})

	fn := &tsast.FunctionDecl{
		Name: "decode",
		Params: []tsast.Param{
			{Name: "reader", Type: tsast.UnionType{Members: []tsast.Type{tsast.TypeRef{Name: "Reader"}, tsast.TypeRef{Name: "Uint8Array"}}}},
			{Name: "length", Type: tsast.NumberType{}, Optional: true},
		},
		ReturnType: tsast.TypeRef{Name: ms.Name},
		Body:       body,
	}
	ctx.file.Decls = append(ctx.file.Decls, fn)
	return ctx.file
}

// ternaryReaderDecl and ternaryLenOrEnd render the two ternary expressions
// every decode function opens with; protobufjs's own generated code uses
// the identical idiom, so it is spelled out directly instead of going
// through BinaryExpr's general-purpose operators.
func ternaryReaderDecl() tsast.Stmt {
	return tsast.VarStmt{
		Kind: tsast.Const, Name: "r",
		Init: tsast.Ident{Name: "reader instanceof Reader ? reader : Reader.create(reader)"},
	}
}

func ternaryLenOrEnd() tsast.Expr {
	return tsast.Ident{Name: "length === undefined ? r.len : r.pos + length"}
}

func (ctx *emitCtx) defaultMessageObject(ms *scope.MessageScope) tsast.Expr {
	obj := tsast.ObjectLit{}
	for _, f := range ms.Fields {
		if f.OneOf != nil {
			continue
		}
		obj.Props = append(obj.Props, tsast.ObjectProp{Key: f.JSONName, Value: defaultValueExpr(f.Type)})
	}
	return obj
}

func (ctx *emitCtx) decodeFieldCase(f *scope.Field) tsast.CaseClause {
	tag := tsast.NumberLit{Text: fmt.Sprintf("%d", f.Tag)}
	target := tsast.PropertyAccess{Object: tsast.Ident{Name: "message"}, Property: f.JSONName}

	var stmts []tsast.Stmt
	switch t := f.Type.(type) {
	case scope.RepeatedType:
		stmts = ctx.decodeRepeatedField(target, t)
	case scope.MapType:
		stmts = ctx.decodeMapField(target, t)
	case scope.MessageType:
		stmts = ctx.decodeMessageField(target, t)
	default:
		stmts = []tsast.Stmt{tsast.ExprStmt{Expr: tsast.BinaryExpr{Op: "=", Left: target, Right: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: scalarMethod(t)}}}}}
	}
	stmts = append(stmts, tsast.BreakStmt{})
	return tsast.CaseClause{Test: tag, Body: stmts}
}

func (ctx *emitCtx) decodeMessageField(target tsast.Expr, t scope.MessageType) []tsast.Stmt {
	alias := decodeAliasFor(t.Message)
	ctx.importSymbol(tspath.MessageDecodeFile(t.Message), alias)
	call := tsast.CallExpr{
		Callee: tsast.Ident{Name: alias},
		Args:   []tsast.Expr{tsast.Ident{Name: "r"}, tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "uint32"}}},
	}
	return []tsast.Stmt{tsast.ExprStmt{Expr: tsast.BinaryExpr{Op: "=", Left: target, Right: call}}}
}

func (ctx *emitCtx) decodeRepeatedField(target tsast.Expr, t scope.RepeatedType) []tsast.Stmt {
	reset := tsast.IfStmt{
		Cond: tsast.BinaryExpr{Op: "===", Left: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "Array"}, Property: "isArray"}, Args: []tsast.Expr{target}}, Right: tsast.BoolLit{Value: false}},
		Then: []tsast.Stmt{tsast.ExprStmt{Expr: tsast.BinaryExpr{Op: "=", Left: target, Right: tsast.ArrayLit{}}}},
	}

	if msgType, ok := t.Element.(scope.MessageType); ok {
		alias := decodeAliasFor(msgType.Message)
		ctx.importSymbol(tspath.MessageDecodeFile(msgType.Message), alias)
		push := tsast.ExprStmt{Expr: tsast.CallExpr{
			Callee: tsast.PropertyAccess{Object: target, Property: "push"},
			Args: []tsast.Expr{tsast.CallExpr{Callee: tsast.Ident{Name: alias}, Args: []tsast.Expr{
				tsast.Ident{Name: "r"},
				tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "uint32"}},
			}}},
		}}
		return []tsast.Stmt{reset, push}
	}

	method := scalarMethod(t.Element)
	pushOne := tsast.ExprStmt{Expr: tsast.CallExpr{
		Callee: tsast.PropertyAccess{Object: target, Property: "push"},
		Args:   []tsast.Expr{tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: method}}},
	}}
	if !isPackable(t.Element) {
		return []tsast.Stmt{reset, pushOne}
	}

	// Packable types may arrive either packed (a single length-delimited
	// run) or unpacked (one tag per element); proto3 decoders must accept
	// both regardless of which the encoder chose.
	branch := tsast.IfStmt{
		Cond: tsast.BinaryExpr{Op: "===", Left: tsast.ParenExpr{Inner: tsast.BinaryExpr{Op: "&", Left: tsast.Ident{Name: "tag"}, Right: tsast.NumberLit{Text: "7"}}}, Right: tsast.NumberLit{Text: "2"}},
		Then: []tsast.Stmt{
			tsast.VarStmt{Kind: tsast.Const, Name: "arrEnd", Init: tsast.BinaryExpr{Op: "+", Left: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "uint32"}}, Right: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "pos"}}},
			tsast.WhileStmt{
				Cond: tsast.BinaryExpr{Op: "<", Left: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "pos"}, Right: tsast.Ident{Name: "arrEnd"}},
				Body: []tsast.Stmt{pushOne},
			},
		},
		Else: []tsast.Stmt{pushOne},
	}
	return []tsast.Stmt{reset, branch}
}

func (ctx *emitCtx) decodeMapField(target tsast.Expr, t scope.MapType) []tsast.Stmt {
	keyScalar := t.Key.(scope.ScalarType)
	reset := tsast.IfStmt{
		Cond: tsast.BinaryExpr{Op: "==", Left: target, Right: tsast.NullLit{}},
		Then: []tsast.Stmt{tsast.ExprStmt{Expr: tsast.BinaryExpr{Op: "=", Left: target, Right: tsast.ObjectLit{}}}},
	}

	keyDecl := tsast.VarStmt{Kind: tsast.Let, Name: "entryKey", Type: tsast.StringType{}, Init: tsast.StringLit{Value: ""}}
	valueDecl := ctx.mapValueDecl(t.Value)
	entryEnd := tsast.VarStmt{Kind: tsast.Const, Name: "entryEnd", Init: tsast.BinaryExpr{Op: "+", Left: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "uint32"}}, Right: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "pos"}}}

	entryTagDecl := tsast.VarStmt{Kind: tsast.Const, Name: "entryTag", Init: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "uint32"}}}
	keyCase := tsast.CaseClause{Test: tsast.NumberLit{Text: "1"}, Body: []tsast.Stmt{
		tsast.ExprStmt{Expr: tsast.BinaryExpr{Op: "=", Left: tsast.Ident{Name: "entryKey"}, Right: mapKeyDecodeExpr(keyScalar.Kind)}},
		tsast.BreakStmt{},
	}}
	valueCase := tsast.CaseClause{Test: tsast.NumberLit{Text: "2"}, Body: append(ctx.mapValueDecodeStmts(t.Value), tsast.BreakStmt{})}
	defaultCase := tsast.CaseClause{Body: []tsast.Stmt{
		tsast.ExprStmt{Expr: tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "skipType"}, Args: []tsast.Expr{tsast.BinaryExpr{Op: "&", Left: tsast.Ident{Name: "entryTag"}, Right: tsast.NumberLit{Text: "7"}}}}},
		tsast.BreakStmt{},
	}}

	innerLoop := tsast.WhileStmt{
		Cond: tsast.BinaryExpr{Op: "<", Left: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "pos"}, Right: tsast.Ident{Name: "entryEnd"}},
		Body: []tsast.Stmt{
			entryTagDecl,
			tsast.SwitchStmt{Disc: tsast.BinaryExpr{Op: ">>>", Left: tsast.Ident{Name: "entryTag"}, Right: tsast.NumberLit{Text: "3"}}, Cases: []tsast.CaseClause{keyCase, valueCase, defaultCase}},
		},
	}

	assign := tsast.ExprStmt{Expr: tsast.BinaryExpr{
		Op:   "=",
		Left: tsast.ElementAccess{Object: target, Index: tsast.Ident{Name: "entryKey"}},
		Right: tsast.Ident{Name: "entryValue"},
	}}

	return []tsast.Stmt{reset, keyDecl, valueDecl, entryEnd, innerLoop, assign}
}

func (ctx *emitCtx) mapValueDecl(v scope.Type) tsast.Stmt {
	return tsast.VarStmt{Kind: tsast.Let, Name: "entryValue", Init: defaultValueExpr(v)}
}

func (ctx *emitCtx) mapValueDecodeStmts(v scope.Type) []tsast.Stmt {
	if msgType, ok := v.(scope.MessageType); ok {
		alias := decodeAliasFor(msgType.Message)
		ctx.importSymbol(tspath.MessageDecodeFile(msgType.Message), alias)
		call := tsast.CallExpr{Callee: tsast.Ident{Name: alias}, Args: []tsast.Expr{tsast.Ident{Name: "r"}, tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: "uint32"}}}}
		return []tsast.Stmt{tsast.ExprStmt{Expr: tsast.BinaryExpr{Op: "=", Left: tsast.Ident{Name: "entryValue"}, Right: call}}}
	}
	method := scalarMethod(v)
	call := tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: method}}
	return []tsast.Stmt{tsast.ExprStmt{Expr: tsast.BinaryExpr{Op: "=", Left: tsast.Ident{Name: "entryValue"}, Right: call}}}
}

func mapKeyDecodeExpr(kind ast.ScalarKind) tsast.Expr {
	call := tsast.CallExpr{Callee: tsast.PropertyAccess{Object: tsast.Ident{Name: "r"}, Property: readerWriterMethod(kind)}}
	switch kind {
	case ast.String:
		return call
	case ast.Bool:
		return tsast.CallExpr{Callee: tsast.PropertyAccess{Object: call, Property: "toString"}}
	default:
		return tsast.CallExpr{Callee: tsast.PropertyAccess{Object: call, Property: "toString"}}
	}
}
