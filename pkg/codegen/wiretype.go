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
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/nilproto/protots/pkg/ast"
	"github.com/nilproto/protots/pkg/scope"
	"github.com/nilproto/protots/pkg/tsast"
)

// Wire types are protowire.Type, the same vocabulary
// google.golang.org/protobuf uses to decode the format this package's
// generated code writes: VarintType, Fixed64Type, BytesType, Fixed32Type.
// Aliased here so call sites read as wire-format terms rather than a
// stuttering "protowire.VarintType".
const (
	wireVarint  = protowire.VarintType
	wireFixed64 = protowire.Fixed64Type
	wireLength  = protowire.BytesType
	wireFixed32 = protowire.Fixed32Type
)

// basicWireType returns the wire type a scalar field uses, matching
// protobuf's fixed per-type assignment.
func basicWireType(kind ast.ScalarKind) protowire.Type {
	switch kind {
	case ast.Bool, ast.Int32, ast.Int64, ast.SInt32, ast.SInt64, ast.UInt32, ast.UInt64:
		return wireVarint
	case ast.Double, ast.Fixed64, ast.SFixed64:
		return wireFixed64
	case ast.Bytes, ast.String:
		return wireLength
	case ast.Fixed32, ast.Float, ast.SFixed32:
		return wireFixed32
	default:
		return wireVarint
	}
}

// wireTypeOf returns the wire type a resolved Type uses on the wire: its
// scalar's fixed assignment, int32 for an enum (proto3 always encodes
// enums as int32 varints), or length-delimited for anything else (a
// message or a map entry, both length-prefixed submessages).
func wireTypeOf(t scope.Type) protowire.Type {
	switch v := t.(type) {
	case scope.ScalarType:
		return basicWireType(v.Kind)
	case scope.EnumType:
		return wireVarint
	default:
		return wireLength
	}
}

// isPackable reports whether repeated fields of this Type may use the
// packed wire encoding: every scalar type except the length-delimited
// ones, plus enums.
func isPackable(t scope.Type) bool {
	switch v := t.(type) {
	case scope.ScalarType:
		return v.Kind != ast.Bytes && v.Kind != ast.String
	case scope.EnumType:
		return true
	default:
		return false
	}
}

// readerWriterMethod returns the protobufjs Reader/Writer method name for a
// scalar kind; protobufjs names its methods identically to the proto
// keyword, so this is a direct mapping.
func readerWriterMethod(kind ast.ScalarKind) string {
	return kind.String()
}

// defaultValueExpr returns the TypeScript expression a decoded message
// initializes a field to before the decode loop overwrites it, matching
// proto3's documented scalar zero values.
func defaultValueExpr(t scope.Type) tsast.Expr {
	switch v := t.(type) {
	case scope.ScalarType:
		switch v.Kind {
		case ast.Bool:
			return tsast.BoolLit{Value: false}
		case ast.String:
			return tsast.StringLit{Value: ""}
		case ast.Bytes:
			return tsast.NewExpr{Callee: tsast.Ident{Name: "Uint8Array"}}
		default:
			return tsast.NumberLit{Text: "0"}
		}
	case scope.EnumType:
		return tsast.NumberLit{Text: "0"}
	case scope.RepeatedType:
		return tsast.ArrayLit{}
	case scope.MapType:
		return tsast.ObjectLit{}
	case scope.MessageType:
		return tsast.NullLit{}
	default:
		return tsast.NullLit{}
	}
}
