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

// Package tsast is a small, closed TypeScript syntax tree covering exactly
// the constructs the codegen emitters produce: imports, interfaces,
// numeric enums, and functions built from the handful of statement and
// expression forms a wire-format encoder/decoder needs. It is not a
// general-purpose TypeScript AST.
package tsast

// Type is the closed set of TypeScript type annotations the emitters use.
type Type interface{ tsType() }

type NumberType struct{}
type StringType struct{}
type BooleanType struct{}
type VoidType struct{}
type NullType struct{}
type UndefinedType struct{}
type AnyType struct{}

func (NumberType) tsType()    {}
func (StringType) tsType()    {}
func (BooleanType) tsType()   {}
func (VoidType) tsType()      {}
func (NullType) tsType()      {}
func (UndefinedType) tsType() {}
func (AnyType) tsType()       {}

// ArrayType is `T[]`.
type ArrayType struct{ Element Type }

func (ArrayType) tsType() {}

// RecordType is `Record<string, T>`, the TypeScript shape of a proto map
// field (proto3 map keys are always TS `string` once resolved).
type RecordType struct{ Value Type }

func (RecordType) tsType() {}

// UnionType is `A | B | ...`, deduplicating on insertion via Add.
type UnionType struct{ Members []Type }

func (UnionType) tsType() {}

// Add appends member to the union unless an equal member (by TypeKey) is
// already present.
func (u *UnionType) Add(member Type) {
	key := TypeKey(member)
	for _, m := range u.Members {
		if TypeKey(m) == key {
			return
		}
	}
	u.Members = append(u.Members, member)
}

// TypeRef is a named type: an imported interface, enum or class.
type TypeRef struct{ Name string }

func (TypeRef) tsType() {}

// TypeKey renders a Type into a stable string for deduplication purposes
// (e.g. inside UnionType.Add); it is not meant for user-facing output.
func TypeKey(t Type) string {
	switch v := t.(type) {
	case NumberType:
		return "number"
	case StringType:
		return "string"
	case BooleanType:
		return "boolean"
	case VoidType:
		return "void"
	case NullType:
		return "null"
	case UndefinedType:
		return "undefined"
	case AnyType:
		return "any"
	case ArrayType:
		return TypeKey(v.Element) + "[]"
	case RecordType:
		return "Record<string," + TypeKey(v.Value) + ">"
	case TypeRef:
		return v.Name
	case UnionType:
		s := ""
		for i, m := range v.Members {
			if i > 0 {
				s += "|"
			}
			s += TypeKey(m)
		}
		return s
	default:
		return "?"
	}
}

// Expr is the closed set of expression forms the emitters build.
type Expr interface{ exprNode() }

type Ident struct{ Name string }
type NullLit struct{}
type UndefinedLit struct{}
type BoolLit struct{ Value bool }
type NumberLit struct{ Text string } // pre-formatted so callers control 0 vs 0.0 vs hex
type StringLit struct{ Value string }

func (Ident) exprNode()        {}
func (NullLit) exprNode()      {}
func (UndefinedLit) exprNode() {}
func (BoolLit) exprNode()      {}
func (NumberLit) exprNode()    {}
func (StringLit) exprNode()    {}

// BinaryExpr is `Left Op Right`, e.g. `a !== null`.
type BinaryExpr struct {
	Op          string
	Left, Right Expr
}

func (BinaryExpr) exprNode() {}

// CallExpr is `Callee(Args...)`.
type CallExpr struct {
	Callee Expr
	Args   []Expr
}

func (CallExpr) exprNode() {}

// PropertyAccess is `Object.Property`.
type PropertyAccess struct {
	Object   Expr
	Property string
}

func (PropertyAccess) exprNode() {}

// ElementAccess is `Object[Index]`.
type ElementAccess struct {
	Object Expr
	Index  Expr
}

func (ElementAccess) exprNode() {}

// NewExpr is `new Callee(Args...)`.
type NewExpr struct {
	Callee Expr
	Args   []Expr
}

func (NewExpr) exprNode() {}

// ParenExpr is `(Inner)`.
type ParenExpr struct{ Inner Expr }

func (ParenExpr) exprNode() {}

// ArrayLit is `[Elements...]`.
type ArrayLit struct{ Elements []Expr }

func (ArrayLit) exprNode() {}

// ObjectProp is one `key: value` pair of an ObjectLit.
type ObjectProp struct {
	Key   string
	Value Expr
}

// ObjectLit is `{Props...}`.
type ObjectLit struct{ Props []ObjectProp }

func (ObjectLit) exprNode() {}

// InstanceOfExpr is `Left instanceof Right`.
type InstanceOfExpr struct{ Left, Right Expr }

func (InstanceOfExpr) exprNode() {}

// Stmt is the closed set of statement forms the emitters build.
type Stmt interface{ stmtNode() }

type ExprStmt struct{ Expr Expr }
type ReturnStmt struct{ Expr Expr } // Expr nil for a bare `return;`
type BreakStmt struct{}

func (ExprStmt) stmtNode()   {}
func (ReturnStmt) stmtNode() {}
func (BreakStmt) stmtNode()  {}

// VarKind distinguishes `const` from `let` declarations.
type VarKind int

const (
	Const VarKind = iota
	Let
)

// VarStmt is a single-binding `const name: Type = Init;` or `let` statement.
// Type may be nil to let TypeScript infer it.
type VarStmt struct {
	Kind VarKind
	Name string
	Type Type
	Init Expr
}

func (VarStmt) stmtNode() {}

// IfStmt is `if (Cond) { Then } else { Else }`. Else may be nil.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
}

func (IfStmt) stmtNode() {}

// WhileStmt is `while (Cond) { Body }`.
type WhileStmt struct {
	Cond Expr
	Body []Stmt
}

func (WhileStmt) stmtNode() {}

// ForStmt is a classic three-clause `for (Init; Cond; Post) { Body }`. Any
// of Init/Cond/Post may be nil.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Post Stmt
	Body []Stmt
}

func (ForStmt) stmtNode() {}

// ForOfStmt is `for (const VarName of Iterable) { Body }`, used to walk a
// map field's keys.
type ForOfStmt struct {
	VarName  string
	Iterable Expr
	Body     []Stmt
}

func (ForOfStmt) stmtNode() {}

// CaseClause is one `case Test:` arm of a SwitchStmt. Test nil marks the
// default arm.
type CaseClause struct {
	Test Expr
	Body []Stmt
}

// SwitchStmt is `switch (Disc) { Cases... }`.
type SwitchStmt struct {
	Disc  Expr
	Cases []CaseClause
}

func (SwitchStmt) stmtNode() {}

// Decl is the closed set of top-level declarations a generated file holds.
type Decl interface{ declNode() }

// ImportDecl is `import { Names... } from "From";`.
type ImportDecl struct {
	Names []string
	From  string
}

func (*ImportDecl) declNode() {}

// PropertySig is one member of an InterfaceDecl.
type PropertySig struct {
	Name     string
	Optional bool
	Type     Type
}

// InterfaceDecl is `export interface Name { Members... }`.
type InterfaceDecl struct {
	Name    string
	Members []PropertySig
}

func (*InterfaceDecl) declNode() {}

// EnumMember is one `Name = Value,` line of an EnumDecl.
type EnumMember struct {
	Name  string
	Value int32
}

// EnumDecl is `export enum Name { Members... }`.
type EnumDecl struct {
	Name    string
	Members []EnumMember
}

func (*EnumDecl) declNode() {}

// Param is one parameter of a FunctionDecl.
type Param struct {
	Name     string
	Type     Type
	Optional bool
}

// FunctionDecl is `export function Name(Params...): ReturnType { Body }`.
type FunctionDecl struct {
	Name       string
	Params     []Param
	ReturnType Type
	Body       []Stmt
}

func (*FunctionDecl) declNode() {}

// SourceFile is one generated ".ts" file: a flat list of declarations,
// always printed imports-first regardless of insertion order.
type SourceFile struct {
	Decls []Decl
}
