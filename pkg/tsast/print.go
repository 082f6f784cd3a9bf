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

package tsast

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Print renders f deterministically: import declarations first (sorted by
// module specifier), then every other declaration in the order it was
// added. Printing never reorders non-import declarations, so callers
// control the visible structure of a generated file.
func Print(w io.Writer, f *SourceFile) error {
	p := &printer{w: w}

	var imports []*ImportDecl
	var rest []Decl
	for _, d := range f.Decls {
		if imp, ok := d.(*ImportDecl); ok {
			imports = append(imports, imp)
			continue
		}
		rest = append(rest, d)
	}
	sort.Slice(imports, func(i, j int) bool { return imports[i].From < imports[j].From })
	for _, imp := range imports {
		p.printImport(imp)
	}
	if len(imports) > 0 {
		p.nl()
	}
	for i, d := range rest {
		if i > 0 {
			p.nl()
		}
		p.printDecl(d)
	}
	return p.err
}

type printer struct {
	w     io.Writer
	err   error
	depth int
}

func (p *printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) nl() { p.write("\n") }

func (p *printer) indent() string { return strings.Repeat("  ", p.depth) }

func (p *printer) printImport(imp *ImportDecl) {
	names := append([]string(nil), imp.Names...)
	sort.Strings(names)
	p.write(fmt.Sprintf("import { %s } from %q;\n", strings.Join(names, ", "), imp.From))
}

func (p *printer) printDecl(d Decl) {
	switch v := d.(type) {
	case *InterfaceDecl:
		p.printInterface(v)
	case *EnumDecl:
		p.printEnum(v)
	case *FunctionDecl:
		p.printFunction(v)
	case *ImportDecl:
		p.printImport(v)
	}
}

func (p *printer) printInterface(d *InterfaceDecl) {
	p.write(fmt.Sprintf("export interface %s {\n", d.Name))
	p.depth++
	for _, m := range d.Members {
		opt := ""
		if m.Optional {
			opt = "?"
		}
		p.write(fmt.Sprintf("%s%s%s: %s;\n", p.indent(), m.Name, opt, printType(m.Type)))
	}
	p.depth--
	p.write("}\n")
}

func (p *printer) printEnum(d *EnumDecl) {
	p.write(fmt.Sprintf("export enum %s {\n", d.Name))
	p.depth++
	for _, m := range d.Members {
		p.write(fmt.Sprintf("%s%s = %d,\n", p.indent(), m.Name, m.Value))
	}
	p.depth--
	p.write("}\n")
}

func (p *printer) printFunction(d *FunctionDecl) {
	params := make([]string, len(d.Params))
	for i, param := range d.Params {
		opt := ""
		if param.Optional {
			opt = "?"
		}
		params[i] = fmt.Sprintf("%s%s: %s", param.Name, opt, printType(param.Type))
	}
	p.write(fmt.Sprintf("export function %s(%s): %s {\n", d.Name, strings.Join(params, ", "), printType(d.ReturnType)))
	p.depth++
	p.printStmts(d.Body)
	p.depth--
	p.write("}\n")
}

func (p *printer) printStmts(stmts []Stmt) {
	for _, s := range stmts {
		p.printStmt(s)
	}
}

func (p *printer) printStmt(s Stmt) {
	ind := p.indent()
	switch v := s.(type) {
	case ExprStmt:
		p.write(fmt.Sprintf("%s%s;\n", ind, printExpr(v.Expr)))
	case ReturnStmt:
		if v.Expr == nil {
			p.write(ind + "return;\n")
		} else {
			p.write(fmt.Sprintf("%sreturn %s;\n", ind, printExpr(v.Expr)))
		}
	case BreakStmt:
		p.write(ind + "break;\n")
	case VarStmt:
		kw := "const"
		if v.Kind == Let {
			kw = "let"
		}
		typeAnn := ""
		if v.Type != nil {
			typeAnn = ": " + printType(v.Type)
		}
		init := ""
		if v.Init != nil {
			init = " = " + printExpr(v.Init)
		}
		p.write(fmt.Sprintf("%s%s %s%s%s;\n", ind, kw, v.Name, typeAnn, init))
	case IfStmt:
		p.write(fmt.Sprintf("%sif (%s) {\n", ind, printExpr(v.Cond)))
		p.depth++
		p.printStmts(v.Then)
		p.depth--
		if len(v.Else) > 0 {
			p.write(ind + "} else {\n")
			p.depth++
			p.printStmts(v.Else)
			p.depth--
		}
		p.write(ind + "}\n")
	case WhileStmt:
		p.write(fmt.Sprintf("%swhile (%s) {\n", ind, printExpr(v.Cond)))
		p.depth++
		p.printStmts(v.Body)
		p.depth--
		p.write(ind + "}\n")
	case ForStmt:
		initStr, condStr, postStr := "", "", ""
		if v.Init != nil {
			initStr = strings.TrimSuffix(strings.TrimSpace(p.captureStmt(v.Init)), ";")
		}
		if v.Cond != nil {
			condStr = printExpr(v.Cond)
		}
		if v.Post != nil {
			postStr = strings.TrimSuffix(strings.TrimSpace(p.captureStmt(v.Post)), ";")
		}
		p.write(fmt.Sprintf("%sfor (%s; %s; %s) {\n", ind, initStr, condStr, postStr))
		p.depth++
		p.printStmts(v.Body)
		p.depth--
		p.write(ind + "}\n")
	case ForOfStmt:
		p.write(fmt.Sprintf("%sfor (const %s of %s) {\n", ind, v.VarName, printExpr(v.Iterable)))
		p.depth++
		p.printStmts(v.Body)
		p.depth--
		p.write(ind + "}\n")
	case SwitchStmt:
		p.write(fmt.Sprintf("%sswitch (%s) {\n", ind, printExpr(v.Disc)))
		p.depth++
		for _, c := range v.Cases {
			if c.Test == nil {
				p.write(p.indent() + "default:\n")
			} else {
				p.write(fmt.Sprintf("%scase %s:\n", p.indent(), printExpr(c.Test)))
			}
			p.depth++
			p.printStmts(c.Body)
			p.depth--
		}
		p.depth--
		p.write(ind + "}\n")
	}
}

// captureStmt renders a single statement without its trailing newline, used
// for the init/post clauses of a ForStmt which print inline.
func (p *printer) captureStmt(s Stmt) string {
	var b strings.Builder
	sub := &printer{w: &b}
	sub.printStmt(s)
	return b.String()
}

func printType(t Type) string {
	switch v := t.(type) {
	case nil:
		return "void"
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
		return wrapIfUnion(v.Element) + "[]"
	case RecordType:
		return "Record<string, " + printType(v.Value) + ">"
	case TypeRef:
		return v.Name
	case UnionType:
		parts := make([]string, len(v.Members))
		for i, m := range v.Members {
			parts[i] = printType(m)
		}
		return strings.Join(parts, " | ")
	default:
		return "any"
	}
}

func wrapIfUnion(t Type) string {
	if _, ok := t.(UnionType); ok {
		return "(" + printType(t) + ")"
	}
	return printType(t)
}

func printExpr(e Expr) string {
	switch v := e.(type) {
	case Ident:
		return v.Name
	case NullLit:
		return "null"
	case UndefinedLit:
		return "undefined"
	case BoolLit:
		if v.Value {
			return "true"
		}
		return "false"
	case NumberLit:
		return v.Text
	case StringLit:
		return strconv.Quote(v.Value)
	case BinaryExpr:
		return printExpr(v.Left) + " " + v.Op + " " + printExpr(v.Right)
	case InstanceOfExpr:
		return printExpr(v.Left) + " instanceof " + printExpr(v.Right)
	case CallExpr:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = printExpr(a)
		}
		return printExpr(v.Callee) + "(" + strings.Join(args, ", ") + ")"
	case PropertyAccess:
		return printExpr(v.Object) + "." + v.Property
	case ElementAccess:
		return printExpr(v.Object) + "[" + printExpr(v.Index) + "]"
	case NewExpr:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = printExpr(a)
		}
		return "new " + printExpr(v.Callee) + "(" + strings.Join(args, ", ") + ")"
	case ParenExpr:
		return "(" + printExpr(v.Inner) + ")"
	case ArrayLit:
		elems := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = printExpr(el)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case ObjectLit:
		if len(v.Props) == 0 {
			return "{}"
		}
		parts := make([]string, len(v.Props))
		for i, prop := range v.Props {
			parts[i] = fmt.Sprintf("%s: %s", prop.Key, printExpr(prop.Value))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return "/* unknown expr */"
	}
}
