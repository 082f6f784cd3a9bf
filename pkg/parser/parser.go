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

// Package parser implements a recursive-descent proto3 parser producing a
// pkg/ast.File. It understands messages, enums, oneofs, maps, repeated
// fields and imports; it does not attempt services, proto2, custom options,
// extensions or groups, all of which are explicitly out of scope.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nilproto/protots/pkg/ast"
	"github.com/nilproto/protots/pkg/compilerrors"
	"github.com/nilproto/protots/pkg/token"
)

var scalarKeywords = map[string]ast.ScalarKind{
	"bool":     ast.Bool,
	"bytes":    ast.Bytes,
	"double":   ast.Double,
	"fixed32":  ast.Fixed32,
	"fixed64":  ast.Fixed64,
	"float":    ast.Float,
	"int32":    ast.Int32,
	"int64":    ast.Int64,
	"sfixed32": ast.SFixed32,
	"sfixed64": ast.SFixed64,
	"sint32":   ast.SInt32,
	"sint64":   ast.SInt64,
	"string":   ast.String,
	"uint32":   ast.UInt32,
	"uint64":   ast.UInt64,
}

// Parser consumes a Lexer's Token stream and builds a pkg/ast.File. Create
// one per file; Parser holds mutable lookahead state and is not reusable
// across inputs.
type Parser struct {
	lex  *token.Lexer
	cur  token.Token
	peek token.Token
}

// New creates a Parser over the given proto3 source text.
func New(fileName, src string) *Parser {
	p := &Parser{lex: token.NewLexer(src)}
	p.cur = p.lex.Next()
	p.peek = p.lex.Next()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) errorf(format string, args ...any) *compilerrors.CompilerError {
	return compilerrors.NewSyntaxError(fmt.Sprintf("%s (at %s)", fmt.Sprintf(format, args...), p.cur.Pos()))
}

func (p *Parser) expectSymbol(sym string) error {
	if p.cur.Kind != token.Symbol || p.cur.Text != sym {
		return p.errorf("expected %q, found %q", sym, p.cur.Text)
	}
	p.advance()
	return nil
}

func (p *Parser) expectIdent() (string, error) {
	if p.cur.Kind != token.Ident {
		return "", p.errorf("expected identifier, found %q", p.cur.Text)
	}
	name := p.cur.Text
	p.advance()
	return name, nil
}

// ParseFile parses the full contents of one proto3 source file. fileName is
// recorded on the resulting File for diagnostics and path computation; it
// is not reopened or read by the parser.
func ParseFile(fileName, src string) (*ast.File, error) {
	p := New(fileName, src)
	f := &ast.File{Name: fileName}

	for p.cur.Kind != token.EOF {
		switch {
		case p.cur.Kind == token.Ident && p.cur.Text == "syntax":
			if err := p.parseSyntax(); err != nil {
				return nil, err
			}
		case p.cur.Kind == token.Ident && p.cur.Text == "package":
			pkg, err := p.parsePackage()
			if err != nil {
				return nil, err
			}
			f.Package = pkg
		case p.cur.Kind == token.Ident && p.cur.Text == "import":
			imp, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			f.Imports = append(f.Imports, imp)
		case p.cur.Kind == token.Ident && p.cur.Text == "message":
			msg, err := p.parseMessage()
			if err != nil {
				return nil, err
			}
			f.Declarations = append(f.Declarations, msg)
		case p.cur.Kind == token.Ident && p.cur.Text == "enum":
			enum, err := p.parseEnum()
			if err != nil {
				return nil, err
			}
			f.Declarations = append(f.Declarations, enum)
		case p.cur.Kind == token.Symbol && p.cur.Text == ";":
			p.advance()
		default:
			return nil, p.errorf("unexpected top-level token %q", p.cur.Text)
		}
	}
	return f, nil
}

func (p *Parser) parseSyntax() error {
	p.advance() // "syntax"
	if err := p.expectSymbol("="); err != nil {
		return err
	}
	if p.cur.Kind != token.String {
		return p.errorf("expected quoted syntax version, found %q", p.cur.Text)
	}
	version := p.cur.Text
	p.advance()
	if err := p.expectSymbol(";"); err != nil {
		return err
	}
	if version != "proto3" {
		return compilerrors.NewUnsupportedVersionError(fmt.Sprintf("unsupported syntax %q, only proto3 is supported", version))
	}
	return nil
}

func (p *Parser) parsePackage() (string, error) {
	p.advance() // "package"
	name, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	if err := p.expectSymbol(";"); err != nil {
		return "", err
	}
	return name, nil
}

func (p *Parser) parseImport() (*ast.ImportDecl, error) {
	p.advance() // "import"
	if p.cur.Kind == token.Ident && (p.cur.Text == "public" || p.cur.Text == "weak") {
		p.advance()
	}
	if p.cur.Kind != token.String {
		return nil, p.errorf("expected quoted import path, found %q", p.cur.Text)
	}
	path := p.cur.Text
	p.advance()
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	return &ast.ImportDecl{Path: path}, nil
}

func (p *Parser) parseMessage() (*ast.MessageDeclaration, error) {
	p.advance() // "message"
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	msg := &ast.MessageDeclaration{Name: name}
	for {
		if p.cur.Kind == token.Symbol && p.cur.Text == "}" {
			p.advance()
			break
		}
		if p.cur.Kind == token.EOF {
			return nil, p.errorf("unexpected end of file inside message %q", name)
		}
		switch {
		case p.cur.Kind == token.Symbol && p.cur.Text == ";":
			p.advance()
		case p.cur.Kind == token.Ident && p.cur.Text == "message":
			nested, err := p.parseMessage()
			if err != nil {
				return nil, err
			}
			msg.NestedMessages = append(msg.NestedMessages, nested)
		case p.cur.Kind == token.Ident && p.cur.Text == "enum":
			nested, err := p.parseEnum()
			if err != nil {
				return nil, err
			}
			msg.NestedEnums = append(msg.NestedEnums, nested)
		case p.cur.Kind == token.Ident && p.cur.Text == "oneof":
			oneof, err := p.parseOneOf()
			if err != nil {
				return nil, err
			}
			msg.OneOfs = append(msg.OneOfs, oneof)
		case p.cur.Kind == token.Ident && p.cur.Text == "reserved":
			if err := p.skipStatement(); err != nil {
				return nil, err
			}
		default:
			field, err := p.parseField()
			if err != nil {
				return nil, err
			}
			msg.Fields = append(msg.Fields, field)
		}
	}
	return msg, nil
}

func (p *Parser) parseOneOf() (*ast.OneOfDeclaration, error) {
	p.advance() // "oneof"
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	oneof := &ast.OneOfDeclaration{Name: name}
	for {
		if p.cur.Kind == token.Symbol && p.cur.Text == "}" {
			p.advance()
			break
		}
		if p.cur.Kind == token.Symbol && p.cur.Text == ";" {
			p.advance()
			continue
		}
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		oneof.Fields = append(oneof.Fields, field)
	}
	return oneof, nil
}

func (p *Parser) parseEnum() (*ast.EnumDeclaration, error) {
	p.advance() // "enum"
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	enum := &ast.EnumDeclaration{Name: name}
	for {
		if p.cur.Kind == token.Symbol && p.cur.Text == "}" {
			p.advance()
			break
		}
		if p.cur.Kind == token.Symbol && p.cur.Text == ";" {
			p.advance()
			continue
		}
		if p.cur.Kind == token.Ident && p.cur.Text == "reserved" {
			if err := p.skipStatement(); err != nil {
				return nil, err
			}
			continue
		}
		valName, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		if p.cur.Kind != token.Int {
			return nil, p.errorf("expected enum value number, found %q", p.cur.Text)
		}
		n, err := strconv.ParseInt(p.cur.Text, 10, 32)
		if err != nil {
			return nil, p.errorf("invalid enum value number %q: %v", p.cur.Text, err)
		}
		p.advance()
		if err := p.skipOptionalOptions(); err != nil {
			return nil, err
		}
		if err := p.expectSymbol(";"); err != nil {
			return nil, err
		}
		enum.Values = append(enum.Values, &ast.EnumValueDeclaration{Name: valName, Number: int32(n)})
	}
	return enum, nil
}

func (p *Parser) parseField() (*ast.FieldDeclaration, error) {
	repeated := false
	if p.cur.Kind == token.Ident && p.cur.Text == "repeated" {
		repeated = true
		p.advance()
	}

	var fieldType ast.FieldType
	if p.cur.Kind == token.Ident && p.cur.Text == "map" {
		mapType, err := p.parseMapType()
		if err != nil {
			return nil, err
		}
		fieldType = mapType
	} else {
		t, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		fieldType = t
	}
	if repeated {
		fieldType = ast.Repeated{Element: fieldType}
	}

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("="); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.Int {
		return nil, p.errorf("expected field tag number, found %q", p.cur.Text)
	}
	tag, err := strconv.Atoi(p.cur.Text)
	if err != nil {
		return nil, p.errorf("invalid field tag %q: %v", p.cur.Text, err)
	}
	p.advance()

	jsonName, err := p.parseFieldOptions()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	return &ast.FieldDeclaration{Name: name, Type: fieldType, Tag: tag, JSONName: jsonName}, nil
}

func (p *Parser) parseMapType() (ast.Map, error) {
	p.advance() // "map"
	if err := p.expectSymbol("<"); err != nil {
		return ast.Map{}, err
	}
	key, err := p.parseTypeRef()
	if err != nil {
		return ast.Map{}, err
	}
	if err := p.expectSymbol(","); err != nil {
		return ast.Map{}, err
	}
	value, err := p.parseTypeRef()
	if err != nil {
		return ast.Map{}, err
	}
	if err := p.expectSymbol(">"); err != nil {
		return ast.Map{}, err
	}
	return ast.Map{Key: key, Value: value}, nil
}

func (p *Parser) parseTypeRef() (ast.FieldType, error) {
	if p.cur.Kind != token.Ident {
		return nil, p.errorf("expected type name, found %q", p.cur.Text)
	}
	if kind, ok := scalarKeywords[p.cur.Text]; ok {
		p.advance()
		return ast.Scalar{Kind: kind}, nil
	}
	name := p.cur.Text
	p.advance()
	return ast.IDPath{Parts: strings.Split(name, ".")}, nil
}

// parseFieldOptions consumes an optional `[...]` option block, returning the
// json_name option's value if present.
func (p *Parser) parseFieldOptions() (string, error) {
	if !(p.cur.Kind == token.Symbol && p.cur.Text == "[") {
		return "", nil
	}
	p.advance()
	jsonName := ""
	for {
		optName, err := p.expectIdent()
		if err != nil {
			return "", err
		}
		if err := p.expectSymbol("="); err != nil {
			return "", err
		}
		var val string
		if p.cur.Kind == token.String {
			val = p.cur.Text
			p.advance()
		} else {
			val = p.cur.Text
			p.advance()
		}
		if optName == "json_name" {
			jsonName = val
		}
		if p.cur.Kind == token.Symbol && p.cur.Text == "," {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectSymbol("]"); err != nil {
		return "", err
	}
	return jsonName, nil
}

func (p *Parser) skipOptionalOptions() error {
	if !(p.cur.Kind == token.Symbol && p.cur.Text == "[") {
		return nil
	}
	depth := 0
	for {
		if p.cur.Kind == token.EOF {
			return p.errorf("unexpected end of file inside options")
		}
		if p.cur.Kind == token.Symbol && p.cur.Text == "[" {
			depth++
		}
		if p.cur.Kind == token.Symbol && p.cur.Text == "]" {
			depth--
			p.advance()
			if depth == 0 {
				return nil
			}
			continue
		}
		p.advance()
	}
}

// skipStatement consumes tokens up to and including the next top-level ";",
// used for constructs (reserved ranges) the compiler intentionally does not
// model.
func (p *Parser) skipStatement() error {
	for {
		if p.cur.Kind == token.EOF {
			return p.errorf("unexpected end of file")
		}
		if p.cur.Kind == token.Symbol && p.cur.Text == ";" {
			p.advance()
			return nil
		}
		p.advance()
	}
}
