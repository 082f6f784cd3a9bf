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

package scope

import (
	"fmt"
	"strings"

	"github.com/nilproto/protots/pkg/ast"
	"github.com/nilproto/protots/pkg/compilerrors"
	"github.com/nilproto/protots/pkg/naming"
)

// resolver holds the scratch state used while turning a Builder's mutable
// node arena into an immutable RootScope. It exists only for the duration
// of one Resolve call.
type resolver struct {
	b        *Builder
	names    *naming.Converter
	messages map[int]*MessageScope
	enums    map[int]*EnumScope
	files    map[int]*FileScope
}

// Resolve walks every node a Builder has accumulated and produces an
// immutable RootScope. It is the only exported entry point of the two-phase
// build: call Builder.AddFile/LoadWellKnown until every source and
// well-known file is registered, then call Resolve once.
func Resolve(b *Builder) (*RootScope, error) {
	r := &resolver{
		b:        b,
		names:    naming.NewConverter(),
		messages: map[int]*MessageScope{},
		enums:    map[int]*EnumScope{},
		files:    map[int]*FileScope{},
	}

	// Phase 1: allocate every scope object up front so that field type
	// resolution, which may reference a type declared later in file order,
	// can always find its target.
	for _, n := range r.b.nodes {
		switch n.kind {
		case fileKind:
			r.files[n.id] = &FileScope{
				ID:          n.id,
				Name:        n.fileAST.Name,
				Package:     n.fileAST.Package,
				IsWellKnown: strings.HasPrefix(n.fileAST.Name, "google/protobuf/"),
			}
		case messageKind:
			r.messages[n.id] = &MessageScope{ID: n.id, Name: n.name, ProtoPath: r.protoPath(n.id)}
		case enumKind:
			r.enums[n.id] = &EnumScope{ID: n.id, Name: n.name, ProtoPath: r.protoPath(n.id)}
		}
	}

	// Phase 2: link parent/file/nested pointers, now that every object
	// exists.
	for _, n := range r.b.nodes {
		switch n.kind {
		case fileKind:
			fs := r.files[n.id]
			for _, cid := range n.children {
				c := r.b.node(cid)
				switch c.kind {
				case messageKind:
					r.messages[cid].File = fs
					fs.Messages = append(fs.Messages, r.messages[cid])
				case enumKind:
					r.enums[cid].File = fs
					fs.Enums = append(fs.Enums, r.enums[cid])
				}
			}
		case messageKind:
			ms := r.messages[n.id]
			ms.File = r.fileOf(n.id)
			if parentMsg, ok := r.messages[n.parent]; ok {
				ms.Parent = parentMsg
			}
			for _, cid := range n.children {
				c := r.b.node(cid)
				switch c.kind {
				case messageKind:
					r.messages[cid].File = ms.File
					r.messages[cid].Parent = ms
					ms.NestedMessages = append(ms.NestedMessages, r.messages[cid])
				case enumKind:
					r.enums[cid].File = ms.File
					r.enums[cid].Parent = ms
					ms.NestedEnums = append(ms.NestedEnums, r.enums[cid])
				}
			}
		}
	}

	// Phase 3: resolve each file's imports to FileScopes.
	for _, n := range r.b.nodes {
		if n.kind != fileKind {
			continue
		}
		fs := r.files[n.id]
		for _, imp := range n.fileAST.Imports {
			target, err := r.resolveImport(imp.Path)
			if err != nil {
				return nil, err.WithChain(fs.Name)
			}
			fs.Imports = append(fs.Imports, target)
		}
	}

	// Phase 4: resolve enum values and field types.
	for _, n := range r.b.nodes {
		if n.kind != enumKind {
			continue
		}
		es := r.enums[n.id]
		for _, v := range n.enumAST.Values {
			es.Values = append(es.Values, EnumValue{Name: v.Name, Number: v.Number})
		}
	}
	for _, n := range r.b.nodes {
		if n.kind != messageKind {
			continue
		}
		if err := r.resolveMessageFields(n); err != nil {
			return nil, err
		}
	}

	root := &RootScope{}
	for _, n := range r.b.nodes {
		if n.kind == fileKind {
			root.Files = append(root.Files, r.files[n.id])
		}
	}
	for _, n := range r.b.nodes {
		if n.kind == messageKind {
			root.AllMessages = append(root.AllMessages, r.messages[n.id])
		}
		if n.kind == enumKind {
			root.AllEnums = append(root.AllEnums, r.enums[n.id])
		}
	}
	return root, nil
}

func (r *resolver) fileOf(id int) *FileScope {
	cur := id
	for {
		n := r.b.node(cur)
		if n.kind == fileKind {
			return r.files[n.id]
		}
		cur = n.parent
	}
}

func (r *resolver) protoPath(id int) []string {
	var chain []int
	cur := id
	for cur != r.b.rootID {
		chain = append(chain, cur)
		cur = r.b.node(cur).parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	var parts []string
	for _, cid := range chain {
		n := r.b.node(cid)
		if n.kind == fileKind {
			continue
		}
		parts = append(parts, n.name)
	}
	return parts
}

// resolveImport matches an `import "path";` statement against a registered
// source or well-known file by exact name.
func (r *resolver) resolveImport(path string) (*FileScope, *compilerrors.CompilerError) {
	for _, n := range r.b.nodes {
		if n.kind == fileKind && n.fileAST.Name == path {
			return r.files[n.id], nil
		}
	}
	return nil, compilerrors.NewUnresolvedImportError(fmt.Sprintf("import %q does not match any parsed or well-known file", path))
}

func (r *resolver) resolveMessageFields(n *node) error {
	ms := r.messages[n.id]
	for _, fd := range n.messageAST.Fields {
		f, err := r.resolveField(n.id, fd, nil)
		if err != nil {
			return err
		}
		ms.Fields = append(ms.Fields, f)
	}
	for _, od := range n.messageAST.OneOfs {
		group := &OneOfGroup{Name: od.Name}
		for _, fd := range od.Fields {
			f, err := r.resolveField(n.id, fd, group)
			if err != nil {
				return err
			}
			group.Fields = append(group.Fields, f)
			ms.Fields = append(ms.Fields, f)
		}
		ms.OneOfs = append(ms.OneOfs, group)
	}
	return nil
}

func (r *resolver) resolveField(msgNodeID int, fd *ast.FieldDeclaration, group *OneOfGroup) (*Field, error) {
	t, err := r.resolveFieldType(msgNodeID, fd.Type)
	if err != nil {
		return nil, err.WithChain(r.messages[msgNodeID].QualifiedName())
	}
	jsonName := fd.JSONName
	if jsonName == "" {
		jsonName = r.names.ToCamelCase(fd.Name)
	}
	return &Field{Name: fd.Name, JSONName: jsonName, Tag: fd.Tag, Type: t, OneOf: group}, nil
}

func (r *resolver) resolveFieldType(fromID int, t ast.FieldType) (Type, *compilerrors.CompilerError) {
	switch v := t.(type) {
	case ast.Scalar:
		return ScalarType{Kind: v.Kind}, nil
	case ast.IDPath:
		return r.resolveIDPath(fromID, v)
	case ast.Repeated:
		elem, err := r.resolveFieldType(fromID, v.Element)
		if err != nil {
			return nil, err
		}
		return RepeatedType{Element: elem}, nil
	case ast.Map:
		key, err := r.resolveFieldType(fromID, v.Key)
		if err != nil {
			return nil, err
		}
		value, err := r.resolveFieldType(fromID, v.Value)
		if err != nil {
			return nil, err
		}
		if !isLegalMapKey(key) {
			return nil, compilerrors.NewInvalidMapKeyError(fmt.Sprintf("map key type %v is not a legal proto3 map key", key))
		}
		return MapType{Key: key, Value: value}, nil
	default:
		return nil, compilerrors.NewSyntaxError("unknown field type reference")
	}
}

func isLegalMapKey(t Type) bool {
	st, ok := t.(ScalarType)
	if !ok {
		return false
	}
	switch st.Kind {
	case ast.Double, ast.Float, ast.Bytes:
		return false
	default:
		return true
	}
}

func (r *resolver) resolveIDPath(fromID int, path ast.IDPath) (Type, *compilerrors.CompilerError) {
	// Nearest-enclosing-scope search: try the field's own message, then its
	// enclosing messages, stopping once the enclosing file is reached.
	cur := fromID
	for {
		if id, ok := r.navigate(cur, path.Parts); ok {
			return r.typeForNode(id, path)
		}
		n := r.b.node(cur)
		if n.kind == fileKind {
			break
		}
		cur = n.parent
	}

	// Fully-qualified search from the root of the package tree.
	if id, ok := r.navigate(r.b.rootID, path.Parts); ok {
		return r.typeForNode(id, path)
	}

	// Search each file the enclosing file imports. path.Parts may be a bare
	// declaration name ("Author") or carry a package prefix the imported
	// file's own package already supplies ("library.v1.Author") — since we
	// are already positioned at the file, try the declaration chain against
	// every suffix of path.Parts, longest first, rather than assuming which
	// prefix (if any) belongs to the package instead of the declaration.
	file := r.fileOf(fromID)
	for _, imp := range file.Imports {
		fileNode := r.b.node(imp.ID)
		for i := range path.Parts {
			if id, ok := r.navigate(fileNode.id, path.Parts[i:]); ok {
				return r.typeForNode(id, path)
			}
		}
	}

	return nil, compilerrors.NewUnresolvedReferenceError(fmt.Sprintf("could not resolve type reference %q", path.String()))
}

// navigate descends path segments starting from startID, returning the
// final node's id if every segment matched. A segment is matched as a named
// child (a package, message, or enum node keyed by its proto identifier),
// but a fileKind node sits unnamed-in-proto-terms between a package and its
// declarations, so navigate also transparently descends into any fileKind
// child without consuming a segment — letting a dotted path like
// "google.protobuf.Timestamp" walk through the synthesized
// "google/protobuf/timestamp.proto" file node to reach the Timestamp
// message nested under it, the same suffix-wise matching a proto compiler
// does when resolving a fully-qualified name across file boundaries.
func (r *resolver) navigate(startID int, parts []string) (int, bool) {
	if len(parts) == 0 {
		return startID, true
	}
	if id, ok := r.b.childNamed(startID, parts[0]); ok {
		if result, ok := r.navigate(id, parts[1:]); ok {
			return result, true
		}
	}
	for _, cid := range r.b.node(startID).children {
		if r.b.node(cid).kind == fileKind {
			if result, ok := r.navigate(cid, parts); ok {
				return result, true
			}
		}
	}
	return 0, false
}

func (r *resolver) typeForNode(id int, path ast.IDPath) (Type, *compilerrors.CompilerError) {
	n := r.b.node(id)
	switch n.kind {
	case messageKind:
		return MessageType{Message: r.messages[id]}, nil
	case enumKind:
		return EnumType{Enum: r.enums[id]}, nil
	default:
		return nil, compilerrors.NewUnresolvedReferenceError(fmt.Sprintf("%q does not refer to a message or enum", path.String()))
	}
}
