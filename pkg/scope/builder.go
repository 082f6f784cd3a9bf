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

	"go.uber.org/zap"

	"github.com/nilproto/protots/pkg/ast"
	"github.com/nilproto/protots/pkg/compilerrors"
	"github.com/nilproto/protots/pkg/idgen"
)

type nodeKind int

const (
	rootKind nodeKind = iota
	packageKind
	fileKind
	messageKind
	enumKind
)

// node is one entry in the Builder's arena. Children are addressed by id
// rather than pointer so the tree can be built incrementally, out of
// declaration order, without interior-mutability bookkeeping.
type node struct {
	id       int
	kind     nodeKind
	name     string // simple name; for packageKind, one dotted segment
	parent   int    // -1 for the root node
	children []int

	fileAST    *ast.File
	messageAST *ast.MessageDeclaration
	enumAST    *ast.EnumDeclaration
}

// Builder accumulates parsed files into a mutable scope tree. Call AddFile
// for every parsed source, LoadWellKnown for every well-known type actually
// imported, then pass the Builder to Resolve.
type Builder struct {
	gen             *idgen.Generator
	nodes           []*node
	rootID          int
	logger          *zap.Logger
	wellKnownLoaded map[string]bool
	fileByName      map[string]int // source file name -> file node id
}

// NewBuilder creates an empty Builder. logger may be nil, in which case a
// no-op logger is used.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Builder{
		gen:             idgen.New(),
		logger:          logger,
		wellKnownLoaded: map[string]bool{},
		fileByName:      map[string]int{},
	}
	root := &node{id: b.gen.Next(), kind: rootKind, parent: -1}
	b.nodes = append(b.nodes, root)
	b.rootID = root.id
	return b
}

func (b *Builder) node(id int) *node {
	// ids are minted 1..N in insertion order and never reused, so they are
	// always a valid, dense index into nodes once offset by 1.
	return b.nodes[id-1]
}

func (b *Builder) newNode(kind nodeKind, name string, parent int) *node {
	n := &node{id: b.gen.Next(), kind: kind, name: name, parent: parent}
	b.nodes = append(b.nodes, n)
	if parent >= 0 {
		p := b.node(parent)
		p.children = append(p.children, n.id)
	}
	return n
}

func (b *Builder) childNamed(parent int, name string) (int, bool) {
	for _, cid := range b.node(parent).children {
		if b.node(cid).name == name {
			return cid, true
		}
	}
	return 0, false
}

// packageChain finds or creates the chain of packageKind nodes for a dotted
// package name (e.g. "library.v1" creates/reuses "library" then "v1" under
// root), returning the deepest node's id. An empty dotted name returns the
// root node itself.
func (b *Builder) packageChain(dotted string) int {
	cur := b.rootID
	if dotted == "" {
		return cur
	}
	for _, seg := range strings.Split(dotted, ".") {
		if id, ok := b.childNamed(cur, seg); ok {
			cur = id
			continue
		}
		n := b.newNode(packageKind, seg, cur)
		cur = n.id
	}
	return cur
}

// AddFile registers a parsed file's declarations in the tree. Files may be
// added in any order and may reference types declared in files added
// later.
func (b *Builder) AddFile(f *ast.File) (int, error) {
	if _, exists := b.fileByName[f.Name]; exists {
		return 0, compilerrors.NewConflictingFilesError(fmt.Sprintf("file %q registered more than once", f.Name))
	}
	pkgID := b.packageChain(f.Package)
	fileNode := b.newNode(fileKind, f.Name, pkgID)
	fileNode.fileAST = f
	b.fileByName[f.Name] = fileNode.id

	for _, decl := range f.Declarations {
		switch d := decl.(type) {
		case *ast.MessageDeclaration:
			b.addMessage(fileNode.id, d)
		case *ast.EnumDeclaration:
			b.addEnum(fileNode.id, d)
		}
	}
	return fileNode.id, nil
}

func (b *Builder) addMessage(parent int, m *ast.MessageDeclaration) int {
	n := b.newNode(messageKind, m.Name, parent)
	n.messageAST = m
	for _, nested := range m.NestedMessages {
		b.addMessage(n.id, nested)
	}
	for _, nested := range m.NestedEnums {
		b.addEnum(n.id, nested)
	}
	return n.id
}

func (b *Builder) addEnum(parent int, e *ast.EnumDeclaration) int {
	n := b.newNode(enumKind, e.Name, parent)
	n.enumAST = e
	return n.id
}

// LoadWellKnown installs the well-known file identified by name (one of
// "any", "duration", "empty", "field_mask", "struct", "timestamp",
// "wrappers") under the synthesized "google.protobuf" package, the first
// time it is requested. Subsequent calls for the same name are no-ops.
func (b *Builder) LoadWellKnown(name string, file *ast.File) error {
	if b.wellKnownLoaded[name] {
		return nil
	}
	b.wellKnownLoaded[name] = true
	_, err := b.AddFile(file)
	return err
}

// FileNames returns the source file names registered so far, in no
// particular order.
func (b *Builder) FileNames() []string {
	names := make([]string, 0, len(b.fileByName))
	for name := range b.fileByName {
		names = append(names, name)
	}
	return names
}
