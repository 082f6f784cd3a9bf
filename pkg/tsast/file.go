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

// EnsureImport adds name to an existing `import { ... } from "from"`
// declaration in f if one targets the same module specifier, merging
// without duplicating a name already imported; otherwise it appends a new
// ImportDecl. Safe to call repeatedly with the same (from, name) pair.
func EnsureImport(f *SourceFile, from string, name string) {
	for _, d := range f.Decls {
		imp, ok := d.(*ImportDecl)
		if !ok || imp.From != from {
			continue
		}
		for _, n := range imp.Names {
			if n == name {
				return
			}
		}
		imp.Names = append(imp.Names, name)
		return
	}
	f.Decls = append(f.Decls, &ImportDecl{Names: []string{name}, From: from})
}

// Folder is an in-memory directory of generated files, built up by the
// codegen emitters and walked once by the compiler to write every file to
// disk. Using an in-memory tree keeps emitters pure functions of a
// RootScope, with no filesystem access of their own.
type Folder struct {
	Files      map[string]*SourceFile
	Subfolders map[string]*Folder
}

// NewFolder returns an empty Folder.
func NewFolder() *Folder {
	return &Folder{Files: map[string]*SourceFile{}, Subfolders: map[string]*Folder{}}
}

// Subfolder returns the named child folder, creating it if absent.
func (f *Folder) Subfolder(name string) *Folder {
	if sub, ok := f.Subfolders[name]; ok {
		return sub
	}
	sub := NewFolder()
	f.Subfolders[name] = sub
	return sub
}

// At descends path, creating any missing intermediate folders, and returns
// the folder at the end of it. An empty path returns f itself.
func (f *Folder) At(path []string) *Folder {
	cur := f
	for _, seg := range path {
		cur = cur.Subfolder(seg)
	}
	return cur
}

// Put inserts sf as leafName+".ts" in the folder at path.
func (f *Folder) Put(path []string, leafName string, sf *SourceFile) {
	f.At(path).Files[leafName+".ts"] = sf
}

// Walk visits every file in the tree in a deterministic order, calling fn
// with the slash-joined relative path (without a leading separator) of
// each file.
func (f *Folder) Walk(fn func(relPath string, sf *SourceFile)) {
	f.walk(nil, fn)
}

func (f *Folder) walk(prefix []string, fn func(string, *SourceFile)) {
	names := sortedKeys(f.Files)
	for _, name := range names {
		fn(joinPath(append(append([]string{}, prefix...), name)), f.Files[name])
	}
	for _, name := range sortedFolderKeys(f.Subfolders) {
		f.Subfolders[name].walk(append(append([]string{}, prefix...), name), fn)
	}
}

func sortedKeys(m map[string]*SourceFile) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	insertionSort(keys)
	return keys
}

func sortedFolderKeys(m map[string]*Folder) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	insertionSort(keys)
	return keys
}

func insertionSort(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func joinPath(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "/"
		}
		out += p
	}
	return out
}
