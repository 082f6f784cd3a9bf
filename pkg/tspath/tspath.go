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

// Package tspath computes where a message or enum's generated TypeScript
// lives on disk, and the relative import string one generated file needs to
// reference a declaration in another.
//
// The output layout nests: one folder per proto package segment, one folder
// per proto file (its base name with ".proto" stripped), one folder per
// enclosing message (so deeply nested messages get deeply nested
// directories), and finally either a message's own folder (holding
// types.ts/encode.ts/decode.ts) or an enum's own file (<Name>.ts).
package tspath

import (
	"path/filepath"
	"strings"

	"github.com/nilproto/protots/pkg/naming"
	"github.com/nilproto/protots/pkg/scope"
)

var names = naming.NewConverter()

// Path is a location in the generated TypeScript tree: a chain of folder
// names plus a bare leaf file name (no ".ts" extension — imports in
// generated code are always extensionless).
type Path struct {
	Folders []string
	Leaf    string
}

func packageFolders(pkg string) []string {
	if pkg == "" {
		return nil
	}
	return strings.Split(pkg, ".")
}

func fileFolder(fileName string) string {
	return names.FileNameToFolderName(filepath.Base(fileName))
}

// messageAncestry returns the chain of message names from the outermost
// enclosing message down to and including ms itself.
func messageAncestry(ms *scope.MessageScope) []string {
	if ms == nil {
		return nil
	}
	return append(messageAncestry(ms.Parent), ms.Name)
}

func baseFolders(file *scope.FileScope) []string {
	folders := packageFolders(file.Package)
	folders = append(folders, fileFolder(file.Name))
	return folders
}

// MessageFolder returns the folder a message's types.ts/encode.ts/decode.ts
// triple is written into.
func MessageFolder(ms *scope.MessageScope) []string {
	return append(baseFolders(ms.File), messageAncestry(ms)...)
}

// EnumFolder returns the folder an enum's <Name>.ts file is written into —
// its enclosing message's folder, or the file's folder for a top-level
// enum.
func EnumFolder(es *scope.EnumScope) []string {
	folders := baseFolders(es.File)
	folders = append(folders, messageAncestry(es.Parent)...)
	return folders
}

// MessageTypesFile is the Path of a message's types.ts.
func MessageTypesFile(ms *scope.MessageScope) Path {
	return Path{Folders: MessageFolder(ms), Leaf: "types"}
}

// MessageEncodeFile is the Path of a message's encode.ts.
func MessageEncodeFile(ms *scope.MessageScope) Path {
	return Path{Folders: MessageFolder(ms), Leaf: "encode"}
}

// MessageDecodeFile is the Path of a message's decode.ts.
func MessageDecodeFile(ms *scope.MessageScope) Path {
	return Path{Folders: MessageFolder(ms), Leaf: "decode"}
}

// EnumFile is the Path of an enum's <Name>.ts.
func EnumFile(es *scope.EnumScope) Path {
	return Path{Folders: EnumFolder(es), Leaf: es.Name}
}

// RelativeImport computes the string a `from` file uses to import a
// declaration living at `to`. Returns ("", false) when from and to are the
// same file, meaning no import statement is needed at all.
//
// Example:
//
//	from: {Folders: ["library","v1","Book"], Leaf: "encode"}
//	to:   {Folders: ["library","v1","Book"], Leaf: "types"}
//	returns: "./types"
//
//	from: {Folders: ["library","v1","Book"], Leaf: "types"}
//	to:   {Folders: ["common","v1"], Leaf: "Currency"}
//	returns: "../../../common/v1/Currency"
func RelativeImport(from, to Path) (string, bool) {
	if pathsEqual(from.Folders, to.Folders) && from.Leaf == to.Leaf {
		return "", false
	}
	if pathsEqual(from.Folders, to.Folders) {
		return "./" + to.Leaf, true
	}

	common := 0
	for common < len(from.Folders) && common < len(to.Folders) && from.Folders[common] == to.Folders[common] {
		common++
	}

	ups := len(from.Folders) - common
	var b strings.Builder
	if ups == 0 {
		b.WriteString("./")
	}
	for i := 0; i < ups; i++ {
		b.WriteString("../")
	}
	for _, seg := range to.Folders[common:] {
		b.WriteString(seg)
		b.WriteString("/")
	}
	b.WriteString(to.Leaf)
	return b.String(), true
}

func pathsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// OutputFilePath joins an output root directory with a Path to produce the
// filesystem path of the generated ".ts" file.
func OutputFilePath(outDir string, p Path) string {
	parts := append([]string{outDir}, p.Folders...)
	parts = append(parts, p.Leaf+".ts")
	return filepath.Join(parts...)
}
