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

// Package compiler orchestrates a full proto3-to-TypeScript run: walking
// --src for .proto files, parsing and resolving them into a RootScope,
// emitting every message and enum's generated files into an in-memory
// tsast.Folder, and writing that folder to --out.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/nilproto/protots/pkg/ast"
	"github.com/nilproto/protots/pkg/codegen"
	"github.com/nilproto/protots/pkg/compilerrors"
	"github.com/nilproto/protots/pkg/parser"
	"github.com/nilproto/protots/pkg/scope"
	"github.com/nilproto/protots/pkg/tsast"
	"github.com/nilproto/protots/pkg/tspath"
	"github.com/nilproto/protots/pkg/wellknown"
)

// Exit codes per the CLI contract: 0 success, 2 failed to read the source
// directory, 3 failed to parse/resolve, 4 failed to write output.
const (
	ExitOK           = 0
	ExitReadFailure  = 2
	ExitParseFailure = 3
	ExitWriteFailure = 4
)

// Run executes one compile: srcDir is recursively scanned for ".proto"
// files (hidden entries skipped), parsed, resolved, emitted, and written
// under outDir, which is destroyed and recreated first. logger may be nil.
func Run(srcDir, outDir string, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	protoFiles, err := findProtoFiles(srcDir)
	if err != nil {
		return ExitReadFailure, err
	}
	logger.Debug("found proto sources", zap.Int("count", len(protoFiles)))

	var parsedFiles []*ast.File
	for _, abs := range protoFiles {
		rel, err := filepath.Rel(srcDir, abs)
		if err != nil {
			return ExitReadFailure, compilerrors.NewIOError(fmt.Sprintf("resolving %q relative to %q: %v", abs, srcDir, err))
		}
		rel = filepath.ToSlash(rel)

		content, err := os.ReadFile(abs)
		if err != nil {
			return ExitReadFailure, compilerrors.NewIOError(fmt.Sprintf("reading %q: %v", abs, err))
		}

		f, err := parser.ParseFile(rel, string(content))
		if err != nil {
			return exitForError(err), err
		}
		parsedFiles = append(parsedFiles, f)
		logger.Debug("parsed file", zap.String("name", rel))
	}

	builder := scope.NewBuilder(logger)
	for _, f := range parsedFiles {
		if _, err := builder.AddFile(f); err != nil {
			return exitForError(err), err
		}
	}
	if err := loadWellKnownImports(builder, parsedFiles); err != nil {
		return exitForError(err), err
	}

	root, err := scope.Resolve(builder)
	if err != nil {
		return exitForError(err), err
	}

	folder := emitAll(root)

	if err := writeFolder(outDir, folder); err != nil {
		return ExitWriteFailure, err
	}
	logger.Info("compile complete", zap.String("out", outDir))
	return ExitOK, nil
}

// findProtoFiles walks root collecting files named "*.proto", skipping any
// entry (file or directory) whose base name starts with ".".
func findProtoFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(d.Name()) == ".proto" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, compilerrors.NewIOError(fmt.Sprintf("reading source directory %q: %v", root, err))
	}
	return files, nil
}

// loadWellKnownImports scans every parsed file's imports for a well-known
// path and installs it into builder the first time it is seen.
// wellknown.Lookup/Builder.LoadWellKnown are both already idempotent, so a
// path referenced by several files is only loaded once.
func loadWellKnownImports(builder *scope.Builder, files []*ast.File) error {
	for _, f := range files {
		for _, imp := range f.Imports {
			name, wkFile, ok := wellknown.Lookup(imp.Path)
			if !ok {
				continue
			}
			if err := builder.LoadWellKnown(name, wkFile); err != nil {
				return err
			}
		}
	}
	return nil
}

// emitAll walks every resolved file's messages and enums (recursing into
// nested declarations) and calls the matching codegen emitter for each,
// placing results into an in-memory Folder at their computed tspath.Path.
func emitAll(root *scope.RootScope) *tsast.Folder {
	folder := tsast.NewFolder()
	for _, ms := range root.AllMessages {
		folder.Put(tspath.MessageFolder(ms), "types", codegen.EmitTypes(ms))
		folder.Put(tspath.MessageFolder(ms), "encode", codegen.EmitEncode(ms))
		folder.Put(tspath.MessageFolder(ms), "decode", codegen.EmitDecode(ms))
	}
	for _, es := range root.AllEnums {
		folder.Put(tspath.EnumFolder(es), es.Name, codegen.EmitEnum(es))
	}
	return folder
}

// writeFolder destroys and recreates outDir, then writes every generated
// file in folder beneath it.
func writeFolder(outDir string, folder *tsast.Folder) error {
	if err := os.RemoveAll(outDir); err != nil {
		return compilerrors.NewIOError(fmt.Sprintf("clearing output directory %q: %v", outDir, err))
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return compilerrors.NewIOError(fmt.Sprintf("creating output directory %q: %v", outDir, err))
	}

	var writeErr error
	folder.Walk(func(relPath string, sf *tsast.SourceFile) {
		if writeErr != nil {
			return
		}
		full := filepath.Join(outDir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			writeErr = compilerrors.NewIOError(fmt.Sprintf("creating directory for %q: %v", full, err))
			return
		}
		fh, err := os.Create(full)
		if err != nil {
			writeErr = compilerrors.NewIOError(fmt.Sprintf("creating %q: %v", full, err))
			return
		}
		defer fh.Close()
		if err := tsast.Print(fh, sf); err != nil {
			writeErr = compilerrors.NewIOError(fmt.Sprintf("writing %q: %v", full, err))
		}
	})
	return writeErr
}

// exitForError maps a returned error to a process exit code: a
// *compilerrors.CompilerError carries its own ExitCode, anything else
// (should not normally occur) is treated as a parse/resolve failure.
func exitForError(err error) int {
	if ce, ok := err.(*compilerrors.CompilerError); ok {
		return ce.ExitCode()
	}
	return ExitParseFailure
}
