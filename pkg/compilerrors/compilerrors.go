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

// Package compilerrors defines the compiler's fatal error taxonomy. Every
// error carries a Chain of enclosing scope names, printed outermost-first,
// so a diagnostic reads like a stack trace of where in the proto tree the
// failure occurred.
package compilerrors

import "strings"

// Kind identifies which class of fatal error occurred, used by ExitCode
// (called from pkg/compiler) to choose a process exit code.
type Kind int

const (
	IO Kind = iota
	Lex
	Syntax
	UnsupportedVersion
	ConflictingFiles
	UnresolvedReference
	UnresolvedImport
	InvalidMapKey
)

// CompilerError is the common shape of every fatal error the compiler can
// produce: a Kind, a human-readable Message, and a Chain of scope names
// from outermost to innermost enclosing the failure.
type CompilerError struct {
	Kind    Kind
	Message string
	Chain   []string
}

// Error implements error, rendering the scope chain as
// "root -> pkg -> file -> Message: message".
func (e *CompilerError) Error() string {
	if len(e.Chain) == 0 {
		return e.Message
	}
	return strings.Join(e.Chain, " -> ") + ": " + e.Message
}

// WithChain returns a copy of e with Chain prepended by name, used as each
// enclosing scope re-raises an error on its way out to the caller.
func (e *CompilerError) WithChain(name string) *CompilerError {
	chain := make([]string, 0, len(e.Chain)+1)
	chain = append(chain, name)
	chain = append(chain, e.Chain...)
	return &CompilerError{Kind: e.Kind, Message: e.Message, Chain: chain}
}

func newErr(kind Kind, msg string) *CompilerError {
	return &CompilerError{Kind: kind, Message: msg}
}

// NewIOError reports a failure to read source or write output.
func NewIOError(msg string) *CompilerError { return newErr(IO, msg) }

// NewLexError reports a lexical failure (an illegal token).
func NewLexError(msg string) *CompilerError { return newErr(Lex, msg) }

// NewSyntaxError reports a parser failure (a malformed construct).
func NewSyntaxError(msg string) *CompilerError { return newErr(Syntax, msg) }

// NewUnsupportedVersionError reports a `syntax` declaration other than
// "proto3".
func NewUnsupportedVersionError(msg string) *CompilerError {
	return newErr(UnsupportedVersion, msg)
}

// NewConflictingFilesError reports two source files that resolve to the
// same declaration path.
func NewConflictingFilesError(msg string) *CompilerError {
	return newErr(ConflictingFiles, msg)
}

// NewUnresolvedReferenceError reports a field type path that no scope in
// the resolution chain could resolve.
func NewUnresolvedReferenceError(msg string) *CompilerError {
	return newErr(UnresolvedReference, msg)
}

// NewUnresolvedImportError reports an `import` statement naming a file not
// found among the parsed sources or well-known files.
func NewUnresolvedImportError(msg string) *CompilerError {
	return newErr(UnresolvedImport, msg)
}

// NewInvalidMapKeyError reports a `map<K, V>` whose K is not a legal proto3
// map key type.
func NewInvalidMapKeyError(msg string) *CompilerError {
	return newErr(InvalidMapKey, msg)
}

// ExitCode maps a CompilerError's Kind to the process exit code spec'd for
// the CLI: 3 for everything arising during parse/resolve, 4 reserved for
// write failures (signalled separately by pkg/compiler), 2 for failing to
// read the source directory at all.
func (e *CompilerError) ExitCode() int {
	switch e.Kind {
	case IO:
		return 2
	default:
		return 3
	}
}
