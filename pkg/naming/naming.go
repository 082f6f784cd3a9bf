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

// Package naming provides pure, stateless naming-convention conversions used
// while turning proto3 declarations into TypeScript source. All functions are
// deterministic and side-effect free.
package naming

import (
	"strings"
	"unicode"
)

// Converter converts identifiers between the naming conventions used on the
// proto side (snake_case field/message names) and the TypeScript side
// (camelCase properties, PascalCase types).
type Converter struct{}

// NewConverter returns a Converter. Converter carries no state, so any number
// of callers may share one value.
func NewConverter() *Converter {
	return &Converter{}
}

// ToCamelCase converts a snake_case or PascalCase proto identifier to the
// camelCase form used for TypeScript's generated json_name.
//
// Example:
//
//	"user_id" -> "userId"
//	"FindBooks" -> "findBooks"
//	"a" -> "a"
func (c *Converter) ToCamelCase(s string) string {
	pascal := c.ToPascalCase(s)
	if pascal == "" {
		return pascal
	}
	return strings.ToLower(pascal[:1]) + pascal[1:]
}

// ToPascalCase converts a snake_case proto identifier to the PascalCase form
// used for TypeScript interface, enum, and class names.
//
// Example:
//
//	"user_id" -> "UserId"
//	"http_request" -> "HttpRequest"
//	"findBooks" -> "FindBooks"
func (c *Converter) ToPascalCase(s string) string {
	if s == "" {
		return s
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	if len(parts) == 0 {
		return s
	}
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// ToSnakeCase converts a camelCase or PascalCase identifier to snake_case.
//
// Example:
//
//	"UserId" -> "user_id"
//	"httpRequest" -> "http_request"
func (c *Converter) ToSnakeCase(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// SanitizeIdentifier rewrites a string so it is a valid TypeScript
// identifier, replacing illegal leading digits and disallowed characters
// with underscores.
//
// Example:
//
//	"123field" -> "_23field"
//	"my-field" -> "my_field"
func (c *Converter) SanitizeIdentifier(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	first := rune(name[0])
	if unicode.IsLetter(first) || first == '_' {
		b.WriteRune(first)
	} else {
		b.WriteRune('_')
	}
	for _, r := range name[1:] {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// FileNameToFolderName strips a ".proto" suffix from a proto file's base
// name, the same transform applied when a File scope is projected into a
// TypeScript folder.
//
// Example:
//
//	"library.proto" -> "library"
func (c *Converter) FileNameToFolderName(fileName string) string {
	return strings.TrimSuffix(fileName, ".proto")
}
