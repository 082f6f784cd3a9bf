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

package naming

import "testing"

func TestConverter_ToCamelCase(t *testing.T) {
	c := NewConverter()

	tests := []struct {
		name     string
		input    string
		expected string
		reason   string
	}{
		{
			name:     "snake_case field",
			input:    "user_id",
			expected: "userId",
			reason:   "the common case: a proto field name becomes a TS property",
		},
		{
			name:     "already PascalCase",
			input:    "FindBooks",
			expected: "findBooks",
			reason:   "message names run through the same converter as fields",
		},
		{
			name:     "single letter",
			input:    "a",
			expected: "a",
			reason:   "edge case: nothing to lowercase beyond itself",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
			reason:   "must not panic on an empty identifier",
		},
		{
			name:     "multiple underscores",
			input:    "http_request_id",
			expected: "httpRequestId",
			reason:   "every segment boundary after the first capitalizes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ToCamelCase(tt.input); got != tt.expected {
				t.Errorf("ToCamelCase(%q) = %q, want %q (%s)", tt.input, got, tt.expected, tt.reason)
			}
		})
	}
}

func TestConverter_ToPascalCase(t *testing.T) {
	c := NewConverter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"snake_case", "user_id", "UserId"},
		{"dotted path", "library.v1", "LibraryV1"},
		{"already pascal", "FindBooks", "FindBooks"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ToPascalCase(tt.input); got != tt.expected {
				t.Errorf("ToPascalCase(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConverter_ToSnakeCase(t *testing.T) {
	c := NewConverter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"pascal case", "UserId", "user_id"},
		{"camel case", "httpRequest", "http_request"},
		{"single word", "name", "name"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ToSnakeCase(tt.input); got != tt.expected {
				t.Errorf("ToSnakeCase(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConverter_SanitizeIdentifier(t *testing.T) {
	c := NewConverter()

	tests := []struct {
		name     string
		input    string
		expected string
		reason   string
	}{
		{
			name:     "leading digit",
			input:    "123field",
			expected: "_23field",
			reason:   "TypeScript identifiers cannot start with a digit",
		},
		{
			name:     "illegal characters",
			input:    "my-field",
			expected: "my_field",
			reason:   "hyphens are not legal in identifiers",
		},
		{
			name:     "already legal",
			input:    "myField",
			expected: "myField",
			reason:   "a legal identifier passes through unchanged",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "_",
			reason:   "an empty identifier has no legal rendering but must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.SanitizeIdentifier(tt.input); got != tt.expected {
				t.Errorf("SanitizeIdentifier(%q) = %q, want %q (%s)", tt.input, got, tt.expected, tt.reason)
			}
		})
	}
}

func TestConverter_FileNameToFolderName(t *testing.T) {
	c := NewConverter()

	if got := c.FileNameToFolderName("library.proto"); got != "library" {
		t.Errorf("FileNameToFolderName(%q) = %q, want %q", "library.proto", got, "library")
	}
	if got := c.FileNameToFolderName("book"); got != "book" {
		t.Errorf("FileNameToFolderName without suffix should pass through, got %q", got)
	}
}
