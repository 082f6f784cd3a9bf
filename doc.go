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

/*
Package protots compiles proto3 message schemas into TypeScript encode and
decode functions that run against the protobufjs/minimal runtime.

# Overview

protots is a standalone compiler, not a protoc plugin: it reads a directory
of ".proto" sources itself, via a small recursive-descent parser, and writes
one types.ts/encode.ts/decode.ts triple per message and one <Name>.ts per
enum to an output directory. No protoc, no descriptor set, no code
generation request on stdin.

# Quick Start

Install the compiler:

	go install github.com/nilproto/protots/cmd/protots@latest

Compile a source tree:

	protots --src ./proto --out ./gen/ts

Generated code depends on protobufjs at runtime:

	npm install protobufjs

# Pipeline

	┌──────────────┐     ┌───────────────┐     ┌──────────────┐     ┌──────────────┐
	│ pkg/parser   │────▶│ pkg/scope     │────▶│ pkg/codegen  │────▶│ pkg/tsast    │
	│ (lex+parse   │     │ (Builder then │     │ (Types/      │     │ (print to    │
	│  each file)  │     │  Resolve)     │     │  Encode/     │     │  --out tree) │
	│              │     │               │     │  Decode/Enum │     │              │
	└──────────────┘     └───────────────┘     └──────────────┘     └──────────────┘

pkg/compiler.Run ties the four stages together: it walks --src, drives the
parser over every ".proto" file found, builds and resolves a pkg/scope
RootScope, runs every codegen emitter over it into an in-memory pkg/tsast
Folder, and writes that folder under --out.

# Package Organization

  - cmd/protots: cobra-based CLI entry point
  - internal/logging: zap logger construction, PROTOTS_LOG verbosity
  - pkg/token, pkg/parser: proto3 lexer and recursive-descent parser
  - pkg/ast: parsed proto syntax tree
  - pkg/idgen: the monotonic id counter threaded through scope building
  - pkg/naming: identifier case conversion (camelCase, PascalCase, etc.)
  - pkg/wellknown: pre-built ASTs for the google.protobuf well-known types
  - pkg/scope: Builder (mutable arena) and Resolve (immutable RootScope)
  - pkg/tspath: output folder layout and relative-import computation
  - pkg/tsast: a small closed TypeScript AST plus a deterministic printer
  - pkg/codegen: the four emitters (types, encode, decode, enum)
  - pkg/compilerrors: the compiler's fatal error taxonomy
  - pkg/compiler: orchestration — walk, parse, resolve, emit, write

# Wire Format

Generated encode/decode functions follow the canonical protobuf v3 wire
format: VARINT for bool/int32/int64/uint32/uint64/sint32/sint64/enum,
FIXED64 for fixed64/sfixed64/double, FIXED32 for fixed32/sfixed32/float,
LENGTH_DELIMITED for string/bytes/message/packed-repeated/map-entry. Packed
repeated scalars are emitted packed and decoded accepting either packed or
unpacked wire data, since proto3 decoders must accept both regardless of
which the encoder chose.
*/
package protots
