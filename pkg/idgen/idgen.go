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

// Package idgen mints the monotonically increasing integer ids that stand in
// for scope node identity throughout the compiler. Using plain ints keyed
// into arenas (instead of pointer identity) lets scope trees be built,
// compared and serialized without reference-cycle bookkeeping.
package idgen

// Generator hands out a strictly increasing sequence of ids. One made by
// New starts at 1; the zero value is usable but starts at 0.
type Generator struct {
	next int
}

// New returns a Generator whose first Next() call returns 1.
func New() *Generator {
	return &Generator{next: 1}
}

// Next returns the next unused id.
func (g *Generator) Next() int {
	id := g.next
	g.next++
	return id
}
