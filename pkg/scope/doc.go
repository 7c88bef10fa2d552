// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package scope implements the render context: an ordered stack of lookup
scopes, most recently pushed first.

A scope is any value that can answer "do you define this name?". Plain Go
values are wrapped once, when they are pushed, into one of a closed set of
variants (see NewScope):

	map[string]interface{}, other string-keyed maps => MapScope
	*orderedmap.Map                                  => OrderedMapScope
	structs and pointers to structs                  => StructScope
	anything else                                    => ValueScope

Names are resolved with Context.Lookup. A dotted path "a.b.c" resolves "a"
against the whole stack, then "b" against the value found for "a" only, and
so on. A miss at any point is not an error; it yields a Value of KindMissing.

Resolved values are classified into a small tagged union (Kind) so that the
renderer can dispatch on missing, false, sequence, callable and scalar
values without inspecting Go types itself.
*/
package scope
