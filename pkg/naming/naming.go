// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package naming

import (
	"reflect"
	"strings"
)

// TemplateName converts a CamelCase identifier to snake_case. Every upper case
// letter except a leading one is prefixed with an underscore; all letters are
// lower cased.
func TemplateName(typeName string) string {
	var b strings.Builder
	b.Grow(len(typeName) + 4)

	for i, r := range typeName {
		if isUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ForValue returns the template name of val's runtime type. Pointers are
// dereferenced; unnamed types (e.g. map[string]any) have no name. Type
// arguments of generic types are dropped: Box[int] => box.
func ForValue(val interface{}) string {
	if val == nil {
		return ""
	}
	typ := reflect.TypeOf(val)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	name, _, _ := strings.Cut(typ.Name(), "[")
	return TemplateName(name)
}

// FieldName converts a snake_case key to the exported Go identifier it most
// likely names: outer_thing => OuterThing.
func FieldName(key string) string {
	var b strings.Builder
	b.Grow(len(key))

	upperNext := true
	for _, r := range key {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext && r >= 'a' && r <= 'z' {
			r = r - 'a' + 'A'
		}
		upperNext = false
		b.WriteRune(r)
	}
	return b.String()
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
