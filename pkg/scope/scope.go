// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package scope

import (
	"reflect"
	"sync"

	"carvel.dev/stache/pkg/naming"
	"carvel.dev/stache/pkg/orderedmap"
)

// Scope is one layer of a Context.
type Scope interface {
	TryGet(name string) (interface{}, bool)
}

var _ = []Scope{MapScope{}, OrderedMapScope{}, &StructScope{}, ValueScope{}, reflectMapScope{}}

// NewScope picks the scope variant for val. Values that already implement
// Scope are used as is.
func NewScope(val interface{}) Scope {
	switch typedVal := val.(type) {
	case nil:
		return ValueScope{}
	case Scope:
		return typedVal
	case map[string]interface{}:
		return MapScope(typedVal)
	case *orderedmap.Map:
		return OrderedMapScope{typedVal}
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return reflectMapScope{rv}
		}
	case reflect.Struct:
		return newStructScope(rv)
	case reflect.Pointer:
		if !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
			return newStructScope(rv)
		}
	}
	return ValueScope{val}
}

type MapScope map[string]interface{}

func (s MapScope) TryGet(name string) (interface{}, bool) {
	val, found := s[name]
	return val, found
}

type OrderedMapScope struct {
	Map *orderedmap.Map
}

func (s OrderedMapScope) TryGet(name string) (interface{}, bool) { return s.Map.Get(name) }

type reflectMapScope struct {
	m reflect.Value
}

func (s reflectMapScope) TryGet(name string) (interface{}, bool) {
	if s.m.IsNil() {
		return nil, false
	}
	val := s.m.MapIndex(reflect.ValueOf(name).Convert(s.m.Type().Key()))
	if !val.IsValid() {
		return nil, false
	}
	return val.Interface(), true
}

// ValueScope wraps a value that has no named members (strings, numbers, ...).
// It never defines a name; the value itself is reachable through ".".
type ValueScope struct {
	Value interface{}
}

func (ValueScope) TryGet(string) (interface{}, bool) { return nil, false }

// StructScope exposes exported fields and methods of a struct. A name matches
// a field tagged `stache:"name"`, a field or method with exactly that name,
// or a field or method named naming.FieldName(name) (outer_thing => OuterThing).
//
// Methods that take no arguments are computed attributes: they are called on
// lookup and their result is returned. Methods that return an error as well
// are returned as func() (T, error) so that the error reaches the renderer.
// Methods taking a single string (lambdas) are returned uncalled.
type StructScope struct {
	val  reflect.Value // struct or pointer to struct
	elem reflect.Value // struct
}

// newStructScope keeps pointer receiver methods reachable for structs passed
// by value by working on an addressable copy. Such methods see the copy.
func newStructScope(rv reflect.Value) *StructScope {
	elem := rv
	if rv.Kind() == reflect.Pointer {
		elem = rv.Elem()
	} else if !rv.CanAddr() {
		elem = reflect.New(rv.Type()).Elem()
		elem.Set(rv)
		rv = elem
	}
	return &StructScope{val: rv, elem: elem}
}

func (s *StructScope) TryGet(name string) (interface{}, bool) {
	if idx, found := taggedFields(s.elem.Type())[name]; found {
		if fv, err := s.elem.FieldByIndexErr(idx); err == nil {
			return fv.Interface(), true
		}
		return nil, false
	}

	for _, candidate := range s.candidates(name) {
		if val, found := s.field(candidate); found {
			return val, true
		}
		if val, found := s.method(candidate); found {
			return val, true
		}
	}
	return nil, false
}

func (s *StructScope) candidates(name string) []string {
	fieldName := naming.FieldName(name)
	if fieldName == name {
		return []string{name}
	}
	return []string{name, fieldName}
}

func (s *StructScope) field(name string) (interface{}, bool) {
	sf, found := s.elem.Type().FieldByName(name)
	if !found || !sf.IsExported() {
		return nil, false
	}
	fv, err := s.elem.FieldByIndexErr(sf.Index)
	if err != nil {
		// nil embedded pointer
		return nil, false
	}
	return fv.Interface(), true
}

func (s *StructScope) method(name string) (interface{}, bool) {
	mv := s.val.MethodByName(name)
	if !mv.IsValid() && s.val.Kind() != reflect.Pointer && s.val.CanAddr() {
		mv = s.val.Addr().MethodByName(name)
	}
	if !mv.IsValid() {
		return nil, false
	}

	mt := mv.Type()
	if mt.NumIn() == 0 && mt.NumOut() == 1 {
		return mv.Call(nil)[0].Interface(), true
	}
	return mv.Interface(), true
}

var taggedFieldsCache sync.Map // reflect.Type => map[string][]int

func taggedFields(typ reflect.Type) map[string][]int {
	if cached, found := taggedFieldsCache.Load(typ); found {
		return cached.(map[string][]int)
	}

	result := map[string][]int{}
	for _, sf := range reflect.VisibleFields(typ) {
		if !sf.IsExported() {
			continue
		}
		if tag := sf.Tag.Get("stache"); len(tag) > 0 && tag != "-" {
			result[tag] = sf.Index
		}
	}

	taggedFieldsCache.Store(typ, result)
	return result
}
