// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package scope

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Callable is a lambda found in the context. Supported shapes are
//
//	func() T
//	func(string) T
//	func() (T, error)
//	func(string) (T, error)
//
// where the string argument is the raw, unrendered text of a section.
type Callable struct {
	fn reflect.Value
}

func newCallable(fn reflect.Value) Callable { return Callable{fn} }

// Arity is the number of arguments the callable accepts (0 or 1), or -1 for
// unsupported signatures.
func (c Callable) Arity() int {
	typ := c.fn.Type()
	if typ.IsVariadic() || typ.NumIn() > 1 {
		return -1
	}
	if typ.NumIn() == 1 && typ.In(0).Kind() != reflect.String {
		return -1
	}
	switch typ.NumOut() {
	case 1:
	case 2:
		if !typ.Out(1).Implements(errorType) {
			return -1
		}
	default:
		return -1
	}
	return typ.NumIn()
}

// Call invokes the callable. text is passed when the callable takes an argument.
func (c Callable) Call(text string) (interface{}, error) {
	var in []reflect.Value

	switch c.Arity() {
	case 0:
	case 1:
		in = []reflect.Value{reflect.ValueOf(text).Convert(c.fn.Type().In(0))}
	default:
		return nil, fmt.Errorf("Unsupported lambda signature %s", c.fn.Type())
	}

	out := c.fn.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}
