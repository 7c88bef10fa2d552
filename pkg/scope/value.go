// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package scope

import (
	"fmt"
	"reflect"
)

type Kind int

const (
	KindMissing Kind = iota
	KindFalse
	KindSequence
	KindCallable
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindFalse:
		return "false"
	case KindSequence:
		return "sequence"
	case KindCallable:
		return "callable"
	case KindScalar:
		return "scalar"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Undefined is returned by Context.Get for names that do not resolve.
type Undefined struct{}

// Options control value classification.
type Options struct {
	// ZeroValuesFalsy makes "" and numeric zero falsy in section tests.
	// By default only missing values, false and empty sequences are falsy.
	ZeroValuesFalsy bool
}

// Value is a classified lookup result.
type Value struct {
	kind     Kind
	raw      interface{}
	items    []interface{}
	callable Callable
	falsy    bool
}

// Missing is the Value of a name that is not defined.
var Missing = Value{kind: KindMissing, raw: Undefined{}, falsy: true}

// Classify picks the Kind of val.
func Classify(val interface{}, opts Options) Value {
	switch typedVal := val.(type) {
	case nil, Undefined:
		return Missing
	case bool:
		if !typedVal {
			return Value{kind: KindFalse, raw: false, falsy: true}
		}
		return Value{kind: KindScalar, raw: true}
	case string:
		return Value{kind: KindScalar, raw: typedVal, falsy: opts.ZeroValuesFalsy && len(typedVal) == 0}
	case []byte:
		return Value{kind: KindScalar, raw: string(typedVal), falsy: opts.ZeroValuesFalsy && len(typedVal) == 0}
	case []interface{}:
		return Value{kind: KindSequence, raw: typedVal, items: typedVal, falsy: len(typedVal) == 0}
	}

	rv := reflect.ValueOf(val)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Missing
		}
		if elem := rv.Elem(); elem.Kind() != reflect.Struct {
			return Classify(elem.Interface(), opts)
		}
	case reflect.Map:
		if rv.IsNil() {
			return Missing
		}
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Value{kind: KindSequence, raw: val, falsy: true}
		}
		items := make([]interface{}, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return Value{kind: KindSequence, raw: val, items: items, falsy: len(items) == 0}
	case reflect.Func:
		if rv.IsNil() {
			return Missing
		}
		return Value{kind: KindCallable, raw: val, callable: newCallable(rv)}
	case reflect.Bool:
		if !rv.Bool() {
			return Value{kind: KindFalse, raw: val, falsy: true}
		}
	case reflect.String:
		return Value{kind: KindScalar, raw: val, falsy: opts.ZeroValuesFalsy && rv.Len() == 0}
	}

	return Value{kind: KindScalar, raw: val, falsy: opts.ZeroValuesFalsy && isNumericZero(rv)}
}

func (v Value) Kind() Kind           { return v.kind }
func (v Value) Raw() interface{}     { return v.raw }
func (v Value) Items() []interface{} { return v.items }
func (v Value) Callable() Callable   { return v.callable }

// Truthy reports whether a section over this value renders its body.
func (v Value) Truthy() bool { return !v.falsy }

// String stringifies the value for interpolation. Missing values are empty.
func (v Value) String() string {
	switch v.kind {
	case KindMissing:
		return ""
	}
	switch typedRaw := v.raw.(type) {
	case string:
		return typedRaw
	case fmt.Stringer:
		return typedRaw.String()
	case error:
		return typedRaw.Error()
	default:
		return fmt.Sprint(typedRaw)
	}
}

func isNumericZero(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	default:
		return false
	}
}
