// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package scope_test

import (
	"errors"
	"strings"
	"testing"

	"carvel.dev/stache/pkg/scope"
	"github.com/stretchr/testify/require"
)

func TestClassifyKinds(t *testing.T) {
	opts := scope.Options{}

	cases := []struct {
		val    interface{}
		kind   scope.Kind
		truthy bool
	}{
		{nil, scope.KindMissing, false},
		{scope.Undefined{}, scope.KindMissing, false},
		{false, scope.KindFalse, false},
		{true, scope.KindScalar, true},
		{[]interface{}{}, scope.KindSequence, false},
		{[]string{"a"}, scope.KindSequence, true},
		{[2]int{1, 2}, scope.KindSequence, true},
		{[]int(nil), scope.KindSequence, false},
		{"", scope.KindScalar, true},
		{0, scope.KindScalar, true},
		{0.0, scope.KindScalar, true},
		{map[string]interface{}{}, scope.KindScalar, true},
		{(*struct{})(nil), scope.KindMissing, false},
		{func(s string) string { return s }, scope.KindCallable, true},
	}

	for _, tc := range cases {
		val := scope.Classify(tc.val, opts)
		require.Equal(t, tc.kind, val.Kind(), "value %#v", tc.val)
		require.Equal(t, tc.truthy, val.Truthy(), "value %#v", tc.val)
	}
}

func TestClassifyZeroValuesFalsy(t *testing.T) {
	opts := scope.Options{ZeroValuesFalsy: true}

	require.False(t, scope.Classify("", opts).Truthy())
	require.False(t, scope.Classify(0, opts).Truthy())
	require.False(t, scope.Classify(uint8(0), opts).Truthy())
	require.False(t, scope.Classify(0.0, opts).Truthy())
	require.True(t, scope.Classify("x", opts).Truthy())
	require.True(t, scope.Classify(1, opts).Truthy())
}

func TestValueString(t *testing.T) {
	opts := scope.Options{}

	require.Equal(t, "", scope.Missing.String())
	require.Equal(t, "abc", scope.Classify([]byte("abc"), opts).String())
	require.Equal(t, "42", scope.Classify(42, opts).String())
	require.Equal(t, "1.5", scope.Classify(1.5, opts).String())
	require.Equal(t, "false", scope.Classify(false, opts).String())

	str := "pointed"
	require.Equal(t, "pointed", scope.Classify(&str, opts).String())
}

func TestCallableShapes(t *testing.T) {
	opts := scope.Options{}

	upper := scope.Classify(func(s string) string { return strings.ToUpper(s) }, opts).Callable()
	require.Equal(t, 1, upper.Arity())
	out, err := upper.Call("abc")
	require.NoError(t, err)
	require.Equal(t, "ABC", out)

	noArgs := scope.Classify(func() string { return "x" }, opts).Callable()
	require.Equal(t, 0, noArgs.Arity())
	out, err = noArgs.Call("ignored")
	require.NoError(t, err)
	require.Equal(t, "x", out)

	failing := scope.Classify(func(string) (string, error) { return "", errors.New("boom") }, opts).Callable()
	_, err = failing.Call("")
	require.EqualError(t, err, "boom")

	unsupported := scope.Classify(func(int) string { return "" }, opts).Callable()
	require.Equal(t, -1, unsupported.Arity())
	_, err = unsupported.Call("")
	require.EqualError(t, err, "Unsupported lambda signature func(int) string")
}
