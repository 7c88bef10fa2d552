// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package naming_test

import (
	"testing"

	"carvel.dev/stache/pkg/naming"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type HelloWorld struct{}

type TemplatePartial struct{}

type GenericBox[T any] struct{ Item T }

func TestTemplateName(t *testing.T) {
	cases := map[string]string{
		"HelloWorld":      "hello_world",
		"TemplatePartial": "template_partial",
		"Simple":          "simple",
		"simple":          "simple",
		"A":               "a",
		"HTTPServer":      "h_t_t_p_server",
		"":                "",
	}
	for in, expected := range cases {
		require.Equal(t, expected, naming.TemplateName(in), "input %q", in)
	}
}

func TestForValue(t *testing.T) {
	require.Equal(t, "hello_world", naming.ForValue(HelloWorld{}))
	require.Equal(t, "template_partial", naming.ForValue(&TemplatePartial{}))
	require.Equal(t, "", naming.ForValue(map[string]interface{}{}))
	require.Equal(t, "", naming.ForValue(nil))
	require.Equal(t, "generic_box", naming.ForValue(GenericBox[int]{}))
	require.Equal(t, "generic_box", naming.ForValue(&GenericBox[HelloWorld]{}))
}

func TestFieldName(t *testing.T) {
	require.Equal(t, "OuterThing", naming.FieldName("outer_thing"))
	require.Equal(t, "Name", naming.FieldName("name"))
	require.Equal(t, "Thing1", naming.FieldName("thing1"))
}

func TestTemplateNameStableUnderReconstruction(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[A-Z][a-z0-9]{0,6}([A-Z][a-z0-9]{1,6}){0,4}`).Draw(t, "typeName")

		derived := naming.TemplateName(name)
		rederived := naming.TemplateName(naming.FieldName(derived))

		if derived != rederived {
			t.Fatalf("expected %q to re-derive to itself, got %q", derived, rederived)
		}
	})
}
