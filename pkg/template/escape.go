// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"html"

	"github.com/microcosm-cc/bluemonday"
)

type EscapeFunc func(string) string

var (
	_ EscapeFunc = HTMLEscape
	_ EscapeFunc = NoEscape
	_ EscapeFunc = SanitizeEscape
)

// HTMLEscape escapes & < > " and '.
func HTMLEscape(str string) string { return html.EscapeString(str) }

func NoEscape(str string) string { return str }

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeEscape strips all markup and escapes what remains.
func SanitizeEscape(str string) string { return strictPolicy.Sanitize(str) }

const (
	EscapeHTML     = "html"
	EscapeNone     = "none"
	EscapeSanitize = "sanitize"
)

// EscapeByName returns the escaper for a --escape flag value.
func EscapeByName(name string) (EscapeFunc, error) {
	switch name {
	case EscapeHTML, "":
		return HTMLEscape, nil
	case EscapeNone:
		return NoEscape, nil
	case EscapeSanitize:
		return SanitizeEscape, nil
	default:
		return nil, fmt.Errorf("Unknown escape mode '%s' (expected one of: %s, %s, %s)",
			name, EscapeHTML, EscapeNone, EscapeSanitize)
	}
}
