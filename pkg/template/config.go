// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"carvel.dev/stache/pkg/files"
	"carvel.dev/stache/pkg/scope"
)

const DefaultMaxPartialDepth = 100

// Config is fixed for the lifetime of a Renderer.
type Config struct {
	SearchDirs []string
	Extension  files.Extension
	// Escape is applied to {{name}} output; defaults to HTMLEscape.
	Escape EscapeFunc
	// ZeroValuesFalsy makes "" and numeric zero falsy in sections.
	ZeroValuesFalsy bool
	// MaxPartialDepth limits partial nesting (recursive partials).
	MaxPartialDepth int
}

func DefaultConfig() Config {
	return Config{
		SearchDirs:      []string{"."},
		Extension:       files.DefaultExtension,
		Escape:          HTMLEscape,
		MaxPartialDepth: DefaultMaxPartialDepth,
	}
}

func (c Config) withDefaults() Config {
	if c.Escape == nil {
		c.Escape = HTMLEscape
	}
	if c.MaxPartialDepth <= 0 {
		c.MaxPartialDepth = DefaultMaxPartialDepth
	}
	return c
}

func (c Config) ScopeOptions() scope.Options {
	return scope.Options{ZeroValuesFalsy: c.ZeroValuesFalsy}
}

func (c Config) Locator() files.Locator {
	return files.NewLocator(c.Extension)
}
