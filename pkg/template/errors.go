// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"

	"carvel.dev/stache/pkg/filepos"
)

// RenderError is an evaluation failure at a tag.
type RenderError struct {
	Position *filepos.Position
	Msg      string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s at %s", e.Msg, e.Position.AsString())
	}
	return fmt.Sprintf("%s at %s: %s", e.Msg, e.Position.AsString(), e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// PartialDepthError is returned when partials nest deeper than
// Config.MaxPartialDepth, usually because a partial includes itself.
type PartialDepthError struct {
	Position *filepos.Position
	Name     string
	Depth    int
}

func (e *PartialDepthError) Error() string {
	return fmt.Sprintf("Expected partial '%s' to nest at most %d levels deep at %s",
		e.Name, e.Depth, e.Position.AsString())
}
