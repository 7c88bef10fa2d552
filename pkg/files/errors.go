// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched (errors.Is) by every NotFoundError.
var ErrNotFound = errors.New("template not found")

type NotFoundError struct {
	FileName   string
	SearchDirs []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Template file '%s' not found in directories: [%s]",
		e.FileName, strings.Join(e.SearchDirs, ", "))
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ReadError is returned when a located template could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("Reading template file '%s': %s", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// IsResolutionError reports whether err means that a template could not be
// located or loaded (as opposed to failing to parse or render).
func IsResolutionError(err error) bool {
	var notFoundErr *NotFoundError
	var readErr *ReadError
	return errors.As(err, &notFoundErr) || errors.As(err, &readErr)
}
