// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"io"
)

type UI interface {
	Printf(string, ...interface{})
	Debugf(string, ...interface{})
	DebugWriter() io.Writer
}

type noopUI struct{}

var _ UI = noopUI{}

func (noopUI) Printf(string, ...interface{}) {}
func (noopUI) Debugf(string, ...interface{}) {}
func (noopUI) DebugWriter() io.Writer        { return io.Discard }
