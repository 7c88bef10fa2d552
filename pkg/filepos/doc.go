// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filepos provides the concept of Position: a source name (usually a
template file) plus the line and column of a tag within that source.

Positions are used when reporting parse errors to template authors. Inline
templates have no file name; the zero-value of Position (NewUnknownPosition())
is used for text that did not come from any source, e.g. lambda output.
*/
package filepos
