// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package view binds a Go value to the template that renders it.

The template is named after the value's type (HelloWorld => hello_world) unless
set explicitly, found through files.Locator, read once and kept until Reset.
Each Render builds a new scope.Context with the value at the bottom, so a View
may be rendered from several goroutines at once.
*/
package view
