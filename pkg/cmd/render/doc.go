// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package render implements the "render" command (also the root command):
templates come from files (-f), a template name (--name) or the bulk JSON
format (--bulk-in), and rendered results are printed, written to a directory
(--output) or returned in bulk format (--bulk-out).
*/
package render
