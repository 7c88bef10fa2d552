// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files finds and loads template files and writes rendered output.

A Locator turns a template name (or a Go value, via its type name) into a path
by scanning an ordered list of search directories. A Loader reads the located
file through a Source, optionally caching contents by path. Watcher reports
changes in template directories so cached contents can be forgotten.
*/
package files
