// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of stache.

Packages are layered; each depends only on the ones below it.

	(# of dependents) => <package name> => (# of dependencies)

# Entry Point

stache is built into three executable formats:

	./cmd/stache                  // a command-line tool
	./cmd/stache-lambda-website   // an AWS Lambda function serving the playground
	./cmd/stache-wasm             // a WebAssembly module exposing bulk rendering

	(2) => pkg/website => (0)

# Commands

	(2) => pkg/cmd => (4)
	(3) => pkg/cmd/render => (5)
	(4) => pkg/cmd/ui => (0)

# Views

A view pairs an object with the template located for its type.

	(0) => pkg/view => (4)

# Rendering

Template text is parsed into a tree (texttemplate) and evaluated against a
context stack (scope). Templates and partials are found on disk by
files.Locator and read through files.Loader.

	(4) => pkg/template => (5)
	(2) => pkg/texttemplate => (1)
	(3) => pkg/scope => (2)
	(5) => pkg/files => (1)
	(2) => pkg/experiments => (0)

# Data Values

Data values given on the command line or in YAML, TOML or JSON files.

	(1) => pkg/datavalues => (2)

# Utilities

	(3) => pkg/filepos => (0)
	(3) => pkg/naming => (0)
	(5) => pkg/orderedmap => (0)
	(2) => pkg/version => (0)

# Dependencies

	pkg/cmd:
	- pkg/cmd/render
	- pkg/cmd/ui
	- pkg/version
	- pkg/website
	pkg/cmd/render:
	- pkg/cmd/ui
	- pkg/datavalues
	- pkg/files
	- pkg/orderedmap
	- pkg/template
	pkg/view:
	- pkg/files
	- pkg/naming
	- pkg/scope
	- pkg/template
	pkg/template:
	- pkg/experiments
	- pkg/files
	- pkg/filepos
	- pkg/scope
	- pkg/texttemplate
	pkg/texttemplate:
	- pkg/filepos
	pkg/scope:
	- pkg/naming
	- pkg/orderedmap
	pkg/files:
	- pkg/naming
	pkg/datavalues:
	- pkg/files
	- pkg/orderedmap
*/
package pkg
