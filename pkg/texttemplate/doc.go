// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package texttemplate parses mustache template text into a tree of nodes.

	{{name}}          escaped variable
	{{{name}}}        unescaped variable (default delimiters only)
	{{&name}}         unescaped variable
	{{#name}}..{{/name}}  section
	{{^name}}..{{/name}}  inverted section
	{{>name}}         partial
	{{!comment}}      comment
	{{=<% %>=}}       delimiter change

Tags other than variables that are alone on their line ("standalone") are
removed together with their indentation and line ending. The indentation of
a standalone partial is kept on the NodePartial so that it can be applied to
every line of the partial's output.

Parsing is done once per template text; the resulting tree is not modified
by evaluation and may be shared.
*/
package texttemplate
