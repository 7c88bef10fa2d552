// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"strings"

	"carvel.dev/stache/pkg/filepos"
)

type Delims struct {
	Open  string
	Close string
}

var DefaultDelims = Delims{Open: "{{", Close: "}}"}

type Node interface {
	GetPosition() *filepos.Position
}

var _ = []Node{&NodeText{}, &NodeVariable{}, &NodeSection{},
	&NodePartial{}, &NodeComment{}, &NodeSetDelims{}}

type NodeRoot struct {
	Name  string
	Items []Node
}

type NodeText struct {
	Position *filepos.Position
	Content  string
}

type NodeVariable struct {
	Position *filepos.Position
	Name     string
	Escaped  bool
}

type NodeSection struct {
	Position *filepos.Position
	Name     string
	Inverted bool
	Items    []Node

	// Raw is the unrendered source between the opening and closing tags;
	// it is what lambdas receive.
	Raw string
	// Delims active when the section was opened; lambda output is parsed
	// with them.
	Delims Delims
}

type NodePartial struct {
	Position *filepos.Position
	Name     string
	Indent   string // standalone partials only
	// Dynamic partials ({{>*name}}) take the partial name from the value
	// of Name in the context.
	Dynamic bool
}

type NodeComment struct {
	Position *filepos.Position
	Content  string
}

type NodeSetDelims struct {
	Position *filepos.Position
	Delims   Delims
}

func (n *NodeText) GetPosition() *filepos.Position      { return n.Position }
func (n *NodeVariable) GetPosition() *filepos.Position  { return n.Position }
func (n *NodeSection) GetPosition() *filepos.Position   { return n.Position }
func (n *NodePartial) GetPosition() *filepos.Position   { return n.Position }
func (n *NodeComment) GetPosition() *filepos.Position   { return n.Position }
func (n *NodeSetDelims) GetPosition() *filepos.Position { return n.Position }

// AsString concatenates literal text at the top level. For templates without
// tags this is the original source.
func (n *NodeRoot) AsString() string {
	var result strings.Builder
	for _, item := range n.Items {
		if typedItem, ok := item.(*NodeText); ok {
			result.WriteString(typedItem.Content)
		}
	}
	return result.String()
}

// HasTags reports whether the template contains anything besides literal text.
func (n *NodeRoot) HasTags() bool {
	for _, item := range n.Items {
		if _, ok := item.(*NodeText); !ok {
			return true
		}
	}
	return false
}
