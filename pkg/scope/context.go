// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package scope

import (
	"strings"
)

type frame struct {
	scope Scope
	value interface{}
}

// Context is a stack of scopes. It is not safe for concurrent use; every
// render owns its own Context.
type Context struct {
	frames []frame
	opts   Options
}

// New returns a Context with scopes pushed in order, so the last one given
// is searched first.
func New(scopes ...interface{}) *Context {
	return NewWithOptions(Options{}, scopes...)
}

func NewWithOptions(opts Options, scopes ...interface{}) *Context {
	c := &Context{opts: opts, frames: make([]frame, 0, len(scopes)+4)}
	for _, s := range scopes {
		c.Push(s)
	}
	return c
}

func (c *Context) Options() Options { return c.opts }

func (c *Context) Len() int { return len(c.frames) }

func (c *Context) Push(val interface{}) {
	c.frames = append(c.frames, frame{scope: NewScope(val), value: val})
}

// Pop removes the most recently pushed scope and returns its value.
func (c *Context) Pop() interface{} {
	if len(c.frames) == 0 {
		panic("Pop called on empty context")
	}
	last := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	return last.value
}

// Top returns the value of the most recently pushed scope (nil if empty).
func (c *Context) Top() interface{} {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1].value
}

// Copy returns a Context sharing the same scopes. Pushing and popping on the
// copy does not affect the original.
func (c *Context) Copy() *Context {
	frames := make([]frame, len(c.frames), cap(c.frames))
	copy(frames, c.frames)
	return &Context{frames: frames, opts: c.opts}
}

// Get resolves a dotted path and returns the raw value. When the path does
// not resolve, the first defaultVal is returned, or Undefined{}.
func (c *Context) Get(path string, defaultVal ...interface{}) interface{} {
	val, found := c.resolve(path)
	if found {
		return val
	}
	if len(defaultVal) > 0 {
		return defaultVal[0]
	}
	return Undefined{}
}

// Lookup resolves a dotted path and classifies the result.
func (c *Context) Lookup(path string) Value {
	val, found := c.resolve(path)
	if !found {
		return Missing
	}
	return Classify(val, c.opts)
}

func (c *Context) resolve(path string) (interface{}, bool) {
	if path == "." {
		if len(c.frames) == 0 {
			return nil, false
		}
		return c.Top(), true
	}

	pieces := strings.Split(path, ".")

	val, found := c.first(pieces[0])
	if !found {
		return nil, false
	}

	for _, piece := range pieces[1:] {
		val, found = NewScope(val).TryGet(piece)
		if !found {
			return nil, false
		}
	}
	return val, true
}

func (c *Context) first(name string) (interface{}, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if val, found := c.frames[i].scope.TryGet(name); found {
			return val, true
		}
	}
	return nil, false
}
