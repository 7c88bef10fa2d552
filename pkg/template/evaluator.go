// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"errors"
	"fmt"
	"strings"

	"carvel.dev/stache/pkg/experiments"
	"carvel.dev/stache/pkg/scope"
	"carvel.dev/stache/pkg/texttemplate"
)

// evaluator walks one parsed tree; it lives for a single render.
type evaluator struct {
	cfg      Config
	partials PartialLoader
	cache    *Cache

	partialDepth int
}

func (e *evaluator) Eval(root *texttemplate.NodeRoot, ctx *scope.Context) (string, error) {
	var buf strings.Builder
	err := e.evalNodes(root.Items, ctx, &buf)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *evaluator) evalNodes(nodes []texttemplate.Node, ctx *scope.Context, buf *strings.Builder) error {
	for _, node := range nodes {
		var err error

		switch typedNode := node.(type) {
		case *texttemplate.NodeText:
			buf.WriteString(typedNode.Content)

		case *texttemplate.NodeVariable:
			err = e.evalVariable(typedNode, ctx, buf)

		case *texttemplate.NodeSection:
			if typedNode.Inverted {
				err = e.evalInvertedSection(typedNode, ctx, buf)
			} else {
				err = e.evalSection(typedNode, ctx, buf)
			}

		case *texttemplate.NodePartial:
			err = e.evalPartial(typedNode, ctx, buf)

		case *texttemplate.NodeComment, *texttemplate.NodeSetDelims:
			// no output

		default:
			return fmt.Errorf("Unknown node type %T", node)
		}

		if err != nil {
			return err
		}
	}
	return nil
}

func (e *evaluator) evalVariable(node *texttemplate.NodeVariable, ctx *scope.Context, buf *strings.Builder) error {
	val := ctx.Lookup(node.Name)
	str := val.String()

	if val.Kind() == scope.KindCallable {
		result, err := e.call(node.Name, node, val.Callable(), "")
		if err != nil {
			return err
		}
		// lambda output is a template of its own
		str, err = e.renderText(node.Name, texttemplate.DefaultDelims, result, ctx)
		if err != nil {
			return err
		}
	}

	if node.Escaped {
		str = e.cfg.Escape(str)
	}
	buf.WriteString(str)
	return nil
}

func (e *evaluator) evalSection(node *texttemplate.NodeSection, ctx *scope.Context, buf *strings.Builder) error {
	val := ctx.Lookup(node.Name)

	if val.Kind() == scope.KindCallable {
		callable := val.Callable()
		if callable.Arity() != 0 {
			result, err := e.call(node.Name, node, callable, node.Raw)
			if err != nil {
				return err
			}
			str, err := e.renderText(node.Name, node.Delims, result, ctx)
			if err != nil {
				return err
			}
			buf.WriteString(str)
			return nil
		}

		// func() T behaves like the value it returns
		result, err := callable.Call("")
		if err != nil {
			return e.lambdaErr(node.Name, node, err)
		}
		val = scope.Classify(result, ctx.Options())
		if val.Kind() == scope.KindCallable {
			return &RenderError{Position: node.Position,
				Msg: fmt.Sprintf("Expected lambda '%s' to not return another lambda", node.Name)}
		}
	}

	if !val.Truthy() {
		return nil
	}

	switch val.Kind() {
	case scope.KindSequence:
		for _, item := range val.Items() {
			ctx.Push(item)
			err := e.evalNodes(node.Items, ctx, buf)
			ctx.Pop()
			if err != nil {
				return err
			}
		}
		return nil

	default:
		ctx.Push(val.Raw())
		defer ctx.Pop()
		return e.evalNodes(node.Items, ctx, buf)
	}
}

func (e *evaluator) evalInvertedSection(node *texttemplate.NodeSection, ctx *scope.Context, buf *strings.Builder) error {
	if ctx.Lookup(node.Name).Truthy() {
		return nil
	}
	return e.evalNodes(node.Items, ctx, buf)
}

func (e *evaluator) evalPartial(node *texttemplate.NodePartial, ctx *scope.Context, buf *strings.Builder) error {
	name, err := e.partialName(node, ctx)
	if err != nil {
		return err
	}

	if e.partialDepth >= e.cfg.MaxPartialDepth {
		return &PartialDepthError{Position: node.Position, Name: name, Depth: e.cfg.MaxPartialDepth}
	}

	text, err := e.partials.LoadPartial(name)
	if err != nil {
		return &RenderError{Position: node.Position, Msg: fmt.Sprintf("Loading partial '%s'", name), Err: err}
	}

	root, err := e.cache.Parse(name, texttemplate.DefaultDelims, indentLines(text, node.Indent))
	if err != nil {
		return &RenderError{Position: node.Position, Msg: fmt.Sprintf("Parsing partial '%s'", name), Err: err}
	}

	e.partialDepth++
	defer func() { e.partialDepth-- }()

	err = e.evalNodes(root.Items, ctx, buf)
	if err != nil {
		var depthErr *PartialDepthError
		if errors.As(err, &depthErr) {
			return err
		}
		return &RenderError{Position: node.Position, Msg: fmt.Sprintf("Rendering partial '%s'", name), Err: err}
	}
	return nil
}

func (e *evaluator) partialName(node *texttemplate.NodePartial, ctx *scope.Context) (string, error) {
	if !node.Dynamic {
		return node.Name, nil
	}

	if !experiments.IsDynamicPartialsEnabled() {
		return "", &RenderError{Position: node.Position, Msg: fmt.Sprintf(
			"Expected experiment '%s' to be enabled for partial '*%s' (set %s=%s)",
			experiments.DynamicPartials, node.Name, experiments.Env, experiments.DynamicPartials)}
	}

	name := ctx.Lookup(node.Name).String()
	if len(name) == 0 {
		return "", &RenderError{Position: node.Position, Msg: fmt.Sprintf(
			"Expected dynamic partial name '%s' to resolve to a non-empty value", node.Name)}
	}
	return name, nil
}

func (e *evaluator) call(name string, node texttemplate.Node, callable scope.Callable, text string) (string, error) {
	result, err := callable.Call(text)
	if err != nil {
		return "", e.lambdaErr(name, node, err)
	}
	return scope.Classify(result, scope.Options{}).String(), nil
}

func (e *evaluator) lambdaErr(name string, node texttemplate.Node, err error) error {
	return &RenderError{Position: node.GetPosition(), Msg: fmt.Sprintf("Calling lambda '%s'", name), Err: err}
}

// renderText renders lambda output against the current context. Lambda
// output is never cached.
func (e *evaluator) renderText(name string, delims texttemplate.Delims, text string, ctx *scope.Context) (string, error) {
	if !strings.Contains(text, delims.Open) {
		return text, nil
	}

	root, err := texttemplate.NewParserWithDelims(delims).Parse([]byte(text), name)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	err = e.evalNodes(root.Items, ctx, &buf)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// indentLines prefixes every line of text with indent.
func indentLines(text, indent string) string {
	if len(indent) == 0 || len(text) == 0 {
		return text
	}

	var buf strings.Builder
	buf.WriteString(indent)
	for i := 0; i < len(text); i++ {
		buf.WriteByte(text[i])
		if text[i] == '\n' && i+1 < len(text) {
			buf.WriteString(indent)
		}
	}
	return buf.String()
}
