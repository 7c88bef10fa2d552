// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"carvel.dev/stache/pkg/files"
	"carvel.dev/stache/pkg/scope"
	"carvel.dev/stache/pkg/texttemplate"
)

// Renderer renders templates with a fixed Config. It holds no per-render
// state and may be used concurrently.
type Renderer struct {
	cfg      Config
	loader   *files.Loader
	partials PartialLoader
	cache    *Cache
}

type RendererOpt func(*Renderer)

// WithPartialLoader replaces file based partial lookup.
func WithPartialLoader(partials PartialLoader) RendererOpt {
	return func(r *Renderer) { r.partials = partials }
}

// WithCache shares parsed trees between renders.
func WithCache(cache *Cache) RendererOpt {
	return func(r *Renderer) { r.cache = cache }
}

// WithLoader sets the loader used for templates and file partials.
func WithLoader(loader *files.Loader) RendererOpt {
	return func(r *Renderer) { r.loader = loader }
}

func NewRenderer(cfg Config, opts ...RendererOpt) *Renderer {
	r := &Renderer{cfg: cfg.withDefaults()}
	for _, opt := range opts {
		opt(r)
	}
	if r.loader == nil {
		r.loader = files.NewLoader(r.cfg.Locator(), r.cfg.SearchDirs)
	}
	if r.partials == nil {
		r.partials = NewFilesPartialLoader(r.loader)
	}
	return r
}

func (r *Renderer) Config() Config { return r.cfg }

func (r *Renderer) Loader() *files.Loader { return r.loader }

// NewContext returns a Context over scopes using the renderer's options.
func (r *Renderer) NewContext(scopes ...interface{}) *scope.Context {
	return scope.NewWithOptions(r.cfg.ScopeOptions(), scopes...)
}

// Render renders template text. ctx is not modified.
func (r *Renderer) Render(text string, ctx *scope.Context) (string, error) {
	return r.RenderNamed("template", text, ctx)
}

// RenderWith renders text against a new context built from data, the last
// value being searched first.
func (r *Renderer) RenderWith(text string, data ...interface{}) (string, error) {
	return r.Render(text, r.NewContext(data...))
}

// RenderNamed is Render with name used in error positions.
func (r *Renderer) RenderNamed(name, text string, ctx *scope.Context) (string, error) {
	return r.render(name, text, ctx, r.partials)
}

func (r *Renderer) RenderFile(path string, ctx *scope.Context) (string, error) {
	tpl, err := r.loader.Read(path)
	if err != nil {
		return "", err
	}
	return r.RenderNamed(tpl.Path, tpl.Text, ctx)
}

// RenderByName locates name in the search directories and renders it.
func (r *Renderer) RenderByName(name string, ctx *scope.Context) (string, error) {
	tpl, err := r.loader.LoadByName(name)
	if err != nil {
		return "", err
	}
	return r.RenderNamed(tpl.Path, tpl.Text, ctx)
}

// RenderObject locates the template for obj (see files.Locator) and renders
// it with obj as the bottom scope. Partials are looked up in obj's directory
// first when it is known.
func (r *Renderer) RenderObject(obj interface{}, scopes ...interface{}) (string, error) {
	tpl, err := r.loader.LoadByObject(obj, "")
	if err != nil {
		return "", err
	}
	ctx := r.NewContext(append([]interface{}{obj}, scopes...)...)
	return r.render(tpl.Path, tpl.Text, ctx, r.partialsFor(obj))
}

func (r *Renderer) partialsFor(obj interface{}) PartialLoader {
	filesPartials, ok := r.partials.(FilesPartialLoader)
	if !ok {
		return r.partials
	}
	if dir, found := files.ObjectDirectory(obj); found {
		return filesPartials.WithLeadingDir(dir)
	}
	return filesPartials
}

func (r *Renderer) render(name, text string, ctx *scope.Context, partials PartialLoader) (string, error) {
	root, err := r.cache.Parse(name, texttemplate.DefaultDelims, text)
	if err != nil {
		return "", err
	}

	if ctx == nil {
		ctx = r.NewContext()
	} else {
		ctx = ctx.Copy()
	}

	eval := &evaluator{cfg: r.cfg, partials: partials, cache: r.cache}
	return eval.Eval(root, ctx)
}
