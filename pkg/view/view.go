// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package view

import (
	"sync"

	"carvel.dev/stache/pkg/files"
	"carvel.dev/stache/pkg/naming"
	"carvel.dev/stache/pkg/scope"
	"carvel.dev/stache/pkg/template"
)

type Opts struct {
	// TemplateName overrides the name derived from the value's type.
	TemplateName string
	// TemplateFile is a file name (with extension) searched instead.
	TemplateFile string
	// Template is inline template text; no file is looked up when set.
	Template string

	SearchDirs      []string
	Extension       files.Extension
	Escape          template.EscapeFunc
	ZeroValuesFalsy bool

	Cache *template.Cache
}

type View struct {
	obj    interface{}
	opts   Opts
	scopes []interface{}

	renderer *template.Renderer

	tplLock sync.Mutex
	tpl     *files.Template
}

// New returns a View of obj. Names are looked up in scopes first (last one
// given wins), then in obj.
func New(obj interface{}, opts Opts, scopes ...interface{}) *View {
	if opts.SearchDirs == nil {
		opts.SearchDirs = []string{"."}
	}

	searchDirs := opts.SearchDirs
	if dir, found := files.ObjectDirectory(obj); found {
		searchDirs = append([]string{dir}, searchDirs...)
	}

	cfg := template.Config{
		SearchDirs:      searchDirs,
		Extension:       opts.Extension,
		Escape:          opts.Escape,
		ZeroValuesFalsy: opts.ZeroValuesFalsy,
	}
	loader := files.NewLoader(cfg.Locator(), searchDirs)

	return &View{
		obj:      obj,
		opts:     opts,
		scopes:   scopes,
		renderer: template.NewRenderer(cfg, template.WithLoader(loader), template.WithCache(opts.Cache)),
	}
}

func (v *View) TemplateName() string {
	if len(v.opts.TemplateName) > 0 {
		return v.opts.TemplateName
	}
	return naming.ForValue(v.obj)
}

// Template returns the template text, locating and reading it on first use.
func (v *View) Template() (string, error) {
	tpl, err := v.template()
	return tpl.Text, err
}

func (v *View) template() (files.Template, error) {
	if len(v.opts.Template) > 0 {
		return files.Template{Path: v.TemplateName(), Text: v.opts.Template}, nil
	}
	return v.loadTemplate()
}

// Reset forgets the memoized template so the next call reads it again.
func (v *View) Reset() {
	v.tplLock.Lock()
	defer v.tplLock.Unlock()

	v.tpl = nil
}

func (v *View) loadTemplate() (files.Template, error) {
	v.tplLock.Lock()
	defer v.tplLock.Unlock()

	if v.tpl != nil {
		return *v.tpl, nil
	}

	fileName := v.opts.TemplateFile
	if len(fileName) == 0 {
		fileName = v.renderer.Config().Locator().MakeFileName(v.TemplateName())
	}

	path, err := v.renderer.Config().Locator().FindPathByObject(v.opts.SearchDirs, v.obj, fileName)
	if err != nil {
		return files.Template{}, err
	}

	tpl, err := v.renderer.Loader().Read(path)
	if err != nil {
		return files.Template{}, err
	}

	v.tpl = &tpl
	return tpl, nil
}

// Context returns a new Context: obj, then the view's scopes.
func (v *View) Context() *scope.Context {
	return v.renderer.NewContext(append([]interface{}{v.obj}, v.scopes...)...)
}

func (v *View) Render() (string, error) {
	tpl, err := v.template()
	if err != nil {
		return "", err
	}
	return v.renderer.RenderNamed(tpl.Path, tpl.Text, v.Context())
}

// Get looks key up the way the template would.
func (v *View) Get(key string, defaultVal ...interface{}) interface{} {
	return v.Context().Get(key, defaultVal...)
}
