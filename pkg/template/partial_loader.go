// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"sort"

	"carvel.dev/stache/pkg/files"
)

// PartialLoader returns the text of the partial {{>name}}. A missing partial
// is an error so that broken templates do not silently render.
type PartialLoader interface {
	LoadPartial(name string) (string, error)
}

var _ = []PartialLoader{FilesPartialLoader{}, MapPartialLoader{}}

// FilesPartialLoader finds partials as template files.
type FilesPartialLoader struct {
	loader *files.Loader
}

func NewFilesPartialLoader(loader *files.Loader) FilesPartialLoader {
	return FilesPartialLoader{loader}
}

func (l FilesPartialLoader) LoadPartial(name string) (string, error) {
	tpl, err := l.loader.LoadByName(name)
	if err != nil {
		return "", err
	}
	return tpl.Text, nil
}

// WithLeadingDir searches dir before the loader's search directories.
func (l FilesPartialLoader) WithLeadingDir(dir string) FilesPartialLoader {
	dirs := append([]string{dir}, l.loader.SearchDirs...)
	return FilesPartialLoader{l.loader.WithSearchDirs(dirs)}
}

// MapPartialLoader serves partials from memory by name.
type MapPartialLoader map[string]string

func (l MapPartialLoader) LoadPartial(name string) (string, error) {
	if text, found := l[name]; found {
		return text, nil
	}
	return "", &files.NotFoundError{FileName: name, SearchDirs: l.names()}
}

func (l MapPartialLoader) names() []string {
	var result []string
	for name := range l {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
