// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"

	"carvel.dev/stache/pkg/naming"
)

// Extension is appended to template names. The zero value means
// DefaultExtension.
type Extension string

const (
	DefaultExtension Extension = "mustache"
	// NoExtension looks up templates by bare name.
	NoExtension Extension = "-"
)

// Suffix is what is appended to a template name, including the dot.
func (e Extension) Suffix() string {
	switch e {
	case NoExtension:
		return ""
	case "":
		return "." + string(DefaultExtension)
	default:
		return "." + string(e)
	}
}

// TemplateDirer can be implemented by values rendered by object to name the
// directory their template lives in.
type TemplateDirer interface {
	TemplateDir() string
}

// Locator finds template files on the local file system.
type Locator struct {
	Extension Extension
	UI        UI
}

func NewLocator(ext Extension) Locator {
	return Locator{Extension: ext}
}

func (l Locator) MakeFileName(templateName string) string {
	return templateName + l.Extension.Suffix()
}

func (l Locator) MakeTemplateName(obj interface{}) string {
	return naming.ForValue(obj)
}

// FindPathByName returns the first searchDirs[i]/name.ext that exists.
func (l Locator) FindPathByName(searchDirs []string, templateName string) (string, error) {
	return l.findPathByFileName(searchDirs, l.MakeFileName(templateName))
}

// FindPathByObject locates the template for obj. fileName, when not empty,
// is used as is instead of deriving one from the type name of obj. The
// directory defining the type of obj is searched first when known.
func (l Locator) FindPathByObject(searchDirs []string, obj interface{}, fileName string) (string, error) {
	if len(fileName) == 0 {
		fileName = l.MakeFileName(l.MakeTemplateName(obj))
	}

	if dir, found := ObjectDirectory(obj); found {
		searchDirs = append([]string{dir}, searchDirs...)
	}

	return l.findPathByFileName(searchDirs, fileName)
}

func (l Locator) findPathByFileName(searchDirs []string, fileName string) (string, error) {
	for _, dir := range searchDirs {
		path := filepath.Join(dir, fileName)
		l.ui().Debugf("locator: trying '%s'\n", path)

		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", &NotFoundError{FileName: fileName, SearchDirs: searchDirs}
}

func (l Locator) ui() UI {
	if l.UI == nil {
		return noopUI{}
	}
	return l.UI
}

// ObjectDirectory returns the directory of the source file that declares
// methods of obj's type. Types without methods (or only with generated ones)
// have no directory.
func ObjectDirectory(obj interface{}) (string, bool) {
	if obj == nil {
		return "", false
	}
	if typed, ok := obj.(TemplateDirer); ok {
		dir := typed.TemplateDir()
		return dir, len(dir) > 0
	}

	typ := reflect.TypeOf(obj)
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	for _, t := range []reflect.Type{typ, reflect.PointerTo(typ)} {
		for i := 0; i < t.NumMethod(); i++ {
			pc := t.Method(i).Func.Pointer()
			fn := runtime.FuncForPC(pc)
			if fn == nil {
				continue
			}
			file, _ := fn.FileLine(fn.Entry())
			if len(file) == 0 || file == "<autogenerated>" {
				continue
			}
			return filepath.Dir(file), true
		}
	}
	return "", false
}
