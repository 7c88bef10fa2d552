// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Template is the raw text of a located template file.
type Template struct {
	Path string
	Text string
}

// Loader locates templates through its Locator and reads them from disk.
type Loader struct {
	Locator    Locator
	SearchDirs []string

	cache *gocache.Cache
}

func NewLoader(locator Locator, searchDirs []string) *Loader {
	return &Loader{Locator: locator, SearchDirs: searchDirs}
}

// WithCache keeps read file contents in memory for ttl (0 means forever).
// Entries are only dropped by expiry or Forget.
func (l *Loader) WithCache(ttl time.Duration) *Loader {
	expiration := ttl
	if expiration == 0 {
		expiration = gocache.NoExpiration
	}
	l.cache = gocache.New(expiration, 10*time.Minute)
	return l
}

// WithSearchDirs returns a loader sharing l's cache that searches dirs.
func (l *Loader) WithSearchDirs(dirs []string) *Loader {
	return &Loader{Locator: l.Locator, SearchDirs: dirs, cache: l.cache}
}

func (l *Loader) LoadByName(name string) (Template, error) {
	path, err := l.Locator.FindPathByName(l.SearchDirs, name)
	if err != nil {
		return Template{}, err
	}
	return l.Read(path)
}

func (l *Loader) LoadByObject(obj interface{}, fileName string) (Template, error) {
	path, err := l.Locator.FindPathByObject(l.SearchDirs, obj, fileName)
	if err != nil {
		return Template{}, err
	}
	return l.Read(path)
}

func (l *Loader) Read(path string) (Template, error) {
	return l.ReadSource(NewLocalSource(path, ""), path)
}

// ReadSource reads any Source, caching its contents under key.
func (l *Loader) ReadSource(src Source, key string) (Template, error) {
	if l.cache != nil {
		if cached, found := l.cache.Get(key); found {
			if tpl, ok := cached.(Template); ok {
				l.Locator.ui().Debugf("loader: cache hit '%s'\n", key)
				return tpl, nil
			}
		}
	}

	bs, err := src.Bytes()
	if err != nil {
		return Template{}, &ReadError{Path: key, Err: err}
	}

	tpl := Template{Path: key, Text: string(bs)}
	if l.cache != nil {
		l.cache.SetDefault(key, tpl)
	}
	return tpl, nil
}

// Forget drops cached contents for paths, or everything when none are given.
func (l *Loader) Forget(paths ...string) {
	if l.cache == nil {
		return
	}
	if len(paths) == 0 {
		l.cache.Flush()
		return
	}
	for _, path := range paths {
		l.cache.Delete(path)
	}
}
