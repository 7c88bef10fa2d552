// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"carvel.dev/stache/pkg/files"
	"github.com/stretchr/testify/require"
)

func TestLoaderLoadByName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "greeting.mustache"), "Hi {{name}}")

	loader := files.NewLoader(files.NewLocator(files.DefaultExtension), []string{dir})
	tpl, err := loader.LoadByName("greeting")
	require.NoError(t, err)
	require.Equal(t, files.Template{Path: filepath.Join(dir, "greeting.mustache"), Text: "Hi {{name}}"}, tpl)

	_, err = loader.LoadByName("nope")
	require.True(t, errors.Is(err, files.ErrNotFound))
}

func TestLoaderLoadByObject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "say_hello.mustache"), "Hello, {{to}}")

	loader := files.NewLoader(files.NewLocator(files.DefaultExtension), []string{dir})
	tpl, err := loader.LoadByObject(SayHello{}, "")
	require.NoError(t, err)
	require.Equal(t, "Hello, {{to}}", tpl.Text)
}

func TestLoaderReadError(t *testing.T) {
	loader := files.NewLoader(files.NewLocator(files.DefaultExtension), nil)

	_, err := loader.Read(filepath.Join(t.TempDir(), "gone.mustache"))
	require.Error(t, err)
	require.False(t, errors.Is(err, files.ErrNotFound))
	require.True(t, files.IsResolutionError(err))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoaderCacheAndForget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cached.mustache")
	writeFile(t, path, "v1")

	loader := files.NewLoader(files.NewLocator(files.DefaultExtension), []string{dir}).WithCache(0)

	tpl, err := loader.LoadByName("cached")
	require.NoError(t, err)
	require.Equal(t, "v1", tpl.Text)

	writeFile(t, path, "v2")

	tpl, err = loader.LoadByName("cached")
	require.NoError(t, err)
	require.Equal(t, "v1", tpl.Text, "expected cached contents")

	loader.Forget(path)

	tpl, err = loader.LoadByName("cached")
	require.NoError(t, err)
	require.Equal(t, "v2", tpl.Text)

	writeFile(t, path, "v3")
	loader.Forget()

	tpl, err = loader.Read(path)
	require.NoError(t, err)
	require.Equal(t, "v3", tpl.Text)
}

func TestLoaderWithoutCacheRereads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fresh.mustache")
	writeFile(t, path, "v1")

	loader := files.NewLoader(files.NewLocator(files.DefaultExtension), []string{dir})
	_, err := loader.Read(path)
	require.NoError(t, err)

	writeFile(t, path, "v2")
	tpl, err := loader.Read(path)
	require.NoError(t, err)
	require.Equal(t, "v2", tpl.Text)
}
