// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"carvel.dev/stache/pkg/files"
	"github.com/stretchr/testify/require"
)

func TestOutputDirectoryWrite(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(outDir, "stale.txt"), "stale")

	outputFiles := []files.OutputFile{
		files.NewOutputFileForTemplate("views/page.html.mustache", files.DefaultExtension, []byte("<p>hi</p>")),
		files.NewOutputFileForTemplate("plain", files.NoExtension, []byte("text")),
	}

	err := files.NewOutputDirectory(outDir, outputFiles, nil).Write()
	require.NoError(t, err)

	bs, err := os.ReadFile(filepath.Join(outDir, "views", "page.html"))
	require.NoError(t, err)
	require.Equal(t, "<p>hi</p>", string(bs))

	bs, err = os.ReadFile(filepath.Join(outDir, "plain"))
	require.NoError(t, err)
	require.Equal(t, "text", string(bs))

	_, err = os.Stat(filepath.Join(outDir, "stale.txt"))
	require.True(t, os.IsNotExist(err))
}

func TestOutputDirectoryRejectsDuplicatesAndSuspiciousPaths(t *testing.T) {
	outputFiles := []files.OutputFile{
		files.NewOutputFile("a.txt", nil),
		files.NewOutputFile("a.txt", nil),
	}
	err := files.NewOutputDirectory(t.TempDir(), outputFiles, nil).Write()
	require.EqualError(t, err, "Multiple files have same output destination paths: a.txt")

	err = files.NewOutputDirectory(".", nil, nil).Write()
	require.EqualError(t, err, "Expected output directory path to not be one of '/', '.', './', ''")
}
