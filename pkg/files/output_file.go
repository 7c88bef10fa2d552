// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"os"
	"path/filepath"
	"strings"
)

type OutputFile struct {
	relativePath string
	data         []byte
}

func NewOutputFile(relativePath string, data []byte) OutputFile {
	return OutputFile{relativePath, data}
}

// NewOutputFileForTemplate names the rendered file after its template,
// dropping the template extension (views/page.html.mustache => views/page.html).
func NewOutputFileForTemplate(templateRelPath string, ext Extension, data []byte) OutputFile {
	return OutputFile{strings.TrimSuffix(templateRelPath, ext.Suffix()), data}
}

func (f OutputFile) RelativePath() string { return f.relativePath }
func (f OutputFile) Bytes() []byte        { return f.data }

func (f OutputFile) Path(dirPath string) string {
	return filepath.Join(dirPath, f.relativePath)
}

func (f OutputFile) Create(dirPath string) error {
	resultPath := f.Path(dirPath)

	err := os.MkdirAll(filepath.Dir(resultPath), 0700)
	if err != nil {
		return err
	}

	return os.WriteFile(resultPath, f.data, 0600)
}
