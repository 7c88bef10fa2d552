// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"carvel.dev/stache/pkg/cmd/ui"
	"carvel.dev/stache/pkg/files"
	"github.com/spf13/cobra"
)

type RegularFilesSourceOpts struct {
	files     []string
	names     []string
	recursive bool
	output    string
}

func (s *RegularFilesSourceOpts) Set(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&s.files, "file", "f", nil, "Template file (ie local path, HTTP URL, -) (can be specified multiple times)")
	cmd.Flags().StringSliceVar(&s.names, "name", nil, "Template name looked up in search directories (can be specified multiple times)")
	cmd.Flags().BoolVarP(&s.recursive, "recursive", "R", false, "Interpret file as directory")
	cmd.Flags().StringVarP(&s.output, "output", "o", "", "Directory for output")
}

type RegularFilesSource struct {
	opts RegularFilesSourceOpts
	ui   ui.UI
}

func NewRegularFilesSource(opts RegularFilesSourceOpts, ui ui.UI) *RegularFilesSource {
	return &RegularFilesSource{opts, ui}
}

func (s *RegularFilesSource) HasInput() bool  { return len(s.opts.files)+len(s.opts.names) > 0 }
func (s *RegularFilesSource) HasOutput() bool { return true }

func (s *RegularFilesSource) Input() (Input, error) {
	in := Input{Names: s.opts.names}

	for _, path := range s.opts.files {
		srcs, dir, err := s.sources(path)
		if err != nil {
			return Input{}, err
		}

		for _, src := range srcs {
			relPath, err := src.RelativePath()
			if err != nil {
				return Input{}, fmt.Errorf("Calculating relative path for '%s': %s", src.Description(), err)
			}

			bs, err := src.Bytes()
			if err != nil {
				return Input{}, fmt.Errorf("Reading %s: %s", src.Description(), err)
			}

			in.Templates = append(in.Templates, InputTemplate{RelativePath: relPath, Text: string(bs)})
		}

		if len(dir) > 0 {
			in.Dirs = append(in.Dirs, dir)
		}
	}

	return in, nil
}

// sources expands path into sources. For local paths it also returns the
// directory partials are searched in by default.
func (s *RegularFilesSource) sources(path string) ([]files.Source, string, error) {
	src := files.NewSource(path)
	if _, ok := src.(files.LocalSource); !ok {
		return []files.Source{src}, "", nil
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("Checking file '%s': %s", path, err)
	}

	if !fileInfo.IsDir() {
		return []files.Source{src}, filepath.Dir(path), nil
	}

	if !s.opts.recursive {
		return nil, "", fmt.Errorf("Expected file '%s' to not be a directory", path)
	}

	var selectedPaths []string

	err = filepath.Walk(path, func(walkedPath string, fi os.FileInfo, err error) error {
		if err != nil || fi.IsDir() {
			return err
		}
		selectedPaths = append(selectedPaths, walkedPath)
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("Listing files '%s': %s", path, err)
	}

	sort.Strings(selectedPaths)

	var result []files.Source
	for _, selectedPath := range selectedPaths {
		result = append(result, files.NewLocalSource(selectedPath, path))
	}
	return result, path, nil
}

func (s *RegularFilesSource) Output(out Output) error {
	if out.Err != nil {
		return out.Err
	}

	if len(s.opts.output) > 0 {
		return files.NewOutputDirectory(s.opts.output, out.Files, s.ui).Write()
	}

	s.ui.Debugf("### result\n")
	for _, file := range out.Files {
		s.ui.Printf("%s", file.Bytes()) // no newline
	}

	return nil
}
