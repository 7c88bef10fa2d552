// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"encoding/json"
	"fmt"

	"carvel.dev/stache/pkg/cmd/ui"
	"carvel.dev/stache/pkg/orderedmap"
	"github.com/spf13/cobra"
)

type BulkFilesSourceOpts struct {
	bulkIn  string
	bulkOut bool
}

func (s *BulkFilesSourceOpts) Set(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.bulkIn, "bulk-in", "", "Accept templates and data in bulk format")
	cmd.Flags().BoolVar(&s.bulkOut, "bulk-out", false, "Output files in bulk format")
}

type BulkFilesSource struct {
	opts BulkFilesSourceOpts
	ui   ui.UI
}

// BulkFiles is the JSON format of --bulk-in and --bulk-out.
type BulkFiles struct {
	Files  []BulkFile  `json:"files,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Errors string      `json:"errors,omitempty"`
}

type BulkFile struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

func NewBulkFilesSource(opts BulkFilesSourceOpts, ui ui.UI) *BulkFilesSource {
	return &BulkFilesSource{opts, ui}
}

func (s *BulkFilesSource) HasInput() bool  { return len(s.opts.bulkIn) > 0 }
func (s *BulkFilesSource) HasOutput() bool { return s.opts.bulkOut }

func (s *BulkFilesSource) Input() (Input, error) {
	return BulkInput([]byte(s.opts.bulkIn))
}

// BulkInput decodes bulk JSON. Every file is rendered and is also available
// as a partial by its name, with or without extension.
func BulkInput(data []byte) (Input, error) {
	var fs BulkFiles
	err := json.Unmarshal(data, &fs)
	if err != nil {
		return Input{}, err
	}

	in := Input{Bulk: true}
	for _, f := range fs.Files {
		in.Templates = append(in.Templates, InputTemplate{RelativePath: f.Name, Text: f.Data})
	}
	if fs.Data != nil {
		data, ok := orderedmap.Conversion{Object: fs.Data}.FromUnorderedMaps().(*orderedmap.Map)
		if !ok {
			return Input{}, fmt.Errorf("Expected bulk data to be a map, but was %T", fs.Data)
		}
		in.Data = data
	}
	return in, nil
}

func (s *BulkFilesSource) Output(out Output) error {
	resultBytes, err := BulkOutput(out)
	if err != nil {
		return err
	}

	s.ui.Debugf("### result\n")
	s.ui.Printf("%s", resultBytes)

	return nil
}

func BulkOutput(out Output) ([]byte, error) {
	fs := BulkFiles{}

	if out.Err != nil {
		fs.Errors = out.Err.Error()
	}

	for _, outputFile := range out.Files {
		fs.Files = append(fs.Files, BulkFile{
			Name: outputFile.RelativePath(),
			Data: string(outputFile.Bytes()),
		})
	}

	return json.Marshal(fs)
}
