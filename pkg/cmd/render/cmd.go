// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"time"

	"carvel.dev/stache/pkg/cmd/ui"
	"carvel.dev/stache/pkg/datavalues"
	"carvel.dev/stache/pkg/files"
	"carvel.dev/stache/pkg/orderedmap"
	"carvel.dev/stache/pkg/template"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type RenderOptions struct {
	Debug bool
	Watch bool

	EngineFlags            EngineFlags
	BulkFilesSourceOpts    BulkFilesSourceOpts
	RegularFilesSourceOpts RegularFilesSourceOpts
	DataValuesFlags        datavalues.Flags

	// shared between renders in watch mode
	cache  *template.Cache
	loader *files.Loader
}

// Input is what gets rendered: template texts, template names to look up,
// and data values that come with the input itself.
type Input struct {
	Templates []InputTemplate
	Names     []string
	Dirs      []string
	Data      *orderedmap.Map
	Bulk      bool
}

type InputTemplate struct {
	RelativePath string
	Text         string
}

type Output struct {
	Files []files.OutputFile
	Err   error
}

type FileSource interface {
	HasInput() bool
	HasOutput() bool
	Input() (Input, error)
	Output(Output) error
}

var _ []FileSource = []FileSource{&BulkFilesSource{}, &RegularFilesSource{}}

func NewOptions() *RenderOptions {
	return &RenderOptions{
		EngineFlags: EngineFlags{
			extension:       string(files.DefaultExtension),
			escape:          template.EscapeHTML,
			maxPartialDepth: template.DefaultMaxPartialDepth,
		},
		cache: template.NewCache(),
	}
}

func NewCmd(o *RenderOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "render",
		Aliases: []string{"r"},
		Short:   "Render templates",
		RunE:    func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false, "Render again when template files change")
	o.EngineFlags.Set(cmd)
	o.BulkFilesSourceOpts.Set(cmd)
	o.RegularFilesSourceOpts.Set(cmd)
	o.DataValuesFlags.Set(cmd)
	return cmd
}

func (o *RenderOptions) Run() error {
	ui := ui.NewTTY(o.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Now().Sub(t1))
	}()

	srcs := []FileSource{
		NewBulkFilesSource(o.BulkFilesSourceOpts, ui),
		NewRegularFilesSource(o.RegularFilesSourceOpts, ui),
	}

	inSrc := o.pickSource(srcs, func(s FileSource) bool { return s.HasInput() })
	outSrc := o.pickSource(srcs, func(s FileSource) bool { return s.HasOutput() })

	in, err := inSrc.Input()
	if err != nil {
		return err
	}

	if o.Watch {
		return o.watch(in, inSrc, outSrc, ui)
	}

	return outSrc.Output(o.RunWithFiles(in, ui))
}

// RunWithFiles renders every input template, then every named template.
// The first failure stops rendering.
func (o *RenderOptions) RunWithFiles(in Input, ui ui.UI) Output {
	cfg, err := o.EngineFlags.Config(o.defaultSearchDirs(in))
	if err != nil {
		return Output{Err: err}
	}

	flagValues, err := o.DataValuesFlags.Values()
	if err != nil {
		return Output{Err: err}
	}

	if o.Debug {
		o.debugValues(flagValues, ui)
	}

	renderer := o.renderer(cfg, in, ui)

	// flag values are searched before values given with the input
	ctx := renderer.NewContext(in.Data, flagValues)

	var out Output

	for _, tpl := range in.Templates {
		t1 := time.Now()

		result, err := renderer.RenderNamed(tpl.RelativePath, tpl.Text, ctx)
		if err != nil {
			return Output{Err: err}
		}

		ui.Debugf("render: '%s' (%s)\n", tpl.RelativePath, time.Now().Sub(t1))
		out.Files = append(out.Files, files.NewOutputFileForTemplate(tpl.RelativePath, cfg.Extension, []byte(result)))
	}

	for _, name := range in.Names {
		result, err := renderer.RenderByName(name, ctx)
		if err != nil {
			return Output{Err: err}
		}
		out.Files = append(out.Files, files.NewOutputFile(name, []byte(result)))
	}

	return out
}

func (o *RenderOptions) debugValues(vals *orderedmap.Map, ui ui.UI) {
	bs, err := yaml.Marshal(orderedmap.Conversion{Object: vals}.AsUnorderedStringMaps())
	if err != nil {
		ui.Debugf("data values: %s\n", err)
		return
	}
	ui.Debugf("### data values\n%s", bs)
}

func (o *RenderOptions) renderer(cfg template.Config, in Input, ui ui.UI) *template.Renderer {
	if o.cache == nil {
		o.cache = template.NewCache()
	}
	if o.loader == nil {
		locator := cfg.Locator()
		locator.UI = ui
		o.loader = files.NewLoader(locator, cfg.SearchDirs).WithCache(0)
	}

	opts := []template.RendererOpt{template.WithCache(o.cache), template.WithLoader(o.loader)}
	if in.Bulk {
		opts = append(opts, template.WithPartialLoader(bulkPartials(in.Templates, cfg.Extension)))
	}
	return template.NewRenderer(cfg, opts...)
}

// defaultSearchDirs are directories of input files followed by the working
// directory.
func (o *RenderOptions) defaultSearchDirs(in Input) []string {
	var result []string
	seen := map[string]struct{}{}
	for _, dir := range append(append([]string{}, in.Dirs...), ".") {
		if _, found := seen[dir]; !found {
			seen[dir] = struct{}{}
			result = append(result, dir)
		}
	}
	return result
}

func (o *RenderOptions) pickSource(srcs []FileSource, pickFunc func(FileSource) bool) FileSource {
	for _, src := range srcs {
		if pickFunc(src) {
			return src
		}
	}
	return srcs[len(srcs)-1]
}

// bulkPartials exposes bulk templates as partials by their full name and by
// their name without the template extension.
func bulkPartials(tpls []InputTemplate, ext files.Extension) template.MapPartialLoader {
	result := template.MapPartialLoader{}
	for _, tpl := range tpls {
		result[tpl.RelativePath] = tpl.Text
	}
	for _, tpl := range tpls {
		trimmed := files.NewOutputFileForTemplate(tpl.RelativePath, ext, nil).RelativePath()
		if _, found := result[trimmed]; !found {
			result[trimmed] = tpl.Text
		}
	}
	return result
}
