// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"carvel.dev/stache/pkg/cmd/render"
	"carvel.dev/stache/pkg/cmd/ui"
	"carvel.dev/stache/pkg/files"
	"github.com/stretchr/testify/require"
)

func TestRunWithFilesTemplatesAndDataValues(t *testing.T) {
	opts := render.NewOptions()
	opts.DataValuesFlags.KVsFromStrings = []string{"name=Chris", "place.city=Sofia"}
	opts.DataValuesFlags.KVsFromYAML = []string{"items=[a, b]"}

	in := render.Input{Templates: []render.InputTemplate{
		{RelativePath: "hello.txt.mustache", Text: "Hello {{name}} from {{place.city}}{{#items}} {{.}}{{/items}}\n"},
		{RelativePath: "nested/plain.txt", Text: "{{! nothing }}plain\n"},
	}}

	out := opts.RunWithFiles(in, ui.NewTTY(false))
	require.NoError(t, out.Err)
	require.Len(t, out.Files, 2)

	require.Equal(t, "hello.txt", out.Files[0].RelativePath())
	require.Equal(t, "Hello Chris from Sofia a b\n", string(out.Files[0].Bytes()))

	require.Equal(t, "nested/plain.txt", out.Files[1].RelativePath())
	require.Equal(t, "plain\n", string(out.Files[1].Bytes()))
}

func TestRunWithFilesStopsAtFirstError(t *testing.T) {
	in := render.Input{Templates: []render.InputTemplate{
		{RelativePath: "ok.mustache", Text: "ok"},
		{RelativePath: "bad.mustache", Text: "{{#open}}"},
	}}

	out := render.NewOptions().RunWithFiles(in, ui.NewTTY(false))
	require.EqualError(t, out.Err, "Missing closing tag for section 'open' at line bad.mustache:1:1")
	require.Empty(t, out.Files)
}

func TestRunWithFilesByName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.mustache"), "<h1>{{title}}</h1>{{>footer}}")
	writeFile(t, filepath.Join(dir, "footer.mustache"), "<p>{{title}}</p>")

	opts := render.NewOptions()
	opts.DataValuesFlags.KVsFromStrings = []string{"title=A & B"}

	out := opts.RunWithFiles(render.Input{Names: []string{"page"}, Dirs: []string{dir}}, ui.NewTTY(false))
	require.NoError(t, out.Err)
	require.Len(t, out.Files, 1)
	require.Equal(t, "page", out.Files[0].RelativePath())
	require.Equal(t, "<h1>A &amp; B</h1><p>A &amp; B</p>", string(out.Files[0].Bytes()))
}

func TestRunWithFilesMissingName(t *testing.T) {
	dir := t.TempDir()

	out := render.NewOptions().RunWithFiles(render.Input{Names: []string{"nope"}, Dirs: []string{dir}}, ui.NewTTY(false))
	require.Error(t, out.Err)
	require.ErrorIs(t, out.Err, files.ErrNotFound)
}

func TestBulkInputAndOutput(t *testing.T) {
	bulkIn, err := json.Marshal(render.BulkFiles{
		Files: []render.BulkFile{
			{Name: "index.html.mustache", Data: "{{#people}}{{>person}}{{/people}}"},
			{Name: "person.mustache", Data: "<li>{{name}}</li>"},
		},
		Data: map[string]interface{}{
			"people": []interface{}{
				map[string]interface{}{"name": "a"},
				map[string]interface{}{"name": "<b>"},
			},
		},
	})
	require.NoError(t, err)

	in, err := render.BulkInput(bulkIn)
	require.NoError(t, err)
	require.True(t, in.Bulk)

	out := render.NewOptions().RunWithFiles(in, ui.NewTTY(false))
	require.NoError(t, out.Err)

	bulkOut, err := render.BulkOutput(out)
	require.NoError(t, err)

	var result render.BulkFiles
	require.NoError(t, json.Unmarshal(bulkOut, &result))
	require.Equal(t, []render.BulkFile{
		{Name: "index.html", Data: "<li>a</li><li>&lt;b&gt;</li>"},
		{Name: "person", Data: "<li></li>"},
	}, result.Files)
	require.Empty(t, result.Errors)
}

func TestBulkOutputErrors(t *testing.T) {
	in, err := render.BulkInput([]byte(`{"files":[{"name":"x.mustache","data":"{{>missing}}"}]}`))
	require.NoError(t, err)

	out := render.NewOptions().RunWithFiles(in, ui.NewTTY(false))
	require.Error(t, out.Err)

	bulkOut, err := render.BulkOutput(out)
	require.NoError(t, err)

	var result render.BulkFiles
	require.NoError(t, json.Unmarshal(bulkOut, &result))
	require.Empty(t, result.Files)
	require.Contains(t, result.Errors, "Loading partial 'missing'")
}

func TestBulkInputInvalidJSON(t *testing.T) {
	_, err := render.BulkInput([]byte(`{`))
	require.Error(t, err)
}

func TestCmdFlagsAndConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "stache.yml")
	writeFile(t, configPath, "escape: none\nzero_values_falsy: true\n")

	opts := render.NewOptions()
	cmd := render.NewCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", configPath, "--data-value-yaml", "count=0", "-v", "html=<i>"}))

	in := render.Input{Templates: []render.InputTemplate{
		{RelativePath: "t.mustache", Text: "{{html}}{{#count}}never{{/count}}"},
	}}

	out := opts.RunWithFiles(in, ui.NewTTY(false))
	require.NoError(t, out.Err)
	require.Equal(t, "<i>", string(out.Files[0].Bytes()))
}

func TestCmdFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "stache.toml")
	writeFile(t, configPath, "escape = \"none\"\n")

	opts := render.NewOptions()
	cmd := render.NewCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", configPath, "--escape", "html", "-v", "html=<i>"}))

	out := opts.RunWithFiles(render.Input{Templates: []render.InputTemplate{
		{RelativePath: "t.mustache", Text: "{{html}}"},
	}}, ui.NewTTY(false))
	require.NoError(t, out.Err)
	require.Equal(t, "&lt;i&gt;", string(out.Files[0].Bytes()))
}

func TestCmdUnknownEscape(t *testing.T) {
	opts := render.NewOptions()
	cmd := render.NewCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--escape", "xml"}))

	out := opts.RunWithFiles(render.Input{}, ui.NewTTY(false))
	require.EqualError(t, out.Err, "Unknown escape mode 'xml' (expected one of: html, none, sanitize)")
}

func TestCmdMissingConfigFile(t *testing.T) {
	opts := render.NewOptions()
	cmd := render.NewCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "nope.yml")}))

	out := opts.RunWithFiles(render.Input{}, ui.NewTTY(false))
	require.Error(t, out.Err)
	require.Contains(t, out.Err.Error(), "Reading config file")
}

func TestRegularFilesSourceOutputToDirectory(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(srcDir, "a.txt.mustache"), "A={{a}}")
	writeFile(t, filepath.Join(srcDir, "sub", "b.mustache"), "B={{>a.txt}}")

	opts := render.NewOptions()
	cmd := render.NewCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"-f", srcDir, "-R", "-o", outDir, "-v", "a=1"}))

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	tty := ui.NewCustomWriterTTY(false, stdout, stderr)
	src := render.NewRegularFilesSource(opts.RegularFilesSourceOpts, tty)

	in, err := src.Input()
	require.NoError(t, err)
	require.Equal(t, []string{srcDir}, in.Dirs)

	require.NoError(t, src.Output(opts.RunWithFiles(in, tty)))

	bs, err := os.ReadFile(filepath.Join(outDir, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "A=1", string(bs))

	bs, err = os.ReadFile(filepath.Join(outDir, "sub", "b"))
	require.NoError(t, err)
	require.Equal(t, "B=A=1", string(bs))

	require.Contains(t, stdout.String(), "creating: "+filepath.Join(outDir, "a.txt"))
}

func TestRegularFilesSourceStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.mustache")
	writeFile(t, path, "{{greeting}}, world\n")

	opts := render.NewOptions()
	cmd := render.NewCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"-f", path, "-v", "greeting=hi"}))

	stdout := &bytes.Buffer{}
	tty := ui.NewCustomWriterTTY(false, stdout, &bytes.Buffer{})
	src := render.NewRegularFilesSource(opts.RegularFilesSourceOpts, tty)

	in, err := src.Input()
	require.NoError(t, err)
	require.Equal(t, []string{dir}, in.Dirs)

	require.NoError(t, src.Output(opts.RunWithFiles(in, tty)))
	require.Equal(t, "hi, world\n", stdout.String())
}

func TestRegularFilesSourceDirectoryRequiresRecursive(t *testing.T) {
	dir := t.TempDir()

	opts := render.NewOptions()
	cmd := render.NewCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"-f", dir}))

	_, err := render.NewRegularFilesSource(opts.RegularFilesSourceOpts, ui.NewTTY(false)).Input()
	require.EqualError(t, err, "Expected file '"+dir+"' to not be a directory")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestBulkInputDataMustBeMap(t *testing.T) {
	_, err := render.BulkInput([]byte(`{"files":[],"data":[1]}`))
	require.EqualError(t, err, "Expected bulk data to be a map, but was []interface {}")
}

func TestRunWithFilesDebugDumpsDataValues(t *testing.T) {
	opts := render.NewOptions()
	opts.Debug = true
	opts.DataValuesFlags.KVsFromStrings = []string{"place.city=Sofia"}

	stderr := &bytes.Buffer{}
	in := render.Input{Templates: []render.InputTemplate{{RelativePath: "a.mustache", Text: "{{place.city}}"}}}

	out := opts.RunWithFiles(in, ui.NewCustomWriterTTY(true, &bytes.Buffer{}, stderr))
	require.NoError(t, out.Err)
	require.Contains(t, stderr.String(), "### data values\nplace:\n    city: Sofia\n")
}
