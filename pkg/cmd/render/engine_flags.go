// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"

	"carvel.dev/stache/pkg/files"
	"carvel.dev/stache/pkg/template"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EngineFlags configure template lookup and evaluation. Values may also come
// from a config file (--config); flags given on the command line win.
type EngineFlags struct {
	ConfigFile string

	searchDirs      []string
	extension       string
	noExtension     bool
	escape          string
	zeroValuesFalsy bool
	maxPartialDepth int

	cmd *cobra.Command
}

// config file keys, by flag name
var engineConfigKeys = map[string]string{
	"search-dir":        "search_dirs",
	"extension":         "extension",
	"no-extension":      "no_extension",
	"escape":            "escape",
	"zero-values-falsy": "zero_values_falsy",
	"max-partial-depth": "max_partial_depth",
}

func (s *EngineFlags) Set(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.ConfigFile, "config", "", "Read engine settings from file (YAML, TOML or JSON; keys: "+
		"search_dirs, extension, no_extension, escape, zero_values_falsy, max_partial_depth)")
	cmd.Flags().StringSliceVarP(&s.searchDirs, "search-dir", "d", nil, "Directory to search for templates and partials (can be specified multiple times)")
	cmd.Flags().StringVar(&s.extension, "extension", string(files.DefaultExtension), "Template file extension")
	cmd.Flags().BoolVar(&s.noExtension, "no-extension", false, "Look up templates without a file extension")
	cmd.Flags().StringVar(&s.escape, "escape", template.EscapeHTML, "Escaping of {{name}} output (html, none, sanitize)")
	cmd.Flags().BoolVar(&s.zeroValuesFalsy, "zero-values-falsy", false, "Treat empty strings and zero numbers as false in sections")
	cmd.Flags().IntVar(&s.maxPartialDepth, "max-partial-depth", template.DefaultMaxPartialDepth, "Maximum partial nesting")
	s.cmd = cmd
}

// Config merges flags with the config file, if any.
func (s *EngineFlags) Config(defaultSearchDirs []string) (template.Config, error) {
	v := viper.New()

	if s.cmd != nil {
		for flagName, key := range engineConfigKeys {
			err := v.BindPFlag(key, s.cmd.Flags().Lookup(flagName))
			if err != nil {
				return template.Config{}, fmt.Errorf("Binding flag '%s': %s", flagName, err)
			}
		}
	} else {
		v.SetDefault("search_dirs", s.searchDirs)
		v.SetDefault("extension", s.extension)
		v.SetDefault("no_extension", s.noExtension)
		v.SetDefault("escape", s.escape)
		v.SetDefault("zero_values_falsy", s.zeroValuesFalsy)
		v.SetDefault("max_partial_depth", s.maxPartialDepth)
	}

	if len(s.ConfigFile) > 0 {
		v.SetConfigFile(s.ConfigFile)
		err := v.ReadInConfig()
		if err != nil {
			return template.Config{}, fmt.Errorf("Reading config file '%s': %s", s.ConfigFile, err)
		}
	}

	escape, err := template.EscapeByName(v.GetString("escape"))
	if err != nil {
		return template.Config{}, err
	}

	ext := files.Extension(v.GetString("extension"))
	if v.GetBool("no_extension") {
		ext = files.NoExtension
	}

	searchDirs := v.GetStringSlice("search_dirs")
	if len(searchDirs) == 0 {
		searchDirs = defaultSearchDirs
	}

	return template.Config{
		SearchDirs:      searchDirs,
		Extension:       ext,
		Escape:          escape,
		ZeroValuesFalsy: v.GetBool("zero_values_falsy"),
		MaxPartialDepth: v.GetInt("max_partial_depth"),
	}, nil
}
