// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/stache/pkg/cmd/render"
	"carvel.dev/stache/pkg/version"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

type StacheOptions struct{}

func NewDefaultStacheOptions() *StacheOptions {
	return &StacheOptions{}
}

func NewDefaultStacheCmd() *cobra.Command {
	return NewStacheCmd(NewDefaultStacheOptions())
}

func NewStacheCmd(o *StacheOptions) *cobra.Command {
	cmd := render.NewCmd(render.NewOptions())

	cmd.Use = "stache"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "stache renders Mustache templates"
	cmd.Long = `stache renders Mustache templates.

Templates are given as files (-f), looked up by name in search
directories (--name, -d) or passed in bulk JSON format (--bulk-in).
Data values come from files and flags (--data-values-file, -v).`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(render.NewCmd(render.NewOptions()))
	cmd.AddCommand(NewWebsiteCmd(NewWebsiteOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
