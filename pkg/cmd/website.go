// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"encoding/json"

	"carvel.dev/stache/pkg/cmd/render"
	"carvel.dev/stache/pkg/cmd/ui"
	"carvel.dev/stache/pkg/website"
	"github.com/spf13/cobra"
)

type WebsiteOptions struct {
	ListenAddr      string
	RedirectToHTTPS bool
	Debug           bool
}

func NewWebsiteOptions() *WebsiteOptions {
	return &WebsiteOptions{}
}

func NewWebsiteCmd(o *WebsiteOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "website",
		Short: "Starts website HTTP server",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.ListenAddr, "listen-addr", "localhost:8080", "Listen address")
	cmd.Flags().BoolVar(&o.RedirectToHTTPS, "redirect-to-https", true, "Redirect to HTTPs address")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *WebsiteOptions) Server() *website.Server {
	opts := website.ServerOpts{
		ListenAddr:      o.ListenAddr,
		RedirectToHTTPS: o.RedirectToHTTPS,
		RenderFunc:      o.renderBulk,
		ErrorFunc:       o.bulkOutErr,
	}
	return website.NewServer(opts)
}

func (o *WebsiteOptions) Run() error {
	return o.Server().Run()
}

// renderBulk renders bulk input in process. Rendering errors are part of the
// bulk output rather than a failed request.
func (o *WebsiteOptions) renderBulk(data []byte) ([]byte, error) {
	in, err := render.BulkInput(data)
	if err != nil {
		return nil, err
	}

	// templates only ever come from the request
	in.Dirs = nil
	in.Names = nil

	var stdout, stderr bytes.Buffer
	tty := ui.NewCustomWriterTTY(o.Debug, &stdout, &stderr)

	opts := render.NewOptions()
	opts.DataValuesFlags.Environ = func() []string { return nil }

	return render.BulkOutput(opts.RunWithFiles(in, tty))
}

func (*WebsiteOptions) bulkOutErr(err error) ([]byte, error) {
	return json.Marshal(render.BulkFiles{Errors: err.Error()})
}
