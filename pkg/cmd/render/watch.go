// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"carvel.dev/stache/pkg/cmd/ui"
	"carvel.dev/stache/pkg/files"
)

func (o *RenderOptions) watch(in Input, inSrc, outSrc FileSource, ui ui.UI) error {
	if in.Bulk {
		return fmt.Errorf("Expected --watch to not be used with --bulk-in")
	}
	for _, path := range o.RegularFilesSourceOpts.files {
		if path == "-" {
			return fmt.Errorf("Expected --watch to not be used with stdin ('-f -')")
		}
	}

	cfg, err := o.EngineFlags.Config(o.defaultSearchDirs(in))
	if err != nil {
		return err
	}

	watcher, err := files.NewWatcher(cfg.SearchDirs, files.DefaultWatchDebounce, ui)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return o.watchLoop(ctx, in, inSrc, outSrc, watcher.Changes(), ui)
}

// watchLoop renders once and then again for every batch of changes until ctx
// is done or changes is closed. Failed renders are reported and do not stop
// watching.
func (o *RenderOptions) watchLoop(ctx context.Context, in Input, inSrc, outSrc FileSource,
	changes <-chan []string, ui ui.UI) error {

	o.renderAndReport(in, outSrc, ui)

	for {
		select {
		case <-ctx.Done():
			return nil

		case paths, ok := <-changes:
			if !ok {
				return nil
			}

			ui.Debugf("watch: changed %v\n", paths)
			o.forget(paths)

			newIn, err := inSrc.Input()
			if err != nil {
				ui.Warnf("stache: Error: %s\n", err)
				continue
			}
			o.renderAndReport(newIn, outSrc, ui)
		}
	}
}

func (o *RenderOptions) renderAndReport(in Input, outSrc FileSource, ui ui.UI) {
	err := outSrc.Output(o.RunWithFiles(in, ui))
	if err != nil {
		ui.Warnf("stache: Error: %s\n", err)
	}
}

func (o *RenderOptions) forget(paths []string) {
	if o.loader != nil {
		var keys []string
		for _, path := range paths {
			keys = append(keys, path, filepath.Clean(path))
		}
		o.loader.Forget(keys...)
	}
	if o.cache != nil {
		o.cache.Flush()
	}
}
