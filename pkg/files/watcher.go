// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultWatchDebounce = 200 * time.Millisecond

// Watcher reports batches of changed file paths under a set of directories.
// Events arriving within the debounce window are delivered together.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	changes   chan []string
	done      chan struct{}
	ui        UI
}

func NewWatcher(dirs []string, debounce time.Duration, ui UI) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("Creating file watcher: %s", err)
	}

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("Watching directory '%s': %s", dir, err)
		}
	}

	if ui == nil {
		ui = noopUI{}
	}

	w := &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		changes:   make(chan []string, 1),
		done:      make(chan struct{}),
		ui:        ui,
	}
	go w.loop()

	return w, nil
}

func (w *Watcher) Changes() <-chan []string { return w.changes }

func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time
	pending := map[string]struct{}{}

	defer close(w.changes)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.ui.Debugf("watcher: %s\n", event)
			pending[event.Name] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if len(pending) == 0 {
				continue
			}
			var paths []string
			for path := range pending {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			pending = map[string]struct{}{}

			select {
			case w.changes <- paths:
			case <-w.done:
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.ui.Debugf("watcher: error: %s\n", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
