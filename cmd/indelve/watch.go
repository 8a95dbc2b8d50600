// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kraklabs/indelve/pkg/xdgpaths"
)

const watchDebounce = 500 * time.Millisecond

// runWatch watches the resolved XDG application directories
// (non-recursively, matching pkg/xdgpaths' own non-recursive discovery)
// and triggers a debounced Refresh(force=false) after any create, write,
// remove, or rename event. Grounded in cmd/cie/watch.go's fsnotify +
// debounce-timer pattern.
func runWatch(ind interface {
	Refresh(ctx context.Context, force bool)
}) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("watch.init_failed", "err", err)
		return
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range xdgpaths.ApplicationDirs() {
		if err := watcher.Add(dir); err != nil {
			slog.Debug("watch.add_failed", "dir", dir, "err", err)
			continue
		}
		watched++
	}
	slog.Info("watch.started", "dirs", watched)

	var debounceTimer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			slog.Debug("watch.event", "name", event.Name, "op", event.Op.String())
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(watchDebounce)
			timerC = debounceTimer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watch.error", "err", err)
		case <-timerC:
			timerC = nil
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			ind.Refresh(ctx, false)
			cancel()
			slog.Info("watch.refreshed")
		}
	}
}
