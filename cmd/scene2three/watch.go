package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <html-path>",
		Short: "Export again whenever the scene file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, args[0])
		},
	}
}

// watch exports once, then again after every change to the scene file.
// Runs happen one at a time on this goroutine; events arriving during a
// run are handled after it returns.
func (a *app) watch(ctx context.Context, cmd *cobra.Command, htmlPath string) error {
	scene, err := filepath.Abs(a.cfg.ScenePath)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	// Editors often save by renaming over the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(scene)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(scene), err)
	}
	a.log.Info("watching", "scene", scene)

	_ = a.exportOnce(cmd, htmlPath)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != scene || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			a.log.Debug("scene changed", "op", ev.Op.String())
			_ = a.exportOnce(cmd, htmlPath)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watch error", "err", err)
		}
	}
}
