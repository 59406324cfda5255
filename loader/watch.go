// SPDX-License-Identifier: GPL-2.0-or-later

package loader

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"chisel/filesystem"
)

// Watch selects path on m and again whenever the file is written or
// replaced, until ctx is done.
func Watch(ctx context.Context, m *Manager, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "watch")
	}
	defer watcher.Close()
	full, err := filepath.Abs(filesystem.Resolve(path))
	if err != nil {
		return errors.Wrapf(err, "watch %s", path)
	}
	// editors save by renaming a new file over the old one, which drops a
	// watch on the file itself
	if err := watcher.Add(filepath.Dir(full)); err != nil {
		return errors.Wrapf(err, "watch %s", path)
	}
	if _, err := m.Select(path); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != full {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				slog.Debug("Document changed", "path", path, "op", event.Op.String())
				if _, err := m.Select(path); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watch error", "path", path, "err", err)
		}
	}
}
