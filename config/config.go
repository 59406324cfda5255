// SPDX-License-Identifier: GPL-2.0-or-later

// Package config persists archived cvars in a TOML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"chisel/cvar"
	"chisel/filesystem"
)

const defaultPath = "~/.config/chisel/chisel.toml"

type file struct {
	Cvars map[string]any `toml:"cvars"`
}

// DefaultPath returns the config file in the user's home directory.
func DefaultPath() (string, error) {
	p, err := homedir.Expand(defaultPath)
	if err != nil {
		return "", errors.Wrap(err, "config path")
	}
	return p, nil
}

// Load applies the [cvars] table of the file at path. A missing file is not
// an error, unknown cvars are skipped.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Debug("No config file", "path", path)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	var f file
	if err := toml.Unmarshal(b, &f); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	names := make([]string, 0, len(f.Cvars))
	for n := range f.Cvars {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		cv, ok := cvar.Get(n)
		if !ok {
			slog.Warn("Unknown cvar in config", "name", n, "path", path)
			continue
		}
		cv.SetByString(format(f.Cvars[n]))
	}
	return nil
}

func format(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(v)
	}
}

// Save writes all archived cvars to path.
func Save(path string) error {
	f := file{Cvars: map[string]any{}}
	for _, cv := range cvar.All() {
		if cv.Archive() {
			f.Cvars[cv.Name()] = cv.String()
		}
	}
	b, err := toml.Marshal(f)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "create config dir")
	}
	if err := filesystem.WriteFile(path, b); err != nil {
		return err
	}
	slog.Debug("Config saved", "path", path)
	return nil
}
