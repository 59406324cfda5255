// SPDX-License-Identifier: GPL-2.0-or-later

package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

var (
	baseDir string
	mutex   sync.RWMutex
)

type File interface {
	io.ReadSeekCloser
	io.ReaderAt
}

func BaseDir() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return baseDir
}

// UseBaseDir sets the directory relative document names are resolved
// against. The empty string means the working directory.
func UseBaseDir(dir string) {
	mutex.Lock()
	defer mutex.Unlock()
	baseDir = dir
}

// Resolve returns the path name refers to.
func Resolve(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	mutex.RLock()
	defer mutex.RUnlock()
	return filepath.Join(baseDir, name)
}

func Stat(name string) (os.FileInfo, error) {
	return os.Stat(Resolve(name))
}

func Open(name string) (File, error) {
	f, err := os.Open(Resolve(name))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func ReadFile(name string) ([]byte, error) {
	file, err := Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", name)
	}
	defer file.Close()
	b, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return b, nil
}

// WriteFile replaces the file name with data. The data is written to a
// temporary file next to it first, so readers see either the old or the new
// content.
func WriteFile(name string, data []byte) error {
	path := Resolve(name)
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", name)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "sync %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return errors.Wrapf(err, "chmod %s", name)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "rename %s", name)
	}
	return nil
}

func isSep(c uint8) bool {
	return c == '/' || c == '\\'
}

func Ext(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func StripExt(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}
