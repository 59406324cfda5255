// SPDX-License-Identifier: GPL-2.0-or-later

// Package history keeps the recently opened documents.
package history

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"chisel/filesystem"
	"chisel/protos"
)

const (
	// add a max size to prevent the file from growing indefinitely
	maxHistory = 256

	historyFilename = "history.bin"
)

var entriesField = protos.History.Fields().ByName("entries")

// History is ordered most recent first.
type History struct {
	entries []string
	max     int
}

// New returns an empty history keeping at most size entries.
func New(size int) *History {
	return &History{max: size}
}

func (h *History) limit() int {
	if h.max <= 0 || h.max > maxHistory {
		return maxHistory
	}
	return h.max
}

// SetMax changes the size limit, dropping the oldest entries if needed.
func (h *History) SetMax(size int) {
	h.max = size
	h.trim()
}

func (h *History) trim() {
	if l := h.limit(); len(h.entries) > l {
		h.entries = h.entries[:l]
	}
}

// Add moves path to the front.
func (h *History) Add(path string) {
	e := make([]string, 0, len(h.entries)+1)
	e = append(e, path)
	for _, o := range h.entries {
		if o != path {
			e = append(e, o)
		}
	}
	h.entries = e
	h.trim()
}

func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

func (h *History) Len() int {
	return len(h.entries)
}

// Latest returns the most recent entry.
func (h *History) Latest() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[0], true
}

// Path returns the history file: in the base dir if one is set, in the
// user's config directory otherwise.
func Path() (string, error) {
	if d := filesystem.BaseDir(); d != "" {
		return filepath.Join(d, historyFilename), nil
	}
	d, err := homedir.Expand("~/.config/chisel")
	if err != nil {
		return "", errors.Wrap(err, "history path")
	}
	return filepath.Join(d, historyFilename), nil
}

func (h *History) Load() error {
	fullname, err := Path()
	if err != nil {
		return err
	}
	in, err := os.ReadFile(fullname)
	if err != nil {
		// assume no history file
		return nil
	}
	entries, err := decode(in)
	if err != nil {
		return errors.Wrap(err, "failed to decode history")
	}
	h.entries = entries
	h.trim()
	return nil
}

func (h *History) Save() error {
	fullname, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullname), 0755); err != nil {
		return errors.Wrap(err, "failed to create history dir")
	}
	out, err := encode(h.entries)
	if err != nil {
		return errors.Wrap(err, "failed to encode history")
	}
	if err := filesystem.WriteFile(fullname, out); err != nil {
		return errors.Wrap(err, "failed to write history file")
	}
	return nil
}

func encode(entries []string) ([]byte, error) {
	m := dynamicpb.NewMessage(protos.History)
	l := m.Mutable(entriesField).List()
	for _, e := range entries {
		l.Append(protoreflect.ValueOfString(e))
	}
	return proto.Marshal(m)
}

func decode(b []byte) ([]string, error) {
	m := dynamicpb.NewMessage(protos.History)
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, err
	}
	l := m.Get(entriesField).List()
	entries := make([]string, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		entries = append(entries, l.Get(i).String())
	}
	return entries, nil
}
