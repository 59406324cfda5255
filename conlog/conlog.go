// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	mutex sync.Mutex
	out   io.Writer = os.Stdout
)

// SetOutput redirects Printf.
func SetOutput(w io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	out = w
}

// Printf writes command output. Diagnostics go through slog.
func Printf(format string, v ...interface{}) {
	mutex.Lock()
	defer mutex.Unlock()
	fmt.Fprintf(out, format, v...)
}

func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return l, errors.Errorf("unknown log level %q", s)
	}
	return l, nil
}

// Init installs the default slog logger writing to w.
func Init(w io.Writer, level slog.Level, json bool) {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
}
