// SPDX-License-Identifier: GPL-2.0-or-later

package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chisel/vmf"
)

const timeout = 10 * time.Second

func boxText(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/box.vmf")
	require.NoError(t, err)
	return string(b)
}

// writeDoc writes text to a new file and returns its path.
func writeDoc(t *testing.T, dir, name, text string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(text), 0644))
	return p
}

// brokenBox has a world solid with an unreadable plane.
func brokenBox(t *testing.T) string {
	text := boxText(t)
	broken := strings.Replace(text, `"plane" "(-64 -64 64) (-64 64 64) (64 64 64)"`, `"plane" "(-64 -64 64)"`, 1)
	require.NotEqual(t, text, broken)
	return broken
}

func next(t *testing.T, m *Manager) *Result {
	t.Helper()
	select {
	case r, ok := <-m.Updates():
		require.True(t, ok, "updates closed")
		return r
	case <-time.After(timeout):
		require.FailNow(t, "no update")
	}
	return nil
}

func TestLoad(t *testing.T) {
	doc, brushes, err := Load(context.Background(), "testdata/box.vmf", DefaultOptions)
	require.NoError(t, err)
	assert.Len(t, doc.Entities, 2)
	require.Len(t, brushes, 2)
	assert.Equal(t, 2, brushes[0].ID)
	assert.Equal(t, 21, brushes[1].ID)
	for _, b := range brushes {
		assert.Len(t, b.Faces, 6)
	}
}

func TestLoadMissing(t *testing.T) {
	_, _, err := Load(context.Background(), "testdata/missing.vmf", DefaultOptions)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "testdata/missing.vmf")
}

func TestLoadStrict(t *testing.T) {
	p := writeDoc(t, t.TempDir(), "broken.vmf", brokenBox(t))

	doc, brushes, err := Load(context.Background(), p, DefaultOptions)
	require.NoError(t, err)
	assert.Len(t, doc.Problems, 1)
	require.Len(t, brushes, 1)
	assert.Equal(t, 21, brushes[0].ID)

	opts := DefaultOptions
	opts.Strict = true
	_, _, err = Load(context.Background(), p, opts)
	var le *vmf.LoadError
	require.True(t, errors.As(err, &le), "err = %v", err)
	assert.Len(t, le.Problems, 1)
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Load(ctx, "testdata/box.vmf", DefaultOptions)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManagerSelect(t *testing.T) {
	m := New(DefaultOptions)
	defer m.Close()
	assert.Nil(t, m.Current())
	gen, err := m.Select("testdata/box.vmf")
	require.NoError(t, err)
	r := next(t, m)
	assert.Equal(t, gen, r.Generation)
	require.NoError(t, r.Err)
	assert.Len(t, r.Brushes, 2)
	assert.Same(t, r, m.Current())
}

func TestManagerSupersede(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "a.vmf", boxText(t))
	b := writeDoc(t, dir, "b.vmf", boxText(t))
	m := New(DefaultOptions)
	defer m.Close()
	_, err := m.Select(a)
	require.NoError(t, err)
	genB, err := m.Select(b)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	require.NoError(t, m.Wait(ctx))

	r := next(t, m)
	assert.Equal(t, genB, r.Generation)
	assert.Equal(t, b, r.Path)
	assert.Equal(t, b, m.Current().Path)
	select {
	case r := <-m.Updates():
		t.Errorf("second update for %s", r.Path)
	default:
	}
}

func TestManagerFailureKeepsCurrent(t *testing.T) {
	m := New(DefaultOptions)
	defer m.Close()
	_, err := m.Select("testdata/box.vmf")
	require.NoError(t, err)
	good := next(t, m)
	require.NoError(t, good.Err)

	gen, err := m.Select("testdata/missing.vmf")
	require.NoError(t, err)
	r := next(t, m)
	assert.Equal(t, gen, r.Generation)
	assert.Error(t, r.Err)
	assert.Nil(t, r.Document)
	assert.Same(t, good, m.Current())
}

func TestManagerClose(t *testing.T) {
	m := New(DefaultOptions)
	m.Close()
	m.Close()
	gen, err := m.Select("testdata/box.vmf")
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, uuid.Nil, gen)
	_, ok := <-m.Updates()
	assert.False(t, ok)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	p := writeDoc(t, dir, "box.vmf", boxText(t))
	m := New(DefaultOptions)
	defer m.Close()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, m, p) }()

	first := next(t, m)
	require.NoError(t, first.Err)
	require.Len(t, first.Document.Entities, 2)

	// drop the point entity
	text := boxText(t)
	i := strings.LastIndex(text, "entity\r\n")
	j := strings.Index(text, "cameras\r\n")
	require.True(t, i > 0 && j > i)
	require.NoError(t, os.WriteFile(p, []byte(text[:i]+text[j:]), 0644))

	deadline := time.After(timeout)
	for {
		select {
		case r := <-m.Updates():
			if r.Generation == first.Generation || r.Err != nil || len(r.Document.Entities) != 1 {
				continue
			}
			cancel()
			select {
			case err := <-done:
				assert.ErrorIs(t, err, context.Canceled)
			case <-time.After(timeout):
				t.Error("Watch did not return")
			}
			return
		case <-deadline:
			cancel()
			t.Fatal("no update after write")
		}
	}
}
