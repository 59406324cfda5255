// SPDX-License-Identifier: GPL-2.0-or-later

// Package loader loads documents and reconstructs their brushes in the
// background. A newer selection supersedes the one in flight, listeners only
// ever see the latest result.
package loader

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"chisel/filesystem"
	"chisel/geometry"
	"chisel/vmf"
)

var ErrClosed = errors.New("loader closed")

type Options struct {
	Geometry geometry.Options
	// Workers is passed to geometry.ReconstructAll, <= 0 means GOMAXPROCS.
	Workers int
	// Strict fails documents that have broken solids or entities.
	Strict bool
}

var DefaultOptions = Options{Geometry: geometry.DefaultOptions}

// Result is the outcome of one selection. Err is set if the document could
// not be loaded, Document and Brushes are nil then.
type Result struct {
	Generation uuid.UUID
	Path       string
	Document   *vmf.Document
	Brushes    []*geometry.Brush
	Err        error
}

// Load reads, parses, maps and reconstructs the document at path.
func Load(ctx context.Context, path string, opts Options) (*vmf.Document, []*geometry.Brush, error) {
	b, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	doc, err := vmf.LoadBytes(b)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "load %s", path)
	}
	if err := doc.Err(); err != nil {
		if opts.Strict {
			return nil, nil, errors.Wrapf(err, "load %s", path)
		}
		for _, p := range doc.Problems {
			slog.Warn("Skipping broken block", "path", path, "problem", p.Error())
		}
	}
	brushes, err := opts.Geometry.ReconstructAll(ctx, doc.AllSolids(), opts.Workers)
	if err != nil {
		return nil, nil, err
	}
	return doc, brushes, nil
}

type Manager struct {
	opts    Options
	current atomic.Pointer[Result]
	updates chan *Result
	wg      sync.WaitGroup

	mu     sync.Mutex
	gen    uuid.UUID
	cancel context.CancelFunc
	closed bool
}

func New(opts Options) *Manager {
	return &Manager{
		opts:    opts,
		updates: make(chan *Result, 1),
	}
}

// Current returns the latest successful result, nil before the first one.
// A failed load does not replace it.
func (m *Manager) Current() *Result {
	return m.current.Load()
}

// Updates delivers every published result, successful or not. Only the
// latest unread one is kept. The channel is closed by Close.
func (m *Manager) Updates() <-chan *Result {
	return m.updates
}

// Select starts loading path and cancels the job in flight.
func (m *Manager) Select(path string) (uuid.UUID, error) {
	gen, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "generation id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return uuid.Nil, ErrClosed
	}
	if m.cancel != nil {
		slog.Debug("Superseding load", "generation", m.gen)
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.gen = gen
	m.cancel = cancel
	m.wg.Add(1)
	go m.run(ctx, gen, path)
	return gen, nil
}

func (m *Manager) run(ctx context.Context, gen uuid.UUID, path string) {
	defer m.wg.Done()
	slog.Info("Loading", "path", path, "generation", gen)
	start := time.Now()
	doc, brushes, err := Load(ctx, path, m.opts)
	if ctx.Err() != nil {
		slog.Debug("Load cancelled", "path", path, "generation", gen)
		return
	}
	r := &Result{Generation: gen, Path: path, Err: err}
	if err != nil {
		slog.Error("Load failed", "path", path, "generation", gen, "err", err)
	} else {
		r.Document, r.Brushes = doc, brushes
		slog.Info("Loaded", "path", path, "generation", gen, "solids", len(brushes), "duration", time.Since(start))
	}
	m.publish(r)
}

// publish is the only writer of current and updates.
func (m *Manager) publish(r *Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || r.Generation != m.gen {
		slog.Debug("Dropping superseded result", "path", r.Path, "generation", r.Generation)
		return
	}
	if r.Err == nil {
		m.current.Store(r)
	}
	select {
	case m.updates <- r:
	default:
		select {
		case <-m.updates:
		default:
		}
		m.updates <- r
	}
}

// Wait blocks until no job is in flight or ctx is done.
func (m *Manager) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels the job in flight, waits for it and closes Updates.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	if m.cancel != nil {
		m.cancel()
	}
	m.mu.Unlock()
	m.wg.Wait()
	close(m.updates)
}
