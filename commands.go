// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"chisel/cmd"
	"chisel/commandline"
	"chisel/conlog"
	"chisel/cvars"
	"chisel/export"
	"chisel/filesystem"
	"chisel/geometry"
	"chisel/history"
	"chisel/loader"
	"chisel/vmf"
)

func init() {
	cmd.Must(cmd.AddCommand("info", "info <file>: print a summary of the document", info))
	cmd.Must(cmd.AddCommand("faces", "faces <file>: print the reconstructed faces", faces))
	cmd.Must(cmd.AddCommand("resave", "resave <file>: load and save the document, to -o or in place", resave))
	cmd.Must(cmd.AddCommand("export", "export <file>: write the brushes (-format pb) or the summary (-format yaml)", exportCmd))
	cmd.Must(cmd.AddCommand("watch", "watch <file>: reload the document whenever it changes", watch))
	cmd.Must(cmd.AddCommand("history", "history: list recently opened documents", listHistory))
}

func options() loader.Options {
	o := loader.Options{
		Geometry: geometry.Options{
			Epsilon:   cvars.GeomEpsilon.Value(),
			MaxPlanes: cvars.GeomMaxPlanes.Int(),
		},
		Workers: cvars.GeomWorkers.Int(),
		Strict:  cvars.VMFStrict.Bool() || commandline.Strict(),
	}
	if n, ok := commandline.Workers(); ok {
		o.Workers = n
	}
	return o
}

func fileArg(a cmd.Arguments) (string, error) {
	if len(a.Args()) != 2 {
		return "", errors.Errorf("usage: %s", cmd.Usage(a.Argv(0).String()))
	}
	return a.Argv(1).String(), nil
}

func remember(path string) {
	h := history.New(cvars.HistorySize.Int())
	if err := h.Load(); err != nil {
		slog.Warn("Could not load history", "err", err)
	}
	h.Add(filesystem.Resolve(path))
	if err := h.Save(); err != nil {
		slog.Warn("Could not save history", "err", err)
	}
}

func load(ctx context.Context, a cmd.Arguments) (string, *vmf.Document, []*geometry.Brush, error) {
	path, err := fileArg(a)
	if err != nil {
		return "", nil, nil, err
	}
	doc, brushes, err := loader.Load(ctx, path, options())
	if err != nil {
		return "", nil, nil, err
	}
	remember(path)
	return path, doc, brushes, nil
}

func info(ctx context.Context, a cmd.Arguments) error {
	_, doc, brushes, err := load(ctx, a)
	if err != nil {
		return err
	}
	out, err := export.Summary(doc, brushes).Marshal()
	if err != nil {
		return err
	}
	conlog.Printf("%s", out)
	return nil
}

func faces(ctx context.Context, a cmd.Arguments) error {
	_, _, brushes, err := load(ctx, a)
	if err != nil {
		return err
	}
	for _, b := range brushes {
		conlog.Printf("solid %d: %d faces\n", b.ID, len(b.Faces))
		for _, f := range b.Faces {
			conlog.Printf("  side %d %s normal %v, %d triangles\n", f.SideID, f.Material, f.Normal, len(geometry.Triangulate(f.Vertices)))
			for _, v := range f.Vertices {
				conlog.Printf("    %v\n", v)
			}
		}
	}
	return nil
}

func resave(_ context.Context, a cmd.Arguments) error {
	path, err := fileArg(a)
	if err != nil {
		return err
	}
	b, err := filesystem.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := vmf.LoadBytes(b)
	if err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	if err := doc.Err(); err != nil {
		if cvars.VMFStrict.Bool() || commandline.Strict() {
			return errors.Wrapf(err, "load %s", path)
		}
		slog.Warn("Broken blocks are written back unchanged", "path", path, "problems", len(doc.Problems))
	}
	out, err := doc.Marshal()
	if err != nil {
		return err
	}
	target := commandline.Output()
	if target == "" {
		target = path
	}
	if err := filesystem.WriteFile(target, out); err != nil {
		return err
	}
	remember(path)
	slog.Info("Saved", "path", target, "bytes", len(out))
	return nil
}

func exportCmd(ctx context.Context, a cmd.Arguments) error {
	path, doc, brushes, err := load(ctx, a)
	if err != nil {
		return err
	}
	var out []byte
	switch f := commandline.Format(); f {
	case "pb":
		if out, err = export.EncodeBrushes(brushes); err != nil {
			return err
		}
	case "yaml":
		if out, err = export.Summary(doc, brushes).Marshal(); err != nil {
			return err
		}
	default:
		return errors.Errorf("unknown export format %q", f)
	}
	target := commandline.Output()
	if target == "" {
		target = filesystem.StripExt(path) + "." + commandline.Format()
	}
	if err := filesystem.WriteFile(target, out); err != nil {
		return err
	}
	slog.Info("Exported", "path", target, "brushes", len(brushes), "bytes", len(out))
	return nil
}

func watch(ctx context.Context, a cmd.Arguments) error {
	path, err := fileArg(a)
	if err != nil {
		return err
	}
	m := loader.New(options())
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range m.Updates() {
			if r.Err != nil {
				conlog.Printf("%s: %v\n", r.Path, r.Err)
				continue
			}
			s := export.Summary(r.Document, r.Brushes)
			conlog.Printf("%s: %d solids, %d faces, %d problems\n", r.Path, len(s.Solids), s.Faces, len(s.Problems))
		}
	}()
	remember(path)
	err = loader.Watch(ctx, m, path)
	m.Close()
	<-done
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func listHistory(_ context.Context, _ cmd.Arguments) error {
	h := history.New(cvars.HistorySize.Int())
	if err := h.Load(); err != nil {
		return err
	}
	for i, e := range h.Entries() {
		conlog.Printf("%2d %s\n", i, e)
	}
	return nil
}
