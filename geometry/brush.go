// SPDX-License-Identifier: GPL-2.0-or-later

package geometry

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"chisel/math/vec"
	"chisel/vmf"
)

// Face is a reconstructed side of a solid.
type Face struct {
	SideID   int
	Material string
	// Normal is the unit outward normal.
	Normal vec.Vec3
	// Vertices run counter-clockwise seen from outside.
	Vertices []vec.Vec3
}

// Brush is the renderable geometry of one solid. A solid whose planes do not
// enclose a volume gives a Brush without faces.
type Brush struct {
	ID    int
	Faces []Face
}

// Bounds returns the corners of the axis aligned box around all vertices.
func (b *Brush) Bounds() (mins, maxs vec.Vec3) {
	var pts []vec.Vec3
	for _, f := range b.Faces {
		pts = append(pts, f.Vertices...)
	}
	return vec.Bounds(pts)
}

// VertexCount returns the number of face vertices, shared corners are
// counted once per face.
func (b *Brush) VertexCount() int {
	n := 0
	for _, f := range b.Faces {
		n += len(f.Vertices)
	}
	return n
}

func Reconstruct(s *vmf.Solid) *Brush {
	return DefaultOptions.Reconstruct(s)
}

// Reconstruct computes the faces of s from the planes of its sides.
func (o Options) Reconstruct(s *vmf.Solid) *Brush {
	b := &Brush{ID: s.ID}
	if len(s.Sides) > o.MaxPlanes {
		slog.Warn("Solid has too many sides, skipped", "solid", s.ID, "sides", len(s.Sides), "max", o.MaxPlanes)
		return b
	}
	planes := make([]StandardPlane, len(s.Sides))
	for i, side := range s.Sides {
		planes[i] = NewStandardPlane(side.Plane)
	}
	for _, f := range o.faces(planes) {
		side := s.Sides[f.plane]
		verts := make([]vec.Vec3, len(f.verts))
		for i, v := range f.verts {
			verts[i] = v.vec3()
		}
		b.Faces = append(b.Faces, Face{
			SideID:   side.ID,
			Material: side.Material,
			Normal:   planes[f.plane].Normal().Normalize(),
			Vertices: verts,
		})
	}
	if len(b.Faces) == 0 {
		slog.Debug("Solid has no faces", "solid", s.ID, "sides", len(s.Sides))
	}
	return b
}

// ReconstructAll reconstructs solids on up to workers goroutines. The result
// is in the order of solids. It stops early and returns ctx.Err() if ctx is
// cancelled.
func (o Options) ReconstructAll(ctx context.Context, solids []*vmf.Solid, workers int) ([]*Brush, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	brushes := make([]*Brush, len(solids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range solids {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			brushes[i] = o.Reconstruct(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return brushes, nil
}
