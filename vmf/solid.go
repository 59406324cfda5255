// SPDX-License-Identifier: GPL-2.0-or-later

package vmf

import (
	"github.com/pkg/errors"

	"chisel/kv"
)

// Solid is a convex brush bounded by the planes of its sides.
type Solid struct {
	ID    int
	Sides []*Side
	Rest  *kv.Node
}

// Side is one bounding plane of a solid with its texturing.
type Side struct {
	ID              int
	Plane           Plane
	Material        string
	UAxis           UV
	VAxis           UV
	Rotation        float64
	LightmapScale   int
	SmoothingGroups int
	Rest            *kv.Node
}

// parseSolid consumes the known fields of n.
func parseSolid(n *kv.Node) (*Solid, error) {
	id, err := takeInt(n, "solid", "id")
	if err != nil {
		return nil, err
	}
	sides, ok := n.TakeChildren("side")
	if !ok {
		return &Solid{ID: id}, &MissingFieldError{Block: "solid", Field: "side"}
	}
	s := &Solid{
		ID:    id,
		Sides: make([]*Side, 0, len(sides)),
	}
	for i, sn := range sides {
		side, err := parseSide(sn)
		if err != nil {
			return s, errors.Wrapf(err, "side %d", i)
		}
		s.Sides = append(s.Sides, side)
	}
	s.Rest = n
	return s, nil
}

func (s *Solid) AsGeneric() *kv.Node {
	g := s.Rest.Clone()
	g.Set("id", formatInt(s.ID))
	sides := make([]*kv.Node, len(s.Sides))
	for i, side := range s.Sides {
		sides[i] = side.AsGeneric()
	}
	g.SetChildren("side", sides)
	return g
}

func parseSide(n *kv.Node) (*Side, error) {
	const block = "side"
	var (
		s   Side
		err error
	)
	if s.ID, err = takeInt(n, block, "id"); err != nil {
		return nil, err
	}
	plane, err := takeString(n, block, "plane")
	if err != nil {
		return nil, err
	}
	if s.Plane, err = ParsePlane(plane); err != nil {
		return nil, &FieldParseError{Block: block, Field: "plane", Value: plane, Err: err}
	}
	if s.Material, err = takeString(n, block, "material"); err != nil {
		return nil, err
	}
	for _, a := range []struct {
		key string
		uv  *UV
	}{{"uaxis", &s.UAxis}, {"vaxis", &s.VAxis}} {
		v, err := takeString(n, block, a.key)
		if err != nil {
			return nil, err
		}
		if *a.uv, err = ParseUV(v); err != nil {
			return nil, &FieldParseError{Block: block, Field: a.key, Value: v, Err: err}
		}
	}
	if s.Rotation, err = takeFloat(n, block, "rotation"); err != nil {
		return nil, err
	}
	if s.LightmapScale, err = takeInt(n, block, "lightmapscale"); err != nil {
		return nil, err
	}
	if s.SmoothingGroups, err = takeInt(n, block, "smoothing_groups"); err != nil {
		return nil, err
	}
	s.Rest = n
	return &s, nil
}

func (s *Side) AsGeneric() *kv.Node {
	g := s.Rest.Clone()
	g.Set("id", formatInt(s.ID))
	g.Set("plane", s.Plane.String())
	g.Set("material", s.Material)
	g.Set("uaxis", s.UAxis.String())
	g.Set("vaxis", s.VAxis.String())
	g.Set("rotation", formatFloat(s.Rotation))
	g.Set("lightmapscale", formatInt(s.LightmapScale))
	g.Set("smoothing_groups", formatInt(s.SmoothingGroups))
	return g
}
