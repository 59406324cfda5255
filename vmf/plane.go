// SPDX-License-Identifier: GPL-2.0-or-later

package vmf

import (
	"strconv"
	"strings"

	"chisel/math/vec"

	"github.com/pkg/errors"
)

var (
	errPlaneSyntax = errors.New("want \"(x y z) (x y z) (x y z)\"")
	errUVSyntax    = errors.New("want \"[x y z offset] scale\"")
)

// Point is a position in document space, Z is up.
type Point struct {
	X, Y, Z float64
}

// Vec3 returns p in engine space where Y is up.
func (p Point) Vec3() vec.Vec3 {
	return vec.Vec3{X: float32(p.X), Y: float32(p.Z), Z: float32(p.Y)}
}

func (p Point) String() string {
	return "(" + formatFloat(p.X) + " " + formatFloat(p.Y) + " " + formatFloat(p.Z) + ")"
}

// Plane is a side's plane given by three points on it. The points are not
// the corners of the face.
type Plane struct {
	Points [3]Point
}

// ParsePlane reads "(x y z) (x y z) (x y z)".
func ParsePlane(s string) (Plane, error) {
	var p Plane
	rest := s
	cut := func(sep string) (string, bool) {
		before, after, ok := strings.Cut(rest, sep)
		rest = after
		return strings.TrimSpace(before), ok
	}
	for i := range p.Points {
		if _, ok := cut("("); !ok {
			return Plane{}, errPlaneSyntax
		}
		var c [3]float64
		for j, sep := range []string{" ", " ", ")"} {
			f, ok := cut(sep)
			if !ok {
				return Plane{}, errPlaneSyntax
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return Plane{}, err
			}
			c[j] = v
		}
		p.Points[i] = Point{c[0], c[1], c[2]}
	}
	if strings.TrimSpace(rest) != "" {
		return Plane{}, errPlaneSyntax
	}
	return p, nil
}

func (p Plane) String() string {
	return p.Points[0].String() + " " + p.Points[1].String() + " " + p.Points[2].String()
}

// UV is a texture axis: direction, offset and scale.
type UV struct {
	Axis  [4]float64
	Scale float64
}

// ParseUV reads "[x y z offset] scale".
func ParseUV(s string) (UV, error) {
	var uv UV
	s = strings.TrimSpace(s)
	inner, scale, ok := strings.Cut(strings.TrimPrefix(s, "["), "]")
	if !ok || !strings.HasPrefix(s, "[") {
		return UV{}, errUVSyntax
	}
	f := strings.Fields(inner)
	if len(f) != len(uv.Axis) {
		return UV{}, errUVSyntax
	}
	for i, c := range f {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return UV{}, err
		}
		uv.Axis[i] = v
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(scale), 64)
	if err != nil {
		return UV{}, err
	}
	uv.Scale = v
	return uv, nil
}

func (uv UV) String() string {
	return "[" + formatFloat(uv.Axis[0]) + " " + formatFloat(uv.Axis[1]) + " " +
		formatFloat(uv.Axis[2]) + " " + formatFloat(uv.Axis[3]) + "] " + formatFloat(uv.Scale)
}
