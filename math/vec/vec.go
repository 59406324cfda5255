// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec3 is a point or direction in engine space (Y up).
type Vec3 struct {
	X, Y, Z float32
}

func VFromA(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}

func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g %g %g)", v.X, v.Y, v.Z)
}

// Length returns the length of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(Dot(v, v))
}

// Scale returns the vector multiplied by the skalar s
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{
		X: v.X * s,
		Y: v.Y * s,
		Z: v.Z * s,
	}
}

// Normalize returns the normalized vector, the null vector stays null
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Dot returns a dot b
func Dot(a Vec3, b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Bounds returns the component wise minimum and maximum of pts.
// Both are the null vector if pts is empty.
func Bounds(pts []Vec3) (mins, maxs Vec3) {
	if len(pts) == 0 {
		return
	}
	mins, maxs = pts[0], pts[0]
	for _, p := range pts[1:] {
		mins.X = math32.Min(mins.X, p.X)
		mins.Y = math32.Min(mins.Y, p.Y)
		mins.Z = math32.Min(mins.Z, p.Z)
		maxs.X = math32.Max(maxs.X, p.X)
		maxs.Y = math32.Max(maxs.Y, p.Y)
		maxs.Z = math32.Max(maxs.Z, p.Z)
	}
	return
}
