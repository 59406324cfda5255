// SPDX-License-Identifier: GPL-2.0-or-later

package geometry

import (
	"chisel/math/vec"
)

// Triangulate splits a convex loop into a triangle fan around its first
// vertex. The triangles keep the winding of the loop.
func Triangulate(loop []vec.Vec3) [][3]vec.Vec3 {
	if len(loop) < 3 {
		return nil
	}
	tris := make([][3]vec.Vec3, 0, len(loop)-2)
	for i := 1; i+1 < len(loop); i++ {
		tris = append(tris, [3]vec.Vec3{loop[0], loop[i], loop[i+1]})
	}
	return tris
}

// TriangleIndices returns the index list of the fan Triangulate builds for a
// loop of n vertices, offset by base.
func TriangleIndices(n int, base uint32) []uint32 {
	if n < 3 {
		return nil
	}
	idx := make([]uint32, 0, 3*(n-2))
	for i := 1; i+1 < n; i++ {
		idx = append(idx, base, base+uint32(i), base+uint32(i+1))
	}
	return idx
}

// LineLoop returns the edges of the closed outline of loop.
func LineLoop(loop []vec.Vec3) [][2]vec.Vec3 {
	if len(loop) < 2 {
		return nil
	}
	lines := make([][2]vec.Vec3, len(loop))
	for i, v := range loop {
		lines[i] = [2]vec.Vec3{v, loop[(i+1)%len(loop)]}
	}
	return lines
}
