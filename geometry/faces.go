// SPDX-License-Identifier: GPL-2.0-or-later

package geometry

import (
	"math"

	"chisel/math/vec"
)

// Options tune the face reconstruction.
type Options struct {
	// Epsilon is the distance in map units a point may lie outside a plane
	// and still count as inside the solid.
	Epsilon float64
	// MaxPlanes is the largest solid that is reconstructed. The search is
	// O(n^4) in the number of planes, which is fine for hand made brushes
	// of a dozen sides but not for generated meshes.
	MaxPlanes int
}

var DefaultOptions = Options{
	Epsilon:   1e-3,
	MaxPlanes: 64,
}

// face is the vertex loop on planes[plane].
type face struct {
	plane int
	verts []dvec
}

// PlanesToSides reconstructs the faces of the convex solid bounded by planes
// using DefaultOptions.
func PlanesToSides(planes []StandardPlane) [][]vec.Vec3 {
	return DefaultOptions.PlanesToSides(planes)
}

// PlanesToSides returns one vertex loop per plane that bounds a face of the
// solid. Loops run counter-clockwise seen from outside the solid. Planes that
// do not touch the solid, degenerate planes and faces with fewer than three
// vertices produce no loop.
func (o Options) PlanesToSides(planes []StandardPlane) [][]vec.Vec3 {
	var loops [][]vec.Vec3
	for _, f := range o.faces(planes) {
		loop := make([]vec.Vec3, len(f.verts))
		for i, v := range f.verts {
			loop[i] = v.vec3()
		}
		loops = append(loops, loop)
	}
	return loops
}

func (o Options) faces(planes []StandardPlane) []face {
	if len(planes) < 4 || len(planes) > o.MaxPlanes {
		return nil
	}
	h := newHull(o, planes)
	var faces []face
	for i := range planes {
		if planes[i].Degenerate() {
			continue
		}
		verts := h.faceLoop(i)
		if len(verts) < 3 {
			continue
		}
		orient(verts, planes[i].n)
		faces = append(faces, face{plane: i, verts: verts})
	}
	return faces
}

// hull is one reconstruction in progress. corners holds every distinct
// corner of the solid, it sets the length scale for the edge tests.
type hull struct {
	o       Options
	planes  []StandardPlane
	corners []dvec
}

func newHull(o Options, planes []StandardPlane) *hull {
	h := &hull{o: o, planes: planes}
	n := len(planes)
	for i := 0; i < n; i++ {
		if planes[i].Degenerate() {
			continue
		}
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				p, ok := h.vertex(i, j, k)
				if ok && !h.known(p) {
					h.corners = append(h.corners, p)
				}
			}
		}
	}
	return h
}

func (h *hull) known(p dvec) bool {
	for _, c := range h.corners {
		if h.o.near(c, p) {
			return true
		}
	}
	return false
}

// inside reports whether p is within all half spaces.
func (h *hull) inside(p dvec, eps float64) bool {
	for _, pl := range h.planes {
		if pl.distance(p) > eps {
			return false
		}
	}
	return true
}

func (o Options) near(a, b dvec) bool {
	return a.sub(b).length() <= o.Epsilon
}

// vertex returns the corner shared by planes i, j and k if it is a corner of
// the solid.
func (h *hull) vertex(i, j, k int) (dvec, bool) {
	if h.planes[j].Degenerate() || h.planes[k].Degenerate() {
		return dvec{}, false
	}
	p, ok := intersect(h.planes[i], h.planes[j], h.planes[k])
	if !ok || !h.inside(p, h.o.Epsilon) {
		return dvec{}, false
	}
	return p, true
}

// step returns a distance short enough that moving it from p along any edge
// does not pass another corner. It is zero if p is the only corner.
func (h *hull) step(p dvec) float64 {
	s := math.Inf(1)
	for _, c := range h.corners {
		if d := c.sub(p).length(); d > h.o.Epsilon && d < s {
			s = d
		}
	}
	if math.IsInf(s, 1) {
		return 0
	}
	return s / 4
}

// leaves reports whether the line where planes i and m meet runs from p into
// the solid, that is whether it is an edge of the solid starting at p.
// Only needed where more than three planes meet in p.
func (h *hull) leaves(p dvec, i, m int) bool {
	d := h.planes[i].n.cross(h.planes[m].n)
	l := d.length()
	step := h.step(p)
	if l == 0 || step == 0 {
		return false
	}
	d = d.scale(step / l)
	eps := step * 1e-2
	return h.inside(p.add(d), eps) || h.inside(p.sub(d), eps)
}

// faceLoop walks around the face on plane i. It starts at the first corner
// found, from there it follows the edge shared with the current neighbor
// plane to the next corner, where the plane cutting that edge becomes the
// next neighbor. The walk ends when it is back at the start or finds no
// further corner, in which case the partial loop is returned.
func (h *hull) faceLoop(i int) []dvec {
	n := len(h.planes)
	a, b, seed, ok := h.seed(i)
	if !ok {
		return nil
	}
	seedA, seedB := a, b
	loop := []dvec{seed}
	cur := seed
	for step := 0; step < n; step++ {
		m, p, ok := h.next(i, a, b, cur)
		if !ok {
			break
		}
		a, b = b, m
		if (a == seedA && b == seedB) || h.o.near(p, seed) {
			break
		}
		loop = append(loop, p)
		cur = p
	}
	return loop
}

// seed finds the first corner of face i. The walk continues along the edge
// with plane b.
func (h *hull) seed(i int) (a, b int, p dvec, ok bool) {
	n := len(h.planes)
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		for k := j + 1; k < n; k++ {
			if k == i {
				continue
			}
			p, ok := h.vertex(i, j, k)
			if !ok {
				continue
			}
			switch {
			case h.leaves(p, i, k):
				return j, k, p, true
			case h.leaves(p, i, j):
				return k, j, p, true
			}
		}
	}
	return 0, 0, dvec{}, false
}

// next finds the corner at the other end of the edge between planes i and
// pivot, starting from cur. It returns the plane m cutting the edge there.
func (h *hull) next(i, prev, pivot int, cur dvec) (int, dvec, bool) {
	first := -1
	var firstP dvec
	for m := range h.planes {
		if m == i || m == pivot || m == prev {
			continue
		}
		p, ok := h.vertex(i, pivot, m)
		if !ok || h.o.near(p, cur) {
			continue
		}
		if h.leaves(p, i, m) {
			return m, p, true
		}
		if first < 0 {
			first, firstP = m, p
		}
	}
	return first, firstP, first >= 0
}

// orient reverses verts if they run clockwise around the outward normal n.
func orient(verts []dvec, n dvec) {
	if newell(verts).dot(n) >= 0 {
		return
	}
	for l, r := 0, len(verts)-1; l < r; l, r = l+1, r-1 {
		verts[l], verts[r] = verts[r], verts[l]
	}
}

// newell returns the (unnormalized) normal of the polygon verts.
func newell(verts []dvec) dvec {
	var n dvec
	for i, c := range verts {
		x := verts[(i+1)%len(verts)]
		n[0] += (c[1] - x[1]) * (c[2] + x[2])
		n[1] += (c[2] - x[2]) * (c[0] + x[0])
		n[2] += (c[0] - x[0]) * (c[1] + x[1])
	}
	return n
}
