// SPDX-License-Identifier: GPL-2.0-or-later

package geometry

import (
	"math"

	"chisel/math/vec"
	"chisel/vmf"
)

// dvec is a double precision vector. Plane math runs in double precision,
// the results are handed out as vec.Vec3.
type dvec [3]float64

func dv(v vec.Vec3) dvec {
	return dvec{float64(v.X), float64(v.Y), float64(v.Z)}
}

func (a dvec) vec3() vec.Vec3 {
	return vec.Vec3{X: float32(a[0]), Y: float32(a[1]), Z: float32(a[2])}
}

func (a dvec) add(b dvec) dvec {
	return dvec{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a dvec) sub(b dvec) dvec {
	return dvec{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (a dvec) scale(s float64) dvec {
	return dvec{a[0] * s, a[1] * s, a[2] * s}
}

func (a dvec) dot(b dvec) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a dvec) cross(b dvec) dvec {
	return dvec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (a dvec) length() float64 {
	return math.Sqrt(a.dot(a))
}

// StandardPlane is the plane {x : Normal·x = Dist}. The normal is not
// normalized and points out of the solid; the solid lies in Normal·x <= Dist.
type StandardPlane struct {
	n dvec
	d float64
}

// NewStandardPlane converts a side's three point plane to engine space (Y up)
// and derives normal and distance from it.
func NewStandardPlane(p vmf.Plane) StandardPlane {
	var pts [3]dvec
	for i, pt := range p.Points {
		pts[i] = dvec{pt.X, pt.Z, pt.Y}
	}
	return fromPoints(pts[0], pts[1], pts[2])
}

// FromPoints returns the plane through p, q and r with normal (q-p)×(r-p).
func FromPoints(p, q, r vec.Vec3) StandardPlane {
	return fromPoints(dv(p), dv(q), dv(r))
}

func fromPoints(p, q, r dvec) StandardPlane {
	n := q.sub(p).cross(r.sub(p))
	return StandardPlane{n: n, d: p.dot(n)}
}

func (p StandardPlane) Normal() vec.Vec3 {
	return p.n.vec3()
}

func (p StandardPlane) Dist() float64 {
	return p.d
}

// Degenerate reports whether the plane has no normal, e.g. because its three
// points are collinear.
func (p StandardPlane) Degenerate() bool {
	return p.n.length() == 0
}

// Distance returns the signed distance of v to the plane, positive outside.
func (p StandardPlane) Distance(v vec.Vec3) float64 {
	return p.distance(dv(v))
}

func (p StandardPlane) distance(v dvec) float64 {
	l := p.n.length()
	if l == 0 {
		return 0
	}
	return (p.n.dot(v) - p.d) / l
}

// IntersectionPoint returns the point shared by the three planes. It returns
// false if there is no single such point because two of the planes are
// parallel or all three meet in a line.
func IntersectionPoint(a, b, c StandardPlane) (vec.Vec3, bool) {
	p, ok := intersect(a, b, c)
	if !ok {
		return vec.Vec3{}, false
	}
	return p.vec3(), true
}

// det3 is the determinant of the matrix with rows r0, r1, r2.
func det3(r0, r1, r2 dvec) float64 {
	return r0.dot(r1.cross(r2))
}

// detEpsilon is relative to the product of the normal lengths.
const detEpsilon = 1e-12

// intersect solves the rows n_i·x = d_i with Cramer's rule.
func intersect(a, b, c StandardPlane) (dvec, bool) {
	det := det3(a.n, b.n, c.n)
	scale := a.n.length() * b.n.length() * c.n.length()
	if scale == 0 || math.Abs(det) <= detEpsilon*scale {
		return dvec{}, false
	}
	// replace column k of the row matrix by the distances
	col := func(k int) float64 {
		ra, rb, rc := a.n, b.n, c.n
		ra[k], rb[k], rc[k] = a.d, b.d, c.d
		return det3(ra, rb, rc)
	}
	return dvec{col(0) / det, col(1) / det, col(2) / det}, true
}
