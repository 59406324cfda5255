// SPDX-License-Identifier: GPL-2.0-or-later

package geometry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chisel/math/vec"
	"chisel/vmf"
)

const eps = 1e-4

func v3(x, y, z float32) vec.Vec3 {
	return vec.Vec3{X: x, Y: y, Z: z}
}

// unitCube returns the six planes of the cube [0,1]^3, normals outward.
func unitCube() []StandardPlane {
	return cube(1)
}

// cube returns the six planes of the cube [0,s]^3, normals outward.
func cube(s float32) []StandardPlane {
	return []StandardPlane{
		FromPoints(v3(0, 0, 0), v3(0, 0, s), v3(0, s, 0)), // x=0
		FromPoints(v3(s, 0, 0), v3(s, s, 0), v3(s, 0, s)), // x=s
		FromPoints(v3(0, 0, 0), v3(s, 0, 0), v3(0, 0, s)), // y=0
		FromPoints(v3(0, s, 0), v3(0, s, s), v3(s, s, 0)), // y=s
		FromPoints(v3(0, 0, 0), v3(0, s, 0), v3(s, 0, 0)), // z=0
		FromPoints(v3(0, 0, s), v3(s, 0, s), v3(0, s, s)), // z=s
	}
}

func cubeCorners() []vec.Vec3 {
	var c []vec.Vec3
	for _, x := range []float32{0, 1} {
		for _, y := range []float32{0, 1} {
			for _, z := range []float32{0, 1} {
				c = append(c, v3(x, y, z))
			}
		}
	}
	return c
}

func assertNear(t *testing.T, want, got vec.Vec3) {
	t.Helper()
	assert.True(t, near(want, got), "got %v, want %v", got, want)
}

func near(a, b vec.Vec3) bool {
	return dv(a).sub(dv(b)).length() <= eps
}

// assertLoopsValid checks that every vertex lies on its plane and inside
// all others and that the loop runs counter-clockwise seen from outside.
func assertLoopsValid(t *testing.T, planes []StandardPlane, loops [][]vec.Vec3) {
	t.Helper()
	for _, loop := range loops {
		var onPlane []int
		for i, p := range planes {
			on := true
			for _, v := range loop {
				d := p.Distance(v)
				assert.LessOrEqual(t, d, eps, "vertex %v outside plane %d", v, i)
				if d < -eps {
					on = false
				}
			}
			if on {
				onPlane = append(onPlane, i)
			}
		}
		require.NotEmpty(t, onPlane, "loop %v lies on no plane", loop)
		dl := make([]dvec, len(loop))
		for i, v := range loop {
			dl[i] = dv(v)
		}
		n := planes[onPlane[0]].n
		assert.Greater(t, newell(dl).dot(n), 0.0, "loop %v winds clockwise", loop)
	}
}

func TestPlaneEquation(t *testing.T) {
	p, q, r := v3(1, 2, 3), v3(-4, 0.5, 2), v3(7, -1, 9)
	pl := FromPoints(p, q, r)
	n := pl.n
	assert.InDelta(t, 0, n.dot(dv(q).sub(dv(p))), 1e-9)
	assert.InDelta(t, 0, n.dot(dv(r).sub(dv(p))), 1e-9)
	for _, x := range []vec.Vec3{p, q, r} {
		assert.InDelta(t, pl.Dist(), n.dot(dv(x)), 1e-9)
		assert.InDelta(t, 0, pl.Distance(x), 1e-9)
	}
	assert.False(t, pl.Degenerate())
}

func TestCollinearPlaneIsDegenerate(t *testing.T) {
	pl := FromPoints(v3(0, 0, 0), v3(1, 1, 1), v3(2, 2, 2))
	assert.True(t, pl.Degenerate())
}

func TestStandardPlaneFromDocument(t *testing.T) {
	// top of a Hammer box, document Z up
	pl := NewStandardPlane(vmf.Plane{Points: [3]vmf.Point{{-64, -64, 64}, {-64, 64, 64}, {64, 64, 64}}})
	n := pl.Normal().Normalize()
	assertNear(t, v3(0, 1, 0), n)
	assert.InDelta(t, 0, pl.Distance(v3(5, 64, -3)), 1e-9)
	assert.Less(t, pl.Distance(v3(0, 0, 0)), 0.0)
}

func TestIntersectionOrigin(t *testing.T) {
	x := FromPoints(v3(0, 0, 0), v3(0, 0, 1), v3(0, 1, 0))
	y := FromPoints(v3(0, 0, 0), v3(1, 0, 0), v3(0, 0, 1))
	z := FromPoints(v3(0, 0, 0), v3(0, 1, 0), v3(1, 0, 0))
	p, ok := IntersectionPoint(x, y, z)
	require.True(t, ok)
	assertNear(t, v3(0, 0, 0), p)
}

func TestIntersectionPoint(t *testing.T) {
	c := unitCube()
	p, ok := IntersectionPoint(c[1], c[3], c[5])
	require.True(t, ok)
	assertNear(t, v3(1, 1, 1), p)
}

func TestDegenerateTriple(t *testing.T) {
	a := FromPoints(v3(0, 0, 0), v3(0, 0, 1), v3(0, 1, 0))
	b := FromPoints(v3(1, 0, 0), v3(1, 0, 1), v3(1, 1, 0))
	c := FromPoints(v3(2, 0, 0), v3(2, 0, 1), v3(2, 1, 0))
	_, ok := IntersectionPoint(a, b, c)
	assert.False(t, ok)
}

func TestPlanesSharingALine(t *testing.T) {
	// all contain the z axis
	a := FromPoints(v3(0, 0, 0), v3(0, 0, 1), v3(1, 0, 0))
	b := FromPoints(v3(0, 0, 0), v3(0, 0, 1), v3(0, 1, 0))
	c := FromPoints(v3(0, 0, 0), v3(0, 0, 1), v3(1, 1, 0))
	_, ok := IntersectionPoint(a, b, c)
	assert.False(t, ok)
}

func TestCubeReconstruction(t *testing.T) {
	planes := unitCube()
	loops := PlanesToSides(planes)
	require.Len(t, loops, 6)
	seen := map[vec.Vec3]bool{}
	for _, loop := range loops {
		assert.Len(t, loop, 4)
		for _, v := range loop {
			seen[v] = true
		}
	}
	assert.ElementsMatch(t, cubeCorners(), keys(seen))
	assertLoopsValid(t, planes, loops)
}

func keys(m map[vec.Vec3]bool) []vec.Vec3 {
	var k []vec.Vec3
	for v := range m {
		k = append(k, v)
	}
	return k
}

func TestCubeScale(t *testing.T) {
	for _, s := range []float32{0.02, 0.004, 8192} {
		planes := cube(s)
		loops := PlanesToSides(planes)
		require.Len(t, loops, 6, "side %g", s)
		for _, loop := range loops {
			assert.Len(t, loop, 4, "side %g", s)
		}
		assertLoopsValid(t, planes, loops)
	}
}

func TestThinSlab(t *testing.T) {
	// 64 x 64 with a height of 0.01 in y
	planes := []StandardPlane{
		FromPoints(v3(0, 0, 0), v3(0, 0, 64), v3(0, 0.01, 0)),
		FromPoints(v3(64, 0, 0), v3(64, 0.01, 0), v3(64, 0, 64)),
		FromPoints(v3(0, 0, 0), v3(64, 0, 0), v3(0, 0, 64)),
		FromPoints(v3(0, 0.01, 0), v3(0, 0.01, 64), v3(64, 0.01, 0)),
		FromPoints(v3(0, 0, 0), v3(0, 0.01, 0), v3(64, 0, 0)),
		FromPoints(v3(0, 0, 64), v3(64, 0, 64), v3(0, 0.01, 64)),
	}
	loops := PlanesToSides(planes)
	require.Len(t, loops, 6)
	for _, loop := range loops {
		assert.Len(t, loop, 4)
	}
}

func TestCubeAnyPlaneOrder(t *testing.T) {
	c := unitCube()
	planes := []StandardPlane{c[5], c[2], c[0], c[4], c[1], c[3]}
	loops := PlanesToSides(planes)
	require.Len(t, loops, 6)
	for _, loop := range loops {
		assert.Len(t, loop, 4)
	}
	assertLoopsValid(t, planes, loops)
}

func TestInsufficientPlanes(t *testing.T) {
	c := unitCube()
	assert.Empty(t, PlanesToSides(nil))
	assert.Empty(t, PlanesToSides(c[:3]))
	// four planes of a cube do not enclose anything
	assert.Empty(t, PlanesToSides([]StandardPlane{c[0], c[1], c[2], c[3]}))
}

func TestUnusedPlaneIsIgnored(t *testing.T) {
	planes := append(unitCube(),
		FromPoints(v3(5, 0, 0), v3(5, 1, 0), v3(5, 0, 1)),  // x=5, outside
		FromPoints(v3(0, 0, 0), v3(1, 1, 1), v3(2, 2, 2)), // degenerate
	)
	loops := PlanesToSides(planes)
	require.Len(t, loops, 6)
	for _, loop := range loops {
		assert.Len(t, loop, 4)
	}
}

func TestChamferedCube(t *testing.T) {
	// cut off the corner at (1,1,1)
	planes := append(unitCube(), FromPoints(v3(2.5, 0, 0), v3(0, 2.5, 0), v3(0, 0, 2.5)))
	loops := PlanesToSides(planes)
	require.Len(t, loops, 7)
	count := map[int]int{}
	for _, loop := range loops {
		count[len(loop)]++
	}
	assert.Equal(t, map[int]int{3: 1, 4: 3, 5: 3}, count)
	assertLoopsValid(t, planes, loops)
}

func TestPyramid(t *testing.T) {
	// four sides meet in the apex (0,1,0)
	apex := v3(0, 1, 0)
	planes := []StandardPlane{
		FromPoints(v3(0, 0, 0), v3(1, 0, 0), v3(0, 0, 1)),
		FromPoints(v3(1, 0, -1), apex, v3(1, 0, 1)),
		FromPoints(v3(-1, 0, 1), apex, v3(-1, 0, -1)),
		FromPoints(v3(1, 0, 1), apex, v3(-1, 0, 1)),
		FromPoints(v3(-1, 0, -1), apex, v3(1, 0, -1)),
	}
	loops := PlanesToSides(planes)
	require.Len(t, loops, 5)
	assert.Len(t, loops[0], 4)
	for _, loop := range loops[1:] {
		assert.Len(t, loop, 3)
		found := false
		for _, v := range loop {
			found = found || near(v, apex)
		}
		assert.True(t, found, "side %v misses the apex", loop)
	}
	assertLoopsValid(t, planes, loops)
}

func TestTriangulate(t *testing.T) {
	quad := []vec.Vec3{v3(0, 0, 0), v3(1, 0, 0), v3(1, 1, 0), v3(0, 1, 0)}
	tris := Triangulate(quad)
	require.Len(t, tris, 2)
	assert.Equal(t, [3]vec.Vec3{quad[0], quad[1], quad[2]}, tris[0])
	assert.Equal(t, [3]vec.Vec3{quad[0], quad[2], quad[3]}, tris[1])
	assert.Nil(t, Triangulate(quad[:2]))

	assert.Equal(t, []uint32{10, 11, 12, 10, 12, 13, 10, 13, 14}, TriangleIndices(5, 10))
	assert.Nil(t, TriangleIndices(2, 0))
}

func TestLineLoop(t *testing.T) {
	tri := []vec.Vec3{v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0)}
	lines := LineLoop(tri)
	require.Len(t, lines, 3)
	assert.Equal(t, [2]vec.Vec3{tri[2], tri[0]}, lines[2])
}

func hammerBox(id int) *vmf.Solid {
	planes := []vmf.Plane{
		{Points: [3]vmf.Point{{-64, -64, 64}, {-64, 64, 64}, {64, 64, 64}}},
		{Points: [3]vmf.Point{{-64, 64, 0}, {-64, -64, 0}, {64, -64, 0}}},
		{Points: [3]vmf.Point{{-64, -64, 0}, {-64, 64, 0}, {-64, 64, 64}}},
		{Points: [3]vmf.Point{{64, 64, 0}, {64, -64, 0}, {64, -64, 64}}},
		{Points: [3]vmf.Point{{-64, 64, 0}, {64, 64, 0}, {64, 64, 64}}},
		{Points: [3]vmf.Point{{64, -64, 0}, {-64, -64, 0}, {-64, -64, 64}}},
	}
	s := &vmf.Solid{ID: id}
	for i, p := range planes {
		s.Sides = append(s.Sides, &vmf.Side{ID: i + 1, Plane: p, Material: "DEV/GRAY"})
	}
	return s
}

func TestReconstructHammerBox(t *testing.T) {
	b := Reconstruct(hammerBox(2))
	assert.Equal(t, 2, b.ID)
	require.Len(t, b.Faces, 6)
	assert.Equal(t, 24, b.VertexCount())
	mins, maxs := b.Bounds()
	assertNear(t, v3(-64, 0, -64), mins)
	assertNear(t, v3(64, 64, 64), maxs)
	top := b.Faces[0]
	assert.Equal(t, 1, top.SideID)
	assert.Equal(t, "DEV/GRAY", top.Material)
	assertNear(t, v3(0, 1, 0), top.Normal)
	for _, v := range top.Vertices {
		assert.InDelta(t, 64, v.Y, eps)
	}
}

func TestReconstructTooFewSides(t *testing.T) {
	s := hammerBox(3)
	s.Sides = s.Sides[:3]
	b := Reconstruct(s)
	assert.Equal(t, 3, b.ID)
	assert.Empty(t, b.Faces)
}

func TestReconstructTooManySides(t *testing.T) {
	o := DefaultOptions
	o.MaxPlanes = 5
	b := o.Reconstruct(hammerBox(4))
	assert.Empty(t, b.Faces)
}

func TestReconstructAll(t *testing.T) {
	var solids []*vmf.Solid
	for i := 1; i <= 20; i++ {
		solids = append(solids, hammerBox(i))
	}
	brushes, err := DefaultOptions.ReconstructAll(context.Background(), solids, 3)
	require.NoError(t, err)
	require.Len(t, brushes, 20)
	for i, b := range brushes {
		assert.Equal(t, i+1, b.ID)
		assert.Len(t, b.Faces, 6)
	}
}

func TestReconstructAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DefaultOptions.ReconstructAll(ctx, []*vmf.Solid{hammerBox(1)}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
