package arbor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faceNormal returns the unnormalized normal of triangle i.
func faceNormal(m *Mesh, i int) mgl64.Vec3 {
	a, b, c := m.Triangle(i)
	return b.Sub(a).Cross(c.Sub(a))
}

func TestCubeMesh(t *testing.T) {
	m := NewCubeMesh("cube", 2)
	require.Len(t, m.Positions, 24)
	require.Len(t, m.Indices, 36)
	assert.Equal(t, 12, m.NumTriangles())

	b := m.Bounds()
	assert.Equal(t, mgl64.Vec3{-1, -1, -1}, b.Min)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, b.Max)

	// Every face points away from the centre.
	for i := 0; i < m.NumTriangles(); i++ {
		a, _, _ := m.Triangle(i)
		assert.Greater(t, faceNormal(m, i).Dot(a), 0.0, "triangle %d", i)
	}
}

func TestPlaneMeshFacesUp(t *testing.T) {
	m := NewPlaneMesh("floor", 4, 2)
	assert.Equal(t, 2, m.NumTriangles())
	assert.Equal(t, mgl64.Vec3{4, 0, 2}, m.Bounds().Size())
	for i := 0; i < 2; i++ {
		assert.Greater(t, faceNormal(m, i)[1], 0.0)
	}
}

func TestPolygonMesh(t *testing.T) {
	assert.Nil(t, NewPolygonMesh("bad", []mgl64.Vec2{{0, 0}, {1, 0}}))

	m := NewPolygonMesh("quad", []mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	require.NotNil(t, m)
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3}, m.Indices)
	assert.Equal(t, mgl64.Vec3{1, 1, 0}, m.Positions[2])
}

func TestMeshBoundsCacheInvalidation(t *testing.T) {
	m := NewMesh("tri", []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []uint16{0, 1, 2})
	assert.Equal(t, mgl64.Vec3{1, 1, 0}, m.Bounds().Max)

	m.Positions[1] = mgl64.Vec3{5, 0, 0}
	assert.Equal(t, mgl64.Vec3{1, 1, 0}, m.Bounds().Max, "cached until invalidated")
	m.InvalidateBounds()
	assert.Equal(t, mgl64.Vec3{5, 1, 0}, m.Bounds().Max)

	empty := NewMesh("empty", nil, nil)
	assert.Equal(t, Bounds{}, empty.Bounds())
}

func TestBoundsQueries(t *testing.T) {
	b := Bounds{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 4, 6}}
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, b.Center())
	assert.True(t, b.Contains(mgl64.Vec3{2, 4, 6}))
	assert.False(t, b.Contains(mgl64.Vec3{2, 4.1, 6}))

	assert.True(t, b.Intersects(Bounds{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{3, 3, 3}}))
	assert.True(t, b.Intersects(Bounds{Min: mgl64.Vec3{2, 4, 6}, Max: mgl64.Vec3{3, 5, 7}}), "touching counts")
	assert.False(t, b.Intersects(Bounds{Min: mgl64.Vec3{3, 0, 0}, Max: mgl64.Vec3{4, 1, 1}}))
}

func TestBoundsTransform(t *testing.T) {
	b := Bounds{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	moved := b.Transform(mgl64.Translate3D(5, 0, 0))
	assert.Equal(t, mgl64.Vec3{4, -1, -1}, moved.Min)

	// A 45 degree roll widens the box to the corner diagonal.
	rolled := b.Transform(mgl64.HomogRotate3DZ(math.Pi / 4))
	assertVec3(t, mgl64.Vec3{math.Sqrt2, math.Sqrt2, 1}, rolled.Max)
}

func TestEntityWorldBounds(t *testing.T) {
	p := newEntity("p")
	c := newEntity("c")
	link(p, c)
	_, ok := c.WorldBounds()
	assert.False(t, ok, "no mesh")

	c.SetMesh(NewCubeMesh("cube", 2))
	c.SetLocalScaling(mgl64.Vec3{2, 1, 1})
	p.SetLocalPosition(mgl64.Vec3{0, 10, 0})

	b, ok := c.WorldBounds()
	require.True(t, ok)
	assertVec3(t, mgl64.Vec3{-2, 9, -1}, b.Min)
	assertVec3(t, mgl64.Vec3{2, 11, 1}, b.Max)
}
