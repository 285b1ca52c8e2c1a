package arbor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is indexed triangle geometry in local space. Every three indices form
// one triangle, wound counter-clockwise when seen from the front.
type Mesh struct {
	Name      string
	Positions []mgl64.Vec3
	Indices   []uint16

	bounds      Bounds
	boundsDirty bool
}

// NewMesh creates a mesh from positions and triangle indices.
func NewMesh(name string, positions []mgl64.Vec3, indices []uint16) *Mesh {
	return &Mesh{
		Name:        name,
		Positions:   positions,
		Indices:     indices,
		boundsDirty: true,
	}
}

// NumTriangles returns len(Indices) / 3.
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// Triangle returns the three local-space corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c mgl64.Vec3) {
	return m.Positions[m.Indices[i*3]], m.Positions[m.Indices[i*3+1]], m.Positions[m.Indices[i*3+2]]
}

// InvalidateBounds marks the cached local bounds as needing recomputation.
// Call this after modifying Positions.
func (m *Mesh) InvalidateBounds() {
	m.boundsDirty = true
}

// Bounds returns the local-space axis-aligned bounding box, recomputing it
// if dirty. An empty mesh has zero bounds.
func (m *Mesh) Bounds() Bounds {
	if m.boundsDirty {
		m.bounds = computeBounds(m.Positions)
		m.boundsDirty = false
	}
	return m.bounds
}

// --- Bounds ---

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max mgl64.Vec3
}

// computeBounds scans the points and returns their bounding box.
func computeBounds(pts []mgl64.Vec3) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = math.Min(b.Min[i], p[i])
			b.Max[i] = math.Max(b.Max[i], p[i])
		}
	}
	return b
}

// Size returns Max - Min.
func (b Bounds) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains reports whether p lies inside or on the box.
func (b Bounds) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Intersects reports whether two boxes overlap.
func (b Bounds) Intersects(o Bounds) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] < o.Min[i] || o.Max[i] < b.Min[i] {
			return false
		}
	}
	return true
}

// Transform returns the bounding box of b's eight corners transformed by m.
func (b Bounds) Transform(m mgl64.Mat4) Bounds {
	var corners [8]mgl64.Vec3
	for i := range corners {
		c := b.Min
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		corners[i] = mgl64.TransformCoordinate(c, m)
	}
	return computeBounds(corners[:])
}

// WorldBounds returns the world-space bounding box of the entity's mesh. ok
// is false when the entity has no mesh or the mesh is empty.
func (e *Entity) WorldBounds() (b Bounds, ok bool) {
	if e.mesh == nil || len(e.mesh.Positions) == 0 {
		return Bounds{}, false
	}
	return e.mesh.Bounds().Transform(e.WorldTransform()), true
}
