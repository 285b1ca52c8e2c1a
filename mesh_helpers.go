package arbor

import "github.com/go-gl/mathgl/mgl64"

// NewCubeMesh creates an axis-aligned cube centred on the origin with the
// given edge length. Each face has its own four corners so faces can be
// shaded independently.
func NewCubeMesh(name string, size float64) *Mesh {
	h := size / 2
	// Corner order per face is counter-clockwise seen from outside.
	faces := [6][4]mgl64.Vec3{
		{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}},     // +Z
		{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}, // -Z
		{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}},     // +X
		{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}, // -X
		{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}},     // +Y
		{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}, // -Y
	}
	positions := make([]mgl64.Vec3, 0, 24)
	indices := make([]uint16, 0, 36)
	for _, f := range faces {
		base := uint16(len(positions))
		positions = append(positions, f[:]...)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewMesh(name, positions, indices)
}

// NewPlaneMesh creates a width x depth quad in the XZ plane facing +Y,
// centred on the origin.
func NewPlaneMesh(name string, width, depth float64) *Mesh {
	hw, hd := width/2, depth/2
	positions := []mgl64.Vec3{
		{-hw, 0, hd}, {hw, 0, hd}, {hw, 0, -hd}, {-hw, 0, -hd},
	}
	return NewMesh(name, positions, []uint16{0, 1, 2, 0, 2, 3})
}

// NewPolygonMesh creates a flat convex polygon in the XY plane using fan
// triangulation. Returns nil for fewer than three points.
func NewPolygonMesh(name string, points []mgl64.Vec2) *Mesh {
	positions, indices := buildPolygonFan(points)
	if positions == nil {
		return nil
	}
	return NewMesh(name, positions, indices)
}

// buildPolygonFan generates positions and indices for a fan-triangulated
// polygon. N positions, 3*(N-2) indices.
func buildPolygonFan(points []mgl64.Vec2) ([]mgl64.Vec3, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}
	positions := make([]mgl64.Vec3, n)
	for i, p := range points {
		positions[i] = p.Vec3(0)
	}

	// Fan triangulation: vertex 0 is the hub.
	indices := make([]uint16, (n-2)*3)
	for i := 0; i < n-2; i++ {
		indices[i*3+0] = 0
		indices[i*3+1] = uint16(i + 1)
		indices[i*3+2] = uint16(i + 2)
	}
	return positions, indices
}
