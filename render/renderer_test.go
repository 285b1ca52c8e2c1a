package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/arbor"
)

func newCubeScene(t *testing.T) (*arbor.SceneManager, *arbor.Entity) {
	t.Helper()
	sm := arbor.NewSceneManager(arbor.DefaultConfig())
	cam := arbor.NewPerspectiveCamera(640, 480)
	cam.SetPosition(mgl64.Vec3{0, 0, 5})
	sm.SetMainCamera(cam)

	cube := sm.Factory().CreateChildEntity("cube", sm.Root())
	cube.SetMesh(arbor.NewCubeMesh("cube", 1))
	sm.Update()
	sm.PostUpdate()
	return sm, cube
}

func TestCollectCullsBackfaces(t *testing.T) {
	sm, _ := newCubeScene(t)
	r := New()

	tris := r.collect(nil, sm, sm.MainCamera())
	// Only the +Z face points at a camera on the +Z axis.
	assert.Len(t, tris, 2)

	r.CullBackfaces = false
	tris = r.collect(nil, sm, sm.MainCamera())
	assert.Len(t, tris, 12)
}

func TestCollectProjectsToViewportCenter(t *testing.T) {
	sm, _ := newCubeScene(t)
	r := New()

	tris := r.collect(nil, sm, sm.MainCamera())
	require.NotEmpty(t, tris)
	var sum mgl64.Vec2
	for _, tri := range tris {
		for _, p := range tri.screen {
			assert.True(t, p[0] > 0 && p[0] < 640, "x out of viewport: %v", p)
			assert.True(t, p[1] > 0 && p[1] < 480, "y out of viewport: %v", p)
			sum = sum.Add(p)
		}
	}
	center := sum.Mul(1 / float64(len(tris)*3))
	assert.InDelta(t, 320, center[0], 40)
	assert.InDelta(t, 240, center[1], 40)
}

func TestCollectSkipsHiddenSubtrees(t *testing.T) {
	sm, cube := newCubeScene(t)
	r := New()

	sm.Root().Visible = false
	assert.Empty(t, r.collect(nil, sm, sm.MainCamera()))

	sm.Root().Visible = true
	cube.Visible = false
	assert.Empty(t, r.collect(nil, sm, sm.MainCamera()))
}

func TestCollectSkipsPointsBehindCamera(t *testing.T) {
	sm, cube := newCubeScene(t)
	r := New()
	r.CullBackfaces = false

	cube.SetLocalPosition(mgl64.Vec3{0, 0, 10})
	sm.Update()
	assert.Empty(t, r.collect(nil, sm, sm.MainCamera()))
}

func TestShade(t *testing.T) {
	red := arbor.NewMaterial("red", arbor.Color{R: 1, A: 1})
	ambient := arbor.Color{R: 0.2, G: 0.2, B: 0.2, A: 1}
	n := mgl64.Vec3{0, 0, 1}

	c := shade(n, red, nil, ambient)
	assert.InDelta(t, 0.2, c.R, 1e-9)
	assert.InDelta(t, 0, c.G, 1e-9)
	assert.InDelta(t, 1, c.A, 1e-9)

	sun := arbor.NewDirectionalLight("sun", mgl64.Vec3{0, 0, -1})
	sun.Intensity = 0.5
	c = shade(n, red, []*arbor.DirectionalLight{sun}, ambient)
	assert.InDelta(t, 0.7, c.R, 1e-9)

	// Light from behind contributes nothing.
	back := arbor.NewDirectionalLight("back", mgl64.Vec3{0, 0, 1})
	c = shade(n, red, []*arbor.DirectionalLight{back}, ambient)
	assert.InDelta(t, 0.2, c.R, 1e-9)

	back.Enabled = false
	sun.Intensity = 5
	c = shade(n, nil, []*arbor.DirectionalLight{sun, back}, ambient)
	assert.Equal(t, arbor.Color{R: 1, G: 1, B: 1, A: 1}, c)
}

func TestShadeEmissiveAndOpacity(t *testing.T) {
	m := arbor.NewMaterial("glow", arbor.Color{A: 1})
	m.Emissive = arbor.Color{G: 0.5}
	m.Opacity = 0.25

	c := shade(mgl64.Vec3{0, 1, 0}, m, nil, arbor.Color{})
	assert.InDelta(t, 0.5, c.G, 1e-9)
	assert.InDelta(t, 0.25, c.A, 1e-9)
}

func TestSortBackToFront(t *testing.T) {
	tris := []triangle{{depth: 0.1}, {depth: 0.9}, {depth: 0.5}, {depth: 0.9, color: arbor.ColorWhite}}
	sortBackToFront(tris)

	assert.Equal(t, 0.9, tris[0].depth)
	assert.Equal(t, arbor.Color{}, tris[0].color, "stable order for equal depths")
	assert.Equal(t, 0.9, tris[1].depth)
	assert.Equal(t, 0.5, tris[2].depth)
	assert.Equal(t, 0.1, tris[3].depth)
}
