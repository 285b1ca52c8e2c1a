package arbor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestLightConstructors(t *testing.T) {
	d := NewDirectionalLight("sun", mgl64.Vec3{0, -1, 0})
	assert.True(t, d.Enabled)
	assert.Equal(t, ColorWhite, d.Color)
	assert.Equal(t, 1.0, d.Intensity)

	p := NewPointLight("lamp", mgl64.Vec3{1, 2, 3}, 10)
	assert.Equal(t, 10.0, p.Range)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, p.WorldPosition())

	s := NewSpotLight("spot", mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}, 5, 0.5)
	assert.Equal(t, 0.5, s.SpotAngle)
	assert.True(t, s.Enabled)
}

func TestLightFollowsTarget(t *testing.T) {
	p := newEntity("p")
	c := newEntity("c")
	link(p, c)
	p.SetLocalPosition(mgl64.Vec3{10, 0, 0})
	c.SetLocalPosition(mgl64.Vec3{0, 1, 0})

	l := NewPointLight("lamp", mgl64.Vec3{0, 0, 2}, 5)
	l.Target = c
	assertVec3(t, mgl64.Vec3{10, 1, 2}, l.WorldPosition())

	s := NewSpotLight("spot", mgl64.Vec3{}, mgl64.Vec3{0, -1, 0}, 5, 1)
	s.Target = c
	assertVec3(t, mgl64.Vec3{10, 1, 0}, s.WorldPosition())

	c.dispose()
	assert.Equal(t, mgl64.Vec3{0, 0, 2}, l.WorldPosition(), "destroyed targets fall back to the offset")
}

func TestSceneLightLists(t *testing.T) {
	sm := newTestScene(t)
	d1 := NewDirectionalLight("a", mgl64.Vec3{0, -1, 0})
	d2 := NewDirectionalLight("b", mgl64.Vec3{1, 0, 0})
	sm.AddDirectionalLight(d1)
	sm.AddDirectionalLight(d2)
	sm.AddPointLight(NewPointLight("p", mgl64.Vec3{}, 1))
	spot := NewSpotLight("s", mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}, 1, 1)
	sm.AddSpotLight(spot)

	assert.Equal(t, []*DirectionalLight{d1, d2}, sm.DirectionalLights())
	assert.True(t, sm.RemoveDirectionalLight(d1))
	assert.False(t, sm.RemoveDirectionalLight(d1))
	assert.Equal(t, []*DirectionalLight{d2}, sm.DirectionalLights())

	assert.True(t, sm.RemoveSpotLight(spot))
	assert.Empty(t, sm.SpotLights())
	assert.False(t, sm.RemovePointLight(NewPointLight("other", mgl64.Vec3{}, 1)))
	assert.Len(t, sm.PointLights(), 1)

	sm.ClearLights()
	assert.Empty(t, sm.DirectionalLights())
	assert.Empty(t, sm.PointLights())
}
