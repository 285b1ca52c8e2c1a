package arbor

import "github.com/go-gl/mathgl/mgl64"

// DirectionalLight lights the whole scene from one direction, like the sun.
type DirectionalLight struct {
	Name string
	// Direction the light travels in world space. Need not be normalized.
	Direction mgl64.Vec3
	Color     Color
	// Intensity scales Color. Typical range [0, 1].
	Intensity float64
	// Enabled determines whether renderers use this light.
	Enabled bool
}

// NewDirectionalLight returns an enabled white light shining along dir.
func NewDirectionalLight(name string, dir mgl64.Vec3) *DirectionalLight {
	return &DirectionalLight{Name: name, Direction: dir, Color: ColorWhite, Intensity: 1, Enabled: true}
}

// PointLight radiates from a position in all directions up to Range.
type PointLight struct {
	Name      string
	Position  mgl64.Vec3
	Color     Color
	Intensity float64
	Range     float64
	Enabled   bool
	// Target, if set, makes the light sit at this entity's world position
	// (plus Position as an offset) when resolved.
	Target *Entity
}

// NewPointLight returns an enabled white light at pos.
func NewPointLight(name string, pos mgl64.Vec3, rng float64) *PointLight {
	return &PointLight{Name: name, Position: pos, Color: ColorWhite, Intensity: 1, Range: rng, Enabled: true}
}

// WorldPosition returns the light's position, following Target when set.
func (l *PointLight) WorldPosition() mgl64.Vec3 {
	return targetPosition(l.Target, l.Position)
}

// SpotLight is a cone of light from Position along Direction.
type SpotLight struct {
	Name      string
	Position  mgl64.Vec3
	Direction mgl64.Vec3
	Color     Color
	Intensity float64
	Range     float64
	// SpotAngle is the full cone angle in radians.
	SpotAngle float64
	Enabled   bool
	Target    *Entity
}

// NewSpotLight returns an enabled white spot light.
func NewSpotLight(name string, pos, dir mgl64.Vec3, rng, angle float64) *SpotLight {
	return &SpotLight{
		Name: name, Position: pos, Direction: dir,
		Color: ColorWhite, Intensity: 1, Range: rng, SpotAngle: angle, Enabled: true,
	}
}

// WorldPosition returns the light's position, following Target when set.
func (l *SpotLight) WorldPosition() mgl64.Vec3 {
	return targetPosition(l.Target, l.Position)
}

func targetPosition(target *Entity, offset mgl64.Vec3) mgl64.Vec3 {
	if target == nil || target.IsDisposed() {
		return offset
	}
	return target.LocalToWorld(offset)
}

// --- Scene manager integration ---

func (sm *SceneManager) AddDirectionalLight(l *DirectionalLight) {
	sm.dirLights = append(sm.dirLights, l)
}

// RemoveDirectionalLight reports whether l was present.
func (sm *SceneManager) RemoveDirectionalLight(l *DirectionalLight) bool {
	return removeLight(&sm.dirLights, l)
}

// DirectionalLights returns the directional lights. The returned slice MUST
// NOT be mutated.
func (sm *SceneManager) DirectionalLights() []*DirectionalLight {
	return sm.dirLights
}

func (sm *SceneManager) AddPointLight(l *PointLight) {
	sm.pointLights = append(sm.pointLights, l)
}

func (sm *SceneManager) RemovePointLight(l *PointLight) bool {
	return removeLight(&sm.pointLights, l)
}

func (sm *SceneManager) PointLights() []*PointLight {
	return sm.pointLights
}

func (sm *SceneManager) AddSpotLight(l *SpotLight) {
	sm.spotLights = append(sm.spotLights, l)
}

func (sm *SceneManager) RemoveSpotLight(l *SpotLight) bool {
	return removeLight(&sm.spotLights, l)
}

func (sm *SceneManager) SpotLights() []*SpotLight {
	return sm.spotLights
}

// ClearLights removes every light of every kind.
func (sm *SceneManager) ClearLights() {
	sm.dirLights = nil
	sm.pointLights = nil
	sm.spotLights = nil
}

func removeLight[T any](list *[]*T, l *T) bool {
	s := *list
	for i, c := range s {
		if c == l {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			*list = s[:len(s)-1]
			return true
		}
	}
	return false
}
