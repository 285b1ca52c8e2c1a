package arbor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Projection selects how a Camera maps view space to clip space.
type Projection uint8

const (
	ProjectionPerspective Projection = iota
	ProjectionOrthographic
)

const (
	minOrthoSize = 0.01
	maxOrthoSize = 100
)

// Camera is the viewpoint a scene is rendered through. It lives outside the
// entity tree; set it with SceneManager.SetMainCamera.
//
// The camera looks down its local -Z axis. View and projection matrices are
// cached and only rebuilt after a setter changes their inputs.
type Camera struct {
	position mgl64.Vec3
	rotation mgl64.Vec3 // Euler angles in radians, same order as entities

	projection Projection
	fov        float64 // vertical, radians
	orthoSize  float64 // world units per pixel for orthographic cameras
	near, far  float64
	width      float64
	height     float64

	followTarget *Entity
	followOffset mgl64.Vec3
	followLerp   float64

	view      mgl64.Mat4
	proj      mgl64.Mat4
	viewDirty bool
	projDirty bool
}

// NewPerspectiveCamera creates a perspective camera for a viewport of the
// given size in pixels, with a 90 degree field of view.
func NewPerspectiveCamera(width, height float64) *Camera {
	return newCamera(ProjectionPerspective, width, height)
}

// NewOrthographicCamera creates an orthographic camera for a viewport of the
// given size in pixels, with one world unit per pixel.
func NewOrthographicCamera(width, height float64) *Camera {
	return newCamera(ProjectionOrthographic, width, height)
}

func newCamera(p Projection, width, height float64) *Camera {
	return &Camera{
		projection: p,
		fov:        math.Pi / 2,
		orthoSize:  1,
		near:       0.1,
		far:        1000,
		width:      width,
		height:     height,
		view:       mgl64.Ident4(),
		proj:       mgl64.Ident4(),
		viewDirty:  true,
		projDirty:  true,
	}
}

// --- Placement ---

// Translate moves the camera by d expressed in its own orientation, so
// {0, 0, -1} always moves forward.
func (c *Camera) Translate(d mgl64.Vec3) {
	world := eulerRotation(c.rotation).Mul4x1(d.Vec4(0)).Vec3()
	c.position = c.position.Add(world)
	c.viewDirty = true
}

// Rotate adds r to the camera's Euler rotation.
func (c *Camera) Rotate(r mgl64.Vec3) {
	c.rotation = c.rotation.Add(r)
	c.viewDirty = true
}

// SetPosition places the camera in world space.
func (c *Camera) SetPosition(p mgl64.Vec3) {
	c.position = p
	c.viewDirty = true
}

// SetRotation sets the camera's Euler rotation in radians.
func (c *Camera) SetRotation(r mgl64.Vec3) {
	c.rotation = r
	c.viewDirty = true
}

func (c *Camera) Position() mgl64.Vec3 { return c.position }
func (c *Camera) Rotation() mgl64.Vec3 { return c.rotation }

// Forward returns the world-space direction the camera looks along.
func (c *Camera) Forward() mgl64.Vec3 {
	return eulerRotation(c.rotation).Mul4x1(mgl64.Vec4{0, 0, -1, 0}).Vec3()
}

// --- Projection parameters ---

// SetViewport updates the viewport size in pixels.
func (c *Camera) SetViewport(width, height float64) {
	c.width = width
	c.height = height
	c.projDirty = true
}

// Viewport returns the viewport size in pixels.
func (c *Camera) Viewport() (width, height float64) {
	return c.width, c.height
}

func (c *Camera) SetNearPlane(near float64) {
	c.near = near
	c.projDirty = true
}

func (c *Camera) SetFarPlane(far float64) {
	c.far = far
	c.projDirty = true
}

func (c *Camera) NearPlane() float64 { return c.near }
func (c *Camera) FarPlane() float64  { return c.far }

// SetFOV sets the vertical field of view in radians. Perspective only.
func (c *Camera) SetFOV(radians float64) {
	c.fov = radians
	c.projDirty = true
}

// SetFOVDegrees sets the vertical field of view in degrees.
func (c *Camera) SetFOVDegrees(degrees float64) {
	c.SetFOV(mgl64.DegToRad(degrees))
}

func (c *Camera) FOV() float64 { return c.fov }

// SetOrthoSize sets world units per pixel for orthographic cameras, clamped
// to [0.01, 100].
func (c *Camera) SetOrthoSize(size float64) {
	c.orthoSize = mgl64.Clamp(size, minOrthoSize, maxOrthoSize)
	c.projDirty = true
}

func (c *Camera) OrthoSize() float64 { return c.orthoSize }

func (c *Camera) Projection() Projection { return c.projection }

// --- Follow ---

// Follow makes the camera track target's world position plus offset. A lerp
// of 1 snaps each frame; lower values trail behind.
func (c *Camera) Follow(target *Entity, offset mgl64.Vec3, lerp float64) {
	c.followTarget = target
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// update advances follow tracking. Called from SceneManager.Update after
// entity transforms are resolved.
func (c *Camera) update() {
	t := c.followTarget
	if t == nil {
		return
	}
	if t.IsDisposed() {
		c.followTarget = nil
		return
	}
	goal := t.WorldPosition().Add(c.followOffset)
	next := c.position.Add(goal.Sub(c.position).Mul(c.followLerp))
	if !next.ApproxEqual(c.position) {
		c.position = next
		c.viewDirty = true
	}
}

// --- Matrices ---

// ViewMatrix returns the world-to-view matrix, rebuilding it if the camera
// moved since the last call.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	if c.viewDirty {
		p := c.position
		c.view = mgl64.Translate3D(p[0], p[1], p[2]).Mul4(eulerRotation(c.rotation)).Inv()
		c.viewDirty = false
	}
	return c.view
}

// ProjectionMatrix returns the view-to-clip matrix, rebuilding it if any
// projection parameter changed since the last call.
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	if c.projDirty {
		c.proj = c.buildProjection()
		c.projDirty = false
	}
	return c.proj
}

func (c *Camera) buildProjection() mgl64.Mat4 {
	if c.projection == ProjectionOrthographic {
		hw := c.width * c.orthoSize / 2
		hh := c.height * c.orthoSize / 2
		return mgl64.Ortho(-hw, hw, -hh, hh, c.near, c.far)
	}
	aspect := 1.0
	if c.height > 0 {
		aspect = c.width / c.height
	}
	return mgl64.Perspective(c.fov, aspect, c.near, c.far)
}

// ViewProjection returns ProjectionMatrix * ViewMatrix.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// WorldToScreen projects a world-space point to viewport pixels (origin top
// left) and returns its normalized depth. ok is false for points behind the
// camera.
func (c *Camera) WorldToScreen(p mgl64.Vec3) (screen mgl64.Vec2, depth float64, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip[3] <= 1e-9 {
		return mgl64.Vec2{}, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	screen = mgl64.Vec2{
		(ndc[0] + 1) / 2 * c.width,
		(1 - ndc[1]) / 2 * c.height,
	}
	return screen, ndc[2], true
}

// --- Scene manager integration ---

// SetMainCamera sets the camera renderers draw through. Pass nil to clear.
func (sm *SceneManager) SetMainCamera(c *Camera) {
	sm.camera = c
}

// MainCamera returns the main camera, or nil.
func (sm *SceneManager) MainCamera() *Camera {
	return sm.camera
}
