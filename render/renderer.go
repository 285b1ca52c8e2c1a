// Package render draws an arbor scene with Ebitengine.
//
// The renderer is a CPU rasterizer front end: it projects every visible
// triangle through the scene's main camera, shades it flat with the scene's
// directional lights, sorts triangles back to front and submits them in one
// DrawTriangles32 call per frame.
package render

import (
	"image/color"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/phanxgames/arbor"
)

// triangle is one projected, shaded triangle ready for submission.
type triangle struct {
	screen [3]mgl64.Vec2
	depth  float64
	color  arbor.Color
}

// Renderer draws a SceneManager's registered entities onto an ebiten image.
type Renderer struct {
	// ClearColor fills the target before drawing. A zero alpha leaves the
	// target untouched.
	ClearColor arbor.Color
	// Ambient is added to every surface before directional lighting.
	Ambient arbor.Color
	// CullBackfaces skips triangles facing away from the camera.
	CullBackfaces bool
	// ShowStats overlays FPS, TPS and registry counts in the top-left corner.
	ShowStats bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	log             *zap.Logger
	screenshotQueue []string

	tris  []triangle
	verts []ebiten.Vertex
	inds  []uint32
	white *ebiten.Image
}

// New returns a renderer with a dim grey ambient term and backface culling.
func New() *Renderer {
	return &Renderer{
		Ambient:       arbor.Color{R: 0.15, G: 0.15, B: 0.15, A: 1},
		CullBackfaces: true,
		ScreenshotDir: "screenshots",
		log:           zap.NewNop(),
	}
}

// SetLogger sets the logger used for screenshot errors. Nil disables logging.
func (r *Renderer) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	r.log = log
}

// Draw renders sm through its main camera, then the stats overlay and any
// queued screenshots. No geometry is drawn when the scene has no main camera.
func (r *Renderer) Draw(screen *ebiten.Image, sm *arbor.SceneManager) {
	if p := sm.Profiler(); p != nil {
		defer p.Begin("Renderer.Draw", arbor.BlockRenderer)()
	}
	if r.ClearColor.A > 0 {
		screen.Fill(toRGBA(r.ClearColor))
	}
	r.tris = r.tris[:0]
	if cam := sm.MainCamera(); cam != nil {
		r.tris = r.collect(r.tris, sm, cam)
		sortBackToFront(r.tris)
		r.submit(screen)
	}
	if r.ShowStats {
		r.drawStats(screen, sm)
	}
	r.flushScreenshots(screen, sm.Frame())
}

// collect appends the projected triangles of every drawable entity to dst.
func (r *Renderer) collect(dst []triangle, sm *arbor.SceneManager, cam *arbor.Camera) []triangle {
	lights := sm.DirectionalLights()
	for _, e := range sm.Entities() {
		mesh := e.Mesh()
		if mesh == nil || !effectivelyVisible(e) {
			continue
		}
		mat := e.Material()
		world := e.WorldTransform()
		for i := 0; i < mesh.NumTriangles(); i++ {
			a, b, c := mesh.Triangle(i)
			a = mgl64.TransformCoordinate(a, world)
			b = mgl64.TransformCoordinate(b, world)
			c = mgl64.TransformCoordinate(c, world)

			n := b.Sub(a).Cross(c.Sub(a))
			if n.Len() == 0 {
				continue
			}
			n = n.Normalize()
			if r.CullBackfaces && !facesCamera(cam, n, a) {
				continue
			}

			var t triangle
			ok := true
			for k, p := range [3]mgl64.Vec3{a, b, c} {
				s, d, visible := cam.WorldToScreen(p)
				if !visible {
					ok = false
					break
				}
				t.screen[k] = s
				t.depth += d / 3
			}
			if !ok {
				continue
			}
			t.color = shade(n, mat, lights, r.Ambient)
			dst = append(dst, t)
		}
	}
	return dst
}

// effectivelyVisible reports whether e and all of its ancestors are visible.
func effectivelyVisible(e *arbor.Entity) bool {
	for p := e; p != nil; p = p.Parent() {
		if !p.Visible {
			return false
		}
	}
	return true
}

// facesCamera reports whether a triangle with normal n through point p is
// front facing.
func facesCamera(cam *arbor.Camera, n, p mgl64.Vec3) bool {
	if cam.Projection() == arbor.ProjectionOrthographic {
		return n.Dot(cam.Forward()) < 0
	}
	return n.Dot(cam.Position().Sub(p)) > 0
}

// shade computes a flat Lambert color for a surface with normal n.
func shade(n mgl64.Vec3, mat *arbor.Material, lights []*arbor.DirectionalLight, ambient arbor.Color) arbor.Color {
	diffuse := arbor.ColorWhite
	var emissive arbor.Color
	opacity := 1.0
	if mat != nil {
		diffuse = mat.Diffuse
		emissive = mat.Emissive
		opacity = mat.Opacity
	}

	light := ambient
	for _, l := range lights {
		if !l.Enabled || l.Direction.Len() == 0 {
			continue
		}
		k := math.Max(0, n.Dot(l.Direction.Normalize().Mul(-1))) * l.Intensity
		light.R += l.Color.R * k
		light.G += l.Color.G * k
		light.B += l.Color.B * k
	}

	return arbor.Color{
		R: clamp01(emissive.R + diffuse.R*light.R),
		G: clamp01(emissive.G + diffuse.G*light.G),
		B: clamp01(emissive.B + diffuse.B*light.B),
		A: clamp01(diffuse.A * opacity),
	}
}

// sortBackToFront orders triangles by decreasing depth (painter's order).
// Equal depths keep their collection order.
func sortBackToFront(tris []triangle) {
	slices.SortStableFunc(tris, func(a, b triangle) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		default:
			return 0
		}
	})
}

// submit converts triangles to vertices and draws them in one call.
func (r *Renderer) submit(target *ebiten.Image) {
	if len(r.tris) == 0 {
		return
	}
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for _, t := range r.tris {
		base := uint32(len(r.verts))
		cr := float32(t.color.R * t.color.A)
		cg := float32(t.color.G * t.color.A)
		cb := float32(t.color.B * t.color.A)
		ca := float32(t.color.A)
		for _, p := range t.screen {
			r.verts = append(r.verts, ebiten.Vertex{
				DstX: float32(p[0]), DstY: float32(p[1]),
				SrcX: 0.5, SrcY: 0.5,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			})
		}
		r.inds = append(r.inds, base, base+1, base+2)
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(r.verts, r.inds, r.whitePixel(), &triOp)
}

// whitePixel returns a lazily created 1x1 white image.
func (r *Renderer) whitePixel() *ebiten.Image {
	if r.white == nil {
		r.white = ebiten.NewImage(1, 1)
		r.white.Fill(color.White)
	}
	return r.white
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func toRGBA(c arbor.Color) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}
