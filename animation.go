package arbor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates one Vec3 transform channel of an Entity (position,
// rotation or scaling). Create one via TweenPosition, TweenRotation or
// TweenScaling and call Update(dt) each frame, typically from the entity's
// OnUpdate. Values are written through the entity's setters, so the entity is
// marked dirty. If the target entity is destroyed, the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [3]*gween.Tween
	target *Entity
	apply  func(e *Entity, v mgl64.Vec3)
	Done   bool
}

func newTweenGroup(e *Entity, from, to mgl64.Vec3, duration float32, fn ease.TweenFunc, apply func(*Entity, mgl64.Vec3)) *TweenGroup {
	g := &TweenGroup{target: e, apply: apply}
	for i := range g.tweens {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return g
}

// Update advances the tween by dt seconds and applies the new value. If the
// target has been destroyed, Done is set and nothing is written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target == nil || g.target.IsDisposed() {
		g.Done = true
		return
	}

	var v mgl64.Vec3
	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		v[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(g.target, v)
	g.Done = allDone
}

// Reset rewinds the group to its starting value without applying it.
func (g *TweenGroup) Reset() {
	for _, tw := range g.tweens {
		tw.Reset()
	}
	g.Done = false
}

// TweenPosition animates the entity's local position to `to` over duration
// seconds using the easing function.
func TweenPosition(e *Entity, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(e, e.position, to, duration, fn, (*Entity).SetLocalPosition)
}

// TweenRotation animates the entity's Euler rotation (radians).
func TweenRotation(e *Entity, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(e, e.rotation, to, duration, fn, (*Entity).SetLocalRotation)
}

// TweenScaling animates the entity's local scale.
func TweenScaling(e *Entity, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(e, e.scaling, to, duration, fn, (*Entity).SetLocalScaling)
}
