package arbor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// eulerRotation builds a rotation matrix from Euler angles in radians.
// Roll (Z) is applied first, then pitch (X), then yaw (Y).
func eulerRotation(r mgl64.Vec3) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(r[1]).
		Mul4(mgl64.HomogRotate3DX(r[0])).
		Mul4(mgl64.HomogRotate3DZ(r[2]))
}

// computeLocalTransform returns the entity's local matrix.
//
// Composition order (column vectors, rightmost first):
//
//	Translate * Rotate * Scale
func computeLocalTransform(e *Entity) mgl64.Mat4 {
	s := e.scaling
	p := e.position
	return mgl64.Translate3D(p[0], p[1], p[2]).
		Mul4(eulerRotation(e.rotation)).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

// isTransformDirty reports whether e's cached world transform is stale: its
// own flag is set, or any ancestor is dirty or was recomputed after e last
// read it. The walk never touches descendants.
//
// A second pointer climbs two parents per step; meeting the walk means the
// parent links form a cycle, which Factory never creates.
func (e *Entity) isTransformDirty() bool {
	hare := e
	for n := e; n != nil; n = n.parent {
		if n.transformDirty || n.parent != n.resolvedParent {
			return true
		}
		if n.parent != nil && n.parent.worldVersion != n.parentVersion {
			return true
		}
		if hare == nil || hare.parent == nil {
			hare = nil
			continue
		}
		hare = hare.parent.parent
		if hare != nil && hare == n.parent {
			panic(fmt.Sprintf("arbor: parent cycle above %q (ID %d)", e.Name, e.ID))
		}
	}
	return false
}

// updateWorldTransform recomputes e's world matrix from its parent's current
// world matrix (resolving the parent first if needed) and clears e's flag.
func (e *Entity) updateWorldTransform() {
	if globalProfiler != nil {
		defer globalProfiler.Begin("Entity.UpdateWorldTransform", BlockCore)()
	}
	local := computeLocalTransform(e)
	if p := e.parent; p != nil {
		e.worldTransform = p.WorldTransform().Mul4(local)
		e.parentVersion = p.worldVersion
	} else {
		e.worldTransform = local
		e.parentVersion = 0
	}
	e.resolvedParent = e.parent
	e.worldVersion++
	e.transformDirty = false
}

// WorldTransform returns the entity's world matrix, recomputing it first if
// the entity or any ancestor changed since the last call.
func (e *Entity) WorldTransform() mgl64.Mat4 {
	if e.isTransformDirty() {
		e.updateWorldTransform()
	}
	return e.worldTransform
}

// WorldPosition returns the translation component of the world matrix.
func (e *Entity) WorldPosition() mgl64.Vec3 {
	return e.WorldTransform().Col(3).Vec3()
}

// LocalToWorld converts a point in this entity's local space to world space.
func (e *Entity) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, e.WorldTransform())
}

// WorldToLocal converts a world-space point to this entity's local space.
// Returns p unchanged if the world matrix is singular.
func (e *Entity) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	w := e.WorldTransform()
	if d := w.Det(); d > -1e-12 && d < 1e-12 {
		return p
	}
	return mgl64.TransformCoordinate(p, w.Inv())
}

// --- Transform property setters ---

// SetLocalPosition sets the entity's position relative to its parent and
// marks it dirty.
func (e *Entity) SetLocalPosition(v mgl64.Vec3) {
	e.position = v
	e.transformDirty = true
}

// SetLocalRotation sets the entity's Euler rotation (radians) and marks it dirty.
func (e *Entity) SetLocalRotation(v mgl64.Vec3) {
	e.rotation = v
	e.transformDirty = true
}

// SetLocalScaling sets the entity's scale and marks it dirty.
func (e *Entity) SetLocalScaling(v mgl64.Vec3) {
	e.scaling = v
	e.transformDirty = true
}

// LocalPosition returns the position relative to the parent.
func (e *Entity) LocalPosition() mgl64.Vec3 { return e.position }

// LocalRotation returns the Euler rotation in radians.
func (e *Entity) LocalRotation() mgl64.Vec3 { return e.rotation }

// LocalScaling returns the local scale.
func (e *Entity) LocalScaling() mgl64.Vec3 { return e.scaling }

// MarkDirty forces recomputation of the world transform on next access.
func (e *Entity) MarkDirty() {
	e.transformDirty = true
}
