package arbor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// --- ID counter ---

// entityIDCounter is a plain counter; arbor is single-threaded.
var entityIDCounter uint32

func nextEntityID() uint32 {
	entityIDCounter++
	return entityIDCounter
}

// --- Entity ---

// Entity is a node in the scene graph. It owns its children, keeps a
// back-reference to its parent and caches its world transform, which is only
// recomputed when the entity or one of its ancestors changed.
//
// Structural edits (parent/child edges) and scene membership go through a
// [Factory]; the methods on Entity itself are low-level primitives.
type Entity struct {
	// Identity
	ID   uint32
	Name string

	// Visible controls whether renderers draw this entity. It does not affect
	// transform resolution or scene membership.
	Visible bool

	// OnUpdate runs once per frame from SceneManager.Update, before the world
	// transform is refreshed. Structural changes issued here are deferred to
	// PostUpdate.
	OnUpdate func(e *Entity, dt float64)

	// Metadata
	UserData any

	// Hierarchy. parent is a non-owning back-reference; children are owned.
	parent   *Entity
	children []*Entity

	// Transform (local)
	position mgl64.Vec3
	rotation mgl64.Vec3 // Euler angles in radians: X pitch, Y yaw, Z roll
	scaling  mgl64.Vec3

	// Computed
	worldTransform mgl64.Mat4
	transformDirty bool
	worldVersion   uint64  // bumped on every recomputation
	parentVersion  uint64  // parent's worldVersion at our last recomputation
	resolvedParent *Entity // parent used for our last recomputation

	// Rendering payload. Both are references; callers manage their lifetime.
	mesh     *Mesh
	material *Material

	// Membership. inScene is the latest requested state; registered mirrors
	// the registry and is only written by SceneManager.PostUpdate.
	inScene    bool
	registered bool
	disposed   bool
}

// newEntity creates a parentless, unregistered entity with identity transform.
func newEntity(name string) *Entity {
	return &Entity{
		ID:             nextEntityID(),
		Name:           name,
		Visible:        true,
		scaling:        mgl64.Vec3{1, 1, 1},
		worldTransform: mgl64.Ident4(),
		transformDirty: true,
	}
}

// --- Rendering payload ---

// SetMesh attaches a mesh to this entity. The caller creates and releases
// meshes; several entities may share one. Destroying the entity only drops
// its reference.
func (e *Entity) SetMesh(m *Mesh) {
	e.mesh = m
}

// Mesh returns the attached mesh, or nil.
func (e *Entity) Mesh() *Mesh {
	return e.mesh
}

// SetMaterial sets the material used to draw this entity. The material's
// lifetime is managed by its registry, not by the entity.
func (e *Entity) SetMaterial(m *Material) {
	e.material = m
}

// Material returns the material reference, or nil.
func (e *Entity) Material() *Material {
	return e.material
}

// --- Tree primitives ---

// AddChild appends child to this entity's children. It reports false, and
// does nothing, if child is nil or already present. In debug mode a
// duplicate add panics instead, since it means the caller lost track of the
// hierarchy.
//
// AddChild does not touch child's parent reference or dirty state; use
// Factory.AddChildToEntity for a complete reparent.
func (e *Entity) AddChild(child *Entity) bool {
	if child == nil {
		return false
	}
	if globalDebug {
		debugCheckDisposed(e, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if e.indexOf(child) >= 0 {
		if globalDebug {
			debugDuplicateChild(e, child)
		}
		return false
	}
	e.children = append(e.children, child)
	return true
}

// RemoveChild removes child from this entity's children. It reports false if
// child is not present.
//
// Like AddChild, the parent reference is left to the caller.
func (e *Entity) RemoveChild(child *Entity) bool {
	i := e.indexOf(child)
	if i < 0 {
		return false
	}
	copy(e.children[i:], e.children[i+1:])
	e.children[len(e.children)-1] = nil
	e.children = e.children[:len(e.children)-1]
	return true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Entity) Children() []*Entity {
	return e.children
}

// NumChildren returns the number of children.
func (e *Entity) NumChildren() int {
	return len(e.children)
}

// ChildAt returns the child at the given index.
func (e *Entity) ChildAt(index int) *Entity {
	return e.children[index]
}

// Parent returns the parent entity, or nil for a root.
func (e *Entity) Parent() *Entity {
	return e.parent
}

// Walk calls fn for e and every descendant, depth first, parents before
// children. Returning false from fn skips that entity's subtree.
func (e *Entity) Walk(fn func(*Entity) bool) {
	if !fn(e) {
		return
	}
	for _, child := range e.children {
		child.Walk(fn)
	}
}

// --- Scene membership ---

// SetInScene sets the membership flag on this entity and every descendant.
func (e *Entity) SetInScene(inScene bool) {
	e.inScene = inScene
	for _, child := range e.children {
		child.SetInScene(inScene)
	}
}

// InScene reports whether the entity is tracked by a scene manager, counting
// operations that are still queued.
func (e *Entity) InScene() bool {
	return e.inScene
}

// IsDisposed returns true if this entity has been destroyed.
func (e *Entity) IsDisposed() bool {
	return e.disposed
}

// dispose marks e and its subtree as destroyed and drops owned payload.
// Registry flags are left alone so queued removals still reconcile.
func (e *Entity) dispose() {
	e.disposed = true
	for _, child := range e.children {
		child.parent = nil
		child.dispose()
	}
	e.children = nil
	e.parent = nil
	e.resolvedParent = nil
	e.mesh = nil
	e.material = nil
	e.OnUpdate = nil
	e.UserData = nil
}

// --- Frame update ---

// update is the per-frame step driven by SceneManager.Update.
func (e *Entity) update(dt float64) {
	if e.OnUpdate != nil {
		e.OnUpdate(e, dt)
	}
	if e.disposed {
		return
	}
	if e.isTransformDirty() {
		e.updateWorldTransform()
	}
}

// --- Helpers ---

func (e *Entity) indexOf(child *Entity) int {
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}

// isAncestor reports whether candidate is e or an ancestor of e.
func isAncestor(candidate, e *Entity) bool {
	for p := e; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}
