package arbor

import "go.uber.org/zap"

// Factory creates entities and performs structural edits that keep the
// hierarchy and scene membership consistent. Obtain one from
// SceneManager.Factory.
type Factory struct {
	scene *SceneManager
}

// Scene returns the scene manager the factory is bound to.
func (f *Factory) Scene() *SceneManager {
	return f.scene
}

// CreateEntity creates a parentless entity and queues it for insertion into
// the registry. It is marked in scene immediately and becomes visible in
// Entities after the next PostUpdate.
func (f *Factory) CreateEntity(name string) *Entity {
	e := newEntity(name)
	f.scene.AddEntity(e)
	return e
}

// CreateChildEntity creates an entity, queues it for insertion and attaches it
// under parent. A nil parent behaves like CreateEntity.
func (f *Factory) CreateChildEntity(name string, parent *Entity) *Entity {
	e := f.CreateEntity(name)
	if parent != nil {
		f.AddChildToEntity(parent, e)
	}
	return e
}

// AddChildToEntity makes child a child of parent. It reports false, leaving
// everything unchanged, if either is nil, if child is parent or one of its
// ancestors, or if child is already a child of parent.
//
// A child with a different parent is detached from it first. The child is
// marked dirty, and if parent is in scene and child is not, child's subtree is
// queued for insertion.
func (f *Factory) AddChildToEntity(parent, child *Entity) bool {
	if parent == nil || child == nil {
		return false
	}
	if isAncestor(child, parent) {
		if f.scene.debug {
			f.scene.log.Warn("rejected cyclic reparent",
				zap.String("parent", parent.Name),
				zap.String("child", child.Name),
			)
		}
		return false
	}
	if !parent.AddChild(child) {
		return false
	}

	if old := child.parent; old != nil && old != parent {
		old.RemoveChild(child)
	}
	child.parent = parent
	child.MarkDirty()

	if parent.inScene && !child.inScene {
		f.scene.AddEntity(child)
	}

	if f.scene.debug {
		f.scene.debugCheckTreeDepth(child)
		f.scene.debugCheckChildCount(parent)
	}
	return true
}

// RemoveChildFromEntity detaches child from parent. It reports false if child
// is not a child of parent. On success the child becomes a root, is marked
// dirty, and if it was in scene its subtree is queued for removal.
func (f *Factory) RemoveChildFromEntity(parent, child *Entity) bool {
	if parent == nil || child == nil {
		return false
	}
	if !parent.RemoveChild(child) {
		return false
	}
	child.parent = nil
	child.MarkDirty()

	if child.inScene {
		f.scene.RemoveEntity(child)
	}
	return true
}

// DestroyEntity detaches e from its parent, queues its subtree for removal
// and marks every entity in it destroyed. Destroying the root or an already
// destroyed entity does nothing.
func (f *Factory) DestroyEntity(e *Entity) {
	if e == nil || e.disposed || e == f.scene.root {
		return
	}
	if p := e.parent; p != nil {
		p.RemoveChild(e)
		e.parent = nil
	}
	if e.inScene || e.registered {
		f.scene.RemoveEntity(e)
	}
	e.dispose()
}
