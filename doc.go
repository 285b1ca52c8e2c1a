// Package arbor is a 3D scene graph with deferred scene membership.
//
// Arbor keeps entities in a parent/child tree, caches each entity's world
// transform and only recomputes it when the entity or one of its ancestors
// changed, and keeps a flat registry of live entities whose contents only
// change between frames.
//
// # Quick start
//
//	sm := arbor.NewSceneManager(arbor.DefaultConfig())
//	f := sm.Factory()
//
//	planet := f.CreateChildEntity("planet", sm.Root())
//	planet.SetLocalPosition(mgl64.Vec3{5, 0, 0})
//	moon := f.CreateChildEntity("moon", planet)
//	moon.SetLocalPosition(mgl64.Vec3{1, 0, 0})
//
//	// once per frame
//	sm.Update()
//	sm.PostUpdate()
//
// # Frames
//
// [SceneManager.Update] runs every registered entity's [Entity.OnUpdate]
// behavior and then refreshes its world transform if it is stale. Entities
// created, attached, detached or destroyed during Update are queued, and
// [SceneManager.PostUpdate] applies the queues: removals first, then
// insertions. [SceneManager.Entities] is therefore stable for a whole frame.
//
// # Structural edits
//
// Use the [Factory] for anything that changes the tree: it keeps parent
// references, dirty flags and scene membership consistent. [Entity.AddChild]
// and [Entity.RemoveChild] are the low-level list primitives it builds on.
//
// # Transforms
//
// Local transforms are position, Euler rotation (radians) and scale, combined
// as Translate * Rotate * Scale with column vectors. Rotation applies roll
// (Z) first, then pitch (X), then yaw (Y). A world transform is the parent's
// world transform times the local transform.
//
// # Extras
//
// A [Camera], directional, point and spot lights, meshes with bounds, a YAML
// [MaterialRegistry], tweens (via [gween]) and a [Profiler] hook round out
// the package. Sub-packages add an [Ebitengine] renderer (arbor/render), Lua
// behaviors (arbor/script) and a [Donburi] event bridge (arbor/ecs).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package arbor
