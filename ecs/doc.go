// Package ecs provides ECS adapters for arbor's scene lifecycle events.
//
// [NewDonburiStore] bridges registry changes (entity added, entity removed)
// into a [Donburi] world as typed events. Subscribe to [LifecycleEventType]
// in your ECS systems to receive them. [NewMirror] additionally keeps one
// Donburi entity with a [SceneEntity] component per registered arbor entity.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	sm.SetEventSink(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
