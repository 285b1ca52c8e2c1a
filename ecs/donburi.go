// Package ecs provides ECS adapters for arbor.
package ecs

import (
	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for arbor registry changes.
// Subscribe to this in your ECS systems to learn when entities enter or
// leave the scene.
var LifecycleEventType = events.NewEventType[arbor.SceneEvent]()

// SceneEntityData links a Donburi entity to an arbor entity.
type SceneEntityData struct {
	ID   uint32
	Name string
}

// SceneEntity is the component attached to every mirrored entity.
var SceneEntity = donburi.NewComponentType[SceneEntityData]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world.
// Lifecycle events are published to LifecycleEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) arbor.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event arbor.SceneEvent) {
	LifecycleEventType.Publish(s.world, event)
}

// Mirror is an EventSink that keeps one Donburi entity with a SceneEntity
// component per registered arbor entity, and also publishes every event to
// LifecycleEventType.
type Mirror struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

// NewMirror creates a Mirror over world.
func NewMirror(world donburi.World) *Mirror {
	return &Mirror{world: world, entities: make(map[uint32]donburi.Entity)}
}

func (m *Mirror) EmitEvent(event arbor.SceneEvent) {
	switch event.Type {
	case arbor.EventEntityAdded:
		if _, ok := m.entities[event.EntityID]; !ok {
			ent := m.world.Create(SceneEntity)
			SceneEntity.SetValue(m.world.Entry(ent), SceneEntityData{ID: event.EntityID, Name: event.Name})
			m.entities[event.EntityID] = ent
		}
	case arbor.EventEntityRemoved:
		if ent, ok := m.entities[event.EntityID]; ok {
			if m.world.Valid(ent) {
				m.world.Remove(ent)
			}
			delete(m.entities, event.EntityID)
		}
	}
	LifecycleEventType.Publish(m.world, event)
}

// Lookup returns the Donburi entity mirroring the arbor entity with id.
func (m *Mirror) Lookup(id uint32) (donburi.Entity, bool) {
	ent, ok := m.entities[id]
	return ent, ok
}

// Len returns the number of mirrored entities.
func (m *Mirror) Len() int {
	return len(m.entities)
}
