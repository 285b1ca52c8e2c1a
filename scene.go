package arbor

import (
	"time"

	"go.uber.org/zap"
)

// EventSink is the interface for optional lifecycle event forwarding.
// When set on a SceneManager, registry changes applied by PostUpdate are
// reported in the order they happen.
type EventSink interface {
	EmitEvent(event SceneEvent)
}

// SceneEvent describes one registry change.
type SceneEvent struct {
	Type     EventType
	EntityID uint32
	Name     string
	Frame    uint64
}

// entityQueue is a FIFO of pending registry operations.
type entityQueue struct {
	items []*Entity
	head  int
}

func (q *entityQueue) push(e *Entity) {
	q.items = append(q.items, e)
}

// pop removes and returns the oldest entity. Pushes made while draining are
// returned by later pops.
func (q *entityQueue) pop() (*Entity, bool) {
	if q.head >= len(q.items) {
		q.items = q.items[:0]
		q.head = 0
		return nil, false
	}
	e := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	return e, true
}

func (q *entityQueue) len() int {
	return len(q.items) - q.head
}

// SceneManager owns the flat registry of live entities, the hierarchy root,
// and the queues of pending registry changes. Registry contents only change
// in PostUpdate, so iterating Entities during Update is always safe.
type SceneManager struct {
	cfg   Config
	root  *Entity
	sink  EventSink
	log   *zap.Logger
	debug bool
	dt    float64
	frame uint64

	factory  *Factory
	profiler Profiler

	// Registry
	entities []*Entity
	toAdd    entityQueue
	toRemove entityQueue

	// Scene-level objects that live outside the tree
	camera      *Camera
	dirLights   []*DirectionalLight
	pointLights []*PointLight
	spotLights  []*SpotLight

	lastUpdate time.Duration
}

// NewSceneManager creates a scene manager with a root entity that is already
// registered. Zero or negative scene and debug settings take their
// DefaultConfig values.
func NewSceneManager(cfg Config) *SceneManager {
	def := DefaultConfig()
	if cfg.Scene.TickRate <= 0 {
		cfg.Scene.TickRate = def.Scene.TickRate
	}
	if cfg.Scene.RootName == "" {
		cfg.Scene.RootName = def.Scene.RootName
	}
	if cfg.Debug.WarnTreeDepth <= 0 {
		cfg.Debug.WarnTreeDepth = def.Debug.WarnTreeDepth
	}
	if cfg.Debug.WarnChildCount <= 0 {
		cfg.Debug.WarnChildCount = def.Debug.WarnChildCount
	}
	sm := &SceneManager{
		cfg: cfg,
		log: zap.NewNop(),
		dt:  1.0 / float64(cfg.Scene.TickRate),
	}
	sm.factory = &Factory{scene: sm}
	sm.SetDebugMode(cfg.Debug.Enabled)

	root := newEntity(cfg.Scene.RootName)
	root.SetInScene(true)
	root.registered = true
	sm.entities = append(sm.entities, root)
	sm.root = root
	return sm
}

// Root returns the root entity of the hierarchy.
func (sm *SceneManager) Root() *Entity {
	return sm.root
}

// Factory returns the entity factory bound to this scene manager.
func (sm *SceneManager) Factory() *Factory {
	return sm.factory
}

// Entities returns every registered entity in insertion order. The returned
// slice MUST NOT be mutated and is only valid until the next PostUpdate.
func (sm *SceneManager) Entities() []*Entity {
	return sm.entities
}

// Frame returns the number of completed PostUpdate calls.
func (sm *SceneManager) Frame() uint64 {
	return sm.frame
}

// --- Deferred registry operations ---

// AddEntity queues entity and its whole subtree for insertion at the next
// PostUpdate and marks them as in scene right away. Queuing an entity that is
// already registered or queued is harmless.
func (sm *SceneManager) AddEntity(entity *Entity) {
	sm.enqueue(&sm.toAdd, entity)
	entity.SetInScene(true)
}

// RemoveEntity queues entity and its whole subtree for removal at the next
// PostUpdate and clears their in-scene flag right away.
func (sm *SceneManager) RemoveEntity(entity *Entity) {
	sm.enqueue(&sm.toRemove, entity)
	entity.SetInScene(false)
}

func (sm *SceneManager) enqueue(q *entityQueue, entity *Entity) {
	q.push(entity)
	for _, child := range entity.children {
		sm.enqueue(q, child)
	}
}

// PendingAdds returns the number of queued insertions.
func (sm *SceneManager) PendingAdds() int {
	return sm.toAdd.len()
}

// PendingRemoves returns the number of queued removals.
func (sm *SceneManager) PendingRemoves() int {
	return sm.toRemove.len()
}

// State reports where entity is in the registry lifecycle.
func (sm *SceneManager) State(entity *Entity) MembershipState {
	switch {
	case entity.registered && entity.inScene:
		return Registered
	case entity.registered:
		return PendingRemove
	case entity.inScene && !entity.disposed:
		return PendingAdd
	default:
		return Unregistered
	}
}

// --- Frame ---

// Update runs the update step of every registered entity: its OnUpdate
// behavior, then world transform resolution if anything in its ancestry
// changed. Entities added or removed during Update are reconciled in PostUpdate.
func (sm *SceneManager) Update() {
	if sm.profiler != nil {
		defer sm.profiler.Begin("SceneManager.Update", BlockCore)()
	}
	var t0 time.Time
	if sm.debug {
		t0 = time.Now()
	}

	// The registry cannot change until PostUpdate, so this range is stable.
	for _, e := range sm.entities {
		if e.disposed {
			continue
		}
		e.update(sm.dt)
	}
	if sm.camera != nil {
		sm.camera.update()
	}

	if sm.debug {
		sm.lastUpdate = time.Since(t0)
	}
}

// PostUpdate applies queued registry changes: all removals first, then all
// insertions, each in FIFO order. An entity removed and re-added in the same
// frame therefore ends the frame registered.
//
// Queued insertions are skipped when the entity was destroyed or removed again
// before reconciliation, or is already registered.
func (sm *SceneManager) PostUpdate() {
	stats := frameStats{frame: sm.frame, updateTime: sm.lastUpdate}

	for {
		e, ok := sm.toRemove.pop()
		if !ok {
			break
		}
		if !e.registered {
			stats.skipped++
			continue
		}
		sm.unregister(e)
		stats.removed++
		sm.emit(EventEntityRemoved, e)
	}

	for {
		e, ok := sm.toAdd.pop()
		if !ok {
			break
		}
		if e.disposed || !e.inScene || e.registered {
			stats.skipped++
			continue
		}
		e.registered = true
		sm.entities = append(sm.entities, e)
		stats.added++
		sm.emit(EventEntityAdded, e)
	}

	stats.total = len(sm.entities)
	sm.debugLog(stats)
	if fp, ok := sm.profiler.(*FrameProfiler); ok {
		fp.NewFrame()
	}
	sm.frame++
}

// unregister removes e from the flat registry, keeping insertion order.
func (sm *SceneManager) unregister(e *Entity) {
	for i, c := range sm.entities {
		if c == e {
			copy(sm.entities[i:], sm.entities[i+1:])
			sm.entities[len(sm.entities)-1] = nil
			sm.entities = sm.entities[:len(sm.entities)-1]
			break
		}
	}
	e.registered = false
}

func (sm *SceneManager) emit(typ EventType, e *Entity) {
	if sm.sink == nil {
		return
	}
	sm.sink.EmitEvent(SceneEvent{Type: typ, EntityID: e.ID, Name: e.Name, Frame: sm.frame})
}

// --- Lookups ---

// FindEntity returns the first registered entity with the given name, or nil.
func (sm *SceneManager) FindEntity(name string) *Entity {
	for _, e := range sm.entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// EntityByID returns the registered entity with the given ID, or nil.
func (sm *SceneManager) EntityByID(id uint32) *Entity {
	for _, e := range sm.entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// --- Settings ---

// SetEventSink sets the optional lifecycle event sink.
func (sm *SceneManager) SetEventSink(sink EventSink) {
	sm.sink = sink
}

// SetLogger replaces the logger. A nil logger disables logging.
func (sm *SceneManager) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	sm.log = log
}

// SetProfiler installs a profiler invoked around Update and every world
// transform recomputation. Pass nil to disable.
func (sm *SceneManager) SetProfiler(p Profiler) {
	sm.profiler = p
	globalProfiler = p
}

// Profiler returns the installed profiler, or nil.
func (sm *SceneManager) Profiler() Profiler {
	return sm.profiler
}

// Logger returns the scene manager's logger. Never nil.
func (sm *SceneManager) Logger() *zap.Logger {
	return sm.log
}

// DebugMode reports whether debug mode is enabled.
func (sm *SceneManager) DebugMode() bool {
	return sm.debug
}

// SetDebugMode enables or disables debug mode. When enabled, duplicate child
// adds and use of destroyed entities panic, tree depth and child count
// warnings are logged, and per-frame reconciliation stats are logged at
// debug level.
func (sm *SceneManager) SetDebugMode(enabled bool) {
	sm.debug = enabled
	globalDebug = enabled
}

// DeltaTime returns the fixed timestep passed to entity behaviors.
func (sm *SceneManager) DeltaTime() float64 {
	return sm.dt
}
