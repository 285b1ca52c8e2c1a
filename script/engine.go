// Package script runs Lua entity behaviors with gopher-lua.
//
// A behavior is a global Lua table with an update method:
//
//	Spinner = {}
//	function Spinner:start()
//	  self.speed = 1.5
//	end
//	function Spinner:update(dt)
//	  local x, y, z = self.entity:rotation()
//	  self.entity:set_rotation(x, y + self.speed * dt, z)
//	end
//
// Engine.Attach binds a behavior to an entity by installing its OnUpdate
// hook. Each attached entity gets its own instance table (self) whose
// metatable falls back to the behavior, and self.entity is the entity.
package script

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/phanxgames/arbor"
)

const entityTypeName = "arbor.entity"

// Engine wraps a single gopher-lua VM. Single-goroutine access only (game loop).
type Engine struct {
	vm      *lua.LState
	factory *arbor.Factory
	log     *zap.Logger
	handles map[*arbor.Entity]*lua.LUserData
}

// NewEngine creates a Lua engine whose scripts create and destroy entities
// through factory.
func NewEngine(factory *arbor.Factory, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:      vm,
		factory: factory,
		log:     log,
		handles: make(map[*arbor.Entity]*lua.LUserData),
	}
	e.registerEntityType()
	e.registerSceneModule()
	return e
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// LoadString executes Lua source, typically behavior definitions.
func (e *Engine) LoadString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load lua: %w", err)
	}
	return nil
}

// LoadFile executes a Lua file.
func (e *Engine) LoadFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// LoadDir executes every .lua file in dir. A missing directory is not an error.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		if err := e.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Attach binds the named behavior to ent, replacing any existing OnUpdate
// hook. The behavior's start method, if any, runs immediately. Runtime errors
// inside update are logged, not returned.
func (e *Engine) Attach(ent *arbor.Entity, behavior string) error {
	tbl, ok := e.vm.GetGlobal(behavior).(*lua.LTable)
	if !ok {
		return fmt.Errorf("attach %q: behavior not defined", behavior)
	}
	update, ok := tbl.RawGetString("update").(*lua.LFunction)
	if !ok {
		return fmt.Errorf("attach %q: behavior has no update function", behavior)
	}

	inst := e.vm.NewTable()
	inst.RawSetString("entity", e.handle(ent))
	meta := e.vm.NewTable()
	meta.RawSetString("__index", tbl)
	e.vm.SetMetatable(inst, meta)

	if start, ok := tbl.RawGetString("start").(*lua.LFunction); ok {
		if err := e.vm.CallByParam(lua.P{Fn: start, NRet: 0, Protect: true}, inst); err != nil {
			return fmt.Errorf("attach %q: start: %w", behavior, err)
		}
	}

	ent.OnUpdate = func(target *arbor.Entity, dt float64) {
		if p := e.factory.Scene().Profiler(); p != nil {
			defer p.Begin("script."+behavior, arbor.BlockGame)()
		}
		if err := e.vm.CallByParam(lua.P{Fn: update, NRet: 0, Protect: true}, inst, lua.LNumber(dt)); err != nil {
			e.log.Error("lua behavior error",
				zap.String("behavior", behavior),
				zap.String("entity", target.Name),
				zap.Error(err),
			)
		}
	}
	return nil
}

// Call invokes a global Lua function with the given entity as its only
// argument. Used for one-shot setup scripts.
func (e *Engine) Call(fn string, ent *arbor.Entity) error {
	f, ok := e.vm.GetGlobal(fn).(*lua.LFunction)
	if !ok {
		return fmt.Errorf("call %q: function not defined", fn)
	}
	if err := e.vm.CallByParam(lua.P{Fn: f, NRet: 0, Protect: true}, e.handle(ent)); err != nil {
		return fmt.Errorf("call %q: %w", fn, err)
	}
	return nil
}

// handle returns the userdata wrapping ent, creating it on first use so that
// the same entity always maps to the same Lua value.
func (e *Engine) handle(ent *arbor.Entity) *lua.LUserData {
	if ud, ok := e.handles[ent]; ok {
		return ud
	}
	ud := e.vm.NewUserData()
	ud.Value = ent
	e.vm.SetMetatable(ud, e.vm.GetTypeMetatable(entityTypeName))
	e.handles[ent] = ud
	return ud
}

func (e *Engine) pushEntity(L *lua.LState, ent *arbor.Entity) {
	if ent == nil {
		L.Push(lua.LNil)
		return
	}
	L.Push(e.handle(ent))
}

func checkEntity(L *lua.LState) *arbor.Entity {
	ud := L.CheckUserData(1)
	ent, ok := ud.Value.(*arbor.Entity)
	if !ok {
		L.ArgError(1, "entity expected")
		return nil
	}
	if ent.IsDisposed() {
		L.RaiseError("entity %q was destroyed", ent.Name)
		return nil
	}
	return ent
}

func checkVec3(L *lua.LState, start int) mgl64.Vec3 {
	return mgl64.Vec3{
		float64(L.CheckNumber(start)),
		float64(L.CheckNumber(start + 1)),
		float64(L.CheckNumber(start + 2)),
	}
}

func pushVec3(L *lua.LState, v mgl64.Vec3) int {
	L.Push(lua.LNumber(v[0]))
	L.Push(lua.LNumber(v[1]))
	L.Push(lua.LNumber(v[2]))
	return 3
}

func (e *Engine) registerEntityType() {
	mt := e.vm.NewTypeMetatable(entityTypeName)
	e.vm.SetField(mt, "__index", e.vm.SetFuncs(e.vm.NewTable(), map[string]lua.LGFunction{
		"id": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkEntity(L).ID))
			return 1
		},
		"name": func(L *lua.LState) int {
			L.Push(lua.LString(checkEntity(L).Name))
			return 1
		},
		"position": func(L *lua.LState) int {
			return pushVec3(L, checkEntity(L).LocalPosition())
		},
		"set_position": func(L *lua.LState) int {
			checkEntity(L).SetLocalPosition(checkVec3(L, 2))
			return 0
		},
		"rotation": func(L *lua.LState) int {
			return pushVec3(L, checkEntity(L).LocalRotation())
		},
		"set_rotation": func(L *lua.LState) int {
			checkEntity(L).SetLocalRotation(checkVec3(L, 2))
			return 0
		},
		"scale": func(L *lua.LState) int {
			return pushVec3(L, checkEntity(L).LocalScaling())
		},
		"set_scale": func(L *lua.LState) int {
			checkEntity(L).SetLocalScaling(checkVec3(L, 2))
			return 0
		},
		"world_position": func(L *lua.LState) int {
			return pushVec3(L, checkEntity(L).WorldPosition())
		},
		"visible": func(L *lua.LState) int {
			L.Push(lua.LBool(checkEntity(L).Visible))
			return 1
		},
		"set_visible": func(L *lua.LState) int {
			checkEntity(L).Visible = L.CheckBool(2)
			return 0
		},
		"parent": func(L *lua.LState) int {
			e.pushEntity(L, checkEntity(L).Parent())
			return 1
		},
		"spawn": func(L *lua.LState) int {
			parent := checkEntity(L)
			e.pushEntity(L, e.factory.CreateChildEntity(L.CheckString(2), parent))
			return 1
		},
		"destroy": func(L *lua.LState) int {
			ent := checkEntity(L)
			ent.Walk(func(d *arbor.Entity) bool {
				delete(e.handles, d)
				return true
			})
			e.factory.DestroyEntity(ent)
			return 0
		},
		"alive": func(L *lua.LState) int {
			ud := L.CheckUserData(1)
			ent, ok := ud.Value.(*arbor.Entity)
			L.Push(lua.LBool(ok && !ent.IsDisposed()))
			return 1
		},
	}))
}

// registerSceneModule installs the global "scene" table.
func (e *Engine) registerSceneModule() {
	mod := e.vm.SetFuncs(e.vm.NewTable(), map[string]lua.LGFunction{
		"root": func(L *lua.LState) int {
			e.pushEntity(L, e.factory.Scene().Root())
			return 1
		},
		"find": func(L *lua.LState) int {
			e.pushEntity(L, e.factory.Scene().FindEntity(L.CheckString(1)))
			return 1
		},
		"frame": func(L *lua.LState) int {
			L.Push(lua.LNumber(e.factory.Scene().Frame()))
			return 1
		},
		"log": func(L *lua.LState) int {
			e.log.Info("lua", zap.String("msg", L.CheckString(1)))
			return 0
		},
	})
	e.vm.SetGlobal("scene", mod)
}
