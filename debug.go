package arbor

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// globalDebug mirrors the most recently set SceneManager debug flag so that
// entity operations (which lack a SceneManager pointer) can check it cheaply.
// Only valid with a single SceneManager; multiple managers with differing
// debug modes will reflect whichever called SetDebugMode last.
var globalDebug bool

// globalProfiler is the profiler installed by the most recent
// SceneManager.SetProfiler call, with the same single-manager caveat.
var globalProfiler Profiler

// frameStats holds per-frame reconciliation metrics.
// Only logged when the SceneManager is in debug mode.
type frameStats struct {
	frame      uint64
	updateTime time.Duration
	added      int
	removed    int
	skipped    int
	total      int
}

// debugLog writes reconciliation stats for the frame at debug level.
func (sm *SceneManager) debugLog(stats frameStats) {
	if !sm.debug {
		return
	}
	sm.log.Debug("frame reconciled",
		zap.Uint64("frame", stats.frame),
		zap.Duration("update", stats.updateTime),
		zap.Int("added", stats.added),
		zap.Int("removed", stats.removed),
		zap.Int("skipped", stats.skipped),
		zap.Int("entities", stats.total),
	)
	if fp, ok := sm.profiler.(*FrameProfiler); ok {
		for _, b := range fp.Blocks() {
			sm.log.Debug("profiler block",
				zap.String("block", b.Name),
				zap.Stringer("kind", b.Kind),
				zap.Int("calls", b.Calls),
				zap.Duration("total", b.Total),
			)
		}
	}
}

// debugCheckDisposed panics with a descriptive message when a destroyed
// entity is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(e *Entity, op string) {
	if e.disposed {
		panic(fmt.Sprintf("arbor debug: %s on destroyed entity %q (ID %d)", op, e.Name, e.ID))
	}
}

// debugDuplicateChild panics when a child is added twice to the same parent.
func debugDuplicateChild(parent, child *Entity) {
	panic(fmt.Sprintf("arbor debug: entity %q (ID %d) is already a child of %q (ID %d)",
		child.Name, child.ID, parent.Name, parent.ID))
}

// debugCheckTreeDepth warns if the entity sits deeper than the configured threshold.
func (sm *SceneManager) debugCheckTreeDepth(e *Entity) {
	depth := 0
	for p := e; p != nil; p = p.parent {
		depth++
	}
	if depth > sm.cfg.Debug.WarnTreeDepth {
		sm.log.Warn("tree depth exceeds threshold",
			zap.String("entity", e.Name),
			zap.Int("depth", depth),
			zap.Int("threshold", sm.cfg.Debug.WarnTreeDepth),
		)
	}
}

// debugCheckChildCount warns if an entity has more children than the configured threshold.
func (sm *SceneManager) debugCheckChildCount(e *Entity) {
	if len(e.children) > sm.cfg.Debug.WarnChildCount {
		sm.log.Warn("child count exceeds threshold",
			zap.String("entity", e.Name),
			zap.Int("children", len(e.children)),
			zap.Int("threshold", sm.cfg.Debug.WarnChildCount),
		)
	}
}
