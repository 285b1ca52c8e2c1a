package arbor

import (
	"slices"
	"time"
)

// Profiler receives timing blocks around hot scene operations. Begin starts
// a block and returns the function that ends it:
//
//	defer p.Begin("SceneManager.Update", BlockCore)()
//
// Implementations must not mutate scene state.
type Profiler interface {
	Begin(name string, kind BlockKind) (end func())
}

// BlockStats is the accumulated time spent in one named block.
type BlockStats struct {
	Name  string
	Kind  BlockKind
	Calls int
	Total time.Duration
	Max   time.Duration
}

// FrameProfiler is a Profiler that accumulates block timings until NewFrame
// is called. SceneManager.PostUpdate calls NewFrame after logging.
type FrameProfiler struct {
	blocks map[string]*BlockStats
	now    func() time.Time
}

// NewFrameProfiler returns an empty FrameProfiler.
func NewFrameProfiler() *FrameProfiler {
	return &FrameProfiler{
		blocks: make(map[string]*BlockStats),
		now:    time.Now,
	}
}

func (p *FrameProfiler) Begin(name string, kind BlockKind) func() {
	start := p.now()
	return func() {
		d := p.now().Sub(start)
		b := p.blocks[name]
		if b == nil {
			b = &BlockStats{Name: name, Kind: kind}
			p.blocks[name] = b
		}
		b.Calls++
		b.Total += d
		if d > b.Max {
			b.Max = d
		}
	}
}

// Blocks returns a snapshot of the current frame's blocks, slowest first.
func (p *FrameProfiler) Blocks() []BlockStats {
	out := make([]BlockStats, 0, len(p.blocks))
	for _, b := range p.blocks {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b BlockStats) int {
		if a.Total != b.Total {
			if a.Total > b.Total {
				return -1
			}
			return 1
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return out
}

// Block returns the stats for one block and whether it ran this frame.
func (p *FrameProfiler) Block(name string) (BlockStats, bool) {
	b, ok := p.blocks[name]
	if !ok {
		return BlockStats{}, false
	}
	return *b, true
}

// NewFrame clears all accumulated blocks.
func (p *FrameProfiler) NewFrame() {
	clear(p.blocks)
}
