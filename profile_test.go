package arbor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every reading.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func TestFrameProfilerAccumulates(t *testing.T) {
	p := NewFrameProfiler()
	clock := &fakeClock{step: time.Millisecond}
	p.now = clock.now

	p.Begin("fast", BlockCore)()
	p.Begin("fast", BlockCore)()
	clock.step = 5 * time.Millisecond
	p.Begin("slow", BlockRenderer)()

	fast, ok := p.Block("fast")
	require.True(t, ok)
	assert.Equal(t, 2, fast.Calls)
	assert.Equal(t, 2*time.Millisecond, fast.Total)
	assert.Equal(t, time.Millisecond, fast.Max)
	assert.Equal(t, BlockCore, fast.Kind)

	blocks := p.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, "slow", blocks[0].Name, "slowest first")
	assert.Equal(t, "fast", blocks[1].Name)
}

func TestFrameProfilerTiesSortByName(t *testing.T) {
	p := NewFrameProfiler()
	clock := &fakeClock{step: time.Millisecond}
	p.now = clock.now

	p.Begin("b", BlockGame)()
	p.Begin("a", BlockGame)()

	blocks := p.Blocks()
	assert.Equal(t, "a", blocks[0].Name)
	assert.Equal(t, "b", blocks[1].Name)
}

func TestFrameProfilerNewFrame(t *testing.T) {
	p := NewFrameProfiler()
	p.Begin("x", BlockMisc)()
	p.NewFrame()

	_, ok := p.Block("x")
	assert.False(t, ok)
	assert.Empty(t, p.Blocks())
}

func TestBlockKindString(t *testing.T) {
	assert.Equal(t, "game", BlockGame.String())
	assert.Equal(t, "core", BlockCore.String())
	assert.Equal(t, "renderer", BlockRenderer.String())
	assert.Equal(t, "content", BlockContent.String())
	assert.Equal(t, "misc", BlockMisc.String())
}

// BenchmarkDeepHierarchyResolve measures a leaf read after its root moved.
func BenchmarkDeepHierarchyResolve(b *testing.B) {
	root := newEntity("root")
	leaf := root
	for i := 0; i < 64; i++ {
		c := newEntity("n")
		link(leaf, c)
		leaf = c
	}
	leaf.WorldTransform()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		root.MarkDirty()
		leaf.WorldTransform()
	}
}
