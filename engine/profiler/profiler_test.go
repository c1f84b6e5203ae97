package profiler

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/stretchr/testify/assert"
)

func TestProfiler_ReportsPerFrameAverages(t *testing.T) {
	start := time.Unix(100, 0)
	clock := start
	p := NewProfiler()
	p.lastTime = start
	p.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		clock = clock.Add(250 * time.Millisecond)
		assert.False(t, p.Tick(renderer.Stats{Submissions: 6, Draws: 10, Triangles: 100}))
	}

	clock = clock.Add(250 * time.Millisecond)
	assert.True(t, p.Tick(renderer.Stats{Submissions: 2, Draws: 2, Triangles: 20}))

	s := p.Last()
	assert.InDelta(t, 4.0, s.FPS, 1e-9)
	assert.InDelta(t, 5.0, s.Submissions, 1e-9)
	assert.InDelta(t, 8.0, s.Draws, 1e-9)
	assert.InDelta(t, 80.0, s.Triangles, 1e-9)
	assert.Greater(t, s.SysMB, 0.0)
}

func TestProfiler_ResetsAfterReport(t *testing.T) {
	clock := time.Unix(100, 0)
	p := NewProfiler()
	p.lastTime = clock
	p.now = func() time.Time { return clock }

	clock = clock.Add(time.Second)
	assert.True(t, p.Tick(renderer.Stats{Draws: 4}))

	clock = clock.Add(500 * time.Millisecond)
	assert.False(t, p.Tick(renderer.Stats{Draws: 4}))

	clock = clock.Add(500 * time.Millisecond)
	assert.True(t, p.Tick(renderer.Stats{Draws: 2}))
	assert.InDelta(t, 2.0, p.Last().FPS, 1e-9)
	assert.InDelta(t, 3.0, p.Last().Draws, 1e-9)
}
