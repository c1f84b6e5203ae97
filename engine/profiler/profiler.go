package profiler

import (
	"log"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
)

// Sample is one interval's worth of measurements, as written to the log.
type Sample struct {
	FPS float64

	// per-frame averages of the renderer counters over the interval
	Submissions float64
	Draws       float64
	Triangles   float64

	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	SysMB       float64
}

// Profiler tracks frame rate, renderer load and memory statistics and writes them to the
// log once per interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64

	submissions int
	draws       int
	triangles   int

	now  func() time.Time
	last Sample
}

// NewProfiler creates a new Profiler that reports once per second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		now:            time.Now,
	}
}

// Tick should be called once per frame with the renderer counters accumulated during that
// frame. Logs a Sample when the update interval has elapsed.
//
// Parameters:
//   - stats: the renderer counters for the frame just finished
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(stats renderer.Stats) bool {
	p.frameCount++
	p.submissions += stats.Submissions
	p.draws += stats.Draws
	p.triangles += stats.Triangles

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	frames := float64(p.frameCount)
	s := Sample{
		FPS:         frames / elapsed.Seconds(),
		Submissions: float64(p.submissions) / frames,
		Draws:       float64(p.draws) / frames,
		Triangles:   float64(p.triangles) / frames,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}

	log.Printf("[Profiler] FPS: %.2f | Passes/frame: %.1f | Draws/frame: %.1f | Tris/frame: %.0f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d | Sys: %.2f MB",
		s.FPS, s.Submissions, s.Draws, s.Triangles, s.HeapMB, s.AllocRateMB, s.GCCount, s.SysMB)

	p.last = s
	p.frameCount = 0
	p.submissions, p.draws, p.triangles = 0, 0, 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recently logged Sample.
func (p *Profiler) Last() Sample {
	return p.last
}
