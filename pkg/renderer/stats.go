package renderer

import "time"

// FrameStats contains timing for a single presented frame
type FrameStats struct {
	Frame      int           // Index of the frame, starting at 0
	RenderTime time.Duration // Time spent filling the frame buffer
	LoopTime   time.Duration // Time of the whole loop iteration up to presentation
}

// FrameTimer accumulates frame statistics over a run
type FrameTimer struct {
	Frames      int           // Number of frames recorded
	TotalRender time.Duration // Sum of render times
	MinRender   time.Duration // Fastest render
	MaxRender   time.Duration // Slowest render
}

// Add records the statistics of one frame
func (ft *FrameTimer) Add(stats FrameStats) {
	if ft.Frames == 0 || stats.RenderTime < ft.MinRender {
		ft.MinRender = stats.RenderTime
	}
	ft.MaxRender = max(ft.MaxRender, stats.RenderTime)
	ft.TotalRender += stats.RenderTime
	ft.Frames++
}

// AverageRender returns the mean render time, or 0 when nothing was recorded
func (ft *FrameTimer) AverageRender() time.Duration {
	if ft.Frames == 0 {
		return 0
	}
	return ft.TotalRender / time.Duration(ft.Frames)
}

// FramesPerSecond returns the render throughput implied by the average render time
func (ft *FrameTimer) FramesPerSecond() float64 {
	avg := ft.AverageRender()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
