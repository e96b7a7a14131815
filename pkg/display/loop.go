package display

import (
	"time"

	"github.com/df07/go-live-raytracer/pkg/core"
	"github.com/df07/go-live-raytracer/pkg/renderer"
)

// Command is a user request to the frame loop
type Command int

const (
	CommandNone Command = iota
	CommandTogglePause
	CommandQuit
)

// ParseCommand maps a line of text input to a command
func ParseCommand(s string) Command {
	switch s {
	case "p", "pause", "space", " ":
		return CommandTogglePause
	case "q", "quit", "exit", "escape":
		return CommandQuit
	default:
		return CommandNone
	}
}

// Loop drives one renderer into one framebuffer, a frame per Step.
// Pacing is left to the caller: the window runs it at the configured TPS,
// headless mode from a ticker.
type Loop struct {
	renderer  renderer.FrameRenderer
	fb        *Framebuffer
	logger    core.Logger
	maxFrames int
	paused    bool
	done      bool
	closed    bool
	timer     renderer.FrameTimer
}

// NewLoop creates a loop; maxFrames of 0 runs until a quit command
func NewLoop(fr renderer.FrameRenderer, fb *Framebuffer, logger core.Logger, maxFrames int) *Loop {
	return &Loop{
		renderer:  fr,
		fb:        fb,
		logger:    logger,
		maxFrames: maxFrames,
	}
}

// Handle applies a command. Commands are accepted while paused.
func (l *Loop) Handle(cmd Command) {
	if l.done {
		return
	}
	switch cmd {
	case CommandTogglePause:
		l.paused = !l.paused
		if l.paused {
			l.logger.Printf("Paused\n")
		} else {
			l.logger.Printf("Resumed\n")
		}
	case CommandQuit:
		l.logger.Printf("Loop Terminating\n")
		l.done = true
	}
}

// Step renders and reports one frame unless the loop is paused or done.
// loopStart is when the current iteration began, before input was handled.
func (l *Loop) Step(loopStart time.Time) (renderer.FrameStats, bool) {
	if l.done || l.paused {
		return renderer.FrameStats{}, false
	}

	renderStart := time.Now()
	l.fb.WithLock(l.renderer.RenderFrame)
	stats := renderer.FrameStats{
		Frame:      l.timer.Frames,
		RenderTime: time.Since(renderStart),
		LoopTime:   time.Since(loopStart),
	}
	l.timer.Add(stats)

	l.logger.Printf("It took %d ms to render the frame\n", stats.RenderTime.Milliseconds())
	l.logger.Printf("The loop took %d ms to run\n", stats.LoopTime.Milliseconds())

	if l.maxFrames > 0 && l.timer.Frames >= l.maxFrames {
		l.done = true
	}
	return stats, true
}

func (l *Loop) Paused() bool { return l.paused }
func (l *Loop) Done() bool   { return l.done }

// Framebuffer returns the frame the loop renders into
func (l *Loop) Framebuffer() *Framebuffer {
	return l.fb
}

// Timer returns the statistics of the frames rendered so far
func (l *Loop) Timer() renderer.FrameTimer {
	return l.timer
}

// Close stops the renderer and logs a summary of the run. Later calls do nothing.
func (l *Loop) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.done = true
	l.renderer.Stop()
	if l.timer.Frames == 0 {
		return
	}
	l.logger.Printf("Rendered %d frames: avg %d ms, min %d ms, max %d ms (%.1f fps)\n",
		l.timer.Frames,
		l.timer.AverageRender().Milliseconds(),
		l.timer.MinRender.Milliseconds(),
		l.timer.MaxRender.Milliseconds(),
		l.timer.FramesPerSecond())
}
