package display

import (
	"fmt"

	"github.com/df07/go-live-raytracer/pkg/renderer"
)

// Config controls how frames are presented
type Config struct {
	Width        int    // Frame width in pixels, 0 = the scene's width
	Height       int    // Frame height in pixels, 0 = the scene's height
	Scale        int    // Window pixels per frame pixel
	TPS          int    // Frames attempted per second
	Frames       int    // Stop after this many rendered frames, 0 = run until quit
	Headless     bool   // Run without a window
	SnapshotPath string // Write the last frame here on exit (.png, .bmp, .tif, .tiff)
	Title        string // Window title
}

// DefaultConfig returns the demo's 640x480 window at 60 frames per second
func DefaultConfig() Config {
	return Config{
		Width:  640,
		Height: 480,
		Scale:  1,
		TPS:    60,
		Title:  "raytracer_demo",
	}
}

// Validate reports the first invalid field, wrapping renderer.ErrInvalidConfig
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: frame size %dx%d must not be negative", renderer.ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Scale < 1 {
		return fmt.Errorf("%w: scale must be at least 1, got %d", renderer.ErrInvalidConfig, c.Scale)
	}
	if c.TPS < 1 {
		return fmt.Errorf("%w: tps must be at least 1, got %d", renderer.ErrInvalidConfig, c.TPS)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames must not be negative, got %d", renderer.ErrInvalidConfig, c.Frames)
	}
	if c.SnapshotPath != "" {
		if _, err := FormatFromPath(c.SnapshotPath); err != nil {
			return fmt.Errorf("%w: %w", renderer.ErrInvalidConfig, err)
		}
	}
	return nil
}
