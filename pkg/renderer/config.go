package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-live-raytracer/pkg/dither"
)

// ErrInvalidConfig is returned when a render configuration cannot be used
var ErrInvalidConfig = errors.New("invalid render config")

// Config contains frame rendering configuration
type Config struct {
	Bits    int         // Effective bits per channel for the quantizer (1-8)
	Dither  dither.Mode // How colors are reduced to bytes
	Workers int         // Number of parallel row workers (0 = use CPU count, 1 = sequential)
	Jitter  bool        // Average the camera's SamplesPerPixel jittered rays per pixel
	Seed    int64       // Seed for jittered sampling (0 = seed from the clock)
}

// DefaultConfig returns the settings of the live display: 2-bit ordered dithering,
// one ray per pixel, all CPUs.
func DefaultConfig() Config {
	return Config{
		Bits:    dither.DefaultBits,
		Dither:  dither.ModeOrdered,
		Workers: 0,
		Jitter:  false,
		Seed:    0,
	}
}

// Validate reports whether the configuration is usable
func (c Config) Validate() error {
	if c.Bits < 1 || c.Bits > 8 {
		return fmt.Errorf("%w: bits must be between 1 and 8, got %d", ErrInvalidConfig, c.Bits)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if !c.Dither.Valid() {
		return fmt.Errorf("%w: unknown dither mode %v", ErrInvalidConfig, c.Dither)
	}
	return nil
}

// Quantizer returns the quantizer selected by the configuration
func (c Config) Quantizer() dither.Quantizer {
	return dither.New(c.Dither, c.Bits)
}

// NumWorkers resolves the worker count, substituting the CPU count for 0
func (c Config) NumWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

func (c Config) seed() int64 {
	if c.Seed == 0 {
		return time.Now().UnixNano()
	}
	return c.Seed
}
