package scene

import (
	"github.com/df07/go-live-raytracer/pkg/geometry"
	mathpkg "github.com/df07/go-live-raytracer/pkg/math"
	"github.com/df07/go-live-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.SphereList // Objects in the scene
	Shader         renderer.Shader      // Colors hits and the background
	SamplingConfig SamplingConfig
}

// SamplingConfig contains the frame geometry a scene is rendered at
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel when jitter is enabled
}

// MergeSamplingConfig returns base with every positive field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	return result
}

// AddSphere adds a flat colored sphere to the scene
func (s *Scene) AddSphere(center mathpkg.Point, radius float32, color mathpkg.Color) {
	s.World.Add(geometry.NewSphere(center, radius, color))
}

// NewCamera builds the camera for the scene's sampling configuration
func (s *Scene) NewCamera() *renderer.Camera {
	return renderer.NewCameraFromViewport(s.SamplingConfig.Width, s.SamplingConfig.Height, s.SamplingConfig.SamplesPerPixel)
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

func newScene(name string, sampling SamplingConfig, overrides []SamplingConfig) *Scene {
	if len(overrides) > 0 {
		sampling = MergeSamplingConfig(sampling, overrides[0])
	}
	return &Scene{
		Name:           name,
		World:          geometry.NewSphereList(),
		Shader:         renderer.DefaultShader(),
		SamplingConfig: sampling,
	}
}
