package scene

import (
	mathpkg "github.com/df07/go-live-raytracer/pkg/math"
)

// NewDefaultScene creates the demo scene: one red sphere in front of the camera
func NewDefaultScene(overrides ...SamplingConfig) *Scene {
	s := newScene("default", SamplingConfig{
		Width:           640,
		Height:          480,
		SamplesPerPixel: 1,
	}, overrides)

	s.AddSphere(mathpkg.NewVec3(0, 0, -1), 0.5, mathpkg.NewVec3(1, 0, 0))

	return s
}
