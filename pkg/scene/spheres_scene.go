package scene

import (
	mathpkg "github.com/df07/go-live-raytracer/pkg/math"
)

// NewSpheresScene creates a scene with three spheres resting on a large ground sphere
func NewSpheresScene(overrides ...SamplingConfig) *Scene {
	s := newScene("spheres", SamplingConfig{
		Width:           640,
		Height:          480,
		SamplesPerPixel: 4, // Only used with jitter enabled
	}, overrides)

	s.AddSphere(mathpkg.NewVec3(0, -100.5, -1), 100, mathpkg.NewVec3(0.8, 0.8, 0.0).Multiply(0.6)) // ground
	s.AddSphere(mathpkg.NewVec3(0, 0, -1.2), 0.5, mathpkg.NewVec3(0.1, 0.2, 0.5))
	s.AddSphere(mathpkg.NewVec3(-1, 0, -1), 0.5, mathpkg.NewVec3(0.9, 0.9, 0.9))
	s.AddSphere(mathpkg.NewVec3(1, 0, -1), 0.5, mathpkg.NewVec3(0.8, 0.6, 0.2))

	// Small sphere partly sunk into the center one
	s.AddSphere(mathpkg.NewVec3(0.35, -0.3, -0.75), 0.2, mathpkg.NewVec3(0.9, 0.2, 0.2))

	return s
}
