package renderer

import (
	"math/rand"

	mathpkg "github.com/df07/go-live-raytracer/pkg/math"
)

const (
	defaultFocalLength    = 1.0
	defaultViewportHeight = 2.0
)

// Camera maps pixel coordinates to world-space rays through a virtual viewport.
// All fields are derived once per resolution; ray generation never mutates them.
type Camera struct {
	Width           int
	Height          int
	SamplesPerPixel int

	AspectRatio    float32
	FocalLength    float32
	ViewportHeight float32
	ViewportWidth  float32

	Eye         mathpkg.Point
	ViewportU   mathpkg.Vec3 // Horizontal span of the viewport, left to right
	ViewportV   mathpkg.Vec3 // Vertical span of the viewport, top to bottom
	PixelDeltaU mathpkg.Vec3 // World offset between horizontally adjacent pixels
	PixelDeltaV mathpkg.Vec3 // World offset between vertically adjacent pixels
	UpperLeft   mathpkg.Point
	Pixel00     mathpkg.Point // Center of pixel (0, 0)
}

// NewCameraFromViewport creates a camera at the origin looking down -Z for a width x height image
func NewCameraFromViewport(width, height, samplesPerPixel int) *Camera {
	aspectRatio := float32(width) / float32(height)
	viewportWidth := aspectRatio * defaultViewportHeight
	eye := mathpkg.NewVec3(0, 0, 0)

	viewportU := mathpkg.NewVec3(viewportWidth, 0, 0)
	viewportV := mathpkg.NewVec3(0, -defaultViewportHeight, 0)

	pixelDeltaU := viewportU.Divide(float32(width))
	pixelDeltaV := viewportV.Divide(float32(height))

	upperLeft := eye.
		Subtract(mathpkg.NewVec3(0, 0, defaultFocalLength)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	pixel00 := upperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	return &Camera{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		AspectRatio:     aspectRatio,
		FocalLength:     defaultFocalLength,
		ViewportHeight:  defaultViewportHeight,
		ViewportWidth:   viewportWidth,
		Eye:             eye,
		ViewportU:       viewportU,
		ViewportV:       viewportV,
		PixelDeltaU:     pixelDeltaU,
		PixelDeltaV:     pixelDeltaV,
		UpperLeft:       upperLeft,
		Pixel00:         pixel00,
	}
}

// GetRay returns the ray from the eye through the center of pixel (x, y)
func (c *Camera) GetRay(x, y int) mathpkg.Ray {
	target := c.Pixel00.
		Add(c.PixelDeltaU.Multiply(float32(x))).
		Add(c.PixelDeltaV.Multiply(float32(y)))
	return mathpkg.NewRay(c.Eye, target.Subtract(c.Eye))
}

// GetRayJittered returns a ray through a uniformly random point of pixel (x, y)
func (c *Camera) GetRayJittered(x, y int, random *rand.Rand) mathpkg.Ray {
	dx := random.Float32() - 0.5
	dy := random.Float32() - 0.5
	target := c.Pixel00.
		Add(c.PixelDeltaU.Multiply(float32(x) + dx)).
		Add(c.PixelDeltaV.Multiply(float32(y) + dy))
	return mathpkg.NewRay(c.Eye, target.Subtract(c.Eye))
}
