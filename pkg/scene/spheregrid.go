package scene

import (
	"github.com/chewxy/math32"

	mathpkg "github.com/df07/go-live-raytracer/pkg/math"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float32) mathpkg.Color {
	hRad := h * math32.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math32.Cos(hRad)
	b := c * math32.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return mathpkg.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a wall of rainbow-colored spheres facing the camera
func NewSphereGridScene(overrides ...SamplingConfig) *Scene {
	s := newScene("sphere-grid", SamplingConfig{
		Width:           640,
		Height:          480,
		SamplesPerPixel: 4,
	}, overrides)

	const (
		columns = 8
		rows    = 6
		depth   = -3.0 // Distance of the wall from the camera
		width   = 6.0  // Extent of the grid, sized to fit the view at depth
	)

	spacing := float32(width) / (columns - 1)
	radius := spacing * 0.35

	// OKLCH parameters for color variation
	baseLightness := float32(0.65)
	minChroma := float32(0.05)
	maxChroma := float32(0.25)

	for i := 0; i < columns; i++ {
		for j := 0; j < rows; j++ {
			x := float32(i)*spacing - width/2
			y := float32(j)*spacing - float32(rows-1)*spacing/2

			// Vary hue across columns and chroma across rows
			hue := float32(i) / (columns - 1) * 360.0
			chroma := minChroma + float32(j)/(rows-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math32.Sin(float32(i+j)*0.5)

			s.AddSphere(mathpkg.NewVec3(x, y, depth), radius, oklchToRGB(lightness, chroma, hue))
		}
	}

	return s
}
