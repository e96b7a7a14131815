package renderer

import (
	"github.com/df07/go-live-raytracer/pkg/geometry"
	mathpkg "github.com/df07/go-live-raytracer/pkg/math"
)

// Hit interval used for primary rays
const (
	hitTMin float32 = 0
	hitTMax float32 = 1e6
)

// Shader colors primary rays: flat object color on a hit, sky gradient otherwise
type Shader struct {
	Bottom mathpkg.Color // Background color for rays pointing straight down
	Top    mathpkg.Color // Background color for rays pointing straight up
}

// DefaultShader returns a shader with a white-to-sky-blue background
func DefaultShader() Shader {
	return Shader{
		Bottom: mathpkg.NewVec3(1.0, 1.0, 1.0),
		Top:    mathpkg.NewVec3(0.5, 0.7, 1.0),
	}
}

// Shade returns the color seen along a ray
func (s Shader) Shade(ray mathpkg.Ray, world geometry.Hittable) mathpkg.Color {
	if hit, isHit := world.Hit(ray, hitTMin, hitTMax); isHit {
		return hit.Color
	}
	return s.Background(ray)
}

// Background returns the gradient color based on ray direction
func (s Shader) Background(ray mathpkg.Ray) mathpkg.Color {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	a := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-a)*bottom + a*top
	return s.Bottom.Multiply(1.0 - a).Add(s.Top.Multiply(a))
}
