package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-live-raytracer/pkg/math"
)

// Sphere represents a sphere with a flat color.
// Radius is assumed positive; other values are not validated.
type Sphere struct {
	Center math.Point
	Radius float32
	Color  math.Color
}

// NewSphere creates a new sphere
func NewSphere(center math.Point, radius float32, color math.Color) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		Color:  color,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray math.Ray, tMin, tMax float32) (HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}

	sqrtD := math32.Sqrt(discriminant)

	// Try the closer intersection point first, then the farther one
	root := (-halfB - sqrtD) / a
	if root <= tMin || tMax <= root {
		root = (-halfB + sqrtD) / a
		if root <= tMin || tMax <= root {
			return HitRecord{}, false
		}
	}

	hit := HitRecord{
		T:     root,
		Point: ray.At(root),
		Color: s.Color,
	}

	outwardNormal := hit.Point.Subtract(s.Center).Divide(s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)

	return hit, true
}
