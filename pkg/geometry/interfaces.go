package geometry

import "github.com/df07/go-live-raytracer/pkg/math"

// Hittable is anything a ray can be tested against.
// Hit reports the nearest intersection with t strictly inside (tMin, tMax).
type Hittable interface {
	Hit(ray math.Ray, tMin, tMax float32) (HitRecord, bool)
}

var (
	_ Hittable = (*Sphere)(nil)
	_ Hittable = (*SphereList)(nil)
)
