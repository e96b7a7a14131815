package geometry

import "github.com/df07/go-live-raytracer/pkg/math"

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     math.Point // Point of intersection
	Normal    math.Vec3  // Surface normal, always facing against the incoming ray
	T         float32    // Parameter t along the ray
	FrontFace bool       // Whether the ray hit the outside surface
	Color     math.Color // Flat color of the object that was hit
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray math.Ray, outwardNormal math.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
