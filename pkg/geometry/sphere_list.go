package geometry

import "github.com/df07/go-live-raytracer/pkg/math"

// SphereList is an ordered collection of spheres tested as one object
type SphereList struct {
	Spheres []*Sphere
}

// NewSphereList creates a list holding the given spheres in order
func NewSphereList(spheres ...*Sphere) *SphereList {
	return &SphereList{Spheres: spheres}
}

// Add appends a sphere to the list
func (l *SphereList) Add(s *Sphere) {
	l.Spheres = append(l.Spheres, s)
}

// Len returns the number of spheres in the list
func (l *SphereList) Len() int {
	return len(l.Spheres)
}

// Hit returns the closest intersection among all spheres.
// The upper bound shrinks to each hit found, so on equal t the earlier sphere wins.
func (l *SphereList) Hit(ray math.Ray, tMin, tMax float32) (HitRecord, bool) {
	var closest HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, s := range l.Spheres {
		if hit, ok := s.Hit(ray, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}
