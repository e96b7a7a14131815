package math

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Point is a position in world space
type Point = Vec3

// Color is a linear RGB triple, nominally in [0,1]
type Color = Vec3

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float32) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Divide returns the vector divided by a scalar
func (v Vec3) Divide(scalar float32) Vec3 {
	return Vec3{v.X / scalar, v.Y / scalar, v.Z / scalar}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// DivideVec returns component-wise division of two vectors
func (v Vec3) DivideVec(other Vec3) Vec3 {
	return Vec3{v.X / other.X, v.Y / other.Y, v.Z / other.Z}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float32 {
	return v.Dot(v)
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// Normalize returns a unit vector in the same direction.
// A zero vector yields NaN components.
func (v Vec3) Normalize() Vec3 {
	return v.Multiply(1 / v.Length())
}

// Clamp returns a vector with components clamped to [lower, upper]
func (v Vec3) Clamp(lower, upper float32) Vec3 {
	return Vec3{
		X: math32.Max(lower, math32.Min(v.X, upper)),
		Y: math32.Max(lower, math32.Min(v.Y, upper)),
		Z: math32.Max(lower, math32.Min(v.Z, upper)),
	}
}

// ToRGB converts a color to 8-bit channels: clamp to [0,1], scale by 255, round.
func (v Vec3) ToRGB() (r, g, b uint8) {
	scaled := v.Clamp(0, 1).Multiply(255)
	return uint8(math32.Round(scaled.X)), uint8(math32.Round(scaled.Y)), uint8(math32.Round(scaled.Z))
}

// Hex formats the vector as a color, e.g. "0xFF0000" for red.
// Channels are not zero padded.
func (v Vec3) Hex() string {
	r, g, b := v.ToRGB()
	return fmt.Sprintf("0x%X%X%X", r, g, b)
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
