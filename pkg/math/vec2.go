package math

import "math"

// Vec2 is a 2D vector. The wheel uses it for positions in the horizontal XZ plane.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Angle returns the polar angle atan2(Y, X).
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}
