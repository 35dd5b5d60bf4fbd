package stepless

import "math"

// Vec2 is a 2-component double precision vector with the add/sub/scale/
// dot/norm operations the simulator's kinematics need.
type Vec2 struct {
	X, Y float64
}

// Zero2 is the zero vector, the default value for every vector-valued Body field.
var Zero2 = Vec2{}

// Add returns v+w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

// Sub returns v-w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v.X - w.X, v.Y - w.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Dot returns the inner product of v and w.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// NormSq returns |v|^2, avoiding the square root for callers that only need
// to compare magnitudes.
func (v Vec2) NormSq() float64 {
	return v.Dot(v)
}

// Norm returns the Euclidean length of v.
func (v Vec2) Norm() float64 {
	return math.Sqrt(v.NormSq())
}

// IsNaN reports whether either component of v is NaN.
func (v Vec2) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}
