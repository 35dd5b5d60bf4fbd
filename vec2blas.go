package stepless

import "github.com/gonum/matrix/mat64"

// DotBLAS computes the same inner product as Vec2.Dot but routes it through
// gonum/matrix/mat64, the way the teacher repo's math.go keeps both a
// pure-Go dot() and a BLAS-backed Dot() side by side. Vec2.Dot is used on
// every hot path (root finding); Body.GetCollisionImpulse uses this one,
// since a single impulse resolution per event can afford the call overhead.
func DotBLAS(v, w Vec2) float64 {
	return mat64.Dot(mat64.NewVector(2, []float64{v.X, v.Y}), mat64.NewVector(2, []float64{w.X, w.Y}))
}

// NormBLAS computes |v| via mat64.Norm instead of Vec2.Norm's plain math.Sqrt.
func NormBLAS(v Vec2) float64 {
	return mat64.Norm(mat64.NewVector(2, []float64{v.X, v.Y}), 2)
}
