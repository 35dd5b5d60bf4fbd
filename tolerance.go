package stepless

import "github.com/gonum/floats"

// DefaultTolerance matches the reference "all close" idiom of the original
// source: ~1e-8 relative, ~1e-8 absolute.
const DefaultTolerance = 1e-8

// IsClose reports whether a and b agree within tol, combining an absolute
// and a relative check the way floats.EqualWithinAbs/EqualWithinRel are
// combined throughout the teacher repo's numeric comparisons.
func IsClose(a, b, tol float64) bool {
	if floats.EqualWithinAbs(a, b, tol) {
		return true
	}
	return floats.EqualWithinRel(a, b, tol)
}

// VecClose reports whether v and w agree componentwise within tol.
func VecClose(v, w Vec2, tol float64) bool {
	return IsClose(v.X, w.X, tol) && IsClose(v.Y, w.Y, tol)
}
