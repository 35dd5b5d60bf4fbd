package stepless

import "math"

// CollisionImpulse is a value triple (t, dx, dv) describing a displacement
// correction and a velocity change to apply at a single instant. Applying
// it at its own t leaves position at t unchanged up to dx, and changes
// velocity by dv.
//
// Operator overloading from the original source's CollisionImpulse
// (__add__/__sub__/__mul__/__neg__) is re-expressed as explicit methods per
// spec.md §9.
type CollisionImpulse struct {
	T  float64
	Dx Vec2
	Dv Vec2
}

// WithRestitution scales the velocity component by (1+e): e=0 keeps the
// impulse perfectly inelastic (as returned by Body.GetCollisionImpulse),
// e=1 makes it perfectly elastic.
func (i CollisionImpulse) WithRestitution(e float64) CollisionImpulse {
	out := i
	out.Dv = i.Dv.Scale(1 + e)
	return out
}

// Split allocates the impulse between two bodies of mass m1, m2, mass-weighted
// so momentum is conserved: I1 = -(m2/M)*I, I2 = (m1/M)*I where M = m1+m2.
// An immovable body (m = +Inf) receives the zero impulse and the other body
// absorbs it whole. If both are immovable every resulting component is NaN,
// the sentinel for an unphysical configuration (spec.md §4.3/§7).
func (i CollisionImpulse) Split(m1, m2 float64) (CollisionImpulse, CollisionImpulse) {
	inf1, inf2 := isImmovable(m1), isImmovable(m2)
	switch {
	case inf1 && !inf2:
		zero := i
		zero.Dx, zero.Dv = Zero2, Zero2
		return zero, i
	case inf2 && !inf1:
		zero := i
		zero.Dx, zero.Dv = Zero2, Zero2
		return i.Neg(), zero
	default:
		// Both finite, or both infinite (division below yields NaN
		// componentwise, propagated rather than masked).
		denom := m1 + m2
		f1 := -m2 / denom
		f2 := m1 / denom
		return i.Scale(f1), i.Scale(f2)
	}
}

// Add returns the pointwise sum of i and o, which must share the same t
// within tolerance.
func (i CollisionImpulse) Add(o CollisionImpulse) CollisionImpulse {
	if !IsClose(i.T, o.T, DefaultTolerance) {
		panic("stepless: cannot add CollisionImpulse values at different t")
	}
	return CollisionImpulse{T: i.T, Dx: i.Dx.Add(o.Dx), Dv: i.Dv.Add(o.Dv)}
}

// Sub returns the pointwise difference of i and o, which must share the same
// t within tolerance.
func (i CollisionImpulse) Sub(o CollisionImpulse) CollisionImpulse {
	if !IsClose(i.T, o.T, DefaultTolerance) {
		panic("stepless: cannot subtract CollisionImpulse values at different t")
	}
	return CollisionImpulse{T: i.T, Dx: i.Dx.Sub(o.Dx), Dv: i.Dv.Sub(o.Dv)}
}

// Scale returns i with both components multiplied by s.
func (i CollisionImpulse) Scale(s float64) CollisionImpulse {
	return CollisionImpulse{T: i.T, Dx: i.Dx.Scale(s), Dv: i.Dv.Scale(s)}
}

// Neg returns i with both components negated.
func (i CollisionImpulse) Neg() CollisionImpulse {
	return i.Scale(-1)
}

// IsNaN reports whether either component of the impulse is NaN, the
// sentinel for an infinite-vs-infinite Split (spec.md §7).
func (i CollisionImpulse) IsNaN() bool {
	return i.Dx.IsNaN() || i.Dv.IsNaN() || math.IsNaN(i.T)
}
