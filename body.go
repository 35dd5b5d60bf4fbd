package stepless

import (
	"math"

	kitlog "github.com/go-kit/kit/log"
)

// Body is a circular rigid point moving under constant acceleration,
// parameterized at a virtual t=0. Impulses reparameterize (X0, V0, A) but
// never the trajectory's value at the impulse instant — see ApplyImpulse.
//
// Ported from the original source's Ball (stepless/ball.py).
type Body struct {
	X0 Vec2    // position at virtual t=0
	V0 Vec2    // velocity at virtual t=0
	A  Vec2    // constant acceleration
	R  float64 // collision radius, > 0
	M  float64 // mass, > 0 or +Inf for an immovable body
	B  Vec2    // restitution vector; pairwise restitution is B1.Dot(B2)
}

// NewBody returns a Body with the spec's default identities: zero position,
// velocity, acceleration and restitution, unit radius and mass.
func NewBody() Body {
	return Body{R: 1, M: 1}
}

// XAt returns the position at time t.
func (b Body) XAt(t float64) Vec2 {
	return b.A.Scale(t / 2).Add(b.V0).Scale(t).Add(b.X0)
}

// VAt returns the velocity at time t.
func (b Body) VAt(t float64) Vec2 {
	return b.A.Scale(t).Add(b.V0)
}

// AAt returns the acceleration at time t (constant between impulses).
func (b Body) AAt(float64) Vec2 {
	return b.A
}

// RAt returns the collision radius at time t (constant between edits).
func (b Body) RAt(float64) float64 {
	return b.R
}

// MAt returns the mass at time t (constant between edits).
func (b Body) MAt(float64) float64 {
	return b.M
}

// PAt returns the momentum P = m*v at time t.
func (b Body) PAt(t float64) Vec2 {
	return b.VAt(t).Scale(b.M)
}

// FAt returns the force F = m*a at time t.
func (b Body) FAt(t float64) Vec2 {
	return b.AAt(t).Scale(b.M)
}

// UAt returns the potential energy U = -m*(a.x) at time t.
func (b Body) UAt(t float64) float64 {
	return -b.M * b.AAt(t).Dot(b.XAt(t))
}

// KAt returns the kinetic energy K = 1/2*m*|v|^2 at time t.
func (b Body) KAt(t float64) float64 {
	v := b.VAt(t)
	return 0.5 * b.M * v.Dot(v)
}

// EAt returns the total energy E = K + U at time t.
func (b Body) EAt(t float64) float64 {
	return b.KAt(t) + b.UAt(t)
}

// ApplyImpulse returns a Body whose trajectory matches b's up to time t, and
// is then shifted at time t by exactly dx (position), dv+dP/m (velocity) and
// da+dF/m (acceleration). The derivation (requiring x'(t)=x(t)+dx,
// v'(t)=v(t)+dv_effective, a'=a+da_effective) is spec.md §4.2.
func (b Body) ApplyImpulse(t float64, dx, dv, da, dP, dF Vec2) Body {
	daEff := da.Add(dF.Scale(1 / b.M))
	dvEff := dv.Add(dP.Scale(1 / b.M))

	newA := b.A.Add(daEff)
	newV := b.V0.Sub(daEff.Scale(t)).Add(dvEff)
	newX := b.X0.Add(daEff.Scale(t/2).Sub(dvEff).Scale(t)).Add(dx)

	out := b
	out.A = newA
	out.V0 = newV
	out.X0 = newX
	return out
}

// ApplyImpulseValue applies a CollisionImpulse as a (dx, dv) pair at its own
// time, the Go equivalent of the source's operator-overloaded Ball.__add__.
func (b Body) ApplyImpulseValue(i CollisionImpulse) Body {
	return b.ApplyImpulse(i.T, i.Dx, i.Dv, Zero2, Zero2, Zero2)
}

// ApplyState drives the body's state at t to the supplied values for
// whichever components are non-nil, by computing the impulse that would
// produce that change and delegating to ApplyImpulse. Deltas are computed
// as the target value minus the state *at t* (x-XAt(t)), so that
// ApplyImpulse's x'(t)=x(t)+dx identity lands exactly on the requested
// value, per spec.md §9 Open Question (b).
func (b Body) ApplyState(t float64, x, v, a, p, f *Vec2) Body {
	dx, dv, da, dP, dF := Zero2, Zero2, Zero2, Zero2, Zero2
	if x != nil {
		dx = (*x).Sub(b.XAt(t))
	}
	if v != nil {
		dv = (*v).Sub(b.VAt(t))
	}
	if a != nil {
		da = (*a).Sub(b.AAt(t))
	}
	if p != nil {
		dP = (*p).Sub(b.PAt(t))
	}
	if f != nil {
		dF = (*f).Sub(b.FAt(t))
	}
	return b.ApplyImpulse(t, dx, dv, da, dP, dF)
}

// GetCollisionImpulse computes the perfectly inelastic relative impulse that
// brings b and other into exact contact at time t, cancelling the component
// of their relative velocity along the line of centers. Restitution is
// applied afterwards via CollisionImpulse.WithRestitution.
//
// If dx is not (numerically) zero, the caller supplied a t at which the
// bodies are not actually touching; this is surfaced as a warning but the
// impulse is still returned and applied, per spec.md §4.2/§7.
func (b Body) GetCollisionImpulse(other Body, t float64, logger kitlog.Logger) CollisionImpulse {
	x := b.XAt(t).Sub(other.XAt(t))
	v := b.VAt(t).Sub(other.VAt(t))
	r := b.R + other.R

	norm := NormBLAS(x)
	dx := x.Scale(1 - r/norm)
	if logger != nil && !VecClose(dx, Zero2, DefaultTolerance) {
		logger.Log("level", "warn", "subsys", "stepless", "message", "collision displacement is nonzero",
			"dx.x", dx.X, "dx.y", dx.Y, "t", t)
	}
	dv := x.Scale(DotBLAS(v, x) / DotBLAS(x, x))

	return CollisionImpulse{T: t, Dx: dx, Dv: dv}
}

// ComputeCollisionTimes returns the (possibly complex) roots of the
// pairwise-contact quartic for b and other, per spec.md §4.1.
func (b Body) ComputeCollisionTimes(other Body) []complex128 {
	dx := b.X0.Sub(other.X0)
	dv := b.V0.Sub(other.V0)
	da := b.A.Sub(other.A)
	r := b.R + other.R

	c4 := da.Dot(da) / 4
	c3 := dv.Dot(da)
	c2 := dx.Dot(da) + dv.Dot(dv)
	c1 := 2 * dx.Dot(dv)
	c0 := dx.Dot(dx) - r*r

	return collisionRoots(c0, c1, c2, c3, c4)
}

// ComputeNextCollisionTime returns the smallest predicted contact time with
// other strictly after t, or +Inf if the trajectories never bring them into
// contact again.
func (b Body) ComputeNextCollisionTime(other Body, t float64) float64 {
	return NextTimeAfter(b.ComputeCollisionTimes(other), t)
}

// isImmovable reports whether m denotes an immovable body.
func isImmovable(m float64) bool {
	return math.IsInf(m, 1)
}
