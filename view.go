package stepless

// View is a thin value bound to (Universe, Key) exposing a body's
// time-dependent quantities as read/write accessors evaluated at the
// Universe's current time t_now.
//
// The original source dispatches these through runtime descriptor objects
// (ballview.py's VarDescriptor/SetttableVarDescriptor/
// ImpulseableVarDescriptor). Go has no such protocol, so spec.md §9's
// "explicit method ... dispatched in a match" is realized here as one
// method pair per accessor instead of a generic descriptor table.
type View struct {
	universe *Universe
	key      Key
}

// Key returns the stable key this view is bound to.
func (v View) Key() Key {
	return v.key
}

func (v View) body() *Body {
	return v.universe.body(v.key)
}

func (v View) t() float64 {
	return v.universe.t
}

// X reads position at the Universe's current time.
func (v View) X() Vec2 { return v.body().XAt(v.t()) }

// SetX drives the body's position at the current time to x via an impulse,
// marking the key modified.
func (v View) SetX(x Vec2) {
	b := v.body()
	*b = b.ApplyState(v.t(), &x, nil, nil, nil, nil)
	v.universe.markModified(v.key)
}

// V reads velocity at the Universe's current time.
func (v View) V() Vec2 { return v.body().VAt(v.t()) }

// SetV drives the body's velocity at the current time to x via an impulse.
func (v View) SetV(x Vec2) {
	b := v.body()
	*b = b.ApplyState(v.t(), nil, &x, nil, nil, nil)
	v.universe.markModified(v.key)
}

// A reads acceleration at the Universe's current time.
func (v View) A() Vec2 { return v.body().AAt(v.t()) }

// SetA drives the body's acceleration at the current time to a via an
// impulse.
func (v View) SetA(a Vec2) {
	b := v.body()
	*b = b.ApplyState(v.t(), nil, nil, &a, nil, nil)
	v.universe.markModified(v.key)
}

// P reads momentum at the Universe's current time.
func (v View) P() Vec2 { return v.body().PAt(v.t()) }

// SetP drives the body's momentum at the current time to p via an impulse.
func (v View) SetP(p Vec2) {
	b := v.body()
	*b = b.ApplyState(v.t(), nil, nil, nil, &p, nil)
	v.universe.markModified(v.key)
}

// F reads force at the Universe's current time.
func (v View) F() Vec2 { return v.body().FAt(v.t()) }

// SetF drives the body's force at the current time to f via an impulse.
func (v View) SetF(f Vec2) {
	b := v.body()
	*b = b.ApplyState(v.t(), nil, nil, nil, nil, &f)
	v.universe.markModified(v.key)
}

// R reads collision radius.
func (v View) R() float64 { return v.body().RAt(v.t()) }

// SetR replaces the radius field directly and marks the key modified.
func (v View) SetR(r float64) {
	b := v.body()
	b.R = r
	v.universe.markModified(v.key)
}

// M reads mass.
func (v View) M() float64 { return v.body().MAt(v.t()) }

// SetM replaces the mass field directly and marks the key modified.
func (v View) SetM(m float64) {
	b := v.body()
	b.M = m
	v.universe.markModified(v.key)
}

// B reads the restitution vector.
func (v View) B() Vec2 { return v.body().B }

// SetB replaces the restitution vector directly and marks the key modified.
func (v View) SetB(b2 Vec2) {
	b := v.body()
	b.B = b2
	v.universe.markModified(v.key)
}

// U reads potential energy (read-only).
func (v View) U() float64 { return v.body().UAt(v.t()) }

// K reads kinetic energy (read-only).
func (v View) K() float64 { return v.body().KAt(v.t()) }

// E reads total energy (read-only).
func (v View) E() float64 { return v.body().EAt(v.t()) }

// BodyView is a thin value bound to (*Body, t), for working with a detached
// body outside any Universe — scenario authoring, tests, or anywhere a
// Body hasn't (yet) been added to one. It mirrors View's accessor set so
// the two cannot drift apart, the same duality the original source carries
// across ballview.py's BallView and universe.py's BallUniverseView.
type BodyView struct {
	Body *Body
	T    float64
}

func (v BodyView) X() Vec2 { return v.Body.XAt(v.T) }
func (v BodyView) SetX(x Vec2) {
	*v.Body = v.Body.ApplyState(v.T, &x, nil, nil, nil, nil)
}

func (v BodyView) V() Vec2 { return v.Body.VAt(v.T) }
func (v BodyView) SetV(x Vec2) {
	*v.Body = v.Body.ApplyState(v.T, nil, &x, nil, nil, nil)
}

func (v BodyView) A() Vec2 { return v.Body.AAt(v.T) }
func (v BodyView) SetA(a Vec2) {
	*v.Body = v.Body.ApplyState(v.T, nil, nil, &a, nil, nil)
}

func (v BodyView) P() Vec2 { return v.Body.PAt(v.T) }
func (v BodyView) SetP(p Vec2) {
	*v.Body = v.Body.ApplyState(v.T, nil, nil, nil, &p, nil)
}

func (v BodyView) F() Vec2 { return v.Body.FAt(v.T) }
func (v BodyView) SetF(f Vec2) {
	*v.Body = v.Body.ApplyState(v.T, nil, nil, nil, nil, &f)
}

func (v BodyView) R() float64      { return v.Body.RAt(v.T) }
func (v BodyView) SetR(r float64)  { v.Body.R = r }
func (v BodyView) M() float64      { return v.Body.MAt(v.T) }
func (v BodyView) SetM(m float64)  { v.Body.M = m }
func (v BodyView) B() Vec2         { return v.Body.B }
func (v BodyView) SetB(b Vec2)     { v.Body.B = b }
func (v BodyView) U() float64      { return v.Body.UAt(v.T) }
func (v BodyView) K() float64      { return v.Body.KAt(v.T) }
func (v BodyView) E() float64      { return v.Body.EAt(v.T) }
