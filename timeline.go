package stepless

import (
	kitlog "github.com/go-kit/kit/log"
)

// Timeline wraps a Universe, owns its CollisionHeap, and drives the
// simulation by repeatedly jumping to the next predicted contact and
// resolving it.
//
// Ported from the original source's Timeline (stepless/timeline.py); the
// driving idiom (periodic structured-log status around a blocking run) is
// grounded on the teacher repo's Mission.Propagate/LogStatus.
type Timeline struct {
	*Universe
	future *CollisionHeap
	logger kitlog.Logger
}

// NewTimeline returns a Timeline over a fresh Universe starting at t0.
func NewTimeline(t0 float64, logger kitlog.Logger) *Timeline {
	if logger == nil {
		logger = nopLogger
	}
	return &Timeline{
		Universe: NewUniverse(t0, logger),
		future:   NewCollisionHeap(logger),
		logger:   logger,
	}
}

// Add stores body in the Universe and marks it modified, same as
// Universe.Add — redeclared here only so embedding doesn't hide the need to
// schedule the new body's events (Universe.Add already does this; this
// override exists purely for documentation parity with the original
// source's Timeline.add).
func (tl *Timeline) Add(body Body) View {
	return tl.Universe.Add(body)
}

// RecomputeFuture pushes a fresh prediction into the heap for every
// unordered pair involving at least one modified key, then clears the
// modified set. Pairs where neither key is modified are left untouched —
// their previously scheduled events remain valid, per spec.md §4.7.
func (tl *Timeline) RecomputeFuture() {
	unmodified := make(map[Key]struct{}, tl.Universe.Len())
	for key := range tl.Universe.contents {
		if _, stale := tl.Universe.modified[key]; !stale {
			unmodified[key] = struct{}{}
		}
	}
	for k1 := range tl.Universe.modified {
		for k2 := range unmodified {
			tl.future.Push(k1, k2, tl.nextCollision(k1, k2))
		}
		unmodified[k1] = struct{}{}
	}
	for k1 := range tl.Universe.modified {
		delete(tl.Universe.modified, k1)
	}
}

func (tl *Timeline) nextCollision(k1, k2 Key) float64 {
	b1 := tl.Universe.body(k1)
	b2 := tl.Universe.body(k2)
	return b1.ComputeNextCollisionTime(*b2, tl.Universe.t)
}

// DoNextCollision pops the next scheduled event, resolves it as an
// instantaneous impulse (inelastic base impulse scaled by the pair's
// restitution, split by mass), advances t_now to the event time, marks both
// keys modified, and recomputes the future — per spec.md §4.7.
func (tl *Timeline) DoNextCollision() {
	tl.DoNextCollisionRecorded()
}

// PeekNext returns the predicted time of the next scheduled event without
// resolving it, or +Inf if none is scheduled.
func (tl *Timeline) PeekNext() float64 {
	return tl.future.Peek()
}

// DoNextCollisionRecorded does the same work as DoNextCollision but also
// returns the resolved event's time, the pair of keys involved, and their
// combined post-collision energy, for callers (cmd/stepless) that stream
// events out as they're resolved rather than only at the end of a run.
func (tl *Timeline) DoNextCollisionRecorded() (t float64, k1, k2 Key, energy float64) {
	t, k1, k2 = tl.future.Pop()
	b1 := tl.Universe.body(k1)
	b2 := tl.Universe.body(k2)

	impulse := b1.GetCollisionImpulse(*b2, t, tl.logger)
	impulse = impulse.WithRestitution(b1.B.Dot(b2.B))
	i1, i2 := impulse.Split(b1.M, b2.M)

	*b1 = b1.ApplyImpulseValue(i1)
	*b2 = b2.ApplyImpulseValue(i2)

	tl.Universe.t = t
	tl.Universe.markModified(k1)
	tl.Universe.markModified(k2)

	energy = b1.EAt(t) + b2.EAt(t)

	tl.logger.Log("level", "info", "subsys", "stepless", "message", "resolved collision",
		"t", t, "nan", impulse.IsNaN(), "energy", energy)

	tl.RecomputeFuture()
	return t, k1, k2, energy
}

// AdvanceTo drives the simulation forward to t_target: first resyncing any
// pending body/view edits via RecomputeFuture, then resolving events in
// order until the next predicted event is no earlier than t_target.
//
// Stepping backward without allowTimeTravel returns a *TimeTravelError and
// leaves the Timeline unmodified.
func (tl *Timeline) AdvanceTo(target float64, allowTimeTravel bool) error {
	if !allowTimeTravel && target < tl.Universe.t {
		return &TimeTravelError{Current: tl.Universe.t, Requested: target}
	}
	if len(tl.Universe.modified) > 0 {
		tl.RecomputeFuture()
	}
	resolved := 0
	for target > tl.future.Peek() {
		tl.DoNextCollision()
		resolved++
	}
	tl.Universe.t = target
	tl.logger.Log("level", "notice", "subsys", "stepless", "message", "advanced",
		"t", target, "resolved", resolved, "heap_len", tl.future.Len())
	return nil
}
