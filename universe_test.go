package stepless

import "testing"

func TestUniverseAddAndGet(t *testing.T) {
	u := NewUniverse(0, nil)
	view := u.Add(Body{X0: Vec2{1, 2}, V0: Vec2{3, 4}, R: 1, M: 1})

	if u.Len() != 1 {
		t.Fatalf("Len = %d, want 1", u.Len())
	}
	got := u.Get(view.Key())
	if got.X() != (Vec2{1, 2}) {
		t.Fatalf("X() = %v, want {1 2}", got.X())
	}
}

func TestUniverseAddMarksModified(t *testing.T) {
	u := NewUniverse(0, nil)
	view := u.Add(Body{R: 1, M: 1})
	if _, ok := u.modified[view.Key()]; !ok {
		t.Fatal("Add should mark the new key modified")
	}
}

func TestAdvancePastNextCollisionHeadOn(t *testing.T) {
	u := NewUniverse(0, nil)
	a := u.Add(Body{X0: Vec2{5, 0}, V0: Vec2{-1, 0}, R: 1, M: 1})
	b := u.Add(Body{X0: Vec2{-5, 0}, V0: Vec2{1, 0}, R: 1, M: 1})

	if !u.AdvancePastNextCollision() {
		t.Fatal("expected a collision to be found")
	}
	if !IsClose(u.T(), 4, 1e-6) {
		t.Fatalf("T() = %v, want 4", u.T())
	}
	// After a perfectly inelastic head-on collision (restitution e=0, since
	// both bodies' B is Zero2) both bodies should now be at rest.
	if !VecClose(a.V(), Zero2, DefaultTolerance) || !VecClose(b.V(), Zero2, DefaultTolerance) {
		t.Fatalf("expected both bodies at rest after inelastic collision: a.v=%v b.v=%v", a.V(), b.V())
	}
}

func TestAdvancePastNextCollisionNoneFound(t *testing.T) {
	u := NewUniverse(0, nil)
	u.Add(Body{X0: Vec2{0, 5}, V0: Vec2{1, 0}, R: 1, M: 1})
	u.Add(Body{X0: Vec2{0, -5}, V0: Vec2{1, 0}, R: 1, M: 1})

	if u.AdvancePastNextCollision() {
		t.Fatal("parallel non-intersecting bodies should never collide")
	}
}
