package stepless

import (
	"math"
	"testing"
)

func TestCollisionImpulseWithRestitution(t *testing.T) {
	i := CollisionImpulse{T: 1, Dx: Vec2{1, 0}, Dv: Vec2{2, 0}}
	elastic := i.WithRestitution(1)
	if elastic.Dv != (Vec2{4, 0}) {
		t.Fatalf("e=1: Dv = %v, want {4 0}", elastic.Dv)
	}
	inelastic := i.WithRestitution(0)
	if inelastic.Dv != (Vec2{2, 0}) {
		t.Fatalf("e=0: Dv = %v, want {2 0}", inelastic.Dv)
	}
}

func TestCollisionImpulseSplitFiniteMasses(t *testing.T) {
	i := CollisionImpulse{T: 0, Dx: Vec2{1, 0}, Dv: Vec2{2, 0}}
	i1, i2 := i.Split(1, 1)
	if i1.Dv != (Vec2{-1, 0}) || i2.Dv != (Vec2{1, 0}) {
		t.Fatalf("equal-mass split: i1=%v i2=%v", i1, i2)
	}

	i1, i2 = i.Split(1, 3)
	want1, want2 := -3.0/4, 1.0/4
	if !IsClose(i1.Dv.X, i.Dv.X*want1, DefaultTolerance) || !IsClose(i2.Dv.X, i.Dv.X*want2, DefaultTolerance) {
		t.Fatalf("mass-weighted split: i1=%v i2=%v", i1, i2)
	}
}

func TestCollisionImpulseSplitImmovable(t *testing.T) {
	i := CollisionImpulse{T: 0, Dx: Vec2{1, 0}, Dv: Vec2{2, 0}}

	i1, i2 := i.Split(math.Inf(1), 1)
	if i1.Dv != Zero2 {
		t.Fatalf("immovable first body should receive zero impulse, got %v", i1.Dv)
	}
	if i2.Dv != i.Dv {
		t.Fatalf("movable second body should absorb the whole impulse, got %v want %v", i2.Dv, i.Dv)
	}

	i1, i2 = i.Split(1, math.Inf(1))
	if i2.Dv != Zero2 {
		t.Fatalf("immovable second body should receive zero impulse, got %v", i2.Dv)
	}
	if i1.Dv != i.Neg().Dv {
		t.Fatalf("movable first body should absorb the negated impulse, got %v want %v", i1.Dv, i.Neg().Dv)
	}
}

func TestCollisionImpulseSplitBothImmovableIsNaN(t *testing.T) {
	i := CollisionImpulse{T: 0, Dx: Vec2{1, 0}, Dv: Vec2{2, 0}}
	i1, i2 := i.Split(math.Inf(1), math.Inf(1))
	if !i1.IsNaN() || !i2.IsNaN() {
		t.Fatalf("both-immovable split should be NaN, got i1=%v i2=%v", i1, i2)
	}
}

func TestCollisionImpulseArithmetic(t *testing.T) {
	a := CollisionImpulse{T: 1, Dx: Vec2{1, 1}, Dv: Vec2{2, 2}}
	b := CollisionImpulse{T: 1, Dx: Vec2{0.5, 0}, Dv: Vec2{1, 0}}

	sum := a.Add(b)
	if sum.Dx != (Vec2{1.5, 1}) || sum.Dv != (Vec2{3, 2}) {
		t.Fatalf("Add: got %v", sum)
	}

	diff := a.Sub(b)
	if diff.Dx != (Vec2{0.5, 1}) || diff.Dv != (Vec2{1, 2}) {
		t.Fatalf("Sub: got %v", diff)
	}

	if a.Neg().Dx != (Vec2{-1, -1}) {
		t.Fatalf("Neg: got %v", a.Neg())
	}
}

func TestCollisionImpulseAddMismatchedTimePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic adding impulses at different t")
		}
	}()
	a := CollisionImpulse{T: 1}
	b := CollisionImpulse{T: 2}
	a.Add(b)
}
