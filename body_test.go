package stepless

import (
	"math"
	"math/rand"
	"testing"
)

func randomVec(src *rand.Rand) Vec2 {
	return Vec2{src.Float64() * 10, src.Float64() * 10}
}

// TestApplyImpulseIsolation mirrors original_source's test_impulse_dx/dv/da/
// dx_dv/dx_da/dv_da: each component of an impulse should leave the
// untouched components of state at t unaffected.
func TestApplyImpulseIsolation(t *testing.T) {
	for n := 0; n < 5; n++ {
		src := rand.New(rand.NewSource(int64(n)))
		b1 := Body{X0: randomVec(src), V0: randomVec(src), A: randomVec(src), R: 1, M: 1}
		at := src.Float64()

		t.Run("dx", func(t *testing.T) {
			wantV, wantA := b1.VAt(at), b1.AAt(at)
			b2 := b1.ApplyImpulse(at, randomVec(src), Zero2, Zero2, Zero2, Zero2)
			if !VecClose(b2.VAt(at), wantV, DefaultTolerance) {
				t.Fatalf("v changed: %v != %v", b2.VAt(at), wantV)
			}
			if !VecClose(b2.AAt(at), wantA, DefaultTolerance) {
				t.Fatalf("a changed: %v != %v", b2.AAt(at), wantA)
			}
		})

		t.Run("dv", func(t *testing.T) {
			wantX, wantA := b1.XAt(at), b1.AAt(at)
			b2 := b1.ApplyImpulse(at, Zero2, randomVec(src), Zero2, Zero2, Zero2)
			if !VecClose(b2.XAt(at), wantX, DefaultTolerance) {
				t.Fatalf("x changed: %v != %v", b2.XAt(at), wantX)
			}
			if !VecClose(b2.AAt(at), wantA, DefaultTolerance) {
				t.Fatalf("a changed: %v != %v", b2.AAt(at), wantA)
			}
		})

		t.Run("da", func(t *testing.T) {
			wantX, wantV := b1.XAt(at), b1.VAt(at)
			b2 := b1.ApplyImpulse(at, Zero2, Zero2, randomVec(src), Zero2, Zero2)
			if !VecClose(b2.XAt(at), wantX, DefaultTolerance) {
				t.Fatalf("x changed: %v != %v", b2.XAt(at), wantX)
			}
			if !VecClose(b2.VAt(at), wantV, DefaultTolerance) {
				t.Fatalf("v changed: %v != %v", b2.VAt(at), wantV)
			}
		})

		t.Run("dx_dv", func(t *testing.T) {
			wantA := b1.AAt(at)
			b2 := b1.ApplyImpulse(at, randomVec(src), randomVec(src), Zero2, Zero2, Zero2)
			if !VecClose(b2.AAt(at), wantA, DefaultTolerance) {
				t.Fatalf("a changed: %v != %v", b2.AAt(at), wantA)
			}
		})

		t.Run("dx_da", func(t *testing.T) {
			wantV := b1.VAt(at)
			b2 := b1.ApplyImpulse(at, randomVec(src), Zero2, randomVec(src), Zero2, Zero2)
			if !VecClose(b2.VAt(at), wantV, DefaultTolerance) {
				t.Fatalf("v changed: %v != %v", b2.VAt(at), wantV)
			}
		})

		t.Run("dv_da", func(t *testing.T) {
			wantX := b1.XAt(at)
			b2 := b1.ApplyImpulse(at, Zero2, randomVec(src), randomVec(src), Zero2, Zero2)
			if !VecClose(b2.XAt(at), wantX, DefaultTolerance) {
				t.Fatalf("x changed: %v != %v", b2.XAt(at), wantX)
			}
		})
	}
}

func collideScenario(t *testing.T, b1, b2 Body, at, e float64) (Body, Body) {
	t.Helper()
	logger := nopLogger
	impulse := b1.GetCollisionImpulse(b2, at, logger).WithRestitution(e)
	i1, i2 := impulse.Split(b1.M, b2.M)
	return b1.ApplyImpulseValue(i1), b2.ApplyImpulseValue(i2)
}

func TestCollideHeadOnElasticConservesLaws(t *testing.T) {
	b1 := Body{X0: Vec2{1, 0}, V0: Vec2{-1, 0}, R: 1, M: 1}
	b2 := Body{X0: Vec2{-1, 0}, V0: Vec2{1, 0}, R: 1, M: 1}
	at := 0.0

	c1, c2 := collideScenario(t, b1, b2, at, 1)

	if !VecClose(c1.VAt(at), b1.VAt(at).Neg(), DefaultTolerance) {
		t.Fatalf("b1 velocity should reverse: %v", c1.VAt(at))
	}
	if !VecClose(c2.VAt(at), b2.VAt(at).Neg(), DefaultTolerance) {
		t.Fatalf("b2 velocity should reverse: %v", c2.VAt(at))
	}

	assertVec2LawObeyed(t, "centroid", centroid, []lawStage{
		{at, []Body{b1, b2}}, {at, []Body{c1, c2}},
	})
	assertVec2LawObeyed(t, "momentum", totalMomentum, []lawStage{
		{at, []Body{b1, b2}}, {at, []Body{c1, c2}},
	})
	assertScalarLawObeyed(t, "kinetic energy", totalKineticEnergy, []lawStage{
		{at, []Body{b1, b2}}, {at, []Body{c1, c2}},
	})
}

func TestCollideInelasticKillsKineticEnergy(t *testing.T) {
	b1 := Body{X0: Vec2{1, 0}, V0: Vec2{-1, 0}, R: 1, M: 1}
	b2 := Body{X0: Vec2{-1, 0}, V0: Vec2{1, 0}, R: 1, M: 1}
	at := 0.0

	c1, c2 := collideScenario(t, b1, b2, at, 0)

	if !VecClose(c1.VAt(at), Zero2, DefaultTolerance) || !VecClose(c2.VAt(at), Zero2, DefaultTolerance) {
		t.Fatalf("perfectly inelastic head-on collision should stop both bodies: c1.v=%v c2.v=%v", c1.VAt(at), c2.VAt(at))
	}
	if k := totalKineticEnergy(at, []Body{c1, c2}); !IsClose(k, 0, DefaultTolerance) {
		t.Fatalf("kinetic energy should be fully dissipated, got %v", k)
	}
}

func TestCollideImmovableObject(t *testing.T) {
	b1 := Body{X0: Vec2{1, 0}, V0: Zero2, R: 1, M: math.Inf(1)}
	b2 := Body{X0: Vec2{-1, 0}, V0: Vec2{1, 0}, R: 1, M: 1}
	at := 0.0

	c1, c2 := collideScenario(t, b1, b2, at, 1)

	if !VecClose(c1.VAt(at), b1.VAt(at), DefaultTolerance) {
		t.Fatalf("immovable body's velocity must not change: %v", c1.VAt(at))
	}
	if !VecClose(c2.VAt(at), b2.VAt(at).Neg(), DefaultTolerance) {
		t.Fatalf("movable body should bounce back: %v", c2.VAt(at))
	}
}

func TestCollideBothImmovableIsNaN(t *testing.T) {
	b1 := Body{X0: Vec2{1, 0}, V0: Zero2, R: 1, M: math.Inf(1)}
	b2 := Body{X0: Vec2{-1, 0}, V0: Vec2{1, 0}, R: 1, M: math.Inf(1)}
	at := 0.0

	c1, c2 := collideScenario(t, b1, b2, at, 1)

	if !c1.XAt(at).IsNaN() || !c2.XAt(at).IsNaN() {
		t.Fatalf("both-immovable collision should produce NaN state, got c1.x=%v c2.x=%v", c1.XAt(at), c2.XAt(at))
	}
}

func TestCollideSmallVsLarge(t *testing.T) {
	b1 := Body{X0: Vec2{1, 0}, V0: Vec2{-1, 0}, R: 1, M: 10}
	b2 := Body{X0: Vec2{-1, 0}, V0: Vec2{1, 0}, R: 1, M: 1}
	at := 0.0

	c1, c2 := collideScenario(t, b1, b2, at, 1)

	if c2.VAt(at).Norm() <= c1.VAt(at).Norm() {
		t.Fatalf("lighter body should be shot away faster: |v2|=%v |v1|=%v", c2.VAt(at).Norm(), c1.VAt(at).Norm())
	}

	assertVec2LawObeyed(t, "centroid", centroid, []lawStage{
		{at, []Body{b1, b2}}, {at, []Body{c1, c2}},
	})
	assertVec2LawObeyed(t, "momentum", totalMomentum, []lawStage{
		{at, []Body{b1, b2}}, {at, []Body{c1, c2}},
	})
}

func TestComputeNextCollisionTimeHeadOn(t *testing.T) {
	b1 := Body{X0: Vec2{5, 0}, V0: Vec2{-1, 0}, R: 1, M: 1}
	b2 := Body{X0: Vec2{-5, 0}, V0: Vec2{1, 0}, R: 1, M: 1}

	// Gap between surfaces is 10-2=8, closing speed 2 => contact at t=4.
	got := b1.ComputeNextCollisionTime(b2, 0)
	if !IsClose(got, 4, 1e-6) {
		t.Fatalf("ComputeNextCollisionTime = %v, want 4", got)
	}
}

func TestComputeNextCollisionTimeNeverCollide(t *testing.T) {
	b1 := Body{X0: Vec2{0, 5}, V0: Vec2{1, 0}, R: 1, M: 1}
	b2 := Body{X0: Vec2{0, -5}, V0: Vec2{1, 0}, R: 1, M: 1}

	got := b1.ComputeNextCollisionTime(b2, 0)
	if !math.IsInf(got, 1) {
		t.Fatalf("parallel non-intersecting paths should never collide, got %v", got)
	}
}
