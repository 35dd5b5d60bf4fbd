package stepless

import "testing"

// Conservation-law helpers used across this package's collision scenario
// tests. Ported from original_source's tests/laws.py (centroid, momentum,
// kinetic_energy, assert_conservation_law_obeyed) — kept here as test-only
// infrastructure rather than exported API, per the teacher's own pattern of
// small unexported helpers local to a _test.go file (e.g. vectorsEqual in
// math_test.go).

func centroid(t float64, bodies []Body) Vec2 {
	var massPos Vec2
	var totalMass float64
	for _, b := range bodies {
		massPos = massPos.Add(b.XAt(t).Scale(b.MAt(t)))
		totalMass += b.MAt(t)
	}
	return massPos.Scale(1 / totalMass)
}

func totalMomentum(t float64, bodies []Body) Vec2 {
	var p Vec2
	for _, b := range bodies {
		p = p.Add(b.PAt(t))
	}
	return p
}

func totalKineticEnergy(t float64, bodies []Body) float64 {
	var k float64
	for _, b := range bodies {
		k += b.KAt(t)
	}
	return k
}

type lawStage struct {
	t      float64
	bodies []Body
}

func assertVec2LawObeyed(t *testing.T, name string, law func(float64, []Body) Vec2, stages []lawStage) {
	t.Helper()
	prev := law(stages[0].t, stages[0].bodies)
	for _, stage := range stages[1:] {
		v := law(stage.t, stage.bodies)
		if !VecClose(prev, v, DefaultTolerance) {
			t.Fatalf("%s not conserved: %v != %v", name, prev, v)
		}
		prev = v
	}
}

func assertScalarLawObeyed(t *testing.T, name string, law func(float64, []Body) float64, stages []lawStage) {
	t.Helper()
	prev := law(stages[0].t, stages[0].bodies)
	for _, stage := range stages[1:] {
		v := law(stage.t, stage.bodies)
		if !IsClose(prev, v, DefaultTolerance) {
			t.Fatalf("%s not conserved: %v != %v", name, prev, v)
		}
		prev = v
	}
}
