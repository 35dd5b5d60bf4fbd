package stepless

import (
	"math"
	"math/rand"

	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat/distmv"
)

// GenerateScenario procedurally builds n bodies on a non-overlapping grid
// with velocities jittered by a zero-mean Gaussian, for quick manual
// exploration (cmd/stepless -generate N). The jitter model is grounded on
// station.go's distmv.Normal-based measurement noise (RangeNoise,
// RangeRateNoise), repurposed here to perturb initial velocities instead of
// simulated range measurements.
func GenerateScenario(n int, seed int64, velocityStdDev float64) (*Scenario, error) {
	src := rand.New(rand.NewSource(seed))
	jitter := newVelocityJitter(velocityStdDev, src)

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	spec := &Scenario{
		Config: SimConfig{Tolerance: DefaultTolerance, Seed: seed, VelocityJitterStdDev: velocityStdDev},
		Bodies: make([]BodySpec, n),
	}
	for i := 0; i < n; i++ {
		row, col := i/cols, i%cols
		v := [2]float64{src.NormFloat64() * 0.1, src.NormFloat64() * 0.1}
		if jitter != nil {
			sample := jitter.Rand(nil)
			v = [2]float64{sample[0], sample[1]}
		}
		spec.Bodies[i] = BodySpec{
			X: [2]float64{float64(col) * 4, float64(row) * 4},
			V: v,
			R: 1,
			M: "1",
			B: [2]float64{1, 0},
		}
	}
	return spec, nil
}

// newVelocityJitter builds a zero-mean isotropic Gaussian over 2 dimensions
// with standard deviation stdDev, or nil if stdDev is non-positive.
func newVelocityJitter(stdDev float64, src *rand.Rand) *distmv.Normal {
	if stdDev <= 0 {
		return nil
	}
	variance := stdDev * stdDev
	cov := mat64.NewSymDense(2, []float64{variance, 0, 0, variance})
	jitter, ok := distmv.NewNormal([]float64{0, 0}, cov, src)
	if !ok {
		return nil
	}
	return jitter
}
