package stepless

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/viper"
)

// SimConfig holds the run parameters that sit outside the core scheduler:
// numeric tolerance, the time-travel opt-in, and the seed and standard
// deviation of the velocity jitter that Scenario.Seed applies. Grounded on the teacher's _smdconfig / cmd/mission
// scenario-loading flow (config.go, cmd/mission/main.go).
type SimConfig struct {
	Tolerance            float64
	AllowTimeTravel      bool
	Seed                 int64
	VelocityJitterStdDev float64
}

// BodySpec is the TOML shape of one seeded body: `m = "inf"` denotes an
// immovable body, matching spec.md §3's `m : scalar > 0 ∨ +∞`.
type BodySpec struct {
	X [2]float64
	V [2]float64
	A [2]float64
	R float64
	M string
	B [2]float64
}

// Scenario is a fully-loaded run: its SimConfig plus the bodies to seed a
// Universe with.
type Scenario struct {
	Config SimConfig
	Bodies []BodySpec
}

// LoadScenario reads a TOML scenario file with viper, the same
// SetConfigName/AddConfigPath/ReadInConfig flow as the teacher's config.go
// and cmd/mission/main.go.
func LoadScenario(dir, name string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(name, ".toml"))
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("stepless: reading scenario %s/%s: %w", dir, name, err)
	}

	cfg := SimConfig{
		Tolerance:            v.GetFloat64("sim.tolerance"),
		AllowTimeTravel:      v.GetBool("sim.allow_time_travel"),
		Seed:                 v.GetInt64("sim.seed"),
		VelocityJitterStdDev: v.GetFloat64("jitter.velocity_stddev"),
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}

	var bodies []BodySpec
	if err := v.UnmarshalKey("bodies", &bodies); err != nil {
		return nil, fmt.Errorf("stepless: parsing bodies: %w", err)
	}

	return &Scenario{Config: cfg, Bodies: bodies}, nil
}

// Seed populates universe with every body described by the scenario,
// defaulting radius to 1 and mass to 1 the way spec.md §6 defines the Body
// construction identities. When Config.VelocityJitterStdDev is positive,
// every seeded velocity is additionally perturbed by the same Gaussian
// jitter GenerateScenario applies to procedurally generated bodies.
func (s *Scenario) Seed(universe *Universe) []View {
	src := rand.New(rand.NewSource(s.Config.Seed))
	jitter := newVelocityJitter(s.Config.VelocityJitterStdDev, src)

	views := make([]View, 0, len(s.Bodies))
	for _, spec := range s.Bodies {
		body := NewBody()
		body.X0 = Vec2{spec.X[0], spec.X[1]}
		body.V0 = Vec2{spec.V[0], spec.V[1]}
		body.A = Vec2{spec.A[0], spec.A[1]}
		body.B = Vec2{spec.B[0], spec.B[1]}
		if spec.R > 0 {
			body.R = spec.R
		}
		body.M = parseMass(spec.M)
		if jitter != nil {
			sample := jitter.Rand(nil)
			body.V0 = body.V0.Add(Vec2{sample[0], sample[1]})
		}
		views = append(views, universe.Add(body))
	}
	return views
}

func parseMass(m string) float64 {
	switch strings.ToLower(strings.TrimSpace(m)) {
	case "", "1":
		return 1
	case "inf", "+inf", "infinity":
		return math.Inf(1)
	}
	var f float64
	if _, err := fmt.Sscanf(m, "%g", &f); err != nil || f <= 0 {
		return 1
	}
	return f
}

// LogConfig emits the loaded scenario's parameters at startup, the way
// config.go's _smdconfig.String() is logged by cmd/mission on load.
func LogConfig(logger kitlog.Logger, cfg SimConfig, nbodies int) {
	logger.Log("level", "info", "subsys", "stepless", "message", "scenario loaded",
		"tolerance", cfg.Tolerance, "allow_time_travel", cfg.AllowTimeTravel,
		"seed", cfg.Seed, "jitter_stddev", cfg.VelocityJitterStdDev, "bodies", nbodies)
}
