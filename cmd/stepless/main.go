package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/tarkhala/stepless"
)

// This is a small CLI: load (or generate) a scenario, drive it to -until,
// and write out the resolved collision events. Grounded on cmd/mission's
// flag-then-viper-then-drive shape, simplified to this module's single
// Timeline instead of a Mission's propagation loop.

const defaultScenario = "~~unset~~"

var (
	scenarioFile string
	generate     int
	until        float64
	seed         int64
	jitter       float64
	outCSV       string
	outJSON      string
	outStates    string
	snapshotStep float64
	verbose      bool
)

func init() {
	flag.StringVar(&scenarioFile, "scenario", defaultScenario, "scenario TOML file (directory/name, no extension)")
	flag.IntVar(&generate, "generate", 0, "instead of -scenario, procedurally generate N bodies")
	flag.Float64Var(&until, "until", 10, "simulation time to advance to")
	flag.Int64Var(&seed, "seed", 1, "seed for -generate")
	flag.Float64Var(&jitter, "jitter", 0.5, "velocity jitter standard deviation for -generate")
	flag.StringVar(&outCSV, "events", "events.csv", "path to write the resolved-events CSV")
	flag.StringVar(&outJSON, "summary", "summary.json", "path to write the JSON run summary")
	flag.StringVar(&outStates, "states", "", "optional path to write periodic body-state snapshots (disabled if empty)")
	flag.Float64Var(&snapshotStep, "snapshot-every", 1, "simulation time between state snapshots")
	flag.BoolVar(&verbose, "verbose", false, "also log an \"event recorded\" line for every collision written to -events")
}

func main() {
	flag.Parse()

	logger := stepless.NewLogger("stepless")

	var sc *stepless.Scenario
	var err error
	switch {
	case generate > 0:
		sc, err = stepless.GenerateScenario(generate, seed, jitter)
		if err != nil {
			log.Fatalf("generating scenario: %s", err)
		}
	case scenarioFile != defaultScenario:
		dir := "."
		name := scenarioFile
		if idx := strings.LastIndex(scenarioFile, "/"); idx >= 0 {
			dir, name = scenarioFile[:idx], scenarioFile[idx+1:]
		}
		sc, err = stepless.LoadScenario(dir, name)
		if err != nil {
			log.Fatalf("loading scenario: %s", err)
		}
	default:
		log.Fatal("no scenario provided: pass -scenario or -generate")
	}

	tl := stepless.NewTimeline(0, logger)
	views := sc.Seed(tl.Universe)
	stepless.LogConfig(logger, sc.Config, len(views))

	csvFile, err := os.Create(outCSV)
	if err != nil {
		log.Fatalf("creating %s: %s", outCSV, err)
	}
	defer csvFile.Close()
	rec := stepless.NewRecorder(csvFile, time.Now())

	var stateRec *stepless.StateRecorder
	if outStates != "" {
		stateFile, err := os.Create(outStates)
		if err != nil {
			log.Fatalf("creating %s: %s", outStates, err)
		}
		defer stateFile.Close()
		stateRec = stepless.NewStateRecorder(stateFile, time.Now())
	}

	// advanceToSnapshot moves t_now to target and records every body's state
	// there. It must only be called with target <= tl.PeekNext(), so
	// AdvanceTo's internal "for target > tl.future.Peek()" loop never runs
	// and no collision is ever resolved (and thus silently dropped from
	// rec) inside this call.
	advanceToSnapshot := func(target float64) {
		if err := tl.AdvanceTo(target, sc.Config.AllowTimeTravel); err != nil {
			log.Fatalf("advancing to snapshot %f: %s", target, err)
		}
		for _, v := range tl.Universe.Iterate() {
			if err := stateRec.RecordState(tl.T(), v.Key(), v.X(), v.V()); err != nil {
				log.Fatalf("recording state: %s", err)
			}
		}
	}

	tl.RecomputeFuture()
	resolved := 0
	nextSnapshot := snapshotStep
	for until > tl.PeekNext() {
		for stateRec != nil && nextSnapshot <= tl.PeekNext() && nextSnapshot <= until {
			advanceToSnapshot(nextSnapshot)
			nextSnapshot += snapshotStep
		}
		if until <= tl.PeekNext() {
			break
		}
		t, a, b, energy := tl.DoNextCollisionRecorded()
		if err := rec.RecordEvent(t, a, b, energy); err != nil {
			log.Fatalf("recording event: %s", err)
		}
		resolved++
		if verbose {
			logger.Log("level", "info", "subsys", "stepless", "message", "event recorded", "t", t)
		}
	}
	for stateRec != nil && nextSnapshot <= until {
		advanceToSnapshot(nextSnapshot)
		nextSnapshot += snapshotStep
	}
	if err := tl.AdvanceTo(until, sc.Config.AllowTimeTravel); err != nil {
		log.Fatalf("advancing to %f: %s", until, err)
	}

	summary, err := rec.Close(tl.T())
	if err != nil {
		log.Fatalf("closing recorder: %s", err)
	}

	jsonFile, err := os.Create(outJSON)
	if err != nil {
		log.Fatalf("creating %s: %s", outJSON, err)
	}
	defer jsonFile.Close()
	if err := stepless.WriteJSON(jsonFile, summary); err != nil {
		log.Fatalf("writing summary: %s", err)
	}

	logger.Log("level", "notice", "subsys", "stepless", "message", "run complete",
		"resolved", resolved, "final_t", tl.T())
}
