package stepless

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// EventRecord is one resolved collision, stamped with both the simulation's
// scalar time and a notional calendar time derived from a configurable
// epoch, mirroring export.go's CgCatalog rows that carry both mission
// elapsed time and an ISO/Julian timestamp.
type EventRecord struct {
	T          float64
	JD         float64
	KeyA, KeyB Key
	Energy     float64
}

// Recorder streams resolved collision events to CSV and accumulates a JSON
// run summary on Close, grounded on export.go's StreamStates (incremental
// csv.Writer rows) and CgCatalog (a single JSON document written at the
// end of a run).
type Recorder struct {
	w       *csv.Writer
	epoch   time.Time
	events  []EventRecord
	started bool
}

// NewRecorder wraps dst in a csv.Writer; the header row is written by the
// first RecordEvent call, so a Recorder with no events writes nothing. epoch is
// the virtual calendar time corresponding to simulation t=0; every record's
// Julian Date is computed as epoch.Add(t seconds).
func NewRecorder(dst io.Writer, epoch time.Time) *Recorder {
	w := csv.NewWriter(dst)
	return &Recorder{w: w, epoch: epoch}
}

// RecordEvent writes one collision event as a CSV row and keeps it for the
// RunSummary returned by Close.
func (r *Recorder) RecordEvent(t float64, a, b Key, energy float64) error {
	if !r.started {
		if err := r.w.Write([]string{"t", "jd", "key_a", "key_b", "energy"}); err != nil {
			return fmt.Errorf("stepless: writing event header: %w", err)
		}
		r.started = true
	}
	jd := julian.TimeToJD(r.epoch.Add(time.Duration(t * float64(time.Second))))
	row := []string{
		strconv.FormatFloat(t, 'g', -1, 64),
		strconv.FormatFloat(jd, 'g', -1, 64),
		a.String(),
		b.String(),
		strconv.FormatFloat(energy, 'g', -1, 64),
	}
	if err := r.w.Write(row); err != nil {
		return fmt.Errorf("stepless: writing event row: %w", err)
	}
	r.events = append(r.events, EventRecord{T: t, JD: jd, KeyA: a, KeyB: b, Energy: energy})
	r.w.Flush()
	return r.w.Error()
}

// RunSummary is the JSON document returned by Close and written by
// WriteJSON: the run's epoch, final simulation time, and every recorded event.
type RunSummary struct {
	Epoch   time.Time     `json:"epoch"`
	FinalT  float64       `json:"final_t"`
	NEvents int           `json:"n_events"`
	Events  []EventRecord `json:"events"`
}

// Close flushes the CSV writer and returns a RunSummary suitable for
// json.Marshal, capturing the run's final simulation time.
func (r *Recorder) Close(finalT float64) (*RunSummary, error) {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		return nil, err
	}
	return &RunSummary{
		Epoch:   r.epoch,
		FinalT:  finalT,
		NEvents: len(r.events),
		Events:  r.events,
	}, nil
}

// WriteJSON marshals a RunSummary to dst with indentation, the same
// json.MarshalIndent convention the teacher's Cosmographia catalogs use.
func WriteJSON(dst io.Writer, summary *RunSummary) error {
	enc := json.NewEncoder(dst)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

// StateRecorder streams periodic per-body state snapshots to CSV, the
// companion to Recorder's event stream — grounded on export.go's
// StreamStates, which writes one incremental row per timestamped state
// rather than waiting for a run to complete.
type StateRecorder struct {
	w       *csv.Writer
	epoch   time.Time
	started bool
}

// NewStateRecorder wraps dst in a csv.Writer for state snapshot rows.
func NewStateRecorder(dst io.Writer, epoch time.Time) *StateRecorder {
	return &StateRecorder{w: csv.NewWriter(dst), epoch: epoch}
}

// RecordState writes one body's position and velocity at t as a CSV row.
func (r *StateRecorder) RecordState(t float64, key Key, x, v Vec2) error {
	if !r.started {
		if err := r.w.Write([]string{"t", "jd", "key", "x", "y", "vx", "vy"}); err != nil {
			return fmt.Errorf("stepless: writing state header: %w", err)
		}
		r.started = true
	}
	jd := julian.TimeToJD(r.epoch.Add(time.Duration(t * float64(time.Second))))
	row := []string{
		strconv.FormatFloat(t, 'g', -1, 64),
		strconv.FormatFloat(jd, 'g', -1, 64),
		key.String(),
		strconv.FormatFloat(x.X, 'g', -1, 64),
		strconv.FormatFloat(x.Y, 'g', -1, 64),
		strconv.FormatFloat(v.X, 'g', -1, 64),
		strconv.FormatFloat(v.Y, 'g', -1, 64),
	}
	if err := r.w.Write(row); err != nil {
		return fmt.Errorf("stepless: writing state row: %w", err)
	}
	r.w.Flush()
	return r.w.Error()
}
