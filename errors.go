package stepless

import "fmt"

// TimeTravelError is returned by Timeline.AdvanceTo when asked to step
// backward without explicitly opting in, per spec.md §4.7/§7.
type TimeTravelError struct {
	Current   float64
	Requested float64
}

func (e *TimeTravelError) Error() string {
	return fmt.Sprintf("stepless: cannot step backwards from t=%g to t=%g", e.Current, e.Requested)
}
