package bench

import (
	"fmt"
	"slices"
	"time"
)

// TestResult is the outcome of one executed workload.
type TestResult struct {
	WorkloadID string    `json:"workload_id"`
	Label      string    `json:"label"`
	Duration   float64   `json:"duration_seconds"`
	Score      float64   `json:"score"`
	Timestamp  time.Time `json:"timestamp"`
}

// ResultLog is the ordered, append-only record of one run.
type ResultLog []TestResult

// Clone returns a copy that shares no storage with l.
func (l ResultLog) Clone() ResultLog {
	if l == nil {
		return ResultLog{}
	}
	return slices.Clone(l)
}

// State is the lifecycle phase of a Runner.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

var stateNames = [...]string{
	StateIdle:      "idle",
	StateRunning:   "running",
	StateCompleted: "completed",
	StateCancelled: "cancelled",
	StateFailed:    "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no further transitions can happen from s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// MarshalText encodes s by name, so JSON carries "completed" rather than 2.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown run state %q", text)
}

// RunState is a point-in-time snapshot of a run.
type RunState struct {
	State     State `json:"state"`
	Cancelled bool  `json:"cancelled"`
	Completed int   `json:"completed"`
	Total     int   `json:"total"`
}

// Running reports whether the run is between Start and a terminal state.
func (rs RunState) Running() bool {
	return rs.State == StateRunning
}
