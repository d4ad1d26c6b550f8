package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/utkarsh5026/sysbench/internal/bench"
)

// JSONOutput wraps a run's results for JSON output
type JSONOutput struct {
	RunID      string          `json:"run_id"`
	State      bench.State     `json:"state"`
	TotalScore float64         `json:"total_score"`
	Results    bench.ResultLog `json:"results"`
}

// NewJSONOutput builds the export document for one run.
func NewJSONOutput(runID string, state bench.State, log bench.ResultLog) JSONOutput {
	out := JSONOutput{
		RunID:   runID,
		State:   state,
		Results: log.Clone(),
	}
	for _, r := range log {
		out.TotalScore += r.Score
	}
	return out
}

// SerializeToJSON converts a run to indented JSON bytes
func SerializeToJSON(out JSONOutput) ([]byte, error) {
	return json.MarshalIndent(out, "", "  ")
}

// WriteJSON writes a run as indented JSON followed by a newline.
func WriteJSON(w io.Writer, out JSONOutput) error {
	data, err := SerializeToJSON(out)
	if err != nil {
		return fmt.Errorf("failed to serialize to JSON: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// ParseJSON reads back a document produced by WriteJSON.
func ParseJSON(data []byte) (JSONOutput, error) {
	var out JSONOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return JSONOutput{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return out, nil
}
