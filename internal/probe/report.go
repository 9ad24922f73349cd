package probe

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IterationResult records one open/type/verify/close cycle.
type IterationResult struct {
	Iteration int    `yaml:"iteration"          json:"iteration"`
	Pass      bool   `yaml:"pass"               json:"pass"`
	Observed  string `yaml:"observed,omitempty" json:"observed,omitempty"`
	Elapsed   string `yaml:"elapsed"            json:"elapsed"`
	Error     string `yaml:"error,omitempty"    json:"error,omitempty"`
}

// Report is the outcome of a probe run.
type Report struct {
	OK         bool              `yaml:"ok"                 json:"ok"`
	Action     string            `yaml:"action"             json:"action"`
	RunID      string            `yaml:"run_id"             json:"run_id"`
	App        string            `yaml:"app,omitempty"      json:"app,omitempty"`
	PID        int               `yaml:"pid,omitempty"      json:"pid,omitempty"`
	Text       string            `yaml:"text"               json:"text"`
	Iterations int               `yaml:"iterations"         json:"iterations"`
	Started    time.Time         `yaml:"started"            json:"started"`
	Elapsed    string            `yaml:"elapsed,omitempty"  json:"elapsed,omitempty"`
	Error      string            `yaml:"error,omitempty"    json:"error,omitempty"`
	Artifact   string            `yaml:"artifact,omitempty" json:"artifact,omitempty"`
	Results    []IterationResult `yaml:"results"            json:"results"`
}

// NewReport starts a report for a run of cfg.
func NewReport(cfg Config, now time.Time) *Report {
	return &Report{
		Action:     "run",
		RunID:      uuid.NewString(),
		App:        cfg.App,
		PID:        cfg.PID,
		Text:       cfg.Text,
		Iterations: cfg.Iterations,
		Started:    now,
		Results:    []IterationResult{},
	}
}

// Add appends the result of an iteration.
func (r *Report) Add(res IterationResult) {
	r.Results = append(r.Results, res)
}

// Finish closes the report. A nil err marks the run as passed.
func (r *Report) Finish(err error, now time.Time) {
	r.Elapsed = formatElapsed(now.Sub(r.Started))
	if err != nil {
		r.OK = false
		r.Error = err.Error()
		return
	}
	r.OK = true
}

// Passed returns the number of iterations that passed.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Pass {
			n++
		}
	}
	return n
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
