package build

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Outcome is the typed enumeration of final build result states.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	// OutcomeWarning marks the inconsistent case: the build tool exited
	// zero but the expected bundle is absent. It is reported to the user
	// but never turned into a failure exit.
	OutcomeWarning Outcome = "warning"
	OutcomeFailed  Outcome = "failed"
)

// Report captures the terminal state of one build run.
type Report struct {
	ID            string    `yaml:"id"`
	Project       string    `yaml:"project"`
	Scheme        string    `yaml:"scheme"`
	Configuration string    `yaml:"configuration"`
	Start         time.Time `yaml:"start"`
	End           time.Time `yaml:"end"`
	ExitCode      int       `yaml:"exit_code"`
	Outcome       Outcome   `yaml:"outcome"`
	// ArtifactPath is the absolute expected bundle location, set whenever
	// the artifact check ran (found or not).
	ArtifactPath  string `yaml:"artifact_path,omitempty"`
	ArtifactFound bool   `yaml:"artifact_found"`
	Commit        string `yaml:"commit,omitempty"`
	Branch        string `yaml:"branch,omitempty"`
	Dirty         bool   `yaml:"dirty,omitempty"`
	Error         string `yaml:"error,omitempty"`
}

// BuildDuration returns the wall-clock time of the run.
func (r *Report) BuildDuration() time.Duration {
	return r.End.Sub(r.Start)
}

// Summary renders a one-line human-readable digest.
func (r *Report) Summary() string {
	return fmt.Sprintf("outcome=%s exit=%d scheme=%s configuration=%s duration=%s",
		r.Outcome, r.ExitCode, r.Scheme, r.Configuration, r.BuildDuration().Round(time.Millisecond))
}

// Persist writes the report as YAML to path, creating parent directories
// as needed.
func (r *Report) Persist(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
