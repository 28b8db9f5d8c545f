// Package build drives a single xcodebuild run end to end: invoke the
// external tool, interpret its exit code, verify the produced bundle, and
// record the outcome.
package build

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/veloxapp/veloxbuild/internal/config"
	"github.com/veloxapp/veloxbuild/internal/gitinfo"
	"github.com/veloxapp/veloxbuild/internal/history"
	"github.com/veloxapp/veloxbuild/internal/xcode"
)

// Service executes builds. The run is strictly linear:
// invoke -> {failed | succeeded -> {artifact found | artifact missing}},
// all states terminal. No retries, no timeouts.
type Service struct {
	cfg     config.Config
	runner  xcode.Runner
	store   *history.Store
	workDir string
}

// NewService creates a build service using the real xcodebuild binary.
func NewService(cfg config.Config) *Service {
	return &Service{
		cfg:     cfg,
		runner:  &xcode.BinaryRunner{},
		workDir: ".",
	}
}

// WithRunner injects a custom Runner (for testing).
func (s *Service) WithRunner(r xcode.Runner) *Service {
	s.runner = r
	return s
}

// WithHistory enables best-effort recording of runs into st. Recording
// failures are logged, never propagated: history is a side channel and
// must not change the build outcome.
func (s *Service) WithHistory(st *history.Store) *Service {
	s.store = st
	return s
}

// WithWorkDir sets the directory used for source commit resolution.
func (s *Service) WithWorkDir(dir string) *Service {
	s.workDir = dir
	return s
}

// Run performs one build. A non-zero tool exit returns the report together
// with the invocation error; the artifact check is skipped entirely in
// that case. A missing artifact after a successful exit yields
// OutcomeWarning with a nil error.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	rep := &Report{
		ID:            uuid.NewString(),
		Project:       s.cfg.Project,
		Scheme:        s.cfg.Scheme,
		Configuration: s.cfg.Configuration,
		Start:         time.Now(),
	}

	if info, ok := gitinfo.Resolve(s.workDir); ok {
		rep.Commit = info.Commit
		rep.Branch = info.Branch
		rep.Dirty = info.Dirty
	}

	inv := xcode.NewBuildInvocation(s.cfg)
	res, err := s.runner.Run(ctx, inv)
	rep.End = time.Now()
	rep.ExitCode = res.ExitCode

	if err != nil {
		rep.Outcome = OutcomeFailed
		rep.Error = err.Error()
		s.record(ctx, rep)
		return rep, err
	}

	abs, found := xcode.CheckArtifact(s.cfg.DerivedDataPath, s.cfg.Configuration, s.cfg.Scheme)
	rep.ArtifactPath = abs
	rep.ArtifactFound = found
	if found {
		rep.Outcome = OutcomeSuccess
	} else {
		rep.Outcome = OutcomeWarning
		slog.Warn("Build tool reported success but expected artifact is missing", "path", abs)
	}

	s.record(ctx, rep)
	return rep, nil
}

func (s *Service) record(ctx context.Context, rep *Report) {
	if s.store == nil {
		return
	}
	entry := history.Entry{
		ID:            rep.ID,
		Scheme:        rep.Scheme,
		Configuration: rep.Configuration,
		Started:       rep.Start,
		Finished:      rep.End,
		Outcome:       string(rep.Outcome),
		ExitCode:      rep.ExitCode,
		ArtifactPath:  rep.ArtifactPath,
		Commit:        rep.Commit,
	}
	if err := s.store.Record(ctx, entry); err != nil {
		slog.Warn("Failed to record build in history", "error", err)
	}
}
