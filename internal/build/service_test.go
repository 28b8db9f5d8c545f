package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloxapp/veloxbuild/internal/config"
	"github.com/veloxapp/veloxbuild/internal/history"
	"github.com/veloxapp/veloxbuild/internal/xcode"
)

// fakeRunner stands in for the xcodebuild binary. When exitCode is zero and
// createArtifact is set it drops the expected bundle in place before
// returning, mimicking a real successful build.
type fakeRunner struct {
	exitCode       int
	createArtifact bool
	calls          int
}

func (f *fakeRunner) Run(_ context.Context, inv xcode.Invocation) (xcode.RunResult, error) {
	f.calls++
	if f.exitCode != 0 {
		return xcode.RunResult{ExitCode: f.exitCode},
			fmt.Errorf("%w: exit status %d", xcode.ErrInvocationFailed, f.exitCode)
	}
	if f.createArtifact {
		path := xcode.ArtifactPath(inv.DerivedDataPath, inv.Configuration, inv.Scheme)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return xcode.RunResult{ExitCode: -1}, err
		}
	}
	return xcode.RunResult{}, nil
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DerivedDataPath = t.TempDir()
	return cfg
}

func TestRunSuccessWithArtifact(t *testing.T) {
	cfg := testConfig(t)
	svc := NewService(cfg).WithRunner(&fakeRunner{createArtifact: true})

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, rep.Outcome)
	assert.Zero(t, rep.ExitCode)
	assert.True(t, rep.ArtifactFound)
	assert.Equal(t, xcode.ArtifactPath(cfg.DerivedDataPath, cfg.Configuration, cfg.Scheme), rep.ArtifactPath)
	assert.NotEmpty(t, rep.ID)
	assert.False(t, rep.End.Before(rep.Start))
}

func TestRunSuccessWithoutArtifactIsSoftWarning(t *testing.T) {
	cfg := testConfig(t)
	svc := NewService(cfg).WithRunner(&fakeRunner{createArtifact: false})

	rep, err := svc.Run(context.Background())
	require.NoError(t, err, "artifact-missing must not be a hard failure")
	assert.Equal(t, OutcomeWarning, rep.Outcome)
	assert.False(t, rep.ArtifactFound)
	assert.NotEmpty(t, rep.ArtifactPath, "expected path is still reported")
}

func TestRunFailureSkipsArtifactCheck(t *testing.T) {
	cfg := testConfig(t)
	svc := NewService(cfg).WithRunner(&fakeRunner{exitCode: 65})

	rep, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, xcode.ErrInvocationFailed)
	assert.Equal(t, OutcomeFailed, rep.Outcome)
	assert.Equal(t, 65, rep.ExitCode)
	assert.Empty(t, rep.ArtifactPath, "artifact check must not run after a failed invocation")
	assert.False(t, rep.ArtifactFound)
	assert.NotEmpty(t, rep.Error)
}

func TestRunIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{createArtifact: true}
	svc := NewService(cfg).WithRunner(runner)

	first, err := svc.Run(context.Background())
	require.NoError(t, err)
	second, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, runner.calls)
	assert.Equal(t, first.Outcome, second.Outcome)
	assert.Equal(t, first.ArtifactPath, second.ArtifactPath)
	assert.NotEqual(t, first.ID, second.ID, "each run gets its own ID")
}

func TestRunSpawnsNoProcessBesidesTheRunner(t *testing.T) {
	// A decoy xcodebuild on PATH records any execution. With the runner
	// stubbed out, a run must not launch any child process of its own.
	binDir := t.TempDir()
	marker := filepath.Join(binDir, "probed")
	script := fmt.Sprintf("#!/bin/sh\ntouch %s\n", marker)
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "xcodebuild"), []byte(script), 0o755))
	t.Setenv("PATH", binDir)

	svc := NewService(testConfig(t)).WithRunner(&fakeRunner{createArtifact: true})
	rep, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, rep.Outcome)
	assert.NoFileExists(t, marker)
}

func TestRunStampsCommitFromWorkDir(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.swift"), []byte("print(1)\n"), 0o644))
	_, err = wt.Add("main.swift")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	svc := NewService(testConfig(t)).WithRunner(&fakeRunner{createArtifact: true}).WithWorkDir(dir)
	rep, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hash.String(), rep.Commit)
	assert.NotEmpty(t, rep.Branch)
}

func TestRunRecordsHistory(t *testing.T) {
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	cfg := testConfig(t)
	svc := NewService(cfg).WithRunner(&fakeRunner{createArtifact: true}).WithHistory(store)

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)

	entries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, rep.ID, entries[0].ID)
	assert.Equal(t, string(OutcomeSuccess), entries[0].Outcome)
	assert.Equal(t, rep.ArtifactPath, entries[0].ArtifactPath)
}

func TestRunFailureStillRecordsHistory(t *testing.T) {
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	svc := NewService(testConfig(t)).WithRunner(&fakeRunner{exitCode: 1}).WithHistory(store)

	_, err = svc.Run(context.Background())
	require.Error(t, err)

	entries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, string(OutcomeFailed), entries[0].Outcome)
	assert.Equal(t, 1, entries[0].ExitCode)
}
