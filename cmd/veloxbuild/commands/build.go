package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/veloxapp/veloxbuild/internal/build"
	"github.com/veloxapp/veloxbuild/internal/config"
	"github.com/veloxapp/veloxbuild/internal/history"
)

// ErrReported marks failures already printed to the user. main exits
// non-zero on it without printing the error a second time.
var ErrReported = errors.New("build failed")

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Project       string `help:"Xcode project to build" default:"Velox.xcodeproj" env:"VELOXBUILD_PROJECT"`
	Scheme        string `help:"Build scheme" default:"Velox" env:"VELOXBUILD_SCHEME"`
	Configuration string `help:"Build configuration" default:"Release" env:"VELOXBUILD_CONFIGURATION"`
	DerivedData   string `name:"derived-data" help:"Derived data output directory" default:"build" env:"VELOXBUILD_DERIVED_DATA"`
	Report        string `help:"Write a YAML build report to this path"`
	HistoryDB     string `name:"history-db" help:"SQLite database recording past runs" default:".veloxbuild/history.db" env:"VELOXBUILD_HISTORY_DB"`
	NoHistory     bool   `name:"no-history" help:"Skip recording this run in the history database"`
}

func (b *BuildCmd) Run(_ *Global) error {
	// Friendly user-facing messages go to stdout; structured logs to stderr.
	fmt.Println("🚀 Starting Velox build")

	cfg := config.Config{
		Project:         b.Project,
		Scheme:          b.Scheme,
		Configuration:   b.Configuration,
		DerivedDataPath: b.DerivedData,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Anchor commit resolution at the project location.
	svc := build.NewService(cfg).WithWorkDir(filepath.Dir(b.Project))
	if !b.NoHistory {
		if store, err := history.Open(b.HistoryDB); err != nil {
			slog.Warn("Build history unavailable", "path", b.HistoryDB, "error", err)
		} else {
			defer func() {
				if err := store.Close(); err != nil {
					slog.Warn("Failed to close history database", "error", err)
				}
			}()
			svc = svc.WithHistory(store)
		}
	}

	rep, err := svc.Run(context.Background())
	if b.Report != "" {
		if perr := rep.Persist(b.Report); perr != nil {
			slog.Warn("Failed to persist build report", "path", b.Report, "error", perr)
		}
	}
	if err != nil {
		fmt.Printf("\n❌ Build failed: %v\n", err)
		return ErrReported
	}

	fmt.Println("\n✅ Build succeeded")
	if rep.ArtifactFound {
		fmt.Printf("\n📦 Artifact generated: %s\n", rep.ArtifactPath)
		fmt.Println("You can move this .app to your /Applications folder.")
	} else {
		// Soft inconsistency: reported, but not a failure exit.
		fmt.Printf("\n❌ Error: could not find the generated .app at %s\n", rep.ArtifactPath)
	}
	slog.Info("Build finished", "summary", rep.Summary())
	return nil
}
