// Package commands defines the veloxbuild CLI command tree.
package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/veloxapp/veloxbuild/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" default:"withargs" help:"Build the Velox application with xcodebuild"`
	Doctor  DoctorCmd  `cmd:"" help:"Check that the local Xcode toolchain is usable"`
	History HistoryCmd `cmd:"" help:"List recent build runs"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.ParseLogLevel(c.Verbose)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
