package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/veloxapp/veloxbuild/cmd/veloxbuild/commands"
)

// version is stamped via -ldflags at release time.
var version = "dev"

func main() {
	// Seed the environment from .env before kong resolves env-tagged flags.
	// Existing process environment variables are not overwritten.
	_ = godotenv.Load()

	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("veloxbuild"),
		kong.Description("Build driver for the Velox macOS application."),
		kong.Vars{"version": version},
	)
	err := ctx.Run(&commands.Global{})
	if errors.Is(err, commands.ErrReported) {
		// The command already printed the failure; just propagate the exit code.
		os.Exit(1)
	}
	ctx.FatalIfErrorf(err)
}
