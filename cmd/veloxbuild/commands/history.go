package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/veloxapp/veloxbuild/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	HistoryDB string `name:"history-db" help:"SQLite database recording past runs" default:".veloxbuild/history.db" env:"VELOXBUILD_HISTORY_DB"`
	Limit     int    `short:"n" help:"Maximum number of runs to show" default:"10"`
}

func (h *HistoryCmd) Run(_ *Global) error {
	store, err := history.Open(h.HistoryDB)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No recorded builds.")
		return nil
	}

	for _, e := range entries {
		commit := e.Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		fmt.Printf("%s  %-8s exit=%-3d %s/%s  %s\n",
			e.Started.Format(time.RFC3339), e.Outcome, e.ExitCode, e.Scheme, e.Configuration, commit)
	}
	return nil
}
