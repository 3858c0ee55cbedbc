package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/vsheet/internal/app"
	"github.com/kk-code-lab/vsheet/internal/journal"
)

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history [folder]",
		Short: "Show past relocations for a folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runHistory(cmd, root)
		},
	}
}

func runHistory(cmd *cobra.Command, root string) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	path := app.JournalPath(root)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(cmd.OutOrStdout(), "No relocation history for %s\n", root)
		return nil
	}

	store, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No relocation history for %s\n", root)
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Moved At", "Video", "Destination", "Session"})
	for _, e := range entries {
		tw.AppendRow(table.Row{
			e.MovedAt.Local().Format(time.DateTime),
			filepath.Base(e.VideoPath),
			e.Destination,
			shortSession(e.Session),
		})
	}
	tw.Render()
	return nil
}

// shortSession keeps the first uuid group; enough to tell batches apart.
func shortSession(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
