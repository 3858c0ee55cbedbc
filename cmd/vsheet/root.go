package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/vsheet/internal/app"
	"github.com/kk-code-lab/vsheet/internal/config"
	"github.com/kk-code-lab/vsheet/internal/logging"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string

	rootCmd := &cobra.Command{
		Use:           "vsheet [folder]",
		Short:         "Triage videos by their contact sheets",
		Long:          "vsheet pairs videos with their contact-sheet images, shows the sheets in the terminal and relocates batches under single-key destinations.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriage(cmd, configFlag, logLevelFlag, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "configuration file path")
	rootCmd.Flags().StringVar(&logLevelFlag, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(newHistoryCommand())

	return rootCmd
}

func runTriage(cmd *cobra.Command, configPath, logLevel string, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	if !isTerminal(os.Stdout.Fd()) {
		return errors.New("vsheet needs an interactive terminal")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, Path: cfg.LogPath})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	application, err := app.NewApplication(cfg, logger, root)
	if err != nil {
		return err
	}

	application.Run()

	moved, failed := application.Totals()
	closeErr := application.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Moved %d, failed %d\n", moved, failed)
	return closeErr
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
