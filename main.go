package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scripture-reader/reader"
)

func getLogLevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: getLogLevelFromEnv()})))

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dataDir string
		open    string
	)

	root := &cobra.Command{
		Use:           "reader",
		Short:         "Read, search and annotate scripture versions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(dataDir)
			if err != nil {
				return err
			}
			if open != "" {
				cfg.PreferredVersion = open
			}

			ctl := reader.New(cfg, slog.Default())
			defer ctl.Close()
			ctl.Start()

			runREPL(ctl, dataDir)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data root (default $"+reader.DataDirEnv+" or the user config dir)")
	root.Flags().StringVar(&open, "open", reader.DefaultVersion, "version to open on start, by file or display name")

	root.AddCommand(newNoteCmd(&dataDir))
	return root
}

func loadConfig(dataDir string) (reader.Config, error) {
	root, err := reader.DataRoot(dataDir)
	if err != nil {
		return reader.Config{}, err
	}
	cfg := reader.ConfigFor(root)
	if err := cfg.Prepare(); err != nil {
		return reader.Config{}, err
	}
	return cfg, nil
}
