package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Menuscore/internal/config"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menuscore",
		Short: "Menuscore - health scoring for fast-food menus",
		Long: `Menuscore ranks restaurants by how healthy their menus are.

Each restaurant's items are fitted against calories per nutrient, the curves
are combined into one score per item, and items above the daily calorie
threshold are penalized.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newRankCommand())

	return cmd
}

// applyDebugFlag lets --debug override the configured log level for
// commands that build their own logger.
func applyDebugFlag(cmd *cobra.Command, cfg *config.Config) {
	if debug, err := cmd.Root().PersistentFlags().GetBool("debug"); err == nil && debug {
		cfg.Logging.Level = "debug"
	}
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// newLogger builds the process logger from the logging section.
func newLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Format) == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
