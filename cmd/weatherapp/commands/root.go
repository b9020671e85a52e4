// Package commands implements the weatherapp CLI: a host that drives the
// main and home screens from the terminal and edits persisted settings.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/belinwu/WeatherApp/app"
)

var (
	configFile string
	verbose    bool

	cfg    *app.Config
	logger *slog.Logger
)

func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "weatherapp",
		Short:        "Drive the weather screens from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.LoadConfig(configFile)
			if err != nil {
				return err
			}
			cfg = loaded

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "path to config JSON file (WEATHERAPP_* variables override it)")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging to stderr")

	root.AddCommand(runCmd(), settingsCmd())
	return root
}
