// Package cli wires the shiftdesk commands. Every command reads the
// config file named by --config and works against the local cache;
// commands that talk to the marketplace need a token stored first.
package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shiftdesk/shiftdesk/internal/app"
	"github.com/shiftdesk/shiftdesk/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// Execute runs the command tree and returns the first error hit. Errors
// are printed by cobra; the caller only picks the exit code.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shiftdesk",
		Short: "Desk client for the shift marketplace",
		Long: `Shiftdesk keeps a local cache of your shift-marketplace account
(schedules, join requests, earnings, support tickets) and computes
new-activity badges over it. Run the daemon with "shiftdesk run", or
use the one-shot commands to sync and inspect the cache.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", model.DefaultConfigPath(), "config file path")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newInitCmd(),
		newTokenCmd(),
		newRunCmd(),
		newStatusCmd(),
		newScheduleCmd(),
		newEarningsCmd(),
		newRequestsCmd(),
		newTicketsCmd(),
		newSeenCmd(),
	)
	return root
}

// loadConfig reads the file named by --config, falling back to defaults
// when it does not exist.
func loadConfig() (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openApp builds the full application from the config file. Callers own
// the returned app and must Close it.
func openApp() (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}
