package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the polling daemon",
		Long: `Run starts the badge poller: every poll interval it syncs the
configured categories from the marketplace, recomputes badges, and logs
unseen activity. It blocks until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logrus.SetFormatter(new(logrus.JSONFormatter))

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Run(cmd.Context())
		},
	}
}
