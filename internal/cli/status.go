package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Sync once and show badge counts",
		Long: `Status runs a single sync for the configured categories and prints
the resulting badges. Categories with activity you have not marked seen
are flagged with "new". Without a stored token the cache is used as-is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			badges := a.SyncOnce(cmd.Context())
			if asJSON {
				return printJSON(cmd.OutOrStdout(), badges)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tCOUNT\tNEW\tLATEST")
			for _, b := range badges {
				marker, latest := "", b.Latest
				if b.Unseen {
					marker = "new"
				}
				if latest == "" {
					latest = "-"
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", b.Category, b.Count, marker, latest)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print badges as JSON")
	return cmd
}
