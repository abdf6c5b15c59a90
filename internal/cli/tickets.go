package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shiftdesk/shiftdesk/internal/model"
	"github.com/shiftdesk/shiftdesk/internal/store"
)

func newTicketsCmd() *cobra.Command {
	var (
		all    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List cached support tickets",
		Long: `Tickets lists the support tickets in the cache, open and in-progress
ones by default. Admin accounts see the whole queue; other accounts see
the tickets they filed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			filter := store.TicketFilter{}
			if a.Config.Role != model.RoleAdmin {
				filter.RequesterID = a.Config.API.AccountID
			}
			if !all {
				filter.Statuses = []string{model.TicketOpen, model.TicketInProgress}
			}

			tickets, err := a.Store().GetTickets(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), tickets)
			}
			if len(tickets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no tickets")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SUBJECT\tREQUESTER\tSTATUS\tUPDATED")
			for _, t := range tickets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					t.Subject, t.RequesterName, t.Status, formatTime(t.UpdatedAt))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include resolved tickets")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print tickets as JSON")
	return cmd
}
