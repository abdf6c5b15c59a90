package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shiftdesk/shiftdesk/internal/model"
	"github.com/shiftdesk/shiftdesk/internal/store"
)

func newRequestsCmd() *cobra.Command {
	var (
		all    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "requests",
		Short: "List cached join requests",
		Long: `Requests lists the join requests in the cache. Business accounts see
requests into their business, pending ones by default; employee accounts
see their own requests with the decisions made on them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			filter := store.JoinRequestFilter{}
			switch a.Config.Role {
			case model.RoleBusiness:
				filter.BusinessID = a.Config.API.BusinessID
				if !all {
					filter.Statuses = []string{model.JoinRequestPending}
				}
			default:
				filter.EmployeeID = a.Config.API.AccountID
			}

			reqs, err := a.Store().GetJoinRequests(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), reqs)
			}
			if len(reqs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no join requests")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHO\tSTATUS\tREQUESTED\tDECIDED\tNOTE")
			for _, r := range reqs {
				who := r.BusinessName
				if a.Config.Role == model.RoleBusiness {
					who = r.EmployeeName
				}
				decided := "-"
				if r.DecidedAt != nil {
					decided = formatTime(*r.DecidedAt)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					who, r.Status, formatTime(r.CreatedAt), decided, r.Note)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include decided requests (business accounts)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print requests as JSON")
	return cmd
}
