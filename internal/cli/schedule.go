package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shiftdesk/shiftdesk/internal/model"
	"github.com/shiftdesk/shiftdesk/internal/week"
)

func newScheduleCmd() *cobra.Command {
	var (
		weekOf string
		offset int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the cached schedule for a week",
		Long: `Schedule prints one week of cached shifts, bucketed by day, with
per-business and weekly hour totals. Weeks run Sunday through Saturday;
--week expects the Sunday date. Weeks past the forward edge of the
schedule window cannot be opened.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wk := week.Current()
			if weekOf != "" {
				parsed, err := week.Parse(weekOf)
				if err != nil {
					return err
				}
				wk = parsed
			}
			wk = wk.AddWeeks(offset)

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if wk.IsFuture() && !a.Schedule.CanEdit(wk) {
				return fmt.Errorf("week of %s is past the schedule window", wk)
			}

			view, err := a.Schedule.WeekView(cmd.Context(), wk)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), view)
			}

			out := cmd.OutOrStdout()
			header := view.Label
			if view.Editable {
				header += "  [editable]"
			}
			fmt.Fprintln(out, header)

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for i, day := range view.Days {
				label := wk.Day(i).Format("Mon 01-02")
				if len(day.Shifts) == 0 {
					fmt.Fprintf(w, "%s\t-\t\t\t\t\n", label)
					continue
				}
				for _, sh := range day.Shifts {
					who := sh.BusinessName
					if a.Config.Role == model.RoleBusiness {
						who = sh.EmployeeID
						if who == "" {
							who = "unassigned"
						}
					}
					fmt.Fprintf(w, "%s\t%s-%s\t%s\t%s\t%s\t%s\n",
						label, sh.StartTime, sh.EndTime, sh.Position, who,
						sh.Status, formatHours(sh.Duration()))
					label = ""
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if len(view.Businesses) > 1 {
				fmt.Fprintln(out)
				for _, b := range view.Businesses {
					fmt.Fprintf(out, "%-24s %d shifts  %s\n",
						b.BusinessName, b.Shifts, formatHours(b.Total))
				}
			}
			fmt.Fprintf(out, "\nweek total %s\n", formatHours(view.Total))
			return nil
		},
	}

	cmd.Flags().StringVar(&weekOf, "week", "", "Sunday date of the week to show (YYYY-MM-DD)")
	cmd.Flags().IntVar(&offset, "offset", 0, "shift the shown week by N weeks (negative for past)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the week as JSON")
	return cmd
}
