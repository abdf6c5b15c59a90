package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shiftdesk/shiftdesk/internal/earnings"
	"github.com/shiftdesk/shiftdesk/internal/week"
)

func newEarningsCmd() *cobra.Command {
	var (
		weekOf    string
		weeksBack int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "earnings",
		Short: "Show cached earnings by week",
		Long: `Earnings prints a week-by-week report from the cache. By default it
covers the hours window from configuration; --weeks widens the range and
--week drills into a single week's entries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if weekOf != "" {
				wk, err := week.Parse(weekOf)
				if err != nil {
					return err
				}
				summary, err := a.Earnings.WeekSummary(cmd.Context(), wk)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(out, summary)
				}
				return printWeekSummary(out, a.Earnings, summary)
			}

			back := weeksBack
			if back <= 0 {
				back = a.Config.Windows.HoursWeeksBack
			}
			current := week.Current()
			report, err := a.Earnings.Report(cmd.Context(),
				current.AddWeeks(-back),
				current.AddWeeks(a.Config.Windows.HoursWeeksForward))
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(out, report)
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WEEK\tHOURS\tGROSS\tPENDING\tAPPROVED\tPAID")
			for _, ws := range report.Weeks {
				fmt.Fprintf(w, "%s\t%.1f\t%s\t%s\t%s\t%s\n",
					ws.WeekStart, ws.Hours,
					earnings.FormatCents(ws.GrossCents),
					earnings.FormatCents(ws.PendingCents),
					earnings.FormatCents(ws.ApprovedCents),
					earnings.FormatCents(ws.PaidCents))
			}
			fmt.Fprintf(w, "total\t%.1f\t%s\t\t\t\n", report.Hours,
				earnings.FormatCents(report.GrossCents))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&weekOf, "week", "", "Sunday date of a single week to detail (YYYY-MM-DD)")
	cmd.Flags().IntVar(&weeksBack, "weeks", 0, "number of past weeks to report (default: hours window)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

// printWeekSummary renders one week's entries with totals.
func printWeekSummary(out io.Writer, svc *earnings.Service, ws *earnings.WeekSummary) error {
	header := ws.Label
	if svc.CanConfirm(ws.Week) {
		header += "  [confirmable]"
	}
	fmt.Fprintln(out, header)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BUSINESS\tHOURS\tRATE\tGROSS\tSTATUS")
	for _, e := range ws.Entries {
		fmt.Fprintf(w, "%s\t%.1f\t%s\t%s\t%s\n",
			e.BusinessName, e.Hours,
			earnings.FormatCents(e.RateCents),
			earnings.FormatCents(e.GrossCents),
			e.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%.1f hours, %s gross (%s pending, %s approved, %s paid)\n",
		ws.Hours,
		earnings.FormatCents(ws.GrossCents),
		earnings.FormatCents(ws.PendingCents),
		earnings.FormatCents(ws.ApprovedCents),
		earnings.FormatCents(ws.PaidCents))
	return nil
}
