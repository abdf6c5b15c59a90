package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shiftdesk/shiftdesk/internal/model"
)

func newSeenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seen <category> [scope]",
		Short: "Mark a category's current activity as seen",
		Long: `Seen records the newest activity in a category as viewed, clearing
its badge until something newer arrives. For schedules the optional
scope is a week's Sunday date; without it every week in the schedule
window is marked.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := model.Category(args[0])
			if !cat.Valid() {
				return fmt.Errorf("unknown category %q (one of: %s)",
					args[0], joinCategories())
			}
			scope := ""
			if len(args) == 2 {
				scope = args[1]
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Badges.MarkSeen(cmd.Context(), cat, scope); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "marked %s as seen\n", cat)
			return nil
		},
	}
}

func joinCategories() string {
	var names []string
	for _, c := range model.AllCategories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
