package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shiftdesk/shiftdesk/internal/model"
)

func newInitCmd() *cobra.Command {
	var (
		baseURL    string
		accountID  string
		businessID string
		role       string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Init writes a config file with defaults plus whatever flags are
given. The file lands at the --config path, so the other commands find
it without further flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(cfgFile); err == nil && !force {
				return fmt.Errorf("%s already exists, pass --force to overwrite", cfgFile)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if baseURL != "" {
				cfg.API.BaseURL = baseURL
			}
			if accountID != "" {
				cfg.API.AccountID = accountID
			}
			if businessID != "" {
				cfg.API.BusinessID = businessID
			}
			if role != "" {
				switch role {
				case model.RoleEmployee, model.RoleBusiness, model.RoleAdmin:
					cfg.Role = role
				default:
					return fmt.Errorf("unknown role %q (one of: %s, %s, %s)",
						role, model.RoleEmployee, model.RoleBusiness, model.RoleAdmin)
				}
			}

			if err := model.SaveConfig(cfgFile, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfgFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "marketplace API base URL")
	cmd.Flags().StringVar(&accountID, "account", "", "marketplace account ID")
	cmd.Flags().StringVar(&businessID, "business", "", "business ID (business accounts)")
	cmd.Flags().StringVar(&role, "role", "", "account role: employee, business, or admin")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
