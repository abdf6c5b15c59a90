package cli

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
	"github.com/spf13/cobra"

	"github.com/shiftdesk/shiftdesk/internal/credential"
	"github.com/shiftdesk/shiftdesk/internal/source/marketplace"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored marketplace API token",
	}
	cmd.AddCommand(newTokenSetCmd(), newTokenClearCmd())
	return cmd
}

func newTokenSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <token>",
		Short: "Store the API token in the system keyring",
		Long: `Set checks the token against the marketplace (when a base URL is
configured) and stores it in the system keyring. The daemon and the
one-shot commands pick it up on their next start.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.API.BaseURL != "" {
				client := marketplace.NewClient(cfg.API.BaseURL, token)
				name, err := client.ValidateConnection(cmd.Context())
				if err != nil {
					return fmt.Errorf("token check against %s failed: %w", cfg.API.BaseURL, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "authenticated as %s\n", name)
			}

			if err := credential.Set(credential.TokenKey, token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "token stored")
			return nil
		},
	}
}

func newTokenClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := credential.Delete(credential.TokenKey)
			if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "token cleared")
			return nil
		},
	}
}
