package cli

import (
	"errors"
	"fmt"

	"github.com/avoronov/travelog/internal/client/state"
	"github.com/avoronov/travelog/internal/common"
	"github.com/spf13/cobra"
)

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and revoke all sessions for the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := state.Load(a.cfg.StateFile)
			if err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					fmt.Fprintln(a.out, "Not logged in.")
					return nil
				}
				return err
			}

			// revoke server-side first; clear local state even if the token
			// was already stale
			if err := a.api.Logout(ctx, s.Token); err != nil && !errors.Is(err, common.ErrorUnauthorized) {
				return err
			}

			if err := state.Clear(a.cfg.StateFile); err != nil {
				return err
			}

			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}
