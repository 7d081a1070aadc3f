package cli

import (
	"errors"
	"fmt"

	"github.com/avoronov/travelog/internal/client/state"
	"github.com/avoronov/travelog/internal/common"
	"github.com/spf13/cobra"
)

func (a *App) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the stored session",
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

			info, err := a.api.Session(ctx, s.Token)
			if err != nil {
				if errors.Is(err, common.ErrorUnauthorized) {
					fmt.Fprintln(a.out, "Session is no longer valid; log in again.")
					return nil
				}
				return err
			}

			fmt.Fprintf(a.out, "%s (%s)\n", info.Username, info.Role)
			return nil
		},
	}
}
