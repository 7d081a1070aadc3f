package cli

import (
	"fmt"

	"github.com/avoronov/travelog/internal/client/state"
	"github.com/avoronov/travelog/internal/common"
	"github.com/spf13/cobra"
)

func (a *App) loginCmd() *cobra.Command {
	var role string
	var stay bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			username, err := getSimpleText(a.in, "Enter user name", a.out)
			if err != nil {
				return err
			}

			passphrase, err := getPassword("Enter passphrase", a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(passphrase)

			keyHex, err := a.deriveKeyHex(ctx, username, passphrase)
			if err != nil {
				return err
			}

			challenge, response, err := a.answerChallenge(ctx, username, role, keyHex)
			if err != nil {
				return err
			}

			token, expiresAt, err := a.api.Login(ctx, challenge, response, stay)
			if err != nil {
				return err
			}

			err = state.Save(a.cfg.StateFile, &state.State{
				Token:     token,
				Username:  username,
				Role:      role,
				ExpiresAt: expiresAt,
			})
			if err != nil {
				return fmt.Errorf("error saving session: %w", err)
			}

			fmt.Fprintf(a.out, "Logged in as %s (%s)\n", username, role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "user", "account role")
	cmd.Flags().BoolVar(&stay, "stay", false, "stay signed in across sessions")

	return cmd
}
