package cli

import (
	"fmt"

	"github.com/avoronov/travelog/internal/common"
	"github.com/spf13/cobra"
)

func (a *App) passwdCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the account passphrase",
		Long: `Change the account passphrase. Identity is proven by answering a
challenge with the old key; the change revokes every active session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			username, err := getSimpleText(a.in, "Enter user name", a.out)
			if err != nil {
				return err
			}

			oldPassphrase, err := getPassword("Enter current passphrase", a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(oldPassphrase)

			newPassphrase, err := getPassword("Enter new passphrase", a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(newPassphrase)

			oldKeyHex, err := a.deriveKeyHex(ctx, username, oldPassphrase)
			if err != nil {
				return err
			}
			newKeyHex, err := a.deriveKeyHex(ctx, username, newPassphrase)
			if err != nil {
				return err
			}

			challenge, response, err := a.answerChallenge(ctx, username, role, oldKeyHex)
			if err != nil {
				return err
			}

			if err := a.api.ChangePassword(ctx, challenge, response, newKeyHex); err != nil {
				return err
			}

			fmt.Fprintln(a.out, "Passphrase changed. All sessions have been revoked; log in again.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "user", "account role")

	return cmd
}
