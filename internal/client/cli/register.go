package cli

import (
	"fmt"

	"github.com/avoronov/travelog/internal/common"
	"github.com/spf13/cobra"
)

func (a *App) registerCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
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

			if err := a.api.Register(ctx, username, role, keyHex); err != nil {
				return err
			}

			fmt.Fprintln(a.out, "Account created. You can now log in.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "user", "account role")

	return cmd
}
