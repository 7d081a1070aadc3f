// Package cli implements the travelog command-line client: account signup,
// challenge–response login, logout, password change and session inspection.
package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/avoronov/travelog/internal/client/api"
	"github.com/avoronov/travelog/internal/client/config"
	"github.com/spf13/cobra"
)

// App carries the wiring shared by all commands.
type App struct {
	cfg *config.Config
	api *api.Client
	in  *bufio.Reader
	out io.Writer
}

var (
	flagConfig string
	flagServer string
	flagState  string
	flagKDF    string
)

func NewRootCmd() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:   "travelog",
		Short: "Travelog is a travel diary with challenge-response authentication",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := config.LoadConfig(flagConfig)
			if flagServer != "" {
				cfg.ServerAddr = flagServer
			}
			if flagState != "" {
				cfg.StateFile = flagState
			}
			if flagKDF != "" {
				cfg.KDF = flagKDF
			}

			app.cfg = cfg
			app.api = api.NewClient(cfg.ServerAddr, cfg.SessionCookieName, cfg.RequestTimeout)
			app.in = bufio.NewReader(os.Stdin)
			app.out = os.Stdout
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to JSON config file")
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "a", "", "base URL of the travelog server")
	rootCmd.PersistentFlags().StringVar(&flagState, "state", "", "path to the session state file")
	rootCmd.PersistentFlags().StringVar(&flagKDF, "kdf", "", "key derivation function: sha256 or argon2id")

	rootCmd.AddCommand(app.registerCmd())
	rootCmd.AddCommand(app.loginCmd())
	rootCmd.AddCommand(app.logoutCmd())
	rootCmd.AddCommand(app.passwdCmd())
	rootCmd.AddCommand(app.whoamiCmd())

	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
