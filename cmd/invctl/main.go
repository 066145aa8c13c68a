// Command invctl is the operator CLI for the inventory backend.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lyb5737-lyb77/inventory-management/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// errDrift makes reconcile exit non-zero without printing a usage error.
var errDrift = errors.New("ledger drift detected")

var rootCmd = &cobra.Command{
	Use:   "invctl",
	Short: "Operator tools for the inventory backend",
	Long: `invctl reads the same environment / .env configuration as the server.

Available subcommands:
  reconcile - compare stored item quantities with their ledger
  token     - mint a signed access token for local testing`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var cfg *config.Config

func init() {
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		var err error
		cfg, err = config.Load()
		return err
	}
	rootCmd.AddCommand(reconcileCmd, tokenCmd)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDrift) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
