package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lyb5737-lyb77/inventory-management/internal/infra"
	"github.com/lyb5737-lyb77/inventory-management/internal/repository"
	"github.com/lyb5737-lyb77/inventory-management/internal/service"

	"github.com/spf13/cobra"
)

var reconcileJSON bool

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Report items whose quantity differs from their transactions",
	Long: `Replays every item's IN/OUT transactions and lists the items whose stored
quantity differs. Nothing is written. Exits with status 1 when drift is found.`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&reconcileJSON, "json", false, "print the report as JSON")
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	ledger := service.NewLedgerService(
		repository.NewItemRepository(db),
		repository.NewTransactionRepository(db),
		cfg.DefaultWarehouse,
	)

	rep, err := ledger.Reconcile(cmd.Context())
	if err != nil {
		return err
	}

	if reconcileJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		fmt.Printf("checked %d items, %d drifting\n", rep.Checked, len(rep.Drift))
		if len(rep.Drift) > 0 {
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ITEM\tNAME\tSTORED\tRECOMPUTED")
			for _, d := range rep.Drift {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", d.ItemID, d.ItemName, d.Stored, d.Recomputed)
			}
			tw.Flush()
		}
	}

	if len(rep.Drift) > 0 {
		return errDrift
	}
	return nil
}
