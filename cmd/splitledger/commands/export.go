package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/export"
	"github.com/mmynk/splitledger/internal/ledger"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an owner's movements as CSV",
	Long: `Write one CSV row per movement (date, kind, category, description,
amount) for the owner with the given email. Reconciliation detail
(lines, payments, allocations) is not included.`,
	Example: `  splitledger export --email me@example.com --output movimientos.csv
  splitledger export --email me@example.com --from 2025-01-01 --to 2025-03-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		email, _ := cmd.Flags().GetString("email")
		output, _ := cmd.Flags().GetString("output")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()
		user, err := store.GetUserByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("no user with email %q", email)
		}

		movements, err := ledger.New(store).ListMovements(ctx, user.ID, from, to)
		if err != nil {
			return err
		}

		writer := &export.CSVWriter{}
		if output == "" || output == "-" {
			return writer.Write(os.Stdout, movements)
		}
		if err := writer.WriteToFile(output, movements); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d movements to %s\n", len(movements), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("email", "", "email of the ledger owner")
	exportCmd.Flags().StringP("output", "o", "-", "output file, - for stdout")
	exportCmd.Flags().String("from", "", "first date to include (YYYY-MM-DD)")
	exportCmd.Flags().String("to", "", "last date to include (YYYY-MM-DD)")
	exportCmd.MarkFlagRequired("email")
}
