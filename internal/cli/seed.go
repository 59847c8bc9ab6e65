package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"austender/internal/config"
	"austender/internal/db"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the contracts table and load sample rows into a development database",
		Long: `Apply the bundled contracts schema and insert a handful of sample contracts
when the table is empty. Intended for local development only; the server never
modifies the database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if !cfg.IsDev() {
				return fmt.Errorf("refusing to seed: ENV is %q, not development", cfg.Env)
			}

			ctx := cmd.Context()
			database, err := db.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
				return err
			}

			n, err := database.SeedDevContracts(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if n == 0 {
				fmt.Fprintf(out, "%s contracts table already has data\n", color.New(color.FgYellow).Sprint("SKIP"))
				return nil
			}
			fmt.Fprintf(out, "%s inserted %d sample contracts\n", color.New(color.FgGreen).Sprint("OK"), n)
			return nil
		},
	}
}
