package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"austender/internal/cli"
)

func main() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "spendctl",
		Short: "Offline tools for the contract spending dashboard",
		Long: `spendctl works directly against the contracts database.
It renders ad-hoc charts and prepares development data; it is not part of the
served dashboard.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.TreemapCmd())
	rootCmd.AddCommand(cli.SeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
