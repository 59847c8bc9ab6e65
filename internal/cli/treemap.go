package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"austender/internal/config"
	"austender/internal/models"
	"austender/internal/report"
)

// TreemapCmd returns the treemap command
func TreemapCmd() *cobra.Command {
	var agency, outPath string

	cmd := &cobra.Command{
		Use:   "treemap",
		Short: "Render a treemap of contract spending by category for one agency",
		Long: `Load the contracts table, keep the rows for one agency, total them by
category and write an interactive HTML treemap sized by spend.

Examples:
  spendctl treemap                                   # Department of Defence
  spendctl treemap --agency "Department of Health"
  spendctl treemap -o defence.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if agency == "" {
				agency = cfg.TreemapAgency
			}

			ctx := cmd.Context()
			db, err := report.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			records, err := report.LoadContracts(ctx, db)
			if err != nil {
				return err
			}

			return writeTreemap(cmd.OutOrStdout(), records, agency, outPath)
		},
	}

	cmd.Flags().StringVarP(&agency, "agency", "a", "", "Agency name to chart (default $TREEMAP_AGENCY or \""+models.DefaultTreemapAgency+"\")")
	cmd.Flags().StringVarP(&outPath, "out", "o", "treemap.html", "Output HTML file")

	return cmd
}

// writeTreemap aggregates records for agency, writes the chart to outPath and
// prints a short summary to w.
func writeTreemap(w io.Writer, records []models.ContractRecord, agency, outPath string) error {
	totals := report.CategoryTotals(records, agency)
	if len(totals) == 0 {
		return fmt.Errorf("no contracts found for agency %q", agency)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	if err := report.RenderTreemap(f, report.TreemapTitle(agency), totals); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	bold := color.New(color.Bold)
	bold.Fprintf(w, "%s\n", agency)
	for _, t := range totals {
		fmt.Fprintf(w, "  %-50s %s\n", t.Category, color.New(color.FgCyan).Sprintf("A$%s", t.Total.StringFixed(2)))
	}
	fmt.Fprintf(w, "  %-50s %s\n", "Total", bold.Sprintf("A$%s", report.Sum(totals).StringFixed(2)))
	fmt.Fprintf(w, "%s %s\n", color.New(color.FgGreen).Sprint("Wrote"), outPath)

	return nil
}
