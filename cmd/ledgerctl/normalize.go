package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/travel-ledger/internal/usecase"
	"github.com/travel-ledger/internal/usecase/dto"
)

// normalizeCmd приводит сохранённые страны к каноническому виду
var normalizeCmd = &cobra.Command{
	Use:   "normalize-countries",
	Short: "Rewrites stored countries to their canonical names.",
	Long:  "Re-normalizes the country of every stored stamp and updates the rows whose canonical value changed. Use --dry-run to only list the changes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		d, err := openDeps(ctx, cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		uc := usecase.NewMaintenanceUseCase(d.stampRepo, d.cacheRepo, d.streamRepo, d.log)
		report, err := uc.NormalizeCountries(ctx, dryRun)
		if err != nil {
			return err
		}

		printNormalizationReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func printNormalizationReport(out io.Writer, report *dto.NormalizationReport) {
	if report.Changed == 0 {
		fmt.Fprintf(out, "Scanned %d stamps, all countries already canonical.\n", report.Scanned)
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "STAMP\tCITY\tFROM\tTO\t")
	for _, c := range report.Changes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", c.StampID, c.City, c.From, c.To)
	}
	w.Flush()

	verb := "Updated"
	if report.DryRun {
		verb = "Would update"
	}
	fmt.Fprintf(out, "\n%s %d of %d stamps.\n", verb, report.Changed, report.Scanned)
}

func init() {
	normalizeCmd.Flags().Bool("dry-run", false, "Only list the changes, do not write them")
	rootCmd.AddCommand(normalizeCmd)
}
