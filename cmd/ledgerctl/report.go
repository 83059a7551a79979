package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/usecase"
)

// reportCmd печатает сводку журнала
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Prints the ledger summary.",
	Long:  "Recomputes the ledger summary from the store, refreshes the cache and prints stats, rank and the share text.",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		d, err := openDeps(ctx, cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		uc := usecase.NewLedgerUseCase(d.stampRepo, d.cacheRepo, d.log, d.cfg.Cache.LedgerSummaryTTL)
		summary, err := uc.Refresh(ctx)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}

		printSummary(cmd.OutOrStdout(), summary)
		return nil
	},
}

func printSummary(out io.Writer, summary *domain.LedgerSummary) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Stamps\t%d\t\n", summary.TotalStamps)
	fmt.Fprintf(w, "Cities\t%d\t\n", summary.UniqueCities)
	fmt.Fprintf(w, "Countries\t%d\t\n", summary.UniqueCountries)
	fmt.Fprintf(w, "Distance\t%d km\t\n", summary.TotalKm)
	fmt.Fprintf(w, "Rank\t%s %s (%s)\t\n", summary.Rank.Current.Level, summary.Rank.Current.Name, summary.Rank.Current.Numeral)
	if summary.Rank.Next != nil {
		fmt.Fprintf(w, "Next rank\t%s in %d stamps\t\n", summary.Rank.Next.Name, summary.Rank.Remaining)
	}
	w.Flush()

	if len(summary.Categories) > 0 {
		fmt.Fprintln(out)
		cw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(cw, "CATEGORY\tCOUNT\tSHARE\t")
		for _, c := range summary.Categories {
			fmt.Fprintf(cw, "%s\t%d\t%.1f%%\t\n", c.Label, c.Count, c.Percentage)
		}
		cw.Flush()
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, summary.ShareText)
}

func init() {
	reportCmd.Flags().Bool("json", false, "Print the summary as JSON")
	rootCmd.AddCommand(reportCmd)
}
