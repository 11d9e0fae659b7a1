package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Menuscore/internal/dataset"
	"github.com/MikeSquared-Agency/Menuscore/internal/nutrition"
	"github.com/MikeSquared-Agency/Menuscore/internal/scoring"
)

type rankOptions struct {
	restaurant  string
	minCalories float64
	maxCalories float64
	items       bool
	workers     int
}

func newRankCommand() *cobra.Command {
	var opts rankOptions

	cmd := &cobra.Command{
		Use:   "rank <menu.csv>",
		Short: "Rank the restaurants in a CSV file",
		Long: `Rank the restaurants in a CSV file and print the table.

The file needs a header naming restaurant, item, calories and the nine
nutrient columns. Exits with status 2 when a required column is missing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := dataset.Filter{Restaurant: opts.restaurant}
			if cmd.Flags().Changed("min-calories") {
				filter.MinCalories = &opts.minCalories
			}
			if cmd.Flags().Changed("max-calories") {
				filter.MaxCalories = &opts.maxCalories
			}
			return runRank(cmd, args[0], filter, opts)
		},
	}

	cmd.Flags().StringVar(&opts.restaurant, "restaurant", "", "Only rank this restaurant")
	cmd.Flags().Float64Var(&opts.minCalories, "min-calories", 0, "Drop items below this many calories")
	cmd.Flags().Float64Var(&opts.maxCalories, "max-calories", 0, "Drop items above this many calories")
	cmd.Flags().BoolVar(&opts.items, "items", false, "Print per-item scores under each restaurant")
	cmd.Flags().IntVar(&opts.workers, "workers", 4, "Restaurants scored concurrently")

	return cmd
}

func runRank(cmd *cobra.Command, path string, filter dataset.Filter, opts rankOptions) error {
	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer fh.Close() //nolint:errcheck

	records, err := nutrition.ParseReader(fh)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	analyzer := scoring.NewAnalyzer(opts.workers, slog.Default())
	res, err := analyzer.Analyze(cmd.Context(), filter.Apply(records))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res == nil {
		fmt.Fprintln(out, "Nothing to rank: no items with positive calories.")
		return nil
	}
	printRanking(out, res, opts.items)
	return nil
}

func printRanking(w io.Writer, res *scoring.AnalysisResult, items bool) {
	width := len("Restaurant")
	for _, r := range res.Restaurants {
		if len(r.Restaurant) > width {
			width = len(r.Restaurant)
		}
	}

	fmt.Fprintf(w, "Calories %.0f - %.0f\n\n", res.MinCalories, res.MaxCalories)
	fmt.Fprintf(w, "%4s  %-*s  %6s  %12s\n", "Rank", width, "Restaurant", "Items", "Score")
	fmt.Fprintln(w, strings.Repeat("-", 4+2+width+2+6+2+12))
	for i, r := range res.Restaurants {
		fmt.Fprintf(w, "%4d  %-*s  %6d  %12.4f\n", i+1, width, r.Restaurant, r.ItemCount, r.Score)
		if !items {
			continue
		}
		for _, it := range r.Items {
			fmt.Fprintf(w, "        %-40s %7.0f kcal  raw %10.4f  penalized %10.4f\n",
				it.Record.Item, it.Record.Calories, it.RawScore, it.PenalizedScore)
		}
	}
}
