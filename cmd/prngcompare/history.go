package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"seededrand/internal/bench"
	"seededrand/internal/store"
)

func newHistoryCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
		runID  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded bench runs, or summarise one with --run",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := store.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			if runID != "" {
				results, err := db.Results(ctx, runID)
				if err != nil {
					return err
				}
				aggregated := bench.Aggregate(results)
				for _, name := range bench.SortedNames(aggregated) {
					agg := aggregated[name]
					fmt.Fprintf(out, "%-20s %3d/%-3d %10.2f MB/s  χ² %8.2f  H %.3f\n",
						name, agg.SuccessfulTests, agg.TotalTests, agg.AvgThroughput,
						agg.AvgAnalysis.ChiSquare, agg.AvgAnalysis.ShannonEntropy)
				}
				return nil
			}

			runs, err := db.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			for _, run := range runs {
				fmt.Fprintf(out, "%s  %s  %d x %d B  %s\n",
					run.ID, run.StartedAt.Format(time.RFC3339), run.Runs, run.TestSize,
					strings.Join(run.Generators, ","))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dbPath, "db", "prngcompare.db", "SQLite database written by bench --db")
	flags.IntVar(&limit, "limit", 20, "maximum runs to list")
	flags.StringVar(&runID, "run", "", "run id to summarise")
	return cmd
}
