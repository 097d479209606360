package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seededrand/internal/bench"
	"seededrand/internal/config"
	"seededrand/internal/generator"
	"seededrand/internal/report"
	"seededrand/internal/store"
	"seededrand/lcg"
)

func newBenchCmd() *cobra.Command {
	var (
		runs        int
		sizeMB      int
		concurrency int
		generators  []string
		outDir      string
		dbPath      string
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run every generator repeatedly and report throughput and quality",
		Long: `Runs each selected generator the configured number of times, analyses the
output bytes, and writes detailed and aggregated CSV reports.

Settings come from PRNG_* environment variables; flags override them.
Available generators: ` + strings.Join(generator.Names(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadBench()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("runs") {
				cfg.Runs = runs
			}
			if flags.Changed("size") {
				cfg.TestSizeMB = sizeMB
			}
			if flags.Changed("concurrency") {
				cfg.Concurrency = concurrency
			}
			if flags.Changed("generators") {
				cfg.Generators = generators
			}
			if flags.Changed("out") {
				cfg.OutputDir = outDir
			}
			if flags.Changed("db") {
				cfg.DBPath = dbPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			var src lcg.SeedSource = lcg.DefaultSeedSource
			if flags.Changed("seed") {
				src = lcg.FixedSeedSource(seed)
			}
			return runBench(cmd, cfg, src)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&runs, "runs", 0, "number of runs per generator")
	flags.IntVar(&sizeMB, "size", 0, "bytes per run, in MB")
	flags.IntVar(&concurrency, "concurrency", 0, "maximum concurrent runs")
	flags.StringSliceVar(&generators, "generators", nil, "generators to compare")
	flags.StringVar(&outDir, "out", "", "directory for CSV reports and samples")
	flags.StringVar(&dbPath, "db", "", "SQLite database to record the run in")
	flags.Int64Var(&seed, "seed", 0, "seed for the seeded generators")
	return cmd
}

func runBench(cmd *cobra.Command, cfg config.Bench, src lcg.SeedSource) error {
	ctx := cmd.Context()

	gens, err := generator.NewAll(cfg.Generators, src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	runner := &bench.Runner{
		Generators:  gens,
		TestSize:    cfg.TestSize(),
		Runs:        cfg.Runs,
		Concurrency: cfg.Concurrency,
		Retries:     cfg.Retries,
		Backoff:     cfg.Backoff,
		SampleDir:   cfg.OutputDir,
		SampleRuns:  cfg.SampleRuns,
		SampleSize:  cfg.SampleSize,
		Logger:      logger,
	}

	started := time.Now()
	results, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("bench interrupted after %d runs: %w", len(results), err)
	}
	testDuration := time.Since(started)

	errorCount := 0
	for _, result := range results {
		if result.Error != nil {
			errorCount++
			logger.Debug("run failed", zap.String("generator", result.Name), zap.Int("run", result.TestRun), zap.Error(result.Error))
		}
	}
	if errorCount > 0 {
		logger.Warn("some runs failed", zap.Int("failed", errorCount))
	}

	aggregated := bench.Aggregate(results)

	detailedCSV := filepath.Join(cfg.OutputDir, "detailed_results.csv")
	if err := report.SaveDetailed(detailedCSV, results); err != nil {
		return err
	}
	aggregatedCSV := filepath.Join(cfg.OutputDir, "aggregated_results.csv")
	if err := report.SaveAggregated(aggregatedCSV, aggregated); err != nil {
		return err
	}
	logger.Info("reports written",
		zap.String("detailed", detailedCSV),
		zap.String("aggregated", aggregatedCSV),
		zap.Duration("elapsed", testDuration),
	)

	if cfg.DBPath != "" {
		db, err := store.Open(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		run := store.NewRun(started, cfg.TestSize(), cfg.Runs, cfg.Concurrency, cfg.Generators)
		if err := db.SaveRun(ctx, run, results); err != nil {
			return err
		}
		logger.Info("run recorded", zap.String("run_id", run.ID), zap.String("db", cfg.DBPath))
	}

	printSummary(cmd.OutOrStdout(), gens, aggregated)
	return nil
}

// printSummary writes the final performance table in generator order.
func printSummary(w io.Writer, gens []generator.Generator, aggregated map[string]bench.AggregatedResult) {
	fmt.Fprintf(w, "%-20s %8s %12s %12s %12s %12s %8s %10s\n",
		"Generator", "Success", "Avg MB/s", "Min MB/s", "Max MB/s", "Avg χ²", "Avg p", "Avg H")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, gen := range gens {
		agg, exists := aggregated[gen.Name()]
		if !exists {
			continue
		}
		fmt.Fprintf(w, "%-20s %7.1f%% %12.2f %12.2f %12.2f %12.2f %8.4f %10.3f\n",
			agg.Name,
			agg.SuccessRate(),
			agg.AvgThroughput,
			agg.MinThroughput,
			agg.MaxThroughput,
			agg.AvgAnalysis.ChiSquare,
			agg.AvgAnalysis.ChiSquarePValue,
			agg.AvgAnalysis.ShannonEntropy)
	}
}
