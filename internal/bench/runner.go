// Package bench runs generators side by side and measures throughput and
// output quality.
package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"seededrand/internal/analysis"
	"seededrand/internal/generator"
)

// Runner executes Runs runs of TestSize bytes for every generator.
type Runner struct {
	Generators  []generator.Generator
	TestSize    int
	Runs        int
	Concurrency int
	Retries     int
	Backoff     time.Duration

	// SampleDir receives binary samples of the first SampleRuns runs of each
	// generator. Empty disables samples.
	SampleDir  string
	SampleRuns int
	SampleSize int

	ProgressInterval time.Duration
	Logger           *zap.Logger
}

// Run executes every run and returns the results in completion order.
// Per-run failures are recorded in TestResult.Error; Run itself fails only
// when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) ([]TestResult, error) {
	logger := r.logger()

	total := int64(r.Runs * len(r.Generators))
	interval := r.ProgressInterval
	if interval == 0 {
		interval = 5 * time.Second
	}
	tracker := NewProgressTracker(total, interval, logger)

	logger.Info("starting test runs",
		zap.Int64("total", total),
		zap.Int("test_size", r.TestSize),
		zap.Int("concurrency", r.Concurrency),
	)

	var (
		mu      sync.Mutex
		results = make([]TestResult, 0, total)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Concurrency, 1))

schedule:
	for _, gen := range r.Generators {
		for run := 1; run <= r.Runs; run++ {
			if gctx.Err() != nil {
				break schedule
			}

			gen, run := gen, run // per-iteration copies for go1.21 loop semantics
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				result := r.runSingleTest(gctx, gen, run)

				mu.Lock()
				results = append(results, result)
				mu.Unlock()

				tracker.increment()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// performanceTest tests generator performance
func performanceTest(gen generator.Generator, testSize int) ([]byte, time.Duration, float64, error) {
	start := time.Now()
	data, err := gen.GenerateBytes(testSize)
	if err != nil {
		return nil, 0, 0, err
	}
	duration := time.Since(start)

	// Ensure minimum measurable duration
	if duration < time.Microsecond {
		duration = time.Microsecond
	}

	throughputMBs := float64(testSize) / duration.Seconds() / (1024 * 1024)
	return data, duration, throughputMBs, nil
}

// runSingleTest runs a single test for a generator with retries
func (r *Runner) runSingleTest(ctx context.Context, gen generator.Generator, testRun int) (result TestResult) {
	result = TestResult{Name: gen.Name(), TestRun: testRun}

	var data []byte
	defer func() {
		if p := recover(); p != nil {
			result.Error = fmt.Errorf("panic occurred: %v", p)
		}
		if result.Error == nil {
			result.Analysis = analysis.Analyze(data)
		}
	}()

	var err error
	for attempt := 0; attempt <= r.Retries; attempt++ {
		data, result.Duration, result.Throughput, err = performanceTest(gen, r.TestSize)
		if err == nil {
			break
		}

		if attempt < r.Retries {
			select {
			case <-ctx.Done():
				result.Error = ctx.Err()
				return result
			case <-time.After(time.Duration(attempt+1) * r.Backoff):
			}
		}
	}
	if err != nil {
		result.Error = fmt.Errorf("%s run %d: %w", gen.Name(), testRun, err)
		return result
	}

	if r.SampleDir != "" && testRun <= r.SampleRuns {
		filename := SampleFilename(r.SampleDir, gen.Name(), testRun)
		if err := SaveSample(data, filename, r.SampleSize); err != nil {
			r.logger().Warn("save sample", zap.String("file", filename), zap.Error(err))
		} else {
			result.Filename = filename
		}
	}
	return result
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// SampleFilename names the sample file for one run of a generator.
func SampleFilename(dir, name string, testRun int) string {
	base := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	return filepath.Join(dir, fmt.Sprintf("%s_sample_run%d.bin", base, testRun))
}

// SaveSample writes the first sampleSize bytes of data to filename.
func SaveSample(data []byte, filename string, sampleSize int) error {
	if sampleSize <= 0 || len(data) < sampleSize {
		sampleSize = len(data)
	}
	return os.WriteFile(filename, data[:sampleSize], 0644)
}
