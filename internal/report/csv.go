// Package report writes benchmark results as CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"seededrand/internal/bench"
)

var detailedHeader = []string{
	"Generator", "TestRun", "Duration_ms", "Throughput_MBps",
	"Mean", "ChiSquare", "ChiSquarePValue", "MinFreq", "MaxFreq", "FreqRange",
	"ShannonEntropy", "Autocorrelation",
	"DataLength", "SampleFile", "Error",
}

var aggregatedHeader = []string{
	"Generator", "TotalTests", "SuccessfulTests", "FailedTests",
	"AvgDuration_ms", "MinDuration_ms", "MaxDuration_ms",
	"AvgThroughput_MBps", "MinThroughput_MBps", "MaxThroughput_MBps",
	"AvgMean", "AvgChiSquare", "AvgChiSquarePValue", "AvgFreqRange",
	"AvgShannonEntropy", "AvgAutocorrelation",
	"TotalDataGenerated_MB",
}

func millis(d time.Duration) string {
	return strconv.FormatFloat(float64(d.Nanoseconds())/1000000, 'f', 2, 64)
}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// WriteDetailed writes one row per run.
func WriteDetailed(w io.Writer, results []bench.TestResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(detailedHeader); err != nil {
		return err
	}

	for _, result := range results {
		errorStr := ""
		if result.Error != nil {
			errorStr = result.Error.Error()
		}

		a := result.Analysis
		record := []string{
			result.Name,
			strconv.Itoa(result.TestRun),
			millis(result.Duration),
			fixed(result.Throughput, 2),
			fixed(a.Mean, 2),
			fixed(a.ChiSquare, 2),
			fixed(a.ChiSquarePValue, 4),
			strconv.Itoa(a.MinFreq),
			strconv.Itoa(a.MaxFreq),
			strconv.Itoa(a.FreqRange),
			fixed(a.ShannonEntropy, 4),
			fixed(a.Autocorrelation, 6),
			strconv.Itoa(a.Length),
			result.Filename,
			errorStr,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteAggregated writes one row per generator, sorted by name.
func WriteAggregated(w io.Writer, aggregated map[string]bench.AggregatedResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(aggregatedHeader); err != nil {
		return err
	}

	for _, name := range bench.SortedNames(aggregated) {
		agg := aggregated[name]
		record := []string{
			agg.Name,
			strconv.Itoa(agg.TotalTests),
			strconv.Itoa(agg.SuccessfulTests),
			strconv.Itoa(agg.FailedTests),
			millis(agg.AvgDuration),
			millis(agg.MinDuration),
			millis(agg.MaxDuration),
			fixed(agg.AvgThroughput, 2),
			fixed(agg.MinThroughput, 2),
			fixed(agg.MaxThroughput, 2),
			fixed(agg.AvgAnalysis.Mean, 2),
			fixed(agg.AvgAnalysis.ChiSquare, 2),
			fixed(agg.AvgAnalysis.ChiSquarePValue, 4),
			strconv.Itoa(agg.AvgAnalysis.FreqRange),
			fixed(agg.AvgAnalysis.ShannonEntropy, 4),
			fixed(agg.AvgAnalysis.Autocorrelation, 6),
			fixed(float64(agg.TotalDataGenerated)/(1024*1024), 2),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveDetailed writes WriteDetailed output to filename.
func SaveDetailed(filename string, results []bench.TestResult) error {
	return saveFile(filename, func(w io.Writer) error { return WriteDetailed(w, results) })
}

// SaveAggregated writes WriteAggregated output to filename.
func SaveAggregated(filename string, aggregated map[string]bench.AggregatedResult) error {
	return saveFile(filename, func(w io.Writer) error { return WriteAggregated(w, aggregated) })
}

func saveFile(filename string, write func(io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}

	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return file.Close()
}
