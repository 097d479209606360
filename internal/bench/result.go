package bench

import (
	"sort"
	"time"

	"seededrand/internal/analysis"
)

// TestResult holds individual test results
type TestResult struct {
	Name       string
	TestRun    int
	Duration   time.Duration
	Throughput float64
	Analysis   analysis.Analysis
	Filename   string
	Error      error
}

// AggregatedResult holds aggregated test results
type AggregatedResult struct {
	Name               string
	TotalTests         int
	SuccessfulTests    int
	FailedTests        int
	AvgDuration        time.Duration
	MinDuration        time.Duration
	MaxDuration        time.Duration
	AvgThroughput      float64
	MinThroughput      float64
	MaxThroughput      float64
	AvgAnalysis        analysis.Analysis
	TotalDataGenerated int64
}

// SuccessRate is the percentage of runs that completed without error.
func (a AggregatedResult) SuccessRate() float64 {
	if a.TotalTests == 0 {
		return 0
	}
	return float64(a.SuccessfulTests) / float64(a.TotalTests) * 100
}

// Aggregate folds results into per-generator statistics. Failed runs
// count toward totals but not toward averages or extremes.
func Aggregate(results []TestResult) map[string]AggregatedResult {
	aggregated := make(map[string]AggregatedResult)
	sums := make(map[string]*analysisSum)

	for _, result := range results {
		name := result.Name
		agg, exists := aggregated[name]
		if !exists {
			agg = AggregatedResult{Name: name}
			sums[name] = &analysisSum{}
		}

		agg.TotalTests++
		if result.Error != nil {
			agg.FailedTests++
			aggregated[name] = agg
			continue
		}

		if agg.SuccessfulTests == 0 {
			agg.MinDuration, agg.MaxDuration = result.Duration, result.Duration
			agg.MinThroughput, agg.MaxThroughput = result.Throughput, result.Throughput
		}
		agg.SuccessfulTests++
		agg.TotalDataGenerated += int64(result.Analysis.Length)
		agg.MinDuration = min(agg.MinDuration, result.Duration)
		agg.MaxDuration = max(agg.MaxDuration, result.Duration)
		agg.MinThroughput = min(agg.MinThroughput, result.Throughput)
		agg.MaxThroughput = max(agg.MaxThroughput, result.Throughput)

		sums[name].add(result)
		aggregated[name] = agg
	}

	for name, agg := range aggregated {
		if agg.SuccessfulTests > 0 {
			sums[name].averageInto(&agg)
		}
		aggregated[name] = agg
	}

	return aggregated
}

// SortedNames returns the keys of aggregated in order.
func SortedNames(aggregated map[string]AggregatedResult) []string {
	names := make([]string, 0, len(aggregated))
	for name := range aggregated {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type analysisSum struct {
	count      int
	duration   time.Duration
	throughput float64
	analysis   analysis.Analysis
}

func (s *analysisSum) add(r TestResult) {
	s.count++
	s.duration += r.Duration
	s.throughput += r.Throughput
	s.analysis.Length += r.Analysis.Length
	s.analysis.Mean += r.Analysis.Mean
	s.analysis.ChiSquare += r.Analysis.ChiSquare
	s.analysis.ChiSquarePValue += r.Analysis.ChiSquarePValue
	s.analysis.MinFreq += r.Analysis.MinFreq
	s.analysis.MaxFreq += r.Analysis.MaxFreq
	s.analysis.FreqRange += r.Analysis.FreqRange
	s.analysis.ShannonEntropy += r.Analysis.ShannonEntropy
	s.analysis.Autocorrelation += r.Analysis.Autocorrelation
}

func (s *analysisSum) averageInto(agg *AggregatedResult) {
	n := float64(s.count)
	agg.AvgDuration = s.duration / time.Duration(s.count)
	agg.AvgThroughput = s.throughput / n
	agg.AvgAnalysis = analysis.Analysis{
		Length:          s.analysis.Length / s.count,
		Mean:            s.analysis.Mean / n,
		ChiSquare:       s.analysis.ChiSquare / n,
		ChiSquarePValue: s.analysis.ChiSquarePValue / n,
		MinFreq:         s.analysis.MinFreq / s.count,
		MaxFreq:         s.analysis.MaxFreq / s.count,
		FreqRange:       s.analysis.FreqRange / s.count,
		ShannonEntropy:  s.analysis.ShannonEntropy / n,
		Autocorrelation: s.analysis.Autocorrelation / n,
	}
}
