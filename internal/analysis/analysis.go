// Package analysis computes byte-stream quality statistics.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxAutocorrelationSample caps the bytes inspected by the lag-1 check.
const MaxAutocorrelationSample = 50000

// Analysis holds statistical analysis results
type Analysis struct {
	Length          int
	Mean            float64
	ChiSquare       float64
	ChiSquarePValue float64
	MinFreq         int
	MaxFreq         int
	FreqRange       int
	ShannonEntropy  float64
	Autocorrelation float64
}

var byteValues = func() []float64 {
	v := make([]float64, 256)
	for i := range v {
		v[i] = float64(i)
	}
	return v
}()

// Analyze performs the frequency, entropy and serial-correlation checks.
func Analyze(data []byte) Analysis {
	if len(data) == 0 {
		return Analysis{}
	}

	var byteCounts [256]int
	for _, b := range data {
		byteCounts[b]++
	}

	observed := make([]float64, 256)
	expected := make([]float64, 256)
	probs := make([]float64, 256)
	expectedFreq := float64(len(data)) / 256.0

	minFreq, maxFreq := byteCounts[0], byteCounts[0]
	for i, count := range byteCounts {
		observed[i] = float64(count)
		expected[i] = expectedFreq
		probs[i] = float64(count) / float64(len(data))
		minFreq = min(minFreq, count)
		maxFreq = max(maxFreq, count)
	}

	chiSquare := stat.ChiSquare(observed, expected)
	dist := distuv.ChiSquared{K: 255}

	return Analysis{
		Length:          len(data),
		Mean:            stat.Mean(byteValues, observed),
		ChiSquare:       chiSquare,
		ChiSquarePValue: dist.Survival(chiSquare),
		MinFreq:         minFreq,
		MaxFreq:         maxFreq,
		FreqRange:       maxFreq - minFreq,
		ShannonEntropy:  stat.Entropy(probs) / math.Ln2,
		Autocorrelation: autocorrelation(data),
	}
}

// autocorrelation is the lag-1 ratio of equal neighbouring bytes.
func autocorrelation(data []byte) float64 {
	sampleSize := min(len(data), MaxAutocorrelationSample)
	if sampleSize < 2 {
		return 0
	}

	matches := 0
	for i := 1; i < sampleSize; i++ {
		if data[i] == data[i-1] {
			matches++
		}
	}
	return float64(matches) / float64(sampleSize-1)
}
