package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBenchDefaults(t *testing.T) {
	cfg, err := LoadBench()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Runs)
	assert.Equal(t, 1024*1024, cfg.TestSize())
	assert.Equal(t, 10, cfg.Concurrency)
	assert.Equal(t, 2, cfg.Retries)
	assert.Equal(t, 100*time.Millisecond, cfg.Backoff)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, []string{"lcg", "math", "system", "hmac"}, cfg.Generators)
	assert.Equal(t, 10, cfg.SampleRuns)
}

func TestLoadBenchFromEnv(t *testing.T) {
	t.Setenv("PRNG_RUNS", "5")
	t.Setenv("PRNG_TEST_SIZE_MB", "2")
	t.Setenv("PRNG_GENERATORS", "lcg,system")
	t.Setenv("PRNG_DB", "runs.db")

	cfg, err := LoadBench()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Runs)
	assert.Equal(t, 2*1024*1024, cfg.TestSize())
	assert.Equal(t, []string{"lcg", "system"}, cfg.Generators)
	assert.Equal(t, "runs.db", cfg.DBPath)
}

func TestLoadBenchRejectsBadValues(t *testing.T) {
	t.Setenv("PRNG_RUNS", "zero")
	_, err := LoadBench()
	require.Error(t, err)

	t.Setenv("PRNG_RUNS", "0")
	_, err = LoadBench()
	require.ErrorContains(t, err, "runs must be positive")
}

func TestValidateJoinsErrors(t *testing.T) {
	err := Bench{}.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "runs")
	assert.ErrorContains(t, err, "test size")
	assert.ErrorContains(t, err, "concurrency")
	assert.ErrorContains(t, err, "generator")
}
