// Package config loads harness settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Bench configures a comparison run.
type Bench struct {
	Runs        int           `env:"PRNG_RUNS" envDefault:"1000"`
	TestSizeMB  int           `env:"PRNG_TEST_SIZE_MB" envDefault:"1"`
	Concurrency int           `env:"PRNG_CONCURRENCY" envDefault:"10"`
	Retries     int           `env:"PRNG_RETRIES" envDefault:"2"`
	Backoff     time.Duration `env:"PRNG_BACKOFF" envDefault:"100ms"`
	OutputDir   string        `env:"PRNG_OUTPUT_DIR" envDefault:"output"`
	DBPath      string        `env:"PRNG_DB"`
	Generators  []string      `env:"PRNG_GENERATORS" envSeparator:"," envDefault:"lcg,math,system,hmac"`
	SampleRuns  int           `env:"PRNG_SAMPLE_RUNS" envDefault:"10"`
	SampleSize  int           `env:"PRNG_SAMPLE_SIZE" envDefault:"10000"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadBench parses Bench from the environment and validates it.
func LoadBench() (Bench, error) {
	var cfg Bench
	if err := ParseEnv(&cfg); err != nil {
		return Bench{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Bench{}, err
	}
	return cfg, nil
}

// TestSize returns the per-run byte count.
func (b Bench) TestSize() int {
	return b.TestSizeMB * 1024 * 1024
}

// Validate rejects settings the runner cannot execute.
func (b Bench) Validate() error {
	var errs []error
	if b.Runs <= 0 {
		errs = append(errs, fmt.Errorf("runs must be positive, got %d", b.Runs))
	}
	if b.TestSizeMB <= 0 {
		errs = append(errs, fmt.Errorf("test size must be positive, got %d MB", b.TestSizeMB))
	}
	if b.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("concurrency must be positive, got %d", b.Concurrency))
	}
	if b.Retries < 0 {
		errs = append(errs, fmt.Errorf("retries must not be negative, got %d", b.Retries))
	}
	if len(b.Generators) == 0 {
		errs = append(errs, errors.New("at least one generator is required"))
	}
	return errors.Join(errs...)
}
