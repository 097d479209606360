package bench

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ProgressTracker tracks test progress
type ProgressTracker struct {
	completed atomic.Int64
	total     int64
	interval  time.Duration
	logger    *zap.Logger

	mu        sync.Mutex
	lastPrint time.Time
	now       func() time.Time
}

// NewProgressTracker logs at most once per interval.
func NewProgressTracker(total int64, interval time.Duration, logger *zap.Logger) *ProgressTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressTracker{
		total:     total,
		interval:  interval,
		logger:    logger,
		lastPrint: time.Now(),
		now:       time.Now,
	}
}

// Completed returns the number of finished runs.
func (pt *ProgressTracker) Completed() int64 {
	return pt.completed.Load()
}

func (pt *ProgressTracker) increment() {
	completed := pt.completed.Add(1)

	pt.mu.Lock()
	defer pt.mu.Unlock()

	now := pt.now()
	if now.Sub(pt.lastPrint) <= pt.interval && completed != pt.total {
		return
	}
	pt.lastPrint = now

	percentage := float64(completed) / float64(pt.total) * 100
	pt.logger.Info("progress",
		zap.Int64("completed", completed),
		zap.Int64("total", pt.total),
		zap.Float64("percent", percentage),
	)
}
