package monitoring

import (
	"context"
	"sync"
	"time"
)

// OperationHook observes completed store operations.
type OperationHook interface {
	OnOperation(ctx context.Context, operation string, duration time.Duration, err error)
}

// NoOpHook ignores every operation.
type NoOpHook struct{}

func (NoOpHook) OnOperation(context.Context, string, time.Duration, error) {}

// LoggingHook forwards operations to a Logger.
type LoggingHook struct {
	logger *Logger
}

func NewLoggingHook(logger *Logger) *LoggingHook {
	if logger == nil {
		logger = Discard()
	}
	return &LoggingHook{logger: logger}
}

func (h *LoggingHook) OnOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	h.logger.LogOperation(ctx, operation, duration, err, nil)
}

// OperationStats is a snapshot of CountingHook totals for one operation.
type OperationStats struct {
	Count    int64
	Errors   int64
	Duration time.Duration
}

// CountingHook keeps per-operation counters in memory.
type CountingHook struct {
	mu    sync.Mutex
	stats map[string]OperationStats
}

func NewCountingHook() *CountingHook {
	return &CountingHook{stats: make(map[string]OperationStats)}
}

func (h *CountingHook) OnOperation(_ context.Context, operation string, duration time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.stats[operation]
	s.Count++
	s.Duration += duration
	if err != nil {
		s.Errors++
	}
	h.stats[operation] = s
}

// Stats returns a copy of the counters.
func (h *CountingHook) Stats() map[string]OperationStats {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[string]OperationStats, len(h.stats))
	for k, v := range h.stats {
		out[k] = v
	}
	return out
}

// MultiHook fans an operation out to several hooks.
type MultiHook []OperationHook

func (m MultiHook) OnOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	for _, h := range m {
		h.OnOperation(ctx, operation, duration, err)
	}
}
