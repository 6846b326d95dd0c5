package encset

import (
	"log/slog"

	"github.com/hengadev/encset/internal/monitoring"
)

// OperationHook observes completed store operations. Operation names are
// the Store method names in snake case ("set_value", "sync", ...).
type OperationHook = monitoring.OperationHook

// CountingHook keeps per-operation counters in memory.
type CountingHook = monitoring.CountingHook

// OperationStats is a snapshot of CountingHook totals for one operation.
type OperationStats = monitoring.OperationStats

// NewCountingHook returns an empty CountingHook.
func NewCountingHook() *CountingHook {
	return monitoring.NewCountingHook()
}

// NewLoggingHook returns a hook that logs every operation through l at
// debug level, and failures at error level. A nil l discards.
func NewLoggingHook(l *slog.Logger) OperationHook {
	return monitoring.NewLoggingHook(monitoring.FromSlog(l))
}
