package encset

import (
	"log/slog"

	"github.com/hengadev/encset/internal/monitoring"
)

// Option configures a Store.
type Option func(*Store)

// WithTransformer sets the platform byte-transform. The default is Identity.
func WithTransformer(t Transformer) Option {
	return func(s *Store) {
		if t != nil {
			s.transformer = t
		}
	}
}

// WithBackupSink mirrors every backup written by Sync to sink.
func WithBackupSink(sink BackupSink) Option {
	return func(s *Store) {
		s.backup = sink
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = monitoring.FromSlog(l)
	}
}

// WithHook registers an observer for completed store operations.
func WithHook(h monitoring.OperationHook) Option {
	return func(s *Store) {
		if h != nil {
			s.hooks = append(s.hooks, h)
		}
	}
}

// WithSeed overrides FixedSeed. Files written with one seed cannot be read
// with another.
func WithSeed(seed []byte) Option {
	return func(s *Store) {
		s.seed = append([]byte(nil), seed...)
	}
}
