package encset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hengadev/encset/internal/encseterr"
	"github.com/hengadev/encset/internal/monitoring"
	"github.com/hengadev/encset/internal/obfuscate"
)

// Store is an obfuscated view over a hierarchical Backend.
//
// A Store is not safe for concurrent use.
type Store struct {
	backend     Backend
	codec       *obfuscate.Codec
	transformer Transformer
	backup      BackupSink
	logger      *monitoring.Logger
	hooks       monitoring.MultiHook
	seed        []byte

	// path holds the persisted identifiers of the entered groups.
	path []string
}

// New creates a Store over backend, deriving the store secret from the
// FixedSeed and the key returned by keys.
//
// Backend open failures are reported by the backend constructor; New only
// fails when the key material cannot be obtained.
//
// Example:
//
//	backend, err := ini.Open(path)
//	if err != nil {
//	    return err
//	}
//	store, err := encset.New(ctx, backend, machine.New(),
//	    encset.WithTransformer(sealedTransformer),
//	)
func New(ctx context.Context, backend Backend, keys KeyProvider, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend is required", ErrInvalidConfiguration)
	}
	if keys == nil {
		return nil, fmt.Errorf("%w: key provider is required", ErrInvalidConfiguration)
	}

	s := &Store{
		backend:     backend,
		transformer: Identity,
		logger:      monitoring.Discard(),
		seed:        []byte(FixedSeed),
	}
	for _, opt := range opts {
		opt(s)
	}

	localKey, err := keys.LocalStorageKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}
	s.codec = obfuscate.NewCodec(obfuscate.DeriveSecret(s.seed, localKey), s.transformer)

	s.logger.Debug("settings store opened", "file", backend.FileName())
	return s, nil
}

// SetValue stores value under key in the current group. The write is durable
// only after Sync.
func (s *Store) SetValue(ctx context.Context, key, value string) (err error) {
	defer s.observe(ctx, "set_value", time.Now(), &err)

	group := s.Group()
	encoded, err := s.codec.Encode(ctx, key, group, value)
	if err != nil {
		return err
	}
	if err := s.backend.Set(s.path, s.codec.Hash(key, group), encoded); err != nil {
		return encseterr.NewBackendError(encseterr.Encode, err)
	}
	return nil
}

// Value returns the value stored under key in the current group.
//
// When the key is absent, defaultValue is first written exactly as SetValue
// would write it, so later reads return it even with a different default.
func (s *Store) Value(ctx context.Context, key, defaultValue string) (value string, err error) {
	defer s.observe(ctx, "value", time.Now(), &err)

	group := s.Group()
	id := s.codec.Hash(key, group)

	stored, ok, err := s.backend.Get(s.path, id)
	if err != nil {
		return "", encseterr.NewBackendError(encseterr.Decode, err)
	}
	if !ok {
		stored, err = s.codec.Encode(ctx, key, group, defaultValue)
		if err != nil {
			return "", err
		}
		if err := s.backend.Set(s.path, id, stored); err != nil {
			return "", encseterr.NewBackendError(encseterr.Encode, err)
		}
		s.logger.Debug("default value persisted", "group", group, "id", id)
	}
	return s.codec.Decode(ctx, key, group, stored)
}

// Contains reports whether key has a stored value in the current group,
// without writing a default.
func (s *Store) Contains(key string) (bool, error) {
	_, ok, err := s.backend.Get(s.path, s.codec.Hash(key, s.Group()))
	if err != nil {
		return false, encseterr.NewBackendError(encseterr.Hash, err)
	}
	return ok, nil
}

// Remove deletes key from the current group.
//
// Remove("") is not a lookup of the empty key: it deletes the entire current
// scope, every key and subgroup under the current group path. At the top
// level that is the whole store.
func (s *Store) Remove(key string) error {
	if key == "" {
		s.logger.Debug("removing scope", "group", s.Group())
		if err := s.backend.RemoveGroup(s.path); err != nil {
			return encseterr.NewBackendError(encseterr.Unknown, err)
		}
		return nil
	}
	if err := s.backend.Remove(s.path, s.codec.Hash(key, s.Group())); err != nil {
		return encseterr.NewBackendError(encseterr.Unknown, err)
	}
	return nil
}

// Clear removes everything in the backend regardless of the current group.
func (s *Store) Clear() error {
	if err := s.backend.Clear(); err != nil {
		return encseterr.NewBackendError(encseterr.Unknown, err)
	}
	return nil
}

// Hash returns the identifier key is persisted under in the current group.
func (s *Store) Hash(key string) string {
	return s.codec.Hash(key, s.Group())
}

// FileName reports the backend's on-disk location.
func (s *Store) FileName() string {
	return s.backend.FileName()
}

// Close closes the backend without syncing.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Group returns the current group path as persisted, joined with
// GroupSeparator. It is empty at the top level.
func (s *Store) Group() string {
	return strings.Join(s.path, GroupSeparator)
}

func (s *Store) observe(ctx context.Context, operation string, start time.Time, err *error) {
	if len(s.hooks) == 0 {
		return
	}
	s.hooks.OnOperation(ctx, operation, time.Since(start), *err)
}
