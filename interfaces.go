package encset

import (
	"context"
	"io"
)

// Backend is the hierarchical key/value persistence a Store writes through.
//
// Groups are passed as path segments, outermost first. An empty group is the
// top level. Writes need only become durable on Sync.
//
// Implementations:
//   - INI file (QSettings layout): github.com/hengadev/encset/providers/backend/ini
//   - SQLite: github.com/hengadev/encset/providers/backend/sqlite
//   - Badger: github.com/hengadev/encset/providers/backend/badger
//   - Memory: github.com/hengadev/encset/providers/backend/memory
type Backend interface {
	// Get returns the value stored under key in group and whether it exists.
	Get(group []string, key string) (string, bool, error)

	// Set stores value under key in group, creating the group implicitly.
	Set(group []string, key, value string) error

	// ChildGroups returns the sorted names of groups directly under group
	// that contain at least one entry.
	ChildGroups(group []string) ([]string, error)

	// ChildKeys returns the sorted names of keys stored directly in group.
	ChildKeys(group []string) ([]string, error)

	// Remove deletes a single key. Missing keys are not an error.
	Remove(group []string, key string) error

	// RemoveGroup deletes every key and subgroup under group. An empty group
	// removes everything.
	RemoveGroup(group []string) error

	// Clear removes every entry.
	Clear() error

	// Sync flushes pending writes to disk.
	Sync(ctx context.Context) error

	// FileName reports the on-disk location, or "" for in-memory backends.
	FileName() string

	// Close releases the backend. It does not imply Sync.
	Close() error
}

// Snapshotter is implemented by backends whose on-disk state is not a single
// file. The Store writes the snapshot to the backup file instead of copying
// FileName.
type Snapshotter interface {
	Snapshot(w io.Writer) error
}

// KeyProvider supplies device-bound key material. The key must be stable
// across runs on the same machine.
//
// Implementations:
//   - Machine identity: github.com/hengadev/encset/providers/keys/machine
//   - Generated key file: github.com/hengadev/encset/providers/keys/file
//   - HashiCorp Vault KV v2: github.com/hengadev/encset/providers/keys/hashicorp
//   - Fixed bytes: github.com/hengadev/encset/providers/keys/static
type KeyProvider interface {
	LocalStorageKey(ctx context.Context) ([]byte, error)
}

// Transformer is the platform byte-transform applied in the middle of the
// value pipeline. key is the per-group context key.
//
// Transformers may be identity functions on platforms without native key
// storage; Identity is the default.
//
// Implementations:
//   - Identity: encset.Identity
//   - XChaCha20-Poly1305: github.com/hengadev/encset/providers/transform/sealed
//   - HashiCorp Vault Transit: github.com/hengadev/encset/providers/transform/hashicorp
//   - Windows DPAPI: github.com/hengadev/encset/providers/transform/dpapi
type Transformer interface {
	Encrypt(ctx context.Context, data, key []byte) ([]byte, error)
	Decrypt(ctx context.Context, data, key []byte) ([]byte, error)
}

// BackupSink receives a copy of every backup written by Sync.
//
// Implementations:
//   - Amazon S3: github.com/hengadev/encset/providers/backup/s3
type BackupSink interface {
	Upload(ctx context.Context, name string, r io.Reader) error
}
