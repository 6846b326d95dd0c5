// Package badger provides a Backend stored in a BadgerDB directory.
//
// Keys are encoded as the group path (segments joined with "/") followed by
// a NUL byte and the entry name, so a prefix scan over "a/b\x00" lists the
// keys of group a/b and a scan over "a/b/" reaches its subgroups.
//
// BadgerDB keeps its state in several files, so the backend implements
// Snapshotter and the store writes a badger backup stream as the backup file.
// Restore loads such a stream back.
package badger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const (
	separator = "/"
	nameMark  = "\x00"
)

// maxPendingWrites bounds the batch size used by Restore.
const maxPendingWrites = 256

// Options configures Open.
type Options struct {
	// Dir is the database directory. It is created when missing.
	Dir string

	// SyncWrites makes every write durable immediately instead of on Sync.
	SyncWrites bool

	// Logger receives badger's internal logging. Nil silences it.
	Logger badger.Logger
}

// DB is a BadgerDB-backed settings tree.
type DB struct {
	dir string
	db  *badger.DB
}

// Open opens or creates the database in dir with default options.
func Open(dir string) (*DB, error) {
	return OpenWithOptions(Options{Dir: dir})
}

// OpenWithOptions opens or creates the database described by opts.
func OpenWithOptions(opts Options) (*DB, error) {
	badgerOpts := badger.DefaultOptions(opts.Dir).
		WithSyncWrites(opts.SyncWrites).
		WithLogger(opts.Logger).
		// settings trees are tiny
		WithMemTableSize(4 << 20).
		WithValueLogFileSize(16 << 20).
		WithNumMemtables(2).
		WithNumLevelZeroTables(2).
		WithNumLevelZeroTablesStall(4).
		// must stay below the batch limit derived from the memtable size
		WithValueThreshold(1024)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}
	return &DB{dir: opts.Dir, db: db}, nil
}

func groupPrefix(group []string) string {
	return strings.Join(group, separator)
}

func entryKey(group []string, name string) []byte {
	return []byte(groupPrefix(group) + nameMark + name)
}

func (d *DB) Get(group []string, key string) (string, bool, error) {
	var value string
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entryKey(group, key))
		if err != nil {
			return err
		}
		v, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		value = string(v)
		return nil
	})
	if err == badger.ErrKeyNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting: %w", err)
	}
	return value, true, nil
}

func (d *DB) Set(group []string, key, value string) error {
	err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entryKey(group, key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write setting: %w", err)
	}
	return nil
}

// scan calls fn with every key under prefix, without the prefix.
func (d *DB) scan(prefix []byte, fn func(rest string)) error {
	return d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			fn(string(bytes.TrimPrefix(it.Item().Key(), prefix)))
		}
		return nil
	})
}

func (d *DB) ChildGroups(group []string) ([]string, error) {
	var prefix []byte
	if len(group) > 0 {
		prefix = []byte(groupPrefix(group) + separator)
	}

	seen := make(map[string]struct{})
	err := d.scan(prefix, func(rest string) {
		if strings.HasPrefix(rest, nameMark) {
			return
		}
		child := rest
		if i := strings.IndexAny(rest, separator+nameMark); i >= 0 {
			child = rest[:i]
		}
		seen[child] = struct{}{}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups, nil
}

func (d *DB) ChildKeys(group []string) ([]string, error) {
	var keys []string
	err := d.scan([]byte(groupPrefix(group)+nameMark), func(rest string) {
		keys = append(keys, rest)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

func (d *DB) Remove(group []string, key string) error {
	err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(entryKey(group, key))
	})
	if err != nil {
		return fmt.Errorf("failed to remove setting: %w", err)
	}
	return nil
}

func (d *DB) RemoveGroup(group []string) error {
	if len(group) == 0 {
		return d.Clear()
	}
	g := groupPrefix(group)
	if err := d.db.DropPrefix([]byte(g+nameMark), []byte(g+separator)); err != nil {
		return fmt.Errorf("failed to remove group: %w", err)
	}
	return nil
}

func (d *DB) Clear() error {
	if err := d.db.DropAll(); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	return nil
}

func (d *DB) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.db.Sync(); err != nil {
		return fmt.Errorf("failed to sync settings database: %w", err)
	}
	return nil
}

// Snapshot writes a full badger backup stream to w.
func (d *DB) Snapshot(w io.Writer) error {
	if _, err := d.db.Backup(w, 0); err != nil {
		return fmt.Errorf("failed to back up settings database: %w", err)
	}
	return nil
}

// Restore loads a stream written by Snapshot. Existing entries with the same
// keys are overwritten.
func (d *DB) Restore(r io.Reader) error {
	if err := d.db.Load(r, maxPendingWrites); err != nil {
		return fmt.Errorf("failed to restore settings database: %w", err)
	}
	return nil
}

// FileName returns the database directory.
func (d *DB) FileName() string {
	return d.dir
}

func (d *DB) Close() error {
	return d.db.Close()
}
