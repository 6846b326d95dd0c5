// Package sqlite provides a Backend stored in a single SQLite database.
//
// Every entry is one row of the settings table, keyed by its group path
// (segments joined with "/") and name. Writes are committed immediately; the
// database runs in WAL mode and Sync checkpoints the log into the main file so
// a plain copy of FileName is a complete backup.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const separator = "/"

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	grp   TEXT NOT NULL,
	name  TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (grp, name)
)`

// DB is a SQLite-backed settings tree.
type DB struct {
	path string
	db   *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}
	// a single connection keeps the WAL checkpoint and the writes on one handle
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize settings database %s: %w", path, err)
	}
	return &DB{path: path, db: db}, nil
}

func join(group []string) string {
	return strings.Join(group, separator)
}

func (d *DB) Get(group []string, key string) (string, bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM settings WHERE grp = ? AND name = ?`, join(group), key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting: %w", err)
	}
	return value, true, nil
}

func (d *DB) Set(group []string, key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO settings (grp, name, value) VALUES (?, ?, ?)
		ON CONFLICT (grp, name) DO UPDATE SET value = excluded.value
	`, join(group), key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting: %w", err)
	}
	return nil
}

func (d *DB) ChildGroups(group []string) ([]string, error) {
	var (
		rows *sql.Rows
		err  error
	)
	prefix := ""
	if len(group) == 0 {
		rows, err = d.db.Query(`SELECT DISTINCT grp FROM settings WHERE grp <> ''`)
	} else {
		prefix = join(group) + separator
		rows, err = d.db.Query(`
			SELECT DISTINCT grp FROM settings
			WHERE substr(grp, 1, length(?1)) = ?1 AND length(grp) > length(?1)
		`, prefix)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var grp string
		if err := rows.Scan(&grp); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		child, _, _ := strings.Cut(strings.TrimPrefix(grp, prefix), separator)
		seen[child] = struct{}{}
	}
	if err := rows.Err(); err != nil {
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
	rows, err := d.db.Query(`SELECT name FROM settings WHERE grp = ? ORDER BY name`, join(group))
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

func (d *DB) Remove(group []string, key string) error {
	if _, err := d.db.Exec(`DELETE FROM settings WHERE grp = ? AND name = ?`, join(group), key); err != nil {
		return fmt.Errorf("failed to remove setting: %w", err)
	}
	return nil
}

func (d *DB) RemoveGroup(group []string) error {
	if len(group) == 0 {
		return d.Clear()
	}
	g := join(group)
	_, err := d.db.Exec(`
		DELETE FROM settings
		WHERE grp = ?1 OR substr(grp, 1, length(?2)) = ?2
	`, g, g+separator)
	if err != nil {
		return fmt.Errorf("failed to remove group: %w", err)
	}
	return nil
}

func (d *DB) Clear() error {
	if _, err := d.db.Exec(`DELETE FROM settings`); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	return nil
}

// Sync checkpoints the write-ahead log into the database file.
func (d *DB) Sync(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("failed to checkpoint settings database: %w", err)
	}
	return nil
}

func (d *DB) FileName() string {
	return d.path
}

func (d *DB) Close() error {
	return d.db.Close()
}
