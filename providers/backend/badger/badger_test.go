package badger

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "settings"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_GetSet(t *testing.T) {
	db := openTestDB(t)

	_, ok, err := db.Get(nil, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Set(nil, "a", "1"))
	require.NoError(t, db.Set([]string{"g"}, "a", "2"))
	require.NoError(t, db.Set(nil, "empty", ""))

	v, ok, err := db.Get(nil, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	v, ok, err = db.Get([]string{"g"}, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	v, ok, err = db.Get(nil, "empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestDB_ChildGroupsAndKeys(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Set(nil, "top", "x"))
	require.NoError(t, db.Set([]string{"b"}, "k", "x"))
	require.NoError(t, db.Set([]string{"a", "c"}, "k", "x"))
	require.NoError(t, db.Set([]string{"a", "d", "e"}, "k", "x"))

	tests := []struct {
		name   string
		group  []string
		groups []string
		keys   []string
	}{
		{"top level", nil, []string{"a", "b"}, []string{"top"}},
		{"nested", []string{"a"}, []string{"c", "d"}, nil},
		{"leaf", []string{"a", "c"}, []string{}, []string{"k"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := db.ChildGroups(tt.group)
			require.NoError(t, err)
			assert.Equal(t, tt.groups, groups)

			keys, err := db.ChildKeys(tt.group)
			require.NoError(t, err)
			assert.Equal(t, tt.keys, keys)
		})
	}
}

func TestDB_RemoveGroup(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Set([]string{"a"}, "k", "x"))
	require.NoError(t, db.Set([]string{"a", "b"}, "k", "x"))
	require.NoError(t, db.Set([]string{"ab"}, "k", "x"))

	require.NoError(t, db.RemoveGroup([]string{"a"}))

	groups, err := db.ChildGroups(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab"}, groups)

	require.NoError(t, db.RemoveGroup(nil))
	groups, err = db.ChildGroups(nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestDB_SnapshotRestore(t *testing.T) {
	src := openTestDB(t)
	require.NoError(t, src.Set([]string{"g"}, "k", "v"))
	require.NoError(t, src.Sync(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, src.Snapshot(&buf))
	assert.NotZero(t, buf.Len())

	dst := openTestDB(t)
	require.NoError(t, dst.Restore(&buf))

	v, ok, err := dst.Get([]string{"g"}, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestDB_Remove(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Set(nil, "a", "1"))
	require.NoError(t, db.Remove(nil, "a"))

	_, ok, err := db.Get(nil, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenWithOptions_Reopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "settings")

	db, err := OpenWithOptions(Options{Dir: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, db.Set([]string{"g", "h"}, "k", "v"))
	require.NoError(t, db.Sync(context.Background()))
	require.NoError(t, db.Close())

	db, err = Open(dir)
	require.NoError(t, err)
	defer db.Close()

	v, ok, err := db.Get([]string{"g", "h"}, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, dir, db.FileName())
}
