package encset_test

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/hengadev/encset"
	"github.com/hengadev/encset/providers/backend/badger"
	"github.com/hengadev/encset/providers/backend/ini"
	"github.com/hengadev/encset/providers/backend/memory"
	"github.com/hengadev/encset/providers/backend/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_EnterExit(t *testing.T) {
	s, err := encset.NewTestStore()
	require.NoError(t, err)

	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, "", s.Group())

	s.EnterGroup("a")
	a := s.Group()
	s.EnterGroup("b")
	assert.Equal(t, 2, s.Depth())
	assert.True(t, strings.HasPrefix(s.Group(), a+encset.GroupSeparator))

	require.NoError(t, s.ExitGroup())
	assert.Equal(t, a, s.Group())
	require.NoError(t, s.ExitGroup())
	assert.Equal(t, "", s.Group())

	assert.ErrorIs(t, s.ExitGroup(), encset.ErrGroupUnderflow)
	assert.Equal(t, 0, s.Depth())
}

func TestGroup_NamesDependOnParent(t *testing.T) {
	s, err := encset.NewTestStore()
	require.NoError(t, err)

	s.EnterGroup("b")
	topLevelB := s.Group()
	require.NoError(t, s.ExitGroup())

	s.EnterGroup("a")
	s.EnterGroup("b")
	_, nestedB, _ := strings.Cut(s.Group(), encset.GroupSeparator)
	assert.NotEqual(t, topLevelB, nestedB)
}

func TestGroup_ChildGroups(t *testing.T) {
	ctx := context.Background()
	s, err := encset.NewTestStore()
	require.NoError(t, err)

	names := []string{"network", "display", "audio"}
	ids := make([]string, 0, len(names))
	for _, name := range names {
		s.EnterGroup(name)
		ids = append(ids, s.Group())
		require.NoError(t, s.SetValue(ctx, "enabled", "true"))
		require.NoError(t, s.ExitGroup())
	}
	sort.Strings(ids)

	count, err := s.ChildGroupCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	for _, name := range names {
		ok, err := s.ContainsGroup(name)
		require.NoError(t, err)
		assert.True(t, ok, name)
	}
	ok, err := s.ContainsGroup("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	// groups are walked in the sorted order of their identifiers
	for i, id := range ids {
		require.NoError(t, s.EnterGroupAt(i))
		assert.Equal(t, id, s.Group())

		v, err := s.Value(ctx, "enabled", "false")
		require.NoError(t, err)
		assert.Equal(t, "true", v)
		require.NoError(t, s.ExitGroup())
	}

	assert.ErrorIs(t, s.EnterGroupAt(3), encset.ErrGroupIndexOutOfRange)
	assert.ErrorIs(t, s.EnterGroupAt(-1), encset.ErrGroupIndexOutOfRange)
	assert.Equal(t, 0, s.Depth())
}

func TestGroup_EnteringDoesNotCreate(t *testing.T) {
	s, err := encset.NewTestStore()
	require.NoError(t, err)

	s.EnterGroup("ghost")
	empty, err := s.IsGroupEmpty()
	require.NoError(t, err)
	assert.True(t, empty)
	require.NoError(t, s.ExitGroup())

	count, err := s.ChildGroupCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGroup_RemoveEmptyKeyClearsScope(t *testing.T) {
	ctx := context.Background()
	s, err := encset.NewTestStore()
	require.NoError(t, err)

	require.NoError(t, s.SetValue(ctx, "outside", "kept"))

	s.EnterGroup("g")
	require.NoError(t, s.SetValue(ctx, "a", "1"))
	require.NoError(t, s.SetValue(ctx, "", "empty key"))
	s.EnterGroup("child")
	require.NoError(t, s.SetValue(ctx, "b", "2"))
	require.NoError(t, s.ExitGroup())

	empty, err := s.IsGroupEmpty()
	require.NoError(t, err)
	assert.False(t, empty)

	keys, err := s.ChildKeyCount()
	require.NoError(t, err)
	assert.Equal(t, 2, keys)

	require.NoError(t, s.Remove(""))

	empty, err = s.IsGroupEmpty()
	require.NoError(t, err)
	assert.True(t, empty)
	require.NoError(t, s.ExitGroup())

	v, err := s.Value(ctx, "outside", "")
	require.NoError(t, err)
	assert.Equal(t, "kept", v)
}

func TestGroup_RemoveEmptyKeyAtTopLevel(t *testing.T) {
	ctx := context.Background()
	s, err := encset.NewTestStore()
	require.NoError(t, err)

	require.NoError(t, s.SetValue(ctx, "a", "1"))
	s.EnterGroup("g")
	require.NoError(t, s.SetValue(ctx, "b", "2"))
	require.NoError(t, s.ExitGroup())

	require.NoError(t, s.Remove(""))

	empty, err := s.IsGroupEmpty()
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestGroup_RemoveScopeOnEveryBackend(t *testing.T) {
	backends := map[string]func(t *testing.T) encset.Backend{
		"memory": func(t *testing.T) encset.Backend { return memory.New() },
		"ini": func(t *testing.T) encset.Backend {
			b, err := ini.Open(filepath.Join(t.TempDir(), "settings.ini"))
			require.NoError(t, err)
			return b
		},
		"sqlite": func(t *testing.T) encset.Backend {
			b, err := sqlite.Open(filepath.Join(t.TempDir(), "settings.db"))
			require.NoError(t, err)
			return b
		},
		"badger": func(t *testing.T) encset.Backend {
			b, err := badger.Open(filepath.Join(t.TempDir(), "settings"))
			require.NoError(t, err)
			return b
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			backend := open(t)
			t.Cleanup(func() { backend.Close() })
			s, err := encset.NewTestStoreWithBackend(backend)
			require.NoError(t, err)

			require.NoError(t, s.SetValue(ctx, "outside", "kept"))
			s.EnterGroup("sibling")
			require.NoError(t, s.SetValue(ctx, "x", "kept too"))
			require.NoError(t, s.ExitGroup())

			s.EnterGroup("g")
			require.NoError(t, s.SetValue(ctx, "a", "1"))
			s.EnterGroup("child")
			require.NoError(t, s.SetValue(ctx, "b", "2"))
			require.NoError(t, s.ExitGroup())

			empty, err := s.IsGroupEmpty()
			require.NoError(t, err)
			assert.False(t, empty)

			require.NoError(t, s.Remove(""))

			empty, err = s.IsGroupEmpty()
			require.NoError(t, err)
			assert.True(t, empty)
			require.NoError(t, s.ExitGroup())

			count, err := s.ChildGroupCount()
			require.NoError(t, err)
			assert.Equal(t, 1, count)

			ok, err := s.ContainsGroup("sibling")
			require.NoError(t, err)
			assert.True(t, ok)

			v, err := s.Value(ctx, "outside", "")
			require.NoError(t, err)
			assert.Equal(t, "kept", v)
			require.NoError(t, s.Sync(ctx))
		})
	}
}
