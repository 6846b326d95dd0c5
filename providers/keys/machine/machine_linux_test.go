//go:build linux

package machine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFirst_FallsBack(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	second := filepath.Join(dir, "second")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("abc123\n"), 0o600))

	id, err := readFirst([]string{filepath.Join(dir, "missing"), empty, second})
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
}

func TestReadFirst_NoneUsable(t *testing.T) {
	_, err := readFirst([]string{filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}
