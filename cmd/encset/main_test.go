package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hengadev/encset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	for _, name := range []string{
		encset.EnvFile, encset.EnvBackend, encset.EnvKeyProvider, encset.EnvStaticKey,
		encset.EnvKeyFile, encset.EnvVaultKeyAlias, encset.EnvTransform, encset.EnvTransitKey,
		encset.EnvTransitDerived, encset.EnvBackupBucket, encset.EnvBackupPrefix,
		encset.EnvBackupRegion, encset.EnvLogLevel, encset.EnvLogFormat,
	} {
		t.Setenv(name, "")
	}
	t.Setenv(encset.EnvKeyProvider, encset.KeyProviderStatic)
	t.Setenv(encset.EnvStaticKey, "cli-test-key")

	path := filepath.Join(t.TempDir(), "settings.ini")
	t.Setenv(encset.EnvFile, path)
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLI_SetGet(t *testing.T) {
	path := setupEnv(t)

	_, _, err := execute(t, "set", "--group", "proxy", "host", "10.0.0.1")
	require.NoError(t, err)

	out, _, err := execute(t, "get", "--group", "proxy", "host")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1\n", out)

	_, err = os.Stat(path + encset.BackupSuffix)
	assert.NoError(t, err, "every mutating command syncs and backs up")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "proxy")
	assert.NotContains(t, string(data), "host")
}

func TestCLI_GetPersistsDefault(t *testing.T) {
	setupEnv(t)

	out, _, err := execute(t, "get", "volume", "7")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)

	out, _, err = execute(t, "get", "volume", "3")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestCLI_RemoveAndClear(t *testing.T) {
	setupEnv(t)

	_, _, err := execute(t, "set", "a", "1")
	require.NoError(t, err)
	_, _, err = execute(t, "rm", "a")
	require.NoError(t, err)

	out, _, err := execute(t, "get", "a", "gone")
	require.NoError(t, err)
	assert.Equal(t, "gone\n", out)

	_, _, err = execute(t, "clear")
	require.NoError(t, err)
	out, _, err = execute(t, "get", "a", "again")
	require.NoError(t, err)
	assert.Equal(t, "again\n", out)
}

func TestCLI_GroupsAndHash(t *testing.T) {
	setupEnv(t)

	for _, g := range []string{"one", "two"} {
		_, _, err := execute(t, "set", "--group", g, "k", "v")
		require.NoError(t, err)
	}

	out, _, err := execute(t, "groups")
	require.NoError(t, err)
	lines := strings.Fields(out)
	assert.Len(t, lines, 2)

	hashOut, _, err := execute(t, "hash", "--group", "one", "k")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(hashOut), 40)
}

func TestCLI_FallsBackToMemory(t *testing.T) {
	setupEnv(t)
	// a directory cannot be opened as an INI file
	t.Setenv(encset.EnvFile, t.TempDir())

	out, stderr, err := execute(t, "get", "theme", "light")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)
	assert.Contains(t, stderr, "in-memory settings")
}

func TestCLI_PromptKey(t *testing.T) {
	setupEnv(t)
	t.Setenv(encset.EnvKeyProvider, "")
	t.Setenv(encset.EnvStaticKey, "")

	original := readPassword
	t.Cleanup(func() { readPassword = original })
	readPassword = func() ([]byte, error) { return []byte("typed-key"), nil }

	_, _, err := execute(t, "set", "--prompt-key", "k", "v")
	require.NoError(t, err)
	out, _, err := execute(t, "get", "--prompt-key", "k")
	require.NoError(t, err)
	assert.Equal(t, "v\n", out)

	readPassword = func() ([]byte, error) { return []byte("other-key"), nil }
	out, _, err = execute(t, "get", "--prompt-key", "k", "unknown")
	require.NoError(t, err)
	assert.Equal(t, "unknown\n", out)
}

func TestCLI_InitWritesConfig(t *testing.T) {
	setupEnv(t)
	configPath := filepath.Join(t.TempDir(), "encset.yaml")

	out, _, err := execute(t, "init", "--config", configPath, "--backend", "sqlite",
		"--file", filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	assert.Contains(t, out, configPath)

	cfg, err := encset.LoadConfigFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, encset.BackendSQLite, cfg.Backend)

	t.Setenv(encset.EnvFile, "")
	_, _, err = execute(t, "set", "--config", configPath, "k", "v")
	require.NoError(t, err)
	out, _, err = execute(t, "get", "--config", configPath, "k")
	require.NoError(t, err)
	assert.Equal(t, "v\n", out)
}

func TestCLI_InvalidConfiguration(t *testing.T) {
	setupEnv(t)

	_, _, err := execute(t, "get", "--backend", "floppy", "k")
	assert.ErrorIs(t, err, encset.ErrInvalidConfiguration)
}

func TestCLI_Version(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, encset.VersionInfo()+"\n", out)
}
