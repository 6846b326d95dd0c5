package encset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hengadev/errsx"
)

// Config describes how to assemble a Store: where the settings live, which
// key material protects them and where backups are mirrored.
//
// This struct contains only data. It can be loaded from the environment,
// from a YAML file or built in code, and is turned into a Store by the
// caller (see cmd/encset for a complete assembly).
//
// Optional fields get defaults from Validate:
//   - Path: <user config dir>/encset/<file name for Backend>
//   - Backend: ini
//   - KeyProvider: machine
//   - KeyFile: Path + ".key"
//   - VaultKeyAlias: default
//   - Transform: none
//   - BackupPrefix: encset/
//   - LogLevel: warn, LogFormat: text
//
// Example usage:
//
//	cfg := encset.Config{
//	    Path:        "/home/me/.config/app/settings.ini",
//	    KeyProvider: encset.KeyProviderFile,
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
type Config struct {
	// Path is the settings file, or the database directory for badger.
	// Ignored by the memory backend.
	Path string `yaml:"path,omitempty"`

	// Backend is one of ini, sqlite, badger or memory.
	Backend string `yaml:"backend,omitempty"`

	// KeyProvider is one of machine, file, static or vault.
	KeyProvider string `yaml:"key_provider,omitempty"`

	// StaticKey is the key material of the static provider. Required when
	// KeyProvider is static.
	StaticKey string `yaml:"static_key,omitempty"`

	// KeyFile is the generated key file of the file provider.
	KeyFile string `yaml:"key_file,omitempty"`

	// VaultKeyAlias selects the Vault KV entry of the vault provider.
	VaultKeyAlias string `yaml:"vault_key_alias,omitempty"`

	// Transform is one of none, sealed, transit or dpapi.
	Transform string `yaml:"transform,omitempty"`

	// TransitKey is the Vault Transit key name. Required when Transform is
	// transit.
	TransitKey string `yaml:"transit_key,omitempty"`

	// TransitDerived sends the group context key as the transit context.
	TransitDerived bool `yaml:"transit_derived,omitempty"`

	// BackupBucket enables S3 mirroring of the backup file when set.
	BackupBucket string `yaml:"backup_bucket,omitempty"`

	// BackupPrefix is prepended to the backup object key.
	BackupPrefix string `yaml:"backup_prefix,omitempty"`

	// BackupRegion is the AWS region of BackupBucket.
	BackupRegion string `yaml:"backup_region,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format,omitempty"`
}

var (
	backends     = []string{BackendINI, BackendSQLite, BackendBadger, BackendMemory}
	keyProviders = []string{KeyProviderMachine, KeyProviderFile, KeyProviderStatic, KeyProviderVault}
	transforms   = []string{TransformNone, TransformSealed, TransformTransit, TransformDPAPI}
	logLevels    = []string{"debug", "info", "warn", "error"}
	logFormats   = []string{"text", "json"}
)

// Validate applies defaults to empty optional fields and checks the result.
// Every problem is reported, keyed by field, in one error wrapping
// ErrInvalidConfiguration.
func (c *Config) Validate() error {
	c.applyDefaults()

	errs := errsx.Map{}
	oneOf := func(field, value string, allowed []string) {
		for _, a := range allowed {
			if value == a {
				return
			}
		}
		errs.Set(field, fmt.Errorf("must be one of %s, got %q", strings.Join(allowed, ", "), value))
	}

	oneOf("backend", c.Backend, backends)
	oneOf("key_provider", c.KeyProvider, keyProviders)
	oneOf("transform", c.Transform, transforms)
	oneOf("log_level", c.LogLevel, logLevels)
	oneOf("log_format", c.LogFormat, logFormats)

	if c.Backend != BackendMemory && c.Path == "" {
		errs.Set("path", fmt.Errorf("path is required when no user config directory is available"))
	}
	if c.KeyProvider == KeyProviderStatic && c.StaticKey == "" {
		errs.Set("static_key", fmt.Errorf("static_key is required for the static key provider"))
	}
	if c.KeyProvider == KeyProviderFile && c.KeyFile == "" {
		errs.Set("key_file", fmt.Errorf("key_file is required for the file key provider"))
	}
	if c.Transform == TransformTransit && c.TransitKey == "" {
		errs.Set("transit_key", fmt.Errorf("transit_key is required for the transit transform"))
	}
	if c.BackupBucket == "" && c.BackupRegion != "" {
		errs.Set("backup_bucket", fmt.Errorf("backup_region is set but backup_bucket is empty"))
	}

	if err := errs.AsError(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	c.Backend = defaultString(strings.ToLower(c.Backend), DefaultBackend)
	c.KeyProvider = defaultString(strings.ToLower(c.KeyProvider), DefaultKeyProvider)
	c.Transform = defaultString(strings.ToLower(c.Transform), DefaultTransform)
	c.LogLevel = defaultString(strings.ToLower(c.LogLevel), DefaultLogLevel)
	c.LogFormat = defaultString(strings.ToLower(c.LogFormat), DefaultLogFormat)
	c.VaultKeyAlias = defaultString(c.VaultKeyAlias, DefaultVaultAlias)

	if c.Path == "" && c.Backend != BackendMemory {
		c.Path = DefaultPath(c.Backend)
	}
	if c.KeyFile == "" && c.Path != "" {
		c.KeyFile = c.Path + KeyFileSuffix
	}
	if c.BackupBucket != "" {
		c.BackupPrefix = defaultString(c.BackupPrefix, DefaultBackupPref)
	}
}

// DefaultPath returns the default settings location for backend under the
// user configuration directory, or "" when that directory is unknown.
func DefaultPath(backend string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	name := DefaultFileName
	switch backend {
	case BackendSQLite:
		name = "settings.db"
	case BackendBadger:
		name = "settings.badger"
	}
	return filepath.Join(dir, DefaultDirName, name)
}

func defaultString(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
