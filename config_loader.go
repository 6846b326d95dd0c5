package encset

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfigFromEnvironment loads configuration from ENCSET_* environment
// variables and returns it validated, with defaults applied.
//
// Environment variables (all optional):
//   - ENCSET_FILE, ENCSET_BACKEND
//   - ENCSET_KEY_PROVIDER, ENCSET_STATIC_KEY, ENCSET_KEY_FILE, ENCSET_VAULT_KEY_ALIAS
//   - ENCSET_TRANSFORM, ENCSET_TRANSIT_KEY, ENCSET_TRANSIT_DERIVED
//   - ENCSET_BACKUP_BUCKET, ENCSET_BACKUP_PREFIX, ENCSET_BACKUP_REGION
//   - ENCSET_LOG_LEVEL, ENCSET_LOG_FORMAT
//
// Example usage:
//
//	// export ENCSET_BACKEND=sqlite
//	// export ENCSET_KEY_PROVIDER=file
//	cfg, err := encset.LoadConfigFromEnvironment()
//	if err != nil {
//	    log.Fatal(err)
//	}
func LoadConfigFromEnvironment() (Config, error) {
	var cfg Config
	if err := cfg.ApplyEnvironment(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyEnvironment overrides fields with every ENCSET_* variable that is set
// and non-empty. It does not validate.
func (c *Config) ApplyEnvironment() error {
	overrides := []struct {
		env   string
		field *string
	}{
		{EnvFile, &c.Path},
		{EnvBackend, &c.Backend},
		{EnvKeyProvider, &c.KeyProvider},
		{EnvStaticKey, &c.StaticKey},
		{EnvKeyFile, &c.KeyFile},
		{EnvVaultKeyAlias, &c.VaultKeyAlias},
		{EnvTransform, &c.Transform},
		{EnvTransitKey, &c.TransitKey},
		{EnvBackupBucket, &c.BackupBucket},
		{EnvBackupPrefix, &c.BackupPrefix},
		{EnvBackupRegion, &c.BackupRegion},
		{EnvLogLevel, &c.LogLevel},
		{EnvLogFormat, &c.LogFormat},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.field = v
		}
	}

	if v := os.Getenv(EnvTransitDerived); v != "" {
		derived, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalidConfiguration, EnvTransitDerived, v)
		}
		c.TransitDerived = derived
	}
	return nil
}

// LoadConfigFile reads a YAML configuration file. The result is not
// validated, so environment overrides can still be applied.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: failed to parse config file %s: %w", ErrInvalidConfiguration, path, err)
	}
	return cfg, nil
}

// SaveConfigFile writes cfg as YAML to path with owner-only permissions,
// since it may hold a static key.
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
