package main

import (
	"context"
	"fmt"
	"io"

	"github.com/hengadev/encset"
	"github.com/hengadev/encset/internal/monitoring"
	"github.com/hengadev/encset/providers/backend/badger"
	"github.com/hengadev/encset/providers/backend/ini"
	"github.com/hengadev/encset/providers/backend/memory"
	"github.com/hengadev/encset/providers/backend/sqlite"
	s3backup "github.com/hengadev/encset/providers/backup/s3"
	"github.com/hengadev/encset/providers/keys/file"
	vaultkeys "github.com/hengadev/encset/providers/keys/hashicorp"
	"github.com/hengadev/encset/providers/keys/machine"
	"github.com/hengadev/encset/providers/keys/static"
	"github.com/hengadev/encset/providers/transform/dpapi"
	vaulttransit "github.com/hengadev/encset/providers/transform/hashicorp"
	"github.com/hengadev/encset/providers/transform/sealed"
)

// openBackend opens the backend named by cfg.Backend at cfg.Path.
func openBackend(cfg encset.Config) (encset.Backend, error) {
	switch cfg.Backend {
	case encset.BackendINI:
		return ini.Open(cfg.Path)
	case encset.BackendSQLite:
		return sqlite.Open(cfg.Path)
	case encset.BackendBadger:
		return badger.Open(cfg.Path)
	case encset.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", encset.ErrInvalidConfiguration, cfg.Backend)
	}
}

// openBackendOrMemory falls back to an in-memory backend when the configured
// one cannot be opened, so reads still answer with their defaults.
func openBackendOrMemory(cfg encset.Config, logger *monitoring.Logger) (encset.Backend, bool) {
	backend, err := openBackend(cfg)
	if err == nil {
		return backend, false
	}
	logger.Warn("settings backend unavailable, using in-memory settings",
		"backend", cfg.Backend, "path", cfg.Path, "error", err)
	return memory.New(), true
}

func keyProvider(ctx context.Context, cfg encset.Config) (encset.KeyProvider, error) {
	switch cfg.KeyProvider {
	case encset.KeyProviderMachine:
		return machine.New(), nil
	case encset.KeyProviderFile:
		return file.New(cfg.KeyFile), nil
	case encset.KeyProviderStatic:
		return static.New([]byte(cfg.StaticKey)), nil
	case encset.KeyProviderVault:
		return vaultkeys.NewKeyStore(ctx, cfg.VaultKeyAlias)
	default:
		return nil, fmt.Errorf("%w: unknown key provider %q", encset.ErrInvalidConfiguration, cfg.KeyProvider)
	}
}

func transformer(ctx context.Context, cfg encset.Config, keys encset.KeyProvider) (encset.Transformer, error) {
	switch cfg.Transform {
	case encset.TransformNone:
		return encset.Identity, nil
	case encset.TransformSealed:
		return sealed.FromKeyProvider(ctx, keys)
	case encset.TransformTransit:
		return vaulttransit.NewTransit(ctx, cfg.TransitKey, cfg.TransitDerived)
	case encset.TransformDPAPI:
		return dpapi.New()
	default:
		return nil, fmt.Errorf("%w: unknown transform %q", encset.ErrInvalidConfiguration, cfg.Transform)
	}
}

func backupSink(ctx context.Context, cfg encset.Config) (encset.BackupSink, error) {
	if cfg.BackupBucket == "" {
		return nil, nil
	}
	return s3backup.New(ctx, s3backup.Config{
		Bucket: cfg.BackupBucket,
		Prefix: cfg.BackupPrefix,
		Region: cfg.BackupRegion,
	})
}

// openStore assembles a Store from a validated configuration.
func openStore(ctx context.Context, cfg encset.Config, logger *monitoring.Logger) (*encset.Store, error) {
	keys, err := keyProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	tr, err := transformer(ctx, cfg, keys)
	if err != nil {
		return nil, err
	}
	sink, err := backupSink(ctx, cfg)
	if err != nil {
		return nil, err
	}

	backend, fallback := openBackendOrMemory(cfg, logger)

	opts := []encset.Option{
		encset.WithTransformer(tr),
		encset.WithLogger(logger.Slog()),
		encset.WithHook(monitoring.NewLoggingHook(logger)),
	}
	// an in-memory fallback has nothing to back up
	if sink != nil && !fallback {
		opts = append(opts, encset.WithBackupSink(sink))
	}

	store, err := encset.New(ctx, backend, keys, opts...)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return store, nil
}

func newLogger(cfg encset.Config, w io.Writer) *monitoring.Logger {
	return monitoring.NewLogger(monitoring.LoggerConfig{
		Level:     monitoring.ParseLevel(cfg.LogLevel),
		Format:    monitoring.ParseFormat(cfg.LogFormat),
		Output:    w,
		Component: "cli",
	})
}
