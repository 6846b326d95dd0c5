// Package main provides the encset CLI, an operator tool for inspecting and
// editing obfuscated settings files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hengadev/encset"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultConfigFile = "encset.yaml"

// readPassword reads the device key without echo.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

type options struct {
	configFile string
	file       string
	backend    string
	keys       string
	transform  string
	groups     []string
	promptKey  bool
	logLevel   string
}

func main() {
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "encset",
		Short: "Inspect and edit obfuscated settings files",
		Long: `encset reads and writes settings stored by the encset library.

Keys, group names and values are obfuscated with a secret derived from the
device key, so the same key provider that wrote a file is needed to read it.

Configuration is read from the --config YAML file, then ENCSET_* environment
variables (a .env file in the working directory is loaded first), then flags.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	pf.StringVar(&opts.file, "file", "", "settings file (directory for badger)")
	pf.StringVar(&opts.backend, "backend", "", "backend: ini, sqlite, badger or memory")
	pf.StringVar(&opts.keys, "keys", "", "key provider: machine, file, static or vault")
	pf.StringVar(&opts.transform, "transform", "", "transform: none, sealed, transit or dpapi")
	pf.StringArrayVar(&opts.groups, "group", nil, "group to enter before the command (repeatable, outermost first)")
	pf.BoolVar(&opts.promptKey, "prompt-key", false, "prompt for a static device key")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), encset.VersionInfo())
			},
		},
		&cobra.Command{
			Use:   "get KEY [DEFAULT]",
			Short: "Print a value, storing DEFAULT first when the key is missing",
			Args:  cobra.RangeArgs(1, 2),
			RunE:  withStore(opts, runGet),
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Store a value",
			Args:  cobra.ExactArgs(2),
			RunE:  withStore(opts, runSet),
		},
		&cobra.Command{
			Use:   "rm KEY",
			Short: `Remove a key ("" removes the whole current group)`,
			Args:  cobra.ExactArgs(1),
			RunE:  withStore(opts, runRemove),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every setting",
			Args:  cobra.NoArgs,
			RunE:  withStore(opts, runClear),
		},
		&cobra.Command{
			Use:   "groups",
			Short: "List the identifiers of the groups under the current group",
			Args:  cobra.NoArgs,
			RunE:  withStore(opts, runGroups),
		},
		&cobra.Command{
			Use:   "hash KEY",
			Short: "Print the identifier KEY is persisted under",
			Args:  cobra.ExactArgs(1),
			RunE:  withStore(opts, runHash),
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the resolved configuration to a YAML file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runInit(cmd, opts)
			},
		},
	)
	return rootCmd
}

// resolveConfig merges the config file, the environment and the flags that
// were set, in that order, and validates the result. A missing config file is
// an error unless allowMissing is set.
func resolveConfig(cmd *cobra.Command, opts *options, allowMissing bool) (encset.Config, error) {
	var cfg encset.Config
	if opts.configFile != "" {
		loaded, err := encset.LoadConfigFile(opts.configFile)
		switch {
		case err == nil:
			cfg = loaded
		case allowMissing && errors.Is(err, fs.ErrNotExist):
		default:
			return encset.Config{}, err
		}
	}
	if err := cfg.ApplyEnvironment(); err != nil {
		return encset.Config{}, err
	}

	flags := cmd.Flags()
	override := func(name string, field *string, value string) {
		if flags.Changed(name) {
			*field = value
		}
	}
	override("file", &cfg.Path, opts.file)
	override("backend", &cfg.Backend, opts.backend)
	override("keys", &cfg.KeyProvider, opts.keys)
	override("transform", &cfg.Transform, opts.transform)
	override("log-level", &cfg.LogLevel, opts.logLevel)

	if opts.promptKey {
		fmt.Fprint(cmd.ErrOrStderr(), "Device key: ")
		key, err := readPassword()
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return encset.Config{}, fmt.Errorf("failed to read device key: %w", err)
		}
		cfg.KeyProvider = encset.KeyProviderStatic
		cfg.StaticKey = strings.TrimRight(string(key), "\r\n")
	}

	if err := cfg.Validate(); err != nil {
		return encset.Config{}, err
	}
	return cfg, nil
}

type storeFunc func(ctx context.Context, cmd *cobra.Command, store *encset.Store, args []string) error

// withStore opens the configured store, enters the --group path and runs fn.
func withStore(opts *options, fn storeFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd, opts, false)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		logger := newLogger(cfg, cmd.ErrOrStderr())
		store, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		for _, g := range opts.groups {
			store.EnterGroup(g)
		}
		return fn(ctx, cmd, store, args)
	}
}

func runGet(ctx context.Context, cmd *cobra.Command, store *encset.Store, args []string) error {
	def := ""
	if len(args) == 2 {
		def = args[1]
	}
	existed, err := store.Contains(args[0])
	if err != nil {
		return err
	}
	value, err := store.Value(ctx, args[0], def)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)

	// the default was just written
	if !existed {
		return store.Sync(ctx)
	}
	return nil
}

func runSet(ctx context.Context, cmd *cobra.Command, store *encset.Store, args []string) error {
	if err := store.SetValue(ctx, args[0], args[1]); err != nil {
		return err
	}
	return store.Sync(ctx)
}

func runRemove(ctx context.Context, cmd *cobra.Command, store *encset.Store, args []string) error {
	if err := store.Remove(args[0]); err != nil {
		return err
	}
	return store.Sync(ctx)
}

func runClear(ctx context.Context, cmd *cobra.Command, store *encset.Store, args []string) error {
	if err := store.Clear(); err != nil {
		return err
	}
	return store.Sync(ctx)
}

func runGroups(ctx context.Context, cmd *cobra.Command, store *encset.Store, args []string) error {
	count, err := store.ChildGroupCount()
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := store.EnterGroupAt(i); err != nil {
			return err
		}
		group := store.Group()
		fmt.Fprintln(cmd.OutOrStdout(), group[strings.LastIndex(group, encset.GroupSeparator)+1:])
		if err := store.ExitGroup(); err != nil {
			return err
		}
	}
	return nil
}

func runHash(ctx context.Context, cmd *cobra.Command, store *encset.Store, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), store.Hash(args[0]))
	return nil
}

func runInit(cmd *cobra.Command, opts *options) error {
	cfg, err := resolveConfig(cmd, opts, true)
	if err != nil {
		return err
	}
	// a prompted key is never written to disk
	if opts.promptKey {
		cfg.KeyProvider, cfg.StaticKey = encset.DefaultKeyProvider, ""
	}

	path := opts.configFile
	if path == "" {
		path = defaultConfigFile
	}
	if err := encset.SaveConfigFile(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
