// Package encset provides an obfuscated, hierarchical settings store.
//
// A Store wraps a hierarchical key/value Backend (INI file, SQLite, Badger or
// memory) and transparently transforms both keys and values with a secret
// derived from device-bound key material, so that the persisted file is
// unreadable without that device's key.
//
// # Keys and groups
//
// Every raw key is persisted under an identifier that depends on the key, the
// current group path and the store secret:
//
//	id = hex(mix(rawKey, sha1(mix(secret, rawKey + group))))
//
// Group names are hashed the same way when entered, so the on-disk tree
// contains nothing but hex identifiers. The same raw key under two different
// groups is stored under two unrelated identifiers.
//
// # Values
//
// Non-empty values pass through a layered pipeline: mixed with a per-entry
// subkey, handed to the configured Transformer together with a group context
// key, mixed again, and base64 encoded. Empty values are stored verbatim.
//
// This is obfuscation, not authenticated encryption. With the default
// Identity transformer the keystream layers cancel and values are stored as
// readable base64; only key and group identifiers are hidden. With a
// keyed Transformer that carries no tag, decoding with the wrong key
// material or group context silently yields garbage. Use an
// authenticating Transformer (see providers/transform/sealed) when integrity
// matters; doing so changes the on-disk format.
//
// # Quick start
//
//	backend, err := ini.Open("/home/me/.config/app/settings.ini")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store, err := encset.New(ctx, backend, machine.New())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	store.EnterGroup("proxy")
//	_ = store.SetValue(ctx, "host", "10.0.0.1")
//	_ = store.ExitGroup()
//
//	if err := store.Sync(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// A Store is not safe for concurrent use. The group path is mutable state
// owned by the Store; callers sharing one must serialize access themselves.
//
// # Backups
//
// Sync flushes the backend and then writes a ".bak" sibling holding the
// post-flush state, overwriting any previous backup. An optional BackupSink
// (for example providers/backup/s3) receives a copy of that snapshot.
package encset
