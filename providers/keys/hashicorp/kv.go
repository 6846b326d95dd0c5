package hashicorp

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/hashicorp/vault/api"
	"github.com/hengadev/encset"
	"github.com/hengadev/encset/internal/vaultclient"
)

// KeySize is the length of a generated local storage key.
const KeySize = 32

// KeyStore implements encset.KeyProvider using HashiCorp Vault KV v2.
//
// The key lives at encset.VaultKeyPathTemplate for the configured alias. When
// the entry does not exist a random key is generated and stored, so every
// machine sharing the alias shares the key.
type KeyStore struct {
	client *api.Client
	alias  string
}

// NewKeyStore creates a KeyStore using a Vault client configured from the
// environment (see internal/vaultclient).
//
// Usage:
//
//	keys, err := hashicorp.NewKeyStore(ctx, "desktop")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store, err := encset.New(ctx, backend, keys)
//
// The KV v2 engine must be enabled in Vault before use:
//
//	vault secrets enable -path=secret kv-v2
func NewKeyStore(ctx context.Context, alias string) (*KeyStore, error) {
	client, err := vaultclient.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", encset.ErrKeyUnavailable, err)
	}
	return NewKeyStoreWithClient(client, alias)
}

// NewKeyStoreWithClient creates a KeyStore over an existing client.
func NewKeyStoreWithClient(client *api.Client, alias string) (*KeyStore, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: vault client is required", encset.ErrInvalidConfiguration)
	}
	if alias == "" {
		return nil, fmt.Errorf("%w: alias cannot be empty", encset.ErrInvalidConfiguration)
	}
	return &KeyStore{client: client, alias: alias}, nil
}

// StoragePath returns the Vault KV v2 path of the key.
//
// Example: alias "desktop" → "secret/data/encset/desktop/local-key"
func (k *KeyStore) StoragePath() string {
	return fmt.Sprintf(encset.VaultKeyPathTemplate, k.alias)
}

// LocalStorageKey reads the key from Vault, storing a fresh one first when
// none exists.
func (k *KeyStore) LocalStorageKey(ctx context.Context) ([]byte, error) {
	key, found, err := k.read(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		return key, nil
	}

	key = make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("%w: failed to generate key: %w", encset.ErrKeyUnavailable, err)
	}
	if err := k.write(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (k *KeyStore) read(ctx context.Context) ([]byte, bool, error) {
	secret, err := k.client.Logical().ReadWithContext(ctx, k.StoragePath())
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to read key from Vault KV: %w", encset.ErrKeyUnavailable, err)
	}
	// Vault returns a nil secret for "not found"
	if secret == nil || secret.Data == nil {
		return nil, false, nil
	}

	// KV v2 wraps the actual data in a "data" key
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		// deleted KV v2 versions come back with data: null
		return nil, false, nil
	}
	encoded, ok := data["value"].(string)
	if !ok {
		return nil, false, fmt.Errorf("%w: key value not found or invalid format for alias: %s",
			encset.ErrKeyUnavailable, k.alias)
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to decode key: %w", encset.ErrKeyUnavailable, err)
	}
	if len(key) == 0 {
		return nil, false, fmt.Errorf("%w: stored key is empty for alias: %s", encset.ErrKeyUnavailable, k.alias)
	}
	return key, true, nil
}

func (k *KeyStore) write(ctx context.Context, key []byte) error {
	data := map[string]interface{}{
		"data": map[string]interface{}{
			"value": base64.StdEncoding.EncodeToString(key),
		},
		// only create, never overwrite a key another machine stored meanwhile
		"options": map[string]interface{}{
			"cas": 0,
		},
	}
	if _, err := k.client.Logical().WriteWithContext(ctx, k.StoragePath(), data); err != nil {
		return fmt.Errorf("%w: failed to store key in Vault KV: %w", encset.ErrKeyUnavailable, err)
	}
	return nil
}
