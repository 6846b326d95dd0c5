// Package hashicorp provides an encset.Transformer backed by the HashiCorp
// Vault Transit secrets engine.
//
// Values are encrypted by Vault and never leave it in key form. With a
// derived transit key the per-group context key is sent as the transit
// context, so every group is encrypted under its own derived key.
//
// The Transit Engine must be enabled in Vault before use:
//
//	vault secrets enable transit
package hashicorp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/hashicorp/vault/api"
	"github.com/hengadev/encset"
	"github.com/hengadev/encset/internal/vaultclient"
)

// Transit implements encset.Transformer using Vault Transit encrypt/decrypt.
type Transit struct {
	client  *api.Client
	keyName string
	derived bool
}

// NewTransit creates a Transit transformer using a Vault client configured
// from the environment.
//
// Usage:
//
//	transit, err := hashicorp.NewTransit(ctx, "encset-settings", true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store, err := encset.New(ctx, backend, keys, encset.WithTransformer(transit))
func NewTransit(ctx context.Context, keyName string, derived bool) (*Transit, error) {
	client, err := vaultclient.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", encset.ErrTransformFailed, err)
	}
	return NewTransitWithClient(client, keyName, derived)
}

// NewTransitWithClient creates a Transit transformer over an existing client.
func NewTransitWithClient(client *api.Client, keyName string, derived bool) (*Transit, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: vault client is required", encset.ErrInvalidConfiguration)
	}
	if keyName == "" {
		return nil, fmt.Errorf("%w: transit key name cannot be empty", encset.ErrInvalidConfiguration)
	}
	return &Transit{client: client, keyName: keyName, derived: derived}, nil
}

// CreateKey creates the transit key, as a derived key when the transformer
// was created with derived set.
func (t *Transit) CreateKey(ctx context.Context) error {
	_, err := t.client.Logical().WriteWithContext(ctx, "transit/keys/"+t.keyName, map[string]interface{}{
		"type":    "aes256-gcm96",
		"derived": t.derived,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create transit key '%s': %w", encset.ErrTransformFailed, t.keyName, err)
	}
	return nil
}

// transitContext returns the base64 derivation context for key. Derived
// transit keys reject an empty context, so the top-level group falls back to
// the key name.
func (t *Transit) transitContext(key []byte) string {
	if len(key) == 0 {
		key = []byte(t.keyName)
	}
	return base64.StdEncoding.EncodeToString(key)
}

// Encrypt returns the Vault ciphertext ("vault:v1:...") as bytes.
func (t *Transit) Encrypt(ctx context.Context, data, key []byte) ([]byte, error) {
	body := map[string]interface{}{
		"plaintext": base64.StdEncoding.EncodeToString(data),
	}
	if t.derived {
		body["context"] = t.transitContext(key)
	}

	resp, err := t.client.Logical().WriteWithContext(ctx, "transit/encrypt/"+t.keyName, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encrypt with key '%s': %w", encset.ErrTransformFailed, t.keyName, err)
	}
	if resp == nil || resp.Data == nil {
		return nil, fmt.Errorf("%w: no response from Vault Transit encrypt", encset.ErrTransformFailed)
	}
	ciphertext, ok := resp.Data["ciphertext"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: ciphertext not found in response", encset.ErrTransformFailed)
	}
	return []byte(ciphertext), nil
}

// Decrypt reverses Encrypt.
func (t *Transit) Decrypt(ctx context.Context, data, key []byte) ([]byte, error) {
	body := map[string]interface{}{
		"ciphertext": string(data),
	}
	if t.derived {
		body["context"] = t.transitContext(key)
	}

	resp, err := t.client.Logical().WriteWithContext(ctx, "transit/decrypt/"+t.keyName, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decrypt with key '%s': %w", encset.ErrTransformFailed, t.keyName, err)
	}
	if resp == nil || resp.Data == nil {
		return nil, fmt.Errorf("%w: no response from Vault Transit decrypt", encset.ErrTransformFailed)
	}
	encoded, ok := resp.Data["plaintext"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: plaintext not found in response", encset.ErrTransformFailed)
	}

	plain, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode plaintext: %w", encset.ErrTransformFailed, err)
	}
	return plain, nil
}
