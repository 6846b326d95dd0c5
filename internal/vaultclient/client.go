// Package vaultclient builds HashiCorp Vault clients from the environment for
// the Vault-backed key provider and transformer.
package vaultclient

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/hashicorp/vault/api"
	"github.com/hengadev/encset/internal/encseterr"
)

// Environment variables read by New.
const (
	EnvAddr      = "VAULT_ADDR"
	EnvNamespace = "VAULT_NAMESPACE"
	EnvToken     = "VAULT_TOKEN"
	EnvRoleID    = "VAULT_ROLE_ID"
	EnvSecretID  = "VAULT_SECRET_ID"
)

// New creates an authenticated Vault client from environment variables.
//
// Environment Variables:
//   - VAULT_ADDR: Vault server address (required)
//   - VAULT_NAMESPACE: Vault namespace (optional)
//   - VAULT_TOKEN: direct token (optional, alternative to AppRole)
//   - VAULT_ROLE_ID and VAULT_SECRET_ID: AppRole credentials (optional)
//
// A token takes precedence over AppRole. With neither, New fails with
// ErrInvalidConfiguration.
func New(ctx context.Context) (*api.Client, error) {
	addr := os.Getenv(EnvAddr)
	if addr == "" {
		return nil, fmt.Errorf("%w: %s environment variable is required", encseterr.ErrInvalidConfiguration, EnvAddr)
	}

	config := api.DefaultConfig()
	config.Address = addr
	config.HttpClient.Transport = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	if namespace := os.Getenv(EnvNamespace); namespace != "" {
		client.SetNamespace(namespace)
	}

	if token := os.Getenv(EnvToken); token != "" {
		client.SetToken(token)
		return client, nil
	}

	roleID, secretID := os.Getenv(EnvRoleID), os.Getenv(EnvSecretID)
	if roleID == "" || secretID == "" {
		return nil, fmt.Errorf("%w: no Vault authentication method configured (set %s or %s+%s)",
			encseterr.ErrInvalidConfiguration, EnvToken, EnvRoleID, EnvSecretID)
	}
	if err := loginAppRole(ctx, client, roleID, secretID); err != nil {
		return nil, err
	}
	return client, nil
}

func loginAppRole(ctx context.Context, client *api.Client, roleID, secretID string) error {
	resp, err := client.Logical().WriteWithContext(ctx, "auth/approle/login", map[string]interface{}{
		"role_id":   roleID,
		"secret_id": secretID,
	})
	if err != nil {
		return fmt.Errorf("failed to login with AppRole: %w", err)
	}
	if resp == nil || resp.Auth == nil {
		return fmt.Errorf("no auth info returned from AppRole login")
	}
	client.SetToken(resp.Auth.ClientToken)
	return nil
}
