// Package hashicorp provides an encset.KeyProvider backed by the HashiCorp
// Vault KV v2 secrets engine.
//
// Instead of deriving the device key from the machine, the key is fetched
// from Vault, which lets several machines or containers share one settings
// file and lets operators revoke access centrally.
//
// # Configuration
//
// The Vault client is configured via environment variables:
//
//	VAULT_ADDR       Vault server address (required)
//	VAULT_NAMESPACE  Vault namespace (optional)
//	VAULT_TOKEN      Token authentication
//	VAULT_ROLE_ID    AppRole role id (with VAULT_SECRET_ID)
//	VAULT_SECRET_ID  AppRole secret id
//
// # Storage
//
// The key is stored base64 encoded under the "value" field of
//
//	secret/data/encset/<alias>/local-key
//
// and created with check-and-set 0 on first use.
package hashicorp
