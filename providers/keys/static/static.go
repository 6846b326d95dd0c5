// Package static provides a KeyProvider returning fixed key material.
//
// It suits tests and deployments where the device key is supplied explicitly
// (an environment variable or a prompt) instead of derived from the machine.
package static

import "context"

// Provider returns the same key on every call.
type Provider struct {
	key []byte
}

// New returns a Provider for key. The slice is copied.
func New(key []byte) *Provider {
	return &Provider{key: append([]byte(nil), key...)}
}

// LocalStorageKey returns a copy of the configured key.
func (p *Provider) LocalStorageKey(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]byte(nil), p.key...), nil
}
