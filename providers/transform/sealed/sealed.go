// Package sealed provides an authenticated encset.Transformer built on
// XChaCha20-Poly1305.
//
// Every value gets its own subkey, derived with HKDF-SHA256 from the master
// key and the per-group context key, and a random 24-byte nonce. Unlike the
// identity transform, a value read with the wrong key material or a tampered
// file fails with encset.ErrTransformFailed instead of decoding to garbage.
//
// Sealed values are not readable by stores using the identity transform, so
// switching an existing file to sealed requires rewriting every value.
package sealed

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/hengadev/encset"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// MinKeySize is the minimum accepted master key length.
const MinKeySize = 16

var info = []byte("encset sealed transform v1")

// Transformer seals values with keys derived from a master key.
type Transformer struct {
	master []byte
}

// New returns a Transformer for master. The slice is copied.
func New(master []byte) (*Transformer, error) {
	if len(master) < MinKeySize {
		return nil, fmt.Errorf("%w: sealed master key must be at least %d bytes, got %d",
			encset.ErrInvalidConfiguration, MinKeySize, len(master))
	}
	return &Transformer{master: append([]byte(nil), master...)}, nil
}

// FromKeyProvider returns a Transformer keyed by the device key of keys.
func FromKeyProvider(ctx context.Context, keys encset.KeyProvider) (*Transformer, error) {
	master, err := keys.LocalStorageKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", encset.ErrKeyUnavailable, err)
	}
	return New(master)
}

func (t *Transformer) subkey(contextKey []byte) ([]byte, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	r := hkdf.New(sha256.New, t.master, contextKey, info)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Encrypt returns nonce || ciphertext || tag.
func (t *Transformer) Encrypt(ctx context.Context, data, key []byte) ([]byte, error) {
	subkey, err := t.subkey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to derive key: %w", encset.ErrTransformFailed, err)
	}
	aead, err := chacha20poly1305.NewX(subkey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", encset.ErrTransformFailed, err)
	}

	out := make([]byte, aead.NonceSize(), aead.NonceSize()+len(data)+aead.Overhead())
	if _, err := rand.Read(out); err != nil {
		return nil, fmt.Errorf("%w: failed to generate nonce: %w", encset.ErrTransformFailed, err)
	}
	return aead.Seal(out, out, data, nil), nil
}

// Decrypt opens a value produced by Encrypt with the same context key.
func (t *Transformer) Decrypt(ctx context.Context, data, key []byte) ([]byte, error) {
	subkey, err := t.subkey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to derive key: %w", encset.ErrTransformFailed, err)
	}
	aead, err := chacha20poly1305.NewX(subkey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", encset.ErrTransformFailed, err)
	}

	if len(data) < aead.NonceSize()+aead.Overhead() {
		return nil, fmt.Errorf("%w: sealed value too short", encset.ErrTransformFailed)
	}
	nonce, sealed := data[:aead.NonceSize()], data[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", encset.ErrTransformFailed, err)
	}
	return plain, nil
}
