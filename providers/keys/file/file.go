// Package file provides a KeyProvider backed by a generated install secret.
//
// On first use a random secret is written to the key file with owner-only
// permissions; later calls return the same bytes. Deleting the key file makes
// every value written with it unreadable.
package file

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/hengadev/encset"
	"github.com/hengadev/encset/internal/fsutil"
)

// secretBytes is the amount of randomness appended to the install id.
const secretBytes = 32

// Provider reads or creates the key file at a fixed path.
type Provider struct {
	path string
}

// New returns a Provider for the key file at path. Conventionally the path is
// the settings file name plus encset.KeyFileSuffix.
func New(path string) *Provider {
	return &Provider{path: path}
}

// Path returns the key file location.
func (p *Provider) Path() string {
	return p.path
}

// LocalStorageKey returns the contents of the key file, generating it first
// when it does not exist.
func (p *Provider) LocalStorageKey(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := p.read()
	if errors.Is(err, fs.ErrNotExist) {
		return p.generate()
	}
	return key, err
}

func (p *Provider) read() ([]byte, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read key file: %w", encset.ErrKeyUnavailable, err)
	}

	key := bytes.TrimSpace(data)
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: key file %s is empty", encset.ErrKeyUnavailable, p.path)
	}
	return key, nil
}

// generate creates the key file unless another process created it first, in
// which case that process's key is returned.
func (p *Provider) generate() ([]byte, error) {
	secret := make([]byte, secretBytes)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("%w: failed to generate key: %w", encset.ErrKeyUnavailable, err)
	}
	key := []byte(uuid.New().String() + "." + hex.EncodeToString(secret))

	err := fsutil.WriteExclusive(p.path, func(w io.Writer) error {
		_, err := w.Write(append(key, '\n'))
		return err
	})
	if errors.Is(err, fs.ErrExist) {
		return p.read()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to write key file: %w", encset.ErrKeyUnavailable, err)
	}
	return key, nil
}
