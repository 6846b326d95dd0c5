// Package machine provides a KeyProvider bound to the current device and OS
// user.
//
// The key is SHA-256 over the platform machine identifier and the user name:
//   - Linux: /etc/machine-id, falling back to /var/lib/dbus/machine-id
//   - macOS: IOPlatformUUID as reported by ioreg
//   - Windows: HKLM\SOFTWARE\Microsoft\Cryptography\MachineGuid
//
// Copying a settings file to another machine or account makes its values
// unreadable.
package machine

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/hengadev/encset"
)

// Provider derives the local storage key from the machine identity.
type Provider struct {
	machineID func(ctx context.Context) (string, error)
	userName  func() (string, error)
}

// New returns a Provider reading the identity of the running platform.
func New() *Provider {
	return &Provider{
		machineID: platformMachineID,
		userName:  currentUser,
	}
}

// LocalStorageKey returns SHA-256(machine id + ":" + user name).
func (p *Provider) LocalStorageKey(ctx context.Context) ([]byte, error) {
	id, err := p.machineID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read machine id: %w", encset.ErrKeyUnavailable, err)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: machine id is empty", encset.ErrKeyUnavailable)
	}

	name, err := p.userName()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read user name: %w", encset.ErrKeyUnavailable, err)
	}

	sum := sha256.Sum256([]byte(id + ":" + name))
	return sum[:], nil
}

func currentUser() (string, error) {
	u, err := user.Current()
	if err == nil && u.Username != "" {
		return u.Username, nil
	}
	for _, env := range []string{"USER", "USERNAME", "LOGNAME"} {
		if name := os.Getenv(env); name != "" {
			return name, nil
		}
	}
	if err != nil {
		return "", err
	}
	return "", fmt.Errorf("user name is unknown")
}
