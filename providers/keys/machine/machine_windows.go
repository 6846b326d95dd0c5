//go:build windows

package machine

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const cryptographyKey = `SOFTWARE\Microsoft\Cryptography`

func platformMachineID(ctx context.Context) (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, cryptographyKey, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", fmt.Errorf("failed to open registry key: %w", err)
	}
	defer k.Close()

	guid, _, err := k.GetStringValue("MachineGuid")
	if err != nil {
		return "", fmt.Errorf("failed to read MachineGuid: %w", err)
	}
	return guid, nil
}
