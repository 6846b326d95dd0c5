//go:build linux

package machine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

var machineIDFiles = []string{"/etc/machine-id", "/var/lib/dbus/machine-id"}

func platformMachineID(ctx context.Context) (string, error) {
	return readFirst(machineIDFiles)
}

func readFirst(paths []string) (string, error) {
	var errs []error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
		errs = append(errs, fmt.Errorf("%s is empty", path))
	}
	return "", errors.Join(errs...)
}
