//go:build !linux && !darwin && !windows

package machine

import (
	"context"
	"os"
)

// platformMachineID falls back to the host name where no stable machine id
// is known.
func platformMachineID(ctx context.Context) (string, error) {
	return os.Hostname()
}
