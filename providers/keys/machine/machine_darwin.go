//go:build darwin

package machine

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

func platformMachineID(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "ioreg", "-rd1", "-c", "IOPlatformExpertDevice").Output()
	if err != nil {
		return "", fmt.Errorf("failed to run ioreg: %w", err)
	}
	return parseIORegUUID(string(out))
}

// parseIORegUUID extracts the value of a line like
//
//	"IOPlatformUUID" = "9C1C4A52-..."
func parseIORegUUID(out string) (string, error) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, `"IOPlatformUUID"`) {
			continue
		}
		_, value, ok := strings.Cut(line, "=")
		if !ok {
			break
		}
		return strings.Trim(strings.TrimSpace(value), `"`), nil
	}
	return "", fmt.Errorf("IOPlatformUUID not found in ioreg output")
}
