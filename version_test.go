package encset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionInfo(t *testing.T) {
	commit, date := GitCommit, BuildDate
	t.Cleanup(func() { GitCommit, BuildDate = commit, date })

	GitCommit = ""
	assert.Equal(t, "encset v"+Version, VersionInfo())

	GitCommit, BuildDate = "abc123", "2026-01-02"
	assert.Equal(t, "encset v"+Version+" (commit: abc123, built: 2026-01-02)", VersionInfo())
}
