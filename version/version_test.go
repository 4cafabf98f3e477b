package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullVersion(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })

	Version, Commit, Date = "v1.2.3", "0123456789abcdef", "2024-01-01T00:00:00Z"
	assert.Equal(t, "v1.2.3 (0123456, built 2024-01-01T00:00:00Z)", GetFullVersion())

	Date = ""
	Commit = "0123456789abcdef"
	if GetBuildDate() == "unknown" {
		assert.Equal(t, "v1.2.3 (0123456)", GetFullVersion())
	}

	Commit = "abc"
	assert.Equal(t, "v1.2.3", GetFullVersion())
	assert.Equal(t, "slackfs", GetInfo().Package)
}
