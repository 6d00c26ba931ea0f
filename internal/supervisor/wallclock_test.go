package supervisor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// The supervisor schedules against a logical clock only. Scan the package
// sources for wall-clock facilities to keep that property enforced.
func TestSupervisorSourceReferencesNoWallClock(t *testing.T) {
	entries, err := os.ReadDir(".")
	require.NoError(t, err)

	forbidden := []string{"time.Now", "time.Since", "time.Until", "time.Sleep", "time.Tick", "time.After"}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(".", name))
		require.NoError(t, err)

		for _, facility := range forbidden {
			require.NotContains(t, string(data), facility, "%s references %s", name, facility)
		}
	}
}
