package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSchedulerConfig_ValidYAML(t *testing.T) {
	path := writeTempYAML(t, `
policies:
  - name: FCFS
  - name: rr
    quantum: 4
trace: events
`)
	cfg, err := LoadSchedulerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []PolicyConfig{FCFS(), RoundRobin(4)}, cfg.Policies)
	assert.Equal(t, "events", cfg.Trace)
}

func TestLoadSchedulerConfig_NoPolicies_UsesDefaults(t *testing.T) {
	cfg, err := LoadSchedulerConfig(writeTempYAML(t, "trace: none\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicies(), cfg.Policies)
}

func TestLoadSchedulerConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown policy", "policies:\n  - name: sjf\n"},
		{"rr without quantum", "policies:\n  - name: rr\n"},
		{"negative quantum", "policies:\n  - name: rr\n    quantum: -2\n"},
		{"fcfs with quantum", "policies:\n  - name: fcfs\n    quantum: 3\n"},
		{"bad trace level", "trace: loud\n"},
		{"not yaml", "policies: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadSchedulerConfig(writeTempYAML(t, tc.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadSchedulerConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultPolicies_FCFSThenRR10ThenRR5(t *testing.T) {
	got := DefaultPolicies()
	require.Len(t, got, 3)
	assert.False(t, got[0].Preemptive())
	assert.Equal(t, "FCFS", got[0].String())
	assert.Equal(t, "RR(q=10)", got[1].String())
	assert.Equal(t, "RR(q=5)", got[2].String())
	for _, pc := range got {
		assert.NoError(t, pc.Validate())
	}
}
