package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/babarot/rr/internal/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseWithoutFile(t *testing.T) {
	cfg, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, batch.DefaultRoot, cfg.Core.Root)
	assert.True(t, cfg.Core.CrossDevice)
	assert.False(t, cfg.Logging.Enabled)
}

func TestParseOverridesDefaults(t *testing.T) {
	root := filepath.Join(t.TempDir(), "trash")
	path := writeConfig(t, `
core:
  root: `+root+`
  verbose: true
  cross_device: false
logging:
  enabled: true
  level: info
  format: json
  rotation:
    max_size: 1MB
    max_files: 5
`)

	cfg, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Core.Root)
	assert.True(t, cfg.Core.Verbose)
	assert.False(t, cfg.Core.CrossDevice)
	assert.True(t, cfg.Logging.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "1MB", cfg.Logging.Rotation.MaxSize)
	assert.Equal(t, 5, cfg.Logging.Rotation.MaxFiles)
}

func TestParsePartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "core:\n  verbose: true\n")

	cfg, err := Parse(path)
	require.NoError(t, err)
	assert.True(t, cfg.Core.Verbose)
	assert.Equal(t, batch.DefaultRoot, cfg.Core.Root)
	assert.Equal(t, "10MB", cfg.Logging.Rotation.MaxSize)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestParseInvalid(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "core:\n  bogus: 1\n"},
		{"root is a file", "core:\n  root: " + file + "\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"bad size", "logging:\n  rotation:\n    max_size: huge\n"},
		{"negative max files", "logging:\n  rotation:\n    max_files: -1\n"},
		{"not yaml", "core: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/trash")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "trash"), got)

	t.Setenv("RR_TEST_DIR", "/srv")
	got, err = expandPath("$RR_TEST_DIR/trash")
	require.NoError(t, err)
	assert.Equal(t, "/srv/trash", got)
}
