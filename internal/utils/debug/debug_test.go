package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestShowExistingLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rr.log")
	if err := os.WriteFile(path, []byte("first\nsecond\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Logs(&buf, path, true, false); err != nil {
		t.Fatalf("Logs() error = %v", err)
	}
	if got, want := buf.String(), "first\nsecond\n"; got != want {
		t.Errorf("Logs() = %q, want %q", got, want)
	}
}

func TestShowExistingLogsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rr.log")

	tests := []struct {
		name    string
		enabled bool
	}{
		{"logging disabled", false},
		{"logging enabled", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Logs(&buf, path, tt.enabled, false); err == nil {
				t.Error("Logs() expected error for missing file")
			}
		})
	}
}

func TestLiveLogsRequiresLogging(t *testing.T) {
	var buf bytes.Buffer
	if err := Logs(&buf, filepath.Join(t.TempDir(), "rr.log"), false, true); err == nil {
		t.Error("Logs() expected error when logging is disabled")
	}
}
