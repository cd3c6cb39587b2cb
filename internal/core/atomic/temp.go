package atomic

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// TempManager hands out temporary files inside a base directory. Keeping
// them next to their final destination makes the closing rename atomic.
type TempManager struct {
	baseDir string
}

// NewTempManager creates a new TempManager instance
func NewTempManager(baseDir string) (*TempManager, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}

	return &TempManager{
		baseDir: baseDir,
	}, nil
}

// SafeWriter writes into a temporary file that replaces its destination
// only on Commit.
type SafeWriter struct {
	path     string
	file     *os.File
	finished bool
}

// NewSafeWriter creates a new SafeWriter
func (m *TempManager) NewSafeWriter(prefix string) (*SafeWriter, error) {
	path := filepath.Join(m.baseDir, fmt.Sprintf(".%s.%s.tmp", prefix, uuid.New().String()))

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &SafeWriter{
		path: path,
		file: file,
	}, nil
}

// Write writes data to the temporary file
func (w *SafeWriter) Write(p []byte) (n int, err error) {
	if w.finished {
		return 0, fmt.Errorf("write to finished writer")
	}
	return w.file.Write(p)
}

// Commit syncs the temporary file and renames it over dst
func (w *SafeWriter) Commit(dst string) error {
	if w.finished {
		return fmt.Errorf("commit finished writer")
	}
	w.finished = true

	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("sync file: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}

	if err := os.Rename(w.path, dst); err != nil {
		return fmt.Errorf("rename to destination: %w", err)
	}

	return nil
}

// Cleanup removes the temporary file unless it was committed. It is safe to
// defer right after NewSafeWriter.
func (w *SafeWriter) Cleanup() error {
	_ = w.file.Close()
	if _, err := os.Stat(w.path); err != nil {
		return nil
	}
	if err := os.Remove(w.path); err != nil {
		return &CleanupError{Path: w.path, Err: err}
	}
	return nil
}

// WriteFile atomically replaces dst with data.
func (m *TempManager) WriteFile(dst string, data []byte) error {
	w, err := m.NewSafeWriter(filepath.Base(dst))
	if err != nil {
		return err
	}
	defer w.Cleanup()

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	return w.Commit(dst)
}
