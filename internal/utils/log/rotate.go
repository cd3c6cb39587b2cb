package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/babarot/rr/internal/config"
	"github.com/docker/go-units"
)

// RotateWriter is an append-only log file that shifts itself to numbered
// backups (rr.log.1 is the newest) once a write would push it past the size
// limit. At most keep backups survive; with keep 0 the file just starts over.
type RotateWriter struct {
	mu    sync.Mutex
	path  string
	limit int64
	keep  int

	f    *os.File
	size int64
}

func NewRotateWriter(path string, cfg config.RotationConfig) (*RotateWriter, error) {
	limit, err := units.FromHumanSize(cfg.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("invalid max size format: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	w := &RotateWriter{path: path, limit: limit, keep: cfg.MaxFiles}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotateWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// A record larger than the limit still goes into a fresh file whole
	if w.size > 0 && w.size+int64(len(p)) > w.limit {
		if err := w.shift(); err != nil {
			return 0, err
		}
	}

	n, err := w.f.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *RotateWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

func (w *RotateWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	w.f, w.size = f, info.Size()
	return nil
}

// shift drops the oldest backup, renames path.N-1 to path.N down to path
// itself becoming path.1, then reopens an empty file.
func (w *RotateWriter) shift() error {
	if err := w.f.Close(); err != nil {
		return err
	}
	w.f = nil

	if w.keep == 0 {
		if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return w.open()
	}

	if err := os.Remove(w.backup(w.keep)); err != nil && !os.IsNotExist(err) {
		return err
	}
	for i := w.keep - 1; i >= 1; i-- {
		if err := os.Rename(w.backup(i), w.backup(i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	if err := os.Rename(w.path, w.backup(1)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return w.open()
}

func (w *RotateWriter) backup(n int) string {
	return fmt.Sprintf("%s.%d", w.path, n)
}
