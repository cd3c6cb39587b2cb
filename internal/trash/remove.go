package trash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/babarot/rr/internal/batch"
	"github.com/babarot/rr/internal/utils/fs"
)

// RemoveResult describes one remove operation
type RemoveResult struct {
	Batch  *batch.Batch
	Moved  []Item
	Failed []*ItemError
}

// Remove moves every path into a new batch. The batch and its tag are
// created before any path is touched; a failure there is fatal and nothing
// is moved. Failures of individual paths are collected and never stop the
// remaining ones.
func (m *Manager) Remove(paths []string) (*RemoveResult, error) {
	slog.Debug("trash.remove started", "paths", len(paths))
	defer slog.Debug("trash.remove finished")

	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	// 1. Prepare the batch
	origin, err := m.getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	b, err := m.store.CreateBatch()
	if err != nil {
		return nil, err
	}
	if err := m.store.RecordOrigin(b, origin); err != nil {
		return nil, err
	}
	if err := m.store.AppendTag(b.ID); err != nil {
		return nil, err
	}

	// 2. Move each path independently, in the order given
	result := &RemoveResult{Batch: b}
	for _, path := range paths {
		item, err := m.removePath(b, path)
		if err != nil {
			slog.Warn("failed to remove", "path", path, "error", err)
			result.Failed = append(result.Failed, &ItemError{Path: path, Err: err})
			continue
		}
		result.Moved = append(result.Moved, item)
	}

	slog.Info("batch removed",
		"id", b.ID,
		"origin", origin,
		"moved", len(result.Moved),
		"failed", len(result.Failed),
	)
	return result, nil
}

func (m *Manager) removePath(b *batch.Batch, path string) (Item, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Item{}, ErrNotExist
		}
		return Item{}, err
	}

	name, ok := fs.BaseName(path)
	if !ok {
		return Item{}, ErrInvalidPath
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Item{}, err
	}
	if isWithin(m.store.Root(), abs) || isWithin(abs, m.store.Root()) {
		return Item{}, ErrContainsStore
	}

	dst := filepath.Join(b.ContentsDir(), name)
	if err := m.move(path, dst); err != nil {
		return Item{}, err
	}

	return Item{From: path, To: dst, IsDir: info.IsDir()}, nil
}

// isWithin reports whether path is dir or lies somewhere below it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
