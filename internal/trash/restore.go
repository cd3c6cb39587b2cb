package trash

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/babarot/rr/internal/batch"
	"github.com/samber/lo"
)

// RestoreResult describes one restore operation
type RestoreResult struct {
	Batch *batch.Batch

	// Destination is the origin directory, or the quarantine directory
	// when Quarantined is set.
	Destination string
	Quarantined bool

	// Conflicts lists the entry names that already existed at the origin.
	Conflicts []string

	Restored []Item
	Failed   []*ItemError
}

// Restore pops the most recent batch and moves its entries back to the
// origin. If any entry name is already taken there, the whole batch goes
// to a quarantine directory under the origin instead.
//
// The popped tag is not pushed back when the batch turns out to be
// unusable; the batch directory is left in place for manual recovery.
func (m *Manager) Restore() (*RestoreResult, error) {
	slog.Debug("trash.restore started")
	defer slog.Debug("trash.restore finished")

	// 1. Pop the last tag
	id, ok, err := m.store.PopLastTag()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, batch.ErrNoHistory
	}

	// 2. Resolve the batch
	b, err := m.store.ResolveBatch(id)
	if err != nil {
		slog.Warn("history entry dropped", "id", id, "error", err)
		return nil, fmt.Errorf("batch %s dropped from history: %w", id, err)
	}
	entries, err := m.store.Entries(b)
	if err != nil {
		slog.Warn("history entry dropped", "id", id, "error", err)
		return nil, fmt.Errorf("batch %s dropped from history: %w", id, err)
	}

	// 3. Conflict scan, all or nothing
	result := &RestoreResult{
		Batch:       b,
		Destination: b.Origin,
		Conflicts:   conflicts(b.Origin, entries),
	}
	if len(result.Conflicts) > 0 {
		result.Destination = b.QuarantineDir()
		result.Quarantined = true
		slog.Info("restore conflicts detected", "id", id, "conflicts", result.Conflicts)

		if err := os.MkdirAll(result.Destination, 0755); err != nil {
			return nil, fmt.Errorf("create quarantine directory: %w", err)
		}
	}

	// 4. Move every entry
	for _, entry := range entries {
		src := filepath.Join(b.ContentsDir(), entry.Name())
		dst := filepath.Join(result.Destination, entry.Name())
		if err := m.move(src, dst); err != nil {
			slog.Warn("failed to restore", "entry", entry.Name(), "error", err)
			result.Failed = append(result.Failed, &ItemError{Path: src, Err: err})
			continue
		}
		result.Restored = append(result.Restored, Item{From: src, To: dst, IsDir: entry.IsDir()})
	}

	slog.Info("batch restored",
		"id", id,
		"destination", result.Destination,
		"quarantined", result.Quarantined,
		"restored", len(result.Restored),
		"failed", len(result.Failed),
	)
	return result, nil
}

// conflicts returns the names of entries whose destination under origin is
// already occupied. Anything other than "does not exist" counts as occupied.
func conflicts(origin string, entries []fs.DirEntry) []string {
	return lo.FilterMap(entries, func(entry fs.DirEntry, _ int) (string, bool) {
		_, err := os.Lstat(filepath.Join(origin, entry.Name()))
		return entry.Name(), !os.IsNotExist(err)
	})
}
