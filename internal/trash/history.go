package trash

import (
	"io/fs"
	"path/filepath"
	"slices"
	"time"

	"github.com/babarot/rr/internal/batch"
	"github.com/samber/lo"
)

// Summary describes one batch still on the tag log
type Summary struct {
	ID        string
	RemovedAt time.Time
	Origin    string
	Names     []string
	Size      int64

	// Err is set when the batch cannot be resolved; a restore of it would
	// fail with batch.ErrCorruptBatch.
	Err error
}

// History lists the batches on the tag log, most recent first. Unusable
// batches are reported through Summary.Err rather than failing the listing.
func (m *Manager) History() ([]Summary, error) {
	tags, err := m.store.Tags()
	if err != nil {
		return nil, err
	}

	summaries := lo.Map(tags, func(id string, _ int) Summary {
		return m.summarize(id)
	})
	slices.Reverse(summaries)
	return summaries, nil
}

func (m *Manager) summarize(id string) Summary {
	s := Summary{ID: id}
	s.RemovedAt, _ = batch.ParseID(id)

	b, err := m.store.ResolveBatch(id)
	if err != nil {
		s.Err = err
		return s
	}
	s.Origin = b.Origin

	entries, err := m.store.Entries(b)
	if err != nil {
		s.Err = err
		return s
	}
	s.Names = lo.Map(entries, func(e fs.DirEntry, _ int) string {
		return e.Name()
	})
	s.Size = dirSize(b.ContentsDir())
	return s
}

// dirSize sums the sizes of regular files below dir, skipping what it
// cannot read.
func dirSize(dir string) int64 {
	var size int64
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				size += info.Size()
			}
		}
		return nil
	})
	return size
}
