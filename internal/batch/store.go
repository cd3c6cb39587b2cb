// Package batch manages the on-disk batch store: the root directory, the
// tag log and one directory per removal batch.
//
//	<root>/
//	  last.tag
//	  <batch-id>/
//	    rr_removed.restore_path.txt
//	    restore/
package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/babarot/rr/internal/clock"
	"github.com/babarot/rr/internal/core/atomic"
)

// maxIDAttempts bounds the search for a free batch id when the clock
// yields a time that is already taken.
const maxIDAttempts = 1000

// Store is the batch store rooted at a single directory. It holds no state
// between calls; every operation reads and writes the disk directly.
type Store struct {
	root  string
	clock clock.Clock
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used to generate batch ids
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// Open returns a Store rooted at root. Nothing is created on disk until the
// first batch is.
func Open(root string, opts ...Option) (*Store, error) {
	if root == "" {
		root = DefaultRoot
	}
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("batch root must be an absolute path: %s", root)
	}

	s := &Store{
		root:  filepath.Clean(root),
		clock: clock.RealClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the store root directory
func (s *Store) Root() string {
	return s.root
}

// TagLogPath returns the path of the tag log
func (s *Store) TagLogPath() string {
	return filepath.Join(s.root, TagLogName)
}

// CreateBatch creates <root>/<id>/restore/ under a fresh id.
func (s *Store) CreateBatch() (*Batch, error) {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return nil, ioFailure("create", s.root, err)
	}

	t := s.clock.Now()
	for i := 0; i < maxIDAttempts; i++ {
		id := NewID(t)
		dir := filepath.Join(s.root, id)

		err := os.Mkdir(dir, 0755)
		if errors.Is(err, fs.ErrExist) {
			t = t.Add(time.Microsecond)
			continue
		}
		if err != nil {
			return nil, ioFailure("create", dir, err)
		}

		b := &Batch{ID: id, Dir: dir}
		if err := os.Mkdir(b.ContentsDir(), 0755); err != nil {
			return nil, ioFailure("create", b.ContentsDir(), err)
		}
		slog.Debug("batch created", "id", id, "dir", dir, "attempts", i+1)
		return b, nil
	}

	return nil, ioFailure("create", s.root, fmt.Errorf("no free batch id after %d attempts", maxIDAttempts))
}

// RecordOrigin writes origin as the sole line of the batch's marker file.
func (s *Store) RecordOrigin(b *Batch, origin string) error {
	if !filepath.IsAbs(origin) {
		return ioFailure("record_origin", b.OriginFile(), fmt.Errorf("origin %q is not an absolute path", origin))
	}
	// The marker is trimmed on read, so such an origin would not round-trip
	if strings.TrimSpace(origin) != origin || strings.ContainsAny(origin, "\r\n") {
		return ioFailure("record_origin", b.OriginFile(), fmt.Errorf("origin %q cannot be stored in a one-line marker", origin))
	}

	tm, err := atomic.NewTempManager(b.Dir)
	if err != nil {
		return ioFailure("record_origin", b.Dir, err)
	}
	if err := tm.WriteFile(b.OriginFile(), []byte(origin+"\n")); err != nil {
		return ioFailure("record_origin", b.OriginFile(), err)
	}

	b.Origin = origin
	slog.Debug("origin recorded", "id", b.ID, "origin", origin)
	return nil
}

// ResolveBatch locates the batch for id and reads its origin marker.
func (s *Store) ResolveBatch(id string) (*Batch, error) {
	if err := validateID(id); err != nil {
		return nil, corrupt("resolve", id, err)
	}

	b := &Batch{ID: id, Dir: filepath.Join(s.root, id)}

	data, err := os.ReadFile(b.OriginFile())
	if err != nil {
		return nil, corrupt("resolve", b.OriginFile(), err)
	}
	origin, err := parseOrigin(data)
	if err != nil {
		return nil, corrupt("resolve", b.OriginFile(), err)
	}

	info, err := os.Stat(b.ContentsDir())
	if err != nil {
		return nil, corrupt("resolve", b.ContentsDir(), err)
	}
	if !info.IsDir() {
		return nil, corrupt("resolve", b.ContentsDir(), errors.New("not a directory"))
	}

	b.Origin = origin
	return b, nil
}

// Entries lists what sits directly inside the batch's contents directory.
func (s *Store) Entries(b *Batch) ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(b.ContentsDir())
	if err != nil {
		return nil, corrupt("entries", b.ContentsDir(), err)
	}
	return entries, nil
}

// parseOrigin validates the marker file contents: one non-empty line
// holding an absolute path.
func parseOrigin(data []byte) (string, error) {
	origin := strings.TrimSpace(string(data))
	if origin == "" {
		return "", errors.New("origin marker is empty")
	}
	if strings.ContainsAny(origin, "\r\n") {
		return "", errors.New("origin marker has more than one line")
	}
	if !filepath.IsAbs(origin) {
		return "", fmt.Errorf("origin %q is not an absolute path", origin)
	}
	return filepath.Clean(origin), nil
}
