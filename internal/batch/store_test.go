package batch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/babarot/rr/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 9, 14, 5, 7, 123456000, time.Local)

func newTestStore(t *testing.T) (*Store, *clock.FakeClock) {
	t.Helper()
	c := clock.NewFakeClock(epoch)
	s, err := Open(filepath.Join(t.TempDir(), "rr_removed"), WithClock(c))
	require.NoError(t, err)
	return s, c
}

func TestOpen(t *testing.T) {
	t.Run("relative root is rejected", func(t *testing.T) {
		_, err := Open("relative/root")
		assert.Error(t, err)
	})

	t.Run("empty root falls back to default", func(t *testing.T) {
		s, err := Open("")
		require.NoError(t, err)
		assert.Equal(t, DefaultRoot, s.Root())
	})

	t.Run("nothing is created", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "absent")
		_, err := Open(root)
		require.NoError(t, err)
		_, err = os.Stat(root)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestCreateBatch(t *testing.T) {
	s, _ := newTestStore(t)

	b, err := s.CreateBatch()
	require.NoError(t, err)

	assert.Equal(t, "2024-03-09_14-05-07.123456", b.ID)
	assert.Equal(t, filepath.Join(s.Root(), b.ID), b.Dir)

	info, err := os.Stat(b.ContentsDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateBatchUniqueIDs(t *testing.T) {
	// A frozen clock forces every attempt onto the same instant
	s, _ := newTestStore(t)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		b, err := s.CreateBatch()
		require.NoError(t, err)
		assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	assert.Contains(t, ids, "2024-03-09_14-05-07.123460")
}

func TestCreateBatchRootNotWritable(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	s, err := Open(filepath.Join(blocker, "root"))
	require.NoError(t, err)

	_, err = s.CreateBatch()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIOFailure)
}

func TestRecordOriginAndResolve(t *testing.T) {
	s, _ := newTestStore(t)
	b, err := s.CreateBatch()
	require.NoError(t, err)

	origin := t.TempDir()
	require.NoError(t, s.RecordOrigin(b, origin))
	assert.Equal(t, origin, b.Origin)

	data, err := os.ReadFile(b.OriginFile())
	require.NoError(t, err)
	assert.Equal(t, origin+"\n", string(data))

	got, err := s.ResolveBatch(b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, origin, got.Origin)
	assert.Equal(t, filepath.Join(origin, QuarantinePrefix+b.ID), got.QuarantineDir())
}

func TestRecordOriginRejectsRelative(t *testing.T) {
	s, _ := newTestStore(t)
	b, err := s.CreateBatch()
	require.NoError(t, err)

	err = s.RecordOrigin(b, "not/absolute")
	assert.ErrorIs(t, err, ErrIOFailure)
}

func TestRecordOriginRejectsUnstorableOrigin(t *testing.T) {
	s, _ := newTestStore(t)
	base := t.TempDir()

	tests := []struct {
		name   string
		origin string
	}{
		{"trailing space", base + "/proj "},
		{"trailing tab", base + "/proj\t"},
		{"newline", base + "/pro\nj"},
		{"carriage return", base + "/pro\rj"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := s.CreateBatch()
			require.NoError(t, err)

			err = s.RecordOrigin(b, tt.origin)
			assert.ErrorIs(t, err, ErrIOFailure)
			assert.NoFileExists(t, b.OriginFile())
			assert.Empty(t, b.Origin)
		})
	}
}

func TestResolveBatchCorrupt(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, b *Batch)
	}{
		{
			name:  "missing marker",
			setup: func(t *testing.T, b *Batch) {},
		},
		{
			name: "empty marker",
			setup: func(t *testing.T, b *Batch) {
				require.NoError(t, os.WriteFile(b.OriginFile(), []byte("  \n"), 0644))
			},
		},
		{
			name: "relative origin",
			setup: func(t *testing.T, b *Batch) {
				require.NoError(t, os.WriteFile(b.OriginFile(), []byte("home/user\n"), 0644))
			},
		},
		{
			name: "two lines",
			setup: func(t *testing.T, b *Batch) {
				require.NoError(t, os.WriteFile(b.OriginFile(), []byte("/a\n/b\n"), 0644))
			},
		},
		{
			name: "contents dir missing",
			setup: func(t *testing.T, b *Batch) {
				require.NoError(t, os.WriteFile(b.OriginFile(), []byte("/a\n"), 0644))
				require.NoError(t, os.Remove(b.ContentsDir()))
			},
		},
		{
			name: "contents is a file",
			setup: func(t *testing.T, b *Batch) {
				require.NoError(t, os.WriteFile(b.OriginFile(), []byte("/a\n"), 0644))
				require.NoError(t, os.Remove(b.ContentsDir()))
				require.NoError(t, os.WriteFile(b.ContentsDir(), nil, 0644))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			b, err := s.CreateBatch()
			require.NoError(t, err)
			tt.setup(t, b)

			_, err = s.ResolveBatch(b.ID)
			require.Error(t, err)
			assert.True(t, IsCorrupt(err), "want ErrCorruptBatch, got %v", err)
		})
	}
}

func TestResolveBatchOriginIsTrimmed(t *testing.T) {
	s, _ := newTestStore(t)
	b, err := s.CreateBatch()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(b.OriginFile(), []byte("  /srv/data/  \r\n"), 0644))

	got, err := s.ResolveBatch(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", got.Origin)
}

func TestResolveBatchRejectsTraversal(t *testing.T) {
	s, _ := newTestStore(t)
	for _, id := range []string{"", ".", "..", "../etc", "a/b"} {
		_, err := s.ResolveBatch(id)
		assert.True(t, IsCorrupt(err), "id %q: got %v", id, err)
	}
}

func TestEntries(t *testing.T) {
	s, _ := newTestStore(t)
	b, err := s.CreateBatch()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(b.ContentsDir(), "a.txt"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(b.ContentsDir(), "dir"), 0755))

	entries, err := s.Entries(b)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Name())
	assert.Equal(t, "dir", entries[1].Name())
}

func TestParseID(t *testing.T) {
	got, err := ParseID(NewID(epoch))
	require.NoError(t, err)
	assert.True(t, got.Equal(epoch.Truncate(time.Microsecond)))

	_, err = ParseID("not-an-id")
	assert.Error(t, err)
}

func TestIDsSortChronologically(t *testing.T) {
	earlier := NewID(time.Date(2024, 9, 30, 23, 59, 59, 999999000, time.Local))
	later := NewID(time.Date(2024, 10, 1, 0, 0, 0, 0, time.Local))
	assert.Less(t, earlier, later)
}
