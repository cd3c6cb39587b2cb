package batch

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/babarot/rr/internal/core/atomic"
)

// AppendTag pushes id onto the tag log, creating the log if needed.
func (s *Store) AppendTag(id string) error {
	if err := validateID(id); err != nil {
		return ioFailure("append_tag", s.TagLogPath(), err)
	}

	f, err := os.OpenFile(s.TagLogPath(), os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return ioFailure("append_tag", s.TagLogPath(), err)
	}
	defer f.Close()

	line := id + "\n"
	// An edited log may lack its final newline
	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, info.Size()-1); err != nil && err != io.EOF {
			return ioFailure("append_tag", s.TagLogPath(), err)
		}
		if last[0] != '\n' {
			line = "\n" + line
		}
	}

	if _, err := f.WriteString(line); err != nil {
		return ioFailure("append_tag", s.TagLogPath(), err)
	}
	if err := f.Sync(); err != nil {
		return ioFailure("append_tag", s.TagLogPath(), err)
	}

	slog.Debug("tag appended", "id", id)
	return nil
}

// PopLastTag removes and returns the most recent id. ok is false when the
// log is empty or absent, in which case nothing is written.
func (s *Store) PopLastTag() (id string, ok bool, err error) {
	tags, err := s.Tags()
	if err != nil {
		return "", false, err
	}
	if len(tags) == 0 {
		return "", false, nil
	}

	id = tags[len(tags)-1]
	rest := tags[:len(tags)-1]

	tm, err := atomic.NewTempManager(s.root)
	if err != nil {
		return "", false, ioFailure("pop_tag", s.root, err)
	}
	if err := tm.WriteFile(s.TagLogPath(), formatTags(rest)); err != nil {
		return "", false, ioFailure("pop_tag", s.TagLogPath(), err)
	}

	slog.Debug("tag popped", "id", id, "remaining", len(rest))
	return id, true, nil
}

// Tags returns every id in the log, oldest first. Blank lines are skipped.
func (s *Store) Tags() ([]string, error) {
	data, err := os.ReadFile(s.TagLogPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ioFailure("read_tags", s.TagLogPath(), err)
	}
	return parseTags(data), nil
}

func parseTags(data []byte) []string {
	var tags []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tags = append(tags, line)
		}
	}
	return tags
}

func formatTags(tags []string) []byte {
	if len(tags) == 0 {
		return nil
	}
	return []byte(strings.Join(tags, "\n") + "\n")
}
