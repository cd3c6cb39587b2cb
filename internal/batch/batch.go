package batch

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultRoot is where batches live unless configured otherwise.
	DefaultRoot = "/var/tmp/rr_removed"

	// TagLogName is the stack of batch ids, one per line, oldest first.
	TagLogName = "last.tag"

	// OriginFileName holds the working directory a batch was removed from.
	OriginFileName = "rr_removed.restore_path.txt"

	// ContentsDirName is the subdirectory holding the removed entries.
	ContentsDirName = "restore"

	// QuarantinePrefix names the conflict directory created under the origin.
	QuarantinePrefix = "restore_conflicted_"

	// IDLayout sorts lexically in chronological order.
	IDLayout = "2006-01-02_15-04-05.000000"
)

// Batch is one removal event.
type Batch struct {
	ID string

	// Dir is <root>/<id>
	Dir string

	// Origin is the absolute working directory at removal time. Empty until
	// recorded or resolved.
	Origin string
}

// ContentsDir returns the directory holding the removed entries.
func (b *Batch) ContentsDir() string {
	return filepath.Join(b.Dir, ContentsDirName)
}

// OriginFile returns the path of the origin marker.
func (b *Batch) OriginFile() string {
	return filepath.Join(b.Dir, OriginFileName)
}

// QuarantineDir returns where a conflicting restore puts the entries.
func (b *Batch) QuarantineDir() string {
	return filepath.Join(b.Origin, QuarantinePrefix+b.ID)
}

// RemovedAt returns the time encoded in the batch id.
func (b *Batch) RemovedAt() (time.Time, error) {
	return ParseID(b.ID)
}

// NewID formats t as a batch id.
func NewID(t time.Time) string {
	return t.Format(IDLayout)
}

// ParseID recovers the removal time from a batch id.
func ParseID(id string) (time.Time, error) {
	return time.ParseInLocation(IDLayout, id, time.Local)
}

// validateID rejects ids that would escape the root when joined to it.
func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("invalid batch id: empty")
	}
	if strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid batch id %q: must not contain path separators", id)
	}
	if id == "." || id == ".." {
		return fmt.Errorf("invalid batch id %q", id)
	}
	return nil
}
