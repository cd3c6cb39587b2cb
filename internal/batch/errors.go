package batch

import "errors"

var (
	// ErrIOFailure marks a filesystem failure that aborts the invocation.
	ErrIOFailure = errors.New("i/o failure")

	// ErrCorruptBatch is returned when a tag exists but its batch directory
	// or origin marker cannot be used.
	ErrCorruptBatch = errors.New("corrupt batch")

	// ErrNoHistory is returned when the tag log is empty or absent.
	ErrNoHistory = errors.New("nothing to restore")
)

// StoreError wraps an error with the store operation and path involved.
// errors.Is matches both Kind and the underlying error.
type StoreError struct {
	Op   string // "create", "record_origin", "append_tag", "pop_tag", "resolve"
	Path string
	Kind error // ErrIOFailure or ErrCorruptBatch
	Err  error
}

func (e *StoreError) Error() string {
	msg := e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Path == "" {
		return e.Op + ": " + msg
	}
	return e.Op + " " + e.Path + ": " + msg
}

func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func ioFailure(op, path string, err error) error {
	return &StoreError{Op: op, Path: path, Kind: ErrIOFailure, Err: err}
}

func corrupt(op, path string, err error) error {
	return &StoreError{Op: op, Path: path, Kind: ErrCorruptBatch, Err: err}
}

// IsCorrupt returns true if the error is ErrCorruptBatch
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptBatch)
}

// IsNoHistory returns true if the error is ErrNoHistory
func IsNoHistory(err error) bool {
	return errors.Is(err, ErrNoHistory)
}
