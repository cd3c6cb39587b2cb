package trash

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPaths is a usage error: Remove was called without paths.
	ErrNoPaths = errors.New("too few arguments")

	// ErrNotExist is reported per item when a path to remove is missing.
	ErrNotExist = errors.New("does not exist")

	// ErrInvalidPath is reported per item when no base name can be taken.
	ErrInvalidPath = errors.New("invalid path")

	// ErrContainsStore is reported per item when the path is the batch store
	// root, holds it, or lies inside it.
	ErrContainsStore = errors.New("refusing to remove the trash itself")
)

// ItemError is a non-fatal failure for a single entry of a batch.
type ItemError struct {
	Path string
	Err  error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
