package atomic

import (
	"errors"
	"fmt"
)

// Sentinels wrapped by MoveError
var (
	ErrDestinationExists = errors.New("destination already exists")
	ErrSourceNotFound    = errors.New("source not found")
	ErrCrossDeviceMove   = errors.New("source and destination are on different filesystems")
	ErrInvalidPath       = errors.New("empty path")
)

// Steps of Move, recorded in MoveError.Op
const (
	opValidate     = "validate"
	opMkdirParent  = "mkdir_parent"
	opCheckDst     = "check_destination"
	opRename       = "rename"
	opCopy         = "copy"
	opRemoveSource = "remove_source"
	opRollback     = "rollback"
)

// MoveError tells which step of moving Src to Dst failed
type MoveError struct {
	Op  string
	Src string
	Dst string
	Err error
}

func NewMoveError(op, src, dst string, err error) error {
	return &MoveError{Op: op, Src: src, Dst: dst, Err: err}
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s %q -> %q: %v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

// CleanupError is returned when a leftover temp file cannot be removed
type CleanupError struct {
	Path string
	Err  error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("remove temp file %q: %v", e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error { return e.Err }

func IsCrossDevice(err error) bool { return errors.Is(err, ErrCrossDeviceMove) }

func IsDestinationExists(err error) bool { return errors.Is(err, ErrDestinationExists) }
