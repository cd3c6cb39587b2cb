package atomic

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
)

// MoveOptions specifies options for move operations
type MoveOptions struct {
	// AllowCrossDev falls back to copy and delete when src and dst are on
	// different filesystems. When false such moves fail with ErrCrossDeviceMove.
	AllowCrossDev bool
}

// Move relocates src to dst. An existing dst is never replaced.
func Move(src, dst string, opts MoveOptions) error {
	// 1. Validate paths
	if err := validatePaths(src, dst); err != nil {
		return NewMoveError(opValidate, src, dst, err)
	}

	// 2. Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return NewMoveError(opMkdirParent, src, dst, err)
	}

	// 3. Refuse to clobber
	if _, err := os.Lstat(dst); err == nil {
		return NewMoveError(opCheckDst, src, dst, ErrDestinationExists)
	}

	// 4. Same device: plain rename(2)
	sameDevice, err := sameDevice(src, dst)
	if err != nil {
		slog.Debug("could not compare devices, trying rename", "src", src, "dst", dst, "error", err)
		sameDevice = true
	}
	if sameDevice {
		if err := os.Rename(src, dst); err != nil {
			return NewMoveError(opRename, src, dst, err)
		}
		slog.Debug("file moved", "from", src, "to", dst)
		return nil
	}

	// 5. Different devices: copy and delete, if allowed
	if !opts.AllowCrossDev {
		return NewMoveError(opRename, src, dst, ErrCrossDeviceMove)
	}
	slog.Debug("different partitions detected, falling back to copy-and-delete", "from", src, "to", dst)
	return copyAndDelete(src, dst)
}

// copyAndDelete copies a file or directory and then deletes the original
func copyAndDelete(src, dst string) error {
	opts := cp.Options{
		OnSymlink: func(src string) cp.SymlinkAction {
			return cp.Shallow // keep links as links
		},
		PreserveTimes: true,
		PreserveOwner: true,
		Sync:          true,
	}

	if err := cp.Copy(src, dst, opts); err != nil {
		return NewMoveError(opCopy, src, dst, err)
	}

	if err := os.RemoveAll(src); err != nil {
		// Try to clean up destination on failure
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			return NewMoveError(opRollback, src, dst,
				fmt.Errorf("failed to remove both source and destination: %v, %v", err, rmErr))
		}
		return NewMoveError(opRemoveSource, src, dst, err)
	}

	return nil
}

// validatePaths performs basic path validation
func validatePaths(src, dst string) error {
	if src == "" || dst == "" {
		return ErrInvalidPath
	}

	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			return ErrSourceNotFound
		}
		return err
	}

	return nil
}
