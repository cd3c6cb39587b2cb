package fs

import (
	"path/filepath"
	"strings"
)

// IsUnsafePath checks if the given path is unsafe to remove
func IsUnsafePath(path string) (bool, error) {
	if path == "" {
		return true, nil
	}

	// First check the original path before any normalization
	// This preserves the original input like "." or ".."
	originalBase := filepath.Base(path)
	if originalBase == "." || originalBase == ".." {
		return true, nil
	}

	// Clean the path to check for normalized root paths
	cleaned := filepath.Clean(path)
	if cleaned == "/" || cleaned == filepath.VolumeName(cleaned)+string(filepath.Separator) {
		return true, nil
	}

	// Check double slashes and similar patterns
	if strings.HasPrefix(path, "//") {
		return true, nil
	}

	return false, nil
}

// BaseName returns the name an entry keeps once relocated. ok is false
// when the path has no usable base name ("", ".", "..", "/").
func BaseName(path string) (name string, ok bool) {
	if unsafe, _ := IsUnsafePath(path); unsafe {
		return "", false
	}
	name = filepath.Base(filepath.Clean(path))
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", false
	}
	return name, true
}
