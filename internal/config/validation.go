package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var sizePattern = regexp.MustCompile(`^\d+(KB|MB|GB|TB|PB)$`)

// validateSize validates the size format (e.g., "10MB", "1GB")
func validateSize(fl validator.FieldLevel) bool {
	return sizePattern.MatchString(strings.ToUpper(fl.Field().String()))
}

// validateDirPath accepts an absolute path that is either missing or a
// directory. The stock "dirpath" validator rejects some valid paths.
func validateDirPath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" || !filepath.IsAbs(path) {
		return false
	}

	fi, err := os.Stat(filepath.Clean(path))
	if err == nil {
		return fi.IsDir()
	}
	return os.IsNotExist(err)
}

// expandPath expands environment variables and "~" in paths
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	path = os.ExpandEnv(path)

	return filepath.Abs(path)
}
