//go:build windows

package atomic

import (
	"fmt"
	"path/filepath"
	"strings"
)

// sameDevice compares the volume names of both paths
func sameDevice(src, dst string) (bool, error) {
	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return false, err
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return false, err
	}

	srcVolume, dstVolume := filepath.VolumeName(srcAbs), filepath.VolumeName(dstAbs)
	if srcVolume == "" || dstVolume == "" {
		return false, fmt.Errorf("no volume name in %s or %s", srcAbs, dstAbs)
	}
	return strings.EqualFold(srcVolume, dstVolume), nil
}
