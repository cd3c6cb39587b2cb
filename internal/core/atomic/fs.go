//go:build !windows

package atomic

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// sameDevice reports whether rename(2) can move src to dst: src (not
// followed if it is a link) and the directory that will hold dst must share
// st_dev.
func sameDevice(src, dst string) (bool, error) {
	srcDev, err := device(os.Lstat(src))
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", src, err)
	}
	dstDev, err := device(os.Stat(filepath.Dir(dst)))
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", filepath.Dir(dst), err)
	}
	return srcDev == dstDev, nil
}

func device(info os.FileInfo, err error) (uint64, error) {
	if err != nil {
		return 0, err
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, fmt.Errorf("no device number for %s", info.Name())
	}
	return uint64(st.Dev), nil
}
