package cli

import (
	"fmt"
	"io"
	"runtime/debug"
)

const appURL = "https://github.com/babarot/rr"

type Version struct {
	AppName   string
	Version   string
	Revision  string
	BuildDate string
}

// String renders "rr v1.2.3 (rev abc1234, built 2025-01-02)". Builds without
// ldflags fall back to the module version recorded by the go tool.
func (v Version) String() string {
	version := v.Version
	if version == "" || version == "unset" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	return fmt.Sprintf("%s %s (rev %s, built %s)", v.AppName, version, v.Revision, v.BuildDate)
}

func (c CLI) printVersion(w io.Writer) {
	fmt.Fprintln(w, c.version)
	fmt.Fprintln(w, "store:", c.config.Core.Root)
	fmt.Fprintln(w, appURL)
}
