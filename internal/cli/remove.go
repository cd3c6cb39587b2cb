package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/babarot/rr/internal/core/atomic"
	"github.com/babarot/rr/internal/trash"
	"github.com/fatih/color"
	"github.com/samber/lo"
)

func (c *CLI) Remove(args []string) error {
	slog.Debug("cli.remove started")
	defer slog.Debug("cli.remove finished")

	result, err := c.manager.Remove(args)
	if err != nil {
		return err
	}

	if c.verbose() {
		for _, item := range result.Moved {
			if item.IsDir {
				fmt.Fprintf(c.stdout, "removed directory '%s'\n", item.From)
			} else {
				fmt.Fprintf(c.stdout, "removed '%s'\n", item.From)
			}
		}
	}

	failed := result.Failed
	if c.option.Rm.Force {
		failed = lo.Reject(failed, func(err *trash.ItemError, _ int) bool {
			return errors.Is(err, trash.ErrNotExist)
		})
	}
	c.printFailures(failed)

	return nil
}

// printFailures reports per-item errors the way rm does. A refused
// cross-device move also gets a pointer to the setting that allows it.
func (c *CLI) printFailures(failed []*trash.ItemError) {
	prefix := color.New(color.FgRed).Sprint("rr:")
	for _, err := range failed {
		fmt.Fprintf(c.stderr, "%s %v\n", prefix, err)
	}

	crossDevice := lo.ContainsBy(failed, func(err *trash.ItemError) bool {
		return atomic.IsCrossDevice(err)
	})
	if crossDevice && !c.config.Core.CrossDevice {
		fmt.Fprintf(c.stderr, "%s %s\n", prefix,
			color.New(color.FgYellow).Sprint("hint: set core.cross_device: true to copy across filesystems"))
	}
}
