package cli

import (
	"fmt"
	"log/slog"

	"al.essio.dev/pkg/shellescape"
	"github.com/fatih/color"
)

func (c *CLI) Restore() error {
	slog.Debug("cli.restore started")
	defer slog.Debug("cli.restore finished")

	result, err := c.manager.Restore()
	if err != nil {
		return err
	}

	if c.verbose() {
		for _, item := range result.Restored {
			fmt.Fprintf(c.stdout, "restored '%s'\n", item.To)
		}
	}

	c.printFailures(result.Failed)

	if result.Quarantined {
		fmt.Fprintf(c.stdout, "%s: moved %d entries to %s\n",
			color.New(color.FgYellow).Sprint("conflict detected"),
			len(result.Restored),
			shellescape.Quote(result.Destination),
		)
		return nil
	}

	fmt.Fprintf(c.stdout, "restored %d entries to %s\n", len(result.Restored), result.Destination)
	return nil
}
