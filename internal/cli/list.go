package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

func (c *CLI) List() error {
	slog.Debug("cli.list started")
	defer slog.Debug("cli.list finished")

	summaries, err := c.manager.History()
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintln(c.stdout, "no removed batches")
		return nil
	}

	table := tablewriter.NewWriter(c.stdout)
	table.SetHeader([]string{"ID", "Removed", "Entries", "Size", "Origin"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetColumnSeparator("")
	table.SetCenterSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, s := range summaries {
		if s.Err != nil {
			table.Append([]string{s.ID, "-", "-", "-", fmt.Sprintf("(corrupt: %v)", s.Err)})
			continue
		}
		table.Append([]string{
			s.ID,
			humanize.Time(s.RemovedAt),
			strconv.Itoa(len(s.Names)),
			humanize.Bytes(uint64(s.Size)),
			s.Origin,
		})
	}

	table.Render()
	return nil
}
