package days

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/export"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/utils"
)

// ExportCmd writes days as an iCalendar file.
type ExportCmd struct {
	From   string `help:"First date to export." default:"today"`
	To     string `help:"Last date to export (defaults to --from)."`
	All    bool   `help:"Export every stored day."`
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) dates(ctx *cli.Context) ([]string, error) {
	if c.All {
		return ctx.Store.Dates(), nil
	}
	from, err := ctx.ResolveDate(c.From)
	if err != nil {
		return nil, err
	}
	to := from
	if c.To != "" {
		if to, err = ctx.ResolveDate(c.To); err != nil {
			return nil, err
		}
	}
	if to < from {
		return nil, fmt.Errorf("--to (%s) is before --from (%s)", to, from)
	}

	var dates []string
	for d := from; d <= to; {
		dates = append(dates, d)
		if d, err = utils.ShiftDate(d, 1); err != nil {
			return nil, err
		}
	}
	return dates, nil
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	dates, err := c.dates(ctx)
	if err != nil {
		return err
	}

	// Days that were never opened are skipped rather than created.
	var days []models.Day
	for _, d := range dates {
		day, ok := ctx.Store.Lookup(d)
		if !ok {
			continue
		}
		if _, err := utils.ParseDate(d); err != nil {
			if c.Output != "" {
				ctx.Warn(fmt.Sprintf("Skipping %s: not a calendar date", d))
			}
			continue
		}
		days = append(days, day)
	}

	var w io.Writer = ctx.Writer()
	if c.Output != "" {
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", c.Output, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, days, export.Options{}); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if c.Output != "" {
		ctx.Success(fmt.Sprintf("Exported %d day(s) to %s", len(days), c.Output))
	}
	return nil
}
