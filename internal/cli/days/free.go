package days

import (
	"fmt"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/scheduler"
)

// FreeCmd lists the unplanned gaps between wake and sleep.
type FreeCmd struct {
	Date string `arg:"" optional:"" help:"Date to check (YYYY-MM-DD, today, yesterday or tomorrow)." default:"today"`
	Min  int    `help:"Hide gaps shorter than this many minutes." default:"15"`
}

func (c *FreeCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	day, err := ctx.Store.GetDay(date)
	if err != nil {
		return err
	}

	sched := scheduler.New()
	if c.Min > 0 {
		sched.MinBlock = c.Min
	}
	blocks, err := sched.FreeBlocks(day)
	if err != nil {
		return err
	}

	window, _ := scheduler.Window(day)
	ctx.Println(cli.Heading(date, date == ctx.Store.Today()))
	ctx.Printf("Waking window: %s\n\n", window)
	if len(blocks) == 0 {
		ctx.Println("No free time left.")
		return nil
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("FREE", "LENGTH")
	total := 0
	for _, b := range blocks {
		tbl.AddRow(b.String(), formatLength(b.Minutes()))
		total += b.Minutes()
	}
	ctx.Println(tbl)
	ctx.Printf("\nTotal free: %s\n", formatLength(total))
	return nil
}

func formatLength(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}
