package events

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/dayplan/internal/cli"
)

// EventAddCmd adds a major event: something notable with no time slot.
type EventAddCmd struct {
	Text []string `arg:"" help:"Event text."`
	Date string   `short:"d" help:"Date (YYYY-MM-DD, today, yesterday or tomorrow)." default:"today"`
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	text := strings.Join(c.Text, " ")
	applied, err := ctx.Store.AddMajorEvent(date, text)
	return ctx.Report(applied, err, fmt.Sprintf("Added event on %s: %s", date, strings.TrimSpace(text)), "event text is empty")
}

type EventRemoveCmd struct {
	Index int    `arg:"" help:"1-based position as shown by 'event list'."`
	Date  string `short:"d" help:"Date." default:"today"`
}

func (c *EventRemoveCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	applied, err := ctx.Store.RemoveMajorEvent(date, c.Index-1)
	return ctx.Report(applied, err, fmt.Sprintf("Removed event %d on %s", c.Index, date), fmt.Sprintf("no event %d on %s", c.Index, date))
}

type EventListCmd struct {
	Date string `arg:"" optional:"" help:"Date." default:"today"`
}

func (c *EventListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	day, ok := ctx.Store.Lookup(date)
	if !ok || len(day.MajorEvents) == 0 {
		ctx.Println("No events found")
		return nil
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for i, e := range day.MajorEvents {
		tbl.AddRow(fmt.Sprintf("%d.", i+1), e)
	}
	ctx.Println(tbl)
	return nil
}
