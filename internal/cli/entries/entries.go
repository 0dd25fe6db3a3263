package entries

import (
	"fmt"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/schedule"
	"github.com/julianstephens/dayplan/internal/scheduler"
	"github.com/julianstephens/dayplan/internal/state"
	"github.com/julianstephens/dayplan/internal/utils"
)

const invalidEntry = "start and end must be HH:MM and the title must not be empty"

// EntryAddCmd adds an entry at a given time, or with --duration alone in
// the first free slot of the day.
type EntryAddCmd struct {
	Title    string `arg:"" help:"Entry title."`
	Start    string `short:"s" help:"Start time (HH:MM)."`
	End      string `short:"e" help:"End time (HH:MM). Earlier than start means it ends the next day."`
	Duration int    `short:"m" help:"Length in minutes; without --start the first free slot is used."`
	After    string `help:"With --duration and no --start, do not start before this time (HH:MM)."`
	Before   string `help:"With --duration and no --start, finish by this time (HH:MM)."`
	Notes    string `short:"n" help:"Optional notes."`
	Date     string `short:"d" help:"Date (YYYY-MM-DD, today, yesterday or tomorrow)." default:"today"`
}

func (c *EntryAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	start, end := c.Start, c.End
	if c.Duration > 0 && end == "" {
		if start == "" {
			day, err := ctx.Store.GetDay(date)
			if err != nil {
				return err
			}
			slot, ok, err := scheduler.New().Place(day, c.Duration, c.After, c.Before)
			if err != nil {
				return err
			}
			if !ok {
				ctx.NotApplied(fmt.Sprintf("no free %d-minute slot on %s", c.Duration, date))
				return nil
			}
			start, end = slot.StartTime(), slot.EndTime()
		} else if m, ok := utils.ParseTime(start); ok {
			end = utils.FormatMinutes(m + c.Duration)
		}
	}

	entry, applied, err := ctx.Store.SaveEntry(date, state.EntryInput{
		Start: start,
		End:   end,
		Title: c.Title,
		Notes: c.Notes,
	})
	if err != nil {
		return err
	}
	if !applied {
		ctx.NotApplied(invalidEntry)
		return nil
	}
	ctx.Success(fmt.Sprintf("Added %s (ID: %s)", schedule.Label(schedule.Item{
		Kind: schedule.KindEntry, Start: entry.Start, End: entry.End, Title: entry.Title,
	}), entry.ID))
	return nil
}

// EntryEditCmd replaces the fields given on the command line and keeps the rest.
type EntryEditCmd struct {
	ID    string  `arg:"" help:"Entry ID."`
	Title *string `help:"New title."`
	Start *string `short:"s" help:"New start time (HH:MM)."`
	End   *string `short:"e" help:"New end time (HH:MM)."`
	Notes *string `short:"n" help:"New notes (empty to clear)."`
	Date  string  `short:"d" help:"Date of the entry." default:"today"`
}

func (c *EntryEditCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	day, ok := ctx.Store.Lookup(date)
	i := -1
	if ok {
		i = day.FindEntry(c.ID)
	}
	if i < 0 {
		ctx.NotApplied(fmt.Sprintf("no entry %s on %s", c.ID, date))
		return nil
	}

	existing := day.Entries[i]
	in := state.EntryInput{
		ID:    existing.ID,
		Start: existing.Start,
		End:   existing.End,
		Title: existing.Title,
		Notes: existing.Notes,
	}
	if c.Title != nil {
		in.Title = *c.Title
	}
	if c.Start != nil {
		in.Start = *c.Start
	}
	if c.End != nil {
		in.End = *c.End
	}
	if c.Notes != nil {
		in.Notes = *c.Notes
	}

	_, applied, err := ctx.Store.SaveEntry(date, in)
	return ctx.Report(applied, err, fmt.Sprintf("Updated entry %s", c.ID), invalidEntry)
}

type EntryDeleteCmd struct {
	ID   string `arg:"" help:"Entry ID."`
	Date string `short:"d" help:"Date of the entry." default:"today"`
}

func (c *EntryDeleteCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	applied, err := ctx.Store.DeleteEntry(date, c.ID)
	return ctx.Report(applied, err, fmt.Sprintf("Deleted entry %s", c.ID), fmt.Sprintf("no entry %s on %s", c.ID, date))
}

type EntryListCmd struct {
	Date string `arg:"" optional:"" help:"Date to list." default:"today"`
}

func (c *EntryListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	day, err := ctx.Store.GetDay(date)
	if err != nil {
		return err
	}
	if len(day.Entries) == 0 {
		ctx.Println("No entries found")
		return nil
	}
	ctx.Println(cli.EntryTable(day.Entries, ctx.TimeRange))
	return nil
}
