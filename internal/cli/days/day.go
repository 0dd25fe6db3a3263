package days

import (
	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/schedule"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, today, yesterday or tomorrow)." default:"today"`
	IDs  bool   `help:"Show entry IDs."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	day, err := ctx.Store.GetDay(date)
	if err != nil {
		return err
	}
	ctx.PrintDay(day, schedule.Summarize(day, ctx.Store.Clock()), c.IDs)
	return nil
}

// NowCmd prints the now/next strip for today.
type NowCmd struct{}

func (c *NowCmd) Run(ctx *cli.Context) error {
	day, err := ctx.Store.GetDay(ctx.Store.Today())
	if err != nil {
		return err
	}
	ctx.Println(cli.NowNext(schedule.Summarize(day, ctx.Store.Clock())))
	return nil
}
