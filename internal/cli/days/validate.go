package days

import (
	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/validation"
)

type ValidateCmd struct {
	Date string `arg:"" optional:"" help:"Date to check." default:"today"`
	All  bool   `help:"Check every stored day."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	var days []models.Day
	if c.All {
		for _, d := range ctx.Store.Dates() {
			if day, ok := ctx.Store.Lookup(d); ok {
				days = append(days, day)
			}
		}
	} else {
		date, err := ctx.ResolveDate(c.Date)
		if err != nil {
			return err
		}
		if day, ok := ctx.Store.Lookup(date); ok {
			days = append(days, day)
		}
	}

	result := validation.New().ValidateDays(days)
	ctx.Println(result.FormatReport())
	// Conflicts are advisory, so they never fail the command.
	return nil
}
