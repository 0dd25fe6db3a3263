package anchors

import (
	"fmt"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/state"
)

type AnchorSetCmd struct {
	Kind  string `arg:"" enum:"wake,sleep" help:"Anchor to set (wake or sleep)."`
	Time  string `arg:"" optional:"" help:"Time (HH:MM). Omit to keep the current time."`
	Notes string `short:"n" help:"Optional notes."`
	Until string `help:"Sleep only: when sleep ends (HH:MM)."`
	Date  string `short:"d" help:"Date (YYYY-MM-DD, today, yesterday or tomorrow)." default:"today"`
}

func (c *AnchorSetCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	kind := models.AnchorKind(c.Kind)
	applied, err := ctx.Store.SetAnchor(date, kind, state.AnchorInput{
		Time:  c.Time,
		Notes: c.Notes,
		End:   c.Until,
	})
	if err != nil || !applied {
		return ctx.Report(applied, err, "", "times must be HH:MM and only sleep takes --until")
	}

	day, _ := ctx.Store.Lookup(date)
	a := day.Anchor(kind)
	msg := fmt.Sprintf("Set %s at %s on %s", kind, a.Time, date)
	if a.End != "" {
		msg += fmt.Sprintf(" until %s", a.End)
	}
	ctx.Success(msg)
	return nil
}

type AnchorClearCmd struct {
	Kind string `arg:"" enum:"wake,sleep" help:"Anchor to clear (wake or sleep)."`
	Date string `short:"d" help:"Date." default:"today"`
}

func (c *AnchorClearCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	applied, err := ctx.Store.ClearAnchor(date, models.AnchorKind(c.Kind))
	return ctx.Report(applied, err, fmt.Sprintf("Cleared %s on %s", c.Kind, date), fmt.Sprintf("%s is not set", c.Kind))
}

// AnchorResetCmd puts both anchors back to the defaults.
type AnchorResetCmd struct {
	Date string `short:"d" help:"Date." default:"today"`
}

func (c *AnchorResetCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	applied, err := ctx.Store.ResetAnchors(date)
	return ctx.Report(applied, err, fmt.Sprintf("Reset anchors on %s", date), "")
}

type NightOwlOnCmd struct {
	Date string `arg:"" optional:"" help:"Date." default:"today"`
}

func (c *NightOwlOnCmd) Run(ctx *cli.Context) error {
	return setNightOwl(ctx, c.Date, true)
}

type NightOwlOffCmd struct {
	Date string `arg:"" optional:"" help:"Date." default:"today"`
}

func (c *NightOwlOffCmd) Run(ctx *cli.Context) error {
	return setNightOwl(ctx, c.Date, false)
}

func setNightOwl(ctx *cli.Context, dateArg string, on bool) error {
	date, err := ctx.ResolveDate(dateArg)
	if err != nil {
		return err
	}
	applied, err := ctx.Store.SetNightOwl(date, on)
	label := "off"
	if on {
		label = "on"
	}
	return ctx.Report(applied, err, fmt.Sprintf("Night owl %s for %s", label, date), "")
}
