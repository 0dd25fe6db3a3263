package settings

import (
	"github.com/julianstephens/dayplan/internal/cli"
)

type DefaultsShowCmd struct{}

func (c *DefaultsShowCmd) Run(ctx *cli.Context) error {
	d := ctx.Store.Defaults()
	ctx.Println("Defaults for new days:")
	ctx.Printf("  Wake Time:            %s\n", d.WakeTime)
	ctx.Printf("  Sleep Time:           %s\n", d.SleepTime)
	ctx.Printf("  Night Owl By Default: %v\n", d.NightOwlEnabledByDefault)
	return nil
}

// DefaultsSetCmd changes the defaults used for days created from now on.
// Existing days keep their anchors.
type DefaultsSetCmd struct {
	Wake     *string `help:"Default wake time (HH:MM)."`
	Sleep    *string `help:"Default sleep time (HH:MM)."`
	NightOwl *bool   `help:"Start new days in night-owl mode."`
}

func (c *DefaultsSetCmd) Run(ctx *cli.Context) error {
	d := ctx.Store.Defaults()
	updated := false
	if c.Wake != nil {
		d.WakeTime = *c.Wake
		updated = true
	}
	if c.Sleep != nil {
		d.SleepTime = *c.Sleep
		updated = true
	}
	if c.NightOwl != nil {
		d.NightOwlEnabledByDefault = *c.NightOwl
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --wake, --sleep or --night-owl.")
		return nil
	}

	applied, err := ctx.Store.SetDefaults(d)
	return ctx.Report(applied, err, "Defaults updated successfully.", "times must be HH:MM")
}
