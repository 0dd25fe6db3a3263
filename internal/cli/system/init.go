package system

import (
	"fmt"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/storage"
	"github.com/julianstephens/dayplan/internal/storage/backend"
)

type InitCmd struct {
	Source string `help:"Copy the plan from another database path, data directory or connection string."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Provider.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized dayplan storage at: %s\n", ctx.Provider.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying plan from: %s\n", c.Source)
		src, err := backend.FromSource(c.Source)
		if err != nil {
			return err
		}
		if err := copyPlan(src, ctx.Provider); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	// Pick up whatever is stored now, including a copied plan.
	return ctx.Store.Load()
}

// copyPlan moves the raw document between providers. It is normalized on
// the next Load, like any other stored value.
func copyPlan(src, dst storage.Provider) error {
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source: %w", err)
	}
	defer src.Close()

	raw, found, err := src.Get(constants.StorageKey)
	if err != nil {
		return fmt.Errorf("failed to read source plan: %w", err)
	}
	if !found {
		return fmt.Errorf("source has no stored plan")
	}
	if err := dst.Set(constants.StorageKey, raw); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}
