package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/storage"
)

type DebugCmd struct {
	DBPath  DebugDBPathCmd  `cmd:"" name:"db-path" help:"Show storage location."`
	DumpRaw DebugDumpRawCmd `cmd:"" name:"dump-raw" help:"Print the stored document exactly as persisted."`
	DumpDay DebugDumpDayCmd `cmd:"" name:"dump-day" help:"Dump a normalized day as JSON."`
	Keys    DebugKeysCmd    `cmd:"" name:"keys" help:"List the keys held by the storage backend."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path":       ctx.Provider.GetConfigPath(),
		"config_dir": ctx.ConfigDir,
		"backups":    ctx.BackupManager().GetBackupDir(),
	}
	if ctx.Config != nil {
		output["driver"] = ctx.Config.Storage.Driver
	}
	return printJSON(ctx, output)
}

type DebugDumpRawCmd struct{}

func (cmd *DebugDumpRawCmd) Run(ctx *cli.Context) error {
	raw, found, err := ctx.Provider.Get(constants.StorageKey)
	if err != nil {
		return fmt.Errorf("failed to read stored plan: %w", err)
	}
	if !found {
		return fmt.Errorf("nothing stored under %s", constants.StorageKey)
	}
	ctx.Println(raw)
	return nil
}

type DebugDumpDayCmd struct {
	Date string `arg:"" optional:"" help:"Date of the day to dump (YYYY-MM-DD or 'today')." default:"today"`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(cmd.Date)
	if err != nil {
		return err
	}
	day, ok := ctx.Store.Lookup(date)
	if !ok {
		return fmt.Errorf("no day stored for date: %s", date)
	}
	return printJSON(ctx, day)
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	lister, ok := ctx.Provider.(storage.KeyLister)
	if !ok {
		return fmt.Errorf("listing keys is not supported by %s", ctx.Provider.GetConfigPath())
	}
	keys := lister.Keys()
	if keys == nil {
		keys = []string{}
	}
	return printJSON(ctx, keys)
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
