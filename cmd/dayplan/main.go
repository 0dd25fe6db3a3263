package main

import (
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/cli/anchors"
	"github.com/julianstephens/dayplan/internal/cli/backups"
	"github.com/julianstephens/dayplan/internal/cli/days"
	"github.com/julianstephens/dayplan/internal/cli/entries"
	"github.com/julianstephens/dayplan/internal/cli/events"
	"github.com/julianstephens/dayplan/internal/cli/settings"
	"github.com/julianstephens/dayplan/internal/cli/system"
	"github.com/julianstephens/dayplan/internal/config"
	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/errors"
	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/state"
	"github.com/julianstephens/dayplan/internal/storage/backend"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." type:"path" default:"${config_path}"`
	Driver   string `help:"Storage driver (sqlite, postgres, file or memory), overrides the config file."`
	Path     string `help:"SQLite database path or data directory, overrides the config file."`
	DSN      string `name:"dsn" help:"PostgreSQL connection string without a password. Passwords belong in the OS keyring, .pgpass or PGPASSWORD."`
	DebugLog bool   `name:"debug" help:"Log debug output to stderr."`
	DryRun   bool   `help:"Run against an in-memory copy of the plan; nothing is saved."`

	Init     system.InitCmd    `cmd:"" help:"Initialize dayplan storage."`
	Tui      system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Day      days.DayCmd       `cmd:"" help:"Show the plan for a day."`
	Now      days.NowCmd       `cmd:"" help:"Show what is happening now and next."`
	Watch    days.WatchCmd     `cmd:"" help:"Keep printing now and next while the day is today."`
	Free     days.FreeCmd      `cmd:"" help:"List free time between wake and sleep."`
	Export   days.ExportCmd    `cmd:"" help:"Export days as an iCalendar file."`
	Validate days.ValidateCmd  `cmd:"" help:"Check days for overlapping or invalid entries."`
	Entry    struct {
		Add    entries.EntryAddCmd    `cmd:"" help:"Add an entry."`
		Edit   entries.EntryEditCmd   `cmd:"" help:"Edit an existing entry."`
		Delete entries.EntryDeleteCmd `cmd:"" help:"Delete an entry."`
		List   entries.EntryListCmd   `cmd:"" help:"List a day's entries."`
	} `cmd:"" help:"Manage time-blocked entries."`
	Anchor struct {
		Set   anchors.AnchorSetCmd   `cmd:"" help:"Set the wake or sleep time."`
		Clear anchors.AnchorClearCmd `cmd:"" help:"Hide the wake or sleep time."`
		Reset anchors.AnchorResetCmd `cmd:"" help:"Reset both anchors to the defaults."`
	} `cmd:"" help:"Manage wake and sleep anchors."`
	Event struct {
		Add    events.EventAddCmd    `cmd:"" help:"Add a major event."`
		Remove events.EventRemoveCmd `cmd:"" help:"Remove a major event by number."`
		List   events.EventListCmd   `cmd:"" help:"List a day's major events."`
	} `cmd:"" help:"Manage major events."`
	NightOwl struct {
		On  anchors.NightOwlOnCmd  `cmd:"" help:"Allow a late sleep time without warnings."`
		Off anchors.NightOwlOffCmd `cmd:"" help:"Warn about sleep outside the usual window."`
	} `cmd:"" name:"nightowl" help:"Toggle night-owl mode for a day."`
	Defaults struct {
		Show settings.DefaultsShowCmd `cmd:"" help:"Show default wake and sleep times." default:"1"`
		Set  settings.DefaultsSetCmd  `cmd:"" help:"Change the defaults used for new days."`
	} `cmd:"" help:"Manage defaults for new days."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage plan backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Debug  system.DebugCmd  `cmd:"" help:"Debug commands for troubleshooting."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily planner: time-blocked entries, wake/sleep anchors and what's happening now"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if err := applyOverrides(cfg); err != nil {
		errors.Fatal(err)
	}

	configPath, err := config.ExpandPath(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	configDir := filepath.Dir(configPath)

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatal(err)
	}
	logger.Debug("starting", "command", ctx.Command(), "driver", cfg.Storage.Driver)

	provider, err := backend.New(cfg.Storage)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.DryRun {
		if provider, err = backend.DryRun(provider); err != nil {
			errors.Fatal(err)
		}
	}
	defer provider.Close()

	appCtx := &cli.Context{
		Store:     state.New(provider, nil),
		Provider:  provider,
		Config:    cfg,
		ConfigDir: configDir,
	}

	// init prepares storage itself; everything else needs it ready.
	if ctx.Command() != "init" {
		if err := provider.Load(); err != nil {
			errors.Fatal(err)
		}
		if err := appCtx.Store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		provider.Close()
		errors.Fatal(err)
	}
}

// applyOverrides lets command-line flags win over the config file.
func applyOverrides(cfg *config.Config) error {
	switch CLI.Driver {
	case "":
	case constants.DriverSQLite, constants.DriverPostgres, constants.DriverFile, constants.DriverMemory:
		cfg.Storage.Driver = CLI.Driver
	default:
		return fmt.Errorf("unknown storage driver %q", CLI.Driver)
	}
	if CLI.Path != "" {
		cfg.Storage.Path = CLI.Path
	}
	if CLI.DSN != "" {
		cfg.Storage.DSN = CLI.DSN
		if CLI.Driver == "" {
			cfg.Storage.Driver = constants.DriverPostgres
		}
	}
	if CLI.DebugLog {
		cfg.Debug = true
	}
	cfg.Normalize()
	return nil
}
