package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/pouchfree/pouchfree/internal/cli"
	"github.com/pouchfree/pouchfree/internal/constants"
	"github.com/pouchfree/pouchfree/internal/errors"
	"github.com/pouchfree/pouchfree/internal/logger"
	"github.com/pouchfree/pouchfree/internal/notifier"
	"github.com/pouchfree/pouchfree/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"~/.config/pouchfree/pouchfree.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init         cli.InitCmd         `cmd:"" help:"Set up storage and generate your tapering plan."`
	Log          cli.LogCmd          `cmd:"" help:"Log a pouch use."`
	Status       cli.StatusCmd       `cmd:"" help:"Show the countdown timer and today's count."`
	Stats        cli.StatsCmd        `cmd:"" help:"Show streaks, reduction, and usage charts."`
	Progress     cli.ProgressCmd     `cmd:"" help:"Show nicotine-free progress."`
	Phase        cli.PhaseCmd        `cmd:"" help:"Show, advance, or extend your tapering plan."`
	Achievements cli.AchievementsCmd `cmd:"" help:"Show earned achievements."`
	Craving      cli.CravingCmd      `cmd:"" help:"Get help riding out a craving."`
	Restart      cli.RestartCmd      `cmd:"" help:"Archive this journey and start fresh."`
	Tui          cli.TuiCmd          `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Backup       struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Nicotine pouch habit-reduction companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:    storage.NewSQLiteStore(CLI.Config),
		Notifier: notifier.New(),
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
