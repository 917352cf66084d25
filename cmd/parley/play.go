package main

import (
	"github.com/spf13/cobra"

	"github.com/emberforge/parley/config"
	"github.com/emberforge/parley/game/content"
	"github.com/emberforge/parley/game/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game launcher",
	Long: `Start the interactive game launcher.

The launcher manages the stored profiles and starts game sessions.
A missing config file falls back to environment variables and
defaults, so a plain "parley play" works out of the box.

Launcher commands:
  list                 List the available profiles
  new                  Create a new profile
  run <profile_id>     Play the selected profile
  rm <profile_id>      Delete the selected profile
  mv <profile_id>      Rename the selected profile
  help                 Show help
  exit                 Exit the launcher`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return err
	}
	logger := config.SetupLogger(cfg.Logging)

	catalog, err := content.LoadDir(cfg.Content.Dir, logger)
	if err != nil {
		return err
	}
	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	launcher, err := session.NewLauncher(session.Options{
		WorkDir:              cfg.WorkDir,
		Store:                store,
		Catalog:              catalog,
		Logger:               logger,
		ShowStats:            cfg.Engine.ShowStats,
		DisableCoverageCheck: cfg.Engine.DisableCoverageCheck,
	})
	if err != nil {
		return err
	}
	return launcher.Run()
}
