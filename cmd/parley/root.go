package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/emberforge/parley/config"
	"github.com/emberforge/parley/core/document"
	"github.com/emberforge/parley/game"
	"github.com/emberforge/parley/game/profile"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Pattern-matched command console for text games",
	Long: `Parley is a text-game console built around a pattern-matched
command engine.

Profiles, content packs and saves live in a working directory;
input lines are matched against declared patterns with typed
arguments and dispatched to the owning command.

Quick start:
  parley play       # Start the game launcher
  parley profiles   # List stored profiles

Maintenance:
  parley validate   # Validate config, content and saves
  parley version    # Print version information`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "parley.yaml", "config file path")
}

// openStore builds the profile store the way the config says.
func openStore(cfg *config.Config, logger zerolog.Logger) (*profile.Store, error) {
	codec, ok := document.ForExt("." + cfg.Saves.Format)
	if !ok {
		return nil, fmt.Errorf("unsupported save format %q", cfg.Saves.Format)
	}
	game.PlayerProfile.DumpDefaults = cfg.Saves.DumpDefaults
	return profile.NewStore(cfg.WorkDir, codec, game.PlayerProfile, logger), nil
}
