package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/emberforge/parley/config"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the stored game profiles",
	Long: `List every stored game profile with its id, display name,
gamemode and accumulated play time.

Examples:
  parley profiles
  parley profiles --config /etc/parley/config.yaml`,
	RunE: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return err
	}

	store, err := openStore(cfg, config.SetupLogger(cfg.Logging))
	if err != nil {
		return err
	}
	entries, err := store.List()
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No profiles found.")
		fmt.Println()
		fmt.Println("Create one with: parley play, then the 'new' command.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tGAMEMODE\tPLAYTIME")
	fmt.Fprintln(w, "--\t----\t--------\t--------")

	for _, e := range entries {
		p, err := store.Load(e.ID)
		if err != nil {
			continue
		}
		mode, _ := p.GetString("gamemode")
		total, _ := p.GetNum("total_playtime")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Name, mode, formatPlaytime(total))
	}

	w.Flush()
	return nil
}

// formatPlaytime renders seconds of play as a compact duration.
func formatPlaytime(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	return d.Round(time.Second).String()
}
