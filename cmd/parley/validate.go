package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/emberforge/parley/config"
	"github.com/emberforge/parley/game/content"
)

var validateCmd = &cobra.Command{
	Use:   "validate [content-dir]",
	Short: "Validate configuration, content and saves",
	Long: `Validate the parley configuration, the content directory and
every stored profile.

Checks:
  - Config loads and its field values are accepted
  - Content documents decode and match their declared kind
  - Save files load back as valid profiles

Pass a directory argument to validate that content directory in
place of the configured one.

Examples:
  parley validate
  parley validate content/
  parley validate --config /etc/parley/config.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	fmt.Printf("Validating %s...\n\n", cfgFile)

	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		fmt.Printf("  %s Config loads\n", crossMark)
		return fmt.Errorf("config error: %w", err)
	}
	fmt.Printf("  %s Config loads\n", checkMark)
	fmt.Printf("  %s Work directory: %s\n", checkMark, cfg.WorkDir)
	fmt.Printf("  %s Save format: %s\n", checkMark, cfg.Saves.Format)

	contentDir := cfg.Content.Dir
	if len(args) > 0 {
		contentDir = args[0]
	}
	catalog, err := content.LoadDir(contentDir, zerolog.Nop())
	if err != nil {
		fmt.Printf("  %s Content loads\n", crossMark)
		return fmt.Errorf("content error: %w", err)
	}
	fmt.Printf("  %s Content: %d records\n", checkMark, catalog.Len())

	store, err := openStore(cfg, zerolog.Nop())
	if err != nil {
		return err
	}
	problems, err := store.Verify()
	if err != nil {
		fmt.Printf("  %s Saves readable\n", crossMark)
		return fmt.Errorf("saves error: %w", err)
	}
	if len(problems) > 0 {
		fmt.Printf("  %s Saves valid\n", crossMark)
		for _, p := range problems {
			fmt.Printf("      %s: %v\n", p.File, p.Err)
		}
		return fmt.Errorf("%d broken save file(s)", len(problems))
	}
	fmt.Printf("  %s Saves valid\n", checkMark)

	fmt.Println()
	fmt.Println("Everything checks out.")
	return nil
}

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)
