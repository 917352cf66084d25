// Package session runs the interactive console: a launcher that
// manages the stored profiles and the per-profile game session it
// spawns. Both are read loops over a command engine; handlers print
// to the console and report their outcome through result tags.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emberforge/parley/core/engine"
	"github.com/emberforge/parley/core/pattern"
	"github.com/emberforge/parley/core/record"
	"github.com/emberforge/parley/core/stats"
	"github.com/emberforge/parley/game"
	"github.com/emberforge/parley/game/content"
	"github.com/emberforge/parley/game/profile"
)

// Options configure the launcher and the sessions it spawns.
type Options struct {
	// WorkDir is the working directory holding settings and saves.
	// The launcher requires it; a standalone session does not.
	WorkDir string

	// Store persists the profiles. Required.
	Store *profile.Store

	// Catalog is the loaded game content. Defaults to an empty
	// catalog.
	Catalog *content.Catalog

	// Logger receives launcher and session logs. The zero value
	// discards everything.
	Logger zerolog.Logger

	// Stats records dispatch metrics. Defaults to a fresh collector.
	Stats *stats.Collector

	// ShowStats turns the per-command duration display on from the
	// start; the in-game stats command toggles it.
	ShowStats bool

	// DisableCoverageCheck turns off the engine's registration-time
	// shadow lint.
	DisableCoverageCheck bool

	// In and Out default to stdin and stdout.
	In  io.Reader
	Out io.Writer
}

// Launcher is the profile-management console. Its commands list,
// create, play, delete and rename the stored profiles.
type Launcher struct {
	*console

	workdir     string
	store       *profile.Store
	catalog     *content.Catalog
	engine      *engine.Engine
	base        zerolog.Logger
	logger      zerolog.Logger
	collector   *stats.Collector
	showStats   bool
	coverageOff bool
	settings    map[string]any
}

// NewLauncher builds a launcher with its command set registered.
func NewLauncher(opts Options) (*Launcher, error) {
	if opts.WorkDir == "" {
		return nil, errors.New("launcher needs a working directory")
	}
	if opts.Store == nil {
		return nil, errors.New("launcher needs a profile store")
	}
	if opts.Catalog == nil {
		opts.Catalog = content.NewCatalog()
	}
	if opts.Stats == nil {
		opts.Stats = stats.New()
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	logger := opts.Logger.With().Str("service", "launcher").Logger()
	l := &Launcher{
		console:     newConsole(opts.In, opts.Out),
		workdir:     opts.WorkDir,
		store:       opts.Store,
		catalog:     opts.Catalog,
		base:        opts.Logger,
		logger:      logger,
		collector:   opts.Stats,
		showStats:   opts.ShowStats,
		coverageOff: opts.DisableCoverageCheck,
		engine: engine.New(engine.Options{
			Logger:               logger,
			Stats:                opts.Stats,
			DisableCoverageCheck: opts.DisableCoverageCheck,
		}),
	}
	if err := l.register(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Launcher) register() error {
	commands := []struct {
		name, help string
		handler    engine.Handler
		defs       []string
	}{
		{"list", "List the available profiles.", l.handleList,
			[]string{"list", "ls"}},
		{"new", "Create a new profile.", l.handleNew,
			[]string{"new", "init"}},
		{"run", "Play the selected profile by ID.", l.handleRun,
			[]string{"run <profile_id:str>", "play <profile_id:str>"}},
		{"rm", "Delete the selected profile by ID.", l.handleRemove,
			[]string{"rm <profile_id:str>", "del <profile_id:str>"}},
		{"mv", "Rename the selected profile by ID. The new name and ID are prompted for.", l.handleRename,
			[]string{"mv <old_profile_id:str>", "rename <old_profile_id:str>"}},
	}
	for _, c := range commands {
		if err := l.engine.Add(c.name, c.help, c.handler, c.defs...); err != nil {
			return err
		}
	}
	return l.engine.SetHelp("exit", "Exit game launcher.")
}

// Run starts the launcher loop. It prepares the working directory,
// loads settings (rewriting defaults when the file is missing or
// corrupt) and reads commands until exit or end of input.
func (l *Launcher) Run() error {
	fmt.Fprintln(l.out, "Game Launcher Running.")

	if err := profile.Init(l.workdir); err != nil {
		return fmt.Errorf("init working directory: %w", err)
	}

	settings, err := profile.LoadSettings(l.workdir)
	if err != nil {
		fmt.Fprintln(l.out, "Warning: settings.yaml not found or corrupt. Overriding.")
		settings = profile.DefaultSettings()
		if err := profile.WriteSettings(l.workdir, settings); err != nil {
			return fmt.Errorf("write settings: %w", err)
		}
	}
	l.settings = settings
	l.logger.Info().Str("workdir", l.workdir).Msg("launcher started")

	ctx := context.Background()
	for {
		fmt.Fprint(l.out, "> ")
		if !l.in.Scan() {
			fmt.Fprintln(l.out, "\nProcess interrupted.")
			return l.in.Err()
		}
		line := strings.TrimSpace(l.in.Text())
		if line == "" {
			continue
		}

		res := l.engine.Dispatch(ctx, line)
		switch res.Type() {
		case engine.TagExit:
			return nil
		case engine.TagHelp:
			fmt.Fprintln(l.out, "\n"+res.Str("content")+"\n")
		case TagSuccess, TagFailed, TagInterrupted:
		case engine.TagUnknownCommand:
			fmt.Fprintf(l.out, "Unknown command: %q.\n", res.Str("command"))
			fmt.Fprintln(l.out, "Use 'help' for a list of commands available.")
		default:
			fmt.Fprintf(l.out, "Unknown result type: %q.\n", res.Type())
		}
	}
}

func (l *Launcher) handleList(ctx context.Context, args pattern.Bindings) engine.Result {
	entries, err := l.store.List()
	if err != nil {
		fmt.Fprintf(l.out, "Failed to list: %v.\n", err)
		return engine.NewResult(TagFailed)
	}
	if len(entries) == 0 {
		fmt.Fprintln(l.out, "No profile available.")
		return engine.NewResult(TagSuccess)
	}

	fmt.Fprintln(l.out, "Available profiles:")
	for _, e := range entries {
		fmt.Fprintf(l.out, " - %s (%s)\n", e.Name, e.ID)
	}
	return engine.NewResult(TagSuccess)
}

func (l *Launcher) handleNew(ctx context.Context, args pattern.Bindings) engine.Result {
	fmt.Fprintln(l.out, "Please enter the name of the profile.")
	name, err := l.ask(reNonBlank, false)
	if err != nil {
		return engine.NewResult(TagInterrupted)
	}
	name = strings.TrimSpace(name)

	id, err := l.askProfileID(l.store.UniqueID(name))
	if err != nil {
		return engine.NewResult(TagInterrupted)
	}

	p, err := l.newProfile(id, name)
	if err != nil {
		fmt.Fprintf(l.out, "Failed to create: %v.\n", err)
		return engine.NewResult(TagFailed)
	}
	if err := l.store.Save(p); err != nil {
		fmt.Fprintf(l.out, "Failed to create: %v.\n", err)
		return engine.NewResult(TagFailed)
	}

	fmt.Fprintln(l.out, "Successfully created")
	return engine.NewResult(TagSuccess)
}

// askProfileID runs the id prompt: an empty answer accepts the
// suggestion, a taken id re-prompts.
func (l *Launcher) askProfileID(suggested string) (string, error) {
	fmt.Fprintln(l.out, "Please enter the ID of the profile.")
	fmt.Fprintf(l.out, "Leave empty for auto-generated one: %q\n", suggested)
	for {
		id, err := l.ask(reAnything, false)
		if err != nil {
			return "", err
		}
		id = strings.TrimSpace(id)
		if id == "" {
			id = suggested
		}
		if l.store.Exists(id) {
			fmt.Fprintln(l.out, "Profile ID taken, please choose another one.")
			continue
		}
		return id, nil
	}
}

// newProfile builds a fresh profile, picking gamemode and difficulty
// up from settings when they are set there.
func (l *Launcher) newProfile(id, name string) (*record.Instance, error) {
	named := map[string]any{"id": id, "name": name}
	if mode, ok := l.settings["default_gamemode"].(string); ok {
		named["gamemode"] = mode
	}
	if diff, ok := l.settings["default_difficulty"].(string); ok {
		named["difficulty"] = diff
	}
	return game.PlayerProfile.NewNamed(named)
}

func (l *Launcher) handleRun(ctx context.Context, args pattern.Bindings) engine.Result {
	id, _ := args.String("profile_id")
	p, err := l.store.Load(id)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			fmt.Fprintf(l.out, "Failed to load: Profile not found: %s.\n", id)
		} else {
			fmt.Fprintf(l.out, "Failed to load: %v.\n", err)
		}
		return engine.NewResult(TagFailed)
	}

	sess, err := l.newSession(p)
	if err != nil {
		fmt.Fprintf(l.out, "Failed to load: %v.\n", err)
		return engine.NewResult(TagFailed)
	}
	if err := sess.Run(); err != nil {
		return engine.NewResult(TagFailed)
	}
	return engine.NewResult(TagSuccess)
}

// newSession spawns a game session on the launcher's own console.
func (l *Launcher) newSession(p *record.Instance) (*Session, error) {
	return newSession(p, l.console, Options{
		Store:                l.store,
		Catalog:              l.catalog,
		Logger:               l.base,
		Stats:                l.collector,
		ShowStats:            l.showStats,
		DisableCoverageCheck: l.coverageOff,
	})
}

func (l *Launcher) handleRemove(ctx context.Context, args pattern.Bindings) engine.Result {
	id, _ := args.String("profile_id")
	if !l.store.Exists(id) {
		fmt.Fprintf(l.out, "Failed to remove: Profile not found: %s.\n", id)
		return engine.NewResult(TagFailed)
	}

	fmt.Fprintf(l.out, "Are you sure you want to delete profile %q?\n", id)
	fmt.Fprintln(l.out, "This profile will be deleted immediately. You can't undo this action. (y/N)")
	answer, err := l.ask(reConfirm, true)
	if err != nil {
		return engine.NewResult(TagInterrupted)
	}
	if strings.ToLower(answer) != "y" {
		fmt.Fprintln(l.out, "Canceled.")
		return engine.NewResult(TagFailed)
	}

	if err := l.store.Delete(id); err != nil && !errors.Is(err, profile.ErrNotFound) {
		fmt.Fprintf(l.out, "Failed to remove: %v.\n", err)
		return engine.NewResult(TagFailed)
	}
	fmt.Fprintf(l.out, "Deleted profile %q!\n", id)
	return engine.NewResult(TagSuccess)
}

func (l *Launcher) handleRename(ctx context.Context, args pattern.Bindings) engine.Result {
	oldID, _ := args.String("old_profile_id")
	p, err := l.store.Load(oldID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			fmt.Fprintf(l.out, "Failed to rename: Profile not found: %s.\n", oldID)
		} else {
			fmt.Fprintf(l.out, "Failed to rename: %v.\n", err)
		}
		return engine.NewResult(TagFailed)
	}

	oldName, _ := p.GetString("name")
	currentID, _ := p.GetString("id")
	fmt.Fprintf(l.out, "Original profile name: %q\n", oldName)
	fmt.Fprintf(l.out, "Original profile ID: %q\n", currentID)

	fmt.Fprintln(l.out, "Please enter the new name for this profile.")
	name, err := l.ask(reNonBlank, false)
	if err != nil {
		return engine.NewResult(TagInterrupted)
	}
	name = strings.TrimSpace(name)

	newID, err := l.askProfileID(l.store.UniqueID(name))
	if err != nil {
		return engine.NewResult(TagInterrupted)
	}

	if err := p.Set("name", name); err != nil {
		fmt.Fprintf(l.out, "Failed to rename: %v.\n", err)
		return engine.NewResult(TagFailed)
	}
	if err := p.Set("id", newID); err != nil {
		fmt.Fprintf(l.out, "Failed to rename: %v.\n", err)
		return engine.NewResult(TagFailed)
	}
	if err := l.store.Rename(oldID, p); err != nil {
		fmt.Fprintf(l.out, "Failed to rename: %v.\n", err)
		return engine.NewResult(TagFailed)
	}

	fmt.Fprintf(l.out, "Successfully renamed profile name from %s to %s,\n", oldName, name)
	fmt.Fprintf(l.out, "And profile ID from %s to %s!\n", oldID, newID)
	return engine.NewResult(TagSuccess)
}
