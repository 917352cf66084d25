package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emberforge/parley/core/engine"
	"github.com/emberforge/parley/core/pattern"
	"github.com/emberforge/parley/core/record"
	"github.com/emberforge/parley/core/stats"
	"github.com/emberforge/parley/game"
	"github.com/emberforge/parley/game/content"
	"github.com/emberforge/parley/game/profile"
)

// Session is the in-game console for one profile. Every session gets
// its own id, carried in its log lines and result payloads.
type Session struct {
	*console

	id        uuid.UUID
	profile   *record.Instance
	store     *profile.Store
	catalog   *content.Catalog
	engine    *engine.Engine
	logger    zerolog.Logger
	collector *stats.Collector
	showStats bool
	now       func() time.Time
}

// NewSession builds a standalone session console for the profile.
func NewSession(p *record.Instance, opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, errors.New("session needs a profile store")
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return newSession(p, newConsole(opts.In, opts.Out), opts)
}

// newSession wires a session onto an existing console, so a launcher
// hands its own input stream over to the game it starts.
func newSession(p *record.Instance, con *console, opts Options) (*Session, error) {
	if opts.Catalog == nil {
		opts.Catalog = content.NewCatalog()
	}
	if opts.Stats == nil {
		opts.Stats = stats.New()
	}

	id := uuid.New()
	logger := opts.Logger.With().
		Str("service", "session").
		Str("session", id.String()).
		Logger()

	s := &Session{
		console:   con,
		id:        id,
		profile:   p,
		store:     opts.Store,
		catalog:   opts.Catalog,
		logger:    logger,
		collector: opts.Stats,
		showStats: opts.ShowStats,
		now:       time.Now,
		engine: engine.New(engine.Options{
			Logger:               logger,
			Stats:                opts.Stats,
			DisableCoverageCheck: opts.DisableCoverageCheck,
		}),
	}
	if err := s.register(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) register() error {
	commands := []struct {
		name, help string
		handler    engine.Handler
		defs       []string
	}{
		{"save", "Save profile data.", s.handleSave,
			[]string{"save"}},
		{"stats", "Toggle the command statistics display.", s.handleStats,
			[]string{"stats"}},
		{"inventory", "List the items in the inventory.", s.handleInventory,
			[]string{"inventory", "inv"}},
		{"take", "Take an item from the world by ID.", s.handleTake,
			[]string{"take <item_id:str>"}},
	}
	for _, c := range commands {
		if err := s.engine.Add(c.name, c.help, c.handler, c.defs...); err != nil {
			return err
		}
	}
	return s.engine.SetHelp("exit", "Exit and save game.")
}

// Run starts the game loop. Exit saves the profile before returning;
// end of input leaves without saving, like an interrupt would.
func (s *Session) Run() error {
	profileID, _ := s.profile.GetString("id")
	fmt.Fprintf(s.out, "Running game profile: %s\n", profileID)
	s.logger.Info().Str("profile", profileID).Msg("session started")

	ctx := context.Background()
	for {
		fmt.Fprint(s.out, ">> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out, "\nProcess interrupted.")
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		start := time.Now()
		res := s.engine.Dispatch(ctx, line)
		duration := time.Since(start)

		switch res.Type() {
		case engine.TagExit:
			s.save()
			s.logger.Info().Str("profile", profileID).Msg("session ended")
			return nil
		case engine.TagHelp:
			fmt.Fprintln(s.out, "\n"+res.Str("content")+"\n")
		case TagSuccess, TagFailed, TagInterrupted:
		case engine.TagUnknownCommand:
			fmt.Fprintf(s.out, "Unknown command: %q.\n", res.Str("command"))
			fmt.Fprintln(s.out, "Use 'help' for a list of commands available.")
		default:
			fmt.Fprintf(s.out, "Unknown result type: %q.\n", res.Type())
		}

		if s.showStats {
			s.printStats(duration)
		}
	}
}

// result tags an outcome with this session's id.
func (s *Session) result(tag string) engine.Result {
	return engine.Result{"type": tag, "session": s.id.String()}
}

// printStats shows the dispatch duration in dim gray.
func (s *Session) printStats(d time.Duration) {
	fmt.Fprintf(s.out, "\033[90m  ⏱ %v\033[0m\n", d.Round(time.Microsecond))
}

// save folds elapsed play time into the profile and writes it out.
func (s *Session) save() bool {
	if err := s.updateTime(); err != nil {
		fmt.Fprintf(s.out, "Failed to save: %v.\n", err)
		return false
	}
	if err := s.store.Save(s.profile); err != nil {
		fmt.Fprintf(s.out, "Failed to save: %v.\n", err)
		s.logger.Error().Err(err).Msg("save failed")
		return false
	}
	fmt.Fprintln(s.out, "Saved!")
	return true
}

// updateTime folds the wall-clock time since the previous save into
// total_playtime. A fresh profile carries last_updated -1 and
// contributes nothing on its first save.
func (s *Session) updateTime() error {
	now := float64(s.now().UnixNano()) / 1e9
	last, _ := s.profile.GetNum("last_updated")
	total, _ := s.profile.GetNum("total_playtime")

	if last != -1 {
		total += now - last
	}
	if err := s.profile.Set("last_updated", now); err != nil {
		return err
	}
	return s.profile.Set("total_playtime", total)
}

func (s *Session) handleSave(ctx context.Context, args pattern.Bindings) engine.Result {
	if !s.save() {
		return s.result(TagFailed)
	}
	return s.result(TagSuccess)
}

func (s *Session) handleStats(ctx context.Context, args pattern.Bindings) engine.Result {
	s.showStats = !s.showStats
	if !s.showStats {
		fmt.Fprintln(s.out, "Stats display disabled")
		return s.result(TagSuccess)
	}

	fmt.Fprintln(s.out, "Stats display enabled")
	snapshot, err := s.collector.Snapshot()
	if err != nil {
		s.logger.Error().Err(err).Msg("stats snapshot failed")
		return s.result(TagFailed)
	}
	fmt.Fprint(s.out, snapshot)
	return s.result(TagSuccess)
}

func (s *Session) handleInventory(ctx context.Context, args pattern.Bindings) engine.Result {
	inv, _ := s.profile.GetSlice("inventory")
	if len(inv) == 0 {
		fmt.Fprintln(s.out, "Inventory is empty.")
		return s.result(TagSuccess)
	}

	fmt.Fprintln(s.out, "Inventory:")
	for _, v := range inv {
		item, ok := v.(*record.Instance)
		if !ok {
			continue
		}
		name, _ := item.GetString("name")
		id, _ := item.GetString("id")
		fmt.Fprintf(s.out, " - %s (%s)\n", name, id)
	}
	return s.result(TagSuccess)
}

func (s *Session) handleTake(ctx context.Context, args pattern.Bindings) engine.Result {
	id, _ := args.String("item_id")
	src, ok := s.catalog.Items[id]
	if !ok {
		fmt.Fprintf(s.out, "No such item: %q.\n", id)
		return s.result(TagFailed)
	}

	// Fresh copy; inventory items must not alias the catalog.
	item, err := game.Item.Loads(src.Dumps())
	if err != nil {
		fmt.Fprintf(s.out, "Failed to take: %v.\n", err)
		return s.result(TagFailed)
	}

	inv, _ := s.profile.GetSlice("inventory")
	if err := s.profile.Set("inventory", append(inv, item)); err != nil {
		fmt.Fprintf(s.out, "Failed to take: %v.\n", err)
		return s.result(TagFailed)
	}

	name, _ := item.GetString("name")
	fmt.Fprintf(s.out, "Took %q.\n", name)
	return s.result(TagSuccess)
}
