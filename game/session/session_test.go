package session

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emberforge/parley/core/record"
	"github.com/emberforge/parley/game"
	"github.com/emberforge/parley/game/content"
	"github.com/emberforge/parley/game/profile"
)

func newTestSession(t *testing.T, catalog *content.Catalog, script string) (*Session, *bytes.Buffer, *profile.Store) {
	t.Helper()
	store := newTestStore(t, t.TempDir())
	p, err := game.PlayerProfile.New("ash", "Ash")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var out bytes.Buffer
	s, err := NewSession(p, Options{
		Store:   store,
		Catalog: catalog,
		Logger:  zerolog.Nop(),
		In:      strings.NewReader(script),
		Out:     &out,
	})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s, &out, store
}

func TestSessionSaveTracksPlaytime(t *testing.T) {
	s, out, store := newTestSession(t, nil, "save\nsave\nexit\n")

	clock := []int64{1000, 1010, 1025}
	i := 0
	s.now = func() time.Time {
		v := clock[i]
		if i < len(clock)-1 {
			i++
		}
		return time.Unix(v, 0)
	}

	if err := s.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := strings.Count(out.String(), "Saved!"); got != 3 {
		t.Errorf("saved %d times, want 3 (two saves plus exit)\noutput:\n%s", got, out.String())
	}

	p, err := store.Load("ash")
	if err != nil {
		t.Fatalf("Load(ash) error = %v", err)
	}
	if total, _ := p.GetNum("total_playtime"); total != 25 {
		t.Errorf("total_playtime = %v, want 25", total)
	}
	if last, _ := p.GetNum("last_updated"); last != 1025 {
		t.Errorf("last_updated = %v, want 1025", last)
	}
}

func TestSessionExitSaves(t *testing.T) {
	s, out, store := newTestSession(t, nil, "exit\n")

	if err := s.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	wantOutput(t, out.String(),
		"Running game profile: ash",
		"Saved!")

	if !store.Exists("ash") {
		t.Error("exit did not write the profile")
	}
}

func TestSessionEndOfInputDoesNotSave(t *testing.T) {
	s, out, store := newTestSession(t, nil, "")

	if err := s.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	wantOutput(t, out.String(), "Process interrupted.")

	if store.Exists("ash") {
		t.Error("interrupted session wrote a save")
	}
}

func TestSessionTakeAndInventory(t *testing.T) {
	catalog := content.NewCatalog()
	item, err := game.Item.New("rusty_sword", "Rusty Sword")
	if err != nil {
		t.Fatalf("Item.New() error = %v", err)
	}
	catalog.Items["rusty_sword"] = item

	s, out, store := newTestSession(t, catalog,
		"inventory\ntake rusty_sword\ninv\ntake ghost\nexit\n")
	if err := s.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantOutput(t, out.String(),
		"Inventory is empty.",
		`Took "Rusty Sword".`,
		"Inventory:",
		" - Rusty Sword (rusty_sword)",
		`No such item: "ghost".`)

	p, err := store.Load("ash")
	if err != nil {
		t.Fatalf("Load(ash) error = %v", err)
	}
	inv, _ := p.GetSlice("inventory")
	if len(inv) != 1 {
		t.Fatalf("inventory has %d items, want 1", len(inv))
	}
	got, ok := inv[0].(*record.Instance)
	if !ok {
		t.Fatalf("inventory[0] is %T, want *record.Instance", inv[0])
	}
	if name, _ := got.GetString("name"); name != "Rusty Sword" {
		t.Errorf("inventory[0] name = %q, want Rusty Sword", name)
	}
}

func TestSessionTakenItemDoesNotAliasCatalog(t *testing.T) {
	catalog := content.NewCatalog()
	item, err := game.Item.New("rusty_sword", "Rusty Sword")
	if err != nil {
		t.Fatalf("Item.New() error = %v", err)
	}
	catalog.Items["rusty_sword"] = item

	s, _, _ := newTestSession(t, catalog, "take rusty_sword\nexit\n")
	if err := s.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	inv, _ := s.profile.GetSlice("inventory")
	if len(inv) != 1 {
		t.Fatalf("inventory has %d items, want 1", len(inv))
	}
	took := inv[0].(*record.Instance)
	if err := took.Set("name", "Bent Sword"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if name, _ := item.GetString("name"); name != "Rusty Sword" {
		t.Errorf("catalog item renamed to %q, inventory aliases the catalog", name)
	}
}

func TestSessionStatsToggle(t *testing.T) {
	s, out, _ := newTestSession(t, nil, "save\nstats\nsave\nstats\nexit\n")

	if err := s.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	wantOutput(t, out.String(),
		"Stats display enabled",
		"Stats display disabled",
		`parley_dispatches_total{command="save"} 1`,
		"⏱")
}

func TestSessionResultsCarrySessionID(t *testing.T) {
	s, _, _ := newTestSession(t, nil, "")

	res := s.engine.Dispatch(context.Background(), "save")
	if res.Type() != TagSuccess {
		t.Fatalf("Dispatch(save) type = %q, want %q", res.Type(), TagSuccess)
	}
	if _, err := uuid.Parse(res.Str("session")); err != nil {
		t.Errorf("session id %q does not parse: %v", res.Str("session"), err)
	}
}

func TestSessionHelp(t *testing.T) {
	s, out, _ := newTestSession(t, nil, "help\nhelp exit\nexit\n")

	if err := s.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	wantOutput(t, out.String(),
		"Available commands:",
		"- inventory",
		"- save",
		"- stats",
		"- take",
		"Exit and save game.")
}

func TestSessionUnknownCommand(t *testing.T) {
	s, out, _ := newTestSession(t, nil, "cast fireball\nexit\n")

	if err := s.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	wantOutput(t, out.String(),
		`Unknown command: "cast".`,
		"Use 'help' for a list of commands available.")
}
