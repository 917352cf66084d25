// Package profile persists player profiles under a working directory.
// Saves live in <workdir>/saves, one document per profile, in the
// format the store's codec speaks.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emberforge/parley/core/document"
	"github.com/emberforge/parley/core/record"
)

// ErrNotFound reports that no save exists for a profile id.
var ErrNotFound = errors.New("profile not found")

// Entry is one row of a profile listing.
type Entry struct {
	ID   string
	Name string
}

// Problem is one broken save file found by Verify.
type Problem struct {
	File string
	Err  error
}

// Store reads and writes profiles in one directory and one format.
// Saves written in another format are invisible to it.
type Store struct {
	dir    string
	codec  document.Codec
	def    *record.Definition
	logger zerolog.Logger
}

// NewStore builds a store rooted at <workdir>/saves.
func NewStore(workdir string, codec document.Codec, def *record.Definition, logger zerolog.Logger) *Store {
	return &Store{
		dir:    filepath.Join(workdir, "saves"),
		codec:  codec,
		def:    def,
		logger: logger.With().Str("service", "profiles").Logger(),
	}
}

// Dir returns the directory saves live in.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns where the save for a profile id lives.
func (s *Store) Path(id string) string {
	return s.path(s.trimExt(id))
}

// Exists reports whether a save exists for the id.
func (s *Store) Exists(id string) bool {
	_, err := os.Stat(s.path(s.trimExt(id)))
	return err == nil
}

// List returns the stored profiles sorted by id. Unreadable saves are
// skipped with a warning; a missing saves directory is an empty list.
func (s *Store) List() ([]Entry, error) {
	var out []Entry
	err := s.walk(func(id, file string) {
		inst, err := s.load(id)
		if err != nil {
			s.logger.Warn().Err(err).Str("file", file).Msg("skipping unreadable profile")
			return
		}
		name, _ := inst.GetString("name")
		out = append(out, Entry{ID: id, Name: name})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Verify checks every save file and returns the broken ones.
func (s *Store) Verify() ([]Problem, error) {
	var problems []Problem
	err := s.walk(func(id, file string) {
		if _, err := s.load(id); err != nil {
			problems = append(problems, Problem{File: file, Err: err})
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(problems, func(i, j int) bool { return problems[i].File < problems[j].File })
	return problems, nil
}

// Load reads one profile. A trailing format extension on the id is
// tolerated, so user-typed file names work too.
func (s *Store) Load(id string) (*record.Instance, error) {
	return s.load(s.trimExt(id))
}

// Save writes the profile under its own id, creating the saves
// directory on first use.
func (s *Store) Save(p *record.Instance) error {
	id, ok := p.GetString("id")
	if !ok || id == "" {
		return errors.New("save profile: instance has no id")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("save profile %q: %w", id, err)
	}

	f, err := os.Create(s.path(id))
	if err != nil {
		return fmt.Errorf("save profile %q: %w", id, err)
	}
	if err := s.codec.Dump(f, p.Dumps()); err != nil {
		f.Close()
		return fmt.Errorf("save profile %q: %w", id, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save profile %q: %w", id, err)
	}

	s.logger.Debug().Str("profile", id).Msg("profile saved")
	return nil
}

// Delete removes the save for the id.
func (s *Store) Delete(id string) error {
	id = s.trimExt(id)
	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("profile %q: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete profile %q: %w", id, err)
	}
	s.logger.Debug().Str("profile", id).Msg("profile deleted")
	return nil
}

// Rename writes the profile under its current id and removes the save
// it previously lived in.
func (s *Store) Rename(oldID string, p *record.Instance) error {
	oldID = s.trimExt(oldID)
	if err := s.Save(p); err != nil {
		return err
	}
	newID, _ := p.GetString("id")
	if newID == oldID {
		return nil
	}
	if err := os.Remove(s.path(oldID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rename profile %q: %w", oldID, err)
	}
	return nil
}

var trailingNumber = regexp.MustCompile(`(.+)_(\d+)$`)

// UniqueID derives an unused profile id from a display name: the name
// in snake case, suffixed with _N if taken. A taken id already ending
// in _N keeps its base and counts up from N.
func (s *Store) UniqueID(name string) string {
	id := ToSnakeCase(name)
	if !s.Exists(id) {
		return id
	}

	base, i := id, 1
	if m := trailingNumber.FindStringSubmatch(id); m != nil {
		base = m[1]
		n, _ := strconv.Atoi(m[2])
		i = n + 1
	}

	candidate := fmt.Sprintf("%s_%d", base, i)
	for s.Exists(candidate) {
		i++
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
	return candidate
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+s.codec.Ext())
}

func (s *Store) trimExt(id string) string {
	return strings.TrimSuffix(id, s.codec.Ext())
}

// walk calls fn for every save file in the store's format. A missing
// saves directory walks nothing.
func (s *Store) walk(fn func(id, file string)) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read saves directory: %w", err)
	}
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), s.codec.Ext()) {
			continue
		}
		fn(strings.TrimSuffix(de.Name(), s.codec.Ext()), de.Name())
	}
	return nil
}

func (s *Store) load(id string) (*record.Instance, error) {
	f, err := os.Open(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("profile %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load profile %q: %w", id, err)
	}
	defer f.Close()

	m, err := s.codec.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", id, err)
	}
	inst, err := s.def.Loads(m)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", id, err)
	}
	return inst, nil
}
