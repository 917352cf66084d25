// Package content loads the world a game plays in: items, locations,
// NPCs, quests, events, achievements and skills, read from document
// files under a content directory.
package content

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/emberforge/parley/core/document"
	"github.com/emberforge/parley/core/record"
	"github.com/emberforge/parley/game"
)

// Catalog indexes loaded content by kind and id.
type Catalog struct {
	Items        map[string]*record.Instance
	Locations    map[string]*record.Instance
	NPCs         map[string]*record.Instance
	Quests       map[string]*record.Instance
	Events       map[string]*record.Instance
	Achievements map[string]*record.Instance
	Skills       map[string]*record.Instance
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Items:        map[string]*record.Instance{},
		Locations:    map[string]*record.Instance{},
		NPCs:         map[string]*record.Instance{},
		Quests:       map[string]*record.Instance{},
		Events:       map[string]*record.Instance{},
		Achievements: map[string]*record.Instance{},
		Skills:       map[string]*record.Instance{},
	}
}

// Len returns the total number of loaded records.
func (c *Catalog) Len() int {
	return len(c.Items) + len(c.Locations) + len(c.NPCs) + len(c.Quests) +
		len(c.Events) + len(c.Achievements) + len(c.Skills)
}

type bucket struct {
	def *record.Definition
	dst map[string]*record.Instance
}

type loader struct {
	buckets map[string]bucket
	sources map[string]string
}

// LoadDir reads every document under dir, including subdirectories,
// and routes each by its type tag to the matching definition. Files
// without a document extension are ignored. A missing directory loads
// an empty catalog; content is optional.
func LoadDir(dir string, logger zerolog.Logger) (*Catalog, error) {
	logger = logger.With().Str("service", "content").Logger()

	c := NewCatalog()
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("dir", dir).Msg("no content directory, starting empty")
			return c, nil
		}
		return nil, fmt.Errorf("read content dir %s: %w", dir, err)
	}

	l := &loader{
		buckets: map[string]bucket{
			game.Item.ID():        {game.Item, c.Items},
			game.Location.ID():    {game.Location, c.Locations},
			game.NPC.ID():         {game.NPC, c.NPCs},
			game.Quest.ID():       {game.Quest, c.Quests},
			game.Event.ID():       {game.Event, c.Events},
			game.Achievement.ID(): {game.Achievement, c.Achievements},
			game.SkillType.ID():   {game.SkillType, c.Skills},
		},
		sources: map[string]string{},
	}
	if err := l.walk(dir); err != nil {
		return nil, err
	}

	logger.Info().Int("count", c.Len()).Str("dir", dir).Msg("content loaded")
	return c, nil
}

func (l *loader) walk(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read content dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if err := l.walk(path); err != nil {
				return err
			}
			continue
		}

		if _, ok := document.ForExt(filepath.Ext(entry.Name())); !ok {
			continue
		}

		m, err := document.LoadFile(path)
		if err != nil {
			return err
		}
		if err := l.add(path, m); err != nil {
			return err
		}
	}

	return nil
}

func (l *loader) add(path string, m map[string]any) error {
	tag, ok := m[record.TagKey].(string)
	if !ok {
		return fmt.Errorf("%s: missing type tag", path)
	}
	if tag == game.PlayerProfile.ID() {
		return fmt.Errorf("%s: player_profile records belong in saves, not content", path)
	}

	b, ok := l.buckets[tag]
	if !ok {
		return fmt.Errorf("%s: unknown content kind %q", path, tag)
	}

	inst, err := b.def.Loads(m)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	id, _ := inst.GetString("id")
	key := tag + "/" + id
	if prev, taken := l.sources[key]; taken {
		return fmt.Errorf("%s: duplicate %s id %q (already defined in %s)", path, tag, id, prev)
	}
	l.sources[key] = path
	b.dst[id] = inst

	return nil
}
