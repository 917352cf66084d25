package game

import (
	"fmt"
	"math"
)

// TriggerKind enumerates the conditions an event can fire on.
type TriggerKind string

const (
	TriggerQuestStage TriggerKind = "quest_stage"
	TriggerSkillLevel TriggerKind = "skill_level"
	TriggerLocation   TriggerKind = "location"
	TriggerItem       TriggerKind = "item"
	TriggerEventFired TriggerKind = "event_fired"
)

// Trigger is one condition of an event. Ref names the quest, skill,
// location, item or event the condition reads; Threshold is the stage
// or level to reach for the kinds that have one.
type Trigger struct {
	Kind      TriggerKind
	Ref       string
	Threshold int
}

// NewTrigger builds a validated trigger.
func NewTrigger(kind TriggerKind, ref string, threshold int) (Trigger, error) {
	t := Trigger{Kind: kind, Ref: ref, Threshold: threshold}
	if err := t.validate(); err != nil {
		return Trigger{}, err
	}
	return t, nil
}

func (t Trigger) validate() error {
	switch t.Kind {
	case TriggerQuestStage, TriggerSkillLevel:
		if t.Ref == "" {
			return fmt.Errorf("%s trigger needs a ref", t.Kind)
		}
		if t.Threshold < 1 {
			return fmt.Errorf("%s trigger needs a threshold of at least 1", t.Kind)
		}
	case TriggerLocation, TriggerItem, TriggerEventFired:
		if t.Ref == "" {
			return fmt.Errorf("%s trigger needs a ref", t.Kind)
		}
		if t.Threshold != 0 {
			return fmt.Errorf("%s trigger takes no threshold", t.Kind)
		}
	default:
		return fmt.Errorf("unknown trigger kind %q", t.Kind)
	}
	return nil
}

func (t Trigger) toMap() map[string]any {
	m := map[string]any{
		"kind": string(t.Kind),
		"ref":  t.Ref,
	}
	if t.Threshold != 0 {
		m["threshold"] = t.Threshold
	}
	return m
}

func triggerFromMap(m map[string]any) (Trigger, error) {
	kind, ok := m["kind"].(string)
	if !ok {
		return Trigger{}, fmt.Errorf("trigger kind missing or not a string")
	}
	t := Trigger{Kind: TriggerKind(kind)}
	if ref, ok := m["ref"]; ok {
		s, ok := ref.(string)
		if !ok {
			return Trigger{}, fmt.Errorf("trigger ref must be a string, got %T", ref)
		}
		t.Ref = s
	}
	if raw, ok := m["threshold"]; ok {
		n, ok := intFrom(raw)
		if !ok {
			return Trigger{}, fmt.Errorf("trigger threshold must be an integer, got %v", raw)
		}
		t.Threshold = n
	}
	if err := t.validate(); err != nil {
		return Trigger{}, err
	}
	return t, nil
}

// RewardKind enumerates what completing a quest or firing an event can
// grant.
type RewardKind string

const (
	RewardCharacterXP RewardKind = "character_xp"
	RewardSkillXP     RewardKind = "skill_xp"
	RewardItem        RewardKind = "item"
	RewardQuestUnlock RewardKind = "quest_unlock"
	RewardAchievement RewardKind = "achievement"
	RewardLore        RewardKind = "lore"
)

// Reward is one consequence of a quest or event. Ref names the skill,
// item, quest or achievement granted; Amount carries xp or item counts;
// Text carries lore.
type Reward struct {
	Kind   RewardKind
	Ref    string
	Amount int
	Text   string
}

// NewReward builds a validated reward.
func NewReward(kind RewardKind, ref string, amount int, text string) (Reward, error) {
	r := Reward{Kind: kind, Ref: ref, Amount: amount, Text: text}
	if err := r.validate(); err != nil {
		return Reward{}, err
	}
	return r, nil
}

func (r Reward) validate() error {
	switch r.Kind {
	case RewardCharacterXP:
		if r.Amount < 1 {
			return fmt.Errorf("%s reward needs a positive amount", r.Kind)
		}
		if r.Ref != "" || r.Text != "" {
			return fmt.Errorf("%s reward takes only an amount", r.Kind)
		}
	case RewardSkillXP, RewardItem:
		if r.Ref == "" {
			return fmt.Errorf("%s reward needs a ref", r.Kind)
		}
		if r.Amount < 1 {
			return fmt.Errorf("%s reward needs a positive amount", r.Kind)
		}
		if r.Text != "" {
			return fmt.Errorf("%s reward takes no text", r.Kind)
		}
	case RewardQuestUnlock, RewardAchievement:
		if r.Ref == "" {
			return fmt.Errorf("%s reward needs a ref", r.Kind)
		}
		if r.Amount != 0 || r.Text != "" {
			return fmt.Errorf("%s reward takes only a ref", r.Kind)
		}
	case RewardLore:
		if r.Text == "" {
			return fmt.Errorf("%s reward needs text", r.Kind)
		}
		if r.Ref != "" || r.Amount != 0 {
			return fmt.Errorf("%s reward takes only text", r.Kind)
		}
	default:
		return fmt.Errorf("unknown reward kind %q", r.Kind)
	}
	return nil
}

func (r Reward) toMap() map[string]any {
	m := map[string]any{"kind": string(r.Kind)}
	if r.Ref != "" {
		m["ref"] = r.Ref
	}
	if r.Amount != 0 {
		m["amount"] = r.Amount
	}
	if r.Text != "" {
		m["text"] = r.Text
	}
	return m
}

func rewardFromMap(m map[string]any) (Reward, error) {
	kind, ok := m["kind"].(string)
	if !ok {
		return Reward{}, fmt.Errorf("reward kind missing or not a string")
	}
	r := Reward{Kind: RewardKind(kind)}
	if ref, ok := m["ref"]; ok {
		s, ok := ref.(string)
		if !ok {
			return Reward{}, fmt.Errorf("reward ref must be a string, got %T", ref)
		}
		r.Ref = s
	}
	if raw, ok := m["amount"]; ok {
		n, ok := intFrom(raw)
		if !ok {
			return Reward{}, fmt.Errorf("reward amount must be an integer, got %v", raw)
		}
		r.Amount = n
	}
	if text, ok := m["text"]; ok {
		s, ok := text.(string)
		if !ok {
			return Reward{}, fmt.Errorf("reward text must be a string, got %T", text)
		}
		r.Text = s
	}
	if err := r.validate(); err != nil {
		return Reward{}, err
	}
	return r, nil
}

// Field converters. Triggers and rewards live in memory as []Trigger
// and []Reward; on disk they are sequences of flat mappings.

func validTriggers(v any) bool {
	ts, ok := v.([]Trigger)
	if !ok {
		return false
	}
	for _, t := range ts {
		if t.validate() != nil {
			return false
		}
	}
	return true
}

func loadTriggers(v any) (any, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a sequence of triggers, got %T", v)
	}
	out := make([]Trigger, 0, len(seq))
	for i, item := range seq {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("trigger %d: expected a mapping, got %T", i, item)
		}
		t, err := triggerFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("trigger %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func dumpTriggers(v any) any {
	ts, _ := v.([]Trigger)
	out := make([]any, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.toMap())
	}
	return out
}

func validRewards(v any) bool {
	rs, ok := v.([]Reward)
	if !ok {
		return false
	}
	for _, r := range rs {
		if r.validate() != nil {
			return false
		}
	}
	return true
}

func loadRewards(v any) (any, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a sequence of rewards, got %T", v)
	}
	out := make([]Reward, 0, len(seq))
	for i, item := range seq {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("reward %d: expected a mapping, got %T", i, item)
		}
		r, err := rewardFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("reward %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func dumpRewards(v any) any {
	rs, _ := v.([]Reward)
	out := make([]any, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.toMap())
	}
	return out
}

// intFrom converts document numbers to int, accepting whole floats the
// way JSON delivers them.
func intFrom(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if !math.IsInf(n, 0) && math.Trunc(n) == n {
			return int(n), true
		}
	}
	return 0, false
}
