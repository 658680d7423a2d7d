package dnd5e

// AbilityScores holds the six named ability scores
type AbilityScores struct {
	Strength     int32 `json:"strength"`
	Dexterity    int32 `json:"dexterity"`
	Constitution int32 `json:"constitution"`
	Intelligence int32 `json:"intelligence"`
	Wisdom       int32 `json:"wisdom"`
	Charisma     int32 `json:"charisma"`
}

// Get returns the score for the given ability identifier
func (a AbilityScores) Get(ability string) int32 {
	switch ability {
	case AbilityStrength:
		return a.Strength
	case AbilityDexterity:
		return a.Dexterity
	case AbilityConstitution:
		return a.Constitution
	case AbilityIntelligence:
		return a.Intelligence
	case AbilityWisdom:
		return a.Wisdom
	case AbilityCharisma:
		return a.Charisma
	default:
		return 0
	}
}

// Add increases the score for the given ability identifier
func (a *AbilityScores) Add(ability string, amount int32) {
	switch ability {
	case AbilityStrength:
		a.Strength += amount
	case AbilityDexterity:
		a.Dexterity += amount
	case AbilityConstitution:
		a.Constitution += amount
	case AbilityIntelligence:
		a.Intelligence += amount
	case AbilityWisdom:
		a.Wisdom += amount
	case AbilityCharisma:
		a.Charisma += amount
	}
}

// AllSet reports whether all six scores are positive
func (a AbilityScores) AllSet() bool {
	for _, name := range AbilityNames {
		if a.Get(name) <= 0 {
			return false
		}
	}
	return true
}

// Modifier returns the ability modifier for a score, rounding down
func Modifier(score int32) int32 {
	// Integer division truncates toward zero; modifiers for odd scores
	// below 10 must round down instead.
	diff := score - 10
	if diff < 0 {
		return -((-diff + 1) / 2)
	}
	return diff / 2
}

// Grant is a durable effect attached to a character, tagged with the
// provenance that cascading removal matches on.
type Grant struct {
	Kind GrantKind `json:"kind"`
	// Key identifies what was granted: a proficiency, language, spell,
	// item, feature, or feat slug, or an ability identifier for
	// ability_bonus grants.
	Key        string     `json:"key"`
	Amount     int32      `json:"amount,omitempty"`
	Quantity   int32      `json:"quantity,omitempty"`
	Source     SourceKind `json:"source"`
	SourceSlug string     `json:"source_slug"`
	// ChoiceID is set when the grant came from a resolved choice rather
	// than an automatic grant. Undo removes grants by choice ID.
	ChoiceID string `json:"choice_id,omitempty"`
}

// ClassEntry is one class membership row for a possibly multiclass character
type ClassEntry struct {
	ClassSlug    string `json:"class_slug"`
	SubclassSlug string `json:"subclass_slug,omitempty"`
	Level        int32  `json:"level"`
	IsPrimary    bool   `json:"is_primary"`
}

// Character is the aggregate root. It persists indefinitely in an
// incomplete state until all required choices resolve.
type Character struct {
	ID        string `json:"id"`
	PlayerID  string `json:"player_id,omitempty"`
	Name      string `json:"name"`
	Alignment string `json:"alignment,omitempty"`

	RaceSlug       string `json:"race_slug,omitempty"`
	SubraceSlug    string `json:"subrace_slug,omitempty"`
	BackgroundSlug string `json:"background_slug,omitempty"`

	// BaseScores are the player-assigned scores before racial bonuses
	// and ability score improvements, which apply as grants.
	BaseScores AbilityScores `json:"base_scores"`

	Classes          []ClassEntry      `json:"classes,omitempty"`
	Grants           []Grant           `json:"grants,omitempty"`
	ChoiceSelections []ChoiceSelection `json:"choice_selections,omitempty"`

	HitPointMaximum int32 `json:"hit_point_maximum"`
	IsDead          bool  `json:"is_dead,omitempty"`

	// Version supports optimistic concurrency in the repository
	Version   int64 `json:"version"`
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// TotalLevel is the sum of all class entry levels
func (c *Character) TotalLevel() int32 {
	var total int32
	for i := range c.Classes {
		total += c.Classes[i].Level
	}
	return total
}

// Class returns the class entry for slug
func (c *Character) Class(slug string) (*ClassEntry, bool) {
	for i := range c.Classes {
		if c.Classes[i].ClassSlug == slug {
			return &c.Classes[i], true
		}
	}
	return nil, false
}

// PrimaryClass returns the entry flagged primary, or the first entry
func (c *Character) PrimaryClass() (*ClassEntry, bool) {
	for i := range c.Classes {
		if c.Classes[i].IsPrimary {
			return &c.Classes[i], true
		}
	}
	if len(c.Classes) > 0 {
		return &c.Classes[0], true
	}
	return nil, false
}

// EffectiveScores returns base scores plus all ability_bonus grants
func (c *Character) EffectiveScores() AbilityScores {
	scores := c.BaseScores
	for i := range c.Grants {
		if c.Grants[i].Kind == GrantAbilityBonus {
			scores.Add(c.Grants[i].Key, c.Grants[i].Amount)
		}
	}
	return scores
}

// HasGrant reports whether the character holds a grant of the given kind
// and key from any source.
func (c *Character) HasGrant(kind GrantKind, key string) bool {
	for i := range c.Grants {
		if c.Grants[i].Kind == kind && c.Grants[i].Key == key {
			return true
		}
	}
	return false
}

// HasGrantFromOther reports whether the character holds a grant of the
// given kind and key from a provenance other than (source, sourceSlug).
// Collision filtering uses this to drop already-guaranteed options.
func (c *Character) HasGrantFromOther(kind GrantKind, key string, source SourceKind, sourceSlug string) bool {
	for i := range c.Grants {
		g := &c.Grants[i]
		if g.Kind == kind && g.Key == key && !(g.Source == source && g.SourceSlug == sourceSlug) {
			return true
		}
	}
	return false
}

// FeatSlugs returns the slugs of all feats the character has taken
func (c *Character) FeatSlugs() []string {
	var feats []string
	for i := range c.Grants {
		if c.Grants[i].Kind == GrantFeat {
			feats = append(feats, c.Grants[i].Key)
		}
	}
	return feats
}

// SelectionFor returns the recorded selection for a choice ID
func (c *Character) SelectionFor(choiceID string) (*ChoiceSelection, bool) {
	for i := range c.ChoiceSelections {
		if c.ChoiceSelections[i].ChoiceID == choiceID {
			return &c.ChoiceSelections[i], true
		}
	}
	return nil, false
}

// SetSelection records or replaces the selection for a choice ID
func (c *Character) SetSelection(sel ChoiceSelection) {
	for i := range c.ChoiceSelections {
		if c.ChoiceSelections[i].ChoiceID == sel.ChoiceID {
			c.ChoiceSelections[i] = sel
			return
		}
	}
	c.ChoiceSelections = append(c.ChoiceSelections, sel)
}

// RemoveSelection deletes the selection for a choice ID
func (c *Character) RemoveSelection(choiceID string) {
	kept := c.ChoiceSelections[:0]
	for i := range c.ChoiceSelections {
		if c.ChoiceSelections[i].ChoiceID != choiceID {
			kept = append(kept, c.ChoiceSelections[i])
		}
	}
	c.ChoiceSelections = kept
}

// RemoveGrantsByChoice deletes all grants committed by a choice ID
func (c *Character) RemoveGrantsByChoice(choiceID string) {
	kept := c.Grants[:0]
	for i := range c.Grants {
		if c.Grants[i].ChoiceID != choiceID {
			kept = append(kept, c.Grants[i])
		}
	}
	c.Grants = kept
}

// RemoveBySource deletes all grants and selections whose provenance
// matches (source, sourceSlug) exactly. Grants with a different
// provenance are never touched, even when they grant the same effect.
func (c *Character) RemoveBySource(source SourceKind, sourceSlug string) {
	keptGrants := c.Grants[:0]
	for i := range c.Grants {
		if !(c.Grants[i].Source == source && c.Grants[i].SourceSlug == sourceSlug) {
			keptGrants = append(keptGrants, c.Grants[i])
		}
	}
	c.Grants = keptGrants

	keptSelections := c.ChoiceSelections[:0]
	for i := range c.ChoiceSelections {
		id, err := ParseChoiceID(c.ChoiceSelections[i].ChoiceID)
		if err != nil || !(id.Source == source && id.SourceSlug == sourceSlug) {
			keptSelections = append(keptSelections, c.ChoiceSelections[i])
		}
	}
	c.ChoiceSelections = keptSelections
}
