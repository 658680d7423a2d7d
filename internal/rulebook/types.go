// Package rulebook holds the immutable content catalog: races, classes,
// backgrounds, feats, and the choice templates they grant. The catalog
// is built once at process start and injected; nothing mutates it.
package rulebook

import (
	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
)

// Option is one selectable entry in a choice template
type Option struct {
	Slug string
	Name string
	// IsCategory marks an option standing for a whole item category;
	// resolving it requires concrete item selections.
	IsCategory bool
}

// ChoiceTemplate is a static description of a decision a source grants.
// Templates are evaluated against the character's current level: a
// template with Level N instantiates once the character has reached
// level N in the granting class (race and background templates use 1).
type ChoiceTemplate struct {
	Type     dnd5e.ChoiceType
	Level    int32
	Group    string
	Quantity int32
	Required bool
	Options  []Option
	// OptionsFrom names a catalog category expanded into Options at
	// compile time. Options and OptionsFrom are mutually exclusive.
	OptionsFrom string
}

// GrantTemplate is a static automatic grant from a source
type GrantTemplate struct {
	Kind     dnd5e.GrantKind
	Key      string
	Amount   int32
	Quantity int32
	Level    int32
}

// AbilityMinimum is one ability score floor within a prerequisite group
type AbilityMinimum struct {
	Ability string
	Minimum int32
}

// PrereqGroup is a conjunction of ability minimums. A multiclass
// prerequisite is satisfied when any one group is fully met.
type PrereqGroup struct {
	All []AbilityMinimum
}

// SubraceData describes a subrace attached to a parent race
type SubraceData struct {
	Slug    string
	Name    string
	Grants  []GrantTemplate
	Choices []ChoiceTemplate
}

// RaceData describes a race, its automatic grants, and its choices
type RaceData struct {
	Slug     string
	Name     string
	Speed    int32
	Grants   []GrantTemplate
	Choices  []ChoiceTemplate
	Subraces []SubraceData
}

// Subrace returns the subrace with the given slug
func (r *RaceData) Subrace(slug string) (*SubraceData, bool) {
	for i := range r.Subraces {
		if r.Subraces[i].Slug == slug {
			return &r.Subraces[i], true
		}
	}
	return nil, false
}

// SubclassData describes one subclass of a class
type SubclassData struct {
	Slug    string
	Name    string
	Grants  []GrantTemplate
	Choices []ChoiceTemplate
}

// ClassData describes a class: hit die, proficiencies, choice templates
// per level, subclasses, and the multiclass prerequisite.
type ClassData struct {
	Slug          string
	Name          string
	HitDie        int32
	Grants        []GrantTemplate
	Choices       []ChoiceTemplate
	SubclassLevel int32
	Subclasses    []SubclassData
	// ASILevels are the class levels granting an ability score
	// improvement or feat.
	ASILevels []int32
	// EquipmentGrants and EquipmentChoices apply only when the
	// character takes starting equipment (primary class, equipment
	// mode resolved to "equipment").
	EquipmentGrants   []GrantTemplate
	EquipmentChoices  []ChoiceTemplate
	MulticlassPrereqs []PrereqGroup
}

// Subclass returns the subclass with the given slug
func (c *ClassData) Subclass(slug string) (*SubclassData, bool) {
	for i := range c.Subclasses {
		if c.Subclasses[i].Slug == slug {
			return &c.Subclasses[i], true
		}
	}
	return nil, false
}

// HasASIAt reports whether the class grants an ASI at the given level
func (c *ClassData) HasASIAt(level int32) bool {
	for _, l := range c.ASILevels {
		if l == level {
			return true
		}
	}
	return false
}

// BackgroundData describes a background and its grants and choices
type BackgroundData struct {
	Slug    string
	Name    string
	Grants  []GrantTemplate
	Choices []ChoiceTemplate
}

// FeatData describes a feat and what taking it grants
type FeatData struct {
	Slug    string
	Name    string
	Grants  []GrantTemplate
	Choices []ChoiceTemplate
}
