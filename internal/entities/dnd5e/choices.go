package dnd5e

import (
	"fmt"
	"strconv"
	"strings"
)

// ChoiceType represents the type of decision a pending choice asks for
type ChoiceType string

// Choice types
const (
	ChoiceTypeProficiency     ChoiceType = "proficiency"
	ChoiceTypeLanguage        ChoiceType = "language"
	ChoiceTypeSpell           ChoiceType = "spell"
	ChoiceTypeEquipment       ChoiceType = "equipment"
	ChoiceTypeEquipmentMode   ChoiceType = "equipment_mode"
	ChoiceTypeSize            ChoiceType = "size"
	ChoiceTypeAbilityScore    ChoiceType = "ability_score"
	ChoiceTypeOptionalFeature ChoiceType = "optional_feature"
	ChoiceTypeFeat            ChoiceType = "feat"
	ChoiceTypeSubclass        ChoiceType = "subclass"
	ChoiceTypeHitPoints       ChoiceType = "hit_points"
	ChoiceTypeASIOrFeat       ChoiceType = "asi_or_feat"
	ChoiceTypeExpertise       ChoiceType = "expertise"
	ChoiceTypeSpellSwap       ChoiceType = "spell_swap"
)

// CommitPolicy controls how a resubmission against a partially resolved
// choice is interpreted.
type CommitPolicy string

// Commit policies
const (
	// CommitPolicyReplace treats every submission as the full selection
	CommitPolicyReplace CommitPolicy = "replace"
	// CommitPolicyCumulative requires resubmissions to include all prior
	// selections plus the new ones. Clients send the full cumulative
	// list, never a delta.
	CommitPolicyCumulative CommitPolicy = "cumulative"
)

// CommitPolicy returns the commit policy for this choice type
func (t ChoiceType) CommitPolicy() CommitPolicy {
	if t == ChoiceTypeAbilityScore {
		return CommitPolicyCumulative
	}
	return CommitPolicyReplace
}

// Undoable reports whether a committed choice of this type can be reverted
func (t ChoiceType) Undoable() bool {
	switch t {
	case ChoiceTypeProficiency, ChoiceTypeLanguage, ChoiceTypeSpell,
		ChoiceTypeFeat, ChoiceTypeExpertise, ChoiceTypeOptionalFeature:
		return true
	default:
		return false
	}
}

// ChoiceIDDelimiter separates the fields of a composite choice ID.
// Slugs use ":" internally (phb:rogue) so "|" is the field delimiter.
const ChoiceIDDelimiter = "|"

// ChoiceID is the composite identifier of a pending choice
type ChoiceID struct {
	Type       ChoiceType
	Source     SourceKind
	SourceSlug string
	Level      int32
	Group      string
}

// String renders the delimited form: type|source|sourceSlug|level|group
func (id ChoiceID) String() string {
	return strings.Join([]string{
		string(id.Type),
		string(id.Source),
		id.SourceSlug,
		strconv.Itoa(int(id.Level)),
		id.Group,
	}, ChoiceIDDelimiter)
}

// ParseChoiceID parses the delimited composite form of a choice ID
func ParseChoiceID(s string) (ChoiceID, error) {
	parts := strings.Split(s, ChoiceIDDelimiter)
	if len(parts) != 5 {
		return ChoiceID{}, fmt.Errorf("choice ID %q: expected 5 fields, got %d", s, len(parts))
	}

	level, err := strconv.Atoi(parts[3])
	if err != nil {
		return ChoiceID{}, fmt.Errorf("choice ID %q: invalid level %q", s, parts[3])
	}

	id := ChoiceID{
		Type:       ChoiceType(parts[0]),
		Source:     SourceKind(parts[1]),
		SourceSlug: parts[2],
		Level:      int32(level), // #nosec G109
		Group:      parts[4],
	}
	if id.Type == "" || id.Source == "" || id.SourceSlug == "" || id.Group == "" {
		return ChoiceID{}, fmt.Errorf("choice ID %q: empty field", s)
	}
	return id, nil
}

// ChoiceOption is a single selectable option within a pending choice
type ChoiceOption struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	// IsCategory marks an option that stands for a whole item category
	// (e.g. "any martial weapon"). Resolving it requires item_selections
	// naming concrete items from that category.
	IsCategory bool `json:"is_category,omitempty"`
}

// PendingChoice represents one undecided decision a character must make
type PendingChoice struct {
	ID         string         `json:"id"`
	Type       ChoiceType     `json:"type"`
	Source     SourceKind     `json:"source"`
	SourceSlug string         `json:"source_slug"`
	Level      int32          `json:"level"`
	Group      string         `json:"group"`
	Quantity   int32          `json:"quantity"`
	Required   bool           `json:"required"`
	Options    []ChoiceOption `json:"options"`
	Selected   []string       `json:"selected"`
}

// Satisfied reports whether the choice has its full quantity selected
func (p *PendingChoice) Satisfied() bool {
	return int32(len(p.Selected)) == p.Quantity // #nosec G109
}

// HasOption reports whether slug is one of the choice's options
func (p *PendingChoice) HasOption(slug string) bool {
	for _, opt := range p.Options {
		if opt.Slug == slug {
			return true
		}
	}
	return false
}

// Option returns the option with the given slug
func (p *PendingChoice) Option(slug string) (ChoiceOption, bool) {
	for _, opt := range p.Options {
		if opt.Slug == slug {
			return opt, true
		}
	}
	return ChoiceOption{}, false
}

// ChoiceSelection records a committed (or partially committed) decision
type ChoiceSelection struct {
	ChoiceID string   `json:"choice_id"`
	Selected []string `json:"selected"`
	// ItemSelections maps a category option slug to the concrete item
	// slugs picked from that category.
	ItemSelections map[string][]string `json:"item_selections,omitempty"`
}

// ChoiceSummary aggregates the pending choice set for API consumers
type ChoiceSummary struct {
	TotalPending    int32                `json:"total_pending"`
	RequiredPending int32                `json:"required_pending"`
	ByType          map[ChoiceType]int32 `json:"by_type"`
	BySource        map[SourceKind]int32 `json:"by_source"`
}

// Summarize builds a ChoiceSummary over a pending choice set
func Summarize(pending []PendingChoice) ChoiceSummary {
	summary := ChoiceSummary{
		ByType:   make(map[ChoiceType]int32),
		BySource: make(map[SourceKind]int32),
	}
	for i := range pending {
		summary.TotalPending++
		if pending[i].Required {
			summary.RequiredPending++
		}
		summary.ByType[pending[i].Type]++
		summary.BySource[pending[i].Source]++
	}
	return summary
}
