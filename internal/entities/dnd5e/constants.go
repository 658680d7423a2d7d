package dnd5e

// SourceKind identifies which slot of the character granted an effect or
// choice. Cascading invalidation matches on (SourceKind, SourceSlug).
type SourceKind string

// Source kinds
const (
	SourceRace       SourceKind = "race"
	SourceSubrace    SourceKind = "subrace"
	SourceClass      SourceKind = "class"
	SourceSubclass   SourceKind = "subclass"
	SourceBackground SourceKind = "background"
	SourceFeat       SourceKind = "feat"
)

// Ability identifiers. Slugs are lowercase three-letter codes.
const (
	AbilityStrength     = "str"
	AbilityDexterity    = "dex"
	AbilityConstitution = "con"
	AbilityIntelligence = "int"
	AbilityWisdom       = "wis"
	AbilityCharisma     = "cha"
)

// AbilityNames lists all six abilities in standard order
var AbilityNames = []string{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// IsAbility reports whether name is one of the six ability identifiers
func IsAbility(name string) bool {
	for _, a := range AbilityNames {
		if a == name {
			return true
		}
	}
	return false
}

// PlaceholderName is assigned to newly created characters until the
// player names them. A character is not complete while it carries it.
const PlaceholderName = "New Character"

// MaxCharacterLevel caps total level across all classes
const MaxCharacterLevel = 20

// GrantKind identifies the kind of durable effect a Grant confers
type GrantKind string

// Grant kinds
const (
	GrantProficiency  GrantKind = "proficiency"
	GrantLanguage     GrantKind = "language"
	GrantSpell        GrantKind = "spell"
	GrantEquipment    GrantKind = "equipment"
	GrantFeature      GrantKind = "feature"
	GrantFeat         GrantKind = "feat"
	GrantAbilityBonus GrantKind = "ability_bonus"
)
