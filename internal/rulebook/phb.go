package rulebook

import (
	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
)

// DefaultPHB builds the catalog from the Player's Handbook content the
// service ships with.
func DefaultPHB() (*Catalog, error) {
	return New(&Config{
		Races:       phbRaces(),
		Classes:     phbClasses(),
		Backgrounds: phbBackgrounds(),
		Feats:       phbFeats(),
		Categories:  phbCategories(),
	})
}

func phbCategories() map[string][]Option {
	return map[string][]Option{
		"phb:skills": {
			{Slug: "phb:acrobatics", Name: "Acrobatics"},
			{Slug: "phb:animal-handling", Name: "Animal Handling"},
			{Slug: "phb:arcana", Name: "Arcana"},
			{Slug: "phb:athletics", Name: "Athletics"},
			{Slug: "phb:deception", Name: "Deception"},
			{Slug: "phb:history", Name: "History"},
			{Slug: "phb:insight", Name: "Insight"},
			{Slug: "phb:intimidation", Name: "Intimidation"},
			{Slug: "phb:investigation", Name: "Investigation"},
			{Slug: "phb:medicine", Name: "Medicine"},
			{Slug: "phb:nature", Name: "Nature"},
			{Slug: "phb:perception", Name: "Perception"},
			{Slug: "phb:performance", Name: "Performance"},
			{Slug: "phb:persuasion", Name: "Persuasion"},
			{Slug: "phb:religion", Name: "Religion"},
			{Slug: "phb:sleight-of-hand", Name: "Sleight of Hand"},
			{Slug: "phb:stealth", Name: "Stealth"},
			{Slug: "phb:survival", Name: "Survival"},
		},
		"phb:standard-languages": {
			{Slug: "phb:dwarvish", Name: "Dwarvish"},
			{Slug: "phb:elvish", Name: "Elvish"},
			{Slug: "phb:giant", Name: "Giant"},
			{Slug: "phb:gnomish", Name: "Gnomish"},
			{Slug: "phb:goblin", Name: "Goblin"},
			{Slug: "phb:halfling", Name: "Halfling"},
			{Slug: "phb:orc", Name: "Orc"},
			{Slug: "phb:draconic", Name: "Draconic"},
		},
		"phb:martial-weapons": {
			{Slug: "phb:battleaxe", Name: "Battleaxe"},
			{Slug: "phb:longsword", Name: "Longsword"},
			{Slug: "phb:rapier", Name: "Rapier"},
			{Slug: "phb:shortsword", Name: "Shortsword"},
			{Slug: "phb:warhammer", Name: "Warhammer"},
			{Slug: "phb:longbow", Name: "Longbow"},
		},
		"phb:artisan-tools": {
			{Slug: "phb:smiths-tools", Name: "Smith's Tools"},
			{Slug: "phb:brewers-supplies", Name: "Brewer's Supplies"},
			{Slug: "phb:masons-tools", Name: "Mason's Tools"},
		},
		"phb:wizard-cantrips": {
			{Slug: "phb:fire-bolt", Name: "Fire Bolt"},
			{Slug: "phb:mage-hand", Name: "Mage Hand"},
			{Slug: "phb:light", Name: "Light"},
			{Slug: "phb:prestidigitation", Name: "Prestidigitation"},
			{Slug: "phb:ray-of-frost", Name: "Ray of Frost"},
			{Slug: "phb:minor-illusion", Name: "Minor Illusion"},
		},
		"phb:wizard-spells-1": {
			{Slug: "phb:burning-hands", Name: "Burning Hands"},
			{Slug: "phb:charm-person", Name: "Charm Person"},
			{Slug: "phb:detect-magic", Name: "Detect Magic"},
			{Slug: "phb:feather-fall", Name: "Feather Fall"},
			{Slug: "phb:identify", Name: "Identify"},
			{Slug: "phb:mage-armor", Name: "Mage Armor"},
			{Slug: "phb:magic-missile", Name: "Magic Missile"},
			{Slug: "phb:shield", Name: "Shield"},
			{Slug: "phb:sleep", Name: "Sleep"},
			{Slug: "phb:thunderwave", Name: "Thunderwave"},
		},
		"phb:ranger-spells-1": {
			{Slug: "phb:cure-wounds", Name: "Cure Wounds"},
			{Slug: "phb:ensnaring-strike", Name: "Ensnaring Strike"},
			{Slug: "phb:goodberry", Name: "Goodberry"},
			{Slug: "phb:hunters-mark", Name: "Hunter's Mark"},
		},
	}
}

func phbRaces() []RaceData {
	return []RaceData{
		{
			Slug:  "phb:elf",
			Name:  "Elf",
			Speed: 30,
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantAbilityBonus, Key: dnd5e.AbilityDexterity, Amount: 2},
				{Kind: dnd5e.GrantProficiency, Key: "phb:perception"}, // Keen Senses
				{Kind: dnd5e.GrantLanguage, Key: "phb:common"},
				{Kind: dnd5e.GrantLanguage, Key: "phb:elvish"},
				{Kind: dnd5e.GrantFeature, Key: "phb:darkvision"},
				{Kind: dnd5e.GrantFeature, Key: "phb:fey-ancestry"},
				{Kind: dnd5e.GrantFeature, Key: "phb:trance"},
			},
			Subraces: []SubraceData{
				{
					Slug: "phb:high-elf",
					Name: "High Elf",
					Grants: []GrantTemplate{
						{Kind: dnd5e.GrantAbilityBonus, Key: dnd5e.AbilityIntelligence, Amount: 1},
						{Kind: dnd5e.GrantProficiency, Key: "phb:longsword"},
						{Kind: dnd5e.GrantProficiency, Key: "phb:shortsword"},
						{Kind: dnd5e.GrantProficiency, Key: "phb:longbow"},
					},
					Choices: []ChoiceTemplate{
						{
							Type:        dnd5e.ChoiceTypeSpell,
							Group:       "cantrip",
							Quantity:    1,
							Required:    true,
							OptionsFrom: "phb:wizard-cantrips",
						},
						{
							Type:        dnd5e.ChoiceTypeLanguage,
							Group:       "extra-language",
							Quantity:    1,
							Required:    true,
							OptionsFrom: "phb:standard-languages",
						},
					},
				},
				{
					Slug: "phb:wood-elf",
					Name: "Wood Elf",
					Grants: []GrantTemplate{
						{Kind: dnd5e.GrantAbilityBonus, Key: dnd5e.AbilityWisdom, Amount: 1},
						{Kind: dnd5e.GrantFeature, Key: "phb:mask-of-the-wild"},
					},
				},
			},
		},
		{
			Slug:  "phb:dwarf",
			Name:  "Dwarf",
			Speed: 25,
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantAbilityBonus, Key: dnd5e.AbilityConstitution, Amount: 2},
				{Kind: dnd5e.GrantLanguage, Key: "phb:common"},
				{Kind: dnd5e.GrantLanguage, Key: "phb:dwarvish"},
				{Kind: dnd5e.GrantFeature, Key: "phb:darkvision"},
				{Kind: dnd5e.GrantFeature, Key: "phb:dwarven-resilience"},
			},
			Choices: []ChoiceTemplate{
				{
					Type:        dnd5e.ChoiceTypeProficiency,
					Group:       "tool-proficiency",
					Quantity:    1,
					Required:    true,
					OptionsFrom: "phb:artisan-tools",
				},
			},
			Subraces: []SubraceData{
				{
					Slug: "phb:hill-dwarf",
					Name: "Hill Dwarf",
					Grants: []GrantTemplate{
						{Kind: dnd5e.GrantAbilityBonus, Key: dnd5e.AbilityWisdom, Amount: 1},
						{Kind: dnd5e.GrantFeature, Key: "phb:dwarven-toughness"},
					},
				},
			},
		},
		{
			Slug:  "phb:human",
			Name:  "Human",
			Speed: 30,
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantAbilityBonus, Key: dnd5e.AbilityStrength, Amount: 1},
				{Kind: dnd5e.GrantAbilityBonus, Key: dnd5e.AbilityDexterity, Amount: 1},
				{Kind: dnd5e.GrantAbilityBonus, Key: dnd5e.AbilityConstitution, Amount: 1},
				{Kind: dnd5e.GrantAbilityBonus, Key: dnd5e.AbilityIntelligence, Amount: 1},
				{Kind: dnd5e.GrantAbilityBonus, Key: dnd5e.AbilityWisdom, Amount: 1},
				{Kind: dnd5e.GrantAbilityBonus, Key: dnd5e.AbilityCharisma, Amount: 1},
				{Kind: dnd5e.GrantLanguage, Key: "phb:common"},
			},
			Choices: []ChoiceTemplate{
				{
					Type:        dnd5e.ChoiceTypeLanguage,
					Group:       "extra-language",
					Quantity:    1,
					Required:    true,
					OptionsFrom: "phb:standard-languages",
				},
			},
		},
		{
			Slug:  "phb:half-orc",
			Name:  "Half-Orc",
			Speed: 30,
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantAbilityBonus, Key: dnd5e.AbilityStrength, Amount: 2},
				{Kind: dnd5e.GrantAbilityBonus, Key: dnd5e.AbilityConstitution, Amount: 1},
				{Kind: dnd5e.GrantProficiency, Key: "phb:intimidation"},
				{Kind: dnd5e.GrantLanguage, Key: "phb:common"},
				{Kind: dnd5e.GrantLanguage, Key: "phb:orc"},
				{Kind: dnd5e.GrantFeature, Key: "phb:darkvision"},
				{Kind: dnd5e.GrantFeature, Key: "phb:relentless-endurance"},
			},
		},
	}
}

func phbClasses() []ClassData {
	return []ClassData{
		{
			Slug:   "phb:wizard",
			Name:   "Wizard",
			HitDie: 6,
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantProficiency, Key: "phb:dagger"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:quarterstaff"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:saving-throw-int"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:saving-throw-wis"},
				{Kind: dnd5e.GrantFeature, Key: "phb:spellcasting"},
				{Kind: dnd5e.GrantFeature, Key: "phb:arcane-recovery"},
			},
			Choices: []ChoiceTemplate{
				{
					Type:     dnd5e.ChoiceTypeProficiency,
					Group:    "skills",
					Quantity: 2,
					Required: true,
					Options: []Option{
						{Slug: "phb:arcana", Name: "Arcana"},
						{Slug: "phb:history", Name: "History"},
						{Slug: "phb:insight", Name: "Insight"},
						{Slug: "phb:investigation", Name: "Investigation"},
						{Slug: "phb:medicine", Name: "Medicine"},
						{Slug: "phb:religion", Name: "Religion"},
					},
				},
				{
					Type:        dnd5e.ChoiceTypeSpell,
					Group:       "cantrips",
					Quantity:    3,
					Required:    true,
					OptionsFrom: "phb:wizard-cantrips",
				},
				{
					Type:        dnd5e.ChoiceTypeSpell,
					Group:       "spellbook-1",
					Quantity:    6,
					Required:    true,
					OptionsFrom: "phb:wizard-spells-1",
				},
				{
					Type:        dnd5e.ChoiceTypeSpell,
					Level:       2,
					Group:       "spellbook-2",
					Quantity:    2,
					Required:    true,
					OptionsFrom: "phb:wizard-spells-1",
				},
				{
					Type:        dnd5e.ChoiceTypeSpell,
					Level:       3,
					Group:       "spellbook-3",
					Quantity:    2,
					Required:    true,
					OptionsFrom: "phb:wizard-spells-1",
				},
			},
			SubclassLevel: 2,
			Subclasses: []SubclassData{
				{
					Slug: "phb:evocation",
					Name: "School of Evocation",
					Grants: []GrantTemplate{
						{Kind: dnd5e.GrantFeature, Key: "phb:evocation-savant"},
						{Kind: dnd5e.GrantFeature, Key: "phb:sculpt-spells"},
					},
				},
				{
					Slug: "phb:abjuration",
					Name: "School of Abjuration",
					Grants: []GrantTemplate{
						{Kind: dnd5e.GrantFeature, Key: "phb:abjuration-savant"},
						{Kind: dnd5e.GrantFeature, Key: "phb:arcane-ward"},
					},
				},
			},
			ASILevels: []int32{4, 8, 12, 16, 19},
			EquipmentGrants: []GrantTemplate{
				{Kind: dnd5e.GrantEquipment, Key: "phb:spellbook", Quantity: 1},
			},
			EquipmentChoices: []ChoiceTemplate{
				{
					Type:     dnd5e.ChoiceTypeEquipment,
					Group:    "weapon",
					Quantity: 1,
					Required: true,
					Options: []Option{
						{Slug: "phb:quarterstaff", Name: "Quarterstaff"},
						{Slug: "phb:dagger", Name: "Dagger"},
					},
				},
				{
					Type:     dnd5e.ChoiceTypeEquipment,
					Group:    "focus",
					Quantity: 1,
					Required: true,
					Options: []Option{
						{Slug: "phb:component-pouch", Name: "Component Pouch"},
						{Slug: "phb:arcane-focus", Name: "Arcane Focus"},
					},
				},
				{
					Type:     dnd5e.ChoiceTypeEquipment,
					Group:    "pack",
					Quantity: 1,
					Required: true,
					Options: []Option{
						{Slug: "phb:scholars-pack", Name: "Scholar's Pack"},
						{Slug: "phb:explorers-pack", Name: "Explorer's Pack"},
					},
				},
			},
			MulticlassPrereqs: []PrereqGroup{
				{All: []AbilityMinimum{{Ability: dnd5e.AbilityIntelligence, Minimum: 13}}},
			},
		},
		{
			Slug:   "phb:fighter",
			Name:   "Fighter",
			HitDie: 10,
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantProficiency, Key: "phb:all-armor"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:shields"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:simple-weapons"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:martial-weapons"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:saving-throw-str"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:saving-throw-con"},
				{Kind: dnd5e.GrantFeature, Key: "phb:second-wind"},
				{Kind: dnd5e.GrantFeature, Key: "phb:action-surge", Level: 2},
			},
			Choices: []ChoiceTemplate{
				{
					Type:     dnd5e.ChoiceTypeProficiency,
					Group:    "skills",
					Quantity: 2,
					Required: true,
					Options: []Option{
						{Slug: "phb:acrobatics", Name: "Acrobatics"},
						{Slug: "phb:animal-handling", Name: "Animal Handling"},
						{Slug: "phb:athletics", Name: "Athletics"},
						{Slug: "phb:history", Name: "History"},
						{Slug: "phb:insight", Name: "Insight"},
						{Slug: "phb:intimidation", Name: "Intimidation"},
						{Slug: "phb:perception", Name: "Perception"},
						{Slug: "phb:survival", Name: "Survival"},
					},
				},
				{
					Type:     dnd5e.ChoiceTypeOptionalFeature,
					Group:    "fighting-style",
					Quantity: 1,
					Required: true,
					Options: []Option{
						{Slug: "phb:archery", Name: "Archery"},
						{Slug: "phb:defense", Name: "Defense"},
						{Slug: "phb:dueling", Name: "Dueling"},
						{Slug: "phb:great-weapon-fighting", Name: "Great Weapon Fighting"},
					},
				},
			},
			SubclassLevel: 3,
			Subclasses: []SubclassData{
				{
					Slug: "phb:champion",
					Name: "Champion",
					Grants: []GrantTemplate{
						{Kind: dnd5e.GrantFeature, Key: "phb:improved-critical"},
					},
				},
				{
					Slug: "phb:battle-master",
					Name: "Battle Master",
					Grants: []GrantTemplate{
						{Kind: dnd5e.GrantFeature, Key: "phb:combat-superiority"},
					},
				},
			},
			ASILevels: []int32{4, 6, 8, 12, 14, 16, 19},
			EquipmentChoices: []ChoiceTemplate{
				{
					Type:     dnd5e.ChoiceTypeEquipment,
					Group:    "armor",
					Quantity: 1,
					Required: true,
					Options: []Option{
						{Slug: "phb:chain-mail", Name: "Chain Mail"},
						{Slug: "phb:leather-armor-longbow", Name: "Leather Armor, Longbow and 20 Arrows"},
					},
				},
				{
					Type:     dnd5e.ChoiceTypeEquipment,
					Group:    "weapons",
					Quantity: 1,
					Required: true,
					Options: []Option{
						{Slug: "phb:martial-weapons", Name: "A Martial Weapon and a Shield", IsCategory: true},
						{Slug: "phb:light-crossbow", Name: "Light Crossbow and 20 Bolts"},
					},
				},
				{
					Type:     dnd5e.ChoiceTypeEquipment,
					Group:    "pack",
					Quantity: 1,
					Required: true,
					Options: []Option{
						{Slug: "phb:dungeoneers-pack", Name: "Dungeoneer's Pack"},
						{Slug: "phb:explorers-pack", Name: "Explorer's Pack"},
					},
				},
			},
			MulticlassPrereqs: []PrereqGroup{
				{All: []AbilityMinimum{{Ability: dnd5e.AbilityStrength, Minimum: 13}}},
				{All: []AbilityMinimum{{Ability: dnd5e.AbilityDexterity, Minimum: 13}}},
			},
		},
		{
			Slug:   "phb:rogue",
			Name:   "Rogue",
			HitDie: 8,
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantProficiency, Key: "phb:light-armor"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:simple-weapons"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:thieves-tools"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:saving-throw-dex"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:saving-throw-int"},
				{Kind: dnd5e.GrantLanguage, Key: "phb:thieves-cant"},
				{Kind: dnd5e.GrantFeature, Key: "phb:sneak-attack"},
				{Kind: dnd5e.GrantFeature, Key: "phb:cunning-action", Level: 2},
			},
			Choices: []ChoiceTemplate{
				{
					Type:     dnd5e.ChoiceTypeProficiency,
					Group:    "skills",
					Quantity: 4,
					Required: true,
					Options: []Option{
						{Slug: "phb:acrobatics", Name: "Acrobatics"},
						{Slug: "phb:athletics", Name: "Athletics"},
						{Slug: "phb:deception", Name: "Deception"},
						{Slug: "phb:insight", Name: "Insight"},
						{Slug: "phb:intimidation", Name: "Intimidation"},
						{Slug: "phb:investigation", Name: "Investigation"},
						{Slug: "phb:perception", Name: "Perception"},
						{Slug: "phb:performance", Name: "Performance"},
						{Slug: "phb:persuasion", Name: "Persuasion"},
						{Slug: "phb:sleight-of-hand", Name: "Sleight of Hand"},
						{Slug: "phb:stealth", Name: "Stealth"},
					},
				},
				{
					Type:     dnd5e.ChoiceTypeExpertise,
					Group:    "expertise-1",
					Quantity: 2,
					Required: true,
					Options: []Option{
						{Slug: "phb:acrobatics", Name: "Acrobatics"},
						{Slug: "phb:athletics", Name: "Athletics"},
						{Slug: "phb:deception", Name: "Deception"},
						{Slug: "phb:insight", Name: "Insight"},
						{Slug: "phb:investigation", Name: "Investigation"},
						{Slug: "phb:perception", Name: "Perception"},
						{Slug: "phb:sleight-of-hand", Name: "Sleight of Hand"},
						{Slug: "phb:stealth", Name: "Stealth"},
						{Slug: "phb:thieves-tools", Name: "Thieves' Tools"},
					},
				},
			},
			SubclassLevel: 3,
			Subclasses: []SubclassData{
				{
					Slug: "phb:thief",
					Name: "Thief",
					Grants: []GrantTemplate{
						{Kind: dnd5e.GrantFeature, Key: "phb:fast-hands"},
						{Kind: dnd5e.GrantFeature, Key: "phb:second-story-work"},
					},
				},
				{
					Slug: "phb:assassin",
					Name: "Assassin",
					Grants: []GrantTemplate{
						{Kind: dnd5e.GrantFeature, Key: "phb:assassinate"},
					},
				},
			},
			ASILevels: []int32{4, 8, 10, 12, 16, 19},
			EquipmentChoices: []ChoiceTemplate{
				{
					Type:     dnd5e.ChoiceTypeEquipment,
					Group:    "weapon",
					Quantity: 1,
					Required: true,
					Options: []Option{
						{Slug: "phb:rapier", Name: "Rapier"},
						{Slug: "phb:shortsword", Name: "Shortsword"},
					},
				},
				{
					Type:     dnd5e.ChoiceTypeEquipment,
					Group:    "pack",
					Quantity: 1,
					Required: true,
					Options: []Option{
						{Slug: "phb:burglars-pack", Name: "Burglar's Pack"},
						{Slug: "phb:dungeoneers-pack", Name: "Dungeoneer's Pack"},
						{Slug: "phb:explorers-pack", Name: "Explorer's Pack"},
					},
				},
			},
			MulticlassPrereqs: []PrereqGroup{
				{All: []AbilityMinimum{{Ability: dnd5e.AbilityDexterity, Minimum: 13}}},
			},
		},
		{
			Slug:   "phb:ranger",
			Name:   "Ranger",
			HitDie: 10,
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantProficiency, Key: "phb:light-armor"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:medium-armor"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:shields"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:simple-weapons"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:martial-weapons"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:saving-throw-str"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:saving-throw-dex"},
				{Kind: dnd5e.GrantFeature, Key: "phb:favored-enemy"},
				{Kind: dnd5e.GrantFeature, Key: "phb:natural-explorer"},
				{Kind: dnd5e.GrantFeature, Key: "phb:spellcasting", Level: 2},
			},
			Choices: []ChoiceTemplate{
				{
					Type:     dnd5e.ChoiceTypeProficiency,
					Group:    "skills",
					Quantity: 3,
					Required: true,
					Options: []Option{
						{Slug: "phb:animal-handling", Name: "Animal Handling"},
						{Slug: "phb:athletics", Name: "Athletics"},
						{Slug: "phb:insight", Name: "Insight"},
						{Slug: "phb:investigation", Name: "Investigation"},
						{Slug: "phb:nature", Name: "Nature"},
						{Slug: "phb:perception", Name: "Perception"},
						{Slug: "phb:stealth", Name: "Stealth"},
						{Slug: "phb:survival", Name: "Survival"},
					},
				},
				{
					Type:     dnd5e.ChoiceTypeOptionalFeature,
					Level:    2,
					Group:    "fighting-style",
					Quantity: 1,
					Required: true,
					Options: []Option{
						{Slug: "phb:archery", Name: "Archery"},
						{Slug: "phb:defense", Name: "Defense"},
						{Slug: "phb:dueling", Name: "Dueling"},
						{Slug: "phb:two-weapon-fighting", Name: "Two-Weapon Fighting"},
					},
				},
				{
					Type:        dnd5e.ChoiceTypeSpell,
					Level:       2,
					Group:       "spells-known",
					Quantity:    2,
					Required:    true,
					OptionsFrom: "phb:ranger-spells-1",
				},
			},
			SubclassLevel: 3,
			Subclasses: []SubclassData{
				{
					Slug: "phb:hunter",
					Name: "Hunter",
					Grants: []GrantTemplate{
						{Kind: dnd5e.GrantFeature, Key: "phb:hunters-prey"},
					},
				},
				{
					Slug: "phb:beast-master",
					Name: "Beast Master",
					Grants: []GrantTemplate{
						{Kind: dnd5e.GrantFeature, Key: "phb:rangers-companion"},
					},
				},
			},
			ASILevels: []int32{4, 8, 12, 16, 19},
			EquipmentChoices: []ChoiceTemplate{
				{
					Type:     dnd5e.ChoiceTypeEquipment,
					Group:    "armor",
					Quantity: 1,
					Required: true,
					Options: []Option{
						{Slug: "phb:scale-mail", Name: "Scale Mail"},
						{Slug: "phb:leather-armor", Name: "Leather Armor"},
					},
				},
				{
					Type:     dnd5e.ChoiceTypeEquipment,
					Group:    "weapons",
					Quantity: 1,
					Required: true,
					Options: []Option{
						{Slug: "phb:shortsword", Name: "Two Shortswords"},
						{Slug: "phb:simple-melee", Name: "Two Simple Melee Weapons"},
					},
				},
			},
			MulticlassPrereqs: []PrereqGroup{
				{All: []AbilityMinimum{
					{Ability: dnd5e.AbilityDexterity, Minimum: 13},
					{Ability: dnd5e.AbilityWisdom, Minimum: 13},
				}},
			},
		},
	}
}

func phbBackgrounds() []BackgroundData {
	return []BackgroundData{
		{
			Slug: "phb:sage",
			Name: "Sage",
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantProficiency, Key: "phb:arcana"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:history"},
				{Kind: dnd5e.GrantFeature, Key: "phb:researcher"},
			},
			Choices: []ChoiceTemplate{
				{
					Type:        dnd5e.ChoiceTypeLanguage,
					Group:       "languages",
					Quantity:    2,
					Required:    true,
					OptionsFrom: "phb:standard-languages",
				},
			},
		},
		{
			Slug: "phb:soldier",
			Name: "Soldier",
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantProficiency, Key: "phb:athletics"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:intimidation"},
				{Kind: dnd5e.GrantFeature, Key: "phb:military-rank"},
			},
			Choices: []ChoiceTemplate{
				{
					Type:     dnd5e.ChoiceTypeProficiency,
					Group:    "gaming-set",
					Quantity: 1,
					Required: true,
					Options: []Option{
						{Slug: "phb:dice-set", Name: "Dice Set"},
						{Slug: "phb:playing-card-set", Name: "Playing Card Set"},
					},
				},
			},
		},
		{
			Slug: "phb:acolyte",
			Name: "Acolyte",
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantProficiency, Key: "phb:insight"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:religion"},
				{Kind: dnd5e.GrantFeature, Key: "phb:shelter-of-the-faithful"},
			},
			Choices: []ChoiceTemplate{
				{
					Type:        dnd5e.ChoiceTypeLanguage,
					Group:       "languages",
					Quantity:    2,
					Required:    true,
					OptionsFrom: "phb:standard-languages",
				},
			},
		},
		{
			Slug: "phb:criminal",
			Name: "Criminal",
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantProficiency, Key: "phb:deception"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:stealth"},
				{Kind: dnd5e.GrantProficiency, Key: "phb:thieves-tools"},
				{Kind: dnd5e.GrantFeature, Key: "phb:criminal-contact"},
			},
		},
	}
}

func phbFeats() []FeatData {
	return []FeatData{
		{
			Slug: "phb:alert",
			Name: "Alert",
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantFeature, Key: "phb:alert-initiative"},
			},
		},
		{
			Slug: "phb:skilled",
			Name: "Skilled",
			Choices: []ChoiceTemplate{
				{
					Type:        dnd5e.ChoiceTypeProficiency,
					Group:       "skilled",
					Quantity:    3,
					Required:    true,
					OptionsFrom: "phb:skills",
				},
			},
		},
		{
			Slug: "phb:tough",
			Name: "Tough",
			Grants: []GrantTemplate{
				{Kind: dnd5e.GrantFeature, Key: "phb:tough-hp"},
			},
		},
	}
}
