package engine

import (
	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-api/internal/errors"
	"github.com/KirkDiggler/character-api/internal/rulebook"
)

// Group names for choices the registry synthesizes itself rather than
// reading from a catalog template.
const (
	groupSubclass      = "subclass"
	groupEquipmentMode = "mode"
	groupASIOrFeat     = "asi-or-feat"
	groupASI           = "asi"
	groupFeat          = "feat"
)

// Equipment mode option slugs
const (
	EquipmentModeEquipment = "equipment"
	EquipmentModeGold      = "gold"
)

// ASI-or-feat option slugs
const (
	ASIOptionImprovement = "asi"
	ASIOptionFeat        = "feat"
)

// CompilePendingChoices recomputes the full pending-choice set from the
// character's attached sources. Satisfied choices are omitted; partially
// resolved ones carry their recorded selections. The computation is pure
// and runs in full on every call rather than patching a stored set.
func (e *Engine) CompilePendingChoices(ch *dnd5e.Character) ([]dnd5e.PendingChoice, error) {
	all, err := e.compileAll(ch)
	if err != nil {
		return nil, err
	}

	pending := make([]dnd5e.PendingChoice, 0, len(all))
	for i := range all {
		if !all[i].Satisfied() {
			pending = append(pending, all[i])
		}
	}
	return pending, nil
}

// compileAll returns every choice the character's sources imply at the
// current level, satisfied or not, with Selected filled from the
// character's recorded selections.
func (e *Engine) compileAll(ch *dnd5e.Character) ([]dnd5e.PendingChoice, error) {
	var out []dnd5e.PendingChoice

	add := func(choices []dnd5e.PendingChoice, err error) error {
		if err != nil {
			return err
		}
		out = append(out, choices...)
		return nil
	}

	if ch.RaceSlug != "" {
		race, ok := e.catalog.Race(ch.RaceSlug)
		if !ok {
			return nil, errors.NotFoundf("race %s not found", ch.RaceSlug)
		}
		if err := add(e.fromTemplates(ch, race.Choices, dnd5e.SourceRace, race.Slug, 1)); err != nil {
			return nil, err
		}
		if ch.SubraceSlug != "" {
			sub, ok := race.Subrace(ch.SubraceSlug)
			if !ok {
				return nil, errors.NotFoundf("subrace %s not found on race %s", ch.SubraceSlug, ch.RaceSlug)
			}
			if err := add(e.fromTemplates(ch, sub.Choices, dnd5e.SourceSubrace, sub.Slug, 1)); err != nil {
				return nil, err
			}
		}
	}

	for i := range ch.Classes {
		if err := add(e.fromClassEntry(ch, &ch.Classes[i])); err != nil {
			return nil, err
		}
	}

	if ch.BackgroundSlug != "" {
		bg, ok := e.catalog.Background(ch.BackgroundSlug)
		if !ok {
			return nil, errors.NotFoundf("background %s not found", ch.BackgroundSlug)
		}
		if err := add(e.fromTemplates(ch, bg.Choices, dnd5e.SourceBackground, bg.Slug, 1)); err != nil {
			return nil, err
		}
	}

	for _, featSlug := range ch.FeatSlugs() {
		feat, ok := e.catalog.Feat(featSlug)
		if !ok {
			return nil, errors.NotFoundf("feat %s not found", featSlug)
		}
		if err := add(e.fromTemplates(ch, feat.Choices, dnd5e.SourceFeat, feat.Slug, 1)); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// fromClassEntry compiles everything one class membership implies: the
// class's own templates up to the entry's level, the subclass decision
// and subclass templates, ASI-or-feat decisions with their follow-ups,
// and the equipment mode flow for the primary class.
func (e *Engine) fromClassEntry(ch *dnd5e.Character, entry *dnd5e.ClassEntry) ([]dnd5e.PendingChoice, error) {
	class, ok := e.catalog.Class(entry.ClassSlug)
	if !ok {
		return nil, errors.NotFoundf("class %s not found", entry.ClassSlug)
	}

	out, err := e.fromTemplates(ch, class.Choices, dnd5e.SourceClass, class.Slug, entry.Level)
	if err != nil {
		return nil, err
	}

	if class.SubclassLevel > 0 && entry.Level >= class.SubclassLevel {
		options := make([]dnd5e.ChoiceOption, 0, len(class.Subclasses))
		for i := range class.Subclasses {
			options = append(options, dnd5e.ChoiceOption{
				Slug: class.Subclasses[i].Slug,
				Name: class.Subclasses[i].Name,
			})
		}
		choice := e.fill(ch, dnd5e.PendingChoice{
			ID: dnd5e.ChoiceID{
				Type:       dnd5e.ChoiceTypeSubclass,
				Source:     dnd5e.SourceClass,
				SourceSlug: class.Slug,
				Level:      class.SubclassLevel,
				Group:      groupSubclass,
			}.String(),
			Type:       dnd5e.ChoiceTypeSubclass,
			Source:     dnd5e.SourceClass,
			SourceSlug: class.Slug,
			Level:      class.SubclassLevel,
			Group:      groupSubclass,
			Quantity:   1,
			Required:   true,
			Options:    options,
		})
		// A subclass set directly (not via choice resolution) counts as
		// decided too.
		if entry.SubclassSlug != "" && len(choice.Selected) == 0 {
			choice.Selected = []string{entry.SubclassSlug}
		}
		out = append(out, choice)

		if entry.SubclassSlug != "" {
			sub, ok := class.Subclass(entry.SubclassSlug)
			if !ok {
				return nil, errors.NotFoundf("subclass %s not found on class %s", entry.SubclassSlug, entry.ClassSlug)
			}
			subChoices, err := e.fromTemplates(ch, sub.Choices, dnd5e.SourceSubclass, sub.Slug, entry.Level)
			if err != nil {
				return nil, err
			}
			out = append(out, subChoices...)
		}
	}

	for _, level := range class.ASILevels {
		if level > entry.Level {
			continue
		}
		asiChoices, err := e.asiOrFeatAt(ch, class, level)
		if err != nil {
			return nil, err
		}
		out = append(out, asiChoices...)
	}

	if entry.IsPrimary {
		modeChoices, err := e.equipmentFlow(ch, class)
		if err != nil {
			return nil, err
		}
		out = append(out, modeChoices...)
	}

	return out, nil
}

// asiOrFeatAt emits the ASI-or-feat decision for one class level, plus
// the follow-up choice once the mode has been picked.
func (e *Engine) asiOrFeatAt(ch *dnd5e.Character, class *rulebook.ClassData, level int32) ([]dnd5e.PendingChoice, error) {
	modeID := dnd5e.ChoiceID{
		Type:       dnd5e.ChoiceTypeASIOrFeat,
		Source:     dnd5e.SourceClass,
		SourceSlug: class.Slug,
		Level:      level,
		Group:      groupASIOrFeat,
	}

	out := []dnd5e.PendingChoice{e.fill(ch, dnd5e.PendingChoice{
		ID:         modeID.String(),
		Type:       dnd5e.ChoiceTypeASIOrFeat,
		Source:     dnd5e.SourceClass,
		SourceSlug: class.Slug,
		Level:      level,
		Group:      groupASIOrFeat,
		Quantity:   1,
		Required:   true,
		Options: []dnd5e.ChoiceOption{
			{Slug: ASIOptionImprovement, Name: "Ability Score Improvement"},
			{Slug: ASIOptionFeat, Name: "Feat"},
		},
	})}

	sel, ok := ch.SelectionFor(modeID.String())
	if !ok || len(sel.Selected) == 0 {
		return out, nil
	}

	switch sel.Selected[0] {
	case ASIOptionImprovement:
		options := make([]dnd5e.ChoiceOption, 0, len(dnd5e.AbilityNames))
		for _, ability := range dnd5e.AbilityNames {
			options = append(options, dnd5e.ChoiceOption{Slug: ability, Name: ability})
		}
		out = append(out, e.fill(ch, dnd5e.PendingChoice{
			ID: dnd5e.ChoiceID{
				Type:       dnd5e.ChoiceTypeAbilityScore,
				Source:     dnd5e.SourceClass,
				SourceSlug: class.Slug,
				Level:      level,
				Group:      groupASI,
			}.String(),
			Type:       dnd5e.ChoiceTypeAbilityScore,
			Source:     dnd5e.SourceClass,
			SourceSlug: class.Slug,
			Level:      level,
			Group:      groupASI,
			Quantity:   2,
			Required:   true,
			Options:    options,
		}))
	case ASIOptionFeat:
		options := make([]dnd5e.ChoiceOption, 0)
		for _, opt := range e.catalog.FeatOptions() {
			if ch.HasGrant(dnd5e.GrantFeat, opt.Slug) {
				continue
			}
			options = append(options, dnd5e.ChoiceOption{Slug: opt.Slug, Name: opt.Name})
		}
		out = append(out, e.fill(ch, dnd5e.PendingChoice{
			ID: dnd5e.ChoiceID{
				Type:       dnd5e.ChoiceTypeFeat,
				Source:     dnd5e.SourceClass,
				SourceSlug: class.Slug,
				Level:      level,
				Group:      groupFeat,
			}.String(),
			Type:       dnd5e.ChoiceTypeFeat,
			Source:     dnd5e.SourceClass,
			SourceSlug: class.Slug,
			Level:      level,
			Group:      groupFeat,
			Quantity:   1,
			Required:   true,
			Options:    options,
		}))
	}

	return out, nil
}

// equipmentFlow emits the equipment mode decision for the primary class
// and, once the character has opted into starting equipment, the class's
// equipment choices.
func (e *Engine) equipmentFlow(ch *dnd5e.Character, class *rulebook.ClassData) ([]dnd5e.PendingChoice, error) {
	modeID := dnd5e.ChoiceID{
		Type:       dnd5e.ChoiceTypeEquipmentMode,
		Source:     dnd5e.SourceClass,
		SourceSlug: class.Slug,
		Level:      1,
		Group:      groupEquipmentMode,
	}

	out := []dnd5e.PendingChoice{e.fill(ch, dnd5e.PendingChoice{
		ID:         modeID.String(),
		Type:       dnd5e.ChoiceTypeEquipmentMode,
		Source:     dnd5e.SourceClass,
		SourceSlug: class.Slug,
		Level:      1,
		Group:      groupEquipmentMode,
		Quantity:   1,
		Required:   true,
		Options: []dnd5e.ChoiceOption{
			{Slug: EquipmentModeEquipment, Name: "Starting Equipment"},
			{Slug: EquipmentModeGold, Name: "Starting Gold"},
		},
	})}

	sel, ok := ch.SelectionFor(modeID.String())
	if !ok || len(sel.Selected) == 0 || sel.Selected[0] != EquipmentModeEquipment {
		return out, nil
	}

	equipChoices, err := e.fromTemplates(ch, class.EquipmentChoices, dnd5e.SourceClass, class.Slug, 1)
	if err != nil {
		return nil, err
	}
	return append(out, equipChoices...), nil
}

// fromTemplates instantiates catalog templates whose level the character
// has reached, expanding option categories and applying collision
// filtering.
func (e *Engine) fromTemplates(
	ch *dnd5e.Character,
	templates []rulebook.ChoiceTemplate,
	source dnd5e.SourceKind,
	sourceSlug string,
	currentLevel int32,
) ([]dnd5e.PendingChoice, error) {
	var out []dnd5e.PendingChoice
	for i := range templates {
		tmpl := &templates[i]
		level := tmpl.Level
		if level == 0 {
			level = 1
		}
		if level > currentLevel {
			continue
		}

		options, err := e.catalog.ExpandTemplate(tmpl)
		if err != nil {
			return nil, err
		}

		choiceOptions := make([]dnd5e.ChoiceOption, 0, len(options))
		for _, opt := range options {
			if filtered := e.collides(ch, tmpl.Type, opt.Slug, source, sourceSlug); filtered {
				continue
			}
			choiceOptions = append(choiceOptions, dnd5e.ChoiceOption{
				Slug:       opt.Slug,
				Name:       opt.Name,
				IsCategory: opt.IsCategory,
			})
		}

		out = append(out, e.fill(ch, dnd5e.PendingChoice{
			ID: dnd5e.ChoiceID{
				Type:       tmpl.Type,
				Source:     source,
				SourceSlug: sourceSlug,
				Level:      level,
				Group:      tmpl.Group,
			}.String(),
			Type:       tmpl.Type,
			Source:     source,
			SourceSlug: sourceSlug,
			Level:      level,
			Group:      tmpl.Group,
			Quantity:   tmpl.Quantity,
			Required:   tmpl.Required,
			Options:    choiceOptions,
		}))
	}
	return out, nil
}

// collides reports whether an option is already definitively granted by
// a different still-present source. Only proficiencies and languages
// double-dip this way; spells, equipment, and the rest may repeat.
func (e *Engine) collides(ch *dnd5e.Character, choiceType dnd5e.ChoiceType, slug string, source dnd5e.SourceKind, sourceSlug string) bool {
	switch choiceType {
	case dnd5e.ChoiceTypeProficiency:
		return ch.HasGrantFromOther(dnd5e.GrantProficiency, slug, source, sourceSlug)
	case dnd5e.ChoiceTypeLanguage:
		return ch.HasGrantFromOther(dnd5e.GrantLanguage, slug, source, sourceSlug)
	default:
		return false
	}
}

// fill copies the character's recorded selection into the choice
func (e *Engine) fill(ch *dnd5e.Character, choice dnd5e.PendingChoice) dnd5e.PendingChoice {
	if sel, ok := ch.SelectionFor(choice.ID); ok {
		choice.Selected = append([]string(nil), sel.Selected...)
	}
	return choice
}
