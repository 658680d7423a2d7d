package engine

import (
	"strings"

	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-api/internal/errors"
	"github.com/KirkDiggler/character-api/internal/rulebook"
)

// ResolveChoice validates a selection against one pending choice and
// commits it: grants apply, the selection is recorded, and follow-up
// choices surface on the next compilation. Resolving an already
// satisfied choice with an identical payload is a no-op success.
func (e *Engine) ResolveChoice(
	ch *dnd5e.Character,
	choiceID string,
	selected []string,
	itemSelections map[string][]string,
) (*dnd5e.PendingChoice, error) {
	id, err := dnd5e.ParseChoiceID(choiceID)
	if err != nil {
		return nil, errors.InvalidArgumentf("malformed choice ID: %v", err)
	}

	all, err := e.compileAll(ch)
	if err != nil {
		return nil, err
	}
	choice := findChoice(all, choiceID)
	if choice == nil {
		return nil, errors.NotFoundf("choice %s not found", choiceID)
	}

	if choice.Satisfied() && sameSelection(choice.Selected, selected) {
		if sel, ok := ch.SelectionFor(choiceID); ok && sameItemSelections(sel.ItemSelections, itemSelections) {
			return choice, nil
		}
	}

	if err := e.validateSelection(choice, selected, itemSelections); err != nil {
		return nil, err
	}

	// Re-resolution replaces: drop whatever this choice committed before.
	e.retractChoice(ch, id, choice)
	if err := e.applySelection(ch, id, choice, selected, itemSelections); err != nil {
		return nil, err
	}

	ch.SetSelection(dnd5e.ChoiceSelection{
		ChoiceID:       choiceID,
		Selected:       append([]string(nil), selected...),
		ItemSelections: itemSelections,
	})

	choice.Selected = append([]string(nil), selected...)
	return choice, nil
}

// validateSelection enforces option membership, cardinality per the
// choice type's commit policy, and type-specific post-conditions.
func (e *Engine) validateSelection(choice *dnd5e.PendingChoice, selected []string, itemSelections map[string][]string) error {
	if len(selected) == 0 {
		return errors.InvalidSelection("selected cannot be empty").
			WithMeta("choice_id", choice.ID)
	}
	if int32(len(selected)) > choice.Quantity { // #nosec G109
		return errors.InvalidSelectionf("choice %s takes %d selections, got %d",
			choice.ID, choice.Quantity, len(selected))
	}

	switch choice.Type.CommitPolicy() {
	case dnd5e.CommitPolicyCumulative:
		// Resubmissions carry the full cumulative list: everything already
		// selected must appear again. Partial submissions below quantity
		// are allowed mid-flow.
		if !containsAll(selected, choice.Selected) {
			return errors.InvalidSelectionf(
				"choice %s is cumulative: resubmission must include all prior selections", choice.ID).
				WithMeta("prior", strings.Join(choice.Selected, ","))
		}
	default:
		if int32(len(selected)) != choice.Quantity { // #nosec G109
			return errors.InvalidSelectionf("choice %s requires exactly %d selections, got %d",
				choice.ID, choice.Quantity, len(selected))
		}
		if hasDuplicates(selected) {
			return errors.InvalidSelectionf("choice %s does not allow duplicate selections", choice.ID)
		}
	}

	for _, slug := range selected {
		opt, ok := choice.Option(slug)
		if !ok {
			return errors.InvalidSelectionf("option %s is not valid for choice %s", slug, choice.ID)
		}
		if opt.IsCategory {
			items := itemSelections[slug]
			if len(items) == 0 {
				return errors.InvalidSelectionf(
					"option %s is a category: item_selections must name concrete items", slug)
			}
			for _, item := range items {
				if !e.catalog.CategoryContains(slug, item) {
					return errors.InvalidSelectionf("item %s is not in category %s", item, slug)
				}
			}
		}
	}

	return nil
}

// retractChoice removes everything a prior resolution of this choice
// committed, so the new selection applies cleanly.
func (e *Engine) retractChoice(ch *dnd5e.Character, id dnd5e.ChoiceID, choice *dnd5e.PendingChoice) {
	if prior, ok := ch.SelectionFor(choice.ID); ok && id.Type == dnd5e.ChoiceTypeFeat {
		for _, featSlug := range prior.Selected {
			ch.RemoveBySource(dnd5e.SourceFeat, featSlug)
		}
	}
	ch.RemoveGrantsByChoice(choice.ID)
}

// applySelection commits the grants and state changes a selection implies
func (e *Engine) applySelection(
	ch *dnd5e.Character,
	id dnd5e.ChoiceID,
	choice *dnd5e.PendingChoice,
	selected []string,
	itemSelections map[string][]string,
) error {
	switch choice.Type {
	case dnd5e.ChoiceTypeSubclass:
		return e.applySubclass(ch, id, selected[0])

	case dnd5e.ChoiceTypeEquipmentMode:
		return e.applyEquipmentMode(ch, id, choice, selected[0])

	case dnd5e.ChoiceTypeASIOrFeat:
		e.retractASIFollowUp(ch, id, selected[0])
		return nil

	case dnd5e.ChoiceTypeAbilityScore:
		for _, ability := range selected {
			ch.Grants = append(ch.Grants, dnd5e.Grant{
				Kind:       dnd5e.GrantAbilityBonus,
				Key:        ability,
				Amount:     1,
				Source:     id.Source,
				SourceSlug: id.SourceSlug,
				ChoiceID:   choice.ID,
			})
		}
		return nil

	case dnd5e.ChoiceTypeFeat:
		return e.applyFeat(ch, id, choice, selected)

	case dnd5e.ChoiceTypeEquipment:
		for _, slug := range selected {
			opt, _ := choice.Option(slug)
			if opt.IsCategory {
				for _, item := range itemSelections[slug] {
					ch.Grants = append(ch.Grants, equipmentGrant(id, choice.ID, item))
				}
				continue
			}
			ch.Grants = append(ch.Grants, equipmentGrant(id, choice.ID, slug))
		}
		return nil

	default:
		kind := grantKindFor(choice.Type)
		for _, slug := range selected {
			ch.Grants = append(ch.Grants, dnd5e.Grant{
				Kind:       kind,
				Key:        slug,
				Source:     id.Source,
				SourceSlug: id.SourceSlug,
				ChoiceID:   choice.ID,
			})
		}
		return nil
	}
}

func (e *Engine) applySubclass(ch *dnd5e.Character, id dnd5e.ChoiceID, subclassSlug string) error {
	entry, ok := ch.Class(id.SourceSlug)
	if !ok {
		return errors.NotFoundf("class %s not found on character", id.SourceSlug)
	}
	class, ok := e.catalog.Class(id.SourceSlug)
	if !ok {
		return errors.NotFoundf("class %s not found", id.SourceSlug)
	}
	sub, ok := class.Subclass(subclassSlug)
	if !ok {
		return errors.InvalidSelectionf("subclass %s is not valid for class %s", subclassSlug, class.Slug)
	}

	if entry.SubclassSlug == subclassSlug {
		// Already set; reapplying would duplicate the subclass grants.
		return nil
	}
	if entry.SubclassSlug != "" {
		ch.RemoveBySource(dnd5e.SourceSubclass, entry.SubclassSlug)
	}
	entry.SubclassSlug = sub.Slug
	applyGrantTemplates(ch, sub.Grants, dnd5e.SourceSubclass, sub.Slug, entry.Level, "")
	return nil
}

func (e *Engine) applyEquipmentMode(ch *dnd5e.Character, id dnd5e.ChoiceID, choice *dnd5e.PendingChoice, mode string) error {
	class, ok := e.catalog.Class(id.SourceSlug)
	if !ok {
		return errors.NotFoundf("class %s not found", id.SourceSlug)
	}

	if mode != EquipmentModeEquipment {
		// Switching away from starting equipment retracts every equipment
		// choice that flowed from it.
		for i := range class.EquipmentChoices {
			tmpl := &class.EquipmentChoices[i]
			equipID := dnd5e.ChoiceID{
				Type:       tmpl.Type,
				Source:     dnd5e.SourceClass,
				SourceSlug: class.Slug,
				Level:      1,
				Group:      tmpl.Group,
			}.String()
			ch.RemoveGrantsByChoice(equipID)
			ch.RemoveSelection(equipID)
		}
		return nil
	}

	applyGrantTemplates(ch, class.EquipmentGrants, dnd5e.SourceClass, class.Slug, 1, choice.ID)
	return nil
}

// retractASIFollowUp drops the follow-up selection for the mode not
// chosen, so flipping between improvement and feat never strands grants.
func (e *Engine) retractASIFollowUp(ch *dnd5e.Character, id dnd5e.ChoiceID, mode string) {
	followUps := map[string]dnd5e.ChoiceID{
		ASIOptionImprovement: {
			Type: dnd5e.ChoiceTypeAbilityScore, Source: id.Source,
			SourceSlug: id.SourceSlug, Level: id.Level, Group: groupASI,
		},
		ASIOptionFeat: {
			Type: dnd5e.ChoiceTypeFeat, Source: id.Source,
			SourceSlug: id.SourceSlug, Level: id.Level, Group: groupFeat,
		},
	}
	for followMode, followID := range followUps {
		if followMode == mode {
			continue
		}
		followIDStr := followID.String()
		if followID.Type == dnd5e.ChoiceTypeFeat {
			if sel, ok := ch.SelectionFor(followIDStr); ok {
				for _, featSlug := range sel.Selected {
					ch.RemoveBySource(dnd5e.SourceFeat, featSlug)
				}
			}
		}
		ch.RemoveGrantsByChoice(followIDStr)
		ch.RemoveSelection(followIDStr)
	}
}

func (e *Engine) applyFeat(ch *dnd5e.Character, id dnd5e.ChoiceID, choice *dnd5e.PendingChoice, selected []string) error {
	for _, featSlug := range selected {
		feat, ok := e.catalog.Feat(featSlug)
		if !ok {
			return errors.NotFoundf("feat %s not found", featSlug)
		}
		ch.Grants = append(ch.Grants, dnd5e.Grant{
			Kind:       dnd5e.GrantFeat,
			Key:        feat.Slug,
			Source:     id.Source,
			SourceSlug: id.SourceSlug,
			ChoiceID:   choice.ID,
		})
		// The feat's own grants carry feat provenance so cascades and undo
		// find them when the feat goes away.
		applyGrantTemplates(ch, feat.Grants, dnd5e.SourceFeat, feat.Slug, 1, choice.ID)
	}
	return nil
}

// UndoChoice reverts a committed choice: grants are removed and the
// choice returns to pending with nothing selected. Only some types are
// undoable; the rest reject.
func (e *Engine) UndoChoice(ch *dnd5e.Character, choiceID string) (*dnd5e.PendingChoice, error) {
	id, err := dnd5e.ParseChoiceID(choiceID)
	if err != nil {
		return nil, errors.InvalidArgumentf("malformed choice ID: %v", err)
	}
	if !id.Type.Undoable() {
		return nil, errors.NotSupportedf("choice type %s cannot be undone", id.Type)
	}

	sel, ok := ch.SelectionFor(choiceID)
	if !ok {
		return nil, errors.NotFoundf("choice %s has no recorded selection", choiceID)
	}

	if id.Type == dnd5e.ChoiceTypeFeat {
		for _, featSlug := range sel.Selected {
			ch.RemoveBySource(dnd5e.SourceFeat, featSlug)
		}
	}
	ch.RemoveGrantsByChoice(choiceID)
	ch.RemoveSelection(choiceID)

	all, err := e.compileAll(ch)
	if err != nil {
		return nil, err
	}
	if choice := findChoice(all, choiceID); choice != nil {
		return choice, nil
	}
	return nil, nil
}

// applyGrantTemplates commits static grants whose level the character
// has reached under the given provenance.
func applyGrantTemplates(
	ch *dnd5e.Character,
	templates []rulebook.GrantTemplate,
	source dnd5e.SourceKind,
	sourceSlug string,
	currentLevel int32,
	choiceID string,
) {
	for i := range templates {
		tmpl := &templates[i]
		level := tmpl.Level
		if level == 0 {
			level = 1
		}
		if level > currentLevel {
			continue
		}
		ch.Grants = append(ch.Grants, dnd5e.Grant{
			Kind:       tmpl.Kind,
			Key:        tmpl.Key,
			Amount:     tmpl.Amount,
			Quantity:   tmpl.Quantity,
			Source:     source,
			SourceSlug: sourceSlug,
			ChoiceID:   choiceID,
		})
	}
}

func equipmentGrant(id dnd5e.ChoiceID, choiceID, item string) dnd5e.Grant {
	return dnd5e.Grant{
		Kind:       dnd5e.GrantEquipment,
		Key:        item,
		Quantity:   1,
		Source:     id.Source,
		SourceSlug: id.SourceSlug,
		ChoiceID:   choiceID,
	}
}

// grantKindFor maps a selection-bearing choice type to the grant kind it
// commits.
func grantKindFor(choiceType dnd5e.ChoiceType) dnd5e.GrantKind {
	switch choiceType {
	case dnd5e.ChoiceTypeProficiency:
		return dnd5e.GrantProficiency
	case dnd5e.ChoiceTypeLanguage:
		return dnd5e.GrantLanguage
	case dnd5e.ChoiceTypeSpell, dnd5e.ChoiceTypeSpellSwap:
		return dnd5e.GrantSpell
	case dnd5e.ChoiceTypeEquipment:
		return dnd5e.GrantEquipment
	default:
		// Expertise, optional features, and size all land as features.
		return dnd5e.GrantFeature
	}
}

func findChoice(choices []dnd5e.PendingChoice, id string) *dnd5e.PendingChoice {
	for i := range choices {
		if choices[i].ID == id {
			return &choices[i]
		}
	}
	return nil
}

// sameSelection compares two selections as multisets
func sameSelection(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}
	return true
}

// containsAll reports whether super contains every element of sub,
// counting multiplicity.
func containsAll(super, sub []string) bool {
	counts := make(map[string]int, len(super))
	for _, s := range super {
		counts[s]++
	}
	for _, s := range sub {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}
	return true
}

func hasDuplicates(values []string) bool {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

func sameItemSelections(a, b map[string][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for key, items := range a {
		if !sameSelection(items, b[key]) {
			return false
		}
	}
	return true
}
