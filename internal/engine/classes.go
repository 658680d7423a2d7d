package engine

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-api/internal/errors"
	"github.com/KirkDiggler/character-api/internal/rulebook"
)

// AddClass attaches a class at level 1. The first class becomes primary
// and takes the maximum hit die for hit points; additional classes gate
// on the multiclass ability prerequisite unless force is set.
func (e *Engine) AddClass(ch *dnd5e.Character, classSlug string, force bool) error {
	class, ok := e.catalog.Class(classSlug)
	if !ok {
		return errors.NotFoundf("class %s not found", classSlug)
	}
	if _, exists := ch.Class(classSlug); exists {
		return errors.AlreadyExistsf("character already has class %s", classSlug)
	}
	if ch.TotalLevel() >= dnd5e.MaxCharacterLevel {
		return errors.FailedPreconditionf("character is already at level %d", dnd5e.MaxCharacterLevel)
	}

	isFirst := len(ch.Classes) == 0
	if !isFirst && !force {
		if unmet := unmetPrereqs(ch.EffectiveScores(), class); unmet != "" {
			return errors.PrerequisiteNotMetf(
				"multiclassing into %s requires %s", class.Name, unmet).
				WithMeta("class", class.Slug).
				WithMeta("requires", unmet)
		}
	}

	ch.Classes = append(ch.Classes, dnd5e.ClassEntry{
		ClassSlug: class.Slug,
		Level:     1,
		IsPrimary: isFirst,
	})
	applyGrantTemplates(ch, class.Grants, dnd5e.SourceClass, class.Slug, 1, "")

	conMod := dnd5e.Modifier(ch.EffectiveScores().Constitution)
	if isFirst {
		ch.HitPointMaximum += maxHitPoints(class.HitDie, conMod)
	} else {
		ch.HitPointMaximum += averageHitPoints(class.HitDie, conMod)
	}
	return nil
}

// ReplaceClass swaps one class entry for another, cascading everything
// the old class carried: its grants, its choices, its subclass, and its
// equipment flow. The new class starts over at level 1.
func (e *Engine) ReplaceClass(ch *dnd5e.Character, oldSlug, newSlug string, force bool) error {
	entry, ok := ch.Class(oldSlug)
	if !ok {
		return errors.NotFoundf("character has no class %s", oldSlug)
	}
	newClass, ok := e.catalog.Class(newSlug)
	if !ok {
		return errors.NotFoundf("class %s not found", newSlug)
	}
	if oldSlug != newSlug {
		if _, exists := ch.Class(newSlug); exists {
			return errors.AlreadyExistsf("character already has class %s", newSlug)
		}
	}

	wasPrimary := entry.IsPrimary
	if !wasPrimary && !force {
		if unmet := unmetPrereqs(ch.EffectiveScores(), newClass); unmet != "" {
			return errors.PrerequisiteNotMetf(
				"multiclassing into %s requires %s", newClass.Name, unmet).
				WithMeta("class", newClass.Slug).
				WithMeta("requires", unmet)
		}
	}

	invalidate(ch, dnd5e.SourceClass, oldSlug, map[dnd5e.SourceKind]string{
		dnd5e.SourceSubclass: entry.SubclassSlug,
	})

	kept := ch.Classes[:0]
	for i := range ch.Classes {
		if ch.Classes[i].ClassSlug != oldSlug {
			kept = append(kept, ch.Classes[i])
		}
	}
	ch.Classes = kept

	ch.Classes = append(ch.Classes, dnd5e.ClassEntry{
		ClassSlug: newClass.Slug,
		Level:     1,
		IsPrimary: wasPrimary,
	})
	applyGrantTemplates(ch, newClass.Grants, dnd5e.SourceClass, newClass.Slug, 1, "")

	e.RecalculateHitPoints(ch)
	return nil
}

// SetSubclass sets or replaces the subclass on a class entry. Replacing
// cascades the old subclass's provenance first.
func (e *Engine) SetSubclass(ch *dnd5e.Character, classSlug, subclassSlug string) error {
	entry, ok := ch.Class(classSlug)
	if !ok {
		return errors.NotFoundf("character has no class %s", classSlug)
	}
	class, ok := e.catalog.Class(classSlug)
	if !ok {
		return errors.NotFoundf("class %s not found", classSlug)
	}
	if class.SubclassLevel == 0 || entry.Level < class.SubclassLevel {
		return errors.FailedPreconditionf(
			"%s chooses a subclass at level %d", class.Name, class.SubclassLevel)
	}

	return e.applySubclass(ch, dnd5e.ChoiceID{
		Source:     dnd5e.SourceClass,
		SourceSlug: classSlug,
	}, subclassSlug)
}

// RecalculateHitPoints rebuilds the hit point maximum from class levels
// using average rolls. Used after structural changes (class replacement)
// where per-level roll history is not retained.
func (e *Engine) RecalculateHitPoints(ch *dnd5e.Character) {
	conMod := dnd5e.Modifier(ch.EffectiveScores().Constitution)
	var total int32
	for i := range ch.Classes {
		entry := &ch.Classes[i]
		class, ok := e.catalog.Class(entry.ClassSlug)
		if !ok {
			continue
		}
		levels := entry.Level
		if entry.IsPrimary && levels > 0 {
			total += maxHitPoints(class.HitDie, conMod)
			levels--
		}
		for l := int32(0); l < levels; l++ {
			total += averageHitPoints(class.HitDie, conMod)
		}
	}
	ch.HitPointMaximum = total
}

// MeetsMulticlassPrereqs reports whether the scores satisfy the class's
// multiclass prerequisite. The prerequisite holds when any one group of
// minimums is fully met.
func MeetsMulticlassPrereqs(scores dnd5e.AbilityScores, class *rulebook.ClassData) bool {
	return unmetPrereqs(scores, class) == ""
}

// unmetPrereqs returns a human-readable description of the prerequisite
// when no group is satisfied, or "" when the gate passes.
func unmetPrereqs(scores dnd5e.AbilityScores, class *rulebook.ClassData) string {
	if len(class.MulticlassPrereqs) == 0 {
		return ""
	}

	groups := make([]string, 0, len(class.MulticlassPrereqs))
	for _, group := range class.MulticlassPrereqs {
		met := true
		parts := make([]string, 0, len(group.All))
		for _, min := range group.All {
			if scores.Get(min.Ability) < min.Minimum {
				met = false
			}
			parts = append(parts, fmt.Sprintf("%s %d", min.Ability, min.Minimum))
		}
		if met {
			return ""
		}
		groups = append(groups, strings.Join(parts, " and "))
	}
	return strings.Join(groups, " or ")
}
