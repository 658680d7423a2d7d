package engine

import (
	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-api/internal/errors"
)

// cascadeDependents maps a root slot to the dependent slots cleared
// alongside it. Subrace is meaningless without its race; subclass,
// equipment mode, and equipment are meaningless without their class
// (the latter two carry class provenance, so clearing the class slot
// itself takes them along). Background stands alone. The table is data
// so the cascade invariant stays mechanically checkable.
var cascadeDependents = map[dnd5e.SourceKind][]dnd5e.SourceKind{
	dnd5e.SourceRace:       {dnd5e.SourceSubrace},
	dnd5e.SourceClass:      {dnd5e.SourceSubclass},
	dnd5e.SourceBackground: {},
}

// invalidate removes every grant and selection whose provenance matches
// (kind, slug) exactly, then does the same for the slot's dependents.
// Grants with any other provenance are never touched, even when they
// grant the same effect.
func invalidate(ch *dnd5e.Character, kind dnd5e.SourceKind, slug string, dependentSlugs map[dnd5e.SourceKind]string) {
	ch.RemoveBySource(kind, slug)
	for _, dep := range cascadeDependents[kind] {
		if depSlug := dependentSlugs[dep]; depSlug != "" {
			ch.RemoveBySource(dep, depSlug)
		}
	}
	sweepOrphanedFeats(ch)
}

// sweepOrphanedFeats removes feat-provenance grants whose granting feat
// is no longer on the character, such as after the choice that awarded
// the feat was cascaded away.
func sweepOrphanedFeats(ch *dnd5e.Character) {
	for {
		var orphan string
		for i := range ch.Grants {
			g := &ch.Grants[i]
			if g.Source == dnd5e.SourceFeat && !ch.HasGrant(dnd5e.GrantFeat, g.SourceSlug) {
				orphan = g.SourceSlug
				break
			}
		}
		if orphan == "" {
			return
		}
		ch.RemoveBySource(dnd5e.SourceFeat, orphan)
	}
}

// SetRace sets or replaces the character's race. The slug may name a
// race or one of its subraces. Replacing a race cascades: every grant
// and selection traced to the old race (and its subrace) is removed
// before the new race's automatic grants apply.
func (e *Engine) SetRace(ch *dnd5e.Character, slug string) error {
	race, subrace, ok := e.catalog.ResolveRace(slug)
	if !ok {
		return errors.NotFoundf("race %s not found", slug)
	}

	newSubraceSlug := ""
	if subrace != nil {
		newSubraceSlug = subrace.Slug
	}
	if ch.RaceSlug == race.Slug && ch.SubraceSlug == newSubraceSlug {
		return nil
	}

	if ch.RaceSlug != "" && ch.RaceSlug != race.Slug {
		invalidate(ch, dnd5e.SourceRace, ch.RaceSlug, map[dnd5e.SourceKind]string{
			dnd5e.SourceSubrace: ch.SubraceSlug,
		})
	} else if ch.SubraceSlug != "" && ch.SubraceSlug != newSubraceSlug {
		// Same race, different subrace: only the subrace slot cascades.
		invalidate(ch, dnd5e.SourceSubrace, ch.SubraceSlug, nil)
	}

	if ch.RaceSlug != race.Slug {
		ch.RaceSlug = race.Slug
		applyGrantTemplates(ch, race.Grants, dnd5e.SourceRace, race.Slug, 1, "")
	}
	if ch.SubraceSlug != newSubraceSlug {
		ch.SubraceSlug = newSubraceSlug
		if subrace != nil {
			applyGrantTemplates(ch, subrace.Grants, dnd5e.SourceSubrace, subrace.Slug, 1, "")
		}
	}
	return nil
}

// SetBackground sets or replaces the character's background. Only
// background-provenance state cascades; race and class state is
// untouched.
func (e *Engine) SetBackground(ch *dnd5e.Character, slug string) error {
	bg, ok := e.catalog.Background(slug)
	if !ok {
		return errors.NotFoundf("background %s not found", slug)
	}
	if ch.BackgroundSlug == bg.Slug {
		return nil
	}

	if ch.BackgroundSlug != "" {
		invalidate(ch, dnd5e.SourceBackground, ch.BackgroundSlug, nil)
	}
	ch.BackgroundSlug = bg.Slug
	applyGrantTemplates(ch, bg.Grants, dnd5e.SourceBackground, bg.Slug, 1, "")
	return nil
}
