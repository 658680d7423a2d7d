package engine

import (
	"strings"

	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-api/internal/errors"
)

// HitPointMode selects how hit points are determined on level-up
type HitPointMode string

// Hit point modes
const (
	HitPointModeRoll    HitPointMode = "roll"
	HitPointModeAverage HitPointMode = "average"
)

// LevelUpResult reports what a committed level-up produced
type LevelUpResult struct {
	NewLevel        int32    `json:"new_level"`
	TotalLevel      int32    `json:"total_level"`
	HitPointsGained int32    `json:"hit_points_gained"`
	FeaturesGained  []string `json:"features_gained"`
	PendingChoices  int32    `json:"pending_choices"`
}

// LevelUp increments one class entry's level. The level and its
// automatic grants commit immediately: choices the new level surfaces
// stay pending, and abandoning them leaves the character at the new
// level. Leveling requires a complete character below the level cap.
func (e *Engine) LevelUp(ch *dnd5e.Character, classSlug string, mode HitPointMode) (*LevelUpResult, error) {
	entry, ok := ch.Class(classSlug)
	if !ok {
		return nil, errors.NotFoundf("character has no class %s", classSlug)
	}
	class, ok := e.catalog.Class(classSlug)
	if !ok {
		return nil, errors.NotFoundf("class %s not found", classSlug)
	}

	if ch.TotalLevel() >= dnd5e.MaxCharacterLevel {
		return nil, errors.FailedPreconditionf(
			"character is already at level %d", dnd5e.MaxCharacterLevel)
	}
	completion, err := e.CheckCompletion(ch)
	if err != nil {
		return nil, err
	}
	if !completion.IsComplete {
		return nil, errors.FailedPrecondition("character must be complete before leveling up").
			WithMeta("missing", strings.Join(completion.Missing, ","))
	}

	entry.Level++
	newLevel := entry.Level

	var features []string
	for i := range class.Grants {
		tmpl := &class.Grants[i]
		if tmpl.Level != newLevel {
			continue
		}
		ch.Grants = append(ch.Grants, dnd5e.Grant{
			Kind:       tmpl.Kind,
			Key:        tmpl.Key,
			Amount:     tmpl.Amount,
			Quantity:   tmpl.Quantity,
			Source:     dnd5e.SourceClass,
			SourceSlug: class.Slug,
		})
		features = append(features, tmpl.Key)
	}
	if entry.SubclassSlug != "" {
		if sub, ok := class.Subclass(entry.SubclassSlug); ok {
			for i := range sub.Grants {
				tmpl := &sub.Grants[i]
				if tmpl.Level != newLevel {
					continue
				}
				ch.Grants = append(ch.Grants, dnd5e.Grant{
					Kind:       tmpl.Kind,
					Key:        tmpl.Key,
					Amount:     tmpl.Amount,
					Quantity:   tmpl.Quantity,
					Source:     dnd5e.SourceSubclass,
					SourceSlug: sub.Slug,
				})
				features = append(features, tmpl.Key)
			}
		}
	}

	conMod := dnd5e.Modifier(ch.EffectiveScores().Constitution)
	gained, err := e.hitPointsGained(class.HitDie, conMod, mode)
	if err != nil {
		return nil, err
	}
	ch.HitPointMaximum += gained

	pending, err := e.CompilePendingChoices(ch)
	if err != nil {
		return nil, err
	}

	return &LevelUpResult{
		NewLevel:        newLevel,
		TotalLevel:      ch.TotalLevel(),
		HitPointsGained: gained,
		FeaturesGained:  features,
		PendingChoices:  int32(len(pending)), // #nosec G109
	}, nil
}

// hitPointsGained computes one level's hit points: the hit die (rolled
// or averaged) plus the Constitution modifier, never less than 1.
func (e *Engine) hitPointsGained(hitDie, conMod int32, mode HitPointMode) (int32, error) {
	var die int32
	switch mode {
	case HitPointModeRoll:
		rolled, err := e.roller.Roll(int(hitDie))
		if err != nil {
			return 0, errors.Wrap(err, "rolling hit points")
		}
		die = int32(rolled) // #nosec G109
	case HitPointModeAverage, "":
		die = averageDie(hitDie)
	default:
		return 0, errors.InvalidArgumentf("unknown hit point mode %q", mode)
	}

	gained := die + conMod
	if gained < 1 {
		gained = 1
	}
	return gained, nil
}

// averageDie is the per-level average of a hit die, rounded up:
// d6 gives 4, d10 gives 6, d12 gives 7.
func averageDie(hitDie int32) int32 {
	return hitDie/2 + 1
}

// averageHitPoints is one averaged level including the Constitution
// modifier, floored at 1.
func averageHitPoints(hitDie, conMod int32) int32 {
	gained := averageDie(hitDie) + conMod
	if gained < 1 {
		gained = 1
	}
	return gained
}

// maxHitPoints is the level-1 value: the full hit die plus the
// Constitution modifier, floored at 1.
func maxHitPoints(hitDie, conMod int32) int32 {
	gained := hitDie + conMod
	if gained < 1 {
		gained = 1
	}
	return gained
}
