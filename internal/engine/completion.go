package engine

import (
	"fmt"

	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
)

// CompletionResult answers whether a character is usable and what is
// still missing if not.
type CompletionResult struct {
	IsComplete bool     `json:"is_complete"`
	Missing    []string `json:"missing"`
}

// CheckCompletion evaluates creation completeness: race, at least one
// class, background, six positive ability scores, a real name, an
// alignment, and no required pending choices. Side-effect free.
func (e *Engine) CheckCompletion(ch *dnd5e.Character) (*CompletionResult, error) {
	missing := []string{}

	if ch.RaceSlug == "" {
		missing = append(missing, "race")
	}
	if len(ch.Classes) == 0 {
		missing = append(missing, "class")
	}
	if ch.BackgroundSlug == "" {
		missing = append(missing, "background")
	}
	if !ch.BaseScores.AllSet() {
		missing = append(missing, "ability_scores")
	}
	if ch.Name == "" || ch.Name == dnd5e.PlaceholderName {
		missing = append(missing, "name")
	}
	if ch.Alignment == "" {
		missing = append(missing, "alignment")
	}

	pending, err := e.CompilePendingChoices(ch)
	if err != nil {
		return nil, err
	}
	for i := range pending {
		if pending[i].Required {
			missing = append(missing, "required_choices")
			break
		}
	}

	return &CompletionResult{
		IsComplete: len(missing) == 0,
		Missing:    missing,
	}, nil
}

// IntegrityResult reports stored slug references that no longer resolve
// against the content catalog. This answers a different question than
// completion: completion asks whether creation is finished, integrity
// asks whether the stored data survived a content reimport.
type IntegrityResult struct {
	Valid    bool     `json:"valid"`
	Dangling []string `json:"dangling"`
}

// CheckIntegrity verifies every slug reference on the character still
// resolves to catalog content.
func (e *Engine) CheckIntegrity(ch *dnd5e.Character) *IntegrityResult {
	dangling := []string{}

	if ch.RaceSlug != "" {
		if race, ok := e.catalog.Race(ch.RaceSlug); !ok {
			dangling = append(dangling, fmt.Sprintf("race:%s", ch.RaceSlug))
		} else if ch.SubraceSlug != "" {
			if _, ok := race.Subrace(ch.SubraceSlug); !ok {
				dangling = append(dangling, fmt.Sprintf("subrace:%s", ch.SubraceSlug))
			}
		}
	} else if ch.SubraceSlug != "" {
		dangling = append(dangling, fmt.Sprintf("subrace:%s", ch.SubraceSlug))
	}

	for i := range ch.Classes {
		entry := &ch.Classes[i]
		class, ok := e.catalog.Class(entry.ClassSlug)
		if !ok {
			dangling = append(dangling, fmt.Sprintf("class:%s", entry.ClassSlug))
			continue
		}
		if entry.SubclassSlug != "" {
			if _, ok := class.Subclass(entry.SubclassSlug); !ok {
				dangling = append(dangling, fmt.Sprintf("subclass:%s", entry.SubclassSlug))
			}
		}
	}

	if ch.BackgroundSlug != "" {
		if _, ok := e.catalog.Background(ch.BackgroundSlug); !ok {
			dangling = append(dangling, fmt.Sprintf("background:%s", ch.BackgroundSlug))
		}
	}

	for _, featSlug := range ch.FeatSlugs() {
		if _, ok := e.catalog.Feat(featSlug); !ok {
			dangling = append(dangling, fmt.Sprintf("feat:%s", featSlug))
		}
	}

	return &IntegrityResult{
		Valid:    len(dangling) == 0,
		Dangling: dangling,
	}
}
