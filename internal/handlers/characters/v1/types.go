package v1

import (
	"github.com/KirkDiggler/character-api/internal/engine"
	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
)

type createCharacterRequest struct {
	PlayerID       string `json:"player_id"`
	Name           string `json:"name,omitempty"`
	RaceSlug       string `json:"race_slug,omitempty"`
	ClassSlug      string `json:"class_slug,omitempty"`
	BackgroundSlug string `json:"background_slug,omitempty"`
}

// updateCharacterRequest is a partial update: absent fields are untouched
type updateCharacterRequest struct {
	Name           *string              `json:"name,omitempty"`
	Alignment      *string              `json:"alignment,omitempty"`
	RaceSlug       *string              `json:"race_slug,omitempty"`
	BackgroundSlug *string              `json:"background_slug,omitempty"`
	AbilityScores  *dnd5e.AbilityScores `json:"ability_scores,omitempty"`
}

type addClassRequest struct {
	ClassSlug string `json:"class_slug"`
	Force     bool   `json:"force,omitempty"`
}

type replaceClassRequest struct {
	NewClassSlug string `json:"new_class_slug"`
	Force        bool   `json:"force,omitempty"`
}

type setSubclassRequest struct {
	SubclassSlug string `json:"subclass_slug"`
}

type levelUpRequest struct {
	HitPointMode engine.HitPointMode `json:"hit_point_mode,omitempty"`
}

type resolveChoiceRequest struct {
	Selected       []string            `json:"selected"`
	ItemSelections map[string][]string `json:"item_selections,omitempty"`
}

type characterResponse struct {
	Character  *dnd5e.Character         `json:"character"`
	Completion *engine.CompletionResult `json:"completion,omitempty"`
}

type listCharactersResponse struct {
	Characters []*dnd5e.Character `json:"characters"`
}

type levelUpResponse struct {
	Character *dnd5e.Character      `json:"character"`
	Result    *engine.LevelUpResult `json:"result"`
}

type pendingChoicesResponse struct {
	Pending []dnd5e.PendingChoice `json:"pending"`
	Summary dnd5e.ChoiceSummary   `json:"summary"`
}

type choiceResponse struct {
	Character *dnd5e.Character     `json:"character"`
	Choice    *dnd5e.PendingChoice `json:"choice,omitempty"`
}
