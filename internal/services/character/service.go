// Package character defines the interface for character operations
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/character-api/internal/services/character Service

import (
	"context"

	"github.com/KirkDiggler/character-api/internal/engine"
	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
)

// Service defines the interface for character operations
type Service interface {
	// Lifecycle
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*UpdateCharacterOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Class membership
	AddClass(ctx context.Context, input *AddClassInput) (*AddClassOutput, error)
	ReplaceClass(ctx context.Context, input *ReplaceClassInput) (*ReplaceClassOutput, error)
	SetSubclass(ctx context.Context, input *SetSubclassInput) (*SetSubclassOutput, error)
	LevelUp(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error)

	// Choices
	ListPendingChoices(ctx context.Context, input *ListPendingChoicesInput) (*ListPendingChoicesOutput, error)
	ResolveChoice(ctx context.Context, input *ResolveChoiceInput) (*ResolveChoiceOutput, error)
	UndoChoice(ctx context.Context, input *UndoChoiceInput) (*UndoChoiceOutput, error)

	// Checks
	GetSummary(ctx context.Context, input *GetSummaryInput) (*GetSummaryOutput, error)
	ValidateIntegrity(ctx context.Context, input *ValidateIntegrityInput) (*ValidateIntegrityOutput, error)
}

// CreateCharacterInput defines the request for creating a character shell.
// Race, class, and background are optional; anything provided is attached
// immediately with its grants and pending choices.
type CreateCharacterInput struct {
	PlayerID       string
	Name           string
	RaceSlug       string
	ClassSlug      string
	BackgroundSlug string
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character *dnd5e.Character
}

// GetCharacterInput defines the request for getting a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput carries the character along with its completion
// status, so a single fetch answers "is this usable yet".
type GetCharacterOutput struct {
	Character  *dnd5e.Character
	Completion *engine.CompletionResult
}

// ListCharactersInput defines the request for listing a player's characters
type ListCharactersInput struct {
	PlayerID string
}

// ListCharactersOutput defines the response for listing characters
type ListCharactersOutput struct {
	Characters []*dnd5e.Character
}

// UpdateCharacterInput is a partial update: nil fields are untouched.
// Changing the race or background slug cascades that slot.
type UpdateCharacterInput struct {
	CharacterID    string
	Name           *string
	Alignment      *string
	RaceSlug       *string
	BackgroundSlug *string
	AbilityScores  *dnd5e.AbilityScores
}

// UpdateCharacterOutput defines the response for a partial update
type UpdateCharacterOutput struct {
	Character  *dnd5e.Character
	Completion *engine.CompletionResult
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct{}

// AddClassInput defines the request for attaching a class. With Force
// unset, multiclass ability prerequisites are enforced.
type AddClassInput struct {
	CharacterID string
	ClassSlug   string
	Force       bool
}

// AddClassOutput defines the response for attaching a class
type AddClassOutput struct {
	Character *dnd5e.Character
}

// ReplaceClassInput defines the request for swapping one class for another
type ReplaceClassInput struct {
	CharacterID  string
	ClassSlug    string
	NewClassSlug string
	Force        bool
}

// ReplaceClassOutput defines the response for swapping a class
type ReplaceClassOutput struct {
	Character *dnd5e.Character
}

// SetSubclassInput defines the request for setting a subclass
type SetSubclassInput struct {
	CharacterID  string
	ClassSlug    string
	SubclassSlug string
}

// SetSubclassOutput defines the response for setting a subclass
type SetSubclassOutput struct {
	Character *dnd5e.Character
}

// LevelUpInput defines the request for leveling one class entry.
// HitPointMode defaults to average.
type LevelUpInput struct {
	CharacterID  string
	ClassSlug    string
	HitPointMode engine.HitPointMode
}

// LevelUpOutput defines the response for a committed level-up
type LevelUpOutput struct {
	Character *dnd5e.Character
	Result    *engine.LevelUpResult
}

// ListPendingChoicesInput defines the request for the pending choice set
type ListPendingChoicesInput struct {
	CharacterID string
}

// ListPendingChoicesOutput carries the full registry snapshot plus its
// summary aggregate.
type ListPendingChoicesOutput struct {
	Pending []dnd5e.PendingChoice
	Summary dnd5e.ChoiceSummary
}

// ResolveChoiceInput defines the request for resolving one pending choice
type ResolveChoiceInput struct {
	CharacterID    string
	ChoiceID       string
	Selected       []string
	ItemSelections map[string][]string
}

// ResolveChoiceOutput defines the response for a resolved choice
type ResolveChoiceOutput struct {
	Character *dnd5e.Character
	Choice    *dnd5e.PendingChoice
}

// UndoChoiceInput defines the request for undoing a resolved choice
type UndoChoiceInput struct {
	CharacterID string
	ChoiceID    string
}

// UndoChoiceOutput defines the response for an undone choice. Choice is
// the re-pending choice, nil when its granting source is gone.
type UndoChoiceOutput struct {
	Character *dnd5e.Character
	Choice    *dnd5e.PendingChoice
}

// GetSummaryInput defines the request for the completion summary
type GetSummaryInput struct {
	CharacterID string
}

// GetSummaryOutput defines the response for the completion summary
type GetSummaryOutput struct {
	Character  *dnd5e.Character
	Completion *engine.CompletionResult
}

// ValidateIntegrityInput defines the request for the referential
// integrity check.
type ValidateIntegrityInput struct {
	CharacterID string
}

// ValidateIntegrityOutput defines the response for the integrity check
type ValidateIntegrityOutput struct {
	Result *engine.IntegrityResult
}
