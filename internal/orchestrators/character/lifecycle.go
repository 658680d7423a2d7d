package character

import (
	"context"

	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-api/internal/errors"
	characterrepo "github.com/KirkDiggler/character-api/internal/repositories/character"
	charactersvc "github.com/KirkDiggler/character-api/internal/services/character"
)

// CreateCharacter creates a character shell. Any race, class, or
// background supplied attaches immediately, bringing its grants and
// pending choices with it.
func (o *Orchestrator) CreateCharacter(
	ctx context.Context,
	input *charactersvc.CreateCharacterInput,
) (*charactersvc.CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	name := input.Name
	if name == "" {
		name = dnd5e.PlaceholderName
	}

	ch := &dnd5e.Character{
		ID:       o.idGenerator.Generate(),
		PlayerID: input.PlayerID,
		Name:     name,
	}

	if input.RaceSlug != "" {
		if err := o.engine.SetRace(ch, input.RaceSlug); err != nil {
			return nil, err
		}
	}
	if input.ClassSlug != "" {
		if err := o.engine.AddClass(ch, input.ClassSlug, true); err != nil {
			return nil, err
		}
	}
	if input.BackgroundSlug != "" {
		if err := o.engine.SetBackground(ch, input.BackgroundSlug); err != nil {
			return nil, err
		}
	}

	out, err := o.repo.Create(ctx, characterrepo.CreateInput{Character: ch})
	if err != nil {
		return nil, err
	}

	o.publish(ctx, EventCharacterCreated, out.Character, map[string]interface{}{
		"player_id": input.PlayerID,
	})

	return &charactersvc.CreateCharacterOutput{Character: out.Character}, nil
}

// GetCharacter fetches a character along with its completion status
func (o *Orchestrator) GetCharacter(
	ctx context.Context,
	input *charactersvc.GetCharacterInput,
) (*charactersvc.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("characterID is required")
	}

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	completion, err := o.engine.CheckCompletion(ch)
	if err != nil {
		return nil, err
	}

	return &charactersvc.GetCharacterOutput{
		Character:  ch,
		Completion: completion,
	}, nil
}

// ListCharacters lists a player's characters
func (o *Orchestrator) ListCharacters(
	ctx context.Context,
	input *charactersvc.ListCharactersInput,
) (*charactersvc.ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("playerID is required")
	}

	out, err := o.repo.ListByPlayerID(ctx, characterrepo.ListByPlayerIDInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		return nil, err
	}

	return &charactersvc.ListCharactersOutput{Characters: out.Characters}, nil
}

// UpdateCharacter applies a partial update. Race and background changes
// cascade their slots before the new value attaches.
func (o *Orchestrator) UpdateCharacter(
	ctx context.Context,
	input *charactersvc.UpdateCharacterInput,
) (*charactersvc.UpdateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("characterID is required")
	}

	unlock := o.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, errors.InvalidArgument("name cannot be empty")
		}
		ch.Name = *input.Name
	}
	if input.Alignment != nil {
		ch.Alignment = *input.Alignment
	}
	if input.AbilityScores != nil {
		ch.BaseScores = *input.AbilityScores
	}
	if input.RaceSlug != nil {
		if err := o.engine.SetRace(ch, *input.RaceSlug); err != nil {
			return nil, err
		}
	}
	if input.BackgroundSlug != nil {
		if err := o.engine.SetBackground(ch, *input.BackgroundSlug); err != nil {
			return nil, err
		}
	}

	updated, err := o.save(ctx, ch)
	if err != nil {
		return nil, err
	}

	completion, err := o.engine.CheckCompletion(updated)
	if err != nil {
		return nil, err
	}

	o.publish(ctx, EventCharacterUpdated, updated, nil)

	return &charactersvc.UpdateCharacterOutput{
		Character:  updated,
		Completion: completion,
	}, nil
}

// DeleteCharacter deletes a character
func (o *Orchestrator) DeleteCharacter(
	ctx context.Context,
	input *charactersvc.DeleteCharacterInput,
) (*charactersvc.DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("characterID is required")
	}

	unlock := o.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	if _, err := o.repo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, err
	}
	defer o.forgetLock(input.CharacterID)

	o.publish(ctx, EventCharacterDeleted, ch, nil)

	return &charactersvc.DeleteCharacterOutput{}, nil
}
