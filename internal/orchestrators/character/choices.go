package character

import (
	"context"

	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-api/internal/errors"
	charactersvc "github.com/KirkDiggler/character-api/internal/services/character"
)

// ListPendingChoices returns the freshly compiled pending choice set
// with its summary aggregate.
func (o *Orchestrator) ListPendingChoices(
	ctx context.Context,
	input *charactersvc.ListPendingChoicesInput,
) (*charactersvc.ListPendingChoicesOutput, error) {
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

	pending, err := o.engine.CompilePendingChoices(ch)
	if err != nil {
		return nil, err
	}

	return &charactersvc.ListPendingChoicesOutput{
		Pending: pending,
		Summary: dnd5e.Summarize(pending),
	}, nil
}

// ResolveChoice commits a selection against one pending choice
func (o *Orchestrator) ResolveChoice(
	ctx context.Context,
	input *charactersvc.ResolveChoiceInput,
) (*charactersvc.ResolveChoiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("choiceID", input.ChoiceID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	choice, err := o.engine.ResolveChoice(ch, input.ChoiceID, input.Selected, input.ItemSelections)
	if err != nil {
		return nil, err
	}

	updated, err := o.save(ctx, ch)
	if err != nil {
		return nil, err
	}

	o.publish(ctx, EventChoiceResolved, updated, map[string]interface{}{
		"choice_id": input.ChoiceID,
	})

	return &charactersvc.ResolveChoiceOutput{
		Character: updated,
		Choice:    choice,
	}, nil
}

// UndoChoice reverts a committed choice where the type supports it
func (o *Orchestrator) UndoChoice(
	ctx context.Context,
	input *charactersvc.UndoChoiceInput,
) (*charactersvc.UndoChoiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("choiceID", input.ChoiceID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	choice, err := o.engine.UndoChoice(ch, input.ChoiceID)
	if err != nil {
		return nil, err
	}

	updated, err := o.save(ctx, ch)
	if err != nil {
		return nil, err
	}

	o.publish(ctx, EventChoiceUndone, updated, map[string]interface{}{
		"choice_id": input.ChoiceID,
	})

	return &charactersvc.UndoChoiceOutput{
		Character: updated,
		Choice:    choice,
	}, nil
}

// GetSummary returns the character's completion status
func (o *Orchestrator) GetSummary(
	ctx context.Context,
	input *charactersvc.GetSummaryInput,
) (*charactersvc.GetSummaryOutput, error) {
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

	return &charactersvc.GetSummaryOutput{
		Character:  ch,
		Completion: completion,
	}, nil
}

// ValidateIntegrity runs the referential integrity check: do the stored
// slug references still resolve against the catalog.
func (o *Orchestrator) ValidateIntegrity(
	ctx context.Context,
	input *charactersvc.ValidateIntegrityInput,
) (*charactersvc.ValidateIntegrityOutput, error) {
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

	return &charactersvc.ValidateIntegrityOutput{
		Result: o.engine.CheckIntegrity(ch),
	}, nil
}
