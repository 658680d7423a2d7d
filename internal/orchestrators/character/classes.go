package character

import (
	"context"

	"github.com/KirkDiggler/character-api/internal/engine"
	"github.com/KirkDiggler/character-api/internal/errors"
	charactersvc "github.com/KirkDiggler/character-api/internal/services/character"
)

// AddClass attaches a class to the character. With Force unset, the
// multiclass ability prerequisite gate applies to second and later
// classes.
func (o *Orchestrator) AddClass(
	ctx context.Context,
	input *charactersvc.AddClassInput,
) (*charactersvc.AddClassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("classSlug", input.ClassSlug, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	if err := o.engine.AddClass(ch, input.ClassSlug, input.Force); err != nil {
		return nil, err
	}

	updated, err := o.save(ctx, ch)
	if err != nil {
		return nil, err
	}

	o.publish(ctx, EventCharacterUpdated, updated, map[string]interface{}{
		"class_slug": input.ClassSlug,
	})

	return &charactersvc.AddClassOutput{Character: updated}, nil
}

// ReplaceClass swaps one class entry for another, cascading everything
// the old class carried.
func (o *Orchestrator) ReplaceClass(
	ctx context.Context,
	input *charactersvc.ReplaceClassInput,
) (*charactersvc.ReplaceClassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("classSlug", input.ClassSlug, vb)
	errors.ValidateRequired("newClassSlug", input.NewClassSlug, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	if err := o.engine.ReplaceClass(ch, input.ClassSlug, input.NewClassSlug, input.Force); err != nil {
		return nil, err
	}

	updated, err := o.save(ctx, ch)
	if err != nil {
		return nil, err
	}

	o.publish(ctx, EventCharacterUpdated, updated, map[string]interface{}{
		"old_class_slug": input.ClassSlug,
		"new_class_slug": input.NewClassSlug,
	})

	return &charactersvc.ReplaceClassOutput{Character: updated}, nil
}

// SetSubclass sets or replaces the subclass on a class entry
func (o *Orchestrator) SetSubclass(
	ctx context.Context,
	input *charactersvc.SetSubclassInput,
) (*charactersvc.SetSubclassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("classSlug", input.ClassSlug, vb)
	errors.ValidateRequired("subclassSlug", input.SubclassSlug, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	if err := o.engine.SetSubclass(ch, input.ClassSlug, input.SubclassSlug); err != nil {
		return nil, err
	}

	updated, err := o.save(ctx, ch)
	if err != nil {
		return nil, err
	}

	o.publish(ctx, EventCharacterUpdated, updated, map[string]interface{}{
		"class_slug":    input.ClassSlug,
		"subclass_slug": input.SubclassSlug,
	})

	return &charactersvc.SetSubclassOutput{Character: updated}, nil
}

// LevelUp increments one class entry's level. The level, its automatic
// grants, and the hit point increase commit together; new choices stay
// pending.
func (o *Orchestrator) LevelUp(
	ctx context.Context,
	input *charactersvc.LevelUpInput,
) (*charactersvc.LevelUpOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("classSlug", input.ClassSlug, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	mode := input.HitPointMode
	if mode == "" {
		mode = engine.HitPointModeAverage
	}

	unlock := o.lock(input.CharacterID)
	defer unlock()

	ch, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	result, err := o.engine.LevelUp(ch, input.ClassSlug, mode)
	if err != nil {
		return nil, err
	}

	updated, err := o.save(ctx, ch)
	if err != nil {
		return nil, err
	}

	o.publish(ctx, EventCharacterLeveledUp, updated, map[string]interface{}{
		"class_slug":  input.ClassSlug,
		"new_level":   result.NewLevel,
		"total_level": result.TotalLevel,
	})

	return &charactersvc.LevelUpOutput{
		Character: updated,
		Result:    result,
	}, nil
}
