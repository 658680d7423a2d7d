// Package engine implements the character rules: pending-choice
// compilation, choice resolution, cascading invalidation, completion
// checks, and level-up math. All methods are pure over the character
// passed in; persistence and locking live in the orchestrator.
package engine

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/character-api/internal/errors"
	"github.com/KirkDiggler/character-api/internal/rulebook"
)

// Engine evaluates rulebook content against character state
type Engine struct {
	catalog *rulebook.Catalog
	roller  dice.Roller
}

// Config holds the engine's dependencies
type Config struct {
	Catalog *rulebook.Catalog
	// Roller is used for rolled hit points. Defaults to dice.DefaultRoller.
	Roller dice.Roller
}

// Validate ensures the config is complete
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Catalog == nil {
		return errors.InvalidArgument("catalog cannot be nil")
	}
	return nil
}

// New creates an engine with the given config
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}

	return &Engine{
		catalog: cfg.Catalog,
		roller:  roller,
	}, nil
}

// Catalog exposes the content catalog the engine was built with
func (e *Engine) Catalog() *rulebook.Catalog {
	return e.catalog
}
