// Package character implements the character orchestrator: it owns
// per-character locking, persistence, and event publication, delegating
// all rules decisions to the engine.
package character

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/character-api/internal/engine"
	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-api/internal/errors"
	"github.com/KirkDiggler/character-api/internal/pkg/clock"
	"github.com/KirkDiggler/character-api/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/character-api/internal/repositories/character"
	charactersvc "github.com/KirkDiggler/character-api/internal/services/character"
)

// Event topics published on the bus
const (
	EventCharacterCreated   = "character.created"
	EventCharacterUpdated   = "character.updated"
	EventCharacterDeleted   = "character.deleted"
	EventCharacterLeveledUp = "character.leveled_up"
	EventChoiceResolved     = "character.choice_resolved"
	EventChoiceUndone       = "character.choice_undone"
)

// Config holds the dependencies for the character orchestrator
type Config struct {
	Repo   characterrepo.Repository
	Engine *engine.Engine
	// IDGenerator defaults to a UUID generator with a "char" prefix.
	IDGenerator idgen.Generator
	// Clock defaults to the real clock.
	Clock clock.Clock
	// EventBus is optional; with no bus, lifecycle events are skipped.
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Repo == nil {
		vb.RequiredField("Repo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	return vb.Build()
}

// Orchestrator implements the character.Service interface
type Orchestrator struct {
	repo        characterrepo.Repository
	engine      *engine.Engine
	idGenerator idgen.Generator
	clock       clock.Clock
	eventBus    events.EventBus

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	generator := cfg.IDGenerator
	if generator == nil {
		generator = idgen.NewUUID("char")
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &Orchestrator{
		repo:        cfg.Repo,
		engine:      cfg.Engine,
		idGenerator: generator,
		clock:       c,
		eventBus:    cfg.EventBus,
		locks:       make(map[string]*sync.Mutex),
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ charactersvc.Service = (*Orchestrator)(nil)

// lock serializes mutations per character ID. Operations on different
// characters proceed independently.
func (o *Orchestrator) lock(characterID string) func() {
	o.mu.Lock()
	m, ok := o.locks[characterID]
	if !ok {
		m = &sync.Mutex{}
		o.locks[characterID] = m
	}
	o.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// forgetLock drops a character's mutex entry so the map does not grow
// with every ID ever touched. Called after deletion; a goroutine still
// waiting on the old mutex proceeds against the deleted character and
// gets not-found from the repository.
func (o *Orchestrator) forgetLock(characterID string) {
	o.mu.Lock()
	delete(o.locks, characterID)
	o.mu.Unlock()
}

// load fetches a character by ID
func (o *Orchestrator) load(ctx context.Context, characterID string) (*dnd5e.Character, error) {
	out, err := o.repo.Get(ctx, characterrepo.GetInput{ID: characterID})
	if err != nil {
		return nil, err
	}
	return out.Character, nil
}

// save writes a mutated character back under its optimistic version
func (o *Orchestrator) save(ctx context.Context, ch *dnd5e.Character) (*dnd5e.Character, error) {
	out, err := o.repo.Update(ctx, characterrepo.UpdateInput{Character: ch})
	if err != nil {
		return nil, err
	}
	return out.Character, nil
}

// publish emits a lifecycle event on the bus. Event failures are logged,
// never surfaced: the state change already committed.
func (o *Orchestrator) publish(ctx context.Context, topic string, ch *dnd5e.Character, data map[string]interface{}) {
	if o.eventBus == nil {
		return
	}

	event := events.NewGameEvent(topic, characterEntity{ch}, nil)
	for k, v := range data {
		event.Context().Set(k, v)
	}
	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event",
			"topic", topic,
			"character_id", ch.ID,
			"error", err.Error())
	}
}

// characterEntity adapts a character to the event bus's entity contract
type characterEntity struct {
	ch *dnd5e.Character
}

var _ core.Entity = characterEntity{}

func (e characterEntity) GetID() string   { return e.ch.ID }
func (e characterEntity) GetType() string { return "character" }
