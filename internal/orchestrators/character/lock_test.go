package character

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/character-api/internal/engine"
	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
	characterrepo "github.com/KirkDiggler/character-api/internal/repositories/character"
	charactermock "github.com/KirkDiggler/character-api/internal/repositories/character/mock"
	"github.com/KirkDiggler/character-api/internal/rulebook"
	charactersvc "github.com/KirkDiggler/character-api/internal/services/character"
)

func newTestOrchestrator(t *testing.T, repo characterrepo.Repository) *Orchestrator {
	t.Helper()

	catalog, err := rulebook.DefaultPHB()
	require.NoError(t, err)
	eng, err := engine.New(&engine.Config{Catalog: catalog})
	require.NoError(t, err)

	orc, err := New(&Config{Repo: repo, Engine: eng})
	require.NoError(t, err)
	return orc
}

func (o *Orchestrator) hasLockEntry(characterID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.locks[characterID]
	return ok
}

func TestLockEntryPerCharacter(t *testing.T) {
	ctrl := gomock.NewController(t)
	orc := newTestOrchestrator(t, charactermock.NewMockRepository(ctrl))

	unlock := orc.lock("char_1")
	assert.True(t, orc.hasLockEntry("char_1"))
	unlock()

	// the entry stays for reuse across mutations
	assert.True(t, orc.hasLockEntry("char_1"))
	assert.False(t, orc.hasLockEntry("char_2"))
}

func TestDeleteCharacterEvictsLockEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := charactermock.NewMockRepository(ctrl)
	orc := newTestOrchestrator(t, repo)

	ch := &dnd5e.Character{ID: "char_1", PlayerID: "player_123", Name: "Theren"}
	repo.EXPECT().
		Get(gomock.Any(), characterrepo.GetInput{ID: "char_1"}).
		Return(&characterrepo.GetOutput{Character: ch}, nil)
	repo.EXPECT().
		Delete(gomock.Any(), characterrepo.DeleteInput{ID: "char_1"}).
		Return(&characterrepo.DeleteOutput{}, nil)

	_, err := orc.DeleteCharacter(context.Background(), &charactersvc.DeleteCharacterInput{
		CharacterID: "char_1",
	})
	require.NoError(t, err)

	assert.False(t, orc.hasLockEntry("char_1"), "deleted character's mutex entry should be evicted")
}
