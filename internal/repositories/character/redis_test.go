package character_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-api/internal/errors"
	redisclient "github.com/KirkDiggler/character-api/internal/redis"
	"github.com/KirkDiggler/character-api/internal/repositories/character"
)

const (
	testCharID   = "char_123"
	testPlayerID = "player_456"
	testCharKey  = "character:char_123"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    redisclient.Client
	repo      character.Repository
	ctx       context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})

	repo, err := character.NewRedis(&character.RedisConfig{
		Client: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.miniRedis.Close()
}

func (s *RedisRepositoryTestSuite) testCharacter() *dnd5e.Character {
	return &dnd5e.Character{
		ID:       testCharID,
		PlayerID: testPlayerID,
		Name:     "Theren",
		RaceSlug: "phb:elf",
		Classes: []dnd5e.ClassEntry{
			{ClassSlug: "phb:wizard", Level: 1, IsPrimary: true},
		},
		BaseScores: dnd5e.AbilityScores{
			Strength: 8, Dexterity: 14, Constitution: 14,
			Intelligence: 15, Wisdom: 12, Charisma: 10,
		},
	}
}

func (s *RedisRepositoryTestSuite) TestCreate() {
	out, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter()})
	s.Require().NoError(err)
	s.Equal(int64(1), out.Character.Version)
	s.NotZero(out.Character.CreatedAt)

	s.True(s.miniRedis.Exists(testCharKey))

	members, err := s.miniRedis.SMembers("character:player:" + testPlayerID)
	s.Require().NoError(err)
	s.Contains(members, testCharID)
}

func (s *RedisRepositoryTestSuite) TestCreateDuplicate() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter()})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter()})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: &dnd5e.Character{}})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestGet() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter()})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, character.GetInput{ID: testCharID})
	s.Require().NoError(err)
	s.Equal("Theren", out.Character.Name)
	s.Equal("phb:elf", out.Character.RaceSlug)
	s.Len(out.Character.Classes, 1)
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, character.GetInput{ID: "char_missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	created, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter()})
	s.Require().NoError(err)

	ch := created.Character
	ch.Name = "Theren the Wise"
	out, err := s.repo.Update(s.ctx, character.UpdateInput{Character: ch})
	s.Require().NoError(err)
	s.Equal(int64(2), out.Character.Version)

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: testCharID})
	s.Require().NoError(err)
	s.Equal("Theren the Wise", got.Character.Name)
}

func (s *RedisRepositoryTestSuite) TestUpdateVersionConflict() {
	created, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter()})
	s.Require().NoError(err)

	first := *created.Character
	first.Name = "First Writer"
	_, err = s.repo.Update(s.ctx, character.UpdateInput{Character: &first})
	s.Require().NoError(err)

	// A second writer still holding version 1 loses.
	second := *created.Character
	second.Name = "Second Writer"
	second.Version = 1
	_, err = s.repo.Update(s.ctx, character.UpdateInput{Character: &second})
	s.Require().Error(err)
	s.True(errors.IsConflict(err))

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: testCharID})
	s.Require().NoError(err)
	s.Equal("First Writer", got.Character.Name)
}

func (s *RedisRepositoryTestSuite) TestUpdateNotFound() {
	ch := s.testCharacter()
	ch.Version = 1
	_, err := s.repo.Update(s.ctx, character.UpdateInput{Character: ch})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.testCharacter()})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, character.DeleteInput{ID: testCharID})
	s.Require().NoError(err)

	s.False(s.miniRedis.Exists(testCharKey))

	members, _ := s.miniRedis.SMembers("character:player:" + testPlayerID)
	s.NotContains(members, testCharID)
}

func (s *RedisRepositoryTestSuite) TestListByPlayerID() {
	first := s.testCharacter()
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: first})
	s.Require().NoError(err)

	second := s.testCharacter()
	second.ID = "char_124"
	second.Name = "Borin"
	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: second})
	s.Require().NoError(err)

	out, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Len(out.Characters, 2)

	empty, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: "player_none"})
	s.Require().NoError(err)
	s.Empty(empty.Characters)
}
