package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-api/internal/errors"
	"github.com/KirkDiggler/character-api/internal/rulebook"
)

// stubRoller always returns a fixed value so rolled hit points are
// deterministic in tests.
type stubRoller struct {
	value int
}

func (s *stubRoller) Roll(_ int) (int, error) { return s.value, nil }
func (s *stubRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = s.value
	}
	return out, nil
}

type EngineTestSuite struct {
	suite.Suite
	engine *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	catalog, err := rulebook.DefaultPHB()
	s.Require().NoError(err)

	eng, err := New(&Config{
		Catalog: catalog,
		Roller:  &stubRoller{value: 5},
	})
	s.Require().NoError(err)
	s.engine = eng
}

func (s *EngineTestSuite) newShell() *dnd5e.Character {
	return &dnd5e.Character{
		ID:   "char_test",
		Name: dnd5e.PlaceholderName,
		BaseScores: dnd5e.AbilityScores{
			Strength:     8,
			Dexterity:    14,
			Constitution: 14,
			Intelligence: 15,
			Wisdom:       12,
			Charisma:     10,
		},
	}
}

// resolveRequired drives every required pending choice to resolution,
// picking the cheapest legal option each time.
func (s *EngineTestSuite) resolveRequired(ch *dnd5e.Character) {
	for range [32]struct{}{} {
		pending, err := s.engine.CompilePendingChoices(ch)
		s.Require().NoError(err)

		resolved := false
		for i := range pending {
			choice := &pending[i]
			if !choice.Required {
				continue
			}

			var selected []string
			switch choice.Type {
			case dnd5e.ChoiceTypeEquipmentMode:
				selected = []string{EquipmentModeGold}
			case dnd5e.ChoiceTypeASIOrFeat:
				selected = []string{ASIOptionImprovement}
			default:
				for _, opt := range choice.Options {
					if opt.IsCategory {
						continue
					}
					selected = append(selected, opt.Slug)
					if int32(len(selected)) == choice.Quantity {
						break
					}
				}
			}

			_, err := s.engine.ResolveChoice(ch, choice.ID, selected, nil)
			s.Require().NoError(err, "resolving %s", choice.ID)
			resolved = true
			// Resolving mutates the character, so the remaining snapshot
			// entries are stale: recompile before the next resolution.
			break
		}

		if !resolved {
			return
		}
	}
	s.FailNow("pending choices did not converge")
}

func (s *EngineTestSuite) completeCharacter(raceSlug, classSlug, backgroundSlug string) *dnd5e.Character {
	ch := s.newShell()
	s.Require().NoError(s.engine.SetRace(ch, raceSlug))
	s.Require().NoError(s.engine.AddClass(ch, classSlug, true))
	s.Require().NoError(s.engine.SetBackground(ch, backgroundSlug))
	ch.Name = "Theren"
	ch.Alignment = "neutral good"
	s.resolveRequired(ch)
	return ch
}

func TestNewEngine(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		eng, err := New(nil)
		assert.Error(t, err)
		assert.Nil(t, eng)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("missing catalog", func(t *testing.T) {
		eng, err := New(&Config{})
		assert.Error(t, err)
		assert.Nil(t, eng)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("defaults the roller", func(t *testing.T) {
		catalog, err := rulebook.DefaultPHB()
		assert.NoError(t, err)
		eng, err := New(&Config{Catalog: catalog})
		assert.NoError(t, err)
		assert.NotNil(t, eng)
	})
}

func TestAverageDie(t *testing.T) {
	// Average rounds up: 3.5 -> 4, 5.5 -> 6, 6.5 -> 7.
	assert.Equal(t, int32(4), averageDie(6))
	assert.Equal(t, int32(5), averageDie(8))
	assert.Equal(t, int32(6), averageDie(10))
	assert.Equal(t, int32(7), averageDie(12))
}

func (s *EngineTestSuite) TestSetRaceAppliesGrants() {
	ch := s.newShell()
	s.Require().NoError(s.engine.SetRace(ch, "phb:elf"))

	s.True(ch.HasGrant(dnd5e.GrantProficiency, "phb:perception"))
	s.True(ch.HasGrant(dnd5e.GrantLanguage, "phb:elvish"))
	s.Equal(int32(16), ch.EffectiveScores().Dexterity) // 14 base + 2 racial
}

func (s *EngineTestSuite) TestSetRaceWithSubraceSlug() {
	ch := s.newShell()
	s.Require().NoError(s.engine.SetRace(ch, "phb:high-elf"))

	s.Equal("phb:elf", ch.RaceSlug)
	s.Equal("phb:high-elf", ch.SubraceSlug)
	s.Equal(int32(16), ch.EffectiveScores().Intelligence) // 15 base + 1 subrace
}

func (s *EngineTestSuite) TestCollisionFiltering() {
	ch := s.newShell()
	s.Require().NoError(s.engine.SetRace(ch, "phb:elf"))
	s.Require().NoError(s.engine.AddClass(ch, "phb:ranger", true))

	pending, err := s.engine.CompilePendingChoices(ch)
	s.Require().NoError(err)

	skills := s.findByGroup(pending, "skills")
	s.Require().NotNil(skills, "ranger skill choice should be pending")
	s.False(skills.HasOption("phb:perception"),
		"Perception is already granted by Elf and must be filtered")
	s.True(skills.HasOption("phb:stealth"))
}

func (s *EngineTestSuite) TestCascadeCompleteness() {
	ch := s.newShell()
	s.Require().NoError(s.engine.SetRace(ch, "phb:elf"))
	s.Require().NoError(s.engine.AddClass(ch, "phb:ranger", true))

	pending, err := s.engine.CompilePendingChoices(ch)
	s.Require().NoError(err)
	skills := s.findByGroup(pending, "skills")
	s.Require().NotNil(skills)

	_, err = s.engine.ResolveChoice(ch, skills.ID,
		[]string{"phb:stealth", "phb:athletics", "phb:survival"}, nil)
	s.Require().NoError(err)

	// Switching race removes exactly the Elf-provenance state: the
	// Perception grant goes, the Ranger's resolved skills stay.
	s.Require().NoError(s.engine.SetRace(ch, "phb:dwarf"))

	s.False(ch.HasGrant(dnd5e.GrantProficiency, "phb:perception"))
	s.False(ch.HasGrant(dnd5e.GrantLanguage, "phb:elvish"))
	s.True(ch.HasGrant(dnd5e.GrantProficiency, "phb:stealth"))
	s.True(ch.HasGrant(dnd5e.GrantLanguage, "phb:dwarvish"))

	sel, ok := ch.SelectionFor(skills.ID)
	s.Require().True(ok, "class choice selection must survive a race change")
	s.ElementsMatch([]string{"phb:stealth", "phb:athletics", "phb:survival"}, sel.Selected)
}

func (s *EngineTestSuite) TestSubraceChangeKeepsRaceGrants() {
	ch := s.newShell()
	s.Require().NoError(s.engine.SetRace(ch, "phb:high-elf"))
	s.Require().NoError(s.engine.SetRace(ch, "phb:wood-elf"))

	s.Equal("phb:elf", ch.RaceSlug)
	s.Equal("phb:wood-elf", ch.SubraceSlug)
	s.True(ch.HasGrant(dnd5e.GrantProficiency, "phb:perception"), "parent race grants survive")
	s.Equal(int32(15), ch.EffectiveScores().Intelligence, "High Elf INT bonus is gone")
	s.Equal(int32(13), ch.EffectiveScores().Wisdom, "Wood Elf WIS bonus applied")
}

func (s *EngineTestSuite) TestMulticlassPrerequisiteGate() {
	ch := s.newShell()
	ch.BaseScores = dnd5e.AbilityScores{
		Strength: 10, Dexterity: 10, Constitution: 10,
		Intelligence: 13, Wisdom: 10, Charisma: 10,
	}
	s.Require().NoError(s.engine.AddClass(ch, "phb:wizard", true))

	err := s.engine.AddClass(ch, "phb:fighter", false)
	s.Require().Error(err)
	s.True(errors.IsPrerequisiteNotMet(err))
	s.Contains(err.Error(), "str 13")

	// Meeting either branch of the STR-or-DEX prerequisite passes.
	ch.BaseScores.Strength = 13
	s.Require().NoError(s.engine.AddClass(ch, "phb:fighter", false))
}

func (s *EngineTestSuite) TestQuantityInvariant() {
	ch := s.newShell()
	s.Require().NoError(s.engine.AddClass(ch, "phb:wizard", true))

	pending, err := s.engine.CompilePendingChoices(ch)
	s.Require().NoError(err)
	skills := s.findByGroup(pending, "skills")
	s.Require().NotNil(skills)
	s.Equal(int32(2), skills.Quantity)

	_, err = s.engine.ResolveChoice(ch, skills.ID,
		[]string{"phb:arcana", "phb:history", "phb:insight"}, nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidSelection(err))

	_, err = s.engine.ResolveChoice(ch, skills.ID, []string{"phb:arcana"}, nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidSelection(err))

	_, err = s.engine.ResolveChoice(ch, skills.ID, []string{"phb:arcana", "phb:history"}, nil)
	s.Require().NoError(err)
}

func (s *EngineTestSuite) TestInvalidOptionRejected() {
	ch := s.newShell()
	s.Require().NoError(s.engine.AddClass(ch, "phb:wizard", true))

	pending, err := s.engine.CompilePendingChoices(ch)
	s.Require().NoError(err)
	skills := s.findByGroup(pending, "skills")
	s.Require().NotNil(skills)

	_, err = s.engine.ResolveChoice(ch, skills.ID,
		[]string{"phb:athletics", "phb:arcana"}, nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidSelection(err))
}

func (s *EngineTestSuite) TestIdempotentResolution() {
	ch := s.newShell()
	s.Require().NoError(s.engine.AddClass(ch, "phb:wizard", true))

	pending, err := s.engine.CompilePendingChoices(ch)
	s.Require().NoError(err)
	skills := s.findByGroup(pending, "skills")
	s.Require().NotNil(skills)

	selected := []string{"phb:arcana", "phb:history"}
	_, err = s.engine.ResolveChoice(ch, skills.ID, selected, nil)
	s.Require().NoError(err)
	grantCount := len(ch.Grants)

	// Retrying the identical payload succeeds without duplicating grants.
	_, err = s.engine.ResolveChoice(ch, skills.ID, selected, nil)
	s.Require().NoError(err)
	s.Equal(grantCount, len(ch.Grants))
}

func (s *EngineTestSuite) TestCumulativeAbilityScoreSemantics() {
	ch := s.completeCharacter("phb:half-orc", "phb:fighter", "phb:soldier")

	// Fighter has ASIs at 4 and 6; level to 4, clearing each level's
	// choices along the way.
	for level := int32(2); level <= 4; level++ {
		result, err := s.engine.LevelUp(ch, "phb:fighter", HitPointModeAverage)
		s.Require().NoError(err)
		s.Equal(level, result.NewLevel)
		s.resolveRequiredExcept(ch, dnd5e.ChoiceTypeAbilityScore)
	}

	pending, err := s.engine.CompilePendingChoices(ch)
	s.Require().NoError(err)
	asi := s.findByType(pending, dnd5e.ChoiceTypeAbilityScore)
	s.Require().NotNil(asi, "choosing the improvement surfaces the ability choice")
	s.Equal(int32(2), asi.Quantity)

	// Partial submission is allowed mid-flow for cumulative choices.
	_, err = s.engine.ResolveChoice(ch, asi.ID, []string{"str"}, nil)
	s.Require().NoError(err)

	// A delta that drops the prior selection is rejected.
	_, err = s.engine.ResolveChoice(ch, asi.ID, []string{"dex"}, nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidSelection(err))

	// The full cumulative list commits.
	before := ch.EffectiveScores()
	_, err = s.engine.ResolveChoice(ch, asi.ID, []string{"str", "dex"}, nil)
	s.Require().NoError(err)
	after := ch.EffectiveScores()
	s.Equal(before.Strength, after.Strength, "partial str bump was already applied")
	s.Equal(before.Dexterity+1, after.Dexterity)
}

func (s *EngineTestSuite) TestAbilityScoreAllowsDoubling() {
	ch := s.completeCharacter("phb:half-orc", "phb:fighter", "phb:soldier")
	for level := int32(2); level <= 4; level++ {
		_, err := s.engine.LevelUp(ch, "phb:fighter", HitPointModeAverage)
		s.Require().NoError(err)
		s.resolveRequiredExcept(ch, dnd5e.ChoiceTypeAbilityScore)
	}

	pending, err := s.engine.CompilePendingChoices(ch)
	s.Require().NoError(err)
	asi := s.findByType(pending, dnd5e.ChoiceTypeAbilityScore)
	s.Require().NotNil(asi)

	before := ch.EffectiveScores().Strength
	_, err = s.engine.ResolveChoice(ch, asi.ID, []string{"str", "str"}, nil)
	s.Require().NoError(err)
	s.Equal(before+2, ch.EffectiveScores().Strength)
}

func (s *EngineTestSuite) TestUndoLanguageChoice() {
	ch := s.newShell()
	s.Require().NoError(s.engine.SetRace(ch, "phb:human"))

	pending, err := s.engine.CompilePendingChoices(ch)
	s.Require().NoError(err)
	lang := s.findByType(pending, dnd5e.ChoiceTypeLanguage)
	s.Require().NotNil(lang)

	_, err = s.engine.ResolveChoice(ch, lang.ID, []string{"phb:elvish"}, nil)
	s.Require().NoError(err)
	s.True(ch.HasGrant(dnd5e.GrantLanguage, "phb:elvish"))

	reverted, err := s.engine.UndoChoice(ch, lang.ID)
	s.Require().NoError(err)
	s.Require().NotNil(reverted)
	s.Empty(reverted.Selected)
	s.False(ch.HasGrant(dnd5e.GrantLanguage, "phb:elvish"))

	pending, err = s.engine.CompilePendingChoices(ch)
	s.Require().NoError(err)
	s.NotNil(s.findByType(pending, dnd5e.ChoiceTypeLanguage), "choice returns to pending")
}

func (s *EngineTestSuite) TestUndoNotSupportedTypes() {
	ch := s.newShell()
	s.Require().NoError(s.engine.AddClass(ch, "phb:wizard", true))

	id := dnd5e.ChoiceID{
		Type:       dnd5e.ChoiceTypeEquipmentMode,
		Source:     dnd5e.SourceClass,
		SourceSlug: "phb:wizard",
		Level:      1,
		Group:      "mode",
	}.String()

	_, err := s.engine.UndoChoice(ch, id)
	s.Require().Error(err)
	s.True(errors.IsNotSupported(err))
}

func (s *EngineTestSuite) TestEquipmentCategoryRequiresItems() {
	ch := s.newShell()
	s.Require().NoError(s.engine.AddClass(ch, "phb:fighter", true))

	modeID := dnd5e.ChoiceID{
		Type:       dnd5e.ChoiceTypeEquipmentMode,
		Source:     dnd5e.SourceClass,
		SourceSlug: "phb:fighter",
		Level:      1,
		Group:      "mode",
	}.String()
	_, err := s.engine.ResolveChoice(ch, modeID, []string{EquipmentModeEquipment}, nil)
	s.Require().NoError(err)

	pending, err := s.engine.CompilePendingChoices(ch)
	s.Require().NoError(err)
	weapons := s.findByGroup(pending, "weapons")
	s.Require().NotNil(weapons, "equipment choices surface after opting into equipment")

	_, err = s.engine.ResolveChoice(ch, weapons.ID, []string{"phb:martial-weapons"}, nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidSelection(err))

	_, err = s.engine.ResolveChoice(ch, weapons.ID, []string{"phb:martial-weapons"},
		map[string][]string{"phb:martial-weapons": {"phb:longsword"}})
	s.Require().NoError(err)
	s.True(ch.HasGrant(dnd5e.GrantEquipment, "phb:longsword"))
}

func (s *EngineTestSuite) TestLevelUpHitPoints() {
	ch := s.completeCharacter("phb:high-elf", "phb:wizard", "phb:sage")

	// Level 1 wizard with CON 14: 6 + 2 = 8.
	s.Equal(int32(8), ch.HitPointMaximum)

	result, err := s.engine.LevelUp(ch, "phb:wizard", HitPointModeAverage)
	s.Require().NoError(err)
	s.Equal(int32(2), result.NewLevel)
	s.Equal(int32(6), result.HitPointsGained, "d6 average 4 plus CON mod 2")
	s.Equal(int32(14), ch.HitPointMaximum)
}

func (s *EngineTestSuite) TestLevelUpRolledHitPoints() {
	ch := s.completeCharacter("phb:high-elf", "phb:wizard", "phb:sage")

	result, err := s.engine.LevelUp(ch, "phb:wizard", HitPointModeRoll)
	s.Require().NoError(err)
	s.Equal(int32(7), result.HitPointsGained, "stub roll 5 plus CON mod 2")
}

func (s *EngineTestSuite) TestLevelUpRequiresCompleteCharacter() {
	ch := s.newShell()
	s.Require().NoError(s.engine.AddClass(ch, "phb:wizard", true))

	_, err := s.engine.LevelUp(ch, "phb:wizard", HitPointModeAverage)
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *EngineTestSuite) TestLevelUpCommitsBeforeChoicesResolve() {
	ch := s.completeCharacter("phb:high-elf", "phb:wizard", "phb:sage")

	result, err := s.engine.LevelUp(ch, "phb:wizard", HitPointModeAverage)
	s.Require().NoError(err)
	s.Equal(int32(2), result.NewLevel)

	// The new level stands even though its choices are outstanding.
	entry, ok := ch.Class("phb:wizard")
	s.Require().True(ok)
	s.Equal(int32(2), entry.Level)

	completion, err := s.engine.CheckCompletion(ch)
	s.Require().NoError(err)
	s.False(completion.IsComplete, "level 2 spellbook and subclass choices are pending")
}

func (s *EngineTestSuite) TestSetSubclassRetryDoesNotDuplicateGrants() {
	ch := s.completeCharacter("phb:high-elf", "phb:wizard", "phb:sage")
	_, err := s.engine.LevelUp(ch, "phb:wizard", HitPointModeAverage)
	s.Require().NoError(err)

	s.Require().NoError(s.engine.SetSubclass(ch, "phb:wizard", "phb:evocation"))
	s.True(ch.HasGrant(dnd5e.GrantFeature, "phb:sculpt-spells"))
	count := len(ch.Grants)

	// A retried request for the subclass already set must not reapply
	// its grants.
	s.Require().NoError(s.engine.SetSubclass(ch, "phb:wizard", "phb:evocation"))
	s.Equal(count, len(ch.Grants))

	// Resolving the synthesized subclass choice with the same slug after
	// the direct set is equally a no-op.
	all, err := s.engine.compileAll(ch)
	s.Require().NoError(err)
	var subclassChoice *dnd5e.PendingChoice
	for i := range all {
		if all[i].Type == dnd5e.ChoiceTypeSubclass {
			subclassChoice = &all[i]
			break
		}
	}
	s.Require().NotNil(subclassChoice)
	_, err = s.engine.ResolveChoice(ch, subclassChoice.ID, []string{"phb:evocation"}, nil)
	s.Require().NoError(err)
	s.Equal(count, len(ch.Grants))

	// Switching still swaps the old subclass's grants out.
	s.Require().NoError(s.engine.SetSubclass(ch, "phb:wizard", "phb:abjuration"))
	s.False(ch.HasGrant(dnd5e.GrantFeature, "phb:sculpt-spells"))
	s.True(ch.HasGrant(dnd5e.GrantFeature, "phb:arcane-ward"))
	s.Equal(count, len(ch.Grants))
}

func (s *EngineTestSuite) TestEndToEndCompletion() {
	ch := s.completeCharacter("phb:high-elf", "phb:wizard", "phb:sage")

	completion, err := s.engine.CheckCompletion(ch)
	s.Require().NoError(err)
	s.True(completion.IsComplete)
	s.Empty(completion.Missing)
}

func (s *EngineTestSuite) TestCompletionMissingFields() {
	ch := s.newShell()
	completion, err := s.engine.CheckCompletion(ch)
	s.Require().NoError(err)

	s.False(completion.IsComplete)
	s.Contains(completion.Missing, "race")
	s.Contains(completion.Missing, "class")
	s.Contains(completion.Missing, "background")
	s.Contains(completion.Missing, "name")
	s.Contains(completion.Missing, "alignment")
}

func (s *EngineTestSuite) TestIntegrityCheck() {
	ch := s.completeCharacter("phb:high-elf", "phb:wizard", "phb:sage")

	result := s.engine.CheckIntegrity(ch)
	s.True(result.Valid)
	s.Empty(result.Dangling)

	// Simulate a content reimport dropping the race.
	ch.RaceSlug = "phb:gnome"
	result = s.engine.CheckIntegrity(ch)
	s.False(result.Valid)
	s.Contains(result.Dangling, "race:phb:gnome")
}

func (s *EngineTestSuite) findByGroup(pending []dnd5e.PendingChoice, group string) *dnd5e.PendingChoice {
	for i := range pending {
		if pending[i].Group == group {
			return &pending[i]
		}
	}
	return nil
}

func (s *EngineTestSuite) findByType(pending []dnd5e.PendingChoice, choiceType dnd5e.ChoiceType) *dnd5e.PendingChoice {
	for i := range pending {
		if pending[i].Type == choiceType {
			return &pending[i]
		}
	}
	return nil
}

// resolveRequiredExcept resolves required choices, leaving any of the
// given type pending for the test to exercise directly.
func (s *EngineTestSuite) resolveRequiredExcept(ch *dnd5e.Character, skip dnd5e.ChoiceType) {
	for range [32]struct{}{} {
		pending, err := s.engine.CompilePendingChoices(ch)
		s.Require().NoError(err)

		resolved := false
		for i := range pending {
			choice := &pending[i]
			if !choice.Required || choice.Type == skip {
				continue
			}

			var selected []string
			switch choice.Type {
			case dnd5e.ChoiceTypeEquipmentMode:
				selected = []string{EquipmentModeGold}
			case dnd5e.ChoiceTypeASIOrFeat:
				selected = []string{ASIOptionImprovement}
			default:
				for _, opt := range choice.Options {
					if opt.IsCategory {
						continue
					}
					selected = append(selected, opt.Slug)
					if int32(len(selected)) == choice.Quantity {
						break
					}
				}
			}

			_, err := s.engine.ResolveChoice(ch, choice.ID, selected, nil)
			s.Require().NoError(err, "resolving %s", choice.ID)
			resolved = true
			// Resolving mutates the character, so the remaining snapshot
			// entries are stale: recompile before the next resolution.
			break
		}

		if !resolved {
			return
		}
	}
	s.FailNow("pending choices did not converge")
}
