package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/character-api/internal/engine"
	"github.com/KirkDiggler/character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-api/internal/errors"
	v1 "github.com/KirkDiggler/character-api/internal/handlers/characters/v1"
	charactersvc "github.com/KirkDiggler/character-api/internal/services/character"
	charactermock "github.com/KirkDiggler/character-api/internal/services/character/mock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *charactermock.MockService
	mux         *http.ServeMux
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = charactermock.NewMockService(s.ctrl)

	handler, err := v1.New(&v1.Config{
		CharacterService: s.mockService,
	})
	s.Require().NoError(err)

	s.mux = http.NewServeMux()
	handler.Register(s.mux)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) TestNewValidation() {
	handler, err := v1.New(&v1.Config{})
	s.Require().Error(err)
	s.Nil(handler)
}

func (s *HandlerTestSuite) TestCreateCharacter() {
	s.mockService.EXPECT().
		CreateCharacter(gomock.Any(), &charactersvc.CreateCharacterInput{
			PlayerID: "player_123",
			Name:     "Theren",
			RaceSlug: "phb:high-elf",
		}).
		Return(&charactersvc.CreateCharacterOutput{
			Character: &dnd5e.Character{ID: "char_1", Name: "Theren"},
		}, nil)

	rec := s.do(http.MethodPost, "/v1/characters", map[string]string{
		"player_id": "player_123",
		"name":      "Theren",
		"race_slug": "phb:high-elf",
	})

	s.Equal(http.StatusCreated, rec.Code)
	var body struct {
		Character struct {
			ID string `json:"id"`
		} `json:"character"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("char_1", body.Character.ID)
}

func (s *HandlerTestSuite) TestCreateCharacterMissingPlayer() {
	s.mockService.EXPECT().
		CreateCharacter(gomock.Any(), gomock.Any()).
		Return(nil, errors.InvalidArgument("playerID is required"))

	rec := s.do(http.MethodPost, "/v1/characters", map[string]string{})

	s.Equal(http.StatusBadRequest, rec.Code)
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("INVALID_ARGUMENT", body.Code)
}

func (s *HandlerTestSuite) TestCreateCharacterMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/v1/characters", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestGetCharacter() {
	s.mockService.EXPECT().
		GetCharacter(gomock.Any(), &charactersvc.GetCharacterInput{CharacterID: "char_1"}).
		Return(&charactersvc.GetCharacterOutput{
			Character:  &dnd5e.Character{ID: "char_1"},
			Completion: &engine.CompletionResult{IsComplete: false, Missing: []string{"race"}},
		}, nil)

	rec := s.do(http.MethodGet, "/v1/characters/char_1", nil)

	s.Equal(http.StatusOK, rec.Code)
	var body struct {
		Completion struct {
			IsComplete bool     `json:"is_complete"`
			Missing    []string `json:"missing"`
		} `json:"completion"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.False(body.Completion.IsComplete)
	s.Equal([]string{"race"}, body.Completion.Missing)
}

func (s *HandlerTestSuite) TestGetCharacterNotFound() {
	s.mockService.EXPECT().
		GetCharacter(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFoundf("character %s not found", "char_x"))

	rec := s.do(http.MethodGet, "/v1/characters/char_x", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerTestSuite) TestListCharacters() {
	s.mockService.EXPECT().
		ListCharacters(gomock.Any(), &charactersvc.ListCharactersInput{PlayerID: "player_123"}).
		Return(&charactersvc.ListCharactersOutput{
			Characters: []*dnd5e.Character{{ID: "char_1"}, {ID: "char_2"}},
		}, nil)

	rec := s.do(http.MethodGet, "/v1/characters?player_id=player_123", nil)

	s.Equal(http.StatusOK, rec.Code)
	var body struct {
		Characters []struct {
			ID string `json:"id"`
		} `json:"characters"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Len(body.Characters, 2)
}

func (s *HandlerTestSuite) TestUpdateCharacterPartial() {
	s.mockService.EXPECT().
		UpdateCharacter(gomock.Any(), gomock.AssignableToTypeOf(&charactersvc.UpdateCharacterInput{})).
		DoAndReturn(func(_ interface{}, input *charactersvc.UpdateCharacterInput) (*charactersvc.UpdateCharacterOutput, error) {
			s.Equal("char_1", input.CharacterID)
			s.Require().NotNil(input.RaceSlug)
			s.Equal("phb:dwarf", *input.RaceSlug)
			s.Nil(input.Name)
			s.Nil(input.AbilityScores)
			return &charactersvc.UpdateCharacterOutput{
				Character:  &dnd5e.Character{ID: "char_1", RaceSlug: "phb:dwarf"},
				Completion: &engine.CompletionResult{},
			}, nil
		})

	rec := s.do(http.MethodPatch, "/v1/characters/char_1", map[string]string{
		"race_slug": "phb:dwarf",
	})
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestDeleteCharacter() {
	s.mockService.EXPECT().
		DeleteCharacter(gomock.Any(), &charactersvc.DeleteCharacterInput{CharacterID: "char_1"}).
		Return(&charactersvc.DeleteCharacterOutput{}, nil)

	rec := s.do(http.MethodDelete, "/v1/characters/char_1", nil)
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *HandlerTestSuite) TestAddClass() {
	s.mockService.EXPECT().
		AddClass(gomock.Any(), &charactersvc.AddClassInput{
			CharacterID: "char_1",
			ClassSlug:   "phb:wizard",
			Force:       true,
		}).
		Return(&charactersvc.AddClassOutput{
			Character: &dnd5e.Character{ID: "char_1"},
		}, nil)

	rec := s.do(http.MethodPost, "/v1/characters/char_1/classes", map[string]interface{}{
		"class_slug": "phb:wizard",
		"force":      true,
	})
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestAddClassPrerequisiteNotMet() {
	s.mockService.EXPECT().
		AddClass(gomock.Any(), gomock.Any()).
		Return(nil, errors.PrerequisiteNotMetf("multiclassing into %s requires %s", "phb:wizard", "int 13"))

	rec := s.do(http.MethodPost, "/v1/characters/char_1/classes", map[string]string{
		"class_slug": "phb:wizard",
	})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *HandlerTestSuite) TestReplaceClass() {
	s.mockService.EXPECT().
		ReplaceClass(gomock.Any(), &charactersvc.ReplaceClassInput{
			CharacterID:  "char_1",
			ClassSlug:    "phb:wizard",
			NewClassSlug: "phb:fighter",
		}).
		Return(&charactersvc.ReplaceClassOutput{
			Character: &dnd5e.Character{ID: "char_1"},
		}, nil)

	rec := s.do(http.MethodPut, "/v1/characters/char_1/classes/phb:wizard", map[string]string{
		"new_class_slug": "phb:fighter",
	})
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestSetSubclass() {
	s.mockService.EXPECT().
		SetSubclass(gomock.Any(), &charactersvc.SetSubclassInput{
			CharacterID:  "char_1",
			ClassSlug:    "phb:wizard",
			SubclassSlug: "phb:evocation",
		}).
		Return(&charactersvc.SetSubclassOutput{
			Character: &dnd5e.Character{ID: "char_1"},
		}, nil)

	rec := s.do(http.MethodPut, "/v1/characters/char_1/classes/phb:wizard/subclass", map[string]string{
		"subclass_slug": "phb:evocation",
	})
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestLevelUpDefaultsBody() {
	s.mockService.EXPECT().
		LevelUp(gomock.Any(), &charactersvc.LevelUpInput{
			CharacterID: "char_1",
			ClassSlug:   "phb:wizard",
		}).
		Return(&charactersvc.LevelUpOutput{
			Character: &dnd5e.Character{ID: "char_1"},
			Result: &engine.LevelUpResult{
				NewLevel:        2,
				TotalLevel:      2,
				HitPointsGained: 6,
			},
		}, nil)

	// no request body at all
	req := httptest.NewRequest(http.MethodPost, "/v1/characters/char_1/classes/phb:wizard/level-up", nil)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	var body struct {
		Result struct {
			NewLevel        int32 `json:"new_level"`
			HitPointsGained int32 `json:"hit_points_gained"`
		} `json:"result"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(int32(2), body.Result.NewLevel)
	s.Equal(int32(6), body.Result.HitPointsGained)
}

func (s *HandlerTestSuite) TestLevelUpIncomplete() {
	s.mockService.EXPECT().
		LevelUp(gomock.Any(), gomock.Any()).
		Return(nil, errors.FailedPrecondition("character is not complete"))

	rec := s.do(http.MethodPost, "/v1/characters/char_1/classes/phb:wizard/level-up", map[string]string{})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *HandlerTestSuite) TestListPendingChoices() {
	pending := []dnd5e.PendingChoice{
		{
			ID:       "proficiency|class|phb:wizard|1|skills",
			Type:     dnd5e.ChoiceTypeProficiency,
			Quantity: 2,
			Required: true,
		},
	}
	s.mockService.EXPECT().
		ListPendingChoices(gomock.Any(), &charactersvc.ListPendingChoicesInput{CharacterID: "char_1"}).
		Return(&charactersvc.ListPendingChoicesOutput{
			Pending: pending,
			Summary: dnd5e.Summarize(pending),
		}, nil)

	rec := s.do(http.MethodGet, "/v1/characters/char_1/pending-choices", nil)

	s.Equal(http.StatusOK, rec.Code)
	var body struct {
		Pending []struct {
			ID string `json:"id"`
		} `json:"pending"`
		Summary struct {
			TotalPending    int32 `json:"total_pending"`
			RequiredPending int32 `json:"required_pending"`
		} `json:"summary"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Len(body.Pending, 1)
	s.Equal(int32(1), body.Summary.TotalPending)
	s.Equal(int32(1), body.Summary.RequiredPending)
}

func (s *HandlerTestSuite) TestResolveChoiceEncodedID() {
	choiceID := "proficiency|class|phb:wizard|1|skills"

	s.mockService.EXPECT().
		ResolveChoice(gomock.Any(), &charactersvc.ResolveChoiceInput{
			CharacterID: "char_1",
			ChoiceID:    choiceID,
			Selected:    []string{"phb:arcana", "phb:history"},
		}).
		Return(&charactersvc.ResolveChoiceOutput{
			Character: &dnd5e.Character{ID: "char_1"},
			Choice:    &dnd5e.PendingChoice{ID: choiceID, Selected: []string{"phb:arcana", "phb:history"}},
		}, nil)

	// the "|" delimiter travels percent-encoded in the path
	path := "/v1/characters/char_1/choices/" + url.PathEscape(choiceID)
	rec := s.do(http.MethodPost, path, map[string]interface{}{
		"selected": []string{"phb:arcana", "phb:history"},
	})
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestResolveChoiceInvalidSelection() {
	s.mockService.EXPECT().
		ResolveChoice(gomock.Any(), gomock.Any()).
		Return(nil, errors.InvalidSelection("slug phb:nature is not an option"))

	rec := s.do(http.MethodPost, "/v1/characters/char_1/choices/"+url.PathEscape("proficiency|class|phb:wizard|1|skills"),
		map[string]interface{}{"selected": []string{"phb:nature"}})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestUndoChoice() {
	choiceID := "language|race|phb:human|1|extra-language"

	s.mockService.EXPECT().
		UndoChoice(gomock.Any(), &charactersvc.UndoChoiceInput{
			CharacterID: "char_1",
			ChoiceID:    choiceID,
		}).
		Return(&charactersvc.UndoChoiceOutput{
			Character: &dnd5e.Character{ID: "char_1"},
			Choice:    &dnd5e.PendingChoice{ID: choiceID},
		}, nil)

	rec := s.do(http.MethodDelete, "/v1/characters/char_1/choices/"+url.PathEscape(choiceID), nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestUndoChoiceNotSupported() {
	s.mockService.EXPECT().
		UndoChoice(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotSupportedf("choice type %s cannot be undone", "subclass"))

	rec := s.do(http.MethodDelete, "/v1/characters/char_1/choices/"+url.PathEscape("subclass|class|phb:wizard|2|subclass"), nil)
	s.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func (s *HandlerTestSuite) TestGetSummary() {
	s.mockService.EXPECT().
		GetSummary(gomock.Any(), &charactersvc.GetSummaryInput{CharacterID: "char_1"}).
		Return(&charactersvc.GetSummaryOutput{
			Character:  &dnd5e.Character{ID: "char_1"},
			Completion: &engine.CompletionResult{IsComplete: true, Missing: []string{}},
		}, nil)

	rec := s.do(http.MethodGet, "/v1/characters/char_1/summary", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestValidateIntegrity() {
	s.mockService.EXPECT().
		ValidateIntegrity(gomock.Any(), &charactersvc.ValidateIntegrityInput{CharacterID: "char_1"}).
		Return(&charactersvc.ValidateIntegrityOutput{
			Result: &engine.IntegrityResult{Valid: false, Dangling: []string{"race:phb:gnome"}},
		}, nil)

	rec := s.do(http.MethodGet, "/v1/characters/char_1/validate", nil)

	s.Equal(http.StatusOK, rec.Code)
	var body struct {
		Valid    bool     `json:"valid"`
		Dangling []string `json:"dangling"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.False(body.Valid)
	s.Equal([]string{"race:phb:gnome"}, body.Dangling)
}

func (s *HandlerTestSuite) TestVersionConflictMapsTo409() {
	s.mockService.EXPECT().
		UpdateCharacter(gomock.Any(), gomock.Any()).
		Return(nil, errors.Conflictf("character %s version mismatch", "char_1"))

	rec := s.do(http.MethodPatch, "/v1/characters/char_1", map[string]string{"alignment": "lawful good"})
	s.Equal(http.StatusConflict, rec.Code)
}
