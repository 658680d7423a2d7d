// Package v1 exposes the character service over HTTP/JSON.
package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/KirkDiggler/character-api/internal/errors"
	charactersvc "github.com/KirkDiggler/character-api/internal/services/character"
)

// Config holds the dependencies for the character handler
type Config struct {
	CharacterService charactersvc.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.CharacterService == nil {
		return errors.InvalidArgument("character service is required")
	}
	return nil
}

// Handler implements the v1 character HTTP API
type Handler struct {
	characterService charactersvc.Service
}

// New creates a new character handler
func New(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Handler{characterService: cfg.CharacterService}, nil
}

// Register attaches the handler's routes to the mux. The choiceId path
// segment carries the composite choice ID, which uses "|" as its field
// delimiter; clients send it percent-encoded.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/characters", h.createCharacter)
	mux.HandleFunc("GET /v1/characters", h.listCharacters)
	mux.HandleFunc("GET /v1/characters/{id}", h.getCharacter)
	mux.HandleFunc("PATCH /v1/characters/{id}", h.updateCharacter)
	mux.HandleFunc("DELETE /v1/characters/{id}", h.deleteCharacter)

	mux.HandleFunc("POST /v1/characters/{id}/classes", h.addClass)
	mux.HandleFunc("PUT /v1/characters/{id}/classes/{classSlug}", h.replaceClass)
	mux.HandleFunc("PUT /v1/characters/{id}/classes/{classSlug}/subclass", h.setSubclass)
	mux.HandleFunc("POST /v1/characters/{id}/classes/{classSlug}/level-up", h.levelUp)

	mux.HandleFunc("GET /v1/characters/{id}/pending-choices", h.listPendingChoices)
	mux.HandleFunc("POST /v1/characters/{id}/choices/{choiceId}", h.resolveChoice)
	mux.HandleFunc("DELETE /v1/characters/{id}/choices/{choiceId}", h.undoChoice)

	mux.HandleFunc("GET /v1/characters/{id}/summary", h.getSummary)
	mux.HandleFunc("GET /v1/characters/{id}/validate", h.validateIntegrity)
}

func (h *Handler) createCharacter(w http.ResponseWriter, r *http.Request) {
	var req createCharacterRequest
	if err := decode(r, &req); err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	out, err := h.characterService.CreateCharacter(r.Context(), &charactersvc.CreateCharacterInput{
		PlayerID:       req.PlayerID,
		Name:           req.Name,
		RaceSlug:       req.RaceSlug,
		ClassSlug:      req.ClassSlug,
		BackgroundSlug: req.BackgroundSlug,
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, characterResponse{Character: out.Character})
}

func (h *Handler) getCharacter(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.GetCharacter(r.Context(), &charactersvc.GetCharacterInput{
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, characterResponse{
		Character:  out.Character,
		Completion: out.Completion,
	})
}

func (h *Handler) listCharacters(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.ListCharacters(r.Context(), &charactersvc.ListCharactersInput{
		PlayerID: r.URL.Query().Get("player_id"),
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listCharactersResponse{Characters: out.Characters})
}

func (h *Handler) updateCharacter(w http.ResponseWriter, r *http.Request) {
	var req updateCharacterRequest
	if err := decode(r, &req); err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	out, err := h.characterService.UpdateCharacter(r.Context(), &charactersvc.UpdateCharacterInput{
		CharacterID:    r.PathValue("id"),
		Name:           req.Name,
		Alignment:      req.Alignment,
		RaceSlug:       req.RaceSlug,
		BackgroundSlug: req.BackgroundSlug,
		AbilityScores:  req.AbilityScores,
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, characterResponse{
		Character:  out.Character,
		Completion: out.Completion,
	})
}

func (h *Handler) deleteCharacter(w http.ResponseWriter, r *http.Request) {
	_, err := h.characterService.DeleteCharacter(r.Context(), &charactersvc.DeleteCharacterInput{
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addClass(w http.ResponseWriter, r *http.Request) {
	var req addClassRequest
	if err := decode(r, &req); err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	out, err := h.characterService.AddClass(r.Context(), &charactersvc.AddClassInput{
		CharacterID: r.PathValue("id"),
		ClassSlug:   req.ClassSlug,
		Force:       req.Force,
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, characterResponse{Character: out.Character})
}

func (h *Handler) replaceClass(w http.ResponseWriter, r *http.Request) {
	var req replaceClassRequest
	if err := decode(r, &req); err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	out, err := h.characterService.ReplaceClass(r.Context(), &charactersvc.ReplaceClassInput{
		CharacterID:  r.PathValue("id"),
		ClassSlug:    r.PathValue("classSlug"),
		NewClassSlug: req.NewClassSlug,
		Force:        req.Force,
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, characterResponse{Character: out.Character})
}

func (h *Handler) setSubclass(w http.ResponseWriter, r *http.Request) {
	var req setSubclassRequest
	if err := decode(r, &req); err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	out, err := h.characterService.SetSubclass(r.Context(), &charactersvc.SetSubclassInput{
		CharacterID:  r.PathValue("id"),
		ClassSlug:    r.PathValue("classSlug"),
		SubclassSlug: req.SubclassSlug,
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, characterResponse{Character: out.Character})
}

func (h *Handler) levelUp(w http.ResponseWriter, r *http.Request) {
	var req levelUpRequest
	if err := decode(r, &req); err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	out, err := h.characterService.LevelUp(r.Context(), &charactersvc.LevelUpInput{
		CharacterID:  r.PathValue("id"),
		ClassSlug:    r.PathValue("classSlug"),
		HitPointMode: req.HitPointMode,
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, levelUpResponse{
		Character: out.Character,
		Result:    out.Result,
	})
}

func (h *Handler) listPendingChoices(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.ListPendingChoices(r.Context(), &charactersvc.ListPendingChoicesInput{
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pendingChoicesResponse{
		Pending: out.Pending,
		Summary: out.Summary,
	})
}

func (h *Handler) resolveChoice(w http.ResponseWriter, r *http.Request) {
	var req resolveChoiceRequest
	if err := decode(r, &req); err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	out, err := h.characterService.ResolveChoice(r.Context(), &charactersvc.ResolveChoiceInput{
		CharacterID:    r.PathValue("id"),
		ChoiceID:       r.PathValue("choiceId"),
		Selected:       req.Selected,
		ItemSelections: req.ItemSelections,
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, choiceResponse{
		Character: out.Character,
		Choice:    out.Choice,
	})
}

func (h *Handler) undoChoice(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.UndoChoice(r.Context(), &charactersvc.UndoChoiceInput{
		CharacterID: r.PathValue("id"),
		ChoiceID:    r.PathValue("choiceId"),
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, choiceResponse{
		Character: out.Character,
		Choice:    out.Choice,
	})
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.GetSummary(r.Context(), &charactersvc.GetSummaryInput{
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, characterResponse{
		Character:  out.Character,
		Completion: out.Completion,
	})
}

func (h *Handler) validateIntegrity(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.ValidateIntegrity(r.Context(), &charactersvc.ValidateIntegrityInput{
		CharacterID: r.PathValue("id"),
	})
	if err != nil {
		errors.WriteHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out.Result)
}

// decode reads a JSON request body. An empty body decodes to the zero
// request so endpoints with all-optional fields accept bodyless calls.
func decode(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || err == io.EOF {
		return nil
	}
	return errors.InvalidArgumentf("invalid request body: %s", err.Error())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
