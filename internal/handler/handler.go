// Package handler exposes the JSON game API. All generation logic lives in
// the generator; handlers validate input, delegate, and shape responses.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pavelanni/trivium/internal/model"
	"github.com/pavelanni/trivium/internal/store"
)

// maxSelectedCategories bounds how many categories one game may cover.
const maxSelectedCategories = 5

// Generator is the question-generation dependency of the API layer.
type Generator interface {
	ForCategories(ctx context.Context, categories []model.Category, perCategory int, exclude store.FingerprintSet) ([]model.StoredQuestion, error)
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	games        store.GameStore
	fingerprints store.FingerprintStore
	generator    Generator
	perCategory  int
}

// New creates a new Handler. perCategory <= 0 selects the default of 2
// questions per selected category.
func New(games store.GameStore, fingerprints store.FingerprintStore, gen Generator, perCategory int) *Handler {
	if perCategory <= 0 {
		perCategory = 2
	}
	return &Handler{
		games:        games,
		fingerprints: fingerprints,
		generator:    gen,
		perCategory:  perCategory,
	}
}

// Routes registers all API routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/categories", h.handleCategories)
	r.Post("/game", h.handleCreateGame)
	r.Get("/game/{gameID}", h.handleGetGame)
	r.Post("/game/{gameID}/answer", h.handleAnswer)
}

type categoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

func (h *Handler) handleCategories(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, categoriesResponse{Categories: model.AllCategories})
}

type createGameRequest struct {
	SelectedCategories []string `json:"selectedCategories"`
	UserID             string   `json:"userId"`
}

type gameResponse struct {
	GameID    string                 `json:"gameId"`
	Questions []model.PublicQuestion `json:"questions"`
}

func (h *Handler) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.SelectedCategories) == 0 || len(req.SelectedCategories) > maxSelectedCategories {
		respondError(w, http.StatusBadRequest, "selectedCategories must be an array of 1-5 categories")
		return
	}

	categories := make([]model.Category, 0, len(req.SelectedCategories))
	for _, label := range req.SelectedCategories {
		category, ok := model.ParseCategory(label)
		if !ok {
			respondError(w, http.StatusBadRequest, "unknown category: "+label)
			return
		}
		categories = append(categories, category)
	}

	ctx := r.Context()
	gameID := uuid.NewString()

	// Fingerprints are scoped to the user when one is supplied, so dedup
	// spans that user's games; otherwise they are scoped to this game only.
	ownerKey := req.UserID
	if ownerKey == "" {
		ownerKey = gameID
	}

	exclude := store.FingerprintSet{}
	if req.UserID != "" {
		seen, err := h.fingerprints.List(ctx, ownerKey)
		if err != nil {
			slog.Warn("loading fingerprint history failed", "owner", ownerKey, "error", err)
		}
		for _, fp := range seen {
			exclude.Add(fp)
		}
	}

	questions, err := h.generator.ForCategories(ctx, categories, h.perCategory, exclude)
	if err != nil {
		slog.Error("question generation failed", "game_id", gameID, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	used := make([]string, 0, len(questions))
	for _, q := range questions {
		used = append(used, q.Fingerprint)
		if err := h.fingerprints.Add(ctx, ownerKey, q.Fingerprint); err != nil {
			slog.Warn("recording fingerprint failed", "owner", ownerKey, "error", err)
		}
	}

	game := model.Game{
		ID:                 gameID,
		SelectedCategories: categories,
		Questions:          questions,
		UsedFingerprints:   used,
		CreatedAt:          time.Now(),
	}
	if err := h.games.SaveGame(ctx, game); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, gameResponse{GameID: gameID, Questions: game.PublicQuestions()})
}

func (h *Handler) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, ok := h.findGame(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, gameResponse{GameID: game.ID, Questions: game.PublicQuestions()})
}

type answerRequest struct {
	QuestionID  string `json:"questionId"`
	ChoiceIndex int    `json:"choiceIndex"`
}

type answerResponse struct {
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation,omitempty"`
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	game, ok := h.findGame(w, r)
	if !ok {
		return
	}

	question, ok := game.Question(req.QuestionID)
	if !ok {
		respondError(w, http.StatusNotFound, "question not found")
		return
	}

	respondJSON(w, http.StatusOK, answerResponse{
		Correct:     question.CorrectIndex == req.ChoiceIndex,
		Explanation: question.Explanation,
	})
}

// findGame loads the game from the URL parameter, writing the error response
// itself when the lookup fails.
func (h *Handler) findGame(w http.ResponseWriter, r *http.Request) (model.Game, bool) {
	id := chi.URLParam(r, "gameID")
	game, err := h.games.GetGame(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "game not found")
		return model.Game{}, false
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return model.Game{}, false
	}
	return game, true
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
