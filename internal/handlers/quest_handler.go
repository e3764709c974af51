package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"questforge/internal/engine"
	"questforge/internal/service"
	"questforge/internal/validation"
)

// QuestHandler serves the player JSON API
type QuestHandler struct {
	progress *service.ProgressionService
	profiles *service.ProfileService
	logger   *zap.Logger
}

// NewQuestHandler creates a new quest handler
func NewQuestHandler(progress *service.ProgressionService, profiles *service.ProfileService, logger *zap.Logger) *QuestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestHandler{progress: progress, profiles: profiles, logger: logger}
}

// RegisterRoutes adds the player API to mux
func (h *QuestHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Health)

	mux.HandleFunc("GET /api/users/{userID}/progression", h.GetProgression)
	mux.HandleFunc("GET /api/users/{userID}/summary", h.GetSummary)
	mux.HandleFunc("GET /api/users/{userID}/quests", h.ListQuests)
	mux.HandleFunc("POST /api/users/{userID}/quests/{questID}/complete", h.CompleteQuest)
	mux.HandleFunc("GET /api/users/{userID}/daily", h.GetDailyQuests)
	mux.HandleFunc("GET /api/users/{userID}/challenge", h.GetChallenge)
	mux.HandleFunc("POST /api/users/{userID}/challenge/complete", h.CompleteChallenge)
	mux.HandleFunc("POST /api/users/{userID}/custom-quests", h.CreateCustomQuest)
	mux.HandleFunc("DELETE /api/users/{userID}/custom-quests/{questID}", h.DeleteCustomQuest)
	mux.HandleFunc("GET /api/users/{userID}/history", h.GetHistory)
	mux.HandleFunc("POST /api/users/{userID}/generate", h.Generate)
	mux.HandleFunc("POST /api/users/{userID}/reset", h.Reset)
	mux.HandleFunc("GET /api/users/{userID}/profile", h.GetProfile)
	mux.HandleFunc("PUT /api/users/{userID}/profile", h.UpdateProfile)
}

func (h *QuestHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *QuestHandler) GetProgression(w http.ResponseWriter, r *http.Request) {
	p, err := h.progress.Progression(r.Context(), r.PathValue("userID"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, p)
}

func (h *QuestHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.progress.Summary(r.Context(), r.PathValue("userID"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sum)
}

// ListQuests supports ?category=, ?difficulty=, ?tag= and ?hide_completed=true
func (h *QuestHandler) ListQuests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f engine.QuestFilter
	if v := q.Get("category"); v != "" {
		c, err := validation.ParseCategory(v)
		if err != nil {
			respondWithServiceError(w, h.logger, err)
			return
		}
		f.Category = c
	}
	if v := q.Get("difficulty"); v != "" {
		d, err := validation.ParseDifficulty(v)
		if err != nil {
			respondWithServiceError(w, h.logger, err)
			return
		}
		f.Difficulty = d
	}
	f.Tag = q.Get("tag")
	if v := q.Get("hide_completed"); v != "" {
		hide, err := strconv.ParseBool(v)
		if err != nil {
			respondWithError(w, h.logger, http.StatusBadRequest, ErrInvalidQuery, "", nil)
			return
		}
		f.HideCompleted = hide
	}

	quests, err := h.progress.Quests(r.Context(), r.PathValue("userID"), f)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, quests)
}

func (h *QuestHandler) CompleteQuest(w http.ResponseWriter, r *http.Request) {
	res, err := h.progress.CompleteQuest(r.Context(), r.PathValue("userID"), r.PathValue("questID"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

func (h *QuestHandler) GetDailyQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := h.progress.DailyQuests(r.Context(), r.PathValue("userID"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, quests)
}

func (h *QuestHandler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	view, err := h.progress.Challenge(r.Context(), r.PathValue("userID"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

func (h *QuestHandler) CompleteChallenge(w http.ResponseWriter, r *http.Request) {
	res, err := h.progress.CompleteChallenge(r.Context(), r.PathValue("userID"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

func (h *QuestHandler) CreateCustomQuest(w http.ResponseWriter, r *http.Request) {
	var in engine.CustomQuestInput
	if !h.decode(w, r, &in) {
		return
	}
	q, err := h.progress.AddCustomQuest(r.Context(), r.PathValue("userID"), in)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, q)
}

func (h *QuestHandler) DeleteCustomQuest(w http.ResponseWriter, r *http.Request) {
	if err := h.progress.DeleteCustomQuest(r.Context(), r.PathValue("userID"), r.PathValue("questID")); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuestHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondWithError(w, h.logger, http.StatusBadRequest, ErrInvalidQuery, "", nil)
			return
		}
		limit = n
	}
	entries, err := h.progress.History(r.Context(), r.PathValue("userID"), limit)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}

func (h *QuestHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateRequest
	if !h.decode(w, r, &req) {
		return
	}
	quests, err := h.progress.Generate(r.Context(), r.PathValue("userID"), req)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	status := http.StatusOK
	if req.Save {
		status = http.StatusCreated
	}
	respondWithJSON(w, status, quests)
}

func (h *QuestHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.progress.Reset(r.Context(), r.PathValue("userID")); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuestHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Profile(r.Context(), r.PathValue("userID"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if profile == nil {
		respondWithError(w, h.logger, http.StatusNotFound, ErrNotFound, "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

type profileRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

func (h *QuestHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !h.decode(w, r, &req) {
		return
	}
	profile, err := h.profiles.UpdateProfile(r.Context(), r.PathValue("userID"), req.DisplayName, req.Email)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

// decode reads a JSON body and answers 400 itself when it cannot
func (h *QuestHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return false
	}
	return true
}
