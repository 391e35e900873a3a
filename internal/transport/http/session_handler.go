package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"matchminded-service/internal/app"
	"matchminded-service/internal/domain"
)

// SessionHandler exposes quiz sessions over plain request/response HTTP.
type SessionHandler struct {
	service *app.MatchService
}

func NewSessionHandler(service *app.MatchService) *SessionHandler {
	return &SessionHandler{service: service}
}

type answerRequest struct {
	Value *int `json:"value"`
}

func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.Start(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "body must be {\"value\": 1..5}"})
		return
	}
	v, err := h.service.SubmitAnswer(r.Context(), chi.URLParam(r, "id"), *req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.service.View(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	h.service.End(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrCatalogNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAnswerValue):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidPhase):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("http: %v", err)
	}
	writeJSON(w, status, errorPayload{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("http: encode response: %v", err)
	}
}
