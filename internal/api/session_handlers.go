package api

import (
	"net/http"

	"github.com/lucasmv/flashdeck/internal/models"
)

type submitAnswerRequest struct {
	CardID      int64 `json:"card_id" validate:"required,gt=0"`
	IsCorrect   *bool `json:"is_correct" validate:"required"`
	TimeSpentMs int   `json:"time_spent_ms" validate:"gte=0"`
}

type endSessionResponse struct {
	models.Session
	DurationMinutes float64 `json:"duration_minutes"`
	SuccessRate     float64 `json:"success_rate"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	deckID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.SessionService.StartSession(r.Context(), userFromContext(r.Context()), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, session)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req submitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.SessionService.SubmitAnswer(r.Context(), userFromContext(r.Context()), sessionID, req.CardID, *req.IsCorrect, req.TimeSpentMs)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.SessionService.EndSession(r.Context(), userFromContext(r.Context()), sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, endSessionResponse{
		Session:         *session,
		DurationMinutes: session.DurationMinutes(),
		SuccessRate:     session.SuccessRate(),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.SessionService.GetSession(r.Context(), userFromContext(r.Context()), sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.SessionService.ListUserSessions(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, sessions)
}

func (s *Server) handleListDeckSessions(w http.ResponseWriter, r *http.Request) {
	deckID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	sessions, err := s.SessionService.ListDeckSessions(r.Context(), userFromContext(r.Context()), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, sessions)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.SessionService.UserStats(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}
