package api

import (
	"net/http"
)

type authRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.Register(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.setUserCookie(w, user.ID)
	respondJSON(w, r, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.Login(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.setUserCookie(w, user.ID)
	respondJSON(w, r, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearUserCookie(w)
	respondJSON(w, r, http.StatusNoContent, nil)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, userFromContext(r.Context()))
}
