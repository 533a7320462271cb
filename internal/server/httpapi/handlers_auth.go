package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/studyplanner/internal/server/models"
	"github.com/dmitrijs2005/studyplanner/internal/server/services"
	"github.com/dmitrijs2005/studyplanner/internal/server/validation"
)

const maxJSONBody = 1 << 20

type registerRequest struct {
	UserName       string `json:"username" validate:"required,min=3,max=50"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6,max=72"`
	LearningStyle  string `json:"learning_style" validate:"max=50"`
	KnowledgeLevel string `json:"knowledge_level" validate:"omitempty,oneof=beginner intermediate advanced"`
}

type tokenRequest struct {
	UserName string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenResponse struct {
	services.TokenPair
	User *models.User `json:"user,omitempty"`
}

// decodeJSON reads a bounded JSON body into v and validates it. It writes
// the error response itself and reports whether the handler may continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var maxBytes *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytes):
			respondError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "request body is too large", nil)
		case errors.Is(err, io.EOF):
			respondError(w, http.StatusBadRequest, CodeInvalidJSON, "request body is empty", nil)
		default:
			respondError(w, http.StatusBadRequest, CodeInvalidJSON, "malformed JSON body", nil)
		}
		return false
	}
	if err := validation.Struct(v); err != nil {
		status, code, msg, details := errorStatus(err)
		respondError(w, status, code, msg, details)
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg, details := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error(r.Context(), "request error", "path", r.URL.Path, "error", err)
	}
	respondError(w, status, code, msg, details)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{
		"service": "AI Study Planner",
		"version": s.opts.Version,
		"docs":    "/api/health",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.users.Register(r.Context(), services.Registration{
		UserName:       req.UserName,
		Email:          req.Email,
		Password:       req.Password,
		LearningStyle:  req.LearningStyle,
		KnowledgeLevel: req.KnowledgeLevel,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.log.Info(r.Context(), "Registered", "username", user.UserName)
	respondData(w, http.StatusCreated, user)
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, user, err := s.users.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, tokenResponse{TokenPair: *pair, User: user})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, err := s.users.RefreshToken(r.Context(), strings.TrimSpace(req.RefreshToken))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, tokenResponse{TokenPair: *pair})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.users.Logout(r.Context(), strings.TrimSpace(req.RefreshToken)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	user, err := s.users.GetUser(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, user)
}
