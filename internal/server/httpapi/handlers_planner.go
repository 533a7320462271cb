package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/studyplanner/internal/server/services"
)

type progressRequest struct {
	CompletedHours *int `json:"completed_hours" validate:"required"`
}

type legacyResponse struct {
	Goal     string   `json:"goal"`
	Schedule []string `json:"schedule"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req services.PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := UserIDFromContext(r.Context())
	plan, err := s.planner.Generate(r.Context(), userID, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, plan)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	plans, err := s.planner.List(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, plans)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	plan, err := s.planner.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	if err := s.planner.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	p, err := s.planner.Progress(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := UserIDFromContext(r.Context())
	p, err := s.planner.UpdateProgress(r.Context(), userID, chi.URLParam(r, "id"), *req.CompletedHours)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, p)
}

func (s *Server) handleLegacy(w http.ResponseWriter, r *http.Request) {
	goal := strings.TrimSpace(r.URL.Query().Get("goal"))
	lines, err := s.planner.LegacySchedule(r.Context(), goal)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, legacyResponse{Goal: goal, Schedule: lines})
}
