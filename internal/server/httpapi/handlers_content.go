package httpapi

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/studyplanner/internal/common"
	"github.com/dmitrijs2005/studyplanner/internal/server/motivation"
	"github.com/dmitrijs2005/studyplanner/internal/server/resources"
	"github.com/dmitrijs2005/studyplanner/internal/server/services"
	"github.com/dmitrijs2005/studyplanner/internal/server/textproc"
)

type motivationRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
	Subject string `json:"subject" validate:"max=200"`
	PlanID  string `json:"plan_id" validate:"max=64"`
}

type analyzeRequest struct {
	Text string `json:"text" validate:"required,max=10000"`
}

type analyzeResponse struct {
	textproc.Analysis
	Sentiment motivation.SentimentResult `json:"sentiment"`
}

type resourcesResponse struct {
	Topic     string `json:"topic"`
	Resources any    `json:"resources"`
	Count     int    `json:"count"`
}

func (s *Server) handleFindResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	topic := strings.TrimSpace(q.Get("topic"))
	if topic == "" {
		s.fail(w, r, fmt.Errorf("%w: topic is required", common.ErrorValidation))
		return
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > resources.MaxLimit {
			s.fail(w, r, fmt.Errorf("%w: limit must be between 1 and %d", common.ErrorValidation, resources.MaxLimit))
			return
		}
		limit = n
	}

	found := s.finder.Find(r.Context(), resources.Query{
		Subject:      topic,
		Difficulty:   q.Get("difficulty"),
		ResourceType: q.Get("type"),
		Limit:        limit,
	})
	respondData(w, http.StatusOK, resourcesResponse{Topic: topic, Resources: found, Count: len(found)})
}

func (s *Server) handleMotivation(w http.ResponseWriter, r *http.Request) {
	var req motivationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := UserIDFromContext(r.Context())
	res, err := s.planner.Motivate(r.Context(), userID, req.Message, strings.TrimSpace(req.Subject), strings.TrimSpace(req.PlanID))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, res)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	respondData(w, http.StatusOK, analyzeResponse{
		Analysis:  textproc.Analyze(req.Text),
		Sentiment: motivation.Sentiment(req.Text),
	})
}

// handleSummarize accepts a multipart form with a "file" part and an
// optional "question" field.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) || errors.Is(err, multipart.ErrMessageTooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "upload is too large", nil)
			return
		}
		s.fail(w, r, fmt.Errorf("%w: expected multipart form with a file field", common.ErrorValidation))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: file is required", common.ErrorValidation))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	userID, _ := UserIDFromContext(r.Context())
	res, err := s.summarizer.Summarize(r.Context(), userID, services.Document{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, r.FormValue("question"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, res)
}
