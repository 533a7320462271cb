package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/studyplanner/internal/logging"
	"github.com/dmitrijs2005/studyplanner/internal/server/genai"
	"github.com/dmitrijs2005/studyplanner/internal/server/metrics"
	"github.com/dmitrijs2005/studyplanner/internal/server/storage"
)

const (
	// MaxDocumentChars bounds how much of a document is sent to the model.
	MaxDocumentChars = 30000
	// DownloadURLTTL is the lifetime of the link to an archived document.
	DownloadURLTTL = 15 * time.Minute
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrEmptyDocument        = errors.New("document has no text")
)

var supportedTypes = map[string]bool{
	"text/plain":    true,
	"text/markdown": true,
}

var extensionTypes = map[string]string{
	".txt":      "text/plain",
	".text":     "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
}

// Document is an uploaded file.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SummaryResult is either a summary or an answer to a question.
type SummaryResult struct {
	Type        string `json:"type"`
	Filename    string `json:"filename"`
	Question    string `json:"question,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Answer      string `json:"answer,omitempty"`
	Truncated   bool   `json:"truncated"`
	StorageKey  string `json:"storage_key,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

// SummarizerService summarises study documents or answers questions about
// them.
type SummarizerService struct {
	gen   genai.Generator
	store storage.Store
	log   logging.Logger
}

func NewSummarizerService(gen genai.Generator, store storage.Store, log logging.Logger) *SummarizerService {
	if gen == nil {
		gen = genai.Disabled{}
	}
	if store == nil {
		store = storage.NopStore{}
	}
	return &SummarizerService{gen: gen, store: store, log: log.With("module", "summarizer")}
}

// Summarize archives doc and asks the model for a summary, or for an answer
// when question is not blank.
func (s *SummarizerService) Summarize(ctx context.Context, userID string, doc Document, question string) (*SummaryResult, error) {
	contentType, err := DocumentType(doc.Filename, doc.ContentType)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(doc.Data) {
		return nil, fmt.Errorf("%w: document is not UTF-8 text", ErrUnsupportedMediaType)
	}

	text := strings.TrimSpace(string(doc.Data))
	if text == "" {
		return nil, ErrEmptyDocument
	}

	res := &SummaryResult{Filename: doc.Filename}
	if r := []rune(text); len(r) > MaxDocumentChars {
		text = string(r[:MaxDocumentChars])
		res.Truncated = true
	}

	res.StorageKey = s.archive(ctx, userID, doc, contentType)
	if res.StorageKey != "" {
		url, err := s.store.PresignGet(ctx, res.StorageKey, DownloadURLTTL)
		if err != nil {
			s.log.Warn(ctx, "presign failed", "key", res.StorageKey, "error", err)
		}
		res.DownloadURL = url
	}

	question = strings.TrimSpace(question)
	if question != "" {
		answer, err := s.gen.Generate(ctx, genai.QuestionPrompt(text, question))
		if err != nil {
			return nil, fmt.Errorf("answer question: %w", err)
		}
		res.Type, res.Question, res.Answer = "qa", question, strings.TrimSpace(answer)
		return res, nil
	}

	summary, err := s.gen.Generate(ctx, genai.SummaryPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	res.Type, res.Summary = "summary", strings.TrimSpace(summary)
	return res, nil
}

func (s *SummarizerService) archive(ctx context.Context, userID string, doc Document, contentType string) string {
	key, err := s.store.Put(ctx, storage.DocumentKey(userID, doc.Filename), contentType, doc.Data)
	switch {
	case err != nil:
		metrics.DocumentsArchived.WithLabelValues("error").Inc()
		s.log.Warn(ctx, "document archive failed", "user_id", userID, "filename", doc.Filename, "error", err)
		return ""
	case key == "":
		metrics.DocumentsArchived.WithLabelValues("skipped").Inc()
	default:
		metrics.DocumentsArchived.WithLabelValues("stored").Inc()
	}
	return key
}

// DocumentType resolves the media type of an upload, falling back to the
// file extension when the declared type is missing or generic.
func DocumentType(filename, declared string) (string, error) {
	mt := ""
	if declared != "" {
		parsed, _, err := mime.ParseMediaType(declared)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, declared)
		}
		mt = parsed
	}
	if mt == "" || mt == "application/octet-stream" {
		mt = extensionTypes[strings.ToLower(filepath.Ext(filename))]
	}
	if !supportedTypes[mt] {
		if mt == "" {
			mt = declared
		}
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mt)
	}
	return mt, nil
}
