package httpapi

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/studyplanner/internal/common"
	"github.com/dmitrijs2005/studyplanner/internal/server/genai"
	"github.com/dmitrijs2005/studyplanner/internal/server/services"
	"github.com/dmitrijs2005/studyplanner/internal/server/validation"
)

// Error codes returned in APIError.Code.
const (
	CodeValidation       = "validation_error"
	CodeInvalidJSON      = "invalid_json"
	CodeUnauthorized     = "unauthorized"
	CodeInvalidToken     = "invalid_token"
	CodeTokenExpired     = "token_expired"
	CodeNotFound         = "not_found"
	CodeAlreadyExists    = "already_exists"
	CodePayloadTooLarge  = "payload_too_large"
	CodeUnsupportedMedia = "unsupported_media_type"
	CodeEmptyDocument    = "empty_document"
	CodeAIUnavailable    = "ai_unavailable"
	CodeRateLimited      = "rate_limited"
	CodeInternal         = "internal_error"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError is a machine-readable code plus a human message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, resp *APIResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, `{"success":false,"error":{"code":"internal_error","message":"encode response"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, &APIResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, code, message string, details any) {
	respondJSON(w, status, &APIResponse{Error: &APIError{Code: code, Message: message, Details: details}})
}

// errorStatus maps service errors to a status and code. The message is safe
// to show to clients.
func errorStatus(err error) (status int, code, message string, details any) {
	var verr *validation.Error
	var maxBytes *http.MaxBytesError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, CodeValidation, verr.Error(), verr.Fields
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, CodeValidation, err.Error(), nil
	case errors.Is(err, services.ErrEmptyDocument):
		return http.StatusBadRequest, CodeEmptyDocument, err.Error(), nil
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized, CodeTokenExpired, err.Error(), nil
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, CodeInvalidToken, err.Error(), nil
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized, "invalid credentials", nil
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, CodeNotFound, "not found", nil
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, CodeAlreadyExists, "username or email already registered", nil
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "upload is too large", nil
	case errors.Is(err, services.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, CodeUnsupportedMedia, err.Error(), nil
	case errors.Is(err, genai.ErrUnavailable):
		return http.StatusServiceUnavailable, CodeAIUnavailable, "AI service is unavailable", nil
	default:
		return http.StatusInternalServerError, CodeInternal, "internal error", nil
	}
}
