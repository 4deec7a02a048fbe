package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"adscheck/internal/check"
	"adscheck/internal/logger"
	"adscheck/internal/models"
)

// Handler contains the HTTP handlers for the API
type Handler struct {
	checkService check.CheckService
	logger       logger.Service
}

// NewHandler creates a new HTTP handler
func NewHandler(
	checkService check.CheckService,
	logger logger.Service,
) *Handler {
	return &Handler{
		checkService: checkService,
		logger:       logger,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// writeJSONResponse writes a JSON response with standard headers including X-Request-ID
func (h *Handler) writeJSONResponse(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) error {
	// Extract LogEvent from context to get ProcessID for X-Request-ID header
	logEvent := logger.GetLogEvent(r.Context())

	// Set headers
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", logEvent.ProcessID)
	w.WriteHeader(statusCode)

	// Encode and send response
	return json.NewEncoder(w).Encode(data)
}

// CheckAds handles POST /api/check
func (h *Handler) CheckAds(w http.ResponseWriter, r *http.Request) {
	// LogEvent is automatically created by logging middleware
	ctx := r.Context()

	// Parse request body
	var request models.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.LogError(ctx, logger.OpCheck, "", "Invalid request body", err, models.LogSeverityLow, nil)
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.logger.LogInfo(ctx, logger.OpCheck, fmt.Sprintf("Starting ads check for domain=%q page=%q", request.Domain, request.FacebookPage), map[string]interface{}{
		"domain":        request.Domain,
		"facebook_page": request.FacebookPage,
	})

	// Run the check pipeline
	outcome, err := h.checkService.Check(ctx, request)
	if err != nil {
		h.logger.LogError(ctx, logger.OpCheck, request.Domain, "Ads check failed", err, models.LogSeverityMedium, nil)

		statusCode := h.getStatusCodeForError(err)
		h.writeErrorResponse(w, r, statusCode, "check failed", err.Error())
		return
	}

	// Write successful response using centralized function
	if err := h.writeJSONResponse(w, r, http.StatusOK, outcome); err != nil {
		// Response already sent with 200, but log the encoding error
		h.logger.LogError(ctx, logger.OpCheck, request.Domain, "Failed to encode response", err, models.LogSeverityLow, nil)
		return
	}

	// Log success only after successful encoding
	h.logger.LogSuccess(ctx, logger.OpCheck, request.Domain, "Completed ads check", map[string]interface{}{
		"success": outcome.Success,
		"cached":  outcome.Cached,
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	// LogEvent is automatically created by logging middleware
	ctx := r.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
	}

	// Write response using centralized function
	if err := h.writeJSONResponse(w, r, http.StatusOK, response); err != nil {
		// Response already sent with 200, but log the encoding error
		h.logger.LogError(ctx, logger.OpHealthCheck, "", "Failed to encode health response", err, models.LogSeverityLow, nil)
		return
	}

	// Log success only after successful encoding
	h.logger.LogInfo(ctx, logger.OpHealthCheck, "Health check performed successfully", nil)
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, error, message string) {
	response := ErrorResponse{
		Error:     error,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	// Use centralized response function to ensure consistent headers including X-Request-ID
	if err := h.writeJSONResponse(w, r, statusCode, response); err != nil {
		// Encoding failed - response already sent with status code, but log the error
		h.logger.LogError(r.Context(), "response_encoding", "", "Failed to encode error response", err, models.LogSeverityLow, nil)
	}
}

// getStatusCodeForError determines the appropriate HTTP status code for an error
func (h *Handler) getStatusCodeForError(err error) int {
	switch {
	case errors.Is(err, models.ErrMissingIdentity) || errors.Is(err, models.ErrInvalidPageReference):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrFetchTimeout):
		return http.StatusRequestTimeout
	case errors.Is(err, models.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
