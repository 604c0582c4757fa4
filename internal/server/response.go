package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/naka-gawa/github-card/internal/domain"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.Error("failed to encode JSON response", "err", err)
		}
	}
}

// writeError maps domain errors to HTTP. Aggregation failures all carry the same
// user-facing message; only the status code tells the causes apart.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: domain.UserMessage(err)})
	case errors.Is(err, domain.ErrRateLimited):
		s.writeJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "rate_limited", Message: domain.UserMessage(err)})
	case errors.Is(err, domain.ErrNetworkFailure), errors.Is(err, domain.ErrUpstream):
		s.writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "upstream_error", Message: domain.UserMessage(err)})
	case errors.Is(err, domain.ErrFaceNotFound):
		s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "card_export_failed", Message: "Could not render card"})
	default:
		s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "An internal error occurred"})
	}
}
