package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"paczusie/pkg/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Service) respondErrorStatus(w http.ResponseWriter, status int, msg string) {
	s.respond(w, status, errorResponse{Error: msg})
}

// respondError maps sentinel errors onto the status taxonomy. Anything
// unrecognized is a 500 with a generic message; the cause is logged,
// never returned to the client.
func (s *Service) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrUserNotFound),
		errors.Is(err, types.ErrBusinessNotFound),
		errors.Is(err, types.ErrAdNotFound),
		errors.Is(err, types.ErrCategoryNotFound),
		errors.Is(err, types.ErrAdCategoryNotFound),
		errors.Is(err, types.ErrReviewNotFound):
		s.respondErrorStatus(w, http.StatusNotFound, err.Error())
	case errors.Is(err, types.ErrEmailTaken),
		errors.Is(err, types.ErrAdCategoryExists),
		errors.Is(err, types.ErrInvalidCredentials):
		s.respondErrorStatus(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.WithError(err).Error("internal error")
		s.respondErrorStatus(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Service) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondErrorStatus(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
