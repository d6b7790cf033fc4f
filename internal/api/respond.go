package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/database"
	"shareit/internal/models"
)

// userIDHeader names the acting user on every domain endpoint.
const userIDHeader = "X-Sharer-User-Id"

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeDomainError maps a service error to an HTTP status. Anything outside
// the known taxonomy is a persistence fault and stays opaque to the client.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrItemNotFound),
		errors.Is(err, database.ErrBookingNotFound),
		errors.Is(err, database.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrAccessDenied):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, database.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, database.ErrSelfBooking),
		errors.Is(err, database.ErrItemUnavailable),
		errors.Is(err, database.ErrInvalidTimeRange),
		errors.Is(err, database.ErrStatusAlreadySet),
		errors.Is(err, database.ErrUnsupportedState),
		errors.Is(err, database.ErrCommentNotAllowed):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// actingUser resolves the X-Sharer-User-Id header and enforces the per-user
// request budget. It writes the response itself on failure.
func (s *HTTPServer) actingUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing "+userIDHeader+" header")
		return 0, false
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+userIDHeader+" header")
		return 0, false
	}

	if s.cache != nil && s.cfg.RateLimit.PerUserRequests > 0 {
		window := time.Duration(s.cfg.RateLimit.PerUserWindow) * time.Second
		allowed, err := s.cache.CheckRateLimit(r.Context(), "user:"+raw, s.cfg.RateLimit.PerUserRequests, window)
		if err != nil {
			s.logger.Error().Err(err).Msg("per-user rate limit check failed")
		} else if !allowed {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return 0, false
		}
	}
	return userID, true
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// pageFromQuery reads from/size pagination parameters. Absent values fall
// back to offset 0 and the default page size.
func pageFromQuery(r *http.Request) (models.Page, error) {
	page := models.Page{From: 0, Size: models.DefaultPageSize}
	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			return page, errors.New("from must be a non-negative integer")
		}
		page.From = from
	}
	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return page, errors.New("size must be a positive integer")
		}
		page.Size = size
	}
	return page, nil
}
