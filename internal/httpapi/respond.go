package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"carlot/internal/app/listings"
	"carlot/internal/logging"
	"carlot/internal/session"
	"carlot/internal/store"
	"carlot/internal/upload"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps service errors onto status codes. Unexpected errors are
// logged and reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrListingNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "listing not found"})
	case errors.Is(err, store.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
	case errors.Is(err, store.ErrAccountExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "account already exists"})
	case errors.Is(err, listings.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, upload.ErrDisabled):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "uploads are not configured"})
	default:
		logging.WithContext(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload", store.ErrValidation)
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be empty.
func decodeOptionalJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON payload", store.ErrValidation)
	}
	return nil
}

// pathUUID parses the named mux variable as a listing id.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return parseListingID(mux.Vars(r)[name])
}

func parseListingID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: listingId is required", store.ErrValidation)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: listingId is not a valid id", store.ErrValidation)
	}
	return id, nil
}

// parsePage reads page and limit. Missing values take the defaults; numbers
// out of range are clamped later by store.Page.Normalize.
func parsePage(r *http.Request) (store.Page, error) {
	page := store.Page{Page: 1, Limit: store.DefaultPageLimit}
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return store.Page{}, fmt.Errorf("%w: page must be a number", store.ErrValidation)
		}
		page.Page = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return store.Page{}, fmt.Errorf("%w: limit must be a number", store.ErrValidation)
		}
		page.Limit = n
	}
	return page, nil
}

// sessionID prefers an explicitly supplied id and falls back to a session
// cookie the client sent with the request. A cookie minted while serving this
// request is not an identity.
func (s *Server) sessionID(r *http.Request, explicit string) (string, error) {
	explicit = strings.TrimSpace(explicit)
	if explicit == "" {
		id := session.StoredFromContext(r.Context())
		if id == "" {
			return "", fmt.Errorf("%w: sessionId is required", store.ErrValidation)
		}
		return id, nil
	}

	id, ok := s.sessions.Resolve(explicit)
	if !ok {
		return "", fmt.Errorf("%w: sessionId is not valid", store.ErrValidation)
	}
	return id, nil
}
