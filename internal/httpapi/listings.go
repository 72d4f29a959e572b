package httpapi

import (
	"errors"
	"net/http"

	"carlot/internal/app/listings"
	"carlot/internal/auth"
	"carlot/internal/store"
)

func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	result, err := s.listings.List(r.Context(), store.ListingFilter{
		Make:  q.Get("make"),
		Model: q.Get("model"),
		Page:  page,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	listing, err := s.listings.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var in listings.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.listings.Create(r.Context(), actor, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.listings.Delete(r.Context(), actor, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type inquiryRequest struct {
	SessionID string `json:"sessionId"`
}

type inquiryResponse struct {
	Success      bool   `json:"success"`
	InquiryCount int    `json:"inquiryCount"`
	Message      string `json:"message"`
}

func (s *Server) handleRecordInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	// The body is optional; a session id is only used for logging.
	var req inquiryRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	count, err := s.inquiries.Record(r.Context(), id, req.SessionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiryResponse{Success: true, InquiryCount: count, Message: "Inquiry recorded"})
}

type viewRequest struct {
	SessionID string `json:"sessionId"`
}

func (s *Server) handleRecordView(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req viewRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	sessionID, err := s.sessionID(r, req.SessionID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := s.views.Record(r.Context(), id, sessionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func actorFromRequest(r *http.Request) (listings.Actor, error) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return listings.Actor{}, errors.New("missing claims")
	}
	id, err := claims.AccountID()
	if err != nil {
		return listings.Actor{}, err
	}
	return listings.Actor{AccountID: id, Role: claims.Role}, nil
}
