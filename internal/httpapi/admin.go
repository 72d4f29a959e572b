package httpapi

import (
	"net/http"

	"carlot/internal/logging"
)

func (s *Server) handleAdminViews(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.views.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAdminContact(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.contact.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	fixed, err := s.favorites.Reconcile(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	logging.WithContext(r.Context()).Info().Int64("corrected", fixed).Msg("like counts reconciled")
	writeJSON(w, http.StatusOK, struct {
		Success   bool  `json:"success"`
		Corrected int64 `json:"corrected"`
	}{Success: true, Corrected: fixed})
}
