package httpapi

import (
	"net/http"

	"carlot/internal/app/contact"
	"carlot/internal/store"
)

type contactResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    store.ContactMessage `json:"data"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var form contact.Form
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, r, err)
		return
	}

	msg, err := s.contact.Submit(r.Context(), form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, contactResponse{
		Success: true,
		Message: "Thanks for reaching out. We will get back to you soon.",
		Data:    msg,
	})
}
