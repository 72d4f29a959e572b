package httpapi

import (
	"net/http"

	"carlot/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(w, "email and password are required")
		return
	}

	token, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// handleSession reports the caller's session id in the form the client should
// send back. It is empty when the client declared it has no storage.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	id := session.FromContext(r.Context())
	writeJSON(w, http.StatusOK, struct {
		SessionID string `json:"sessionId"`
	}{SessionID: s.sessions.Encode(id)})
}
