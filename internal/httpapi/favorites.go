package httpapi

import (
	"net/http"

	"carlot/internal/store"
)

type favoriteRequest struct {
	SessionID string `json:"sessionId"`
	ListingID string `json:"listingId"`
}

type addFavoriteResponse struct {
	Success   bool   `json:"success"`
	Created   bool   `json:"created"`
	LikeCount int    `json:"likeCount,omitempty"`
	Message   string `json:"message"`
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	listingID, err := parseListingID(req.ListingID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sessionID, err := s.sessionID(r, req.SessionID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.favorites.Add(r.Context(), sessionID, listingID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !res.Created {
		writeJSON(w, http.StatusOK, addFavoriteResponse{Success: true, Created: false, Message: "Already in favorites"})
		return
	}
	writeJSON(w, http.StatusCreated, addFavoriteResponse{
		Success:   true,
		Created:   true,
		LikeCount: res.LikeCount,
		Message:   "Added to favorites",
	})
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	listingID, err := pathUUID(r, "listingId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	sessionID, err := s.sessionID(r, r.URL.Query().Get("sessionId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.favorites.Remove(r.Context(), sessionID, listingID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Removed from favorites"})
}

func (s *Server) handleCheckFavorite(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listingID, err := parseListingID(q.Get("listingId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	sessionID, err := s.sessionID(r, q.Get("sessionId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	favorited, err := s.favorites.Check(r.Context(), sessionID, listingID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		IsFavorited bool `json:"isFavorited"`
	}{IsFavorited: favorited})
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	sessionID, err := s.sessionID(r, r.URL.Query().Get("sessionId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	favorites, err := s.favorites.List(r.Context(), sessionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Listings []store.Listing `json:"listings"`
	}{Listings: favorites})
}
