package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"carlot/internal/app/favorites"
	"carlot/internal/http/middleware"
	"carlot/internal/session"
	"carlot/internal/store"
)

func TestRemoveFavorite(t *testing.T) {
	env := newTestEnv(t, nil)
	listingID := uuid.New()

	rec := env.do(httptest.NewRequest(http.MethodDelete, "/favorites/"+listingID.String()+"?sessionId=session_1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body statusResponse
	decodeBody(t, rec, &body)
	if !body.Success || body.Message == "" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if env.favorites.lastSessionID != "session_1" || env.favorites.lastListingID != listingID {
		t.Fatalf("service called with %q %s", env.favorites.lastSessionID, env.favorites.lastListingID)
	}
}

func TestRemoveFavoriteValidation(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "missing session", path: "/favorites/" + uuid.NewString()},
		{name: "bad listing id", path: "/favorites/not-a-uuid?sessionId=session_1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			req := httptest.NewRequest(http.MethodDelete, tc.path, nil)
			req.Header.Set(middleware.SessionStorageHeader, "none")

			rec := env.do(req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if env.favorites.calls != 0 {
				t.Fatalf("service should not be called")
			}
		})
	}
}

func TestRemoveFavoriteUnexpectedError(t *testing.T) {
	env := newTestEnv(t, nil)
	env.favorites.removeErr = errors.New("pq: connection refused to 10.0.0.5")

	rec := env.do(httptest.NewRequest(http.MethodDelete, "/favorites/"+uuid.NewString()+"?sessionId=session_1", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body errorResponse
	decodeBody(t, rec, &body)
	if body.Error != "internal server error" {
		t.Fatalf("internal error leaked: %q", body.Error)
	}
}

func TestCheckFavorite(t *testing.T) {
	env := newTestEnv(t, nil)
	env.favorites.checkResp = true
	listingID := uuid.New()

	rec := env.do(httptest.NewRequest(http.MethodGet, "/favorites/check?sessionId=session_1&listingId="+listingID.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		IsFavorited bool `json:"isFavorited"`
	}
	decodeBody(t, rec, &body)
	if !body.IsFavorited {
		t.Fatalf("expected isFavorited true")
	}
}

func TestCheckFavoriteUsesSessionCookie(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/favorites/check?listingId="+uuid.NewString(), nil)
	req.AddCookie(&http.Cookie{Name: session.StorageKey, Value: "session_1700000000000_abcdefghi"})
	rec := env.do(req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.favorites.lastSessionID != "session_1700000000000_abcdefghi" {
		t.Fatalf("expected cookie session, got %q", env.favorites.lastSessionID)
	}
}

func TestCheckFavoriteMissingListing(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/favorites/check?sessionId=session_1", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddFavorite(t *testing.T) {
	listingID := uuid.New()

	tests := []struct {
		name     string
		result   favorites.AddResult
		err      error
		wantCode int
	}{
		{name: "created", result: favorites.AddResult{Created: true, LikeCount: 4}, wantCode: http.StatusCreated},
		{name: "duplicate", result: favorites.AddResult{Created: false}, wantCode: http.StatusOK},
		{name: "unknown listing", err: store.ErrListingNotFound, wantCode: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			env.favorites.addResult = tc.result
			env.favorites.addErr = tc.err

			req := httptest.NewRequest(http.MethodPost, "/favorites", jsonBody(t, favoriteRequest{SessionID: "session_1", ListingID: listingID.String()}))
			rec := env.do(req)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}

			if tc.err == nil {
				var body addFavoriteResponse
				decodeBody(t, rec, &body)
				if body.Created != tc.result.Created || body.LikeCount != tc.result.LikeCount {
					t.Fatalf("unexpected body: %+v", body)
				}
			}
		})
	}
}

func TestListFavorites(t *testing.T) {
	env := newTestEnv(t, nil)
	env.favorites.listResp = []store.Listing{{ID: uuid.New(), Make: "Volvo"}}

	rec := env.do(httptest.NewRequest(http.MethodGet, "/favorites?sessionId=session_1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Listings []store.Listing `json:"listings"`
	}
	decodeBody(t, rec, &body)
	if len(body.Listings) != 1 || body.Listings[0].Make != "Volvo" {
		t.Fatalf("unexpected listings: %+v", body.Listings)
	}
}

func TestFavoriteEndpointsRejectFreshSession(t *testing.T) {
	listingID := uuid.New()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "check", method: http.MethodGet, path: "/favorites/check?listingId=" + listingID.String()},
		{name: "remove", method: http.MethodDelete, path: "/favorites/" + listingID.String()},
		{name: "add", method: http.MethodPost, path: "/favorites", body: `{"listingId":"` + listingID.String() + `"}`},
		{name: "list", method: http.MethodGet, path: "/favorites"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			for i := 0; i < 2; i++ {
				rec := env.do(httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
				if rec.Code != http.StatusBadRequest {
					t.Fatalf("request %d: expected 400, got %d: %s", i, rec.Code, rec.Body.String())
				}
			}
			if env.favorites.calls != 0 {
				t.Fatalf("service called %d times with session %q", env.favorites.calls, env.favorites.lastSessionID)
			}
		})
	}
}
