package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"carlot/internal/app/views"
	"carlot/internal/store"
)

func TestAdminViewsRejectsNonAdmins(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name  string
		token string
	}{
		{name: "anonymous"},
		{name: "dealer", token: env.token(t, 5, store.RoleDealer)},
		{name: "forged", token: "eyJhbGciOiJIUzI1NiJ9.e30.forged"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/views", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := env.do(req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}

	if env.views.listCalls != 0 {
		t.Fatalf("views were read %d times without admin role", env.views.listCalls)
	}
}

func TestAdminViewsPaginates(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/views?page=2&limit=50", nil)
	req.Header.Set("Authorization", "Bearer "+env.token(t, 1, store.RoleAdmin))
	rec := env.do(req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body views.Page
	decodeBody(t, rec, &body)
	if body.Total != 120 || body.Page != 2 || body.Limit != 50 || body.TotalPages != 3 {
		t.Fatalf("unexpected page: %+v", body)
	}
}

func TestAdminViewsDefaults(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/views", nil)
	req.Header.Set("Authorization", "Bearer "+env.token(t, 1, store.RoleAdmin))
	if rec := env.do(req); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.views.lastPage.Page != 1 || env.views.lastPage.Limit != store.DefaultPageLimit {
		t.Fatalf("expected default page, got %+v", env.views.lastPage)
	}
}

func TestAdminViewsRejectsNonNumericPage(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/views?page=two", nil)
	req.Header.Set("Authorization", "Bearer "+env.token(t, 1, store.RoleAdmin))
	if rec := env.do(req); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.views.listCalls != 0 {
		t.Fatalf("views should not be read")
	}
}

func TestAdminContactAndReconcile(t *testing.T) {
	env := newTestEnv(t, nil)
	env.favorites.reconciled = 2
	admin := "Bearer " + env.token(t, 1, store.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/contact", nil)
	req.Header.Set("Authorization", admin)
	if rec := env.do(req); rec.Code != http.StatusOK {
		t.Fatalf("contact: expected 200, got %d", rec.Code)
	}
	if env.contacts.listed != 1 {
		t.Fatalf("expected contact list to be read once")
	}

	req = httptest.NewRequest(http.MethodPost, "/admin/reconcile", nil)
	req.Header.Set("Authorization", admin)
	rec := env.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("reconcile: expected 200, got %d", rec.Code)
	}

	var body struct {
		Corrected int64 `json:"corrected"`
	}
	decodeBody(t, rec, &body)
	if body.Corrected != 2 {
		t.Fatalf("expected 2 corrected, got %d", body.Corrected)
	}
}
