package obfuscate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleMap = `
[[route]]
public = "/admin"
hidden = "/x-9f2c/admin/"
`

func TestReadCleansPrefixes(t *testing.T) {
	m, err := Read(strings.NewReader(sampleMap))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(m.Routes) != 1 || m.Routes[0].Hidden != "/x-9f2c/admin" {
		t.Fatalf("unexpected routes: %+v", m.Routes)
	}
}

func TestReadRejectsBadMaps(t *testing.T) {
	tests := map[string]string{
		"same prefix": "[[route]]\npublic = \"/admin\"\nhidden = \"/admin\"\n",
		"root":        "[[route]]\npublic = \"/\"\nhidden = \"/x\"\n",
		"duplicate":   "[[route]]\npublic = \"/a\"\nhidden = \"/x\"\n[[route]]\npublic = \"/b\"\nhidden = \"/x\"\n",
		"not toml":    "[[route",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	m, err := Read(strings.NewReader(sampleMap))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	var gotPath string
	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))

	tests := []struct {
		path     string
		wantCode int
		wantPath string
	}{
		{path: "/x-9f2c/admin/views", wantCode: http.StatusOK, wantPath: "/admin/views"},
		{path: "/x-9f2c/admin", wantCode: http.StatusOK, wantPath: "/admin"},
		{path: "/admin/views", wantCode: http.StatusNotFound},
		{path: "/administrator", wantCode: http.StatusOK, wantPath: "/administrator"},
		{path: "/listings", wantCode: http.StatusOK, wantPath: "/listings"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			gotPath = ""
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if gotPath != tc.wantPath {
				t.Fatalf("expected handler path %q, got %q", tc.wantPath, gotPath)
			}
		})
	}
}
