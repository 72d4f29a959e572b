package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"carlot/internal/config"
)

func TestNewWithoutProvider(t *testing.T) {
	u, err := New(context.Background(), config.UploadConfig{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil uploader, got %T", u)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New(context.Background(), config.UploadConfig{Provider: "ftp"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestNewCloudinary(t *testing.T) {
	u, err := New(context.Background(), config.UploadConfig{
		Provider:            "cloudinary",
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
		CloudinaryFolder:    "listings",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := u.(*Cloudinary); !ok {
		t.Fatalf("expected *Cloudinary, got %T", u)
	}
}

func TestObjectNameKeepsExtension(t *testing.T) {
	a := objectName("Front View.JPG")
	b := objectName("Front View.JPG")
	if !strings.HasSuffix(a, ".jpg") {
		t.Fatalf("expected .jpg suffix, got %q", a)
	}
	if a == b {
		t.Fatalf("expected unique names, got %q twice", a)
	}
	if got := objectName("noext"); strings.Contains(got, ".") {
		t.Fatalf("unexpected extension in %q", got)
	}
}

func TestS3UploadToCompatibleEndpoint(t *testing.T) {
	var (
		mu      sync.Mutex
		gotPath string
		gotBody string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		if r.Method == http.MethodPut {
			gotPath = r.URL.Path
			gotBody = string(body)
		}
		mu.Unlock()
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u, err := NewS3(context.Background(), S3Options{
		Bucket:    "photos",
		Region:    "us-east-1",
		Prefix:    "listings/",
		AccessKey: "test",
		SecretKey: "test",
		Endpoint:  srv.URL,
	})
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}

	res, err := u.Upload(context.Background(), File{Name: "car.png", ContentType: "image/png", Body: strings.NewReader("png-bytes")})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if !strings.HasPrefix(gotPath, "/photos/listings/") || !strings.HasSuffix(gotPath, ".png") {
		t.Fatalf("unexpected object path %q", gotPath)
	}
	if !strings.Contains(gotBody, "png-bytes") {
		t.Fatalf("body not uploaded: %q", gotBody)
	}
	if !strings.HasPrefix(res.PublicID, "listings/") || !strings.HasPrefix(res.URL, srv.URL) {
		t.Fatalf("unexpected result: %+v", res)
	}
}
