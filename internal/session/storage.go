package session

import (
	"net/http"
	"sync"
	"time"
)

// MemoryStorage keeps values in a map. Useful for tests and non-browser clients.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Clear drops every stored value.
func (m *MemoryStorage) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = map[string]string{}
}

// CookieOptions controls the cookies written by CookieStorage.
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

// DefaultCookieMaxAge keeps the id for roughly ten years; ids never expire on their own.
const DefaultCookieMaxAge = 10 * 365 * 24 * time.Hour

// CookieStorage reads values from request cookies and persists them with Set-Cookie.
type CookieStorage struct {
	w       http.ResponseWriter
	r       *http.Request
	opts    CookieOptions
	written map[string]string
}

// NewCookieStorage binds storage to one request/response pair.
func NewCookieStorage(w http.ResponseWriter, r *http.Request, opts CookieOptions) *CookieStorage {
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultCookieMaxAge
	}
	return &CookieStorage{w: w, r: r, opts: opts, written: map[string]string{}}
}

func (c *CookieStorage) Get(key string) (string, bool) {
	if v, ok := c.written[key]; ok {
		return v, true
	}
	cookie, err := c.r.Cookie(key)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}

func (c *CookieStorage) Set(key, value string) {
	c.written[key] = value
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.opts.MaxAge.Seconds()),
		HttpOnly: false, // the browser reads it to attach sessionId to API calls
		Secure:   c.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
